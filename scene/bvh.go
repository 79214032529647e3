package scene

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/aji27/comgr-hs18/log"
	"github.com/aji27/comgr-hs18/types"
)

// Nodes with at most this many spheres are not partitioned any further.
const DefaultMinPartitionSize = 2

// Padding added to bounding radii to absorb float rounding for grazing rays.
const boundPadding float32 = 1e-4

var bvhLogger = log.New("bvh")

// A node in a bounding sphere hierarchy. Leaves hold Items and no
// children; internal nodes hold both children and no Items. Every node
// owns its children exclusively.
type BVHNode struct {
	Bound *Sphere
	Left  *BVHNode
	Right *BVHNode
	Items []*Sphere

	// Number of queue iterations it took to build the tree; set on the root.
	iterations int
}

// BVH shape statistics.
type BVHStats struct {
	Nodes       int
	Leaves      int
	MaxDepth    int
	Spheres     int
	MaxLeafSize int
	Iterations  int
}

// Returns true if this node has no children.
func (n *BVHNode) IsLeaf() bool {
	return n.Left == nil && n.Right == nil
}

// Build a bounding sphere hierarchy over the given spheres.
//
// Nodes are processed in breadth-first order. Each node with more than
// minPartition spheres is split at half the bounding center coordinate
// along the axes sorted by descending absolute center coordinate. The
// first axis that puts spheres on both sides wins; if no axis separates
// the spheres the node remains an oversized leaf.
func BuildBVH(spheres []*Sphere, minPartition int) (*BVHNode, error) {
	if len(spheres) == 0 {
		return nil, ErrNoSpheres
	}
	if minPartition < 1 {
		return nil, ErrInvalidPartition
	}

	start := time.Now()
	root := newBVHNode(spheres)

	// Nodes in the order they were visited; parents always precede children.
	visited := make([]*BVHNode, 0, 2*len(spheres))
	queue := []*BVHNode{root}
	for len(queue) > 0 {
		node := queue[0]
		queue = queue[1:]
		visited = append(visited, node)

		if len(node.Items) <= minPartition {
			continue
		}

		for _, axis := range splitOrder(node.Bound.Center) {
			splitCoord := 0.5 * axisValue(node.Bound.Center, axis)

			var left, right []*Sphere
			for _, s := range node.Items {
				if axisValue(s.Center, axis) < splitCoord {
					left = append(left, s)
				} else {
					right = append(right, s)
				}
			}

			if len(left) == 0 || len(right) == 0 {
				continue
			}

			node.Left = newBVHNode(left)
			node.Right = newBVHNode(right)
			node.Items = nil
			queue = append(queue, node.Left, node.Right)
			break
		}
	}

	// Child bounds are computed from their own spheres and may poke out of
	// the parent bound; grow parents bottom-up so they enclose them.
	for i := len(visited) - 1; i >= 0; i-- {
		node := visited[i]
		if node.IsLeaf() {
			continue
		}
		node.Bound.Radius = maxf(node.Bound.Radius, enclosingRadius(node.Bound.Center, node.Left.Bound)+boundPadding)
		node.Bound.Radius = maxf(node.Bound.Radius, enclosingRadius(node.Bound.Center, node.Right.Bound)+boundPadding)
	}

	root.iterations = len(visited)
	bvhLogger.Infof("BVH constructed in '%d' iterations (%d spheres, %s)", root.iterations, len(spheres), time.Since(start))
	return root, nil
}

func newBVHNode(spheres []*Sphere) *BVHNode {
	return &BVHNode{
		Bound: boundingSphere(spheres),
		Items: append([]*Sphere(nil), spheres...),
	}
}

// Calculate a sphere enclosing all input spheres. The center is the
// midpoint between the sphere centers with the smallest and largest
// distance to the origin. A single sphere is its own bound.
func boundingSphere(spheres []*Sphere) *Sphere {
	if len(spheres) == 1 {
		return &Sphere{Name: "Bounding Sphere", Center: spheres[0].Center, Radius: spheres[0].Radius}
	}

	minC, maxC := spheres[0].Center, spheres[0].Center
	minLen, maxLen := minC.Len(), maxC.Len()
	for _, s := range spheres[1:] {
		l := s.Center.Len()
		if l < minLen {
			minC, minLen = s.Center, l
		}
		if l > maxLen {
			maxC, maxLen = s.Center, l
		}
	}

	center := minC.Add(maxC).Mul(0.5)
	var radius float32
	for _, s := range spheres {
		radius = maxf(radius, enclosingRadius(center, s))
	}

	return &Sphere{Name: "Bounding Sphere", Center: center, Radius: radius + boundPadding}
}

// Radius a sphere at center needs to fully contain s.
func enclosingRadius(center types.Vec3, s *Sphere) float32 {
	return center.Distance(s.Center) + s.Radius
}

// Get the axis indices sorted by descending absolute coordinate value.
func splitOrder(v types.Vec3) [3]int {
	order := [3]int{0, 1, 2}
	abs := func(i int) float32 {
		c := v[i]
		if c < 0 {
			return -c
		}
		return c
	}
	// Stable insertion sort; ties keep x, y, z order.
	for i := 1; i < 3; i++ {
		for j := i; j > 0 && abs(order[j]) > abs(order[j-1]); j-- {
			order[j], order[j-1] = order[j-1], order[j]
		}
	}
	return order
}

func axisValue(v types.Vec3, axis int) float32 {
	if axis < 0 || axis > 2 {
		panic(fmt.Sprintf("bvh: invalid axis index %d", axis))
	}
	return v[axis]
}

func maxf(a, b float32) float32 {
	if a > b {
		return a
	}
	return b
}

// Collect all ray hits against the spheres in this tree. Nodes are visited
// breadth-first and subtrees whose bound is missed by the ray are skipped.
func (n *BVHNode) Query(ray Ray) []HitPoint {
	var hits []HitPoint
	n.walk(ray, func(leaf *BVHNode) bool {
		for _, s := range leaf.Items {
			if hit, ok := Intersect(ray, s); ok {
				hits = append(hits, hit)
			}
		}
		return true
	})
	return hits
}

// Find the closest ray hit in this tree.
func (n *BVHNode) ClosestHit(ray Ray) (HitPoint, bool) {
	var (
		best  HitPoint
		found bool
	)
	n.walk(ray, func(leaf *BVHNode) bool {
		for _, s := range leaf.Items {
			hit, ok := Intersect(ray, s)
			if ok && (!found || hit.Ray.Lambda < best.Ray.Lambda) {
				best, found = hit, true
			}
		}
		return true
	})
	return best, found
}

// Check whether the ray hits any sphere closer than maxDist.
func (n *BVHNode) AnyHit(ray Ray, maxDist float32) bool {
	var occluded bool
	n.walk(ray, func(leaf *BVHNode) bool {
		for _, s := range leaf.Items {
			if hit, ok := Intersect(ray, s); ok && hit.Ray.Lambda < maxDist {
				occluded = true
				return false
			}
		}
		return true
	})
	return occluded
}

// Visit all leaves whose bound (and all ancestor bounds) are hit by the ray.
// The visitor may return false to stop the walk.
func (n *BVHNode) walk(ray Ray, visitLeaf func(*BVHNode) bool) {
	var stackBuf [64]*BVHNode
	queue := append(stackBuf[:0], n)

	for head := 0; head < len(queue); head++ {
		node := queue[head]
		hasItems := len(node.Items) > 0
		switch {
		case node.IsLeaf():
			if !visitLeaf(node) {
				return
			}
		case hasItems || node.Left == nil || node.Right == nil:
			panic(fmt.Sprintf("bvh: malformed node %q: %d items, left=%t, right=%t", node.Bound.Name, len(node.Items), node.Left != nil, node.Right != nil))
		default:
			if _, ok := Intersect(ray, node.Left.Bound); ok {
				queue = append(queue, node.Left)
			}
			if _, ok := Intersect(ray, node.Right.Bound); ok {
				queue = append(queue, node.Right)
			}
		}
	}
}

// Calculate tree statistics.
func (n *BVHNode) Stats() BVHStats {
	stats := BVHStats{Iterations: n.iterations}
	n.collectStats(&stats, 0)
	return stats
}

func (n *BVHNode) collectStats(stats *BVHStats, depth int) {
	stats.Nodes++
	if depth > stats.MaxDepth {
		stats.MaxDepth = depth
	}

	if n.IsLeaf() {
		stats.Leaves++
		stats.Spheres += len(n.Items)
		if len(n.Items) > stats.MaxLeafSize {
			stats.MaxLeafSize = len(n.Items)
		}
		return
	}

	n.Left.collectStats(stats, depth+1)
	n.Right.collectStats(stats, depth+1)
}

// Write an indented dump of the tree to w.
func (n *BVHNode) Dump(w io.Writer) error {
	return n.dump(w, 0)
}

func (n *BVHNode) dump(w io.Writer, indent int) error {
	if n == nil {
		return nil
	}

	prefix := strings.Repeat(" ", indent)
	if _, err := fmt.Fprintf(w, "%s%s\n", prefix, formatSphere(n.Bound)); err != nil {
		return err
	}
	for _, item := range n.Items {
		if _, err := fmt.Fprintf(w, "%s %s\n", prefix, formatSphere(item)); err != nil {
			return err
		}
	}

	if err := n.Left.dump(w, indent+2); err != nil {
		return err
	}
	return n.Right.dump(w, indent+2)
}

func formatSphere(s *Sphere) string {
	return fmt.Sprintf("Sphere '%s': Center [%.2f, %.2f, %.2f]; Radius %.2f", s.Name, s.Center[0], s.Center[1], s.Center[2], s.Radius)
}
