package scene

import (
	"fmt"

	"github.com/aji27/comgr-hs18/asset"
	"github.com/aji27/comgr-hs18/asset/texture"
	"github.com/aji27/comgr-hs18/types"
	"github.com/chewxy/math32"
)

// A Texture computes the material color for a point given in the unit frame
// of the textured sphere, i.e. (p - center) / radius.
type Texture interface {
	Sample(local types.Vec3) types.Vec3
}

// The default frequency of the checker pattern.
const DefaultCheckerScale float32 = 10

// A procedural 3D checker pattern. A point gets Color if the fractional
// parts of all of its scaled coordinates are below 0.5 and Background
// otherwise.
type CheckerTexture struct {
	Scale      float32
	Color      types.Vec3
	Background types.Vec3
}

// Create a red/black checker texture.
func NewCheckerTexture() *CheckerTexture {
	return &CheckerTexture{
		Scale:      DefaultCheckerScale,
		Color:      types.XYZ(1, 0, 0),
		Background: types.Black,
	}
}

func (t *CheckerTexture) Sample(local types.Vec3) types.Vec3 {
	for _, c := range local {
		v := c * t.Scale
		if v-math32.Trunc(v) >= 0.5 {
			return t.Background
		}
	}
	return t.Color
}

// Projection selects how points on a sphere map to bitmap coordinates.
type Projection uint8

const (
	// Project the texture along the z axis onto the xy plane.
	PlanarProjection Projection = iota
	// Wrap the texture around the sphere using longitude/latitude.
	SphericalProjection
)

func (p Projection) String() string {
	switch p {
	case PlanarProjection:
		return "planar"
	case SphericalProjection:
		return "spherical"
	}
	return fmt.Sprintf("projection(%d)", uint8(p))
}

// Parse a projection name.
func ParseProjection(name string) (Projection, error) {
	switch name {
	case "planar":
		return PlanarProjection, nil
	case "spherical":
		return SphericalProjection, nil
	}
	return 0, fmt.Errorf("scene: unknown texture projection %q", name)
}

// A bitmap backed texture.
type BitmapTexture struct {
	image      *texture.Texture
	projection Projection
	bilinear   bool
}

// Wrap a decoded image. If decodeSRGB is set the texels are converted to
// linear space once up front.
func NewBitmapTexture(img *texture.Texture, projection Projection, bilinear, decodeSRGB bool) *BitmapTexture {
	if decodeSRGB {
		img = img.Linearize()
	}
	return &BitmapTexture{
		image:      img,
		projection: projection,
		bilinear:   bilinear,
	}
}

// Load a bitmap texture from a local file or a http(s) URL.
func LoadBitmapTexture(pathToImage string, projection Projection, bilinear, decodeSRGB bool) (*BitmapTexture, error) {
	res, err := asset.NewResource(pathToImage, nil)
	if err != nil {
		return nil, err
	}
	defer res.Close()

	img, err := texture.New(res)
	if err != nil {
		return nil, err
	}

	return NewBitmapTexture(img, projection, bilinear, decodeSRGB), nil
}

func (t *BitmapTexture) Sample(local types.Vec3) types.Vec3 {
	var u, v float32
	switch t.projection {
	case SphericalProjection:
		y := math32.Max(-1, math32.Min(1, local[1]))
		u = (math32.Atan2(local[0], local[2]) + math32.Pi) / (2 * math32.Pi)
		v = math32.Acos(y) / math32.Pi
	default:
		u = clamp01((local[0] + 1) * 0.5)
		v = clamp01((local[1] + 1) * 0.5)
	}
	return t.image.Sample(u, v, t.bilinear)
}

func clamp01(v float32) float32 {
	return math32.Max(0, math32.Min(1, v))
}
