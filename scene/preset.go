package scene

import (
	"fmt"
	"math/rand"
	"sort"

	"github.com/aji27/comgr-hs18/types"
)

// Cornell box scene options.
type CornellOptions struct {
	// Use three lights instead of a single one.
	MultipleLights bool

	// Use cyan/magenta/yellow (or light salmon) lights instead of white.
	ColoredLights bool

	// Apply the procedural checker texture to the small sphere.
	Checker bool

	// If set, load this image (local path or http(s) URL) as a texture
	// for the large sphere.
	BitmapPath       string
	BitmapProjection Projection
	BitmapBilinear   bool

	// Replace the point lights with large emissive spheres for path tracing.
	PathTracing bool

	// Total emitted brightness of the emissive ceiling light(s).
	LightBrightness float32

	// Replace the two spheres with a cloud of tiny random spheres.
	LotsOfSpheres bool
}

// Default Cornell box options.
func DefaultCornellOptions() CornellOptions {
	return CornellOptions{
		PathTracing:     true,
		LightBrightness: 1,
	}
}

// Number of spheres in the lots-of-spheres scene.
const LotsOfSpheresCount = 4096

// Build a Cornell box made of spheres. The walls are huge spheres whose
// surfaces form a box from -1 to 1 along each axis, open towards the camera.
func CornellBox(opts CornellOptions) (*Scene, error) {
	sc := &Scene{
		Name:   "cornell",
		Eye:    types.XYZ(0, 0, -4),
		LookAt: types.XYZ(0, 0, 6),
		// -y is up so that the ceiling light renders at the top of the frame.
		Up:  types.XYZ(0, -1, 0),
		FOV: 36,
	}

	sc.Spheres = append(sc.Spheres,
		wall("a", types.XYZ(-1001, 0, 0), types.MustColor("red")),
		wall("b", types.XYZ(1001, 0, 0), types.MustColor("blue")),
		wall("c", types.XYZ(0, 0, 1001), types.White),
		wall("d", types.XYZ(0, -1001, 0), types.White),
		wall("e", types.XYZ(0, 1001, 0), types.White),
	)

	if opts.LotsOfSpheres {
		sc.Name = "cornell-lots"
		sc.Spheres = append(sc.Spheres, randomSpheres(LotsOfSpheresCount, 0)...)
	} else {
		small := NewSphere("f", types.XYZ(-0.6, 0.7, -0.6), 0.3, types.MustColor("yellow"))
		if opts.Checker {
			small.Texture = NewCheckerTexture()
		}

		large := NewSphere("g", types.XYZ(0.3, 0.4, 0.3), 0.6, types.MustColor("lightcyan"))
		if opts.BitmapPath != "" {
			tex, err := LoadBitmapTexture(opts.BitmapPath, opts.BitmapProjection, opts.BitmapBilinear, true)
			if err != nil {
				return nil, fmt.Errorf("scene: could not load texture for sphere %q: %w", large.Name, err)
			}
			large.Texture = tex
			large.Brightness = 1
		}

		sc.Spheres = append(sc.Spheres, small, large)
	}

	lightColors := [3]types.Vec3{types.White, types.White, types.White}
	if opts.ColoredLights {
		lightColors = [3]types.Vec3{types.MustColor("cyan"), types.MustColor("magenta"), types.MustColor("yellow")}
	}

	switch {
	case opts.PathTracing && !opts.MultipleLights:
		sc.Spheres = append(sc.Spheres, emitter("w", types.XYZ(0, -10.99, 0), 10, types.White, opts.LightBrightness))
	case opts.PathTracing:
		b := opts.LightBrightness / 3
		sc.Spheres = append(sc.Spheres,
			emitter("c", types.XYZ(0.5, -6.99, 0.3), 6, lightColors[0], b),
			emitter("m", types.XYZ(-0.5, -6.99, 0.3), 6, lightColors[1], b),
			emitter("y", types.XYZ(0, -6.99, -0.6), 6, lightColors[2], b),
		)
	case !opts.MultipleLights:
		c := types.White
		if opts.ColoredLights {
			c = types.MustColor("lightsalmon")
		}
		sc.Lights = append(sc.Lights, NewLightSource("w", types.XYZ(0, -0.9, 0), c))
	default:
		sc.Lights = append(sc.Lights,
			NewLightSource("c", types.XYZ(0.5, -0.9, 0.3), lightColors[0].Mul(0.5)),
			NewLightSource("m", types.XYZ(-0.5, -0.9, 0.3), lightColors[1].Mul(0.5)),
			NewLightSource("y", types.XYZ(0, -0.9, -0.6), lightColors[2].Mul(0.5)),
		)
	}

	return sc, nil
}

func wall(name string, center, color types.Vec3) *Sphere {
	s := NewSphere(name, center, 1000, color)
	s.IsWall = true
	return s
}

func emitter(name string, center types.Vec3, radius float32, color types.Vec3, brightness float32) *Sphere {
	s := NewSphere(name, center, radius, color)
	s.Brightness = brightness
	return s
}

// Generate count tiny spheres with random positions in [-1, 1]³ and random
// colors. The same seed always yields the same spheres.
func randomSpheres(count int, seed int64) []*Sphere {
	rng := rand.New(rand.NewSource(seed))
	spheres := make([]*Sphere, count)
	for i := range spheres {
		center := types.XYZ(
			rng.Float32()*2-1,
			rng.Float32()*2-1,
			rng.Float32()*2-1,
		)
		color := types.XYZ(rng.Float32(), rng.Float32(), rng.Float32())
		spheres[i] = NewSphere(fmt.Sprintf("gen%d", i), center, 0.01, color)
	}
	return spheres
}

// A named Cornell box configuration.
type Preset struct {
	Name        string
	Description string
	Options     CornellOptions
}

// Build the preset scene.
func (p Preset) Build() (*Scene, error) {
	sc, err := CornellBox(p.Options)
	if err != nil {
		return nil, err
	}
	sc.Name = p.Name
	return sc, nil
}

var presets = map[string]Preset{}

func registerPreset(name, description string, opts CornellOptions) {
	presets[name] = Preset{
		Name:        name,
		Description: description,
		Options:     opts,
	}
}

func init() {
	registerPreset("cornell", "cornell box with a point light", CornellOptions{})
	registerPreset("cornell-colored", "cornell box with three colored point lights", CornellOptions{MultipleLights: true, ColoredLights: true})
	registerPreset("cornell-checker", "cornell box with a procedural checker texture", CornellOptions{Checker: true})
	registerPreset("cornell-path", "cornell box lit by an emissive ceiling sphere", DefaultCornellOptions())
	registerPreset("cornell-path-colored", "cornell box lit by three colored emissive spheres", CornellOptions{PathTracing: true, MultipleLights: true, ColoredLights: true, LightBrightness: 1})
	registerPreset("lots-of-spheres", fmt.Sprintf("cornell box filled with %d tiny random spheres", LotsOfSpheresCount), CornellOptions{LotsOfSpheres: true})
}

// Get the list of available presets sorted by name.
func Presets() []Preset {
	list := make([]Preset, 0, len(presets))
	for _, p := range presets {
		list = append(list, p)
	}
	sort.Slice(list, func(i, j int) bool { return list[i].Name < list[j].Name })
	return list
}

// Lookup a preset by name.
func LookupPreset(name string) (Preset, error) {
	p, ok := presets[name]
	if !ok {
		return Preset{}, fmt.Errorf("scene: unknown preset %q", name)
	}
	return p, nil
}
