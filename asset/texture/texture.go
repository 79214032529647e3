package texture

import (
	"fmt"
	"image"

	// Register decoders for the supported image formats.
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"

	"github.com/aji27/comgr-hs18/asset"
	"github.com/aji27/comgr-hs18/types"
)

// A decoded texture image. Texels are stored row by row starting from the
// top-left corner with each channel normalized to [0, 1].
type Texture struct {
	Width  uint32
	Height uint32

	// True if the texel values have been converted to linear space.
	Linear bool

	Data []types.Vec3
}

// Create a new texture from a Resource.
func New(res *asset.Resource) (*Texture, error) {
	img, format, err := image.Decode(res)
	if err != nil {
		return nil, fmt.Errorf("texture: could not decode %s: %s", res.Path(), err.Error())
	}

	tex := FromImage(img)
	if tex.Width == 0 || tex.Height == 0 {
		return nil, fmt.Errorf("texture: %s image %s has no pixels", format, res.Path())
	}
	return tex, nil
}

// Create a texture from an in-memory image. The texel values are kept in
// the image's (sRGB) encoding.
func FromImage(img image.Image) *Texture {
	bounds := img.Bounds()
	tex := &Texture{
		Width:  uint32(bounds.Dx()),
		Height: uint32(bounds.Dy()),
		Data:   make([]types.Vec3, bounds.Dx()*bounds.Dy()),
	}

	offset := 0
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			r, g, b, _ := img.At(x, y).RGBA()
			tex.Data[offset] = types.XYZ(float32(r)/0xffff, float32(g)/0xffff, float32(b)/0xffff)
			offset++
		}
	}

	return tex
}

// Return a copy of this texture with its texels converted from sRGB to
// linear space. Textures that are already linear are returned as-is.
func (t *Texture) Linearize() *Texture {
	if t.Linear {
		return t
	}

	out := &Texture{
		Width:  t.Width,
		Height: t.Height,
		Linear: true,
		Data:   make([]types.Vec3, len(t.Data)),
	}
	for i, c := range t.Data {
		out.Data[i] = c.SRGBToLinear()
	}
	return out
}

// Get the texel at the given coordinates. Coordinates outside the texture
// are clamped to the nearest edge.
func (t *Texture) Texel(x, y int) types.Vec3 {
	x = clamp(x, 0, int(t.Width)-1)
	y = clamp(y, 0, int(t.Height)-1)
	return t.Data[y*int(t.Width)+x]
}

// Sample the texture at normalized coordinates u, v in [0, 1] where (0, 0)
// is the top-left corner. If bilinear is false the nearest texel is used.
func (t *Texture) Sample(u, v float32, bilinear bool) types.Vec3 {
	fx := u * float32(t.Width-1)
	fy := v * float32(t.Height-1)

	if !bilinear {
		return t.Texel(int(fx+0.5), int(fy+0.5))
	}

	x0, y0 := floor(fx), floor(fy)
	tx, ty := fx-float32(x0), fy-float32(y0)

	top := lerp(t.Texel(x0, y0), t.Texel(x0+1, y0), tx)
	bottom := lerp(t.Texel(x0, y0+1), t.Texel(x0+1, y0+1), tx)
	return lerp(top, bottom, ty)
}

func lerp(a, b types.Vec3, t float32) types.Vec3 {
	return a.Mul(1 - t).Add(b.Mul(t))
}

func floor(v float32) int {
	i := int(v)
	if v < 0 && float32(i) != v {
		i--
	}
	return i
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
