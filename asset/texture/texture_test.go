package texture

import (
	"image"
	"image/color"
	"image/png"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"

	"github.com/aji27/comgr-hs18/asset"
	"github.com/aji27/comgr-hs18/types"
)

func TestPngTexture(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 2, 1))
	img.Set(0, 0, color.RGBA{255, 0, 0, 255})
	img.Set(1, 0, color.RGBA{0, 0, 255, 255})

	imgRes, err := mockImage(img)
	if err != nil {
		t.Fatal(err)
	}
	defer imgRes.Close()
	defer os.Remove(imgRes.Path())

	tex, err := New(imgRes)
	if err != nil {
		t.Fatal(err)
	}

	if tex.Width != 2 || tex.Height != 1 {
		t.Fatalf("expected tex dims to be 2x1; got %dx%d", tex.Width, tex.Height)
	}

	if got := tex.Texel(0, 0); got != types.XYZ(1, 0, 0) {
		t.Fatalf("expected texel (0, 0) to be red; got %v", got)
	}

	// Out of range coordinates clamp to the edge
	if got := tex.Texel(5, -3); got != types.XYZ(0, 0, 1) {
		t.Fatalf("expected clamped texel to be blue; got %v", got)
	}
}

func TestSample(t *testing.T) {
	img := image.NewGray(image.Rect(0, 0, 2, 1))
	img.SetGray(0, 0, color.Gray{0})
	img.SetGray(1, 0, color.Gray{255})
	tex := FromImage(img)

	type spec struct {
		u, v     float32
		bilinear bool
		exp      float32
	}
	specs := []spec{
		{0, 0, false, 0},
		{1, 0, false, 1},
		{0.4, 0, false, 0},
		{0.6, 0, false, 1},
		{0.5, 0, true, 0.5},
		{0.25, 1, true, 0.25},
	}

	for index, s := range specs {
		got := tex.Sample(s.u, s.v, s.bilinear)
		if d := got[0] - s.exp; d > 1e-5 || d < -1e-5 {
			t.Fatalf("[spec %d] expected sample at (%f, %f) to be %f; got %f", index, s.u, s.v, s.exp, got[0])
		}
	}
}

func TestLinearize(t *testing.T) {
	img := image.NewGray(image.Rect(0, 0, 1, 1))
	img.SetGray(0, 0, color.Gray{128})
	tex := FromImage(img)

	lin := tex.Linearize()
	if !lin.Linear || tex.Linear {
		t.Fatal("expected Linearize to return a linear copy and leave the source untouched")
	}
	if exp := types.SRGBToLinear(tex.Data[0][0]); lin.Data[0][0] != exp {
		t.Fatalf("expected linearized texel to be %f; got %f", exp, lin.Data[0][0])
	}
	if lin.Linearize() != lin {
		t.Fatal("expected linearizing a linear texture to be a no-op")
	}
}

func TestStreamHttpTexture(t *testing.T) {
	serverFn := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/texture.png" {
			png.Encode(w, image.NewRGBA64(image.Rect(0, 0, 1, 1)))
		} else {
			http.NotFound(w, r)
		}
	})
	server := httptest.NewServer(serverFn)
	defer server.Close()

	imgRes, err := asset.NewResource(server.URL+"/texture.png", nil)
	if err != nil {
		t.Fatal(err)
	}
	defer imgRes.Close()

	tex, err := New(imgRes)
	if err != nil {
		t.Fatal(err)
	}
	if tex.Width != 1 || tex.Height != 1 {
		t.Fatalf("expected tex dims to be 1x1; got %dx%d", tex.Width, tex.Height)
	}
}

func TestUnsupportedFormat(t *testing.T) {
	res := asset.NewResourceFromStream("foo.txt", strings.NewReader("not an image"))
	if _, err := New(res); err == nil {
		t.Fatal("expected an error when decoding a non-image stream")
	}
}

func mockImage(img image.Image) (*asset.Resource, error) {
	f, err := os.CreateTemp("", "texture-*.png")
	if err != nil {
		return nil, err
	}
	err = png.Encode(f, img)
	f.Close()
	if err != nil {
		os.Remove(f.Name())
		return nil, err
	}

	return asset.NewResource(f.Name(), nil)
}
