package types

import (
	"image/color"
	"testing"
)

func TestSRGBTransfer(t *testing.T) {
	type spec struct {
		linear float32
		srgb   float32
	}
	specs := []spec{
		{0, 0},
		{0.001, 0.01292},
		{0.0031308, 0.04045},
		{0.2140, 0.5},
		{1, 1},
	}

	for index, s := range specs {
		if got := LinearToSRGB(s.linear); !approxEqualTol(got, s.srgb, 1e-3) {
			t.Fatalf("[spec %d] expected LinearToSRGB(%f) to be %f; got %f", index, s.linear, s.srgb, got)
		}
		if got := SRGBToLinear(s.srgb); !approxEqualTol(got, s.linear, 1e-3) {
			t.Fatalf("[spec %d] expected SRGBToLinear(%f) to be %f; got %f", index, s.srgb, s.linear, got)
		}
	}
}

func TestToRGBA(t *testing.T) {
	if got := ToRGBA(XYZ(2, -1, 0.5), false); got != (color.RGBA{255, 0, 128, 255}) {
		t.Fatalf("expected clamped color to be {255 0 128 255}; got %v", got)
	}

	// 0.214 linear is roughly mid-gray once encoded
	if got := ToRGBA(Splat(0.2140), true); got.R < 126 || got.R > 129 {
		t.Fatalf("expected gamma encoded channel to be ~128; got %d", got.R)
	}

	if got := ToRGBA(Vec3{nan(), 0, 0}, false); got != (color.RGBA{0, 0, 0, 255}) {
		t.Fatalf("expected invalid color to map to black; got %v", got)
	}
}

func TestColorFromName(t *testing.T) {
	red, err := ColorFromName("Red")
	if err != nil {
		t.Fatal(err)
	}
	if !approxEqualTol(red[0], 1, 1e-5) || red[1] != 0 || red[2] != 0 {
		t.Fatalf("expected red to be (1, 0, 0); got %v", red)
	}

	cyan := MustColor("lightcyan")
	if !approxEqualTol(cyan[0], SRGBToLinear(224.0/255.0), 1e-6) || !approxEqualTol(cyan[1], 1, 1e-5) || !approxEqualTol(cyan[2], 1, 1e-5) {
		t.Fatalf("expected lightcyan to decode to linear light; got %v", cyan)
	}

	if _, err = ColorFromName("no-such-color"); err == nil {
		t.Fatal("expected an error for an unknown color name")
	}
}

func approxEqualTol(a, b, tol float32) bool {
	d := a - b
	return d <= tol && d >= -tol
}

func nan() float32 {
	var zero float32
	return zero / zero
}
