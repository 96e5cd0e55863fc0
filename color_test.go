package quad

import (
	"image/color"
	"testing"
)

func TestHex(t *testing.T) {
	tests := []struct {
		hex  string
		want Color
	}{
		{"#fff", Color{255, 255, 255, 255}},
		{"f00", Color{255, 0, 0, 255}},
		{"#f00a", Color{255, 0, 0, 170}},
		{"#ff8000", Color{255, 128, 0, 255}},
		{"ff800080", Color{255, 128, 0, 128}},
		{"", Black},
		{"#zzzzzz", Color{0, 0, 0, 255}},
		{"#12345", Black},
	}
	for _, tt := range tests {
		t.Run(tt.hex, func(t *testing.T) {
			if got := Hex(tt.hex); got != tt.want {
				t.Errorf("Hex(%q) = %v, want %v", tt.hex, got, tt.want)
			}
		})
	}
}

func TestRGBConstructors(t *testing.T) {
	if got := RGB(10, 20, 30); got != (Color{10, 20, 30, 255}) {
		t.Errorf("RGB = %v", got)
	}
	if got := RGBA8(10, 20, 30, 40); got != (Color{10, 20, 30, 40}) {
		t.Errorf("RGBA8 = %v", got)
	}
}

func TestFromColorRoundTrip(t *testing.T) {
	orig := Color{200, 100, 50, 255}
	back := FromColor(orig.Color())
	if back != orig {
		t.Errorf("round trip = %v, want %v", back, orig)
	}
}

func TestFromColorStandard(t *testing.T) {
	c := FromColor(color.NRGBA{R: 255, G: 0, B: 0, A: 255})
	if c != (Color{255, 0, 0, 255}) {
		t.Errorf("FromColor = %v", c)
	}
}

func TestColorLerp(t *testing.T) {
	a := Black
	b := White

	if got := a.Lerp(b, 0); got != a {
		t.Errorf("Lerp(0) = %v, want %v", got, a)
	}
	if got := a.Lerp(b, 1); got != b {
		t.Errorf("Lerp(1) = %v, want %v", got, b)
	}
	mid := a.Lerp(b, 0.5)
	if mid.R != 127 || mid.G != 127 || mid.B != 127 {
		t.Errorf("Lerp(0.5) = %v, want gray", mid)
	}
}
