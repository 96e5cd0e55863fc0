package quad

import "testing"

func TestRectEmpty(t *testing.T) {
	tests := []struct {
		rect Rect
		want bool
	}{
		{R(0, 0, 10, 10), false},
		{R(5, 5, 0, 10), true},
		{R(5, 5, 10, 0), true},
		{R(0, 0, -1, 10), true},
	}
	for _, tt := range tests {
		if got := tt.rect.Empty(); got != tt.want {
			t.Errorf("%v.Empty() = %v, want %v", tt.rect, got, tt.want)
		}
	}
}

func TestRectClampTo(t *testing.T) {
	tests := []struct {
		name    string
		rect    Rect
		want    Rect
		changed bool
	}{
		{"inside", R(10, 10, 20, 20), R(10, 10, 20, 20), false},
		{"full", R(0, 0, 64, 64), R(0, 0, 64, 64), false},
		{"right overflow", R(48, 0, 32, 16), R(48, 0, 16, 16), true},
		{"bottom overflow", R(0, 48, 16, 32), R(0, 48, 16, 16), true},
		{"negative origin", R(-8, -8, 32, 32), R(0, 0, 24, 24), true},
		{"fully outside", R(100, 100, 10, 10), R(100, 100, 0, 0), true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, changed := tt.rect.clampTo(64, 64)
			if got != tt.want || changed != tt.changed {
				t.Errorf("clampTo = %v (%v), want %v (%v)", got, changed, tt.want, tt.changed)
			}
		})
	}
}
