package quad

// Rect is an axis-aligned rectangle in pixel space.
// It identifies a sub-region of a texture when slicing.
type Rect struct {
	// X is the horizontal position of the top-left corner.
	X int32
	// Y is the vertical position of the top-left corner.
	Y int32
	// W is the horizontal size.
	W int32
	// H is the vertical size.
	H int32
}

// R is a convenience function to create a Rect.
func R(x, y, w, h int32) Rect {
	return Rect{X: x, Y: y, W: w, H: h}
}

// Empty reports whether the rectangle has no area.
func (r Rect) Empty() bool {
	return r.W <= 0 || r.H <= 0
}

// clampTo restricts the rectangle to the bounds [0,0,w,h].
// Returns the clamped rectangle and whether clamping changed anything.
func (r Rect) clampTo(w, h int32) (Rect, bool) {
	c := r
	if c.X < 0 {
		c.W += c.X
		c.X = 0
	}
	if c.Y < 0 {
		c.H += c.Y
		c.Y = 0
	}
	if c.X+c.W > w {
		c.W = w - c.X
	}
	if c.Y+c.H > h {
		c.H = h - c.Y
	}
	if c.W < 0 {
		c.W = 0
	}
	if c.H < 0 {
		c.H = 0
	}
	return c, c != r
}
