package quad

// Scaling selects how a logical coordinate space is mapped onto the
// physical window.
type Scaling int

const (
	// ScalingFractional stretches the logical space by any factor.
	ScalingFractional Scaling = iota
	// ScalingInteger scales by whole-number factors only, preserving
	// square pixels at the cost of letterboxing.
	ScalingInteger
)

// String returns the scaling mode name.
func (s Scaling) String() string {
	switch s {
	case ScalingFractional:
		return "fractional"
	case ScalingInteger:
		return "integer"
	default:
		return "unknown"
	}
}

// Viewport declares the logical coordinate space drawing code uses,
// decoupled from the physical window size.
type Viewport struct {
	// Width and Height are the logical size in pixels.
	Width  uint32
	Height uint32
	// Scaling selects integer or fractional mapping.
	Scaling Scaling
}

// NewViewport creates a viewport with the given logical size and
// fractional scaling.
func NewViewport(width, height uint32) Viewport {
	return Viewport{Width: width, Height: height}
}

// Integer returns a copy of the viewport with integer scaling.
func (v Viewport) Integer() Viewport {
	v.Scaling = ScalingInteger
	return v
}

// IntegerScale returns the whole-number scale factor an integer-scaling
// viewport selects for the given window size:
//
//	floor(min(winW/logicalW, winH/logicalH))
//
// Returns 0 when the window is smaller than the logical space.
func (v Viewport) IntegerScale(winW, winH uint32) uint32 {
	if v.Width == 0 || v.Height == 0 {
		return 0
	}
	sx := winW / v.Width
	sy := winH / v.Height
	if sx < sy {
		return sx
	}
	return sy
}
