package quad

import "github.com/chewxy/math32"

// Transform represents a 2D affine transformation.
// It uses a 2x3 matrix in row-major order:
//
//	| a  b  c |
//	| d  e  f |
//
// This represents the transformation:
//
//	x' = a*x + b*y + c
//	y' = d*x + e*y + f
//
// Transform is an immutable value: every operation returns a new Transform.
type Transform struct {
	A, B, C float32
	D, E, F float32
}

// Identity returns the identity transformation.
func Identity() Transform {
	return Transform{
		A: 1, B: 0, C: 0,
		D: 0, E: 1, F: 0,
	}
}

// FromTranslation creates a translation transform.
func FromTranslation(t Vec2) Transform {
	return Transform{
		A: 1, B: 0, C: t.X,
		D: 0, E: 1, F: t.Y,
	}
}

// FromScale creates a scaling transform.
func FromScale(s Vec2) Transform {
	return Transform{
		A: s.X, B: 0, C: 0,
		D: 0, E: s.Y, F: 0,
	}
}

// FromRotation creates a rotation transform (angle in radians).
func FromRotation(angle float32) Transform {
	cos := math32.Cos(angle)
	sin := math32.Sin(angle)
	return Transform{
		A: cos, B: -sin, C: 0,
		D: sin, E: cos, F: 0,
	}
}

// FromTranslationScale creates a transform that scales a point and then
// translates it.
func FromTranslationScale(t, s Vec2) Transform {
	return FromTranslation(t).Scale(s)
}

// FromTranslationScaleRotation creates a transform that scales a point,
// rotates it, and then translates it.
func FromTranslationScaleRotation(t, s Vec2, angle float32) Transform {
	return FromTranslation(t).Scale(s).Rotate(angle)
}

// Compose multiplies two transforms (m * other).
// Applying the result to a point is equivalent to applying other first and
// then m:
//
//	m.Compose(o).TransformPoint(p) == m.TransformPoint(o.TransformPoint(p))
func (m Transform) Compose(other Transform) Transform {
	return Transform{
		A: m.A*other.A + m.B*other.D,
		B: m.A*other.B + m.B*other.E,
		C: m.A*other.C + m.B*other.F + m.C,
		D: m.D*other.A + m.E*other.D,
		E: m.D*other.B + m.E*other.E,
		F: m.D*other.C + m.E*other.F + m.F,
	}
}

// Translate composes a translation on the right of m.
// The translation is applied to a point before m's existing effect, so
// chains read outermost-first:
//
//	Identity().Translate(t).Scale(s).Rotate(a)
//
// scales a point, then rotates it, then translates it.
func (m Transform) Translate(t Vec2) Transform {
	return m.Compose(FromTranslation(t))
}

// Scale composes a scaling on the right of m.
func (m Transform) Scale(s Vec2) Transform {
	return m.Compose(FromScale(s))
}

// Rotate composes a rotation (radians) on the right of m.
func (m Transform) Rotate(angle float32) Transform {
	return m.Compose(FromRotation(angle))
}

// TransformPoint applies the transformation to a point.
func (m Transform) TransformPoint(p Vec2) Vec2 {
	return Vec2{
		X: m.A*p.X + m.B*p.Y + m.C,
		Y: m.D*p.X + m.E*p.Y + m.F,
	}
}

// TransformVector applies the transformation to a vector (no translation).
func (m Transform) TransformVector(p Vec2) Vec2 {
	return Vec2{
		X: m.A*p.X + m.B*p.Y,
		Y: m.D*p.X + m.E*p.Y,
	}
}

// Invert returns the inverse transform.
// Returns the identity transform if m is not invertible.
func (m Transform) Invert() Transform {
	det := m.A*m.E - m.B*m.D
	if math32.Abs(det) < 1e-8 {
		return Identity()
	}

	invDet := 1.0 / det
	return Transform{
		A: m.E * invDet,
		B: -m.B * invDet,
		C: (m.B*m.F - m.C*m.E) * invDet,
		D: -m.D * invDet,
		E: m.A * invDet,
		F: (m.C*m.D - m.A*m.F) * invDet,
	}
}

// IsIdentity returns true if m is the identity transform.
func (m Transform) IsIdentity() bool {
	return m.A == 1 && m.B == 0 && m.C == 0 &&
		m.D == 0 && m.E == 1 && m.F == 0
}
