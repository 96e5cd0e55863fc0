package quad

// Vertex is a point on the screen with a color and texture coordinates.
// This is the rendering primitive submitted to the backend.
type Vertex struct {
	// Pos is the 2D position of the vertex in logical coordinates.
	Pos Vec2
	// Color modulates the sampled texture color. White leaves it unchanged.
	Color Color
	// UV is the texture coordinate of the vertex, in [0, 1].
	UV Vec2
}

// Vtx creates a white vertex from a position and texture coordinates.
func Vtx(pos, uv Vec2) Vertex {
	return Vertex{Pos: pos, Color: White, UV: uv}
}

// unitQuad holds the corners of the unit square in the fixed order the quad
// index list refers to: top-left, top-right, bottom-left, bottom-right.
var unitQuad = [4]Vec2{
	{X: 0, Y: 0},
	{X: 1, Y: 0},
	{X: 0, Y: 1},
	{X: 1, Y: 1},
}

// quadIndices is the two-triangle index list shared by every quad.
var quadIndices = []uint16{0, 1, 2, 2, 1, 3}

// quadVertices expands a rectangular drawable into its four corner vertices.
//
// Each unit-square corner is scaled by the drawable's logical size, offset by
// the normalized origin (the pivot ends up at the transform's translation),
// and run through the transform. UVs interpolate over the given range.
func quadVertices(t Transform, size, origin, uvMin, uvMax Vec2) [4]Vertex {
	var out [4]Vertex
	for i, p := range unitQuad {
		pos := t.TransformPoint(p.Sub(origin).MulV(size))
		uv := Vec2{
			X: uvMin.X + p.X*(uvMax.X-uvMin.X),
			Y: uvMin.Y + p.Y*(uvMax.Y-uvMin.Y),
		}
		out[i] = Vtx(pos, uv)
	}
	return out
}
