// Package quad provides a minimal 2D rendering and frame-pacing core for
// interactive programs.
//
// # Overview
//
// quad owns a drawing surface (the [Canvas]), manages GPU-backed image
// resources with shared ownership ([Texture], [TextureSlice]), composes 2D
// affine transforms ([Transform]), converts drawables into textured-quad
// geometry, and drives a fixed-role game loop ([Run]) that paces updates to
// a target frame interval while feeding it double-buffered keyboard state.
//
// # Quick Start
//
//	import (
//	    "github.com/gogpu/quad"
//	    "github.com/gogpu/quad/input"
//	)
//
//	func main() {
//	    var player quad.Texture
//	    err := quad.Run("my game", func(ctx *quad.Context) {
//	        if player.Zero() {
//	            player = quad.LoadTexture(ctx.Canvas(), "player.png")
//	        }
//	        ctx.Canvas().Clear(quad.Black)
//	        if ctx.Input().IsDown(input.KeyRight) {
//	            // move...
//	        }
//	        ctx.Canvas().Draw(player, quad.FromTranslation(quad.V2(100, 100)))
//	    }, quad.WithWindowSize(800, 600))
//	    if err != nil {
//	        log.Fatal(err)
//	    }
//	}
//
// # Architecture
//
// The library is organized into:
//   - Public API: Transform, Vertex, Texture, TextureSlice, Canvas, Context
//   - Backend boundary: the [Backend] interface abstracts the windowing and
//     rendering system; implementations register via [RegisterBackend]
//   - Backends: headless (in-memory, for tests and CI) and wgpu (GPU via
//     gogpu/wgpu, device supplied by the host through gpucontext)
//
// # Coordinate System
//
// Uses standard computer graphics coordinates:
//   - Origin (0,0) at top-left
//   - X increases right
//   - Y increases down
//   - Angles in radians
//
// # Concurrency
//
// quad is single-threaded by design. The loop, event polling, draw calls and
// resource lifecycle all run on the goroutine that called [Run]. Nothing in
// this package is safe for concurrent use except [SetLogger] and [Logger].
package quad

// Version is the current version of the library.
const Version = "0.3.0"
