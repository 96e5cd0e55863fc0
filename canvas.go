package quad

import (
	"fmt"

	"github.com/gogpu/quad/input"
)

// Canvas owns the window/renderer pair for its lifetime and exposes the
// drawing primitives. The loop creates it, passes it to the update callback
// through [Context], and closes it at shutdown; there is no global canvas.
//
// Canvas is not safe for concurrent use: every operation runs on the
// goroutine driving the loop.
//
// Policy for per-frame backend failures (clear, draw, present): they are
// logged at Warn and the operation becomes a no-op. Only window/renderer
// creation failures are fatal.
type Canvas struct {
	backend   Backend
	arena     resourceArena
	scaleMode ScaleMode
	viewport  *Viewport
	closed    bool
}

// CreateCanvas creates a window/renderer pair on the given backend.
// Most programs never call this: [Run] creates the canvas. It is exported
// for tests and for hosts embedding the core in their own loop.
func CreateCanvas(b Backend, cfg WindowConfig) (*Canvas, error) {
	if b == nil {
		return nil, ErrNoBackend
	}
	if err := b.CreateWindow(cfg); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrBackendInit, err)
	}
	Logger().Info("canvas created",
		"backend", b.Name(), "size", fmt.Sprintf("%dx%d", cfg.Width, cfg.Height))
	return &Canvas{backend: b}, nil
}

// SetWindowTitle changes the window title.
func (c *Canvas) SetWindowTitle(title string) {
	if c.closed {
		return
	}
	c.backend.SetWindowTitle(title)
}

// SetWindowSize changes the window size in pixels.
func (c *Canvas) SetWindowSize(width, height uint32) {
	if c.closed {
		return
	}
	c.backend.SetWindowSize(width, height)
}

// SetViewport maps a logical coordinate space onto the window.
// Failures are logged and leave the previous mapping in place.
func (c *Canvas) SetViewport(v Viewport) {
	if c.closed {
		return
	}
	err := c.backend.SetLogicalSize(v.Width, v.Height, v.Scaling == ScalingInteger)
	if err != nil {
		Logger().Warn("failed to set viewport", "viewport", v, "error", err)
		return
	}
	c.viewport = &v
}

// Viewport returns the active viewport, or ok=false when drawing happens in
// window coordinates.
func (c *Canvas) Viewport() (Viewport, bool) {
	if c.viewport == nil {
		return Viewport{}, false
	}
	return *c.viewport, true
}

// SetScaleMode sets the default filtering for textures created afterwards.
func (c *Canvas) SetScaleMode(mode ScaleMode) {
	c.scaleMode = mode
}

// SetVSync toggles vertical sync and reports whether the request succeeded.
// Failure is logged, not fatal; the previous state remains in effect.
func (c *Canvas) SetVSync(enabled bool) bool {
	if c.closed {
		return false
	}
	if err := c.backend.SetVSync(enabled); err != nil {
		Logger().Warn("failed to toggle vsync", "enabled", enabled, "error", err)
		return false
	}
	return true
}

// DisplayMode reports the display dimensions, refresh rate and renderer
// name. Query failure is logged and yields the zero mode.
func (c *Canvas) DisplayMode() DisplayMode {
	if c.closed {
		return DisplayMode{}
	}
	mode, err := c.backend.DisplayMode()
	if err != nil {
		Logger().Warn("failed to query display mode", "error", err)
		return DisplayMode{}
	}
	return mode
}

// Clear fills the drawing surface with a color.
func (c *Canvas) Clear(col Color) {
	if c.closed {
		return
	}
	if err := c.backend.Clear(col); err != nil {
		Logger().Warn("clear rejected by backend", "error", err)
	}
}

// Draw converts a drawable into textured-quad geometry under the given
// transform and submits it. Drawing the empty placeholder texture is a
// no-op.
func (c *Canvas) Draw(d Drawable, t Transform) {
	verts, id, owner, ok := drawableGeometry(d, t)
	if !ok {
		return
	}
	if owner != c {
		Logger().Warn("drawable belongs to a different canvas, skipping")
		return
	}
	c.DrawGeometry(id, verts[:], quadIndices)
}

// DrawGeometry submits a textured triangle list directly.
// indices refer into verts; pass nil to draw verts in order.
func (c *Canvas) DrawGeometry(id TextureID, verts []Vertex, indices []uint16) {
	if c.closed || len(verts) == 0 {
		return
	}
	if err := c.backend.DrawGeometry(id, verts, indices); err != nil {
		Logger().Warn("draw rejected by backend", "error", err)
	}
}

// Present displays the composited frame.
func (c *Canvas) Present() {
	if c.closed {
		return
	}
	if err := c.backend.Present(); err != nil {
		Logger().Warn("present failed", "error", err)
	}
}

// PollEvents drains all pending backend events, feeding key transitions
// into st. It returns false exactly when a quit event was observed; the
// queue is still drained to completion first.
//
// Auto-repeat key-down events are suppressed here so a held key produces a
// single just-pressed transition.
func (c *Canvas) PollEvents(st *input.State) bool {
	if c.closed {
		return false
	}
	cont := true
	for {
		ev, ok := c.backend.PollEvent()
		if !ok {
			return cont
		}
		switch e := ev.(type) {
		case QuitEvent:
			cont = false
		case KeyDownEvent:
			if !e.Repeat {
				st.Press(e.Key)
			}
		case KeyUpEvent:
			st.Release(e.Key)
		}
	}
}

// showWindow makes the (hidden) window visible once the loop has finished
// applying configuration.
func (c *Canvas) showWindow() {
	if c.closed {
		return
	}
	c.backend.ShowWindow()
}

// Close disposes every live texture resource and then tears the backend
// down, in that order, so destroy calls never reach a dead rendering
// context. Close is idempotent.
func (c *Canvas) Close() {
	if c.closed {
		return
	}
	ids := c.arena.drain()
	for _, id := range ids {
		c.backend.DestroyTexture(id)
	}
	if len(ids) > 0 {
		Logger().Debug("disposed leftover textures at shutdown", "count", len(ids))
	}
	c.backend.Close()
	c.closed = true
}

// Closed reports whether the canvas has been torn down.
func (c *Canvas) Closed() bool {
	return c.closed
}
