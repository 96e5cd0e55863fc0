// Package headless provides an in-memory rendering backend with no window
// system attached.
//
// It implements the full quad.Backend contract deterministically: textures
// live in a table, draw calls append to an inspectable log, and events are
// injected with [Backend.Push]. This makes it the backend of choice for
// tests and CI; it registers itself under the name "headless" on import:
//
//	import _ "github.com/gogpu/quad/backend/headless"
package headless

import (
	"fmt"
	"sync/atomic"

	"github.com/gogpu/gputypes"

	"github.com/gogpu/quad"
)

// Name is the backend identifier.
const Name = "headless"

func init() {
	quad.RegisterBackend(Name, func() quad.Backend {
		return New()
	})
}

// TextureInfo records one live texture in the table.
type TextureInfo struct {
	Width  int32
	Height int32
	Format gputypes.TextureFormat
	Mode   quad.ScaleMode
	// Pix is the uploaded pixel data (not copied).
	Pix []byte
}

// DrawCall records one geometry submission.
type DrawCall struct {
	Texture quad.TextureID
	Verts   []quad.Vertex
	Indices []uint16
}

// Backend is an in-memory implementation of quad.Backend.
type Backend struct {
	nextID atomic.Uint64

	window    quad.WindowConfig
	created   bool
	shown     bool
	closed    bool
	vsync     bool
	logical   [2]uint32
	integer   bool
	mode      quad.DisplayMode
	vsyncErr  error
	createErr error

	textures  map[quad.TextureID]TextureInfo
	destroyed []quad.TextureID
	draws     []DrawCall
	clears    []quad.Color
	presents  int
	events    []quad.Event
}

// New creates a headless backend with a 800x600@60 display mode.
func New() *Backend {
	b := &Backend{
		textures: make(map[quad.TextureID]TextureInfo),
		mode: quad.DisplayMode{
			Width:       800,
			Height:      600,
			RefreshRate: 60,
			Renderer:    Name,
		},
	}
	b.nextID.Store(1)
	return b
}

// SetDisplayMode overrides the reported display mode (for tests).
func (b *Backend) SetDisplayMode(mode quad.DisplayMode) { b.mode = mode }

// FailVSync makes subsequent SetVSync calls return err (for tests).
func (b *Backend) FailVSync(err error) { b.vsyncErr = err }

// FailCreateTexture makes subsequent CreateTexture calls return err.
func (b *Backend) FailCreateTexture(err error) { b.createErr = err }

// Push queues an event for the next PollEvent drain.
func (b *Backend) Push(ev quad.Event) { b.events = append(b.events, ev) }

// Name returns the backend identifier.
func (b *Backend) Name() string { return Name }

// CreateWindow records the window configuration.
func (b *Backend) CreateWindow(cfg quad.WindowConfig) error {
	if b.created {
		return fmt.Errorf("headless: window already created")
	}
	b.window = cfg
	b.created = true
	b.shown = !cfg.Hidden
	return nil
}

// Window returns the recorded window configuration.
func (b *Backend) Window() quad.WindowConfig { return b.window }

// Shown reports whether ShowWindow has been called.
func (b *Backend) Shown() bool { return b.shown }

// SetWindowTitle records the new title.
func (b *Backend) SetWindowTitle(title string) { b.window.Title = title }

// SetWindowSize records the new size.
func (b *Backend) SetWindowSize(width, height uint32) {
	b.window.Width = width
	b.window.Height = height
}

// ShowWindow marks the window visible.
func (b *Backend) ShowWindow() { b.shown = true }

// SetLogicalSize records the logical coordinate mapping.
func (b *Backend) SetLogicalSize(width, height uint32, integer bool) error {
	b.logical = [2]uint32{width, height}
	b.integer = integer
	return nil
}

// LogicalSize returns the recorded logical size and integer-scaling flag.
func (b *Backend) LogicalSize() (w, h uint32, integer bool) {
	return b.logical[0], b.logical[1], b.integer
}

// SetVSync records the vsync request.
func (b *Backend) SetVSync(enabled bool) error {
	if b.vsyncErr != nil {
		return b.vsyncErr
	}
	b.vsync = enabled
	return nil
}

// VSync reports the recorded vsync state.
func (b *Backend) VSync() bool { return b.vsync }

// DisplayMode returns the configured display mode.
func (b *Backend) DisplayMode() (quad.DisplayMode, error) {
	return b.mode, nil
}

// CreateTexture stores the pixels in the texture table.
func (b *Backend) CreateTexture(pix []byte, w, h int32, format gputypes.TextureFormat, mode quad.ScaleMode) (quad.TextureID, error) {
	if b.createErr != nil {
		return quad.InvalidTexture, b.createErr
	}
	id := quad.TextureID(b.nextID.Add(1) - 1)
	b.textures[id] = TextureInfo{Width: w, Height: h, Format: format, Mode: mode, Pix: pix}
	return id, nil
}

// Texture returns the table entry for id.
func (b *Backend) Texture(id quad.TextureID) (TextureInfo, bool) {
	info, ok := b.textures[id]
	return info, ok
}

// TextureCount returns the number of live textures.
func (b *Backend) TextureCount() int { return len(b.textures) }

// DestroyTexture removes the texture from the table and records the call.
func (b *Backend) DestroyTexture(id quad.TextureID) {
	delete(b.textures, id)
	b.destroyed = append(b.destroyed, id)
}

// Destroyed returns every DestroyTexture call in order.
func (b *Backend) Destroyed() []quad.TextureID { return b.destroyed }

// Clear records the clear color.
func (b *Backend) Clear(c quad.Color) error {
	b.clears = append(b.clears, c)
	return nil
}

// Clears returns every recorded clear color in order.
func (b *Backend) Clears() []quad.Color { return b.clears }

// DrawGeometry appends the submission to the draw log.
func (b *Backend) DrawGeometry(id quad.TextureID, verts []quad.Vertex, indices []uint16) error {
	if _, ok := b.textures[id]; !ok {
		return fmt.Errorf("headless: unknown texture %d", id)
	}
	call := DrawCall{
		Texture: id,
		Verts:   append([]quad.Vertex(nil), verts...),
		Indices: append([]uint16(nil), indices...),
	}
	b.draws = append(b.draws, call)
	return nil
}

// Draws returns the draw log.
func (b *Backend) Draws() []DrawCall { return b.draws }

// Present counts the presented frame.
func (b *Backend) Present() error {
	b.presents++
	return nil
}

// Presents returns the number of presented frames.
func (b *Backend) Presents() int { return b.presents }

// PollEvent pops the oldest queued event.
func (b *Backend) PollEvent() (quad.Event, bool) {
	if len(b.events) == 0 {
		return nil, false
	}
	ev := b.events[0]
	b.events = b.events[1:]
	return ev, true
}

// Close marks the backend closed.
func (b *Backend) Close() { b.closed = true }

// Closed reports whether Close has been called.
func (b *Backend) Closed() bool { return b.closed }
