package quad

import (
	"sync"

	"github.com/gogpu/gputypes"

	"github.com/gogpu/quad/input"
)

// TextureID is an opaque handle to a backend texture resource.
// IDs are uint64 to accommodate various backend handle sizes.
type TextureID uint64

// InvalidTexture is the zero value, representing an invalid/null resource.
// Drawing with it is a no-op.
const InvalidTexture TextureID = 0

// WindowConfig describes the window a backend creates.
type WindowConfig struct {
	// Title is the initial window title.
	Title string
	// Width and Height are the initial window size in pixels.
	Width  uint32
	Height uint32
	// Resizable allows the user to resize the window.
	Resizable bool
	// Hidden creates the window without showing it. The loop shows the
	// window once initialization has finished.
	Hidden bool
}

// DisplayMode describes the display the window is on and the active
// renderer.
type DisplayMode struct {
	// Width and Height are the display dimensions in pixels.
	Width  uint32
	Height uint32
	// RefreshRate is the display refresh rate in Hz, or 0 if unknown.
	RefreshRate uint32
	// Renderer is the name of the active rendering backend.
	Renderer string
}

// Event is a window or input event yielded by [Backend.PollEvent].
// The set of events is closed: QuitEvent, KeyDownEvent and KeyUpEvent.
type Event interface {
	isEvent()
}

// QuitEvent signals that the user asked to close the window.
type QuitEvent struct{}

// KeyDownEvent signals a key-down transition.
type KeyDownEvent struct {
	Key input.Key
	// Repeat is set for auto-repeat events while the key is held.
	Repeat bool
}

// KeyUpEvent signals a key-up transition.
type KeyUpEvent struct {
	Key input.Key
}

func (QuitEvent) isEvent()    {}
func (KeyDownEvent) isEvent() {}
func (KeyUpEvent) isEvent()   {}

// Backend is the interface rendering/windowing implementations provide.
// It is the boundary between the core and the platform: window creation,
// GPU texture storage, geometry submission and event delivery all happen
// behind it.
//
// Backends must be registered via [RegisterBackend] and are selected via
// [DefaultBackend], or injected directly with [WithBackend].
//
// All methods are called from the single goroutine running the loop.
type Backend interface {
	// Name returns the backend identifier (e.g., "headless", "wgpu").
	Name() string

	// CreateWindow creates the window and renderer pair.
	// It is called exactly once, before any other method.
	CreateWindow(cfg WindowConfig) error

	// SetWindowTitle changes the window title.
	SetWindowTitle(title string)

	// SetWindowSize changes the window size in pixels.
	SetWindowSize(width, height uint32)

	// ShowWindow makes a hidden window visible.
	ShowWindow()

	// SetLogicalSize maps the logical coordinate space onto the window.
	// When integer is true the backend must use whole-number scale
	// factors only.
	SetLogicalSize(width, height uint32, integer bool) error

	// SetVSync toggles vertical sync.
	SetVSync(enabled bool) error

	// DisplayMode reports the current display mode and renderer name.
	DisplayMode() (DisplayMode, error)

	// CreateTexture uploads pixels and returns a handle to the new
	// texture. pix holds w*h pixels, tightly packed rows, in the given
	// format.
	CreateTexture(pix []byte, w, h int32, format gputypes.TextureFormat, mode ScaleMode) (TextureID, error)

	// DestroyTexture releases a texture. Called at most once per handle,
	// always before Close.
	DestroyTexture(id TextureID)

	// Clear fills the drawing surface with a color.
	Clear(c Color) error

	// DrawGeometry submits a textured triangle list.
	// indices refer into verts; an empty index slice draws verts in order.
	DrawGeometry(id TextureID, verts []Vertex, indices []uint16) error

	// Present displays the composited frame.
	Present() error

	// PollEvent returns the next pending event, or ok=false when the
	// queue is drained.
	PollEvent() (ev Event, ok bool)

	// Close releases the window, renderer and all remaining resources.
	// No other method is called after Close.
	Close()
}

// BackendFactory creates a new backend instance.
type BackendFactory func() Backend

// registry holds registered backends.
var (
	registryMu sync.RWMutex
	backends   = make(map[string]BackendFactory)
	// Priority order for backend selection (first available wins).
	backendPriority = []string{"wgpu", "headless"}
)

// RegisterBackend registers a backend factory with the given name.
// This is typically called from init() functions in backend packages.
// If a backend with the same name is already registered, it is replaced.
func RegisterBackend(name string, factory BackendFactory) {
	registryMu.Lock()
	defer registryMu.Unlock()
	backends[name] = factory
}

// UnregisterBackend removes a backend from the registry.
// This is useful for testing.
func UnregisterBackend(name string) {
	registryMu.Lock()
	defer registryMu.Unlock()
	delete(backends, name)
}

// AvailableBackends returns a list of registered backend names.
func AvailableBackends() []string {
	registryMu.RLock()
	defer registryMu.RUnlock()

	names := make([]string, 0, len(backends))
	for name := range backends {
		names = append(names, name)
	}
	return names
}

// GetBackend returns a backend instance by name.
// Returns nil if the backend is not registered.
func GetBackend(name string) Backend {
	registryMu.RLock()
	defer registryMu.RUnlock()

	factory, ok := backends[name]
	if !ok {
		return nil
	}
	return factory()
}

// DefaultBackend returns the best available backend based on priority.
// Priority order: wgpu > headless, then any other registration.
// Returns nil if no backends are registered.
func DefaultBackend() Backend {
	registryMu.RLock()
	defer registryMu.RUnlock()

	for _, name := range backendPriority {
		if factory, ok := backends[name]; ok {
			if b := factory(); b != nil {
				return b
			}
		}
	}
	for _, factory := range backends {
		if b := factory(); b != nil {
			return b
		}
	}
	return nil
}
