package quad

import (
	"github.com/gogpu/gputypes"
)

// fakeBackend records every call so tests can assert on the exact traffic
// crossing the backend boundary.
type fakeBackend struct {
	name   string
	nextID TextureID

	window     WindowConfig
	shown      bool
	closed     bool
	vsync      bool
	logicalW   uint32
	logicalH   uint32
	integer    bool
	mode       DisplayMode
	modeErr    error
	windowErr  error
	vsyncErr   error
	createErr  error
	clearErr   error
	drawErr    error
	presentErr error
	logicalErr error

	textures  map[TextureID][]byte
	destroyed []TextureID
	// destroyedAfterClose counts DestroyTexture calls arriving after Close,
	// which the canvas must never issue.
	destroyedAfterClose int
	draws               []fakeDraw
	clears              []Color
	presents            int
	events              []Event
}

type fakeDraw struct {
	id      TextureID
	verts   []Vertex
	indices []uint16
}

func newFakeBackend() *fakeBackend {
	return &fakeBackend{
		name:     "fake",
		nextID:   1,
		textures: make(map[TextureID][]byte),
		mode:     DisplayMode{Width: 1920, Height: 1080, RefreshRate: 60, Renderer: "fake"},
	}
}

func (f *fakeBackend) Name() string { return f.name }

func (f *fakeBackend) CreateWindow(cfg WindowConfig) error {
	if f.windowErr != nil {
		return f.windowErr
	}
	f.window = cfg
	f.shown = !cfg.Hidden
	return nil
}

func (f *fakeBackend) SetWindowTitle(title string) { f.window.Title = title }

func (f *fakeBackend) SetWindowSize(w, h uint32) {
	f.window.Width = w
	f.window.Height = h
}

func (f *fakeBackend) ShowWindow() { f.shown = true }

func (f *fakeBackend) SetLogicalSize(w, h uint32, integer bool) error {
	if f.logicalErr != nil {
		return f.logicalErr
	}
	f.logicalW, f.logicalH, f.integer = w, h, integer
	return nil
}

func (f *fakeBackend) SetVSync(enabled bool) error {
	if f.vsyncErr != nil {
		return f.vsyncErr
	}
	f.vsync = enabled
	return nil
}

func (f *fakeBackend) DisplayMode() (DisplayMode, error) {
	if f.modeErr != nil {
		return DisplayMode{}, f.modeErr
	}
	return f.mode, nil
}

func (f *fakeBackend) CreateTexture(pix []byte, w, h int32, format gputypes.TextureFormat, mode ScaleMode) (TextureID, error) {
	if f.createErr != nil {
		return InvalidTexture, f.createErr
	}
	id := f.nextID
	f.nextID++
	f.textures[id] = pix
	return id, nil
}

func (f *fakeBackend) DestroyTexture(id TextureID) {
	if f.closed {
		f.destroyedAfterClose++
		return
	}
	delete(f.textures, id)
	f.destroyed = append(f.destroyed, id)
}

func (f *fakeBackend) Clear(c Color) error {
	if f.clearErr != nil {
		return f.clearErr
	}
	f.clears = append(f.clears, c)
	return nil
}

func (f *fakeBackend) DrawGeometry(id TextureID, verts []Vertex, indices []uint16) error {
	if f.drawErr != nil {
		return f.drawErr
	}
	f.draws = append(f.draws, fakeDraw{
		id:      id,
		verts:   append([]Vertex(nil), verts...),
		indices: append([]uint16(nil), indices...),
	})
	return nil
}

func (f *fakeBackend) Present() error {
	if f.presentErr != nil {
		return f.presentErr
	}
	f.presents++
	return nil
}

func (f *fakeBackend) PollEvent() (Event, bool) {
	if len(f.events) == 0 {
		return nil, false
	}
	ev := f.events[0]
	f.events = f.events[1:]
	return ev, true
}

func (f *fakeBackend) Close() { f.closed = true }

func (f *fakeBackend) push(evs ...Event) { f.events = append(f.events, evs...) }

// newTestCanvas creates a canvas over a fresh fake backend.
func newTestCanvas(t interface{ Fatalf(string, ...any) }) (*Canvas, *fakeBackend) {
	b := newFakeBackend()
	c, err := CreateCanvas(b, WindowConfig{Title: "test", Width: 640, Height: 480})
	if err != nil {
		t.Fatalf("CreateCanvas: %v", err)
	}
	return c, b
}
