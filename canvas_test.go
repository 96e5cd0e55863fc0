package quad

import (
	"errors"
	"testing"

	"github.com/gogpu/quad/input"
)

func TestCreateCanvasNilBackend(t *testing.T) {
	_, err := CreateCanvas(nil, WindowConfig{})
	if !errors.Is(err, ErrNoBackend) {
		t.Errorf("err = %v, want ErrNoBackend", err)
	}
}

func TestCreateCanvasWindowFailure(t *testing.T) {
	b := newFakeBackend()
	b.windowErr = errors.New("no display")

	_, err := CreateCanvas(b, WindowConfig{})
	if !errors.Is(err, ErrBackendInit) {
		t.Errorf("err = %v, want ErrBackendInit", err)
	}
}

func TestCanvasWindowOps(t *testing.T) {
	c, b := newTestCanvas(t)

	c.SetWindowTitle("renamed")
	if b.window.Title != "renamed" {
		t.Errorf("title = %q", b.window.Title)
	}
	c.SetWindowSize(1024, 768)
	if b.window.Width != 1024 || b.window.Height != 768 {
		t.Errorf("size = %dx%d", b.window.Width, b.window.Height)
	}
}

func TestCanvasViewport(t *testing.T) {
	c, b := newTestCanvas(t)

	if _, ok := c.Viewport(); ok {
		t.Error("fresh canvas reports a viewport")
	}

	c.SetViewport(NewViewport(320, 180).Integer())
	if b.logicalW != 320 || b.logicalH != 180 || !b.integer {
		t.Errorf("backend logical size = %dx%d integer=%v", b.logicalW, b.logicalH, b.integer)
	}
	v, ok := c.Viewport()
	if !ok || v.Width != 320 || v.Scaling != ScalingInteger {
		t.Errorf("Viewport() = %+v, %v", v, ok)
	}

	// A rejected viewport leaves the previous mapping in place.
	b.logicalErr = errors.New("unsupported")
	c.SetViewport(NewViewport(640, 360))
	v, ok = c.Viewport()
	if !ok || v.Width != 320 {
		t.Errorf("viewport after failure = %+v, %v; want previous", v, ok)
	}
}

func TestCanvasVSync(t *testing.T) {
	c, b := newTestCanvas(t)

	if !c.SetVSync(true) {
		t.Error("SetVSync(true) = false")
	}
	if !b.vsync {
		t.Error("backend vsync not set")
	}

	b.vsyncErr = errors.New("unsupported")
	if c.SetVSync(false) {
		t.Error("SetVSync succeeded despite backend error")
	}
	if !b.vsync {
		t.Error("failed SetVSync changed backend state")
	}
}

func TestCanvasDisplayMode(t *testing.T) {
	c, b := newTestCanvas(t)

	mode := c.DisplayMode()
	if mode.RefreshRate != 60 || mode.Renderer != "fake" {
		t.Errorf("mode = %+v", mode)
	}

	b.modeErr = errors.New("no display")
	if mode := c.DisplayMode(); mode != (DisplayMode{}) {
		t.Errorf("mode after failure = %+v, want zero", mode)
	}
}

func TestCanvasClearPresent(t *testing.T) {
	c, b := newTestCanvas(t)

	c.Clear(RGB(10, 20, 30))
	if len(b.clears) != 1 || b.clears[0] != RGB(10, 20, 30) {
		t.Errorf("clears = %v", b.clears)
	}
	c.Present()
	if b.presents != 1 {
		t.Errorf("presents = %d, want 1", b.presents)
	}

	// Backend failures are absorbed, not propagated.
	b.clearErr = errors.New("lost context")
	b.presentErr = errors.New("lost context")
	c.Clear(Black)
	c.Present()
	if len(b.clears) != 1 || b.presents != 1 {
		t.Error("failed clear/present recorded traffic")
	}
}

func TestCanvasDrawTexture(t *testing.T) {
	c, b := newTestCanvas(t)
	tex, err := NewTexture(c, make([]byte, 64*64*4), 64, 64, true)
	if err != nil {
		t.Fatal(err)
	}

	c.Draw(tex, FromTranslation(V2(100, 100)))
	if len(b.draws) != 1 {
		t.Fatalf("draws = %d, want 1", len(b.draws))
	}
	d := b.draws[0]
	if d.id != TextureID(1) {
		t.Errorf("draw texture = %d", d.id)
	}
	wantPos := []Vec2{{100, 100}, {164, 100}, {100, 164}, {164, 164}}
	for i, want := range wantPos {
		if !vecApproxEq(d.verts[i].Pos, want) {
			t.Errorf("vert %d pos = %v, want %v", i, d.verts[i].Pos, want)
		}
	}
	if len(d.indices) != 6 {
		t.Errorf("indices = %v", d.indices)
	}
}

func TestCanvasDrawSlice(t *testing.T) {
	c, b := newTestCanvas(t)
	tex, err := NewTexture(c, make([]byte, 64*64*4), 64, 64, true)
	if err != nil {
		t.Fatal(err)
	}

	c.Draw(tex.Slice(R(0, 0, 32, 32)), FromTranslation(V2(100, 100)))
	if len(b.draws) != 1 {
		t.Fatalf("draws = %d, want 1", len(b.draws))
	}
	d := b.draws[0]
	// The slice spans its own pixel size, sampling the sub-rectangle.
	wantPos := []Vec2{{100, 100}, {132, 100}, {100, 132}, {132, 132}}
	wantUV := []Vec2{{0, 0}, {0.5, 0}, {0, 0.5}, {0.5, 0.5}}
	for i := range wantPos {
		if !vecApproxEq(d.verts[i].Pos, wantPos[i]) {
			t.Errorf("vert %d pos = %v, want %v", i, d.verts[i].Pos, wantPos[i])
		}
		if !vecApproxEq(d.verts[i].UV, wantUV[i]) {
			t.Errorf("vert %d uv = %v, want %v", i, d.verts[i].UV, wantUV[i])
		}
	}
}

func TestCanvasDrawPlaceholder(t *testing.T) {
	c, b := newTestCanvas(t)

	c.Draw(Texture{}, Identity())
	c.Draw(Texture{}.Slice(R(0, 0, 8, 8)), Identity())
	if len(b.draws) != 0 {
		t.Errorf("placeholder produced %d draws", len(b.draws))
	}
}

func TestCanvasDrawReleasedTexture(t *testing.T) {
	c, b := newTestCanvas(t)
	tex, err := NewTexture(c, make([]byte, 4), 1, 1, true)
	if err != nil {
		t.Fatal(err)
	}
	tex.Release()

	c.Draw(tex, Identity())
	if len(b.draws) != 0 {
		t.Errorf("stale texture produced %d draws", len(b.draws))
	}
}

func TestCanvasDrawForeignTexture(t *testing.T) {
	c1, _ := newTestCanvas(t)
	c2, b2 := newTestCanvas(t)
	tex, err := NewTexture(c1, make([]byte, 4), 1, 1, true)
	if err != nil {
		t.Fatal(err)
	}

	c2.Draw(tex, Identity())
	if len(b2.draws) != 0 {
		t.Errorf("foreign texture produced %d draws", len(b2.draws))
	}
}

func TestCanvasDrawGeometryDirect(t *testing.T) {
	c, b := newTestCanvas(t)

	verts := []Vertex{Vtx(V2(0, 0), V2(0, 0)), Vtx(V2(1, 0), V2(1, 0)), Vtx(V2(0, 1), V2(0, 1))}
	c.DrawGeometry(TextureID(1), verts, nil)
	if len(b.draws) != 1 {
		t.Fatalf("draws = %d, want 1", len(b.draws))
	}
	c.DrawGeometry(TextureID(1), nil, nil)
	if len(b.draws) != 1 {
		t.Error("empty vertex list reached the backend")
	}
}

func TestPollEventsTranslation(t *testing.T) {
	c, _ := newTestCanvas(t)
	st := input.NewState()

	c.backend.(*fakeBackend).push(
		KeyDownEvent{Key: input.KeySpace},
		KeyDownEvent{Key: input.KeySpace, Repeat: true},
		KeyDownEvent{Key: input.KeyA},
		KeyUpEvent{Key: input.KeyA},
	)
	if !c.PollEvents(st) {
		t.Fatal("PollEvents = false without a quit event")
	}

	if !st.IsDown(input.KeySpace) || !st.IsPressed(input.KeySpace) {
		t.Error("space not held+pressed")
	}
	if st.IsDown(input.KeyA) {
		t.Error("released key still held")
	}
	if !st.IsPressed(input.KeyA) {
		t.Error("press+release within the frame lost the pressed bit")
	}
	if got := len(st.PressedKeys()); got != 2 {
		t.Errorf("pressed keys = %d, want 2", got)
	}
}

func TestPollEventsQuitDrainsQueue(t *testing.T) {
	c, _ := newTestCanvas(t)
	st := input.NewState()

	c.backend.(*fakeBackend).push(
		KeyDownEvent{Key: input.KeyEscape},
		QuitEvent{},
		KeyDownEvent{Key: input.KeyEnter},
	)
	if c.PollEvents(st) {
		t.Fatal("PollEvents = true despite quit event")
	}
	// Events after the quit are still delivered.
	if !st.IsPressed(input.KeyEnter) {
		t.Error("event after quit was dropped")
	}
}

func TestCanvasCloseIdempotent(t *testing.T) {
	c, b := newTestCanvas(t)

	c.Close()
	c.Close()
	if !c.Closed() {
		t.Error("Closed() = false after Close")
	}
	if !b.closed {
		t.Error("backend not closed")
	}

	// Everything degrades to a no-op on a closed canvas.
	c.Clear(Black)
	c.Present()
	c.SetWindowTitle("late")
	if c.SetVSync(true) {
		t.Error("SetVSync succeeded on a closed canvas")
	}
	if c.PollEvents(input.NewState()) {
		t.Error("PollEvents = true on a closed canvas")
	}
	if len(b.clears) != 0 || b.presents != 0 {
		t.Error("closed canvas reached the backend")
	}
}
