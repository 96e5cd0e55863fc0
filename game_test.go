package quad

import (
	"errors"
	"testing"
	"time"

	"github.com/gogpu/quad/input"
)

func TestFramerateBudget(t *testing.T) {
	tests := []struct {
		name    string
		f       Framerate
		refresh uint32
		want    time.Duration
	}{
		{"multiplier 1 at 60Hz", FramerateMultiplier(1), 60, time.Second / 60},
		{"multiplier 2 at 60Hz", FramerateMultiplier(2), 60, time.Second / 120},
		{"multiplier 0.5 at 60Hz", FramerateMultiplier(0.5), 60, time.Second / 30},
		{"multiplier at 144Hz", FramerateMultiplier(1), 144, time.Second / 144},
		{"multiplier with unknown refresh", FramerateMultiplier(1), 0, time.Second / 60},
		{"zero multiplier", FramerateMultiplier(0), 60, 0},
		{"exact 240", FramerateExact(240), 60, time.Second / 240},
		{"exact ignores refresh", FramerateExact(30), 144, time.Second / 30},
		{"exact 0", FramerateExact(0), 60, 0},
		{"unlimited", FramerateUnlimited(), 60, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.f.budget(tt.refresh); got != tt.want {
				t.Errorf("budget(%d) = %v, want %v", tt.refresh, got, tt.want)
			}
		})
	}
}

func TestRunQuitFromCallback(t *testing.T) {
	b := newFakeBackend()
	frames := 0

	err := Run("test", func(ctx *Context) {
		frames++
		if frames == 3 {
			ctx.Quit()
		}
	}, WithBackend(b), WithFramerate(FramerateUnlimited()))

	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if frames != 3 {
		t.Errorf("frames = %d, want 3", frames)
	}
	// The quitting frame is still presented.
	if b.presents != 3 {
		t.Errorf("presents = %d, want 3", b.presents)
	}
	if !b.closed {
		t.Error("backend not closed after Run")
	}
}

func TestRunQuitEvent(t *testing.T) {
	b := newFakeBackend()
	b.push(QuitEvent{})
	frames := 0

	err := Run("test", func(ctx *Context) {
		frames++
	}, WithBackend(b), WithFramerate(FramerateUnlimited()))

	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	// The iteration that observed the quit completes in full.
	if frames != 1 || b.presents != 1 {
		t.Errorf("frames = %d, presents = %d; want 1, 1", frames, b.presents)
	}
}

func TestRunWindowLifecycle(t *testing.T) {
	b := newFakeBackend()

	err := Run("lifecycle", func(ctx *Context) {
		// The window is visible by the time the callback runs.
		if !b.shown {
			t.Error("window hidden during update")
		}
		ctx.Quit()
	}, WithBackend(b), WithFramerate(FramerateUnlimited()))
	if err != nil {
		t.Fatalf("Run: %v", err)
	}

	if b.window.Title != "lifecycle" {
		t.Errorf("title = %q", b.window.Title)
	}
	if b.window.Width != 800 || b.window.Height != 600 {
		t.Errorf("default size = %dx%d, want 800x600", b.window.Width, b.window.Height)
	}
	if !b.window.Resizable {
		t.Error("window not resizable by default")
	}
	if !b.window.Hidden {
		t.Error("window not created hidden")
	}
}

func TestRunOptions(t *testing.T) {
	b := newFakeBackend()

	err := Run("opts", func(ctx *Context) {
		ctx.Quit()
	},
		WithBackend(b),
		WithWindowSize(1280, 720),
		WithResizable(false),
		WithVSync(true),
		WithViewport(NewViewport(320, 180).Integer()),
		WithScaleMode(ScaleModeLinear),
		WithFramerate(FramerateUnlimited()),
	)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}

	if b.window.Width != 1280 || b.window.Height != 720 {
		t.Errorf("size = %dx%d", b.window.Width, b.window.Height)
	}
	if b.window.Resizable {
		t.Error("resizable not disabled")
	}
	if !b.vsync {
		t.Error("vsync not applied")
	}
	if b.logicalW != 320 || b.logicalH != 180 || !b.integer {
		t.Errorf("logical size = %dx%d integer=%v", b.logicalW, b.logicalH, b.integer)
	}
}

func TestRunContext(t *testing.T) {
	b := newFakeBackend()
	b.push(KeyDownEvent{Key: input.KeySpace})
	var deltas []time.Duration

	frames := 0
	err := Run("ctx", func(ctx *Context) {
		frames++
		deltas = append(deltas, ctx.DeltaTime())
		if ctx.Canvas() == nil {
			t.Error("nil canvas in context")
		}
		switch frames {
		case 1:
			if !ctx.Input().IsPressed(input.KeySpace) {
				t.Error("key press not visible in frame 1")
			}
		case 2:
			// The per-frame set was cleared after frame 1.
			if ctx.Input().IsPressed(input.KeySpace) {
				t.Error("pressed bit survived into frame 2")
			}
			if !ctx.Input().IsDown(input.KeySpace) {
				t.Error("held key dropped between frames")
			}
			ctx.Quit()
		}
	}, WithBackend(b), WithFramerate(FramerateUnlimited()))
	if err != nil {
		t.Fatalf("Run: %v", err)
	}

	if len(deltas) != 2 {
		t.Fatalf("frames = %d, want 2", len(deltas))
	}
	if deltas[0] != 0 {
		t.Errorf("first frame delta = %v, want 0", deltas[0])
	}
}

func TestRunNoBackend(t *testing.T) {
	// The registry is empty in this test binary: no backend package is
	// imported and none was injected.
	err := Run("none", func(ctx *Context) {
		t.Error("callback ran without a backend")
		ctx.Quit()
	})
	if !errors.Is(err, ErrNoBackend) {
		t.Errorf("err = %v, want ErrNoBackend", err)
	}
}

func TestRunBackendInitFailure(t *testing.T) {
	b := newFakeBackend()
	b.windowErr = errors.New("no display server")

	err := Run("fail", func(ctx *Context) {
		t.Error("callback ran despite init failure")
		ctx.Quit()
	}, WithBackend(b))
	if !errors.Is(err, ErrBackendInit) {
		t.Errorf("err = %v, want ErrBackendInit", err)
	}
}

func TestRunPacing(t *testing.T) {
	b := newFakeBackend()
	frames := 0
	start := time.Now()

	err := Run("paced", func(ctx *Context) {
		frames++
		if frames == 3 {
			ctx.Quit()
		}
	}, WithBackend(b), WithFramerate(FramerateExact(100)))
	if err != nil {
		t.Fatalf("Run: %v", err)
	}

	// Three frames at 10ms each: at least the first two full budgets
	// must have been slept off.
	if elapsed := time.Since(start); elapsed < 20*time.Millisecond {
		t.Errorf("3 frames at 100fps took %v, want >= 20ms", elapsed)
	}
}
