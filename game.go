package quad

import (
	"time"

	"github.com/gogpu/quad/input"
)

// FramerateMode selects how the frame-time budget is derived.
type FramerateMode int

const (
	// FramerateModeMultiplier paces relative to the display refresh rate.
	FramerateModeMultiplier FramerateMode = iota
	// FramerateModeExact paces to a fixed frames-per-second target.
	FramerateModeExact
	// FramerateModeUnlimited runs with no pacing sleep at all.
	FramerateModeUnlimited
)

// Framerate is the frame-pacing policy applied by the loop.
type Framerate struct {
	mode       FramerateMode
	multiplier float32
	fps        uint32
}

// FramerateMultiplier paces the loop to m times the display refresh rate.
// When the display reports an unknown (zero) refresh rate, 60 Hz is assumed.
func FramerateMultiplier(m float32) Framerate {
	return Framerate{mode: FramerateModeMultiplier, multiplier: m}
}

// FramerateExact paces the loop to a fixed frames-per-second target.
func FramerateExact(fps uint32) Framerate {
	return Framerate{mode: FramerateModeExact, fps: fps}
}

// FramerateUnlimited disables pacing: the loop never sleeps.
func FramerateUnlimited() Framerate {
	return Framerate{mode: FramerateModeUnlimited}
}

// budget computes the per-frame time budget for the given display refresh
// rate. A zero budget means no sleep.
func (f Framerate) budget(refresh uint32) time.Duration {
	switch f.mode {
	case FramerateModeMultiplier:
		if refresh == 0 {
			refresh = 60
		}
		target := f.multiplier * float32(refresh)
		if target <= 0 {
			return 0
		}
		return time.Duration(float64(time.Second) / float64(target))
	case FramerateModeExact:
		if f.fps == 0 {
			return 0
		}
		return time.Duration(uint64(time.Second) / uint64(f.fps))
	default:
		return 0
	}
}

// loopState tracks the loop's lifecycle. A terminated loop cannot be
// resumed; a fresh Run reconstructs the canvas.
type loopState int

const (
	stateUninitialized loopState = iota
	stateInitializing
	stateRunning
	stateTerminated
)

// Context is what an update callback gets to work with: the canvas, the
// keyboard state, and the time the previous frame took. It is valid only
// for the duration of the callback's loop.
type Context struct {
	canvas *Canvas
	keys   *input.State
	delta  time.Duration
	quit   bool
}

// Canvas returns the active canvas.
func (ctx *Context) Canvas() *Canvas { return ctx.canvas }

// Input returns the keyboard state for this frame.
func (ctx *Context) Input() *input.State { return ctx.keys }

// DeltaTime returns the wall-clock duration of the previous loop
// iteration. It is zero on the first frame.
func (ctx *Context) DeltaTime() time.Duration { return ctx.delta }

// Quit asks the loop to terminate. Like a window-close event it takes
// effect at the end of the current iteration: the frame in flight is still
// presented.
func (ctx *Context) Quit() { ctx.quit = true }

// Run creates a window, then drives the game loop: poll events, call
// update, present, clear single-frame input, sleep off the remaining frame
// budget. It returns when a quit event is observed or [Context.Quit] was
// called, after the in-flight iteration has completed, or immediately with
// an error when backend initialization fails (wrapping [ErrBackendInit]).
func Run(title string, update func(*Context), opts ...Option) error {
	cfg := defaultConfig(title)
	for _, opt := range opts {
		opt(&cfg)
	}
	return run(cfg, update)
}

func run(cfg config, update func(*Context)) error {
	state := stateInitializing

	backend := cfg.backend
	if backend == nil {
		backend = DefaultBackend()
	}
	if backend == nil {
		return ErrNoBackend
	}

	// The window stays hidden until configuration has been applied.
	canvas, err := CreateCanvas(backend, WindowConfig{
		Title:     cfg.title,
		Width:     cfg.width,
		Height:    cfg.height,
		Resizable: cfg.resizable,
		Hidden:    true,
	})
	if err != nil {
		return err
	}
	defer canvas.Close()

	canvas.SetScaleMode(cfg.scaleMode)
	if cfg.viewport != nil {
		canvas.SetViewport(*cfg.viewport)
	}
	canvas.SetVSync(cfg.vsync)

	mode := canvas.DisplayMode()
	budget := cfg.framerate.budget(mode.RefreshRate)
	Logger().Info("entering game loop",
		"renderer", mode.Renderer, "refresh", mode.RefreshRate, "budget", budget)

	canvas.showWindow()
	state = stateRunning

	keys := input.NewState()
	ctx := &Context{canvas: canvas, keys: keys}
	var prev time.Time

	for state == stateRunning {
		frameStart := time.Now()
		// Zero on the first frame, wall-clock frame time afterwards.
		if !prev.IsZero() {
			ctx.delta = frameStart.Sub(prev)
		}
		prev = frameStart

		// A quit only takes effect at the end of the iteration: the
		// frame in flight is still updated, presented and cleared.
		cont := canvas.PollEvents(keys)

		update(ctx)
		canvas.Present()
		keys.Clear()

		if elapsed := time.Since(frameStart); budget > elapsed {
			time.Sleep(budget - elapsed)
		}

		if !cont || ctx.quit {
			state = stateTerminated
		}
	}

	return nil
}
