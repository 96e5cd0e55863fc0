package quad

// Option configures the game loop during [Run].
//
// Example:
//
//	quad.Run("pond", update,
//	    quad.WithWindowSize(1280, 720),
//	    quad.WithViewport(quad.NewViewport(320, 180).Integer()),
//	    quad.WithFramerate(quad.FramerateExact(60)),
//	)
type Option func(*config)

// config holds the resolved loop configuration.
type config struct {
	title     string
	width     uint32
	height    uint32
	resizable bool
	vsync     bool
	scaleMode ScaleMode
	framerate Framerate
	viewport  *Viewport
	backend   Backend
}

// defaultConfig returns the default loop configuration: an 800x600
// resizable window, nearest filtering, no vsync, paced to the display
// refresh rate.
func defaultConfig(title string) config {
	return config{
		title:     title,
		width:     800,
		height:    600,
		resizable: true,
		scaleMode: ScaleModeNearest,
		framerate: FramerateMultiplier(1),
	}
}

// WithWindowSize sets the initial window size in pixels.
func WithWindowSize(width, height uint32) Option {
	return func(c *config) {
		c.width = width
		c.height = height
	}
}

// WithResizable controls whether the user can resize the window.
func WithResizable(resizable bool) Option {
	return func(c *config) {
		c.resizable = resizable
	}
}

// WithVSync requests vertical sync. The request is best-effort: backends
// that cannot honor it log a warning and continue without.
func WithVSync(vsync bool) Option {
	return func(c *config) {
		c.vsync = vsync
	}
}

// WithScaleMode sets the default texture filtering.
func WithScaleMode(mode ScaleMode) Option {
	return func(c *config) {
		c.scaleMode = mode
	}
}

// WithFramerate sets the frame-pacing policy.
func WithFramerate(f Framerate) Option {
	return func(c *config) {
		c.framerate = f
	}
}

// WithViewport declares a logical coordinate space for drawing, decoupled
// from the window size.
func WithViewport(v Viewport) Option {
	return func(c *config) {
		c.viewport = &v
	}
}

// WithBackend injects a backend instance, bypassing the registry.
// Use this for dependency injection of custom or test backends.
func WithBackend(b Backend) Option {
	return func(c *config) {
		c.backend = b
	}
}
