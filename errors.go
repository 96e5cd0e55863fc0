package quad

import "errors"

// Common errors returned by quad operations.
var (
	// ErrBackendInit is returned when window or renderer creation fails.
	// It is fatal: Run reports it and never enters the running state.
	ErrBackendInit = errors.New("quad: backend initialization failed")

	// ErrNoBackend is returned when no rendering backend is registered.
	ErrNoBackend = errors.New("quad: no backend registered")

	// ErrCanvasClosed is returned when operations are attempted on a
	// closed canvas.
	ErrCanvasClosed = errors.New("quad: canvas is closed")
)

// Texture load errors. LoadTextureErr wraps exactly one of these, so callers
// can distinguish the failure stage with errors.Is.
var (
	// ErrTextureIO is returned when the image file cannot be read.
	ErrTextureIO = errors.New("quad: texture file read failed")

	// ErrTextureDecode is returned when the image bytes cannot be decoded.
	ErrTextureDecode = errors.New("quad: texture decode failed")

	// ErrTextureCreate is returned when the backend rejects the upload.
	ErrTextureCreate = errors.New("quad: backend texture creation failed")
)
