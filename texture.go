package quad

import (
	"bytes"
	"fmt"
	"image"
	"os"

	// Codecs the convenience loader understands.
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"

	xdraw "golang.org/x/image/draw"

	"github.com/gogpu/gputypes"
)

// ScaleMode selects the texture filtering used when a texture is drawn at a
// size other than its own.
type ScaleMode int

const (
	// ScaleModeNearest picks the nearest texel (crisp pixel art).
	ScaleModeNearest ScaleMode = iota
	// ScaleModeLinear interpolates between texels (smooth scaling).
	ScaleModeLinear
)

// String returns the scale mode name.
func (m ScaleMode) String() string {
	switch m {
	case ScaleModeNearest:
		return "nearest"
	case ScaleModeLinear:
		return "linear"
	default:
		return "unknown"
	}
}

// Drawable is anything the canvas can turn into textured-quad geometry.
// The set of drawables is closed: exactly [Texture] and [TextureSlice]
// implement it.
type Drawable interface {
	// sealed restricts implementations to this package.
	sealed()
}

// Texture is a lightweight handle to a GPU image resource.
//
// Multiple Texture values may share one underlying resource (see [Texture.Clone]
// and [Texture.WithOrigin]); the resource lives until its last referencing
// handle is released, or until the canvas shuts down, whichever comes first.
// The canvas's resource arena guarantees the backend texture is destroyed
// exactly once, and never after the rendering context is gone.
//
// The zero Texture is the empty placeholder: 0x0, null handle, drawing it is
// a no-op.
type Texture struct {
	canvas *Canvas
	handle resourceHandle
	// origin is the normalized pivot in [0,1]^2 used when drawing.
	// Zero means top-left.
	origin Vec2
	width  int32
	height int32
}

func (Texture) sealed() {}

// LoadTexture reads, decodes and uploads the image at path.
//
// On failure it logs a warning and returns the empty placeholder texture, so
// draw calls remain well-defined. Use [LoadTextureErr] when the caller needs
// the error.
func LoadTexture(c *Canvas, path string) Texture {
	tex, err := LoadTextureErr(c, path)
	if err != nil {
		Logger().Warn("texture load failed, using empty placeholder",
			"path", path, "error", err)
		return Texture{}
	}
	return tex
}

// LoadTextureErr reads, decodes and uploads the image at path.
//
// The returned error wraps exactly one of [ErrTextureIO], [ErrTextureDecode]
// or [ErrTextureCreate].
func LoadTextureErr(c *Canvas, path string) (Texture, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return Texture{}, fmt.Errorf("%w: %w", ErrTextureIO, err)
	}

	img, _, err := image.Decode(bytes.NewReader(raw))
	if err != nil {
		return Texture{}, fmt.Errorf("%w: %w", ErrTextureDecode, err)
	}

	return fromImage(c, img)
}

// NewTexture uploads raw pixels, bypassing file I/O and decoding.
//
// When hasAlpha is true, pix holds w*h RGBA pixels (4 bytes each); otherwise
// w*h RGB pixels (3 bytes each), which are expanded to opaque RGBA before
// upload. Errors wrap [ErrTextureCreate].
func NewTexture(c *Canvas, pix []byte, w, h int, hasAlpha bool) (Texture, error) {
	if w <= 0 || h <= 0 {
		return Texture{}, fmt.Errorf("%w: invalid size %dx%d", ErrTextureCreate, w, h)
	}
	bpp := 4
	if !hasAlpha {
		bpp = 3
	}
	if len(pix) < w*h*bpp {
		return Texture{}, fmt.Errorf("%w: pixel buffer too short: %d < %d",
			ErrTextureCreate, len(pix), w*h*bpp)
	}

	rgba := pix
	if !hasAlpha {
		rgba = make([]byte, w*h*4)
		for i := 0; i < w*h; i++ {
			rgba[i*4+0] = pix[i*3+0]
			rgba[i*4+1] = pix[i*3+1]
			rgba[i*4+2] = pix[i*3+2]
			rgba[i*4+3] = 0xff
		}
	}

	return c.uploadTexture(rgba, int32(w), int32(h))
}

// fromImage converts a decoded image to tightly packed RGBA and uploads it.
func fromImage(c *Canvas, img image.Image) (Texture, error) {
	b := img.Bounds()
	w, h := b.Dx(), b.Dy()

	nrgba, ok := img.(*image.NRGBA)
	if !ok || nrgba.Stride != w*4 || b.Min != (image.Point{}) {
		nrgba = image.NewNRGBA(image.Rect(0, 0, w, h))
		xdraw.Draw(nrgba, nrgba.Bounds(), img, b.Min, xdraw.Src)
	}

	return c.uploadTexture(nrgba.Pix, int32(w), int32(h))
}

// uploadTexture hands pixels to the backend and registers the resource in
// the canvas arena.
func (c *Canvas) uploadTexture(rgba []byte, w, h int32) (Texture, error) {
	if c == nil || c.closed {
		return Texture{}, fmt.Errorf("%w: %w", ErrTextureCreate, ErrCanvasClosed)
	}

	id, err := c.backend.CreateTexture(rgba, w, h, gputypes.TextureFormatRGBA8Unorm, c.scaleMode)
	if err != nil {
		return Texture{}, fmt.Errorf("%w: %w", ErrTextureCreate, err)
	}

	handle := c.arena.insert(id)
	Logger().Debug("texture created", "id", uint64(id), "size", fmt.Sprintf("%dx%d", w, h))
	return Texture{canvas: c, handle: handle, width: w, height: h}, nil
}

// Zero reports whether t is the empty placeholder texture.
func (t Texture) Zero() bool {
	return t.handle.zero()
}

// Width returns the resource width in pixels.
func (t Texture) Width() int32 { return t.width }

// Height returns the resource height in pixels.
func (t Texture) Height() int32 { return t.height }

// Origin returns the normalized pivot used when drawing.
func (t Texture) Origin() Vec2 { return t.origin }

// WithOrigin returns a copy sharing the same underlying resource with a
// different pivot. The origin is normalized: {0.5, 0.5} pivots around the
// center, {1, 1} around the bottom-right corner. It does not affect stored
// pixels, only the draw-time offset.
//
// The copy is a view, not an owner: it adds no reference. Use [Texture.Clone]
// when the copy must outlive the original.
func (t Texture) WithOrigin(origin Vec2) Texture {
	t.origin = origin
	return t
}

// Clone returns a copy sharing the underlying resource and adds a reference
// to it. The resource now lives until both the original and the clone are
// released.
func (t Texture) Clone() Texture {
	if t.canvas != nil && !t.canvas.closed {
		t.canvas.arena.retain(t.handle)
	}
	return t
}

// Release drops this handle's reference. When the last reference goes, the
// backend texture is destroyed. After the canvas has been closed Release is
// a no-op: the arena already disposed the resource before teardown.
func (t Texture) Release() {
	if t.canvas == nil || t.canvas.closed {
		return
	}
	if id, last := t.canvas.arena.release(t.handle); last {
		t.canvas.backend.DestroyTexture(id)
		Logger().Debug("texture destroyed", "id", uint64(id))
	}
}

// Slice returns a lightweight view of a sub-rectangle of the texture,
// sharing the underlying resource and the texture's origin.
//
// rect is expressed in the texture's pixel space. A rect reaching outside
// the texture bounds is clamped and the clamping logged, so the resulting
// UVs always stay in range. Slices cannot be sliced again; take further
// slices from the parent texture.
func (t Texture) Slice(rect Rect) TextureSlice {
	clamped, changed := rect.clampTo(t.width, t.height)
	if changed {
		Logger().Warn("texture slice out of bounds, clamped",
			"rect", rect, "size", fmt.Sprintf("%dx%d", t.width, t.height))
	}
	return TextureSlice{tex: t, rect: clamped}
}

// TextureSlice is a view of a sub-rectangle of a Texture.
// It shares the texture's underlying resource and origin.
type TextureSlice struct {
	tex  Texture
	rect Rect
}

func (TextureSlice) sealed() {}

// Width returns the slice width in pixels.
func (s TextureSlice) Width() int32 { return s.rect.W }

// Height returns the slice height in pixels.
func (s TextureSlice) Height() int32 { return s.rect.H }

// Rect returns the slice rectangle in the parent texture's pixel space.
func (s TextureSlice) Rect() Rect { return s.rect }

// Texture returns the parent texture.
func (s TextureSlice) Texture() Texture { return s.tex }

// geometry converts a drawable into its four vertices plus the resource it
// samples. ok is false for placeholder or stale resources, which draw as
// no-ops.
func drawableGeometry(d Drawable, t Transform) (verts [4]Vertex, id TextureID, canvas *Canvas, ok bool) {
	switch v := d.(type) {
	case Texture:
		if v.Zero() || v.canvas == nil {
			return verts, InvalidTexture, nil, false
		}
		id, found := v.canvas.arena.lookup(v.handle)
		if !found {
			return verts, InvalidTexture, nil, false
		}
		size := V2(float32(v.width), float32(v.height))
		verts = quadVertices(t, size, v.origin, Vec2{}, V2(1, 1))
		return verts, id, v.canvas, true

	case TextureSlice:
		parent := v.tex
		if parent.Zero() || parent.canvas == nil || v.rect.Empty() {
			return verts, InvalidTexture, nil, false
		}
		id, found := parent.canvas.arena.lookup(parent.handle)
		if !found {
			return verts, InvalidTexture, nil, false
		}
		size := V2(float32(v.rect.W), float32(v.rect.H))
		resW := float32(parent.width)
		resH := float32(parent.height)
		uvMin := V2(float32(v.rect.X)/resW, float32(v.rect.Y)/resH)
		uvMax := V2(float32(v.rect.X+v.rect.W)/resW, float32(v.rect.Y+v.rect.H)/resH)
		verts = quadVertices(t, size, parent.origin, uvMin, uvMax)
		return verts, id, parent.canvas, true

	default:
		// Drawable is sealed; no other implementations exist.
		return verts, InvalidTexture, nil, false
	}
}
