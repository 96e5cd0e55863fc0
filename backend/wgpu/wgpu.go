// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package wgpu

import (
	"fmt"

	"github.com/gogpu/gpucontext"
	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal"

	// Import Vulkan backend so it registers via init().
	_ "github.com/gogpu/wgpu/hal/vulkan"

	"github.com/gogpu/quad"
)

// Name is the backend identifier.
const Name = "wgpu"

// Presenter receives the finished frame each Present. The pixels are
// tightly packed RGBA8 rows; the slice is reused between frames and must
// not be retained.
//
// The host owns the actual window surface (if any). A nil presenter is
// valid: frames are still rendered and read back, then dropped.
type Presenter interface {
	PresentFrame(pix []byte, width, height uint32) error
}

// Option configures a Backend.
type Option func(*Backend)

// WithDevice makes the backend use a shared GPU device from the host
// instead of opening its own. The provider must additionally expose
// HalDevice() any and HalQueue() any returning hal.Device and hal.Queue.
func WithDevice(provider gpucontext.DeviceProvider) Option {
	return func(b *Backend) { b.provider = provider }
}

// WithPresenter sets the frame sink.
func WithPresenter(p Presenter) Option {
	return func(b *Backend) { b.presenter = p }
}

// WithDisplayMode overrides the reported display mode.
func WithDisplayMode(mode quad.DisplayMode) Option {
	return func(b *Backend) { b.mode = mode }
}

// Register registers the backend factory under "wgpu". Unlike the headless
// backend this does not happen on import; GPU device creation is deliberate.
func Register(opts ...Option) {
	quad.RegisterBackend(Name, func() quad.Backend {
		return New(opts...)
	})
}

// Backend renders quads through wgpu/hal into an offscreen RGBA8 target.
// The GPU device is opened lazily in CreateWindow.
type Backend struct {
	provider  gpucontext.DeviceProvider
	presenter Presenter

	instance   hal.Instance
	device     hal.Device
	queue      hal.Queue
	ownsDevice bool

	pipeline quadPipeline
	target   frameTarget

	window  quad.WindowConfig
	created bool
	shown   bool
	vsync   bool
	mode    quad.DisplayMode
	logical [2]uint32
	integer bool

	nextID   quad.TextureID
	textures map[quad.TextureID]*gpuTexture

	clearColor quad.Color
	batch      frameBatch
	framePix   []byte

	events []quad.Event
}

var _ quad.Backend = (*Backend)(nil)

// New creates a wgpu backend. No GPU resources are allocated until
// CreateWindow.
func New(opts ...Option) *Backend {
	b := &Backend{
		nextID:   1,
		textures: make(map[quad.TextureID]*gpuTexture),
		mode: quad.DisplayMode{
			Width:       800,
			Height:      600,
			RefreshRate: 60,
			Renderer:    Name,
		},
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// Push queues an event for the next PollEvent drain. The host's window
// layer calls this from its event pump.
func (b *Backend) Push(ev quad.Event) { b.events = append(b.events, ev) }

// Name returns the backend identifier.
func (b *Backend) Name() string { return Name }

// CreateWindow opens the GPU device and builds the quad pipeline. The
// window itself lives with the host; only its configuration is tracked.
func (b *Backend) CreateWindow(cfg quad.WindowConfig) error {
	if b.created {
		return fmt.Errorf("wgpu: window already created")
	}
	if err := b.initGPU(); err != nil {
		return fmt.Errorf("wgpu: init device: %w", err)
	}
	if err := b.pipeline.create(b.device); err != nil {
		b.closeDevice()
		return fmt.Errorf("wgpu: create pipeline: %w", err)
	}
	b.window = cfg
	b.created = true
	b.shown = !cfg.Hidden
	return nil
}

// initGPU acquires a device: shared from the provider when one was given,
// otherwise a freshly opened Vulkan device.
func (b *Backend) initGPU() error {
	if b.provider != nil {
		type halProvider interface {
			HalDevice() any
			HalQueue() any
		}
		hp, ok := b.provider.(halProvider)
		if !ok {
			return fmt.Errorf("device provider does not expose HAL types")
		}
		device, ok := hp.HalDevice().(hal.Device)
		if !ok || device == nil {
			return fmt.Errorf("provider HalDevice is not hal.Device")
		}
		queue, ok := hp.HalQueue().(hal.Queue)
		if !ok || queue == nil {
			return fmt.Errorf("provider HalQueue is not hal.Queue")
		}
		b.device = device
		b.queue = queue
		b.ownsDevice = false
		return nil
	}

	backend, ok := hal.GetBackend(gputypes.BackendVulkan)
	if !ok {
		return fmt.Errorf("vulkan backend not available")
	}
	instance, err := backend.CreateInstance(&hal.InstanceDescriptor{Flags: 0})
	if err != nil {
		return fmt.Errorf("create instance: %w", err)
	}
	b.instance = instance
	adapters := instance.EnumerateAdapters(nil)
	if len(adapters) == 0 {
		instance.Destroy()
		b.instance = nil
		return fmt.Errorf("no GPU adapters found")
	}
	var selected *hal.ExposedAdapter
	for i := range adapters {
		if adapters[i].Info.DeviceType == gputypes.DeviceTypeDiscreteGPU ||
			adapters[i].Info.DeviceType == gputypes.DeviceTypeIntegratedGPU {
			selected = &adapters[i]
			break
		}
	}
	if selected == nil {
		selected = &adapters[0]
	}
	openDev, err := selected.Adapter.Open(gputypes.Features(0), gputypes.DefaultLimits())
	if err != nil {
		instance.Destroy()
		b.instance = nil
		return fmt.Errorf("open device: %w", err)
	}
	b.device = openDev.Device
	b.queue = openDev.Queue
	b.ownsDevice = true
	return nil
}

// SetWindowTitle records the new title.
func (b *Backend) SetWindowTitle(title string) { b.window.Title = title }

// SetWindowSize records the new size. Without a logical size mapping the
// render target follows the window.
func (b *Backend) SetWindowSize(width, height uint32) {
	b.window.Width = width
	b.window.Height = height
}

// ShowWindow marks the window visible.
func (b *Backend) ShowWindow() { b.shown = true }

// SetLogicalSize sizes the render target to the logical resolution. The
// scale to the window happens at present time in the host, so the integer
// flag only travels along to the presenter side.
func (b *Backend) SetLogicalSize(width, height uint32, integer bool) error {
	if width == 0 || height == 0 {
		return fmt.Errorf("wgpu: invalid logical size %dx%d", width, height)
	}
	b.logical = [2]uint32{width, height}
	b.integer = integer
	return nil
}

// SetVSync records the vsync request. Pacing against the display is the
// host surface's concern; there is no swapchain here to reconfigure.
func (b *Backend) SetVSync(enabled bool) error {
	b.vsync = enabled
	return nil
}

// DisplayMode returns the configured display mode.
func (b *Backend) DisplayMode() (quad.DisplayMode, error) {
	if !b.created {
		return quad.DisplayMode{}, fmt.Errorf("wgpu: no window")
	}
	return b.mode, nil
}

// Clear sets the pass clear color for the current frame.
func (b *Backend) Clear(c quad.Color) error {
	b.clearColor = c
	return nil
}

// DrawGeometry appends a textured triangle list to the frame batch.
func (b *Backend) DrawGeometry(id quad.TextureID, verts []quad.Vertex, indices []uint16) error {
	if _, ok := b.textures[id]; !ok {
		return fmt.Errorf("wgpu: unknown texture %d", id)
	}
	b.batch.add(id, verts, indices)
	return nil
}

// PollEvent pops the oldest host-injected event.
func (b *Backend) PollEvent() (quad.Event, bool) {
	if len(b.events) == 0 {
		return nil, false
	}
	ev := b.events[0]
	b.events = b.events[1:]
	return ev, true
}

// targetSize returns the render target resolution for the current frame.
func (b *Backend) targetSize() (uint32, uint32) {
	if b.logical[0] != 0 && b.logical[1] != 0 {
		return b.logical[0], b.logical[1]
	}
	return b.window.Width, b.window.Height
}

// Close releases every GPU resource, the device last (only when owned).
func (b *Backend) Close() {
	for id, t := range b.textures {
		t.destroy(b.device)
		delete(b.textures, id)
	}
	b.target.destroy(b.device)
	b.pipeline.destroy(b.device)
	b.closeDevice()
	b.created = false
}

func (b *Backend) closeDevice() {
	if b.ownsDevice && b.device != nil {
		b.device.Destroy()
	}
	b.device = nil
	b.queue = nil
	if b.instance != nil {
		b.instance.Destroy()
		b.instance = nil
	}
}
