// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package wgpu

import (
	"fmt"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal"

	"github.com/gogpu/quad"
)

// gpuTexture is one entry in the texture table: the hal texture, its
// sampled view and the scale mode that selects the sampler at draw time.
type gpuTexture struct {
	tex    hal.Texture
	view   hal.TextureView
	width  uint32
	height uint32
	mode   quad.ScaleMode
}

// CreateTexture uploads pixels into a new sampled texture.
//
// Only RGBA8 is accepted: the upload path assumes a 4-byte pixel when
// computing the row pitch, and the quad pipeline samples RGBA8 targets.
func (b *Backend) CreateTexture(pix []byte, w, h int32, format gputypes.TextureFormat, mode quad.ScaleMode) (quad.TextureID, error) {
	if format != targetFormat {
		return quad.InvalidTexture, fmt.Errorf("wgpu: unsupported texture format %v, want RGBA8", format)
	}
	if b.device == nil {
		return quad.InvalidTexture, fmt.Errorf("wgpu: no device")
	}
	if w <= 0 || h <= 0 {
		return quad.InvalidTexture, fmt.Errorf("wgpu: invalid texture size %dx%d", w, h)
	}
	width, height := uint32(w), uint32(h)

	tex, err := b.device.CreateTexture(&hal.TextureDescriptor{
		Label:         "quad_texture",
		Size:          hal.Extent3D{Width: width, Height: height, DepthOrArrayLayers: 1},
		MipLevelCount: 1,
		SampleCount:   1,
		Dimension:     gputypes.TextureDimension2D,
		Format:        format,
		Usage:         gputypes.TextureUsageTextureBinding | gputypes.TextureUsageCopyDst,
	})
	if err != nil {
		return quad.InvalidTexture, fmt.Errorf("wgpu: create texture: %w", err)
	}

	b.queue.WriteTexture(
		&hal.ImageCopyTexture{Texture: tex, MipLevel: 0},
		pix,
		&hal.ImageDataLayout{Offset: 0, BytesPerRow: width * 4, RowsPerImage: height},
		&hal.Extent3D{Width: width, Height: height, DepthOrArrayLayers: 1},
	)

	view, err := b.device.CreateTextureView(tex, &hal.TextureViewDescriptor{
		Label:         "quad_texture_view",
		Format:        format,
		Dimension:     gputypes.TextureViewDimension2D,
		Aspect:        gputypes.TextureAspectAll,
		MipLevelCount: 1,
	})
	if err != nil {
		b.device.DestroyTexture(tex)
		return quad.InvalidTexture, fmt.Errorf("wgpu: create texture view: %w", err)
	}

	id := b.nextID
	b.nextID++
	b.textures[id] = &gpuTexture{
		tex:    tex,
		view:   view,
		width:  width,
		height: height,
		mode:   mode,
	}
	return id, nil
}

// DestroyTexture releases the texture and removes it from the table.
func (b *Backend) DestroyTexture(id quad.TextureID) {
	t, ok := b.textures[id]
	if !ok {
		return
	}
	t.destroy(b.device)
	delete(b.textures, id)
}

func (t *gpuTexture) destroy(device hal.Device) {
	if device == nil {
		return
	}
	if t.view != nil {
		device.DestroyTextureView(t.view)
		t.view = nil
	}
	if t.tex != nil {
		device.DestroyTexture(t.tex)
		t.tex = nil
	}
}
