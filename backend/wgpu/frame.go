// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package wgpu

import (
	"encoding/binary"
	"fmt"
	"math"
	"time"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal"

	"github.com/gogpu/quad"
)

// fenceTimeout bounds the per-frame GPU wait.
const fenceTimeout = 5 * time.Second

// drawSpan is one DrawGeometry call inside the shared frame buffers.
type drawSpan struct {
	texture    quad.TextureID
	firstIndex uint32
	indexCount uint32
	baseVertex int32
}

// frameBatch accumulates the frame's geometry into one vertex stream and
// one index stream, with a span per draw call.
type frameBatch struct {
	verts       []byte
	indices     []uint16
	vertexCount uint32
	spans       []drawSpan
}

// add appends one triangle list. An empty index slice draws the vertices
// in order.
func (fb *frameBatch) add(id quad.TextureID, verts []quad.Vertex, indices []uint16) {
	if len(verts) == 0 {
		return
	}
	span := drawSpan{
		texture:    id,
		firstIndex: uint32(len(fb.indices)),
		baseVertex: int32(fb.vertexCount),
	}
	for i := range verts {
		fb.verts = appendVertex(fb.verts, &verts[i])
	}
	fb.vertexCount += uint32(len(verts))

	if len(indices) == 0 {
		for i := range verts {
			fb.indices = append(fb.indices, uint16(i))
		}
		span.indexCount = uint32(len(verts))
	} else {
		fb.indices = append(fb.indices, indices...)
		span.indexCount = uint32(len(indices))
	}
	fb.spans = append(fb.spans, span)
}

// reset clears the batch keeping the backing arrays.
func (fb *frameBatch) reset() {
	fb.verts = fb.verts[:0]
	fb.indices = fb.indices[:0]
	fb.vertexCount = 0
	fb.spans = fb.spans[:0]
}

// appendVertex packs one vertex as quadVertexStride little-endian bytes.
func appendVertex(buf []byte, v *quad.Vertex) []byte {
	var out [quadVertexStride]byte
	binary.LittleEndian.PutUint32(out[0:4], math.Float32bits(v.Pos.X))
	binary.LittleEndian.PutUint32(out[4:8], math.Float32bits(v.Pos.Y))
	binary.LittleEndian.PutUint32(out[8:12], math.Float32bits(float32(v.Color.R)/255))
	binary.LittleEndian.PutUint32(out[12:16], math.Float32bits(float32(v.Color.G)/255))
	binary.LittleEndian.PutUint32(out[16:20], math.Float32bits(float32(v.Color.B)/255))
	binary.LittleEndian.PutUint32(out[20:24], math.Float32bits(float32(v.Color.A)/255))
	binary.LittleEndian.PutUint32(out[24:28], math.Float32bits(v.UV.X))
	binary.LittleEndian.PutUint32(out[28:32], math.Float32bits(v.UV.Y))
	return append(buf, out[:]...)
}

// makeUniform packs the viewport size into the quadUniformSize uniform.
func makeUniform(w, h uint32) []byte {
	buf := make([]byte, quadUniformSize)
	binary.LittleEndian.PutUint32(buf[0:4], math.Float32bits(float32(w)))
	binary.LittleEndian.PutUint32(buf[4:8], math.Float32bits(float32(h)))
	return buf
}

// frameTarget is the offscreen color target frames are rendered into.
type frameTarget struct {
	tex    hal.Texture
	view   hal.TextureView
	width  uint32
	height uint32
}

// ensure creates or recreates the target when the requested resolution
// differs from the current one.
func (t *frameTarget) ensure(device hal.Device, w, h uint32) error {
	if t.tex != nil && t.width == w && t.height == h {
		return nil
	}
	t.destroy(device)

	tex, err := device.CreateTexture(&hal.TextureDescriptor{
		Label:         "quad_frame_target",
		Size:          hal.Extent3D{Width: w, Height: h, DepthOrArrayLayers: 1},
		MipLevelCount: 1,
		SampleCount:   1,
		Dimension:     gputypes.TextureDimension2D,
		Format:        targetFormat,
		Usage:         gputypes.TextureUsageRenderAttachment | gputypes.TextureUsageCopySrc,
	})
	if err != nil {
		return fmt.Errorf("create frame target: %w", err)
	}
	view, err := device.CreateTextureView(tex, &hal.TextureViewDescriptor{
		Label:         "quad_frame_target_view",
		Format:        targetFormat,
		Dimension:     gputypes.TextureViewDimension2D,
		Aspect:        gputypes.TextureAspectAll,
		MipLevelCount: 1,
	})
	if err != nil {
		device.DestroyTexture(tex)
		return fmt.Errorf("create frame target view: %w", err)
	}
	t.tex = tex
	t.view = view
	t.width = w
	t.height = h
	return nil
}

func (t *frameTarget) destroy(device hal.Device) {
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
	t.width = 0
	t.height = 0
}

// frameResources holds the per-frame GPU objects, destroyed after the
// fence signals.
type frameResources struct {
	vertBuf    hal.Buffer
	idxBuf     hal.Buffer
	uniformBuf hal.Buffer
	bindGroups map[quad.TextureID]hal.BindGroup
}

func (r *frameResources) destroy(device hal.Device) {
	for _, bg := range r.bindGroups {
		device.DestroyBindGroup(bg)
	}
	r.bindGroups = nil
	if r.uniformBuf != nil {
		device.DestroyBuffer(r.uniformBuf)
		r.uniformBuf = nil
	}
	if r.idxBuf != nil {
		device.DestroyBuffer(r.idxBuf)
		r.idxBuf = nil
	}
	if r.vertBuf != nil {
		device.DestroyBuffer(r.vertBuf)
		r.vertBuf = nil
	}
}

// Present renders the accumulated batch into the frame target, waits for
// the GPU, reads the pixels back and hands them to the presenter.
func (b *Backend) Present() error {
	if b.device == nil {
		return fmt.Errorf("wgpu: no device")
	}
	w, h := b.targetSize()
	if w == 0 || h == 0 {
		return fmt.Errorf("wgpu: zero-sized frame target")
	}
	if err := b.target.ensure(b.device, w, h); err != nil {
		return err
	}

	res, err := b.buildFrameResources(w, h)
	if err != nil {
		return err
	}
	defer res.destroy(b.device)
	defer b.batch.reset()

	if err := b.encodeAndReadback(res, w, h); err != nil {
		return err
	}

	if b.presenter != nil {
		if err := b.presenter.PresentFrame(b.framePix, w, h); err != nil {
			return fmt.Errorf("wgpu: present frame: %w", err)
		}
	}
	return nil
}

// buildFrameResources uploads the batch and creates a bind group per
// referenced texture (uniform + texture view + sampler).
func (b *Backend) buildFrameResources(w, h uint32) (*frameResources, error) {
	res := &frameResources{bindGroups: make(map[quad.TextureID]hal.BindGroup)}

	uniformBuf, err := b.createAndUploadBuffer("quad_frame_uniform", makeUniform(w, h),
		gputypes.BufferUsageUniform|gputypes.BufferUsageCopyDst)
	if err != nil {
		return nil, err
	}
	res.uniformBuf = uniformBuf

	if len(b.batch.spans) > 0 {
		res.vertBuf, err = b.createAndUploadBuffer("quad_frame_verts", b.batch.verts,
			gputypes.BufferUsageVertex|gputypes.BufferUsageCopyDst)
		if err != nil {
			res.destroy(b.device)
			return nil, err
		}
		idxData := make([]byte, len(b.batch.indices)*2)
		for i, idx := range b.batch.indices {
			binary.LittleEndian.PutUint16(idxData[i*2:], idx)
		}
		res.idxBuf, err = b.createAndUploadBuffer("quad_frame_indices", idxData,
			gputypes.BufferUsageIndex|gputypes.BufferUsageCopyDst)
		if err != nil {
			res.destroy(b.device)
			return nil, err
		}
	}

	for _, span := range b.batch.spans {
		if _, ok := res.bindGroups[span.texture]; ok {
			continue
		}
		t := b.textures[span.texture]
		if t == nil {
			continue
		}
		bg, err := b.device.CreateBindGroup(&hal.BindGroupDescriptor{
			Label:  "quad_frame_bind",
			Layout: b.pipeline.bindLayout,
			Entries: []gputypes.BindGroupEntry{
				{Binding: 0, Resource: gputypes.BufferBinding{
					Buffer: res.uniformBuf.NativeHandle(), Offset: 0, Size: quadUniformSize,
				}},
				{Binding: 1, Resource: gputypes.TextureViewBinding{
					TextureView: t.view.NativeHandle(),
				}},
				{Binding: 2, Resource: gputypes.SamplerBinding{
					Sampler: b.pipeline.samplerFor(t.mode).NativeHandle(),
				}},
			},
		})
		if err != nil {
			res.destroy(b.device)
			return nil, fmt.Errorf("create frame bind group: %w", err)
		}
		res.bindGroups[span.texture] = bg
	}
	return res, nil
}

// encodeAndReadback records the frame's render pass, copies the target to
// a staging buffer, submits, waits and reads the pixels into framePix.
func (b *Backend) encodeAndReadback(res *frameResources, w, h uint32) error {
	encoder, err := b.device.CreateCommandEncoder(&hal.CommandEncoderDescriptor{
		Label: "quad_frame_encoder",
	})
	if err != nil {
		return fmt.Errorf("create command encoder: %w", err)
	}
	if err := encoder.BeginEncoding("quad_frame"); err != nil {
		return fmt.Errorf("begin encoding: %w", err)
	}

	cc := b.clearColor
	rp := encoder.BeginRenderPass(&hal.RenderPassDescriptor{
		Label: "quad_frame_pass",
		ColorAttachments: []hal.RenderPassColorAttachment{
			{
				View:    b.target.view,
				LoadOp:  gputypes.LoadOpClear,
				StoreOp: gputypes.StoreOpStore,
				ClearValue: gputypes.Color{
					R: float64(cc.R) / 255,
					G: float64(cc.G) / 255,
					B: float64(cc.B) / 255,
					A: float64(cc.A) / 255,
				},
			},
		},
	})
	if len(b.batch.spans) > 0 {
		rp.SetPipeline(b.pipeline.pipeline)
		rp.SetVertexBuffer(0, res.vertBuf, 0)
		rp.SetIndexBuffer(res.idxBuf, gputypes.IndexFormatUint16, 0)
		for _, span := range b.batch.spans {
			bg, ok := res.bindGroups[span.texture]
			if !ok {
				continue
			}
			rp.SetBindGroup(0, bg, nil)
			rp.DrawIndexed(span.indexCount, 1, span.firstIndex, span.baseVertex, 0)
		}
	}
	rp.End()

	// The pass leaves the target in attachment layout; the copy below
	// needs transfer-src. No-op on backends without explicit layouts.
	encoder.TransitionTextures([]hal.TextureBarrier{{
		Texture: b.target.tex,
		Usage: hal.TextureUsageTransition{
			OldUsage: gputypes.TextureUsageRenderAttachment,
			NewUsage: gputypes.TextureUsageCopySrc,
		},
	}})

	pixelBufSize := uint64(w) * uint64(h) * 4
	stagingBuf, err := b.device.CreateBuffer(&hal.BufferDescriptor{
		Label: "quad_frame_staging",
		Size:  pixelBufSize,
		Usage: gputypes.BufferUsageMapRead | gputypes.BufferUsageCopyDst,
	})
	if err != nil {
		encoder.DiscardEncoding()
		return fmt.Errorf("create staging buffer: %w", err)
	}
	defer b.device.DestroyBuffer(stagingBuf)

	encoder.CopyTextureToBuffer(b.target.tex, stagingBuf, []hal.BufferTextureCopy{{
		BufferLayout: hal.ImageDataLayout{Offset: 0, BytesPerRow: w * 4, RowsPerImage: h},
		TextureBase:  hal.ImageCopyTexture{Texture: b.target.tex, MipLevel: 0},
		Size:         hal.Extent3D{Width: w, Height: h, DepthOrArrayLayers: 1},
	}})

	cmdBuf, err := encoder.EndEncoding()
	if err != nil {
		return fmt.Errorf("end encoding: %w", err)
	}
	defer b.device.FreeCommandBuffer(cmdBuf)

	fence, err := b.device.CreateFence()
	if err != nil {
		return fmt.Errorf("create fence: %w", err)
	}
	defer b.device.DestroyFence(fence)

	if err := b.queue.Submit([]hal.CommandBuffer{cmdBuf}, fence, 1); err != nil {
		return fmt.Errorf("submit: %w", err)
	}
	fenceOK, err := b.device.Wait(fence, 1, fenceTimeout)
	if err != nil || !fenceOK {
		return fmt.Errorf("wait for GPU: ok=%v err=%w", fenceOK, err)
	}

	if uint64(cap(b.framePix)) < pixelBufSize {
		b.framePix = make([]byte, pixelBufSize)
	}
	b.framePix = b.framePix[:pixelBufSize]
	if err := b.queue.ReadBuffer(stagingBuf, 0, b.framePix); err != nil {
		return fmt.Errorf("readback: %w", err)
	}
	return nil
}

// createAndUploadBuffer creates a GPU buffer and uploads data.
func (b *Backend) createAndUploadBuffer(label string, data []byte, usage gputypes.BufferUsage) (hal.Buffer, error) {
	buf, err := b.device.CreateBuffer(&hal.BufferDescriptor{
		Label: label,
		Size:  uint64(len(data)),
		Usage: usage,
	})
	if err != nil {
		return nil, fmt.Errorf("create %s: %w", label, err)
	}
	b.queue.WriteBuffer(buf, 0, data)
	return buf, nil
}
