// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package wgpu

import (
	"fmt"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/naga"
	"github.com/gogpu/wgpu/hal"

	"github.com/gogpu/quad"
)

// quadShaderSource is the WGSL shader for textured quads. The vertex stage
// maps logical coordinates to clip space (y flipped, origin top-left); the
// fragment stage samples the texture, modulates by the vertex color and
// premultiplies alpha to match the blend state.
const quadShaderSource = `
struct Uniforms {
    viewport: vec4<f32>,
};

@group(0) @binding(0) var<uniform> u: Uniforms;
@group(0) @binding(1) var tex: texture_2d<f32>;
@group(0) @binding(2) var smp: sampler;

struct VertexOutput {
    @builtin(position) pos: vec4<f32>,
    @location(0) color: vec4<f32>,
    @location(1) uv: vec2<f32>,
};

@vertex
fn vs_main(
    @location(0) pos: vec2<f32>,
    @location(1) color: vec4<f32>,
    @location(2) uv: vec2<f32>,
) -> VertexOutput {
    var out: VertexOutput;
    let ndc = pos / u.viewport.xy * 2.0 - 1.0;
    out.pos = vec4<f32>(ndc.x, -ndc.y, 0.0, 1.0);
    out.color = color;
    out.uv = uv;
    return out;
}

@fragment
fn fs_main(in: VertexOutput) -> @location(0) vec4<f32> {
    let c = textureSample(tex, smp, in.uv) * in.color;
    return vec4<f32>(c.rgb * c.a, c.a);
}
`

// quadVertexStride is the byte stride per vertex.
// Layout per vertex:
//
//	position (vec2<f32>) =  8 bytes (location 0)
//	color    (vec4<f32>) = 16 bytes (location 1)
//	uv       (vec2<f32>) =  8 bytes (location 2)
//
// Total = 32 bytes per vertex.
const quadVertexStride = 32

// quadUniformSize is the byte size of the uniform buffer: one vec4<f32>
// holding the viewport size in xy.
const quadUniformSize = 16

// targetFormat is the render target and texture format used throughout.
const targetFormat = gputypes.TextureFormatRGBA8Unorm

// quadPipeline holds the shader, layouts, render pipeline and the two
// samplers. Bind groups are created per texture, per frame
// (uniform + texture + sampler).
type quadPipeline struct {
	shader     hal.ShaderModule
	bindLayout hal.BindGroupLayout
	pipeLayout hal.PipelineLayout
	pipeline   hal.RenderPipeline

	nearest hal.Sampler
	linear  hal.Sampler
}

// spirvWords packs SPIR-V bytes into little-endian 32-bit words.
func spirvWords(spirv []byte) []uint32 {
	words := make([]uint32, len(spirv)/4)
	for i := range words {
		words[i] = uint32(spirv[i*4]) |
			uint32(spirv[i*4+1])<<8 |
			uint32(spirv[i*4+2])<<16 |
			uint32(spirv[i*4+3])<<24
	}
	return words
}

// create compiles the shader and builds every long-lived pipeline object.
func (p *quadPipeline) create(device hal.Device) error {
	spirv, err := naga.Compile(quadShaderSource)
	if err != nil {
		return fmt.Errorf("compile quad shader: %w", err)
	}
	shader, err := device.CreateShaderModule(&hal.ShaderModuleDescriptor{
		Label:  "quad_shader",
		Source: hal.ShaderSource{SPIRV: spirvWords(spirv)},
	})
	if err != nil {
		return fmt.Errorf("create quad shader module: %w", err)
	}
	p.shader = shader

	// Binding 0: uniforms (vertex+fragment)
	// Binding 1: quad texture (fragment)
	// Binding 2: sampler (fragment)
	bindLayout, err := device.CreateBindGroupLayout(&hal.BindGroupLayoutDescriptor{
		Label: "quad_bind_layout",
		Entries: []gputypes.BindGroupLayoutEntry{
			{
				Binding:    0,
				Visibility: gputypes.ShaderStageVertex | gputypes.ShaderStageFragment,
				Buffer:     &gputypes.BufferBindingLayout{Type: gputypes.BufferBindingTypeUniform},
			},
			{
				Binding:    1,
				Visibility: gputypes.ShaderStageFragment,
				Texture: &gputypes.TextureBindingLayout{
					SampleType:    gputypes.TextureSampleTypeFloat,
					ViewDimension: gputypes.TextureViewDimension2D,
				},
			},
			{
				Binding:    2,
				Visibility: gputypes.ShaderStageFragment,
				Sampler:    &gputypes.SamplerBindingLayout{Type: gputypes.SamplerBindingTypeFiltering},
			},
		},
	})
	if err != nil {
		p.destroy(device)
		return fmt.Errorf("create quad bind layout: %w", err)
	}
	p.bindLayout = bindLayout

	pipeLayout, err := device.CreatePipelineLayout(&hal.PipelineLayoutDescriptor{
		Label:            "quad_pipe_layout",
		BindGroupLayouts: []hal.BindGroupLayout{p.bindLayout},
	})
	if err != nil {
		p.destroy(device)
		return fmt.Errorf("create quad pipeline layout: %w", err)
	}
	p.pipeLayout = pipeLayout

	if p.nearest, err = createSampler(device, "quad_sampler_nearest", gputypes.FilterModeNearest); err != nil {
		p.destroy(device)
		return err
	}
	if p.linear, err = createSampler(device, "quad_sampler_linear", gputypes.FilterModeLinear); err != nil {
		p.destroy(device)
		return err
	}

	premulBlend := gputypes.BlendStatePremultiplied()
	pipeline, err := device.CreateRenderPipeline(&hal.RenderPipelineDescriptor{
		Label:  "quad_pipeline",
		Layout: p.pipeLayout,
		Vertex: hal.VertexState{
			Module:     p.shader,
			EntryPoint: "vs_main",
			Buffers:    quadVertexLayout(),
		},
		Fragment: &hal.FragmentState{
			Module:     p.shader,
			EntryPoint: "fs_main",
			Targets: []gputypes.ColorTargetState{
				{
					Format:    targetFormat,
					Blend:     &premulBlend,
					WriteMask: gputypes.ColorWriteMaskAll,
				},
			},
		},
		Primitive: gputypes.PrimitiveState{
			Topology: gputypes.PrimitiveTopologyTriangleList,
			CullMode: gputypes.CullModeNone,
		},
		Multisample: gputypes.MultisampleState{
			Count: 1,
			Mask:  0xFFFFFFFF,
		},
	})
	if err != nil {
		p.destroy(device)
		return fmt.Errorf("create quad pipeline: %w", err)
	}
	p.pipeline = pipeline
	return nil
}

func createSampler(device hal.Device, label string, filter gputypes.FilterMode) (hal.Sampler, error) {
	sampler, err := device.CreateSampler(&hal.SamplerDescriptor{
		Label:        label,
		AddressModeU: gputypes.AddressModeClampToEdge,
		AddressModeV: gputypes.AddressModeClampToEdge,
		AddressModeW: gputypes.AddressModeClampToEdge,
		MagFilter:    filter,
		MinFilter:    filter,
		MipmapFilter: filter,
	})
	if err != nil {
		return nil, fmt.Errorf("create %s: %w", label, err)
	}
	return sampler, nil
}

// samplerFor picks the sampler matching a texture's scale mode.
func (p *quadPipeline) samplerFor(mode quad.ScaleMode) hal.Sampler {
	if mode == quad.ScaleModeLinear {
		return p.linear
	}
	return p.nearest
}

// destroy releases all pipeline resources in reverse creation order.
func (p *quadPipeline) destroy(device hal.Device) {
	if device == nil {
		return
	}
	if p.pipeline != nil {
		device.DestroyRenderPipeline(p.pipeline)
		p.pipeline = nil
	}
	if p.linear != nil {
		device.DestroySampler(p.linear)
		p.linear = nil
	}
	if p.nearest != nil {
		device.DestroySampler(p.nearest)
		p.nearest = nil
	}
	if p.pipeLayout != nil {
		device.DestroyPipelineLayout(p.pipeLayout)
		p.pipeLayout = nil
	}
	if p.bindLayout != nil {
		device.DestroyBindGroupLayout(p.bindLayout)
		p.bindLayout = nil
	}
	if p.shader != nil {
		device.DestroyShaderModule(p.shader)
		p.shader = nil
	}
}

// quadVertexLayout returns the vertex buffer layout matching vs_main.
func quadVertexLayout() []gputypes.VertexBufferLayout {
	return []gputypes.VertexBufferLayout{
		{
			ArrayStride: quadVertexStride,
			StepMode:    gputypes.VertexStepModeVertex,
			Attributes: []gputypes.VertexAttribute{
				{Format: gputypes.VertexFormatFloat32x2, Offset: 0, ShaderLocation: 0},  // position
				{Format: gputypes.VertexFormatFloat32x4, Offset: 8, ShaderLocation: 1},  // color
				{Format: gputypes.VertexFormatFloat32x2, Offset: 24, ShaderLocation: 2}, // uv
			},
		},
	}
}
