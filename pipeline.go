package holofoil

import (
	"fmt"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal"
)

// Pipeline owns the compiled card shader program and every GPU resource
// shared between cards: the filtering sampler, the back texture shown
// behind translucent card regions, the global configuration uniform, and
// the bind group layout template each Card's texture binding is built
// against.
//
// Exactly one Pipeline should be live for rendering at a time. A shader
// reload produces a brand-new Pipeline; Cards uploaded against the old
// one must be re-uploaded.
//
// Configure, Upload, and Render must be called from the render thread.
type Pipeline struct {
	device hal.Device
	queue  hal.Queue
	format gputypes.TextureFormat

	raw    hal.RenderPipeline
	layout hal.PipelineLayout
	shader hal.ShaderModule

	sampler hal.Sampler

	// uniformsBinding holds group 0: sampler, back texture view, and the
	// configuration buffer.
	uniformsLayout  hal.BindGroupLayout
	uniformsBinding hal.BindGroup

	// texturesLayout is the group-1 template every Card's binding is
	// created from: three filterable 2D textures, fragment visibility.
	texturesLayout hal.BindGroupLayout

	configuration hal.Buffer
	last          Configuration

	backTexture hal.Texture
	backView    hal.TextureView
}

// NewPipeline compiles the card shader for the given surface format and
// allocates the shared resources. The format decides which color-space
// conversion is baked into the program, so the render pass target must
// use the same format.
//
// back is the backdrop shown behind translucent card regions.
//
// A failed build leaves no half-initialized Pipeline: every resource
// created before the failure is destroyed and the error is returned.
func NewPipeline(device hal.Device, queue hal.Queue, format gputypes.TextureFormat, back Layer) (*Pipeline, error) {
	return newPipeline(device, queue, format, back, assembleShader(format))
}

// newPipeline builds a Pipeline from explicit WGSL. The Reloader uses it
// to compile edited shader sources against the same format and backdrop.
func newPipeline(device hal.Device, queue hal.Queue, format gputypes.TextureFormat, back Layer, wgsl string) (*Pipeline, error) {
	p := &Pipeline{
		device: device,
		queue:  queue,
		format: format,
		last:   DefaultConfiguration(),
	}

	sampler, err := device.CreateSampler(&hal.SamplerDescriptor{
		Label:        "holofoil_sampler",
		AddressModeU: gputypes.AddressModeClampToEdge,
		AddressModeV: gputypes.AddressModeClampToEdge,
		AddressModeW: gputypes.AddressModeClampToEdge,
		MagFilter:    gputypes.FilterModeLinear,
		MinFilter:    gputypes.FilterModeLinear,
		MipmapFilter: gputypes.FilterModeLinear,
	})
	if err != nil {
		return nil, fmt.Errorf("create sampler: %w", err)
	}
	p.sampler = sampler

	configuration, err := device.CreateBuffer(&hal.BufferDescriptor{
		Label: "holofoil_parameters",
		Size:  parametersSize,
		Usage: gputypes.BufferUsageUniform | gputypes.BufferUsageCopyDst,
	})
	if err != nil {
		p.Destroy()
		return nil, fmt.Errorf("create parameter buffer: %w", err)
	}
	p.configuration = configuration
	queue.WriteBuffer(configuration, 0, p.last.encode())

	backTexture, err := back.upload(device, queue)
	if err != nil {
		p.Destroy()
		return nil, fmt.Errorf("upload back layer: %w", err)
	}
	p.backTexture = backTexture

	backView, err := device.CreateTextureView(backTexture, &hal.TextureViewDescriptor{
		Label:         "holofoil_back_view",
		Format:        gputypes.TextureFormatRGBA8UnormSrgb,
		Dimension:     gputypes.TextureViewDimension2D,
		Aspect:        gputypes.TextureAspectAll,
		MipLevelCount: 1,
	})
	if err != nil {
		p.Destroy()
		return nil, fmt.Errorf("create back texture view: %w", err)
	}
	p.backView = backView

	// Group 0: sampler, back texture, configuration. Fragment only.
	uniformsLayout, err := device.CreateBindGroupLayout(&hal.BindGroupLayoutDescriptor{
		Label: "holofoil_uniforms_layout",
		Entries: []gputypes.BindGroupLayoutEntry{
			{
				Binding:    0,
				Visibility: gputypes.ShaderStageFragment,
				Sampler:    &gputypes.SamplerBindingLayout{Type: gputypes.SamplerBindingTypeFiltering},
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
				Buffer:     &gputypes.BufferBindingLayout{Type: gputypes.BufferBindingTypeUniform},
			},
		},
	})
	if err != nil {
		p.Destroy()
		return nil, fmt.Errorf("create uniforms layout: %w", err)
	}
	p.uniformsLayout = uniformsLayout

	uniformsBinding, err := device.CreateBindGroup(&hal.BindGroupDescriptor{
		Label:  "holofoil_uniforms",
		Layout: uniformsLayout,
		Entries: []gputypes.BindGroupEntry{
			{Binding: 0, Resource: gputypes.SamplerBinding{Sampler: sampler.NativeHandle()}},
			{Binding: 1, Resource: gputypes.TextureViewBinding{TextureView: backView.NativeHandle()}},
			{Binding: 2, Resource: gputypes.BufferBinding{
				Buffer: configuration.NativeHandle(), Offset: 0, Size: parametersSize,
			}},
		},
	})
	if err != nil {
		p.Destroy()
		return nil, fmt.Errorf("create uniforms bind group: %w", err)
	}
	p.uniformsBinding = uniformsBinding

	// Group 1: base, foil, etching. Built per card from this template.
	texturesLayout, err := device.CreateBindGroupLayout(&hal.BindGroupLayoutDescriptor{
		Label:   "holofoil_textures_layout",
		Entries: cardTextureEntries(),
	})
	if err != nil {
		p.Destroy()
		return nil, fmt.Errorf("create textures layout: %w", err)
	}
	p.texturesLayout = texturesLayout

	layout, err := device.CreatePipelineLayout(&hal.PipelineLayoutDescriptor{
		Label:            "holofoil_pipe_layout",
		BindGroupLayouts: []hal.BindGroupLayout{uniformsLayout, texturesLayout},
	})
	if err != nil {
		p.Destroy()
		return nil, fmt.Errorf("create pipeline layout: %w", err)
	}
	p.layout = layout

	shader, err := device.CreateShaderModule(&hal.ShaderModuleDescriptor{
		Label:  "holofoil_shader",
		Source: hal.ShaderSource{WGSL: wgsl},
	})
	if err != nil {
		p.Destroy()
		return nil, fmt.Errorf("compile card shader: %w", err)
	}
	p.shader = shader

	blend := gputypes.BlendStatePremultiplied()
	raw, err := device.CreateRenderPipeline(&hal.RenderPipelineDescriptor{
		Label:  "holofoil_pipeline",
		Layout: layout,
		Vertex: hal.VertexState{
			Module:     shader,
			EntryPoint: "vs_main",
			Buffers:    instanceBufferLayout(),
		},
		Fragment: &hal.FragmentState{
			Module:     shader,
			EntryPoint: "fs_main",
			Targets: []gputypes.ColorTargetState{
				{
					Format:    format,
					Blend:     &blend,
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
		p.Destroy()
		return nil, fmt.Errorf("create card pipeline: %w", err)
	}
	p.raw = raw

	Logger().Debug("holofoil: pipeline built", "format", format)

	return p, nil
}

// cardTextureEntries returns the group-1 layout entries: three filterable
// 2D float textures with fragment visibility.
func cardTextureEntries() []gputypes.BindGroupLayoutEntry {
	entries := make([]gputypes.BindGroupLayoutEntry, 3)
	for i := range entries {
		entries[i] = gputypes.BindGroupLayoutEntry{
			Binding:    uint32(i),
			Visibility: gputypes.ShaderStageFragment,
			Texture: &gputypes.TextureBindingLayout{
				SampleType:    gputypes.TextureSampleTypeFloat,
				ViewDimension: gputypes.TextureViewDimension2D,
			},
		}
	}
	return entries
}

// instanceBufferLayout returns the single instance-stepped vertex buffer:
// viewport (float32x4), size (float32x2), rotation (float32x4).
func instanceBufferLayout() []gputypes.VertexBufferLayout {
	return []gputypes.VertexBufferLayout{
		{
			ArrayStride: instanceSize,
			StepMode:    gputypes.VertexStepModeInstance,
			Attributes: []gputypes.VertexAttribute{
				{Format: gputypes.VertexFormatFloat32x4, Offset: 0, ShaderLocation: 0},
				{Format: gputypes.VertexFormatFloat32x2, Offset: 16, ShaderLocation: 1},
				{Format: gputypes.VertexFormatFloat32x4, Offset: 24, ShaderLocation: 2},
			},
		},
	}
}

// Format returns the surface format the pipeline was compiled for.
func (p *Pipeline) Format() gputypes.TextureFormat {
	return p.format
}

// Configure writes the global configuration to the shared uniform buffer.
// A write equal to the last written value is suppressed entirely; this is
// part of the contract, not an optimization, so hosts can call Configure
// unconditionally every frame without stalling the queue.
func (p *Pipeline) Configure(configuration Configuration) {
	if p.last == configuration {
		return
	}

	p.queue.WriteBuffer(p.configuration, 0, configuration.encode())
	p.last = configuration
}

// Upload creates the GPU-resident Card for a structure: its instance
// buffer, its textures, and its texture bind group. When Foil or Etching
// is nil the base layer's view fills the missing slot, keeping the
// three-slot binding layout fixed.
//
// Upload fails only on caller contract violations (short pixel buffers)
// or device errors; partially created resources are destroyed on failure.
func (p *Pipeline) Upload(structure *Structure) (*Card, error) {
	card := &Card{
		device: p.device,
		queue:  p.queue,
		Width:  structure.Width,
		Height: structure.Base.Size,
	}

	instance, err := p.device.CreateBuffer(&hal.BufferDescriptor{
		Label: "holofoil_instance",
		Size:  instanceSize,
		Usage: gputypes.BufferUsageVertex | gputypes.BufferUsageCopyDst,
	})
	if err != nil {
		return nil, fmt.Errorf("create instance buffer: %w", err)
	}
	card.instance = instance

	base, err := structure.Base.upload(p.device, p.queue)
	if err != nil {
		card.Destroy()
		return nil, fmt.Errorf("upload base layer: %w", err)
	}
	card.base = base

	baseView, err := p.device.CreateTextureView(base, &hal.TextureViewDescriptor{
		Label:         "holofoil_base_view",
		Format:        gputypes.TextureFormatRGBA8UnormSrgb,
		Dimension:     gputypes.TextureViewDimension2D,
		Aspect:        gputypes.TextureAspectAll,
		MipLevelCount: 1,
	})
	if err != nil {
		card.Destroy()
		return nil, fmt.Errorf("create base view: %w", err)
	}
	card.baseView = baseView

	foilView := baseView
	if structure.Foil != nil {
		tex, view, err := p.uploadMask("holofoil_foil", *structure.Foil)
		if err != nil {
			card.Destroy()
			return nil, fmt.Errorf("upload foil mask: %w", err)
		}
		card.foil, card.foilView = tex, view
		foilView = view
	}

	etchingView := baseView
	if structure.Etching != nil {
		tex, view, err := p.uploadMask("holofoil_etching", *structure.Etching)
		if err != nil {
			card.Destroy()
			return nil, fmt.Errorf("upload etching mask: %w", err)
		}
		card.etching, card.etchingView = tex, view
		etchingView = view
	}

	binding, err := p.device.CreateBindGroup(&hal.BindGroupDescriptor{
		Label:  "holofoil_card_textures",
		Layout: p.texturesLayout,
		Entries: []gputypes.BindGroupEntry{
			{Binding: 0, Resource: gputypes.TextureViewBinding{TextureView: baseView.NativeHandle()}},
			{Binding: 1, Resource: gputypes.TextureViewBinding{TextureView: foilView.NativeHandle()}},
			{Binding: 2, Resource: gputypes.TextureViewBinding{TextureView: etchingView.NativeHandle()}},
		},
	})
	if err != nil {
		card.Destroy()
		return nil, fmt.Errorf("create card bind group: %w", err)
	}
	card.binding = binding
	card.boundViews = [3]hal.TextureView{baseView, foilView, etchingView}

	Logger().Debug("holofoil: card uploaded",
		"width", card.Width, "height", card.Height,
		"foil", structure.Foil != nil, "etching", structure.Etching != nil)

	return card, nil
}

// uploadMask uploads a mask texture and creates its view.
func (p *Pipeline) uploadMask(label string, mask Mask) (hal.Texture, hal.TextureView, error) {
	tex, err := mask.upload(p.device, p.queue)
	if err != nil {
		return nil, nil, err
	}

	view, err := p.device.CreateTextureView(tex, &hal.TextureViewDescriptor{
		Label:         label + "_view",
		Format:        gputypes.TextureFormatR8Unorm,
		Dimension:     gputypes.TextureViewDimension2D,
		Aspect:        gputypes.TextureAspectAll,
		MipLevelCount: 1,
	})
	if err != nil {
		p.device.DestroyTexture(tex)
		return nil, nil, fmt.Errorf("create %s view: %w", label, err)
	}

	return tex, view, nil
}

// Render records the card's draw into the render pass: the shared
// program and uniforms, the card's texture binding and instance buffer,
// then a fixed 6-vertex, 1-instance draw. The pass target format must
// match the format the pipeline was compiled for.
func (p *Pipeline) Render(rp hal.RenderPassEncoder, card *Card) {
	rp.SetPipeline(p.raw)
	rp.SetBindGroup(0, p.uniformsBinding, nil)
	rp.SetBindGroup(1, card.binding, nil)
	rp.SetVertexBuffer(0, card.instance, 0)
	rp.Draw(6, 1, 0, 0)
}

// Destroy releases every GPU resource owned by the pipeline. Cards
// uploaded through it are not destroyed; they hold their own resources.
// Safe to call multiple times.
func (p *Pipeline) Destroy() {
	if p.raw != nil {
		p.device.DestroyRenderPipeline(p.raw)
		p.raw = nil
	}
	if p.shader != nil {
		p.device.DestroyShaderModule(p.shader)
		p.shader = nil
	}
	if p.layout != nil {
		p.device.DestroyPipelineLayout(p.layout)
		p.layout = nil
	}
	if p.texturesLayout != nil {
		p.device.DestroyBindGroupLayout(p.texturesLayout)
		p.texturesLayout = nil
	}
	if p.uniformsBinding != nil {
		p.device.DestroyBindGroup(p.uniformsBinding)
		p.uniformsBinding = nil
	}
	if p.uniformsLayout != nil {
		p.device.DestroyBindGroupLayout(p.uniformsLayout)
		p.uniformsLayout = nil
	}
	if p.backView != nil {
		p.device.DestroyTextureView(p.backView)
		p.backView = nil
	}
	if p.backTexture != nil {
		p.device.DestroyTexture(p.backTexture)
		p.backTexture = nil
	}
	if p.configuration != nil {
		p.device.DestroyBuffer(p.configuration)
		p.configuration = nil
	}
	if p.sampler != nil {
		p.device.DestroySampler(p.sampler)
		p.sampler = nil
	}
}
