// Package holofoil renders a layered holographic trading-card effect on
// the GPU via gogpu/wgpu.
//
// # Overview
//
// A card is described by a square RGBA base image plus optional foil and
// etching masks. The shader composites the layers, lights them from a
// configurable point light, and distorts the foil shimmer according to a
// 3D orientation quaternion, so the card glitters as it rotates.
//
// # Quick Start
//
//	import "github.com/gogpu/holofoil"
//
//	pipeline, err := holofoil.NewPipeline(device, queue, format, backLayer)
//	card, err := pipeline.Upload(&holofoil.Structure{
//	    Base:  holofoil.Layer{Pixels: rgba, Size: 640},
//	    Width: 733,
//	})
//
//	// Every frame:
//	card.Prepare(holofoil.Parameters{
//	    Viewport: holofoil.Viewport{Width: 733, Height: 640},
//	    Rotation: rotation,
//	})
//	pipeline.Configure(configuration)
//	pipeline.Render(renderPass, card)
//
// # Architecture
//
// The library is organized around four pieces:
//   - Orientation math: Vector, Quaternion
//   - Pixel payloads: Layer, Mask, Structure
//   - GPU state: Pipeline (shared program and uniforms), Card (per-instance)
//   - Hot reload: Reloader (background shader recompilation)
//
// Exactly one Pipeline is live for rendering at a time. Cards are bound
// against a specific Pipeline's texture layout and must be re-uploaded
// after a pipeline swap.
//
// # Coordinate System
//
// Viewport coordinates are in pixels with the origin at the top-left.
// Rotations are quaternions; see FromRadians for the angle convention.
package holofoil
