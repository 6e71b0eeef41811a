package holofoil

import (
	"encoding/binary"
	"math"

	"github.com/gogpu/wgpu/hal"
)

// instanceSize is the byte size of one instance record:
// viewport (4 x f32) + size (2 x f32) + rotation (4 x f32) = 40 bytes.
const instanceSize = 40

// Card is the GPU-resident state of one uploaded card structure: its
// instance buffer, its textures, and the texture bind group built
// against the owning Pipeline's layout template.
//
// Cards are created exclusively by Pipeline.Upload and are bound to that
// Pipeline: after a shader reload swaps the Pipeline, the card must be
// destroyed and re-uploaded.
type Card struct {
	// Width is the logical render width passed at upload; Height is the
	// base layer's size.
	Width  uint32
	Height uint32

	device hal.Device
	queue  hal.Queue

	instance hal.Buffer

	base     hal.Texture
	baseView hal.TextureView

	// foil and etching are nil when the structure omitted them; their
	// binding slots then carry the base view.
	foil        hal.Texture
	foilView    hal.TextureView
	etching     hal.Texture
	etchingView hal.TextureView

	binding hal.BindGroup

	// boundViews records which view fills each of the three texture
	// slots (base, foil-or-base, etching-or-base).
	boundViews [3]hal.TextureView
}

// Parameters is the per-frame input to Prepare.
type Parameters struct {
	Viewport Viewport
	Rotation Quaternion
}

// Viewport is the card's on-screen rectangle in pixels.
type Viewport struct {
	X      uint32
	Y      uint32
	Width  uint32
	Height uint32
}

// Prepare writes the instance record for this frame: the viewport rect,
// the card's logical size, and the orientation quaternion. The buffer is
// pre-allocated to exactly one record; Prepare cannot fail.
func (c *Card) Prepare(parameters Parameters) {
	buf := make([]byte, instanceSize)
	putFloat32(buf[0:], float32(parameters.Viewport.X))
	putFloat32(buf[4:], float32(parameters.Viewport.Y))
	putFloat32(buf[8:], float32(parameters.Viewport.Width))
	putFloat32(buf[12:], float32(parameters.Viewport.Height))
	putFloat32(buf[16:], float32(c.Width))
	putFloat32(buf[20:], float32(c.Height))
	putFloat32(buf[24:], parameters.Rotation.A.X)
	putFloat32(buf[28:], parameters.Rotation.A.Y)
	putFloat32(buf[32:], parameters.Rotation.A.Z)
	putFloat32(buf[36:], parameters.Rotation.W)

	c.queue.WriteBuffer(c.instance, 0, buf)
}

func putFloat32(b []byte, v float32) {
	binary.LittleEndian.PutUint32(b, math.Float32bits(v))
}

// Destroy releases the card's GPU resources deterministically: bind
// group, texture views, textures, and the instance buffer. Safe to call
// multiple times or on a partially constructed card.
func (c *Card) Destroy() {
	if c.binding != nil {
		c.device.DestroyBindGroup(c.binding)
		c.binding = nil
	}
	if c.etchingView != nil {
		c.device.DestroyTextureView(c.etchingView)
		c.etchingView = nil
	}
	if c.etching != nil {
		c.device.DestroyTexture(c.etching)
		c.etching = nil
	}
	if c.foilView != nil {
		c.device.DestroyTextureView(c.foilView)
		c.foilView = nil
	}
	if c.foil != nil {
		c.device.DestroyTexture(c.foil)
		c.foil = nil
	}
	if c.baseView != nil {
		c.device.DestroyTextureView(c.baseView)
		c.baseView = nil
	}
	if c.base != nil {
		c.device.DestroyTexture(c.base)
		c.base = nil
	}
	if c.instance != nil {
		c.device.DestroyBuffer(c.instance)
		c.instance = nil
	}
	c.boundViews = [3]hal.TextureView{}
}
