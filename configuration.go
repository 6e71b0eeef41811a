package holofoil

import (
	"encoding/binary"
	"math"
)

// Bounds for the tunable quality settings. UI sliders should clamp to
// these ranges; values outside them are not rejected but produce either
// visible banding (too few samples) or wasted GPU time.
const (
	MinSamples    = 1
	MaxSamples    = 8
	MinIterations = 32
	MaxIterations = 256
)

// parametersSize is the byte size of the shader parameter uniform.
// Layout: n_samples (u32) + max_iterations (u32) + 2 x u32 padding +
// light_position (vec3<f32>) + light_power (f32) = 32 bytes.
const parametersSize = 32

// Configuration holds the global rendering settings shared by every card
// drawn with one Pipeline.
type Configuration struct {
	// NSamples is the supersampling count per pixel, in [MinSamples, MaxSamples].
	NSamples uint32

	// MaxIterations bounds the shader's ray-march loop, in
	// [MinIterations, MaxIterations].
	MaxIterations uint32

	Light Light
}

// Light is the point light applied to the foil layer.
type Light struct {
	Position Vector
	Power    float32
}

// DefaultConfiguration returns the settings used until Pipeline.Configure
// is called.
func DefaultConfiguration() Configuration {
	return Configuration{
		NSamples:      2,
		MaxIterations: 128,
		Light: Light{
			Position: Vector{X: 3, Y: 4, Z: -20},
			Power:    400,
		},
	}
}

// encode packs the configuration into the uniform buffer layout expected
// by the shader. The two padding words keep light_position aligned to 16
// bytes per WGSL uniform rules.
func (c Configuration) encode() []byte {
	buf := make([]byte, parametersSize)
	binary.LittleEndian.PutUint32(buf[0:4], c.NSamples)
	binary.LittleEndian.PutUint32(buf[4:8], c.MaxIterations)
	binary.LittleEndian.PutUint32(buf[16:20], math.Float32bits(c.Light.Position.X))
	binary.LittleEndian.PutUint32(buf[20:24], math.Float32bits(c.Light.Position.Y))
	binary.LittleEndian.PutUint32(buf[24:28], math.Float32bits(c.Light.Position.Z))
	binary.LittleEndian.PutUint32(buf[28:32], math.Float32bits(c.Light.Power))
	return buf
}
