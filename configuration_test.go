package holofoil

import (
	"encoding/binary"
	"math"
	"testing"
)

func TestDefaultConfiguration(t *testing.T) {
	c := DefaultConfiguration()

	if c.NSamples != 2 {
		t.Errorf("NSamples = %d, want 2", c.NSamples)
	}
	if c.MaxIterations != 128 {
		t.Errorf("MaxIterations = %d, want 128", c.MaxIterations)
	}
	if c.Light.Position != (Vector{X: 3, Y: 4, Z: -20}) {
		t.Errorf("Light.Position = %+v", c.Light.Position)
	}
	if c.Light.Power != 400 {
		t.Errorf("Light.Power = %v, want 400", c.Light.Power)
	}

	if c.NSamples < MinSamples || c.NSamples > MaxSamples {
		t.Error("default NSamples outside advertised range")
	}
	if c.MaxIterations < MinIterations || c.MaxIterations > MaxIterations {
		t.Error("default MaxIterations outside advertised range")
	}
}

func TestConfigurationEncodeLayout(t *testing.T) {
	c := Configuration{
		NSamples:      5,
		MaxIterations: 200,
		Light: Light{
			Position: Vector{X: 1.5, Y: -2.5, Z: 10},
			Power:    123.5,
		},
	}

	buf := c.encode()
	if len(buf) != parametersSize {
		t.Fatalf("encoded size = %d, want %d", len(buf), parametersSize)
	}

	if got := binary.LittleEndian.Uint32(buf[0:4]); got != 5 {
		t.Errorf("n_samples = %d, want 5", got)
	}
	if got := binary.LittleEndian.Uint32(buf[4:8]); got != 200 {
		t.Errorf("max_iterations = %d, want 200", got)
	}

	// Padding words keep light_position 16-byte aligned and stay zero.
	if got := binary.LittleEndian.Uint64(buf[8:16]); got != 0 {
		t.Errorf("padding = %d, want 0", got)
	}

	readFloat := func(off int) float32 {
		return math.Float32frombits(binary.LittleEndian.Uint32(buf[off : off+4]))
	}
	if got := readFloat(16); got != 1.5 {
		t.Errorf("light_position.x = %v, want 1.5", got)
	}
	if got := readFloat(20); got != -2.5 {
		t.Errorf("light_position.y = %v, want -2.5", got)
	}
	if got := readFloat(24); got != 10 {
		t.Errorf("light_position.z = %v, want 10", got)
	}
	if got := readFloat(28); got != 123.5 {
		t.Errorf("light_power = %v, want 123.5", got)
	}
}
