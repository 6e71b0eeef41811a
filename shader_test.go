package holofoil

import (
	"strings"
	"testing"

	"github.com/gogpu/gputypes"
)

func TestIsSRGBFormat(t *testing.T) {
	tests := []struct {
		format gputypes.TextureFormat
		want   bool
	}{
		{gputypes.TextureFormatRGBA8UnormSrgb, true},
		{gputypes.TextureFormatBGRA8UnormSrgb, true},
		{gputypes.TextureFormatRGBA8Unorm, false},
		{gputypes.TextureFormatBGRA8Unorm, false},
	}
	for _, tt := range tests {
		if got := isSRGBFormat(tt.format); got != tt.want {
			t.Errorf("isSRGBFormat(%v) = %v, want %v", tt.format, got, tt.want)
		}
	}
}

func TestAssembleShaderSelectsSuffix(t *testing.T) {
	// sRGB surfaces encode in hardware: the shader outputs linear values.
	srgb := assembleShader(gputypes.TextureFormatBGRA8UnormSrgb)
	if !strings.Contains(srgb, "return color;") {
		t.Error("sRGB surface did not get the linear passthrough suffix")
	}

	// Linear surfaces get the sRGB encode in the shader.
	linear := assembleShader(gputypes.TextureFormatBGRA8Unorm)
	if !strings.Contains(linear, "12.92") {
		t.Error("linear surface did not get the sRGB encode suffix")
	}

	for _, src := range []string{srgb, linear} {
		if !strings.Contains(src, "fn vs_main") || !strings.Contains(src, "fn fs_main") {
			t.Error("assembled shader missing entry points")
		}
		if strings.Count(src, "fn convert_color") != 1 {
			t.Error("assembled shader must define convert_color exactly once")
		}
	}
}

func TestCardShaderConsumesViewport(t *testing.T) {
	src := assembleShader(gputypes.TextureFormatBGRA8Unorm)

	if !strings.Contains(src, "@location(0) viewport") {
		t.Fatal("instance viewport attribute missing")
	}

	// The rect must reach the fragment stage so per-instance placement
	// is observable, not just be declared on the instance record.
	if !strings.Contains(src, "in.viewport") {
		t.Error("fragment stage never reads the instance viewport")
	}
}

func TestCardShaderPremultipliesOutput(t *testing.T) {
	// The pipeline blends with premultiplied factors, so the fragment
	// output must scale rgb by alpha.
	src := assembleShader(gputypes.TextureFormatBGRA8Unorm)
	if !strings.Contains(src, "convert_color(color.rgb) * color.a") {
		t.Error("fragment output is not premultiplied")
	}
}
