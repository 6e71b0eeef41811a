package holofoil

import (
	_ "embed"

	"github.com/gogpu/gputypes"
)

// Embedded WGSL sources. The card shader is format-agnostic; the final
// color conversion is appended at pipeline build time depending on the
// surface format, so the color-space choice is baked into the compiled
// program rather than branched per fragment.

//go:embed shaders/card.wgsl
var cardShaderSource string

//go:embed shaders/srgb.wgsl
var srgbSuffixSource string

//go:embed shaders/linear_rgb.wgsl
var linearSuffixSource string

// assembleShader returns the complete WGSL program for the given surface
// format: the card shader plus the convert_color definition it calls.
// sRGB surfaces encode on write, so the shader outputs linear values;
// linear surfaces get the sRGB encode in the shader instead.
func assembleShader(format gputypes.TextureFormat) string {
	return cardShaderSource + "\n" + shaderSuffix(format)
}

// shaderSuffix returns the convert_color definition matching the surface
// format. Reloaded shader sources get the same suffix appended.
func shaderSuffix(format gputypes.TextureFormat) string {
	if isSRGBFormat(format) {
		return linearSuffixSource
	}
	return srgbSuffixSource
}

// isSRGBFormat reports whether the surface format applies sRGB encoding
// in hardware.
func isSRGBFormat(format gputypes.TextureFormat) bool {
	switch format {
	case gputypes.TextureFormatRGBA8UnormSrgb, gputypes.TextureFormatBGRA8UnormSrgb:
		return true
	default:
		return false
	}
}
