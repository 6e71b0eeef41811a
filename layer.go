package holofoil

import (
	"errors"
	"fmt"
	"image"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal"
	"golang.org/x/image/draw"
)

// Errors reported when a pixel payload violates its size contract.
// These are programmer errors on the caller's side: the upload fails
// loudly instead of truncating or clipping GPU memory.
var (
	ErrPixelsTooShort = errors.New("holofoil: pixel buffer shorter than size*size*bytes_per_pixel")
	ErrZeroSize       = errors.New("holofoil: layer size must be non-zero")
)

// Layer is a square RGBA8 image, decoded by a collaborator and handed to
// this package as raw bytes. Size is both width and height. Immutable
// once constructed.
type Layer struct {
	Pixels []byte
	Size   uint32
}

// Mask is a square single-channel 8-bit image, used for the foil and
// etching layers of a card. Size is both width and height.
type Mask struct {
	Pixels []byte
	Size   uint32
}

// Structure is the complete description of a renderable card.
// Width is the card's logical render width; height is implicitly
// Base.Size. Foil and Etching are optional: when nil, the base layer's
// texture view stands in for the missing slot so the shader can assume
// all three texture slots are always bound.
type Structure struct {
	Base    Layer
	Foil    *Mask
	Etching *Mask
	Width   uint32
}

// upload creates an sRGB RGBA texture and writes the layer's pixels into it.
func (l Layer) upload(device hal.Device, queue hal.Queue) (hal.Texture, error) {
	if l.Size == 0 {
		return nil, ErrZeroSize
	}
	if need := uint64(l.Size) * uint64(l.Size) * 4; uint64(len(l.Pixels)) < need {
		return nil, fmt.Errorf("%w: layer %dx%d needs %d bytes, got %d",
			ErrPixelsTooShort, l.Size, l.Size, need, len(l.Pixels))
	}

	tex, err := device.CreateTexture(&hal.TextureDescriptor{
		Label:         "holofoil_layer",
		Size:          hal.Extent3D{Width: l.Size, Height: l.Size, DepthOrArrayLayers: 1},
		MipLevelCount: 1,
		SampleCount:   1,
		Dimension:     gputypes.TextureDimension2D,
		Format:        gputypes.TextureFormatRGBA8UnormSrgb,
		Usage:         gputypes.TextureUsageTextureBinding | gputypes.TextureUsageCopyDst,
	})
	if err != nil {
		return nil, fmt.Errorf("create layer texture: %w", err)
	}

	queue.WriteTexture(
		&hal.ImageCopyTexture{Texture: tex, MipLevel: 0},
		l.Pixels[:l.Size*l.Size*4],
		&hal.ImageDataLayout{Offset: 0, BytesPerRow: l.Size * 4, RowsPerImage: l.Size},
		&hal.Extent3D{Width: l.Size, Height: l.Size, DepthOrArrayLayers: 1},
	)

	return tex, nil
}

// upload creates a single-channel texture and writes the mask's pixels into it.
func (m Mask) upload(device hal.Device, queue hal.Queue) (hal.Texture, error) {
	if m.Size == 0 {
		return nil, ErrZeroSize
	}
	if need := uint64(m.Size) * uint64(m.Size); uint64(len(m.Pixels)) < need {
		return nil, fmt.Errorf("%w: mask %dx%d needs %d bytes, got %d",
			ErrPixelsTooShort, m.Size, m.Size, need, len(m.Pixels))
	}

	tex, err := device.CreateTexture(&hal.TextureDescriptor{
		Label:         "holofoil_mask",
		Size:          hal.Extent3D{Width: m.Size, Height: m.Size, DepthOrArrayLayers: 1},
		MipLevelCount: 1,
		SampleCount:   1,
		Dimension:     gputypes.TextureDimension2D,
		Format:        gputypes.TextureFormatR8Unorm,
		Usage:         gputypes.TextureUsageTextureBinding | gputypes.TextureUsageCopyDst,
	})
	if err != nil {
		return nil, fmt.Errorf("create mask texture: %w", err)
	}

	queue.WriteTexture(
		&hal.ImageCopyTexture{Texture: tex, MipLevel: 0},
		m.Pixels[:m.Size*m.Size],
		&hal.ImageDataLayout{Offset: 0, BytesPerRow: m.Size, RowsPerImage: m.Size},
		&hal.Extent3D{Width: m.Size, Height: m.Size, DepthOrArrayLayers: 1},
	)

	return tex, nil
}

// LayerFromImage converts a decoded image into a square RGBA layer of the
// given size, resampling with bilinear interpolation when the source
// dimensions differ.
func LayerFromImage(img image.Image, size uint32) Layer {
	dst := image.NewRGBA(image.Rect(0, 0, int(size), int(size)))
	draw.BiLinear.Scale(dst, dst.Bounds(), img, img.Bounds(), draw.Src, nil)

	return Layer{Pixels: dst.Pix, Size: size}
}

// MaskFromImage converts a decoded image into a square single-channel
// mask of the given size, taking the gray value of each resampled pixel.
func MaskFromImage(img image.Image, size uint32) Mask {
	rgba := image.NewRGBA(image.Rect(0, 0, int(size), int(size)))
	draw.BiLinear.Scale(rgba, rgba.Bounds(), img, img.Bounds(), draw.Src, nil)

	gray := image.NewGray(rgba.Bounds())
	draw.Draw(gray, gray.Bounds(), rgba, image.Point{}, draw.Src)

	return Mask{Pixels: gray.Pix, Size: size}
}
