package holofoil

import (
	"image"
	"image/color"
	"testing"
)

func TestLayerFromImage(t *testing.T) {
	src := image.NewNRGBA(image.Rect(0, 0, 10, 20))
	for y := 0; y < 20; y++ {
		for x := 0; x < 10; x++ {
			src.Set(x, y, color.NRGBA{R: 200, G: 100, B: 50, A: 255})
		}
	}

	layer := LayerFromImage(src, 16)

	if layer.Size != 16 {
		t.Errorf("Size = %d, want 16", layer.Size)
	}
	if len(layer.Pixels) != 16*16*4 {
		t.Errorf("Pixels = %d bytes, want %d", len(layer.Pixels), 16*16*4)
	}

	// Interior pixels keep the source color (edges may blend).
	i := (8*16 + 8) * 4
	if layer.Pixels[i] != 200 || layer.Pixels[i+1] != 100 || layer.Pixels[i+2] != 50 {
		t.Errorf("center pixel = %v", layer.Pixels[i:i+4])
	}
}

func TestMaskFromImage(t *testing.T) {
	src := image.NewGray(image.Rect(0, 0, 8, 8))
	for y := 0; y < 8; y++ {
		for x := 0; x < 8; x++ {
			src.SetGray(x, y, color.Gray{Y: 180})
		}
	}

	mask := MaskFromImage(src, 12)

	if mask.Size != 12 {
		t.Errorf("Size = %d, want 12", mask.Size)
	}
	if len(mask.Pixels) != 12*12 {
		t.Errorf("Pixels = %d bytes, want %d", len(mask.Pixels), 12*12)
	}

	center := mask.Pixels[6*12+6]
	if center < 170 || center > 190 {
		t.Errorf("center value = %d, want about 180", center)
	}
}
