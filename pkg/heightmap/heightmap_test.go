package heightmap

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"math"
	"testing"
)

// gradientImage is black at the top row and white at the bottom row.
func gradientImage(w, h int) image.Image {
	img := image.NewGray(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		v := uint8(255 * y / (h - 1))
		for x := 0; x < w; x++ {
			img.SetGray(x, y, color.Gray{Y: v})
		}
	}
	return img
}

func TestFromImageLuminanceRange(t *testing.T) {
	hf := FromImage(gradientImage(8, 8))
	if hf.Width != 8 || hf.Height != 8 {
		t.Fatalf("field size = %dx%d, want 8x8", hf.Width, hf.Height)
	}
	for _, v := range hf.Values {
		if v < 0 || v > 1 {
			t.Fatalf("value %v outside [0, 1]", v)
		}
	}
}

func TestFromImageVerticalFlip(t *testing.T) {
	hf := FromImage(gradientImage(4, 4))
	// Image top row is black; after the flip it lands in the field's top
	// row (highest y index), and the image's white bottom row lands at
	// field y=0.
	if hf.At(0, 0) < 0.9 {
		t.Errorf("field bottom = %v, want near 1 (image bottom row)", hf.At(0, 0))
	}
	if hf.At(0, 3) > 0.1 {
		t.Errorf("field top = %v, want near 0 (image top row)", hf.At(0, 3))
	}
}

func TestFromImageGrayAgreesWithLuminance(t *testing.T) {
	img := image.NewGray(image.Rect(0, 0, 1, 1))
	img.SetGray(0, 0, color.Gray{Y: 128})
	hf := FromImage(img)
	if got := hf.At(0, 0); math.Abs(got-128.0/255) > 0.01 {
		t.Errorf("mid gray = %v, want ~0.502", got)
	}
}

func TestFromImageShrinksOversized(t *testing.T) {
	img := image.NewGray(image.Rect(0, 0, MaxDimension*2, MaxDimension))
	hf := FromImage(img)
	if hf.Width > MaxDimension || hf.Height > MaxDimension {
		t.Errorf("field size = %dx%d exceeds cap %d", hf.Width, hf.Height, MaxDimension)
	}
	// Aspect ratio survives the downsample.
	if hf.Width != 2*hf.Height {
		t.Errorf("aspect ratio lost: %dx%d", hf.Width, hf.Height)
	}
}

func TestDecodePNG(t *testing.T) {
	var buf bytes.Buffer
	if err := png.Encode(&buf, gradientImage(16, 16)); err != nil {
		t.Fatalf("png encode: %v", err)
	}
	hf, err := Decode(&buf)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if hf.Width != 16 || hf.Height != 16 {
		t.Errorf("field size = %dx%d, want 16x16", hf.Width, hf.Height)
	}
}

func TestDecodeGarbage(t *testing.T) {
	if _, err := Decode(bytes.NewReader([]byte("not an image"))); err == nil {
		t.Fatal("expected error for invalid image data")
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load("testdata/does-not-exist.png"); err == nil {
		t.Fatal("expected error for missing file")
	}
}
