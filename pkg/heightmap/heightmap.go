// Package heightmap converts grayscale-interpreted images into relief
// height fields. Image rows run top-down while field rows run bottom-up,
// so rows are flipped during conversion.
package heightmap

import (
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"io"
	"os"

	xdraw "golang.org/x/image/draw"

	"github.com/skelhorn/coastergen/pkg/design"
)

// MaxDimension caps the loaded field size. Larger images are downsampled
// before conversion; relief resolution beyond this adds triangles without
// visible detail at coaster scale.
const MaxDimension = 256

// Load reads an image file and converts it to a height field.
func Load(path string) (*design.HeightField, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("heightmap: %w", err)
	}
	defer f.Close()
	return Decode(f)
}

// Decode reads a PNG or JPEG stream and converts it to a height field.
func Decode(r io.Reader) (*design.HeightField, error) {
	img, _, err := image.Decode(r)
	if err != nil {
		return nil, fmt.Errorf("heightmap: decode image: %w", err)
	}
	return FromImage(img), nil
}

// FromImage converts an image to a height field using Rec. 601 luminance,
// normalized to [0,1]. Oversized images are scaled down first.
func FromImage(img image.Image) *design.HeightField {
	img = shrink(img)
	b := img.Bounds()
	w, h := b.Dx(), b.Dy()

	hf := design.NewHeightField(w, h)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			r, g, bl, _ := img.At(b.Min.X+x, b.Min.Y+y).RGBA()
			lum := 0.299*float64(r) + 0.587*float64(g) + 0.114*float64(bl)
			v := lum / 0xffff
			if v < 0 {
				v = 0
			} else if v > 1 {
				v = 1
			}
			// Flip vertically: image y grows downward.
			hf.Set(x, h-1-y, v)
		}
	}
	return hf
}

// shrink scales the image so neither dimension exceeds MaxDimension,
// preserving aspect ratio. Images within the cap pass through untouched.
func shrink(img image.Image) image.Image {
	b := img.Bounds()
	w, h := b.Dx(), b.Dy()
	if w <= MaxDimension && h <= MaxDimension {
		return img
	}

	scale := float64(MaxDimension) / float64(w)
	if h > w {
		scale = float64(MaxDimension) / float64(h)
	}
	dw := int(float64(w) * scale)
	dh := int(float64(h) * scale)
	if dw < 1 {
		dw = 1
	}
	if dh < 1 {
		dh = 1
	}

	dst := image.NewRGBA(image.Rect(0, 0, dw, dh))
	xdraw.ApproxBiLinear.Scale(dst, dst.Bounds(), img, b, xdraw.Over, nil)
	return dst
}
