// Package imaging bounds raster images to the pipeline's size limits and
// re-encodes them as PNG.
package imaging

import (
	"bytes"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	"image/png"
	"math"

	_ "golang.org/x/image/bmp"
	xdraw "golang.org/x/image/draw"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

const (
	// MaxDimension caps the longer edge of any stored image.
	MaxDimension = 2048
	// MaxPixels caps the total pixel count of any stored image.
	MaxPixels = MaxDimension * MaxDimension

	shrinkFactor = 0.95
	// maxShrinkSteps bounds the shrink loop; the geometric decay converges
	// orders of magnitude sooner for any real input.
	maxShrinkSteps = 256
)

// Decode parses an image payload. PNG, JPEG, GIF, BMP, TIFF and WebP are
// understood.
func Decode(data []byte) (image.Image, error) {
	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("failed to decode image: %w", err)
	}
	return img, nil
}

// FitWithin scales an image down so that neither edge exceeds MaxDimension
// and the pixel count stays within MaxPixels. Images already inside both
// bounds are returned unchanged; nothing is ever scaled up. Downscaling uses
// the Catmull-Rom kernel.
func FitWithin(img image.Image) image.Image {
	bounds := img.Bounds()
	w, h := bounds.Dx(), bounds.Dy()

	scale := math.Min(float64(MaxDimension)/float64(w), float64(MaxDimension)/float64(h))
	if scale >= 1 {
		scale = 1
	}
	for i := 0; i < maxShrinkSteps && int(float64(w)*scale)*int(float64(h)*scale) > MaxPixels; i++ {
		scale *= shrinkFactor
	}
	if scale >= 1 {
		return img
	}

	nw, nh := int(float64(w)*scale), int(float64(h)*scale)
	if nw < 1 {
		nw = 1
	}
	if nh < 1 {
		nh = 1
	}
	dst := image.NewRGBA(image.Rect(0, 0, nw, nh))
	xdraw.CatmullRom.Scale(dst, dst.Bounds(), img, bounds, xdraw.Src, nil)
	return dst
}

// EncodePNG serializes an image as PNG.
func EncodePNG(img image.Image) ([]byte, error) {
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, fmt.Errorf("failed to encode PNG: %w", err)
	}
	return buf.Bytes(), nil
}

// Reencode decodes a payload, bounds it, and returns it as PNG.
func Reencode(data []byte) ([]byte, error) {
	img, err := Decode(data)
	if err != nil {
		return nil, err
	}
	return EncodePNG(FitWithin(img))
}
