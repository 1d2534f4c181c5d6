package imaging

import (
	"bytes"
	"image"
	"image/jpeg"
	"testing"

	"golang.org/x/image/bmp"
)

func TestFitWithinKeepsSmallImages(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 640, 480))
	if got := FitWithin(img); got != img {
		t.Fatal("expected an in-bounds image to be returned unchanged")
	}
}

func TestFitWithinBoundsLongEdge(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 4096, 1024))
	bounds := FitWithin(img).Bounds()
	if bounds.Dx() != 2048 || bounds.Dy() != 512 {
		t.Fatalf("got %dx%d, want 2048x512", bounds.Dx(), bounds.Dy())
	}
}

func TestFitWithinNeverExceedsBudgets(t *testing.T) {
	sizes := []struct{ w, h int }{
		{2048, 2048},
		{2049, 2048},
		{2560, 1920},
		{2500, 100},
		{100, 2500},
	}
	for _, size := range sizes {
		src := image.NewRGBA(image.Rect(0, 0, size.w, size.h))
		bounds := FitWithin(src).Bounds()
		w, h := bounds.Dx(), bounds.Dy()
		if w > MaxDimension || h > MaxDimension {
			t.Errorf("%dx%d resized to %dx%d, exceeds the edge cap", size.w, size.h, w, h)
		}
		if w*h > MaxPixels {
			t.Errorf("%dx%d resized to %dx%d, exceeds the pixel cap", size.w, size.h, w, h)
		}
		if w > size.w || h > size.h {
			t.Errorf("%dx%d was upscaled to %dx%d", size.w, size.h, w, h)
		}
	}
}

func TestReencodeJPEGToPNG(t *testing.T) {
	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, image.NewRGBA(image.Rect(0, 0, 12, 7)), nil); err != nil {
		t.Fatalf("encode jpeg: %v", err)
	}

	payload, err := Reencode(buf.Bytes())
	if err != nil {
		t.Fatalf("Reencode error: %v", err)
	}
	img, format, err := image.Decode(bytes.NewReader(payload))
	if err != nil {
		t.Fatalf("decode output: %v", err)
	}
	if format != "png" {
		t.Fatalf("output encoded as %q, want png", format)
	}
	if bounds := img.Bounds(); bounds.Dx() != 12 || bounds.Dy() != 7 {
		t.Fatalf("output is %dx%d, want 12x7", bounds.Dx(), bounds.Dy())
	}
}

func TestDecodeBMP(t *testing.T) {
	var buf bytes.Buffer
	if err := bmp.Encode(&buf, image.NewRGBA(image.Rect(0, 0, 5, 5))); err != nil {
		t.Fatalf("encode bmp: %v", err)
	}

	img, err := Decode(buf.Bytes())
	if err != nil {
		t.Fatalf("Decode error: %v", err)
	}
	if bounds := img.Bounds(); bounds.Dx() != 5 || bounds.Dy() != 5 {
		t.Fatalf("got %dx%d, want 5x5", bounds.Dx(), bounds.Dy())
	}
}

func TestDecodeRejectsGarbage(t *testing.T) {
	if _, err := Decode([]byte("not an image")); err == nil {
		t.Fatal("expected a decode error")
	}
}
