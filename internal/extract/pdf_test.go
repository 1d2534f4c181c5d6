package extract

import (
	"bytes"
	"errors"
	"testing"

	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
)

func rawPDFImage(pageNr, objNr, size int) model.Image {
	return model.Image{
		Reader:   bytes.NewReader(bytes.Repeat([]byte{0xab}, size)),
		PageNr:   pageNr,
		ObjNr:    objNr,
		FileType: "png",
	}
}

func TestCollectImagesOrdersAndFilters(t *testing.T) {
	pageMaps := []map[int]model.Image{
		{
			31: rawPDFImage(2, 31, 600),
			12: rawPDFImage(2, 12, 700),
		},
		{
			5: rawPDFImage(1, 5, 800),
			9: rawPDFImage(1, 9, 100),
		},
	}

	raws, err := collectImages(pageMaps)
	if err != nil {
		t.Fatalf("collectImages error: %v", err)
	}
	want := []struct {
		page, index, size int
	}{
		{1, 1, 800},
		{2, 1, 700},
		{2, 2, 600},
	}
	if len(raws) != len(want) {
		t.Fatalf("got %d images, want %d", len(raws), len(want))
	}
	for i, w := range want {
		got := raws[i]
		if got.PageNr != w.page || got.IndexInPage != w.index || len(got.Data) != w.size {
			t.Errorf("image %d = page %d index %d size %d, want page %d index %d size %d",
				i, got.PageNr, got.IndexInPage, len(got.Data), w.page, w.index, w.size)
		}
	}
}

func TestCollectImagesSizeFloor(t *testing.T) {
	pageMaps := []map[int]model.Image{{
		1: rawPDFImage(1, 1, minImageBytes-1),
		2: rawPDFImage(1, 2, minImageBytes),
	}}

	raws, err := collectImages(pageMaps)
	if err != nil {
		t.Fatalf("collectImages error: %v", err)
	}
	if len(raws) != 1 {
		t.Fatalf("got %d images, want 1", len(raws))
	}
	if len(raws[0].Data) != minImageBytes || raws[0].IndexInPage != 1 {
		t.Fatalf("kept image has size %d index %d", len(raws[0].Data), raws[0].IndexInPage)
	}
}

func TestCollectImagesSkipsThumbnails(t *testing.T) {
	img := rawPDFImage(1, 3, 900)
	img.Thumb = true

	raws, err := collectImages([]map[int]model.Image{{3: img}})
	if err != nil {
		t.Fatalf("collectImages error: %v", err)
	}
	if len(raws) != 0 {
		t.Fatalf("got %d images, want none", len(raws))
	}
}

func TestPDFTextRejectsGarbage(t *testing.T) {
	if _, err := PDFText([]byte("not a pdf")); err == nil {
		t.Fatal("expected an error for non-PDF input")
	}
}

func TestPDFExtractRejectsGarbage(t *testing.T) {
	_, err := pdfExtractor{}.Extract([]byte("%PDF- nope, still not a pdf"))
	var decodeErr *DecodeError
	if !errors.As(err, &decodeErr) {
		t.Fatalf("got %v, want a DecodeError", err)
	}
	if decodeErr.Format != FormatPDF {
		t.Fatalf("decode error format = %v, want %v", decodeErr.Format, FormatPDF)
	}
}
