package extract

import (
	"bytes"
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/ledongthuc/pdf"
	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"

	"github.com/vedantilag/docextract/internal/imaging"
)

// Embedded images smaller than this are decorative noise (bullets, rules,
// list markers) and are dropped.
const minImageBytes = 512

type pdfExtractor struct{}

func (pdfExtractor) Format() Format { return FormatPDF }

func (pdfExtractor) Extract(data []byte) (Result, error) {
	text, err := PDFText(data)
	if err != nil {
		return Result{}, &DecodeError{Format: FormatPDF, Err: err}
	}
	raws, err := PDFImages(data)
	if err != nil {
		return Result{}, &DecodeError{Format: FormatPDF, Err: err}
	}
	images := make([][]byte, 0, len(raws))
	for _, raw := range raws {
		payload, err := imaging.Reencode(raw.Data)
		if err != nil {
			return Result{}, &DecodeError{Format: FormatPDF, Err: fmt.Errorf("page %d image %d: %w", raw.PageNr, raw.IndexInPage, err)}
		}
		images = append(images, payload)
	}
	return Result{Text: Normalize(text), Images: images}, nil
}

// PDFText returns the text of a PDF, one line per page. Pages whose content
// cannot be read contribute an empty line rather than failing the document.
func PDFText(data []byte) (string, error) {
	reader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("failed to open PDF: %w", err)
	}
	pages := make([]string, 0, reader.NumPage())
	for i := 1; i <= reader.NumPage(); i++ {
		page := reader.Page(i)
		if page.V.IsNull() {
			pages = append(pages, "")
			continue
		}
		content, err := page.GetPlainText(nil)
		if err != nil {
			content = ""
		}
		pages = append(pages, content)
	}
	return strings.Join(pages, "\n"), nil
}

// PDFImages enumerates the embedded raster images of a PDF in page order,
// then object order within each page. Payloads below minImageBytes are
// discarded.
func PDFImages(data []byte) ([]RawImage, error) {
	cfg := model.NewDefaultConfiguration()
	cfg.ValidationMode = model.ValidationRelaxed
	pageMaps, err := api.ExtractImagesRaw(bytes.NewReader(data), nil, cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to extract PDF images: %w", err)
	}
	return collectImages(pageMaps)
}

// collectImages flattens and orders the per-page image maps. The library
// returns them in randomized map order, so the images are sorted by page
// number and then by object number before being read.
func collectImages(pageMaps []map[int]model.Image) ([]RawImage, error) {
	var all []model.Image
	for _, pageMap := range pageMaps {
		for _, img := range pageMap {
			if img.Thumb {
				continue
			}
			all = append(all, img)
		}
	}
	sort.Slice(all, func(i, j int) bool {
		if all[i].PageNr != all[j].PageNr {
			return all[i].PageNr < all[j].PageNr
		}
		return all[i].ObjNr < all[j].ObjNr
	})

	var raws []RawImage
	page, index := 0, 0
	for _, img := range all {
		payload, err := io.ReadAll(img)
		if err != nil {
			return nil, fmt.Errorf("failed to read image object %d on page %d: %w", img.ObjNr, img.PageNr, err)
		}
		if len(payload) < minImageBytes {
			continue
		}
		if img.PageNr != page {
			page, index = img.PageNr, 0
		}
		index++
		raws = append(raws, RawImage{
			Data:        payload,
			PageNr:      img.PageNr,
			IndexInPage: index,
			FileType:    img.FileType,
		})
	}
	return raws, nil
}
