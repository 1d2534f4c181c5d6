package services

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/gabriel-vasile/mimetype"

	"github.com/vedantilag/docextract/internal/extract"
	"github.com/vedantilag/docextract/internal/models"
)

// LocalProcessor runs the extractors against files on disk, without any
// cloud dependency. The normalized text lands as a JSON document; images are
// written raw, exactly as stored in the source container.
type LocalProcessor struct {
	TextDir  string
	ImageDir string
}

func NewLocalProcessor(textDir, imageDir string) *LocalProcessor {
	return &LocalProcessor{TextDir: textDir, ImageDir: imageDir}
}

// Process extracts one local file. It returns the result that was written to
// {TextDir}/{stem}.json.
func (p *LocalProcessor) Process(file string) (models.LocalResult, error) {
	logCtx := slog.With("file", file)

	format, ok := extract.FormatForKey(file)
	if !ok {
		return models.LocalResult{}, fmt.Errorf("%s: %w", filepath.Ext(file), extract.ErrUnsupportedFormat)
	}
	data, err := os.ReadFile(file)
	if err != nil {
		return models.LocalResult{}, fmt.Errorf("failed to read %s: %w", file, err)
	}
	if err := os.MkdirAll(p.TextDir, 0o755); err != nil {
		return models.LocalResult{}, fmt.Errorf("failed to create text directory: %w", err)
	}
	if err := os.MkdirAll(p.ImageDir, 0o755); err != nil {
		return models.LocalResult{}, fmt.Errorf("failed to create image directory: %w", err)
	}

	text, err := localText(format, data)
	if err != nil {
		return models.LocalResult{}, &extract.DecodeError{Format: format, Err: err}
	}
	imagePaths, err := p.writeRawImages(format, data)
	if err != nil {
		return models.LocalResult{}, err
	}

	result := models.LocalResult{Text: extract.Normalize(text), ImagePaths: imagePaths}
	if result.ImagePaths == nil {
		result.ImagePaths = []string{}
	}
	payload, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return models.LocalResult{}, fmt.Errorf("failed to marshal result: %w", err)
	}

	stem := strings.TrimSuffix(filepath.Base(file), filepath.Ext(file))
	dest := filepath.Join(p.TextDir, stem+".json")
	if err := os.WriteFile(dest, payload, 0o644); err != nil {
		return models.LocalResult{}, fmt.Errorf("failed to write %s: %w", dest, err)
	}
	logCtx.Info("Wrote extraction result.", "textFile", dest, "textBytes", len(result.Text), "imageCount", len(result.ImagePaths))
	return result, nil
}

func localText(format extract.Format, data []byte) (string, error) {
	switch format {
	case extract.FormatTXT:
		return extract.TXTText(data), nil
	case extract.FormatPDF:
		return extract.PDFText(data)
	case extract.FormatDOCX:
		return extract.DOCXText(data)
	default:
		return "", nil
	}
}

// writeRawImages saves the document's images into ImageDir and returns their
// paths. PDF images are named pdf_image_{page}_{index}, DOCX images
// image_{index}, and a raster upload keeps its own payload as img.
func (p *LocalProcessor) writeRawImages(format extract.Format, data []byte) ([]string, error) {
	var paths []string
	switch format {
	case extract.FormatPDF:
		raws, err := extract.PDFImages(data)
		if err != nil {
			return nil, &extract.DecodeError{Format: format, Err: err}
		}
		for _, raw := range raws {
			name := fmt.Sprintf("pdf_image_%d_%d%s", raw.PageNr, raw.IndexInPage, rawExtension(raw))
			dest, err := p.writeImage(name, raw.Data)
			if err != nil {
				return nil, err
			}
			paths = append(paths, dest)
		}
	case extract.FormatDOCX:
		raws, err := extract.DOCXImages(data)
		if err != nil {
			return nil, &extract.DecodeError{Format: format, Err: err}
		}
		for _, raw := range raws {
			name := fmt.Sprintf("image_%d%s", raw.IndexInPage, rawExtension(raw))
			dest, err := p.writeImage(name, raw.Data)
			if err != nil {
				return nil, err
			}
			paths = append(paths, dest)
		}
	case extract.FormatImage:
		name := "img" + rawExtension(extract.RawImage{Data: data})
		dest, err := p.writeImage(name, data)
		if err != nil {
			return nil, err
		}
		paths = append(paths, dest)
	}
	return paths, nil
}

func (p *LocalProcessor) writeImage(name string, data []byte) (string, error) {
	dest := filepath.Join(p.ImageDir, name)
	if err := os.WriteFile(dest, data, 0o644); err != nil {
		return "", fmt.Errorf("failed to write %s: %w", dest, err)
	}
	return dest, nil
}

// rawExtension picks a file extension for a raw payload: the container's
// encoding hint when present, the sniffed MIME type otherwise.
func rawExtension(raw extract.RawImage) string {
	if raw.FileType != "" {
		return "." + raw.FileType
	}
	if ext := mimetype.Detect(raw.Data).Extension(); ext != "" {
		return ext
	}
	return ".png"
}
