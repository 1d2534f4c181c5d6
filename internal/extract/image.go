package extract

import (
	"github.com/vedantilag/docextract/internal/imaging"
)

type imageExtractor struct{}

func (imageExtractor) Format() Format { return FormatImage }

// A raster upload has no text side: the payload itself is decoded, bounded
// and re-encoded as the single image artifact.
func (imageExtractor) Extract(data []byte) (Result, error) {
	payload, err := imaging.Reencode(data)
	if err != nil {
		return Result{}, &DecodeError{Format: FormatImage, Err: err}
	}
	return Result{Images: [][]byte{payload}}, nil
}
