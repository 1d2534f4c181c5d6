package extract

import (
	"path"
	"strings"
)

// Format identifies a supported document type. The set is closed: routing
// decisions switch on the enum, never on raw extension strings.
type Format int

const (
	FormatUnknown Format = iota
	FormatTXT
	FormatPDF
	FormatDOCX
	FormatImage
)

var extensionFormats = map[string]Format{
	".txt":  FormatTXT,
	".pdf":  FormatPDF,
	".docx": FormatDOCX,
	".png":  FormatImage,
	".jpg":  FormatImage,
	".jpeg": FormatImage,
}

// FormatForKey resolves the format for an object key or file path from its
// extension, case-insensitively.
func FormatForKey(key string) (Format, bool) {
	f, ok := extensionFormats[strings.ToLower(path.Ext(key))]
	return f, ok
}

func (f Format) String() string {
	switch f {
	case FormatTXT:
		return "txt"
	case FormatPDF:
		return "pdf"
	case FormatDOCX:
		return "docx"
	case FormatImage:
		return "image"
	default:
		return "unknown"
	}
}

// HasText reports whether the format produces a text artifact. Text-capable
// formats always produce one, even when the extracted text is empty.
func (f Format) HasText() bool {
	return f == FormatTXT || f == FormatPDF || f == FormatDOCX
}

// SingleImage reports whether the format produces exactly one unnumbered
// image artifact instead of a numbered sequence.
func (f Format) SingleImage() bool {
	return f == FormatImage
}
