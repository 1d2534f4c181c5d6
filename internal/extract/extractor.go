package extract

// Result is the complete output of one extraction pass. Text is already
// normalized; Images are resized PNG payloads in document order.
type Result struct {
	Text   string
	Images [][]byte
}

// Extractor turns the raw bytes of one document into a Result.
// Implementations are pure functions over the payload: no I/O, no shared
// state, no retained references to the input.
type Extractor interface {
	Format() Format
	Extract(data []byte) (Result, error)
}

// RawImage is an embedded image exactly as stored in its container, before
// any resizing or re-encoding. The standalone mode writes these to disk
// untouched.
type RawImage struct {
	Data        []byte
	PageNr      int    // 1-based source page; zero for formats without pages
	IndexInPage int    // 1-based position within the page, or within the archive
	FileType    string // encoding hint from the container, e.g. "png"; may be empty
}

// For returns the extractor for a format. The format set is closed, so every
// value FormatForKey hands out resolves to a non-nil extractor.
func For(f Format) (Extractor, bool) {
	switch f {
	case FormatTXT:
		return txtExtractor{}, true
	case FormatPDF:
		return pdfExtractor{}, true
	case FormatDOCX:
		return docxExtractor{}, true
	case FormatImage:
		return imageExtractor{}, true
	default:
		return nil, false
	}
}
