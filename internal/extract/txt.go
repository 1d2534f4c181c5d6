package extract

import "strings"

type txtExtractor struct{}

func (txtExtractor) Format() Format { return FormatTXT }

func (txtExtractor) Extract(data []byte) (Result, error) {
	return Result{Text: Normalize(TXTText(data))}, nil
}

// TXTText interprets a payload as UTF-8 text, dropping invalid sequences.
// Plain text never fails to decode.
func TXTText(data []byte) string {
	return strings.ToValidUTF8(string(data), "")
}
