package extract

import (
	"errors"
	"testing"
)

func TestDecodeErrorUnwraps(t *testing.T) {
	cause := errors.New("bad header")
	err := &DecodeError{Format: FormatPDF, Err: cause}
	if !errors.Is(err, cause) {
		t.Fatal("DecodeError does not unwrap to its cause")
	}
	if got := err.Error(); got != "decode pdf: bad header" {
		t.Fatalf("Error() = %q", got)
	}
}
