package gcp

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"cloud.google.com/go/storage"
	"google.golang.org/api/googleapi"
)

func TestGetEnv(t *testing.T) {
	t.Setenv("DOCEXTRACT_TEST_KEY", "configured")
	if got := GetEnv("DOCEXTRACT_TEST_KEY", "fallback"); got != "configured" {
		t.Fatalf("got %q, want the configured value", got)
	}
	if got := GetEnv("DOCEXTRACT_TEST_MISSING", "fallback"); got != "fallback" {
		t.Fatalf("got %q, want the fallback", got)
	}
}

func TestIsNotFound(t *testing.T) {
	cases := []struct {
		name string
		err  error
		want bool
	}{
		{"object not exist sentinel", storage.ErrObjectNotExist, true},
		{"wrapped sentinel", fmt.Errorf("open: %w", storage.ErrObjectNotExist), true},
		{"googleapi 404", &googleapi.Error{Code: http.StatusNotFound}, true},
		{"googleapi 500", &googleapi.Error{Code: http.StatusInternalServerError}, false},
		{"other error", errors.New("connection reset"), false},
	}
	for _, tc := range cases {
		if got := isNotFound(tc.err); got != tc.want {
			t.Errorf("%s: isNotFound = %v, want %v", tc.name, got, tc.want)
		}
	}
}
