package gcp

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"

	"cloud.google.com/go/storage"
	"google.golang.org/api/googleapi"
)

// GetEnv is a helper to read an environment variable or return a default value.
func GetEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}

// ErrObjectNotFound reports a fetch of an object that no longer exists, for
// example one deleted between the trigger event and processing.
var ErrObjectNotFound = errors.New("object not found")

// GCSStore adapts a storage client to the whole-object fetch and put
// operations the extraction pipeline needs.
type GCSStore struct {
	client *storage.Client
}

func NewGCSStore(client *storage.Client) *GCSStore {
	return &GCSStore{client: client}
}

// Fetch reads a whole object into memory.
func (s *GCSStore) Fetch(ctx context.Context, bucket, object string) ([]byte, error) {
	reader, err := s.client.Bucket(bucket).Object(object).NewReader(ctx)
	if err != nil {
		if isNotFound(err) {
			return nil, fmt.Errorf("gs://%s/%s: %w", bucket, object, ErrObjectNotFound)
		}
		return nil, fmt.Errorf("failed to open gs://%s/%s: %w", bucket, object, err)
	}
	defer reader.Close()

	data, err := io.ReadAll(reader)
	if err != nil {
		return nil, fmt.Errorf("failed to read gs://%s/%s: %w", bucket, object, err)
	}
	return data, nil
}

// Put writes an object with the given content type, replacing any previous
// version. Artifact keys are date-scoped, so the last write for a given day
// wins.
func (s *GCSStore) Put(ctx context.Context, bucket, object string, data []byte, contentType string) error {
	writer := s.client.Bucket(bucket).Object(object).NewWriter(ctx)
	writer.ContentType = contentType

	if _, err := writer.Write(data); err != nil {
		_ = writer.Close()
		return fmt.Errorf("failed to write gs://%s/%s: %w", bucket, object, err)
	}
	if err := writer.Close(); err != nil {
		return fmt.Errorf("failed to finalize gs://%s/%s: %w", bucket, object, err)
	}
	return nil
}

func isNotFound(err error) bool {
	if errors.Is(err, storage.ErrObjectNotExist) {
		return true
	}
	var gerr *googleapi.Error
	return errors.As(err, &gerr) && gerr.Code == http.StatusNotFound
}
