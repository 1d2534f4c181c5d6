package services

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"log/slog"
	"path"
	"strings"
	"time"

	"cloud.google.com/go/storage"
	"github.com/gabriel-vasile/mimetype"

	"github.com/vedantilag/docextract/internal/extract"
	"github.com/vedantilag/docextract/internal/gcp"
	"github.com/vedantilag/docextract/internal/models"
)

const (
	dateLayout      = "02-Jan-06"
	textContentType = "text/plain"
	pngContentType  = "image/png"
)

// ObjectStore is the storage surface the processor needs. *gcp.GCSStore
// implements it; tests substitute an in-memory fake.
type ObjectStore interface {
	Fetch(ctx context.Context, bucket, object string) ([]byte, error)
	Put(ctx context.Context, bucket, object string, data []byte, contentType string) error
}

// ManifestRecorder persists one record per fully processed document.
type ManifestRecorder interface {
	Record(ctx context.Context, m models.ProcessingManifest) error
}

type ProcessorConfig struct {
	TargetBucket       string
	InputPrefix        string
	OutputPrefix       string
	ManifestCollection string
	ProjectID          string
}

type ProcessorFunction struct {
	store    ObjectStore
	recorder ManifestRecorder // nil when the manifest is disabled
	config   ProcessorConfig
	now      func() time.Time
}

// GCSEvent is the storage payload delivered inside the CloudEvent envelope.
// An event references exactly one object.
type GCSEvent struct {
	Bucket string `json:"bucket"`
	Name   string `json:"name"`
}

// loadProcessorConfig reads and validates the service configuration from the
// environment, normalizing the key prefixes.
func loadProcessorConfig() (ProcessorConfig, error) {
	config := ProcessorConfig{
		TargetBucket:       gcp.GetEnv("TARGET_BUCKET", ""),
		InputPrefix:        ensureSlash(gcp.GetEnv("INPUT_PREFIX", "uploads/")),
		OutputPrefix:       ensureSlash(gcp.GetEnv("OUTPUT_PREFIX", "extracted/")),
		ManifestCollection: gcp.GetEnv("MANIFEST_COLLECTION", ""),
		ProjectID:          gcp.GetEnv("PROJECT_ID", ""),
	}
	if config.TargetBucket == "" {
		return ProcessorConfig{}, fmt.Errorf("TARGET_BUCKET environment variable must be set")
	}
	if config.OutputPrefix == "" {
		// An empty output prefix would make the recursion guard match every
		// object and silently disable the whole pipeline.
		return ProcessorConfig{}, fmt.Errorf("OUTPUT_PREFIX environment variable must not be empty")
	}
	if config.ManifestCollection != "" && config.ProjectID == "" {
		return ProcessorConfig{}, fmt.Errorf("PROJECT_ID environment variable must be set when MANIFEST_COLLECTION is")
	}
	return config, nil
}

func NewProcessor(ctx context.Context) (*ProcessorFunction, error) {
	config, err := loadProcessorConfig()
	if err != nil {
		return nil, err
	}

	storageClient, err := storage.NewClient(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to create Storage client: %w", err)
	}

	var recorder ManifestRecorder
	if config.ManifestCollection != "" {
		fsRecorder, err := gcp.NewFirestoreRecorder(ctx, config.ProjectID, config.ManifestCollection)
		if err != nil {
			return nil, fmt.Errorf("failed to create manifest recorder: %w", err)
		}
		recorder = fsRecorder
	}

	f := &ProcessorFunction{
		store:    gcp.NewGCSStore(storageClient),
		recorder: recorder,
		config:   config,
		now:      time.Now,
	}
	slog.Info("Document extractor initialized.",
		"targetBucket", config.TargetBucket,
		"inputPrefix", config.InputPrefix,
		"outputPrefix", config.OutputPrefix,
		"manifestEnabled", recorder != nil,
	)
	return f, nil
}

func (f *ProcessorFunction) Process(ctx context.Context, e GCSEvent) error {
	logCtx := slog.With("gcsBucket", e.Bucket, "gcsObject", e.Name)

	if strings.HasSuffix(e.Name, "/") {
		logCtx.Info("Skipping folder placeholder object.")
		return nil
	}
	if strings.HasPrefix(e.Name, f.config.OutputPrefix) {
		logCtx.Info("Skipping object under the output prefix.")
		return nil
	}
	if f.config.InputPrefix != "" && !strings.HasPrefix(e.Name, f.config.InputPrefix) {
		logCtx.Info("Skipping object outside the input prefix.", "inputPrefix", f.config.InputPrefix)
		return nil
	}
	logCtx.Info("Processing new document upload.")

	started := f.now()
	data, err := f.store.Fetch(ctx, e.Bucket, e.Name)
	if err != nil {
		logCtx.Error("Failed to fetch source object", "error", err)
		return err
	}
	logCtx.Info("Fetched source object.", "sizeBytes", len(data), "detectedType", mimetype.Detect(data).String())

	format, ok := extract.FormatForKey(e.Name)
	if !ok {
		logCtx.Warn("Unsupported file type. Skipping.", "extension", path.Ext(e.Name))
		return nil
	}
	logCtx = logCtx.With("format", format.String())

	extractor, _ := extract.For(format)
	result, err := extractor.Extract(data)
	if err != nil {
		logCtx.Error("Extraction failed", "error", err)
		return fmt.Errorf("failed to extract %s: %w", e.Name, err)
	}

	baseKey := f.baseKey(e.Name)
	logCtx = logCtx.With("baseKey", baseKey)
	if err := f.storeArtifacts(ctx, logCtx, format, baseKey, result); err != nil {
		return err
	}

	f.record(ctx, logCtx, e, format, baseKey, data, result, started)
	logCtx.Info("Processing complete.", "textBytes", len(result.Text), "imageCount", len(result.Images))
	return nil
}

// baseKey derives the artifact folder for one upload: the output prefix, the
// processing date, then the original file name.
func (f *ProcessorFunction) baseKey(object string) string {
	return f.config.OutputPrefix + f.now().Format(dateLayout) + "/" + path.Base(object)
}

// storeArtifacts writes the text artifact first, then the images in document
// order. Text-capable formats always get a text artifact, even an empty one.
func (f *ProcessorFunction) storeArtifacts(ctx context.Context, logCtx *slog.Logger, format extract.Format, baseKey string, result extract.Result) error {
	if format.HasText() {
		if err := f.store.Put(ctx, f.config.TargetBucket, baseKey+"/txt", []byte(result.Text), textContentType); err != nil {
			logCtx.Error("Failed to store text artifact", "error", err)
			return err
		}
	}
	for i, payload := range result.Images {
		name := fmt.Sprintf("img_%d.png", i+1)
		if format.SingleImage() {
			name = "img.png"
		}
		if err := f.store.Put(ctx, f.config.TargetBucket, baseKey+"/"+name, payload, pngContentType); err != nil {
			logCtx.Error("Failed to store image artifact", "error", err, "artifact", name)
			return err
		}
	}
	return nil
}

// record writes the optional manifest. Failures degrade to a warning: the
// artifacts are already stored, and failing the invocation now would only
// make a redelivery rewrite them.
func (f *ProcessorFunction) record(ctx context.Context, logCtx *slog.Logger, e GCSEvent, format extract.Format, baseKey string, data []byte, result extract.Result, started time.Time) {
	if f.recorder == nil {
		return
	}
	manifest := models.ProcessingManifest{
		InputBucket: e.Bucket,
		InputObject: e.Name,
		FileHash:    contentHash(data),
		Format:      format.String(),
		BaseKey:     baseKey,
		TextBytes:   len(result.Text),
		ImageCount:  len(result.Images),
		DurationMS:  f.now().Sub(started).Milliseconds(),
		CompletedAt: f.now(),
	}
	if err := f.recorder.Record(ctx, manifest); err != nil {
		logCtx.Warn("Failed to record processing manifest.", "error", err)
	}
}

// ensureSlash normalizes a key prefix to end with a single slash. Empty stays
// empty, which for the input prefix means no filtering.
func ensureSlash(prefix string) string {
	if prefix == "" {
		return ""
	}
	return strings.TrimSuffix(prefix, "/") + "/"
}

func contentHash(data []byte) string {
	hash := sha256.Sum256(data)
	return hex.EncodeToString(hash[:])
}
