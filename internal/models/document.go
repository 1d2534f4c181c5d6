package models

import "time"

// ProcessingManifest is the optional Firestore record written after all
// artifacts of a document have been stored. It is write-only telemetry:
// nothing in the pipeline reads it back, so invocations stay independent.
type ProcessingManifest struct {
	InputBucket string    `firestore:"inputBucket,omitempty"`
	InputObject string    `firestore:"inputObject,omitempty"`
	FileHash    string    `firestore:"fileHash,omitempty"`
	Format      string    `firestore:"format,omitempty"`
	BaseKey     string    `firestore:"baseKey,omitempty"`
	TextBytes   int       `firestore:"textBytes"`
	ImageCount  int       `firestore:"imageCount"`
	DurationMS  int64     `firestore:"durationMs,omitempty"`
	CompletedAt time.Time `firestore:"completedAt,omitempty"`
}

// LocalResult is the JSON document the standalone CLI writes alongside the
// extracted assets.
type LocalResult struct {
	Text       string   `json:"text"`
	ImagePaths []string `json:"image_paths"`
}
