package gcp

import (
	"context"
	"fmt"

	"cloud.google.com/go/firestore"

	"github.com/vedantilag/docextract/internal/models"
)

// FirestoreRecorder persists processing manifests to a Firestore collection.
type FirestoreRecorder struct {
	client     *firestore.Client
	collection string
}

func NewFirestoreRecorder(ctx context.Context, projectID, collection string) (*FirestoreRecorder, error) {
	if projectID == "" {
		return nil, fmt.Errorf("projectID must be provided to create a firestore recorder")
	}
	client, err := firestore.NewClient(ctx, projectID)
	if err != nil {
		return nil, fmt.Errorf("failed to create Firestore client: %w", err)
	}
	return &FirestoreRecorder{client: client, collection: collection}, nil
}

// Record appends one manifest document to the collection.
func (r *FirestoreRecorder) Record(ctx context.Context, m models.ProcessingManifest) error {
	if _, _, err := r.client.Collection(r.collection).Add(ctx, m); err != nil {
		return fmt.Errorf("failed to record processing manifest: %w", err)
	}
	return nil
}
