package port

import (
	"context"
	"errors"
)

// ObjectStore persists opaque blobs (archive snapshots, invitation images)
// under slash-separated keys.
type ObjectStore interface {
	// Put uploads body at key and returns the object's public URL.
	Put(ctx context.Context, key string, body []byte, contentType string) (string, error)

	// Get downloads the object at key. Missing objects return ErrNotFound.
	Get(ctx context.Context, key string) ([]byte, error)

	// Delete removes the object at key. Deleting a missing object is not an error.
	Delete(ctx context.Context, key string) error

	// URL returns the public URL for key without contacting the backend.
	URL(key string) string
}

var ErrNotFound = errors.New("storage: object not found")
