package catalog

import (
	"context"
	"io"
)

// ObjectStorage abstracts the blob store holding book cover images
type ObjectStorage interface {
	// Upload stores the object under key and returns the stored key
	Upload(ctx context.Context, key, contentType string, body io.Reader) (string, error)
	// PresignedURL returns a time-limited download URL for the key
	PresignedURL(ctx context.Context, key string) (string, error)
	// Delete removes the object under key
	Delete(ctx context.Context, key string) error
}
