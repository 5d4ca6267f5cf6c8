package storage

import (
	"context"
	"io"

	catalogapp "github.com/ebookstore/backend/internal/application/catalog"
)

var _ catalogapp.ObjectStorage = (*StubObjectStorage)(nil)

// StubObjectStorage is a no-op storage used when no object store is
// configured. Uploads succeed without persisting anything and URLs
// resolve to empty strings.
type StubObjectStorage struct{}

// NewStubObjectStorage creates a stub storage adapter
func NewStubObjectStorage() *StubObjectStorage {
	return &StubObjectStorage{}
}

// Upload discards the body and returns the key unchanged
func (s *StubObjectStorage) Upload(ctx context.Context, key, contentType string, body io.Reader) (string, error) {
	_, _ = io.Copy(io.Discard, body)
	return key, nil
}

// PresignedURL returns an empty URL
func (s *StubObjectStorage) PresignedURL(ctx context.Context, key string) (string, error) {
	return "", nil
}

// Delete is a no-op
func (s *StubObjectStorage) Delete(ctx context.Context, key string) error {
	return nil
}
