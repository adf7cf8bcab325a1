package storage

import (
	"context"
	"io"
)

// ObjectStore is the blob-side collaborator for the catalog. Buckets are
// named partitions of the hosted store; the catalog uses one for preview
// images and one for design files.
type ObjectStore interface {
	// Upload stores the object under key and returns the stored key.
	Upload(ctx context.Context, bucket, key string, body io.Reader, contentType string) (string, error)
	// Delete removes the object. Deleting a missing key is not an error.
	Delete(ctx context.Context, bucket, key string) error
	// PublicURL returns the publicly resolvable URL for a stored key.
	PublicURL(bucket, key string) string
}
