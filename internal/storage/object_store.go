package storage

import "context"

// UploadResult points at a stored object.
type UploadResult struct {
	URL string
	Key string
}

// ObjectStore is the boundary to wherever signed documents live. Uploads
// happen before any database mutation; a failed upload aborts signing.
type ObjectStore interface {
	Upload(ctx context.Context, bucket, key string, data []byte, contentType string) (*UploadResult, error)
}
