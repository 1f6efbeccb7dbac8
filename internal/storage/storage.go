package storage

import "context"

// ObjectStorage captures the minimal S3-compatible operations the pipeline
// needs to publish the portal artifacts.
type ObjectStorage interface {
	UploadFile(ctx context.Context, key, path, contentType string) error
}
