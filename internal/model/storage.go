package model

import (
	"context"
	"io"
)

// ObjectStorage is the remote binary-object store used for profile images.
type ObjectStorage interface {
	Upload(ctx context.Context, key string, reader io.Reader, size int64, contentType string) error
	PublicURL(key string) (string, error)
}
