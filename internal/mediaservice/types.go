package mediaservice

import (
	"context"
	"io"
)

// ObjectStore is the slice of object storage the upload relay needs: put a
// blob under a key and answer its public URL.
type ObjectStore interface {
	Upload(ctx context.Context, key string, contentType string, body io.Reader) error
	PublicURL(key string) string
}

type MediaService struct {
	store ObjectStore
}
