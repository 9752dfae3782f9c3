package mediaservice

import (
	"context"
	"fmt"
	"io"
	"path"
	"strings"
	"time"

	"github.com/google/uuid"
)

func NewMediaService(store ObjectStore) *MediaService {
	return &MediaService{store: store}
}

// Upload stores a file under a fresh key and returns its public URL. The
// extension comes from the original filename, then from the declared
// content type, then falls back to png. Any content type is accepted.
func (s *MediaService) Upload(ctx context.Context, filename, contentType string, body io.Reader) (string, error) {
	key := objectKey(filename, contentType)

	if contentType == "" {
		contentType = "image/png"
	}

	err := s.store.Upload(ctx, key, contentType, body)
	if err != nil {
		return "", err
	}

	return s.store.PublicURL(key), nil
}

func objectKey(filename, contentType string) string {
	ext := strings.TrimPrefix(path.Ext(filename), ".")
	if ext == "" {
		if i := strings.LastIndex(contentType, "/"); i >= 0 {
			ext = contentType[i+1:]
		}
	}
	if ext == "" {
		ext = "png"
	}
	ext = strings.ToLower(ext)

	return fmt.Sprintf("posts/%d-%s.%s", time.Now().UnixMilli(), uuid.NewString(), ext)
}
