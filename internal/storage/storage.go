package storage

import (
	"context"
	"errors"
	"fmt"
	"mime"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Default expiry duration for presigned URLs
const DefaultPresignedURLExpiry = 15 * time.Minute

// Media kinds an exercise can carry.
const (
	KindImage = "img"
	KindVideo = "video"
)

var (
	ErrUnsupportedKind        = errors.New("storage: media kind must be img or video")
	ErrUnsupportedContentType = errors.New("storage: content type does not match media kind")
)

// MediaStorage hands out direct-upload URLs for exercise images and videos.
type MediaStorage interface {
	// GeneratePresignedUploadURL creates a temporary URL that allows a PUT of objectKey
	// with the given content type.
	GeneratePresignedUploadURL(ctx context.Context, objectKey string, contentType string, expires time.Duration) (string, error)

	// PublicURL is the stable URL stored on the exercise once the upload is done.
	PublicURL(objectKey string) string
}

// NewObjectKey builds a unique key such as "exercises/img/<uuid>.jpg".
func NewObjectKey(kind, contentType string) (string, error) {
	var prefix string
	switch kind {
	case KindImage:
		prefix = "image/"
	case KindVideo:
		prefix = "video/"
	default:
		return "", ErrUnsupportedKind
	}

	mediaType, _, err := mime.ParseMediaType(contentType)
	if err != nil || !strings.HasPrefix(mediaType, prefix) {
		return "", fmt.Errorf("%w: %q", ErrUnsupportedContentType, contentType)
	}

	ext := ""
	if exts, _ := mime.ExtensionsByType(mediaType); len(exts) > 0 {
		ext = exts[0]
	}
	return fmt.Sprintf("exercises/%s/%s%s", kind, uuid.NewString(), ext), nil
}
