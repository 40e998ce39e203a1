package object

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"io"
	"time"

	"glance-backend/internal/shared/util"
)

// Saved describes a stored blob.
type Saved struct {
	Key      string
	URL      string
	Size     int64
	MimeType string
}

// ObjectStore defines the contract for saving, reading and deleting binary
// objects.
type ObjectStore interface {
	Save(ctx context.Context, key string, contentType string, r io.Reader) (Saved, error)
	Open(ctx context.Context, key string) (io.ReadCloser, error)
	Delete(ctx context.Context, key string) error
}

// NewKey builds a collision-resistant storage key scoped under the owner:
// {ownerId}/{timestamp}-{random}-{sanitizedFileName}.
func NewKey(userID, fileName string) (string, error) {
	sanitized, err := util.SanitizeFileName(fileName)
	if err != nil {
		return "", fmt.Errorf("sanitize file name: %w", err)
	}
	owner, err := util.SanitizeFileName(userID)
	if err != nil {
		return "", fmt.Errorf("sanitize owner id: %w", err)
	}
	return fmt.Sprintf("%s/%d-%s-%s", owner, time.Now().UnixMilli(), randomID(), sanitized), nil
}

func randomID() string {
	var b [4]byte
	if _, err := rand.Read(b[:]); err != nil {
		return fmt.Sprintf("%d", time.Now().UnixNano())
	}
	return hex.EncodeToString(b[:])
}
