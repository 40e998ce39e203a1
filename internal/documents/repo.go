package documents

import (
	"context"
	"errors"
)

var (
	ErrNotFound     = errors.New("document not found")
	ErrInvalidInput = errors.New("invalid input")
)

// Repo defines persistence operations for documents.
type Repo interface {
	Create(ctx context.Context, doc Document) error
	Promote(ctx context.Context, id, fileURL string, fileSize int64) error
	ListByUser(ctx context.Context, userID string) ([]Document, error)
	GetByID(ctx context.Context, userID, documentID string) (Document, error)
	SetStarred(ctx context.Context, userID, documentID string, starred bool) (Document, error)
	Delete(ctx context.Context, userID, documentID string) error
}
