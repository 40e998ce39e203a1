package documents

import (
	"context"
	"io"
	"path"
	"strings"
	"time"

	"github.com/google/uuid"

	"glance-backend/internal/shared/storage/object"
	"glance-backend/internal/shared/telemetry"
)

// VectorPurger drops a document's partition from the vector store.
type VectorPurger interface {
	Purge(ctx context.Context, docID string) error
}

// Service contains business logic for documents.
type Service struct {
	Repo    Repo
	Store   object.ObjectStore
	Vectors VectorPurger
}

// Upload records the document before storing the blob so an interrupted
// upload is visible as a processing row rather than an orphaned blob. The
// row is promoted to ready once the blob is stored; on failure the side
// that succeeded is rolled back.
func (s *Service) Upload(ctx context.Context, userID, fileName, contentType string, r io.Reader) (Document, error) {
	if fileName == "" {
		return Document{}, ErrInvalidInput
	}

	key, err := object.NewKey(userID, fileName)
	if err != nil {
		return Document{}, ErrInvalidInput
	}

	doc := Document{
		ID:        uuid.NewString(),
		UserID:    userID,
		Title:     titleFromFileName(fileName),
		FileName:  fileName,
		FileKey:   key,
		Status:    StatusProcessing,
		CreatedAt: time.Now().UTC(),
	}
	doc.UpdatedAt = doc.CreatedAt

	if err := s.Repo.Create(ctx, doc); err != nil {
		return Document{}, err
	}

	saved, err := s.Store.Save(ctx, key, contentType, r)
	if err != nil {
		if delErr := s.Repo.Delete(ctx, userID, doc.ID); delErr != nil {
			telemetry.Warn("documents.upload.rollback_row", map[string]any{
				"document_id": doc.ID,
				"error":       delErr.Error(),
			})
		}
		return Document{}, err
	}

	if err := s.Repo.Promote(ctx, doc.ID, saved.URL, saved.Size); err != nil {
		if delErr := s.Store.Delete(ctx, key); delErr != nil {
			telemetry.Warn("documents.upload.rollback_blob", map[string]any{
				"file_key": key,
				"error":    delErr.Error(),
			})
		}
		if delErr := s.Repo.Delete(ctx, userID, doc.ID); delErr != nil {
			telemetry.Warn("documents.upload.rollback_row", map[string]any{
				"document_id": doc.ID,
				"error":       delErr.Error(),
			})
		}
		return Document{}, err
	}

	doc.Status = StatusReady
	doc.FileURL = saved.URL
	doc.FileSize = saved.Size

	telemetry.Info("documents.uploaded", map[string]any{
		"document_id": doc.ID,
		"file_key":    key,
		"size_bytes":  saved.Size,
	})
	return doc, nil
}

// List returns the user's documents, newest first.
func (s *Service) List(ctx context.Context, userID string) ([]Document, error) {
	if userID == "" {
		return nil, ErrInvalidInput
	}
	return s.Repo.ListByUser(ctx, userID)
}

// Get returns a single document scoped to its owner.
func (s *Service) Get(ctx context.Context, userID, documentID string) (Document, error) {
	if userID == "" || documentID == "" {
		return Document{}, ErrInvalidInput
	}
	return s.Repo.GetByID(ctx, userID, documentID)
}

// ToggleStar flips the star flag and returns the updated document.
func (s *Service) ToggleStar(ctx context.Context, userID, documentID string) (Document, error) {
	doc, err := s.Get(ctx, userID, documentID)
	if err != nil {
		return Document{}, err
	}
	return s.Repo.SetStarred(ctx, userID, documentID, !doc.IsStarred)
}

// Delete removes the document row, then cleans up the blob and the vector
// partition. Cleanup failures are logged, not surfaced; the row is the
// source of truth and it is already gone.
func (s *Service) Delete(ctx context.Context, userID, documentID string) error {
	doc, err := s.Get(ctx, userID, documentID)
	if err != nil {
		return err
	}

	if err := s.Repo.Delete(ctx, userID, documentID); err != nil {
		return err
	}

	if err := s.Store.Delete(ctx, doc.FileKey); err != nil {
		telemetry.Warn("documents.delete.blob", map[string]any{
			"document_id": documentID,
			"file_key":    doc.FileKey,
			"error":       err.Error(),
		})
	}
	if s.Vectors != nil {
		if err := s.Vectors.Purge(ctx, documentID); err != nil {
			telemetry.Warn("documents.delete.vectors", map[string]any{
				"document_id": documentID,
				"error":       err.Error(),
			})
		}
	}

	telemetry.Info("documents.deleted", map[string]any{"document_id": documentID})
	return nil
}

func titleFromFileName(fileName string) string {
	base := strings.TrimSuffix(fileName, path.Ext(fileName))
	base = strings.NewReplacer("_", " ", "-", " ").Replace(base)
	base = strings.Join(strings.Fields(base), " ")
	if base == "" {
		return fileName
	}
	return base
}
