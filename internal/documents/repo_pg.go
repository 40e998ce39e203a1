package documents

import (
	"context"
	"database/sql"
	"errors"
	"time"
)

// PGRepo implements Repo using Postgres.
type PGRepo struct {
	DB *sql.DB
}

const documentColumns = `id, user_id, title, file_name, file_key, file_url, file_size, status, is_starred, created_at, updated_at`

// Create inserts a new document row.
func (r *PGRepo) Create(ctx context.Context, doc Document) error {
	const query = `
INSERT INTO documents (id, user_id, title, file_name, file_key, file_url, file_size, status, is_starred, created_at, updated_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $10)`

	status := doc.Status
	if status == "" {
		status = StatusProcessing
	}
	createdAt := doc.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now().UTC()
	}

	var fileURL sql.NullString
	if doc.FileURL != "" {
		fileURL = sql.NullString{String: doc.FileURL, Valid: true}
	}

	_, err := r.DB.ExecContext(
		ctx,
		query,
		doc.ID,
		doc.UserID,
		doc.Title,
		doc.FileName,
		doc.FileKey,
		fileURL,
		doc.FileSize,
		status,
		doc.IsStarred,
		createdAt,
	)
	return err
}

// Promote marks a processing document as ready, recording its public URL
// and the stored byte size.
func (r *PGRepo) Promote(ctx context.Context, id, fileURL string, fileSize int64) error {
	const query = `
UPDATE documents
SET status = $2, file_url = $3, file_size = $4, updated_at = now()
WHERE id = $1`
	res, err := r.DB.ExecContext(ctx, query, id, StatusReady, fileURL, fileSize)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}

// ListByUser returns all of a user's documents, newest first.
func (r *PGRepo) ListByUser(ctx context.Context, userID string) ([]Document, error) {
	const query = `
SELECT ` + documentColumns + `
FROM documents
WHERE user_id = $1
ORDER BY created_at DESC`
	rows, err := r.DB.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	docs := []Document{}
	for rows.Next() {
		doc, err := scanDocument(rows)
		if err != nil {
			return nil, err
		}
		docs = append(docs, doc)
	}
	return docs, rows.Err()
}

// GetByID fetches a document by id scoped to its owner.
func (r *PGRepo) GetByID(ctx context.Context, userID, documentID string) (Document, error) {
	const query = `
SELECT ` + documentColumns + `
FROM documents
WHERE user_id = $1 AND id = $2
LIMIT 1`
	doc, err := scanDocument(r.DB.QueryRowContext(ctx, query, userID, documentID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Document{}, ErrNotFound
		}
		return Document{}, err
	}
	return doc, nil
}

// SetStarred updates the star flag and returns the updated document.
func (r *PGRepo) SetStarred(ctx context.Context, userID, documentID string, starred bool) (Document, error) {
	const query = `
UPDATE documents
SET is_starred = $3, updated_at = now()
WHERE user_id = $1 AND id = $2
RETURNING ` + documentColumns
	doc, err := scanDocument(r.DB.QueryRowContext(ctx, query, userID, documentID, starred))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Document{}, ErrNotFound
		}
		return Document{}, err
	}
	return doc, nil
}

// Delete removes a document row scoped to its owner.
func (r *PGRepo) Delete(ctx context.Context, userID, documentID string) error {
	const query = `DELETE FROM documents WHERE user_id = $1 AND id = $2`
	res, err := r.DB.ExecContext(ctx, query, userID, documentID)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanDocument(row rowScanner) (Document, error) {
	var doc Document
	var fileURL sql.NullString
	var updatedAt sql.NullTime
	err := row.Scan(
		&doc.ID,
		&doc.UserID,
		&doc.Title,
		&doc.FileName,
		&doc.FileKey,
		&fileURL,
		&doc.FileSize,
		&doc.Status,
		&doc.IsStarred,
		&doc.CreatedAt,
		&updatedAt,
	)
	if err != nil {
		return Document{}, err
	}
	if fileURL.Valid {
		doc.FileURL = fileURL.String
	}
	if updatedAt.Valid {
		doc.UpdatedAt = updatedAt.Time
	} else {
		doc.UpdatedAt = doc.CreatedAt
	}
	return doc, nil
}
