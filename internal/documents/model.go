package documents

import "time"

// Document lifecycle states. A row is written before the blob upload and
// only promoted to ready once the blob is stored.
const (
	StatusProcessing = "processing"
	StatusReady      = "ready"
	StatusError      = "error"
)

// Document represents an uploaded PDF owned by a user.
type Document struct {
	ID        string
	UserID    string
	Title     string
	FileName  string
	FileKey   string
	FileURL   string
	FileSize  int64
	Status    string
	IsStarred bool
	CreatedAt time.Time
	UpdatedAt time.Time
}
