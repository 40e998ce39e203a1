// Package chat answers user questions about a document by retrieving the
// most relevant indexed chunks and prompting the completion model with them.
package chat

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"glance-backend/internal/documents"
	"glance-backend/internal/extract"
	"glance-backend/internal/index"
	"glance-backend/internal/llm"
	"glance-backend/internal/shared/storage/object"
	"glance-backend/internal/shared/telemetry"
)

const defaultTopK = 4

var (
	ErrEmptyMessage = errors.New("message is required")
	ErrNoText       = errors.New("document has no extractable text")
)

// TextExtractor loads a stored document and returns its plain text.
type TextExtractor func(ctx context.Context, store object.ObjectStore, key string) (string, error)

// Answer is the reply to a chat message.
type Answer struct {
	Response      string
	DocumentTitle string
	Timestamp     time.Time
}

// Service retrieves document context and generates answers.
type Service struct {
	Docs    *documents.Service
	Store   object.ObjectStore
	Index   *index.Indexer
	LLM     llm.Completer
	Extract TextExtractor
	TopK    int
}

// Ask answers a question about a document the user owns. The document is
// indexed lazily on the first question asked about it.
func (s *Service) Ask(ctx context.Context, userID, documentID, message string) (Answer, error) {
	message = strings.TrimSpace(message)
	if message == "" {
		return Answer{}, ErrEmptyMessage
	}

	doc, err := s.Docs.Get(ctx, userID, documentID)
	if err != nil {
		return Answer{}, err
	}

	if err := s.ensureIndexed(ctx, doc); err != nil {
		return Answer{}, err
	}

	topK := s.TopK
	if topK <= 0 {
		topK = defaultTopK
	}
	chunks, err := s.Index.Search(ctx, doc.ID, message, topK)
	if err != nil {
		return Answer{}, fmt.Errorf("search document %s: %w", doc.ID, err)
	}

	response, err := s.LLM.Complete(ctx, buildSystemPrompt(doc.Title, chunks), message)
	if err != nil {
		return Answer{}, err
	}

	telemetry.Info("chat.answered", map[string]any{
		"document_id": doc.ID,
		"chunks_used": len(chunks),
	})
	return Answer{
		Response:      response,
		DocumentTitle: doc.Title,
		Timestamp:     time.Now().UTC(),
	}, nil
}

func (s *Service) ensureIndexed(ctx context.Context, doc documents.Document) error {
	indexed, err := s.Index.Indexed(ctx, doc.ID)
	if err != nil {
		return fmt.Errorf("check index for document %s: %w", doc.ID, err)
	}
	if indexed {
		return nil
	}

	extractText := s.Extract
	if extractText == nil {
		extractText = extract.FromStore
	}
	text, err := extractText(ctx, s.Store, doc.FileKey)
	if err != nil {
		if errors.Is(err, extract.ErrNoText) {
			return ErrNoText
		}
		return fmt.Errorf("extract document %s: %w", doc.ID, err)
	}

	if _, err := s.Index.Index(ctx, doc.ID, text); err != nil {
		return err
	}
	return nil
}

func buildSystemPrompt(title string, chunks []index.Chunk) string {
	var b strings.Builder
	b.WriteString("You are a helpful assistant answering questions about the document \"")
	b.WriteString(title)
	b.WriteString("\". Answer using only the excerpts below. ")
	b.WriteString("If the excerpts do not contain the answer, say so.\n\n")
	for i, chunk := range chunks {
		fmt.Fprintf(&b, "Excerpt %d:\n%s\n\n", i+1, chunk.Text)
	}
	return strings.TrimSpace(b.String())
}
