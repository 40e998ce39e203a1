// Package index maintains per-document vector partitions in a vector
// database and serves scoped similarity search for the chat flow.
package index

import (
	"context"
	"fmt"

	"glance-backend/internal/extract"
	"glance-backend/internal/llm"
	"glance-backend/internal/shared/telemetry"
)

// Chunk is one indexed slice of a document's extracted text.
type Chunk struct {
	DocumentID string
	Index      int
	Text       string
	Score      float32
}

// Store persists chunk vectors partitioned by document id.
type Store interface {
	Upsert(ctx context.Context, docID string, chunks []Chunk, vectors [][]float32) error
	Search(ctx context.Context, docID string, vector []float32, topK int) ([]Chunk, error)
	Count(ctx context.Context, docID string) (uint64, error)
	Purge(ctx context.Context, docID string) error
}

// Indexer chunks text, embeds each chunk and manages the document's
// partition in the vector store.
type Indexer struct {
	Store     Store
	Embedder  llm.Embedder
	ChunkSize int
}

// Index replaces the document's partition with vectors for the given text.
// Purging first keeps reindexing idempotent. Returns the number of chunks
// written.
func (ix *Indexer) Index(ctx context.Context, docID, text string) (int, error) {
	size := ix.ChunkSize
	if size <= 0 {
		size = extract.DefaultChunkSize
	}

	pieces := extract.Chunks(text, size)
	if len(pieces) == 0 {
		return 0, fmt.Errorf("index document %s: no chunks", docID)
	}

	chunks := make([]Chunk, 0, len(pieces))
	vectors := make([][]float32, 0, len(pieces))
	for i, piece := range pieces {
		vec, err := ix.Embedder.Embed(ctx, piece)
		if err != nil {
			return 0, fmt.Errorf("embed chunk %d of document %s: %w", i, docID, err)
		}
		chunks = append(chunks, Chunk{DocumentID: docID, Index: i, Text: piece})
		vectors = append(vectors, vec)
	}

	if err := ix.Store.Purge(ctx, docID); err != nil {
		return 0, fmt.Errorf("purge partition for document %s: %w", docID, err)
	}
	if err := ix.Store.Upsert(ctx, docID, chunks, vectors); err != nil {
		return 0, fmt.Errorf("upsert partition for document %s: %w", docID, err)
	}

	telemetry.Info("index.document", map[string]any{
		"document_id": docID,
		"chunks":      len(chunks),
	})
	return len(chunks), nil
}

// Indexed reports whether the document already has vectors stored.
func (ix *Indexer) Indexed(ctx context.Context, docID string) (bool, error) {
	count, err := ix.Store.Count(ctx, docID)
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// Search embeds the question and returns the top-k most similar chunks of
// the document, best first.
func (ix *Indexer) Search(ctx context.Context, docID, question string, topK int) ([]Chunk, error) {
	if topK <= 0 {
		topK = 4
	}
	vec, err := ix.Embedder.Embed(ctx, question)
	if err != nil {
		return nil, fmt.Errorf("embed question: %w", err)
	}
	return ix.Store.Search(ctx, docID, vec, topK)
}

// Purge drops the document's partition.
func (ix *Indexer) Purge(ctx context.Context, docID string) error {
	return ix.Store.Purge(ctx, docID)
}
