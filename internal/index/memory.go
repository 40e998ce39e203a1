package index

import (
	"context"
	"math"
	"sort"
	"sync"
)

type memoryEntry struct {
	chunk  Chunk
	vector []float32
}

// MemoryStore is an in-process Store used for local runs and tests.
type MemoryStore struct {
	mu         sync.RWMutex
	partitions map[string][]memoryEntry
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{partitions: make(map[string][]memoryEntry)}
}

func (s *MemoryStore) Upsert(_ context.Context, docID string, chunks []Chunk, vectors [][]float32) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	entries := s.partitions[docID]
	for i, chunk := range chunks {
		vec := make([]float32, len(vectors[i]))
		copy(vec, vectors[i])
		entries = append(entries, memoryEntry{chunk: chunk, vector: vec})
	}
	s.partitions[docID] = entries
	return nil
}

func (s *MemoryStore) Search(_ context.Context, docID string, vector []float32, topK int) ([]Chunk, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	entries := s.partitions[docID]
	scored := make([]Chunk, 0, len(entries))
	for _, e := range entries {
		c := e.chunk
		c.Score = cosineSimilarity(vector, e.vector)
		scored = append(scored, c)
	}
	sort.Slice(scored, func(i, j int) bool { return scored[i].Score > scored[j].Score })
	if len(scored) > topK {
		scored = scored[:topK]
	}
	return scored, nil
}

func (s *MemoryStore) Count(_ context.Context, docID string) (uint64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return uint64(len(s.partitions[docID])), nil
}

func (s *MemoryStore) Purge(_ context.Context, docID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.partitions, docID)
	return nil
}

func cosineSimilarity(a, b []float32) float32 {
	if len(a) != len(b) || len(a) == 0 {
		return 0
	}
	var dot, normA, normB float64
	for i := range a {
		dot += float64(a[i]) * float64(b[i])
		normA += float64(a[i]) * float64(a[i])
		normB += float64(b[i]) * float64(b[i])
	}
	if normA == 0 || normB == 0 {
		return 0
	}
	return float32(dot / (math.Sqrt(normA) * math.Sqrt(normB)))
}
