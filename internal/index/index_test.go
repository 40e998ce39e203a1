package index

import (
	"context"
	"strings"
	"testing"
)

// hashEmbedder produces deterministic vectors so similarity ordering is
// stable across runs. Texts sharing words get closer vectors.
type hashEmbedder struct{}

func (hashEmbedder) Embed(_ context.Context, text string) ([]float32, error) {
	vec := make([]float32, 8)
	for _, word := range strings.Fields(strings.ToLower(text)) {
		var h uint32 = 2166136261
		for i := 0; i < len(word); i++ {
			h ^= uint32(word[i])
			h *= 16777619
		}
		vec[h%8]++
	}
	return vec, nil
}

func TestIndexerIndexAndSearch(t *testing.T) {
	store := NewMemoryStore()
	ix := &Indexer{Store: store, Embedder: hashEmbedder{}, ChunkSize: 40}

	text := "Cats sleep all day. Dogs bark at strangers. Fish swim in circles."
	n, err := ix.Index(context.Background(), "doc-1", text)
	if err != nil {
		t.Fatalf("Index: %v", err)
	}
	if n == 0 {
		t.Fatal("expected at least one chunk")
	}

	indexed, err := ix.Indexed(context.Background(), "doc-1")
	if err != nil {
		t.Fatalf("Indexed: %v", err)
	}
	if !indexed {
		t.Fatal("document should report as indexed")
	}

	results, err := ix.Search(context.Background(), "doc-1", "Dogs bark", 2)
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if len(results) == 0 {
		t.Fatal("expected search results")
	}
	if !strings.Contains(results[0].Text, "Dogs") {
		t.Errorf("top result = %q, want the chunk about dogs", results[0].Text)
	}
}

func TestIndexerReindexIsIdempotent(t *testing.T) {
	store := NewMemoryStore()
	ix := &Indexer{Store: store, Embedder: hashEmbedder{}, ChunkSize: 40}

	text := "First sentence here. Second sentence here. Third sentence here."
	n1, err := ix.Index(context.Background(), "doc-1", text)
	if err != nil {
		t.Fatalf("first Index: %v", err)
	}
	n2, err := ix.Index(context.Background(), "doc-1", text)
	if err != nil {
		t.Fatalf("second Index: %v", err)
	}
	if n1 != n2 {
		t.Fatalf("chunk count changed on reindex: %d then %d", n1, n2)
	}

	count, err := store.Count(context.Background(), "doc-1")
	if err != nil {
		t.Fatalf("Count: %v", err)
	}
	if count != uint64(n2) {
		t.Errorf("store holds %d vectors, want %d", count, n2)
	}
}

func TestIndexerPurgeScopedToDocument(t *testing.T) {
	store := NewMemoryStore()
	ix := &Indexer{Store: store, Embedder: hashEmbedder{}, ChunkSize: 40}

	if _, err := ix.Index(context.Background(), "doc-1", "Alpha text one. Alpha text two."); err != nil {
		t.Fatalf("Index doc-1: %v", err)
	}
	if _, err := ix.Index(context.Background(), "doc-2", "Beta text one. Beta text two."); err != nil {
		t.Fatalf("Index doc-2: %v", err)
	}

	if err := ix.Purge(context.Background(), "doc-1"); err != nil {
		t.Fatalf("Purge: %v", err)
	}

	indexed, _ := ix.Indexed(context.Background(), "doc-1")
	if indexed {
		t.Error("doc-1 should be empty after purge")
	}
	indexed, _ = ix.Indexed(context.Background(), "doc-2")
	if !indexed {
		t.Error("doc-2 should survive doc-1 purge")
	}
}

func TestIndexerRejectsEmptyText(t *testing.T) {
	ix := &Indexer{Store: NewMemoryStore(), Embedder: hashEmbedder{}}
	if _, err := ix.Index(context.Background(), "doc-1", "   "); err == nil {
		t.Fatal("expected error for empty text")
	}
}
