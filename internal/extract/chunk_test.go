package extract

import (
	"strings"
	"testing"
)

func TestSentences(t *testing.T) {
	t.Parallel()

	text := "First sentence. Second one! Is this third? Trailing fragment"
	got := Sentences(text)
	want := []string{"First sentence.", "Second one!", "Is this third?", "Trailing fragment"}
	if len(got) != len(want) {
		t.Fatalf("expected %d sentences, got %d: %v", len(want), len(got), got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("sentence %d = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestSentencesEmpty(t *testing.T) {
	t.Parallel()

	if got := Sentences("   "); got != nil {
		t.Fatalf("expected nil for blank text, got %v", got)
	}
}

func TestChunksRespectMaxLen(t *testing.T) {
	t.Parallel()

	text := strings.TrimSpace(strings.Repeat("This is a short sentence. ", 40))
	maxLen := 100

	chunks := Chunks(text, maxLen)
	if len(chunks) < 2 {
		t.Fatalf("expected multiple chunks, got %d", len(chunks))
	}
	for i, chunk := range chunks {
		if chunk == "" {
			t.Fatalf("chunk %d is empty", i)
		}
		if len(chunk) > maxLen {
			t.Fatalf("chunk %d length %d exceeds max %d", i, len(chunk), maxLen)
		}
		if !strings.HasSuffix(chunk, ".") {
			t.Fatalf("chunk %d not sentence-aligned: %q", i, chunk)
		}
	}
}

func TestChunksRoundTrip(t *testing.T) {
	t.Parallel()

	text := "Alpha beta gamma. Delta epsilon! Zeta eta theta? Iota kappa. Lambda mu nu xi omicron pi."
	chunks := Chunks(text, 30)

	joined := strings.Join(chunks, " ")
	if Normalize(joined) != Normalize(text) {
		t.Fatalf("round trip mismatch:\n got %q\nwant %q", Normalize(joined), Normalize(text))
	}
}

func TestChunksOversizedSentence(t *testing.T) {
	t.Parallel()

	long := strings.Repeat("word ", 50) + "end."
	text := "Short one. " + long + " Short two."

	chunks := Chunks(text, 40)
	found := false
	for _, chunk := range chunks {
		if len(chunk) > 40 {
			// Only a chunk holding the single oversized sentence may
			// exceed the limit.
			if chunk != strings.TrimSpace(long) {
				t.Fatalf("oversized chunk holds more than one sentence: %q", chunk)
			}
			found = true
		}
	}
	if !found {
		t.Fatal("expected the oversized sentence to form its own chunk")
	}
}

func TestChunksEmptyText(t *testing.T) {
	t.Parallel()

	if got := Chunks("", 100); got != nil {
		t.Fatalf("expected nil chunks for empty text, got %v", got)
	}
}
