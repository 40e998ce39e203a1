package extract

import (
	"regexp"
	"strings"
)

const DefaultChunkSize = 2000

var sentencePattern = regexp.MustCompile(`[^.!?]+[.!?]+`)

// Sentences splits text on sentence terminators. Trailing text without a
// terminator is kept as a final sentence.
func Sentences(text string) []string {
	spans := sentencePattern.FindAllStringIndex(text, -1)

	var out []string
	end := 0
	for _, span := range spans {
		if s := strings.TrimSpace(text[span[0]:span[1]]); s != "" {
			out = append(out, s)
		}
		end = span[1]
	}
	if tail := strings.TrimSpace(text[end:]); tail != "" {
		out = append(out, tail)
	}
	return out
}

// Chunks splits text into sentence-bounded segments of at most maxLen
// characters. Sentences accumulate into a chunk until adding the next one
// would exceed maxLen; a single sentence longer than maxLen becomes its own
// chunk. Chunks are never empty and their concatenation preserves the
// sentence sequence.
func Chunks(text string, maxLen int) []string {
	if maxLen <= 0 {
		maxLen = DefaultChunkSize
	}

	sentences := Sentences(text)
	if len(sentences) == 0 {
		return nil
	}

	var chunks []string
	var current strings.Builder
	for _, sentence := range sentences {
		if current.Len() > 0 && current.Len()+1+len(sentence) > maxLen {
			chunks = append(chunks, current.String())
			current.Reset()
		}
		if current.Len() > 0 {
			current.WriteByte(' ')
		}
		current.WriteString(sentence)
	}
	if current.Len() > 0 {
		chunks = append(chunks, current.String())
	}
	return chunks
}
