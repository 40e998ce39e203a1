package extract

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"regexp"
	"strings"

	"github.com/ledongthuc/pdf"

	"glance-backend/internal/shared/storage/object"
)

// ErrNoText is returned when a PDF parses but contains no extractable text,
// typically a scanned/image-only document. No OCR fallback exists.
var ErrNoText = errors.New("no text content found in pdf")

var (
	spaceRuns   = regexp.MustCompile(`[ \t]+`)
	newlineRuns = regexp.MustCompile(`\n+`)
)

// FromStore downloads a stored PDF and extracts its text.
func FromStore(ctx context.Context, store object.ObjectStore, key string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	body, err := store.Open(ctx, key)
	if err != nil {
		return "", fmt.Errorf("extract key=%s: %w", key, err)
	}
	defer body.Close()

	raw, err := io.ReadAll(body)
	if err != nil {
		return "", fmt.Errorf("extract key=%s: read: %w", key, err)
	}

	text, err := Text(raw)
	if err != nil {
		return "", fmt.Errorf("extract key=%s: %w", key, err)
	}
	return text, nil
}

// Text parses an in-memory PDF and returns its flat text with whitespace
// normalized. Library used: github.com/ledongthuc/pdf.
func Text(data []byte) (string, error) {
	reader := bytes.NewReader(data)
	pdfReader, err := pdf.NewReader(reader, int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("parse pdf: %w", err)
	}

	plain, err := pdfReader.GetPlainText()
	if err != nil {
		return "", fmt.Errorf("read pdf text: %w", err)
	}

	var buf bytes.Buffer
	if _, err := io.Copy(&buf, plain); err != nil {
		return "", fmt.Errorf("read pdf text: %w", err)
	}

	text := Normalize(buf.String())
	if text == "" {
		return "", ErrNoText
	}
	return text, nil
}

// Normalize collapses runs of spaces and newlines and trims the result.
func Normalize(text string) string {
	text = spaceRuns.ReplaceAllString(text, " ")
	text = newlineRuns.ReplaceAllString(text, "\n")
	return strings.TrimSpace(text)
}
