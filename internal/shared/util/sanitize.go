package util

import (
	"errors"
	"regexp"
	"strings"
)

var unsafeChars = regexp.MustCompile(`[^a-zA-Z0-9.-]`)

// SanitizeFileName rejects traversal patterns and replaces characters that
// are unsafe in storage keys with underscores.
func SanitizeFileName(name string) (string, error) {
	if strings.Contains(name, "..") {
		return "", errors.New("invalid file name")
	}
	s := strings.TrimSpace(name)
	s = unsafeChars.ReplaceAllString(s, "_")
	if s == "" || strings.Trim(s, "_") == "" {
		return "", errors.New("invalid file name")
	}
	return s, nil
}
