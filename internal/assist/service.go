// Package assist exposes a freeform AI completion endpoint that is not
// tied to any stored document.
package assist

import (
	"context"
	"errors"
	"strings"

	"glance-backend/internal/llm"
	"glance-backend/internal/shared/telemetry"
)

const systemPrompt = "You are a helpful research assistant. Answer clearly and concisely."

var ErrEmptyPrompt = errors.New("prompt is required")

// Service forwards prompts to the completion model.
type Service struct {
	LLM llm.Completer
}

// Analyze runs a single freeform completion.
func (s *Service) Analyze(ctx context.Context, prompt string) (string, error) {
	prompt = strings.TrimSpace(prompt)
	if prompt == "" {
		return "", ErrEmptyPrompt
	}

	response, err := s.LLM.Complete(ctx, systemPrompt, prompt)
	if err != nil {
		return "", err
	}

	telemetry.Info("assist.analyzed", map[string]any{"prompt_len": len(prompt)})
	return response, nil
}
