package engine

import (
	"context"
	"errors"
	"strings"
)

// ErrLLMDisabled is returned when no LLM client is configured.
// LLM enrichment is an optional external capability; the alignment and
// recommendation core never depends on it.
var ErrLLMDisabled = errors.New("llm client not configured")

// stripFences removes markdown code fences from LLM output.
func stripFences(s string) string {
	s = strings.TrimSpace(s)
	s = strings.TrimPrefix(s, "```json")
	s = strings.TrimPrefix(s, "```")
	s = strings.TrimSuffix(s, "```")
	return strings.TrimSpace(s)
}

// CallLLM sends a prompt using the configured temperature and max_tokens.
func CallLLM(ctx context.Context, prompt string) (string, error) {
	if cfg.LLMClient == nil {
		return "", ErrLLMDisabled
	}
	IncrLLMCalls()
	resp, err := cfg.LLMClient.Complete(ctx, "", prompt)
	if err != nil {
		IncrLLMErrors()
		return "", err
	}
	return stripFences(resp), nil
}
