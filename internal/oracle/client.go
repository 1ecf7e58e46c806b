// Package oracle wraps the text-completion service that synthesizes
// missing annotations.
package oracle

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/sashabaranov/go-openai"

	"autotyper/internal/config"
	"autotyper/internal/prompt"
)

// ErrPromptTooLarge means the oracle rejected the prompt for exceeding its
// context window. Callers retry once with a shortened prompt.
var ErrPromptTooLarge = errors.New("prompt exceeds the completion model's context window")

const defaultModel = openai.CodexCodeDavinci002

// Client is a completion-oracle client over the OpenAI completions API.
type Client struct {
	api         *openai.Client
	model       string
	maxTokens   int
	temperature float32
	timeout     time.Duration
}

// NewClient builds a client from an explicit configuration. The config is
// the only place credentials live.
func NewClient(cfg *config.Config) *Client {
	oc := openai.DefaultConfig(cfg.APIKey)
	if cfg.Org != "" {
		oc.OrgID = cfg.Org
	}
	if cfg.BaseURL != "" {
		oc.BaseURL = cfg.BaseURL
	}

	model := cfg.Model
	if model == "" {
		model = defaultModel
	}

	return &Client{
		api:         openai.NewClientWithConfig(oc),
		model:       model,
		maxTokens:   cfg.MaxTokens,
		temperature: cfg.Temperature,
		timeout:     cfg.Timeout,
	}
}

// Complete asks the oracle to continue the prompt. Completions stop at the
// first newline, so the result is the remainder of a single line.
func (c *Client) Complete(ctx context.Context, promptText string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	resp, err := c.api.CreateCompletion(ctx, openai.CompletionRequest{
		Model:       c.model,
		Prompt:      promptText,
		MaxTokens:   c.maxTokens,
		Temperature: c.temperature,
		BestOf:      1,
		Stop:        []string{"\n"},
	})
	if err != nil {
		if isPromptTooLarge(err) {
			return "", fmt.Errorf("completion request rejected: %w", ErrPromptTooLarge)
		}
		return "", fmt.Errorf("completion request failed: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", errors.New("completion response contained no choices")
	}
	return resp.Choices[0].Text, nil
}

// CompleteOrShorten tries the prompt as-is and, when the oracle rejects it
// as too large, retries once with comments and blank lines stripped. This
// is the sole recovery path; any other failure is returned to the caller.
func (c *Client) CompleteOrShorten(ctx context.Context, promptText string) (string, error) {
	text, err := c.Complete(ctx, promptText)
	if err == nil {
		return text, nil
	}
	if !errors.Is(err, ErrPromptTooLarge) {
		return "", err
	}
	return c.Complete(ctx, prompt.Shorten(promptText))
}

func isPromptTooLarge(err error) bool {
	var apiErr *openai.APIError
	if !errors.As(err, &apiErr) {
		return false
	}
	if code, ok := apiErr.Code.(string); ok && code == "context_length_exceeded" {
		return true
	}
	return apiErr.HTTPStatusCode == http.StatusBadRequest &&
		strings.Contains(apiErr.Message, "maximum context length")
}
