package rewriter

import (
	"context"
	"fmt"
	"os"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
)

const apiMaxTokens = 8192

// APIRewriter rewrites prose through the Anthropic Messages API
type APIRewriter struct {
	client anthropic.Client
	model  anthropic.Model
}

// NewAPIRewriter creates an API-backed rewriter.
// Returns nil if ANTHROPIC_API_KEY is not set.
func NewAPIRewriter() *APIRewriter {
	apiKey := os.Getenv("ANTHROPIC_API_KEY")
	if apiKey == "" {
		return nil
	}

	client := anthropic.NewClient(option.WithAPIKey(apiKey))
	return &APIRewriter{
		client: client,
		model:  anthropic.ModelClaudeSonnet4_20250514,
	}
}

// Rewrite submits the request and returns the rewritten text
func (r *APIRewriter) Rewrite(ctx context.Context, req Request) (*Result, error) {
	if r == nil {
		return nil, fmt.Errorf("API rewriter not initialized (missing ANTHROPIC_API_KEY)")
	}

	resp, err := r.client.Messages.New(ctx, anthropic.MessageNewParams{
		Model:     r.model,
		MaxTokens: apiMaxTokens,
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(anthropic.NewTextBlock(buildPrompt(req))),
		},
	})
	if err != nil {
		return nil, fmt.Errorf("Claude API error: %w", err)
	}

	var responseText string
	for _, block := range resp.Content {
		if block.Type == "text" {
			responseText += block.Text
		}
	}

	text := cleanResponse(responseText)
	if text == "" {
		return nil, fmt.Errorf("empty response from Claude API")
	}

	return &Result{
		Text:       text,
		TokensUsed: resp.Usage.InputTokens + resp.Usage.OutputTokens,
		Model:      string(resp.Model),
	}, nil
}
