package rewriter

import (
	"context"
	"errors"
	"fmt"
	"strings"

	claudecode "github.com/severity1/claude-agent-sdk-go"
)

// CLIRewriter rewrites prose through the Claude Code CLI
type CLIRewriter struct {
	model string
}

// NewCLIRewriter creates a CLI-backed rewriter, probing for the Claude Code
// CLI first. Returns nil if the CLI is not found.
func NewCLIRewriter() *CLIRewriter {
	ctx := context.Background()
	_, err := claudecode.Query(ctx, "echo test",
		claudecode.WithModel("sonnet"),
		claudecode.WithMaxTurns(1),
	)
	if err != nil {
		if claudecode.IsCLINotFoundError(err) {
			return nil
		}
		// Other errors might be temporary, allow creation
	}
	return &CLIRewriter{model: "sonnet"}
}

// Rewrite submits the request and returns the rewritten text
func (r *CLIRewriter) Rewrite(ctx context.Context, req Request) (*Result, error) {
	if r == nil {
		return nil, fmt.Errorf("CLI rewriter not initialized (Claude Code CLI not available)")
	}

	iterator, err := claudecode.Query(ctx, buildPrompt(req),
		claudecode.WithModel(r.model),
		claudecode.WithMaxTurns(1),
	)
	if err != nil {
		return nil, fmt.Errorf("claude code error: %w", err)
	}
	defer iterator.Close()

	var responseBuilder strings.Builder
	for {
		message, err := iterator.Next(ctx)
		if err != nil {
			if errors.Is(err, claudecode.ErrNoMoreMessages) {
				break
			}
			return nil, fmt.Errorf("error reading claude response: %w", err)
		}

		if assistantMsg, ok := message.(*claudecode.AssistantMessage); ok {
			for _, block := range assistantMsg.Content {
				if textBlock, ok := block.(*claudecode.TextBlock); ok {
					responseBuilder.WriteString(textBlock.Text)
				}
			}
		}
	}

	text := cleanResponse(responseBuilder.String())
	if text == "" {
		return nil, fmt.Errorf("empty response from claude code")
	}

	return &Result{
		Text:  text,
		Model: r.model,
	}, nil
}
