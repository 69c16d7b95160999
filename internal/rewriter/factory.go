package rewriter

import (
	"fmt"
	"os"
)

// Backend identifies which rewrite backend to use
type Backend string

const (
	// BackendAPI uses the Anthropic Messages API
	BackendAPI Backend = "api"

	// BackendCLI uses the Claude Code CLI
	BackendCLI Backend = "cli"
)

// New creates a rewriter for the given backend. An empty backend selects
// the API when ANTHROPIC_API_KEY is set, otherwise the CLI.
func New(backend Backend) (Rewriter, error) {
	if backend == "" {
		if os.Getenv("ANTHROPIC_API_KEY") != "" {
			backend = BackendAPI
		} else {
			backend = BackendCLI
		}
	}

	switch backend {
	case BackendAPI:
		r := NewAPIRewriter()
		if r == nil {
			return nil, fmt.Errorf("API backend unavailable: ANTHROPIC_API_KEY not set")
		}
		return r, nil
	case BackendCLI:
		r := NewCLIRewriter()
		if r == nil {
			return nil, fmt.Errorf("CLI backend unavailable: Claude Code CLI not found")
		}
		return r, nil
	default:
		return nil, fmt.Errorf("unknown rewriter backend: %s", backend)
	}
}
