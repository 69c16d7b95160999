// Package rewriter defines the contract with the external text-rewriting
// collaborator and provides Claude-backed implementations.
//
// The contract is all-or-nothing: a backend either returns new text or an
// error, and it owns its own retry, backoff, and transient-vs-terminal
// error classification. Callers never retry here; they evaluate the
// returned text and decide acceptance themselves.
package rewriter

import "context"

// Request describes one rewrite job
type Request struct {
	// Text is the prose to rewrite
	Text string

	// Weakness tags the deficiency being addressed (a strategy name)
	Weakness string

	// TargetDescription is a human-readable account of the current
	// metric values and what the rewrite should change
	TargetDescription string

	// Genre shapes the rewrite's register (e.g., "noir thriller")
	Genre string
}

// Result is a successful rewrite
type Result struct {
	// Text is the rewritten prose
	Text string

	// TokensUsed is the resource units the backend consumed
	TokensUsed int64

	// Model identifies the generator that produced the text
	Model string
}

// Rewriter submits rewrite requests to an external generator
type Rewriter interface {
	Rewrite(ctx context.Context, req Request) (*Result, error)
}
