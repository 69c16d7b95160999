package rewriter

import (
	"fmt"
	"strings"
)

// buildPrompt renders the rewrite instruction sent to either backend
func buildPrompt(req Request) string {
	var sb strings.Builder

	sb.WriteString("Rewrite the following prose to address one specific weakness.\n\n")
	fmt.Fprintf(&sb, "Weakness: %s\n", req.Weakness)
	fmt.Fprintf(&sb, "Goal: %s\n", req.TargetDescription)
	if req.Genre != "" {
		fmt.Fprintf(&sb, "Genre: %s\n", req.Genre)
	}
	sb.WriteString(`
Rules:
- Preserve the meaning, events, and voice of the original.
- Change only what the goal requires; do not expand or summarize.
- Return ONLY the rewritten prose, no preamble, no commentary, no markdown fences.

Text:
`)
	sb.WriteString(req.Text)

	return sb.String()
}

// cleanResponse strips whitespace and any markdown fencing the generator
// added despite instructions
func cleanResponse(s string) string {
	s = strings.TrimSpace(s)
	if strings.HasPrefix(s, "```") {
		if idx := strings.Index(s, "\n"); idx != -1 {
			s = s[idx+1:]
		}
		s = strings.TrimSuffix(strings.TrimSpace(s), "```")
		s = strings.TrimSpace(s)
	}
	return s
}
