package rewriter

import (
	"strings"
	"testing"
)

func TestBuildPrompt(t *testing.T) {
	req := Request{
		Text:              "She felt cold.",
		Weakness:          "telling-conversion",
		TargetDescription: "reduce interior-state telling",
		Genre:             "noir",
	}

	prompt := buildPrompt(req)

	for _, want := range []string{
		"Weakness: telling-conversion",
		"Goal: reduce interior-state telling",
		"Genre: noir",
		"She felt cold.",
		"Return ONLY the rewritten prose",
	} {
		if !strings.Contains(prompt, want) {
			t.Errorf("prompt missing %q", want)
		}
	}
}

func TestBuildPromptOmitsEmptyGenre(t *testing.T) {
	prompt := buildPrompt(Request{Text: "x", Weakness: "w", TargetDescription: "g"})
	if strings.Contains(prompt, "Genre:") {
		t.Error("prompt contains Genre line for empty genre")
	}
}

func TestCleanResponse(t *testing.T) {
	tests := []struct {
		name     string
		in       string
		expected string
	}{
		{"plain text", "She ran.", "She ran."},
		{"surrounding whitespace", "\n\n  She ran.  \n", "She ran."},
		{"markdown fence", "```\nShe ran.\n```", "She ran."},
		{"fence with language tag", "```text\nShe ran.\n```", "She ran."},
		{"empty", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := cleanResponse(tt.in); got != tt.expected {
				t.Errorf("cleanResponse(%q) = %q, want %q", tt.in, got, tt.expected)
			}
		})
	}
}
