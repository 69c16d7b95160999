package evaluator

import (
	"reflect"
	"testing"
)

func TestTokenize(t *testing.T) {
	tests := []struct {
		name     string
		text     string
		expected []string
	}{
		{
			name:     "simple words",
			text:     "The cat sat.",
			expected: []string{"the", "cat", "sat"},
		},
		{
			name:     "contraction kept whole",
			text:     "Don't stop now",
			expected: []string{"don't", "stop", "now"},
		},
		{
			name:     "hyphenated word kept whole",
			text:     "a well-known plan",
			expected: []string{"a", "well-known", "plan"},
		},
		{
			name:     "numbers count as words",
			text:     "Chapter 42 begins",
			expected: []string{"chapter", "42", "begins"},
		},
		{
			name:     "punctuation only",
			text:     "?! ... --",
			expected: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tokenize(tt.text)
			if !reflect.DeepEqual(got, tt.expected) {
				t.Errorf("tokenize(%q) = %v, want %v", tt.text, got, tt.expected)
			}
		})
	}
}

func TestSplitSentences(t *testing.T) {
	tests := []struct {
		name     string
		text     string
		expected int
	}{
		{"three terminators", "One. Two! Three?", 3},
		{"ellipsis is one break", "Wait... go now.", 2},
		{"no terminator", "an unfinished thought", 1},
		{"empty", "", 0},
		{"trailing terminator", "Done.", 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := splitSentences(tt.text)
			if len(got) != tt.expected {
				t.Errorf("splitSentences(%q) = %d sentences, want %d", tt.text, len(got), tt.expected)
			}
		})
	}
}

func TestQuotedSpans(t *testing.T) {
	text := `"Stay here," she said. He pointed at the sign that read “keep out” and frowned.`
	spans := quotedSpans(text)
	if len(spans) != 2 {
		t.Fatalf("quotedSpans found %d spans, want 2", len(spans))
	}
	if spans[0] != "Stay here," {
		t.Errorf("straight-quoted span = %q", spans[0])
	}
	if spans[1] != "keep out" {
		t.Errorf("curly-quoted span = %q", spans[1])
	}
}

func TestCountPassive(t *testing.T) {
	tests := []struct {
		name     string
		text     string
		expected int
	}{
		{"simple passive", "The window was broken by the storm.", 1},
		{"active voice", "She kicked the door open.", 0},
		{"passive with adverb", "The cake was quickly eaten.", 1},
		{"modal passive", "The order will be signed tomorrow.", 1},
		{"two passives", "He was chosen. The gate was opened.", 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := countPassive(tt.text); got != tt.expected {
				t.Errorf("countPassive(%q) = %d, want %d", tt.text, got, tt.expected)
			}
		})
	}
}
