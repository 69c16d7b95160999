package evaluator

import (
	"regexp"
	"strings"
)

var (
	wordRe     = regexp.MustCompile(`[a-z0-9]+(?:['’-][a-z0-9]+)*`)
	sentenceRe = regexp.MustCompile(`[.!?]+`)

	straightQuoteRe = regexp.MustCompile(`"[^"]*"`)
	curlyQuoteRe    = regexp.MustCompile(`“[^”]*”`)

	// Be-forms and modal+be combinations followed by a past participle.
	passiveRe = regexp.MustCompile(`(?i)\b(?:(?:will|would|shall|should|may|might|must|can|could)\s+be|am|is|are|was|were|been|being|be)\s+(?:\w+ly\s+)?\w+(?:ed|en)\b`)
)

// tokenize lowercases the text and splits it into word tokens,
// keeping internal apostrophes and hyphens.
func tokenize(text string) []string {
	return wordRe.FindAllString(strings.ToLower(text), -1)
}

// splitSentences splits text on runs of terminal punctuation,
// dropping empty fragments.
func splitSentences(text string) []string {
	parts := sentenceRe.Split(text, -1)
	sentences := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		sentences = append(sentences, p)
	}
	return sentences
}

// quotedSpans returns the contents of double-quoted spans (straight or curly)
func quotedSpans(text string) []string {
	var spans []string
	for _, m := range straightQuoteRe.FindAllString(text, -1) {
		spans = append(spans, strings.Trim(m, `"`))
	}
	for _, m := range curlyQuoteRe.FindAllString(text, -1) {
		spans = append(spans, strings.Trim(m, "“”"))
	}
	return spans
}

// countPassive counts passive-auxiliary matches in the text
func countPassive(text string) int {
	return len(passiveRe.FindAllString(text, -1))
}
