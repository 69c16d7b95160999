package evaluator

// maxPatternExamples caps the example sentences recorded per matched phrase
const maxPatternExamples = 2

// detectPatterns scans the text against the lexicon's severity-tiered phrase
// lists. It returns one entry per matched phrase plus the total match count.
func (e *Evaluator) detectPatterns(text string, sentences []string) ([]PatternMatch, int) {
	var matches []PatternMatch
	total := 0

	for _, p := range e.lex.AllPatterns() {
		found := p.Regexp().FindAllStringIndex(text, -1)
		if len(found) == 0 {
			continue
		}

		var examples []string
		for _, s := range sentences {
			if p.Regexp().MatchString(s) {
				examples = append(examples, s)
				if len(examples) == maxPatternExamples {
					break
				}
			}
		}

		matches = append(matches, PatternMatch{
			Phrase:   p.Phrase,
			Severity: p.Severity.String(),
			Count:    len(found),
			Examples: examples,
		})
		total += len(found)
	}

	return matches, total
}
