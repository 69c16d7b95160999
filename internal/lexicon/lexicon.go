package lexicon

import "regexp"

// Severity ranks how strongly a pattern signals weak or generated prose.
// It groups patterns for reporting; it does not affect score weighting.
type Severity int

const (
	Low Severity = iota
	Medium
	High
)

func (s Severity) String() string {
	switch s {
	case Low:
		return "low"
	case Medium:
		return "medium"
	case High:
		return "high"
	default:
		return "unknown"
	}
}

// Lexicon holds the static word and phrase tables used by the evaluator.
// Instances are immutable after loading.
type Lexicon struct {
	// Name is the identifier for this lexicon (e.g., "english")
	Name string `yaml:"name"`

	// GlueWords are low-information function and filler words
	GlueWords []string `yaml:"glue_words"`

	// ActionVerbs mark a sentence as dynamic content
	ActionVerbs []string `yaml:"action_verbs"`

	// IntrospectiveVerbs mark a sentence as reflective content
	IntrospectiveVerbs []string `yaml:"introspective_verbs"`

	// TellingMarkers are interior-state naming verbs ("felt", "realized")
	TellingMarkers []string `yaml:"telling_markers"`

	// Patterns are severity-tiered phrase lists flagged in prose
	Patterns PatternTiers `yaml:"patterns"`

	glueSet          map[string]struct{}
	actionSet        map[string]struct{}
	introspectiveSet map[string]struct{}
	tellingSet       map[string]struct{}
	patterns         []Pattern
}

// PatternTiers groups flagged phrases by severity
type PatternTiers struct {
	High   []string `yaml:"high"`
	Medium []string `yaml:"medium"`
	Low    []string `yaml:"low"`
}

// Pattern is an immutable (phrase, severity) pair with its compiled matcher
type Pattern struct {
	Phrase   string
	Severity Severity

	re *regexp.Regexp
}

// Regexp returns the compiled word-boundary matcher for this pattern
func (p Pattern) Regexp() *regexp.Regexp {
	return p.re
}

// compile builds the lookup sets and pattern matchers after unmarshalling
func (l *Lexicon) compile() {
	l.glueSet = toSet(l.GlueWords)
	l.actionSet = toSet(l.ActionVerbs)
	l.introspectiveSet = toSet(l.IntrospectiveVerbs)
	l.tellingSet = toSet(l.TellingMarkers)

	tiers := []struct {
		phrases  []string
		severity Severity
	}{
		{l.Patterns.High, High},
		{l.Patterns.Medium, Medium},
		{l.Patterns.Low, Low},
	}
	for _, tier := range tiers {
		for _, phrase := range tier.phrases {
			re, err := regexp.Compile(`(?i)\b` + regexp.QuoteMeta(phrase) + `\b`)
			if err != nil {
				continue
			}
			l.patterns = append(l.patterns, Pattern{
				Phrase:   phrase,
				Severity: tier.severity,
				re:       re,
			})
		}
	}
}

func toSet(words []string) map[string]struct{} {
	set := make(map[string]struct{}, len(words))
	for _, w := range words {
		set[w] = struct{}{}
	}
	return set
}

// IsGlueWord reports whether the lowercased token is a glue word
func (l *Lexicon) IsGlueWord(token string) bool {
	_, ok := l.glueSet[token]
	return ok
}

// IsActionVerb reports whether the lowercased token marks dynamic content
func (l *Lexicon) IsActionVerb(token string) bool {
	_, ok := l.actionSet[token]
	return ok
}

// IsIntrospectiveVerb reports whether the lowercased token marks reflective content
func (l *Lexicon) IsIntrospectiveVerb(token string) bool {
	_, ok := l.introspectiveSet[token]
	return ok
}

// IsTellingMarker reports whether the lowercased token names an interior state
func (l *Lexicon) IsTellingMarker(token string) bool {
	_, ok := l.tellingSet[token]
	return ok
}

// AllPatterns returns the flagged phrase list in tier order (high first)
func (l *Lexicon) AllPatterns() []Pattern {
	return l.patterns
}
