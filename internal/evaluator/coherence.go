package evaluator

import (
	"fmt"
	"strings"

	"github.com/prosepolish/prosepolish/internal/lexicon"
)

const (
	fragmentMinWords     = 5
	fragmentMaxShare     = 0.30
	openingWords         = 3
	openingMaxRecurrence = 3
	diversityMinWords    = 50
	diversityMaxRatio    = 0.8

	coherencePenaltyCap = 40
)

func severityWeight(s lexicon.Severity) float64 {
	switch s {
	case lexicon.High:
		return 20
	case lexicon.Medium:
		return 10
	default:
		return 5
	}
}

// checkCoherence runs the structural checks and returns the issue list plus
// the capped penalty.
func (e *Evaluator) checkCoherence(tokens []string, sentences []string) ([]CoherenceIssue, float64) {
	var issues []CoherenceIssue
	penalty := 0.0

	add := func(kind string, sev lexicon.Severity, msg string) {
		issues = append(issues, CoherenceIssue{
			Kind:     kind,
			Severity: sev.String(),
			Message:  msg,
		})
		penalty += severityWeight(sev)
	}

	// Fragments: too many very short sentences
	short := 0
	for _, s := range sentences {
		if len(tokenize(s)) < fragmentMinWords {
			short++
		}
	}
	if len(sentences) > 0 && float64(short) > fragmentMaxShare*float64(len(sentences)) {
		add("sentence-fragments", lexicon.High,
			fmt.Sprintf("%d of %d sentences have fewer than %d words", short, len(sentences), fragmentMinWords))
	}

	// Repetitive structure: the same sentence opening used over and over.
	// Openings are checked in first-appearance order so the reported issue
	// is the same on every evaluation.
	openings := make(map[string]int)
	var openingOrder []string
	for _, s := range sentences {
		words := tokenize(s)
		if len(words) < openingWords {
			continue
		}
		opening := strings.Join(words[:openingWords], " ")
		if _, seen := openings[opening]; !seen {
			openingOrder = append(openingOrder, opening)
		}
		openings[opening]++
	}
	for _, opening := range openingOrder {
		if n := openings[opening]; n > openingMaxRecurrence {
			add("repetitive-structure", lexicon.Medium,
				fmt.Sprintf("sentence opening %q recurs %d times", opening, n))
			break
		}
	}

	// Anomalous diversity: almost no word reuse suggests rambling text
	if len(tokens) > diversityMinWords {
		unique := make(map[string]struct{}, len(tokens))
		for _, tok := range tokens {
			unique[tok] = struct{}{}
		}
		ratio := float64(len(unique)) / float64(len(tokens))
		if ratio > diversityMaxRatio {
			add("anomalous-diversity", lexicon.Low,
				fmt.Sprintf("unique-word ratio %.2f exceeds %.1f", ratio, diversityMaxRatio))
		}
	}

	if penalty > coherencePenaltyCap {
		penalty = coherencePenaltyCap
	}
	return issues, penalty
}
