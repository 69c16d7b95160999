package evaluator

import (
	"fmt"
	"math"
)

// Score band boundaries for the summary line
const (
	ExcellenceScore = 90
	goodScore       = 80
)

const (
	dialogueBonusValue = 15
	patternBonusValue  = 20
)

// composite applies the scoring formula:
//
//	score = (100-glue)*0.15 + (100-telling)*0.25 + dynamic*0.25
//	        + dialogueBonus + patternBonus - coherencePenalty
//
// clamped to [0,100] and rounded to one decimal place.
func composite(glue, telling, dynamic, dialogue float64, patternCount int, coherencePenalty float64, t Targets) (float64, Breakdown) {
	b := Breakdown{
		GlueComponent:    (100 - glue) * 0.15,
		TellingComponent: (100 - telling) * 0.25,
		DynamicComponent: dynamic * 0.25,
		CoherencePenalty: coherencePenalty,
	}
	if dialogue >= t.DialogueMin && dialogue <= t.DialogueMax {
		b.DialogueBonus = dialogueBonusValue
	}
	if patternCount == 0 {
		b.PatternBonus = patternBonusValue
	}

	score := b.GlueComponent + b.TellingComponent + b.DynamicComponent +
		b.DialogueBonus + b.PatternBonus - b.CoherencePenalty

	return round1(clamp(score, 0, 100)), b
}

// suggestions builds one line per failed target plus a summary line
func (e *Evaluator) suggestions(r *Report) []string {
	t := e.targets
	var out []string

	if r.GlueWords >= t.GlueWordsMax {
		out = append(out, fmt.Sprintf("Reduce glue words: %.1f%% (target below %.0f%%)", r.GlueWords, t.GlueWordsMax))
	}
	if r.PassiveVoice >= t.PassiveVoiceMax {
		out = append(out, fmt.Sprintf("Reduce passive voice: %.1f%% of sentences (target below %.0f%%)", r.PassiveVoice, t.PassiveVoiceMax))
	}
	if r.DialogueBalance < t.DialogueMin || r.DialogueBalance > t.DialogueMax {
		out = append(out, fmt.Sprintf("Rebalance dialogue: %.1f%% (target %.0f-%.0f%%)", r.DialogueBalance, t.DialogueMin, t.DialogueMax))
	}
	if r.ShowDontTell >= t.ShowDontTellMax {
		out = append(out, fmt.Sprintf("Show, don't tell: %.1f%% of sentences name interior states (target below %.0f%%)", r.ShowDontTell, t.ShowDontTellMax))
	}
	if r.DynamicContent <= t.DynamicContentMin {
		out = append(out, fmt.Sprintf("Add dynamic content: %.1f%% of sentences (target above %.0f%%)", r.DynamicContent, t.DynamicContentMin))
	}
	if r.AIPatternCount > 0 {
		out = append(out, fmt.Sprintf("Remove %d flagged phrases", r.AIPatternCount))
	}
	if len(r.CoherenceIssues) > 0 {
		out = append(out, fmt.Sprintf("Fix %d coherence issues", len(r.CoherenceIssues)))
	}

	switch {
	case r.OverallScore >= ExcellenceScore:
		out = append(out, "Text meets the excellence standard")
	case r.OverallScore >= goodScore:
		out = append(out, "Minor improvements recommended")
	default:
		out = append(out, "Significant improvements required")
	}
	return out
}

// ImprovementDelta returns how much the named metric improved between two
// values, positive meaning better. Direction is metric-specific: most ratios
// improve by decreasing, dynamic/reflective content and the overall score by
// increasing, and dialogue balance by closing the distance to the midpoint
// of the target range.
func ImprovementDelta(name string, before, after float64, t Targets) float64 {
	switch name {
	case MetricOverallScore, MetricDynamicContent, MetricReflectiveContent:
		return after - before
	case MetricDialogueBalance:
		mid := t.DialogueMidpoint()
		return math.Abs(before-mid) - math.Abs(after-mid)
	default:
		// glue, passive, telling, repetition, pattern count, coherence
		return before - after
	}
}

// AllMetrics lists every named metric in report order
func AllMetrics() []string {
	return []string{
		MetricOverallScore,
		MetricGlueWords,
		MetricPassiveVoice,
		MetricDialogueBalance,
		MetricShowDontTell,
		MetricWordRepetition,
		MetricDynamicContent,
		MetricReflectiveContent,
		MetricAIPatternCount,
		MetricCoherencePenalty,
	}
}

// ImprovementDeltas computes the direction-aware delta for every metric
func ImprovementDeltas(before, after *Report, t Targets) map[string]float64 {
	deltas := make(map[string]float64, len(AllMetrics()))
	for _, name := range AllMetrics() {
		deltas[name] = ImprovementDelta(name, before.Metric(name), after.Metric(name), t)
	}
	return deltas
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
