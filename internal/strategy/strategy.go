// Package strategy maps a metrics report to an ordered list of remediation
// strategies. The catalog is static configuration, not runtime state.
package strategy

import (
	"sort"

	"github.com/prosepolish/prosepolish/internal/evaluator"
)

// Strategy describes one named remediation intent. Higher priority means
// more urgent.
type Strategy struct {
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Targets     []string `json:"targets"`
	Priority    int      `json:"priority"`
}

// Strategy names
const (
	PatternElimination  = "pattern-elimination"
	TellingConversion   = "telling-conversion"
	DialogueFix         = "dialogue-fix"
	GlueWordReduction   = "glue-word-reduction"
	DynamicContentBoost = "dynamic-content-boost"
	PassiveVoiceFix     = "passive-voice-fix"
	SentenceVariation   = "sentence-variation"
	SensoryDetail       = "sensory-detail"
)

// catalog is the full strategy table in declared (tie-break) order
var catalog = []Strategy{
	{
		Name:        PatternElimination,
		Description: "Remove flagged stock phrases and rewrite the surrounding prose naturally",
		Targets:     []string{evaluator.MetricAIPatternCount},
		Priority:    10,
	},
	{
		Name:        TellingConversion,
		Description: "Convert sentences that name interior states into dramatized action or dialogue",
		Targets:     []string{evaluator.MetricShowDontTell},
		Priority:    9,
	},
	{
		Name:        DialogueFix,
		Description: "Rebalance the share of dialogue toward the target range",
		Targets:     []string{evaluator.MetricDialogueBalance},
		Priority:    8,
	},
	{
		Name:        GlueWordReduction,
		Description: "Cut low-information filler words and tighten phrasing",
		Targets:     []string{evaluator.MetricGlueWords},
		Priority:    7,
	},
	{
		Name:        DynamicContentBoost,
		Description: "Shorten sentences and add concrete action to raise dynamic content",
		Targets:     []string{evaluator.MetricDynamicContent},
		Priority:    7,
	},
	{
		Name:        PassiveVoiceFix,
		Description: "Rewrite passive constructions in active voice",
		Targets:     []string{evaluator.MetricPassiveVoice},
		Priority:    6,
	},
	{
		Name:        SentenceVariation,
		Description: "Vary sentence length and structure for rhythm",
		Targets:     []string{evaluator.MetricOverallScore},
		Priority:    5,
	},
	{
		Name:        SensoryDetail,
		Description: "Add sensory grounding to flat or summarized passages",
		Targets:     []string{evaluator.MetricDynamicContent, evaluator.MetricShowDontTell},
		Priority:    5,
	},
}

// Catalog returns a copy of the full strategy table
func Catalog() []Strategy {
	out := make([]Strategy, len(catalog))
	copy(out, catalog)
	return out
}

// Get returns a strategy by name
func Get(name string) (Strategy, bool) {
	for _, s := range catalog {
		if s.Name == name {
			return s, true
		}
	}
	return Strategy{}, false
}

// Determine selects the strategies warranted by the report, sorted by
// descending priority. Ties keep the catalog's declared order.
func Determine(r *evaluator.Report, t evaluator.Targets) []Strategy {
	include := map[string]bool{
		PatternElimination:  r.AIPatternCount > 0,
		TellingConversion:   r.ShowDontTell >= t.ShowDontTellMax,
		DialogueFix:         r.DialogueBalance < t.DialogueMin || r.DialogueBalance > t.DialogueMax,
		GlueWordReduction:   r.GlueWords >= t.GlueWordsMax,
		DynamicContentBoost: r.DynamicContent <= t.DynamicContentMin,
		PassiveVoiceFix:     r.PassiveVoice >= t.PassiveVoiceMax,
		SentenceVariation:   r.OverallScore < evaluator.ExcellenceScore,
		SensoryDetail:       r.DynamicContent < 75 || r.ShowDontTell > 8,
	}

	var selected []Strategy
	for _, s := range catalog {
		if include[s.Name] {
			selected = append(selected, s)
		}
	}

	sort.SliceStable(selected, func(i, j int) bool {
		return selected[i].Priority > selected[j].Priority
	})
	return selected
}
