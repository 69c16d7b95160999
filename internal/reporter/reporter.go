// Package reporter renders evaluation reports and polishing run records to
// the terminal or as JSON.
package reporter

import (
	"fmt"

	"github.com/prosepolish/prosepolish/internal/controller"
	"github.com/prosepolish/prosepolish/internal/evaluator"
)

// Reporter defines the interface for outputting results
type Reporter interface {
	// ReportEvaluation outputs a single evaluation report
	ReportEvaluation(r *evaluator.Report) error

	// ReportRun outputs a full polishing run record
	ReportRun(rec *controller.RunRecord) error
}

// metricRow pairs a metric with its display label and target description
type metricRow struct {
	Name   string
	Label  string
	Target string
}

// metricRows lists the displayed metrics in report order
func metricRows(t evaluator.Targets) []metricRow {
	return []metricRow{
		{evaluator.MetricGlueWords, "Glue words", fmtBelow(t.GlueWordsMax)},
		{evaluator.MetricPassiveVoice, "Passive voice", fmtBelow(t.PassiveVoiceMax)},
		{evaluator.MetricDialogueBalance, "Dialogue balance", fmtRange(t.DialogueMin, t.DialogueMax)},
		{evaluator.MetricShowDontTell, "Telling", fmtBelow(t.ShowDontTellMax)},
		{evaluator.MetricWordRepetition, "Word repetition", ""},
		{evaluator.MetricDynamicContent, "Dynamic content", fmtAbove(t.DynamicContentMin)},
		{evaluator.MetricReflectiveContent, "Reflective content", ""},
	}
}

func fmtBelow(v float64) string {
	return fmt.Sprintf("below %.0f%%", v)
}

func fmtAbove(v float64) string {
	return fmt.Sprintf("above %.0f%%", v)
}

func fmtRange(lo, hi float64) string {
	return fmt.Sprintf("%.0f-%.0f%%", lo, hi)
}

// metricPasses reports whether a metric value meets its target; metrics
// without a target always pass
func metricPasses(name string, value float64, t evaluator.Targets) bool {
	switch name {
	case evaluator.MetricGlueWords:
		return value < t.GlueWordsMax
	case evaluator.MetricPassiveVoice:
		return value < t.PassiveVoiceMax
	case evaluator.MetricDialogueBalance:
		return value >= t.DialogueMin && value <= t.DialogueMax
	case evaluator.MetricShowDontTell:
		return value < t.ShowDontTellMax
	case evaluator.MetricDynamicContent:
		return value > t.DynamicContentMin
	default:
		return true
	}
}
