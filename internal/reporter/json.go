package reporter

import (
	"encoding/json"
	"io"

	"github.com/prosepolish/prosepolish/internal/controller"
	"github.com/prosepolish/prosepolish/internal/evaluator"
)

// JSONReporter outputs results as JSON
type JSONReporter struct {
	w io.Writer
}

// NewJSONReporter creates a new JSON reporter
func NewJSONReporter(w io.Writer) *JSONReporter {
	return &JSONReporter{w: w}
}

// ReportEvaluation outputs one report as indented JSON
func (r *JSONReporter) ReportEvaluation(rep *evaluator.Report) error {
	return r.encode(rep)
}

// ReportRun outputs the full run record as indented JSON
func (r *JSONReporter) ReportRun(rec *controller.RunRecord) error {
	return r.encode(rec)
}

func (r *JSONReporter) encode(v interface{}) error {
	encoder := json.NewEncoder(r.w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(v)
}
