// Package enforcer turns a metrics report into ordered remediation work and
// applies it through the external rewriting collaborator, keeping only
// rewrites that do not regress the overall score.
package enforcer

import (
	"context"
	"fmt"
	"strings"

	"github.com/prosepolish/prosepolish/internal/evaluator"
	"github.com/prosepolish/prosepolish/internal/rewriter"
	"github.com/prosepolish/prosepolish/internal/strategy"
)

// Attempt records one strategy application, accepted or not
type Attempt struct {
	Strategy      strategy.Strategy  `json:"strategy"`
	OriginalText  string             `json:"-"`
	RewrittenText string             `json:"-"`
	Before        *evaluator.Report  `json:"before"`
	After         *evaluator.Report  `json:"after"`
	Deltas        map[string]float64 `json:"deltas"`
	ScoreDelta    float64            `json:"scoreDelta"`
	Success       bool               `json:"success"`
	Accepted      bool               `json:"accepted"`
	Error         string             `json:"error,omitempty"`
	TokensUsed    int64              `json:"tokensUsed"`
	Model         string             `json:"model,omitempty"`
}

// Result is the outcome of one enforcement pass
type Result struct {
	FinalText        string            `json:"-"`
	FinalReport      *evaluator.Report `json:"finalReport"`
	Attempts         []Attempt         `json:"attempts"`
	TotalImprovement float64           `json:"totalImprovement"`
	TokensUsed       int64             `json:"tokensUsed"`
}

// Enforcer applies improvement strategies via an external rewriter
type Enforcer struct {
	eval        *evaluator.Evaluator
	rw          rewriter.Rewriter
	targetScore float64
}

// New creates an enforcer. targetScore is the overall score at which
// enforcement stops early.
func New(eval *evaluator.Evaluator, rw rewriter.Rewriter, targetScore float64) *Enforcer {
	if targetScore <= 0 {
		targetScore = evaluator.ExcellenceScore
	}
	return &Enforcer{eval: eval, rw: rw, targetScore: targetScore}
}

// ApplyStrategy runs one strategy against the text. External failure is
// recovered locally: the original text is preserved and the attempt carries
// Success=false with the error message.
func (e *Enforcer) ApplyStrategy(ctx context.Context, text string, strat strategy.Strategy, genre string) Attempt {
	before := e.eval.Evaluate(text)

	att := Attempt{
		Strategy:      strat,
		OriginalText:  text,
		RewrittenText: text,
		Before:        before,
		After:         before,
		Deltas:        map[string]float64{},
	}

	res, err := e.rewrite(ctx, rewriter.Request{
		Text:              text,
		Weakness:          strat.Name,
		TargetDescription: e.describeTarget(before, strat),
		Genre:             genre,
	})
	if err != nil {
		att.Error = err.Error()
		return att
	}

	after := e.eval.Evaluate(res.Text)

	att.RewrittenText = res.Text
	att.After = after
	att.Deltas = evaluator.ImprovementDeltas(before, after, e.eval.Targets())
	att.ScoreDelta = after.OverallScore - before.OverallScore
	att.Success = true
	att.TokensUsed = res.TokensUsed
	att.Model = res.Model

	return att
}

// rewrite calls the external rewriter, converting a panic in the injected
// backend into an ordinary error so the attempt fails locally
func (e *Enforcer) rewrite(ctx context.Context, req rewriter.Request) (res *rewriter.Result, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("rewriter fault: %v", r)
		}
	}()
	return e.rw.Rewrite(ctx, req)
}

// EnforceExcellence computes initial metrics, applies up to maxStrategies
// strategies in priority order, and commits each result only when its score
// delta is non-negative. It never fails: if every strategy fails or
// regresses, the original text comes back unchanged.
func (e *Enforcer) EnforceExcellence(ctx context.Context, text, genre string, maxStrategies int) Result {
	initial := e.eval.Evaluate(text)

	result := Result{
		FinalText:   text,
		FinalReport: initial,
	}
	if initial.OverallScore >= e.targetScore {
		return result
	}

	strategies := strategy.Determine(initial, e.eval.Targets())
	if maxStrategies > 0 && len(strategies) > maxStrategies {
		strategies = strategies[:maxStrategies]
	}

	current := text
	currentReport := initial

	for _, strat := range strategies {
		if currentReport.OverallScore >= e.targetScore {
			break
		}

		att := e.ApplyStrategy(ctx, current, strat, genre)
		result.TokensUsed += att.TokensUsed

		if att.Success && att.ScoreDelta >= 0 {
			att.Accepted = true
			current = att.RewrittenText
			currentReport = att.After
			result.TotalImprovement += att.ScoreDelta
		}

		result.Attempts = append(result.Attempts, att)
	}

	result.FinalText = current
	result.FinalReport = currentReport
	return result
}

// describeTarget builds the human-readable goal sent to the rewriter,
// from the current values of the metrics this strategy targets.
func (e *Enforcer) describeTarget(r *evaluator.Report, strat strategy.Strategy) string {
	t := e.eval.Targets()
	var parts []string

	for _, metric := range strat.Targets {
		switch metric {
		case evaluator.MetricAIPatternCount:
			parts = append(parts, fmt.Sprintf("remove all %d flagged stock phrases", r.AIPatternCount))
		case evaluator.MetricShowDontTell:
			parts = append(parts, fmt.Sprintf("reduce interior-state telling from %.1f%% of sentences to below %.0f%%", r.ShowDontTell, t.ShowDontTellMax))
		case evaluator.MetricDialogueBalance:
			parts = append(parts, fmt.Sprintf("move dialogue share from %.1f%% into the %.0f-%.0f%% range", r.DialogueBalance, t.DialogueMin, t.DialogueMax))
		case evaluator.MetricGlueWords:
			parts = append(parts, fmt.Sprintf("cut filler words from %.1f%% of words to below %.0f%%", r.GlueWords, t.GlueWordsMax))
		case evaluator.MetricDynamicContent:
			parts = append(parts, fmt.Sprintf("raise dynamic, action-driven sentences from %.1f%% to above %.0f%%", r.DynamicContent, t.DynamicContentMin))
		case evaluator.MetricPassiveVoice:
			parts = append(parts, fmt.Sprintf("reduce passive voice from %.1f%% of sentences to below %.0f%%", r.PassiveVoice, t.PassiveVoiceMax))
		case evaluator.MetricOverallScore:
			parts = append(parts, fmt.Sprintf("raise the overall quality score from %.1f toward %.0f", r.OverallScore, e.targetScore))
		}
	}

	if len(parts) == 0 {
		return strat.Description
	}
	return strat.Description + ": " + strings.Join(parts, "; ")
}
