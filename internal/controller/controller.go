// Package controller drives the bounded refinement loop: it repeatedly hands
// the current text to the enforcer, guards already-achieved metrics with
// monotonic locks, and tracks per-iteration history until the target score is
// reached or the iteration budget runs out.
package controller

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/prosepolish/prosepolish/internal/config"
	"github.com/prosepolish/prosepolish/internal/enforcer"
	"github.com/prosepolish/prosepolish/internal/evaluator"
)

// Enforcer is the single-pass improvement engine the controller drives
type Enforcer interface {
	EnforceExcellence(ctx context.Context, text, genre string, maxStrategies int) enforcer.Result
}

// Lock guards a metric that has reached its target. Current tracks the
// metric's value in the committed text; candidate iterations that push it
// past the configured tolerance are rejected wholesale.
type Lock struct {
	Metric   string  `json:"metric"`
	Current  float64 `json:"current"`
	LockedAt int     `json:"lockedAt"`
}

// Snapshot records the outcome of one committed iteration
type Snapshot struct {
	Iteration         int                `json:"iteration"`
	Text              string             `json:"-"`
	Report            *evaluator.Report  `json:"report"`
	StrategiesApplied []string           `json:"strategiesApplied,omitempty"`
	Deltas            map[string]float64 `json:"deltas,omitempty"`
	LockedMetrics     []string           `json:"lockedMetrics,omitempty"`
}

// BestEntry is the best value observed for a metric and when it occurred
type BestEntry struct {
	Value     float64 `json:"value"`
	Iteration int     `json:"iteration"`
}

// IterationResult reports what one RunIteration call did
type IterationResult struct {
	Iteration int               `json:"iteration"`
	Report    *evaluator.Report `json:"report"`

	// Committed means the candidate text was adopted as the new current text
	Committed bool `json:"committed"`

	// Rejected means a locked metric regressed; state is untouched and no
	// iteration budget was consumed
	Rejected   bool     `json:"rejected"`
	Violations []string `json:"violations,omitempty"`

	// Failed means enforcement faulted; state is untouched and no
	// iteration budget was consumed
	Failed bool   `json:"failed,omitempty"`
	Error  string `json:"error,omitempty"`

	TargetReached  bool  `json:"targetReached"`
	ShouldContinue bool  `json:"shouldContinue"`
	TokensUsed     int64 `json:"tokensUsed"`
}

// Summary condenses a whole run
type Summary struct {
	InitialScore       float64  `json:"initialScore"`
	FinalScore         float64  `json:"finalScore"`
	Iterations         int      `json:"iterations"`
	TargetReached      bool     `json:"targetReached"`
	BestScoreIteration int      `json:"bestScoreIteration"`
	LockedMetrics      []string `json:"lockedMetrics,omitempty"`
	TotalImprovement   float64  `json:"totalImprovement"`
	TokensUsed         int64    `json:"tokensUsed"`
}

// RunRecord is the full result of a run, suitable for reporting
type RunRecord struct {
	InitialReport *evaluator.Report `json:"initialReport"`
	FinalReport   *evaluator.Report `json:"finalReport"`
	FinalText     string            `json:"-"`
	History       []Snapshot        `json:"history,omitempty"`
	Summary       Summary           `json:"summary"`
}

// lockableMetrics are the metrics that lock once they meet their target
var lockableMetrics = []string{
	evaluator.MetricGlueWords,
	evaluator.MetricPassiveVoice,
	evaluator.MetricDialogueBalance,
	evaluator.MetricShowDontTell,
	evaluator.MetricDynamicContent,
	evaluator.MetricAIPatternCount,
	evaluator.MetricOverallScore,
}

// Controller owns the run state. Not safe for concurrent use.
type Controller struct {
	enf   Enforcer
	cfg   *config.Config
	genre string

	initialReport *evaluator.Report
	currentText   string
	currentReport *evaluator.Report
	iteration     int
	history       []Snapshot
	locks         map[string]*Lock
	best          map[string]BestEntry
	targetReached bool
	tokensUsed    int64
}

// New creates a controller over an already-evaluated starting text. The
// history opens with snapshot 0: the unmodified input before any strategy
// runs.
func New(enf Enforcer, cfg *config.Config, text, genre string, initial *evaluator.Report) *Controller {
	c := &Controller{
		enf:           enf,
		cfg:           cfg,
		genre:         genre,
		initialReport: initial,
		currentText:   text,
		currentReport: initial,
		locks:         make(map[string]*Lock),
		best:          make(map[string]BestEntry),
		targetReached: initial.OverallScore >= cfg.TargetScore,
	}
	c.refreshLocks(initial)
	c.updateBest(initial)
	c.history = append(c.history, Snapshot{
		Iteration:     0,
		Text:          text,
		Report:        initial,
		LockedMetrics: c.lockedNames(),
	})
	return c
}

// RunIteration performs at most one refinement pass. When the target is
// already reached or the budget is exhausted it is a no-op with
// ShouldContinue=false. A lock violation rejects the candidate without
// consuming budget; the caller may still continue. A fault inside
// enforcement is contained the same way: state stays untouched and the
// result carries the error instead of propagating it.
func (c *Controller) RunIteration(ctx context.Context) (*IterationResult, error) {
	if c.targetReached || c.iteration >= c.cfg.Iteration.MaxIterations {
		return &IterationResult{
			Iteration:     c.iteration,
			Report:        c.currentReport,
			TargetReached: c.targetReached,
		}, nil
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	res, fault := c.enforce(ctx)
	if fault != nil {
		return &IterationResult{
			Iteration:      c.iteration,
			Report:         c.currentReport,
			Failed:         true,
			Error:          fault.Error(),
			ShouldContinue: true,
		}, nil
	}
	c.tokensUsed += res.TokensUsed

	if violations := c.violations(res.FinalReport); len(violations) > 0 {
		return &IterationResult{
			Iteration:      c.iteration,
			Report:         c.currentReport,
			Rejected:       true,
			Violations:     violations,
			ShouldContinue: true,
			TokensUsed:     res.TokensUsed,
		}, nil
	}

	c.iteration++
	deltas := evaluator.ImprovementDeltas(c.currentReport, res.FinalReport, c.cfg.Targets)

	committed := res.FinalReport.OverallScore > c.currentReport.OverallScore
	if committed {
		c.currentText = res.FinalText
		c.currentReport = res.FinalReport
		c.refreshLocks(res.FinalReport)
		c.targetReached = c.currentReport.OverallScore >= c.cfg.TargetScore
	}
	c.updateBest(res.FinalReport)

	// The snapshot records the candidate text with its own report, whether
	// or not the candidate was adopted as the new current text.
	c.history = append(c.history, Snapshot{
		Iteration:         c.iteration,
		Text:              res.FinalText,
		Report:            res.FinalReport,
		StrategiesApplied: acceptedStrategies(res.Attempts),
		Deltas:            deltas,
		LockedMetrics:     c.lockedNames(),
	})

	return &IterationResult{
		Iteration:      c.iteration,
		Report:         res.FinalReport,
		Committed:      committed,
		TargetReached:  c.targetReached,
		ShouldContinue: !c.targetReached && c.iteration < c.cfg.Iteration.MaxIterations,
		TokensUsed:     res.TokensUsed,
	}, nil
}

// RunUntilTarget iterates until the target score is reached, the budget runs
// out, or an iteration is rejected or faults. A rejected candidate would
// repeat identically on the next pass, so the loop stops rather than spin.
func (c *Controller) RunUntilTarget(ctx context.Context) (*RunRecord, error) {
	for {
		res, err := c.RunIteration(ctx)
		if err != nil {
			return nil, err
		}
		if res.Rejected || res.Failed || !res.ShouldContinue {
			break
		}

		if delay := c.cfg.Iteration.Delay.Std(); delay > 0 {
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			case <-time.After(delay):
			}
		}
	}
	return c.Record(), nil
}

// enforce runs one enforcement pass, converting a panic from the injected
// enforcer or its rewriter into an error
func (c *Controller) enforce(ctx context.Context) (res enforcer.Result, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("enforcement fault: %v", r)
		}
	}()
	return c.enf.EnforceExcellence(ctx, c.currentText, c.genre, c.cfg.Iteration.MaxStrategies), nil
}

// violations checks a candidate report against every held lock
func (c *Controller) violations(candidate *evaluator.Report) []string {
	var out []string
	for _, metric := range lockableMetrics {
		lock, held := c.locks[metric]
		if !held {
			continue
		}
		value := candidate.Metric(metric)

		switch metric {
		case evaluator.MetricDialogueBalance:
			if value < c.cfg.Targets.DialogueMin || value > c.cfg.Targets.DialogueMax {
				out = append(out, fmt.Sprintf("%s left the %.0f-%.0f%% range: %.1f%%",
					metric, c.cfg.Targets.DialogueMin, c.cfg.Targets.DialogueMax, value))
			}
		case evaluator.MetricAIPatternCount:
			if value > lock.Current {
				out = append(out, fmt.Sprintf("%s increased from %.0f to %.0f", metric, lock.Current, value))
			}
		case evaluator.MetricDynamicContent, evaluator.MetricOverallScore:
			tol := c.cfg.Tolerance(metric)
			if value < lock.Current-tol {
				out = append(out, fmt.Sprintf("%s regressed from %.1f to %.1f (tolerance %.1f)",
					metric, lock.Current, value, tol))
			}
		default:
			tol := c.cfg.Tolerance(metric)
			if value > lock.Current+tol {
				out = append(out, fmt.Sprintf("%s regressed from %.1f to %.1f (tolerance %.1f)",
					metric, lock.Current, value, tol))
			}
		}
	}
	return out
}

// refreshLocks updates held locks to the committed values and acquires new
// locks for metrics that now meet their targets
func (c *Controller) refreshLocks(r *evaluator.Report) {
	for _, metric := range lockableMetrics {
		value := r.Metric(metric)
		if lock, held := c.locks[metric]; held {
			lock.Current = value
			continue
		}
		if c.meetsTarget(metric, value) {
			c.locks[metric] = &Lock{Metric: metric, Current: value, LockedAt: c.iteration}
		}
	}
}

func (c *Controller) meetsTarget(metric string, value float64) bool {
	t := c.cfg.Targets
	switch metric {
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
	case evaluator.MetricAIPatternCount:
		return value == 0
	case evaluator.MetricOverallScore:
		return value >= c.cfg.TargetScore
	default:
		return false
	}
}

func (c *Controller) updateBest(r *evaluator.Report) {
	for _, metric := range evaluator.AllMetrics() {
		value := r.Metric(metric)
		entry, ok := c.best[metric]
		if !ok || evaluator.ImprovementDelta(metric, entry.Value, value, c.cfg.Targets) > 0 {
			c.best[metric] = BestEntry{Value: value, Iteration: c.iteration}
		}
	}
}

func (c *Controller) lockedNames() []string {
	names := make([]string, 0, len(c.locks))
	for name := range c.locks {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func acceptedStrategies(attempts []enforcer.Attempt) []string {
	var names []string
	for _, att := range attempts {
		if att.Accepted {
			names = append(names, att.Strategy.Name)
		}
	}
	return names
}

// CurrentText returns the committed text
func (c *Controller) CurrentText() string { return c.currentText }

// CurrentReport returns the report for the committed text
func (c *Controller) CurrentReport() *evaluator.Report { return c.currentReport }

// Iteration returns how many iterations have been committed
func (c *Controller) Iteration() int { return c.iteration }

// TargetReached reports whether the committed text meets the target score
func (c *Controller) TargetReached() bool { return c.targetReached }

// History returns the per-iteration snapshots
func (c *Controller) History() []Snapshot { return c.history }

// Locks returns the held locks sorted by metric name
func (c *Controller) Locks() []Lock {
	out := make([]Lock, 0, len(c.locks))
	for _, name := range c.lockedNames() {
		out = append(out, *c.locks[name])
	}
	return out
}

// Best returns the best observed value per metric
func (c *Controller) Best() map[string]BestEntry {
	out := make(map[string]BestEntry, len(c.best))
	for k, v := range c.best {
		out[k] = v
	}
	return out
}

// Summary condenses the run so far
func (c *Controller) Summary() Summary {
	return Summary{
		InitialScore:       c.initialReport.OverallScore,
		FinalScore:         c.currentReport.OverallScore,
		Iterations:         c.iteration,
		TargetReached:      c.targetReached,
		BestScoreIteration: c.best[evaluator.MetricOverallScore].Iteration,
		LockedMetrics:      c.lockedNames(),
		TotalImprovement:   c.currentReport.OverallScore - c.initialReport.OverallScore,
		TokensUsed:         c.tokensUsed,
	}
}

// Record assembles the full run record
func (c *Controller) Record() *RunRecord {
	return &RunRecord{
		InitialReport: c.initialReport,
		FinalReport:   c.currentReport,
		FinalText:     c.currentText,
		History:       c.history,
		Summary:       c.Summary(),
	}
}
