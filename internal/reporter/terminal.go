package reporter

import (
	"fmt"
	"io"
	"strings"

	"github.com/prosepolish/prosepolish/internal/controller"
	"github.com/prosepolish/prosepolish/internal/evaluator"
	"github.com/prosepolish/prosepolish/internal/ui"
)

// TerminalReporter renders results for humans, with colors on a TTY
type TerminalReporter struct {
	w       io.Writer
	styles  *ui.Styles
	targets evaluator.Targets
}

// NewTerminalReporter creates a terminal reporter
func NewTerminalReporter(w io.Writer, styles *ui.Styles, targets evaluator.Targets) *TerminalReporter {
	return &TerminalReporter{w: w, styles: styles, targets: targets}
}

// ReportEvaluation prints the metric table, flagged phrases, coherence
// issues, and suggestions for one report
func (r *TerminalReporter) ReportEvaluation(rep *evaluator.Report) error {
	s := r.styles

	fmt.Fprintln(r.w)
	score := s.ScoreStyle(rep.OverallScore).Render(fmt.Sprintf("%.1f", rep.OverallScore))
	fmt.Fprintf(r.w, "%s %s / 100\n", s.Header.Render("Overall score:"), score)
	fmt.Fprintf(r.w, "%s\n", s.Subheader.Render(fmt.Sprintf("  %d words, %d sentences", rep.WordCount, rep.SentenceCount)))

	fmt.Fprintln(r.w)
	for _, row := range metricRows(r.targets) {
		value := rep.Metric(row.Name)

		icon := s.IconPass
		style := s.Pass
		if !metricPasses(row.Name, value, r.targets) {
			icon = s.IconFail
			style = s.Fail
		}
		if row.Target == "" {
			icon = s.IconInfo
			style = s.Info
		}

		line := fmt.Sprintf("  %s %-20s %5.1f%%", icon, row.Label, value)
		if row.Target != "" {
			line += s.Subheader.Render("  (target " + row.Target + ")")
		}
		fmt.Fprintln(r.w, style.Render(line))
	}

	if len(rep.AIPatterns) > 0 {
		fmt.Fprintln(r.w)
		fmt.Fprintln(r.w, s.Header.Render("Flagged phrases"))
		for _, p := range rep.AIPatterns {
			fmt.Fprintf(r.w, "  %s %s", s.IconWarning, s.Warning.Render(fmt.Sprintf("%q ×%d", p.Phrase, p.Count)))
			fmt.Fprintf(r.w, " %s\n", s.Subheader.Render("["+p.Severity+"]"))
			for _, ex := range p.Examples {
				fmt.Fprintf(r.w, "    %s\n", s.Subheader.Render("> "+truncate(ex, 120)))
			}
		}
	}

	if len(rep.CoherenceIssues) > 0 {
		fmt.Fprintln(r.w)
		fmt.Fprintln(r.w, s.Header.Render("Coherence"))
		for _, issue := range rep.CoherenceIssues {
			fmt.Fprintf(r.w, "  %s %s %s\n", s.IconWarning, issue.Message, s.Subheader.Render("["+issue.Severity+"]"))
		}
	}

	if len(rep.Suggestions) > 0 {
		fmt.Fprintln(r.w)
		fmt.Fprintln(r.w, s.Header.Render("Suggestions"))
		for _, sug := range rep.Suggestions {
			fmt.Fprintf(r.w, "  %s\n", sug)
		}
	}

	return nil
}

// ReportRun prints the iteration history and run summary
func (r *TerminalReporter) ReportRun(rec *controller.RunRecord) error {
	s := r.styles
	sum := rec.Summary

	fmt.Fprintln(r.w)
	fmt.Fprintln(r.w, s.Header.Render("Polishing run"))
	for _, snap := range rec.History {
		// Snapshot 0 is the unmodified input; the summary line below
		// already shows its score.
		if snap.Iteration == 0 {
			continue
		}
		scoreStr := s.ScoreStyle(snap.Report.OverallScore).Render(fmt.Sprintf("%5.1f", snap.Report.OverallScore))
		fmt.Fprintf(r.w, "  iteration %-3d %s", snap.Iteration, scoreStr)
		if len(snap.StrategiesApplied) > 0 {
			fmt.Fprintf(r.w, "  %s", s.Subheader.Render(strings.Join(snap.StrategiesApplied, ", ")))
		}
		fmt.Fprintln(r.w)
	}

	fmt.Fprintln(r.w)
	fmt.Fprintln(r.w, s.Separator.Render("─────────────────────────────────────"))

	initial := s.ScoreStyle(sum.InitialScore).Render(fmt.Sprintf("%.1f", sum.InitialScore))
	final := s.ScoreStyle(sum.FinalScore).Render(fmt.Sprintf("%.1f", sum.FinalScore))
	fmt.Fprintf(r.w, "Score %s → %s in %d iterations", initial, final, sum.Iterations)
	if sum.TokensUsed > 0 {
		fmt.Fprintf(r.w, " %s", s.Subheader.Render(fmt.Sprintf("(%d tokens)", sum.TokensUsed)))
	}
	fmt.Fprintln(r.w)

	if sum.TargetReached {
		fmt.Fprintf(r.w, "%s Target reached\n", s.Pass.Render(s.IconPass))
	} else {
		fmt.Fprintf(r.w, "%s Target not reached\n", s.Warning.Render(s.IconWarning))
	}
	if len(sum.LockedMetrics) > 0 {
		fmt.Fprintf(r.w, "%s\n", s.Subheader.Render("Locked: "+strings.Join(sum.LockedMetrics, ", ")))
	}

	return r.ReportEvaluation(rec.FinalReport)
}

// truncate shortens s to at most n runes, never splitting a multi-byte rune
func truncate(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n-3]) + "..."
}
