package cmd

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/prosepolish/prosepolish/internal/config"
	"github.com/prosepolish/prosepolish/internal/controller"
	"github.com/prosepolish/prosepolish/internal/enforcer"
	"github.com/prosepolish/prosepolish/internal/evaluator"
	"github.com/prosepolish/prosepolish/internal/reporter"
	"github.com/prosepolish/prosepolish/internal/rewriter"
	"github.com/prosepolish/prosepolish/internal/textdoc"
	"github.com/prosepolish/prosepolish/internal/ui"
)

var (
	polishGenre         string
	polishTarget        float64
	polishMaxIterations int
	polishMaxStrategies int
	polishBackend       string
	polishOutput        string
	polishDelay         time.Duration
	polishConfigPath    string
	polishReview        bool
)

var polishCmd = &cobra.Command{
	Use:   "polish <file>",
	Short: "Iteratively rewrite a text toward the excellence target",
	Long: `Evaluate a prose text and drive an LLM rewriter through bounded
improvement iterations until it reaches the target score, the
iteration budget runs out, or a protected metric would regress.

Examples:
  prosepolish polish chapter1.md
  prosepolish polish --genre thriller --target 92 draft.txt
  prosepolish polish --output polished.txt --format json draft.txt`,
	Args:         cobra.ExactArgs(1),
	RunE:         runPolish,
	SilenceUsage: true,
}

func init() {
	polishCmd.Flags().StringVarP(&polishGenre, "genre", "g", "", "Genre hint passed to the rewriter")
	polishCmd.Flags().Float64Var(&polishTarget, "target", 0, "Target overall score (default from config)")
	polishCmd.Flags().IntVar(&polishMaxIterations, "max-iterations", 0, "Iteration budget (default from config)")
	polishCmd.Flags().IntVar(&polishMaxStrategies, "max-strategies", 0, "Strategies per iteration (default from config)")
	polishCmd.Flags().StringVar(&polishBackend, "backend", "", "Rewriter backend: api or cli (default: auto-detect)")
	polishCmd.Flags().StringVarP(&polishOutput, "output", "o", "", "Write the polished text to this file")
	polishCmd.Flags().DurationVar(&polishDelay, "delay", 0, "Delay between iterations (default from config)")
	polishCmd.Flags().StringVar(&polishConfigPath, "config", "", "Path to a configuration YAML file")
	polishCmd.Flags().BoolVar(&polishReview, "review", false, "Browse the iteration history interactively after the run")
	RootCmd.AddCommand(polishCmd)
}

func runPolish(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(polishConfigPath)
	if err != nil {
		return err
	}
	applyPolishOverrides(cfg)

	lex, err := loadLexicon(lexiconName)
	if err != nil {
		return fmt.Errorf("failed to load lexicon: %w", err)
	}

	u := GetUI()
	progress := u.StartProgress()
	defer func() {
		if progress != nil {
			progress.Done(nil)
		}
	}()

	progress.SetStage(ui.StageLoadText)
	progress.SetOperation(args[0])
	doc, err := textdoc.Load(args[0])
	if err != nil {
		return err
	}

	genre := polishGenre
	if genre == "" {
		genre = doc.Genre()
	}

	progress.SetStage(ui.StageEvaluate)
	eval := evaluator.NewWithTargets(lex, cfg.Targets)
	initial := eval.Evaluate(doc.Text)

	rw, err := rewriter.New(rewriter.Backend(polishBackend))
	if err != nil {
		return err
	}

	enf := enforcer.New(eval, rw, cfg.TargetScore)
	ctrl := controller.New(enf, cfg, doc.Text, genre, initial)

	progress.SetStage(ui.StagePolish)
	progress.SetIterationCount(cfg.Iteration.MaxIterations)

	ctx := cmd.Context()
	for {
		progress.IterationStart(ctrl.Iteration() + 1)

		res, err := ctrl.RunIteration(ctx)
		if err != nil {
			return err
		}
		if res.Failed {
			if verbose {
				fmt.Fprintf(u.ErrWriter, "iteration failed: %s\n", res.Error)
			}
			break
		}
		if res.Rejected {
			if verbose {
				for _, v := range res.Violations {
					fmt.Fprintf(u.ErrWriter, "rejected: %s\n", v)
				}
			}
			break
		}
		progress.IterationDone(res.Report.OverallScore)
		if !res.ShouldContinue {
			break
		}

		if delay := cfg.Iteration.Delay.Std(); delay > 0 {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(delay):
			}
		}
	}

	if progress != nil {
		progress.Done(nil)
		progress = nil
	}

	record := ctrl.Record()

	if polishOutput != "" {
		if err := os.WriteFile(polishOutput, []byte(record.FinalText+"\n"), 0o644); err != nil {
			return fmt.Errorf("failed to write output: %w", err)
		}
	}

	var out reporter.Reporter
	if u.IsJSON() {
		out = reporter.NewJSONReporter(os.Stdout)
	} else {
		out = reporter.NewTerminalReporter(os.Stdout, u.Styles, cfg.Targets)
	}
	if err := out.ReportRun(record); err != nil {
		return err
	}

	if polishReview && u.IsInteractive() {
		return ui.RunReview(record)
	}
	return nil
}

// applyPolishOverrides copies set flags over the loaded configuration
func applyPolishOverrides(cfg *config.Config) {
	if polishTarget > 0 {
		cfg.TargetScore = polishTarget
	}
	if polishMaxIterations > 0 {
		cfg.Iteration.MaxIterations = polishMaxIterations
	}
	if polishMaxStrategies > 0 {
		cfg.Iteration.MaxStrategies = polishMaxStrategies
	}
	if polishDelay > 0 {
		cfg.Iteration.Delay = config.Duration(polishDelay)
	}
}
