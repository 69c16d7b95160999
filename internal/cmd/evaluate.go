package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/prosepolish/prosepolish/internal/config"
	"github.com/prosepolish/prosepolish/internal/evaluator"
	"github.com/prosepolish/prosepolish/internal/reporter"
	"github.com/prosepolish/prosepolish/internal/textdoc"
)

var evaluateConfigPath string

var evaluateCmd = &cobra.Command{
	Use:     "evaluate <file>",
	Aliases: []string{"eval"},
	Short:   "Evaluate the writing quality of a text",
	Long: `Score a prose text against the writing-quality metrics without
changing it.

Examples:
  prosepolish evaluate chapter1.md
  prosepolish evaluate --format json draft.txt > report.json`,
	Args:         cobra.ExactArgs(1),
	RunE:         runEvaluate,
	SilenceUsage: true,
}

func init() {
	evaluateCmd.Flags().StringVar(&evaluateConfigPath, "config", "", "Path to a configuration YAML file")
	RootCmd.AddCommand(evaluateCmd)
}

func runEvaluate(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(evaluateConfigPath)
	if err != nil {
		return err
	}

	lex, err := loadLexicon(lexiconName)
	if err != nil {
		return fmt.Errorf("failed to load lexicon: %w", err)
	}

	doc, err := textdoc.Load(args[0])
	if err != nil {
		return err
	}

	u := GetUI()
	if verbose {
		fmt.Fprintf(u.Writer, "Evaluating %s\n", doc.Path)
	}

	eval := evaluator.NewWithTargets(lex, cfg.Targets)
	rep := eval.Evaluate(doc.Text)

	var out reporter.Reporter
	if u.IsJSON() {
		out = reporter.NewJSONReporter(os.Stdout)
	} else {
		out = reporter.NewTerminalReporter(os.Stdout, u.Styles, cfg.Targets)
	}
	return out.ReportEvaluation(rep)
}

// loadConfig returns the defaults when no path is given
func loadConfig(path string) (*config.Config, error) {
	if path == "" {
		return config.Default(), nil
	}
	return config.Load(path)
}
