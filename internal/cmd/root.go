package cmd

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/prosepolish/prosepolish/internal/lexicon"
	"github.com/prosepolish/prosepolish/internal/ui"
)

var (
	// Global flags
	verbose     bool
	format      string
	lexiconName string

	globalUI *ui.UI
)

var RootCmd = &cobra.Command{
	Use:   "prosepolish",
	Short: "Score and polish prose writing quality",
	Long: `prosepolish evaluates prose against heuristic writing-quality metrics
and iteratively rewrites it toward an excellence target.

It measures glue-word density, passive voice, dialogue balance,
show-dont-tell, repetition, and pacing, flags stock phrasing, and
drives an LLM rewriter through bounded improvement iterations that
never give back gains already made.`,
}

func Execute() error {
	return RootCmd.Execute()
}

// GetUI returns the process-wide UI, created on first use from the
// format flag and TTY detection
func GetUI() *ui.UI {
	if globalUI == nil {
		globalUI = ui.New(os.Stdout, os.Stderr, format)
	}
	return globalUI
}

// loadLexicon resolves the --lexicon flag: a path to a YAML file when one
// exists on disk, otherwise the name of a built-in lexicon
func loadLexicon(name string) (*lexicon.Lexicon, error) {
	if info, err := os.Stat(name); err == nil && !info.IsDir() {
		return lexicon.LoadFromFile(name)
	}
	return lexicon.Load(name)
}

func init() {
	RootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose output")
	RootCmd.PersistentFlags().StringVarP(&format, "format", "f", "terminal", "Output format (terminal, json)")
	RootCmd.PersistentFlags().StringVarP(&lexiconName, "lexicon", "l", lexicon.DefaultName, "Built-in lexicon name or path to a lexicon YAML file")
}
