package lexicon

import (
	"embed"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

//go:embed configs/*.yaml
var configFS embed.FS

// builtinLexicons maps lexicon names to their loaded tables
var builtinLexicons = map[string]*Lexicon{}

func init() {
	entries, err := configFS.ReadDir("configs")
	if err != nil {
		return
	}

	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}

		data, err := configFS.ReadFile(filepath.Join("configs", entry.Name()))
		if err != nil {
			continue
		}

		var lex Lexicon
		if err := yaml.Unmarshal(data, &lex); err != nil {
			continue
		}
		lex.compile()

		builtinLexicons[lex.Name] = &lex
	}
}

// DefaultName is the lexicon used when none is specified
const DefaultName = "english"

// Load loads a lexicon by name
func Load(name string) (*Lexicon, error) {
	if lex, ok := builtinLexicons[name]; ok {
		return lex, nil
	}
	return nil, fmt.Errorf("unknown lexicon: %s", name)
}

// Default returns the builtin english lexicon
func Default() *Lexicon {
	lex, err := Load(DefaultName)
	if err != nil {
		// The embedded default always exists; an empty lexicon keeps
		// the evaluator usable if the embed is ever broken.
		return &Lexicon{Name: DefaultName}
	}
	return lex
}

// Available returns the names of all builtin lexicons
func Available() []string {
	names := make([]string, 0, len(builtinLexicons))
	for name := range builtinLexicons {
		names = append(names, name)
	}
	return names
}

// LoadFromFile loads a custom lexicon from a YAML file
func LoadFromFile(path string) (*Lexicon, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read lexicon: %w", err)
	}

	var lex Lexicon
	if err := yaml.Unmarshal(data, &lex); err != nil {
		return nil, fmt.Errorf("failed to parse lexicon: %w", err)
	}
	if lex.Name == "" {
		lex.Name = filepath.Base(path)
	}
	lex.compile()

	return &lex, nil
}
