// Package ui owns terminal presentation: output-mode detection, the lipgloss
// style set, the live progress display shown while a polishing run iterates,
// and the interactive run-history browser.
package ui

import (
	"io"
	"os"

	"golang.org/x/term"
)

// OutputMode selects how results are rendered
type OutputMode int

const (
	// OutputModeInteractive renders styled output with live progress on a TTY
	OutputModeInteractive OutputMode = iota
	// OutputModePlain renders unstyled text, for pipes and redirects
	OutputModePlain
	// OutputModeJSON suppresses all decoration; only JSON reaches stdout
	OutputModeJSON
)

// UI bundles the resolved output mode with the writers and styles the
// commands render through
type UI struct {
	Mode      OutputMode
	Writer    io.Writer
	ErrWriter io.Writer
	Styles    *Styles
}

// New resolves the output mode from the format flag and whether the writer
// is a terminal, and builds the matching style set
func New(w, errW io.Writer, format string) *UI {
	mode := detectMode(w, format)
	return &UI{
		Mode:      mode,
		Writer:    w,
		ErrWriter: errW,
		Styles:    NewStyles(mode == OutputModeInteractive),
	}
}

func detectMode(w io.Writer, format string) OutputMode {
	if format == "json" {
		return OutputModeJSON
	}
	if f, ok := w.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		return OutputModeInteractive
	}
	return OutputModePlain
}

// IsInteractive reports whether output goes to a TTY
func (ui *UI) IsInteractive() bool {
	return ui.Mode == OutputModeInteractive
}

// IsJSON reports whether JSON-only output was requested
func (ui *UI) IsJSON() bool {
	return ui.Mode == OutputModeJSON
}
