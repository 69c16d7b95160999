package ui

import (
	"github.com/charmbracelet/lipgloss"
)

// Styles contains all lipgloss styles for terminal output
type Styles struct {
	enabled bool

	// Score band styles
	Excellent lipgloss.Style
	Good      lipgloss.Style
	Poor      lipgloss.Style

	// Metric and status styles
	Pass    lipgloss.Style
	Fail    lipgloss.Style
	Warning lipgloss.Style
	Info    lipgloss.Style

	// Structural styles
	Header    lipgloss.Style
	Subheader lipgloss.Style
	Metric    lipgloss.Style
	Separator lipgloss.Style

	// Icons (degraded to ASCII when not interactive)
	IconPass    string
	IconFail    string
	IconWarning string
	IconInfo    string
	IconLocked  string
}

// NewStyles creates a new Styles instance
// When enabled is false, styles return text unchanged (for non-TTY output)
func NewStyles(enabled bool) *Styles {
	s := &Styles{enabled: enabled}

	if enabled {
		s.Excellent = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("10")) // Green bold
		s.Good = lipgloss.NewStyle().Foreground(lipgloss.Color("11"))                 // Yellow
		s.Poor = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("9"))       // Red bold

		s.Pass = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))    // Green
		s.Fail = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))     // Red
		s.Warning = lipgloss.NewStyle().Foreground(lipgloss.Color("11")) // Yellow
		s.Info = lipgloss.NewStyle().Foreground(lipgloss.Color("12"))    // Blue

		s.Header = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("15")) // White bold
		s.Subheader = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))          // Gray
		s.Metric = lipgloss.NewStyle().Foreground(lipgloss.Color("14"))            // Cyan
		s.Separator = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))          // Gray

		// Unicode icons
		s.IconPass = "✓"    // check mark
		s.IconFail = "✗"    // cross
		s.IconWarning = "⚠" // warning sign
		s.IconInfo = "ℹ"    // information
		s.IconLocked = "\U0001f512"
	} else {
		// No-op styles for non-TTY (plain text output)
		s.Excellent = lipgloss.NewStyle()
		s.Good = lipgloss.NewStyle()
		s.Poor = lipgloss.NewStyle()

		s.Pass = lipgloss.NewStyle()
		s.Fail = lipgloss.NewStyle()
		s.Warning = lipgloss.NewStyle()
		s.Info = lipgloss.NewStyle()

		s.Header = lipgloss.NewStyle()
		s.Subheader = lipgloss.NewStyle()
		s.Metric = lipgloss.NewStyle()
		s.Separator = lipgloss.NewStyle()

		// ASCII fallback icons
		s.IconPass = "OK:"
		s.IconFail = "FAIL:"
		s.IconWarning = "WARN:"
		s.IconInfo = "INFO:"
		s.IconLocked = "LOCKED:"
	}

	return s
}

// ScoreStyle picks the style for an overall score value
func (s *Styles) ScoreStyle(score float64) lipgloss.Style {
	switch {
	case score >= 90:
		return s.Excellent
	case score >= 80:
		return s.Good
	default:
		return s.Poor
	}
}

// Enabled returns whether styling is enabled
func (s *Styles) Enabled() bool {
	return s.enabled
}
