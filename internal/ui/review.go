package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/prosepolish/prosepolish/internal/controller"
	"github.com/prosepolish/prosepolish/internal/evaluator"
)

// reviewRow is one selectable entry in the iteration list
type reviewRow struct {
	label    string
	report   *evaluator.Report
	snapshot *controller.Snapshot
}

// ReviewModel is the bubbletea model for browsing a run's iteration history
type ReviewModel struct {
	record     *controller.RunRecord
	rows       []reviewRow
	cursor     int
	viewport   viewport.Model
	ready      bool
	width      int
	height     int
	showDeltas bool
	keys       reviewKeyMap
	styles     reviewStyles
}

type reviewKeyMap struct {
	Up           key.Binding
	Down         key.Binding
	ToggleDeltas key.Binding
	Quit         key.Binding
}

type reviewStyles struct {
	selected  lipgloss.Style
	row       lipgloss.Style
	improved  lipgloss.Style
	regressed lipgloss.Style
	locked    lipgloss.Style
	dim       lipgloss.Style
	header    lipgloss.Style
	statusBar lipgloss.Style
	helpBar   lipgloss.Style
}

func defaultReviewKeyMap() reviewKeyMap {
	return reviewKeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("↑/k", "up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("↓/j", "down"),
		),
		ToggleDeltas: key.NewBinding(
			key.WithKeys("d"),
			key.WithHelp("d", "toggle deltas"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

func defaultReviewStyles() reviewStyles {
	return reviewStyles{
		selected:  lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("205")),
		row:       lipgloss.NewStyle(),
		improved:  lipgloss.NewStyle().Foreground(lipgloss.Color("10")),
		regressed: lipgloss.NewStyle().Foreground(lipgloss.Color("9")),
		locked:    lipgloss.NewStyle().Foreground(lipgloss.Color("11")),
		dim:       lipgloss.NewStyle().Foreground(lipgloss.Color("8")),
		header:    lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("15")),
		statusBar: lipgloss.NewStyle().Foreground(lipgloss.Color("15")).Background(lipgloss.Color("57")),
		helpBar:   lipgloss.NewStyle().Foreground(lipgloss.Color("8")),
	}
}

// NewReviewModel creates a review model over a completed run. Snapshot 0 in
// the history is the unmodified input and is labelled as such.
func NewReviewModel(record *controller.RunRecord) ReviewModel {
	rows := make([]reviewRow, 0, len(record.History)+1)
	for i := range record.History {
		snap := &record.History[i]
		label := fmt.Sprintf("iteration %-4d score %5.1f", snap.Iteration, snap.Report.OverallScore)
		if snap.Iteration == 0 {
			label = fmt.Sprintf("initial        score %5.1f", snap.Report.OverallScore)
		}
		rows = append(rows, reviewRow{label: label, report: snap.Report, snapshot: snap})
	}
	if len(rows) == 0 {
		rows = append(rows, reviewRow{
			label:  fmt.Sprintf("initial        score %5.1f", record.InitialReport.OverallScore),
			report: record.InitialReport,
		})
	}

	return ReviewModel{
		record:     record,
		rows:       rows,
		cursor:     len(rows) - 1,
		showDeltas: true,
		keys:       defaultReviewKeyMap(),
		styles:     defaultReviewStyles(),
	}
}

// Init initializes the model
func (m ReviewModel) Init() tea.Cmd {
	return nil
}

// Update handles messages
func (m ReviewModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			return m, tea.Quit
		case key.Matches(msg, m.keys.Up):
			if m.cursor > 0 {
				m.cursor--
			}
		case key.Matches(msg, m.keys.Down):
			if m.cursor < len(m.rows)-1 {
				m.cursor++
			}
		case key.Matches(msg, m.keys.ToggleDeltas):
			m.showDeltas = !m.showDeltas
		}
		m.viewport.SetContent(m.detailView())

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		listHeight := m.listHeight()
		vpHeight := m.height - listHeight - 3
		if vpHeight < 3 {
			vpHeight = 3
		}
		if !m.ready {
			m.viewport = viewport.New(m.width, vpHeight)
			m.ready = true
		} else {
			m.viewport.Width = m.width
			m.viewport.Height = vpHeight
		}
		m.viewport.SetContent(m.detailView())
	}

	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

func (m ReviewModel) listHeight() int {
	h := len(m.rows)
	if max := m.height / 3; h > max && max > 0 {
		h = max
	}
	return h
}

// View renders the iteration list above the detail viewport
func (m ReviewModel) View() string {
	if !m.ready {
		return "loading..."
	}

	var sb strings.Builder

	summary := m.record.Summary
	status := fmt.Sprintf(" %.1f → %.1f in %d iterations ", summary.InitialScore, summary.FinalScore, summary.Iterations)
	if summary.TargetReached {
		status += "(target reached) "
	}
	sb.WriteString(m.styles.statusBar.Render(status))
	sb.WriteString("\n")

	start, end := m.visibleRange()
	for i := start; i < end; i++ {
		line := m.rows[i].label
		if i == m.cursor {
			sb.WriteString(m.styles.selected.Render("> " + line))
		} else {
			sb.WriteString(m.styles.row.Render("  " + line))
		}
		sb.WriteString("\n")
	}

	sb.WriteString(m.viewport.View())
	sb.WriteString("\n")
	sb.WriteString(m.styles.helpBar.Render(" ↑/↓ select · d deltas · q quit"))

	return sb.String()
}

// visibleRange windows the row list around the cursor
func (m ReviewModel) visibleRange() (int, int) {
	h := m.listHeight()
	start := 0
	if m.cursor >= h {
		start = m.cursor - h + 1
	}
	end := start + h
	if end > len(m.rows) {
		end = len(m.rows)
	}
	return start, end
}

// detailView renders the selected iteration's report
func (m ReviewModel) detailView() string {
	row := m.rows[m.cursor]
	r := row.report

	var sb strings.Builder
	sb.WriteString(m.styles.header.Render("Metrics"))
	sb.WriteString("\n")
	fmt.Fprintf(&sb, "  overall %.1f · glue %.1f%% · passive %.1f%% · dialogue %.1f%%\n",
		r.OverallScore, r.GlueWords, r.PassiveVoice, r.DialogueBalance)
	fmt.Fprintf(&sb, "  telling %.1f%% · repetition %.1f%% · dynamic %.1f%% · reflective %.1f%%\n",
		r.ShowDontTell, r.WordRepetition, r.DynamicContent, r.ReflectiveContent)
	fmt.Fprintf(&sb, "  flagged phrases %d · coherence penalty %.1f\n", r.AIPatternCount, r.CoherencePenalty)

	snap := row.snapshot
	if snap == nil {
		return sb.String()
	}

	if len(snap.StrategiesApplied) > 0 {
		sb.WriteString("\n")
		sb.WriteString(m.styles.header.Render("Strategies applied"))
		sb.WriteString("\n")
		for _, name := range snap.StrategiesApplied {
			fmt.Fprintf(&sb, "  %s\n", name)
		}
	}

	if len(snap.LockedMetrics) > 0 {
		sb.WriteString("\n")
		sb.WriteString(m.styles.header.Render("Locked"))
		sb.WriteString("\n")
		sb.WriteString(m.styles.locked.Render("  " + strings.Join(snap.LockedMetrics, ", ")))
		sb.WriteString("\n")
	}

	if m.showDeltas && len(snap.Deltas) > 0 {
		sb.WriteString("\n")
		sb.WriteString(m.styles.header.Render("Deltas"))
		sb.WriteString("\n")
		for _, name := range evaluator.AllMetrics() {
			delta, ok := snap.Deltas[name]
			if !ok || delta == 0 {
				continue
			}
			line := fmt.Sprintf("  %-18s %+.1f", name, delta)
			if delta > 0 {
				sb.WriteString(m.styles.improved.Render(line))
			} else {
				sb.WriteString(m.styles.regressed.Render(line))
			}
			sb.WriteString("\n")
		}
	}

	return sb.String()
}

// RunReview opens the interactive history browser for a completed run
func RunReview(record *controller.RunRecord) error {
	p := tea.NewProgram(NewReviewModel(record), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
