package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// Stage represents the current stage of a polishing run
type Stage int

const (
	StageLoadText Stage = iota
	StageEvaluate
	StagePolish
	StageDone
)

// Message types for updating the model
type (
	StageMsg          Stage
	OperationMsg      string
	IterationStartMsg string
	IterationDoneMsg  struct{ Score float64 }
	IterationCountMsg int
	DoneMsg           struct{ Err error }
)

// Model is the Bubbletea model for progress display
type Model struct {
	stage          Stage
	spinner        spinner.Model
	progress       progress.Model
	currentOp      string
	iterationCount int
	iterationsDone int
	lastScore      float64
	width          int
	quitting       bool
	err            error
}

// NewModel creates a new progress model
func NewModel() Model {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("205"))

	p := progress.New(progress.WithDefaultGradient())

	return Model{
		stage:    StageLoadText,
		spinner:  s,
		progress: p,
	}
}

// Init initializes the model
func (m Model) Init() tea.Cmd {
	return m.spinner.Tick
}

// Update handles messages and updates the model
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			m.quitting = true
			return m, tea.Quit
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.progress.Width = msg.Width - 4
		if m.progress.Width > 60 {
			m.progress.Width = 60
		}
		return m, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case StageMsg:
		m.stage = Stage(msg)
		return m, nil

	case OperationMsg:
		m.currentOp = string(msg)
		return m, nil

	case IterationStartMsg:
		m.currentOp = string(msg)
		return m, nil

	case IterationCountMsg:
		m.iterationCount = int(msg)
		return m, nil

	case IterationDoneMsg:
		m.iterationsDone++
		m.lastScore = msg.Score
		return m, nil

	case DoneMsg:
		m.err = msg.Err
		m.quitting = true
		return m, tea.Quit
	}

	return m, nil
}

// View renders the model
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	var sb strings.Builder

	switch m.stage {
	case StageLoadText:
		sb.WriteString(m.spinner.View())
		sb.WriteString(" Loading text...")

	case StageEvaluate:
		sb.WriteString(m.spinner.View())
		sb.WriteString(" Evaluating writing quality")
		if m.currentOp != "" {
			sb.WriteString(fmt.Sprintf(" (%s)", m.currentOp))
		}

	case StagePolish:
		if m.iterationCount > 0 {
			pct := float64(m.iterationsDone) / float64(m.iterationCount)
			sb.WriteString(m.progress.ViewAs(pct))
			sb.WriteString("\n")
		}
		sb.WriteString(m.spinner.View())
		sb.WriteString(" ")
		if m.currentOp != "" {
			sb.WriteString(m.currentOp)
		} else {
			sb.WriteString("Polishing...")
		}
		if m.iterationsDone > 0 {
			sb.WriteString(fmt.Sprintf(" [score %.1f]", m.lastScore))
		}
	}

	return sb.String()
}
