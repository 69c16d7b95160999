package ui

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
)

// ProgressController manages the bubbletea program for progress display
type ProgressController struct {
	ui      *UI
	program *tea.Program
}

// StartProgress starts the progress display if in interactive mode
// Returns nil if not in interactive mode
func (ui *UI) StartProgress() *ProgressController {
	if ui.Mode != OutputModeInteractive {
		return nil
	}

	m := NewModel()
	p := tea.NewProgram(m, tea.WithOutput(ui.ErrWriter))

	ctrl := &ProgressController{
		ui:      ui,
		program: p,
	}

	// Run the program in a goroutine
	go func() {
		if _, err := p.Run(); err != nil {
			// Silently handle program errors
			_ = err
		}
	}()

	return ctrl
}

// SetStage updates the current stage
func (pc *ProgressController) SetStage(stage Stage) {
	if pc != nil && pc.program != nil {
		pc.program.Send(StageMsg(stage))
	}
}

// SetOperation updates the current operation description
func (pc *ProgressController) SetOperation(op string) {
	if pc != nil && pc.program != nil {
		pc.program.Send(OperationMsg(op))
	}
}

// SetIterationCount sets the iteration budget for the progress bar
func (pc *ProgressController) SetIterationCount(count int) {
	if pc != nil && pc.program != nil {
		pc.program.Send(IterationCountMsg(count))
	}
}

// IterationStart indicates an iteration has started
func (pc *ProgressController) IterationStart(n int) {
	if pc != nil && pc.program != nil {
		pc.program.Send(IterationStartMsg(fmt.Sprintf("Iteration %d...", n)))
	}
}

// IterationDone indicates an iteration has completed with a new score
func (pc *ProgressController) IterationDone(score float64) {
	if pc != nil && pc.program != nil {
		pc.program.Send(IterationDoneMsg{Score: score})
	}
}

// Done signals that all work is complete
func (pc *ProgressController) Done(err error) {
	if pc != nil && pc.program != nil {
		pc.program.Send(DoneMsg{Err: err})
		pc.program.Wait()
	}
}
