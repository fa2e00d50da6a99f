package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/aerotrain/flightdeck/internal/wizard"
)

// ---------------------------------------------------------------------------
// Wizard lifecycle messages
// ---------------------------------------------------------------------------

// WizardEventMsg wraps a wizard.Event received from the engine's event
// channel so the activity log and status bar can render transitions live.
type WizardEventMsg struct {
	Event wizard.Event
}

// RegistrationDoneMsg is dispatched when a registration submission settles.
type RegistrationDoneMsg struct {
	// Confirmation is the collaborator's message on success.
	Confirmation string
	// Err is the failure, nil on success.
	Err error
	// EmailTaken is true when Err was a duplicate-email conflict; the form
	// already carries the field-level error.
	EmailTaken bool
}

// AssignmentDoneMsg is dispatched when an assignment submission settles.
type AssignmentDoneMsg struct {
	// CourseTitle and SessionID describe the submitted assignment for the
	// trainings tab.
	CourseTitle string
	SessionID   string
	Members     int
	Total       float64
	// Err is the failure, nil on success.
	Err error
}

// WizardClosedMsg is dispatched when the user cancels an active wizard.
type WizardClosedMsg struct{}

// ---------------------------------------------------------------------------
// Internal TUI messages
// ---------------------------------------------------------------------------

// TickMsg is sent periodically to advance elapsed-time displays.
type TickMsg struct {
	Time time.Time
}

// ErrorMsg represents a non-fatal error to display in the activity log.
type ErrorMsg struct {
	// Source identifies the component that generated the error.
	Source string
	// Detail is the human-readable error description.
	Detail string
	// Timestamp records when the error was observed.
	Timestamp time.Time
}

// ---------------------------------------------------------------------------
// Commands
// ---------------------------------------------------------------------------

// listenForEvents returns a command that waits for the next wizard.Event on
// ch. The App re-issues the command after every delivery to keep draining
// the channel.
func listenForEvents(ch <-chan wizard.Event) tea.Cmd {
	return func() tea.Msg {
		ev, ok := <-ch
		if !ok {
			return nil
		}
		return WizardEventMsg{Event: ev}
	}
}

// tickEvery returns a command emitting TickMsg once per second.
func tickEvery() tea.Cmd {
	return tea.Tick(time.Second, func(t time.Time) tea.Msg {
		return TickMsg{Time: t}
	})
}
