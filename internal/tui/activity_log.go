package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/aerotrain/flightdeck/internal/wizard"
)

// MaxActivityEntries is the maximum number of entries retained in the
// activity log. When the buffer is full the oldest entry is evicted to make
// room.
const MaxActivityEntries = 500

// ---------------------------------------------------------------------------
// EventCategory
// ---------------------------------------------------------------------------

// EventCategory classifies an activity log entry for colour-coded display.
type EventCategory int

const (
	// EventInfo is the default category for informational messages.
	EventInfo EventCategory = iota
	// EventSuccess indicates a completed submission.
	EventSuccess
	// EventWarning indicates a refused transition or submission attempt.
	EventWarning
	// EventError indicates a failure.
	EventError
)

// ---------------------------------------------------------------------------
// ActivityEntry
// ---------------------------------------------------------------------------

// ActivityEntry is a single entry in the activity log ring buffer.
type ActivityEntry struct {
	// Timestamp records when the event occurred.
	Timestamp time.Time
	// Category classifies the entry for display purposes.
	Category EventCategory
	// Message is the human-readable description of the event.
	Message string
}

// ---------------------------------------------------------------------------
// ActivityLogModel
// ---------------------------------------------------------------------------

// ActivityLogModel is the Bubble Tea sub-model behind the Activity tab: a
// scrollable record of wizard transitions, refusals, and submissions. It
// maintains a bounded ring buffer of ActivityEntry values and drives a
// bubbles/viewport for display.
//
// ActivityLogModel follows Bubble Tea's Elm architecture: Update returns a
// new value, and View is a pure function of the model state.
type ActivityLogModel struct {
	theme      Theme
	width      int
	height     int
	focused    bool
	entries    []ActivityEntry
	viewport   viewport.Model
	autoScroll bool
}

// NewActivityLogModel creates an ActivityLogModel with auto-scroll enabled.
// The entries buffer starts empty.
func NewActivityLogModel(theme Theme) ActivityLogModel {
	return ActivityLogModel{
		theme:      theme,
		autoScroll: true,
		viewport:   viewport.New(0, 0),
	}
}

// SetDimensions updates the panel width and height and resizes the internal
// viewport. The viewport height is (height - 1) to reserve one row for the
// panel header.
func (al *ActivityLogModel) SetDimensions(width, height int) {
	al.width = width
	al.height = height

	vpHeight := height - 1
	if vpHeight < 0 {
		vpHeight = 0
	}
	al.viewport.Width = width
	al.viewport.Height = vpHeight

	al.rebuildContent()
}

// SetFocused sets whether the activity log currently holds keyboard focus.
func (al *ActivityLogModel) SetFocused(focused bool) {
	al.focused = focused
}

// AddEntry appends a new ActivityEntry to the log. When the buffer exceeds
// MaxActivityEntries the oldest entry is evicted. The viewport content is
// rebuilt after every insertion and, when autoScroll is enabled, the viewport
// is scrolled to the bottom.
func (al *ActivityLogModel) AddEntry(category EventCategory, message string) {
	entry := ActivityEntry{
		Timestamp: time.Now(),
		Category:  category,
		Message:   message,
	}

	al.entries = append(al.entries, entry)

	if len(al.entries) > MaxActivityEntries {
		al.entries = al.entries[len(al.entries)-MaxActivityEntries:]
	}

	al.rebuildContent()
}

// Len reports the number of retained entries.
func (al ActivityLogModel) Len() int { return len(al.entries) }

// rebuildContent replaces the viewport content with all formatted entries
// joined by newlines, then auto-scrolls if enabled.
func (al *ActivityLogModel) rebuildContent() {
	if len(al.entries) == 0 {
		al.viewport.SetContent("")
		return
	}

	lines := make([]string, len(al.entries))
	for i, e := range al.entries {
		lines[i] = al.formatEntry(e)
	}
	al.viewport.SetContent(strings.Join(lines, "\n"))

	if al.autoScroll {
		al.viewport.GotoBottom()
	}
}

// formatEntry renders a single ActivityEntry as "HH:MM:SS message". The
// timestamp uses the muted EventTimestamp style and the message is styled
// according to its category.
func (al ActivityLogModel) formatEntry(entry ActivityEntry) string {
	ts := al.theme.EventTimestamp.Render(entry.Timestamp.Format("15:04:05"))
	msg := al.categoryStyle(entry.Category).Render(entry.Message)
	return ts + " " + msg
}

// categoryStyle returns the lipgloss style for the given category.
func (al ActivityLogModel) categoryStyle(cat EventCategory) lipgloss.Style {
	switch cat {
	case EventSuccess:
		return lipgloss.NewStyle().Foreground(ColorSuccess)
	case EventWarning:
		return lipgloss.NewStyle().Foreground(ColorWarning)
	case EventError:
		return lipgloss.NewStyle().Bold(true).Foreground(ColorError)
	default: // EventInfo
		return al.theme.EventMessage
	}
}

// ---------------------------------------------------------------------------
// Update
// ---------------------------------------------------------------------------

// Update processes incoming tea.Msg values and returns the updated model and
// any follow-up command.
//
// Handled messages:
//   - WizardEventMsg — classified and added to the log
//   - ErrorMsg       — added as EventError
//   - tea.KeyMsg (navigation when focused) — forwarded to the viewport
func (al ActivityLogModel) Update(msg tea.Msg) (ActivityLogModel, tea.Cmd) {
	switch msg := msg.(type) {
	case WizardEventMsg:
		cat, text := classifyWizardEvent(msg.Event)
		al.AddEntry(cat, text)

	case ErrorMsg:
		text := msg.Detail
		if text == "" {
			text = msg.Source
		}
		al.AddEntry(EventError, text)

	case tea.KeyMsg:
		if al.focused {
			return al.handleKey(msg)
		}
	}

	return al, nil
}

// handleKey routes navigation key events to the viewport and manages the
// autoScroll flag.
func (al ActivityLogModel) handleKey(msg tea.KeyMsg) (ActivityLogModel, tea.Cmd) {
	switch msg.Type {
	case tea.KeyUp:
		al.viewport.ScrollUp(1)
		al.autoScroll = false

	case tea.KeyDown:
		al.viewport.ScrollDown(1)
		if al.viewport.AtBottom() {
			al.autoScroll = true
		}

	case tea.KeyPgUp:
		al.viewport.PageUp()
		al.autoScroll = false

	case tea.KeyPgDown:
		al.viewport.PageDown()
		if al.viewport.AtBottom() {
			al.autoScroll = true
		}

	case tea.KeyEnd:
		al.viewport.GotoBottom()
		al.autoScroll = true

	case tea.KeyRunes:
		switch string(msg.Runes) {
		case "k":
			al.viewport.ScrollUp(1)
			al.autoScroll = false
		case "j":
			al.viewport.ScrollDown(1)
			if al.viewport.AtBottom() {
				al.autoScroll = true
			}
		case "g":
			al.viewport.GotoTop()
			al.autoScroll = false
		case "G":
			al.viewport.GotoBottom()
			al.autoScroll = true
		}

	default:
	}

	return al, nil
}

// ---------------------------------------------------------------------------
// View
// ---------------------------------------------------------------------------

// View renders the activity log panel. It returns an empty string when
// dimensions have not been set. The rendered output consists of a one-line
// header followed by the scrollable viewport.
func (al ActivityLogModel) View() string {
	if al.width <= 0 || al.height <= 0 {
		return ""
	}

	var sb strings.Builder

	header := lipgloss.NewStyle().Bold(true).Foreground(ColorPrimary).Render("Activity")
	sb.WriteString(header)
	sb.WriteString("\n")

	if len(al.entries) == 0 {
		placeholder := lipgloss.NewStyle().Foreground(ColorMuted).Render("No activity yet")
		sb.WriteString(placeholder)
	} else {
		sb.WriteString(al.viewport.View())
	}

	return sb.String()
}

// ---------------------------------------------------------------------------
// Classify helpers
// ---------------------------------------------------------------------------

// classifyWizardEvent maps a wizard.Event to an EventCategory and a
// human-readable log message.
func classifyWizardEvent(ev wizard.Event) (EventCategory, string) {
	switch ev.Type {
	case wizard.EventStepEntered:
		return EventInfo, fmt.Sprintf("Wizard '%s' entered step %s", ev.Flow, ev.Step)

	case wizard.EventStepRefused:
		text := fmt.Sprintf("Wizard '%s' refused to leave step %s", ev.Flow, ev.Step)
		if ev.Message != "" {
			text = fmt.Sprintf("%s: %s", text, ev.Message)
		}
		return EventWarning, text

	case wizard.EventSequenceChanged:
		return EventInfo, fmt.Sprintf("Wizard '%s' sequence changed: %s", ev.Flow, ev.Message)

	case wizard.EventSubmitStarted:
		return EventInfo, fmt.Sprintf("Wizard '%s' submitting", ev.Flow)

	case wizard.EventSubmitSucceeded:
		return EventSuccess, fmt.Sprintf("Wizard '%s' submitted", ev.Flow)

	case wizard.EventSubmitFailed:
		text := fmt.Sprintf("Wizard '%s' submission failed", ev.Flow)
		if ev.Err != "" {
			text = fmt.Sprintf("%s: %s", text, ev.Err)
		}
		return EventError, text

	case wizard.EventSubmitRefused:
		text := fmt.Sprintf("Wizard '%s' submission refused", ev.Flow)
		if ev.Message != "" {
			text = fmt.Sprintf("%s: %s", text, ev.Message)
		}
		return EventWarning, text

	default:
		return EventInfo, fmt.Sprintf("Wizard '%s' event: %s", ev.Flow, ev.Type)
	}
}
