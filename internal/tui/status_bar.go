package tui

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// StatusBarModel manages the bottom status bar display. It tracks the active
// wizard's flow name, current step position, busy state, and the session
// elapsed time. The view renders all fields in a single line with styled
// separators.
//
// StatusBarModel follows Bubble Tea's Elm architecture: Update returns a new
// value, and View is a pure function of the model state.
type StatusBarModel struct {
	theme Theme
	width int

	// Dynamic state updated by incoming messages.
	flow      string // e.g., "registration", "assignment"
	step      string // e.g., "account"
	stepIndex int    // 1-based; 0 = unknown
	stepCount int
	busy      bool
	startTime time.Time
	elapsed   time.Duration
}

// NewStatusBarModel creates a StatusBarModel with the given theme. The
// elapsed timer starts on the first TickMsg.
func NewStatusBarModel(theme Theme) StatusBarModel {
	return StatusBarModel{theme: theme, startTime: time.Now()}
}

// SetWidth updates the status bar width. This should be called whenever the
// parent App processes a tea.WindowSizeMsg.
func (sb *StatusBarModel) SetWidth(width int) {
	sb.width = width
}

// SetBusy marks a submission as in flight; the bar shows a busy indicator
// until cleared.
func (sb *StatusBarModel) SetBusy(busy bool) {
	sb.busy = busy
}

// SetStep records the active wizard's position for the step segment. Pass
// zero values to clear when no wizard is open.
func (sb *StatusBarModel) SetStep(flow, step string, index, count int) {
	sb.flow = flow
	sb.step = step
	sb.stepIndex = index
	sb.stepCount = count
}

// Update processes messages that affect status bar content and returns the
// updated model.
//
// Handled messages:
//   - WizardEventMsg — updates the flow and step segments.
//   - TickMsg        — advances the elapsed timer.
func (sb StatusBarModel) Update(msg tea.Msg) StatusBarModel {
	switch m := msg.(type) {
	case WizardEventMsg:
		if m.Event.Flow != "" {
			sb.flow = m.Event.Flow
		}
		if m.Event.Step != "" {
			sb.step = string(m.Event.Step)
		}

	case TickMsg:
		elapsed := m.Time.Sub(sb.startTime)
		if elapsed < 0 {
			elapsed = 0
		}
		sb.elapsed = elapsed
	}

	return sb
}

// View renders the status bar as a single-line string spanning the full
// terminal width. Segments are left-aligned, separated by styled dividers,
// with a right-aligned "? help" hint. Optional segments are dropped when the
// terminal is too narrow.
//
// Rendered format (approximate):
//
//	[busy] | Flow {flow} | Step {step} {i}/{n} | {elapsed} | ? help
func (sb StatusBarModel) View() string {
	if sb.width <= 0 {
		return ""
	}

	sep := sb.theme.StatusSeparator.Render(" | ")

	modeStr := sb.modeSegment()
	flowStr := sb.flowSegment()
	stepStr := sb.stepSegment()
	timerStr := sb.timerSegment()
	helpStr := sb.theme.HelpKey.Render("?") + " " + sb.theme.HelpDesc.Render("help")

	// Mandatory segments always render; optional ones are hidden first when
	// the terminal is narrow.
	type segment struct {
		text     string
		optional bool
	}

	segments := []segment{
		{text: modeStr, optional: false},
		{text: sep + flowStr, optional: true},
		{text: sep + stepStr, optional: false},
		{text: sep + timerStr, optional: true},
	}

	// StatusBar carries Padding(0,1); Width is border-box, so the content
	// area is two columns narrower than the bar.
	const barPadding = 2
	innerWidth := sb.width - barPadding
	if innerWidth < 0 {
		innerWidth = 0
	}

	helpSepStr := sep + helpStr
	helpSegWidth := lipgloss.Width(helpSepStr)

	mandatoryWidth := 0
	for _, seg := range segments {
		if !seg.optional {
			mandatoryWidth += lipgloss.Width(seg.text)
		}
	}

	optionalBudget := innerWidth - mandatoryWidth - helpSegWidth
	if optionalBudget < 0 {
		optionalBudget = 0
	}

	var leftParts []string
	optionalUsed := 0
	for _, seg := range segments {
		w := lipgloss.Width(seg.text)
		if !seg.optional {
			leftParts = append(leftParts, seg.text)
		} else if optionalUsed+w <= optionalBudget {
			leftParts = append(leftParts, seg.text)
			optionalUsed += w
		}
	}

	leftContent := strings.Join(leftParts, "")

	gap := innerWidth - lipgloss.Width(leftContent) - helpSegWidth
	if gap < 0 {
		gap = 0
	}
	padding := strings.Repeat(" ", gap)

	barContent := leftContent + padding + helpSepStr

	return sb.theme.StatusBar.
		Width(sb.width).
		MaxHeight(1).
		Render(barContent)
}

// modeSegment returns the styled mode label: a prominent indicator while a
// submission is in flight, "[ready]" otherwise.
func (sb StatusBarModel) modeSegment() string {
	if sb.busy {
		return sb.theme.StatusBusy.Render("SUBMITTING")
	}
	return sb.theme.StatusKey.Render("[ready]")
}

// flowSegment returns the styled flow label, "Flow --" when no wizard is
// open.
func (sb StatusBarModel) flowSegment() string {
	flow := sb.flow
	if flow == "" {
		flow = "--"
	}
	return sb.theme.StatusKey.Render("Flow") + " " + sb.theme.StatusValue.Render(flow)
}

// stepSegment returns the styled step label with its position in the
// sequence when known.
func (sb StatusBarModel) stepSegment() string {
	step := sb.step
	if step == "" {
		step = "--"
	}
	if sb.stepIndex > 0 && sb.stepCount > 0 {
		step = fmt.Sprintf("%s %d/%d", step, sb.stepIndex, sb.stepCount)
	}
	return sb.theme.StatusKey.Render("Step") + " " + sb.theme.StatusValue.Render(step)
}

// timerSegment returns the styled elapsed time in HH:MM:SS format.
func (sb StatusBarModel) timerSegment() string {
	return sb.theme.StatusKey.Render("Time") + " " +
		sb.theme.StatusValue.Render(formatElapsed(sb.elapsed))
}

// formatElapsed converts a duration to "HH:MM:SS" format. Negative durations
// are treated as zero.
func formatElapsed(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	hours := int(d.Hours())
	mins := int(d.Minutes()) % 60
	secs := int(d.Seconds()) % 60
	return fmt.Sprintf("%02d:%02d:%02d", hours, mins, secs)
}
