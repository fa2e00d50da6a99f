package tui

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/aerotrain/flightdeck/internal/catalog"
	"github.com/aerotrain/flightdeck/internal/enroll"
	"github.com/aerotrain/flightdeck/internal/wizard"
)

// AssignWizardModel is the Bubble Tea sub-model for the training assignment
// wizard. Course and session steps are huh selects; the team step is a custom
// toggle list so the selection resolver, not the widget, decides whether a
// member can join the roster; the review step renders the live recap and
// submits on Enter.
type AssignWizardModel struct {
	theme  Theme
	keyMap KeyMap
	wf     *enroll.Workflow
	form   *huh.Form
	width  int
	height int
	active bool

	submitting bool
	notice     string

	// Team-step cursor over the full member roster.
	cursor  int
	members []catalog.Member

	// Raw huh bindings for the course and session selects.
	rawCourse  string
	rawSession string
}

// NewAssignWizardModel creates the model around an existing assignment
// workflow. The wizard starts inactive; call Start to build the first step.
func NewAssignWizardModel(theme Theme, keyMap KeyMap, wf *enroll.Workflow) AssignWizardModel {
	return AssignWizardModel{
		theme:   theme,
		keyMap:  keyMap,
		wf:      wf,
		members: wf.Selection().Store().Members(),
	}
}

// IsActive reports whether the wizard is currently displayed.
func (m AssignWizardModel) IsActive() bool { return m.active }

// Submitting reports whether an assignment submission is in flight.
func (m AssignWizardModel) Submitting() bool { return m.submitting }

// SetDimensions updates the terminal dimensions used to size the wizard.
func (m *AssignWizardModel) SetDimensions(width, height int) {
	m.width = width
	m.height = height
	if m.form != nil && m.active {
		m.form = m.form.WithWidth(formWidth(width))
	}
}

// Start resets navigation to the current step, marks the wizard active, and
// returns the step's Init command, if any.
func (m *AssignWizardModel) Start() tea.Cmd {
	m.active = true
	m.notice = ""
	m.cursor = 0
	return m.rebuildStep()
}

// Update processes incoming messages while the wizard is active.
func (m AssignWizardModel) Update(msg tea.Msg) (AssignWizardModel, tea.Cmd) {
	if !m.active {
		return m, nil
	}

	switch ev := msg.(type) {
	case AssignmentDoneMsg:
		return m.handleResult(ev)

	case tea.KeyMsg:
		if ev.Type == tea.KeyEsc && !m.submitting {
			if m.wf.Session().Previous() {
				m.notice = ""
				cmd := m.rebuildStep()
				return m, cmd
			}
			m.active = false
			return m, func() tea.Msg { return WizardClosedMsg{} }
		}
	}

	if m.submitting {
		return m, nil
	}

	switch m.wf.Session().Current() {
	case enroll.StepTeam:
		return m.updateTeam(msg)
	case enroll.StepReview:
		return m.updateReview(msg)
	default:
		return m.updateSelect(msg)
	}
}

// updateSelect drives the huh select used on the course and session steps.
func (m AssignWizardModel) updateSelect(msg tea.Msg) (AssignWizardModel, tea.Cmd) {
	if m.form == nil {
		return m, nil
	}

	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}
	if m.form.State != huh.StateCompleted {
		return m, cmd
	}

	sel := m.wf.Selection()
	switch m.wf.Session().Current() {
	case enroll.StepCourse:
		sel.SetCourse(m.rawCourse)
	case enroll.StepSession:
		sel.SetSession(m.rawSession)
	}

	m.notice = ""
	m.wf.Session().Next()
	stepCmd := m.rebuildStep()
	return m, stepCmd
}

// updateTeam handles the roster toggle list. Space asks the resolver to
// toggle the member under the cursor; a refusal surfaces as a notice instead
// of a roster change.
func (m AssignWizardModel) updateTeam(msg tea.Msg) (AssignWizardModel, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	sel := m.wf.Selection()
	switch {
	case key.Matches(keyMsg, m.keyMap.Up):
		if m.cursor > 0 {
			m.cursor--
		}
	case key.Matches(keyMsg, m.keyMap.Down):
		if m.cursor < len(m.members)-1 {
			m.cursor++
		}
	case key.Matches(keyMsg, m.keyMap.Toggle):
		if len(m.members) == 0 {
			return m, nil
		}
		member := m.members[m.cursor]
		m.notice = ""
		if !sel.Toggle(member.ID) {
			m.notice = fmt.Sprintf("%s is already booked on this session", member.Name)
		}
	case key.Matches(keyMsg, m.keyMap.Enter):
		if !m.wf.Session().Next() {
			m.notice = "select at least one team member"
			return m, nil
		}
		m.notice = ""
		cmd := m.rebuildStep()
		return m, cmd
	}
	return m, nil
}

// updateReview handles the final confirmation step: Enter hands the roster to
// the submission boundary.
func (m AssignWizardModel) updateReview(msg tea.Msg) (AssignWizardModel, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok || !key.Matches(keyMsg, m.keyMap.Enter) {
		return m, nil
	}

	m.submitting = true
	m.notice = ""
	wf := m.wf
	summary := wf.Selection().Summary()
	return m, func() tea.Msg {
		err := wf.Submit(context.Background())
		return AssignmentDoneMsg{
			CourseTitle: summary.Course.Title,
			SessionID:   summary.Session.ID,
			Members:     len(summary.Members),
			Total:       summary.Total,
			Err:         err,
		}
	}
}

// handleResult interprets a settled submission. Success deactivates the
// wizard; failure keeps every step's selections intact and stays on the
// review step so the user can retry.
func (m AssignWizardModel) handleResult(msg AssignmentDoneMsg) (AssignWizardModel, tea.Cmd) {
	m.submitting = false

	if msg.Err == nil {
		m.active = false
		return m, nil
	}
	if errors.Is(msg.Err, wizard.ErrSubmitInFlight) {
		return m, nil
	}
	m.notice = msg.Err.Error()
	return m, nil
}

// View renders the wizard overlay. Returns an empty string when inactive.
func (m AssignWizardModel) View() string {
	if !m.active {
		return ""
	}

	var body string
	switch {
	case m.submitting:
		body = m.theme.StatusBusy.Render("Submitting assignment…")
	default:
		switch m.wf.Session().Current() {
		case enroll.StepTeam:
			body = m.viewTeam()
		case enroll.StepReview:
			body = m.viewReview()
		default:
			if m.form != nil {
				body = m.form.View()
			}
		}
	}
	if body == "" {
		return ""
	}

	if m.notice != "" {
		body = lipgloss.JoinVertical(lipgloss.Left, body, m.theme.ErrorText.Render(m.notice))
	}

	containerStyle := lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(ColorPrimary).
		Padding(1, 2)

	boxed := containerStyle.Render(body)
	if m.width > 0 && m.height > 0 {
		return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, boxed)
	}
	return boxed
}

// viewTeam renders the roster with checkboxes, badges, and the running cost.
func (m AssignWizardModel) viewTeam() string {
	sel := m.wf.Selection()

	var sb strings.Builder
	title := lipgloss.NewStyle().Bold(true).Foreground(ColorPrimary)
	sb.WriteString(title.Render("Select Team Members"))
	sb.WriteString("\n\n")

	if len(m.members) == 0 {
		sb.WriteString(m.theme.RowDisabled.Render("No team members in the catalog."))
		sb.WriteString("\n")
	}

	for i, member := range m.members {
		box := "[ ]"
		style := m.theme.Row
		if sel.Selected(member.ID) {
			box = "[x]"
			style = m.theme.RowSelected
		}

		line := fmt.Sprintf("%s %s (%s)", box, member.Name, member.Role)
		if sel.Conflicted(member) {
			style = m.theme.RowDisabled
			line += " " + m.theme.BadgeConflict.Render("déjà inscrit")
		} else if member.Recommended {
			line += " " + m.theme.BadgeRecommended.Render("recommandé")
		}
		if !member.Qualified {
			line += " " + m.theme.BadgeFull.Render("prérequis manquant")
		}

		if i == m.cursor {
			line = m.theme.RowCursor.Render("> ") + style.Render(line)
		} else {
			line = "  " + style.Render(line)
		}
		sb.WriteString(line)
		sb.WriteString("\n")
	}

	sb.WriteString("\n")
	sb.WriteString(m.theme.RecapLabel.Render("Selected: "))
	sb.WriteString(m.theme.RecapValue.Render(fmt.Sprintf("%d", sel.Count())))
	sb.WriteString(m.theme.RecapLabel.Render("   Total: "))
	sb.WriteString(m.theme.RecapTotal.Render(fmt.Sprintf("%.2f €", sel.TotalCost())))
	sb.WriteString("\n\n")
	sb.WriteString(m.theme.HelpDesc.Render("space toggle · enter continue · esc back"))
	return sb.String()
}

// viewReview renders the recap built fresh from the live selection.
func (m AssignWizardModel) viewReview() string {
	sum := m.wf.Selection().Summary()

	var sb strings.Builder
	title := lipgloss.NewStyle().Bold(true).Foreground(ColorPrimary)
	sb.WriteString(title.Render("Review Assignment"))
	sb.WriteString("\n\n")

	row := func(label, value string) {
		sb.WriteString(m.theme.RecapLabel.Render(label))
		sb.WriteString(m.theme.RecapValue.Render(value))
		sb.WriteString("\n")
	}

	row("Course:   ", sum.Course.Title)
	sessionLine := fmt.Sprintf("%s — %s (%s)",
		sum.Session.Start.Format("2006-01-02 15:04"),
		sum.Session.End.Format("15:04"),
		sum.Session.Location)
	if sum.SpotsBadge != "" {
		sessionLine += " " + m.theme.BadgeFull.Render(sum.SpotsBadge)
	}
	row("Session:  ", sessionLine)

	names := make([]string, len(sum.Members))
	for i, member := range sum.Members {
		names[i] = member.Name
	}
	row("Team:     ", strings.Join(names, ", "))
	if sum.OverCapacity {
		sb.WriteString(m.theme.BadgeFull.Render(
			fmt.Sprintf("Roster exceeds the %d remaining spots", sum.Session.AvailableSpots)))
		sb.WriteString("\n")
	}

	sb.WriteString("\n")
	sb.WriteString(m.theme.RecapLabel.Render("Total:    "))
	sb.WriteString(m.theme.RecapTotal.Render(fmt.Sprintf("%.2f €", sum.Total)))
	sb.WriteString("\n\n")
	sb.WriteString(m.theme.HelpDesc.Render("enter submit · esc back"))
	return sb.String()
}

// rebuildStep prepares the widget for the session's current step and returns
// its Init command, if the step uses a form.
func (m *AssignWizardModel) rebuildStep() tea.Cmd {
	sel := m.wf.Selection()

	switch m.wf.Session().Current() {
	case enroll.StepCourse:
		m.rawCourse = sel.CourseID
		m.form = m.newSelectForm(m.buildCourseGroup())
		return m.form.Init()
	case enroll.StepSession:
		m.rawSession = sel.SessionID
		m.form = m.newSelectForm(m.buildSessionGroup())
		return m.form.Init()
	case enroll.StepTeam:
		m.form = nil
		m.cursor = 0
		return nil
	default:
		m.form = nil
		return nil
	}
}

func (m *AssignWizardModel) newSelectForm(group *huh.Group) *huh.Form {
	return huh.NewForm(group).
		WithTheme(buildHuhTheme(m.theme)).
		WithWidth(formWidth(m.width)).
		WithShowHelp(true)
}

// buildCourseGroup returns the course select over the catalog.
func (m *AssignWizardModel) buildCourseGroup() *huh.Group {
	courses := m.wf.Selection().Store().Courses()

	options := make([]huh.Option[string], len(courses))
	for i, c := range courses {
		label := fmt.Sprintf("%s — %s (%.2f €)", c.Title, c.Category, c.Price)
		options[i] = huh.NewOption(label, c.ID)
	}

	return huh.NewGroup(
		huh.NewSelect[string]().
			Title("Course").
			Description("Choose the training to book for your team.").
			Options(options...).
			Value(&m.rawCourse).
			Validate(func(id string) error {
				if id == "" {
					return fmt.Errorf("choose a course")
				}
				return nil
			}),
	)
}

// buildSessionGroup returns the session select for the chosen course. Full
// sessions stay selectable and carry the "Complet" badge in their label.
func (m *AssignWizardModel) buildSessionGroup() *huh.Group {
	sel := m.wf.Selection()
	sessions := sel.Store().SessionsFor(sel.CourseID)

	options := make([]huh.Option[string], len(sessions))
	for i, s := range sessions {
		label := fmt.Sprintf("%s — %s · %.2f € · %d spots",
			s.Start.Format("2006-01-02 15:04"), s.Location, s.Price, s.AvailableSpots)
		if s.Full() {
			label = fmt.Sprintf("%s — %s · %.2f € · %s",
				s.Start.Format("2006-01-02 15:04"), s.Location, s.Price, enroll.SpotsBadgeFull)
		}
		options[i] = huh.NewOption(label, s.ID)
	}

	return huh.NewGroup(
		huh.NewSelect[string]().
			Title("Session").
			Description("Scheduled runs of the chosen course.").
			Options(options...).
			Value(&m.rawSession).
			Validate(func(id string) error {
				if id == "" {
					return fmt.Errorf("choose a session")
				}
				return nil
			}),
	)
}
