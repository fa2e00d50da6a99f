package tui

import (
	"context"
	"errors"
	"fmt"

	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/aerotrain/flightdeck/internal/account"
	"github.com/aerotrain/flightdeck/internal/wizard"
)

// RegisterWizardModel is the Bubble Tea sub-model for the account
// registration wizard. Each wizard step is rendered as its own huh form; the
// underlying wizard session owns sequencing and gating, so a completed form
// whose gate still fails simply re-renders the same step.
type RegisterWizardModel struct {
	theme  Theme
	wf     *account.Workflow
	form   *huh.Form
	width  int
	height int
	active bool

	submitting bool
	notice     string // transient failure line under the form

	// Raw huh binding for the role select; parsed into the workflow on
	// completion of the account step.
	rawRole string
}

// NewRegisterWizardModel creates the model around an existing registration
// workflow. The wizard starts inactive; call Start to build the first step's
// form.
func NewRegisterWizardModel(theme Theme, wf *account.Workflow) RegisterWizardModel {
	return RegisterWizardModel{
		theme:   theme,
		wf:      wf,
		rawRole: string(wf.Form().Role),
	}
}

// IsActive reports whether the wizard is currently displayed.
func (m RegisterWizardModel) IsActive() bool { return m.active }

// Submitting reports whether a registration submission is in flight.
func (m RegisterWizardModel) Submitting() bool { return m.submitting }

// SetDimensions updates the terminal dimensions used to size the form.
func (m *RegisterWizardModel) SetDimensions(width, height int) {
	m.width = width
	m.height = height
	if m.form != nil && m.active {
		m.form = m.form.WithWidth(formWidth(width))
	}
}

// Start builds the form for the session's current step, marks the wizard
// active, and returns the form's Init command.
func (m *RegisterWizardModel) Start() tea.Cmd {
	m.active = true
	m.notice = ""
	return m.rebuildForm()
}

// Update processes incoming messages while the wizard is active.
func (m RegisterWizardModel) Update(msg tea.Msg) (RegisterWizardModel, tea.Cmd) {
	if !m.active {
		return m, nil
	}

	switch ev := msg.(type) {
	case RegistrationDoneMsg:
		return m.handleResult(ev)

	case tea.KeyMsg:
		// Esc navigates back one step, or cancels from the first step.
		// Ignored while a submission is in flight.
		if ev.Type == tea.KeyEsc && !m.submitting {
			if m.wf.Session().Previous() {
				cmd := m.rebuildForm()
				return m, cmd
			}
			m.active = false
			return m, func() tea.Msg { return WizardClosedMsg{} }
		}
	}

	if m.form == nil || m.submitting {
		return m, nil
	}

	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}

	if m.form.State == huh.StateCompleted {
		return m.advance()
	}
	return m, cmd
}

// advance runs when the current step's form completes: either move to the
// next step or, on the last step, hand the form to the submission boundary.
func (m RegisterWizardModel) advance() (RegisterWizardModel, tea.Cmd) {
	if m.rawRole != "" && m.rawRole != string(m.wf.Form().Role) {
		// Role changed on the account step: recompute the sequence.
		if err := m.wf.SetRole(account.Role(m.rawRole)); err != nil {
			m.notice = err.Error()
		}
	}

	session := m.wf.Session()
	if !session.IsLast() {
		// The session re-checks the gate; a refusal re-renders the step.
		session.Next()
		cmd := m.rebuildForm()
		return m, cmd
	}

	m.submitting = true
	m.notice = ""
	wf := m.wf
	return m, func() tea.Msg {
		out := wf.Submit(context.Background())
		return RegistrationDoneMsg{
			Confirmation: out.Confirmation,
			Err:          out.Err,
			EmailTaken:   out.EmailTaken,
		}
	}
}

// handleResult interprets a settled submission. Success deactivates the
// wizard; failures keep it open with every entered field intact, and a
// duplicate email returns the user to the account step where the field-level
// error is rendered.
func (m RegisterWizardModel) handleResult(msg RegistrationDoneMsg) (RegisterWizardModel, tea.Cmd) {
	m.submitting = false

	if msg.Err == nil {
		m.active = false
		return m, nil
	}

	if errors.Is(msg.Err, wizard.ErrSubmitInFlight) {
		return m, nil
	}

	m.notice = msg.Err.Error()
	if msg.EmailTaken {
		for !m.wf.Session().IsFirst() {
			m.wf.Session().Previous()
		}
	}
	cmd := m.rebuildForm()
	return m, cmd
}

// View renders the wizard overlay. Returns an empty string when inactive.
func (m RegisterWizardModel) View() string {
	if !m.active {
		return ""
	}

	var body string
	switch {
	case m.submitting:
		body = m.theme.StatusBusy.Render("Submitting registration…")
	case m.form != nil:
		body = m.form.View()
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

// rebuildForm constructs the huh form for the session's current step and
// returns its Init command.
func (m *RegisterWizardModel) rebuildForm() tea.Cmd {
	var group *huh.Group
	switch m.wf.Session().Current() {
	case account.StepTerms:
		group = m.buildTermsGroup()
	default:
		group = m.buildAccountGroup()
	}

	m.form = huh.NewForm(group).
		WithTheme(buildHuhTheme(m.theme)).
		WithWidth(formWidth(m.width)).
		WithShowHelp(true)
	return m.form.Init()
}

// buildAccountGroup returns the identity step: role, names, email, and the
// password pair. Field validators mirror the step gate so the user sees the
// reason a field blocks advancement, while the gate itself stays the
// authority on whether the step can be left.
func (m *RegisterWizardModel) buildAccountGroup() *huh.Group {
	f := m.wf.Form()

	roleOptions := make([]huh.Option[string], len(account.Roles))
	for i, r := range account.Roles {
		roleOptions[i] = huh.NewOption(roleLabel(r), string(r))
	}

	emailDesc := "Used for sign-in and the confirmation email."
	if msg, ok := f.FieldError(account.FieldEmail); ok {
		emailDesc = msg
	}

	return huh.NewGroup(
		huh.NewSelect[string]().
			Title("Account Type").
			Description("Determines your dashboard and the remaining steps.").
			Options(roleOptions...).
			Value(&m.rawRole),
		huh.NewInput().
			Title("First Name").
			Value(&f.FirstName).
			Validate(account.NameValidator("first name")),
		huh.NewInput().
			Title("Last Name").
			Value(&f.LastName).
			Validate(account.NameValidator("last name")),
		huh.NewInput().
			Title("Email").
			Description(emailDesc).
			Value(&f.Email).
			Validate(func(s string) error {
				// Editing the field clears a stale duplicate-email error.
				f.ClearFieldError(account.FieldEmail)
				return account.EmailValidator(s)
			}),
		huh.NewInput().
			Title("Password").
			EchoMode(huh.EchoModePassword).
			Value(&f.Password).
			Validate(account.PasswordValidator),
		huh.NewInput().
			Title("Confirm Password").
			EchoMode(huh.EchoModePassword).
			Value(&f.ConfirmPassword).
			Validate(func(s string) error {
				if s != f.Password {
					return fmt.Errorf("passwords do not match")
				}
				return nil
			}),
	)
}

// buildTermsGroup returns the final step: the terms acceptance flag that
// gates submission.
func (m *RegisterWizardModel) buildTermsGroup() *huh.Group {
	f := m.wf.Form()
	return huh.NewGroup(
		huh.NewNote().
			Title("Terms of Service").
			Description("Training bookings are binding once an organization confirms them.\nSee aerotrain.example/terms for the full text."),
		huh.NewConfirm().
			Title("Accept the terms of service?").
			Affirmative("Accept").
			Negative("Decline").
			Value(&f.AcceptTerms).
			Validate(func(accepted bool) error {
				if !accepted {
					return fmt.Errorf("registration requires accepting the terms")
				}
				return nil
			}),
	)
}

// roleLabel maps a role to its display label.
func roleLabel(r account.Role) string {
	switch r {
	case account.RoleStudent:
		return "Student pilot"
	case account.RoleOrg:
		return "Training organization"
	case account.RoleManager:
		return "Fleet manager"
	case account.RoleAirport:
		return "Airport manager"
	case account.RoleAdmin:
		return "Administrator"
	default:
		return string(r)
	}
}

// formWidth caps the wizard form width on large terminals.
func formWidth(width int) int {
	if width <= 0 {
		return 80
	}
	if width > 100 {
		return 100
	}
	return width
}
