package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"github.com/aerotrain/flightdeck/internal/account"
	"github.com/aerotrain/flightdeck/internal/catalog"
	"github.com/aerotrain/flightdeck/internal/enroll"
	"github.com/aerotrain/flightdeck/internal/logging"
	"github.com/aerotrain/flightdeck/internal/wizard"
)

// Tab identifies one of the dashboard tabs.
type Tab int

const (
	// TabCatalog lists the course catalog with its scheduled sessions.
	TabCatalog Tab = iota
	// TabTrainings lists the assignments submitted this session.
	TabTrainings
	// TabActivity shows the wizard activity log.
	TabActivity

	tabCount
)

// String returns the tab's display label.
func (t Tab) String() string {
	switch t {
	case TabCatalog:
		return "Catalog"
	case TabTrainings:
		return "Trainings"
	case TabActivity:
		return "Activity"
	default:
		return fmt.Sprintf("Tab(%d)", int(t))
	}
}

// eventBuffer sizes the wizard event channel. Emission is non-blocking, so
// the buffer only has to absorb bursts between Bubble Tea frames.
const eventBuffer = 64

// AppConfig holds configuration for the TUI application.
type AppConfig struct {
	// Version is the flightdeck semantic version string (e.g. "1.0.0").
	Version string
	// Store is the loaded course catalog.
	Store *catalog.Store
	// Registrar handles registration submissions.
	Registrar account.Registrar
	// Enroller handles assignment submissions.
	Enroller enroll.Enroller
	// Role seeds the registration wizard's account type.
	Role account.Role
	// Organization is the display name shown in the title bar.
	Organization string
	// Logger receives wizard diagnostics. Defaults to the tui component
	// logger when nil.
	Logger *log.Logger
}

// TrainingRecord is one submitted assignment shown on the trainings tab.
type TrainingRecord struct {
	When        time.Time
	CourseTitle string
	SessionID   string
	Members     int
	Total       float64
}

// App is the top-level Bubble Tea model for the flightdeck dashboard. It
// hosts the catalog, trainings, and activity tabs, launches the two wizards,
// and drains the wizard event channel into the activity log and status bar.
type App struct {
	config AppConfig
	theme  Theme
	keyMap KeyMap
	logger *log.Logger

	width    int
	height   int
	ready    bool // true after first WindowSizeMsg
	quitting bool

	activeTab Tab
	notice    string // transient line under the tab content

	// Catalog tab cursor over the course list.
	courses       []catalog.Course
	catalogCursor int

	trainings []TrainingRecord

	events      chan wizard.Event
	activity    ActivityLogModel
	statusBar   StatusBarModel
	help        HelpOverlay
	registerWiz RegisterWizardModel
	assignWiz   AssignWizardModel
}

// NewApp constructs an App showing the catalog tab with no wizard open.
func NewApp(cfg AppConfig) App {
	logger := cfg.Logger
	if logger == nil {
		logger = logging.New("tui")
	}

	theme := DefaultTheme()
	keyMap := DefaultKeyMap()

	var courses []catalog.Course
	if cfg.Store != nil {
		courses = cfg.Store.Courses()
	}

	return App{
		config:    cfg,
		theme:     theme,
		keyMap:    keyMap,
		logger:    logger,
		courses:   courses,
		events:    make(chan wizard.Event, eventBuffer),
		activity:  NewActivityLogModel(theme),
		statusBar: NewStatusBarModel(theme),
		help:      NewHelpOverlay(theme, keyMap),
	}
}

// Init starts the event drain and the elapsed-time ticker.
func (a App) Init() tea.Cmd {
	return tea.Batch(listenForEvents(a.events), tickEvery())
}

// Update dispatches incoming messages and returns the updated model plus any
// follow-up command.
func (a App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch m := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = m.Width
		a.height = m.Height
		a.ready = true
		a.propagateDimensions()
		return a, nil

	case TickMsg:
		a.statusBar = a.statusBar.Update(msg)
		return a, tickEvery()

	case WizardEventMsg:
		a.activity, _ = a.activity.Update(msg)
		a.statusBar = a.statusBar.Update(msg)
		// Keep draining the channel.
		return a, listenForEvents(a.events)

	case ErrorMsg:
		a.activity, _ = a.activity.Update(msg)
		return a, nil

	case RegistrationDoneMsg:
		var cmd tea.Cmd
		a.registerWiz, cmd = a.registerWiz.Update(m)
		if m.Err == nil {
			a.notice = m.Confirmation
			if a.notice == "" {
				a.notice = "Registration submitted."
			}
		}
		a.syncStatus()
		return a, cmd

	case AssignmentDoneMsg:
		var cmd tea.Cmd
		a.assignWiz, cmd = a.assignWiz.Update(m)
		if m.Err == nil {
			a.trainings = append(a.trainings, TrainingRecord{
				When:        time.Now(),
				CourseTitle: m.CourseTitle,
				SessionID:   m.SessionID,
				Members:     m.Members,
				Total:       m.Total,
			})
			a.activeTab = TabTrainings
			a.notice = fmt.Sprintf("Assigned %d member(s) to %s.", m.Members, m.CourseTitle)
		}
		a.syncStatus()
		return a, cmd

	case WizardClosedMsg:
		a.statusBar.SetStep("", "", 0, 0)
		return a, nil

	case tea.KeyMsg:
		return a.handleKey(m)
	}

	return a, tea.Batch(cmds...)
}

// handleKey routes key events: quit keys always apply, the help overlay and
// an active wizard consume everything else, and the remaining keys drive the
// dashboard tabs.
func (a App) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.Type == tea.KeyCtrlC {
		a.quitting = true
		return a, tea.Quit
	}

	if a.help.IsVisible() {
		var cmd tea.Cmd
		a.help, cmd = a.help.Update(msg)
		return a, cmd
	}

	if a.registerWiz.IsActive() {
		var cmd tea.Cmd
		a.registerWiz, cmd = a.registerWiz.Update(msg)
		a.syncStatus()
		return a, cmd
	}
	if a.assignWiz.IsActive() {
		var cmd tea.Cmd
		a.assignWiz, cmd = a.assignWiz.Update(msg)
		a.syncStatus()
		return a, cmd
	}

	switch {
	case key.Matches(msg, a.keyMap.Quit):
		a.quitting = true
		return a, tea.Quit

	case key.Matches(msg, a.keyMap.Help):
		a.help.Toggle()
		return a, nil

	case key.Matches(msg, a.keyMap.NextTab):
		a.activeTab = (a.activeTab + 1) % tabCount
		a.syncTabFocus()
		return a, nil

	case key.Matches(msg, a.keyMap.PrevTab):
		a.activeTab = (a.activeTab + tabCount - 1) % tabCount
		a.syncTabFocus()
		return a, nil

	case key.Matches(msg, a.keyMap.Register):
		return a.openRegisterWizard()

	case key.Matches(msg, a.keyMap.Assign):
		return a.openAssignWizard()
	}

	switch a.activeTab {
	case TabCatalog:
		switch {
		case key.Matches(msg, a.keyMap.Up):
			if a.catalogCursor > 0 {
				a.catalogCursor--
			}
		case key.Matches(msg, a.keyMap.Down):
			if a.catalogCursor < len(a.courses)-1 {
				a.catalogCursor++
			}
		}
	case TabActivity:
		var cmd tea.Cmd
		a.activity, cmd = a.activity.Update(msg)
		return a, cmd
	}

	return a, nil
}

// openRegisterWizard builds a fresh registration workflow and activates its
// wizard. Construction failures land in the activity log instead of opening
// a broken wizard.
func (a App) openRegisterWizard() (tea.Model, tea.Cmd) {
	wf, err := account.NewWorkflow(a.config.Registrar, a.config.Role, a.events, a.logger)
	if err != nil {
		a.activity.AddEntry(EventError, fmt.Sprintf("cannot open registration wizard: %v", err))
		return a, nil
	}

	a.notice = ""
	rw := NewRegisterWizardModel(a.theme, wf)
	rw.SetDimensions(a.width, a.contentHeight())
	cmd := rw.Start()
	a.registerWiz = rw
	a.syncStatus()
	return a, cmd
}

// openAssignWizard builds a fresh assignment workflow and activates its
// wizard.
func (a App) openAssignWizard() (tea.Model, tea.Cmd) {
	wf, err := enroll.NewWorkflow(a.config.Enroller, a.config.Store, a.events, a.logger)
	if err != nil {
		a.activity.AddEntry(EventError, fmt.Sprintf("cannot open assignment wizard: %v", err))
		return a, nil
	}

	a.notice = ""
	aw := NewAssignWizardModel(a.theme, a.keyMap, wf)
	aw.SetDimensions(a.width, a.contentHeight())
	cmd := aw.Start()
	a.assignWiz = aw
	a.syncStatus()
	return a, cmd
}

// syncStatus refreshes the status bar's step and busy segments from whichever
// wizard is active.
func (a *App) syncStatus() {
	a.statusBar.SetBusy(a.registerWiz.Submitting() || a.assignWiz.Submitting())

	switch {
	case a.registerWiz.IsActive():
		s := a.registerWiz.wf.Session()
		a.statusBar.SetStep("registration", string(s.Current()), s.Index()+1, len(s.Steps()))
	case a.assignWiz.IsActive():
		s := a.assignWiz.wf.Session()
		a.statusBar.SetStep("assignment", string(s.Current()), s.Index()+1, len(s.Steps()))
	default:
		a.statusBar.SetStep("", "", 0, 0)
	}
}

// syncTabFocus gives the activity log keyboard focus only while its tab is
// active.
func (a *App) syncTabFocus() {
	a.activity.SetFocused(a.activeTab == TabActivity)
}

// propagateDimensions pushes the current terminal size into every sub-model.
func (a *App) propagateDimensions() {
	contentHeight := a.contentHeight()
	a.activity.SetDimensions(a.width, contentHeight)
	a.statusBar.SetWidth(a.width)
	a.help.SetDimensions(a.width, a.height)
	a.registerWiz.SetDimensions(a.width, contentHeight)
	a.assignWiz.SetDimensions(a.width, contentHeight)
}

// contentHeight is the tab content area: total height minus the title bar,
// tab bar, and status bar rows.
func (a App) contentHeight() int {
	h := a.height - 3
	if h < 1 {
		h = 1
	}
	return h
}

// View renders the complete UI.
//
// Rendering logic:
//   - If quitting, return an empty string to clear the screen on exit.
//   - If not yet ready (no WindowSizeMsg received), show an initializing message.
//   - If the terminal is too small (< 80 wide or < 24 tall), show a resize warning.
//   - Otherwise, render title bar, tab bar, content (or wizard overlay), and
//     status bar, with the help overlay on top when visible.
func (a App) View() string {
	if a.quitting {
		return ""
	}

	if !a.ready {
		return "Initializing flightdeck..."
	}

	if a.width < 80 || a.height < 24 {
		return terminalTooSmallView()
	}

	if a.help.IsVisible() {
		return a.help.View()
	}

	var content string
	switch {
	case a.registerWiz.IsActive():
		content = a.registerWiz.View()
	case a.assignWiz.IsActive():
		content = a.assignWiz.View()
	default:
		content = a.tabContent()
	}

	content = lipgloss.NewStyle().
		Width(a.width).
		Height(a.contentHeight()).
		Render(content)

	return lipgloss.JoinVertical(lipgloss.Left,
		a.renderTitleBar(),
		a.renderTabBar(),
		content,
		a.statusBar.View(),
	)
}

// terminalTooSmallView returns a warning when the terminal is below the
// minimum supported dimensions (80x24).
func terminalTooSmallView() string {
	msg := "Terminal too small. Please resize to at least 80x24."
	return lipgloss.NewStyle().
		Bold(true).
		Foreground(ColorWarning).
		Render(msg)
}

// renderTitleBar builds a full-width title bar showing the flightdeck version
// and the organization name (when available).
func (a App) renderTitleBar() string {
	title := fmt.Sprintf("flightdeck v%s — Training Marketplace", a.config.Version)
	if a.config.Organization != "" {
		title = fmt.Sprintf("%s  |  %s", title, a.config.Organization)
	}
	return a.theme.TitleBar.Width(a.width).Render(title)
}

// renderTabBar builds the tab strip with the active tab highlighted.
func (a App) renderTabBar() string {
	tabs := make([]string, 0, int(tabCount))
	for t := TabCatalog; t < tabCount; t++ {
		style := a.theme.Tab
		if t == a.activeTab {
			style = a.theme.TabActive
		}
		tabs = append(tabs, style.Render(t.String()))
	}
	return lipgloss.NewStyle().Width(a.width).Render(strings.Join(tabs, " "))
}

// tabContent renders the active tab's body.
func (a App) tabContent() string {
	var body string
	switch a.activeTab {
	case TabCatalog:
		body = a.catalogView()
	case TabTrainings:
		body = a.trainingsView()
	case TabActivity:
		body = a.activity.View()
	}

	if a.notice != "" {
		body = lipgloss.JoinVertical(lipgloss.Left, body, "", a.theme.Success.Render(a.notice))
	}
	return body
}

// catalogView lists the courses with their scheduled session counts, plus the
// sessions of the course under the cursor.
func (a App) catalogView() string {
	if a.config.Store == nil || len(a.courses) == 0 {
		return lipgloss.NewStyle().Foreground(ColorMuted).Render("The catalog is empty.")
	}

	var sb strings.Builder
	for i, c := range a.courses {
		sessions := a.config.Store.SessionsFor(c.ID)
		line := fmt.Sprintf("%s — %s · %.2f € · %d session(s)", c.Title, c.Category, c.Price, len(sessions))
		if i == a.catalogCursor {
			sb.WriteString(a.theme.RowCursor.Render("> "))
			sb.WriteString(a.theme.RowSelected.Render(line))
		} else {
			sb.WriteString("  ")
			sb.WriteString(a.theme.Row.Render(line))
		}
		sb.WriteString("\n")
	}

	// Sessions of the highlighted course.
	cursor := a.courses[a.catalogCursor]
	sb.WriteString("\n")
	sb.WriteString(a.theme.RecapLabel.Render("Sessions for "))
	sb.WriteString(a.theme.RecapValue.Render(cursor.Title))
	sb.WriteString("\n")
	for _, s := range a.config.Store.SessionsFor(cursor.ID) {
		line := fmt.Sprintf("  %s — %s · %.2f € · %d spots",
			s.Start.Format("2006-01-02 15:04"), s.Location, s.Price, s.AvailableSpots)
		if s.Full() {
			line += " " + a.theme.BadgeFull.Render(enroll.SpotsBadgeFull)
		}
		sb.WriteString(a.theme.Row.Render(line))
		sb.WriteString("\n")
	}

	sb.WriteString("\n")
	sb.WriteString(a.theme.HelpDesc.Render("r register · a assign training · tab switch tab · ? help"))
	return sb.String()
}

// trainingsView lists the assignments submitted during this session.
func (a App) trainingsView() string {
	if len(a.trainings) == 0 {
		return lipgloss.NewStyle().Foreground(ColorMuted).
			Render("No trainings assigned yet. Press 'a' to start the assignment wizard.")
	}

	var sb strings.Builder
	for _, tr := range a.trainings {
		sb.WriteString(a.theme.EventTimestamp.Render(tr.When.Format("15:04:05")))
		sb.WriteString(" ")
		sb.WriteString(a.theme.RecapValue.Render(tr.CourseTitle))
		sb.WriteString(a.theme.Row.Render(fmt.Sprintf(" · session %s · %d member(s) · ", tr.SessionID, tr.Members)))
		sb.WriteString(a.theme.RecapTotal.Render(fmt.Sprintf("%.2f €", tr.Total)))
		sb.WriteString("\n")
	}
	return sb.String()
}

// RunTUI creates a tea.Program configured for full-screen rendering with
// cell-motion mouse support, runs it, and returns any error encountered.
//
// Use tea.WithMouseCellMotion (not WithMouseAllMotion) so that the user can
// still select and copy text from the terminal.
func RunTUI(cfg AppConfig) error {
	logger := cfg.Logger
	if logger == nil {
		logger = logging.New("tui")
	}
	logger.Info("starting TUI", "version", cfg.Version, "organization", cfg.Organization)

	p := tea.NewProgram(
		NewApp(cfg),
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
	)

	if _, err := p.Run(); err != nil {
		return fmt.Errorf("running TUI: %w", err)
	}
	return nil
}
