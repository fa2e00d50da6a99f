package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// KeyMap defines all keybindings for the TUI. Global keys are always active;
// list keys apply to whichever list has focus (catalog rows, team roster).
type KeyMap struct {
	// Global
	Quit     key.Binding
	Help     key.Binding
	NextTab  key.Binding
	PrevTab  key.Binding
	Register key.Binding
	Assign   key.Binding

	// Lists
	Up     key.Binding
	Down   key.Binding
	Toggle key.Binding
	Enter  key.Binding
	Back   key.Binding
}

// DefaultKeyMap returns the default keybinding configuration.
// Key names follow the Bubble Tea format ("ctrl+c", "shift+tab", etc.).
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q/ctrl+c", "quit"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "help"),
		),
		NextTab: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("tab", "next tab"),
		),
		PrevTab: key.NewBinding(
			key.WithKeys("shift+tab"),
			key.WithHelp("shift+tab", "prev tab"),
		),
		Register: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "register account"),
		),
		Assign: key.NewBinding(
			key.WithKeys("a"),
			key.WithHelp("a", "assign training"),
		),

		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("↑/k", "move up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("↓/j", "move down"),
		),
		Toggle: key.NewBinding(
			key.WithKeys(" "),
			key.WithHelp("space", "toggle member"),
		),
		Enter: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "confirm / next step"),
		),
		Back: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "previous step / cancel"),
		),
	}
}

// ---------------------------------------------------------------------------
// HelpOverlay
// ---------------------------------------------------------------------------

// HelpOverlay displays a centered keybinding reference over the TUI.
type HelpOverlay struct {
	theme   Theme
	keyMap  KeyMap
	visible bool
	width   int
	height  int
}

// NewHelpOverlay creates a HelpOverlay with the given theme and keymap.
// The overlay starts hidden.
func NewHelpOverlay(theme Theme, keyMap KeyMap) HelpOverlay {
	return HelpOverlay{theme: theme, keyMap: keyMap}
}

// SetDimensions updates the terminal dimensions used to center the overlay.
func (h *HelpOverlay) SetDimensions(width, height int) {
	h.width = width
	h.height = height
}

// Toggle flips the visibility of the help overlay.
func (h *HelpOverlay) Toggle() { h.visible = !h.visible }

// IsVisible reports whether the overlay is currently shown.
func (h HelpOverlay) IsVisible() bool { return h.visible }

// Update processes key events when the overlay is visible. Pressing '?' or
// Esc dismisses the overlay; all other keys are consumed without action.
func (h HelpOverlay) Update(msg tea.Msg) (HelpOverlay, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch {
		case key.Matches(keyMsg, h.keyMap.Help):
			h.visible = false
		case keyMsg.Type == tea.KeyEsc:
			h.visible = false
		}
	}
	return h, nil
}

// View renders the help overlay centered in a bordered box. Returns an empty
// string when not visible or when dimensions are not yet known.
func (h HelpOverlay) View() string {
	if !h.visible || h.width == 0 || h.height == 0 {
		return ""
	}

	var sb strings.Builder

	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(ColorPrimary).
		MarginBottom(1)
	sb.WriteString(titleStyle.Render("flightdeck — Keyboard Shortcuts"))
	sb.WriteString("\n\n")

	sectionStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(ColorAccent).
		MarginTop(1)

	sb.WriteString(sectionStyle.Render("Navigation"))
	sb.WriteString("\n")
	sb.WriteString(h.bindingLine(h.keyMap.NextTab))
	sb.WriteString(h.bindingLine(h.keyMap.PrevTab))
	sb.WriteString(h.bindingLine(h.keyMap.Up))
	sb.WriteString(h.bindingLine(h.keyMap.Down))
	sb.WriteString("\n")

	sb.WriteString(sectionStyle.Render("Wizards"))
	sb.WriteString("\n")
	sb.WriteString(h.bindingLine(h.keyMap.Register))
	sb.WriteString(h.bindingLine(h.keyMap.Assign))
	sb.WriteString(h.bindingLine(h.keyMap.Toggle))
	sb.WriteString(h.bindingLine(h.keyMap.Enter))
	sb.WriteString(h.bindingLine(h.keyMap.Back))
	sb.WriteString("\n")

	sb.WriteString(sectionStyle.Render("General"))
	sb.WriteString("\n")
	sb.WriteString(h.bindingLine(h.keyMap.Help))
	sb.WriteString(h.bindingLine(h.keyMap.Quit))
	sb.WriteString("\n")

	hintStyle := lipgloss.NewStyle().
		Foreground(ColorMuted).
		Italic(true)
	sb.WriteString(hintStyle.Render("Press ? or Esc to close"))

	boxStyle := lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(ColorPrimary).
		Padding(1, 2)

	return lipgloss.Place(
		h.width, h.height,
		lipgloss.Center, lipgloss.Center,
		boxStyle.Render(sb.String()),
	)
}

// bindingLine formats a single key.Binding as "  KEY  description\n".
func (h HelpOverlay) bindingLine(b key.Binding) string {
	k := h.theme.HelpKey.Render(b.Help().Key)
	d := h.theme.HelpDesc.Render(b.Help().Desc)
	return "  " + k + "  " + d + "\n"
}
