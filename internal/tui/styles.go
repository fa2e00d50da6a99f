package tui

import (
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
)

// ---------------------------------------------------------------------------
// Color Palette
// ---------------------------------------------------------------------------

// ColorPrimary is the main brand/accent color used for titles and highlights.
var ColorPrimary = lipgloss.AdaptiveColor{Light: "#0E7490", Dark: "#22D3EE"}

// ColorAccent is used for selection cursors and active tab indicators.
var ColorAccent = lipgloss.AdaptiveColor{Light: "#0F766E", Dark: "#2DD4BF"}

// ColorSuccess represents successful operations (green).
var ColorSuccess = lipgloss.AdaptiveColor{Light: "#16A34A", Dark: "#4ADE80"}

// ColorWarning represents advisory states such as a full session (amber).
var ColorWarning = lipgloss.AdaptiveColor{Light: "#D97706", Dark: "#FBBF24"}

// ColorError represents failures and conflicted candidates (red).
var ColorError = lipgloss.AdaptiveColor{Light: "#DC2626", Dark: "#F87171"}

// ColorMuted is a subdued foreground color for secondary text.
var ColorMuted = lipgloss.AdaptiveColor{Light: "#6B7280", Dark: "#9CA3AF"}

// ColorSubtle provides very low-contrast borders and dividers.
var ColorSubtle = lipgloss.AdaptiveColor{Light: "#D1D5DB", Dark: "#4B5563"}

// ColorHighlight is a background highlight for selected rows.
var ColorHighlight = lipgloss.AdaptiveColor{Light: "#F3F4F6", Dark: "#1F2937"}

// ---------------------------------------------------------------------------
// Theme
// ---------------------------------------------------------------------------

// Theme holds all Lipgloss styles for the flightdeck TUI components. Every
// field is a pre-built lipgloss.Style value. Width and Height are NOT set on
// any theme style; those are applied dynamically at render time.
type Theme struct {
	// Title bar
	TitleBar     lipgloss.Style
	TitleText    lipgloss.Style
	TitleVersion lipgloss.Style

	// Tabs
	Tab       lipgloss.Style
	TabActive lipgloss.Style

	// Catalog and roster rows
	Row         lipgloss.Style
	RowSelected lipgloss.Style
	RowCursor   lipgloss.Style
	RowDisabled lipgloss.Style

	// Badges
	BadgeFull        lipgloss.Style
	BadgeConflict    lipgloss.Style
	BadgeRecommended lipgloss.Style

	// Review recap
	RecapLabel lipgloss.Style
	RecapValue lipgloss.Style
	RecapTotal lipgloss.Style

	// Activity log
	EventTimestamp lipgloss.Style
	EventMessage   lipgloss.Style

	// Status bar
	StatusBar       lipgloss.Style
	StatusKey       lipgloss.Style
	StatusValue     lipgloss.Style
	StatusSeparator lipgloss.Style
	StatusBusy      lipgloss.Style

	// General
	Border    lipgloss.Style
	HelpKey   lipgloss.Style
	HelpDesc  lipgloss.Style
	ErrorText lipgloss.Style
	Success   lipgloss.Style
}

// DefaultTheme returns the default flightdeck theme with adaptive colors for
// automatic light/dark terminal support.
func DefaultTheme() Theme {
	return Theme{
		TitleBar: lipgloss.NewStyle().
			Bold(true).
			Background(ColorPrimary).
			Foreground(lipgloss.Color("#FFFFFF")).
			Padding(0, 1),
		TitleText: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FFFFFF")),
		TitleVersion: lipgloss.NewStyle().
			Foreground(lipgloss.Color("#E0F2FE")),

		Tab: lipgloss.NewStyle().
			Foreground(ColorMuted).
			Padding(0, 2),
		TabActive: lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorAccent).
			Padding(0, 2).
			Underline(true),

		Row: lipgloss.NewStyle().
			Foreground(ColorMuted),
		RowSelected: lipgloss.NewStyle().
			Foreground(ColorAccent),
		RowCursor: lipgloss.NewStyle().
			Bold(true).
			Background(ColorHighlight),
		RowDisabled: lipgloss.NewStyle().
			Foreground(ColorSubtle).
			Strikethrough(true),

		BadgeFull: lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorWarning),
		BadgeConflict: lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorError),
		BadgeRecommended: lipgloss.NewStyle().
			Foreground(ColorSuccess),

		RecapLabel: lipgloss.NewStyle().
			Foreground(ColorMuted),
		RecapValue: lipgloss.NewStyle().
			Foreground(ColorAccent),
		RecapTotal: lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorPrimary),

		EventTimestamp: lipgloss.NewStyle().
			Foreground(ColorSubtle),
		EventMessage: lipgloss.NewStyle().
			Foreground(ColorMuted),

		StatusBar: lipgloss.NewStyle().
			Background(ColorHighlight).
			Padding(0, 1),
		StatusKey: lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorPrimary),
		StatusValue: lipgloss.NewStyle().
			Foreground(ColorMuted),
		StatusSeparator: lipgloss.NewStyle().
			Foreground(ColorSubtle),
		StatusBusy: lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorWarning),

		Border: lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(ColorSubtle),
		HelpKey: lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorAccent),
		HelpDesc: lipgloss.NewStyle().
			Foreground(ColorMuted),
		ErrorText: lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorError),
		Success: lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorSuccess),
	}
}

// ---------------------------------------------------------------------------
// buildHuhTheme
// ---------------------------------------------------------------------------

// buildHuhTheme translates the flightdeck Theme into a huh.Theme so wizard
// forms inherit the application's palette.
func buildHuhTheme(theme Theme) *huh.Theme {
	t := huh.ThemeBase()

	t.Focused.Title = lipgloss.NewStyle().
		Bold(true).
		Foreground(ColorPrimary)
	t.Focused.NoteTitle = lipgloss.NewStyle().
		Bold(true).
		Foreground(ColorPrimary).
		MarginBottom(1)
	t.Focused.Description = lipgloss.NewStyle().
		Foreground(ColorMuted)
	t.Focused.ErrorMessage = lipgloss.NewStyle().
		Foreground(ColorError)
	t.Focused.SelectSelector = lipgloss.NewStyle().
		Foreground(ColorAccent).
		SetString("> ")
	t.Focused.SelectedOption = lipgloss.NewStyle().
		Foreground(ColorAccent)
	t.Focused.UnselectedOption = lipgloss.NewStyle().
		Foreground(ColorMuted)
	t.Focused.FocusedButton = lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("#FFFFFF")).
		Background(ColorPrimary).
		Padding(0, 2).
		MarginRight(1)
	t.Focused.BlurredButton = lipgloss.NewStyle().
		Foreground(ColorMuted).
		Background(ColorHighlight).
		Padding(0, 2).
		MarginRight(1)
	t.Focused.TextInput.Text = lipgloss.NewStyle().
		Foreground(lipgloss.AdaptiveColor{Light: "#1F2937", Dark: "#E5E7EB"})
	t.Focused.TextInput.Placeholder = lipgloss.NewStyle().
		Foreground(ColorSubtle)
	t.Focused.TextInput.Cursor = lipgloss.NewStyle().
		Foreground(ColorAccent)
	t.Focused.Base = lipgloss.NewStyle().
		PaddingLeft(1).
		BorderStyle(lipgloss.ThickBorder()).
		BorderLeft(true).
		BorderForeground(ColorPrimary)

	t.Blurred.Title = lipgloss.NewStyle().
		Foreground(ColorMuted)
	t.Blurred.Description = lipgloss.NewStyle().
		Foreground(ColorSubtle)
	t.Blurred.TextInput.Text = lipgloss.NewStyle().
		Foreground(ColorMuted)
	t.Blurred.TextInput.Placeholder = lipgloss.NewStyle().
		Foreground(ColorSubtle)
	t.Blurred.Base = lipgloss.NewStyle().
		PaddingLeft(1).
		BorderStyle(lipgloss.HiddenBorder()).
		BorderLeft(true)

	t.Group.Title = t.Focused.Title
	t.Group.Description = t.Focused.Description

	return t
}
