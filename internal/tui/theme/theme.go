package theme

import "github.com/charmbracelet/lipgloss"

// ---------------------------------------------------------------------------
// Color palette: ANSI 0-15 for chrome, hex for the board itself
// ---------------------------------------------------------------------------

var (
	Text       = lipgloss.Color("7")
	TextMuted  = lipgloss.Color("8")
	TextBright = lipgloss.Color("15")

	Primary   = lipgloss.Color("4") // blue
	Secondary = lipgloss.Color("6") // cyan
	Success   = lipgloss.Color("2") // green
	Warning   = lipgloss.Color("3") // yellow
	Danger    = lipgloss.Color("1") // red
	Border    = lipgloss.Color("8") // dim
)

// BoardColors are the hex colors of the board surface
type BoardColors struct {
	Background string // around the board
	Board      string // cork
	Frame      string // wooden edge
	Text       string
	Subtle     string
	Lane       string // swimlane dividers and labels
	NoteText   string
	Shadow     string
	Cue        string // rejection blink
	Editing    string
}

var (
	light = BoardColors{
		Background: "#f3efe7",
		Board:      "#d9c3a0",
		Frame:      "#6b5638",
		Text:       "#3b2f22",
		Subtle:     "#7a6a55",
		Lane:       "#8b6f47",
		NoteText:   "#333333",
		Shadow:     "#a88d66",
		Cue:        "#e53935",
		Editing:    "#1e63b5",
	}
	dark = BoardColors{
		Background: "#151515",
		Board:      "#2a2621",
		Frame:      "#5a4a2f",
		Text:       "#e8e0d4",
		Subtle:     "#a09484",
		Lane:       "#8b6f47",
		NoteText:   "#222222",
		Shadow:     "#14110e",
		Cue:        "#ff5252",
		Editing:    "#64b5f6",
	}
)

// Board returns the board colors for the light or dark theme
func Board(darkMode bool) BoardColors {
	if darkMode {
		return dark
	}
	return light
}

// ---------------------------------------------------------------------------
// Semantic text styles
// ---------------------------------------------------------------------------

var (
	Title    = lipgloss.NewStyle().Bold(true).Foreground(Primary)
	Subtitle = lipgloss.NewStyle().Bold(true).Foreground(Secondary)
	Muted    = lipgloss.NewStyle().Foreground(TextMuted)
	Bold     = lipgloss.NewStyle().Bold(true)

	Error = lipgloss.NewStyle().Bold(true).Foreground(Danger)
	Warn  = lipgloss.NewStyle().Bold(true).Foreground(Warning)
	Ok    = lipgloss.NewStyle().Bold(true).Foreground(Success)

	Cursor = lipgloss.NewStyle().Bold(true).Foreground(Success)
)

// ---------------------------------------------------------------------------
// Reusable component helpers
// ---------------------------------------------------------------------------

var (
	ModalBox = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(Primary).
			Padding(1, 2)

	ModalTitle = lipgloss.NewStyle().Bold(true).Foreground(Warning)

	ModalHelp = lipgloss.NewStyle().Foreground(TextMuted)

	StatusBar = lipgloss.NewStyle().
			Foreground(TextMuted).
			BorderStyle(lipgloss.NormalBorder()).
			BorderTop(true).
			BorderForeground(Border)

	HelpHint = lipgloss.NewStyle().Foreground(TextMuted)

	FieldLabel  = lipgloss.NewStyle().Foreground(Secondary).Width(10)
	FieldActive = lipgloss.NewStyle().Bold(true).Foreground(Primary)
)
