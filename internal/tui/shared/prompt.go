package shared

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"noter/internal/tui/theme"
)

var (
	promptLabelStyle = lipgloss.NewStyle().Foreground(theme.Secondary)
	promptErrorStyle = lipgloss.NewStyle().Foreground(theme.Danger)
)

// PromptModel is a one-line text input with optional validation
type PromptModel struct {
	Input     textinput.Model
	Title     string
	Label     string
	Validator func(string) error
	Error     string
	Width     int
}

// PromptResultMsg is sent when the prompt is confirmed or cancelled
type PromptResultMsg struct {
	Value     string
	Cancelled bool
}

// NewPrompt creates a focused prompt
func NewPrompt(title, label, placeholder, value string, validator func(string) error) *PromptModel {
	ti := textinput.New()
	ti.Placeholder = placeholder
	ti.CharLimit = 1024
	ti.Width = 48
	ti.SetValue(value)
	ti.Focus()
	return &PromptModel{
		Input:     ti,
		Title:     title,
		Label:     label,
		Validator: validator,
		Width:     64,
	}
}

// Init starts the cursor blinking
func (m *PromptModel) Init() tea.Cmd {
	return textinput.Blink
}

// Update handles input; enter validates and confirms, esc cancels
func (m *PromptModel) Update(msg tea.Msg) tea.Cmd {
	if key, ok := msg.(tea.KeyMsg); ok {
		switch key.String() {
		case "enter":
			value := strings.TrimSpace(m.Input.Value())
			if m.Validator != nil {
				if err := m.Validator(value); err != nil {
					m.Error = err.Error()
					return nil
				}
			}
			return func() tea.Msg { return PromptResultMsg{Value: value} }
		case "esc":
			return func() tea.Msg { return PromptResultMsg{Cancelled: true} }
		}
	}

	var cmd tea.Cmd
	m.Input, cmd = m.Input.Update(msg)
	m.Error = ""
	return cmd
}

// View renders the prompt centered in a width x height area
func (m *PromptModel) View(width, height int) string {
	var b strings.Builder
	if m.Title != "" {
		b.WriteString(theme.ModalTitle.Render(m.Title) + "\n\n")
	}
	b.WriteString(promptLabelStyle.Render(m.Label+": ") + m.Input.View() + "\n")
	if m.Error != "" {
		b.WriteString(promptErrorStyle.Render("Error: "+m.Error) + "\n")
	}
	b.WriteString("\n" + theme.ModalHelp.Render("enter: confirm • esc: cancel"))

	box := theme.ModalBox.Width(m.Width).Render(b.String())
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, box)
}
