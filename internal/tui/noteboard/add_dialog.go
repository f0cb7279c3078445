package noteboard

import (
	"strings"

	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"noter/internal/tui/theme"
)

// AddNoteResultMsg is sent when the add dialog closes
type AddNoteResultMsg struct {
	Subject   string
	Message   string
	Cancelled bool
}

// AddDialogModel asks for a subject and an initial message
type AddDialogModel struct {
	subject textinput.Model
	message textarea.Model
	focus   int
}

// NewAddDialog creates the dialog with the subject focused
func NewAddDialog() *AddDialogModel {
	subject := textinput.New()
	subject.Placeholder = "Subject (optional)"
	subject.CharLimit = 200
	subject.Width = 44
	subject.Focus()

	message := textarea.New()
	message.Placeholder = "Write your note... (markdown)"
	message.ShowLineNumbers = false
	message.SetWidth(46)
	message.SetHeight(5)

	return &AddDialogModel{subject: subject, message: message}
}

// Init starts the cursor blinking
func (m *AddDialogModel) Init() tea.Cmd {
	return textinput.Blink
}

// Update handles input; ctrl+s submits, esc cancels
func (m *AddDialogModel) Update(msg tea.Msg) tea.Cmd {
	if key, ok := msg.(tea.KeyMsg); ok {
		switch key.String() {
		case "esc":
			return func() tea.Msg { return AddNoteResultMsg{Cancelled: true} }
		case "ctrl+s":
			result := AddNoteResultMsg{
				Subject: strings.TrimSpace(m.subject.Value()),
				Message: strings.TrimSpace(m.message.Value()),
			}
			return func() tea.Msg { return result }
		case "tab", "shift+tab":
			m.focus = 1 - m.focus
			if m.focus == 0 {
				m.message.Blur()
				return m.subject.Focus()
			}
			m.subject.Blur()
			return m.message.Focus()
		case "enter":
			if m.focus == 0 {
				m.focus = 1
				m.subject.Blur()
				return m.message.Focus()
			}
		}
	}

	var cmd tea.Cmd
	if m.focus == 0 {
		m.subject, cmd = m.subject.Update(msg)
	} else {
		m.message, cmd = m.message.Update(msg)
	}
	return cmd
}

// View renders the dialog centered in a width x height area
func (m *AddDialogModel) View(width, height int) string {
	var b strings.Builder
	b.WriteString(theme.ModalTitle.Render("Add New Note") + "\n\n")
	b.WriteString(theme.FieldLabel.Render("Subject") + m.subject.View() + "\n\n")
	b.WriteString(theme.FieldLabel.Render("Message") + "\n")
	b.WriteString(m.message.View() + "\n\n")
	b.WriteString(theme.ModalHelp.Render("tab: switch field • ctrl+s: add note • esc: cancel"))

	box := theme.ModalBox.Width(54).Render(b.String())
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, box)
}
