package noteboard

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"noter/internal/notes/models"
	"noter/internal/notes/operations"
	"noter/internal/tui/shared"
	"noter/internal/tui/theme"
)

// editorHeight is the number of rows the edit panel takes below the board
const editorHeight = 12

const editorHelp = "tab: next • ctrl+t: text • ctrl+b: checkbox • ctrl+g: image • ctrl+x: toggle • ctrl+d: remove • ctrl+s: save • esc: cancel"

// EditorResultMsg is sent when the edit panel closes
type EditorResultMsg struct {
	NoteID  string
	Saved   bool
	Subject string
	Content []models.ContentItem
}

var (
	editorBoxStyle = lipgloss.NewStyle().
			BorderStyle(lipgloss.NormalBorder()).
			BorderTop(true).
			BorderForeground(theme.Primary)
	editorItemStyle    = lipgloss.NewStyle().Foreground(theme.Text)
	editorFocusStyle   = lipgloss.NewStyle().Bold(true).Foreground(theme.Primary)
	editorCheckedStyle = lipgloss.NewStyle().Foreground(theme.Success)
)

// EditorModel edits a draft of one note's subject and content blocks. The
// note itself is only touched when the draft is saved.
type EditorModel struct {
	noteID  string
	subject textinput.Model
	draft   []models.ContentItem
	focus   int // 0 is the subject, i+1 is draft[i]

	text     textarea.Model // focused text block
	line     textinput.Model // focused checkbox
	imgInput *shared.PromptModel
	err      string
	width    int
}

// NewEditor opens an editor on n
func NewEditor(n models.Note) *EditorModel {
	subject := textinput.New()
	subject.Placeholder = "Subject"
	subject.CharLimit = 200
	subject.SetValue(n.Subject)
	subject.Focus()

	text := textarea.New()
	text.ShowLineNumbers = false
	text.Placeholder = "Text (markdown)"
	text.SetHeight(4)

	line := textinput.New()
	line.Placeholder = "To do"
	line.CharLimit = 500

	draft := make([]models.ContentItem, len(n.Content))
	copy(draft, n.Content)

	return &EditorModel{
		noteID:  n.ID,
		subject: subject,
		draft:   draft,
		text:    text,
		line:    line,
	}
}

// NoteID returns the note being edited
func (m *EditorModel) NoteID() string {
	return m.noteID
}

// Draft returns the current content draft, including uncommitted input
func (m *EditorModel) Draft() []models.ContentItem {
	m.commitFocused()
	out := make([]models.ContentItem, len(m.draft))
	copy(out, m.draft)
	return out
}

// Subject returns the drafted subject
func (m *EditorModel) Subject() string {
	return strings.TrimSpace(m.subject.Value())
}

// SetWidth resizes the inputs to the panel width
func (m *EditorModel) SetWidth(w int) {
	m.width = w
	inner := max(10, w-6)
	m.subject.Width = inner
	m.line.Width = inner - 2
	m.text.SetWidth(inner)
}

// ToggleItem flips a checkbox in the draft
func (m *EditorModel) ToggleItem(itemID string) {
	m.commitFocused()
	m.draft = operations.ToggleItem(m.draft, itemID)
	m.loadFocused()
}

// Update handles keys; the result is delivered as EditorResultMsg
func (m *EditorModel) Update(msg tea.Msg) tea.Cmd {
	if m.imgInput != nil {
		if result, ok := msg.(shared.PromptResultMsg); ok {
			m.imgInput = nil
			if !result.Cancelled {
				m.addImage(result.Value)
			}
			return nil
		}
		return m.imgInput.Update(msg)
	}

	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return m.updateFocused(msg)
	}

	m.err = ""
	switch key.String() {
	case "esc":
		id := m.noteID
		return func() tea.Msg { return EditorResultMsg{NoteID: id} }
	case "ctrl+s":
		result := EditorResultMsg{NoteID: m.noteID, Saved: true, Subject: m.Subject(), Content: m.Draft()}
		return func() tea.Msg { return result }
	case "tab":
		return m.setFocus((m.focus + 1) % (len(m.draft) + 1))
	case "shift+tab":
		return m.setFocus((m.focus + len(m.draft)) % (len(m.draft) + 1))
	case "ctrl+t":
		m.commitFocused()
		var id string
		m.draft, id = operations.AddText(m.draft)
		return m.focusItem(id)
	case "ctrl+b":
		m.commitFocused()
		var id string
		m.draft, id = operations.AddCheckbox(m.draft)
		return m.focusItem(id)
	case "ctrl+g":
		m.commitFocused()
		m.imgInput = shared.NewPrompt("Add Image", "Path", "~/Pictures/photo.png", "", func(s string) error {
			if s == "" {
				return fmt.Errorf("path is required")
			}
			return nil
		})
		return m.imgInput.Init()
	case "ctrl+x":
		if item, ok := m.focusedItem(); ok && item.Type == models.ContentCheckbox {
			m.ToggleItem(item.ID)
		}
		return nil
	case "ctrl+d":
		item, ok := m.focusedItem()
		if !ok {
			return nil
		}
		m.draft = operations.RemoveItem(m.draft, item.ID)
		return m.setFocusRaw(min(m.focus, len(m.draft)))
	}

	return m.updateFocused(msg)
}

func (m *EditorModel) updateFocused(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	if m.focus == 0 {
		m.subject, cmd = m.subject.Update(msg)
		return cmd
	}
	item, ok := m.focusedItem()
	if !ok {
		return nil
	}
	switch item.Type {
	case models.ContentText:
		m.text, cmd = m.text.Update(msg)
	case models.ContentCheckbox:
		m.line, cmd = m.line.Update(msg)
	}
	return cmd
}

func (m *EditorModel) addImage(path string) {
	url, err := operations.ImageURLFromFile(path)
	if err != nil {
		m.err = err.Error()
		return
	}
	var id string
	m.draft, id = operations.AddImage(m.draft, url)
	m.focusItem(id)
}

func (m *EditorModel) focusedItem() (models.ContentItem, bool) {
	if m.focus < 1 || m.focus > len(m.draft) {
		return models.ContentItem{}, false
	}
	return m.draft[m.focus-1], true
}

func (m *EditorModel) focusItem(id string) tea.Cmd {
	for i, item := range m.draft {
		if item.ID == id {
			return m.setFocusRaw(i + 1)
		}
	}
	return nil
}

// setFocus saves the focused input into the draft before moving
func (m *EditorModel) setFocus(focus int) tea.Cmd {
	m.commitFocused()
	return m.setFocusRaw(focus)
}

func (m *EditorModel) setFocusRaw(focus int) tea.Cmd {
	m.focus = focus
	m.subject.Blur()
	m.text.Blur()
	m.line.Blur()
	return m.loadFocused()
}

// loadFocused copies the focused block into its input and focuses it
func (m *EditorModel) loadFocused() tea.Cmd {
	if m.focus == 0 {
		return m.subject.Focus()
	}
	item, ok := m.focusedItem()
	if !ok {
		return nil
	}
	switch item.Type {
	case models.ContentText:
		m.text.SetValue(item.Value)
		return m.text.Focus()
	case models.ContentCheckbox:
		m.line.SetValue(item.Text)
		m.line.CursorEnd()
		return m.line.Focus()
	}
	return nil
}

func (m *EditorModel) commitFocused() {
	item, ok := m.focusedItem()
	if !ok {
		return
	}
	switch item.Type {
	case models.ContentText:
		m.draft = operations.SetItemText(m.draft, item.ID, m.text.Value())
	case models.ContentCheckbox:
		m.draft = operations.SetItemText(m.draft, item.ID, m.line.Value())
	}
}

// View renders the panel in width x height cells
func (m *EditorModel) View(width, height int) string {
	if m.imgInput != nil {
		return m.imgInput.View(width, height)
	}

	var rows []string
	rows = append(rows, theme.Subtitle.Render("Editing note"))
	rows = append(rows, theme.FieldLabel.Render("Subject")+m.subject.View())

	for i, item := range m.draft {
		focused := m.focus == i+1
		rows = append(rows, m.itemView(item, focused)...)
	}
	if len(m.draft) == 0 {
		rows = append(rows, theme.Muted.Render("  (empty) ctrl+t adds a text block"))
	}
	if m.err != "" {
		rows = append(rows, theme.Error.Render("Error: "+m.err))
	}

	// Keep the focused row visible when the draft is taller than the panel
	body := height - 3
	if len(rows) > body && body > 0 {
		start := min(len(rows)-body, max(0, m.focusRow(rows)-body/2))
		rows = rows[start : start+body]
	}

	help := theme.ModalHelp.Render(truncate(editorHelp, max(10, width)))
	content := strings.Join(rows, "\n")
	content = lipgloss.NewStyle().Height(max(0, height-2)).MaxHeight(max(0, height-2)).Render(content)
	return editorBoxStyle.Width(width).Render(content + "\n" + help)
}

func (m *EditorModel) itemView(item models.ContentItem, focused bool) []string {
	marker := "  "
	if focused {
		marker = editorFocusStyle.Render("▸ ")
	}

	switch item.Type {
	case models.ContentText:
		if focused {
			return strings.Split(m.text.View(), "\n")
		}
		preview := strings.Join(operations.MarkdownLines(item.Value), " ")
		if preview == "" {
			preview = theme.Muted.Render("(empty text)")
		}
		return []string{marker + editorItemStyle.Render(truncate(preview, max(10, m.width-4)))}
	case models.ContentCheckbox:
		box := "☐ "
		if item.Checked {
			box = editorCheckedStyle.Render("☑ ")
		}
		if focused {
			return []string{marker + box + m.line.View()}
		}
		return []string{marker + box + editorItemStyle.Render(item.Text)}
	case models.ContentImage:
		return []string{marker + editorItemStyle.Render(imageLabel(item.URL))}
	}
	return nil
}

// focusRow approximates the row index of the focused block
func (m *EditorModel) focusRow(rows []string) int {
	if m.focus == 0 {
		return 1
	}
	return min(len(rows)-1, m.focus+1)
}

func truncate(s string, width int) string {
	r := []rune(s)
	if len(r) <= width {
		return s
	}
	return string(r[:width-1]) + "…"
}
