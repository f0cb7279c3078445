package noteboard

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"noter/internal/board"
	"noter/internal/geometry"
	"noter/internal/interaction"
	"noter/internal/logs"
	"noter/internal/notes/fs"
	"noter/internal/notes/models"
	"noter/internal/prefs"
	"noter/internal/tui/messages"
	"noter/internal/tui/shared"
	"noter/internal/tui/theme"
)

// Two presses on the same note within this window open the editor
const doubleClickWindow = 400 * time.Millisecond

// Keyboard and wheel pan steps, in cells
const (
	panCols = 4
	panRows = 2
)

type promptKind int

const (
	promptNone promptKind = iota
	promptImport
	promptLaneLabel
)

// Options wires the board view to the rest of the application
type Options struct {
	Engine    *interaction.Engine
	Viewport  *board.Viewport
	Clock     *interaction.ManualClock
	Prefs     *prefs.Manager
	BackupDir string
	Now       func() time.Time
	Clipboard func(string) error
}

// Model is the interactive board: notes drawn over a pannable cork board,
// driven by the terminal mouse
type Model struct {
	engine    *interaction.Engine
	view      *board.Viewport
	clock     *interaction.ManualClock
	prefsMgr  *prefs.Manager
	prefs     *prefs.Prefs
	backupDir string
	now       func() time.Time
	copyText  func(string) error

	width  int
	height int

	selected    string
	lastPress   string
	lastPressAt time.Time

	editor     *EditorModel
	addDialog  *AddDialogModel
	confirm    *shared.ConfirmationModal
	prompt     *shared.PromptModel
	promptKind promptKind
	promptLane int
	filter     filter
}

// New creates the board view
func New(opts Options) Model {
	if opts.Now == nil {
		opts.Now = time.Now
	}
	if opts.Clipboard == nil {
		opts.Clipboard = clipboard.WriteAll
	}

	current := opts.Prefs.Get()
	display := &current
	opts.Prefs.Subscribe(func(p prefs.Prefs) {
		*display = p
	})

	return Model{
		engine:    opts.Engine,
		view:      opts.Viewport,
		clock:     opts.Clock,
		prefsMgr:  opts.Prefs,
		prefs:     display,
		backupDir: opts.BackupDir,
		now:       opts.Now,
		copyText:  opts.Clipboard,
		filter:    newFilter(),
	}
}

// SetSize gives the board a width x height area at the top of the screen
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
	m.mountWindow()
	m.fitExtent()
}

// Selected returns the selected note id, or ""
func (m Model) Selected() string {
	return m.selected
}

// Capturing reports whether keys belong to a dialog, the editor or the filter
func (m Model) Capturing() bool {
	return m.overlayOpen() || m.editor != nil || m.filter.typing
}

// Frame advances the frame clock by one display frame
func (m Model) Frame() {
	m.clock.Advance()
}

// Animating reports whether the board needs more frames to finish drawing
func (m Model) Animating() bool {
	return m.clock.Pending() > 0 || m.engine.Animating()
}

func (m Model) overlayOpen() bool {
	return m.confirm != nil || m.prompt != nil || m.addDialog != nil
}

func (m Model) boardRows() int {
	rows := m.height - headerRows
	if m.editor != nil {
		rows -= editorHeight
	}
	return max(0, rows)
}

// mountWindow shows the board through the rows left after the header and editor
func (m *Model) mountWindow() {
	rows := m.boardRows()
	if m.width <= 0 || rows <= 0 {
		m.view.Unmount()
		return
	}

	window := geometry.Rect{
		Left:   0,
		Top:    headerRows * CellHeight,
		Width:  float64(m.width) * CellWidth,
		Height: float64(rows) * CellHeight,
	}
	m.view.Mount(window)
	m.engine.SetViewport(geometry.Size{Width: window.Width, Height: window.Height})
	if m.editor != nil {
		m.editor.SetWidth(m.width)
	}
}

// fitExtent sizes the board to cover the window and every note
func (m *Model) fitExtent() {
	w := m.view.Window()
	extent := geometry.Size{
		Width:  max(minBoardWidth, w.Width),
		Height: max(minBoardHeight, w.Height),
	}
	for _, n := range m.engine.Notes().All() {
		extent.Width = max(extent.Width, n.X+n.Width)
		extent.Height = max(extent.Height, n.Y+n.Height)
	}
	m.view.SetExtent(extent)
}

// Update handles one message
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case EditorResultMsg:
		return m.finishEdit(msg)
	case AddNoteResultMsg:
		return m.finishAdd(msg)
	case shared.ConfirmationResultMsg:
		return m.finishDelete(msg)
	case shared.PromptResultMsg:
		if m.prompt == nil && m.editor != nil {
			return m, m.editor.Update(msg)
		}
		return m.finishPrompt(msg)
	case tea.MouseMsg:
		return m.handleMouse(msg)
	case tea.KeyMsg:
		return m.handleKey(msg)
	}
	return m, m.forward(msg)
}

// forward hands non-key messages (cursor blinks) to whatever has focus
func (m *Model) forward(msg tea.Msg) tea.Cmd {
	switch {
	case m.prompt != nil:
		return m.prompt.Update(msg)
	case m.addDialog != nil:
		return m.addDialog.Update(msg)
	case m.editor != nil:
		return m.editor.Update(msg)
	case m.filter.typing:
		var cmd tea.Cmd
		m.filter.input, cmd = m.filter.input.Update(msg)
		return cmd
	}
	return nil
}

// ---------------------------------------------------------------------------
// Mouse
// ---------------------------------------------------------------------------

func (m Model) handleMouse(msg tea.MouseMsg) (Model, tea.Cmd) {
	client := clientPoint(msg.X, msg.Y)
	if msg.Action == tea.MouseActionRelease {
		m.engine.Dispatch(interaction.MouseAt(interaction.EventUp, client.X, client.Y))
		return m, nil
	}
	if m.overlayOpen() {
		return m, nil
	}

	switch msg.Action {
	case tea.MouseActionPress:
		switch msg.Button {
		case tea.MouseButtonLeft:
			return m, m.press(msg.X, msg.Y, client)
		case tea.MouseButtonWheelUp:
			m.view.PanBy(0, -panRows*CellHeight)
		case tea.MouseButtonWheelDown:
			m.view.PanBy(0, panRows*CellHeight)
		case tea.MouseButtonWheelLeft:
			m.view.PanBy(-panCols*CellWidth, 0)
		case tea.MouseButtonWheelRight:
			m.view.PanBy(panCols*CellWidth, 0)
		}
	case tea.MouseActionMotion:
		m.engine.Dispatch(interaction.MouseAt(interaction.EventMove, client.X, client.Y))
	}
	return m, nil
}

// press handles a left press on screen cell (col, row)
func (m *Model) press(col, row int, client geometry.Point) tea.Cmd {
	if row < headerRows || row >= headerRows+m.boardRows() {
		return nil
	}

	id, box, ok := m.noteAtCell(col, row)
	if !ok {
		m.selected = ""
		if lane, ok := m.laneLabelAt(client); ok {
			return m.pressLane(lane)
		}
		m.lastPress = ""
		return nil
	}

	m.selected = id
	now := m.now()
	if m.lastPress == id && now.Sub(m.lastPressAt) <= doubleClickWindow {
		m.lastPress = ""
		return m.startEdit(id)
	}
	m.lastPress, m.lastPressAt = id, now

	ev := interaction.MouseAt(interaction.EventMove, client.X, client.Y)
	editing := m.engine.EditingID() == id
	if editing && box.isHandle(col, row) {
		m.engine.PointerDown(id, interaction.TargetResizeHandle, ev)
		return nil
	}

	if itemID, ok := m.checkboxAt(id, box, col, row); ok {
		if editing {
			m.editor.ToggleItem(itemID)
			return nil
		}
		if err := m.engine.ToggleCheckbox(id, itemID); err != nil {
			logs.Logger.Printf("Error toggling checkbox on %s: %v", id, err)
		}
		return nil
	}

	m.engine.PointerDown(id, interaction.TargetBody, ev)
	return nil
}

// pressLane opens the rename prompt on a double-clicked lane label
func (m *Model) pressLane(lane int) tea.Cmd {
	key := fmt.Sprintf("lane:%d", lane)
	now := m.now()
	if m.lastPress != key || now.Sub(m.lastPressAt) > doubleClickWindow {
		m.lastPress, m.lastPressAt = key, now
		return nil
	}
	m.lastPress = ""

	labels := m.prefs.LaneLabels()
	if lane >= len(labels) {
		return nil
	}
	m.promptKind = promptLaneLabel
	m.promptLane = lane
	m.prompt = shared.NewPrompt("Rename Lane", "Label", "Lane name", labels[lane], nil)
	return m.prompt.Init()
}

// noteAtCell returns the topmost note drawn over a screen cell
func (m Model) noteAtCell(col, row int) (string, cellBox, bool) {
	rect, scroll := m.engine.BoardGeometry()
	ids := m.engine.Notes().IDs()
	for i := len(ids) - 1; i >= 0; i-- {
		r, ok := m.engine.VisualGeometry(ids[i])
		if !ok {
			continue
		}
		box := boxFor(r, rect, scroll)
		if box.contains(col, row) {
			return ids[i], box, true
		}
	}
	return "", cellBox{}, false
}

// checkboxAt returns the checkbox whose box glyph is drawn at (col, row)
func (m Model) checkboxAt(id string, box cellBox, col, row int) (string, bool) {
	n, ok := m.engine.Notes().Get(id)
	if !ok {
		return "", false
	}
	lines := layoutNote(n, box.cols-2, box.rows-2)
	i := row - box.row - 1
	if i < 0 || i >= len(lines) || !lines[i].checkbox {
		return "", false
	}
	if offset := col - box.col - 1; offset < 0 || offset > 1 {
		return "", false
	}
	return lines[i].itemID, true
}

// laneLabelAt returns the lane whose label row contains a client point
func (m Model) laneLabelAt(client geometry.Point) (int, bool) {
	lanes := m.prefs.SwimlanesCount
	if lanes == 0 {
		return 0, false
	}
	rect, scroll := m.engine.BoardGeometry()
	p := geometry.ToBoardLocal(client, rect, scroll)
	if p.Y < 0 || p.Y >= CellHeight || p.X < 0 || p.X >= rect.Width {
		return 0, false
	}
	lane := int(p.X / (rect.Width / float64(lanes+1)))
	return min(lane, lanes), true
}

// ---------------------------------------------------------------------------
// Keys
// ---------------------------------------------------------------------------

func (m Model) handleKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch {
	case m.confirm != nil:
		return m, m.confirm.Update(msg)
	case m.prompt != nil:
		return m, m.prompt.Update(msg)
	case m.addDialog != nil:
		return m, m.addDialog.Update(msg)
	case m.editor != nil:
		return m, m.editor.Update(msg)
	case m.filter.typing:
		return m.handleFilterKey(msg)
	}

	ctx := context.Background()
	switch msg.String() {
	case "tab":
		m.cycleSelection(1)
	case "shift+tab":
		m.cycleSelection(-1)
	case "n", "a":
		m.addDialog = NewAddDialog()
		return m, m.addDialog.Init()
	case "enter", "e":
		if m.selected != "" {
			return m, m.startEdit(m.selected)
		}
	case "d", "x", "delete":
		if n, ok := m.engine.Notes().Get(m.selected); ok {
			m.confirm = shared.NewConfirmationModal("Delete this note?", noteTitle(n), 50)
		}
	case "c":
		if m.selected != "" {
			if err := m.engine.ChangeColor(m.selected); err != nil {
				return m, messages.Failure("Color change failed", err.Error())
			}
		}
	case "f":
		if m.selected != "" {
			if err := m.engine.ReorderToFront(m.selected); err != nil {
				logs.Logger.Printf("Error raising note %s: %v", m.selected, err)
			}
		}
	case "y":
		return m, m.copySelected()
	case "/":
		m.filter.typing = true
		return m, m.filter.input.Focus()
	case "esc":
		if m.filter.active() {
			m.filter.clear()
		} else {
			m.selected = ""
		}
	case "s":
		return m, m.exportBackup()
	case "o":
		m.promptKind = promptImport
		m.prompt = shared.NewPrompt("Load Notes", "File", "noter_backup.json", withSeparator(m.backupDir), func(s string) error {
			if s == "" {
				return fmt.Errorf("file path is required")
			}
			return nil
		})
		return m, m.prompt.Init()
	case "m":
		return m, m.exportMarkdown()
	case "P":
		return m, m.exportSnapshot()
	case "w":
		if err := m.prefsMgr.CycleSwimlanes(ctx); err != nil {
			logs.Logger.Printf("Error saving swimlanes: %v", err)
		}
	case "T":
		if err := m.prefsMgr.SetDarkMode(ctx, !m.prefs.DarkMode); err != nil {
			logs.Logger.Printf("Error saving theme: %v", err)
		}
	case "left", "h":
		m.view.PanBy(-panCols*CellWidth, 0)
	case "right", "l":
		m.view.PanBy(panCols*CellWidth, 0)
	case "up", "k":
		m.view.PanBy(0, -panRows*CellHeight)
	case "down", "j":
		m.view.PanBy(0, panRows*CellHeight)
	case "home", "0":
		m.view.PanTo(geometry.Offset{})
	}
	return m, nil
}

func (m Model) handleFilterKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch msg.String() {
	case "enter":
		m.filter.typing = false
		m.filter.input.Blur()
		return m, nil
	case "esc":
		m.filter.clear()
		return m, nil
	}

	var cmd tea.Cmd
	m.filter.input, cmd = m.filter.input.Update(msg)
	m.filter.apply(m.engine.Notes().All())
	return m, cmd
}

// cycleSelection walks the z-order, skipping filtered-out notes
func (m *Model) cycleSelection(step int) {
	ids := m.engine.Notes().IDs()
	if len(ids) == 0 {
		return
	}
	start := -1
	for i, id := range ids {
		if id == m.selected {
			start = i
		}
	}
	if start < 0 && step < 0 {
		start = 0
	}
	for k := 1; k <= len(ids); k++ {
		i := ((start+k*step)%len(ids) + len(ids)) % len(ids)
		if !m.filter.dimmed(ids[i]) {
			m.selected = ids[i]
			return
		}
	}
}

// ---------------------------------------------------------------------------
// Editing
// ---------------------------------------------------------------------------

func (m *Model) startEdit(id string) tea.Cmd {
	if m.editor != nil && m.editor.NoteID() == id {
		return nil
	}
	if !m.engine.RequestEditStart(id) {
		return nil
	}
	n, ok := m.engine.Notes().Get(id)
	if !ok {
		m.engine.EditEnd(id)
		return nil
	}
	m.editor = NewEditor(n)
	m.mountWindow()
	return textinput.Blink
}

func (m Model) finishEdit(msg EditorResultMsg) (Model, tea.Cmd) {
	var cmd tea.Cmd
	if msg.Saved {
		if err := m.engine.UpdateNote(msg.NoteID, models.ContentPatch(msg.Subject, msg.Content)); err != nil {
			logs.Logger.Printf("Error saving note %s: %v", msg.NoteID, err)
			cmd = messages.Failure("Save failed", err.Error())
		}
	}
	m.engine.EditEnd(msg.NoteID)
	m.editor = nil
	m.mountWindow()
	return m, cmd
}

func (m Model) finishAdd(msg AddNoteResultMsg) (Model, tea.Cmd) {
	m.addDialog = nil
	if msg.Cancelled {
		return m, nil
	}
	n := m.engine.AddNote(msg.Message, msg.Subject)
	m.selected = n.ID
	return m, nil
}

func (m Model) finishDelete(msg shared.ConfirmationResultMsg) (Model, tea.Cmd) {
	m.confirm = nil
	if !msg.Confirmed || m.selected == "" {
		return m, nil
	}
	if err := m.engine.DeleteNote(m.selected); err != nil {
		return m, messages.Failure("Delete failed", err.Error())
	}
	m.selected = ""
	return m, nil
}

func (m Model) finishPrompt(msg shared.PromptResultMsg) (Model, tea.Cmd) {
	kind := m.promptKind
	m.prompt = nil
	m.promptKind = promptNone
	if msg.Cancelled {
		return m, nil
	}

	switch kind {
	case promptImport:
		return m, m.importFile(msg.Value)
	case promptLaneLabel:
		if err := m.prefsMgr.SetLaneLabel(context.Background(), m.promptLane, msg.Value); err != nil {
			return m, messages.Failure("Rename failed", err.Error())
		}
	}
	return m, nil
}

// ---------------------------------------------------------------------------
// Files
// ---------------------------------------------------------------------------

func (m *Model) importFile(path string) tea.Cmd {
	data, err := os.ReadFile(expandHome(path))
	if err != nil {
		logs.Logger.Printf("Error reading import %s: %v", path, err)
		return messages.Failure("Failed to load notes", err.Error())
	}
	if err := m.engine.ImportNotes(data); err != nil {
		logs.Logger.Printf("Rejected import %s: %v", path, err)
		return messages.Failure("Failed to load notes", "The JSON file could not be parsed.")
	}

	m.selected = ""
	m.lastPress = ""
	m.filter.clear()
	m.fitExtent()
	return messages.Toast("Notes loaded!", fmt.Sprintf("Successfully loaded %d note(s).", m.engine.Notes().Len()))
}

func (m Model) exportBackup() tea.Cmd {
	path, err := fs.ExportFile(m.backupDir, m.engine.Notes().All(), m.now())
	if err != nil {
		logs.Logger.Printf("Error exporting notes: %v", err)
		return messages.Failure("Failed to save notes", err.Error())
	}
	return messages.Toast("Notes saved!", "Saved to "+path)
}

func (m Model) exportMarkdown() tea.Cmd {
	dir := filepath.Join(m.backupDir, "markdown")
	paths, err := fs.ExportMarkdown(dir, m.engine.Notes().All())
	if err != nil {
		logs.Logger.Printf("Error exporting markdown: %v", err)
		return messages.Failure("Markdown export failed", err.Error())
	}
	return messages.Toast("Markdown exported", fmt.Sprintf("Wrote %d file(s) to %s", len(paths), dir))
}

func (m Model) exportSnapshot() tea.Cmd {
	path := filepath.Join(m.backupDir, "noter_board_"+m.now().Format("20060102_150405")+".png")
	if err := fs.WriteSnapshot(path, m.engine.Notes().All()); err != nil {
		logs.Logger.Printf("Error writing snapshot: %v", err)
		return messages.Failure("Snapshot failed", err.Error())
	}
	return messages.Toast("Snapshot saved", path)
}

func (m Model) copySelected() tea.Cmd {
	n, ok := m.engine.Notes().Get(m.selected)
	if !ok {
		return nil
	}
	text := n.PlainText()
	if n.Subject != "" {
		text = n.Subject + "\n\n" + text
	}
	if err := m.copyText(text); err != nil {
		logs.Logger.Printf("Error copying note %s: %v", n.ID, err)
		return messages.Failure("Copy failed", err.Error())
	}
	return messages.Toast("Copied", "Note text copied to the clipboard.")
}

// noteTitle is the subject, or the first line of text when there is none
func noteTitle(n models.Note) string {
	if n.Subject != "" {
		return n.Subject
	}
	first, _, _ := strings.Cut(strings.TrimSpace(n.PlainText()), "\n")
	if first == "" {
		return "(empty note)"
	}
	return truncate(first, 40)
}

func expandHome(path string) string {
	if rest, ok := strings.CutPrefix(path, "~/"); ok {
		if home, err := os.UserHomeDir(); err == nil {
			return filepath.Join(home, rest)
		}
	}
	return path
}

func withSeparator(dir string) string {
	if dir == "" || strings.HasSuffix(dir, string(filepath.Separator)) {
		return dir
	}
	return dir + string(filepath.Separator)
}

// ---------------------------------------------------------------------------
// View
// ---------------------------------------------------------------------------

// View renders the header, the board (or the open dialog) and the editor
func (m Model) View() string {
	if m.width <= 0 || m.height <= 0 {
		return ""
	}

	colors := theme.Board(m.prefs.DarkMode)
	parts := []string{m.renderHeader(colors)}

	if rows := m.boardRows(); rows > 0 {
		switch {
		case m.confirm != nil:
			parts = append(parts, m.confirm.View(m.width, rows))
		case m.prompt != nil:
			parts = append(parts, m.prompt.View(m.width, rows))
		case m.addDialog != nil:
			parts = append(parts, m.addDialog.View(m.width, rows))
		default:
			parts = append(parts, m.renderBoard(colors, rows))
		}
	}

	if m.editor != nil {
		parts = append(parts, m.editor.View(m.width, editorHeight))
	}
	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}
