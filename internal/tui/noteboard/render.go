package noteboard

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"

	"noter/internal/geometry"
	"noter/internal/interaction"
	"noter/internal/tui/theme"
)

type borderRunes struct {
	top, bottom, left, right                   rune
	topLeft, topRight, bottomLeft, bottomRight rune
}

var (
	noteBorder    = borderRunes{'─', '─', '│', '│', '╭', '╮', '╰', '╯'}
	editingBorder = borderRunes{'═', '═', '║', '║', '╔', '╗', '╚', '╝'}
)

const resizeHandle = '◢'

const emptyHint = "No notes yet. Press n to add one."

func (m Model) renderHeader(colors theme.BoardColors) string {
	bg := lipgloss.Color(colors.Background)
	title := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(colors.Text)).Background(bg).Render(" noter ")
	sub := lipgloss.NewStyle().Foreground(lipgloss.Color(colors.Subtle)).Background(bg)

	info := fmt.Sprintf("%d note(s)", m.engine.Notes().Len())
	if lanes := m.prefs.SwimlanesCount; lanes > 0 {
		info += fmt.Sprintf(" • %d lanes", lanes+1)
	}
	if id := m.engine.EditingID(); id != "" {
		if n, ok := m.engine.Notes().Get(id); ok {
			info += " • editing " + noteTitle(n)
		}
	}
	left := title + sub.Render(info)

	var right string
	switch {
	case m.filter.typing:
		right = m.filter.input.View()
	case m.filter.active():
		right = sub.Render(fmt.Sprintf("filter: %s (%d) ", m.filter.query, len(m.filter.matches)))
	}

	gap := max(0, m.width-lipgloss.Width(left)-lipgloss.Width(right))
	line := left + lipgloss.NewStyle().Background(bg).Width(gap).Render("") + right
	return lipgloss.NewStyle().MaxWidth(m.width).Render(line)
}

// renderBoard draws the visible part of the board into rows lines
func (m Model) renderBoard(colors theme.BoardColors, rows int) string {
	c := newCanvas(m.width, rows, cellStyle{bg: colors.Background})
	rect, scroll := m.engine.BoardGeometry()

	left, top := screenCell(geometry.Point{}, rect, scroll)
	right, bottom := screenCell(geometry.Point{X: rect.Width, Y: rect.Height}, rect, scroll)
	top -= headerRows
	bottom -= headerRows
	surface := cellStyle{fg: colors.Frame, bg: colors.Board}
	c.fill(left, top, right-left, bottom-top, ' ', surface)

	m.drawLanes(c, colors, rect, scroll, top, bottom)

	for _, id := range m.engine.Notes().IDs() {
		m.drawNote(c, colors, id, rect, scroll)
	}

	if m.engine.Notes().Len() == 0 {
		x := (m.width - len([]rune(emptyHint))) / 2
		c.text(x, rows/2, m.width, emptyHint, cellStyle{fg: colors.Subtle, bg: colors.Board})
	}
	return c.render()
}

func (m Model) drawLanes(c *canvas, colors theme.BoardColors, rect geometry.Rect, scroll geometry.Offset, top, bottom int) {
	lanes := m.prefs.SwimlanesCount
	if lanes == 0 {
		return
	}

	width := rect.Width / float64(lanes+1)
	divider := cellStyle{fg: colors.Lane, bg: colors.Board}
	for i := 1; i <= lanes; i++ {
		col, _ := screenCell(geometry.Point{X: width * float64(i)}, rect, scroll)
		c.fill(col, top, 1, bottom-top, '│', divider)
	}

	label := cellStyle{fg: colors.Lane, bg: colors.Board, bold: true}
	laneCols := int(width / CellWidth)
	for i, text := range m.prefs.LaneLabels() {
		text = truncate(text, max(1, laneCols-2))
		center, _ := screenCell(geometry.Point{X: width * (float64(i) + 0.5)}, rect, scroll)
		start := center - len([]rune(text))/2
		c.text(start, top, start+len([]rune(text)), text, label)
	}
}

func (m Model) drawNote(c *canvas, colors theme.BoardColors, id string, rect geometry.Rect, scroll geometry.Offset) {
	n, ok := m.engine.Notes().Get(id)
	if !ok {
		return
	}
	r, _ := m.engine.VisualGeometry(id)
	box := boxFor(r, rect, scroll)
	x, y := box.col, box.row-headerRows

	if m.engine.State(id) != interaction.StateIdle || m.engine.Settling(id) {
		c.fill(x+1, y+1, box.cols, box.rows, ' ', cellStyle{bg: colors.Shadow})
	}

	body := cellStyle{fg: colors.NoteText, bg: n.Color}
	c.fill(x, y, box.cols, box.rows, ' ', body)

	editing := m.engine.EditingID() == id
	runes := noteBorder
	border := body
	switch {
	case m.engine.Cues().Lit(id):
		runes = editingBorder
		border.fg, border.bold = colors.Cue, true
	case editing:
		runes = editingBorder
		border.fg, border.bold = colors.Editing, true
	case id == m.selected:
		border.bold = true
	}
	drawBorder(c, x, y, box.cols, box.rows, runes, border)

	if n.Subject != "" {
		subject := body
		subject.bold = true
		c.text(x+2, y, x+box.cols-2, " "+n.Subject+" ", subject)
	}

	for i, line := range layoutNote(n, box.cols-2, box.rows-2) {
		style := body
		if line.checked {
			style.faint = true
		}
		c.text(x+1, y+1+i, x+box.cols-1, line.text, style)
	}

	if editing {
		c.set(x+box.cols-1, y+box.rows-1, resizeHandle, border)
	}

	if m.filter.dimmed(id) {
		c.restyle(x, y, box.cols, box.rows, func(s cellStyle) cellStyle {
			s.faint = true
			return s
		})
	}
}

func drawBorder(c *canvas, x, y, w, h int, b borderRunes, style cellStyle) {
	right, bottom := x+w-1, y+h-1
	for col := x + 1; col < right; col++ {
		c.set(col, y, b.top, style)
		c.set(col, bottom, b.bottom, style)
	}
	for row := y + 1; row < bottom; row++ {
		c.set(x, row, b.left, style)
		c.set(right, row, b.right, style)
	}
	c.set(x, y, b.topLeft, style)
	c.set(right, y, b.topRight, style)
	c.set(x, bottom, b.bottomLeft, style)
	c.set(right, bottom, b.bottomRight, style)
}
