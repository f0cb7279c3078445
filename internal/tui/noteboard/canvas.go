package noteboard

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// cellStyle is the look of one terminal cell; comparable so runs of equal
// cells render with a single lipgloss style
type cellStyle struct {
	fg, bg string
	bold   bool
	faint  bool
}

func (s cellStyle) lipgloss() lipgloss.Style {
	st := lipgloss.NewStyle()
	if s.fg != "" {
		st = st.Foreground(lipgloss.Color(s.fg))
	}
	if s.bg != "" {
		st = st.Background(lipgloss.Color(s.bg))
	}
	if s.bold {
		st = st.Bold(true)
	}
	if s.faint {
		st = st.Faint(true)
	}
	return st
}

type cell struct {
	r     rune
	style cellStyle
}

// canvas is a fixed-size grid of styled cells
type canvas struct {
	width, height int
	cells         [][]cell
}

func newCanvas(width, height int, fill cellStyle) *canvas {
	c := &canvas{width: max(0, width), height: max(0, height)}
	c.cells = make([][]cell, c.height)
	for y := range c.cells {
		row := make([]cell, c.width)
		for x := range row {
			row[x] = cell{r: ' ', style: fill}
		}
		c.cells[y] = row
	}
	return c
}

func (c *canvas) inBounds(x, y int) bool {
	return x >= 0 && y >= 0 && x < c.width && y < c.height
}

func (c *canvas) set(x, y int, r rune, style cellStyle) {
	if c.inBounds(x, y) {
		c.cells[y][x] = cell{r: r, style: style}
	}
}

// fill paints a rectangle, clipped to the canvas
func (c *canvas) fill(x, y, w, h int, r rune, style cellStyle) {
	for row := y; row < y+h; row++ {
		for col := x; col < x+w; col++ {
			c.set(col, row, r, style)
		}
	}
}

// text writes s starting at (x, y), stopping at maxX (exclusive)
func (c *canvas) text(x, y, maxX int, s string, style cellStyle) {
	col := x
	for _, r := range s {
		if col >= maxX {
			return
		}
		c.set(col, y, r, style)
		col++
	}
}

// restyle changes the style of existing cells, keeping their runes
func (c *canvas) restyle(x, y, w, h int, fn func(cellStyle) cellStyle) {
	for row := y; row < y+h; row++ {
		for col := x; col < x+w; col++ {
			if c.inBounds(col, row) {
				c.cells[row][col].style = fn(c.cells[row][col].style)
			}
		}
	}
}

func (c *canvas) render() string {
	lines := make([]string, c.height)
	for y, row := range c.cells {
		var b strings.Builder
		start := 0
		for x := 1; x <= len(row); x++ {
			if x < len(row) && row[x].style == row[start].style {
				continue
			}
			var run strings.Builder
			for _, cl := range row[start:x] {
				run.WriteRune(cl.r)
			}
			b.WriteString(row[start].style.lipgloss().Render(run.String()))
			start = x
		}
		lines[y] = b.String()
	}
	return strings.Join(lines, "\n")
}
