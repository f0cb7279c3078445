package noteboard

import (
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"noter/internal/geometry"
	"noter/internal/notes/models"
	"noter/internal/notes/operations"
)

// One terminal cell covers CellWidth x CellHeight board units
const (
	CellWidth  = 10.0
	CellHeight = 25.0
)

// Smallest board, in board units; larger terminals get a larger board
const (
	minBoardWidth  = 1400.0
	minBoardHeight = 900.0
)

// headerRows is the number of screen rows above the board window
const headerRows = 1

// cellBox is a note's footprint on screen, in cells
type cellBox struct {
	col, row   int
	cols, rows int
}

func (b cellBox) contains(col, row int) bool {
	return col >= b.col && col < b.col+b.cols && row >= b.row && row < b.row+b.rows
}

func (b cellBox) isHandle(col, row int) bool {
	return col == b.col+b.cols-1 && row == b.row+b.rows-1
}

// clientPoint converts a screen cell to client units
func clientPoint(col, row int) geometry.Point {
	return geometry.Point{X: float64(col) * CellWidth, Y: float64(row) * CellHeight}
}

// screenCell converts a board-local point to the screen cell showing it
func screenCell(p geometry.Point, rect geometry.Rect, scroll geometry.Offset) (int, int) {
	x := p.X + rect.Left - scroll.Left
	y := p.Y + rect.Top - scroll.Top
	return int(math.Floor(x / CellWidth)), int(math.Floor(y / CellHeight))
}

// boxFor maps a note's visual rectangle to screen cells
func boxFor(r geometry.Rect, rect geometry.Rect, scroll geometry.Offset) cellBox {
	col, row := screenCell(geometry.Point{X: r.Left, Y: r.Top}, rect, scroll)
	return cellBox{
		col:  col,
		row:  row,
		cols: max(3, int(math.Round(r.Width/CellWidth))),
		rows: max(3, int(math.Round(r.Height/CellHeight))),
	}
}

// noteLine is one rendered row of a note's body
type noteLine struct {
	text     string
	itemID   string // set on the first row of a checkbox
	checkbox bool
	checked  bool
}

// layoutNote lays out a note's content inside a cols x rows body
func layoutNote(n models.Note, cols, rows int) []noteLine {
	if cols <= 0 || rows <= 0 {
		return nil
	}

	var lines []noteLine
	for _, item := range n.Content {
		switch item.Type {
		case models.ContentText:
			for _, l := range operations.MarkdownLines(item.Value) {
				for _, w := range wrap(l, cols) {
					lines = append(lines, noteLine{text: w})
				}
			}
		case models.ContentCheckbox:
			box := "☐ "
			if item.Checked {
				box = "☑ "
			}
			for i, w := range wrap(item.Text, cols-2) {
				if i == 0 {
					lines = append(lines, noteLine{text: box + w, itemID: item.ID, checkbox: true, checked: item.Checked})
					continue
				}
				lines = append(lines, noteLine{text: "  " + w})
			}
		case models.ContentImage:
			lines = append(lines, noteLine{text: imageLabel(item.URL)})
		}
	}

	if len(lines) > rows {
		lines = lines[:rows]
		lines[rows-1] = noteLine{text: "…"}
	}
	return lines
}

// wrap word-wraps s to width columns
func wrap(s string, width int) []string {
	if width <= 0 {
		return nil
	}
	if s == "" {
		return []string{""}
	}
	rendered := lipgloss.NewStyle().Width(width).Render(s)
	out := strings.Split(rendered, "\n")
	for i := range out {
		out[i] = strings.TrimRight(out[i], " ")
	}
	return out
}

// imageLabel names an image block by its media type
func imageLabel(url string) string {
	if rest, ok := strings.CutPrefix(url, "data:"); ok {
		if mime, _, found := strings.Cut(rest, ";"); found && mime != "" {
			return "▣ " + mime
		}
	}
	return "▣ image"
}
