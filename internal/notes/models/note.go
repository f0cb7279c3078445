package models

import "errors"

const (
	MinWidth  = 125.0
	MinHeight = 150.0

	DefaultWidth  = 250.0
	DefaultHeight = 200.0
)

// ErrNoteNotFound is returned when an operation names an id the collection does not hold
var ErrNoteNotFound = errors.New("note not found")

// Palette is the fixed set of note background colors
var Palette = []string{
	"#fef68a", // yellow
	"#ffd4a3", // orange
	"#ffb3ba", // pink
	"#bae1ff", // blue
	"#baffc9", // green
	"#e0bbe4", // purple
}

// Note is the persisted unit of content placed on the board
type Note struct {
	ID        string        `json:"id"`
	Subject   string        `json:"subject,omitempty"`
	Content   []ContentItem `json:"content"`
	X         float64       `json:"x"`
	Y         float64       `json:"y"`
	Width     float64       `json:"width"`
	Height    float64       `json:"height"`
	Color     string        `json:"color"`
	CreatedAt int64         `json:"createdAt"` // ms since epoch
	UpdatedAt int64         `json:"updatedAt"` // ms since epoch
}

// Clone returns a deep copy so callers can never alias the content slice
func (n Note) Clone() Note {
	out := n
	if n.Content != nil {
		out.Content = make([]ContentItem, len(n.Content))
		copy(out.Content, n.Content)
	}
	return out
}

// PaletteIndex returns the position of the note's color in Palette, or -1
func (n Note) PaletteIndex() int {
	for i, c := range Palette {
		if c == n.Color {
			return i
		}
	}
	return -1
}

// PlainText joins every text and checkbox block, one per line
func (n Note) PlainText() string {
	var out string
	for i, item := range n.Content {
		if i > 0 {
			out += "\n"
		}
		switch item.Type {
		case ContentText:
			out += item.Value
		case ContentCheckbox:
			if item.Checked {
				out += "[x] " + item.Text
			} else {
				out += "[ ] " + item.Text
			}
		case ContentImage:
			out += "[image]"
		}
	}
	return out
}
