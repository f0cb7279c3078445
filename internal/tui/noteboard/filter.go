package noteboard

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/sahilm/fuzzy"

	"noter/internal/notes/models"
	"noter/internal/notes/operations"
)

// filter dims notes that do not fuzzy-match the query
type filter struct {
	input   textinput.Model
	typing  bool
	query   string
	matches map[string]bool
}

func newFilter() filter {
	ti := textinput.New()
	ti.Placeholder = "Filter notes..."
	ti.CharLimit = 100
	ti.Width = 30
	return filter{input: ti}
}

func (f filter) active() bool {
	return f.query != ""
}

// dimmed reports whether a note is filtered out
func (f filter) dimmed(id string) bool {
	return f.active() && !f.matches[id]
}

func (f *filter) clear() {
	f.input.SetValue("")
	f.input.Blur()
	f.query = ""
	f.typing = false
	f.matches = nil
}

// apply recomputes the matching notes for the current query
func (f *filter) apply(notes []models.Note) {
	f.query = strings.TrimSpace(f.input.Value())
	if f.query == "" {
		f.matches = nil
		return
	}

	targets := make([]string, len(notes))
	for i, n := range notes {
		targets[i] = searchText(n)
	}
	f.matches = make(map[string]bool)
	for _, match := range fuzzy.Find(f.query, targets) {
		f.matches[notes[match.Index].ID] = true
	}
}

// searchText is everything a note shows, flattened to one line
func searchText(n models.Note) string {
	parts := []string{n.Subject}
	for _, item := range n.Content {
		switch item.Type {
		case models.ContentText:
			parts = append(parts, operations.MarkdownLines(item.Value)...)
		case models.ContentCheckbox:
			parts = append(parts, item.Text)
		}
	}
	return strings.Join(parts, " ")
}
