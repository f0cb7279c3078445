package fs

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"noter/internal/notes/models"

	"gopkg.in/yaml.v3"
)

// WriteMarkdownNote writes a note as a markdown file with YAML frontmatter
// carrying its identity, color and geometry
func WriteMarkdownNote(n models.Note, path string) error {
	var buf bytes.Buffer

	buf.WriteString("---\n")
	frontmatter := struct {
		ID      string  `yaml:"id"`
		Color   string  `yaml:"color"`
		X       float64 `yaml:"x"`
		Y       float64 `yaml:"y"`
		Width   float64 `yaml:"width"`
		Height  float64 `yaml:"height"`
		Created string  `yaml:"created"`
		Updated string  `yaml:"updated"`
	}{
		ID:      n.ID,
		Color:   n.Color,
		X:       n.X,
		Y:       n.Y,
		Width:   n.Width,
		Height:  n.Height,
		Created: time.UnixMilli(n.CreatedAt).UTC().Format(time.RFC3339),
		Updated: time.UnixMilli(n.UpdatedAt).UTC().Format(time.RFC3339),
	}

	yamlBytes, err := yaml.Marshal(frontmatter)
	if err != nil {
		return err
	}
	buf.Write(yamlBytes)
	buf.WriteString("---\n\n")

	if n.Subject != "" {
		fmt.Fprintf(&buf, "# %s\n\n", n.Subject)
	}

	for _, item := range n.Content {
		switch item.Type {
		case models.ContentText:
			buf.WriteString(item.Value)
			buf.WriteString("\n\n")
		case models.ContentCheckbox:
			mark := " "
			if item.Checked {
				mark = "x"
			}
			fmt.Fprintf(&buf, "- [%s] %s\n", mark, item.Text)
		case models.ContentImage:
			fmt.Fprintf(&buf, "![image](%s)\n\n", item.URL)
		}
	}

	return os.WriteFile(path, buf.Bytes(), 0644)
}

// ExportMarkdown writes one markdown file per note into dir, named by z-order
// position so the listing keeps the board's stacking order
func ExportMarkdown(dir string, notes []models.Note) ([]string, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, err
	}

	paths := make([]string, 0, len(notes))
	for i, n := range notes {
		path := filepath.Join(dir, fmt.Sprintf("%03d_%s.md", i+1, n.ID))
		if err := WriteMarkdownNote(n, path); err != nil {
			return paths, fmt.Errorf("write %s: %w", path, err)
		}
		paths = append(paths, path)
	}
	return paths, nil
}
