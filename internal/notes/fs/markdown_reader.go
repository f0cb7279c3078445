package fs

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"noter/internal/notes/models"

	"github.com/google/uuid"
	"gopkg.in/yaml.v3"
)

var (
	orderPrefix  = regexp.MustCompile(`^\d{3}_`)
	checkboxLine = regexp.MustCompile(`^- \[([ xX])\] ?(.*)$`)
	imageLine    = regexp.MustCompile(`^!\[[^\]]*\]\((.+)\)$`)
)

type markdownFrontmatter struct {
	ID      string   `yaml:"id"`
	Color   string   `yaml:"color"`
	X       *float64 `yaml:"x"`
	Y       *float64 `yaml:"y"`
	Width   *float64 `yaml:"width"`
	Height  *float64 `yaml:"height"`
	Created string   `yaml:"created"`
	Updated string   `yaml:"updated"`
}

// ReadMarkdownNote parses a markdown note as written by WriteMarkdownNote.
// Plain markdown files without frontmatter are accepted too; anything the
// file does not say gets the defaults of a new note.
func ReadMarkdownNote(path string, now time.Time) (models.Note, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return models.Note{}, err
	}

	frontmatter, body := splitFrontmatter(content)
	var fm markdownFrontmatter
	if frontmatter != nil {
		if err := yaml.Unmarshal(frontmatter, &fm); err != nil {
			return models.Note{}, fmt.Errorf("%w: %s: %v", ErrInvalidImport, filepath.Base(path), err)
		}
	}

	n := models.Note{
		ID:     fm.ID,
		X:      valueOr(fm.X, 100),
		Y:      valueOr(fm.Y, 150),
		Width:  valueOr(fm.Width, models.DefaultWidth),
		Height: valueOr(fm.Height, models.DefaultHeight),
		Color:  fm.Color,
	}
	if n.ID == "" {
		n.ID = uuid.NewString()
	}
	if n.Color == "" {
		n.Color = models.Palette[0]
	}
	if n.Width <= 0 || n.Height <= 0 {
		return models.Note{}, fmt.Errorf("%w: %s: non-positive size", ErrInvalidImport, filepath.Base(path))
	}
	n.CreatedAt = parseStamp(fm.Created, now)
	n.UpdatedAt = parseStamp(fm.Updated, now)

	n.Subject, n.Content = parseMarkdownBody(body)
	if n.Subject == "" && frontmatter == nil {
		n.Subject = titleFromFilename(filepath.Base(path))
	}
	return n, nil
}

// ReadMarkdownDir reads every .md file in dir, in file name order, so a
// directory written by ExportMarkdown comes back in the same z-order
func ReadMarkdownDir(dir string, now time.Time) ([]models.Note, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}

	var notes []models.Note
	seen := make(map[string]bool)
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".md") {
			continue
		}
		n, err := ReadMarkdownNote(filepath.Join(dir, entry.Name()), now)
		if err != nil {
			return nil, err
		}
		if seen[n.ID] {
			return nil, fmt.Errorf("%w: %s: duplicate id %s", ErrInvalidImport, entry.Name(), n.ID)
		}
		seen[n.ID] = true
		notes = append(notes, n)
	}
	return notes, nil
}

// splitFrontmatter returns the YAML between the leading --- fences (nil when
// there is none) and the rest of the file
func splitFrontmatter(content []byte) ([]byte, []byte) {
	lines := bytes.Split(content, []byte("\n"))
	if len(lines) == 0 || !bytes.Equal(bytes.TrimSpace(lines[0]), []byte("---")) {
		return nil, content
	}

	for i := 1; i < len(lines); i++ {
		if bytes.Equal(bytes.TrimSpace(lines[i]), []byte("---")) {
			return bytes.Join(lines[1:i], []byte("\n")), bytes.Join(lines[i+1:], []byte("\n"))
		}
	}
	return nil, content
}

// parseMarkdownBody turns the body back into blocks: a leading "# " heading is
// the subject, "- [ ]" lines are checkboxes, image lines are images and runs
// of other lines separated by blank lines are text blocks.
func parseMarkdownBody(body []byte) (string, []models.ContentItem) {
	var (
		subject string
		content = []models.ContentItem{}
		text    []string
	)

	flush := func() {
		if len(text) > 0 {
			content = append(content, models.NewText(uuid.NewString(), strings.Join(text, "\n")))
			text = nil
		}
	}

	started := false
	for _, raw := range strings.Split(string(body), "\n") {
		line := strings.TrimRight(raw, " \r")

		if !started {
			if line == "" {
				continue
			}
			started = true
			if heading, ok := strings.CutPrefix(line, "# "); ok {
				subject = strings.TrimSpace(heading)
				continue
			}
		}

		if m := checkboxLine.FindStringSubmatch(line); m != nil {
			flush()
			content = append(content, models.NewCheckbox(uuid.NewString(), m[2], m[1] != " "))
			continue
		}
		if m := imageLine.FindStringSubmatch(line); m != nil {
			flush()
			content = append(content, models.NewImage(uuid.NewString(), m[1]))
			continue
		}
		if line == "" {
			flush()
			continue
		}
		text = append(text, line)
	}
	flush()

	return subject, content
}

func titleFromFilename(filename string) string {
	name := strings.TrimSuffix(filename, ".md")
	name = orderPrefix.ReplaceAllString(name, "")
	name = strings.ReplaceAll(name, "-", " ")
	name = strings.ReplaceAll(name, "_", " ")
	if name == "" {
		return "Note"
	}
	return name
}

func valueOr(v *float64, fallback float64) float64 {
	if v == nil {
		return fallback
	}
	return *v
}

func parseStamp(s string, now time.Time) int64 {
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t.UnixMilli()
	}
	return now.UnixMilli()
}
