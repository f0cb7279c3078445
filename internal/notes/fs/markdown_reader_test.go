package fs

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"noter/internal/notes/models"
)

func TestMarkdownRoundTrip(t *testing.T) {
	dir := t.TempDir()
	if _, err := ExportMarkdown(dir, sampleNotes()); err != nil {
		t.Fatalf("ExportMarkdown: %v", err)
	}

	notes, err := ReadMarkdownDir(dir, testNow)
	if err != nil {
		t.Fatalf("ReadMarkdownDir: %v", err)
	}
	if len(notes) != 2 {
		t.Fatalf("expected 2 notes, got %d", len(notes))
	}

	want := sampleNotes()
	if notes[0].ID != want[0].ID || notes[1].ID != want[1].ID {
		t.Errorf("expected z-order kept, got %s, %s", notes[0].ID, notes[1].ID)
	}

	n := notes[0]
	if n.Subject != "Groceries" {
		t.Errorf("expected subject %q, got %q", "Groceries", n.Subject)
	}
	if n.X != -125 || n.Y != 40.5 || n.Width != 250 || n.Height != 200 {
		t.Errorf("expected geometry kept, got %v,%v %vx%v", n.X, n.Y, n.Width, n.Height)
	}
	if n.Color != models.Palette[2] {
		t.Errorf("expected color %s, got %s", models.Palette[2], n.Color)
	}
	if n.CreatedAt != want[0].CreatedAt || n.UpdatedAt != want[0].UpdatedAt {
		t.Errorf("expected timestamps kept, got %d/%d", n.CreatedAt, n.UpdatedAt)
	}

	tests := []struct {
		typ     models.ContentType
		text    string
		checked bool
	}{
		{models.ContentText, "for the weekend", false},
		{models.ContentCheckbox, "milk", true},
		{models.ContentCheckbox, "eggs", false},
	}
	if len(n.Content) != len(tests) {
		t.Fatalf("expected %d blocks, got %d", len(tests), len(n.Content))
	}
	for i, tt := range tests {
		item := n.Content[i]
		got := item.Text
		if item.Type == models.ContentText {
			got = item.Value
		}
		if item.Type != tt.typ || got != tt.text || item.Checked != tt.checked {
			t.Errorf("block %d: expected %s %q %v, got %s %q %v", i, tt.typ, tt.text, tt.checked, item.Type, got, item.Checked)
		}
	}

	if img := notes[1].Content; len(img) != 1 || img[0].URL != "data:image/png;base64,AAAA" {
		t.Errorf("expected the image block back, got %+v", img)
	}
}

func TestReadMarkdownNote_PlainFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "shopping-list.md")
	os.WriteFile(path, []byte("buy bread\nand jam\n\n- [ ] butter\n"), 0644)

	n, err := ReadMarkdownNote(path, testNow)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if n.Subject != "shopping list" {
		t.Errorf("expected subject from file name, got %q", n.Subject)
	}
	if n.ID == "" {
		t.Error("expected a generated id")
	}
	if n.Width != models.DefaultWidth || n.Height != models.DefaultHeight {
		t.Errorf("expected default size, got %vx%v", n.Width, n.Height)
	}
	if n.CreatedAt != testNow.UnixMilli() {
		t.Errorf("expected created now, got %d", n.CreatedAt)
	}
	if len(n.Content) != 2 || n.Content[0].Value != "buy bread\nand jam" || n.Content[1].Text != "butter" {
		t.Errorf("unexpected content %+v", n.Content)
	}
}

func TestReadMarkdownNote_Rejects(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"bad yaml", "---\nx: [\n---\nbody\n"},
		{"zero width", "---\nid: a\nwidth: 0\n---\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "note.md")
			os.WriteFile(path, []byte(tt.content), 0644)

			_, err := ReadMarkdownNote(path, testNow)
			if !errors.Is(err, ErrInvalidImport) {
				t.Errorf("expected ErrInvalidImport, got %v", err)
			}
		})
	}
}
