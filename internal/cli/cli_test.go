package cli

import (
	"bytes"
	"context"
	"math/rand"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"noter/internal/notes/models"
	"noter/internal/storage"
)

var fixedNow = time.Date(2024, 7, 5, 9, 30, 0, 0, time.UTC)

type testEnv struct {
	Env
	out *bytes.Buffer
	err *bytes.Buffer
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	dir := t.TempDir()
	s, err := storage.Open(storage.BackendFile, dir)
	if err != nil {
		t.Fatalf("storage.Open: %v", err)
	}

	te := &testEnv{out: &bytes.Buffer{}, err: &bytes.Buffer{}}
	te.Env = Env{
		Store:     s,
		BackupDir: filepath.Join(dir, "backups"),
		Now:       func() time.Time { return fixedNow },
		Random:    rand.New(rand.NewSource(1)),
		Out:       te.out,
		Err:       te.err,
	}
	return te
}

func (te *testEnv) run(args ...string) int {
	te.out.Reset()
	te.err.Reset()
	return Run(args, te.Env)
}

func (te *testEnv) saved(t *testing.T) []models.Note {
	t.Helper()
	notes, err := storage.LoadNotes(context.Background(), te.Store, fixedNow)
	if err != nil {
		t.Fatalf("LoadNotes: %v", err)
	}
	return notes
}

func TestAddAndList(t *testing.T) {
	te := newTestEnv(t)

	if code := te.run("add", "-s", "Groceries", "milk", "and", "eggs"); code != 0 {
		t.Fatalf("expected exit 0, got %d: %s", code, te.err.String())
	}
	if !strings.Contains(te.out.String(), "Added: Groceries") {
		t.Errorf("unexpected output %q", te.out.String())
	}

	notes := te.saved(t)
	if len(notes) != 1 {
		t.Fatalf("expected 1 saved note, got %d", len(notes))
	}
	n := notes[0]
	if n.Subject != "Groceries" || n.Content[0].Value != "milk and eggs" {
		t.Errorf("unexpected note %+v", n)
	}
	if n.Width != models.DefaultWidth || n.Height != models.DefaultHeight {
		t.Errorf("expected default size, got %vx%v", n.Width, n.Height)
	}
	if n.CreatedAt != fixedNow.UnixMilli() {
		t.Errorf("expected createdAt %d, got %d", fixedNow.UnixMilli(), n.CreatedAt)
	}

	if code := te.run("list"); code != 0 {
		t.Fatalf("expected exit 0, got %d", code)
	}
	out := te.out.String()
	if !strings.Contains(out, "Groceries") || !strings.Contains(out, "milk and eggs") || !strings.Contains(out, "1 note(s)") {
		t.Errorf("unexpected list output %q", out)
	}
}

func TestAddRequiresText(t *testing.T) {
	te := newTestEnv(t)
	if code := te.run("add"); code != 1 {
		t.Errorf("expected exit 1, got %d", code)
	}
}

func TestListEmpty(t *testing.T) {
	te := newTestEnv(t)
	te.run("list")
	if !strings.Contains(te.out.String(), "No notes found.") {
		t.Errorf("unexpected output %q", te.out.String())
	}
}

func TestDeleteByPrefix(t *testing.T) {
	te := newTestEnv(t)
	te.run("add", "first")
	te.run("add", "second")

	notes := te.saved(t)
	if code := te.run("delete", notes[0].ID[:8]); code != 0 {
		t.Fatalf("expected exit 0, got %d: %s", code, te.err.String())
	}

	left := te.saved(t)
	if len(left) != 1 || left[0].ID != notes[1].ID {
		t.Errorf("expected only the second note left, got %+v", left)
	}

	if code := te.run("delete", "zzzz"); code != 1 {
		t.Errorf("expected exit 1 for unknown id, got %d", code)
	}
}

func TestExportImport(t *testing.T) {
	te := newTestEnv(t)
	te.run("add", "-s", "keep", "me")

	if code := te.run("export"); code != 0 {
		t.Fatalf("expected exit 0, got %d: %s", code, te.err.String())
	}
	path := filepath.Join(te.BackupDir, "noter_backup_05_07_24.json")
	if _, err := os.Stat(path); err != nil {
		t.Fatalf("expected backup at %s: %v", path, err)
	}

	other := newTestEnv(t)
	if code := other.run("import", path); code != 0 {
		t.Fatalf("expected exit 0, got %d: %s", code, other.err.String())
	}
	if !strings.Contains(other.out.String(), "Successfully loaded 1 note(s).") {
		t.Errorf("unexpected output %q", other.out.String())
	}
	notes := other.saved(t)
	if len(notes) != 1 || notes[0].Subject != "keep" {
		t.Errorf("expected imported note, got %+v", notes)
	}
}

func TestImportRejectsInvalidFile(t *testing.T) {
	te := newTestEnv(t)
	te.run("add", "existing")

	bad := filepath.Join(t.TempDir(), "bad.json")
	os.WriteFile(bad, []byte(`{"notes":[]}`), 0644)

	if code := te.run("import", bad); code != 1 {
		t.Errorf("expected exit 1, got %d", code)
	}
	if !strings.Contains(te.err.String(), "Failed to load notes") {
		t.Errorf("unexpected error output %q", te.err.String())
	}
	if len(te.saved(t)) != 1 {
		t.Error("expected board untouched")
	}
}

func TestMarkdownAndSnapshot(t *testing.T) {
	te := newTestEnv(t)
	te.run("add", "-s", "Plan", "# Title\n\nbody")

	dir := t.TempDir()
	if code := te.run("markdown", "-dir", dir); code != 0 {
		t.Fatalf("expected exit 0, got %d: %s", code, te.err.String())
	}
	files, _ := filepath.Glob(filepath.Join(dir, "*.md"))
	if len(files) != 1 {
		t.Errorf("expected 1 markdown file, got %d", len(files))
	}

	png := filepath.Join(dir, "board.png")
	if code := te.run("snapshot", png); code != 0 {
		t.Fatalf("expected exit 0, got %d: %s", code, te.err.String())
	}
	if info, err := os.Stat(png); err != nil || info.Size() == 0 {
		t.Errorf("expected PNG written at %s", png)
	}
}

func TestMarkdownImportRestoresBoard(t *testing.T) {
	te := newTestEnv(t)
	te.run("add", "-s", "Plan", "body")
	te.run("add", "-s", "Shop", "milk")
	before := te.saved(t)

	dir := t.TempDir()
	if code := te.run("markdown", "-dir", dir); code != 0 {
		t.Fatalf("expected exit 0, got %d: %s", code, te.err.String())
	}
	te.run("delete", before[0].ID)

	if code := te.run("import-md", dir); code != 0 {
		t.Fatalf("expected exit 0, got %d: %s", code, te.err.String())
	}
	after := te.saved(t)
	if len(after) != 2 {
		t.Fatalf("expected 2 notes, got %d", len(after))
	}
	for i := range before {
		if after[i].ID != before[i].ID || after[i].Subject != before[i].Subject {
			t.Errorf("note %d: expected %s %q, got %s %q", i, before[i].ID, before[i].Subject, after[i].ID, after[i].Subject)
		}
	}

	if code := te.run("import-md"); code != 1 {
		t.Errorf("expected exit 1 without a directory, got %d", code)
	}
}

func TestUnknownCommand(t *testing.T) {
	te := newTestEnv(t)
	if code := te.run("frobnicate"); code != 1 {
		t.Errorf("expected exit 1, got %d", code)
	}
	if code := te.run("help"); code != 0 {
		t.Errorf("expected exit 0 for help, got %d", code)
	}
}

func TestTitle(t *testing.T) {
	tests := []struct {
		name string
		note models.Note
		want string
	}{
		{"subject", models.Note{Subject: "Hi", Content: []models.ContentItem{models.NewText("1", "body")}}, "Hi"},
		{"first text line", models.Note{Content: []models.ContentItem{models.NewText("1", "one\ntwo")}}, "one"},
		{"checkbox", models.Note{Content: []models.ContentItem{models.NewCheckbox("1", "task", false)}}, "task"},
		{"empty", models.Note{}, "(untitled)"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := title(tt.note); got != tt.want {
				t.Errorf("expected %q, got %q", tt.want, got)
			}
		})
	}
}
