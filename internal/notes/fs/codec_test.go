package fs

import (
	"errors"
	"image/png"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
	"time"

	"noter/internal/notes/models"
)

var testNow = time.UnixMilli(1_717_171_717_000)

func sampleNotes() []models.Note {
	return []models.Note{
		{
			ID:      "11111111-1111-4111-8111-111111111111",
			Subject: "Groceries",
			Content: []models.ContentItem{
				models.NewText("t1", "for the weekend"),
				models.NewCheckbox("c1", "milk", true),
				models.NewCheckbox("c2", "eggs", false),
			},
			X: -125, Y: 40.5, Width: 250, Height: 200,
			Color:     models.Palette[2],
			CreatedAt: 1_700_000_000_000,
			UpdatedAt: 1_700_000_100_000,
		},
		{
			ID:        "22222222-2222-4222-8222-222222222222",
			Content:   []models.ContentItem{models.NewImage("i1", "data:image/png;base64,AAAA")},
			X:         300, Y: 150, Width: 125, Height: 150,
			Color:     models.Palette[0],
			CreatedAt: 1_700_000_000_001,
			UpdatedAt: 1_700_000_000_001,
		},
	}
}

func TestRoundTrip(t *testing.T) {
	original := sampleNotes()

	data, err := EncodeNotes(original, true)
	if err != nil {
		t.Fatalf("encode error: %v", err)
	}

	loaded, err := DecodeNotes(data, testNow)
	if err != nil {
		t.Fatalf("decode error: %v", err)
	}

	if !reflect.DeepEqual(loaded, original) {
		t.Errorf("round trip mismatch\nexpected %+v\ngot      %+v", original, loaded)
	}
}

func TestEncodeNotes_EmptyBoard(t *testing.T) {
	data, err := EncodeNotes(nil, false)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if string(data) != "[]" {
		t.Errorf("expected [], got %s", data)
	}
}

func TestDecodeNotes_Defaults(t *testing.T) {
	data := []byte(`[{"id":"a","x":1,"y":2,"width":250,"height":200}]`)

	notes, err := DecodeNotes(data, testNow)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	n := notes[0]
	if n.Content == nil || len(n.Content) != 0 {
		t.Errorf("expected empty content, got %#v", n.Content)
	}
	if n.Color != models.Palette[0] {
		t.Errorf("expected default color, got %q", n.Color)
	}
	if n.CreatedAt != testNow.UnixMilli() || n.UpdatedAt != testNow.UnixMilli() {
		t.Errorf("expected timestamps defaulted to now, got %d/%d", n.CreatedAt, n.UpdatedAt)
	}
}

func TestDecodeNotes_LegacyMessage(t *testing.T) {
	data := []byte(`[{"id":"a","message":"old style","x":0,"y":0,"width":250,"height":200,"color":"#fef68a"}]`)

	notes, err := DecodeNotes(data, testNow)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(notes[0].Content) != 1 || notes[0].Content[0].Value != "old style" {
		t.Errorf("expected message converted to a text block, got %+v", notes[0].Content)
	}
}

func TestDecodeNotes_IgnoresUnknownFields(t *testing.T) {
	data := []byte(`[{"id":"a","x":0,"y":0,"width":250,"height":200,"pinned":true}]`)
	if _, err := DecodeNotes(data, testNow); err != nil {
		t.Errorf("expected unknown field to be ignored, got %v", err)
	}
}

func TestDecodeNotes_Rejects(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{"object", `{"id":"a"}`},
		{"garbage", `not json`},
		{"empty", ``},
		{"null element", `[null]`},
		{"missing id", `[{"x":0,"y":0,"width":250,"height":200}]`},
		{"missing position", `[{"id":"a","width":250,"height":200}]`},
		{"missing size", `[{"id":"a","x":0,"y":0}]`},
		{"zero width", `[{"id":"a","x":0,"y":0,"width":0,"height":200}]`},
		{"bad content", `[{"id":"a","x":0,"y":0,"width":250,"height":200,"content":[{"type":"audio","id":"z"}]}]`},
		{"duplicate ids", `[{"id":"a","x":0,"y":0,"width":250,"height":200},{"id":"a","x":0,"y":0,"width":250,"height":200}]`},
		{"one bad among good", `[{"id":"a","x":0,"y":0,"width":250,"height":200},{"id":"b"}]`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			notes, err := DecodeNotes([]byte(tt.data), testNow)
			if !errors.Is(err, ErrInvalidImport) {
				t.Errorf("expected ErrInvalidImport, got %v", err)
			}
			if notes != nil {
				t.Errorf("expected no partial result, got %d notes", len(notes))
			}
		})
	}
}

func TestBackupFilename(t *testing.T) {
	now := time.Date(2026, time.March, 7, 10, 0, 0, 0, time.UTC)
	if got := BackupFilename(now); got != "noter_backup_07_03_26.json" {
		t.Errorf("expected noter_backup_07_03_26.json, got %q", got)
	}
}

func TestExportImportFile(t *testing.T) {
	dir := t.TempDir()
	original := sampleNotes()

	path, err := ExportFile(dir, original, testNow)
	if err != nil {
		t.Fatalf("export error: %v", err)
	}
	if filepath.Dir(path) != dir {
		t.Errorf("expected export inside %s, got %s", dir, path)
	}

	loaded, err := ImportFile(path, testNow)
	if err != nil {
		t.Fatalf("import error: %v", err)
	}
	if !reflect.DeepEqual(loaded, original) {
		t.Error("expected file round trip to be lossless")
	}
}

func TestExportMarkdown(t *testing.T) {
	dir := t.TempDir()

	paths, err := ExportMarkdown(dir, sampleNotes())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(paths) != 2 {
		t.Fatalf("expected 2 files, got %d", len(paths))
	}

	content, _ := os.ReadFile(paths[0])
	text := string(content)
	for _, want := range []string{"---\n", "id: 11111111-1111-4111-8111-111111111111", "# Groceries", "- [x] milk", "- [ ] eggs"} {
		if !strings.Contains(text, want) {
			t.Errorf("expected markdown to contain %q, got:\n%s", want, text)
		}
	}
}

func TestWriteSnapshot(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "board.png")

	if err := WriteSnapshot(path, sampleNotes()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	info, err := os.Stat(path)
	if err != nil || info.Size() == 0 {
		t.Errorf("expected non-empty png, got %v", err)
	}

	if err := WriteSnapshot(path, nil); err == nil {
		t.Error("expected error for empty board")
	}
}

func TestWriteSnapshot_FarNoteIsScaledDown(t *testing.T) {
	path := filepath.Join(t.TempDir(), "board.png")
	notes := sampleNotes()
	notes[0].X = -1e7

	if err := WriteSnapshot(path, notes); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	f, err := os.Open(path)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer f.Close()
	cfg, err := png.DecodeConfig(f)
	if err != nil {
		t.Fatalf("DecodeConfig: %v", err)
	}
	if cfg.Width > maxSnapshotSide || cfg.Height > maxSnapshotSide {
		t.Errorf("expected at most %v px per side, got %dx%d", maxSnapshotSide, cfg.Width, cfg.Height)
	}
}
