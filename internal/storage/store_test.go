package storage

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"noter/internal/notes/models"
)

func openBackends(t *testing.T) map[string]Store {
	t.Helper()

	stores := make(map[string]Store)
	for _, backend := range []string{BackendFile, BackendSQLite} {
		s, err := Open(backend, t.TempDir())
		if err != nil {
			t.Fatalf("Open(%s): %v", backend, err)
		}
		t.Cleanup(func() { s.Close() })
		stores[backend] = s
	}
	return stores
}

func TestStoreGetSetDelete(t *testing.T) {
	ctx := context.Background()

	for name, s := range openBackends(t) {
		t.Run(name, func(t *testing.T) {
			if _, ok, err := s.Get(ctx, KeyDarkMode); err != nil || ok {
				t.Fatalf("expected missing key, got ok=%v err=%v", ok, err)
			}

			if err := s.Set(ctx, KeyDarkMode, "true"); err != nil {
				t.Fatalf("Set: %v", err)
			}
			if err := s.Set(ctx, KeyDarkMode, "false"); err != nil {
				t.Fatalf("Set: %v", err)
			}

			v, ok, err := s.Get(ctx, KeyDarkMode)
			if err != nil || !ok {
				t.Fatalf("expected key present, got ok=%v err=%v", ok, err)
			}
			if v != "false" {
				t.Errorf("expected %q, got %q", "false", v)
			}

			if err := s.Delete(ctx, KeyDarkMode); err != nil {
				t.Fatalf("Delete: %v", err)
			}
			if _, ok, _ := s.Get(ctx, KeyDarkMode); ok {
				t.Error("expected key deleted")
			}
		})
	}
}

func TestFileStorePersists(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "data", "noter.json")

	s, err := NewFileStore(path)
	if err != nil {
		t.Fatalf("NewFileStore: %v", err)
	}
	if err := s.Set(ctx, KeySwimlanesCount, "3"); err != nil {
		t.Fatalf("Set: %v", err)
	}

	reopened, err := NewFileStore(path)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	v, ok, _ := reopened.Get(ctx, KeySwimlanesCount)
	if !ok || v != "3" {
		t.Errorf("expected %q, got %q (ok=%v)", "3", v, ok)
	}
	if _, err := os.Stat(path + ".tmp"); !os.IsNotExist(err) {
		t.Error("expected temp file to be renamed away")
	}
}

func TestSQLiteStorePersists(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "noter.db")

	s, err := NewSQLiteStore(path)
	if err != nil {
		t.Fatalf("NewSQLiteStore: %v", err)
	}
	if err := s.Set(ctx, KeySwimlaneLabels, `["a","b"]`); err != nil {
		t.Fatalf("Set: %v", err)
	}
	s.Close()

	reopened, err := NewSQLiteStore(path)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer reopened.Close()

	v, ok, _ := reopened.Get(ctx, KeySwimlaneLabels)
	if !ok || v != `["a","b"]` {
		t.Errorf("expected labels, got %q (ok=%v)", v, ok)
	}
}

func TestOpenUnknownBackend(t *testing.T) {
	_, err := Open("redis", t.TempDir())
	if !errors.Is(err, ErrUnknownBackend) {
		t.Errorf("expected ErrUnknownBackend, got %v", err)
	}
}

func TestNotesRoundTrip(t *testing.T) {
	ctx := context.Background()
	now := time.UnixMilli(1700000000000)

	notes := []models.Note{{
		ID:      "n1",
		Subject: "todo",
		Content: []models.ContentItem{models.NewCheckbox("c1", "ship", true)},
		X:       10, Y: 20, Width: 250, Height: 200,
		Color:     models.Palette[2],
		CreatedAt: 1, UpdatedAt: 2,
	}}

	for name, s := range openBackends(t) {
		t.Run(name, func(t *testing.T) {
			empty, err := LoadNotes(ctx, s, now)
			if err != nil {
				t.Fatalf("LoadNotes: %v", err)
			}
			if len(empty) != 0 {
				t.Errorf("expected empty board, got %d notes", len(empty))
			}

			if err := SaveNotes(ctx, s, notes); err != nil {
				t.Fatalf("SaveNotes: %v", err)
			}
			got, err := LoadNotes(ctx, s, now)
			if err != nil {
				t.Fatalf("LoadNotes: %v", err)
			}
			if len(got) != 1 || got[0].ID != "n1" || got[0].Subject != "todo" || !got[0].Content[0].Checked {
				t.Errorf("expected saved note back, got %+v", got)
			}
		})
	}
}

func TestCorruptNotesStartEmpty(t *testing.T) {
	ctx := context.Background()
	s, err := NewFileStore(filepath.Join(t.TempDir(), "noter.json"))
	if err != nil {
		t.Fatalf("NewFileStore: %v", err)
	}
	if err := s.Set(ctx, KeyNotes, `{"not":"an array"}`); err != nil {
		t.Fatalf("Set: %v", err)
	}

	got, err := LoadNotes(ctx, s, time.Now())
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if len(got) != 0 {
		t.Errorf("expected empty board, got %d notes", len(got))
	}
}
