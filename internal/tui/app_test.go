package tui

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"noter/internal/config"
	"noter/internal/notes/models"
	"noter/internal/prefs"
	"noter/internal/storage"
	"noter/internal/tui/messages"
	"noter/internal/tui/noteboard"
)

func newTestApp(t *testing.T, notes ...models.Note) (AppModel, storage.Store) {
	t.Helper()

	dir := t.TempDir()
	store, err := storage.NewFileStore(filepath.Join(dir, "noter.json"))
	if err != nil {
		t.Fatalf("NewFileStore: %v", err)
	}
	mgr, err := prefs.Load(context.Background(), store)
	if err != nil {
		t.Fatalf("prefs.Load: %v", err)
	}

	cfg := &config.Config{DataDir: dir, BackupDir: dir, Storage: storage.BackendFile, FrameRate: 60}
	m := NewAppModel(cfg, store, mgr, notes)
	m = update(t, m, tea.WindowSizeMsg{Width: 80, Height: 32})
	return m, store
}

func update(t *testing.T, m AppModel, msg tea.Msg) AppModel {
	t.Helper()
	next, _ := m.Update(msg)
	return next.(AppModel)
}

func saved(t *testing.T, store storage.Store) []models.Note {
	t.Helper()
	notes, err := storage.LoadNotes(context.Background(), store, time.Now())
	if err != nil {
		t.Fatalf("LoadNotes: %v", err)
	}
	return notes
}

func TestAddedNoteIsSaved(t *testing.T) {
	m, store := newTestApp(t)

	update(t, m, noteboard.AddNoteResultMsg{Subject: "Groceries", Message: "eggs"})

	notes := saved(t, store)
	if len(notes) != 1 {
		t.Fatalf("expected 1 saved note, got %d", len(notes))
	}
	if notes[0].Subject != "Groceries" {
		t.Errorf("expected subject Groceries, got %q", notes[0].Subject)
	}
}

func TestFramesDriveDragCommits(t *testing.T) {
	note := models.Note{
		ID:      "a",
		Content: []models.ContentItem{},
		X:       100, Y: 100,
		Width: 250, Height: 200,
		Color: models.Palette[0],
	}
	m, store := newTestApp(t, note)

	m = update(t, m, tea.MouseMsg{X: 12, Y: 6, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft})
	m = update(t, m, tea.MouseMsg{X: 22, Y: 10, Action: tea.MouseActionMotion, Button: tea.MouseButtonLeft})
	if !m.ticking {
		t.Fatal("expected a frame tick while dragging")
	}

	// the move is only committed on the next frame
	if notes := saved(t, store); len(notes) != 0 {
		t.Errorf("expected nothing saved before the frame, got %d notes", len(notes))
	}

	m = update(t, m, messages.FrameMsg(time.Now()))
	got := saved(t, store)[0]
	if got.X != 200 || got.Y != 200 {
		t.Errorf("expected (200, 200) after the frame, got (%v, %v)", got.X, got.Y)
	}
	if !m.ticking {
		t.Error("expected ticking to continue while the drag is active")
	}
}

func TestToastExpiry(t *testing.T) {
	m, _ := newTestApp(t)

	m = update(t, m, messages.ToastMsg{Title: "one"})
	m = update(t, m, messages.ToastMsg{Title: "two"})

	m = update(t, m, messages.ToastExpiredMsg{Seq: 1})
	if m.toast == nil || m.toast.Title != "two" {
		t.Fatalf("expected the newer toast to survive a stale expiry, got %+v", m.toast)
	}

	m = update(t, m, messages.ToastExpiredMsg{Seq: 2})
	if m.toast != nil {
		t.Errorf("expected toast cleared, got %+v", m.toast)
	}
}

func TestGlobalKeys(t *testing.T) {
	m, _ := newTestApp(t)

	m = update(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("?")})
	if !m.showHelp {
		t.Fatal("expected help shown")
	}
	m = update(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("x")})
	if m.showHelp {
		t.Fatal("expected help dismissed by any key")
	}

	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("q")})
	if cmd == nil {
		t.Fatal("expected a quit command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("expected tea.QuitMsg")
	}
}

func TestQuitKeyTypedIntoDialog(t *testing.T) {
	m, _ := newTestApp(t)

	m = update(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("n")})
	m = update(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("q")})
	if !m.board.Capturing() {
		t.Error("expected q to be typed into the dialog, not quit")
	}
}
