package tui

import (
	"context"
	"time"

	"noter/internal/board"
	"noter/internal/config"
	"noter/internal/geometry"
	"noter/internal/interaction"
	"noter/internal/logs"
	"noter/internal/notes/collection"
	"noter/internal/notes/models"
	"noter/internal/prefs"
	"noter/internal/storage"
	"noter/internal/tui/messages"
	"noter/internal/tui/noteboard"
	"noter/internal/tui/shared"
	"noter/internal/tui/theme"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// How long a toast stays in the status bar
const toastDuration = 3 * time.Second

// statusBarHeight is the status line plus its top border
const statusBarHeight = 2

// AppModel is the root model: the board view, the status bar and the help popup
type AppModel struct {
	cfg      *config.Config
	engine   *interaction.Engine
	board    noteboard.Model
	ticking  bool // a FrameMsg is on its way
	toast    *messages.ToastMsg
	toastSeq int
	showHelp bool
	width    int
	height   int
	ready    bool
}

// NewAppModel creates the root application model over the loaded notes. Every
// committed change to the collection is written back to store.
func NewAppModel(cfg *config.Config, store storage.Store, prefsMgr *prefs.Manager, notes []models.Note) AppModel {
	notesColl := collection.New(notes, time.Now)
	notesColl.Subscribe(func(all []models.Note) {
		if err := storage.SaveNotes(context.Background(), store, all); err != nil {
			logs.Logger.Printf("Error saving notes: %v", err)
		}
	})

	clock := interaction.NewManualClock()
	view := board.NewViewport(geometry.Size{})
	engine := interaction.NewEngine(notesColl, interaction.Options{
		Board:  view,
		Frames: clock,
	})

	return AppModel{
		cfg:    cfg,
		engine: engine,
		board: noteboard.New(noteboard.Options{
			Engine:    engine,
			Viewport:  view,
			Clock:     clock,
			Prefs:     prefsMgr,
			BackupDir: cfg.BackupDir,
		}),
	}
}

func (m AppModel) Init() tea.Cmd {
	return tea.SetWindowTitle("noter")
}

func (m AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.ready = true
		m.board.SetSize(msg.Width, msg.Height-statusBarHeight)
		return m, nil

	case messages.FrameMsg:
		m.ticking = false
		m.board.Frame()
		return m, m.nextFrame()

	case messages.ToastMsg:
		m.toast = &msg
		m.toastSeq++
		seq := m.toastSeq
		return m, tea.Tick(toastDuration, func(time.Time) tea.Msg {
			return messages.ToastExpiredMsg{Seq: seq}
		})

	case messages.ToastExpiredMsg:
		if msg.Seq == m.toastSeq {
			m.toast = nil
		}
		return m, nil

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			m.engine.Cancel()
			return m, tea.Quit
		}

		// Dismiss help overlay on any key
		if m.showHelp {
			m.showHelp = false
			return m, nil
		}

		if !m.board.Capturing() {
			switch msg.String() {
			case "q":
				m.engine.Cancel()
				return m, tea.Quit
			case "?":
				m.showHelp = true
				return m, nil
			}
		}
	}

	m.board, cmd = m.board.Update(msg)
	return m, tea.Batch(cmd, m.nextFrame())
}

// nextFrame keeps exactly one frame tick outstanding while the board animates
func (m *AppModel) nextFrame() tea.Cmd {
	if m.ticking || !m.board.Animating() {
		return nil
	}
	m.ticking = true
	return messages.NextFrame(m.cfg.FrameRate)
}

func (m AppModel) View() string {
	if !m.ready {
		return "Loading..."
	}

	if m.showHelp {
		return shared.RenderHelpPopup("Noter - Keyboard Shortcuts", helpSections, m.width, m.height)
	}

	if m.height <= statusBarHeight+3 {
		return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center,
			theme.Warn.Render("Terminal too small"))
	}

	statusText := theme.HelpHint.Render("n:new | e:edit | d:delete | /:filter | s:save o:load | w:lanes T:theme | ?:help | q:quit")
	if m.toast != nil {
		style := theme.Ok
		if m.toast.Failed {
			style = theme.Error
		}
		statusText = style.Render(m.toast.Title)
		if m.toast.Description != "" {
			statusText += " " + theme.Muted.Render(m.toast.Description)
		}
	}

	statusBar := theme.StatusBar.Width(m.width).Render(statusText)
	return lipgloss.JoinVertical(lipgloss.Left, m.board.View(), statusBar)
}

var helpSections = []shared.HelpSection{
	{
		Title: "Mouse",
		Binds: []shared.HelpBind{
			{Key: "drag", Desc: "Move a note"},
			{Key: "double-click", Desc: "Edit a note / rename a lane"},
			{Key: "drag ◢", Desc: "Resize the note being edited"},
			{Key: "click ☐", Desc: "Toggle a checkbox"},
			{Key: "wheel", Desc: "Pan the board"},
		},
	},
	{
		Title: "Notes",
		Binds: []shared.HelpBind{
			{Key: "tab / S-tab", Desc: "Select next / previous note"},
			{Key: "n / a", Desc: "New note"},
			{Key: "e / enter", Desc: "Edit selected note"},
			{Key: "d / x", Desc: "Delete selected note"},
			{Key: "c", Desc: "Change color"},
			{Key: "f", Desc: "Bring to front"},
			{Key: "y", Desc: "Copy text to clipboard"},
			{Key: "/", Desc: "Filter notes"},
		},
	},
	{
		Title: "Editor",
		Binds: []shared.HelpBind{
			{Key: "tab", Desc: "Next field"},
			{Key: "ctrl+t / ctrl+b", Desc: "Add text block / checkbox"},
			{Key: "ctrl+g", Desc: "Add image from file"},
			{Key: "ctrl+x / ctrl+d", Desc: "Toggle / remove block"},
			{Key: "ctrl+s / esc", Desc: "Save / cancel"},
		},
	},
	{
		Title: "Board",
		Binds: []shared.HelpBind{
			{Key: "arrows / hjkl", Desc: "Pan"},
			{Key: "0", Desc: "Back to the top-left corner"},
			{Key: "w", Desc: "Cycle swimlanes"},
			{Key: "T", Desc: "Toggle dark mode"},
			{Key: "s / o", Desc: "Save backup / load notes"},
			{Key: "m / P", Desc: "Export markdown / PNG snapshot"},
			{Key: "?", Desc: "Show this help"},
			{Key: "q", Desc: "Quit"},
		},
	},
}
