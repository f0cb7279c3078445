package interaction

import (
	"noter/internal/geometry"
	"noter/internal/notes/models"
)

// State is a note's interaction state
type State int

const (
	StateIdle State = iota
	StateDragging
	StateResizing
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateDragging:
		return "dragging"
	case StateResizing:
		return "resizing"
	default:
		return "unknown"
	}
}

// Tracker holds the interaction state of one note
type Tracker struct {
	noteID    string
	state     State
	scheduler *Scheduler

	// dragging: pointer position relative to the note's top-left corner
	dragOffset geometry.Point

	// resizing: pointer and size at the press
	resizeStart geometry.Point
	startSize   geometry.Size

	release []func()
}

func newTracker(noteID string, scheduler *Scheduler) *Tracker {
	return &Tracker{noteID: noteID, scheduler: scheduler}
}

// State returns the tracker's current state
func (t *Tracker) State() State {
	return t.state
}

func (t *Tracker) beginDrag(client geometry.Point, n models.Note, rect geometry.Rect) {
	t.state = StateDragging
	t.dragOffset = geometry.Point{
		X: client.X - rect.Left - n.X,
		Y: client.Y - rect.Top - n.Y,
	}
}

func (t *Tracker) beginResize(client geometry.Point, n models.Note) {
	t.state = StateResizing
	t.resizeStart = client
	t.startSize = geometry.Size{Width: n.Width, Height: n.Height}
}

// dragTo computes the clamped position for a pointer at client. The note may
// hang half off the left and right edges, fully off the top and half off the
// bottom.
func (t *Tracker) dragTo(client geometry.Point, n models.Note, rect geometry.Rect, scroll geometry.Offset) (models.Patch, Transform) {
	local := geometry.ToBoardLocal(client, rect, scroll)

	x := geometry.Clamp(local.X-t.dragOffset.X, -n.Width/2, rect.Width-n.Width/2)
	y := geometry.Clamp(local.Y-t.dragOffset.Y, -n.Height, rect.Height-n.Height/2)

	return models.PositionPatch(x, y), Transform{DX: x - n.X, DY: y - n.Y}
}

// resizeTo computes the new size for a pointer at client. Only minimums
// apply; there is no maximum.
func (t *Tracker) resizeTo(client geometry.Point, n models.Note) (models.Patch, Transform) {
	w := max(models.MinWidth, t.startSize.Width+client.X-t.resizeStart.X)
	h := max(models.MinHeight, t.startSize.Height+client.Y-t.resizeStart.Y)

	return models.SizePatch(w, h), Transform{DW: w - n.Width, DH: h - n.Height}
}

func (t *Tracker) hold(release ...func()) {
	t.release = append(t.release, release...)
}

func (t *Tracker) releaseListeners() {
	for _, r := range t.release {
		r()
	}
	t.release = nil
}
