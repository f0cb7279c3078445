package interaction

import (
	"fmt"
	"math/rand"
	"time"

	"noter/internal/board"
	"noter/internal/geometry"
	"noter/internal/logs"
	"noter/internal/notes/collection"
	"noter/internal/notes/fs"
	"noter/internal/notes/models"
	"noter/internal/notes/operations"
)

// Options configures an Engine. Zero values pick sensible defaults.
type Options struct {
	Board    board.Container
	Viewport geometry.Size
	Frames   FrameClock
	Now      func() time.Time
	Random   operations.Random
}

// Engine is the board's interaction layer. It owns the editing slot, a
// tracker per note and the document listeners of the active interaction, and
// routes every mutation through the collection.
type Engine struct {
	notes    *collection.Collection
	board    board.Container
	viewport geometry.Size
	frames   FrameClock
	now      func() time.Time
	rnd      operations.Random

	document *Document
	editing  Coordinator
	cues     *Cues
	trackers map[string]*Tracker
}

// NewEngine creates an engine over notes
func NewEngine(notes *collection.Collection, opts Options) *Engine {
	if opts.Now == nil {
		opts.Now = time.Now
	}
	if opts.Frames == nil {
		opts.Frames = NewManualClock()
	}
	if opts.Random == nil {
		opts.Random = rand.New(rand.NewSource(opts.Now().UnixNano()))
	}

	return &Engine{
		notes:    notes,
		board:    opts.Board,
		viewport: opts.Viewport,
		frames:   opts.Frames,
		now:      opts.Now,
		rnd:      opts.Random,
		document: NewDocument(),
		cues:     NewCues(opts.Now),
		trackers: make(map[string]*Tracker),
	}
}

// Notes returns the underlying collection
func (e *Engine) Notes() *collection.Collection {
	return e.notes
}

// Document returns the event target interactions listen on
func (e *Engine) Document() *Document {
	return e.document
}

// Cues returns the blink cues
func (e *Engine) Cues() *Cues {
	return e.cues
}

// SetViewport updates the size used when the board is not mounted
func (e *Engine) SetViewport(size geometry.Size) {
	e.viewport = size
}

// BoardGeometry returns the current board rectangle and scroll offset
func (e *Engine) BoardGeometry() (geometry.Rect, geometry.Offset) {
	return board.Geometry(e.board, e.viewport)
}

// AddNote creates a note on top of the board and returns it
func (e *Engine) AddNote(message, subject string) models.Note {
	n := operations.NewNote(message, subject, e.rnd, e.now())
	e.notes.Add(n)
	logs.Logger.Printf("Added note %s", n.ID)
	return n
}

// UpdateNote commits a patch through the same path interactions use
func (e *Engine) UpdateNote(id string, p models.Patch) error {
	return e.notes.Update(id, p)
}

// DeleteNote removes a note. A drag or resize in flight is dropped without
// committing, and the editing slot is released if the note held it.
func (e *Engine) DeleteNote(id string) error {
	if _, ok := e.notes.Get(id); !ok {
		return fmt.Errorf("delete %s: %w", id, models.ErrNoteNotFound)
	}

	if tr, ok := e.trackers[id]; ok {
		e.abandon(tr)
		delete(e.trackers, id)
	}
	e.editing.EditEnd(id)

	logs.Logger.Printf("Deleting note %s", id)
	return e.notes.Delete(id)
}

// ReorderToFront raises a note above all others
func (e *Engine) ReorderToFront(id string) error {
	return e.notes.ReorderToFront(id)
}

// ChangeColor gives a note a different palette color
func (e *Engine) ChangeColor(id string) error {
	n, ok := e.notes.Get(id)
	if !ok {
		return fmt.Errorf("change color %s: %w", id, models.ErrNoteNotFound)
	}
	return e.notes.Update(id, models.ColorPatch(operations.NextColor(n.Color, e.rnd)))
}

// ToggleCheckbox flips one checklist row; allowed whether or not the note is editing
func (e *Engine) ToggleCheckbox(id, itemID string) error {
	n, ok := e.notes.Get(id)
	if !ok {
		return fmt.Errorf("toggle %s: %w", id, models.ErrNoteNotFound)
	}
	p, err := operations.ToggleCheckbox(n, itemID)
	if err != nil {
		return err
	}
	return e.notes.Update(id, p)
}

// EditingID returns the note holding the editing slot, or ""
func (e *Engine) EditingID() string {
	return e.editing.Editing()
}

// RequestEditStart asks for the editing slot on behalf of id. When another
// note holds it the request is refused and the holder blinks. A drag of id
// still in flight is ended first.
func (e *Engine) RequestEditStart(id string) bool {
	if e.editing.Conflicts(id) {
		holder := e.editing.Editing()
		e.cues.Raise(holder)
		logs.Logger.Printf("Edit of %s refused: %s is editing", id, holder)
		return false
	}
	if tr, ok := e.trackers[id]; ok && tr.state != StateIdle && e.editing.Editing() != id {
		e.end(tr)
	}
	return e.editing.RequestEditStart(id)
}

// EditEnd releases the editing slot if id holds it
func (e *Engine) EditEnd(id string) {
	e.editing.EditEnd(id)
}

// State returns a note's interaction state
func (e *Engine) State(id string) State {
	if tr, ok := e.trackers[id]; ok {
		return tr.state
	}
	return StateIdle
}

// Transform returns a note's optimistic offset from its committed geometry
func (e *Engine) Transform(id string) Transform {
	if tr, ok := e.trackers[id]; ok {
		return tr.scheduler.Transform()
	}
	return Transform{}
}

// Settling reports whether a note is in its post-interaction transition
func (e *Engine) Settling(id string) bool {
	if tr, ok := e.trackers[id]; ok {
		return tr.scheduler.Settling()
	}
	return false
}

// VisualGeometry returns where a note is drawn: committed geometry plus its
// optimistic transform
func (e *Engine) VisualGeometry(id string) (geometry.Rect, bool) {
	n, ok := e.notes.Get(id)
	if !ok {
		return geometry.Rect{}, false
	}
	t := e.Transform(id)
	return geometry.Rect{
		Left:   n.X + t.DX,
		Top:    n.Y + t.DY,
		Width:  n.Width + t.DW,
		Height: n.Height + t.DH,
	}, true
}

// PointerDown starts a drag (TargetBody) or resize (TargetResizeHandle) of
// note id and reports whether the interaction began.
func (e *Engine) PointerDown(id string, target Target, ev PointerEvent) bool {
	if target == TargetResizeHandle {
		return e.startResize(id, ev)
	}
	return e.startDrag(id, ev)
}

// Dispatch delivers a document-level pointer event
func (e *Engine) Dispatch(ev PointerEvent) {
	e.document.Dispatch(ev)
}

// Active reports whether any note is being dragged or resized
func (e *Engine) Active() bool {
	for _, tr := range e.trackers {
		if tr.state != StateIdle {
			return true
		}
	}
	return false
}

// Animating reports whether the board still changes without further input:
// an interaction or its settle transition is running, a frame is queued or a
// cue is blinking
func (e *Engine) Animating() bool {
	if e.cues.Any() {
		return true
	}
	for _, tr := range e.trackers {
		if tr.state != StateIdle || tr.scheduler.Scheduled() || tr.scheduler.Settling() {
			return true
		}
	}
	return false
}

// Cancel ends every interaction in flight, committing buffered updates
func (e *Engine) Cancel() {
	for _, tr := range e.trackers {
		if tr.state != StateIdle {
			e.end(tr)
		}
	}
}

// ImportNotes replaces the board with a JSON note array. Invalid input leaves
// the board untouched.
func (e *Engine) ImportNotes(data []byte) error {
	imported, err := fs.DecodeNotes(data, e.now())
	if err != nil {
		return err
	}

	for id, tr := range e.trackers {
		e.abandon(tr)
		delete(e.trackers, id)
	}
	if holder := e.editing.Editing(); holder != "" {
		e.editing.EditEnd(holder)
	}

	e.notes.Replace(imported)
	logs.Logger.Printf("Imported %d notes", len(imported))
	return nil
}

// ExportNotes serializes the whole board
func (e *Engine) ExportNotes() ([]byte, error) {
	return fs.EncodeNotes(e.notes.All(), true)
}

func (e *Engine) startDrag(id string, ev PointerEvent) bool {
	if !ev.singlePointer() {
		return false
	}
	if e.editing.Conflicts(id) {
		holder := e.editing.Editing()
		e.cues.Raise(holder)
		logs.Logger.Printf("Drag of %s refused: %s is editing", id, holder)
		return false
	}

	n, ok := e.notes.Get(id)
	if !ok {
		return false
	}
	tr := e.tracker(id)
	if e.editing.Editing() == id || tr.state != StateIdle {
		return false
	}

	e.endOthers(id)
	rect, _ := e.BoardGeometry()
	tr.beginDrag(ev.Client, n, rect)
	e.acquire(tr)

	if err := e.notes.ReorderToFront(id); err != nil {
		logs.Logger.Printf("Error raising note %s: %v", id, err)
	}
	return true
}

func (e *Engine) startResize(id string, ev PointerEvent) bool {
	if e.editing.Editing() != id {
		return false
	}
	if !ev.singlePointer() {
		return false
	}

	n, ok := e.notes.Get(id)
	if !ok {
		return false
	}
	tr := e.tracker(id)
	if tr.state != StateIdle {
		return false
	}

	e.endOthers(id)
	tr.beginResize(ev.Client, n)
	e.acquire(tr)
	return true
}

// endOthers finishes interactions whose release never arrived, so one
// pointer never moves two notes
func (e *Engine) endOthers(id string) {
	for other, tr := range e.trackers {
		if other != id && tr.state != StateIdle {
			logs.Logger.Printf("Ending stale interaction on %s", other)
			e.end(tr)
		}
	}
}

func (e *Engine) tracker(id string) *Tracker {
	if tr, ok := e.trackers[id]; ok {
		return tr
	}
	commit := func(p models.Patch) error {
		return e.notes.Update(id, p)
	}
	tr := newTracker(id, NewScheduler(e.frames, commit, e.now))
	e.trackers[id] = tr
	return tr
}

// acquire attaches the document listeners an interaction needs for its
// whole lifetime
func (e *Engine) acquire(tr *Tracker) {
	move := func(ev PointerEvent) { e.move(tr, ev) }
	up := func(PointerEvent) { e.end(tr) }

	tr.hold(
		e.document.AddListener(EventMove, SourceMouse, move),
		e.document.AddListener(EventUp, SourceMouse, up),
		e.document.AddListener(EventMove, SourceTouch, move),
		e.document.AddListener(EventUp, SourceTouch, up),
		e.document.AddListener(EventCancel, SourceTouch, up),
	)
}

func (e *Engine) move(tr *Tracker, ev PointerEvent) {
	if !ev.singlePointer() {
		return
	}

	n, ok := e.notes.Get(tr.noteID)
	if !ok {
		e.abandon(tr)
		return
	}

	switch tr.state {
	case StateDragging:
		rect, scroll := e.BoardGeometry()
		p, t := tr.dragTo(ev.Client, n, rect, scroll)
		tr.scheduler.Push(p, t)
	case StateResizing:
		p, t := tr.resizeTo(ev.Client, n)
		tr.scheduler.Push(p, t)
	}
}

// end commits the buffered update, clears the transform and goes idle
func (e *Engine) end(tr *Tracker) {
	tr.scheduler.Finish()
	tr.state = StateIdle
	tr.releaseListeners()
}

func (e *Engine) abandon(tr *Tracker) {
	tr.scheduler.Discard()
	tr.state = StateIdle
	tr.releaseListeners()
}
