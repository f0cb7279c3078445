package collection

import (
	"fmt"
	"time"

	"noter/internal/notes/models"
)

// Observer is notified with a snapshot of the full collection after every commit
type Observer func(notes []models.Note)

type subscription struct {
	id int
	fn Observer
}

// Collection is the ordered note sequence. Order is z-order: later notes are on top.
// It is mutated only from the UI event loop, so it holds no lock; each mutation
// replaces whole notes and observers only ever see complete snapshots.
type Collection struct {
	notes     []models.Note
	now       func() time.Time
	observers []subscription
	nextSubID int
}

// New creates a collection holding copies of notes
func New(notes []models.Note, now func() time.Time) *Collection {
	if now == nil {
		now = time.Now
	}
	c := &Collection{now: now}
	c.notes = cloneAll(notes)
	return c
}

// Subscribe registers an observer and returns a function that removes it
func (c *Collection) Subscribe(fn Observer) func() {
	c.nextSubID++
	id := c.nextSubID
	c.observers = append(c.observers, subscription{id: id, fn: fn})
	return func() {
		for i, sub := range c.observers {
			if sub.id == id {
				c.observers = append(c.observers[:i], c.observers[i+1:]...)
				return
			}
		}
	}
}

// All returns a snapshot of every note in z-order
func (c *Collection) All() []models.Note {
	return cloneAll(c.notes)
}

// Len returns the number of notes
func (c *Collection) Len() int {
	return len(c.notes)
}

// IDs returns note ids in z-order
func (c *Collection) IDs() []string {
	ids := make([]string, len(c.notes))
	for i, n := range c.notes {
		ids[i] = n.ID
	}
	return ids
}

// Get returns a copy of the note with the given id
func (c *Collection) Get(id string) (models.Note, bool) {
	idx := c.indexOf(id)
	if idx < 0 {
		return models.Note{}, false
	}
	return c.notes[idx].Clone(), true
}

// Add appends a note on top of the stack
func (c *Collection) Add(n models.Note) {
	c.notes = append(c.notes, n.Clone())
	c.notify()
}

// Update commits a patch to one note. UpdatedAt is stamped with the current time
// unless the patch carries its own.
func (c *Collection) Update(id string, p models.Patch) error {
	idx := c.indexOf(id)
	if idx < 0 {
		return fmt.Errorf("update %s: %w", id, models.ErrNoteNotFound)
	}

	if p.UpdatedAt == nil {
		stamp := c.now().UnixMilli()
		p.UpdatedAt = &stamp
	}

	updated := c.notes[idx].Clone()
	p.Apply(&updated)
	c.notes[idx] = updated

	c.notify()
	return nil
}

// Delete removes a note, keeping the order of the rest
func (c *Collection) Delete(id string) error {
	idx := c.indexOf(id)
	if idx < 0 {
		return fmt.Errorf("delete %s: %w", id, models.ErrNoteNotFound)
	}

	c.notes = append(c.notes[:idx], c.notes[idx+1:]...)
	c.notify()
	return nil
}

// ReorderToFront moves a note to the end of the sequence, preserving the
// relative order of all others
func (c *Collection) ReorderToFront(id string) error {
	idx := c.indexOf(id)
	if idx < 0 {
		return fmt.Errorf("reorder %s: %w", id, models.ErrNoteNotFound)
	}
	if idx == len(c.notes)-1 {
		return nil
	}

	n := c.notes[idx]
	reordered := make([]models.Note, 0, len(c.notes))
	reordered = append(reordered, c.notes[:idx]...)
	reordered = append(reordered, c.notes[idx+1:]...)
	reordered = append(reordered, n)
	c.notes = reordered

	c.notify()
	return nil
}

// Replace swaps in a whole new board, as a full import does
func (c *Collection) Replace(notes []models.Note) {
	c.notes = cloneAll(notes)
	c.notify()
}

func (c *Collection) indexOf(id string) int {
	for i := range c.notes {
		if c.notes[i].ID == id {
			return i
		}
	}
	return -1
}

func (c *Collection) notify() {
	if len(c.observers) == 0 {
		return
	}
	snapshot := cloneAll(c.notes)
	for _, sub := range c.observers {
		sub.fn(snapshot)
	}
}

func cloneAll(notes []models.Note) []models.Note {
	out := make([]models.Note, len(notes))
	for i, n := range notes {
		out[i] = n.Clone()
	}
	return out
}
