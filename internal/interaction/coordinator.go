package interaction

import "time"

// Coordinator owns the single editing slot of a board. At most one note is
// editing at any time; a request from any other note is refused until the
// owner releases the slot.
type Coordinator struct {
	editing string
}

// Editing returns the id of the editing note, or "" when nobody is editing
func (c *Coordinator) Editing() string {
	return c.editing
}

// RequestEditStart claims the slot for id. Re-requesting by the owner succeeds.
func (c *Coordinator) RequestEditStart(id string) bool {
	if c.editing != "" && c.editing != id {
		return false
	}
	c.editing = id
	return true
}

// EditEnd releases the slot if id holds it
func (c *Coordinator) EditEnd(id string) {
	if c.editing == id {
		c.editing = ""
	}
}

// Conflicts reports whether a note other than id is editing
func (c *Coordinator) Conflicts(id string) bool {
	return c.editing != "" && c.editing != id
}

// Blink cue timing: two blinks of BlinkPeriod each
const (
	BlinkPeriod = 300 * time.Millisecond
	CueDuration = 2 * BlinkPeriod
)

// Cues tracks the transient "blink" shown on the editing note when another
// note is refused
type Cues struct {
	started map[string]time.Time
	now     func() time.Time
}

// NewCues creates an empty cue set
func NewCues(now func() time.Time) *Cues {
	if now == nil {
		now = time.Now
	}
	return &Cues{started: make(map[string]time.Time), now: now}
}

// Raise starts (or restarts) the cue on a note
func (c *Cues) Raise(id string) {
	c.started[id] = c.now()
}

// Active reports whether a note's cue is still running
func (c *Cues) Active(id string) bool {
	start, ok := c.started[id]
	if !ok {
		return false
	}
	if c.now().Sub(start) >= CueDuration {
		delete(c.started, id)
		return false
	}
	return true
}

// Lit reports whether the note should be drawn highlighted right now. The
// highlight is on for the first half of each blink.
func (c *Cues) Lit(id string) bool {
	if !c.Active(id) {
		return false
	}
	elapsed := c.now().Sub(c.started[id])
	return elapsed%BlinkPeriod < BlinkPeriod/2
}

// Any reports whether any cue is running
func (c *Cues) Any() bool {
	for id := range c.started {
		if c.Active(id) {
			return true
		}
	}
	return false
}
