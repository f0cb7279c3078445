package interaction

// FrameID identifies a requested frame callback
type FrameID uint64

// FrameClock schedules work for the next display frame. Requested callbacks
// run at most once and can be cancelled until they do.
type FrameClock interface {
	RequestFrame(fn func()) FrameID
	CancelFrame(id FrameID)
}

// ManualClock is a FrameClock advanced explicitly by the host (a render tick
// in the terminal, a test step in tests).
type ManualClock struct {
	next    FrameID
	pending map[FrameID]func()
	order   []FrameID
}

// NewManualClock creates a clock with no pending frames
func NewManualClock() *ManualClock {
	return &ManualClock{pending: make(map[FrameID]func())}
}

func (c *ManualClock) RequestFrame(fn func()) FrameID {
	c.next++
	c.pending[c.next] = fn
	c.order = append(c.order, c.next)
	return c.next
}

func (c *ManualClock) CancelFrame(id FrameID) {
	delete(c.pending, id)
}

// Pending returns how many callbacks wait for the next frame
func (c *ManualClock) Pending() int {
	return len(c.pending)
}

// Advance runs one frame: every callback requested before the call, in request
// order. Callbacks requested while the frame runs wait for the next one.
// Returns the number of callbacks run.
func (c *ManualClock) Advance() int {
	due := c.order
	c.order = nil

	ran := 0
	for _, id := range due {
		fn, ok := c.pending[id]
		if !ok {
			continue
		}
		delete(c.pending, id)
		fn()
		ran++
	}
	return ran
}
