package interaction

// Listener receives document-level pointer events
type Listener func(PointerEvent)

type listenerEntry struct {
	id     int
	kind   EventKind
	source Source
	fn     Listener
}

// Document is the global event target interactions listen on. Listeners are
// attached only for the lifetime of a drag or resize.
type Document struct {
	listeners []listenerEntry
	nextID    int
}

// NewDocument creates an empty document
func NewDocument() *Document {
	return &Document{}
}

// AddListener attaches fn for one kind of event from one source and returns
// a function that detaches it. Calling the returned function twice is harmless.
func (d *Document) AddListener(kind EventKind, source Source, fn Listener) func() {
	d.nextID++
	id := d.nextID
	d.listeners = append(d.listeners, listenerEntry{id: id, kind: kind, source: source, fn: fn})

	return func() {
		for i, l := range d.listeners {
			if l.id == id {
				d.listeners = append(d.listeners[:i], d.listeners[i+1:]...)
				return
			}
		}
	}
}

// Dispatch delivers ev to every listener attached for its kind and source.
// Listeners may detach themselves while being dispatched.
func (d *Document) Dispatch(ev PointerEvent) {
	targets := make([]listenerEntry, 0, len(d.listeners))
	for _, l := range d.listeners {
		if l.kind == ev.Kind && l.source == ev.Source {
			targets = append(targets, l)
		}
	}
	for _, l := range targets {
		if d.attached(l.id) {
			l.fn(ev)
		}
	}
}

// ListenerCount returns how many listeners are attached
func (d *Document) ListenerCount() int {
	return len(d.listeners)
}

func (d *Document) attached(id int) bool {
	for _, l := range d.listeners {
		if l.id == id {
			return true
		}
	}
	return false
}
