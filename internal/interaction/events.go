package interaction

import "noter/internal/geometry"

// Source is the input device an event came from
type Source int

const (
	SourceMouse Source = iota
	SourceTouch
)

// EventKind is the kind of a document-level event delivered while a note is
// being dragged or resized
type EventKind int

const (
	EventMove   EventKind = iota // mousemove / touchmove
	EventUp                      // mouseup / touchend
	EventCancel                  // touchcancel
)

func (k EventKind) String() string {
	switch k {
	case EventMove:
		return "move"
	case EventUp:
		return "up"
	case EventCancel:
		return "cancel"
	default:
		return "unknown"
	}
}

// PointerEvent is a pointer or touch sample in client (viewport) coordinates
type PointerEvent struct {
	Kind    EventKind
	Source  Source
	Client  geometry.Point
	Touches int // active touch points; ignored for mouse events
}

// singlePointer reports whether the event can drive a drag or resize.
// Multi-touch (and zero-touch) samples are left to the host.
func (e PointerEvent) singlePointer() bool {
	return e.Source == SourceMouse || e.Touches == 1
}

// Target is the part of a note a press landed on
type Target int

const (
	TargetBody Target = iota
	TargetResizeHandle
)

// MouseAt is shorthand for a mouse sample at client (x, y)
func MouseAt(kind EventKind, x, y float64) PointerEvent {
	return PointerEvent{Kind: kind, Source: SourceMouse, Client: geometry.Point{X: x, Y: y}}
}

// TouchAt is shorthand for a touch sample with the given number of active touches
func TouchAt(kind EventKind, x, y float64, touches int) PointerEvent {
	return PointerEvent{Kind: kind, Source: SourceTouch, Client: geometry.Point{X: x, Y: y}, Touches: touches}
}
