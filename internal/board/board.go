package board

import "noter/internal/geometry"

// Container is the positioning reference frame every note's x/y is expressed in.
// Both methods report false while the board is not mounted.
type Container interface {
	BoundingRect() (geometry.Rect, bool)
	ScrollOffset() (geometry.Offset, bool)
}

// Geometry returns the board rectangle and scroll offset of c. When c is nil or
// not mounted it degrades to a viewport-sized rectangle at the origin with no scroll.
func Geometry(c Container, viewport geometry.Size) (geometry.Rect, geometry.Offset) {
	fallback := geometry.Rect{Width: viewport.Width, Height: viewport.Height}
	if c == nil {
		return fallback, geometry.Offset{}
	}

	rect, ok := c.BoundingRect()
	if !ok {
		return fallback, geometry.Offset{}
	}

	scroll, ok := c.ScrollOffset()
	if !ok {
		scroll = geometry.Offset{}
	}
	return rect, scroll
}

// Viewport is a board larger than the screen area showing it. Panning moves
// the whole board under the window, so the board's bounding rect shifts with
// the pan and the board itself never reports a scroll offset.
type Viewport struct {
	mounted bool
	window  geometry.Rect // screen area the board shows through
	extent  geometry.Size // full board size
	pan     geometry.Offset
}

// NewViewport creates an unmounted viewport over a board of the given extent
func NewViewport(extent geometry.Size) *Viewport {
	return &Viewport{extent: extent}
}

// Mount shows the board through window
func (v *Viewport) Mount(window geometry.Rect) {
	v.mounted = true
	v.window = window
	v.PanTo(v.pan)
}

// Unmount takes the board off screen; geometry queries fall back to defaults
func (v *Viewport) Unmount() {
	v.mounted = false
}

// Mounted reports whether the board is on screen
func (v *Viewport) Mounted() bool {
	return v.mounted
}

// Window returns the screen area the board is shown through
func (v *Viewport) Window() geometry.Rect {
	return v.window
}

func (v *Viewport) BoundingRect() (geometry.Rect, bool) {
	if !v.mounted {
		return geometry.Rect{}, false
	}
	return geometry.Rect{
		Left:   v.window.Left - v.pan.Left,
		Top:    v.window.Top - v.pan.Top,
		Width:  v.extent.Width,
		Height: v.extent.Height,
	}, true
}

func (v *Viewport) ScrollOffset() (geometry.Offset, bool) {
	if !v.mounted {
		return geometry.Offset{}, false
	}
	return geometry.Offset{}, true
}

// Pan returns how far the board is panned
func (v *Viewport) Pan() geometry.Offset {
	return v.pan
}

// PanTo sets the pan, kept within [0, extent-window] on each axis
func (v *Viewport) PanTo(offset geometry.Offset) {
	maxLeft := max(0, v.extent.Width-v.window.Width)
	maxTop := max(0, v.extent.Height-v.window.Height)
	v.pan = geometry.Offset{
		Left: geometry.Clamp(offset.Left, 0, maxLeft),
		Top:  geometry.Clamp(offset.Top, 0, maxTop),
	}
}

// PanBy moves the pan by a delta
func (v *Viewport) PanBy(dx, dy float64) {
	v.PanTo(geometry.Offset{Left: v.pan.Left + dx, Top: v.pan.Top + dy})
}

// Extent returns the full board size
func (v *Viewport) Extent() geometry.Size {
	return v.extent
}

// SetExtent changes the full board size and re-applies the pan limits
func (v *Viewport) SetExtent(extent geometry.Size) {
	v.extent = extent
	v.PanTo(v.pan)
}
