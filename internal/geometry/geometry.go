package geometry

// Point is a position in either client (viewport) or board-local space.
type Point struct {
	X float64
	Y float64
}

// Size is a width/height pair
type Size struct {
	Width  float64
	Height float64
}

// Rect is an axis-aligned rectangle anchored at its top-left corner
type Rect struct {
	Left   float64
	Top    float64
	Width  float64
	Height float64
}

// Offset is a scroll offset of a scrollable container
type Offset struct {
	Left float64
	Top  float64
}

// Contains reports whether p lies inside the rectangle (right/bottom edges excluded)
func (r Rect) Contains(p Point) bool {
	return p.X >= r.Left && p.X < r.Left+r.Width && p.Y >= r.Top && p.Y < r.Top+r.Height
}

// Clamp restricts value to [min, max]. Callers must ensure min <= max.
func Clamp(value, min, max float64) float64 {
	if value < min {
		return min
	}
	if value > max {
		return max
	}
	return value
}

// ToBoardLocal converts viewport-relative client coordinates into the board's
// own (possibly scrolled) coordinate space.
func ToBoardLocal(client Point, boardRect Rect, scroll Offset) Point {
	return Point{
		X: client.X - boardRect.Left + scroll.Left,
		Y: client.Y - boardRect.Top + scroll.Top,
	}
}
