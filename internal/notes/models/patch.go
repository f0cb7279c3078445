package models

// Patch is a partial update of a note. Nil fields are left untouched.
type Patch struct {
	Subject   *string
	Content   *[]ContentItem
	X         *float64
	Y         *float64
	Width     *float64
	Height    *float64
	Color     *string
	UpdatedAt *int64
}

// PositionPatch sets x and y
func PositionPatch(x, y float64) Patch {
	return Patch{X: &x, Y: &y}
}

// SizePatch sets width and height
func SizePatch(width, height float64) Patch {
	return Patch{Width: &width, Height: &height}
}

// ContentPatch replaces subject and content together, as an editor save does
func ContentPatch(subject string, content []ContentItem) Patch {
	items := make([]ContentItem, len(content))
	copy(items, content)
	return Patch{Subject: &subject, Content: &items}
}

// ColorPatch sets the background color
func ColorPatch(color string) Patch {
	return Patch{Color: &color}
}

// IsEmpty reports whether the patch changes nothing
func (p Patch) IsEmpty() bool {
	return p.Subject == nil && p.Content == nil && p.X == nil && p.Y == nil &&
		p.Width == nil && p.Height == nil && p.Color == nil && p.UpdatedAt == nil
}

// Merge overlays later on p; fields set in later win
func (p Patch) Merge(later Patch) Patch {
	out := p
	if later.Subject != nil {
		out.Subject = later.Subject
	}
	if later.Content != nil {
		out.Content = later.Content
	}
	if later.X != nil {
		out.X = later.X
	}
	if later.Y != nil {
		out.Y = later.Y
	}
	if later.Width != nil {
		out.Width = later.Width
	}
	if later.Height != nil {
		out.Height = later.Height
	}
	if later.Color != nil {
		out.Color = later.Color
	}
	if later.UpdatedAt != nil {
		out.UpdatedAt = later.UpdatedAt
	}
	return out
}

// Apply writes the patch onto n
func (p Patch) Apply(n *Note) {
	if p.Subject != nil {
		n.Subject = *p.Subject
	}
	if p.Content != nil {
		n.Content = make([]ContentItem, len(*p.Content))
		copy(n.Content, *p.Content)
	}
	if p.X != nil {
		n.X = *p.X
	}
	if p.Y != nil {
		n.Y = *p.Y
	}
	if p.Width != nil {
		n.Width = *p.Width
	}
	if p.Height != nil {
		n.Height = *p.Height
	}
	if p.Color != nil {
		n.Color = *p.Color
	}
	if p.UpdatedAt != nil {
		n.UpdatedAt = *p.UpdatedAt
	}
}
