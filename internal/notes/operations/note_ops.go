package operations

import (
	"fmt"
	"time"

	"noter/internal/notes/models"

	"github.com/google/uuid"
)

// Random is the subset of *math/rand.Rand used for placement and colors
type Random interface {
	Float64() float64
	Intn(n int) int
}

// NewID returns a fresh UUID v4 string
func NewID() string {
	return uuid.NewString()
}

// NewNote builds a note with default geometry near the top-left of the board,
// a random palette color and both timestamps set to now. A non-empty message
// becomes the note's single text block.
func NewNote(message, subject string, rnd Random, now time.Time) models.Note {
	content := []models.ContentItem{}
	if message != "" {
		content = append(content, models.NewText(NewID(), message))
	}

	stamp := now.UnixMilli()
	return models.Note{
		ID:        NewID(),
		Subject:   subject,
		Content:   content,
		X:         100 + rnd.Float64()*200,
		Y:         150 + rnd.Float64()*150,
		Width:     models.DefaultWidth,
		Height:    models.DefaultHeight,
		Color:     models.Palette[rnd.Intn(len(models.Palette))],
		CreatedAt: stamp,
		UpdatedAt: stamp,
	}
}

// NextColor picks a random palette color different from current
func NextColor(current string, rnd Random) string {
	if len(models.Palette) == 1 {
		return models.Palette[0]
	}

	currentIdx := -1
	for i, c := range models.Palette {
		if c == current {
			currentIdx = i
			break
		}
	}

	idx := rnd.Intn(len(models.Palette))
	for idx == currentIdx {
		idx = rnd.Intn(len(models.Palette))
	}
	return models.Palette[idx]
}

// ToggleCheckbox returns a content patch flipping one checklist row of n
func ToggleCheckbox(n models.Note, itemID string) (models.Patch, error) {
	content := make([]models.ContentItem, len(n.Content))
	copy(content, n.Content)

	for i := range content {
		if content[i].ID != itemID {
			continue
		}
		if content[i].Type != models.ContentCheckbox {
			return models.Patch{}, fmt.Errorf("item %s is not a checkbox", itemID)
		}
		content[i].Checked = !content[i].Checked
		return models.Patch{Content: &content}, nil
	}

	return models.Patch{}, fmt.Errorf("item %s not found in note %s", itemID, n.ID)
}
