package fs

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"noter/internal/notes/models"
)

// ErrInvalidImport wraps every reason a note array is rejected
var ErrInvalidImport = errors.New("invalid notes data")

// wireNote mirrors models.Note with pointers so missing fields can be told apart
// from zero values
type wireNote struct {
	ID        *string               `json:"id"`
	Subject   *string               `json:"subject"`
	Content   *[]models.ContentItem `json:"content"`
	Message   *string               `json:"message"` // legacy single-text notes
	X         *float64              `json:"x"`
	Y         *float64              `json:"y"`
	Width     *float64              `json:"width"`
	Height    *float64              `json:"height"`
	Color     *string               `json:"color"`
	CreatedAt *int64                `json:"createdAt"`
	UpdatedAt *int64                `json:"updatedAt"`
}

// EncodeNotes writes the board as a JSON array of notes
func EncodeNotes(notes []models.Note, indent bool) ([]byte, error) {
	if notes == nil {
		notes = []models.Note{}
	}
	out := make([]models.Note, len(notes))
	for i, n := range notes {
		out[i] = n.Clone()
		if out[i].Content == nil {
			out[i].Content = []models.ContentItem{}
		}
	}

	if indent {
		return json.MarshalIndent(out, "", "  ")
	}
	return json.Marshal(out)
}

// DecodeNotes parses a JSON note array. The whole input is rejected if it is not
// an array or any element lacks a required field; optional fields take their
// defaults (missing content is empty, missing color is the first palette color,
// missing timestamps are now).
func DecodeNotes(data []byte, now time.Time) ([]models.Note, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 || trimmed[0] != '[' {
		return nil, fmt.Errorf("%w: expected a JSON array", ErrInvalidImport)
	}

	var raw []json.RawMessage
	if err := json.Unmarshal(trimmed, &raw); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidImport, err)
	}

	notes := make([]models.Note, 0, len(raw))
	seen := make(map[string]bool, len(raw))
	for i, element := range raw {
		n, err := decodeNote(element, now)
		if err != nil {
			return nil, fmt.Errorf("%w: note %d: %v", ErrInvalidImport, i, err)
		}
		if seen[n.ID] {
			return nil, fmt.Errorf("%w: note %d: duplicate id %s", ErrInvalidImport, i, n.ID)
		}
		seen[n.ID] = true
		notes = append(notes, n)
	}

	return notes, nil
}

func decodeNote(data json.RawMessage, now time.Time) (models.Note, error) {
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		return models.Note{}, errors.New("null element")
	}

	var w wireNote
	if err := json.Unmarshal(data, &w); err != nil {
		return models.Note{}, err
	}

	switch {
	case w.ID == nil || *w.ID == "":
		return models.Note{}, errors.New("missing id")
	case w.X == nil || w.Y == nil:
		return models.Note{}, errors.New("missing position")
	case w.Width == nil || w.Height == nil:
		return models.Note{}, errors.New("missing size")
	case *w.Width <= 0 || *w.Height <= 0:
		return models.Note{}, errors.New("non-positive size")
	}

	n := models.Note{
		ID:      *w.ID,
		X:       *w.X,
		Y:       *w.Y,
		Width:   *w.Width,
		Height:  *w.Height,
		Content: []models.ContentItem{},
		Color:   models.Palette[0],
	}

	if w.Subject != nil {
		n.Subject = *w.Subject
	}
	if w.Content != nil {
		n.Content = append(n.Content, *w.Content...)
	} else if w.Message != nil && *w.Message != "" {
		n.Content = append(n.Content, models.NewText(n.ID+"-message", *w.Message))
	}
	if w.Color != nil && *w.Color != "" {
		n.Color = *w.Color
	}

	stamp := now.UnixMilli()
	n.CreatedAt, n.UpdatedAt = stamp, stamp
	if w.CreatedAt != nil {
		n.CreatedAt = *w.CreatedAt
	}
	if w.UpdatedAt != nil {
		n.UpdatedAt = *w.UpdatedAt
	}

	return n, nil
}
