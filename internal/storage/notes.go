package storage

import (
	"context"
	"time"

	"noter/internal/logs"
	"noter/internal/notes/fs"
	"noter/internal/notes/models"
)

// LoadNotes reads the saved board. A missing key is an empty board; a corrupt
// value is logged and also starts an empty board.
func LoadNotes(ctx context.Context, s Store, now time.Time) ([]models.Note, error) {
	raw, ok, err := s.Get(ctx, KeyNotes)
	if err != nil {
		return nil, err
	}
	if !ok {
		return []models.Note{}, nil
	}

	notes, err := fs.DecodeNotes([]byte(raw), now)
	if err != nil {
		logs.Logger.Printf("Ignoring saved notes: %v", err)
		return []models.Note{}, nil
	}
	return notes, nil
}

// SaveNotes writes the whole board under KeyNotes
func SaveNotes(ctx context.Context, s Store, notes []models.Note) error {
	data, err := fs.EncodeNotes(notes, false)
	if err != nil {
		return err
	}
	return s.Set(ctx, KeyNotes, string(data))
}
