package fs

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"noter/internal/notes/models"
)

// BackupFilename names an export after the day it was taken: noter_backup_DD_MM_YY.json
func BackupFilename(now time.Time) string {
	return fmt.Sprintf("noter_backup_%s.json", now.Format("02_01_06"))
}

// ExportFile writes the board to dir as a dated backup and returns the path written
func ExportFile(dir string, notes []models.Note, now time.Time) (string, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", err
	}

	data, err := EncodeNotes(notes, true)
	if err != nil {
		return "", err
	}

	path := filepath.Join(dir, BackupFilename(now))
	if err := os.WriteFile(path, data, 0644); err != nil {
		return "", err
	}
	return path, nil
}

// ImportFile reads and validates a backup. Nothing is returned unless every note is valid.
func ImportFile(path string, now time.Time) ([]models.Note, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return DecodeNotes(data, now)
}
