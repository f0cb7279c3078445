package operations

import (
	"encoding/base64"
	"fmt"
	"net/http"
	"os"

	"noter/internal/notes/models"
)

// AddText appends an empty text block and returns the new content with the
// block's id, so the caller can focus it directly
func AddText(content []models.ContentItem) ([]models.ContentItem, string) {
	item := models.NewText(NewID(), "")
	return append(cloneContent(content), item), item.ID
}

// AddCheckbox appends an unchecked, empty checklist row
func AddCheckbox(content []models.ContentItem) ([]models.ContentItem, string) {
	item := models.NewCheckbox(NewID(), "", false)
	return append(cloneContent(content), item), item.ID
}

// AddImage appends an image block
func AddImage(content []models.ContentItem, url string) ([]models.ContentItem, string) {
	item := models.NewImage(NewID(), url)
	return append(cloneContent(content), item), item.ID
}

// RemoveItem drops a block by id
func RemoveItem(content []models.ContentItem, itemID string) []models.ContentItem {
	out := make([]models.ContentItem, 0, len(content))
	for _, item := range content {
		if item.ID != itemID {
			out = append(out, item)
		}
	}
	return out
}

// SetItemText changes the editable text of a text or checkbox block
func SetItemText(content []models.ContentItem, itemID, value string) []models.ContentItem {
	out := cloneContent(content)
	for i := range out {
		if out[i].ID != itemID {
			continue
		}
		switch out[i].Type {
		case models.ContentText:
			out[i].Value = value
		case models.ContentCheckbox:
			out[i].Text = value
		}
	}
	return out
}

// ToggleItem flips a checkbox inside a draft
func ToggleItem(content []models.ContentItem, itemID string) []models.ContentItem {
	out := cloneContent(content)
	for i := range out {
		if out[i].ID == itemID && out[i].Type == models.ContentCheckbox {
			out[i].Checked = !out[i].Checked
		}
	}
	return out
}

// ImageURLFromFile reads an image file into a data URL
func ImageURLFromFile(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("read image: %w", err)
	}

	mime := http.DetectContentType(data)
	if len(mime) < 6 || mime[:6] != "image/" {
		return "", fmt.Errorf("%s is not an image (%s)", path, mime)
	}

	return "data:" + mime + ";base64," + base64.StdEncoding.EncodeToString(data), nil
}

func cloneContent(content []models.ContentItem) []models.ContentItem {
	out := make([]models.ContentItem, len(content), len(content)+1)
	copy(out, content)
	return out
}
