package models

import (
	"encoding/json"
	"fmt"
)

// ContentType tags the variant held by a ContentItem
type ContentType string

const (
	ContentText     ContentType = "text"
	ContentCheckbox ContentType = "checkbox"
	ContentImage    ContentType = "image"
)

// ContentItem is one block inside a note. Only the fields of its Type are meaningful:
// text uses Value, checkbox uses Text and Checked, image uses URL.
type ContentItem struct {
	Type    ContentType
	ID      string
	Value   string
	Text    string
	Checked bool
	URL     string
}

// NewText creates a text block
func NewText(id, value string) ContentItem {
	return ContentItem{Type: ContentText, ID: id, Value: value}
}

// NewCheckbox creates a checklist row
func NewCheckbox(id, text string, checked bool) ContentItem {
	return ContentItem{Type: ContentCheckbox, ID: id, Text: text, Checked: checked}
}

// NewImage creates an image block from a data URL
func NewImage(id, url string) ContentItem {
	return ContentItem{Type: ContentImage, ID: id, URL: url}
}

type textWire struct {
	Type  ContentType `json:"type"`
	ID    string      `json:"id"`
	Value string      `json:"value"`
}

type checkboxWire struct {
	Type    ContentType `json:"type"`
	ID      string      `json:"id"`
	Text    string      `json:"text"`
	Checked bool        `json:"checked"`
}

type imageWire struct {
	Type ContentType `json:"type"`
	ID   string      `json:"id"`
	URL  string      `json:"url"`
}

// MarshalJSON writes exactly the fields of the item's variant
func (c ContentItem) MarshalJSON() ([]byte, error) {
	switch c.Type {
	case ContentText:
		return json.Marshal(textWire{Type: c.Type, ID: c.ID, Value: c.Value})
	case ContentCheckbox:
		return json.Marshal(checkboxWire{Type: c.Type, ID: c.ID, Text: c.Text, Checked: c.Checked})
	case ContentImage:
		return json.Marshal(imageWire{Type: c.Type, ID: c.ID, URL: c.URL})
	default:
		return nil, fmt.Errorf("unknown content type %q", c.Type)
	}
}

// UnmarshalJSON reads a tagged content block and rejects unknown variants
func (c *ContentItem) UnmarshalJSON(data []byte) error {
	var raw struct {
		Type    ContentType `json:"type"`
		ID      string      `json:"id"`
		Value   string      `json:"value"`
		Text    string      `json:"text"`
		Checked bool        `json:"checked"`
		URL     string      `json:"url"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	if raw.ID == "" {
		return fmt.Errorf("content item missing id")
	}

	switch raw.Type {
	case ContentText:
		*c = NewText(raw.ID, raw.Value)
	case ContentCheckbox:
		*c = NewCheckbox(raw.ID, raw.Text, raw.Checked)
	case ContentImage:
		*c = NewImage(raw.ID, raw.URL)
	default:
		return fmt.Errorf("unknown content type %q", raw.Type)
	}
	return nil
}
