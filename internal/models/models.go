// package models defines the data model for the DAM client
package models

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

// ItemID is the stable identifier of a media item.
//
// The backend is loose about the wire type (numeric ids appear in older
// records), so decoding accepts both JSON strings and numbers.
type ItemID string

func (id *ItemID) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || string(data) == "null" {
		*id = ""
		return nil
	}

	if data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return fmt.Errorf("failed to decode item id: %w", err)
		}
		*id = ItemID(s)
		return nil
	}

	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("failed to decode item id: %w", err)
	}
	*id = ItemID(n.String())
	return nil
}

// MediaItem represents a single asset in the catalog. Immutable once fetched.
type MediaItem struct {
	ID           ItemID    `json:"id"`
	Title        string    `json:"title"`
	Type         string    `json:"type"`
	Extension    string    `json:"extension"`
	URL          string    `json:"url"`
	Filename     string    `json:"filename,omitempty"`
	Description  string    `json:"description,omitempty"`
	CreatedAt    time.Time `json:"createdAt"`
	OriginalType string    `json:"originalType,omitempty"`
}

// Badge returns the display label for the item's type badge.
//
// OriginalType overrides the raw type when the backend provides it; "3d" is
// special-cased to read as "3D".
func (m MediaItem) Badge() string {
	if m.Type == "3d" {
		return "3D"
	}
	if m.OriginalType != "" {
		return m.OriginalType
	}
	return m.Type
}

// SaveName returns the suggested filename for a client-side save:
// the stored filename, falling back to the title, falling back to "download".
func (m MediaItem) SaveName() string {
	if m.Filename != "" {
		return m.Filename
	}
	if m.Title != "" {
		return m.Title
	}
	return "download"
}

// Ext returns the item's extension lowercased without a leading dot.
func (m MediaItem) Ext() string {
	return strings.TrimPrefix(strings.ToLower(m.Extension), ".")
}

// UserProfile describes the authenticated user as reported by the backend
// (or decoded from the session token's claims).
type UserProfile struct {
	ID       string `json:"id"`
	Email    string `json:"email"`
	FullName string `json:"fullName"`
	Role     string `json:"role"`
}
