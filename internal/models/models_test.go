package models

import (
	"encoding/json"
	"testing"
)

func TestItemID(t *testing.T) {
	t.Run("decodes JSON strings", func(t *testing.T) {
		var id ItemID
		if err := json.Unmarshal([]byte(`"abc-123"`), &id); err != nil {
			t.Fatalf("unmarshal failed: %v", err)
		}
		if id != "abc-123" {
			t.Errorf("got %q, want abc-123", id)
		}
	})

	t.Run("decodes JSON numbers", func(t *testing.T) {
		var id ItemID
		if err := json.Unmarshal([]byte(`42`), &id); err != nil {
			t.Fatalf("unmarshal failed: %v", err)
		}
		if id != "42" {
			t.Errorf("got %q, want 42", id)
		}
	})

	t.Run("null decodes to empty", func(t *testing.T) {
		var id ItemID = "seed"
		if err := json.Unmarshal([]byte(`null`), &id); err != nil {
			t.Fatalf("unmarshal failed: %v", err)
		}
		if id != "" {
			t.Errorf("got %q, want empty", id)
		}
	})

	t.Run("rejects non-scalar values", func(t *testing.T) {
		var id ItemID
		if err := json.Unmarshal([]byte(`{"id":1}`), &id); err == nil {
			t.Error("expected error for object")
		}
	})

	t.Run("decodes inside MediaItem", func(t *testing.T) {
		var item MediaItem
		if err := json.Unmarshal([]byte(`{"id":7,"title":"Old Record"}`), &item); err != nil {
			t.Fatalf("unmarshal failed: %v", err)
		}
		if item.ID != "7" {
			t.Errorf("got %q, want 7", item.ID)
		}
	})
}

func TestMediaItem(t *testing.T) {
	t.Run("Badge", func(t *testing.T) {
		cases := []struct {
			name string
			item MediaItem
			want string
		}{
			{"plain type", MediaItem{Type: "photos"}, "photos"},
			{"3d reads as 3D", MediaItem{Type: "3d"}, "3D"},
			{"original type overrides", MediaItem{Type: "photos", OriginalType: "Stock Photos"}, "Stock Photos"},
			{"3d wins over original type", MediaItem{Type: "3d", OriginalType: "Models"}, "3D"},
		}
		for _, c := range cases {
			t.Run(c.name, func(t *testing.T) {
				if got := c.item.Badge(); got != c.want {
					t.Errorf("Badge() = %q, want %q", got, c.want)
				}
			})
		}
	})

	t.Run("SaveName", func(t *testing.T) {
		cases := []struct {
			name string
			item MediaItem
			want string
		}{
			{"filename first", MediaItem{Filename: "a.jpg", Title: "A"}, "a.jpg"},
			{"title fallback", MediaItem{Title: "A"}, "A"},
			{"default fallback", MediaItem{}, "download"},
		}
		for _, c := range cases {
			t.Run(c.name, func(t *testing.T) {
				if got := c.item.SaveName(); got != c.want {
					t.Errorf("SaveName() = %q, want %q", got, c.want)
				}
			})
		}
	})

	t.Run("Ext", func(t *testing.T) {
		cases := []struct {
			ext  string
			want string
		}{
			{".JPG", "jpg"},
			{"png", "png"},
			{".glb", "glb"},
			{"", ""},
		}
		for _, c := range cases {
			item := MediaItem{Extension: c.ext}
			if got := item.Ext(); got != c.want {
				t.Errorf("Ext(%q) = %q, want %q", c.ext, got, c.want)
			}
		}
	})
}
