package formatter

import (
	"encoding/csv"
	"strings"
	"testing"
	"time"

	"github.com/desertthunder/damx/internal/models"
)

func sampleItems() []models.MediaItem {
	return []models.MediaItem{
		{
			ID:        "1",
			Title:     "Blue Sunset",
			Type:      "photos",
			Extension: "jpg",
			URL:       "media/1.jpg",
			CreatedAt: time.Date(2024, 3, 15, 10, 0, 0, 0, time.UTC),
		},
		{
			ID:          "2",
			Title:       "City Model",
			Type:        "3d",
			Extension:   "glb",
			URL:         "media/2.glb",
			Description: "Downtown block",
		},
	}
}

func TestExportToCSV(t *testing.T) {
	data, err := ExportToCSV(sampleItems())
	if err != nil {
		t.Fatalf("ExportToCSV failed: %v", err)
	}

	records, err := csv.NewReader(strings.NewReader(string(data))).ReadAll()
	if err != nil {
		t.Fatalf("failed to parse CSV output: %v", err)
	}

	if len(records) != 3 {
		t.Fatalf("expected header plus 2 rows, got %d", len(records))
	}

	header := strings.Join(records[0], ",")
	if header != "ID,Title,Type,Extension,URL,Created" {
		t.Errorf("unexpected header: %s", header)
	}

	if records[1][1] != "Blue Sunset" || records[1][5] != "2024-03-15" {
		t.Errorf("unexpected first row: %v", records[1])
	}
	if records[2][5] != "" {
		t.Errorf("expected empty date for zero time, got %q", records[2][5])
	}
}

func TestExportToMarkdown(t *testing.T) {
	data, err := ExportToMarkdown("My Library", sampleItems())
	if err != nil {
		t.Fatalf("ExportToMarkdown failed: %v", err)
	}
	out := string(data)

	if !strings.HasPrefix(out, "# My Library\n") {
		t.Errorf("expected title heading, got %q", out)
	}
	if !strings.Contains(out, "**Items**: 2") {
		t.Error("expected item count line")
	}
	if !strings.Contains(out, "1. **Blue Sunset** (photos) [2024-03-15]") {
		t.Errorf("unexpected first entry:\n%s", out)
	}
	if !strings.Contains(out, "(3D)") {
		t.Error("expected 3d badge to render uppercased")
	}
	if !strings.Contains(out, "Downtown block") {
		t.Error("expected description to be included")
	}
}

func TestExportToText(t *testing.T) {
	data, err := ExportToText("My Library", sampleItems())
	if err != nil {
		t.Fatalf("ExportToText failed: %v", err)
	}
	out := string(data)

	if !strings.HasPrefix(out, "My Library\n2 items\n") {
		t.Errorf("unexpected header:\n%s", out)
	}
	if !strings.Contains(out, "Blue Sunset") || !strings.Contains(out, "City Model") {
		t.Errorf("expected both titles:\n%s", out)
	}

	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	if len(lines) != 5 {
		t.Errorf("expected 5 output lines, got %d", len(lines))
	}
}
