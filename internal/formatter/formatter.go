// package formatter provides functions to export library listings to
// various formats (CSV, Markdown, plain text)
package formatter

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"time"

	"github.com/desertthunder/damx/internal/models"
)

// timeLayout is the display layout for item timestamps.
const timeLayout = "2006-01-02"

func formatCreated(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format(timeLayout)
}

// ExportToCSV converts a listing to CSV format with columns: ID, Title, Type, Extension, URL, Created
func ExportToCSV(items []models.MediaItem) ([]byte, error) {
	var buf bytes.Buffer
	writer := csv.NewWriter(&buf)

	headers := []string{"ID", "Title", "Type", "Extension", "URL", "Created"}
	if err := writer.Write(headers); err != nil {
		return nil, fmt.Errorf("failed to write CSV headers: %w", err)
	}

	for _, item := range items {
		record := []string{
			string(item.ID),
			item.Title,
			item.Type,
			item.Extension,
			item.URL,
			formatCreated(item.CreatedAt),
		}
		if err := writer.Write(record); err != nil {
			return nil, fmt.Errorf("failed to write CSV record: %w", err)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return nil, fmt.Errorf("CSV writer error: %w", err)
	}

	return buf.Bytes(), nil
}

// ExportToMarkdown converts a listing to Markdown format under the given title
func ExportToMarkdown(title string, items []models.MediaItem) ([]byte, error) {
	var buf bytes.Buffer

	buf.WriteString(fmt.Sprintf("# %s\n\n", title))
	buf.WriteString(fmt.Sprintf("**Items**: %d\n\n", len(items)))

	for i, item := range items {
		created := formatCreated(item.CreatedAt)
		if created != "" {
			created = fmt.Sprintf(" [%s]", created)
		}

		desc := ""
		if item.Description != "" {
			desc = fmt.Sprintf(" — %s", item.Description)
		}

		buf.WriteString(fmt.Sprintf("%d. **%s** (%s)%s%s\n", i+1, item.Title, item.Badge(), created, desc))
	}

	return buf.Bytes(), nil
}

// ExportToText converts a listing to plain text format
func ExportToText(title string, items []models.MediaItem) ([]byte, error) {
	var buf bytes.Buffer

	buf.WriteString(fmt.Sprintf("%s\n", title))
	buf.WriteString(fmt.Sprintf("%d items\n\n", len(items)))

	for i, item := range items {
		buf.WriteString(fmt.Sprintf("%3d. %-40s %-14s %s\n", i+1, item.Title, item.Type, formatCreated(item.CreatedAt)))
	}

	return buf.Bytes(), nil
}
