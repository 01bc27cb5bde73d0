package tasks

import (
	"fmt"

	"github.com/desertthunder/damx/internal/models"
)

// ProgressUpdate represents a progress event during a long-running operation.
//
// Used to send real-time updates to the CLI or UI layer for display.
type ProgressUpdate struct {
	Phase   Phase  // Operation phase
	Step    int    // Current step number within phase
	Total   int    // Total steps in this phase
	Message string // Human-readable message for display
	Data    any    // Optional phase-specific data for advanced UIs
}

// Operation phase enumeration
type Phase int

const (
	FetchCatalog Phase = iota
	DownloadItem
	WriteFile
	UploadAsset
)

func (p Phase) String() string {
	switch p {
	case FetchCatalog:
		return "fetch_catalog"
	case DownloadItem:
		return "download_item"
	case WriteFile:
		return "write_file"
	case UploadAsset:
		return "upload_asset"
	default:
		return "unknown"
	}
}

// downloadingUpdate is the constructor for [DownloadItem] progress events.
func downloadingUpdate(step, total int, item models.MediaItem) ProgressUpdate {
	return ProgressUpdate{
		Phase:   DownloadItem,
		Step:    step,
		Total:   total,
		Message: fmt.Sprintf("Downloading %s", item.SaveName()),
		Data:    item,
	}
}

// savedUpdate is the constructor for [WriteFile] progress events.
func savedUpdate(step, total int, path string) ProgressUpdate {
	return ProgressUpdate{
		Phase:   WriteFile,
		Step:    step,
		Total:   total,
		Message: fmt.Sprintf("Saved %s", path),
		Data:    path,
	}
}

// uploadingUpdate is the constructor for [UploadAsset] progress events.
func uploadingUpdate(filename, typeTag string) ProgressUpdate {
	return ProgressUpdate{
		Phase:   UploadAsset,
		Step:    1,
		Total:   1,
		Message: fmt.Sprintf("Uploading %s as %s", filename, typeTag),
	}
}
