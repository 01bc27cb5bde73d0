package ui

import (
	"github.com/desertthunder/damx/internal/tasks"
)

// catalogFetchedMsg carries the result of a catalog refresh.
type catalogFetchedMsg struct {
	catalog *tasks.Catalog
	err     error
}

// downloadDoneMsg carries the result of a single-item download.
type downloadDoneMsg struct {
	result *tasks.DownloadResult
	err    error
}

// favoriteToggledMsg carries the resulting membership after a toggle.
type favoriteToggledMsg struct {
	favorite bool
	err      error
}

// progressUpdateMsg wraps [tasks.ProgressUpdate] for the Update loop.
type progressUpdateMsg tasks.ProgressUpdate
