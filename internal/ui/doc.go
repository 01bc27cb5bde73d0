// Package ui implements an interactive terminal interface using bubbletea's Elm architecture.
//
// The TUI provides a multi-view workflow for browsing the media library:
//  1. [LibraryView] : Browse the filtered, sorted, paginated catalog
//  2. [TypeFilterView] : Toggle type-tag filters on and off
//  3. [DetailView] : Inspect one item, its preview strategy, and its source URL
//
// The (view) [Model] implements bubbletea/Elm's standard Init/Update/View pattern.
// Every filter, search, sort, view-mode, and page change reruns the catalog
// pipeline over the in-memory snapshot, so the list always reflects the
// current selection without refetching.
//
// Keyboard navigation uses vim-style bindings (j/k, h/l for pages, enter,
// esc, /, f, d, q) with contextual help displayed via charmbracelet/bubbles/help.
package ui
