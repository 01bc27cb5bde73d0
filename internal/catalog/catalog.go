// package catalog implements the media library view-model: the pure
// filter/sort/paginate pipeline that turns the raw catalog plus interaction
// state into the exact page of items the user sees.
package catalog

import (
	"fmt"
	"sort"
	"strings"

	"github.com/desertthunder/damx/internal/models"
	"github.com/desertthunder/damx/internal/prefs"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// ItemsPerPage is the fixed page size of the library view.
const ItemsPerPage = 30

// ViewMode selects which subset lens applies before sorting and pagination.
type ViewMode int

const (
	ModeAll ViewMode = iota
	ModeFavorites
	ModeDownloads
)

func (m ViewMode) String() string {
	switch m {
	case ModeFavorites:
		return "favorites"
	case ModeDownloads:
		return "downloads"
	default:
		return "all"
	}
}

// ParseViewMode converts a flag value into a ViewMode.
func ParseViewMode(s string) (ViewMode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "all":
		return ModeAll, nil
	case "favorites", "favourites":
		return ModeFavorites, nil
	case "downloads":
		return ModeDownloads, nil
	default:
		return ModeAll, fmt.Errorf("unknown view mode %q", s)
	}
}

// SortOrder determines the ordering of the visible sequence.
type SortOrder int

const (
	// SortRecent orders by CreatedAt descending.
	SortRecent SortOrder = iota
	// SortName orders by Title ascending, locale-aware and case-insensitive.
	SortName
)

func (o SortOrder) String() string {
	if o == SortName {
		return "name"
	}
	return "recent"
}

// ParseSortOrder converts a flag value into a SortOrder.
func ParseSortOrder(s string) (SortOrder, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "recent":
		return SortRecent, nil
	case "name":
		return SortName, nil
	default:
		return SortRecent, fmt.Errorf("unknown sort order %q", s)
	}
}

// View holds the complete interaction state driving the pipeline.
//
// The zero value is the default view: no type filters, every category,
// empty search, all items, recent first, page 1 (Page 0 is clamped up).
type View struct {
	// TypeFilters maps normalized type tags to enabled state. When no tag
	// is enabled the stage passes every item through: an empty selection
	// means "no restriction", not "show nothing".
	TypeFilters map[string]bool
	// Category is the active-category scalar; "" or "all" disables the stage.
	Category string
	// Search is matched case-insensitively against title and extension.
	Search string
	Mode   ViewMode
	Sort   SortOrder
	// Page is 1-based and clamped into [1, max(1, totalPages)].
	Page int
}

// WithPage returns a copy of the view on the given page.
func (v View) WithPage(page int) View {
	v.Page = page
	return v
}

// Page is one computed page of the library view.
type Page struct {
	Items      []models.MediaItem
	Number     int // 1-based, after clamping
	TotalPages int // ceil(TotalItems / ItemsPerPage), at least 1 when items exist
	TotalItems int // count after filtering, before slicing
}

// NormalizeType lowercases a raw type string, collapses whitespace runs to
// underscores, and strips every remaining character outside [a-z0-9_],
// producing the filter lookup key.
//
// Distinct raw values can collide after normalization ("AR VR Assets" and
// "ar_vr_assets" share a key); the pipeline does not guard against this.
func NormalizeType(raw string) string {
	key := strings.ToLower(raw)
	key = strings.Join(strings.Fields(key), "_")

	var b strings.Builder
	b.Grow(len(key))
	for _, r := range key {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') || r == '_' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// Compute runs the full pipeline over the catalog and returns the visible
// page. It is pure and never fails; absent optional fields degrade to
// empty-string matching.
//
// Stages apply in fixed order: type filter, category filter, search,
// view mode, sort, paginate. Each narrows the previous stage's output.
func Compute(items []models.MediaItem, view View, favorites, downloads prefs.Set) Page {
	visible := filterByType(items, view.TypeFilters)
	visible = filterByCategory(visible, view.Category)
	visible = filterBySearch(visible, view.Search)
	visible = filterByMode(visible, view.Mode, favorites, downloads)
	visible = sortItems(visible, view.Sort)
	return paginate(visible, view.Page)
}

// Types returns the distinct raw type tags present in the catalog, sorted.
func Types(items []models.MediaItem) []string {
	seen := make(map[string]struct{})
	var tags []string
	for _, item := range items {
		if _, ok := seen[item.Type]; ok {
			continue
		}
		seen[item.Type] = struct{}{}
		tags = append(tags, item.Type)
	}
	sort.Strings(tags)
	return tags
}

func filterByType(items []models.MediaItem, filters map[string]bool) []models.MediaItem {
	enabled := false
	for _, on := range filters {
		if on {
			enabled = true
			break
		}
	}
	if !enabled {
		return items
	}

	var kept []models.MediaItem
	for _, item := range items {
		if filters[NormalizeType(item.Type)] {
			kept = append(kept, item)
		}
	}
	return kept
}

func filterByCategory(items []models.MediaItem, category string) []models.MediaItem {
	if category == "" || category == "all" {
		return items
	}

	var kept []models.MediaItem
	for _, item := range items {
		if item.Type == category {
			kept = append(kept, item)
		}
	}
	return kept
}

func filterBySearch(items []models.MediaItem, term string) []models.MediaItem {
	if term == "" {
		return items
	}
	term = strings.ToLower(term)

	var kept []models.MediaItem
	for _, item := range items {
		title := strings.ToLower(item.Title)
		ext := strings.ToLower(item.Extension)
		if strings.Contains(title, term) || strings.Contains(ext, term) {
			kept = append(kept, item)
		}
	}
	return kept
}

func filterByMode(items []models.MediaItem, mode ViewMode, favorites, downloads prefs.Set) []models.MediaItem {
	var set prefs.Set
	switch mode {
	case ModeFavorites:
		set = favorites
	case ModeDownloads:
		set = downloads
	default:
		return items
	}

	var kept []models.MediaItem
	for _, item := range items {
		if set.Has(item.ID) {
			kept = append(kept, item)
		}
	}
	return kept
}

// sortItems orders a copy of items by the given order. Sorting is stable so
// ties keep catalog order, which keeps pagination deterministic across
// recomputation.
func sortItems(items []models.MediaItem, order SortOrder) []models.MediaItem {
	sorted := make([]models.MediaItem, len(items))
	copy(sorted, items)

	switch order {
	case SortName:
		coll := collate.New(language.Und, collate.IgnoreCase)
		sort.SliceStable(sorted, func(i, j int) bool {
			return coll.CompareString(sorted[i].Title, sorted[j].Title) < 0
		})
	default:
		sort.SliceStable(sorted, func(i, j int) bool {
			return sorted[i].CreatedAt.After(sorted[j].CreatedAt)
		})
	}

	return sorted
}

// paginate slices the 1-based page of ItemsPerPage out of the sorted
// sequence, clamping the page number into [1, max(1, totalPages)].
func paginate(items []models.MediaItem, page int) Page {
	total := len(items)
	totalPages := (total + ItemsPerPage - 1) / ItemsPerPage

	if page < 1 {
		page = 1
	}
	if totalPages > 0 && page > totalPages {
		page = totalPages
	}

	start := (page - 1) * ItemsPerPage
	end := start + ItemsPerPage
	if start > total {
		start = total
	}
	if end > total {
		end = total
	}

	return Page{
		Items:      items[start:end],
		Number:     page,
		TotalPages: totalPages,
		TotalItems: total,
	}
}
