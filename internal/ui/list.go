package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/list"
	"github.com/desertthunder/damx/internal/models"
)

var (
	_ list.Item = mediaListItem{}
	_ list.Item = typeListItem{}
)

// mediaListItem wraps [models.MediaItem] to implement [list.Item].
type mediaListItem struct {
	item       models.MediaItem
	favorite   bool
	downloaded bool
}

func (i mediaListItem) FilterValue() string { return i.item.Title }

func (i mediaListItem) Title() string {
	title := i.item.Title
	if i.favorite {
		title = "★ " + title
	}
	return title
}

func (i mediaListItem) Description() string {
	parts := []string{NewStyle(string(TypeColor(i.item.Type))).Render(i.item.Badge())}
	if ext := i.item.Ext(); ext != "" {
		parts = append(parts, "."+ext)
	}
	if !i.item.CreatedAt.IsZero() {
		parts = append(parts, i.item.CreatedAt.Format("2006-01-02"))
	}
	if i.downloaded {
		parts = append(parts, "downloaded")
	}
	return strings.Join(parts, " • ")
}

// typeListItem wraps a type tag to implement [list.Item] in the filter view.
type typeListItem struct {
	tag      string
	selected bool
}

func (i typeListItem) FilterValue() string { return i.tag }

func (i typeListItem) Title() string {
	marker := "[ ]"
	if i.selected {
		marker = "[x]"
	}
	return fmt.Sprintf("%s %s", marker, i.tag)
}

func (i typeListItem) Description() string { return "" }
