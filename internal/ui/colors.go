package ui

import (
	"github.com/charmbracelet/lipgloss"
)

var styles = NewPalette("#0066FF", "#04B575", "#FF0000", "#FFA500", "#626262")

// typeColors maps normalized type tags to their badge color.
var typeColors = map[string]lipgloss.Color{
	"photos":        lipgloss.Color("#3b82f6"),
	"vectors":       lipgloss.Color("#0066FF"),
	"illustrations": lipgloss.Color("#f59e0b"),
	"videos":        lipgloss.Color("#ef4444"),
	"music":         lipgloss.Color("#ec4899"),
	"3d":            lipgloss.Color("#10b981"),
	"pdf":           lipgloss.Color("#dc2626"),
	"ppt_template":  lipgloss.Color("#7c3aed"),
	"infographics":  lipgloss.Color("#06b6d4"),
	"ar_vr_assets":  lipgloss.Color("#8b5cf6"),
}

// TypeColor returns the badge color for a type tag, falling back to grey.
func TypeColor(tag string) lipgloss.Color {
	if c, ok := typeColors[tag]; ok {
		return c
	}
	return lipgloss.Color("#6b7280")
}

// struct Palette is a simple stylesheet built with named [lipgloss.Style] fields
type Palette struct {
	title lipgloss.Style
	ok    lipgloss.Style
	err   lipgloss.Style
	warn  lipgloss.Style
	help  lipgloss.Style
}

func NewPalette(t, s, e, w, h string) *Palette {
	return &Palette{
		title: NewBold(t).MarginBottom(1),
		ok:    NewBold(s),
		err:   NewBold(e),
		warn:  NewStyle(w),
		help:  NewEm(h),
	}
}

func NewStyle(fg string) lipgloss.Style {
	return lipgloss.NewStyle().Foreground(lipgloss.Color(fg))
}

func NewBold(fg string) lipgloss.Style {
	return NewStyle(fg).Bold(true)
}

func NewEm(fg string) lipgloss.Style {
	return NewStyle(fg).Italic(true)
}
