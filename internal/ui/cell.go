package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"photogrid/internal/domain"
)

// cell is the rendered view of one photo. The selection scope notifies it
// when its selection value changes.
type cell struct {
	photo    domain.Photo
	selected bool
}

// OnSelectionChanged implements selection.Observer
func (c *cell) OnSelectionChanged(selected bool) {
	c.selected = selected
}

func (c *cell) render(styles *Styles, width int, favorite, showDimensions bool) string {
	inner := width - 2

	marker := " "
	if c.selected {
		marker = "✓"
	}
	badges := ""
	if favorite {
		badges += styles.Favorite.Render("★")
	}
	if c.photo.Kind == domain.KindDuplicate {
		badges += styles.Duplicate.Render("≡")
	}

	nameWidth := inner - 2 - lipgloss.Width(badges)
	name := truncate(c.photo.Name, nameWidth)
	first := marker + " " + styles.CellName.Render(name)
	if badges != "" {
		pad := inner - lipgloss.Width(first) - lipgloss.Width(badges)
		first += strings.Repeat(" ", max(0, pad)) + badges
	}

	second := humanSize(c.photo.Size)
	if showDimensions && c.photo.Width > 0 {
		second = fmt.Sprintf("%dx%d %s", c.photo.Width, c.photo.Height, second)
	}
	second = styles.Dim.Render(truncate(second, inner))

	style := styles.Cell
	if c.selected {
		style = styles.CellSelected
	}
	return style.Render(first + "\n" + second)
}

// truncate shortens s to at most width visible characters
func truncate(s string, width int) string {
	if width <= 0 {
		return ""
	}
	runes := []rune(s)
	if len(runes) <= width {
		return s
	}
	if width == 1 {
		return "…"
	}
	return string(runes[:width-1]) + "…"
}

func humanSize(n int64) string {
	const unit = 1024
	if n < unit {
		return fmt.Sprintf("%dB", n)
	}
	div, exp := int64(unit), 0
	for m := n / unit; m >= unit; m /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f%cB", float64(n)/float64(div), "KMGTPE"[exp])
}
