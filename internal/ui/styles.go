package ui

import (
	"github.com/charmbracelet/lipgloss"
)

// Styles contains all the style definitions for the UI
type Styles struct {
	Title        lipgloss.Style
	Status       lipgloss.Style
	StatusError  lipgloss.Style
	Scan         lipgloss.Style
	Dim          lipgloss.Style
	Cell         lipgloss.Style
	CellSelected lipgloss.Style
	CellName     lipgloss.Style
	Favorite     lipgloss.Style
	Duplicate    lipgloss.Style
	Empty        lipgloss.Style
}

// NewStyles creates a new Styles instance for cells of the given total width
func NewStyles(cellWidth int) *Styles {
	inner := cellWidth - 2 // border
	return &Styles{
		Title: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("99")),
		Status:      lipgloss.NewStyle().Foreground(lipgloss.Color("241")),
		StatusError: lipgloss.NewStyle().Foreground(lipgloss.Color("196")),
		Scan:        lipgloss.NewStyle().Foreground(lipgloss.Color("33")),
		Dim:         lipgloss.NewStyle().Faint(true),
		Cell: lipgloss.NewStyle().
			Width(inner).
			Height(2).
			MaxHeight(cellHeight).
			Border(lipgloss.NormalBorder()).
			BorderForeground(lipgloss.Color("240")),
		CellSelected: lipgloss.NewStyle().
			Width(inner).
			Height(2).
			MaxHeight(cellHeight).
			Border(lipgloss.ThickBorder()).
			BorderForeground(lipgloss.Color("212")).
			Background(lipgloss.Color("236")),
		CellName:  lipgloss.NewStyle().Bold(true),
		Favorite:  lipgloss.NewStyle().Foreground(lipgloss.Color("214")), // yellow
		Duplicate: lipgloss.NewStyle().Foreground(lipgloss.Color("203")),
		Empty:     lipgloss.NewStyle().Faint(true).Italic(true),
	}
}
