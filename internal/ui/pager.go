package ui

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/noborus/ov/oviewer"

	"photogrid/internal/domain"
)

// pagerClosedMsg contains the result of a pager command
type pagerClosedMsg struct {
	err error
}

// Pager shows long text in ov, taking over the terminal while it runs
type Pager struct {
	program *tea.Program // reference to Bubble Tea program for terminal management
}

// NewPager creates a pager bound to program
func NewPager(program *tea.Program) *Pager {
	return &Pager{program: program}
}

// Show pages content with ov
func (p *Pager) Show(content string) error {
	if p.program == nil {
		return fmt.Errorf("program not set")
	}

	// Release terminal control to run ov
	if err := p.program.ReleaseTerminal(); err != nil {
		return err
	}

	// Ensure terminal is restored even if ov fails
	defer func() {
		// Small delay to ensure ov has fully exited before restoring terminal
		time.Sleep(100 * time.Millisecond)
		_ = p.program.RestoreTerminal()
	}()

	root, err := oviewer.NewRoot(strings.NewReader(content))
	if err != nil {
		return err
	}

	// Don't write on exit, it would mess with our screen
	config := oviewer.NewConfig()
	config.IsWriteOnExit = false
	config.IsWriteOriginal = false
	root.SetConfig(config)

	return root.Run()
}

// renderHelpContent renders the help screen from the key bindings
func renderHelpContent(keys keyMap) string {
	titleStyle := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("99"))
	sectionStyle := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("214"))
	keyStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("86"))

	var b strings.Builder
	b.WriteString(titleStyle.Render("photogrid"))
	b.WriteString("\n\n")

	b.WriteString(sectionStyle.Render("Mouse"))
	b.WriteString("\n")
	b.WriteString("  click             toggle one photo\n")
	b.WriteString("  press and drag    paint a range; the first cell decides select or deselect\n")
	b.WriteString("  drag back         un-paint the cells left behind\n")
	b.WriteString("  wheel             scroll\n\n")

	sections := []string{"Selection", "Actions", "Other"}
	for i, group := range keys.FullHelp() {
		b.WriteString(sectionStyle.Render(sections[i]))
		b.WriteString("\n")
		for _, binding := range group {
			h := binding.Help()
			b.WriteString(fmt.Sprintf("  %-16s  %s\n", keyStyle.Render(h.Key), h.Desc))
		}
		b.WriteString("\n")
	}
	return b.String()
}

// renderSelectionListing renders the selected photos, one per line
func renderSelectionListing(photos []domain.Photo) string {
	if len(photos) == 0 {
		return "No photos selected.\n"
	}
	var b strings.Builder
	fmt.Fprintf(&b, "%d photos selected\n\n", len(photos))
	for _, p := range photos {
		dims := "-"
		if p.Width > 0 {
			dims = fmt.Sprintf("%dx%d", p.Width, p.Height)
		}
		fmt.Fprintf(&b, "%-10s %-9s %-10s %s\n", dims, humanSize(p.Size), p.Kind, p.Path)
	}
	return b.String()
}
