package ui

import (
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"photogrid/internal/config"
	"photogrid/internal/domain"
	"photogrid/internal/eventbus"
	"photogrid/internal/selection"
)

const (
	headerHeight = 2 // title and status lines
	footerHeight = 1 // help line
)

// FavoriteChecker reports favorite photos for cell badges
type FavoriteChecker interface {
	IsFavorite(path string) bool
}

// Model represents the UI state
type Model struct {
	bus       eventbus.EventBus
	config    *config.Config
	favorites FavoriteChecker

	scope   *selection.Scope[domain.Photo, string]
	pointer *selection.PointerInput
	grid    *gridLayout
	cells   []*cell // indexed by scope index

	styles *Styles
	keys   keyMap
	help   help.Model
	pager  *Pager

	width     int
	height    int
	root      string
	scanning  bool
	status    string
	statusErr bool
	statusGen int
}

// NewModel creates a new UI model
func NewModel(bus eventbus.EventBus, cfg *config.Config, favorites FavoriteChecker) *Model {
	m := &Model{
		bus:       bus,
		config:    cfg,
		favorites: favorites,
		styles:    NewStyles(cfg.UI.CellWidth),
		keys:      newKeyMap(),
		help:      help.New(),
		root:      cfg.PhotoDir,
	}

	m.scope = selection.NewScope(domain.Photo.Key,
		selection.WithDebounce[domain.Photo](cfg.Selection.DebounceMoves),
		selection.WithOnChange(m.selectionChanged),
	)
	m.grid = newGridLayout(headerHeight, cfg.UI.CellWidth)
	m.pointer = selection.NewPointerInput(m.scope, m.grid)

	return m
}

// SetProgram sets the program reference used by the pager
func (m *Model) SetProgram(p *tea.Program) {
	m.pager = NewPager(p)
}

// Selection returns the current selection in gallery order
func (m *Model) Selection() []domain.Photo {
	return m.scope.Get()
}

func (m *Model) Init() tea.Cmd {
	return nil
}

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		m.grid.resize(msg.Width, msg.Height, footerHeight)
		return m, nil

	case tea.MouseMsg:
		m.handleMouse(msg)
		return m, nil

	case tea.KeyMsg:
		return m, m.handleKey(msg)

	case EventMsg:
		return m, m.handleEvent(msg.Event)

	case pagerClosedMsg:
		if msg.err != nil {
			log.Printf("Pager failed: %v", msg.err)
		}
		return m, nil

	case clearStatusMsg:
		if msg.generation == m.statusGen {
			m.status = ""
			m.statusErr = false
		}
		return m, nil
	}

	return m, nil
}

// handleMouse feeds mouse events into the pointer adapter; the wheel scrolls
func (m *Model) handleMouse(msg tea.MouseMsg) {
	switch msg.Button {
	case tea.MouseButtonWheelUp:
		m.grid.scroll(-1)
		return
	case tea.MouseButtonWheelDown:
		m.grid.scroll(1)
		return
	}

	ev := selection.PointerEvent{X: msg.X, Y: msg.Y, Button: pointerButton(msg.Button)}
	switch msg.Action {
	case tea.MouseActionPress:
		ev.Phase = selection.PhasePress
	case tea.MouseActionMotion:
		ev.Phase = selection.PhaseMove
	case tea.MouseActionRelease:
		ev.Phase = selection.PhaseRelease
	default:
		return
	}
	m.pointer.Handle(ev)
}

func pointerButton(b tea.MouseButton) selection.PointerButton {
	switch b {
	case tea.MouseButtonLeft:
		return selection.ButtonPrimary
	case tea.MouseButtonRight:
		return selection.ButtonSecondary
	case tea.MouseButtonMiddle:
		return selection.ButtonMiddle
	default:
		return selection.ButtonNone
	}
}

func (m *Model) handleKey(msg tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(msg, m.keys.Quit):
		// A gesture cut short by quitting still reports its selection
		m.scope.End()
		return tea.Quit
	case key.Matches(msg, m.keys.SelectAll):
		m.scope.SelectAll()
	case key.Matches(msg, m.keys.Cancel):
		m.scope.Cancel()
	case key.Matches(msg, m.keys.Move):
		return m.requestAction(domain.ActionMove)
	case key.Matches(msg, m.keys.Trash):
		return m.requestAction(domain.ActionTrash)
	case key.Matches(msg, m.keys.Favorite):
		return m.requestAction(domain.ActionFavorite)
	case key.Matches(msg, m.keys.Copy):
		return m.requestAction(domain.ActionCopyPaths)
	case key.Matches(msg, m.keys.Page):
		return m.showInPager(renderSelectionListing(m.scope.Get()))
	case key.Matches(msg, m.keys.Help):
		return m.showInPager(renderHelpContent(m.keys))
	case key.Matches(msg, m.keys.Rescan):
		m.bus.Publish(eventbus.ScanRequestedEvent{})
	case key.Matches(msg, m.keys.ScrollUp):
		m.grid.scroll(-scrollStep(msg, m.grid.rows))
	case key.Matches(msg, m.keys.ScrollDn):
		m.grid.scroll(scrollStep(msg, m.grid.rows))
	}
	return nil
}

func scrollStep(msg tea.KeyMsg, page int) int {
	switch msg.String() {
	case "pgup", "pgdown":
		return page
	default:
		return 1
	}
}

// requestAction hands a snapshot of the selection to the action layer
func (m *Model) requestAction(action domain.Action) tea.Cmd {
	photos := m.scope.Get()
	if len(photos) == 0 {
		return m.setStatus("Nothing selected", false)
	}
	m.bus.Publish(eventbus.ActionRequestedEvent{Action: action, Photos: photos})
	return nil
}

func (m *Model) showInPager(content string) tea.Cmd {
	if m.pager == nil {
		return m.setStatus("Pager unavailable", true)
	}
	pager := m.pager
	return func() tea.Msg {
		return pagerClosedMsg{err: pager.Show(content)}
	}
}

func (m *Model) handleEvent(event eventbus.DomainEvent) tea.Cmd {
	switch e := event.(type) {
	case eventbus.ScanStartedEvent:
		m.scanning = true
		m.root = e.Root

	case eventbus.ScanCompletedEvent:
		m.scanning = false
		m.setPhotos(e.Photos)

	case eventbus.ActionCompletedEvent:
		if e.Err != nil {
			return m.setStatus(fmt.Sprintf("%s: %v", actionLabel(e.Action), e.Err), true)
		}
		return m.setStatus(fmt.Sprintf("%s: %d photos", actionLabel(e.Action), e.Count), false)

	case eventbus.ErrorEvent:
		return m.setStatus(e.Message, true)
	}
	return nil
}

func actionLabel(a domain.Action) string {
	switch a {
	case domain.ActionMove:
		return "Moved"
	case domain.ActionTrash:
		return "Trashed"
	case domain.ActionFavorite:
		return "Toggled favorite"
	case domain.ActionCopyPaths:
		return "Copied paths"
	default:
		return string(a)
	}
}

// setPhotos registers the scanned gallery with the selection scope and
// forgets photos that disappeared. Known photos keep their index, new ones
// are appended, so the display order is the index order.
func (m *Model) setPhotos(photos []domain.Photo) {
	for _, p := range photos {
		c := &cell{photo: p}
		if idx, ok := m.scope.Lookup(p.Key()); ok && m.cells[idx] != nil {
			c = m.cells[idx]
			c.photo = p
		}
		idx := m.scope.Register(p, c)
		for len(m.cells) <= idx {
			m.cells = append(m.cells, nil)
		}
		m.cells[idx] = c
		c.selected = m.scope.IsSelected(idx)
	}

	if dropped := m.scope.Retain(photos); dropped > 0 {
		log.Printf("Dropped %d photos no longer in the gallery", dropped)
	}

	order := make([]int, 0, len(photos))
	for i := range m.cells {
		if _, ok := m.scope.Item(i); ok {
			order = append(order, i)
		} else {
			m.cells[i] = nil
		}
	}
	m.grid.setOrder(order)
}

// selectionChanged is the scope's batched notification
func (m *Model) selectionChanged(photos []domain.Photo) {
	m.bus.Publish(eventbus.SelectionChangedEvent{Photos: photos})
}

func (m *Model) setStatus(text string, isErr bool) tea.Cmd {
	m.statusGen++
	m.status = text
	m.statusErr = isErr
	gen := m.statusGen
	return tea.Tick(3*time.Second, func(time.Time) tea.Msg {
		return clearStatusMsg{generation: gen}
	})
}

func (m *Model) View() string {
	var b strings.Builder

	b.WriteString(m.styles.Title.Render("photogrid"))
	b.WriteString("  ")
	b.WriteString(m.styles.Dim.Render(m.root))
	b.WriteString("\n")

	status := fmt.Sprintf("%d photos · %d selected", len(m.grid.order), m.scope.Count())
	b.WriteString(m.styles.Status.Render(status))
	if m.scanning {
		b.WriteString(m.styles.Scan.Render(" · scanning…"))
	}
	if m.status != "" {
		style := m.styles.Status
		if m.statusErr {
			style = m.styles.StatusError
		}
		b.WriteString("  ")
		b.WriteString(style.Render(m.status))
	}
	b.WriteString("\n")

	b.WriteString(m.renderGrid())
	b.WriteString("\n")
	b.WriteString(m.help.View(m.keys))
	return b.String()
}

func (m *Model) renderGrid() string {
	if len(m.grid.order) == 0 {
		if m.scanning {
			return m.styles.Empty.Render("Looking for photos…")
		}
		return m.styles.Empty.Render("No photos found")
	}

	from, to := m.grid.visible()
	var rows []string
	for start := from; start < to; start += m.grid.columns {
		end := min(to, start+m.grid.columns)
		rendered := make([]string, 0, end-start)
		for _, idx := range m.grid.order[start:end] {
			c := m.cells[idx]
			favorite := m.favorites != nil && m.favorites.IsFavorite(c.photo.Path)
			rendered = append(rendered, c.render(m.styles, m.grid.cellWidth, favorite, m.config.UI.ShowDimensions))
		}
		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, rendered...))
	}
	return lipgloss.JoinVertical(lipgloss.Left, rows...)
}
