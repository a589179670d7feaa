package ui

// cellHeight is the rendered height of a cell: two text lines plus border
const cellHeight = 4

// gridLayout maps screen coordinates onto the cells of the photo grid. It is
// the selection.Locator of the view.
type gridLayout struct {
	top       int // first screen row of the grid
	cellWidth int
	columns   int
	rows      int // visible rows
	offset    int // first visible row
	order     []int
}

func newGridLayout(top, cellWidth int) *gridLayout {
	return &gridLayout{top: top, cellWidth: cellWidth, columns: 1, rows: 1}
}

// resize recomputes columns and visible rows for a screen of width x height,
// leaving footer lines free at the bottom
func (g *gridLayout) resize(width, height, footer int) {
	g.columns = max(1, width/g.cellWidth)
	g.rows = max(1, (height-g.top-footer)/cellHeight)
	g.clampOffset()
}

// setOrder sets the scope indices in display order
func (g *gridLayout) setOrder(order []int) {
	g.order = order
	g.clampOffset()
}

func (g *gridLayout) totalRows() int {
	return (len(g.order) + g.columns - 1) / g.columns
}

func (g *gridLayout) scroll(rows int) {
	g.offset += rows
	g.clampOffset()
}

func (g *gridLayout) clampOffset() {
	maxOffset := max(0, g.totalRows()-g.rows)
	g.offset = min(max(0, g.offset), maxOffset)
}

// IndexAt returns the scope index of the cell at screen position x, y
func (g *gridLayout) IndexAt(x, y int) (int, bool) {
	if x < 0 || y < g.top {
		return 0, false
	}
	col := x / g.cellWidth
	row := (y - g.top) / cellHeight
	if col >= g.columns || row >= g.rows {
		return 0, false
	}
	pos := (g.offset+row)*g.columns + col
	if pos >= len(g.order) {
		return 0, false
	}
	return g.order[pos], true
}

// visible returns the slice of display positions currently on screen
func (g *gridLayout) visible() (from, to int) {
	from = g.offset * g.columns
	to = min(len(g.order), from+g.rows*g.columns)
	return from, max(from, to)
}
