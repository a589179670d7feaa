package selection

// gesture is the transient state of one press-drag-release interaction
type gesture struct {
	active   bool
	start    int
	previous int
	target   bool // value being painted, fixed at Begin
	moves    int  // Extend calls absorbed so far
}

// Dragging reports whether a gesture is in progress
func (s *Scope[T, K]) Dragging() bool {
	return s.gesture.active
}

// Begin starts a gesture at index i. The gesture paints the inverse of the
// current value of i: pressing an unselected item selects, pressing a
// selected one deselects. A Begin during an active gesture ends the stale
// gesture first.
func (s *Scope[T, K]) Begin(i int) {
	if !s.reg.valid(i) {
		return
	}
	if s.gesture.active {
		s.End()
	}

	s.gesture = gesture{
		active:   true,
		start:    i,
		previous: i,
		target:   !s.IsSelected(i),
	}
	s.set(i, s.gesture.target)
}

// Extend moves the active gesture to index i, repainting the cells between
// the previous position and i.
//
// Cells between start and i carry the target value. Cells of the traversed
// segment that fall outside that range are reverted, which covers a gesture
// that shrinks back toward its start and one that crosses over it.
func (s *Scope[T, K]) Extend(i int) {
	g := &s.gesture
	if !g.active {
		return
	}
	if g.moves < s.opts.debounce {
		g.moves++
		return
	}
	if i == g.previous || i < 0 || i >= s.reg.len() {
		return
	}

	// Produces the extension, reversal and crossing results while the
	// painted cells always stay one contiguous range anchored at start.
	lo, hi := ordered(g.previous, i)
	paintLo, paintHi := ordered(g.start, i)
	for k := lo; k <= hi; k++ {
		value := g.target
		if k < paintLo || k > paintHi {
			value = !g.target
		}
		s.set(k, value)
	}
	g.previous = i
}

// End finishes the active gesture and fires the batched notification
func (s *Scope[T, K]) End() {
	if !s.gesture.active {
		return
	}
	s.gesture = gesture{}
	s.notify()
}

func ordered(a, b int) (int, int) {
	if a > b {
		return b, a
	}
	return a, b
}
