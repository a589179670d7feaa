package selection

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// recorder counts observer calls per index
type recorder struct {
	calls map[int][]bool
}

func newRecorder() *recorder {
	return &recorder{calls: make(map[int][]bool)}
}

func (r *recorder) observer(idx int) Observer {
	return ObserverFunc(func(selected bool) {
		r.calls[idx] = append(r.calls[idx], selected)
	})
}

func (r *recorder) total() int {
	n := 0
	for _, c := range r.calls {
		n += len(c)
	}
	return n
}

func (r *recorder) reset() {
	r.calls = make(map[int][]bool)
}

// newTestScope registers n string items "p0".."p<n-1>"
func newTestScope(t *testing.T, n int, opts ...Option[string]) (*Scope[string, string], *recorder) {
	t.Helper()
	s := NewComparableScope(opts...)
	rec := newRecorder()
	for i := 0; i < n; i++ {
		idx := s.Register(fmt.Sprintf("p%d", i), rec.observer(i))
		require.Equal(t, i, idx)
	}
	return s, rec
}

func selectedIndices[T any, K comparable](s *Scope[T, K]) []int {
	var out []int
	for i := 0; i < s.Len(); i++ {
		if s.IsSelected(i) {
			out = append(out, i)
		}
	}
	return out
}

func TestRegisterIsIdempotent(t *testing.T) {
	s := NewComparableScope[string]()

	first := s.Register("a", nil)
	second := s.Register("a", nil)

	assert.Equal(t, first, second)
	assert.Equal(t, 1, s.Len())
}

func TestRegisterAssignsDenseIndices(t *testing.T) {
	s := NewComparableScope[string]()

	for i, key := range []string{"a", "b", "c", "b", "d", "a"} {
		idx := s.Register(key, nil)
		switch key {
		case "a":
			assert.Equal(t, 0, idx, "call %d", i)
		case "b":
			assert.Equal(t, 1, idx, "call %d", i)
		case "c":
			assert.Equal(t, 2, idx, "call %d", i)
		case "d":
			assert.Equal(t, 3, idx, "call %d", i)
		}
	}
	assert.Equal(t, 4, s.Len())
}

func TestRegisterWithKeyFunctionReplacesItem(t *testing.T) {
	type photo struct {
		ID    string
		Title string
	}
	s := NewScope(func(p photo) string { return p.ID }, WithDebounce[photo](0))

	var oldCalls, newCalls int
	idx := s.Register(photo{ID: "x", Title: "old"}, ObserverFunc(func(bool) { oldCalls++ }))
	again := s.Register(photo{ID: "x", Title: "new"}, ObserverFunc(func(bool) { newCalls++ }))
	require.Equal(t, idx, again)

	s.Begin(idx)
	s.End()

	assert.Equal(t, 0, oldCalls, "replaced observer must not be called")
	assert.Equal(t, 1, newCalls)
	assert.Equal(t, []photo{{ID: "x", Title: "new"}}, s.Get())
}

func TestSingleClickTogglesOneItem(t *testing.T) {
	s, rec := newTestScope(t, 5)

	s.Begin(3)
	s.End()

	assert.Equal(t, []int{3}, selectedIndices(s))
	assert.Equal(t, 1, rec.total())
	assert.Equal(t, []bool{true}, rec.calls[3])

	s.Begin(3)
	s.End()

	assert.Empty(t, selectedIndices(s))
	assert.Equal(t, []bool{true, false}, rec.calls[3])
}

func TestPureExtension(t *testing.T) {
	s, _ := newTestScope(t, 10, WithDebounce[string](0))

	s.Begin(2)
	s.Extend(5)
	s.End()

	assert.Equal(t, []int{2, 3, 4, 5}, selectedIndices(s))
}

func TestDirectionReversal(t *testing.T) {
	s, _ := newTestScope(t, 10, WithDebounce[string](0))

	s.Begin(5)
	s.Extend(2)
	s.Extend(8)
	s.End()

	assert.Equal(t, []int{5, 6, 7, 8}, selectedIndices(s))
}

func TestCrossingStart(t *testing.T) {
	s, _ := newTestScope(t, 10, WithDebounce[string](0))

	s.Begin(5)
	s.Extend(3)
	s.Extend(7)
	s.End()

	assert.Equal(t, []int{5, 6, 7}, selectedIndices(s))
}

func TestShrinkTowardStart(t *testing.T) {
	tests := []struct {
		name  string
		start int
		moves []int
		want  []int
	}{
		{name: "right side", start: 2, moves: []int{6, 4}, want: []int{2, 3, 4}},
		{name: "left side", start: 6, moves: []int{2, 4}, want: []int{4, 5, 6}},
		{name: "back onto start from right", start: 5, moves: []int{8, 5}, want: []int{5}},
		{name: "back onto start from left", start: 5, moves: []int{2, 5}, want: []int{5}},
		{name: "zigzag", start: 4, moves: []int{7, 1, 6, 3}, want: []int{3, 4}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, _ := newTestScope(t, 10, WithDebounce[string](0))
			s.Begin(tt.start)
			for _, m := range tt.moves {
				s.Extend(m)
			}
			s.End()
			assert.Equal(t, tt.want, selectedIndices(s))
		})
	}
}

func TestDeselectGesture(t *testing.T) {
	s, _ := newTestScope(t, 10, WithDebounce[string](0))
	s.SelectAll()

	s.Begin(4)
	s.Extend(7)
	s.Extend(2)
	s.End()

	assert.Equal(t, []int{0, 1, 5, 6, 7, 8, 9}, selectedIndices(s))
}

func TestDebounce(t *testing.T) {
	s, rec := newTestScope(t, 10)

	s.Begin(1)
	rec.reset()
	for i := 0; i < DefaultDebounceMoves; i++ {
		s.Extend(9)
	}
	assert.Equal(t, []int{1}, selectedIndices(s), "absorbed moves must not paint")
	assert.Zero(t, rec.total())

	s.Extend(3)
	assert.Equal(t, []int{1, 2, 3}, selectedIndices(s), "range measured from the press position")
	s.End()
}

func TestNoSpuriousCallbacks(t *testing.T) {
	s, rec := newTestScope(t, 10, WithDebounce[string](0))
	s.Begin(2)
	s.Extend(6)
	s.End()
	rec.reset()

	// A second gesture over already selected cells starting on an unselected
	// one only touches the cells that change.
	s.Begin(8)
	s.Extend(4)
	s.End()

	assert.Equal(t, []int{2, 3, 4, 5, 6, 7, 8}, selectedIndices(s))
	assert.Equal(t, 2, rec.total())
	assert.Equal(t, []bool{true}, rec.calls[7])
	assert.Equal(t, []bool{true}, rec.calls[8])
}

func TestExtendAndEndWhileIdle(t *testing.T) {
	var notified int
	s, rec := newTestScope(t, 5, WithDebounce[string](0), WithOnChange(func([]string) { notified++ }))

	s.Extend(3)
	s.End()

	assert.Empty(t, selectedIndices(s))
	assert.Zero(t, rec.total())
	assert.Zero(t, notified)
	assert.False(t, s.Dragging())
}

func TestOutOfRangeIndicesAreIgnored(t *testing.T) {
	s, _ := newTestScope(t, 5, WithDebounce[string](0))

	s.Begin(7)
	assert.False(t, s.Dragging())

	s.Begin(1)
	s.Extend(12)
	s.Extend(-1)
	assert.Equal(t, []int{1}, selectedIndices(s))

	s.Extend(3)
	s.End()
	assert.Equal(t, []int{1, 2, 3}, selectedIndices(s))
	assert.Equal(t, 5, s.Len(), "vector must not grow past registered indices")
}

func TestBeginWhileDraggingRestarts(t *testing.T) {
	var batches [][]string
	s, _ := newTestScope(t, 10, WithDebounce[string](0), WithOnChange(func(items []string) {
		batches = append(batches, items)
	}))

	s.Begin(1)
	s.Extend(3)
	s.Begin(6)
	s.Extend(7)
	s.End()

	assert.Equal(t, []int{1, 2, 3, 6, 7}, selectedIndices(s))
	require.Len(t, batches, 2)
	assert.Equal(t, []string{"p1", "p2", "p3"}, batches[0])
	assert.Equal(t, []string{"p1", "p2", "p3", "p6", "p7"}, batches[1])
}

func TestEndFiresOneBatchedNotification(t *testing.T) {
	var batches [][]string
	s, _ := newTestScope(t, 10, WithDebounce[string](0), WithOnChange(func(items []string) {
		batches = append(batches, items)
	}))

	s.Begin(0)
	s.Extend(2)
	s.Extend(4)
	assert.Empty(t, batches, "no notification during a gesture")
	s.End()

	require.Len(t, batches, 1)
	assert.Equal(t, []string{"p0", "p1", "p2", "p3", "p4"}, batches[0])
}

func TestCancelClearsAndNotifies(t *testing.T) {
	var batches [][]string
	s, rec := newTestScope(t, 10, WithDebounce[string](0), WithOnChange(func(items []string) {
		batches = append(batches, items)
	}))
	s.Begin(2)
	s.Extend(4)
	s.End()
	s.Begin(8)
	s.End()
	rec.reset()
	batches = nil

	s.Cancel()

	assert.Empty(t, selectedIndices(s))
	assert.Zero(t, s.Count())
	assert.Equal(t, 4, rec.total())
	for _, idx := range []int{2, 3, 4, 8} {
		assert.Equal(t, []bool{false}, rec.calls[idx], "index %d", idx)
	}
	require.Len(t, batches, 1)
	assert.Empty(t, batches[0])
}

func TestCancelDuringGesture(t *testing.T) {
	s, _ := newTestScope(t, 10, WithDebounce[string](0))

	s.Begin(2)
	s.Extend(5)
	s.Cancel()

	assert.False(t, s.Dragging())
	assert.Empty(t, selectedIndices(s))

	s.Extend(7)
	assert.Empty(t, selectedIndices(s))
}

func TestSelectAllCompleteness(t *testing.T) {
	var batches [][]string
	s, rec := newTestScope(t, 6, WithDebounce[string](0), WithOnChange(func(items []string) {
		batches = append(batches, items)
	}))
	s.Begin(1)
	s.Extend(2)
	s.End()
	rec.reset()

	s.SelectAll()

	assert.Equal(t, []string{"p0", "p1", "p2", "p3", "p4", "p5"}, s.Get())
	assert.Equal(t, 4, rec.total(), "only changed cells are notified")
	require.Len(t, batches, 2)
	assert.Equal(t, s.Get(), batches[1])
}

func TestSelectAllDoesNotEndGesture(t *testing.T) {
	s, _ := newTestScope(t, 6, WithDebounce[string](0))

	s.Begin(1)
	s.SelectAll()

	assert.True(t, s.Dragging())
}

func TestRetainDropsMissingItems(t *testing.T) {
	s, rec := newTestScope(t, 5, WithDebounce[string](0))
	s.SelectAll()
	rec.reset()

	dropped := s.Retain([]string{"p0", "p2", "p4"})

	assert.Equal(t, 2, dropped)
	assert.Equal(t, []string{"p0", "p2", "p4"}, s.Get())
	assert.Equal(t, 3, s.Count())
	assert.Zero(t, rec.total(), "dropped observers are not called")

	_, ok := s.Item(1)
	assert.False(t, ok)
	_, ok = s.Lookup("p1")
	assert.False(t, ok)

	// a returning key gets a fresh index, never a recycled one
	idx := s.Register("p1", nil)
	assert.Equal(t, 5, idx)

	// painting across a dropped index skips it
	s.Cancel()
	s.Begin(0)
	s.Extend(3)
	s.End()
	assert.Equal(t, []string{"p0", "p2"}, s.Get())
}

func TestGetReturnsAscendingOrder(t *testing.T) {
	s, _ := newTestScope(t, 10, WithDebounce[string](0))

	s.Begin(7)
	s.End()
	s.Begin(2)
	s.End()
	s.Begin(5)
	s.End()

	assert.Equal(t, []string{"p2", "p5", "p7"}, s.Get())
}
