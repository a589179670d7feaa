package selection

import (
	"github.com/RoaringBitmap/roaring/v2"
)

// DefaultDebounceMoves is the number of Extend calls absorbed at the start of
// every gesture. Pointer devices report a few events of jitter right after a
// press, and those must not be read as drag intent.
const DefaultDebounceMoves = 3

// Option configures a Scope
type Option[T any] func(*options[T])

type options[T any] struct {
	debounce int
	onChange func([]T)
}

// WithDebounce overrides DefaultDebounceMoves. Zero disables debouncing.
func WithDebounce[T any](moves int) Option[T] {
	return func(o *options[T]) {
		if moves < 0 {
			moves = 0
		}
		o.debounce = moves
	}
}

// WithOnChange sets the batched notification. It receives the ordered
// selection when a gesture ends and after SelectAll or Cancel.
func WithOnChange[T any](fn func(items []T)) Option[T] {
	return func(o *options[T]) {
		o.onChange = fn
	}
}

// Scope is one selection context, for example a single gallery view. It owns
// the item registry, the selection vector and the gesture state, and lives
// exactly as long as the view it serves.
//
// A Scope is not safe for concurrent use. All calls are expected to come from
// the goroutine that processes input events.
type Scope[T any, K comparable] struct {
	reg      *registry[T, K]
	selected *roaring.Bitmap
	gesture  gesture
	opts     options[T]
}

// NewScope creates a scope whose items are identified by keyFn
func NewScope[T any, K comparable](keyFn func(T) K, opts ...Option[T]) *Scope[T, K] {
	o := options[T]{debounce: DefaultDebounceMoves}
	for _, opt := range opts {
		opt(&o)
	}
	return &Scope[T, K]{
		reg:      newRegistry(keyFn),
		selected: roaring.New(),
		opts:     o,
	}
}

// NewComparableScope creates a scope that uses the item value itself as its
// identity key.
func NewComparableScope[T comparable](opts ...Option[T]) *Scope[T, T] {
	return NewScope(func(item T) T { return item }, opts...)
}

// Register returns the stable index for item. Registering a known key again
// returns the same index and replaces the stored item and observer, so a
// re-rendered cell keeps receiving updates without breaking a gesture.
func (s *Scope[T, K]) Register(item T, obs Observer) int {
	return s.reg.register(item, obs)
}

// Lookup returns the index assigned to key
func (s *Scope[T, K]) Lookup(key K) (int, bool) {
	return s.reg.lookup(key)
}

// Retain drops every registered item whose key is not produced by items.
// Their selection is cleared without notification since their observers are
// gone. It returns the number of dropped entries.
func (s *Scope[T, K]) Retain(items []T) int {
	dropped := s.reg.retain(items)
	for _, idx := range dropped {
		s.selected.Remove(uint32(idx))
	}
	return len(dropped)
}

// Len returns the number of indices assigned so far, including dropped ones
func (s *Scope[T, K]) Len() int {
	return s.reg.len()
}

// Item returns the item stored at index i
func (s *Scope[T, K]) Item(i int) (T, bool) {
	if !s.reg.valid(i) {
		var zero T
		return zero, false
	}
	return s.reg.entries[i].item, true
}

// IsSelected reports the selection value at index i
func (s *Scope[T, K]) IsSelected(i int) bool {
	if i < 0 {
		return false
	}
	return s.selected.Contains(uint32(i))
}

// Count returns the number of selected items
func (s *Scope[T, K]) Count() int {
	return int(s.selected.GetCardinality())
}

// Get returns the selected items in ascending index order
func (s *Scope[T, K]) Get() []T {
	items := make([]T, 0, s.selected.GetCardinality())
	it := s.selected.Iterator()
	for it.HasNext() {
		idx := int(it.Next())
		if s.reg.valid(idx) {
			items = append(items, s.reg.entries[idx].item)
		}
	}
	return items
}

// SelectAll selects every registered item. It does not begin or end a
// gesture.
func (s *Scope[T, K]) SelectAll() {
	for i := 0; i < s.reg.len(); i++ {
		s.set(i, true)
	}
	s.notify()
}

// Cancel discards any gesture in progress and deselects everything
func (s *Scope[T, K]) Cancel() {
	s.gesture = gesture{}
	it := s.selected.Clone().Iterator()
	for it.HasNext() {
		s.set(int(it.Next()), false)
	}
	s.selected.Clear()
	s.notify()
}

// set writes value at index i and notifies the observer if it changed
func (s *Scope[T, K]) set(i int, value bool) {
	if !s.reg.valid(i) || s.IsSelected(i) == value {
		return
	}
	if value {
		s.selected.Add(uint32(i))
	} else {
		s.selected.Remove(uint32(i))
	}
	if obs := s.reg.entries[i].observer; obs != nil {
		obs.OnSelectionChanged(value)
	}
}

func (s *Scope[T, K]) notify() {
	if s.opts.onChange != nil {
		s.opts.onChange(s.Get())
	}
}
