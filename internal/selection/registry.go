package selection

// Observer is notified when the selection value of one registered item
// changes. Rendered cells implement it to repaint themselves.
type Observer interface {
	OnSelectionChanged(selected bool)
}

// ObserverFunc adapts a plain function to the Observer interface
type ObserverFunc func(selected bool)

// OnSelectionChanged calls f(selected)
func (f ObserverFunc) OnSelectionChanged(selected bool) {
	f(selected)
}

// entry is the per-index slot of the registry
type entry[T any] struct {
	item     T
	observer Observer
	live     bool
}

// registry assigns dense indices to items by identity key
type registry[T any, K comparable] struct {
	keyFn   func(T) K
	indices map[K]int
	entries []entry[T]
}

func newRegistry[T any, K comparable](keyFn func(T) K) *registry[T, K] {
	return &registry[T, K]{
		keyFn:   keyFn,
		indices: make(map[K]int),
	}
}

// register returns the index for item's key, assigning the next one if the
// key is new. A known key keeps its index; item and observer are replaced.
func (r *registry[T, K]) register(item T, obs Observer) int {
	key := r.keyFn(item)
	if idx, ok := r.indices[key]; ok {
		r.entries[idx] = entry[T]{item: item, observer: obs, live: true}
		return idx
	}

	idx := len(r.entries)
	r.indices[key] = idx
	r.entries = append(r.entries, entry[T]{item: item, observer: obs, live: true})
	return idx
}

// lookup returns the index of a registered key
func (r *registry[T, K]) lookup(key K) (int, bool) {
	idx, ok := r.indices[key]
	return idx, ok
}

// retain forgets every key not produced by items and returns the indices
// that were dropped. Dropped indices are never handed out again.
func (r *registry[T, K]) retain(items []T) []int {
	keep := make(map[K]struct{}, len(items))
	for _, item := range items {
		keep[r.keyFn(item)] = struct{}{}
	}

	var dropped []int
	for key, idx := range r.indices {
		if _, ok := keep[key]; ok {
			continue
		}
		delete(r.indices, key)
		r.entries[idx] = entry[T]{}
		dropped = append(dropped, idx)
	}
	return dropped
}

// valid reports whether i is an assigned index that still holds an item
func (r *registry[T, K]) valid(i int) bool {
	return i >= 0 && i < len(r.entries) && r.entries[i].live
}

func (r *registry[T, K]) len() int {
	return len(r.entries)
}
