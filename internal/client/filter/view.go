package filter

import (
	"sync"
	"time"
)

// Page is what a view currently shows.
type Page[T any] struct {
	Items   []T
	Matched int
	Shown   int
	HasMore bool
	State   State
}

// View is one browsing session over a read-only catalog. Mutations are
// serialized: each one updates the state, recomputes the matches, resets
// the pager and notifies before the next one starts. The OnChange callback
// runs inside that critical section and must not mutate the view.
type View[T Item] struct {
	pass sync.Mutex

	mu       sync.RWMutex
	items    []T
	state    State
	matched  []T
	pager    Pager
	onChange func(Page[T])

	debounce *Debouncer
}

func NewView[T Item](items []T, pageSize int, quiescence time.Duration) *View[T] {
	v := &View[T]{
		items:    items,
		pager:    NewPager(pageSize),
		debounce: NewDebouncer(quiescence),
	}
	v.matched = Apply(items, v.state)
	return v
}

// OnChange registers the callback invoked after every mutation.
func (v *View[T]) OnChange(fn func(Page[T])) {
	v.pass.Lock()
	defer v.pass.Unlock()
	v.mu.Lock()
	v.onChange = fn
	v.mu.Unlock()
}

func (v *View[T]) SetFacet(f Facet, value string) Page[T] {
	return v.mutate(func() {
		v.state = v.state.With(f, value)
		v.refilterLocked()
	})
}

// SetSearch applies a search term immediately and drops any pending
// debounced term.
func (v *View[T]) SetSearch(text string) Page[T] {
	v.debounce.Stop()
	return v.setSearch(text)
}

func (v *View[T]) setSearch(text string) Page[T] {
	return v.mutate(func() {
		v.state = State{Search: text, Facets: v.state.Facets}
		v.refilterLocked()
	})
}

// SearchDebounced applies text once input has been idle for the
// quiescence window. Only the last term of a burst is applied.
func (v *View[T]) SearchDebounced(text string) {
	v.debounce.Trigger(func() { v.setSearch(text) })
}

// FlushSearch applies a pending debounced term now.
func (v *View[T]) FlushSearch() {
	v.debounce.Flush()
}

// Reset clears the search term and every facet.
func (v *View[T]) Reset() Page[T] {
	v.debounce.Stop()
	return v.mutate(func() {
		v.state = State{}
		v.refilterLocked()
	})
}

// LoadMore shows one more page of the current matches.
func (v *View[T]) LoadMore() Page[T] {
	return v.mutate(func() {
		v.pager.LoadMore(len(v.matched))
	})
}

func (v *View[T]) Page() Page[T] {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return v.pageLocked()
}

// Matched returns every record matching the current state.
func (v *View[T]) Matched() []T {
	v.mu.RLock()
	defer v.mu.RUnlock()
	out := make([]T, len(v.matched))
	copy(out, v.matched)
	return out
}

func (v *View[T]) State() State {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return v.state
}

// Close drops a pending debounced search.
func (v *View[T]) Close() {
	v.debounce.Stop()
}

func (v *View[T]) mutate(update func()) Page[T] {
	v.pass.Lock()
	defer v.pass.Unlock()

	v.mu.Lock()
	update()
	page := v.pageLocked()
	notify := v.onChange
	v.mu.Unlock()

	if notify != nil {
		notify(page)
	}
	return page
}

func (v *View[T]) refilterLocked() {
	v.matched = Apply(v.items, v.state)
	v.pager.Reset()
}

func (v *View[T]) pageLocked() Page[T] {
	shown := v.pager.Visible(len(v.matched))
	items := make([]T, shown)
	copy(items, v.matched[:shown])
	return Page[T]{
		Items:   items,
		Matched: len(v.matched),
		Shown:   shown,
		HasMore: v.pager.HasMore(len(v.matched)),
		State:   v.state,
	}
}
