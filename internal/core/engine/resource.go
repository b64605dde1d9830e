package engine

// Resource is anything whose lifetime the engine tracks by reference count.
// Grab and Drop must balance; the engine frees the resource when the count
// reaches zero.
type Resource interface {
	Grab()
	Drop()
}

// Handle is a shared-ownership reference to an engine resource. It grabs the
// resource when created and drops it exactly once on Release, so callers never
// touch the raw Grab/Drop pair directly.
type Handle[T Resource] struct {
	res  T
	held bool
}

// NewHandle takes a reference on res and returns the owning handle.
func NewHandle[T Resource](res T) *Handle[T] {
	res.Grab()
	return &Handle[T]{res: res, held: true}
}

// Get returns the underlying resource.
func (h *Handle[T]) Get() T {
	return h.res
}

// Valid reports whether the handle still holds its reference.
func (h *Handle[T]) Valid() bool {
	return h != nil && h.held
}

// Release drops the reference. Safe to call more than once.
func (h *Handle[T]) Release() {
	if h == nil || !h.held {
		return
	}
	h.held = false
	h.res.Drop()
}
