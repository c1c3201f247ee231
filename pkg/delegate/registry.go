package delegate

// Notifier is the common surface of Registry, Sync and their decorators.
type Notifier[A any] interface {
	// Add appends a pre-built entry.
	Add(e Entry[A])

	// Register appends fn under an optional handle (nil when omitted).
	Register(fn func(A), handle ...Handle)

	// NotifyAll calls every entry in registration order.
	NotifyAll(args A)

	// RemoveDelegates removes every entry registered under h.
	RemoveDelegates(h Handle)

	// Len returns the number of entries.
	Len() int

	// Reset removes all entries.
	Reset()
}

// Compile-time interface checks.
var (
	_ Notifier[struct{}] = (*Registry[struct{}])(nil)
	_ Notifier[struct{}] = (*Sync[struct{}])(nil)
)

// Registry is an unsynchronized multicast delegate.
// The zero value is ready to use. A Registry must not be copied after
// first use and must not be used from several goroutines at once; use Sync
// for that.
type Registry[A any] struct {
	entries []Entry[A]
}

// New creates an empty registry.
func New[A any]() *Registry[A] {
	return &Registry[A]{}
}

// Bind registers method bound to obj on n. obj is the entry's handle, so
// n.RemoveDelegates(obj) removes it again.
//
//	delegate.Bind(reg, listener, (*Listener).OnValue)
func Bind[T, A any](n Notifier[A], obj *T, method func(*T, A)) {
	n.Add(Method(obj, method))
}

// Add appends e. Zero entries are rejected with a panic.
func (r *Registry[A]) Add(e Entry[A]) {
	if e.IsZero() {
		panic("delegate: zero entry")
	}
	r.entries = append(r.entries, e)
}

// Register appends fn. The optional handle is only used by RemoveDelegates;
// extra handles are ignored.
func (r *Registry[A]) Register(fn func(A), handle ...Handle) {
	var h Handle
	if len(handle) > 0 {
		h = handle[0]
	}
	r.Add(Func(fn, h))
}

// NotifyAll calls every entry with args, in registration order.
// Entries added while notifying are not called by this notification.
// A panicking callback stops the fan-out and propagates to the caller.
func (r *Registry[A]) NotifyAll(args A) {
	for _, e := range r.entries {
		e.call(e.ctx, args)
	}
}

// RemoveDelegates removes every entry registered under h, keeping the
// order of the rest. Unknown handles are a no-op.
func (r *Registry[A]) RemoveDelegates(h Handle) {
	kept := r.entries[:0]
	for _, e := range r.entries {
		if !SameHandle(e.ctx, h) {
			kept = append(kept, e)
		}
	}
	// Clear the tail so removed closures can be collected.
	clear(r.entries[len(kept):])
	r.entries = kept
}

// Len returns the number of entries.
func (r *Registry[A]) Len() int {
	return len(r.entries)
}

// Reset removes all entries.
func (r *Registry[A]) Reset() {
	clear(r.entries)
	r.entries = r.entries[:0]
}

// Entries returns a copy of the entries in registration order.
func (r *Registry[A]) Entries() []Entry[A] {
	out := make([]Entry[A], len(r.entries))
	copy(out, r.entries)
	return out
}
