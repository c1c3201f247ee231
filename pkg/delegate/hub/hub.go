// Package hub groups synchronized delegates by key, one delegate per topic.
package hub

import (
	"sync"

	"github.com/randalmurphal/delegate/pkg/delegate"
)

// Hub is a thread-safe set of delegates indexed by key.
// Delegates are created on first use and live until Delete.
type Hub[K comparable, A any] struct {
	mu        sync.RWMutex
	delegates map[K]*delegate.Sync[A]
}

// New creates an empty hub.
func New[K comparable, A any]() *Hub[K, A] {
	return &Hub[K, A]{
		delegates: make(map[K]*delegate.Sync[A]),
	}
}

// Delegate returns the delegate for key, creating it if needed.
// At most one delegate is created per key, even under concurrent access.
func (h *Hub[K, A]) Delegate(key K) *delegate.Sync[A] {
	// Fast path
	h.mu.RLock()
	d, ok := h.delegates[key]
	h.mu.RUnlock()
	if ok {
		return d
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	// Double-check after acquiring write lock
	if d, ok := h.delegates[key]; ok {
		return d
	}
	d = delegate.NewSync[A]()
	h.delegates[key] = d
	return d
}

// Lookup returns the delegate for key without creating it.
func (h *Hub[K, A]) Lookup(key K) (*delegate.Sync[A], bool) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	d, ok := h.delegates[key]
	return d, ok
}

// Register adds fn to the delegate for key.
func (h *Hub[K, A]) Register(key K, fn func(A), handle ...delegate.Handle) {
	var hd delegate.Handle
	if len(handle) > 0 {
		hd = handle[0]
	}
	h.add(key, delegate.Func(fn, hd))
}

// Bind registers method bound to obj on the delegate for key.
func Bind[K comparable, T, A any](h *Hub[K, A], key K, obj *T, method func(*T, A)) {
	h.add(key, delegate.Method(obj, method))
}

// afterAdd runs between adding an entry and re-checking the key.
// Tests use it to force a Delete into that window.
var afterAdd func()

// add appends e to the delegate for key. If Delete drops that delegate
// before the entry is confirmed reachable, the entry is added again to
// the key's current delegate.
func (h *Hub[K, A]) add(key K, e delegate.Entry[A]) {
	for {
		d := h.Delegate(key)
		d.Add(e)
		if afterAdd != nil {
			afterAdd()
		}
		if cur, ok := h.Lookup(key); ok && cur == d {
			return
		}
	}
}

// Notify calls every entry registered for key. It returns false, and does
// nothing, when no delegate exists for key.
//
// The hub lock is not held while callbacks run, so callbacks may register
// on other keys. They must not touch the delegate that is notifying them.
func (h *Hub[K, A]) Notify(key K, args A) bool {
	d, ok := h.Lookup(key)
	if !ok {
		return false
	}
	d.NotifyAll(args)
	return true
}

// RemoveDelegates removes every entry registered under handle from every key.
func (h *Hub[K, A]) RemoveDelegates(handle delegate.Handle) {
	h.Range(func(_ K, d *delegate.Sync[A]) bool {
		d.RemoveDelegates(handle)
		return true
	})
}

// Delete drops the delegate for key and all of its entries.
// Registrations racing with Delete end up either dropped with the old
// delegate (if they completed first) or on a new delegate for key.
func (h *Hub[K, A]) Delete(key K) {
	h.mu.Lock()
	defer h.mu.Unlock()
	delete(h.delegates, key)
}

// Keys returns all keys with a delegate.
// The order is not guaranteed.
func (h *Hub[K, A]) Keys() []K {
	h.mu.RLock()
	defer h.mu.RUnlock()
	keys := make([]K, 0, len(h.delegates))
	for k := range h.delegates {
		keys = append(keys, k)
	}
	return keys
}

// Len returns the number of keys with a delegate.
func (h *Hub[K, A]) Len() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.delegates)
}

// Range calls fn for each key and its delegate until fn returns false.
//
// Range iterates over a snapshot, so fn may call Delegate or Delete
// without affecting the current iteration.
func (h *Hub[K, A]) Range(fn func(K, *delegate.Sync[A]) bool) {
	h.mu.RLock()
	snapshot := make(map[K]*delegate.Sync[A], len(h.delegates))
	for k, d := range h.delegates {
		snapshot[k] = d
	}
	h.mu.RUnlock()

	for k, d := range snapshot {
		if !fn(k, d) {
			return
		}
	}
}
