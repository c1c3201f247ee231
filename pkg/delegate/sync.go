package delegate

import "sync"

// Sync is a Registry guarded by a mutex. Every operation holds the lock
// for its full duration, so NotifyAll never overlaps a registration or a
// removal on the same Sync.
//
// The lock is not reentrant. A callback running under NotifyAll must not
// call back into the same Sync.
//
// The zero value is ready to use. A Sync must not be copied after first use.
type Sync[A any] struct {
	mu  sync.Mutex
	reg Registry[A]
}

// NewSync creates an empty synchronized registry.
func NewSync[A any]() *Sync[A] {
	return &Sync[A]{}
}

// Add appends e.
func (s *Sync[A]) Add(e Entry[A]) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.reg.Add(e)
}

// Register appends fn under an optional handle.
func (s *Sync[A]) Register(fn func(A), handle ...Handle) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.reg.Register(fn, handle...)
}

// NotifyAll calls every entry with args while holding the lock.
// A slow callback blocks every other operation on s until it returns.
func (s *Sync[A]) NotifyAll(args A) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.reg.NotifyAll(args)
}

// RemoveDelegates removes every entry registered under h.
func (s *Sync[A]) RemoveDelegates(h Handle) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.reg.RemoveDelegates(h)
}

// Len returns the number of entries.
func (s *Sync[A]) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.reg.Len()
}

// Reset removes all entries.
func (s *Sync[A]) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.reg.Reset()
}

// Entries returns a snapshot of the entries in registration order.
func (s *Sync[A]) Entries() []Entry[A] {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.reg.Entries()
}
