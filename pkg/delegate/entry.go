package delegate

// Trampoline forwards a notification to one registered target.
// ctx is the entry's handle; for bound methods it is the receiver.
type Trampoline[A any] func(ctx Handle, args A)

// Entry is one registered callback: a trampoline plus the handle it was
// registered under. Entries are immutable values and safe to copy.
type Entry[A any] struct {
	call Trampoline[A]
	ctx  Handle
}

// Method builds an entry that calls method on obj.
// The entry's handle is obj.
//
// Method panics if obj or method is nil.
func Method[T, A any](obj *T, method func(*T, A)) Entry[A] {
	if method == nil {
		panic("delegate: nil method")
	}
	if obj == nil {
		panic("delegate: nil instance")
	}
	return Entry[A]{
		call: func(ctx Handle, args A) {
			method(ctx.(*T), args)
		},
		ctx: obj,
	}
}

// Func builds an entry that calls fn. The handle is only used as a
// removal key and may be nil.
//
// Func panics if fn is nil.
func Func[A any](fn func(A), handle Handle) Entry[A] {
	if fn == nil {
		panic("delegate: nil callback")
	}
	return Entry[A]{
		call: func(_ Handle, args A) {
			fn(args)
		},
		ctx: handle,
	}
}

// Invoke calls the entry's target with args.
func (e Entry[A]) Invoke(args A) {
	e.call(e.ctx, args)
}

// Handle returns the handle the entry was registered under.
func (e Entry[A]) Handle() Handle {
	return e.ctx
}

// IsZero reports whether e was not built by Method or Func.
func (e Entry[A]) IsZero() bool {
	return e.call == nil
}
