/*
Package delegate provides multicast callback registries.

# Overview

A delegate collects callbacks that share one argument type and invokes all of
them with a single call. A producer notifies N listeners without either side
knowing the other's concrete type.

Two registries are provided:
  - Registry: the unsynchronized core. Use it when the caller already
    guarantees exclusive access.
  - Sync: wraps a Registry with a mutex held for the full duration of every
    operation, including notification.

# Registration

Free functions and function literals are registered with an optional handle:

	var reg delegate.Registry[int]
	reg.Register(func(n int) { fmt.Println("got", n) })
	reg.Register(onValue, "metrics")

Bound methods are registered with Bind using a method expression. The
instance pointer becomes the entry's handle:

	type Counter struct{ total int }

	func (c *Counter) Add(n int) { c.total += n }

	c := &Counter{}
	delegate.Bind(&reg, c, (*Counter).Add)

Signatures with several arguments use a struct as the argument type:

	type Moved struct{ X, Y int }
	var moves delegate.Sync[Moved]

# Notification and removal

NotifyAll calls every entry in registration order:

	reg.NotifyAll(5)

RemoveDelegates removes every entry registered under a handle, including
duplicates. Unknown handles are ignored:

	reg.RemoveDelegates(c)
	reg.RemoveDelegates("metrics")

# Handles

A handle is any comparable value: a pointer, an integer, a string, or a
Token from NewToken. Handles are only compared, never dereferenced.

# Failure

The registries recognize no errors of their own. A panicking callback
propagates to the caller of NotifyAll and the remaining callbacks are not
invoked. Sync releases its lock on the way out.

# Concurrency

Registry must not be used from several goroutines at once. Sync is safe for
concurrent use, but its lock is not reentrant: a callback must not call
Register, RemoveDelegates or NotifyAll on the Sync that is notifying it.
*/
package delegate
