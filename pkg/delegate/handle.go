package delegate

import (
	"fmt"
	"reflect"

	"github.com/google/uuid"
)

// Handle identifies a group of registrations for removal.
// Any comparable value works: a pointer, an integer, a string or a Token.
type Handle = any

// Token is a generated handle for callers without a natural identity value.
type Token string

// NewToken returns a new random Token.
func NewToken() Token {
	return Token(fmt.Sprintf("dlg-%s", uuid.New().String()[:8]))
}

// String implements fmt.Stringer.
func (t Token) String() string {
	return string(t)
}

// SameHandle reports whether a and b identify the same registrations.
// Values of different dynamic types never match, and values whose dynamic
// type is not comparable never match anything.
func SameHandle(a, b Handle) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	va, vb := reflect.ValueOf(a), reflect.ValueOf(b)
	if va.Type() != vb.Type() || !va.Comparable() || !vb.Comparable() {
		return false
	}
	return a == b
}
