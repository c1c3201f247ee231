package delegate

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

type counter struct {
	total int
}

func (c *counter) Add(n int) {
	c.total += n
}

func TestMethodEntry(t *testing.T) {
	c := &counter{}
	e := Method(c, (*counter).Add)

	assert.False(t, e.IsZero())
	assert.Same(t, c, e.Handle())

	e.Invoke(2)
	e.Invoke(3)
	assert.Equal(t, 5, c.total)
}

func TestFuncEntry(t *testing.T) {
	var got int
	e := Func(func(n int) { got = n }, "h")

	assert.Equal(t, "h", e.Handle())
	e.Invoke(11)
	assert.Equal(t, 11, got)
}

func TestFuncEntryNilHandle(t *testing.T) {
	e := Func(func(int) {}, nil)
	assert.Nil(t, e.Handle())
}

func TestEntryConstructorPanics(t *testing.T) {
	assert.PanicsWithValue(t, "delegate: nil callback", func() {
		Func[int](nil, nil)
	})
	assert.PanicsWithValue(t, "delegate: nil method", func() {
		Method[counter, int](&counter{}, nil)
	})
	assert.PanicsWithValue(t, "delegate: nil instance", func() {
		Method[counter](nil, (*counter).Add)
	})
}

func TestEntryCopiesShareTarget(t *testing.T) {
	c := &counter{}
	e := Method(c, (*counter).Add)
	cp := e

	e.Invoke(1)
	cp.Invoke(1)
	assert.Equal(t, 2, c.total)
}

func TestZeroEntry(t *testing.T) {
	var e Entry[int]
	assert.True(t, e.IsZero())
	assert.Nil(t, e.Handle())
}

func TestSameHandle(t *testing.T) {
	p1, p2 := &counter{}, &counter{}
	tok := NewToken()

	tests := []struct {
		name string
		a, b Handle
		want bool
	}{
		{"both nil", nil, nil, true},
		{"nil and value", nil, 0, false},
		{"same pointer", p1, p1, true},
		{"different pointers", p1, p2, false},
		{"equal strings", "x", "x", true},
		{"equal ints", 3, 3, true},
		{"int and int64", 3, int64(3), false},
		{"token and its string", tok, string(tok), false},
		{"same token", tok, tok, true},
		{"slices", []int{1}, []int{1}, false},
		{"maps", map[string]int{}, map[string]int{}, false},
		{"comparable structs", struct{ A int }{1}, struct{ A int }{1}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, SameHandle(tt.a, tt.b))
			assert.Equal(t, tt.want, SameHandle(tt.b, tt.a))
		})
	}
}

func TestNewToken(t *testing.T) {
	a, b := NewToken(), NewToken()

	assert.NotEqual(t, a, b)
	assert.True(t, strings.HasPrefix(a.String(), "dlg-"))
	assert.Len(t, a.String(), len("dlg-")+8)
}
