package binding

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExpando_InsertionOrder(t *testing.T) {
	x := NewExpando()
	x.Set(MakeKey("b"), 1)
	x.Set(MakeKey("a"), 2)
	x.Set(MakeKey("c"), 3)
	x.Set(MakeKey("b"), 4)

	assert.Equal(t, []string{"b", "a", "c"}, x.Keys())
	v, ok := x.Get(MakeKey("b"))
	assert.True(t, ok)
	assert.Equal(t, 4, v)
}

func TestExpando_DeleteReindexes(t *testing.T) {
	x := NewExpando()
	for _, k := range []string{"a", "b", "c", "d"} {
		x.Set(MakeKey(k), k)
	}
	assert.True(t, x.Delete(MakeKey("b")))
	assert.False(t, x.Delete(MakeKey("b")))
	assert.Equal(t, []string{"a", "c", "d"}, x.Keys())

	v, ok := x.Get(MakeKey("d"))
	assert.True(t, ok)
	assert.Equal(t, "d", v)

	x.Set(MakeKey("b"), "again")
	assert.Equal(t, []string{"a", "c", "d", "b"}, x.Keys())
}

func TestExpando_KeysAreInterned(t *testing.T) {
	name := string([]byte("dynamic"))
	assert.Equal(t, MakeKey("dynamic"), MakeKey(name))
}

func TestExpando_Clear(t *testing.T) {
	x := NewExpando()
	x.Set(MakeKey("a"), 1)
	x.Clear()
	assert.Equal(t, 0, x.Len())
	assert.False(t, x.Has(MakeKey("a")))
	x.Set(MakeKey("z"), 1)
	assert.Equal(t, []string{"z"}, x.Keys())
}

func TestToInt(t *testing.T) {
	n, ok := ToInt(int64(3))
	assert.True(t, ok)
	assert.Equal(t, 3, n)

	_, ok = ToInt(2.5)
	assert.False(t, ok)
	_, ok = ToInt("3")
	assert.False(t, ok)
}
