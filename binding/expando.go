package binding

import "unique"

// Key is an interned expando key. Equal names share one handle, so map
// lookups compare a single pointer.
type Key = unique.Handle[string]

// MakeKey interns name.
func MakeKey(name string) Key {
	return unique.Make(name)
}

// Invocable is implemented by expando values that can be called.
type Invocable interface {
	Invoke(args []any) (any, error)
}

// Func adapts a plain function to Invocable.
type Func func(args []any) (any, error)

// Invoke calls f.
func (f Func) Invoke(args []any) (any, error) {
	return f(args)
}

func asInvocable(v any) (Invocable, bool) {
	switch fn := v.(type) {
	case Invocable:
		return fn, true
	case func([]any) (any, error):
		return Func(fn), true
	}
	return nil, false
}

type expandoEntry struct {
	key   Key
	value any
}

// Expando is an insertion-ordered store of script-created properties. It is
// not safe for concurrent use.
type Expando struct {
	index   map[Key]int
	entries []expandoEntry
}

// NewExpando returns an empty store.
func NewExpando() *Expando {
	return &Expando{index: make(map[Key]int)}
}

// Get returns the value stored under key.
func (x *Expando) Get(key Key) (any, bool) {
	i, ok := x.index[key]
	if !ok {
		return nil, false
	}
	return x.entries[i].value, true
}

// Has reports whether key is present.
func (x *Expando) Has(key Key) bool {
	_, ok := x.index[key]
	return ok
}

// Set inserts or overwrites key. Overwriting keeps the original position.
func (x *Expando) Set(key Key, value any) {
	if i, ok := x.index[key]; ok {
		x.entries[i].value = value
		return
	}
	x.index[key] = len(x.entries)
	x.entries = append(x.entries, expandoEntry{key: key, value: value})
}

// Delete removes key and reports whether it was present.
func (x *Expando) Delete(key Key) bool {
	i, ok := x.index[key]
	if !ok {
		return false
	}
	delete(x.index, key)
	copy(x.entries[i:], x.entries[i+1:])
	x.entries[len(x.entries)-1] = expandoEntry{}
	x.entries = x.entries[:len(x.entries)-1]
	for j := i; j < len(x.entries); j++ {
		x.index[x.entries[j].key] = j
	}
	return true
}

// Len returns the number of entries.
func (x *Expando) Len() int {
	return len(x.entries)
}

// Keys returns the keys in insertion order.
func (x *Expando) Keys() []string {
	keys := make([]string, len(x.entries))
	for i, e := range x.entries {
		keys[i] = e.key.Value()
	}
	return keys
}

// Clear drops every entry.
func (x *Expando) Clear() {
	clear(x.index)
	for i := range x.entries {
		x.entries[i] = expandoEntry{}
	}
	x.entries = x.entries[:0]
}
