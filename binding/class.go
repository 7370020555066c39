package binding

import (
	"fmt"
	"sync"
)

// Registrar collects the built-in members a class declares.
type Registrar[T any] struct {
	class   string
	members []*Member[T]
	names   map[string]bool
}

// Add registers m. Registering the same name twice within one class is a
// programming error and panics when the table is built.
func (r *Registrar[T]) Add(m Member[T]) {
	if m.Name == "" {
		panic(fmt.Sprintf("binding: %s: member without a name", r.class))
	}
	if r.names[m.Name] {
		panic(fmt.Sprintf("binding: %s: duplicate member %q", r.class, m.Name))
	}
	switch m.Kind {
	case PropertyMember:
		if m.Get == nil {
			panic(fmt.Sprintf("binding: %s.%s: property without getter", r.class, m.Name))
		}
	case MethodMember:
		if m.Call == nil {
			panic(fmt.Sprintf("binding: %s.%s: method without body", r.class, m.Name))
		}
	default:
		panic(fmt.Sprintf("binding: %s.%s: unknown member kind", r.class, m.Name))
	}
	if !m.Since.Valid() {
		panic(fmt.Sprintf("binding: %s.%s: invalid level %d", r.class, m.Name, m.Since))
	}
	r.names[m.Name] = true
	r.members = append(r.members, &m)
}

// Property registers a property. A nil set makes it read-only.
func (r *Registrar[T]) Property(name string, since Level, value ArgKind, get func(T) (any, error), set func(T, any) error) {
	r.Add(Member[T]{Name: name, Kind: PropertyMember, Since: since, Value: value, Get: get, Set: set})
}

// Method registers a method with the given formal parameters.
func (r *Registrar[T]) Method(name string, since Level, params []Param, call func(T, []any) (any, error)) {
	r.Add(Member[T]{Name: name, Kind: MethodMember, Since: since, Params: params, Call: call})
}

// Class is a concrete subtype with its own built-in members. Its table is
// built on first use and never changes afterwards.
type Class[T any] struct {
	name    string
	parent  *Class[T]
	declare func(*Registrar[T])

	once  sync.Once
	table *Table[T]
}

// NewClass returns a class that inherits parent's members (parent may be
// nil) and adds the ones declare registers. declare runs once, lazily.
func NewClass[T any](name string, parent *Class[T], declare func(*Registrar[T])) *Class[T] {
	return &Class[T]{name: name, parent: parent, declare: declare}
}

// Name is the type token of instances of this class.
func (c *Class[T]) Name() string {
	return c.name
}

// Parent returns the class this one inherits from.
func (c *Class[T]) Parent() *Class[T] {
	return c.parent
}

// Table returns the member table, building it on first call.
func (c *Class[T]) Table() *Table[T] {
	c.once.Do(c.build)
	return c.table
}

func (c *Class[T]) build() {
	var inherited []*Member[T]
	if c.parent != nil {
		inherited = c.parent.Table().all
	}

	r := &Registrar[T]{class: c.name, names: make(map[string]bool)}
	if c.declare != nil {
		c.declare(r)
	}

	all := make([]*Member[T], 0, len(inherited)+len(r.members))
	slot := make(map[string]int, len(inherited)+len(r.members))
	for _, m := range inherited {
		slot[m.Name] = len(all)
		all = append(all, m)
	}
	// An override keeps the inherited position so enumeration stays stable
	// down the hierarchy.
	for _, m := range r.members {
		if i, ok := slot[m.Name]; ok {
			all[i] = m
			continue
		}
		slot[m.Name] = len(all)
		all = append(all, m)
	}

	t := &Table[T]{class: c.name, all: all}
	for l := 0; l < levelCount; l++ {
		t.byName[l] = make(map[string]*Member[T])
		for _, m := range all {
			if int(m.Since) <= l {
				t.byName[l][m.Name] = m
				t.ordered[l] = append(t.ordered[l], m)
			}
		}
	}
	c.table = t
	log.WithField("class", c.name).WithField("members", len(all)).Debug("member table built")
}

// Table is the immutable (level, name) -> member index of a class.
type Table[T any] struct {
	class   string
	all     []*Member[T]
	byName  [levelCount]map[string]*Member[T]
	ordered [levelCount][]*Member[T]
}

// Lookup finds the member visible under name at level.
func (t *Table[T]) Lookup(level Level, name string) (*Member[T], bool) {
	if !level.Valid() {
		return nil, false
	}
	m, ok := t.byName[level][name]
	return m, ok
}

// Members returns the members visible at level in registration order. The
// slice must not be modified.
func (t *Table[T]) Members(level Level) []*Member[T] {
	if !level.Valid() {
		return nil
	}
	return t.ordered[level]
}

// Len returns the number of members declared across all levels.
func (t *Table[T]) Len() int {
	return len(t.all)
}
