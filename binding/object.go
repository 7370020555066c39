package binding

import (
	"github.com/pkg/errors"
)

// Object binds one target value to its class table and its own expando store.
type Object[T any] struct {
	class   *Class[T]
	target  T
	expando *Expando
}

// NewObject returns a binding for target.
func NewObject[T any](class *Class[T], target T) *Object[T] {
	if class == nil {
		panic("binding: NewObject with nil class")
	}
	return &Object[T]{class: class, target: target, expando: NewExpando()}
}

// Class returns the class the object was bound with.
func (o *Object[T]) Class() *Class[T] {
	return o.class
}

// Target returns the bound value.
func (o *Object[T]) Target() T {
	return o.target
}

// TypeToken identifies the object's type to a script host.
func (o *Object[T]) TypeToken() string {
	return o.class.name
}

// Expando exposes the object's expando store.
func (o *Object[T]) Expando() *Expando {
	return o.expando
}

// Get reads name. Methods read as a bound *Method.
func (o *Object[T]) Get(level Level, name string) (any, error) {
	if m, ok := o.class.Table().Lookup(level, name); ok {
		if m.Kind == MethodMember {
			return &Method[T]{object: o, member: m}, nil
		}
		v, err := m.Get(o.target)
		if err != nil {
			return nil, o.wrap(err, OpGet, name)
		}
		return v, nil
	}
	if v, ok := o.expando.Get(MakeKey(name)); ok {
		return v, nil
	}
	return nil, newMemberError(OpGet, o.class.name, name, ErrUndefinedMember, "")
}

// Set writes name. Writes to unknown names create expandos and never fail.
func (o *Object[T]) Set(level Level, name string, value any) error {
	if m, ok := o.class.Table().Lookup(level, name); ok {
		if m.Kind == MethodMember {
			return newMemberError(OpSet, o.class.name, name, ErrReadOnlyMember, "member is a method")
		}
		if m.Set == nil {
			return newMemberError(OpSet, o.class.name, name, ErrReadOnlyMember, "")
		}
		if !accepts[T](m.Value, value) {
			return newMemberError(OpSet, o.class.name, name, ErrArgumentMismatch,
				"value must be %s, got %T", m.Value, value)
		}
		if err := m.Set(o.target, value); err != nil {
			return o.wrap(err, OpSet, name)
		}
		return nil
	}
	o.expando.Set(MakeKey(name), value)
	return nil
}

// Delete removes an expando. Deleting an absent name is a no-op; built-ins
// cannot be deleted.
func (o *Object[T]) Delete(level Level, name string) error {
	if _, ok := o.class.Table().Lookup(level, name); ok {
		return newMemberError(OpDelete, o.class.name, name, ErrReadOnlyMember, "built-in members cannot be deleted")
	}
	if o.expando.Delete(MakeKey(name)) {
		log.WithField("type", o.class.name).WithField("member", name).Trace("expando deleted")
	}
	return nil
}

// Invoke calls name with args.
func (o *Object[T]) Invoke(level Level, name string, args ...any) (any, error) {
	if m, ok := o.class.Table().Lookup(level, name); ok {
		if m.Kind == MethodMember {
			return o.call(m, args)
		}
		v, err := m.Get(o.target)
		if err != nil {
			return nil, o.wrap(err, OpInvoke, name)
		}
		fn, ok := asInvocable(v)
		if !ok {
			return nil, newMemberError(OpInvoke, o.class.name, name, ErrNotInvocable, "property of type %T", v)
		}
		return fn.Invoke(args)
	}
	v, ok := o.expando.Get(MakeKey(name))
	if !ok {
		return nil, newMemberError(OpInvoke, o.class.name, name, ErrUndefinedMember, "")
	}
	fn, ok := asInvocable(v)
	if !ok {
		return nil, newMemberError(OpInvoke, o.class.name, name, ErrNotInvocable, "expando of type %T", v)
	}
	return fn.Invoke(args)
}

func (o *Object[T]) call(m *Member[T], args []any) (any, error) {
	if err := checkArgs[T](m.Params, args); err != nil {
		return nil, newMemberError(OpInvoke, o.class.name, m.Name, ErrArgumentMismatch, "%v", err)
	}
	v, err := m.Call(o.target, args)
	if err != nil {
		return nil, o.wrap(err, OpInvoke, m.Name)
	}
	return v, nil
}

// Has reports whether name resolves at level.
func (o *Object[T]) Has(level Level, name string) bool {
	if _, ok := o.class.Table().Lookup(level, name); ok {
		return true
	}
	return o.expando.Has(MakeKey(name))
}

// Lookup describes the member name resolves to, if it passes filter.
func (o *Object[T]) Lookup(level Level, name string, filter Filter) (MemberInfo, bool) {
	var mi MemberInfo
	if m, ok := o.class.Table().Lookup(level, name); ok {
		mi = m.info()
	} else if v, ok := o.expando.Get(MakeKey(name)); ok {
		mi = expandoInfo(name, v)
	} else {
		return MemberInfo{}, false
	}
	if !filter.Matches(mi) {
		return MemberInfo{}, false
	}
	return mi, true
}

// Members lists built-ins in registration order, then expandos in insertion
// order, keeping those that pass filter. An expando whose name a built-in
// answers at level is not listed.
func (o *Object[T]) Members(level Level, filter Filter) []MemberInfo {
	table := o.class.Table()
	builtins := table.Members(level)
	out := make([]MemberInfo, 0, len(builtins)+o.expando.Len())
	for _, m := range builtins {
		if mi := m.info(); filter.Matches(mi) {
			out = append(out, mi)
		}
	}
	for _, e := range o.expando.entries {
		name := e.key.Value()
		if _, ok := table.Lookup(level, name); ok {
			continue
		}
		if mi := expandoInfo(name, e.value); filter.Matches(mi) {
			out = append(out, mi)
		}
	}
	return out
}

// Properties lists the property members that pass filter.
func (o *Object[T]) Properties(level Level, filter Filter) []MemberInfo {
	return o.membersOfKind(level, filter, PropertyMember)
}

// Methods lists the method members that pass filter.
func (o *Object[T]) Methods(level Level, filter Filter) []MemberInfo {
	return o.membersOfKind(level, filter, MethodMember)
}

func (o *Object[T]) membersOfKind(level Level, filter Filter, kind MemberKind) []MemberInfo {
	var out []MemberInfo
	for _, mi := range o.Members(level, filter) {
		if mi.Kind == kind {
			out = append(out, mi)
		}
	}
	return out
}

// Release drops every expando entry. It is called when the target leaves
// its tree.
func (o *Object[T]) Release() {
	if n := o.expando.Len(); n > 0 {
		log.WithField("type", o.class.name).WithField("entries", n).Debug("expando store released")
	}
	o.expando.Clear()
}

func (o *Object[T]) wrap(err error, op Op, name string) error {
	var me *MemberError
	if errors.As(err, &me) {
		return err
	}
	return errors.Wrapf(err, "%s %s.%s", op, o.class.name, name)
}

func expandoInfo(name string, v any) MemberInfo {
	kind := PropertyMember
	if _, ok := asInvocable(v); ok {
		kind = MethodMember
	}
	return MemberInfo{Name: name, Kind: kind, Source: ExpandoSource}
}

// Method is a built-in method read as a value. Invoking it goes through the
// same argument checks as Object.Invoke.
type Method[T any] struct {
	object *Object[T]
	member *Member[T]
}

// Name returns the method name.
func (m *Method[T]) Name() string {
	return m.member.Name
}

// Params returns the formal parameters.
func (m *Method[T]) Params() []Param {
	return m.member.Params
}

// Invoke calls the method on the object it was read from.
func (m *Method[T]) Invoke(args []any) (any, error) {
	return m.object.call(m.member, args)
}
