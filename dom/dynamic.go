package dom

import "github.com/chrisuehlinger/domscript/binding"

// Binding returns the element's binding for hosts that pass a level
// explicitly.
func (e *Element) Binding() *binding.Object[*Element] {
	return e.object
}

// ScriptLevel is the level dynamic requests on this element run at: the
// owner document's level, or the creating document's before attachment.
func (e *Element) ScriptLevel() binding.Level {
	if e.owner != nil {
		return e.owner.level
	}
	return e.doc.level
}

// DOMMember returns the built-in member the element's kind exposes under
// name at level, hidden members included.
func (e *Element) DOMMember(level binding.Level, name string) (binding.MemberInfo, bool) {
	m, ok := e.kind.class.Table().Lookup(level, name)
	if !ok {
		return binding.MemberInfo{}, false
	}
	mi, _ := e.object.Lookup(level, m.Name, binding.AllMembers)
	return mi, true
}

// Property reads a member by name.
func (e *Element) Property(name string) (any, error) {
	return e.object.Get(e.ScriptLevel(), name)
}

// SetProperty writes a member by name, creating an expando if the name is
// not a built-in.
func (e *Element) SetProperty(name string, value any) error {
	return e.object.Set(e.ScriptLevel(), name, value)
}

// DeleteProperty removes an expando by name.
func (e *Element) DeleteProperty(name string) error {
	return e.object.Delete(e.ScriptLevel(), name)
}

// HasProperty reports whether name resolves to a built-in or an expando.
func (e *Element) HasProperty(name string) bool {
	return e.object.Has(e.ScriptLevel(), name)
}

// Invoke calls a member by name.
func (e *Element) Invoke(name string, args ...any) (any, error) {
	return e.object.Invoke(e.ScriptLevel(), name, args...)
}

// Members enumerates built-ins then expandos, filtered.
func (e *Element) Members(filter binding.Filter) []binding.MemberInfo {
	return e.object.Members(e.ScriptLevel(), filter)
}
