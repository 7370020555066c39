package js

import (
	"github.com/dop251/goja"

	"github.com/chrisuehlinger/domscript/binding"
	"github.com/chrisuehlinger/domscript/dom"
)

// elementObject is the goja.DynamicObject behind every element. All
// property traffic goes through the element's binding at its script level.
type elementObject struct {
	b    *Binder
	el   *dom.Element
	self *goja.Object

	// methods keeps el.click === el.click true.
	methods map[string]goja.Value
}

func (o *elementObject) Get(key string) goja.Value {
	v, err := o.el.Property(key)
	if err != nil {
		if binding.IsUndefined(err) {
			// Let the prototype chain answer (toString, hasOwnProperty...).
			return nil
		}
		panic(o.b.throw(err))
	}
	if m, ok := v.(*binding.Method[*dom.Element]); ok {
		if fn, ok := o.methods[key]; ok {
			return fn
		}
		fn := o.b.functionValue(m)
		o.methods[key] = fn
		return fn
	}
	return o.b.toJS(v)
}

// Set reports false for read-only members; goja turns that into a
// TypeError in strict code and ignores it otherwise.
func (o *elementObject) Set(key string, val goja.Value) bool {
	err := o.el.SetProperty(key, o.b.fromJS(val, o.self))
	switch {
	case err == nil:
		return true
	case binding.IsReadOnly(err):
		return false
	}
	panic(o.b.throw(err))
}

func (o *elementObject) Has(key string) bool {
	return o.el.HasProperty(key)
}

func (o *elementObject) Delete(key string) bool {
	return o.el.DeleteProperty(key) == nil
}

func (o *elementObject) Keys() []string {
	members := o.el.Members(binding.DefaultFilter)
	keys := make([]string, len(members))
	for i, mi := range members {
		keys[i] = mi.Name
	}
	return keys
}

// stylesObject exposes a style collection as a plain property bag.
type stylesObject struct {
	b  *Binder
	sc *dom.StyleCollection
}

func (b *Binder) stylesValue(sc *dom.StyleCollection) goja.Value {
	if obj, ok := b.styles[sc]; ok {
		return obj
	}
	obj := b.rt.vm.NewDynamicObject(&stylesObject{b: b, sc: sc})
	b.styles[sc] = obj
	return obj
}

func (s *stylesObject) Get(key string) goja.Value {
	if v, ok := s.sc.Get(key); ok {
		return s.b.rt.vm.ToValue(v)
	}
	if key == "cssText" {
		return s.b.rt.vm.ToValue(s.sc.CSSText())
	}
	return nil
}

func (s *stylesObject) Set(key string, val goja.Value) bool {
	if goja.IsUndefined(val) || goja.IsNull(val) {
		s.sc.Remove(key)
		return true
	}
	s.sc.Set(key, val.String())
	return true
}

func (s *stylesObject) Has(key string) bool {
	_, ok := s.sc.Get(key)
	return ok
}

func (s *stylesObject) Delete(key string) bool {
	s.sc.Remove(key)
	return true
}

func (s *stylesObject) Keys() []string {
	return s.sc.Keys()
}
