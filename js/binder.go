package js

import (
	"github.com/dop251/goja"
	"github.com/pkg/errors"

	"github.com/chrisuehlinger/domscript/binding"
	"github.com/chrisuehlinger/domscript/dom"
)

// Binder exposes one dom.Document to a Runtime. Each element gets exactly
// one JavaScript object, so identity comparisons in scripts hold.
type Binder struct {
	rt  *Runtime
	doc *dom.Document

	document *goja.Object
	objects  map[*dom.Element]*goja.Object
	elements map[*goja.Object]*dom.Element
	styles   map[*dom.StyleCollection]*goja.Object
}

// NewBinder binds doc into rt and installs the document global.
func NewBinder(rt *Runtime, doc *dom.Document) *Binder {
	b := &Binder{
		rt:       rt,
		doc:      doc,
		objects:  make(map[*dom.Element]*goja.Object),
		elements: make(map[*goja.Object]*dom.Element),
		styles:   make(map[*dom.StyleCollection]*goja.Object),
	}
	b.document = b.newDocumentObject()
	rt.vm.Set("document", b.document)
	return b
}

// Document returns the bound document.
func (b *Binder) Document() *dom.Document {
	return b.doc
}

// ElementValue returns the JavaScript object for el, or null.
func (b *Binder) ElementValue(el *dom.Element) goja.Value {
	if el == nil {
		return goja.Null()
	}
	if obj, ok := b.objects[el]; ok {
		return obj
	}
	eo := &elementObject{b: b, el: el, methods: make(map[string]goja.Value)}
	obj := b.rt.vm.NewDynamicObject(eo)
	eo.self = obj
	b.objects[el] = obj
	b.elements[obj] = el
	return obj
}

// ElementOf returns the element behind a JavaScript object, if any.
func (b *Binder) ElementOf(v goja.Value) (*dom.Element, bool) {
	obj, ok := v.(*goja.Object)
	if !ok {
		return nil, false
	}
	el, ok := b.elements[obj]
	return el, ok
}

func (b *Binder) newDocumentObject() *goja.Object {
	vm := b.rt.vm
	obj := vm.NewObject()

	obj.Set("getElementById", func(call goja.FunctionCall) goja.Value {
		return b.ElementValue(b.doc.GetElementByID(call.Argument(0).String()))
	})
	obj.Set("getElementsByTagName", func(call goja.FunctionCall) goja.Value {
		return b.toJS(b.doc.ElementsByTagName(call.Argument(0).String()))
	})
	obj.Set("getElementsByName", func(call goja.FunctionCall) goja.Value {
		return b.toJS(b.doc.ElementsByName(call.Argument(0).String()))
	})
	obj.Set("createElement", func(call goja.FunctionCall) goja.Value {
		if len(call.Arguments) == 0 {
			panic(vm.NewTypeError("createElement: 1 argument required, but only 0 present"))
		}
		return b.ElementValue(b.doc.CreateElement(call.Arguments[0].String()))
	})

	getter := func(fn func() *dom.Element) goja.Value {
		return vm.ToValue(func(goja.FunctionCall) goja.Value { return b.ElementValue(fn()) })
	}
	obj.DefineAccessorProperty("documentElement", getter(b.doc.DocumentElement), nil, goja.FLAG_FALSE, goja.FLAG_TRUE)
	obj.DefineAccessorProperty("body", getter(b.doc.Body), nil, goja.FLAG_FALSE, goja.FLAG_TRUE)
	return obj
}

// toJS converts a value coming out of a binding into a script value.
func (b *Binder) toJS(v any) goja.Value {
	switch v := v.(type) {
	case nil:
		return goja.Null()
	case goja.Value:
		return v
	case *dom.Element:
		return b.ElementValue(v)
	case []*dom.Element:
		vals := make([]any, len(v))
		for i, el := range v {
			vals[i] = b.ElementValue(el)
		}
		return b.rt.vm.NewArray(vals...)
	case *dom.Document:
		if v == b.doc {
			return b.document
		}
		return goja.Null()
	case *dom.StyleCollection:
		return b.stylesValue(v)
	case *scriptFunction:
		return v.value
	case binding.Invocable:
		return b.functionValue(v)
	}
	return b.rt.vm.ToValue(v)
}

// fromJS converts a script value into what bindings store and accept.
// Primitives become Go values, element objects become elements and
// functions become invocables; other objects are kept as script values.
func (b *Binder) fromJS(v goja.Value, this goja.Value) any {
	if v == nil || goja.IsUndefined(v) || goja.IsNull(v) {
		return nil
	}
	if el, ok := b.ElementOf(v); ok {
		return el
	}
	if fn, ok := goja.AssertFunction(v); ok {
		if this == nil {
			this = goja.Undefined()
		}
		return &scriptFunction{b: b, value: v, fn: fn, this: this}
	}
	if _, ok := v.(*goja.Object); ok {
		return v
	}
	return v.Export()
}

func (b *Binder) args(call goja.FunctionCall) []any {
	out := make([]any, len(call.Arguments))
	for i, a := range call.Arguments {
		out[i] = b.fromJS(a, nil)
	}
	return out
}

// functionValue wraps a Go invocable as a script function.
func (b *Binder) functionValue(fn binding.Invocable) goja.Value {
	return b.rt.vm.ToValue(func(call goja.FunctionCall) goja.Value {
		res, err := fn.Invoke(b.args(call))
		if err != nil {
			panic(b.throw(err))
		}
		return b.toJS(res)
	})
}

// throw converts a Go error into the script exception for it.
func (b *Binder) throw(err error) *goja.Object {
	vm := b.rt.vm
	var de *dom.DOMError
	if errors.As(err, &de) {
		obj := vm.NewGoError(err)
		obj.Set("name", de.Name)
		obj.Set("message", de.Message)
		return obj
	}
	var me *binding.MemberError
	if errors.As(err, &me) {
		return vm.NewTypeError(err.Error())
	}
	var ex *goja.Exception
	if errors.As(err, &ex) {
		if obj, ok := ex.Value().(*goja.Object); ok {
			return obj
		}
	}
	return vm.NewGoError(err)
}

// scriptFunction is a script function stored as an expando. Go callers
// invoke it through the binding like any other invocable.
type scriptFunction struct {
	b     *Binder
	value goja.Value
	fn    goja.Callable
	this  goja.Value
}

// Invoke calls the function with this bound to the object it was stored on.
// It must run on the goroutine that owns the runtime.
func (f *scriptFunction) Invoke(args []any) (any, error) {
	jsArgs := make([]goja.Value, len(args))
	for i, a := range args {
		jsArgs[i] = f.b.toJS(a)
	}
	res, err := f.fn(f.this, jsArgs...)
	if err != nil {
		return nil, errors.Wrap(err, "script function")
	}
	return f.b.fromJS(res, nil), nil
}
