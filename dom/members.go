package dom

import (
	"github.com/chrisuehlinger/domscript/binding"
)

type registrar = binding.Registrar[*Element]

var (
	argString = []binding.Param{{Name: "name", Kind: binding.ArgString}}
	argNode   = []binding.Param{{Name: "child", Kind: binding.ArgTarget}}
)

// Built-in kinds. They are assigned in init because their member bodies
// reach back into element construction.
var (
	// VoidElementKind is the root kind. Elements that cannot have children
	// use it directly; it carries the members every element shares.
	VoidElementKind *Kind
	// ElementKind is the kind of ordinary container elements. It adds the
	// descendant queries and child manipulation.
	ElementKind *Kind
	// FormKind adds submission and the control list.
	FormKind *Kind
	// InputKind adds the control state; its click toggles or submits.
	InputKind *Kind
	// ButtonKind submits or resets its form when clicked.
	ButtonKind *Kind
)

func declareElementMembers(r *registrar) {
	r.Property("styles", binding.LevelDOM0, binding.ArgAny,
		func(e *Element) (any, error) { return e.Styles(), nil }, nil)
	r.Property("name", binding.LevelDOM0, binding.ArgAny,
		func(e *Element) (any, error) { return optional(e.Name()), nil }, nil)
	r.Method("click", binding.LevelDOM0, nil,
		func(e *Element, _ []any) (any, error) {
			e.Click()
			return nil, nil
		})

	r.Property("tagName", binding.LevelDOM1, binding.ArgAny,
		func(e *Element) (any, error) { return e.TagName(), nil }, nil)
	r.Property("parentElement", binding.LevelDOM1, binding.ArgAny,
		func(e *Element) (any, error) { return elementValue(e.ParentElement()), nil }, nil)
	r.Property("ownerDocument", binding.LevelDOM1, binding.ArgAny,
		func(e *Element) (any, error) {
			if d := e.OwnerDocument(); d != nil {
				return d, nil
			}
			return nil, nil
		}, nil)
	r.Property("id", binding.LevelDOM1, binding.ArgString,
		func(e *Element) (any, error) { return e.ID(), nil },
		func(e *Element, v any) error { return e.SetAttribute("id", v.(string)) })
	r.Method("getAttribute", binding.LevelDOM1, argString,
		func(e *Element, args []any) (any, error) { return optional(e.GetAttribute(args[0].(string))), nil })
	r.Method("setAttribute", binding.LevelDOM1,
		[]binding.Param{{Name: "name", Kind: binding.ArgString}, {Name: "value", Kind: binding.ArgString}},
		func(e *Element, args []any) (any, error) {
			return nil, e.SetAttribute(args[0].(string), args[1].(string))
		})
	r.Method("removeAttribute", binding.LevelDOM1, argString,
		func(e *Element, args []any) (any, error) {
			e.RemoveAttribute(args[0].(string))
			return nil, nil
		})
	r.Add(binding.Member[*Element]{
		Name: "ELEMENT_NODE", Kind: binding.PropertyMember, Since: binding.LevelDOM1, Static: true,
		Get: func(*Element) (any, error) { return 1, nil },
	})

	r.Method("hasAttribute", binding.LevelDOM2, argString,
		func(e *Element, args []any) (any, error) { return e.HasAttribute(args[0].(string)), nil })
	r.Method("remove", binding.LevelDOM2, nil,
		func(e *Element, _ []any) (any, error) {
			e.Remove()
			return nil, nil
		})
	r.Add(binding.Member[*Element]{
		Name: "outerTag", Kind: binding.PropertyMember, Since: binding.LevelDOM2, Hidden: true,
		Get: func(e *Element) (any, error) { return e.String(), nil },
	})
}

func declareContainerMembers(r *registrar) {
	r.Method("getElementById", binding.LevelDOM1, []binding.Param{{Name: "id", Kind: binding.ArgString}},
		func(e *Element, args []any) (any, error) { return elementValue(e.GetElementByID(args[0].(string))), nil })
	r.Method("getElementsByTagName", binding.LevelDOM1, argString,
		func(e *Element, args []any) (any, error) { return e.ElementsByTagName(args[0].(string)), nil })
	r.Method("getElementsByName", binding.LevelDOM1, argString,
		func(e *Element, args []any) (any, error) { return e.ElementsByName(args[0].(string)), nil })
	r.Method("indexOf", binding.LevelDOM1, argNode,
		func(e *Element, args []any) (any, error) { return e.IndexOf(args[0].(*Element)), nil })
	r.Property("children", binding.LevelDOM1, binding.ArgAny,
		func(e *Element) (any, error) { return e.Children(), nil }, nil)
	r.Property("textContent", binding.LevelDOM1, binding.ArgAny,
		func(e *Element) (any, error) { return e.TextContent(), nil }, nil)
	r.Method("appendChild", binding.LevelDOM1, argNode,
		func(e *Element, args []any) (any, error) {
			child := args[0].(*Element)
			if err := e.AppendChild(child); err != nil {
				return nil, err
			}
			return child, nil
		})
	r.Method("removeChild", binding.LevelDOM1, argNode,
		func(e *Element, args []any) (any, error) {
			child := args[0].(*Element)
			if err := e.RemoveChild(child); err != nil {
				return nil, err
			}
			return child, nil
		})
}

// optional turns a (value, ok) pair into a value or nil.
func optional(v string, ok bool) any {
	if !ok {
		return nil
	}
	return v
}

// elementValue keeps a nil *Element from becoming a non-nil interface.
func elementValue(e *Element) any {
	if e == nil {
		return nil
	}
	return e
}
