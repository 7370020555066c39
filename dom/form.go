package dom

import (
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"github.com/chrisuehlinger/domscript/binding"
)

// controlState is the live state of a form control. Until a script or a
// click changes it, the value and checkedness follow the attributes.
type controlState struct {
	value        string
	dirtyValue   bool
	checked      bool
	dirtyChecked bool
}

func (e *Element) ensureControl() *controlState {
	if e.control == nil {
		e.control = &controlState{}
	}
	return e.control
}

// Value returns the current value of a form control.
func (e *Element) Value() string {
	if e.control != nil && e.control.dirtyValue {
		return e.control.value
	}
	v, _ := e.GetAttribute("value")
	return v
}

// SetValue sets the current value without touching the value attribute.
func (e *Element) SetValue(v string) {
	cs := e.ensureControl()
	cs.value = v
	cs.dirtyValue = true
}

// Checked returns the checkedness of a checkbox or radio button.
func (e *Element) Checked() bool {
	if e.control != nil && e.control.dirtyChecked {
		return e.control.checked
	}
	return e.HasAttribute("checked")
}

// SetChecked sets the checkedness. Checking a radio button unchecks the
// other buttons of its group.
func (e *Element) SetChecked(checked bool) {
	cs := e.ensureControl()
	cs.checked = checked
	cs.dirtyChecked = true
	if checked && e.ControlType() == "radio" {
		e.uncheckRadioGroup()
	}
}

// ControlType returns the lower-cased type attribute with the element's
// default: "text" for inputs, "submit" for buttons.
func (e *Element) ControlType() string {
	t, ok := e.GetAttribute("type")
	t = strings.ToLower(strings.TrimSpace(t))
	if ok && t != "" {
		return t
	}
	if e.node.DataAtom == atom.Button {
		return "submit"
	}
	return "text"
}

// Form returns the nearest ancestor form, or nil.
func (e *Element) Form() *Element {
	for p := e.node.Parent; p != nil; p = p.Parent {
		if p.Type == html.ElementNode && p.DataAtom == atom.Form {
			return e.doc.Wrap(p)
		}
	}
	return nil
}

// Controls returns the form's inputs, buttons, selects and text areas in
// document order.
func (e *Element) Controls() []*Element {
	return e.doc.wrapAll(collect(e.node, func(n *html.Node) bool {
		switch n.DataAtom {
		case atom.Input, atom.Button, atom.Select, atom.Textarea:
			return true
		}
		return false
	}))
}

// Submit hands the form to the document's submit handler.
func (e *Element) Submit() {
	d := e.owner
	if d == nil {
		d = e.doc
	}
	d.log.WithField("form", e.String()).Info("form submitted")
	if d.onSubmit != nil {
		d.onSubmit(e)
	}
}

// Reset returns every control of the form to its attribute state.
func (e *Element) Reset() {
	for _, c := range e.Controls() {
		c.control = nil
	}
}

func (e *Element) uncheckRadioGroup() {
	name, ok := e.Name()
	if !ok || name == "" {
		return
	}
	var scope *html.Node
	if f := e.Form(); f != nil {
		scope = f.node
	} else {
		for scope = e.node; scope.Parent != nil; scope = scope.Parent {
		}
	}
	for _, n := range collect(scope, func(n *html.Node) bool {
		return n != e.node && n.DataAtom == atom.Input && hasAttrValue(n, "name", name)
	}) {
		other := e.doc.Wrap(n)
		if other.ControlType() == "radio" {
			cs := other.ensureControl()
			cs.checked = false
			cs.dirtyChecked = true
		}
	}
}

func clickInput(e *Element) {
	switch e.ControlType() {
	case "checkbox":
		e.SetChecked(!e.Checked())
	case "radio":
		e.SetChecked(true)
	case "submit", "image":
		if f := e.Form(); f != nil {
			f.Submit()
		}
	case "reset":
		if f := e.Form(); f != nil {
			f.Reset()
		}
	}
}

func clickButton(e *Element) {
	f := e.Form()
	if f == nil {
		return
	}
	switch e.ControlType() {
	case "submit":
		f.Submit()
	case "reset":
		f.Reset()
	}
}

func attributeProperty(r *registrar, name string, since binding.Level) {
	r.Property(name, since, binding.ArgString,
		func(e *Element) (any, error) {
			v, _ := e.GetAttribute(name)
			return v, nil
		},
		func(e *Element, v any) error { return e.SetAttribute(name, v.(string)) })
}

func declareFormMembers(r *registrar) {
	r.Method("submit", binding.LevelDOM0, nil, func(e *Element, _ []any) (any, error) {
		e.Submit()
		return nil, nil
	})
	r.Method("reset", binding.LevelDOM0, nil, func(e *Element, _ []any) (any, error) {
		e.Reset()
		return nil, nil
	})
	attributeProperty(r, "action", binding.LevelDOM0)
	r.Property("method", binding.LevelDOM0, binding.ArgString,
		func(e *Element) (any, error) {
			if v, _ := e.GetAttribute("method"); strings.EqualFold(v, "post") {
				return "post", nil
			}
			return "get", nil
		},
		func(e *Element, v any) error { return e.SetAttribute("method", v.(string)) })
	r.Property("elements", binding.LevelDOM0, binding.ArgAny,
		func(e *Element) (any, error) { return e.Controls(), nil }, nil)
}

func declareInputMembers(r *registrar) {
	r.Property("value", binding.LevelDOM0, binding.ArgString,
		func(e *Element) (any, error) { return e.Value(), nil },
		func(e *Element, v any) error {
			e.SetValue(v.(string))
			return nil
		})
	r.Property("checked", binding.LevelDOM0, binding.ArgBool,
		func(e *Element) (any, error) { return e.Checked(), nil },
		func(e *Element, v any) error {
			e.SetChecked(v.(bool))
			return nil
		})
	declareControlMembers(r)
}

func declareButtonMembers(r *registrar) {
	declareControlMembers(r)
}

func declareControlMembers(r *registrar) {
	r.Property("type", binding.LevelDOM0, binding.ArgAny,
		func(e *Element) (any, error) { return e.ControlType(), nil }, nil)
	r.Property("form", binding.LevelDOM0, binding.ArgAny,
		func(e *Element) (any, error) { return elementValue(e.Form()), nil }, nil)
}
