package dom

import (
	"strings"
	"sync"

	"github.com/chrisuehlinger/domscript/binding"
)

// Kind is a concrete element subtype: the built-in members it exposes to
// scripts and its click behavior.
type Kind struct {
	class *binding.Class[*Element]
	click func(*Element)
}

// NewKind declares a kind. It inherits parent's members and, when click is
// nil, parent's click behavior. declare runs once, on first use.
func NewKind(name string, parent *Kind, declare func(*binding.Registrar[*Element]), click func(*Element)) *Kind {
	var parentClass *binding.Class[*Element]
	if parent != nil {
		parentClass = parent.class
		if click == nil {
			click = parent.click
		}
	}
	return &Kind{
		class: binding.NewClass(name, parentClass, declare),
		click: click,
	}
}

// Name returns the kind's type token, e.g. "HTMLFormElement".
func (k *Kind) Name() string {
	return k.class.Name()
}

// Class returns the binding class holding the kind's member table.
func (k *Kind) Class() *binding.Class[*Element] {
	return k.class
}

var (
	kindRegistry = make(map[string]*Kind)
	registryMu   sync.RWMutex
)

// RegisterKind associates a tag name with a kind. Elements wrapped after
// the call use it. Call it from init functions.
func RegisterKind(tagName string, k *Kind) {
	registryMu.Lock()
	defer registryMu.Unlock()
	kindRegistry[strings.ToLower(tagName)] = k
}

// KindFor returns the kind registered for tagName, or ElementKind.
func KindFor(tagName string) *Kind {
	registryMu.RLock()
	defer registryMu.RUnlock()
	if k, ok := kindRegistry[strings.ToLower(tagName)]; ok {
		return k
	}
	return ElementKind
}

var voidElements = []string{
	"area", "base", "br", "col", "embed", "hr", "img", "input",
	"link", "meta", "param", "source", "track", "wbr",
}

func init() {
	VoidElementKind = NewKind("HTMLVoidElement", nil, declareElementMembers, nil)
	ElementKind = NewKind("HTMLElement", VoidElementKind, declareContainerMembers, nil)
	FormKind = NewKind("HTMLFormElement", ElementKind, declareFormMembers, nil)
	InputKind = NewKind("HTMLInputElement", VoidElementKind, declareInputMembers, clickInput)
	ButtonKind = NewKind("HTMLButtonElement", ElementKind, declareButtonMembers, clickButton)

	for _, tag := range voidElements {
		RegisterKind(tag, VoidElementKind)
	}
	RegisterKind("form", FormKind)
	RegisterKind("input", InputKind)
	RegisterKind("button", ButtonKind)
}
