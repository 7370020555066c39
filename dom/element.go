package dom

import (
	"strings"

	"golang.org/x/net/html"

	"github.com/chrisuehlinger/domscript/binding"
)

// Element is the facade over one element node. It owns the element's style
// collection and its binding, and it is the value script hosts and lookups
// hand around.
type Element struct {
	node  *html.Node
	doc   *Document // registry that created the facade
	owner *Document // set on first attachment, never changed afterwards

	kind    *Kind
	styles  *StyleCollection
	object  *binding.Object[*Element]
	control *controlState
}

func newElement(doc *Document, n *html.Node) *Element {
	el := &Element{node: n, doc: doc, kind: KindFor(n.Data)}
	if n.Namespace != "" {
		el.kind = ElementKind
	}
	if v, ok := el.GetAttribute("style"); ok {
		el.styles = parseStyleAttribute(v)
	} else {
		el.styles = NewStyleCollection()
	}
	el.object = binding.NewObject(el.kind.class, el)
	return el
}

// HTMLNode returns the substrate node, or nil for a nil element.
func (e *Element) HTMLNode() *html.Node {
	if e == nil {
		return nil
	}
	return e.node
}

// Kind returns the element kind that decides its built-in members.
func (e *Element) Kind() *Kind {
	return e.kind
}

// TypeToken identifies the element's kind to a script host.
func (e *Element) TypeToken() string {
	return e.object.TypeToken()
}

// Styles returns the element's style collection. It is never nil.
func (e *Element) Styles() *StyleCollection {
	return e.styles
}

// OwnerDocument returns the document the element was attached to, or nil
// if it has never been attached.
func (e *Element) OwnerDocument() *Document {
	return e.owner
}

// Connected reports whether the element is currently part of its
// document's tree.
func (e *Element) Connected() bool {
	return e != nil && e.doc.contains(e.node)
}

// ParentNode returns the substrate parent, or nil.
func (e *Element) ParentNode() *html.Node {
	return e.node.Parent
}

// ParentElement returns the parent if it is itself an element.
func (e *Element) ParentElement() *Element {
	return e.doc.Wrap(e.node.Parent)
}

// LocalName returns the local name (lower-case for HTML elements).
func (e *Element) LocalName() string {
	return e.node.Data
}

// TagName returns the tag name, upper-cased for HTML elements.
func (e *Element) TagName() string {
	if e.node.Namespace == "" {
		return strings.ToUpper(e.node.Data)
	}
	return e.node.Data
}

// NamespaceURI returns the substrate namespace ("" for HTML, "svg", "math").
func (e *Element) NamespaceURI() string {
	return e.node.Namespace
}

func (e *Element) attrName(name string) string {
	if e.node.Namespace == "" {
		return strings.ToLower(name)
	}
	return name
}

// GetAttribute returns the value of the named attribute.
// For HTML elements the name is lowercased before lookup.
func (e *Element) GetAttribute(name string) (string, bool) {
	name = e.attrName(name)
	for _, a := range e.node.Attr {
		if a.Namespace == "" && a.Key == name {
			return a.Val, true
		}
	}
	return "", false
}

// HasAttribute returns true if the element has the given attribute.
func (e *Element) HasAttribute(name string) bool {
	_, ok := e.GetAttribute(name)
	return ok
}

// SetAttribute sets the value of the attribute with the given name.
// An existing attribute keeps its position.
func (e *Element) SetAttribute(name, value string) error {
	if !IsValidAttributeLocalName(name) {
		return ErrInvalidCharacter("invalid attribute name: " + name)
	}
	name = e.attrName(name)
	for i, a := range e.node.Attr {
		if a.Namespace == "" && a.Key == name {
			e.node.Attr[i].Val = value
			return nil
		}
	}
	e.node.Attr = append(e.node.Attr, html.Attribute{Key: name, Val: value})
	return nil
}

// RemoveAttribute removes the attribute with the given name.
func (e *Element) RemoveAttribute(name string) {
	name = e.attrName(name)
	for i, a := range e.node.Attr {
		if a.Namespace == "" && a.Key == name {
			e.node.Attr = append(e.node.Attr[:i], e.node.Attr[i+1:]...)
			return
		}
	}
}

// Attributes returns a copy of the attribute list in document order.
func (e *Element) Attributes() []html.Attribute {
	out := make([]html.Attribute, len(e.node.Attr))
	copy(out, e.node.Attr)
	return out
}

// IsValidAttributeLocalName checks if a string is a valid attribute local name per DOM spec.
// A string is valid if its length is at least 1 and it does not contain
// ASCII whitespace, NULL, '/', '=' or '>'.
func IsValidAttributeLocalName(name string) bool {
	if len(name) == 0 {
		return false
	}
	for _, r := range name {
		if r == ' ' || r == '\t' || r == '\n' || r == '\f' || r == '\r' {
			return false
		}
		if r == '\x00' || r == '/' || r == '=' || r == '>' {
			return false
		}
	}
	return true
}

// ID returns the id attribute value.
func (e *Element) ID() string {
	v, _ := e.GetAttribute("id")
	return v
}

// Name returns the value of the name attribute.
func (e *Element) Name() (string, bool) {
	return e.GetAttribute("name")
}

// TextContent returns the concatenated text of all descendant text nodes.
func (e *Element) TextContent() string {
	var sb strings.Builder
	walk(e.node, func(n *html.Node) {
		if n.Type == html.TextNode {
			sb.WriteString(n.Data)
		}
	})
	return sb.String()
}

// Children returns the child elements.
func (e *Element) Children() []*Element {
	var out []*Element
	for c := e.node.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == html.ElementNode {
			out = append(out, e.doc.Wrap(c))
		}
	}
	return out
}

// ElementsByTagName returns matching descendants in document order.
func (e *Element) ElementsByTagName(name string) []*Element {
	return ElementsByTagName(e, name)
}

// ElementsByName returns every descendant, at any depth, whose name
// attribute equals name, in document order. The element itself is excluded.
func (e *Element) ElementsByName(name string) []*Element {
	if !e.Connected() {
		return nil
	}
	return e.doc.elementsByName(e.node, name)
}

// GetElementByID returns the first descendant with the given id, or nil.
func (e *Element) GetElementByID(id string) *Element {
	if !e.Connected() {
		return nil
	}
	return e.doc.Wrap(findByID(e.node, id))
}

// IndexOf returns the position of child among the direct children, or -1.
func (e *Element) IndexOf(child Node) int {
	return IndexOf(e, child)
}

// AppendChild moves child under e, after any existing children.
func (e *Element) AppendChild(child Node) error {
	if child == nil || child.HTMLNode() == nil {
		return ErrHierarchyRequest("cannot append a nil node")
	}
	n := child.HTMLNode()
	if el, ok := child.(*Element); ok && el.doc != e.doc {
		return ErrWrongDocument("node belongs to another document")
	}
	for p := e.node; p != nil; p = p.Parent {
		if p == n {
			return ErrHierarchyRequest("the new child is an ancestor of the parent")
		}
	}
	if n.Type == html.DocumentNode {
		return ErrHierarchyRequest("cannot insert a document node")
	}
	if n.Parent != nil {
		n.Parent.RemoveChild(n)
	}
	e.node.AppendChild(n)
	e.doc.attach(n)
	return nil
}

// RemoveChild detaches child from e and releases the expando stores of the
// removed subtree.
func (e *Element) RemoveChild(child Node) error {
	if child == nil || child.HTMLNode() == nil || child.HTMLNode().Parent != e.node {
		return ErrNotFound("the node to be removed is not a child of this element")
	}
	n := child.HTMLNode()
	e.node.RemoveChild(n)
	e.doc.release(n)
	e.doc.log.WithField("tag", e.node.Data).WithField("child", n.Data).Debug("child removed")
	return nil
}

// Remove detaches the element from its parent, if any.
func (e *Element) Remove() {
	p := e.node.Parent
	if p == nil {
		return
	}
	p.RemoveChild(e.node)
	e.doc.release(e.node)
}

// Click runs the kind's click behavior. Plain elements do nothing.
func (e *Element) Click() {
	if e.kind.click != nil {
		e.kind.click(e)
	}
}

// String returns a short description, e.g. <input name="q">.
func (e *Element) String() string {
	var sb strings.Builder
	sb.WriteString("<" + e.node.Data)
	if id := e.ID(); id != "" {
		sb.WriteString(` id="` + id + `"`)
	}
	if name, ok := e.Name(); ok {
		sb.WriteString(` name="` + name + `"`)
	}
	sb.WriteString(">")
	return sb.String()
}
