// Package dom provides the scriptable element layer over an x/net/html tree.
//
// The substrate (parent/child links, attributes) is golang.org/x/net/html.
// This package adds one Element facade per element node, the inline style
// collection, document-order lookups and the binding that lets a script host
// reach elements by member name.
package dom

import (
	"strings"

	"github.com/sirupsen/logrus"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"github.com/chrisuehlinger/domscript/binding"
)

// Document owns a substrate tree and the element facades created for it.
type Document struct {
	root     *html.Node
	elements map[*html.Node]*Element

	level    binding.Level
	query    QueryEvaluator
	onSubmit func(form *Element)
	log      logrus.FieldLogger
}

// NewDocument creates an empty document.
func NewDocument() *Document {
	return newDocument(&html.Node{Type: html.DocumentNode})
}

// NewDocumentFromNode wraps a parsed tree. root must be a document node.
func NewDocumentFromNode(root *html.Node) (*Document, error) {
	if root == nil || root.Type != html.DocumentNode {
		return nil, ErrNotSupported("root is not a document node")
	}
	return newDocument(root), nil
}

func newDocument(root *html.Node) *Document {
	return &Document{
		root:     root,
		elements: make(map[*html.Node]*Element),
		level:    binding.DefaultLevel,
		query:    CascadiaEvaluator{},
		log:      logrus.WithField("component", "dom"),
	}
}

// Root returns the substrate document node.
func (d *Document) Root() *html.Node {
	return d.root
}

// Level returns the scripting level used for dynamic requests on elements
// of this document.
func (d *Document) Level() binding.Level {
	return d.level
}

// SetLevel changes the scripting level.
func (d *Document) SetLevel(level binding.Level) {
	if !level.Valid() {
		level = binding.DefaultLevel
	}
	d.level = level
}

// SetLogger replaces the document logger.
func (d *Document) SetLogger(l logrus.FieldLogger) {
	if l != nil {
		d.log = l
	}
}

// SetQueryEvaluator replaces the selection query evaluator. nil makes
// name lookups fall back to a manual traversal.
func (d *Document) SetQueryEvaluator(q QueryEvaluator) {
	d.query = q
}

// OnSubmit registers the handler run when a form of this document submits.
func (d *Document) OnSubmit(fn func(form *Element)) {
	d.onSubmit = fn
}

// CreateElement creates a detached element. Its owner document stays unset
// until it is attached under this document's root.
func (d *Document) CreateElement(tagName string) *Element {
	name := strings.ToLower(tagName)
	n := &html.Node{
		Type:     html.ElementNode,
		Data:     name,
		DataAtom: atom.Lookup([]byte(name)),
	}
	return d.Wrap(n)
}

// CreateTextNode creates a detached text node.
func (d *Document) CreateTextNode(text string) Node {
	return NodeOf(&html.Node{Type: html.TextNode, Data: text})
}

// Wrap returns the facade for an element node of this document, creating
// it on first use. It returns nil for non-element nodes.
func (d *Document) Wrap(n *html.Node) *Element {
	if n == nil || n.Type != html.ElementNode {
		return nil
	}
	if el, ok := d.elements[n]; ok {
		return el
	}
	el := newElement(d, n)
	d.elements[n] = el
	if d.contains(n) {
		el.owner = d
	}
	return el
}

func (d *Document) wrapAll(nodes []*html.Node) []*Element {
	out := make([]*Element, 0, len(nodes))
	for _, n := range nodes {
		if el := d.Wrap(n); el != nil {
			out = append(out, el)
		}
	}
	return out
}

// contains reports whether n is connected to this document's root.
func (d *Document) contains(n *html.Node) bool {
	for ; n != nil; n = n.Parent {
		if n == d.root {
			return true
		}
	}
	return false
}

// DocumentElement returns the root element, or nil.
func (d *Document) DocumentElement() *Element {
	for c := d.root.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == html.ElementNode {
			return d.Wrap(c)
		}
	}
	return nil
}

// Body returns the body element, or nil.
func (d *Document) Body() *Element {
	root := d.DocumentElement()
	if root == nil {
		return nil
	}
	for c := root.node.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == html.ElementNode && c.DataAtom == atom.Body {
			return d.Wrap(c)
		}
	}
	return nil
}

// AppendChild attaches el as the document element. A document holds at
// most one element child.
func (d *Document) AppendChild(el *Element) error {
	if el == nil {
		return ErrHierarchyRequest("cannot append a nil element")
	}
	if el.doc != d {
		return ErrWrongDocument("element belongs to another document")
	}
	if d.DocumentElement() != nil {
		return ErrHierarchyRequest("document already has a document element")
	}
	if el.node.Parent != nil {
		el.node.Parent.RemoveChild(el.node)
	}
	d.root.AppendChild(el.node)
	d.attach(el.node)
	return nil
}

// GetElementByID returns the first element in document order with the
// given id, or nil.
func (d *Document) GetElementByID(id string) *Element {
	return d.Wrap(findByID(d.root, id))
}

// ElementsByTagName returns every element of the document whose local name
// matches, in document order.
func (d *Document) ElementsByTagName(name string) []*Element {
	return d.wrapAll(collect(d.root, tagMatcher(name)))
}

// ElementsByName returns every element whose name attribute equals name.
func (d *Document) ElementsByName(name string) []*Element {
	return d.elementsByName(d.root, name)
}

// attach sets the owner of every element facade under n once n is connected.
func (d *Document) attach(n *html.Node) {
	if !d.contains(n) {
		return
	}
	walk(n, func(c *html.Node) {
		if el, ok := d.elements[c]; ok && el.owner == nil {
			el.owner = d
		}
	})
}

// release drops the expando stores of every element facade under n.
func (d *Document) release(n *html.Node) {
	walk(n, func(c *html.Node) {
		if el, ok := d.elements[c]; ok {
			el.object.Release()
		}
	})
}

// walk visits n and its descendants in document order.
func walk(n *html.Node, visit func(*html.Node)) {
	visit(n)
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		walk(c, visit)
	}
}
