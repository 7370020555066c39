package dom

import (
	"strings"

	"golang.org/x/net/html"
)

// Node is anything that sits in the substrate tree.
type Node interface {
	HTMLNode() *html.Node
}

type rawNode struct{ n *html.Node }

func (r rawNode) HTMLNode() *html.Node { return r.n }

// NodeOf adapts a substrate node, such as a text node, to Node.
func NodeOf(n *html.Node) Node {
	return rawNode{n}
}

// ElementsByTagName returns the proper descendants of root whose local name
// matches name, in document order. "*" matches every element. HTML elements
// compare case-insensitively. A nil or detached root yields nil.
func ElementsByTagName(root *Element, name string) []*Element {
	if !root.Connected() {
		return nil
	}
	return root.doc.wrapAll(collect(root.node, tagMatcher(name)))
}

// IndexOf returns the zero-based position of child among the direct
// children of parent, or -1. Descendants further down do not count.
func IndexOf(parent *Element, child Node) int {
	if parent == nil || child == nil {
		return -1
	}
	target := child.HTMLNode()
	if target == nil || target.Parent != parent.node {
		return -1
	}
	i := 0
	for c := parent.node.FirstChild; c != nil; c = c.NextSibling {
		if c == target {
			return i
		}
		i++
	}
	return -1
}

func tagMatcher(name string) func(*html.Node) bool {
	if name == "*" {
		return func(*html.Node) bool { return true }
	}
	lower := strings.ToLower(name)
	return func(n *html.Node) bool {
		if n.Namespace == "" {
			return n.Data == lower
		}
		return n.Data == name
	}
}

// collect returns the element descendants of root (root excluded) that
// satisfy match, in document order.
func collect(root *html.Node, match func(*html.Node) bool) []*html.Node {
	var out []*html.Node
	var visit func(*html.Node)
	visit = func(n *html.Node) {
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			if c.Type == html.ElementNode && match(c) {
				out = append(out, c)
			}
			visit(c)
		}
	}
	visit(root)
	return out
}

func findByID(root *html.Node, id string) *html.Node {
	if id == "" {
		return nil
	}
	for c := root.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == html.ElementNode && attrValue(c, "id") == id {
			return c
		}
		if found := findByID(c, id); found != nil {
			return found
		}
	}
	return nil
}

func attrValue(n *html.Node, key string) string {
	for _, a := range n.Attr {
		if a.Namespace == "" && a.Key == key {
			return a.Val
		}
	}
	return ""
}
