package dom

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/andybalholm/cascadia"
	"golang.org/x/net/html"
)

// QueryEvaluator runs a selection query against a subtree and returns the
// matching descendants of root in document order.
type QueryEvaluator interface {
	Evaluate(root *html.Node, query string) ([]*html.Node, error)
}

// CascadiaEvaluator evaluates CSS selector queries.
type CascadiaEvaluator struct{}

// Evaluate implements QueryEvaluator.
func (CascadiaEvaluator) Evaluate(root *html.Node, query string) ([]*html.Node, error) {
	sel, err := cascadia.Parse(query)
	if err != nil {
		return nil, err
	}
	return cascadia.QueryAll(root, sel), nil
}

// attributeEqualsQuery builds a selector matching elements whose attribute
// equals value. The value is always emitted as an escaped CSS string.
func attributeEqualsQuery(attr, value string) string {
	return "[" + attr + "=" + quoteCSSString(value) + "]"
}

// quoteCSSString returns s as a double-quoted CSS string literal.
func quoteCSSString(s string) string {
	var sb strings.Builder
	sb.Grow(len(s) + 2)
	sb.WriteByte('"')
	for _, r := range s {
		switch {
		case r == '"' || r == '\\':
			sb.WriteByte('\\')
			sb.WriteRune(r)
		case r == 0:
			sb.WriteString(`\fffd `)
		case r < 0x20 || r == 0x7f:
			fmt.Fprintf(&sb, `\%x `, r)
		default:
			sb.WriteRune(r)
		}
	}
	sb.WriteByte('"')
	return sb.String()
}

// elementsByName returns the descendants of root whose name attribute
// equals name. It asks the query evaluator first and walks the tree itself
// when no evaluator is set or the query fails. A name that is not valid
// UTF-8 cannot be written as a CSS string, so it always takes the walk.
func (d *Document) elementsByName(root *html.Node, name string) []*Element {
	if d.query != nil && utf8.ValidString(name) {
		nodes, err := d.query.Evaluate(root, attributeEqualsQuery("name", name))
		if err == nil {
			out := make([]*html.Node, 0, len(nodes))
			for _, n := range nodes {
				if n != root {
					out = append(out, n)
				}
			}
			return d.wrapAll(out)
		}
		d.log.WithError(err).WithField("name", name).Warn("name query failed, walking the tree")
	}
	return d.wrapAll(collect(root, func(n *html.Node) bool {
		return hasAttrValue(n, "name", name)
	}))
}

func hasAttrValue(n *html.Node, key, value string) bool {
	for _, a := range n.Attr {
		if a.Namespace == "" && a.Key == key {
			return a.Val == value
		}
	}
	return false
}
