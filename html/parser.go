// Package html loads and serializes dom documents, using golang.org/x/net/html
// as the underlying parser implementation.
package html

import (
	"bytes"
	"io"
	"strings"

	"github.com/pkg/errors"
	"github.com/yosssi/gohtml"
	"golang.org/x/net/html"

	"github.com/chrisuehlinger/domscript/dom"
)

// Parse parses HTML from a string and returns a document.
func Parse(htmlContent string) (*dom.Document, error) {
	return ParseReader(strings.NewReader(htmlContent))
}

// ParseReader parses HTML from an io.Reader and returns a document.
func ParseReader(r io.Reader) (*dom.Document, error) {
	root, err := html.Parse(r)
	if err != nil {
		return nil, errors.Wrap(err, "parse html")
	}
	return dom.NewDocumentFromNode(root)
}

// AppendFragment parses fragment in the context of parent and appends the
// resulting nodes to it, in order.
func AppendFragment(parent *dom.Element, fragment string) error {
	nodes, err := html.ParseFragment(strings.NewReader(fragment), parent.HTMLNode())
	if err != nil {
		return errors.Wrap(err, "parse fragment")
	}
	for _, n := range nodes {
		if err := parent.AppendChild(dom.NodeOf(n)); err != nil {
			return err
		}
	}
	return nil
}

// Render writes the document as HTML.
func Render(w io.Writer, doc *dom.Document) error {
	return errors.Wrap(html.Render(w, doc.Root()), "render html")
}

// RenderElement writes el and its subtree as HTML.
func RenderElement(w io.Writer, el *dom.Element) error {
	return errors.Wrap(html.Render(w, el.HTMLNode()), "render html")
}

// Format renders the document and indents it for reading.
func Format(doc *dom.Document) (string, error) {
	var buf bytes.Buffer
	if err := Render(&buf, doc); err != nil {
		return "", err
	}
	return gohtml.Format(buf.String()), nil
}
