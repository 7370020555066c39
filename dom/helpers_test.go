package dom

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"golang.org/x/net/html"
)

func parseDoc(t *testing.T, src string) *Document {
	t.Helper()
	root, err := html.Parse(strings.NewReader(src))
	require.NoError(t, err)
	doc, err := NewDocumentFromNode(root)
	require.NoError(t, err)
	return doc
}

func byID(t *testing.T, doc *Document, id string) *Element {
	t.Helper()
	el := doc.GetElementByID(id)
	require.NotNil(t, el, "no element with id %q", id)
	return el
}

func ids(els []*Element) []string {
	out := make([]string, len(els))
	for i, el := range els {
		out[i] = el.ID()
	}
	return out
}
