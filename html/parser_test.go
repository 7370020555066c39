package html

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse_BasicDocument(t *testing.T) {
	doc, err := Parse(`<!DOCTYPE html>
<html>
<head><title>Test</title></head>
<body><p id="greeting">Hello, World!</p></body>
</html>`)
	require.NoError(t, err)

	require.NotNil(t, doc.DocumentElement())
	assert.Equal(t, "HTML", doc.DocumentElement().TagName())
	require.NotNil(t, doc.Body())

	p := doc.GetElementByID("greeting")
	require.NotNil(t, p)
	assert.Equal(t, "Hello, World!", p.TextContent())
	assert.Same(t, doc, p.OwnerDocument())
}

func TestParse_ImpliedElements(t *testing.T) {
	doc, err := ParseReader(strings.NewReader(`<p>bare`))
	require.NoError(t, err)
	assert.NotNil(t, doc.Body())
	assert.Len(t, doc.ElementsByTagName("p"), 1)
}

func TestAppendFragment(t *testing.T) {
	doc, err := Parse(`<ul id="list"><li>one</li></ul>`)
	require.NoError(t, err)
	list := doc.GetElementByID("list")

	require.NoError(t, AppendFragment(list, `<li id="two">two</li>text<li name="three">three</li>`))

	assert.Len(t, list.Children(), 3)
	two := doc.GetElementByID("two")
	require.NotNil(t, two)
	assert.Equal(t, 1, list.IndexOf(two))
	assert.Same(t, doc, two.OwnerDocument())
	assert.Len(t, list.ElementsByName("three"), 1)
}

func TestRender(t *testing.T) {
	doc, err := Parse(`<div id="a" class="x">hi</div>`)
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, Render(&buf, doc))
	assert.Equal(t, `<html><head></head><body><div id="a" class="x">hi</div></body></html>`, buf.String())

	buf.Reset()
	require.NoError(t, RenderElement(&buf, doc.GetElementByID("a")))
	assert.Equal(t, `<div id="a" class="x">hi</div>`, buf.String())
}

func TestFormat(t *testing.T) {
	doc, err := Parse(`<div><p>hi</p></div>`)
	require.NoError(t, err)

	out, err := Format(doc)
	require.NoError(t, err)
	assert.Contains(t, out, "<p>")
	assert.Greater(t, strings.Count(out, "\n"), 2, "formatted output is indented over several lines")
}
