package dom

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"golang.org/x/net/html"
)

func TestQuoteCSSString(t *testing.T) {
	cases := []struct {
		in, want string
	}{
		{"plain", `"plain"`},
		{`a"b`, `"a\"b"`},
		{`a\b`, `"a\\b"`},
		{"line\nbreak", `"line\a break"`},
		{"nul\x00", `"nul\fffd "`},
		{"", `""`},
		{"é", `"é"`},
	}
	for _, c := range cases {
		assert.Equal(t, c.want, quoteCSSString(c.in), "input %q", c.in)
	}
}

func TestAttributeEqualsQuery(t *testing.T) {
	assert.Equal(t, `[name="x\"]"]`, attributeEqualsQuery("name", `x"]`))
}

type failingEvaluator struct{ calls int }

func (f *failingEvaluator) Evaluate(*html.Node, string) ([]*html.Node, error) {
	f.calls++
	return nil, errors.New("unsupported")
}

func TestElementsByName_FallbackWalk(t *testing.T) {
	const src = `<div id="top"><p id="x" name="n"></p><p id="y" name="n]"></p></div>`

	doc := parseDoc(t, src)
	doc.SetQueryEvaluator(nil)
	assert.Equal(t, []string{"x"}, ids(byID(t, doc, "top").ElementsByName("n")))

	doc = parseDoc(t, src)
	failing := &failingEvaluator{}
	doc.SetQueryEvaluator(failing)
	assert.Equal(t, []string{"y"}, ids(byID(t, doc, "top").ElementsByName("n]")))
	assert.Equal(t, 1, failing.calls)
}

func TestElementsByName_EvaluatorMatchesWalk(t *testing.T) {
	const src = `<div id="top"><p id="a" name="odd 'name' \x"><span id="b" name="odd 'name' \x"></span></p></div>`

	doc := parseDoc(t, src)
	withQuery := ids(byID(t, doc, "top").ElementsByName(`odd 'name' \x`))

	doc.SetQueryEvaluator(nil)
	withWalk := ids(byID(t, doc, "top").ElementsByName(`odd 'name' \x`))

	assert.Equal(t, []string{"a", "b"}, withQuery)
	assert.Equal(t, withQuery, withWalk)
}

type countingEvaluator struct {
	CascadiaEvaluator
	calls int
}

func (c *countingEvaluator) Evaluate(root *html.Node, query string) ([]*html.Node, error) {
	c.calls++
	return c.CascadiaEvaluator.Evaluate(root, query)
}

func TestElementsByName_InvalidUTF8(t *testing.T) {
	doc := parseDoc(t, `<div id="top"><p id="x"></p><p id="y" name="a?b"></p></div>`)
	x := byID(t, doc, "x")
	x.HTMLNode().Attr = append(x.HTMLNode().Attr, html.Attribute{Key: "name", Val: "a\xffb"})

	counting := &countingEvaluator{}
	doc.SetQueryEvaluator(counting)
	top := byID(t, doc, "top")
	assert.Equal(t, []string{"x"}, ids(top.ElementsByName("a\xffb")))
	assert.Equal(t, 0, counting.calls)

	assert.Equal(t, []string{"y"}, ids(top.ElementsByName("a?b")))
	assert.Equal(t, 1, counting.calls)
}
