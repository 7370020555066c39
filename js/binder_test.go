package js

import (
	"strings"
	"testing"

	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/net/html"

	"github.com/chrisuehlinger/domscript/binding"
	"github.com/chrisuehlinger/domscript/dom"
)

const page = `<!DOCTYPE html><html><body>
<div id="d" style="color: blue"><p id="p">text</p><input id="q" name="q"></div>
</body></html>`

func bind(t *testing.T, src string) (*Binder, *Runtime) {
	t.Helper()
	root, err := html.Parse(strings.NewReader(src))
	require.NoError(t, err)
	doc, err := dom.NewDocumentFromNode(root)
	require.NoError(t, err)

	logger, _ := test.NewNullLogger()
	rt := NewRuntime()
	rt.SetLogger(logger)
	return NewBinder(rt, doc), rt
}

func run(t *testing.T, rt *Runtime, code string) any {
	t.Helper()
	v, err := rt.Execute(code)
	require.NoError(t, err)
	return v.Export()
}

func TestBinder_ElementIdentity(t *testing.T) {
	b, rt := bind(t, page)

	assert.Equal(t, true, run(t, rt, `document.getElementById("d") === document.getElementById("d")`))
	assert.Equal(t, true, run(t, rt, `document.getElementById("p").parentElement === document.getElementById("d")`))
	assert.Equal(t, true, run(t, rt, `document.getElementById("d").click === document.getElementById("d").click`))
	assert.Nil(t, run(t, rt, `document.getElementById("nope")`))

	el, ok := b.ElementOf(b.ElementValue(b.Document().GetElementByID("d")))
	require.True(t, ok)
	assert.Equal(t, "d", el.ID())
}

func TestBinder_BuiltinsWinOverExpandos(t *testing.T) {
	b, rt := bind(t, page)

	got := run(t, rt, `
		var d = document.getElementById("d");
		d.styles = "shadow";
		typeof d.styles + ":" + d.styles.color;
	`)
	assert.Equal(t, "object:blue", got)
	assert.False(t, b.Document().GetElementByID("d").Binding().Expando().Has(binding.MakeKey("styles")))
}

func TestBinder_ExpandoRoundTrip(t *testing.T) {
	b, rt := bind(t, page)

	assert.EqualValues(t, 5, run(t, rt, `var d = document.getElementById("d"); d.foo = 5; d.foo`))
	assert.Equal(t, true, run(t, rt, `"foo" in d`))
	assert.Equal(t, true, run(t, rt, `delete d.foo`))
	assert.Equal(t, "undefined", run(t, rt, `typeof d.foo`))

	run(t, rt, `d.bar = "x"`)
	v, err := b.Document().GetElementByID("d").Property("bar")
	require.NoError(t, err)
	assert.Equal(t, "x", v)
}

func TestBinder_Enumeration(t *testing.T) {
	_, rt := bind(t, page)

	got := run(t, rt, `
		var d = document.getElementById("d");
		d.foo = 1;
		var keys = Object.keys(d);
		[keys[0], keys[keys.length - 1], keys.indexOf("getElementById") > 0, keys.indexOf("outerTag")].join(",");
	`)
	assert.Equal(t, "styles,foo,true,-1", got)
}

func TestBinder_Methods(t *testing.T) {
	_, rt := bind(t, page)

	assert.Equal(t, "P", run(t, rt, `document.getElementById("d").getElementById("p").tagName`))
	assert.EqualValues(t, 1, run(t, rt, `document.getElementById("d").indexOf(document.getElementById("q"))`))
	assert.EqualValues(t, -1, run(t, rt, `document.body.indexOf(document.getElementById("q"))`))
	assert.EqualValues(t, 1, run(t, rt, `document.getElementById("d").getElementsByName("q").length`))
	assert.Equal(t, "text", run(t, rt, `document.getElementById("p").textContent`))
}

func TestBinder_ArgumentMismatchThrowsTypeError(t *testing.T) {
	_, rt := bind(t, page)

	got := run(t, rt, `
		try { document.getElementById("d").getElementById(); "no error" }
		catch (e) { e instanceof TypeError }
	`)
	assert.Equal(t, true, got)

	got = run(t, rt, `
		try { document.getElementById("d").indexOf("p"); "no error" }
		catch (e) { e instanceof TypeError }
	`)
	assert.Equal(t, true, got)
}

func TestBinder_ReadOnlyMembers(t *testing.T) {
	_, rt := bind(t, page)

	assert.Equal(t, "DIV", run(t, rt, `var d = document.getElementById("d"); d.tagName = "x"; d.tagName`))
	assert.Equal(t, false, run(t, rt, `delete d.tagName`))

	got := run(t, rt, `
		(function () {
			"use strict";
			try { d.tagName = "x"; return "no error"; }
			catch (e) { return e instanceof TypeError; }
		})()
	`)
	assert.Equal(t, true, got)
}

func TestBinder_DOMErrorsKeepTheirName(t *testing.T) {
	_, rt := bind(t, page)

	got := run(t, rt, `
		var d = document.getElementById("d");
		try { d.appendChild(d); "no error" } catch (e) { e.name }
	`)
	assert.Equal(t, "HierarchyRequestError", got)
}

func TestBinder_ScriptFunctionsAreInvocableFromGo(t *testing.T) {
	b, rt := bind(t, page)
	run(t, rt, `document.getElementById("d").greet = function (who) { return this.id + ":" + who; }`)

	el := b.Document().GetElementByID("d")
	got, err := el.Invoke("greet", "hi")
	require.NoError(t, err)
	assert.Equal(t, "d:hi", got)

	assert.Equal(t, true, run(t, rt, `typeof document.getElementById("d").greet === "function"`))

	mi, ok := el.Binding().Lookup(el.ScriptLevel(), "greet", binding.DefaultFilter)
	require.True(t, ok)
	assert.Equal(t, binding.MethodMember, mi.Kind)
}

func TestBinder_ScriptFunctionErrors(t *testing.T) {
	b, rt := bind(t, page)
	run(t, rt, `document.getElementById("d").fail = function () { throw new Error("nope"); }`)

	_, err := b.Document().GetElementByID("d").Invoke("fail")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "nope")
}

func TestBinder_GoFunctionsAreCallableFromScript(t *testing.T) {
	b, rt := bind(t, page)
	el := b.Document().GetElementByID("d")
	require.NoError(t, el.SetProperty("twice", binding.Func(func(args []any) (any, error) {
		n, _ := binding.ToInt(args[0])
		return n * 2, nil
	})))

	assert.EqualValues(t, 8, run(t, rt, `document.getElementById("d").twice(4)`))
}

func TestBinder_LevelGating(t *testing.T) {
	b, rt := bind(t, page)
	b.Document().SetLevel(binding.LevelDOM0)

	assert.Equal(t, "undefined", run(t, rt, `typeof document.getElementById("d").getElementById`))
	assert.Equal(t, "object", run(t, rt, `typeof document.getElementById("d").styles`))
	assert.Equal(t, "function", run(t, rt, `typeof document.getElementById("d").toString`))
}

func TestBinder_KeysStayUniqueAcrossLevels(t *testing.T) {
	b, rt := bind(t, page)
	b.Document().SetLevel(binding.LevelDOM0)
	run(t, rt, `document.getElementById("d").tagName = "x"`)

	b.Document().SetLevel(binding.LevelDOM2)
	got := run(t, rt, `
		var keys = Object.keys(document.getElementById("d"));
		keys.filter(function (k) { return k === "tagName"; }).length + "," + document.getElementById("d").tagName;
	`)
	assert.Equal(t, "1,DIV", got)
}

func TestBinder_Styles(t *testing.T) {
	b, rt := bind(t, page)

	got := run(t, rt, `
		var s = document.getElementById("d").styles;
		s.margin = "0";
		s.color = "red";
		s === document.getElementById("d").styles ? s.cssText : "different object";
	`)
	assert.Equal(t, "color: red; margin: 0", got)

	sc := b.Document().GetElementByID("d").Styles()
	v, _ := sc.Get("margin")
	assert.Equal(t, "0", v)

	run(t, rt, `delete s.margin`)
	assert.Equal(t, []string{"color"}, sc.Keys())
}

func TestBinder_DocumentObject(t *testing.T) {
	b, rt := bind(t, page)

	got := run(t, rt, `
		var el = document.createElement("SECTION");
		var before = el.ownerDocument;
		document.body.appendChild(el);
		[before === null, el.ownerDocument === document, el.parentElement === document.body].join(",");
	`)
	assert.Equal(t, "true,true,true", got)
	assert.Len(t, b.Document().ElementsByTagName("section"), 1)

	assert.Equal(t, "HTML", run(t, rt, `document.documentElement.tagName`))
	assert.EqualValues(t, 2, run(t, rt, `document.getElementsByTagName("div").length + document.getElementsByName("q").length`))
}

func TestScriptExecutor_ExecuteScripts(t *testing.T) {
	root, err := html.Parse(strings.NewReader(`<body>
<div id="out"></div>
<script type="text/template">not javascript (</script>
<script id="broken">throw new Error("boom")</script>
<script src="remote.js"></script>
<script>document.getElementById("out").setAttribute("data-ran", "yes")</script>
</body>`))
	require.NoError(t, err)
	doc, err := dom.NewDocumentFromNode(root)
	require.NoError(t, err)

	logger, _ := test.NewNullLogger()
	rt := NewRuntime()
	rt.SetLogger(logger)
	se := NewScriptExecutor(rt, doc)

	errs := se.ExecuteScripts()
	require.Len(t, errs, 1)
	assert.Contains(t, errs[0].Error(), "boom")

	ran, ok := doc.GetElementByID("out").GetAttribute("data-ran")
	assert.True(t, ok)
	assert.Equal(t, "yes", ran)
}
