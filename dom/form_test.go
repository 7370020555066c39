package dom

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chrisuehlinger/domscript/binding"
)

const signupForm = `<form id="f" action="/go" method="POST">
<input id="cb" type="checkbox">
<input id="r1" type="radio" name="g" checked>
<input id="r2" type="radio" name="g">
<input id="t" value="init">
<button id="b">Go</button>
<button id="rb" type="reset">Reset</button>
</form>
<input id="r3" type="radio" name="g" checked>`

func TestForm_CheckboxToggles(t *testing.T) {
	doc := parseDoc(t, signupForm)
	cb := byID(t, doc, "cb")

	assert.False(t, cb.Checked())
	cb.Click()
	assert.True(t, cb.Checked())
	_, err := cb.Invoke("click")
	require.NoError(t, err)
	assert.False(t, cb.Checked())
	assert.False(t, cb.HasAttribute("checked"), "clicks leave the attribute alone")
}

func TestForm_RadioGroupIsScopedToForm(t *testing.T) {
	doc := parseDoc(t, signupForm)
	r1, r2, r3 := byID(t, doc, "r1"), byID(t, doc, "r2"), byID(t, doc, "r3")

	r2.Click()
	assert.True(t, r2.Checked())
	assert.False(t, r1.Checked())
	assert.True(t, r3.Checked(), "radios outside the form are another group")
}

func TestForm_SubmitAndReset(t *testing.T) {
	doc := parseDoc(t, signupForm)
	form := byID(t, doc, "f")

	var submitted *Element
	doc.OnSubmit(func(f *Element) { submitted = f })

	byID(t, doc, "b").Click()
	assert.Same(t, form, submitted)

	text := byID(t, doc, "t")
	text.SetValue("changed")
	byID(t, doc, "r2").Click()
	assert.Equal(t, "changed", text.Value())

	byID(t, doc, "rb").Click()
	assert.Equal(t, "init", text.Value())
	assert.True(t, byID(t, doc, "r1").Checked())
	assert.False(t, byID(t, doc, "r2").Checked())
}

func TestForm_ClickOutsideFormIsHarmless(t *testing.T) {
	doc := parseDoc(t, `<button id="b">Go</button><input id="s" type="submit">`)
	called := false
	doc.OnSubmit(func(*Element) { called = true })

	byID(t, doc, "b").Click()
	byID(t, doc, "s").Click()
	assert.False(t, called)
}

func TestForm_Members(t *testing.T) {
	doc := parseDoc(t, signupForm)
	form := byID(t, doc, "f")

	v, err := form.Property("method")
	require.NoError(t, err)
	assert.Equal(t, "post", v)

	v, err = form.Property("action")
	require.NoError(t, err)
	assert.Equal(t, "/go", v)
	require.NoError(t, form.SetProperty("action", "/elsewhere"))
	action, _ := form.GetAttribute("action")
	assert.Equal(t, "/elsewhere", action)

	v, err = form.Property("elements")
	require.NoError(t, err)
	assert.Equal(t, []string{"cb", "r1", "r2", "t", "b", "rb"}, ids(v.([]*Element)))
}

func TestForm_ControlMembers(t *testing.T) {
	doc := parseDoc(t, signupForm)
	text := byID(t, doc, "t")
	button := byID(t, doc, "b")

	v, err := text.Property("type")
	require.NoError(t, err)
	assert.Equal(t, "text", v)
	v, err = button.Property("type")
	require.NoError(t, err)
	assert.Equal(t, "submit", v)

	v, err = text.Property("form")
	require.NoError(t, err)
	assert.Same(t, byID(t, doc, "f"), v)

	require.NoError(t, text.SetProperty("value", "typed"))
	assert.Equal(t, "typed", text.Value())

	assert.True(t, binding.IsArgumentMismatch(byID(t, doc, "cb").SetProperty("checked", "yes")))
	assert.True(t, binding.IsReadOnly(text.SetProperty("type", "radio")))
}
