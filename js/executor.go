package js

import (
	"strings"

	"github.com/chrisuehlinger/domscript/dom"
)

// ScriptExecutor runs the inline scripts of a document against its binding.
type ScriptExecutor struct {
	runtime *Runtime
	binder  *Binder
}

// NewScriptExecutor binds doc into runtime.
func NewScriptExecutor(runtime *Runtime, doc *dom.Document) *ScriptExecutor {
	return &ScriptExecutor{runtime: runtime, binder: NewBinder(runtime, doc)}
}

// Runtime returns the runtime scripts run in.
func (se *ScriptExecutor) Runtime() *Runtime {
	return se.runtime
}

// Binder returns the document binding.
func (se *ScriptExecutor) Binder() *Binder {
	return se.binder
}

// ExecuteScripts runs every inline script element in document order. A
// failing script does not stop the ones after it.
func (se *ScriptExecutor) ExecuteScripts() []error {
	var errs []error
	for _, script := range se.binder.doc.ElementsByTagName("script") {
		if err := se.executeScript(script); err != nil {
			errs = append(errs, err)
		}
	}
	return errs
}

func (se *ScriptExecutor) executeScript(script *dom.Element) error {
	scriptType, _ := script.GetAttribute("type")
	switch strings.ToLower(strings.TrimSpace(scriptType)) {
	case "", "text/javascript", "application/javascript":
	default:
		return nil
	}

	// External scripts are not fetched.
	if src, _ := script.GetAttribute("src"); src != "" {
		se.runtime.log.WithField("src", src).Debug("skipping external script")
		return nil
	}

	code := strings.TrimSpace(script.TextContent())
	if code == "" {
		return nil
	}

	id := script.ID()
	if id == "" {
		id = "inline"
	}
	return se.runtime.ExecuteScript(code, id)
}
