// Package js hosts element bindings in a goja JavaScript runtime.
// It uses the goja JavaScript engine (pure Go ES5.1+ implementation).
package js

import (
	"strings"
	"sync"

	"github.com/dop251/goja"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

// Runtime wraps a goja runtime with a console and error collection.
type Runtime struct {
	vm      *goja.Runtime
	mu      sync.Mutex
	errors  []error
	onError func(error)
	log     logrus.FieldLogger
}

// NewRuntime creates a new JavaScript runtime.
func NewRuntime() *Runtime {
	r := &Runtime{
		vm:  goja.New(),
		log: logrus.WithField("component", "js"),
	}
	r.setupConsole()
	r.setupWindow()
	return r
}

// VM returns the underlying goja runtime.
func (r *Runtime) VM() *goja.Runtime {
	return r.vm
}

// SetLogger replaces the logger that console output and script errors go to.
func (r *Runtime) SetLogger(l logrus.FieldLogger) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if l != nil {
		r.log = l
	}
}

// SetOnError sets a callback for JavaScript errors.
func (r *Runtime) SetOnError(handler func(error)) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.onError = handler
}

// Execute runs JavaScript code and returns the result.
func (r *Runtime) Execute(code string) (result goja.Value, err error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	defer func() {
		if p := recover(); p != nil {
			err = errors.Errorf("script execution panic: %v", p)
			r.record(err, "")
		}
	}()

	result, err = r.vm.RunString(code)
	if err != nil {
		r.record(err, "")
	}
	return result, err
}

// ExecuteScript compiles and runs code in sloppy mode. src names the script
// in error messages.
func (r *Runtime) ExecuteScript(code, src string) (err error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	defer func() {
		if p := recover(); p != nil {
			err = errors.Errorf("script compilation panic in %s: %v", src, p)
			r.record(err, src)
		}
	}()

	program, err := goja.Compile(src, code, false)
	if err != nil {
		r.record(err, src)
		return err
	}
	if _, err = r.vm.RunProgram(program); err != nil {
		r.record(err, src)
	}
	return err
}

func (r *Runtime) record(err error, src string) {
	r.errors = append(r.errors, err)
	entry := r.log.WithError(err)
	if src != "" {
		entry = entry.WithField("script", src)
	}
	entry.Warn("script failed")
	if r.onError != nil {
		r.onError(err)
	}
}

// Errors returns all errors that occurred during execution.
func (r *Runtime) Errors() []error {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]error{}, r.errors...)
}

// ClearErrors clears the error list.
func (r *Runtime) ClearErrors() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.errors = r.errors[:0]
}

// setupConsole routes console output to the logger, one level per method.
func (r *Runtime) setupConsole() {
	console := r.vm.NewObject()
	levels := map[string]logrus.Level{
		"log":   logrus.InfoLevel,
		"info":  logrus.InfoLevel,
		"warn":  logrus.WarnLevel,
		"error": logrus.ErrorLevel,
		"debug": logrus.DebugLevel,
		"trace": logrus.TraceLevel,
	}
	for name, level := range levels {
		level := level
		console.Set(name, func(call goja.FunctionCall) goja.Value {
			r.log.WithField("source", "console").Log(level, formatArgs(call.Arguments))
			return goja.Undefined()
		})
	}

	console.Set("assert", func(call goja.FunctionCall) goja.Value {
		if len(call.Arguments) == 0 || !call.Arguments[0].ToBoolean() {
			msg := "Assertion failed"
			if len(call.Arguments) > 1 {
				msg += ": " + formatArgs(call.Arguments[1:])
			}
			r.log.WithField("source", "console").Error(msg)
		}
		return goja.Undefined()
	})

	r.vm.Set("console", console)
}

// setupWindow aliases window and self to the global object.
func (r *Runtime) setupWindow() {
	global := r.vm.GlobalObject()
	r.vm.Set("window", global)
	r.vm.Set("self", global)
}

// formatArgs formats console arguments for output.
func formatArgs(args []goja.Value) string {
	parts := make([]string, len(args))
	for i, arg := range args {
		parts[i] = formatValue(arg)
	}
	return strings.Join(parts, " ")
}

// formatValue formats a single value for output.
func formatValue(v goja.Value) string {
	if v == nil || goja.IsUndefined(v) {
		return "undefined"
	}
	if goja.IsNull(v) {
		return "null"
	}
	return v.String()
}
