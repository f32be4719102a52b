// Package js exposes the geometry core to scripts through the goja
// JavaScript engine (pure Go ES5.1+ implementation).
package js

import (
	"fmt"
	"strings"
	"sync"

	"github.com/dop251/goja"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Runtime wraps a goja JavaScript runtime. Script execution is serialised;
// goja values must not be used outside Execute or ExecuteScript.
type Runtime struct {
	vm      *goja.Runtime
	logger  *zap.Logger
	mu      sync.Mutex
	errors  []error
	onError func(error)
}

// NewRuntime creates a runtime with a console that writes to logger.
// A nil logger discards console output.
func NewRuntime(logger *zap.Logger) *Runtime {
	if logger == nil {
		logger = zap.NewNop()
	}
	r := &Runtime{
		vm:     goja.New(),
		logger: logger,
	}
	r.setupConsole()
	return r
}

// VM returns the underlying goja runtime.
func (r *Runtime) VM() *goja.Runtime {
	return r.vm
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

	// goja's parser can panic on malformed input.
	defer func() {
		if p := recover(); p != nil {
			err = fmt.Errorf("script execution panic: %v", p)
			r.recordError(err)
		}
	}()

	result, err = r.vm.RunString(code)
	if err != nil {
		r.recordError(err)
	}
	return result, err
}

// ExecuteScript compiles and runs code named src, in sloppy mode unless
// the code carries a "use strict" directive.
func (r *Runtime) ExecuteScript(code, src string) (err error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	defer func() {
		if p := recover(); p != nil {
			err = fmt.Errorf("script compilation panic in %s: %v", src, p)
			r.recordError(err)
		}
	}()

	program, err := goja.Compile(src, code, false)
	if err != nil {
		r.recordError(err)
		return err
	}

	if _, err = r.vm.RunProgram(program); err != nil {
		r.recordError(err)
	}
	return err
}

func (r *Runtime) recordError(err error) {
	r.errors = append(r.errors, err)
	r.logger.Warn("script error", zap.Error(err))
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

// setupConsole installs console.log and friends, routed to the logger.
func (r *Runtime) setupConsole() {
	console := r.vm.NewObject()

	logAt := func(level zapcore.Level) func(goja.FunctionCall) goja.Value {
		return func(call goja.FunctionCall) goja.Value {
			r.logger.Log(level, "console", zap.String("message", formatArgs(call.Arguments)))
			return goja.Undefined()
		}
	}
	console.Set("log", logAt(zap.InfoLevel))
	console.Set("info", logAt(zap.InfoLevel))
	console.Set("warn", logAt(zap.WarnLevel))
	console.Set("error", logAt(zap.ErrorLevel))
	console.Set("debug", logAt(zap.DebugLevel))

	console.Set("assert", func(call goja.FunctionCall) goja.Value {
		if len(call.Arguments) == 0 || !call.Arguments[0].ToBoolean() {
			msg := "Assertion failed"
			if len(call.Arguments) > 1 {
				msg = formatArgs(call.Arguments[1:])
			}
			r.logger.Error("console", zap.String("message", msg))
		}
		return goja.Undefined()
	})

	r.vm.Set("console", console)
}

// formatArgs joins console arguments with spaces.
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
