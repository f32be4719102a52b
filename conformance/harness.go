// Package conformance runs HTML layout fixtures whose inline scripts hold
// testharness-style assertions against the plumb script API.
package conformance

import (
	"github.com/dop251/goja"

	"github.com/chrisuehlinger/plumbgeom/js"
)

// Status of a single test.
type Status int

const (
	StatusPass Status = iota
	StatusFail
	StatusError
)

func (s Status) String() string {
	switch s {
	case StatusPass:
		return "PASS"
	case StatusFail:
		return "FAIL"
	case StatusError:
		return "ERROR"
	default:
		return "UNKNOWN"
	}
}

// TestResult is the outcome of one test() call.
type TestResult struct {
	Name    string
	Status  Status
	Message string
}

// Harness collects results reported by the script harness.
type Harness struct {
	runtime *js.Runtime
	results []TestResult
}

// NewHarness installs the harness functions into the runtime.
func NewHarness(runtime *js.Runtime) (*Harness, error) {
	h := &Harness{runtime: runtime}
	runtime.VM().Set("__report_result", h.report)
	if _, err := runtime.Execute(harnessJS); err != nil {
		return nil, err
	}
	return h, nil
}

// report receives (name, status, message) from the script side.
func (h *Harness) report(call goja.FunctionCall) goja.Value {
	r := TestResult{
		Name:   call.Argument(0).String(),
		Status: Status(call.Argument(1).ToInteger()),
	}
	if msg := call.Argument(2); !goja.IsUndefined(msg) && !goja.IsNull(msg) {
		r.Message = msg.String()
	}
	h.results = append(h.results, r)
	return goja.Undefined()
}

// Results returns the results reported so far.
func (h *Harness) Results() []TestResult {
	return h.results
}

// harnessJS is a synchronous subset of testharness.js.
const harnessJS = `
function test(func, name) {
    name = name || '';
    try {
        func();
        __report_result(name, 0, null);
    } catch (e) {
        __report_result(name, 1, e.message || String(e));
    }
}

function _fail(description, message) {
    throw new Error((description ? description + ': ' : '') + message);
}

function assert_true(actual, description) {
    if (actual !== true) _fail(description, 'expected true but got ' + actual);
}

function assert_false(actual, description) {
    if (actual !== false) _fail(description, 'expected false but got ' + actual);
}

function assert_equals(actual, expected, description) {
    if (actual !== expected) {
        _fail(description, 'expected ' + JSON.stringify(expected) + ' but got ' + JSON.stringify(actual));
    }
}

function assert_array_equals(actual, expected, description) {
    if (!actual || !expected || actual.length !== expected.length) {
        _fail(description, 'expected ' + JSON.stringify(expected) + ' but got ' + JSON.stringify(actual));
    }
    for (var i = 0; i < actual.length; i++) {
        if (actual[i] !== expected[i]) {
            _fail(description, 'arrays differ at index ' + i + ': ' +
                JSON.stringify(actual[i]) + ' vs ' + JSON.stringify(expected[i]));
        }
    }
}

function assert_approx_equals(actual, expected, epsilon, description) {
    if (typeof actual !== 'number' || Math.abs(actual - expected) > epsilon) {
        _fail(description, 'expected ' + expected + ' +/- ' + epsilon + ' but got ' + actual);
    }
}

function assert_offset(actual, left, top, description) {
    if (!actual || actual.left !== left || actual.top !== top) {
        _fail(description, 'expected {left: ' + left + ', top: ' + top + '} but got ' + JSON.stringify(actual));
    }
}

function assert_throws(func, pattern, description) {
    try {
        func();
    } catch (e) {
        var msg = e.message || String(e);
        if (pattern && msg.indexOf(pattern) < 0) {
            _fail(description, 'expected error containing ' + JSON.stringify(pattern) + ' but got ' + JSON.stringify(msg));
        }
        return;
    }
    _fail(description, 'expected an exception');
}

function assert_unreached(description) {
    _fail(description, 'should not be reached');
}
`
