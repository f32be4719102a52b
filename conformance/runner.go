package conformance

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/chrisuehlinger/plumbgeom/html"
	"github.com/chrisuehlinger/plumbgeom/js"
	"github.com/chrisuehlinger/plumbgeom/position"
)

// SuiteResult is the outcome of one fixture file.
type SuiteResult struct {
	File          string
	HarnessStatus string // OK or ERROR
	Tests         []TestResult
	Duration      time.Duration
	Error         string
}

// Runner runs fixture files.
type Runner struct {
	Results []SuiteResult
	logger  *zap.Logger
}

// NewRunner creates a runner. A nil logger discards script console output.
func NewRunner(logger *zap.Logger) *Runner {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Runner{logger: logger}
}

// RunFile runs the inline scripts of the fixture at path and records the
// result.
func (r *Runner) RunFile(path string) (result SuiteResult) {
	start := time.Now()
	result = SuiteResult{File: path, HarnessStatus: "OK"}
	defer func() {
		result.Duration = time.Since(start)
		r.Results = append(r.Results, result)
	}()

	fail := func(format string, args ...any) SuiteResult {
		result.HarnessStatus = "ERROR"
		result.Error = fmt.Sprintf(format, args...)
		return result
	}

	f, err := os.Open(path)
	if err != nil {
		return fail("Failed to open fixture: %v", err)
	}
	defer f.Close()

	fixture, err := html.ParseFixture(f)
	if err != nil {
		return fail("Failed to parse fixture: %v", err)
	}

	runtime := js.NewRuntime(r.logger.With(zap.String("fixture", filepath.Base(path))))
	runtime.BindPlumb(fixture.Document, position.NewDOM(position.Options{Logger: r.logger}), nil)
	harness, err := NewHarness(runtime)
	if err != nil {
		return fail("Failed to install harness: %v", err)
	}

	for _, script := range fixture.Scripts {
		name := fmt.Sprintf("%s#script%d", filepath.Base(path), script.Index)
		if err := runtime.ExecuteScript(script.Code, name); err != nil {
			result.Tests = harness.Results()
			return fail("Uncaught error in %s: %v", name, err)
		}
	}

	result.Tests = harness.Results()
	if len(result.Tests) == 0 {
		return fail("No tests ran")
	}
	return result
}

// RunDir runs every .html fixture directly inside dir, in name order.
func (r *Runner) RunDir(dir string) error {
	matches, err := filepath.Glob(filepath.Join(dir, "*.html"))
	if err != nil {
		return err
	}
	if len(matches) == 0 {
		return fmt.Errorf("no fixtures in %s", dir)
	}
	for _, m := range matches {
		r.RunFile(m)
	}
	return nil
}

// Summary counts test outcomes across all suites. Suites that failed to
// run count as one error each.
func (r *Runner) Summary() (passed, failed int) {
	for _, suite := range r.Results {
		if suite.Error != "" {
			failed++
		}
		for _, t := range suite.Tests {
			if t.Status == StatusPass {
				passed++
			} else {
				failed++
			}
		}
	}
	return
}

// JSONResult is the exported form of a SuiteResult.
type JSONResult struct {
	File     string        `json:"file"`
	Status   string        `json:"status"`
	Message  string        `json:"message,omitempty"`
	Duration int64         `json:"duration"`
	Subtests []JSONSubtest `json:"subtests"`
}

// JSONSubtest is the exported form of a TestResult.
type JSONSubtest struct {
	Name    string `json:"name"`
	Status  string `json:"status"`
	Message string `json:"message,omitempty"`
}

// ExportJSON exports all results.
func (r *Runner) ExportJSON() ([]byte, error) {
	out := make([]JSONResult, 0, len(r.Results))
	for _, suite := range r.Results {
		jr := JSONResult{
			File:     suite.File,
			Status:   suite.HarnessStatus,
			Message:  suite.Error,
			Duration: suite.Duration.Milliseconds(),
			Subtests: make([]JSONSubtest, 0, len(suite.Tests)),
		}
		for _, t := range suite.Tests {
			jr.Subtests = append(jr.Subtests, JSONSubtest{Name: t.Name, Status: t.Status.String(), Message: t.Message})
		}
		out = append(out, jr)
	}
	return json.MarshalIndent(out, "", "  ")
}

// Format renders a suite result as indented text.
func Format(result SuiteResult) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s (%s, %.2fs)\n", result.File, result.HarnessStatus, result.Duration.Seconds())
	if result.Error != "" {
		fmt.Fprintf(&b, "  ERROR: %s\n", result.Error)
	}
	for _, t := range result.Tests {
		mark := "✓"
		if t.Status != StatusPass {
			mark = "✗"
		}
		fmt.Fprintf(&b, "  %s %s\n", mark, t.Name)
		if t.Message != "" && t.Status != StatusPass {
			for _, line := range strings.Split(t.Message, "\n") {
				fmt.Fprintf(&b, "      %s\n", line)
			}
		}
	}
	return b.String()
}
