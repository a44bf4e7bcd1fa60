package ldtest

import (
	"errors"
	"fmt"
	"runtime/debug"
	"strings"

	"github.com/launchdarkly/api-contract-tests/framework"
)

// TestConfiguration contains options for the entire test run.
type TestConfiguration struct {
	// Filter selects which tests to run. A nil Filter runs everything.
	Filter Filter

	// TestLogger receives progress reports. A nil TestLogger reports nothing.
	TestLogger TestLogger

	// Context is an arbitrary value that every T in the run returns from Context(). The
	// domain-specific test code uses it to reach its own shared state.
	Context interface{}
}

type environment struct {
	config  TestConfiguration
	results Results
}

// T represents a test or subtest.
//
// It implements the same basic functionality as Go's testing.T, but in an environment that is
// outside of the Go test runner, and with some extra features such as debug logging. A *T can be
// passed to the assert and require packages as if it were a *testing.T.
//
// T is not safe for concurrent use; subtests run sequentially.
type T struct {
	env         *environment
	id          TestID
	debugLogger framework.CapturingLogger
	failed      bool
	skipped     bool
	skipReason  string
	errors      []error
	cleanups    []func()
}

// Run starts a test run, calling action with the top-level T. The return value describes every
// test that was started within it.
func Run(config TestConfiguration, action func(*T)) Results {
	if config.TestLogger == nil {
		config.TestLogger = nullTestLogger{}
	}
	env := &environment{config: config}
	t := &T{env: env}
	t.run(action)
	return env.results
}

func (t *T) run(action func(*T)) {
	defer func() {
		if r := recover(); r != nil {
			if !t.skipped {
				t.failed = true
				var addError error
				if _, ok := r.(*T); ok {
					if len(t.errors) == 0 {
						addError = errors.New("test failed with no failure message")
					}
				} else {
					addError = fmt.Errorf("unexpected panic in test: %+v\n%s", r, string(debug.Stack()))
				}
				if addError != nil {
					t.errors = append(t.errors, addError)
					t.env.config.TestLogger.TestError(t.id, addError)
				}
			}
		}
		t.runCleanups()
		if len(t.id.Path) == 0 {
			return // the top-level scope is not a test of its own
		}
		result := TestResult{TestID: t.id, Errors: t.errors, Skipped: t.skipped}
		t.env.results.Tests = append(t.env.results.Tests, result)
		if t.skipped {
			t.env.results.Skipped = append(t.env.results.Skipped, result)
		} else if t.failed {
			t.env.results.Failures = append(t.env.results.Failures, result)
		}
	}()

	action(t)
}

func (t *T) runCleanups() {
	for i := len(t.cleanups) - 1; i >= 0; i-- {
		func() {
			defer func() {
				if r := recover(); r != nil {
					t.Debug("panic in deferred cleanup: %v", r)
				}
			}()
			t.cleanups[i]()
		}()
	}
	t.cleanups = nil
}

// ID returns the unique identifier of this test.
func (t *T) ID() TestID {
	return t.id
}

// Context returns the Context value from the TestConfiguration.
func (t *T) Context() interface{} {
	return t.env.config.Context
}

// Run runs a subtest. This is equivalent to the Run method of testing.T.
func (t *T) Run(name string, action func(*T)) {
	id := t.id.Plus(name)

	logger := t.env.config.TestLogger
	logger.TestStarted(id)
	if t.env.config.Filter != nil && !t.env.config.Filter(id) {
		logger.TestSkipped(id, "excluded by filter parameters")
		return
	}
	t1 := &T{
		id:  id,
		env: t.env,
	}
	t1.run(action)
	if t1.skipped {
		logger.TestSkipped(id, t1.skipReason)
	} else {
		logger.TestFinished(id, t1.failed, t1.debugLogger.Output())
	}
}

// Errorf is called by assertions to log a test failure. It does not cause an immediate exit.
func (t *T) Errorf(format string, args ...interface{}) {
	t.failed = true
	err := fmt.Errorf(format, args...)
	t.errors = append(t.errors, err)
	t.env.config.TestLogger.TestError(t.id, reformatError(err))
}

// FailNow is called by assertions when a test should fail and immediately exit. The methods in
// the require package call FailNow.
func (t *T) FailNow() {
	t.failed = true
	panic(t)
}

// Failed reports whether the test has failed so far. Failures of subtests are reported
// separately and do not count.
func (t *T) Failed() bool {
	return t.failed
}

// Skip marks the test as skipped and exits it immediately.
func (t *T) Skip() {
	t.skipped = true
	panic(t)
}

// SkipWithReason is like Skip, but reports a reason to the TestLogger.
func (t *T) SkipWithReason(reason string) {
	t.skipReason = reason
	t.Skip()
}

// Debug logs some debug output for the test. The output will be passed to the test logger at
// the end of the test.
func (t *T) Debug(message string, args ...interface{}) {
	t.debugLogger.Printf(message, args...)
}

// DebugLogger returns a Logger that writes to this test's debug output.
func (t *T) DebugLogger() framework.Logger {
	return &t.debugLogger
}

// Defer schedules cleanup to run when the test exits, even if it fails. Like deferred calls,
// cleanups run in reverse order.
func (t *T) Defer(cleanup func()) {
	t.cleanups = append(t.cleanups, cleanup)
}

// reformatError removes the "Error Trace" section that testify adds to assertion failures, since
// the stack location of an assertion is not useful in a report about a remote service.
func reformatError(err error) error {
	lines := strings.Split(strings.TrimLeft(err.Error(), "\n"), "\n")
	var kept []string
	inTrace := false
	for _, line := range lines {
		trimmed := strings.TrimSpace(line)
		if strings.HasPrefix(trimmed, "Error Trace:") {
			inTrace = true
			continue
		}
		if inTrace && strings.HasPrefix(line, "\t ") {
			continue
		}
		inTrace = false
		if trimmed != "" {
			kept = append(kept, trimmed)
		}
	}
	if len(kept) == 0 {
		return err
	}
	return errors.New(strings.Join(kept, "\n"))
}
