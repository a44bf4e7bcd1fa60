package ldtest

import (
	"bytes"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/launchdarkly/api-contract-tests/framework"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordedEvent struct {
	kind string
	id   string
	info string
}

type recordingTestLogger struct {
	events []recordedEvent
}

func (r *recordingTestLogger) TestStarted(id TestID) {
	r.events = append(r.events, recordedEvent{"started", id.String(), ""})
}

func (r *recordingTestLogger) TestError(id TestID, err error) {
	r.events = append(r.events, recordedEvent{"error", id.String(), err.Error()})
}

func (r *recordingTestLogger) TestFinished(id TestID, failed bool, debugOutput framework.CapturedOutput) {
	r.events = append(r.events, recordedEvent{"finished", id.String(), fmt.Sprintf("failed=%t debug=%d", failed, len(debugOutput))})
}

func (r *recordingTestLogger) TestSkipped(id TestID, reason string) {
	r.events = append(r.events, recordedEvent{"skipped", id.String(), reason})
}

func resultIDs(rs []TestResult) []string {
	var ret []string
	for _, r := range rs {
		ret = append(ret, r.TestID.String())
	}
	return ret
}

func TestRunCollectsResults(t *testing.T) {
	results := Run(TestConfiguration{}, func(t *T) {
		t.Run("a", func(t *T) {
			t.Run("passes", func(t *T) {})
			t.Run("fails", func(t *T) {
				assert.Equal(t, 1, 2)
			})
		})
		t.Run("b", func(t *T) {
			require.True(t, false)
		})
		t.Run("c", func(t *T) { t.SkipWithReason("not today") })
	})

	assert.False(t, results.OK())
	assert.Equal(t, []string{"a/passes", "a/fails", "a", "b", "c"}, resultIDs(results.Tests))
	assert.Equal(t, []string{"a/fails", "b"}, resultIDs(results.Failures))
	assert.Equal(t, []string{"c"}, resultIDs(results.Skipped))
}

func TestRunReportsUnexpectedPanic(t *testing.T) {
	results := Run(TestConfiguration{}, func(t *T) {
		t.Run("panics", func(t *T) { panic("boom") })
	})
	require.Len(t, results.Failures, 1)
	require.Len(t, results.Failures[0].Errors, 1)
	assert.Contains(t, results.Failures[0].Errors[0].Error(), "unexpected panic in test: boom")
}

func TestFailNowWithoutMessage(t *testing.T) {
	results := Run(TestConfiguration{}, func(t *T) {
		t.Run("x", func(t *T) { t.FailNow() })
	})
	require.Len(t, results.Failures, 1)
	assert.EqualError(t, results.Failures[0].Errors[0], "test failed with no failure message")
}

func TestFilterSkipsTests(t *testing.T) {
	var filters RegexFilters
	require.NoError(t, filters.MustNotMatch.Set("^login/"))
	logger := &recordingTestLogger{}
	ran := map[string]bool{}

	results := Run(TestConfiguration{Filter: filters.AsFilter, TestLogger: logger}, func(t *T) {
		t.Run("login", func(t *T) {
			t.Run("front desk", func(t *T) { ran["login/front desk"] = true })
		})
		t.Run("master", func(t *T) { ran["master"] = true })
	})

	assert.True(t, results.OK())
	assert.Equal(t, map[string]bool{"master": true}, ran)
	assert.Contains(t, logger.events, recordedEvent{"skipped", "login/front desk", "excluded by filter parameters"})
}

func TestRegexFilters(t *testing.T) {
	var filters RegexFilters
	require.NoError(t, filters.MustMatch.Set("dashboard"))
	require.NoError(t, filters.MustNotMatch.Set("without"))

	assert.True(t, filters.AsFilter(TestID{Path: []string{"dashboard count", "with token"}}))
	assert.False(t, filters.AsFilter(TestID{Path: []string{"dashboard count", "without token"}}))
	assert.False(t, filters.AsFilter(TestID{Path: []string{"master"}}))

	assert.Error(t, filters.MustMatch.Set("("))

	var buf bytes.Buffer
	filters.Describe(&buf)
	assert.Contains(t, buf.String(), `skip any not matching "dashboard"`)
	assert.Contains(t, buf.String(), `skip any matching "without"`)

	buf.Reset()
	RegexFilters{}.Describe(&buf)
	assert.Empty(t, buf.String())
}

func TestDeferredCleanupsRunInReverseOrder(t *testing.T) {
	var order []string
	Run(TestConfiguration{}, func(t *T) {
		t.Run("x", func(t *T) {
			t.Defer(func() { order = append(order, "first") })
			t.Defer(func() { order = append(order, "second") })
			t.FailNow()
		})
	})
	assert.Equal(t, []string{"second", "first"}, order)
}

func TestContextIsShared(t *testing.T) {
	var seen []interface{}
	Run(TestConfiguration{Context: "shared"}, func(t *T) {
		seen = append(seen, t.Context())
		t.Run("x", func(t *T) { seen = append(seen, t.Context()) })
	})
	assert.Equal(t, []interface{}{"shared", "shared"}, seen)
}

func TestDebugOutputIsPassedToLogger(t *testing.T) {
	logger := &recordingTestLogger{}
	Run(TestConfiguration{TestLogger: logger}, func(t *T) {
		t.Run("x", func(t *T) {
			t.Debug("one")
			t.DebugLogger().Printf("two")
		})
	})
	assert.Contains(t, logger.events, recordedEvent{"finished", "x", "failed=false debug=2"})
}

func TestReformatErrorDropsTrace(t *testing.T) {
	err := errors.New("\n\tError Trace:\t/src/a.go:10\n\t            \t/src/b.go:20\n\tError:      \tNot equal: \n\t            \texpected: 1\n\t            \tactual  : 2")
	formatted := reformatError(err).Error()
	assert.NotContains(t, formatted, "a.go")
	assert.NotContains(t, formatted, "b.go")
	assert.True(t, strings.HasPrefix(formatted, "Error:"))
	assert.Contains(t, formatted, "expected: 1")

	plain := errors.New("simple")
	assert.Equal(t, "simple", reformatError(plain).Error())
}

func TestConsoleTestLogger(t *testing.T) {
	var buf bytes.Buffer
	logger := &ConsoleTestLogger{DebugOutputOnFailure: true, Output: &buf}
	Run(TestConfiguration{TestLogger: logger}, func(t *T) {
		t.Run("passes", func(t *T) { t.Debug("hidden") })
		t.Run("fails", func(t *T) {
			t.Debug("shown")
			t.Errorf("bad thing")
		})
		t.Run("skips", func(t *T) { t.SkipWithReason("why") })
	})
	out := buf.String()
	assert.Contains(t, out, "[passes]")
	assert.NotContains(t, out, "hidden")
	assert.Contains(t, out, "  bad thing")
	assert.Contains(t, out, "FAILED: fails")
	assert.Contains(t, out, "DEBUG [")
	assert.Contains(t, out, "shown")
	assert.Contains(t, out, "SKIPPED: skips (why)")
}

func TestPrintResults(t *testing.T) {
	var buf bytes.Buffer
	PrintResults(&buf, Results{Tests: []TestResult{{TestID: TestID{Path: []string{"a"}}}}})
	assert.Contains(t, buf.String(), "All tests passed (1 run, 0 skipped)")

	buf.Reset()
	failure := TestResult{TestID: TestID{Path: []string{"a", "b"}}, Errors: []error{errors.New("line1\nline2")}}
	PrintResults(&buf, Results{Tests: []TestResult{failure}, Failures: []TestResult{failure}})
	assert.Contains(t, buf.String(), "FAILED TESTS (1 of 1)")
	assert.Contains(t, buf.String(), "* a/b\n    line1\n    line2\n")
}

func TestTestIDPlusDoesNotAlias(t *testing.T) {
	base := TestID{Path: make([]string, 1, 10)}
	base.Path[0] = "root"
	a := base.Plus("a")
	b := base.Plus("b")
	assert.Equal(t, "root/a", a.String())
	assert.Equal(t, "root/b", b.String())
}
