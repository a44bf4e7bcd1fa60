package ldtest

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/launchdarkly/api-contract-tests/framework"

	"github.com/fatih/color"
)

type TestLogger interface {
	TestStarted(id TestID)
	TestError(id TestID, err error)
	TestFinished(id TestID, failed bool, debugOutput framework.CapturedOutput)
	TestSkipped(id TestID, reason string)
}

type nullTestLogger struct{}

func (n nullTestLogger) TestStarted(TestID)                                  {}
func (n nullTestLogger) TestError(TestID, error)                             {}
func (n nullTestLogger) TestFinished(TestID, bool, framework.CapturedOutput) {}
func (n nullTestLogger) TestSkipped(TestID, string)                          {}

var (
	failedColor  = color.New(color.FgRed, color.Bold)
	skippedColor = color.New(color.FgYellow)
	passedColor  = color.New(color.FgGreen)
)

// ConsoleTestLogger reports progress in a human-readable form. Debug output of a test is shown
// only if the corresponding option is set.
type ConsoleTestLogger struct {
	DebugOutputOnFailure bool
	DebugOutputOnSuccess bool

	// Output defaults to os.Stdout.
	Output io.Writer
}

func (c *ConsoleTestLogger) out() io.Writer {
	if c.Output == nil {
		return os.Stdout
	}
	return c.Output
}

func (c *ConsoleTestLogger) TestStarted(id TestID) {
	fmt.Fprintf(c.out(), "[%s]\n", id)
}

func (c *ConsoleTestLogger) TestError(id TestID, err error) {
	for _, line := range strings.Split(err.Error(), "\n") {
		fmt.Fprintf(c.out(), "  %s\n", line)
	}
}

func (c *ConsoleTestLogger) TestFinished(id TestID, failed bool, debugOutput framework.CapturedOutput) {
	if failed {
		failedColor.Fprintf(c.out(), "  FAILED: %s\n", id)
	}
	if len(debugOutput) > 0 &&
		((failed && c.DebugOutputOnFailure) || (!failed && c.DebugOutputOnSuccess)) {
		debugOutput.Dump(c.out(), "    DEBUG ")
	}
}

func (c *ConsoleTestLogger) TestSkipped(id TestID, reason string) {
	if reason == "" {
		skippedColor.Fprintf(c.out(), "  SKIPPED: %s\n", id)
	} else {
		skippedColor.Fprintf(c.out(), "  SKIPPED: %s (%s)\n", id, reason)
	}
}

// PrintResults writes a summary of a test run, listing every failed test and its errors.
func PrintResults(out io.Writer, results Results) {
	if results.OK() {
		passedColor.Fprintf(out, "All tests passed (%d run, %d skipped)\n",
			len(results.Tests)-len(results.Skipped), len(results.Skipped))
		return
	}
	failedColor.Fprintf(out, "FAILED TESTS (%d of %d):\n", len(results.Failures), len(results.Tests))
	for _, f := range results.Failures {
		fmt.Fprintf(out, "* %s\n", f.TestID)
		for _, err := range f.Errors {
			for _, line := range strings.Split(reformatError(err).Error(), "\n") {
				fmt.Fprintf(out, "    %s\n", line)
			}
		}
	}
}
