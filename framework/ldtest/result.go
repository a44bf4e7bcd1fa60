package ldtest

import (
	"strings"
)

type Results struct {
	Tests    []TestResult
	Failures []TestResult
	Skipped  []TestResult
}

type TestResult struct {
	TestID  TestID
	Errors  []error
	Skipped bool
}

func (r Results) OK() bool {
	return len(r.Failures) == 0
}

// TestID identifies a test by its path of names, from the outermost test scope inwards.
type TestID struct {
	Path []string
}

// Plus returns a new TestID for a subtest of this one.
func (t TestID) Plus(name string) TestID {
	return TestID{Path: append(append([]string(nil), t.Path...), name)}
}

func (t TestID) String() string {
	return strings.Join(t.Path, "/")
}
