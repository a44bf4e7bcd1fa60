// Package ldtest provides a test runner similar to Go's testing package, but usable outside of
// "go test": tests are plain functions taking a *T, results are collected in Results, and
// assertions from testify's assert and require packages can be used with a *T directly.
package ldtest
