// Package framework contains infrastructure shared by every part of the harness that is not
// specific to the service under test. The base package holds the Logger types; the test runner
// is in the ldtest subpackage.
//
// The general model is:
//
// 1. The harness resolves its configuration for one environment (see the config package) and
// obtains bearer tokens for identity roles by calling the service's login endpoint (see the
// auth package).
//
// 2. There is a general notion of a test scope which is similar to Go's testing.T, allowing
// pieces of test logic to be associated with a test identifier and to accumulate success/failure
// results.
//
// 3. Each test scope captures its own debug output, which the console reporter prints only when
// it is asked to.
package framework
