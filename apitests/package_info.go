// Package apitests contains the contract tests for the service's HTTP endpoints and their
// supporting API.
//
// Harness infrastructure that is not specific to these endpoints, such as configuration, role
// authentication, and the test runner, lives in the config, auth, and framework packages.
package apitests
