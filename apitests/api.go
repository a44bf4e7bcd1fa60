package apitests

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/launchdarkly/api-contract-tests/auth"
	"github.com/launchdarkly/api-contract-tests/framework/ldtest"
	"github.com/launchdarkly/api-contract-tests/roles"
	"github.com/launchdarkly/api-contract-tests/servicedef"

	"gopkg.in/launchdarkly/go-sdk-common.v2/ldvalue"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Response is a completed response from the service.
type Response struct {
	StatusCode int
	Header     http.Header
	Body       []byte

	// Elapsed is the time from sending the request until the whole body was read.
	Elapsed time.Duration

	// JSON is the parsed body, or a null value if the body is not JSON.
	JSON ldvalue.Value
}

// RequestOpts describes a request to the service. The zero value is a GET without credentials.
type RequestOpts struct {
	Method string
	Body   []byte
	// Token, if not empty, is sent in the Authorization header.
	Token auth.Token
}

// RequireToken logs in as role and returns a fresh token. The test fails and immediately exits
// if the login fails.
func RequireToken(t *ldtest.T, role roles.Role) auth.Token {
	c := requireContext(t)
	token, err := c.tokens.Acquire(context.Background(), role)
	require.NoError(t, err, "could not log in as %s", role.DisplayName())
	t.Debug("Logged in as %s", role)
	return token
}

// DoRequest sends a request to path, relative to BASE_URI. The test fails and immediately exits
// if no response is received.
func DoRequest(t *ldtest.T, path string, opts RequestOpts) Response {
	c := requireContext(t)
	method := opts.Method
	if method == "" {
		method = http.MethodGet
	}
	target, err := url.JoinPath(c.baseURI, path)
	require.NoError(t, err)

	var body io.Reader
	if opts.Body != nil {
		body = bytes.NewReader(opts.Body)
	}
	req, err := http.NewRequest(method, target, body)
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	if opts.Token != "" {
		req.Header.Set(servicedef.AuthorizationHeader, string(opts.Token))
	}

	t.Debug(">> %s %s", method, target)
	start := time.Now()
	resp, err := c.httpClient.Do(req)
	require.NoError(t, err, "%s %s failed", method, target)
	data, err := io.ReadAll(resp.Body)
	elapsed := time.Since(start)
	_ = resp.Body.Close()
	require.NoError(t, err)
	t.Debug("<< status %d in %s: %s", resp.StatusCode, elapsed, string(data))

	return Response{
		StatusCode: resp.StatusCode,
		Header:     resp.Header,
		Body:       data,
		Elapsed:    elapsed,
		JSON:       ldvalue.Parse(data),
	}
}

// RequireStatus fails the test and exits immediately if the response status is not status.
func (r Response) RequireStatus(t *ldtest.T, status int) {
	require.Equal(t, status, r.StatusCode, "unexpected status; response body: %s", string(r.Body))
}

// RequireSuccess checks for a 200 status and a "Success" message, exiting the test if either is
// missing.
func (r Response) RequireSuccess(t *ldtest.T) {
	r.RequireStatus(t, http.StatusOK)
	require.Equal(t, servicedef.MessageSuccess, r.JSON.GetByKey(servicedef.MessageField).StringValue(),
		"unexpected %s field; response body: %s", servicedef.MessageField, string(r.Body))
}

// Path follows a dotted path of object keys and array indexes, such as "data.mst_oem.0.id".
// A missing element yields a null value.
func (r Response) Path(path string) ldvalue.Value {
	v := r.JSON
	for _, part := range strings.Split(path, ".") {
		if v.Type() == ldvalue.ArrayType {
			index, ok := arrayIndex(part)
			if !ok {
				return ldvalue.Null()
			}
			v = v.GetByIndex(index)
			continue
		}
		v = v.GetByKey(part)
	}
	return v
}

func arrayIndex(s string) (int, bool) {
	n, err := strconv.Atoi(s)
	if err != nil || n < 0 {
		return 0, false
	}
	return n, true
}

// AssertFasterThan fails the test, without exiting it, if the response took longer than limit.
// The limit is scaled by the context's time limit scale.
func (r Response) AssertFasterThan(t *ldtest.T, limit time.Duration) {
	AssertFasterThan(t, "response", r.Elapsed, limit)
}

// AssertFasterThan fails the test, without exiting it, if elapsed exceeds the scaled limit.
func AssertFasterThan(t *ldtest.T, what string, elapsed, limit time.Duration) {
	scaled := requireContext(t).scaledLimit(limit)
	assert.LessOrEqual(t, elapsed, scaled, "%s took %s; limit is %s", what, elapsed, scaled)
}

// AssertEveryElement calls check for each element of the array at path, failing the test if
// the value is not a non-empty array.
func (r Response) AssertEveryElement(t *ldtest.T, path string, check func(i int, element ldvalue.Value)) {
	v := r.Path(path)
	if !assert.Equal(t, ldvalue.ArrayType, v.Type(), "%s should be an array", path) {
		return
	}
	assert.NotZero(t, v.Count(), "%s should not be empty", path)
	for i := 0; i < v.Count(); i++ {
		check(i, v.GetByIndex(i))
	}
}
