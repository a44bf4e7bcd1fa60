package auth

import (
	"errors"
	"fmt"
	"strings"

	"github.com/launchdarkly/api-contract-tests/roles"
)

const maxBodyExcerpt = 512

// ErrAuthenticationFailure is matched by errors.Is for any AuthenticationError.
var ErrAuthenticationFailure = errors.New("authentication failed")

// AuthenticationError describes a login call that did not produce a token.
type AuthenticationError struct {
	Role roles.Role
	URL  string
	// StatusCode is zero if no response was received.
	StatusCode int
	// Body is the start of the response body, truncated to a fixed length.
	Body   string
	Reason string
	Err    error
}

func (e *AuthenticationError) Error() string {
	var b strings.Builder
	fmt.Fprintf(&b, "login as %s at %s failed: %s", e.Role, e.URL, e.Reason)
	if e.StatusCode != 0 {
		fmt.Fprintf(&b, " (status %d)", e.StatusCode)
	}
	if e.Err != nil {
		fmt.Fprintf(&b, ": %s", e.Err)
	}
	if e.Body != "" {
		fmt.Fprintf(&b, "; response body: %s", e.Body)
	}
	return b.String()
}

func (e *AuthenticationError) Is(target error) bool { return target == ErrAuthenticationFailure }

func (e *AuthenticationError) Unwrap() error { return e.Err }

func bodyExcerpt(body []byte) string {
	if len(body) <= maxBodyExcerpt {
		return string(body)
	}
	return string(body[:maxBodyExcerpt]) + "..."
}
