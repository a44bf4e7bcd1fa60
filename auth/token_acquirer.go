// Package auth turns a role into a bearer token by logging in to the service under test.
//
// Tokens are never cached: every call to Acquire makes its own login request, so that each test
// starts from a fresh authentication state.
package auth

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/launchdarkly/api-contract-tests/config"
	"github.com/launchdarkly/api-contract-tests/credentials"
	"github.com/launchdarkly/api-contract-tests/framework"
	"github.com/launchdarkly/api-contract-tests/roles"
	"github.com/launchdarkly/api-contract-tests/servicedef"

	"github.com/tidwall/gjson"
	"golang.org/x/sync/errgroup"
)

// DefaultTimeout bounds a login call when no other timeout is configured.
const DefaultTimeout = 30 * time.Second

// Token is an opaque bearer value returned by a successful login.
type Token string

func (t Token) String() string { return string(t) }

// ConfigSource provides configuration values; *config.Configuration implements it.
type ConfigSource interface {
	Get(key string) (string, bool)
}

// TokenAcquirer logs in as a role and returns the resulting token. It holds no mutable state,
// so one instance can be used for concurrent acquisitions.
type TokenAcquirer struct {
	config      ConfigSource
	credentials credentials.Registry
	httpClient  *http.Client
	timeout     time.Duration
	logger      framework.Logger
}

// Option customizes a TokenAcquirer.
type Option func(*TokenAcquirer)

// WithHTTPClient sets the client used for login calls. Its own Timeout, if any, applies.
func WithHTTPClient(client *http.Client) Option {
	return func(a *TokenAcquirer) { a.httpClient = client }
}

// WithTimeout bounds each login call made with the default HTTP client. It has no effect
// together with WithHTTPClient.
func WithTimeout(timeout time.Duration) Option {
	return func(a *TokenAcquirer) { a.timeout = timeout }
}

// WithCredentials replaces the built-in credential table.
func WithCredentials(registry credentials.Registry) Option {
	return func(a *TokenAcquirer) { a.credentials = registry }
}

// WithLogger sets a logger for request and response traces.
func WithLogger(logger framework.Logger) Option {
	return func(a *TokenAcquirer) { a.logger = logger }
}

// NewTokenAcquirer creates a TokenAcquirer that reads BASE_URI from cfg. A nil cfg is treated as
// a configuration without BASE_URI.
func NewTokenAcquirer(cfg ConfigSource, opts ...Option) *TokenAcquirer {
	a := &TokenAcquirer{
		config:      cfg,
		credentials: credentials.Default(),
		timeout:     DefaultTimeout,
	}
	for _, o := range opts {
		o(a)
	}
	if a.httpClient == nil {
		a.httpClient = &http.Client{Timeout: a.timeout}
	}
	if a.logger == nil {
		a.logger = framework.NullLogger()
	}
	return a
}

// Acquire logs in as role and returns the token from the response.
//
// The call succeeds only if the service answers 200, the response's message field is "Success",
// and data.token is a non-empty string. Any other outcome, including a transport error or a
// timeout, is an *AuthenticationError. There is exactly one attempt.
//
// A role outside the set yields a roles.UnsupportedRoleError, and a missing BASE_URI a
// config.MissingKeyError; neither makes a network call.
func (a *TokenAcquirer) Acquire(ctx context.Context, role roles.Role) (Token, error) {
	cred, err := a.credentials.CredentialFor(role)
	if err != nil {
		return "", err
	}
	if a.config == nil {
		return "", &config.MissingKeyError{Key: config.BaseURIKey, Source: "(no configuration)"}
	}
	baseURI, ok := a.config.Get(config.BaseURIKey)
	if !ok || strings.TrimSpace(baseURI) == "" {
		return "", &config.MissingKeyError{Key: config.BaseURIKey, Source: "configuration"}
	}

	loginURL, err := url.JoinPath(baseURI, servicedef.LoginPath)
	if err != nil {
		return "", &AuthenticationError{Role: role, URL: baseURI, Reason: "invalid " + config.BaseURIKey, Err: err}
	}
	fail := func(reason string, status int, body []byte, err error) error {
		return &AuthenticationError{
			Role:       role,
			URL:        loginURL,
			StatusCode: status,
			Body:       bodyExcerpt(body),
			Reason:     reason,
			Err:        err,
		}
	}

	payload, err := json.Marshal(servicedef.LoginRequest{Username: cred.Username, Password: cred.Password})
	if err != nil {
		return "", fail("could not encode credentials", 0, nil, err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, loginURL, bytes.NewReader(payload))
	if err != nil {
		return "", fail("could not create request", 0, nil, err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	a.logger.Printf("Logging in as %s (%s) at %s", role, cred.Username, loginURL)
	resp, err := a.httpClient.Do(req)
	if err != nil {
		return "", fail("request error", 0, nil, err)
	}
	body, err := io.ReadAll(resp.Body)
	_ = resp.Body.Close()
	if err != nil {
		return "", fail("error reading response", resp.StatusCode, body, err)
	}
	a.logger.Printf("Login response for %s: status %d, body %s", role, resp.StatusCode, bodyExcerpt(body))

	if resp.StatusCode != http.StatusOK {
		return "", fail("unexpected response status", resp.StatusCode, body, nil)
	}
	if !gjson.ValidBytes(body) {
		return "", fail("response body is not valid JSON", resp.StatusCode, body, nil)
	}
	if message := gjson.GetBytes(body, servicedef.MessageField); message.String() != servicedef.MessageSuccess {
		return "", fail("response "+servicedef.MessageField+" was not \""+servicedef.MessageSuccess+"\"",
			resp.StatusCode, body, nil)
	}
	token := gjson.GetBytes(body, servicedef.TokenField)
	if token.Type != gjson.String || token.String() == "" {
		return "", fail("response has no "+servicedef.TokenField, resp.StatusCode, body, nil)
	}
	return Token(token.String()), nil
}

// AcquireByName is like Acquire, but takes a role name as accepted by roles.Parse.
//
// Deprecated: use Acquire with a roles.Role constant.
func (a *TokenAcquirer) AcquireByName(ctx context.Context, name string) (Token, error) {
	role, err := roles.Parse(name) //nolint:staticcheck
	if err != nil {
		return "", err
	}
	return a.Acquire(ctx, role)
}

// AcquireAll logs in as each of the given roles concurrently, or as every role if none are
// given. Each login is independent; the first failure cancels the others and is returned.
func (a *TokenAcquirer) AcquireAll(ctx context.Context, rs ...roles.Role) (map[roles.Role]Token, error) {
	if len(rs) == 0 {
		rs = roles.All()
	}
	tokens := make([]Token, len(rs))
	g, gCtx := errgroup.WithContext(ctx)
	for i, r := range rs {
		g.Go(func() error {
			token, err := a.Acquire(gCtx, r)
			if err != nil {
				return err
			}
			tokens[i] = token
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	ret := make(map[roles.Role]Token, len(rs))
	for i, r := range rs {
		ret[r] = tokens[i]
	}
	return ret, nil
}
