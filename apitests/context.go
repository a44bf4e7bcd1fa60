package apitests

import (
	"math"
	"net/http"
	"time"

	"github.com/launchdarkly/api-contract-tests/auth"
	"github.com/launchdarkly/api-contract-tests/config"
	"github.com/launchdarkly/api-contract-tests/framework/ldtest"
)

const defaultRequestTimeout = time.Second * 10

// APITestContext is the state shared by every test in a run. It is passed to ldtest as the
// TestConfiguration's Context.
type APITestContext struct {
	baseURI        string
	tokens         *auth.TokenAcquirer
	httpClient     *http.Client
	timeLimitScale float64
}

// NewAPITestContext creates the shared state for a run against the service named by the
// configuration's BASE_URI. A nil httpClient means a client with a default timeout.
func NewAPITestContext(
	cfg *config.Configuration,
	tokens *auth.TokenAcquirer,
	httpClient *http.Client,
) (APITestContext, error) {
	baseURI, err := cfg.Require(config.BaseURIKey)
	if err != nil {
		return APITestContext{}, err
	}
	if httpClient == nil {
		httpClient = &http.Client{Timeout: defaultRequestTimeout}
	}
	return APITestContext{
		baseURI:        baseURI,
		tokens:         tokens,
		httpClient:     httpClient,
		timeLimitScale: 1,
	}, nil
}

// WithTimeLimitScale returns a copy of the context in which every response-time limit is
// multiplied by scale. A scale that is not positive leaves the limits unchanged.
func (c APITestContext) WithTimeLimitScale(scale float64) APITestContext {
	if scale > 0 {
		c.timeLimitScale = scale
	}
	return c
}

func (c APITestContext) scaledLimit(limit time.Duration) time.Duration {
	return time.Duration(math.Round(float64(limit) * c.timeLimitScale))
}

func requireContext(t *ldtest.T) APITestContext {
	if c, ok := t.Context().(APITestContext); ok {
		return c
	}
	panic("APITestContext was not included in the global test configuration!" +
		" This is a basic mistake in the initialization logic.")
}
