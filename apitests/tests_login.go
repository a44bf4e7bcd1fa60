package apitests

import (
	"context"
	"time"

	"github.com/launchdarkly/api-contract-tests/framework/ldtest"
	"github.com/launchdarkly/api-contract-tests/roles"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const loginTimeLimit = 5 * time.Second

func DoLoginTests(t *ldtest.T) {
	for _, role := range roles.All() {
		t.Run(role.DisplayName(), func(t *ldtest.T) {
			start := time.Now()
			token := RequireToken(t, role)
			AssertFasterThan(t, "login", time.Since(start), loginTimeLimit)
			assert.NotEmpty(t, token)
		})
	}

	t.Run("all roles concurrently", func(t *ldtest.T) {
		tokens, err := requireContext(t).tokens.AcquireAll(context.Background())
		require.NoError(t, err)
		assert.Len(t, tokens, roles.Count)
		for role, token := range tokens {
			assert.NotEmpty(t, token, "empty token for %s", role)
		}
	})
}
