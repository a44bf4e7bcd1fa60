package apitests

import (
	"github.com/launchdarkly/api-contract-tests/framework/ldtest"
	"github.com/launchdarkly/api-contract-tests/roles"

	"github.com/stretchr/testify/assert"
)

const userDetailsPath = "userdetails"

func DoUserDetailsTests(t *ldtest.T) {
	t.Run("with front desk token", func(t *ldtest.T) {
		resp := DoRequest(t, userDetailsPath, RequestOpts{Token: RequireToken(t, roles.FrontDesk)})
		resp.RequireStatus(t, 200)
		assert.False(t, resp.Path("data.id").IsNull(), "data.id should be present")
	})
}
