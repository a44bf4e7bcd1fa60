package apitests

import (
	"strings"
	"time"

	"github.com/launchdarkly/api-contract-tests/framework/ldtest"
	"github.com/launchdarkly/api-contract-tests/roles"

	"gopkg.in/launchdarkly/go-sdk-common.v2/ldvalue"

	"github.com/stretchr/testify/assert"
)

const (
	dashboardCountPath      = "dashboard/count"
	dashboardCountTimeLimit = 1500 * time.Millisecond
)

func DoDashboardCountTests(t *ldtest.T) {
	t.Run("with front desk token", func(t *ldtest.T) {
		resp := DoRequest(t, dashboardCountPath, RequestOpts{Token: RequireToken(t, roles.FrontDesk)})
		resp.RequireSuccess(t)
		resp.AssertFasterThan(t, dashboardCountTimeLimit)

		assert.False(t, resp.Path("data").IsNull(), "data should be present")
		resp.AssertEveryElement(t, "data", func(i int, element ldvalue.Value) {
			label := element.GetByKey("label")
			assert.True(t, label.IsString() && strings.TrimSpace(label.StringValue()) != "",
				"data[%d].label should be a non-blank string, was %s", i, label.JSONString())
		})
		assert.Equal(t, "pending_for_delivery", resp.Path("data.0.key").StringValue())
	})

	t.Run("without Authorization header", func(t *ldtest.T) {
		resp := DoRequest(t, dashboardCountPath, RequestOpts{})
		resp.RequireStatus(t, 401)
	})
}
