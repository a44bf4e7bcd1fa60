package apitests

import (
	"net/http"
	"time"

	"github.com/launchdarkly/api-contract-tests/framework/ldtest"
	"github.com/launchdarkly/api-contract-tests/roles"

	"gopkg.in/launchdarkly/go-sdk-common.v2/ldvalue"

	"github.com/stretchr/testify/assert"
)

const (
	masterPath      = "master"
	masterTimeLimit = 200 * time.Millisecond
)

func DoMasterTests(t *ldtest.T) {
	t.Run("with front desk token", func(t *ldtest.T) {
		resp := DoRequest(t, masterPath, RequestOpts{
			Method: http.MethodPost,
			Token:  RequireToken(t, roles.FrontDesk),
		})
		resp.RequireSuccess(t)
		resp.AssertFasterThan(t, masterTimeLimit)

		assert.Equal(t, ldvalue.ObjectType, resp.Path("data").Type(), "data should be an object")
		assert.Equal(t, 1, resp.Path("data.mst_oem.0.id").IntValue())
		resp.AssertEveryElement(t, "data.mst_oem", func(i int, element ldvalue.Value) {
			assert.False(t, element.GetByKey("id").IsNull(), "data.mst_oem[%d].id should not be null", i)
		})
	})
}
