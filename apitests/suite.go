package apitests

import (
	"github.com/launchdarkly/api-contract-tests/framework/ldtest"
)

func RunTestSuite(
	context APITestContext,
	filter ldtest.Filter,
	testLogger ldtest.TestLogger,
) ldtest.Results {
	config := ldtest.TestConfiguration{
		Filter:     filter,
		TestLogger: testLogger,
		Context:    context,
	}
	return ldtest.Run(config, func(t *ldtest.T) {
		t.Run("login", DoLoginTests)
		t.Run("dashboard count", DoDashboardCountTests)
		t.Run("master", DoMasterTests)
		t.Run("user details", DoUserDetailsTests)
	})
}
