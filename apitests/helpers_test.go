package apitests

import "gopkg.in/launchdarkly/go-sdk-common.v2/ldvalue"

func parseForTest(s string) ldvalue.Value {
	return ldvalue.Parse([]byte(s))
}
