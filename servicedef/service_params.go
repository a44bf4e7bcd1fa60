// Package servicedef describes the parts of the service's HTTP API that the harness depends on
// outside of individual tests.
package servicedef

const (
	// LoginPath is the login endpoint, relative to BASE_URI.
	LoginPath = "login"

	// MessageField holds the application-level status of every response.
	MessageField = "message"

	// MessageSuccess is the MessageField value of a successful response.
	MessageSuccess = "Success"

	// TokenField is the path of the bearer token in a successful login response.
	TokenField = "data.token"

	// AuthorizationHeader carries the token on authenticated requests. The service expects the
	// raw token, without a "Bearer" scheme.
	AuthorizationHeader = "Authorization"
)

// LoginRequest is the body of a login call.
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}
