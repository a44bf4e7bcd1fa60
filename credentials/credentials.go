// Package credentials maps every role to the username and password it logs in with.
//
// All credential pairs live in one table in this file so that they can be audited in one place.
package credentials

import (
	"github.com/launchdarkly/api-contract-tests/roles"
)

// Credential is the username/password pair sent to the login endpoint.
type Credential struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// IsZero reports whether both fields are empty.
func (c Credential) IsZero() bool {
	return c.Username == "" && c.Password == ""
}

// Registry resolves the credential for a role.
type Registry interface {
	CredentialFor(role roles.Role) (Credential, error)
}

var table = [...]Credential{
	roles.FrontDesk:      {Username: "iamfd", Password: "password"},
	roles.Supervisor:     {Username: "iamsup", Password: "password"},
	roles.Engineer:       {Username: "iameng", Password: "password"},
	roles.QualityControl: {Username: "iamqa", Password: "password"},
}

// The table must have exactly one entry per role; adding a role without a credential does not
// compile.
var (
	_ [len(table) - roles.Count]struct{}
	_ [roles.Count - len(table)]struct{}
)

type staticRegistry struct{}

// Default returns the built-in credential table.
func Default() Registry { return staticRegistry{} }

func (staticRegistry) CredentialFor(role roles.Role) (Credential, error) {
	return CredentialFor(role)
}

// CredentialFor returns the credential bound to role. A role outside the set, or one whose
// table entry is empty, is reported as a roles.UnsupportedRoleError; there is no fallback
// credential.
func CredentialFor(role roles.Role) (Credential, error) {
	if err := role.Unsupported(); err != nil {
		return Credential{}, err
	}
	c := table[role]
	if c.Username == "" || c.Password == "" {
		return Credential{}, &roles.UnsupportedRoleError{Value: role.String()}
	}
	return c, nil
}
