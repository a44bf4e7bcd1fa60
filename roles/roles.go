// Package roles defines the closed set of identity roles that the harness can log in as.
//
// The set is fixed at build time. Adding a role means adding a constant here and an entry to the
// credential table in the credentials package; the build fails until both are done.
package roles

import (
	"errors"
	"fmt"
	"strings"
)

// Role is one of the identity categories used to select a credential.
type Role int

const (
	FrontDesk Role = iota
	Supervisor
	Engineer
	QualityControl

	numRoles // must stay last
)

// Count is the number of roles in the set.
const Count = int(numRoles)

var roleNames = [...]string{
	FrontDesk:      "FRONT_DESK",
	Supervisor:     "SUPERVISOR",
	Engineer:       "ENGINEER",
	QualityControl: "QUALITY_CONTROL",
}

var displayNames = [...]string{
	FrontDesk:      "Front Desk",
	Supervisor:     "Supervisor",
	Engineer:       "Engineer",
	QualityControl: "Quality Control",
}

// Both name tables must have exactly one entry per role.
var (
	_ [len(roleNames) - Count]struct{}
	_ [Count - len(roleNames)]struct{}
	_ [len(displayNames) - Count]struct{}
	_ [Count - len(displayNames)]struct{}
)

// Alternate spellings accepted by Parse, after upper-casing.
var aliases = map[string]Role{
	"FD":        FrontDesk,
	"FRONTDESK": FrontDesk,
	"SUP":       Supervisor,
	"SUPER":     Supervisor,
	"ENG":       Engineer,
	"QA":        QualityControl,
	"QC":        QualityControl,
	"QUALITY":   QualityControl,
	"TESTER":    QualityControl,
}

// ErrUnsupportedRole is matched by errors.Is for any UnsupportedRoleError.
var ErrUnsupportedRole = errors.New("unsupported role")

// UnsupportedRoleError identifies a value that is not in the role set.
type UnsupportedRoleError struct {
	// Value is the offending input, either the raw string given to Parse or the numeric value
	// of an out-of-range Role.
	Value string
}

func (e *UnsupportedRoleError) Error() string {
	return fmt.Sprintf("unsupported role %q; valid roles are %s", e.Value, strings.Join(Names(), ", "))
}

func (e *UnsupportedRoleError) Is(target error) bool { return target == ErrUnsupportedRole }

// All returns every role, in declaration order.
func All() []Role {
	ret := make([]Role, 0, Count)
	for r := Role(0); r < numRoles; r++ {
		ret = append(ret, r)
	}
	return ret
}

// Names returns the symbolic name of every role, in declaration order.
func Names() []string {
	return append([]string(nil), roleNames[:]...)
}

// Valid reports whether r is in the role set.
func (r Role) Valid() bool {
	return r >= 0 && r < numRoles
}

// String returns the symbolic name of the role, such as "FRONT_DESK".
func (r Role) String() string {
	if !r.Valid() {
		return fmt.Sprintf("Role(%d)", int(r))
	}
	return roleNames[r]
}

// DisplayName returns a human-readable name, such as "Front Desk".
func (r Role) DisplayName() string {
	if !r.Valid() {
		return r.String()
	}
	return displayNames[r]
}

// Unsupported returns the error describing r if it is not in the role set, or nil.
func (r Role) Unsupported() error {
	if r.Valid() {
		return nil
	}
	return &UnsupportedRoleError{Value: r.String()}
}

// Parse converts a role name to a Role. Matching is case-insensitive and ignores surrounding
// whitespace; the symbolic names and a fixed list of short forms such as "FD" are accepted.
// Anything else is an UnsupportedRoleError.
//
// Deprecated: use the Role constants directly. Parse exists for callers that only have a name,
// such as command-line input.
func Parse(name string) (Role, error) {
	normalized := strings.ToUpper(strings.TrimSpace(name))
	for r, n := range roleNames {
		if n == normalized {
			return Role(r), nil
		}
	}
	if r, ok := aliases[normalized]; ok {
		return r, nil
	}
	return 0, &UnsupportedRoleError{Value: name}
}
