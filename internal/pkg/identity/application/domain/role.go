package identity

import "go-wedding/internal/pkg/platform/apperr"

// Role is a workspace permission level. Roles are ordered: each role can do
// everything the previous one can.
type Role string

const (
	RoleViewer Role = "viewer"
	RoleEditor Role = "editor"
	RoleOwner  Role = "owner"
)

func (r Role) rank() int {
	switch r {
	case RoleViewer:
		return 1
	case RoleEditor:
		return 2
	case RoleOwner:
		return 3
	default:
		return 0
	}
}

// Valid reports whether r is a known role.
func (r Role) Valid() bool { return r.rank() > 0 }

// Allows reports whether r satisfies the required minimum role.
func (r Role) Allows(min Role) bool {
	return r.Valid() && r.rank() >= min.rank()
}

// ParseRole validates a role name coming from a request.
func ParseRole(s string) (Role, error) {
	r := Role(s)
	if !r.Valid() {
		return "", apperr.Validationf("unknown role %q", s)
	}
	return r, nil
}
