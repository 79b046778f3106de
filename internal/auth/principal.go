// Package auth contains the identity-resolution and authorization core:
// it admits token-bearing staff and cookie-session clients into one
// Principal shape and decides per-operation access with a pure policy
// function over a compiled-in role hierarchy.
package auth

// Kind discriminates the two principal populations. Identifiers are scoped
// per kind: staff id 7 and client id 7 are unrelated.
type Kind string

const (
	KindStaff  Kind = "staff"
	KindClient Kind = "client"
)

// Method records how the principal authenticated. It is informational only
// and never feeds an authorization decision.
type Method string

const (
	MethodToken   Method = "token"
	MethodSession Method = "session"
)

// Role is a named permission group.
type Role string

const (
	RoleAdministrator Role = "administrator"
	RoleReceptionist  Role = "receptionist"
	RoleTechnician    Role = "technician"
	RoleSales         Role = "sales"
	RoleClient        Role = "client"
)

// Principal is the unified authenticated identity for one request. It is
// built fresh per request from validated credentials and never persisted.
type Principal struct {
	Kind       Kind
	ID         int64
	Roles      []Role
	AuthMethod Method
}

// roleHierarchy is the static subsumption mapping. Changing it is a
// deployment, not a runtime mutation. Every role subsumes at least itself;
// the administrator subsumes every staff role.
var roleHierarchy = map[Role][]Role{
	RoleAdministrator: {RoleAdministrator, RoleReceptionist, RoleTechnician, RoleSales},
	RoleReceptionist:  {RoleReceptionist},
	RoleTechnician:    {RoleTechnician},
	RoleSales:         {RoleSales},
	RoleClient:        {RoleClient},
}

// RoleSet is an expanded set of roles.
type RoleSet map[Role]struct{}

func (s RoleSet) Contains(r Role) bool {
	_, ok := s[r]
	return ok
}

// Expand resolves the transitive closure of the given roles through the
// hierarchy. Expanding an already-expanded set is a no-op. Unknown role
// names expand to themselves, so a stale token never gains permissions.
func Expand(roles ...Role) RoleSet {
	out := make(RoleSet, len(roles))
	var walk func(r Role)
	walk = func(r Role) {
		if out.Contains(r) {
			return
		}
		out[r] = struct{}{}
		for _, sub := range roleHierarchy[r] {
			walk(sub)
		}
	}
	for _, r := range roles {
		walk(r)
	}
	return out
}

// ParseRoles converts stored role names into Roles without validation;
// unknown names stay inert in the hierarchy.
func ParseRoles(names []string) []Role {
	roles := make([]Role, 0, len(names))
	for _, n := range names {
		roles = append(roles, Role(n))
	}
	return roles
}

// IsStaffRole reports whether name is one of the compiled-in staff roles.
// The client role and unknown names are not assignable to staff accounts.
func IsStaffRole(name string) bool {
	switch Role(name) {
	case RoleAdministrator, RoleReceptionist, RoleTechnician, RoleSales:
		return true
	}
	return false
}

// RoleNames is the inverse of ParseRoles, used when embedding roles in
// token claims.
func RoleNames(roles []Role) []string {
	names := make([]string, 0, len(roles))
	for _, r := range roles {
		names = append(names, string(r))
	}
	return names
}
