package models

// Role is the authorization tier of a user. It is stored on the user row
// at creation time and embedded into every issued token.
type Role string

const (
	// RoleRegisteredUser is an ordinary ticket-buying account.
	RoleRegisteredUser Role = "registered_user"
	// RoleAdmin manages events and locations.
	RoleAdmin Role = "admin"
	// RoleSysAdmin additionally sees the reporting charts.
	RoleSysAdmin Role = "sys_admin"
)

// ParseRole maps a raw role string to a Role. Unknown values fall through
// to RoleRegisteredUser, so the function is total over any input.
func ParseRole(s string) Role {
	switch Role(s) {
	case RoleAdmin:
		return RoleAdmin
	case RoleSysAdmin:
		return RoleSysAdmin
	default:
		return RoleRegisteredUser
	}
}

func (r Role) String() string {
	return string(r)
}
