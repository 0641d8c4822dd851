package domain

import "strings"

// Role is the coarse permission class carried by an authenticated caller.
type Role string

const (
	RoleCustomer Role = "CUSTOMER"
	RoleDriver   Role = "DRIVER"
	RoleAdmin    Role = "ADMIN"
)

// ParseRole maps a claim value to a Role. Unknown or empty values become CUSTOMER,
// the least privileged role.
func ParseRole(s string) Role {
	switch Role(strings.ToUpper(strings.TrimSpace(s))) {
	case RoleAdmin:
		return RoleAdmin
	case RoleDriver:
		return RoleDriver
	default:
		return RoleCustomer
	}
}

// Actor is the verified identity a request runs as.
type Actor struct {
	UserID string
	Role   Role
}

// IsAdmin reports whether the actor has the ADMIN role.
func (a Actor) IsAdmin() bool { return a.Role == RoleAdmin }
