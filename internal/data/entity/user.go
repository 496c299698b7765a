package entity

import "strings"

type UserRole string

const (
	RoleCustomer UserRole = "CUSTOMER"
	RoleGuide    UserRole = "GUIDE"
	RoleAdmin    UserRole = "ADMIN"
)

// ParseRole reports whether s is a known role (any letter case).
func ParseRole(s string) (UserRole, bool) {
	switch r := UserRole(strings.ToUpper(strings.TrimSpace(s))); r {
	case RoleCustomer, RoleGuide, RoleAdmin:
		return r, true
	}
	return "", false
}

// NormalizeRole maps unknown or empty roles to CUSTOMER.
func NormalizeRole(s string) UserRole {
	if r, ok := ParseRole(s); ok {
		return r
	}
	return RoleCustomer
}

type User struct {
	Base
	Name  string   `db:"name"`
	Email string   `db:"email"`
	Image *string  `db:"image"`
	Role  UserRole `db:"role"`
}

func (u *User) EffectiveRole() UserRole {
	return NormalizeRole(string(u.Role))
}
