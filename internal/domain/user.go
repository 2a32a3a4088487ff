package domain

import (
	"fmt"
	"time"
)

// Role enumerates account roles in descending order of visibility.
type Role string

const (
	RoleSuperadmin Role = "SUPERADMIN"
	RoleAdmin      Role = "ADMIN"
	RoleManager    Role = "MANAGER"
	RoleExecutive  Role = "EXECUTIVE"
)

// ParseRole converts a raw string into a Role, rejecting anything outside the
// closed set so a typo can never silently fall through to "no access".
func ParseRole(raw string) (Role, error) {
	switch Role(raw) {
	case RoleSuperadmin, RoleAdmin, RoleManager, RoleExecutive:
		return Role(raw), nil
	default:
		return "", fmt.Errorf("unknown role %q", raw)
	}
}

// User is an authenticable account with optional hierarchy links.
// ManagerID is set for executives (which manager they report to); AdminID is
// set on managers and on executives created through an admin-scoped flow, so
// an admin's full scope resolves with a single indexed lookup.
type User struct {
	ID           int64
	Username     string
	PasswordHash string
	Role         Role
	ManagerID    *int64
	AdminID      *int64
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
