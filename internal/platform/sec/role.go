// Copyright (c) 2026 Bookstore API. All rights reserved.
// Author: ukjong.dev@gmail.com

package sec

// # User Roles

// UserRole represents the authorization level granted to an account.
type UserRole string

const (
	// Unrestricted access to catalog and category mutations
	RoleAdmin UserRole = "ADMIN"

	// Default role for standard registered users
	RoleUser UserRole = "USER"
)

// IsAdmin reports whether the role grants administrative privileges.
//
// Mutation endpoints require exact ADMIN membership; there is no role
// hierarchy in this system.
func (r UserRole) IsAdmin() bool {
	return r == RoleAdmin
}

// Valid reports whether the role is one of the known values.
func (r UserRole) Valid() bool {
	return r == RoleAdmin || r == RoleUser
}
