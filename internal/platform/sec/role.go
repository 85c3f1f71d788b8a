// Copyright (c) 2026 Kritika. All rights reserved.
// Author: anton.kharin.dev@gmail.com

package sec

// # User Roles

// UserRole represents the authorization level granted to an account.
type UserRole string

const (
	// Unrestricted system access
	RoleAdmin UserRole = "admin"

	// Can moderate community content (others' reviews and comments)
	RoleModerator UserRole = "moderator"

	// Default role for standard registered users
	RoleUser UserRole = "user"
)

// IsValid reports whether r is one of the known role values.
func (r UserRole) IsValid() bool {
	switch r {
	case RoleAdmin, RoleModerator, RoleUser:
		return true
	}
	return false
}

// # Authorization Predicates
//
// Privilege in this system is the role combined with the account-level
// superuser flag, so the decision functions take both. Claims may be absent
// entirely (anonymous request): callers pass the zero values and get a
// concrete deny, never a nil-dereference.

// CanModerate reports whether the caller may mutate content authored by
// someone else (reviews, comments).
func CanModerate(role UserRole, isSuperuser bool) bool {
	return isSuperuser || role == RoleAdmin || role == RoleModerator
}

// CanAdminister reports whether the caller may manage the catalog
// (categories, genres, titles) and other user accounts.
func CanAdminister(role UserRole, isSuperuser bool) bool {
	return isSuperuser || role == RoleAdmin
}

// CanMutateOwned reports whether the caller may update or delete the given
// resource: authors always may, everyone else needs moderation rights.
func CanMutateOwned(callerID string, authorID string, role UserRole, isSuperuser bool) bool {
	if callerID != "" && callerID == authorID {
		return true
	}
	return CanModerate(role, isSuperuser)
}
