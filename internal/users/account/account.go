// Copyright (c) 2026 Kritika. All rights reserved.
// Author: anton.kharin.dev@gmail.com

/*
Package account handles user-record administration and the self profile.

The admin surface (list/create/get/patch/delete, keyed by username) is
restricted to admin-or-superuser callers; the /users/me surface lets any
authenticated user read and partially update their own profile, with the
role and superuser fields read-only there.

# Architecture

  - Entities: This package depends on the auth package for the User entity.
  - Views: Endpoint payloads are explicit projection structs, not entity
    subclasses — the "me" view and the admin view are built by functions.
*/
package account

import (
	"context"

	"github.com/antonkh/kritika/internal/platform/sec"
	"github.com/antonkh/kritika/internal/users/auth"
)

// # Repository Contract

// Repository defines the persistence contract for user administration.
type Repository interface {
	// List returns a page of users filtered by username substring, ordered
	// by username, plus the total match count.
	List(ctx context.Context, search string, limit, offset int) ([]*auth.User, int, error)

	// FindByUsername returns the account with the given username.
	FindByUsername(ctx context.Context, username string) (*auth.User, error)

	// FindByID returns the account with the given ID.
	FindByID(ctx context.Context, id string) (*auth.User, error)

	// Create persists an admin-provisioned account. Identity collisions are
	// reported as precise conflict errors.
	Create(ctx context.Context, user *auth.User) error

	// Update persists changes to mutable profile fields (and, for admin
	// updates, the role and superuser flag).
	Update(ctx context.Context, user *auth.User) error

	// Delete removes the account row.
	Delete(ctx context.Context, username string) error
}

// # View Models

// ProfileView is the representation returned by the admin and self
// endpoints. Built by [NewProfileView]; never the raw entity.
type ProfileView struct {
	Username    string       `json:"username"`
	Email       string       `json:"email"`
	FirstName   string       `json:"first_name"`
	LastName    string       `json:"last_name"`
	Bio         string       `json:"bio"`
	Role        sec.UserRole `json:"role"`
	IsSuperuser bool         `json:"is_superuser,omitempty"`
}

// NewProfileView projects a User entity into its transport representation.
func NewProfileView(user *auth.User) ProfileView {
	return ProfileView{
		Username:    user.Username,
		Email:       user.Email,
		FirstName:   user.FirstName,
		LastName:    user.LastName,
		Bio:         user.Bio,
		Role:        user.Role,
		IsSuperuser: user.IsSuperuser,
	}
}
