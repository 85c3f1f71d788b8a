// Copyright (c) 2026 Kritika. All rights reserved.
// Author: anton.kharin.dev@gmail.com

package account

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/antonkh/kritika/internal/platform/sec"
	"github.com/antonkh/kritika/internal/users/auth"
	"github.com/antonkh/kritika/pkg/pointer"
	"github.com/antonkh/kritika/pkg/uuid"
)

// # Service Layer

// Service orchestrates business logic for user administration and the
// self profile.
type Service struct {
	repository Repository
	logger     *slog.Logger
}

// NewService constructs a new [Service].
func NewService(repository Repository, logger *slog.Logger) *Service {
	return &Service{repository: repository, logger: logger}
}

// # Admin Operations

// List returns a page of users matching the optional username search.
func (service *Service) List(ctx context.Context, search string, limit, offset int) ([]*auth.User, int, error) {
	return service.repository.List(ctx, search, limit, offset)
}

// Get returns the user with the given username.
func (service *Service) Get(ctx context.Context, username string) (*auth.User, error) {
	return service.repository.FindByUsername(ctx, username)
}

// CreateInput holds the admin-provisioning payload.
type CreateInput struct {
	Username  string
	Email     string
	FirstName string
	LastName  string
	Bio       string
	Role      sec.UserRole
}

// Create provisions an account without the signup flow. The role is
// assignable here — this path is already gated to admin callers.
func (service *Service) Create(ctx context.Context, input CreateInput) (*auth.User, error) {
	role := input.Role
	if role == "" {
		role = sec.RoleUser
	}

	user := &auth.User{
		ID:        uuid.New(),
		Username:  input.Username,
		Email:     input.Email,
		FirstName: input.FirstName,
		LastName:  input.LastName,
		Bio:       input.Bio,
		Role:      role,
	}

	if err := service.repository.Create(ctx, user); err != nil {
		return nil, err
	}

	service.logger.InfoContext(ctx, "user_provisioned",
		slog.String("username", user.Username),
		slog.String("role", string(user.Role)),
	)

	return user, nil
}

// UpdateInput holds a partial profile update; nil fields are left unchanged.
type UpdateInput struct {
	Email     *string
	FirstName *string
	LastName  *string
	Bio       *string
	Role      *sec.UserRole
}

// Update applies a partial update to the named user (admin path; the role
// field is honored here).
func (service *Service) Update(ctx context.Context, username string, input UpdateInput) (*auth.User, error) {
	user, err := service.repository.FindByUsername(ctx, username)
	if err != nil {
		return nil, err
	}

	applyProfileFields(user, input)
	if input.Role != nil {
		user.Role = *input.Role
	}

	if err := service.repository.Update(ctx, user); err != nil {
		return nil, err
	}

	return user, nil
}

// Delete removes the named account.
func (service *Service) Delete(ctx context.Context, username string) error {
	// Resolve first so a missing user is a 404, not a silent no-op.
	if _, err := service.repository.FindByUsername(ctx, username); err != nil {
		return err
	}

	if err := service.repository.Delete(ctx, username); err != nil {
		return fmt.Errorf("account_service_delete_failed: %w", err)
	}

	return nil
}

// # Self Profile

// GetSelf returns the caller's own profile.
func (service *Service) GetSelf(ctx context.Context, userID string) (*auth.User, error) {
	return service.repository.FindByID(ctx, userID)
}

// UpdateSelf applies a partial update to the caller's own profile.
//
// Any role value in the input is discarded before it reaches storage: role
// is read-only on self-update regardless of the caller's privilege, so a
// payload containing "role" is silently ignored rather than rejected.
func (service *Service) UpdateSelf(ctx context.Context, userID string, input UpdateInput) (*auth.User, error) {
	user, err := service.repository.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	input.Role = nil
	applyProfileFields(user, input)

	if err := service.repository.Update(ctx, user); err != nil {
		return nil, err
	}

	return user, nil
}

// applyProfileFields copies the non-nil profile fields onto the entity.
func applyProfileFields(user *auth.User, input UpdateInput) {
	user.Email = pointer.Fallback(input.Email, user.Email)
	user.FirstName = pointer.Fallback(input.FirstName, user.FirstName)
	user.LastName = pointer.Fallback(input.LastName, user.LastName)
	user.Bio = pointer.Fallback(input.Bio, user.Bio)
}
