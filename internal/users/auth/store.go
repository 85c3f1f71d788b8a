// Copyright (c) 2026 Kritika. All rights reserved.
// Author: anton.kharin.dev@gmail.com

package auth

import (
	"context"
	"time"
)

// # User Data Access

// UserRepository defines the data access contract for user accounts.
//
// Uniqueness of username and email is a storage-level concern: Create
// surfaces violations as precise conflict errors rather than requiring a
// check-then-insert at the service layer.
type UserRepository interface {
	// FindByID returns the account with the given ID.
	FindByID(ctx context.Context, id string) (*User, error)

	// FindByUsername returns the account with the given username.
	FindByUsername(ctx context.Context, username string) (*User, error)

	// FindByIdentity returns the account matching BOTH username and email.
	// Used by the idempotent signup flow to detect a repeat request.
	FindByIdentity(ctx context.Context, username, email string) (*User, error)

	// Create persists a brand-new user account. Username/email collisions
	// are reported as conflict errors carrying the violated identity field.
	Create(ctx context.Context, user *User) error
}

// # Confirmation-Code Data Access

// CodeRepository defines the contract for the volatile confirmation-code
// store. Codes are bound to a user, expire after a configured window, and
// are deleted on consumption.
type CodeRepository interface {
	// Save stores (or replaces) the code hash for a user with the given TTL.
	// A re-signup always supersedes any earlier outstanding code.
	Save(ctx context.Context, userID, codeHash string, ttl time.Duration) error

	// Find returns the outstanding code record for a user.
	// Returns a not-found error when no code is outstanding or it expired.
	Find(ctx context.Context, userID string) (*ConfirmationCode, error)

	// IncrementAttempts records a failed verification attempt and returns
	// the new attempt count.
	IncrementAttempts(ctx context.Context, userID string) (int, error)

	// Delete removes the code, consuming it.
	Delete(ctx context.Context, userID string) error
}
