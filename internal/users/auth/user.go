// Copyright (c) 2026 Kritika. All rights reserved.
// Author: anton.kharin.dev@gmail.com

/*
Package auth implements the identity and access subsystem.

It defines the core User entity and the signup flow: an idempotent
get-or-create on (username, email), a single-use emailed confirmation code,
and the exchange of a verified code for a stateless JWT access token.

# Architecture

This layer is the "Truth" of the system. Entities defined here have no
transport dependencies and encapsulate all business rules related to user
identity. There is no password: possession of the mailbox is the credential.
*/
package auth

import (
	"time"

	"github.com/antonkh/kritika/internal/platform/sec"
)

// # Domain Entities

// User represents a registered member of the Kritika platform.
//
// Role and the superuser flag together determine elevated privilege; both
// travel inside the access token so authorization never needs a DB lookup.
type User struct {
	ID          string       `json:"id"`
	Username    string       `json:"username"`
	Email       string       `json:"email"`
	FirstName   string       `json:"first_name,omitempty"`
	LastName    string       `json:"last_name,omitempty"`
	Bio         string       `json:"bio,omitempty"`
	Role        sec.UserRole `json:"role"`
	IsSuperuser bool         `json:"is_superuser,omitempty"`
	CreatedAt   time.Time    `json:"created_at"`
	UpdatedAt   time.Time    `json:"updated_at"`
}

// ConfirmationCode is the volatile record backing the signup flow.
//
// Only the bcrypt hash of the code is ever stored; the plain code exists in
// the outbound email and nowhere else.
type ConfirmationCode struct {
	CodeHash string
	Attempts int
}

// # Field Identifiers

// Field names for validation and identity mapping in the authentication domain.
const (
	FieldUsername         = "username"
	FieldEmail            = "email"
	FieldConfirmationCode = "confirmation_code"
	FieldToken            = "token"
)
