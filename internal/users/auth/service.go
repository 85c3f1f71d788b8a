// Copyright (c) 2026 Kritika. All rights reserved.
// Author: anton.kharin.dev@gmail.com

package auth

import (
	"context"
	"fmt"
	"time"

	"github.com/antonkh/kritika/internal/platform/apperr"
	"github.com/antonkh/kritika/internal/platform/mail"
	"github.com/antonkh/kritika/internal/platform/sec"
	"github.com/antonkh/kritika/pkg/uuid"
)

// # Contracts & Types

// TokenProvider defines the contract for issuing access tokens.
type TokenProvider interface {
	// GenerateAccessToken creates a signed JWT string for the given user.
	GenerateAccessToken(userID, username string, role sec.UserRole, isSuperuser bool) (string, error)
}

// CodeIssuer generates and hashes confirmation codes. Satisfied by thin
// wrappers over the sec package; injected so tests can fix the code value.
type CodeIssuer interface {
	Generate(length int) (string, error)
	Hash(plainCode string) (string, error)
	Check(plainCode, existingHash string) bool
}

// Options carries the token-issuing knobs, built from config in main.
// There is deliberately no package-level default generator.
type Options struct {
	// CodeTTL is the confirmation-code validity window.
	CodeTTL time.Duration
	// CodeLength is the number of characters in an emailed code.
	CodeLength int
}

// Service implements the signup and token-exchange use cases.
type Service struct {
	users  UserRepository
	codes  CodeRepository
	tokens TokenProvider
	issuer CodeIssuer
	mailer mail.Mailer
	opts   Options
}

// NewService constructs a new [Service] with its dependencies.
func NewService(users UserRepository, codes CodeRepository, tokens TokenProvider, issuer CodeIssuer, mailer mail.Mailer, opts Options) *Service {
	return &Service{
		users:  users,
		codes:  codes,
		tokens: tokens,
		issuer: issuer,
		mailer: mailer,
		opts:   opts,
	}
}

// # Signup Flow

// SignupInput holds the data required to request an account.
type SignupInput struct {
	Username string
	Email    string
}

// Signup performs the idempotent get-or-create enrollment and emails a
// fresh confirmation code.
//
// # Semantics
//
//   - The exact (username, email) pair may be re-submitted any number of
//     times; each submission reissues a code (lost-email recovery).
//   - A username or email already bound to a DIFFERENT pair member is a
//     conflict, reported with the specific identity field from the storage
//     constraint — never a generic failure, even when two signups race.
//   - Mail delivery failure is a hard failure: the caller must know the
//     code never left the building.
func (service *Service) Signup(ctx context.Context, input SignupInput) (*User, error) {

	// Repeat request for an existing pair — reuse the account.
	user, err := service.users.FindByIdentity(ctx, input.Username, input.Email)
	if err != nil {
		// Only a confirmed miss falls through to create; a storage failure
		// must surface as-is instead of masquerading as a fresh identity.
		if appError := apperr.As(err); appError == nil || appError.Code != "NOT_FOUND" {
			return nil, err
		}

		// Fresh identity: create with defaults. A concurrent duplicate
		// resolves at the unique constraint, not here.
		user = &User{
			ID:       uuid.New(),
			Username: input.Username,
			Email:    input.Email,
			Role:     sec.RoleUser,
		}
		if err := service.users.Create(ctx, user); err != nil {
			return nil, err
		}
	}

	plainCode, err := service.issuer.Generate(service.opts.CodeLength)
	if err != nil {
		return nil, fmt.Errorf("auth_service_code_generation_failed: %w", err)
	}

	codeHash, err := service.issuer.Hash(plainCode)
	if err != nil {
		return nil, fmt.Errorf("auth_service_code_hash_failed: %w", err)
	}

	if err := service.codes.Save(ctx, user.ID, codeHash, service.opts.CodeTTL); err != nil {
		return nil, fmt.Errorf("auth_service_code_save_failed: %w", err)
	}

	subject := "Your Kritika confirmation code"
	body := fmt.Sprintf("Hello %s,\n\nYour confirmation code is: %s\n\nIt expires in %s.", user.Username, plainCode, service.opts.CodeTTL)
	if err := service.mailer.Send(ctx, user.Email, subject, body); err != nil {
		return nil, apperr.Internal(fmt.Errorf("auth_service_mail_failed: %w", err))
	}

	return user, nil
}

// # Token Exchange

// IssueToken verifies a confirmation code and returns a signed access token.
//
// # Semantics
//
//   - Unknown username fails closed as Not Found — never a silent success.
//   - A missing or expired code, or a mismatch, is Unauthorized.
//   - One successful verification consumes the code; so does the
//     [MaxCodeAttempts]-th failed attempt.
func (service *Service) IssueToken(ctx context.Context, username, plainCode string) (string, error) {
	user, err := service.users.FindByUsername(ctx, username)
	if err != nil {
		return "", apperr.NotFound("User")
	}

	record, err := service.codes.Find(ctx, user.ID)
	if err != nil {
		return "", apperr.Unauthorized("Confirmation code is invalid or expired")
	}

	if !service.issuer.Check(plainCode, record.CodeHash) {
		attempts, incrementErr := service.codes.IncrementAttempts(ctx, user.ID)
		if incrementErr == nil && attempts >= MaxCodeAttempts {
			_ = service.codes.Delete(ctx, user.ID)
		}
		return "", apperr.Unauthorized("Confirmation code is invalid or expired")
	}

	// Single use: consume before issuing.
	if err := service.codes.Delete(ctx, user.ID); err != nil {
		return "", fmt.Errorf("auth_service_code_consume_failed: %w", err)
	}

	token, err := service.tokens.GenerateAccessToken(user.ID, user.Username, user.Role, user.IsSuperuser)
	if err != nil {
		return "", fmt.Errorf("auth_service_token_generation_failed: %w", err)
	}

	return token, nil
}

// # Code Issuer Implementation

// SecCodeIssuer is the production [CodeIssuer] backed by the sec package.
type SecCodeIssuer struct{}

// Generate produces a random confirmation code.
func (SecCodeIssuer) Generate(length int) (string, error) {
	return sec.GenerateConfirmationCode(length)
}

// Hash bcrypt-hashes a code for storage.
func (SecCodeIssuer) Hash(plainCode string) (string, error) {
	return sec.HashCode(plainCode)
}

// Check compares a code against its stored hash.
func (SecCodeIssuer) Check(plainCode, existingHash string) bool {
	return sec.CheckCodeHash(plainCode, existingHash)
}
