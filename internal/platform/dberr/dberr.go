// Copyright (c) 2026 Kritika. All rights reserved.
// Author: anton.kharin.dev@gmail.com

// Package dberr provides a bridge between low-level database errors and
// higher-level application errors.
//
// # Architecture
//
// Repositories funnel every pgx error through [Wrap] so that storage detail
// (SQLSTATE codes, constraint names) never leaks past the storage layer.
// Unique-constraint violations are classified by constraint name, which is
// what lets a race between two concurrent review inserts surface as a
// precise "already reviewed" conflict instead of a generic server failure.
package dberr

import (
	"errors"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/antonkh/kritika/internal/platform/apperr"
)

var (
	// ErrNotFound is a standard error returned when a queried row doesn't exist.
	ErrNotFound = apperr.NotFound("Resource")
)

// conflictMessages maps unique-constraint names (as declared in the
// migrations) to client-safe conflict messages.
var conflictMessages = map[string]string{
	"social_review_title_author_key": "You have already reviewed this title",
	"users_account_username_key":     "Username is already taken",
	"users_account_email_key":        "Email is already registered",
	"catalog_category_name_key":      "Category name is already in use",
	"catalog_category_slug_key":      "Category slug is already in use",
	"catalog_genre_name_key":         "Genre name is already in use",
	"catalog_genre_slug_key":         "Genre slug is already in use",
	"catalog_titlegenre_pair_key":    "Genre is already attached to this title",
}

// Wrap inspects a database error and wraps it into a meaningful [apperr.AppError].
// It hides internal database details from the client while classifying the error type.
func Wrap(err error, action string) error {
	if err == nil {
		return nil
	}

	// Preserve errors that were already classified by a caller.
	if apperr.IsAppError(err) {
		return err
	}

	// 1. Not Found mapping
	if errors.Is(err, pgx.ErrNoRows) {
		return ErrNotFound
	}

	// 2. Constraint violations
	var pgError *pgconn.PgError
	if errors.As(err, &pgError) {
		switch pgError.Code {
		case pgerrcode.UniqueViolation:
			if message, ok := conflictMessages[pgError.ConstraintName]; ok {
				return apperr.Conflict(message)
			}
			return apperr.Conflict("Resource already exists")
		case pgerrcode.ForeignKeyViolation:
			// A delete blocked by dependent rows is a conflict; otherwise the
			// referenced parent row is gone (e.g. comment on a deleted review).
			if pgError.ConstraintName == "catalog_title_categoryid_fkey" {
				return apperr.Conflict("Category is still in use by titles")
			}
			return apperr.NotFound("Referenced resource")
		case pgerrcode.CheckViolation:
			return apperr.ValidationError("Value rejected by a storage constraint")
		}
	}

	// 3. Unknown query errors become Internal Server Errors
	return apperr.Internal(err)
}
