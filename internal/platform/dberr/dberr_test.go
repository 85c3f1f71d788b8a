// Copyright (c) 2026 Kritika. All rights reserved.
// Author: anton.kharin.dev@gmail.com

package dberr_test

import (
	"errors"
	"net/http"
	"testing"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/antonkh/kritika/internal/platform/apperr"
	"github.com/antonkh/kritika/internal/platform/dberr"
)

func pgErr(code, constraint string) *pgconn.PgError {
	return &pgconn.PgError{Code: code, ConstraintName: constraint}
}

/*
TestWrap_UniqueViolations verifies that unique-constraint violations are
classified by constraint name into precise conflict messages. This is the
path a lost race takes: the second concurrent insert lands here instead of
in a generic 500.
*/
func TestWrap_UniqueViolations(t *testing.T) {
	tests := []struct {
		name        string
		constraint  string
		wantMessage string
	}{
		{"duplicate_review", "social_review_title_author_key", "You have already reviewed this title"},
		{"duplicate_username", "users_account_username_key", "Username is already taken"},
		{"duplicate_email", "users_account_email_key", "Email is already registered"},
		{"duplicate_category_slug", "catalog_category_slug_key", "Category slug is already in use"},
		{"duplicate_genre_name", "catalog_genre_name_key", "Genre name is already in use"},
		{"unmapped_constraint", "some_future_key", "Resource already exists"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := dberr.Wrap(pgErr(pgerrcode.UniqueViolation, tt.constraint), "insert")

			appError := apperr.As(err)
			require.NotNil(t, appError)
			assert.Equal(t, "CONFLICT", appError.Code)
			assert.Equal(t, http.StatusConflict, appError.HTTPStatus)
			assert.Equal(t, tt.wantMessage, appError.Message)
		})
	}
}

func TestWrap_NoRows(t *testing.T) {
	err := dberr.Wrap(pgx.ErrNoRows, "find")

	appError := apperr.As(err)
	require.NotNil(t, appError)
	assert.Equal(t, "NOT_FOUND", appError.Code)
}

func TestWrap_ForeignKeyViolation(t *testing.T) {
	// Inserting against a missing parent row.
	err := dberr.Wrap(pgErr(pgerrcode.ForeignKeyViolation, "social_comment_reviewid_fkey"), "insert")
	appError := apperr.As(err)
	require.NotNil(t, appError)
	assert.Equal(t, "NOT_FOUND", appError.Code)

	// Deleting a category still referenced by titles.
	err = dberr.Wrap(pgErr(pgerrcode.ForeignKeyViolation, "catalog_title_categoryid_fkey"), "delete")
	appError = apperr.As(err)
	require.NotNil(t, appError)
	assert.Equal(t, "CONFLICT", appError.Code)
}

func TestWrap_CheckViolation(t *testing.T) {
	err := dberr.Wrap(pgErr(pgerrcode.CheckViolation, "social_review_score_check"), "insert")

	appError := apperr.As(err)
	require.NotNil(t, appError)
	assert.Equal(t, "VALIDATION_ERROR", appError.Code)
}

func TestWrap_PassesThroughAppErrors(t *testing.T) {
	original := apperr.NotFound("Review")
	assert.Same(t, original, dberr.Wrap(original, "find"))
}

func TestWrap_UnknownErrorBecomesInternal(t *testing.T) {
	err := dberr.Wrap(errors.New("connection reset"), "query")

	appError := apperr.As(err)
	require.NotNil(t, appError)
	assert.Equal(t, http.StatusInternalServerError, appError.HTTPStatus)
	// The raw cause must never be the client-facing message.
	assert.NotContains(t, appError.Message, "connection reset")
}
