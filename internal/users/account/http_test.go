// Copyright (c) 2026 Kritika. All rights reserved.
// Author: anton.kharin.dev@gmail.com

package account_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/antonkh/kritika/internal/platform/ctxutil"
	"github.com/antonkh/kritika/internal/platform/respond"
	"github.com/antonkh/kritika/internal/platform/sec"
	"github.com/antonkh/kritika/internal/users/account"
	"github.com/antonkh/kritika/internal/users/auth"
)

// doRequest runs a request against the account router, optionally injecting
// auth claims the way the Authenticate middleware would.
func doRequest(handler http.Handler, method, target, body string, claims *sec.AuthClaims) *httptest.ResponseRecorder {
	request := httptest.NewRequest(method, target, strings.NewReader(body))
	if claims != nil {
		request = request.WithContext(ctxutil.WithAuthUser(request.Context(), claims))
	}

	recorder := httptest.NewRecorder()
	handler.ServeHTTP(recorder, request)
	return recorder
}

func claimsFor(user *auth.User) *sec.AuthClaims {
	return &sec.AuthClaims{
		UserID:      user.ID,
		Username:    user.Username,
		Role:        string(user.Role),
		IsSuperuser: user.IsSuperuser,
	}
}

func decodeError(t *testing.T, recorder *httptest.ResponseRecorder) respond.ErrorEnvelope {
	t.Helper()
	var envelope respond.ErrorEnvelope
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &envelope))
	return envelope
}

func newTestRouter(t *testing.T) (http.Handler, *auth.User, *auth.User) {
	t.Helper()
	service, _ := newTestService()
	ctx := context.Background()

	regular, err := service.Create(ctx, account.CreateInput{
		Username: "critic",
		Email:    "critic@example.com",
	})
	require.NoError(t, err)

	admin, err := service.Create(ctx, account.CreateInput{
		Username: "boss",
		Email:    "boss@example.com",
		Role:     sec.RoleAdmin,
	})
	require.NoError(t, err)

	return account.NewHandler(service).Routes(), regular, admin
}

/*
TestRouter_PutIsRejected pins the write contract: partial updates go through
PATCH, and PUT against any matched path answers 405 with the JSON error
envelope instead of chi's plain-text default.
*/
func TestRouter_PutIsRejected(t *testing.T) {
	router, regular, admin := newTestRouter(t)

	tests := []struct {
		name   string
		target string
		claims *sec.AuthClaims
	}{
		{name: "self_profile", target: "/me", claims: claimsFor(regular)},
		{name: "admin_user_detail", target: "/critic", claims: claimsFor(admin)},
		{name: "anonymous", target: "/critic", claims: nil},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			recorder := doRequest(router, http.MethodPut, test.target, `{"bio":"x"}`, test.claims)

			assert.Equal(t, http.StatusMethodNotAllowed, recorder.Code)
			assert.Equal(t, "METHOD_NOT_ALLOWED", decodeError(t, recorder).Code)
		})
	}
}

func TestRouter_DeleteMeIsRejected(t *testing.T) {
	router, regular, _ := newTestRouter(t)

	recorder := doRequest(router, http.MethodDelete, "/me", "", claimsFor(regular))

	assert.Equal(t, http.StatusMethodNotAllowed, recorder.Code)
	assert.Equal(t, "METHOD_NOT_ALLOWED", decodeError(t, recorder).Code)
}

func TestRouter_MeRequiresAuth(t *testing.T) {
	router, _, _ := newTestRouter(t)

	recorder := doRequest(router, http.MethodGet, "/me", "", nil)

	assert.Equal(t, http.StatusUnauthorized, recorder.Code)
	assert.Equal(t, "UNAUTHORIZED", decodeError(t, recorder).Code)
}

func TestRouter_AdminRoutesForbiddenForRegularUser(t *testing.T) {
	router, regular, _ := newTestRouter(t)

	tests := []struct {
		name   string
		method string
		target string
		body   string
	}{
		{name: "list", method: http.MethodGet, target: "/"},
		{name: "create", method: http.MethodPost, target: "/", body: `{"username":"x","email":"x@example.com"}`},
		{name: "detail", method: http.MethodGet, target: "/boss"},
		{name: "delete", method: http.MethodDelete, target: "/boss"},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			recorder := doRequest(router, test.method, test.target, test.body, claimsFor(regular))

			assert.Equal(t, http.StatusForbidden, recorder.Code)
			assert.Equal(t, "FORBIDDEN", decodeError(t, recorder).Code)
		})
	}
}

func TestRouter_GetMeReturnsOwnProfile(t *testing.T) {
	router, regular, _ := newTestRouter(t)

	recorder := doRequest(router, http.MethodGet, "/me", "", claimsFor(regular))
	require.Equal(t, http.StatusOK, recorder.Code)

	var envelope struct {
		Data struct {
			Username string `json:"username"`
			Role     string `json:"role"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &envelope))
	assert.Equal(t, "critic", envelope.Data.Username)
	assert.Equal(t, "user", envelope.Data.Role)
}

/*
TestRouter_SelfUpdateIgnoresRole exercises the full HTTP path of the
privilege-escalation guard: a PATCH /me carrying a role field succeeds and
leaves the caller's role untouched — for a real role value and for a
nonsense one alike, since the read-only field is dropped before validation.
*/
func TestRouter_SelfUpdateIgnoresRole(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{name: "valid_role_value", body: `{"bio":"reads everything","role":"admin"}`},
		{name: "nonsense_role_value", body: `{"bio":"reads everything","role":"owner"}`},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			router, regular, _ := newTestRouter(t)

			recorder := doRequest(router, http.MethodPatch, "/me", test.body, claimsFor(regular))
			require.Equal(t, http.StatusOK, recorder.Code)

			var envelope struct {
				Data struct {
					Bio  string `json:"bio"`
					Role string `json:"role"`
				} `json:"data"`
			}
			require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &envelope))
			assert.Equal(t, "reads everything", envelope.Data.Bio)
			assert.Equal(t, "user", envelope.Data.Role)
		})
	}
}

// The admin path, unlike /me, validates the role field rather than dropping it.
func TestRouter_AdminUpdateRejectsUnknownRole(t *testing.T) {
	router, _, admin := newTestRouter(t)

	recorder := doRequest(router, http.MethodPatch, "/critic", `{"role":"owner"}`, claimsFor(admin))

	assert.Equal(t, http.StatusBadRequest, recorder.Code)
	assert.Equal(t, "VALIDATION_ERROR", decodeError(t, recorder).Code)
}

func TestRouter_AdminLifecycle(t *testing.T) {
	router, _, admin := newTestRouter(t)
	adminClaims := claimsFor(admin)

	recorder := doRequest(router, http.MethodPost, "/",
		`{"username":"newbie","email":"newbie@example.com","role":"moderator"}`, adminClaims)
	require.Equal(t, http.StatusCreated, recorder.Code)

	recorder = doRequest(router, http.MethodGet, "/newbie", "", adminClaims)
	require.Equal(t, http.StatusOK, recorder.Code)

	recorder = doRequest(router, http.MethodDelete, "/newbie", "", adminClaims)
	require.Equal(t, http.StatusNoContent, recorder.Code)

	recorder = doRequest(router, http.MethodGet, "/newbie", "", adminClaims)
	assert.Equal(t, http.StatusNotFound, recorder.Code)
}
