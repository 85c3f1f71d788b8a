// Copyright (c) 2026 Kritika. All rights reserved.
// Author: anton.kharin.dev@gmail.com

package account_test

import (
	"context"
	"log/slog"
	"sort"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/antonkh/kritika/internal/platform/apperr"
	"github.com/antonkh/kritika/internal/platform/sec"
	"github.com/antonkh/kritika/internal/users/account"
	"github.com/antonkh/kritika/internal/users/auth"
	"github.com/antonkh/kritika/pkg/pointer"
)

// # In-Memory Fake

type fakeRepo struct {
	byID map[string]*auth.User
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{byID: make(map[string]*auth.User)}
}

func (repo *fakeRepo) List(_ context.Context, search string, limit, offset int) ([]*auth.User, int, error) {
	var matched []*auth.User
	for _, user := range repo.byID {
		if search == "" || strings.Contains(user.Username, search) {
			matched = append(matched, user)
		}
	}
	sort.Slice(matched, func(i, j int) bool { return matched[i].Username < matched[j].Username })
	total := len(matched)
	if offset >= len(matched) {
		return nil, total, nil
	}
	matched = matched[offset:]
	if limit < len(matched) {
		matched = matched[:limit]
	}
	return matched, total, nil
}

func (repo *fakeRepo) FindByUsername(_ context.Context, username string) (*auth.User, error) {
	for _, user := range repo.byID {
		if user.Username == username {
			return user, nil
		}
	}
	return nil, apperr.NotFound("User")
}

func (repo *fakeRepo) FindByID(_ context.Context, id string) (*auth.User, error) {
	if user, ok := repo.byID[id]; ok {
		return user, nil
	}
	return nil, apperr.NotFound("User")
}

func (repo *fakeRepo) Create(_ context.Context, newUser *auth.User) error {
	for _, user := range repo.byID {
		if user.Username == newUser.Username {
			return apperr.Conflict("Username is already taken")
		}
	}
	repo.byID[newUser.ID] = newUser
	return nil
}

func (repo *fakeRepo) Update(_ context.Context, updated *auth.User) error {
	if _, ok := repo.byID[updated.ID]; !ok {
		return apperr.NotFound("User")
	}
	repo.byID[updated.ID] = updated
	return nil
}

func (repo *fakeRepo) Delete(_ context.Context, username string) error {
	for id, user := range repo.byID {
		if user.Username == username {
			delete(repo.byID, id)
			return nil
		}
	}
	return apperr.NotFound("User")
}

func newTestService() (*account.Service, *fakeRepo) {
	repo := newFakeRepo()
	return account.NewService(repo, slog.Default()), repo
}

// # Admin Path Tests

func TestCreate_DefaultsToUserRole(t *testing.T) {
	service, _ := newTestService()

	user, err := service.Create(context.Background(), account.CreateInput{
		Username: "critic",
		Email:    "critic@example.com",
	})
	require.NoError(t, err)

	assert.Equal(t, sec.RoleUser, user.Role)
	assert.NotEmpty(t, user.ID)
}

func TestCreate_RoleAssignable(t *testing.T) {
	service, _ := newTestService()

	user, err := service.Create(context.Background(), account.CreateInput{
		Username: "mod",
		Email:    "mod@example.com",
		Role:     sec.RoleModerator,
	})
	require.NoError(t, err)

	assert.Equal(t, sec.RoleModerator, user.Role)
}

func TestUpdate_AdminMayChangeRole(t *testing.T) {
	service, _ := newTestService()
	ctx := context.Background()

	_, err := service.Create(ctx, account.CreateInput{Username: "critic", Email: "critic@example.com"})
	require.NoError(t, err)

	updated, err := service.Update(ctx, "critic", account.UpdateInput{
		Role: pointer.To(sec.RoleModerator),
	})
	require.NoError(t, err)

	assert.Equal(t, sec.RoleModerator, updated.Role)
}

func TestDelete_UnknownUserIsNotFound(t *testing.T) {
	service, _ := newTestService()

	err := service.Delete(context.Background(), "ghost")

	appError := apperr.As(err)
	require.NotNil(t, appError)
	assert.Equal(t, "NOT_FOUND", appError.Code)
}

func TestList_SearchFilters(t *testing.T) {
	service, _ := newTestService()
	ctx := context.Background()

	for _, username := range []string{"alice", "alicia", "bob"} {
		_, err := service.Create(ctx, account.CreateInput{Username: username, Email: username + "@example.com"})
		require.NoError(t, err)
	}

	users, total, err := service.List(ctx, "alic", 10, 0)
	require.NoError(t, err)
	assert.Equal(t, 2, total)
	require.Len(t, users, 2)
	assert.Equal(t, "alice", users[0].Username)
	assert.Equal(t, "alicia", users[1].Username)
}

// # Self Path Tests

/*
TestUpdateSelf_RoleSilentlyIgnored: a self-update carrying a role change must
succeed, apply the profile fields, and leave the role untouched.
*/
func TestUpdateSelf_RoleSilentlyIgnored(t *testing.T) {
	service, _ := newTestService()
	ctx := context.Background()

	user, err := service.Create(ctx, account.CreateInput{Username: "critic", Email: "critic@example.com"})
	require.NoError(t, err)

	updated, err := service.UpdateSelf(ctx, user.ID, account.UpdateInput{
		Bio:  pointer.To("I review things."),
		Role: pointer.To(sec.RoleAdmin),
	})
	require.NoError(t, err)

	assert.Equal(t, "I review things.", updated.Bio)
	assert.Equal(t, sec.RoleUser, updated.Role, "role must not be escalatable via self-update")
}

func TestUpdateSelf_PartialFields(t *testing.T) {
	service, _ := newTestService()
	ctx := context.Background()

	user, err := service.Create(ctx, account.CreateInput{
		Username:  "critic",
		Email:     "critic@example.com",
		FirstName: "Ann",
	})
	require.NoError(t, err)

	updated, err := service.UpdateSelf(ctx, user.ID, account.UpdateInput{
		LastName: pointer.To("Kharina"),
	})
	require.NoError(t, err)

	assert.Equal(t, "Ann", updated.FirstName, "untouched fields survive a partial update")
	assert.Equal(t, "Kharina", updated.LastName)
	assert.Equal(t, "critic@example.com", updated.Email)
}

func TestGetSelf_UnknownID(t *testing.T) {
	service, _ := newTestService()

	_, err := service.GetSelf(context.Background(), "missing-id")

	appError := apperr.As(err)
	require.NotNil(t, appError)
	assert.Equal(t, "NOT_FOUND", appError.Code)
}

// # Projection Tests

func TestNewProfileView(t *testing.T) {
	user := &auth.User{
		ID:          "id-1",
		Username:    "critic",
		Email:       "critic@example.com",
		FirstName:   "Ann",
		Bio:         "bio",
		Role:        sec.RoleModerator,
		IsSuperuser: true,
	}

	view := account.NewProfileView(user)

	assert.Equal(t, "critic", view.Username)
	assert.Equal(t, "critic@example.com", view.Email)
	assert.Equal(t, string(sec.RoleModerator), string(view.Role))
}
