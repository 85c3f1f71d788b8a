// Copyright (c) 2026 Kritika. All rights reserved.
// Author: anton.kharin.dev@gmail.com

package reference_test

import (
	"context"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/antonkh/kritika/internal/catalog/reference"
	"github.com/antonkh/kritika/internal/platform/apperr"
)

// # In-Memory Fake
//
// One fake backs both repository contracts, mirroring the production
// repository which serves categories and genres from one type.

type fakeTaxonomyRepo struct {
	nextID     int
	categories map[string]*reference.Category
	genres     map[string]*reference.Genre
}

func newFakeTaxonomyRepo() *fakeTaxonomyRepo {
	return &fakeTaxonomyRepo{
		categories: make(map[string]*reference.Category),
		genres:     make(map[string]*reference.Genre),
	}
}

func (repo *fakeTaxonomyRepo) ListCategories(_ context.Context, search string, limit, offset int) ([]*reference.Category, int, error) {
	var matched []*reference.Category
	for _, category := range repo.categories {
		matched = append(matched, category)
	}
	return matched, len(matched), nil
}

func (repo *fakeTaxonomyRepo) FindCategoryBySlug(_ context.Context, slug string) (*reference.Category, error) {
	if category, ok := repo.categories[slug]; ok {
		return category, nil
	}
	return nil, apperr.NotFound("Category")
}

func (repo *fakeTaxonomyRepo) CreateCategory(_ context.Context, category *reference.Category) error {
	if _, ok := repo.categories[category.Slug]; ok {
		return apperr.Conflict("Category slug is already in use")
	}
	repo.nextID++
	category.ID = repo.nextID
	repo.categories[category.Slug] = category
	return nil
}

func (repo *fakeTaxonomyRepo) DeleteCategory(_ context.Context, slug string) error {
	if _, ok := repo.categories[slug]; !ok {
		return apperr.NotFound("Category")
	}
	delete(repo.categories, slug)
	return nil
}

func (repo *fakeTaxonomyRepo) ListGenres(_ context.Context, search string, limit, offset int) ([]*reference.Genre, int, error) {
	var matched []*reference.Genre
	for _, genre := range repo.genres {
		matched = append(matched, genre)
	}
	return matched, len(matched), nil
}

func (repo *fakeTaxonomyRepo) FindGenreBySlug(_ context.Context, slug string) (*reference.Genre, error) {
	if genre, ok := repo.genres[slug]; ok {
		return genre, nil
	}
	return nil, apperr.NotFound("Genre")
}

func (repo *fakeTaxonomyRepo) CreateGenre(_ context.Context, genre *reference.Genre) error {
	if _, ok := repo.genres[genre.Slug]; ok {
		return apperr.Conflict("Genre slug is already in use")
	}
	repo.nextID++
	genre.ID = repo.nextID
	repo.genres[genre.Slug] = genre
	return nil
}

func (repo *fakeTaxonomyRepo) DeleteGenre(_ context.Context, slug string) error {
	if _, ok := repo.genres[slug]; !ok {
		return apperr.NotFound("Genre")
	}
	delete(repo.genres, slug)
	return nil
}

func newTestService() (*reference.Service, *fakeTaxonomyRepo) {
	repo := newFakeTaxonomyRepo()
	return reference.NewService(repo, repo, slog.Default()), repo
}

// # Tests

func TestCreateCategory_ExplicitSlug(t *testing.T) {
	service, _ := newTestService()

	category, err := service.CreateCategory(context.Background(), reference.CreateInput{
		Name: "Movies",
		Slug: "films",
	})
	require.NoError(t, err)

	assert.Equal(t, "films", category.Slug)
}

/*
TestCreateCategory_DerivedSlug: with no explicit slug the service derives a
URL-safe one from the display name.
*/
func TestCreateCategory_DerivedSlug(t *testing.T) {
	service, _ := newTestService()

	category, err := service.CreateCategory(context.Background(), reference.CreateInput{
		Name: "Science Fiction & Fantasy",
	})
	require.NoError(t, err)

	assert.Equal(t, "science-fiction-fantasy", category.Slug)
}

func TestCreateGenre_DuplicateSlugConflict(t *testing.T) {
	service, _ := newTestService()
	ctx := context.Background()

	_, err := service.CreateGenre(ctx, reference.CreateInput{Name: "Drama"})
	require.NoError(t, err)

	_, err = service.CreateGenre(ctx, reference.CreateInput{Name: "Drama!!"})
	appError := apperr.As(err)
	require.NotNil(t, appError)
	assert.Equal(t, "CONFLICT", appError.Code)
}

func TestDeleteCategory_Unknown(t *testing.T) {
	service, _ := newTestService()

	err := service.DeleteCategory(context.Background(), "missing")

	appError := apperr.As(err)
	require.NotNil(t, appError)
	assert.Equal(t, "NOT_FOUND", appError.Code)
}

func TestDeleteGenre_RemovesEntry(t *testing.T) {
	service, repo := newTestService()
	ctx := context.Background()

	genre, err := service.CreateGenre(ctx, reference.CreateInput{Name: "Drama"})
	require.NoError(t, err)

	require.NoError(t, service.DeleteGenre(ctx, genre.Slug))
	assert.Empty(t, repo.genres)
}
