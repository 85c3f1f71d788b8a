// Copyright (c) 2026 Kritika. All rights reserved.
// Author: anton.kharin.dev@gmail.com

package reference

import "context"

// CategoryRepository abstracts persistence for catalog categories.
type CategoryRepository interface {
	ListCategories(ctx context.Context, search string, limit, offset int) ([]*Category, int, error)
	FindCategoryBySlug(ctx context.Context, slug string) (*Category, error)
	CreateCategory(ctx context.Context, category *Category) error
	DeleteCategory(ctx context.Context, slug string) error
}

// GenreRepository abstracts persistence for catalog genres.
type GenreRepository interface {
	ListGenres(ctx context.Context, search string, limit, offset int) ([]*Genre, int, error)
	FindGenreBySlug(ctx context.Context, slug string) (*Genre, error)
	CreateGenre(ctx context.Context, genre *Genre) error
	DeleteGenre(ctx context.Context, slug string) error
}
