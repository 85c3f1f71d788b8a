// Copyright (c) 2026 Kritika. All rights reserved.
// Author: anton.kharin.dev@gmail.com

package reference

import (
	"context"
	"log/slog"

	"github.com/antonkh/kritika/pkg/slug"
)

// Service implements taxonomy management.
type Service struct {
	categories CategoryRepository
	genres     GenreRepository
	logger     *slog.Logger
}

// NewService constructs a taxonomy [Service].
func NewService(categories CategoryRepository, genres GenreRepository, logger *slog.Logger) *Service {
	return &Service{
		categories: categories,
		genres:     genres,
		logger:     logger,
	}
}

// CreateInput carries the fields for a new taxonomy entry. An empty Slug is
// derived from Name.
type CreateInput struct {
	Name string
	Slug string
}

func (input CreateInput) resolvedSlug() string {
	if input.Slug != "" {
		return input.Slug
	}
	return slug.From(input.Name)
}

// # Categories

func (service *Service) ListCategories(ctx context.Context, search string, limit, offset int) ([]*Category, int, error) {
	return service.categories.ListCategories(ctx, search, limit, offset)
}

func (service *Service) CreateCategory(ctx context.Context, input CreateInput) (*Category, error) {
	category := &Category{Name: input.Name, Slug: input.resolvedSlug()}

	if err := service.categories.CreateCategory(ctx, category); err != nil {
		return nil, err
	}

	service.logger.InfoContext(ctx, "category_created", slog.String("slug", category.Slug))
	return category, nil
}

func (service *Service) DeleteCategory(ctx context.Context, slug string) error {
	if err := service.categories.DeleteCategory(ctx, slug); err != nil {
		return err
	}

	service.logger.InfoContext(ctx, "category_deleted", slog.String("slug", slug))
	return nil
}

// # Genres

func (service *Service) ListGenres(ctx context.Context, search string, limit, offset int) ([]*Genre, int, error) {
	return service.genres.ListGenres(ctx, search, limit, offset)
}

func (service *Service) CreateGenre(ctx context.Context, input CreateInput) (*Genre, error) {
	genre := &Genre{Name: input.Name, Slug: input.resolvedSlug()}

	if err := service.genres.CreateGenre(ctx, genre); err != nil {
		return nil, err
	}

	service.logger.InfoContext(ctx, "genre_created", slog.String("slug", genre.Slug))
	return genre, nil
}

func (service *Service) DeleteGenre(ctx context.Context, slug string) error {
	if err := service.genres.DeleteGenre(ctx, slug); err != nil {
		return err
	}

	service.logger.InfoContext(ctx, "genre_deleted", slog.String("slug", slug))
	return nil
}
