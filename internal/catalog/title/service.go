// Copyright (c) 2026 Kritika. All rights reserved.
// Author: anton.kharin.dev@gmail.com

package title

import (
	"context"
	"log/slog"

	"github.com/antonkh/kritika/internal/catalog/reference"
	"github.com/antonkh/kritika/internal/platform/apperr"
	"github.com/antonkh/kritika/pkg/pointer"
)

// Service implements title management on top of the taxonomy repositories.
type Service struct {
	titles     Repository
	categories reference.CategoryRepository
	genres     reference.GenreRepository
	logger     *slog.Logger
}

// NewService constructs a title [Service].
func NewService(titles Repository, categories reference.CategoryRepository, genres reference.GenreRepository, logger *slog.Logger) *Service {
	return &Service{
		titles:     titles,
		categories: categories,
		genres:     genres,
		logger:     logger,
	}
}

// CreateInput carries the fields for a new title. Category and genres are
// referenced by slug.
type CreateInput struct {
	Name         string
	Year         int
	Description  string
	CategorySlug string
	GenreSlugs   []string
}

// UpdateInput carries a partial title update. Nil fields are unchanged; a
// non-nil GenreSlugs replaces the full genre set.
type UpdateInput struct {
	Name         *string
	Year         *int
	Description  *string
	CategorySlug *string
	GenreSlugs   *[]string
}

func (service *Service) List(ctx context.Context, filter Filter, limit, offset int) ([]*Title, int, error) {
	return service.titles.List(ctx, filter, limit, offset)
}

func (service *Service) Get(ctx context.Context, id int) (*Title, error) {
	return service.titles.FindByID(ctx, id)
}

func (service *Service) Create(ctx context.Context, input CreateInput) (*Title, error) {
	category, err := service.resolveCategory(ctx, input.CategorySlug)
	if err != nil {
		return nil, err
	}

	genres, genreIDs, err := service.resolveGenres(ctx, input.GenreSlugs)
	if err != nil {
		return nil, err
	}

	title := &Title{
		Name:        input.Name,
		Year:        input.Year,
		Description: input.Description,
		Category:    category,
		Genres:      genres,
	}

	if err := service.titles.Create(ctx, title, genreIDs); err != nil {
		return nil, err
	}

	service.logger.InfoContext(ctx, "title_created",
		slog.Int("title_id", title.ID),
		slog.String("category", category.Slug),
	)
	return title, nil
}

func (service *Service) Update(ctx context.Context, id int, input UpdateInput) (*Title, error) {
	title, err := service.titles.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	title.Name = pointer.Fallback(input.Name, title.Name)
	title.Year = pointer.Fallback(input.Year, title.Year)
	title.Description = pointer.Fallback(input.Description, title.Description)

	if input.CategorySlug != nil {
		category, err := service.resolveCategory(ctx, *input.CategorySlug)
		if err != nil {
			return nil, err
		}
		title.Category = category
	}

	var (
		genreIDs      []int
		replaceGenres bool
	)
	if input.GenreSlugs != nil {
		genres, ids, err := service.resolveGenres(ctx, *input.GenreSlugs)
		if err != nil {
			return nil, err
		}
		title.Genres = genres
		genreIDs = ids
		replaceGenres = true
	}

	if err := service.titles.Update(ctx, title, genreIDs, replaceGenres); err != nil {
		return nil, err
	}

	return title, nil
}

func (service *Service) Delete(ctx context.Context, id int) error {
	if err := service.titles.Delete(ctx, id); err != nil {
		return err
	}

	service.logger.InfoContext(ctx, "title_deleted", slog.Int("title_id", id))
	return nil
}

// resolveCategory maps a category slug onto its stored row. A slug that does
// not resolve is a payload problem, not a missing resource.
func (service *Service) resolveCategory(ctx context.Context, slug string) (*reference.Category, error) {
	category, err := service.categories.FindCategoryBySlug(ctx, slug)
	if err != nil {
		if appError := apperr.As(err); appError != nil && appError.Code == "NOT_FOUND" {
			return nil, apperr.ValidationError("Unknown category slug",
				apperr.FieldError{Field: FieldCategory, Message: "category does not exist"})
		}
		return nil, err
	}
	return category, nil
}

// resolveGenres maps genre slugs onto stored rows, preserving input order.
func (service *Service) resolveGenres(ctx context.Context, slugs []string) ([]reference.Genre, []int, error) {
	genres := make([]reference.Genre, 0, len(slugs))
	genreIDs := make([]int, 0, len(slugs))

	for _, slug := range slugs {
		genre, err := service.genres.FindGenreBySlug(ctx, slug)
		if err != nil {
			if appError := apperr.As(err); appError != nil && appError.Code == "NOT_FOUND" {
				return nil, nil, apperr.ValidationError("Unknown genre slug",
					apperr.FieldError{Field: FieldGenre, Message: "genre does not exist: " + slug})
			}
			return nil, nil, err
		}
		genres = append(genres, *genre)
		genreIDs = append(genreIDs, genre.ID)
	}

	return genres, genreIDs, nil
}
