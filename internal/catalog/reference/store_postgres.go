// Copyright (c) 2026 Kritika. All rights reserved.
// Author: anton.kharin.dev@gmail.com

package reference

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/antonkh/kritika/internal/platform/apperr"
	"github.com/antonkh/kritika/internal/platform/dberr"
)

// PostgresRepository persists categories and genres. The two taxonomies are
// structurally identical, so the SQL is shared and parameterized by table.
type PostgresRepository struct {
	db *pgxpool.Pool
}

// NewPostgresRepository constructs a repository backed by the given pool.
func NewPostgresRepository(db *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{db: db}
}

const (
	tableCategory = "catalog.category"
	tableGenre    = "catalog.genre"
)

// # Categories

func (repository *PostgresRepository) ListCategories(ctx context.Context, search string, limit, offset int) ([]*Category, int, error) {
	rows, total, err := repository.listTaxonomy(ctx, tableCategory, search, limit, offset)
	if err != nil {
		return nil, 0, err
	}

	categories := make([]*Category, 0, len(rows))
	for _, row := range rows {
		categories = append(categories, &Category{ID: row.id, Name: row.name, Slug: row.slug, CreatedAt: row.createdAt})
	}
	return categories, total, nil
}

func (repository *PostgresRepository) FindCategoryBySlug(ctx context.Context, slug string) (*Category, error) {
	row, err := repository.findTaxonomy(ctx, tableCategory, slug)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperr.NotFound("Category")
		}
		return nil, dberr.Wrap(err, "find_category")
	}
	return &Category{ID: row.id, Name: row.name, Slug: row.slug, CreatedAt: row.createdAt}, nil
}

func (repository *PostgresRepository) CreateCategory(ctx context.Context, category *Category) error {
	return repository.insertTaxonomy(ctx, tableCategory, category.Name, category.Slug, &category.ID, &category.CreatedAt)
}

func (repository *PostgresRepository) DeleteCategory(ctx context.Context, slug string) error {
	return repository.deleteTaxonomy(ctx, tableCategory, slug, "Category")
}

// # Genres

func (repository *PostgresRepository) ListGenres(ctx context.Context, search string, limit, offset int) ([]*Genre, int, error) {
	rows, total, err := repository.listTaxonomy(ctx, tableGenre, search, limit, offset)
	if err != nil {
		return nil, 0, err
	}

	genres := make([]*Genre, 0, len(rows))
	for _, row := range rows {
		genres = append(genres, &Genre{ID: row.id, Name: row.name, Slug: row.slug, CreatedAt: row.createdAt})
	}
	return genres, total, nil
}

func (repository *PostgresRepository) FindGenreBySlug(ctx context.Context, slug string) (*Genre, error) {
	row, err := repository.findTaxonomy(ctx, tableGenre, slug)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperr.NotFound("Genre")
		}
		return nil, dberr.Wrap(err, "find_genre")
	}
	return &Genre{ID: row.id, Name: row.name, Slug: row.slug, CreatedAt: row.createdAt}, nil
}

func (repository *PostgresRepository) CreateGenre(ctx context.Context, genre *Genre) error {
	return repository.insertTaxonomy(ctx, tableGenre, genre.Name, genre.Slug, &genre.ID, &genre.CreatedAt)
}

func (repository *PostgresRepository) DeleteGenre(ctx context.Context, slug string) error {
	return repository.deleteTaxonomy(ctx, tableGenre, slug, "Genre")
}

// # Shared SQL

type taxonomyRow struct {
	id        int
	name      string
	slug      string
	createdAt time.Time
}

func (repository *PostgresRepository) listTaxonomy(ctx context.Context, table, search string, limit, offset int) ([]taxonomyRow, int, error) {
	query := fmt.Sprintf(`
		SELECT id, name, slug, createdat, COUNT(*) OVER() AS total
		FROM %s
		WHERE ($1 = '' OR name ILIKE '%%' || $1 || '%%')
		ORDER BY name ASC
		LIMIT $2 OFFSET $3`, table)

	rows, err := repository.db.Query(ctx, query, search, limit, offset)
	if err != nil {
		return nil, 0, dberr.Wrap(err, "list_taxonomy")
	}
	defer rows.Close()

	var (
		results []taxonomyRow
		total   int
	)
	for rows.Next() {
		var row taxonomyRow
		if err := rows.Scan(&row.id, &row.name, &row.slug, &row.createdAt, &total); err != nil {
			return nil, 0, dberr.Wrap(err, "scan_taxonomy")
		}
		results = append(results, row)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, dberr.Wrap(err, "iterate_taxonomy")
	}

	return results, total, nil
}

func (repository *PostgresRepository) findTaxonomy(ctx context.Context, table, slug string) (taxonomyRow, error) {
	query := fmt.Sprintf(`SELECT id, name, slug, createdat FROM %s WHERE slug = $1`, table)

	var row taxonomyRow
	err := repository.db.QueryRow(ctx, query, slug).Scan(&row.id, &row.name, &row.slug, &row.createdAt)
	return row, err
}

func (repository *PostgresRepository) insertTaxonomy(ctx context.Context, table, name, slug string, id *int, createdAt *time.Time) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (name, slug)
		VALUES ($1, $2)
		RETURNING id, createdat`, table)

	if err := repository.db.QueryRow(ctx, query, name, slug).Scan(id, createdAt); err != nil {
		return dberr.Wrap(err, "insert_taxonomy")
	}
	return nil
}

func (repository *PostgresRepository) deleteTaxonomy(ctx context.Context, table, slug, resource string) error {
	query := fmt.Sprintf(`DELETE FROM %s WHERE slug = $1`, table)

	tag, err := repository.db.Exec(ctx, query, slug)
	if err != nil {
		return dberr.Wrap(err, "delete_taxonomy")
	}
	if tag.RowsAffected() == 0 {
		return apperr.NotFound(resource)
	}
	return nil
}
