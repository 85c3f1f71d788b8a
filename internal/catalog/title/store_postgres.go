// Copyright (c) 2026 Kritika. All rights reserved.
// Author: anton.kharin.dev@gmail.com

package title

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/antonkh/kritika/internal/catalog/reference"
	"github.com/antonkh/kritika/internal/platform/apperr"
	"github.com/antonkh/kritika/internal/platform/dberr"
)

// PostgresRepository persists titles and their genre links.
type PostgresRepository struct {
	db *pgxpool.Pool
}

// NewPostgresRepository constructs a repository backed by the given pool.
func NewPostgresRepository(db *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// ratingJoin computes the average review score per title. AVG over an empty
// set is NULL, which scans into a nil *float64.
const ratingJoin = `
	LEFT JOIN (
		SELECT titleid, AVG(score)::float8 AS rating
		FROM social.review
		GROUP BY titleid
	) r ON r.titleid = t.id`

func (repository *PostgresRepository) List(ctx context.Context, filter Filter, limit, offset int) ([]*Title, int, error) {
	query := `
		SELECT t.id, t.name, t.year, t.description, t.createdat,
		       c.id, c.name, c.slug,
		       r.rating,
		       COUNT(*) OVER() AS total
		FROM catalog.title t
		JOIN catalog.category c ON t.categoryid = c.id` + ratingJoin + `
		WHERE ($1 = '' OR c.slug = $1)
		  AND ($2 = '' OR EXISTS (
		      SELECT 1 FROM catalog.titlegenre tg
		      JOIN catalog.genre g ON g.id = tg.genreid
		      WHERE tg.titleid = t.id AND g.slug = $2))
		  AND ($3 = '' OR t.name ILIKE '%' || $3 || '%')
		  AND ($4 = 0 OR t.year = $4)
		ORDER BY t.name ASC, t.id ASC
		LIMIT $5 OFFSET $6`

	rows, err := repository.db.Query(ctx, query,
		filter.CategorySlug, filter.GenreSlug, filter.Name, filter.Year, limit, offset)
	if err != nil {
		return nil, 0, dberr.Wrap(err, "list_titles")
	}
	defer rows.Close()

	var (
		titles []*Title
		total  int
	)
	for rows.Next() {
		title := &Title{Category: &reference.Category{}, Genres: make([]reference.Genre, 0)}
		if err := rows.Scan(
			&title.ID, &title.Name, &title.Year, &title.Description, &title.CreatedAt,
			&title.Category.ID, &title.Category.Name, &title.Category.Slug,
			&title.Rating, &total,
		); err != nil {
			return nil, 0, dberr.Wrap(err, "scan_title")
		}
		titles = append(titles, title)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, dberr.Wrap(err, "iterate_titles")
	}
	rows.Close()

	if err := repository.attachGenres(ctx, titles); err != nil {
		return nil, 0, err
	}

	return titles, total, nil
}

func (repository *PostgresRepository) FindByID(ctx context.Context, id int) (*Title, error) {
	query := `
		SELECT t.id, t.name, t.year, t.description, t.createdat,
		       c.id, c.name, c.slug,
		       r.rating
		FROM catalog.title t
		JOIN catalog.category c ON t.categoryid = c.id` + ratingJoin + `
		WHERE t.id = $1`

	title := &Title{Category: &reference.Category{}, Genres: make([]reference.Genre, 0)}
	err := repository.db.QueryRow(ctx, query, id).Scan(
		&title.ID, &title.Name, &title.Year, &title.Description, &title.CreatedAt,
		&title.Category.ID, &title.Category.Name, &title.Category.Slug,
		&title.Rating,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperr.NotFound("Title")
		}
		return nil, dberr.Wrap(err, "find_title")
	}

	if err := repository.attachGenres(ctx, []*Title{title}); err != nil {
		return nil, err
	}

	return title, nil
}

func (repository *PostgresRepository) Create(ctx context.Context, title *Title, genreIDs []int) error {
	tx, err := repository.db.Begin(ctx)
	if err != nil {
		return dberr.Wrap(err, "begin_create_title")
	}
	defer tx.Rollback(ctx)

	const insertTitle = `
		INSERT INTO catalog.title (name, year, description, categoryid)
		VALUES ($1, $2, $3, $4)
		RETURNING id, createdat`

	err = tx.QueryRow(ctx, insertTitle,
		title.Name, title.Year, title.Description, title.Category.ID,
	).Scan(&title.ID, &title.CreatedAt)
	if err != nil {
		return dberr.Wrap(err, "insert_title")
	}

	if err := insertGenreLinks(ctx, tx, title.ID, genreIDs); err != nil {
		return err
	}

	if err := tx.Commit(ctx); err != nil {
		return dberr.Wrap(err, "commit_create_title")
	}
	return nil
}

func (repository *PostgresRepository) Update(ctx context.Context, title *Title, genreIDs []int, replaceGenres bool) error {
	tx, err := repository.db.Begin(ctx)
	if err != nil {
		return dberr.Wrap(err, "begin_update_title")
	}
	defer tx.Rollback(ctx)

	const updateTitle = `
		UPDATE catalog.title
		SET name = $2, year = $3, description = $4, categoryid = $5
		WHERE id = $1`

	tag, err := tx.Exec(ctx, updateTitle,
		title.ID, title.Name, title.Year, title.Description, title.Category.ID)
	if err != nil {
		return dberr.Wrap(err, "update_title")
	}
	if tag.RowsAffected() == 0 {
		return apperr.NotFound("Title")
	}

	if replaceGenres {
		if _, err := tx.Exec(ctx, `DELETE FROM catalog.titlegenre WHERE titleid = $1`, title.ID); err != nil {
			return dberr.Wrap(err, "clear_title_genres")
		}
		if err := insertGenreLinks(ctx, tx, title.ID, genreIDs); err != nil {
			return err
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return dberr.Wrap(err, "commit_update_title")
	}
	return nil
}

func (repository *PostgresRepository) Delete(ctx context.Context, id int) error {
	tag, err := repository.db.Exec(ctx, `DELETE FROM catalog.title WHERE id = $1`, id)
	if err != nil {
		return dberr.Wrap(err, "delete_title")
	}
	if tag.RowsAffected() == 0 {
		return apperr.NotFound("Title")
	}
	return nil
}

// insertGenreLinks records the many-to-many genre attachments for a title.
func insertGenreLinks(ctx context.Context, tx pgx.Tx, titleID int, genreIDs []int) error {
	for _, genreID := range genreIDs {
		_, err := tx.Exec(ctx,
			`INSERT INTO catalog.titlegenre (titleid, genreid) VALUES ($1, $2)`,
			titleID, genreID)
		if err != nil {
			return dberr.Wrap(err, "insert_title_genre")
		}
	}
	return nil
}

// attachGenres batch-loads the genres for every title in the slice.
func (repository *PostgresRepository) attachGenres(ctx context.Context, titles []*Title) error {
	if len(titles) == 0 {
		return nil
	}

	titleIDs := make([]int, 0, len(titles))
	byID := make(map[int]*Title, len(titles))
	for _, title := range titles {
		titleIDs = append(titleIDs, title.ID)
		byID[title.ID] = title
	}

	const query = `
		SELECT tg.titleid, g.id, g.name, g.slug
		FROM catalog.titlegenre tg
		JOIN catalog.genre g ON g.id = tg.genreid
		WHERE tg.titleid = ANY($1)
		ORDER BY g.name ASC`

	rows, err := repository.db.Query(ctx, query, titleIDs)
	if err != nil {
		return dberr.Wrap(err, "list_title_genres")
	}
	defer rows.Close()

	for rows.Next() {
		var (
			titleID int
			genre   reference.Genre
		)
		if err := rows.Scan(&titleID, &genre.ID, &genre.Name, &genre.Slug); err != nil {
			return dberr.Wrap(err, "scan_title_genre")
		}
		if title, ok := byID[titleID]; ok {
			title.Genres = append(title.Genres, genre)
		}
	}
	return rows.Err()
}
