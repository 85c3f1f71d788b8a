// Copyright (c) 2026 Kritika. All rights reserved.
// Author: anton.kharin.dev@gmail.com

package review

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/antonkh/kritika/internal/platform/apperr"
	"github.com/antonkh/kritika/internal/platform/dberr"
)

// PostgresRepository persists reviews and comments. Review rows join the
// author's account to expose the username without a second round trip.
type PostgresRepository struct {
	db *pgxpool.Pool
}

// NewPostgresRepository constructs a repository backed by the given pool.
func NewPostgresRepository(db *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// # Reviews

func (repository *PostgresRepository) ListReviews(ctx context.Context, titleID, limit, offset int) ([]*Review, int, error) {
	const query = `
		SELECT r.id, r.titleid, r.authorid, a.username, r.text, r.score, r.createdat,
		       COUNT(*) OVER() AS total
		FROM social.review r
		JOIN users.account a ON a.id = r.authorid
		WHERE r.titleid = $1
		ORDER BY r.id ASC
		LIMIT $2 OFFSET $3`

	rows, err := repository.db.Query(ctx, query, titleID, limit, offset)
	if err != nil {
		return nil, 0, dberr.Wrap(err, "list_reviews")
	}
	defer rows.Close()

	var (
		reviews []*Review
		total   int
	)
	for rows.Next() {
		review := &Review{}
		if err := rows.Scan(
			&review.ID, &review.TitleID, &review.AuthorID, &review.Author,
			&review.Text, &review.Score, &review.CreatedAt, &total,
		); err != nil {
			return nil, 0, dberr.Wrap(err, "scan_review")
		}
		reviews = append(reviews, review)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, dberr.Wrap(err, "iterate_reviews")
	}

	return reviews, total, nil
}

func (repository *PostgresRepository) FindReview(ctx context.Context, titleID, reviewID int) (*Review, error) {
	const query = `
		SELECT r.id, r.titleid, r.authorid, a.username, r.text, r.score, r.createdat
		FROM social.review r
		JOIN users.account a ON a.id = r.authorid
		WHERE r.titleid = $1 AND r.id = $2`

	review := &Review{}
	err := repository.db.QueryRow(ctx, query, titleID, reviewID).Scan(
		&review.ID, &review.TitleID, &review.AuthorID, &review.Author,
		&review.Text, &review.Score, &review.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperr.NotFound("Review")
		}
		return nil, dberr.Wrap(err, "find_review")
	}
	return review, nil
}

// CreateReview inserts the row and lets the social_review_title_author_key
// constraint reject a second review by the same author.
func (repository *PostgresRepository) CreateReview(ctx context.Context, review *Review) error {
	const query = `
		INSERT INTO social.review (titleid, authorid, text, score)
		VALUES ($1, $2, $3, $4)
		RETURNING id, createdat`

	err := repository.db.QueryRow(ctx, query,
		review.TitleID, review.AuthorID, review.Text, review.Score,
	).Scan(&review.ID, &review.CreatedAt)
	if err != nil {
		return dberr.Wrap(err, "insert_review")
	}
	return nil
}

func (repository *PostgresRepository) UpdateReview(ctx context.Context, review *Review) error {
	const query = `
		UPDATE social.review
		SET text = $2, score = $3
		WHERE id = $1`

	tag, err := repository.db.Exec(ctx, query, review.ID, review.Text, review.Score)
	if err != nil {
		return dberr.Wrap(err, "update_review")
	}
	if tag.RowsAffected() == 0 {
		return apperr.NotFound("Review")
	}
	return nil
}

func (repository *PostgresRepository) DeleteReview(ctx context.Context, titleID, reviewID int) error {
	const query = `DELETE FROM social.review WHERE titleid = $1 AND id = $2`

	tag, err := repository.db.Exec(ctx, query, titleID, reviewID)
	if err != nil {
		return dberr.Wrap(err, "delete_review")
	}
	if tag.RowsAffected() == 0 {
		return apperr.NotFound("Review")
	}
	return nil
}

// AverageScore computes the mean review score for a title at read time.
// Returns nil when the title has no reviews.
func (repository *PostgresRepository) AverageScore(ctx context.Context, titleID int) (*float64, error) {
	const query = `SELECT AVG(score)::float8 FROM social.review WHERE titleid = $1`

	var average *float64
	if err := repository.db.QueryRow(ctx, query, titleID).Scan(&average); err != nil {
		return nil, dberr.Wrap(err, "average_score")
	}
	return average, nil
}

// # Comments

func (repository *PostgresRepository) ListComments(ctx context.Context, reviewID, limit, offset int) ([]*Comment, int, error) {
	const query = `
		SELECT c.id, c.reviewid, c.authorid, a.username, c.text, c.createdat,
		       COUNT(*) OVER() AS total
		FROM social.comment c
		JOIN users.account a ON a.id = c.authorid
		WHERE c.reviewid = $1
		ORDER BY c.id ASC
		LIMIT $2 OFFSET $3`

	rows, err := repository.db.Query(ctx, query, reviewID, limit, offset)
	if err != nil {
		return nil, 0, dberr.Wrap(err, "list_comments")
	}
	defer rows.Close()

	var (
		comments []*Comment
		total    int
	)
	for rows.Next() {
		comment := &Comment{}
		if err := rows.Scan(
			&comment.ID, &comment.ReviewID, &comment.AuthorID, &comment.Author,
			&comment.Text, &comment.CreatedAt, &total,
		); err != nil {
			return nil, 0, dberr.Wrap(err, "scan_comment")
		}
		comments = append(comments, comment)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, dberr.Wrap(err, "iterate_comments")
	}

	return comments, total, nil
}

func (repository *PostgresRepository) FindComment(ctx context.Context, reviewID, commentID int) (*Comment, error) {
	const query = `
		SELECT c.id, c.reviewid, c.authorid, a.username, c.text, c.createdat
		FROM social.comment c
		JOIN users.account a ON a.id = c.authorid
		WHERE c.reviewid = $1 AND c.id = $2`

	comment := &Comment{}
	err := repository.db.QueryRow(ctx, query, reviewID, commentID).Scan(
		&comment.ID, &comment.ReviewID, &comment.AuthorID, &comment.Author,
		&comment.Text, &comment.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperr.NotFound("Comment")
		}
		return nil, dberr.Wrap(err, "find_comment")
	}
	return comment, nil
}

func (repository *PostgresRepository) CreateComment(ctx context.Context, comment *Comment) error {
	const query = `
		INSERT INTO social.comment (reviewid, authorid, text)
		VALUES ($1, $2, $3)
		RETURNING id, createdat`

	err := repository.db.QueryRow(ctx, query,
		comment.ReviewID, comment.AuthorID, comment.Text,
	).Scan(&comment.ID, &comment.CreatedAt)
	if err != nil {
		return dberr.Wrap(err, "insert_comment")
	}
	return nil
}

func (repository *PostgresRepository) UpdateComment(ctx context.Context, comment *Comment) error {
	const query = `
		UPDATE social.comment
		SET text = $2
		WHERE id = $1`

	tag, err := repository.db.Exec(ctx, query, comment.ID, comment.Text)
	if err != nil {
		return dberr.Wrap(err, "update_comment")
	}
	if tag.RowsAffected() == 0 {
		return apperr.NotFound("Comment")
	}
	return nil
}

func (repository *PostgresRepository) DeleteComment(ctx context.Context, reviewID, commentID int) error {
	const query = `DELETE FROM social.comment WHERE reviewid = $1 AND id = $2`

	tag, err := repository.db.Exec(ctx, query, reviewID, commentID)
	if err != nil {
		return dberr.Wrap(err, "delete_comment")
	}
	if tag.RowsAffected() == 0 {
		return apperr.NotFound("Comment")
	}
	return nil
}
