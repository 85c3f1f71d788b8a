// Copyright (c) 2026 Kritika. All rights reserved.
// Author: anton.kharin.dev@gmail.com

package review

import (
	"context"
	"log/slog"

	"github.com/antonkh/kritika/internal/catalog/title"
	"github.com/antonkh/kritika/internal/platform/apperr"
	"github.com/antonkh/kritika/internal/platform/sec"
	"github.com/antonkh/kritika/pkg/pointer"
)

// TitleDirectory is the slice of the catalog the review service needs:
// confirming that a title exists before listing or accepting reviews for it.
type TitleDirectory interface {
	FindByID(ctx context.Context, id int) (*title.Title, error)
}

// Caller identifies the acting user for authorization decisions. The zero
// value is an anonymous caller and is denied every mutation.
type Caller struct {
	ID          string
	Username    string
	Role        sec.UserRole
	IsSuperuser bool
}

// Service implements review and comment management.
type Service struct {
	reviews  ReviewRepository
	comments CommentRepository
	titles   TitleDirectory
	logger   *slog.Logger
}

// NewService constructs a review [Service].
func NewService(reviews ReviewRepository, comments CommentRepository, titles TitleDirectory, logger *slog.Logger) *Service {
	return &Service{
		reviews:  reviews,
		comments: comments,
		titles:   titles,
		logger:   logger,
	}
}

// ReviewInput carries the fields for a new review.
type ReviewInput struct {
	Text  string
	Score int
}

// ReviewPatch carries a partial review update. Nil fields are unchanged.
type ReviewPatch struct {
	Text  *string
	Score *int
}

// # Reviews

func (service *Service) ListReviews(ctx context.Context, titleID, limit, offset int) ([]*Review, int, error) {
	if _, err := service.titles.FindByID(ctx, titleID); err != nil {
		return nil, 0, err
	}
	return service.reviews.ListReviews(ctx, titleID, limit, offset)
}

func (service *Service) GetReview(ctx context.Context, titleID, reviewID int) (*Review, error) {
	return service.reviews.FindReview(ctx, titleID, reviewID)
}

// CreateReview stores a new review. The one-review-per-author rule is not
// pre-checked here; the insert either succeeds or comes back as a conflict
// from the unique constraint, so racing duplicates cannot both land.
func (service *Service) CreateReview(ctx context.Context, titleID int, caller Caller, input ReviewInput) (*Review, error) {
	if _, err := service.titles.FindByID(ctx, titleID); err != nil {
		return nil, err
	}

	review := &Review{
		TitleID:  titleID,
		AuthorID: caller.ID,
		Author:   caller.Username,
		Text:     input.Text,
		Score:    input.Score,
	}

	if err := service.reviews.CreateReview(ctx, review); err != nil {
		return nil, err
	}

	service.logger.InfoContext(ctx, "review_created",
		slog.Int("title_id", titleID),
		slog.Int("review_id", review.ID),
		slog.String("author_id", caller.ID),
	)
	return review, nil
}

func (service *Service) UpdateReview(ctx context.Context, titleID, reviewID int, caller Caller, patch ReviewPatch) (*Review, error) {
	review, err := service.reviews.FindReview(ctx, titleID, reviewID)
	if err != nil {
		return nil, err
	}

	if !sec.CanMutateOwned(caller.ID, review.AuthorID, caller.Role, caller.IsSuperuser) {
		return nil, apperr.Forbidden("You may only modify your own content")
	}

	review.Text = pointer.Fallback(patch.Text, review.Text)
	review.Score = pointer.Fallback(patch.Score, review.Score)

	if err := service.reviews.UpdateReview(ctx, review); err != nil {
		return nil, err
	}
	return review, nil
}

func (service *Service) DeleteReview(ctx context.Context, titleID, reviewID int, caller Caller) error {
	review, err := service.reviews.FindReview(ctx, titleID, reviewID)
	if err != nil {
		return err
	}

	if !sec.CanMutateOwned(caller.ID, review.AuthorID, caller.Role, caller.IsSuperuser) {
		return apperr.Forbidden("You may only modify your own content")
	}

	if err := service.reviews.DeleteReview(ctx, titleID, reviewID); err != nil {
		return err
	}

	service.logger.InfoContext(ctx, "review_deleted",
		slog.Int("review_id", reviewID),
		slog.String("actor_id", caller.ID),
	)
	return nil
}

// AverageScore returns the mean score for a title, nil when unreviewed.
func (service *Service) AverageScore(ctx context.Context, titleID int) (*float64, error) {
	return service.reviews.AverageScore(ctx, titleID)
}

// # Comments

func (service *Service) ListComments(ctx context.Context, titleID, reviewID, limit, offset int) ([]*Comment, int, error) {
	if _, err := service.reviews.FindReview(ctx, titleID, reviewID); err != nil {
		return nil, 0, err
	}
	return service.comments.ListComments(ctx, reviewID, limit, offset)
}

func (service *Service) GetComment(ctx context.Context, titleID, reviewID, commentID int) (*Comment, error) {
	if _, err := service.reviews.FindReview(ctx, titleID, reviewID); err != nil {
		return nil, err
	}
	return service.comments.FindComment(ctx, reviewID, commentID)
}

func (service *Service) CreateComment(ctx context.Context, titleID, reviewID int, caller Caller, text string) (*Comment, error) {
	if _, err := service.reviews.FindReview(ctx, titleID, reviewID); err != nil {
		return nil, err
	}

	comment := &Comment{
		ReviewID: reviewID,
		AuthorID: caller.ID,
		Author:   caller.Username,
		Text:     text,
	}

	if err := service.comments.CreateComment(ctx, comment); err != nil {
		return nil, err
	}

	service.logger.InfoContext(ctx, "comment_created",
		slog.Int("review_id", reviewID),
		slog.Int("comment_id", comment.ID),
		slog.String("author_id", caller.ID),
	)
	return comment, nil
}

func (service *Service) UpdateComment(ctx context.Context, titleID, reviewID, commentID int, caller Caller, text *string) (*Comment, error) {
	comment, err := service.GetComment(ctx, titleID, reviewID, commentID)
	if err != nil {
		return nil, err
	}

	if !sec.CanMutateOwned(caller.ID, comment.AuthorID, caller.Role, caller.IsSuperuser) {
		return nil, apperr.Forbidden("You may only modify your own content")
	}

	comment.Text = pointer.Fallback(text, comment.Text)

	if err := service.comments.UpdateComment(ctx, comment); err != nil {
		return nil, err
	}
	return comment, nil
}

func (service *Service) DeleteComment(ctx context.Context, titleID, reviewID, commentID int, caller Caller) error {
	comment, err := service.GetComment(ctx, titleID, reviewID, commentID)
	if err != nil {
		return err
	}

	if !sec.CanMutateOwned(caller.ID, comment.AuthorID, caller.Role, caller.IsSuperuser) {
		return apperr.Forbidden("You may only modify your own content")
	}

	if err := service.comments.DeleteComment(ctx, reviewID, commentID); err != nil {
		return err
	}

	service.logger.InfoContext(ctx, "comment_deleted",
		slog.Int("comment_id", commentID),
		slog.String("actor_id", caller.ID),
	)
	return nil
}
