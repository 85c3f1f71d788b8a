// Copyright (c) 2026 Kritika. All rights reserved.
// Author: anton.kharin.dev@gmail.com

package review

import "context"

// ReviewRepository abstracts persistence for title reviews.
//
// CreateReview must surface a storage-level uniqueness violation on the
// (title, author) pair as a conflict; callers never pre-check.
type ReviewRepository interface {
	ListReviews(ctx context.Context, titleID, limit, offset int) ([]*Review, int, error)
	FindReview(ctx context.Context, titleID, reviewID int) (*Review, error)
	CreateReview(ctx context.Context, review *Review) error
	UpdateReview(ctx context.Context, review *Review) error
	DeleteReview(ctx context.Context, titleID, reviewID int) error
	AverageScore(ctx context.Context, titleID int) (*float64, error)
}

// CommentRepository abstracts persistence for review comments.
type CommentRepository interface {
	ListComments(ctx context.Context, reviewID, limit, offset int) ([]*Comment, int, error)
	FindComment(ctx context.Context, reviewID, commentID int) (*Comment, error)
	CreateComment(ctx context.Context, comment *Comment) error
	UpdateComment(ctx context.Context, comment *Comment) error
	DeleteComment(ctx context.Context, reviewID, commentID int) error
}
