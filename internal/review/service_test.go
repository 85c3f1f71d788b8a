// Copyright (c) 2026 Kritika. All rights reserved.
// Author: anton.kharin.dev@gmail.com

package review_test

import (
	"context"
	"fmt"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/antonkh/kritika/internal/catalog/title"
	"github.com/antonkh/kritika/internal/platform/apperr"
	"github.com/antonkh/kritika/internal/platform/sec"
	"github.com/antonkh/kritika/internal/review"
)

// # In-Memory Fakes
//
// The fakes reproduce the storage contract the service relies on, most
// importantly the unique (title, author) pair on review inserts.

type fakeReviewRepo struct {
	nextID  int
	reviews map[int]*review.Review
}

func newFakeReviewRepo() *fakeReviewRepo {
	return &fakeReviewRepo{reviews: make(map[int]*review.Review)}
}

func (repo *fakeReviewRepo) ListReviews(_ context.Context, titleID, limit, offset int) ([]*review.Review, int, error) {
	var matched []*review.Review
	for id := 1; id <= repo.nextID; id++ {
		if stored, ok := repo.reviews[id]; ok && stored.TitleID == titleID {
			matched = append(matched, stored)
		}
	}
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

func (repo *fakeReviewRepo) FindReview(_ context.Context, titleID, reviewID int) (*review.Review, error) {
	stored, ok := repo.reviews[reviewID]
	if !ok || stored.TitleID != titleID {
		return nil, apperr.NotFound("Review")
	}
	clone := *stored
	return &clone, nil
}

func (repo *fakeReviewRepo) CreateReview(_ context.Context, newReview *review.Review) error {
	for _, stored := range repo.reviews {
		if stored.TitleID == newReview.TitleID && stored.AuthorID == newReview.AuthorID {
			return apperr.Conflict("You have already reviewed this title")
		}
	}
	repo.nextID++
	newReview.ID = repo.nextID
	clone := *newReview
	repo.reviews[newReview.ID] = &clone
	return nil
}

func (repo *fakeReviewRepo) UpdateReview(_ context.Context, updated *review.Review) error {
	stored, ok := repo.reviews[updated.ID]
	if !ok {
		return apperr.NotFound("Review")
	}
	stored.Text = updated.Text
	stored.Score = updated.Score
	return nil
}

func (repo *fakeReviewRepo) DeleteReview(_ context.Context, titleID, reviewID int) error {
	stored, ok := repo.reviews[reviewID]
	if !ok || stored.TitleID != titleID {
		return apperr.NotFound("Review")
	}
	delete(repo.reviews, reviewID)
	return nil
}

func (repo *fakeReviewRepo) AverageScore(_ context.Context, titleID int) (*float64, error) {
	var sum, count int
	for _, stored := range repo.reviews {
		if stored.TitleID == titleID {
			sum += stored.Score
			count++
		}
	}
	if count == 0 {
		return nil, nil
	}
	mean := float64(sum) / float64(count)
	return &mean, nil
}

type fakeCommentRepo struct {
	nextID   int
	comments map[int]*review.Comment
}

func newFakeCommentRepo() *fakeCommentRepo {
	return &fakeCommentRepo{comments: make(map[int]*review.Comment)}
}

func (repo *fakeCommentRepo) ListComments(_ context.Context, reviewID, limit, offset int) ([]*review.Comment, int, error) {
	var matched []*review.Comment
	for id := 1; id <= repo.nextID; id++ {
		if stored, ok := repo.comments[id]; ok && stored.ReviewID == reviewID {
			matched = append(matched, stored)
		}
	}
	return matched, len(matched), nil
}

func (repo *fakeCommentRepo) FindComment(_ context.Context, reviewID, commentID int) (*review.Comment, error) {
	stored, ok := repo.comments[commentID]
	if !ok || stored.ReviewID != reviewID {
		return nil, apperr.NotFound("Comment")
	}
	clone := *stored
	return &clone, nil
}

func (repo *fakeCommentRepo) CreateComment(_ context.Context, newComment *review.Comment) error {
	repo.nextID++
	newComment.ID = repo.nextID
	clone := *newComment
	repo.comments[newComment.ID] = &clone
	return nil
}

func (repo *fakeCommentRepo) UpdateComment(_ context.Context, updated *review.Comment) error {
	stored, ok := repo.comments[updated.ID]
	if !ok {
		return apperr.NotFound("Comment")
	}
	stored.Text = updated.Text
	return nil
}

func (repo *fakeCommentRepo) DeleteComment(_ context.Context, reviewID, commentID int) error {
	stored, ok := repo.comments[commentID]
	if !ok || stored.ReviewID != reviewID {
		return apperr.NotFound("Comment")
	}
	delete(repo.comments, commentID)
	return nil
}

type fakeTitleDirectory struct {
	existing map[int]bool
}

func (directory *fakeTitleDirectory) FindByID(_ context.Context, id int) (*title.Title, error) {
	if !directory.existing[id] {
		return nil, apperr.NotFound("Title")
	}
	return &title.Title{ID: id}, nil
}

// # Fixtures

const (
	authorID   = "11111111-1111-7111-8111-111111111111"
	strangerID = "22222222-2222-7222-8222-222222222222"
)

var (
	author    = review.Caller{ID: authorID, Username: "author", Role: sec.RoleUser}
	stranger  = review.Caller{ID: strangerID, Username: "stranger", Role: sec.RoleUser}
	moderator = review.Caller{ID: "33333333-3333-7333-8333-333333333333", Username: "mod", Role: sec.RoleModerator}
	admin     = review.Caller{ID: "44444444-4444-7444-8444-444444444444", Username: "boss", Role: sec.RoleAdmin}
	superuser = review.Caller{ID: "55555555-5555-7555-8555-555555555555", Username: "su", Role: sec.RoleUser, IsSuperuser: true}
	anonymous = review.Caller{}
)

func newTestService(titleIDs ...int) (*review.Service, *fakeReviewRepo, *fakeCommentRepo) {
	reviews := newFakeReviewRepo()
	comments := newFakeCommentRepo()
	existing := make(map[int]bool, len(titleIDs))
	for _, id := range titleIDs {
		existing[id] = true
	}
	service := review.NewService(reviews, comments, &fakeTitleDirectory{existing: existing}, slog.Default())
	return service, reviews, comments
}

// # Review Tests

func TestCreateReview_UnknownTitle(t *testing.T) {
	service, _, _ := newTestService(1)

	_, err := service.CreateReview(context.Background(), 99, author, review.ReviewInput{Text: "great", Score: 8})

	appError := apperr.As(err)
	require.NotNil(t, appError)
	assert.Equal(t, "NOT_FOUND", appError.Code)
}

/*
TestCreateReview_DuplicateConflict verifies a second review by the same
author lands as a conflict while a different author succeeds.
*/
func TestCreateReview_DuplicateConflict(t *testing.T) {
	service, _, _ := newTestService(1)
	ctx := context.Background()

	first, err := service.CreateReview(ctx, 1, author, review.ReviewInput{Text: "great", Score: 8})
	require.NoError(t, err)
	assert.Equal(t, "author", first.Author)

	_, err = service.CreateReview(ctx, 1, author, review.ReviewInput{Text: "again", Score: 3})
	appError := apperr.As(err)
	require.NotNil(t, appError)
	assert.Equal(t, "CONFLICT", appError.Code)

	_, err = service.CreateReview(ctx, 1, stranger, review.ReviewInput{Text: "fine", Score: 5})
	assert.NoError(t, err)
}

func TestCreateReview_SameAuthorDifferentTitles(t *testing.T) {
	service, _, _ := newTestService(1, 2)
	ctx := context.Background()

	_, err := service.CreateReview(ctx, 1, author, review.ReviewInput{Text: "great", Score: 8})
	require.NoError(t, err)

	_, err = service.CreateReview(ctx, 2, author, review.ReviewInput{Text: "also great", Score: 9})
	assert.NoError(t, err)
}

/*
TestMutateReview_AuthorizationMatrix runs update and delete across the full
caller spectrum against a review owned by "author".
*/
func TestMutateReview_AuthorizationMatrix(t *testing.T) {
	tests := []struct {
		name    string
		caller  review.Caller
		allowed bool
	}{
		{"anonymous", anonymous, false},
		{"owner", author, true},
		{"unrelated_user", stranger, false},
		{"moderator", moderator, true},
		{"admin", admin, true},
		{"superuser_flagged_user", superuser, true},
	}

	for _, tt := range tests {
		t.Run("update_"+tt.name, func(t *testing.T) {
			service, _, _ := newTestService(1)
			ctx := context.Background()
			created, err := service.CreateReview(ctx, 1, author, review.ReviewInput{Text: "original", Score: 5})
			require.NoError(t, err)

			newText := "edited"
			updated, err := service.UpdateReview(ctx, 1, created.ID, tt.caller, review.ReviewPatch{Text: &newText})

			if tt.allowed {
				require.NoError(t, err)
				assert.Equal(t, "edited", updated.Text)
				assert.Equal(t, 5, updated.Score)
			} else {
				appError := apperr.As(err)
				require.NotNil(t, appError)
				assert.Equal(t, "FORBIDDEN", appError.Code)
			}
		})

		t.Run("delete_"+tt.name, func(t *testing.T) {
			service, _, _ := newTestService(1)
			ctx := context.Background()
			created, err := service.CreateReview(ctx, 1, author, review.ReviewInput{Text: "original", Score: 5})
			require.NoError(t, err)

			err = service.DeleteReview(ctx, 1, created.ID, tt.caller)

			if tt.allowed {
				require.NoError(t, err)
				_, err = service.GetReview(ctx, 1, created.ID)
				assert.Error(t, err)
			} else {
				appError := apperr.As(err)
				require.NotNil(t, appError)
				assert.Equal(t, "FORBIDDEN", appError.Code)
			}
		})
	}
}

func TestUpdateReview_PartialPatch(t *testing.T) {
	service, _, _ := newTestService(1)
	ctx := context.Background()
	created, err := service.CreateReview(ctx, 1, author, review.ReviewInput{Text: "original", Score: 5})
	require.NoError(t, err)

	// Score-only patch keeps the text.
	newScore := 9
	updated, err := service.UpdateReview(ctx, 1, created.ID, author, review.ReviewPatch{Score: &newScore})
	require.NoError(t, err)
	assert.Equal(t, "original", updated.Text)
	assert.Equal(t, 9, updated.Score)

	// Empty patch is a no-op, not an error.
	unchanged, err := service.UpdateReview(ctx, 1, created.ID, author, review.ReviewPatch{})
	require.NoError(t, err)
	assert.Equal(t, "original", unchanged.Text)
	assert.Equal(t, 9, unchanged.Score)
}

// # Aggregation Tests

func TestAverageScore_NilWhenUnreviewed(t *testing.T) {
	service, _, _ := newTestService(1)

	average, err := service.AverageScore(context.Background(), 1)
	require.NoError(t, err)
	assert.Nil(t, average)
}

func TestAverageScore_Mean(t *testing.T) {
	service, _, _ := newTestService(1)
	ctx := context.Background()

	callers := []review.Caller{author, stranger, moderator}
	scores := []int{10, 5, 3}
	for i, caller := range callers {
		_, err := service.CreateReview(ctx, 1, caller, review.ReviewInput{Text: "t", Score: scores[i]})
		require.NoError(t, err)
	}

	average, err := service.AverageScore(ctx, 1)
	require.NoError(t, err)
	require.NotNil(t, average)
	assert.InDelta(t, 6.0, *average, 1e-9)
}

/*
TestAverageScore_OrderInvariance inserts the same score multiset in two
different orders and expects identical means.
*/
func TestAverageScore_OrderInvariance(t *testing.T) {
	scores := []int{7, 2, 9, 9, 1}
	ctx := context.Background()

	run := func(order []int) float64 {
		service, _, _ := newTestService(1)
		for i, score := range order {
			caller := review.Caller{
				ID:       fmt.Sprintf("00000000-0000-7000-8000-%012d", i),
				Username: fmt.Sprintf("user%d", i),
				Role:     sec.RoleUser,
			}
			_, err := service.CreateReview(ctx, 1, caller, review.ReviewInput{Text: "t", Score: score})
			require.NoError(t, err)
		}
		average, err := service.AverageScore(ctx, 1)
		require.NoError(t, err)
		require.NotNil(t, average)
		return *average
	}

	forward := run(scores)
	reversed := run([]int{1, 9, 9, 2, 7})
	assert.Equal(t, forward, reversed)
}

// # Comment Tests

func TestCreateComment_UnknownReview(t *testing.T) {
	service, _, _ := newTestService(1)

	_, err := service.CreateComment(context.Background(), 1, 42, author, "hello")

	appError := apperr.As(err)
	require.NotNil(t, appError)
	assert.Equal(t, "NOT_FOUND", appError.Code)
}

func TestComment_Lifecycle(t *testing.T) {
	service, _, _ := newTestService(1)
	ctx := context.Background()

	created, err := service.CreateReview(ctx, 1, author, review.ReviewInput{Text: "r", Score: 7})
	require.NoError(t, err)

	comment, err := service.CreateComment(ctx, 1, created.ID, stranger, "disagree")
	require.NoError(t, err)
	assert.Equal(t, "stranger", comment.Author)

	// The comment author may edit; the review author may not.
	newText := "strongly disagree"
	updated, err := service.UpdateComment(ctx, 1, created.ID, comment.ID, stranger, &newText)
	require.NoError(t, err)
	assert.Equal(t, "strongly disagree", updated.Text)

	_, err = service.UpdateComment(ctx, 1, created.ID, comment.ID, author, &newText)
	appError := apperr.As(err)
	require.NotNil(t, appError)
	assert.Equal(t, "FORBIDDEN", appError.Code)

	// A moderator may delete someone else's comment.
	err = service.DeleteComment(ctx, 1, created.ID, comment.ID, moderator)
	require.NoError(t, err)

	_, err = service.GetComment(ctx, 1, created.ID, comment.ID)
	assert.Error(t, err)
}

func TestListReviews_UnknownTitle(t *testing.T) {
	service, _, _ := newTestService(1)

	_, _, err := service.ListReviews(context.Background(), 5, 10, 0)

	appError := apperr.As(err)
	require.NotNil(t, appError)
	assert.Equal(t, "NOT_FOUND", appError.Code)
}
