// Copyright (c) 2026 Kritika. All rights reserved.
// Author: anton.kharin.dev@gmail.com

package review

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/antonkh/kritika/internal/catalog/title"
	"github.com/antonkh/kritika/internal/platform/apperr"
	"github.com/antonkh/kritika/internal/platform/middleware"
	requestutil "github.com/antonkh/kritika/internal/platform/request"
	"github.com/antonkh/kritika/internal/platform/respond"
	"github.com/antonkh/kritika/internal/platform/sec"
	"github.com/antonkh/kritika/internal/platform/validate"
	"github.com/antonkh/kritika/pkg/pagination"
)

// Handler implements the HTTP layer for reviews and their comments. All
// routes nest under /titles/{titleID}.
type Handler struct {
	service *Service
}

// NewHandler constructs a new review [Handler].
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Routes returns a [chi.Router] for the /titles/{titleID}/reviews subtree.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()
	router.MethodNotAllowed(middleware.MethodNotAllowed)

	router.Get("/", handler.listReviews)
	router.Get("/{reviewID}", handler.getReview)
	router.Get("/{reviewID}/comments", handler.listComments)
	router.Get("/{reviewID}/comments/{commentID}", handler.getComment)

	router.Group(func(authRoute chi.Router) {
		authRoute.Use(middleware.RequireAuth)

		authRoute.Post("/", handler.createReview)
		authRoute.Patch("/{reviewID}", handler.updateReview)
		authRoute.Delete("/{reviewID}", handler.deleteReview)

		authRoute.Post("/{reviewID}/comments", handler.createComment)
		authRoute.Patch("/{reviewID}/comments/{commentID}", handler.updateComment)
		authRoute.Delete("/{reviewID}/comments/{commentID}", handler.deleteComment)
	})

	return router
}

type reviewRequest struct {
	Text  string `json:"text"`
	Score int    `json:"score"`
}

type reviewPatchRequest struct {
	Text  *string `json:"text"`
	Score *int    `json:"score"`
}

type commentRequest struct {
	Text string `json:"text"`
}

type commentPatchRequest struct {
	Text *string `json:"text"`
}

// # Review Endpoints

func (handler *Handler) listReviews(writer http.ResponseWriter, request *http.Request) {
	titleID, err := title.PathID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	params := pagination.FromRequest(request)
	reviews, total, err := handler.service.ListReviews(request.Context(), titleID, params.Limit, params.Offset())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Paginated(writer, reviews, pagination.NewMeta(params.Page, params.Limit, total))
}

func (handler *Handler) getReview(writer http.ResponseWriter, request *http.Request) {
	titleID, reviewID, err := reviewPath(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	review, err := handler.service.GetReview(request.Context(), titleID, reviewID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, review)
}

func (handler *Handler) createReview(writer http.ResponseWriter, request *http.Request) {
	titleID, err := title.PathID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input reviewRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, validate.ErrInvalidJSON)
		return
	}

	validator := &validate.Validator{}
	validator.Required(FieldText, input.Text).
		Range(FieldScore, input.Score, ScoreMin, ScoreMax)
	if err := validator.Err(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	review, err := handler.service.CreateReview(request.Context(), titleID, callerFromRequest(request), ReviewInput{
		Text:  input.Text,
		Score: input.Score,
	})
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Created(writer, review)
}

func (handler *Handler) updateReview(writer http.ResponseWriter, request *http.Request) {
	titleID, reviewID, err := reviewPath(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input reviewPatchRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, validate.ErrInvalidJSON)
		return
	}

	validator := &validate.Validator{}
	if input.Text != nil {
		validator.Required(FieldText, *input.Text)
	}
	if input.Score != nil {
		validator.Range(FieldScore, *input.Score, ScoreMin, ScoreMax)
	}
	if err := validator.Err(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	review, err := handler.service.UpdateReview(request.Context(), titleID, reviewID, callerFromRequest(request), ReviewPatch{
		Text:  input.Text,
		Score: input.Score,
	})
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, review)
}

func (handler *Handler) deleteReview(writer http.ResponseWriter, request *http.Request) {
	titleID, reviewID, err := reviewPath(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.service.DeleteReview(request.Context(), titleID, reviewID, callerFromRequest(request)); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.NoContent(writer)
}

// # Comment Endpoints

func (handler *Handler) listComments(writer http.ResponseWriter, request *http.Request) {
	titleID, reviewID, err := reviewPath(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	params := pagination.FromRequest(request)
	comments, total, err := handler.service.ListComments(request.Context(), titleID, reviewID, params.Limit, params.Offset())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Paginated(writer, comments, pagination.NewMeta(params.Page, params.Limit, total))
}

func (handler *Handler) getComment(writer http.ResponseWriter, request *http.Request) {
	titleID, reviewID, commentID, err := commentPath(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	comment, err := handler.service.GetComment(request.Context(), titleID, reviewID, commentID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, comment)
}

func (handler *Handler) createComment(writer http.ResponseWriter, request *http.Request) {
	titleID, reviewID, err := reviewPath(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input commentRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, validate.ErrInvalidJSON)
		return
	}

	validator := &validate.Validator{}
	validator.Required(FieldText, input.Text)
	if err := validator.Err(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	comment, err := handler.service.CreateComment(request.Context(), titleID, reviewID, callerFromRequest(request), input.Text)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Created(writer, comment)
}

func (handler *Handler) updateComment(writer http.ResponseWriter, request *http.Request) {
	titleID, reviewID, commentID, err := commentPath(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input commentPatchRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, validate.ErrInvalidJSON)
		return
	}

	validator := &validate.Validator{}
	if input.Text != nil {
		validator.Required(FieldText, *input.Text)
	}
	if err := validator.Err(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	comment, err := handler.service.UpdateComment(request.Context(), titleID, reviewID, commentID, callerFromRequest(request), input.Text)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, comment)
}

func (handler *Handler) deleteComment(writer http.ResponseWriter, request *http.Request) {
	titleID, reviewID, commentID, err := commentPath(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.service.DeleteComment(request.Context(), titleID, reviewID, commentID, callerFromRequest(request)); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.NoContent(writer)
}

// # Path Helpers

func reviewPath(request *http.Request) (titleID, reviewID int, err error) {
	titleID, err = title.PathID(request)
	if err != nil {
		return 0, 0, err
	}
	reviewID, err = pathInt(request, "reviewID", "Invalid review ID")
	if err != nil {
		return 0, 0, err
	}
	return titleID, reviewID, nil
}

func commentPath(request *http.Request) (titleID, reviewID, commentID int, err error) {
	titleID, reviewID, err = reviewPath(request)
	if err != nil {
		return 0, 0, 0, err
	}
	commentID, err = pathInt(request, "commentID", "Invalid comment ID")
	if err != nil {
		return 0, 0, 0, err
	}
	return titleID, reviewID, commentID, nil
}

func pathInt(request *http.Request, name, message string) (int, error) {
	id, err := strconv.Atoi(requestutil.Param(request, name))
	if err != nil || id <= 0 {
		return 0, apperr.ValidationError(message)
	}
	return id, nil
}

// callerFromRequest projects the authenticated claims onto a [Caller].
// Anonymous requests yield the zero value, which every mutation denies.
func callerFromRequest(request *http.Request) Caller {
	claims := requestutil.Claims(request)
	if claims == nil {
		return Caller{}
	}
	return Caller{
		ID:          claims.UserID,
		Username:    claims.Username,
		Role:        sec.UserRole(claims.Role),
		IsSuperuser: claims.IsSuperuser,
	}
}
