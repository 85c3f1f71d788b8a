// Copyright (c) 2026 Kritika. All rights reserved.
// Author: anton.kharin.dev@gmail.com

package reference

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/antonkh/kritika/internal/platform/middleware"
	requestutil "github.com/antonkh/kritika/internal/platform/request"
	"github.com/antonkh/kritika/internal/platform/respond"
	"github.com/antonkh/kritika/internal/platform/validate"
	"github.com/antonkh/kritika/pkg/pagination"
)

// Handler implements the HTTP layer for taxonomy management.
type Handler struct {
	service *Service
}

// NewHandler constructs a new taxonomy [Handler].
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// CategoryRoutes returns a [chi.Router] for the /categories endpoints.
func (handler *Handler) CategoryRoutes() chi.Router {
	router := chi.NewRouter()
	router.MethodNotAllowed(middleware.MethodNotAllowed)

	router.Get("/", handler.listCategories)

	router.Group(func(adminRoute chi.Router) {
		adminRoute.Use(middleware.RequireAdmin)
		adminRoute.Post("/", handler.createCategory)
		adminRoute.Delete("/{slug}", handler.deleteCategory)
	})

	return router
}

// GenreRoutes returns a [chi.Router] for the /genres endpoints.
func (handler *Handler) GenreRoutes() chi.Router {
	router := chi.NewRouter()
	router.MethodNotAllowed(middleware.MethodNotAllowed)

	router.Get("/", handler.listGenres)

	router.Group(func(adminRoute chi.Router) {
		adminRoute.Use(middleware.RequireAdmin)
		adminRoute.Post("/", handler.createGenre)
		adminRoute.Delete("/{slug}", handler.deleteGenre)
	})

	return router
}

type createTaxonomyRequest struct {
	Name string `json:"name"`
	Slug string `json:"slug"`
}

// decodeCreate parses and validates a taxonomy creation payload.
func decodeCreate(request *http.Request) (CreateInput, error) {
	var input createTaxonomyRequest

	if err := requestutil.DecodeJSON(request, &input); err != nil {
		return CreateInput{}, validate.ErrInvalidJSON
	}

	validator := &validate.Validator{}
	validator.Required(FieldName, input.Name).
		MaxLen(FieldName, input.Name, NameMaxLength)
	if input.Slug != "" {
		validator.Slug(FieldSlug, input.Slug).
			MaxLen(FieldSlug, input.Slug, SlugMaxLength)
	}

	if err := validator.Err(); err != nil {
		return CreateInput{}, err
	}

	return CreateInput{Name: input.Name, Slug: input.Slug}, nil
}

// # Category Endpoints

func (handler *Handler) listCategories(writer http.ResponseWriter, request *http.Request) {
	params := pagination.FromRequest(request)
	search := request.URL.Query().Get("search")

	categories, total, err := handler.service.ListCategories(request.Context(), search, params.Limit, params.Offset())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Paginated(writer, categories, pagination.NewMeta(params.Page, params.Limit, total))
}

func (handler *Handler) createCategory(writer http.ResponseWriter, request *http.Request) {
	input, err := decodeCreate(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	category, err := handler.service.CreateCategory(request.Context(), input)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Created(writer, category)
}

func (handler *Handler) deleteCategory(writer http.ResponseWriter, request *http.Request) {
	slug := requestutil.Param(request, "slug")

	if err := handler.service.DeleteCategory(request.Context(), slug); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.NoContent(writer)
}

// # Genre Endpoints

func (handler *Handler) listGenres(writer http.ResponseWriter, request *http.Request) {
	params := pagination.FromRequest(request)
	search := request.URL.Query().Get("search")

	genres, total, err := handler.service.ListGenres(request.Context(), search, params.Limit, params.Offset())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Paginated(writer, genres, pagination.NewMeta(params.Page, params.Limit, total))
}

func (handler *Handler) createGenre(writer http.ResponseWriter, request *http.Request) {
	input, err := decodeCreate(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	genre, err := handler.service.CreateGenre(request.Context(), input)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Created(writer, genre)
}

func (handler *Handler) deleteGenre(writer http.ResponseWriter, request *http.Request) {
	slug := requestutil.Param(request, "slug")

	if err := handler.service.DeleteGenre(request.Context(), slug); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.NoContent(writer)
}
