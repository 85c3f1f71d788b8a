// Copyright (c) 2026 Kritika. All rights reserved.
// Author: anton.kharin.dev@gmail.com

package title

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/antonkh/kritika/internal/platform/apperr"
	"github.com/antonkh/kritika/internal/platform/middleware"
	requestutil "github.com/antonkh/kritika/internal/platform/request"
	"github.com/antonkh/kritika/internal/platform/respond"
	"github.com/antonkh/kritika/internal/platform/validate"
	"github.com/antonkh/kritika/pkg/convert"
	"github.com/antonkh/kritika/pkg/pagination"
)

// Handler implements the HTTP layer for catalog titles.
type Handler struct {
	service *Service
}

// NewHandler constructs a new title [Handler].
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Routes returns a [chi.Router] configured with the title endpoints. The
// review sub-router is mounted separately by the composition root.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()
	router.MethodNotAllowed(middleware.MethodNotAllowed)

	router.Get("/", handler.list)
	router.Get("/{titleID}", handler.get)

	router.Group(func(adminRoute chi.Router) {
		adminRoute.Use(middleware.RequireAdmin)
		adminRoute.Post("/", handler.create)
		adminRoute.Patch("/{titleID}", handler.update)
		adminRoute.Delete("/{titleID}", handler.delete)
	})

	return router
}

type createRequest struct {
	Name        string   `json:"name"`
	Year        int      `json:"year"`
	Description string   `json:"description"`
	Category    string   `json:"category"`
	Genre       []string `json:"genre"`
}

type updateRequest struct {
	Name        *string   `json:"name"`
	Year        *int      `json:"year"`
	Description *string   `json:"description"`
	Category    *string   `json:"category"`
	Genre       *[]string `json:"genre"`
}

// list handles GET /titles with the name/category/genre/year filters.
func (handler *Handler) list(writer http.ResponseWriter, request *http.Request) {
	params := pagination.FromRequest(request)
	queryValues := request.URL.Query()

	filter := Filter{
		CategorySlug: queryValues.Get("category"),
		GenreSlug:    queryValues.Get("genre"),
		Name:         queryValues.Get("name"),
		Year:         convert.ToIntD(queryValues.Get("year"), 0),
	}

	titles, total, err := handler.service.List(request.Context(), filter, params.Limit, params.Offset())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Paginated(writer, titles, pagination.NewMeta(params.Page, params.Limit, total))
}

// get handles GET /titles/{titleID}.
func (handler *Handler) get(writer http.ResponseWriter, request *http.Request) {
	titleID, err := PathID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	title, err := handler.service.Get(request.Context(), titleID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, title)
}

// create handles POST /titles.
func (handler *Handler) create(writer http.ResponseWriter, request *http.Request) {
	var input createRequest

	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, validate.ErrInvalidJSON)
		return
	}

	validator := &validate.Validator{}
	validator.Required(FieldName, input.Name).
		MaxLen(FieldName, input.Name, NameMaxLength).
		Year(FieldYear, input.Year).
		Required(FieldCategory, input.Category)

	if err := validator.Err(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	title, err := handler.service.Create(request.Context(), CreateInput{
		Name:         input.Name,
		Year:         input.Year,
		Description:  input.Description,
		CategorySlug: input.Category,
		GenreSlugs:   input.Genre,
	})
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Created(writer, title)
}

// update handles PATCH /titles/{titleID}.
func (handler *Handler) update(writer http.ResponseWriter, request *http.Request) {
	titleID, err := PathID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input updateRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, validate.ErrInvalidJSON)
		return
	}

	validator := &validate.Validator{}
	if input.Name != nil {
		validator.Required(FieldName, *input.Name).
			MaxLen(FieldName, *input.Name, NameMaxLength)
	}
	if input.Year != nil {
		validator.Year(FieldYear, *input.Year)
	}
	if input.Category != nil {
		validator.Required(FieldCategory, *input.Category)
	}

	if err := validator.Err(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	title, err := handler.service.Update(request.Context(), titleID, UpdateInput{
		Name:         input.Name,
		Year:         input.Year,
		Description:  input.Description,
		CategorySlug: input.Category,
		GenreSlugs:   input.Genre,
	})
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, title)
}

// delete handles DELETE /titles/{titleID}.
func (handler *Handler) delete(writer http.ResponseWriter, request *http.Request) {
	titleID, err := PathID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.service.Delete(request.Context(), titleID); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.NoContent(writer)
}

// PathID parses the {titleID} URL parameter. It is shared with the review
// sub-router, which nests under /titles/{titleID}.
func PathID(request *http.Request) (int, error) {
	raw := requestutil.Param(request, "titleID")
	id, err := strconv.Atoi(raw)
	if err != nil || id <= 0 {
		return 0, apperr.ValidationError("Invalid title ID")
	}
	return id, nil
}
