// Copyright (c) 2026 Kritika. All rights reserved.
// Author: anton.kharin.dev@gmail.com

package account

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/antonkh/kritika/internal/platform/apperr"
	"github.com/antonkh/kritika/internal/platform/middleware"
	requestutil "github.com/antonkh/kritika/internal/platform/request"
	"github.com/antonkh/kritika/internal/platform/respond"
	"github.com/antonkh/kritika/internal/platform/sec"
	"github.com/antonkh/kritika/internal/platform/validate"
	"github.com/antonkh/kritika/internal/users/auth"
	"github.com/antonkh/kritika/pkg/pagination"
)

// Handler implements the HTTP layer for user administration and /users/me.
type Handler struct {
	accountService *Service
}

// NewHandler constructs a new account [Handler].
func NewHandler(service *Service) *Handler {
	return &Handler{accountService: service}
}

// Routes returns a [chi.Router] configured with the user endpoints.
//
// The "me" routes are registered before the "{username}" routes so chi
// resolves the literal segment first; "me" is additionally unclaimable as a
// username at the validation layer.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()
	router.MethodNotAllowed(middleware.MethodNotAllowed)

	// Self profile — any authenticated user. DELETE /me is rejected
	// explicitly rather than falling through to the admin delete.
	router.Group(func(r chi.Router) {
		r.Use(middleware.RequireAuth)
		r.Get("/me", handler.getMe)
		r.Patch("/me", handler.updateMe)
		r.Delete("/me", handler.deleteMe)
	})

	// Administration — admin or superuser only.
	router.Group(func(r chi.Router) {
		r.Use(middleware.RequireAdmin)
		r.Get("/", handler.list)
		r.Post("/", handler.create)
		r.Get("/{username}", handler.get)
		r.Patch("/{username}", handler.update)
		r.Delete("/{username}", handler.delete)
	})

	return router
}

// # Request Payloads

type createRequest struct {
	Username  string `json:"username"`
	Email     string `json:"email"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Bio       string `json:"bio"`
	Role      string `json:"role"`
}

type updateRequest struct {
	Email     *string `json:"email"`
	FirstName *string `json:"first_name"`
	LastName  *string `json:"last_name"`
	Bio       *string `json:"bio"`
	Role      *string `json:"role"`
}

// # Admin Endpoints

// list handles GET /users with optional ?search= and pagination.
func (handler *Handler) list(writer http.ResponseWriter, request *http.Request) {
	params := pagination.FromRequest(request)
	search := request.URL.Query().Get("search")

	users, total, err := handler.accountService.List(request.Context(), search, params.Limit, params.Offset())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	views := make([]ProfileView, 0, len(users))
	for _, user := range users {
		views = append(views, NewProfileView(user))
	}

	respond.Paginated(writer, views, pagination.NewMeta(params.Page, params.Limit, total))
}

// create handles POST /users (admin provisioning, role assignable).
func (handler *Handler) create(writer http.ResponseWriter, request *http.Request) {
	var input createRequest

	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, validate.ErrInvalidJSON)
		return
	}

	validator := &validate.Validator{}
	validator.Required(auth.FieldUsername, input.Username).
		Username(auth.FieldUsername, input.Username).
		Required(auth.FieldEmail, input.Email).
		Email(auth.FieldEmail, input.Email).
		MaxLen(auth.FieldEmail, input.Email, auth.EmailMaxLength)
	if input.Role != "" {
		validator.OneOf("role", input.Role, string(sec.RoleUser), string(sec.RoleModerator), string(sec.RoleAdmin))
	}

	if err := validator.Err(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	user, err := handler.accountService.Create(request.Context(), CreateInput{
		Username:  input.Username,
		Email:     input.Email,
		FirstName: input.FirstName,
		LastName:  input.LastName,
		Bio:       input.Bio,
		Role:      sec.UserRole(input.Role),
	})
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Created(writer, NewProfileView(user))
}

// get handles GET /users/{username}.
func (handler *Handler) get(writer http.ResponseWriter, request *http.Request) {
	username := requestutil.Param(request, "username")

	user, err := handler.accountService.Get(request.Context(), username)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, NewProfileView(user))
}

// update handles PATCH /users/{username} (admin path, role honored).
func (handler *Handler) update(writer http.ResponseWriter, request *http.Request) {
	username := requestutil.Param(request, "username")

	input, err := decodeUpdate(request, true)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	serviceInput := input.toServiceInput()
	user, err := handler.accountService.Update(request.Context(), username, serviceInput)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, NewProfileView(user))
}

// delete handles DELETE /users/{username}.
func (handler *Handler) delete(writer http.ResponseWriter, request *http.Request) {
	username := requestutil.Param(request, "username")

	if err := handler.accountService.Delete(request.Context(), username); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.NoContent(writer)
}

// # Self Endpoints

// getMe handles GET /users/me.
func (handler *Handler) getMe(writer http.ResponseWriter, request *http.Request) {
	claims, err := requestutil.RequiredClaims(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	user, err := handler.accountService.GetSelf(request.Context(), claims.UserID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, NewProfileView(user))
}

// updateMe handles PATCH /users/me. A role field in the payload is dropped
// before validation: silently ignored, not an error, whatever its value.
func (handler *Handler) updateMe(writer http.ResponseWriter, request *http.Request) {
	claims, err := requestutil.RequiredClaims(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	input, err := decodeUpdate(request, false)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	user, err := handler.accountService.UpdateSelf(request.Context(), claims.UserID, input.toServiceInput())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, NewProfileView(user))
}

// deleteMe handles DELETE /users/me — always method-not-allowed: accounts
// are not self-deletable.
func (handler *Handler) deleteMe(writer http.ResponseWriter, request *http.Request) {
	respond.Error(writer, request, apperr.MethodNotAllowed())
}

// # Decoding Helpers

// decodeUpdate parses and validates a partial profile update payload. On
// the self path the role field is read-only: it is dropped before
// validation so even a nonsense value is ignored rather than rejected.
func decodeUpdate(request *http.Request, allowRole bool) (*updateRequest, error) {
	var input updateRequest

	if err := requestutil.DecodeJSON(request, &input); err != nil {
		return nil, validate.ErrInvalidJSON
	}

	if !allowRole {
		input.Role = nil
	}

	validator := &validate.Validator{}
	if input.Email != nil {
		validator.Email(auth.FieldEmail, *input.Email).
			MaxLen(auth.FieldEmail, *input.Email, auth.EmailMaxLength)
	}
	if input.Role != nil {
		validator.OneOf("role", *input.Role, string(sec.RoleUser), string(sec.RoleModerator), string(sec.RoleAdmin))
	}

	if err := validator.Err(); err != nil {
		return nil, err
	}

	return &input, nil
}

// toServiceInput projects the transport payload onto the service input.
func (input *updateRequest) toServiceInput() UpdateInput {
	serviceInput := UpdateInput{
		Email:     input.Email,
		FirstName: input.FirstName,
		LastName:  input.LastName,
		Bio:       input.Bio,
	}
	if input.Role != nil {
		role := sec.UserRole(*input.Role)
		serviceInput.Role = &role
	}
	return serviceInput
}
