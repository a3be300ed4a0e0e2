package user

import (
	"net/http"

	"leonine/infras/otel"
	"leonine/internal/domains/user/model/dto"
	"leonine/internal/domains/user/service"
	"leonine/shared/constant"
	gDto "leonine/shared/dto"
	"leonine/shared/principal"
	"leonine/shared/validator"
	"leonine/transport/http/response"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
)

type Handler struct {
	service service.User
	otel    otel.Otel
}

func New(service service.User, otel otel.Otel) Handler {
	return Handler{
		service: service,
		otel:    otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Route("/users", func(routerGroup chi.Router) {
		routerGroup.Get("/", handler.GetUsers)
		routerGroup.Get("/me", handler.GetMe)
		routerGroup.Patch("/{id}/disable", handler.DisableUser)
		routerGroup.Patch("/{id}/type", handler.ChangeUserType)
		routerGroup.Delete("/{id}", handler.DeleteUser)
	})
}

// GetUsers retrieves accounts page by page.
// @Summary Get all users @Admin
// @Description Retrieve accounts, newest first.
// @Tags User
// @Produce json
// @Param page query integer false "Page number"
// @Param limit query integer false "Page size"
// @Success 200 {object} dto.GetUsersResponse "List of users"
// @Failure 401 {object} response.Error
// @Failure 403 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/users [get]
// @Security BearerAuth
func (handler *Handler) GetUsers(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetUsers")
	defer scope.End()

	caller, err := principal.Require(ctx)
	if err != nil {
		response.WithError(w, err)

		return
	}

	queryParams := gDto.QueryParams{}
	queryParams.FromRequest(r, true)

	users, err := handler.service.GetAll(ctx, caller, queryParams)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get users")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, users)
}

// GetMe returns the signed-in account.
// @Summary Get current user
// @Tags User
// @Produce json
// @Success 200 {object} dto.UserResponse "Current user"
// @Failure 401 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/users/me [get]
// @Security BearerAuth
func (handler *Handler) GetMe(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetMe")
	defer scope.End()

	caller, err := principal.Require(ctx)
	if err != nil {
		response.WithError(w, err)

		return
	}

	user, err := handler.service.Me(ctx, caller)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get current user")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, user)
}

// DisableUser disables or re-enables an account.
// @Summary Disable or enable a user @Admin
// @Tags User
// @Accept json
// @Produce json
// @Param id path string true "User ID"
// @Param request body dto.DisableUserRequest true "Disable User Request"
// @Success 200 {object} response.Message "User disabled/enabled successfully"
// @Failure 400 {object} response.Error
// @Failure 403 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/users/{id}/disable [patch]
// @Security BearerAuth
func (handler *Handler) DisableUser(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".DisableUser")
	defer scope.End()

	caller, err := principal.Require(ctx)
	if err != nil {
		response.WithError(w, err)

		return
	}

	id := chi.URLParam(r, constant.RequestParamID)

	req := dto.DisableUserRequest{}
	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(w, err)

		return
	}

	if err := handler.service.SetDisabled(ctx, caller, id, req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Str("id", id).Msg("failed to disable user")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("User disabled/enabled by user " + caller.UserID)

	response.WithMessage(w, http.StatusOK, "User disabled/enabled successfully")
}

// ChangeUserType changes the role of an account.
// @Summary Change user type @Admin
// @Tags User
// @Accept json
// @Produce json
// @Param id path string true "User ID"
// @Param request body dto.ChangeTypeRequest true "Change Type Request"
// @Success 200 {object} response.Message "User type updated successfully"
// @Failure 400 {object} response.Error
// @Failure 403 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/users/{id}/type [patch]
// @Security BearerAuth
func (handler *Handler) ChangeUserType(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".ChangeUserType")
	defer scope.End()

	caller, err := principal.Require(ctx)
	if err != nil {
		response.WithError(w, err)

		return
	}

	id := chi.URLParam(r, constant.RequestParamID)

	req := dto.ChangeTypeRequest{}
	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(w, err)

		return
	}

	if err := handler.service.ChangeType(ctx, caller, id, req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Str("id", id).Msg("failed to change user type")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("User type changed by user " + caller.UserID)

	response.WithMessage(w, http.StatusOK, "User type updated successfully")
}

// DeleteUser deletes an account.
// @Summary Delete a user @Admin
// @Tags User
// @Produce json
// @Param id path string true "User ID"
// @Success 200 {object} response.Message "User deleted successfully"
// @Failure 403 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/users/{id} [delete]
// @Security BearerAuth
func (handler *Handler) DeleteUser(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".DeleteUser")
	defer scope.End()

	caller, err := principal.Require(ctx)
	if err != nil {
		response.WithError(w, err)

		return
	}

	id := chi.URLParam(r, constant.RequestParamID)

	if err := handler.service.Delete(ctx, caller, id); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Str("id", id).Msg("failed to delete user")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("User deleted by user " + caller.UserID)

	response.WithMessage(w, http.StatusOK, "User deleted successfully")
}
