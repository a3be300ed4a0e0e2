package category

import (
	"net/http"

	"leonine/infras/otel"
	"leonine/internal/domains/category/model/dto"
	"leonine/internal/domains/category/service"
	"leonine/shared/constant"
	gDto "leonine/shared/dto"
	"leonine/shared/principal"
	"leonine/shared/validator"
	"leonine/transport/http/response"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
)

type Handler struct {
	service service.Category
	otel    otel.Otel
}

func New(service service.Category, otel otel.Otel) Handler {
	return Handler{
		service: service,
		otel:    otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Route("/categories", func(routerGroup chi.Router) {
		routerGroup.Post("/", handler.CreateCategory)
		routerGroup.Get("/", handler.GetCategories)
		routerGroup.Get("/name/{name}", handler.GetCategoryByName)
		routerGroup.Patch("/name/{name}", handler.UpdateCategoryByName)
		routerGroup.Patch("/{id}", handler.UpdateCategory)
		routerGroup.Delete("/{id}", handler.DeleteCategory)
	})
}

// CreateCategory adds a room category.
// @Summary Create a category
// @Tags Category
// @Accept json
// @Produce json
// @Param request body dto.CreateCategoryRequest true "Create Category Request"
// @Success 201 {object} dto.CategoryResponse
// @Failure 400 {object} response.Error
// @Failure 401 {object} response.Error
// @Failure 403 {object} response.Error
// @Failure 409 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/categories [post]
// @Security BearerAuth
func (handler *Handler) CreateCategory(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".CreateCategory")
	defer scope.End()

	caller, err := principal.Require(ctx)
	if err != nil {
		response.WithError(writer, err)

		return
	}

	req := dto.CreateCategoryRequest{}

	if err := validator.Validate(request.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(writer, err)

		return
	}

	res, err := handler.service.Create(ctx, caller, req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Str("name", req.Name).Msg("failed to create category")

		response.WithError(writer, err)

		return
	}

	scope.AddEvent("Category created successfully by user " + caller.UserID)

	response.WithJSON(writer, http.StatusCreated, res)
}

// GetCategories lists categories by name.
// @Summary Get categories
// @Tags Category
// @Produce json
// @Param page query int false "Page"
// @Param limit query int false "Limit"
// @Success 200 {object} dto.GetCategoriesResponse
// @Failure 500 {object} response.Error
// @Router /v1/categories [get]
func (handler *Handler) GetCategories(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetCategories")
	defer scope.End()

	queryParams := gDto.QueryParams{}
	queryParams.FromRequest(r, false)

	res, err := handler.service.GetAll(ctx, queryParams)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get categories")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, res)
}

// GetCategoryByName returns one category.
// @Summary Get a category by name
// @Tags Category
// @Produce json
// @Param name path string true "Category name"
// @Success 200 {object} dto.CategoryResponse
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/categories/name/{name} [get]
func (handler *Handler) GetCategoryByName(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetCategoryByName")
	defer scope.End()

	name := chi.URLParam(r, constant.RequestParamName)

	res, err := handler.service.GetByName(ctx, name)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Str("name", name).Msg("failed to get category")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, res)
}

// UpdateCategory updates a category by id.
// @Summary Update a category
// @Tags Category
// @Accept json
// @Produce json
// @Param id path string true "Category ID"
// @Param request body dto.UpdateCategoryRequest true "Update Category Request"
// @Success 200 {object} response.Message
// @Failure 400 {object} response.Error
// @Failure 401 {object} response.Error
// @Failure 403 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 409 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/categories/{id} [patch]
// @Security BearerAuth
func (handler *Handler) UpdateCategory(w http.ResponseWriter, r *http.Request) {
	handler.update(w, r, false)
}

// UpdateCategoryByName updates a category by its name.
// @Summary Update a category by name
// @Tags Category
// @Accept json
// @Produce json
// @Param name path string true "Category name"
// @Param request body dto.UpdateCategoryRequest true "Update Category Request"
// @Success 200 {object} response.Message
// @Failure 400 {object} response.Error
// @Failure 401 {object} response.Error
// @Failure 403 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 409 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/categories/name/{name} [patch]
// @Security BearerAuth
func (handler *Handler) UpdateCategoryByName(w http.ResponseWriter, r *http.Request) {
	handler.update(w, r, true)
}

func (handler *Handler) update(w http.ResponseWriter, r *http.Request, byName bool) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".UpdateCategory")
	defer scope.End()

	caller, err := principal.Require(ctx)
	if err != nil {
		response.WithError(w, err)

		return
	}

	req := dto.UpdateCategoryRequest{}

	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(w, err)

		return
	}

	if byName {
		err = handler.service.UpdateByName(ctx, caller, chi.URLParam(r, constant.RequestParamName), req)
	} else {
		err = handler.service.UpdateByID(ctx, caller, chi.URLParam(r, constant.RequestParamID), req)
	}

	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to update category")

		response.WithError(w, err)

		return
	}

	response.WithMessage(w, http.StatusOK, "Category updated successfully")
}

// DeleteCategory removes a category without rooms.
// @Summary Delete a category
// @Tags Category
// @Produce json
// @Param id path string true "Category ID"
// @Success 200 {object} response.Message
// @Failure 401 {object} response.Error
// @Failure 403 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 409 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/categories/{id} [delete]
// @Security BearerAuth
func (handler *Handler) DeleteCategory(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".DeleteCategory")
	defer scope.End()

	caller, err := principal.Require(ctx)
	if err != nil {
		response.WithError(w, err)

		return
	}

	id := chi.URLParam(r, constant.RequestParamID)

	if err := handler.service.Delete(ctx, caller, id); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Str("id", id).Msg("failed to delete category")

		response.WithError(w, err)

		return
	}

	response.WithMessage(w, http.StatusOK, "Category deleted successfully")
}
