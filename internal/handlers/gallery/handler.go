package gallery

import (
	"net/http"

	"leonine/infras/otel"
	"leonine/internal/domains/gallery/model/dto"
	"leonine/internal/domains/gallery/service"
	"leonine/shared/constant"
	gDto "leonine/shared/dto"
	"leonine/shared/principal"
	"leonine/shared/validator"
	"leonine/transport/http/response"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
)

type Handler struct {
	service service.Gallery
	otel    otel.Otel
}

func New(service service.Gallery, otel otel.Otel) Handler {
	return Handler{
		service: service,
		otel:    otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Route("/gallery", func(routerGroup chi.Router) {
		routerGroup.Post("/", handler.CreateGallery)
		routerGroup.Get("/", handler.GetGalleries)
		routerGroup.Get("/{id}", handler.GetGalleryByID)
		routerGroup.Patch("/{id}", handler.UpdateGallery)
		routerGroup.Delete("/{id}", handler.DeleteGallery)
	})
}

// CreateGallery handles the creation of a new gallery item.
// @Summary Create a gallery item
// @Description Create a gallery item pointing at an already hosted image.
// @Tags Gallery
// @Accept json
// @Produce json
// @Param request body dto.CreateGalleryRequest true "Create Gallery Request"
// @Success 201 {object} dto.GalleryResponse
// @Failure 400 {object} response.Error
// @Failure 401 {object} response.Error
// @Failure 403 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/gallery [post]
// @Security BearerAuth
func (handler *Handler) CreateGallery(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".CreateGallery")
	defer scope.End()

	caller, err := principal.Require(ctx)
	if err != nil {
		response.WithError(writer, err)

		return
	}

	req := dto.CreateGalleryRequest{}

	if err := validator.Validate(request.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(writer, err)

		return
	}

	res, err := handler.service.Create(ctx, caller, req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to create gallery")

		response.WithError(writer, err)

		return
	}

	scope.AddEvent("Gallery created successfully by user " + caller.UserID)

	response.WithJSON(writer, http.StatusCreated, res)
}

// GetGalleries lists gallery items.
// @Summary Get gallery items
// @Description Retrieve gallery items with pagination, optionally narrowed to one category.
// @Tags Gallery
// @Produce json
// @Param category query string false "Filter by category"
// @Param page query int false "Page"
// @Param limit query int false "Limit"
// @Success 200 {object} dto.GetGalleriesResponse
// @Failure 500 {object} response.Error
// @Router /v1/gallery [get]
func (handler *Handler) GetGalleries(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetGalleries")
	defer scope.End()

	queryParams := gDto.QueryParams{}
	queryParams.FromRequest(r, true)

	res, err := handler.service.GetAll(ctx, queryParams, r.URL.Query().Get(constant.RequestParamCategory))
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get galleries")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, res)
}

// GetGalleryByID returns a single gallery item.
// @Summary Get a gallery item
// @Tags Gallery
// @Produce json
// @Param id path string true "Gallery ID"
// @Success 200 {object} dto.GalleryResponse
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/gallery/{id} [get]
func (handler *Handler) GetGalleryByID(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetGalleryByID")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)

	res, err := handler.service.Get(ctx, id)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Str("id", id).Msg("failed to get gallery")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, res)
}

// UpdateGallery updates the supplied fields of a gallery item.
// @Summary Update a gallery item
// @Tags Gallery
// @Accept json
// @Produce json
// @Param id path string true "Gallery ID"
// @Param request body dto.UpdateGalleryRequest true "Update Gallery Request"
// @Success 200 {object} response.Message
// @Failure 400 {object} response.Error
// @Failure 401 {object} response.Error
// @Failure 403 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/gallery/{id} [patch]
// @Security BearerAuth
func (handler *Handler) UpdateGallery(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".UpdateGallery")
	defer scope.End()

	caller, err := principal.Require(ctx)
	if err != nil {
		response.WithError(w, err)

		return
	}

	req := dto.UpdateGalleryRequest{}

	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(w, err)

		return
	}

	id := chi.URLParam(r, constant.RequestParamID)

	if err := handler.service.Update(ctx, caller, id, req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Str("id", id).Msg("failed to update gallery")

		response.WithError(w, err)

		return
	}

	response.WithMessage(w, http.StatusOK, "Gallery updated successfully")
}

// DeleteGallery removes a gallery item.
// @Summary Delete a gallery item
// @Tags Gallery
// @Produce json
// @Param id path string true "Gallery ID"
// @Success 200 {object} response.Message
// @Failure 401 {object} response.Error
// @Failure 403 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/gallery/{id} [delete]
// @Security BearerAuth
func (handler *Handler) DeleteGallery(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".DeleteGallery")
	defer scope.End()

	caller, err := principal.Require(ctx)
	if err != nil {
		response.WithError(w, err)

		return
	}

	id := chi.URLParam(r, constant.RequestParamID)

	if err := handler.service.Delete(ctx, caller, id); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Str("id", id).Msg("failed to delete gallery")

		response.WithError(w, err)

		return
	}

	response.WithMessage(w, http.StatusOK, "Gallery deleted successfully")
}
