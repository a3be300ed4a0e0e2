package room

import (
	"net/http"

	"leonine/infras/otel"
	"leonine/internal/domains/room/model/dto"
	"leonine/internal/domains/room/service"
	"leonine/shared"
	"leonine/shared/constant"
	gDto "leonine/shared/dto"
	"leonine/shared/failure"
	"leonine/shared/principal"
	"leonine/shared/validator"
	"leonine/transport/http/response"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
)

type Handler struct {
	service service.Room
	otel    otel.Otel
}

func New(service service.Room, otel otel.Otel) Handler {
	return Handler{
		service: service,
		otel:    otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Route("/rooms", func(routerGroup chi.Router) {
		routerGroup.Post("/", handler.CreateRoom)
		routerGroup.Get("/", handler.GetRooms)
		routerGroup.Get("/category/{category}", handler.GetRoomsByCategory)
		routerGroup.Get("/{id}", handler.GetRoomByID)
		routerGroup.Patch("/{id}", handler.UpdateRoom)
		routerGroup.Delete("/{id}", handler.DeleteRoom)
	})
}

func roomID(r *http.Request) (int64, error) {
	id, err := shared.ConvertStringToInt64(chi.URLParam(r, constant.RequestParamID))
	if err != nil {
		return 0, failure.BadRequest(err) // nolint:wrapcheck
	}

	return id, nil
}

// CreateRoom adds a room to a category.
// @Summary Create a room
// @Description Create a room with a caller supplied room number. The category must exist.
// @Tags Room
// @Accept json
// @Produce json
// @Param request body dto.CreateRoomRequest true "Create Room Request"
// @Success 201 {object} dto.RoomResponse
// @Failure 400 {object} response.Error
// @Failure 401 {object} response.Error
// @Failure 403 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 409 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/rooms [post]
// @Security BearerAuth
func (handler *Handler) CreateRoom(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".CreateRoom")
	defer scope.End()

	caller, err := principal.Require(ctx)
	if err != nil {
		response.WithError(writer, err)

		return
	}

	req := dto.CreateRoomRequest{}

	if err := validator.Validate(request.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(writer, err)

		return
	}

	res, err := handler.service.Create(ctx, caller, req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Int64("room_id", req.RoomID).Msg("failed to create room")

		response.WithError(writer, err)

		return
	}

	scope.AddEvent("Room created successfully by user " + caller.UserID)

	response.WithJSON(writer, http.StatusCreated, res)
}

// GetRooms lists rooms.
// @Summary Get rooms
// @Description Retrieve rooms with pagination, optionally narrowed to one category.
// @Tags Room
// @Produce json
// @Param category query string false "Filter by category"
// @Param page query int false "Page"
// @Param limit query int false "Limit"
// @Success 200 {object} dto.GetRoomsResponse
// @Failure 500 {object} response.Error
// @Router /v1/rooms [get]
func (handler *Handler) GetRooms(w http.ResponseWriter, r *http.Request) {
	handler.getRooms(w, r, r.URL.Query().Get(constant.RequestParamCategory))
}

// GetRoomsByCategory lists the rooms of one category.
// @Summary Get rooms by category
// @Tags Room
// @Produce json
// @Param category path string true "Category name"
// @Success 200 {object} dto.GetRoomsResponse
// @Failure 500 {object} response.Error
// @Router /v1/rooms/category/{category} [get]
func (handler *Handler) GetRoomsByCategory(w http.ResponseWriter, r *http.Request) {
	handler.getRooms(w, r, chi.URLParam(r, constant.RequestParamCategory))
}

func (handler *Handler) getRooms(w http.ResponseWriter, r *http.Request, category string) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetRooms")
	defer scope.End()

	queryParams := gDto.QueryParams{}
	queryParams.FromRequest(r, true)

	res, err := handler.service.GetAll(ctx, queryParams, category)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Str("category", category).Msg("failed to get rooms")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, res)
}

// GetRoomByID returns a single room.
// @Summary Get a room
// @Tags Room
// @Produce json
// @Param id path int true "Room ID"
// @Success 200 {object} dto.RoomResponse
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/rooms/{id} [get]
func (handler *Handler) GetRoomByID(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetRoomByID")
	defer scope.End()

	id, err := roomID(r)
	if err != nil {
		response.WithError(w, err)

		return
	}

	res, err := handler.service.Get(ctx, id)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Int64("room_id", id).Msg("failed to get room")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, res)
}

// UpdateRoom updates the supplied fields of a room.
// @Summary Update a room
// @Description Update a room, including toggling its availability.
// @Tags Room
// @Accept json
// @Produce json
// @Param id path int true "Room ID"
// @Param request body dto.UpdateRoomRequest true "Update Room Request"
// @Success 200 {object} response.Message
// @Failure 400 {object} response.Error
// @Failure 401 {object} response.Error
// @Failure 403 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/rooms/{id} [patch]
// @Security BearerAuth
func (handler *Handler) UpdateRoom(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".UpdateRoom")
	defer scope.End()

	caller, err := principal.Require(ctx)
	if err != nil {
		response.WithError(w, err)

		return
	}

	id, err := roomID(r)
	if err != nil {
		response.WithError(w, err)

		return
	}

	req := dto.UpdateRoomRequest{}

	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(w, err)

		return
	}

	if err := handler.service.Update(ctx, caller, id, req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Int64("room_id", id).Msg("failed to update room")

		response.WithError(w, err)

		return
	}

	response.WithMessage(w, http.StatusOK, "Room updated successfully")
}

// DeleteRoom removes a room.
// @Summary Delete a room
// @Description Delete a room. Rooms that still carry bookings cannot be deleted.
// @Tags Room
// @Produce json
// @Param id path int true "Room ID"
// @Success 200 {object} response.Message
// @Failure 400 {object} response.Error
// @Failure 401 {object} response.Error
// @Failure 403 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 409 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/rooms/{id} [delete]
// @Security BearerAuth
func (handler *Handler) DeleteRoom(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".DeleteRoom")
	defer scope.End()

	caller, err := principal.Require(ctx)
	if err != nil {
		response.WithError(w, err)

		return
	}

	id, err := roomID(r)
	if err != nil {
		response.WithError(w, err)

		return
	}

	if err := handler.service.Delete(ctx, caller, id); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Int64("room_id", id).Msg("failed to delete room")

		response.WithError(w, err)

		return
	}

	response.WithMessage(w, http.StatusOK, "Room deleted successfully")
}
