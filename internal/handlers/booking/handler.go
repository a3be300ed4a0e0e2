package booking

import (
	"net/http"

	"leonine/infras/otel"
	"leonine/internal/domains/booking/model/dto"
	"leonine/internal/domains/booking/service"
	"leonine/shared"
	"leonine/shared/constant"
	"leonine/shared/failure"
	"leonine/shared/principal"
	"leonine/shared/validator"
	"leonine/transport/http/response"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
)

type Handler struct {
	service service.Booking
	otel    otel.Otel
}

func New(service service.Booking, otel otel.Otel) Handler {
	return Handler{
		service: service,
		otel:    otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Route("/bookings", func(routerGroup chi.Router) {
		routerGroup.Post("/", handler.CreateBookingByRoom)
		routerGroup.Post("/category", handler.CreateBookingByCategory)
		routerGroup.Get("/", handler.GetBookings)
		routerGroup.Post("/filter", handler.GetBookingsByWindow)
		routerGroup.Patch("/{id}", handler.UpdateBooking)
		routerGroup.Delete("/{id}", handler.DeleteBooking)
	})
}

// CreateBookingByRoom books a specific room for the caller.
// @Summary Book a room
// @Description Book the given room for [start, end). The room must be available and free for the whole stay.
// @Tags Booking
// @Accept json
// @Produce json
// @Param request body dto.CreateByRoomRequest true "Create Booking Request"
// @Success 201 {object} dto.BookingResponse "Booking created"
// @Failure 400 {object} response.Error
// @Failure 401 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 409 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/bookings [post]
// @Security BearerAuth
func (handler *Handler) CreateBookingByRoom(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".CreateBookingByRoom")
	defer scope.End()

	caller, err := principal.Require(ctx)
	if err != nil {
		response.WithError(writer, err)

		return
	}

	req := dto.CreateByRoomRequest{}

	if err := validator.Validate(request.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(writer, err)

		return
	}

	booking, err := handler.service.CreateByRoom(ctx, caller, req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Int64("room_id", req.RoomID).Msg("failed to create booking")

		response.WithError(writer, err)

		return
	}

	scope.AddEvent("Booking created successfully by user " + caller.UserID)

	response.WithJSON(writer, http.StatusCreated, booking)
}

// CreateBookingByCategory books the first free room of a category.
// @Summary Book a room by category
// @Description Book the lowest numbered available room of the category that is free for [start, end).
// @Tags Booking
// @Accept json
// @Produce json
// @Param request body dto.CreateByCategoryRequest true "Create Booking By Category Request"
// @Success 201 {object} dto.BookingResponse "Booking created"
// @Failure 400 {object} response.Error
// @Failure 401 {object} response.Error
// @Failure 409 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/bookings/category [post]
// @Security BearerAuth
func (handler *Handler) CreateBookingByCategory(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".CreateBookingByCategory")
	defer scope.End()

	caller, err := principal.Require(ctx)
	if err != nil {
		response.WithError(writer, err)

		return
	}

	req := dto.CreateByCategoryRequest{}

	if err := validator.Validate(request.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(writer, err)

		return
	}

	booking, err := handler.service.CreateByCategory(ctx, caller, req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Str("category", req.Category).Msg("failed to create booking by category")

		response.WithError(writer, err)

		return
	}

	scope.AddEvent("Booking created successfully by user " + caller.UserID)

	response.WithJSON(writer, http.StatusCreated, booking)
}

// GetBookings lists every booking.
// @Summary Get all bookings @Admin
// @Description Retrieve every booking, latest arrival first.
// @Tags Booking
// @Produce json
// @Success 200 {object} dto.GetBookingsResponse "List of bookings"
// @Failure 401 {object} response.Error
// @Failure 403 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/bookings [get]
// @Security BearerAuth
func (handler *Handler) GetBookings(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetBookings")
	defer scope.End()

	caller, err := principal.Require(ctx)
	if err != nil {
		response.WithError(writer, err)

		return
	}

	bookings, err := handler.service.ListAll(ctx, caller)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get bookings")

		response.WithError(writer, err)

		return
	}

	response.WithJSON(writer, http.StatusOK, bookings)
}

// GetBookingsByWindow lists bookings that intersect a date range.
// @Summary Get bookings by date range
// @Description Admins see every booking intersecting [start, end); other accounts see their own.
// @Tags Booking
// @Accept json
// @Produce json
// @Param request body dto.WindowRequest true "Date range"
// @Success 200 {object} dto.GetBookingsResponse "List of bookings"
// @Failure 400 {object} response.Error
// @Failure 401 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/bookings/filter [post]
// @Security BearerAuth
func (handler *Handler) GetBookingsByWindow(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetBookingsByWindow")
	defer scope.End()

	caller, err := principal.Require(ctx)
	if err != nil {
		response.WithError(writer, err)

		return
	}

	req := dto.WindowRequest{}

	if err := validator.Validate(request.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(writer, err)

		return
	}

	bookings, err := handler.service.ListByWindow(ctx, caller, req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get bookings by window")

		response.WithError(writer, err)

		return
	}

	response.WithJSON(writer, http.StatusOK, bookings)
}

// UpdateBooking changes a booking's status, dates or notes.
// @Summary Update a booking @Admin
// @Description Update a booking. Moving the dates does not re-check occupancy.
// @Tags Booking
// @Accept json
// @Produce json
// @Param id path integer true "Booking ID"
// @Param request body dto.UpdateBookingRequest true "Update Booking Request"
// @Success 200 {object} dto.BookingResponse "Updated booking"
// @Failure 400 {object} response.Error
// @Failure 401 {object} response.Error
// @Failure 403 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/bookings/{id} [patch]
// @Security BearerAuth
func (handler *Handler) UpdateBooking(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".UpdateBooking")
	defer scope.End()

	caller, err := principal.Require(ctx)
	if err != nil {
		response.WithError(writer, err)

		return
	}

	id, err := shared.ConvertStringToInt64(chi.URLParam(request, constant.RequestParamID))
	if err != nil {
		response.WithError(writer, failure.BadRequest(err))

		return
	}

	req := dto.UpdateBookingRequest{}

	if err := validator.Validate(request.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(writer, err)

		return
	}

	booking, err := handler.service.Update(ctx, caller, id, req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Int64("id", id).Msg("failed to update booking")

		response.WithError(writer, err)

		return
	}

	scope.AddEvent("Booking updated successfully by user " + caller.UserID)

	response.WithJSON(writer, http.StatusOK, booking)
}

// DeleteBooking removes a booking.
// @Summary Delete a booking @Admin
// @Description Delete a booking and return the removed record.
// @Tags Booking
// @Produce json
// @Param id path integer true "Booking ID"
// @Success 200 {object} dto.BookingResponse "Deleted booking"
// @Failure 400 {object} response.Error
// @Failure 401 {object} response.Error
// @Failure 403 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/bookings/{id} [delete]
// @Security BearerAuth
func (handler *Handler) DeleteBooking(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".DeleteBooking")
	defer scope.End()

	caller, err := principal.Require(ctx)
	if err != nil {
		response.WithError(writer, err)

		return
	}

	id, err := shared.ConvertStringToInt64(chi.URLParam(request, constant.RequestParamID))
	if err != nil {
		response.WithError(writer, failure.BadRequest(err))

		return
	}

	booking, err := handler.service.Delete(ctx, caller, id)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Int64("id", id).Msg("failed to delete booking")

		response.WithError(writer, err)

		return
	}

	scope.AddEvent("Booking deleted successfully by user " + caller.UserID)

	response.WithJSON(writer, http.StatusOK, booking)
}
