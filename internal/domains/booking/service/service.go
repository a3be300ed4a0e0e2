package service

import (
	"context"
	"errors"
	"fmt"
	"slices"

	"leonine/infras/otel"
	"leonine/internal/domains/booking/model"
	"leonine/internal/domains/booking/model/dto"
	"leonine/internal/domains/booking/repository"
	notificationModel "leonine/internal/domains/notification/model"
	"leonine/internal/domains/notification/publisher"
	roomModel "leonine/internal/domains/room/model"
	roomRepo "leonine/internal/domains/room/repository"
	"leonine/shared"
	"leonine/shared/constant"
	gDto "leonine/shared/dto"
	"leonine/shared/failure"
	"leonine/shared/principal"

	"github.com/rs/zerolog/log"
)

const (
	msgRoomNotFound    = "room not found"
	msgRoomUnavailable = "room is not available"
	msgRoomBooked      = "room is already booked for the selected dates"
	msgNoCandidate     = "no rooms available for the selected category and dates"
	msgBookingNotFound = "booking not found"
)

type Booking interface {
	CreateByRoom(ctx context.Context, caller principal.Principal, req dto.CreateByRoomRequest) (dto.BookingResponse, error)
	CreateByCategory(ctx context.Context, caller principal.Principal, req dto.CreateByCategoryRequest) (dto.BookingResponse, error)
	ListAll(ctx context.Context, caller principal.Principal) (dto.GetBookingsResponse, error)
	ListByWindow(ctx context.Context, caller principal.Principal, req dto.WindowRequest) (dto.GetBookingsResponse, error)
	Update(ctx context.Context, caller principal.Principal, id int64, req dto.UpdateBookingRequest) (dto.BookingResponse, error)
	Delete(ctx context.Context, caller principal.Principal, id int64) (dto.BookingResponse, error)
}

type serviceImpl struct {
	repo      repository.Booking
	rooms     roomRepo.Room
	publisher publisher.Publisher
	otel      otel.Otel
}

func New(repo repository.Booking, rooms roomRepo.Room, publisher publisher.Publisher, otel otel.Otel) Booking {
	return &serviceImpl{
		repo:      repo,
		rooms:     rooms,
		publisher: publisher,
		otel:      otel,
	}
}

func (s *serviceImpl) CreateByRoom(ctx context.Context, caller principal.Principal, req dto.CreateByRoomRequest) (res dto.BookingResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".CreateByRoom")
	defer scope.End()
	defer scope.TraceIfError(&err)

	if req.RoomID <= 0 {
		return res, failure.BadRequestFromString("room_id is required") // nolint:wrapcheck
	}

	window, err := req.Window()
	if err != nil {
		return res, err
	}

	room, err := s.rooms.Get(ctx, shared.FilterByID(req.RoomID, roomModel.FieldRoomID, roomModel.TableName))
	if err != nil {
		log.Error().Err(err).Int64("room_id", req.RoomID).Msg("failed to get room")

		return res, fmt.Errorf("failed to get room: %w", err)
	}

	if room.RoomID == 0 {
		return res, failure.NotFound(msgRoomNotFound) // nolint:wrapcheck
	}

	if !room.Available {
		return res, failure.Conflict(msgRoomUnavailable) // nolint:wrapcheck
	}

	overlapping, err := s.repo.Overlapping(ctx, room.RoomID, window)
	if err != nil {
		log.Error().Err(err).Int64("room_id", room.RoomID).Msg("failed to check room occupancy")

		return res, fmt.Errorf("failed to check room occupancy: %w", err)
	}

	if len(overlapping) > 0 {
		return res, failure.Conflict(msgRoomBooked) // nolint:wrapcheck
	}

	booking, err := s.repo.Admit(ctx, dto.NewBooking(room.RoomID, caller.Email, window, req.Notes))
	if err != nil {
		return res, admissionFailure(err)
	}

	s.notifyAdmitted(ctx, booking)
	res.FromModel(booking)

	return res, nil
}

func (s *serviceImpl) CreateByCategory(ctx context.Context, caller principal.Principal, req dto.CreateByCategoryRequest) (res dto.BookingResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".CreateByCategory")
	defer scope.End()
	defer scope.TraceIfError(&err)

	if req.Category == constant.Empty {
		return res, failure.BadRequestFromString("category is required") // nolint:wrapcheck
	}

	window, err := req.Window()
	if err != nil {
		return res, err
	}

	candidates, err := s.candidates(ctx, req.Category, window)
	if err != nil {
		return res, err
	}

	if len(candidates) == 0 {
		return res, failure.Conflict(msgNoCandidate) // nolint:wrapcheck
	}

	for _, roomID := range candidates {
		booking, err := s.repo.Admit(ctx, dto.NewBooking(roomID, caller.Email, window, req.Notes))
		if err == nil {
			s.notifyAdmitted(ctx, booking)
			res.FromModel(booking)

			return res, nil
		}

		if !lostCandidate(err) {
			return res, admissionFailure(err)
		}

		log.Warn().Err(err).Int64("room_id", roomID).Msg("candidate room taken concurrently, trying next")
	}

	return res, failure.Conflict(msgNoCandidate) // nolint:wrapcheck
}

// candidates returns the available rooms of category that are free for window, lowest id first.
func (s *serviceImpl) candidates(ctx context.Context, category string, window model.Window) ([]int64, error) {
	rooms, err := s.rooms.GetAll(ctx,
		gDto.QueryParams{SortBy: roomModel.FieldRoomID, SortDir: gDto.SortDirAsc},
		gDto.FilterGroup{
			Filters: []any{
				gDto.Filter{Field: roomModel.FieldCategory, Operator: gDto.FilterOperatorEq, Value: category, Table: roomModel.TableName},
				gDto.Filter{Field: roomModel.FieldAvailable, Operator: gDto.FilterOperatorEq, Value: true, Table: roomModel.TableName},
			},
		},
	)
	if err != nil {
		log.Error().Err(err).Str("category", category).Msg("failed to get rooms of category")

		return nil, fmt.Errorf("failed to get rooms of category: %w", err)
	}

	occupied, err := s.repo.OccupiedRoomIDs(ctx, category, window)
	if err != nil {
		log.Error().Err(err).Str("category", category).Msg("failed to get occupied rooms")

		return nil, fmt.Errorf("failed to get occupied rooms: %w", err)
	}

	candidates := make([]int64, 0, len(rooms))

	for _, room := range rooms {
		if room.Available && !slices.Contains(occupied, room.RoomID) {
			candidates = append(candidates, room.RoomID)
		}
	}

	slices.Sort(candidates)

	return candidates, nil
}

func lostCandidate(err error) bool {
	return errors.Is(err, repository.ErrOverlap) ||
		errors.Is(err, repository.ErrRoomUnavailable) ||
		errors.Is(err, repository.ErrRoomNotFound)
}

func admissionFailure(err error) error {
	switch {
	case errors.Is(err, repository.ErrRoomNotFound):
		return failure.NotFound(msgRoomNotFound) // nolint:wrapcheck
	case errors.Is(err, repository.ErrRoomUnavailable):
		return failure.Conflict(msgRoomUnavailable) // nolint:wrapcheck
	case errors.Is(err, repository.ErrOverlap):
		return failure.Conflict(msgRoomBooked) // nolint:wrapcheck
	default:
		log.Error().Err(err).Msg("failed to admit booking")

		return fmt.Errorf("failed to admit booking: %w", err)
	}
}

func (s *serviceImpl) notifyAdmitted(ctx context.Context, booking model.Booking) {
	event := notificationModel.NewBookingAdmitted(booking.Email, notificationModel.Booking{
		ID:     booking.ID,
		RoomID: booking.RoomID,
		Start:  booking.StartAt,
		End:    booking.EndAt,
		Status: booking.Status,
		Notes:  booking.Notes,
	})

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.publisher.Publish(c, event); err != nil {
			log.Error().Err(err).Int64("booking_id", booking.ID).Msg("failed to publish booking notification")
		}
	}()
}

func (s *serviceImpl) ListAll(ctx context.Context, caller principal.Principal) (res dto.GetBookingsResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".ListAll")
	defer scope.End()
	defer scope.TraceIfError(&err)

	if !caller.IsAdmin() {
		return res, failure.ForbiddenError
	}

	bookings, err := s.repo.List(ctx, gDto.FilterGroup{})
	if err != nil {
		log.Error().Err(err).Msg("failed to list bookings")

		return res, fmt.Errorf("failed to list bookings: %w", err)
	}

	res.FromModels(bookings)

	return res, nil
}

func (s *serviceImpl) ListByWindow(ctx context.Context, caller principal.Principal, req dto.WindowRequest) (res dto.GetBookingsResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".ListByWindow")
	defer scope.End()
	defer scope.TraceIfError(&err)

	window, err := req.Window()
	if err != nil {
		return res, err
	}

	filter := gDto.FilterGroup{Filters: []any{window.OverlapFilter(model.TableName)}}

	if !caller.IsAdmin() {
		filter.Filters = append(filter.Filters, gDto.Filter{
			Field:    model.FieldEmail,
			Operator: gDto.FilterOperatorEq,
			Value:    caller.Email,
			Table:    model.TableName,
		})
	}

	bookings, err := s.repo.List(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to list bookings by window")

		return res, fmt.Errorf("failed to list bookings by window: %w", err)
	}

	res.FromModels(bookings)

	return res, nil
}

func (s *serviceImpl) get(ctx context.Context, id int64) (model.Booking, error) {
	booking, err := s.repo.Get(ctx, shared.FilterByID(id, model.FieldID, model.TableName))
	if err != nil {
		log.Error().Err(err).Int64("id", id).Msg("failed to get booking")

		return booking, fmt.Errorf("failed to get booking: %w", err)
	}

	if booking.ID == 0 {
		return booking, failure.NotFound(msgBookingNotFound) // nolint:wrapcheck
	}

	return booking, nil
}

// Update applies an administrative change. Moving the dates does not re-check
// occupancy; an admin may overlap bookings on purpose.
func (s *serviceImpl) Update(ctx context.Context, caller principal.Principal, id int64, req dto.UpdateBookingRequest) (res dto.BookingResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Update")
	defer scope.End()
	defer scope.TraceIfError(&err)

	if !caller.IsAdmin() {
		return res, failure.ForbiddenError
	}

	current, err := s.get(ctx, id)
	if err != nil {
		return res, err
	}

	fields := shared.TransformFields(req, caller.Email)

	if req.ChangesWindow() {
		window, err := req.ApplyWindow(current.Window())
		if err != nil {
			return res, err
		}

		fields[model.FieldStartAt] = window.Start
		fields[model.FieldEndAt] = window.End
	}

	if err = s.repo.Update(ctx, fields, shared.FilterByID(id, model.FieldID, model.TableName)); err != nil {
		log.Error().Err(err).Int64("id", id).Msg("failed to update booking")

		return res, fmt.Errorf("failed to update booking: %w", err)
	}

	updated, err := s.get(ctx, id)
	if err != nil {
		return res, err
	}

	scope.AddEvent("booking status " + current.Status + " -> " + updated.Status)
	res.FromModel(updated)

	return res, nil
}

func (s *serviceImpl) Delete(ctx context.Context, caller principal.Principal, id int64) (res dto.BookingResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Delete")
	defer scope.End()
	defer scope.TraceIfError(&err)

	if !caller.IsAdmin() {
		return res, failure.ForbiddenError
	}

	current, err := s.get(ctx, id)
	if err != nil {
		return res, err
	}

	if err = s.repo.Delete(ctx, shared.FilterByID(id, model.FieldID, model.TableName)); err != nil {
		log.Error().Err(err).Int64("id", id).Msg("failed to delete booking")

		return res, fmt.Errorf("failed to delete booking: %w", err)
	}

	res.FromModel(current)

	return res, nil
}
