package service

import (
	"context"
	"fmt"

	"leonine/infras/otel"
	bookingModel "leonine/internal/domains/booking/model"
	bookingRepo "leonine/internal/domains/booking/repository"
	"leonine/internal/domains/feedback/model"
	"leonine/internal/domains/feedback/model/dto"
	"leonine/internal/domains/feedback/repository"
	"leonine/shared"
	"leonine/shared/constant"
	gDto "leonine/shared/dto"
	"leonine/shared/failure"
	"leonine/shared/principal"

	"github.com/rs/zerolog/log"
)

type Feedback interface {
	Create(ctx context.Context, caller principal.Principal, req dto.CreateFeedbackRequest) (dto.FeedbackResponse, error)
	GetMine(ctx context.Context, caller principal.Principal) (dto.GetFeedbacksResponse, error)
	GetAll(ctx context.Context, caller principal.Principal) (dto.GetFeedbacksResponse, error)
	UpdateStatus(ctx context.Context, caller principal.Principal, id string, req dto.UpdateStatusRequest) error
	Delete(ctx context.Context, caller principal.Principal, id string) (dto.FeedbackResponse, error)
}

type serviceImpl struct {
	repo     repository.Feedback
	bookings bookingRepo.Booking
	otel     otel.Otel
}

func New(repo repository.Feedback, bookings bookingRepo.Booking, otel otel.Otel) Feedback {
	return &serviceImpl{
		repo:     repo,
		bookings: bookings,
		otel:     otel,
	}
}

var latestFirst = gDto.QueryParams{SortBy: constant.FieldCreatedAt, SortDir: gDto.SortDirDesc}

func (s *serviceImpl) Create(ctx context.Context, caller principal.Principal, req dto.CreateFeedbackRequest) (res dto.FeedbackResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Create")
	defer scope.End()
	defer scope.TraceIfError(&err)

	if !caller.IsCustomer() {
		return res, failure.Forbidden("only guests can leave feedback") // nolint:wrapcheck
	}

	owned := gDto.FilterGroup{
		Filters: []any{
			gDto.Filter{Field: bookingModel.FieldID, Value: req.BookingID, Operator: gDto.FilterOperatorEq, Table: bookingModel.TableName},
			gDto.Filter{Field: bookingModel.FieldEmail, Value: caller.Email, Operator: gDto.FilterOperatorEq, Table: bookingModel.TableName},
		},
	}

	booking, err := s.bookings.Get(ctx, owned)
	if err != nil {
		log.Error().Err(err).Msg("failed to get booking")

		return res, fmt.Errorf("failed to get booking: %w", err)
	}

	if booking.ID == 0 {
		return res, failure.NotFound("booking not found") // nolint:wrapcheck
	}

	exist, err := s.repo.Exist(ctx, shared.FilterByID(req.BookingID, model.FieldBookingID, model.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to check feedback")

		return res, fmt.Errorf("failed to check feedback: %w", err)
	}

	if exist {
		return res, failure.BadRequestFromString("feedback already submitted for this booking") // nolint:wrapcheck
	}

	feedback := req.ToModel(booking, caller.Email)

	if err = s.repo.Insert(ctx, feedback); err != nil {
		if failure.IsPqCode(err, constant.PqErrorCodeUniqueViolation) {
			return res, failure.BadRequestFromString("feedback already submitted for this booking") // nolint:wrapcheck
		}

		log.Error().Err(err).Msg("failed to create feedback")

		return res, fmt.Errorf("failed to create feedback: %w", err)
	}

	res.FromModel(feedback)

	return res, nil
}

func (s *serviceImpl) GetMine(ctx context.Context, caller principal.Principal) (res dto.GetFeedbacksResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GetMine")
	defer scope.End()
	defer scope.TraceIfError(&err)

	models, err := s.repo.GetAll(ctx, latestFirst, shared.FilterByID(caller.Email, model.FieldEmail, model.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get feedbacks")

		return res, fmt.Errorf("failed to get feedbacks: %w", err)
	}

	res.FromModels(models)

	return res, nil
}

func (s *serviceImpl) GetAll(ctx context.Context, caller principal.Principal) (res dto.GetFeedbacksResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GetAll")
	defer scope.End()
	defer scope.TraceIfError(&err)

	if !caller.IsAdmin() {
		return res, failure.ForbiddenError
	}

	models, err := s.repo.GetAll(ctx, latestFirst, gDto.FilterGroup{})
	if err != nil {
		log.Error().Err(err).Msg("failed to get feedbacks")

		return res, fmt.Errorf("failed to get feedbacks: %w", err)
	}

	res.FromModels(models)

	return res, nil
}

func (s *serviceImpl) UpdateStatus(ctx context.Context, caller principal.Principal, id string, req dto.UpdateStatusRequest) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".UpdateStatus")
	defer scope.End()
	defer scope.TraceIfError(&err)

	if !caller.IsAdmin() {
		return failure.ForbiddenError
	}

	filter := shared.FilterByID(id, model.FieldID, model.TableName)

	exist, err := s.repo.Exist(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to check feedback")

		return fmt.Errorf("failed to check feedback: %w", err)
	}

	if !exist {
		return failure.NotFound("feedback not found") // nolint:wrapcheck
	}

	if err = s.repo.Update(ctx, shared.TransformFields(req, caller.Email), filter); err != nil {
		log.Error().Err(err).Msg("failed to update feedback status")

		return fmt.Errorf("failed to update feedback status: %w", err)
	}

	return nil
}

func (s *serviceImpl) Delete(ctx context.Context, caller principal.Principal, id string) (res dto.FeedbackResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Delete")
	defer scope.End()
	defer scope.TraceIfError(&err)

	if !caller.IsAdmin() {
		return res, failure.ForbiddenError
	}

	filter := shared.FilterByID(id, model.FieldID, model.TableName)

	current, err := s.repo.Get(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get feedback")

		return res, fmt.Errorf("failed to get feedback: %w", err)
	}

	if current.ID == constant.Empty {
		return res, failure.NotFound("feedback not found") // nolint:wrapcheck
	}

	if err = s.repo.Delete(ctx, filter); err != nil {
		log.Error().Err(err).Msg("failed to delete feedback")

		return res, fmt.Errorf("failed to delete feedback: %w", err)
	}

	res.FromModel(current)

	return res, nil
}
