package feedback

import (
	"net/http"

	"leonine/infras/otel"
	"leonine/internal/domains/feedback/model/dto"
	"leonine/internal/domains/feedback/service"
	"leonine/shared/constant"
	"leonine/shared/principal"
	"leonine/shared/validator"
	"leonine/transport/http/response"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
)

type Handler struct {
	service service.Feedback
	otel    otel.Otel
}

func New(service service.Feedback, otel otel.Otel) Handler {
	return Handler{
		service: service,
		otel:    otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Route("/feedbacks", func(routerGroup chi.Router) {
		routerGroup.Post("/", handler.CreateFeedback)
		routerGroup.Get("/my", handler.GetMyFeedbacks)
		routerGroup.Get("/", handler.GetFeedbacks)
		routerGroup.Put("/{id}/status", handler.UpdateFeedbackStatus)
		routerGroup.Delete("/{id}", handler.DeleteFeedback)
	})
}

// CreateFeedback leaves feedback on one of the caller's bookings.
// @Summary Leave feedback
// @Description Rate a stay. One feedback per booking; the booking must belong to the caller.
// @Tags Feedback
// @Accept json
// @Produce json
// @Param request body dto.CreateFeedbackRequest true "Create Feedback Request"
// @Success 201 {object} dto.FeedbackResponse
// @Failure 400 {object} response.Error
// @Failure 401 {object} response.Error
// @Failure 403 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/feedbacks [post]
// @Security BearerAuth
func (handler *Handler) CreateFeedback(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".CreateFeedback")
	defer scope.End()

	caller, err := principal.Require(ctx)
	if err != nil {
		response.WithError(writer, err)

		return
	}

	req := dto.CreateFeedbackRequest{}

	if err := validator.Validate(request.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(writer, err)

		return
	}

	res, err := handler.service.Create(ctx, caller, req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Int64("booking_id", req.BookingID).Msg("failed to create feedback")

		response.WithError(writer, err)

		return
	}

	response.WithJSON(writer, http.StatusCreated, res)
}

// GetMyFeedbacks lists the caller's feedback.
// @Summary List my feedback
// @Tags Feedback
// @Produce json
// @Success 200 {object} dto.GetFeedbacksResponse
// @Failure 401 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/feedbacks/my [get]
// @Security BearerAuth
func (handler *Handler) GetMyFeedbacks(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetMyFeedbacks")
	defer scope.End()

	caller, err := principal.Require(ctx)
	if err != nil {
		response.WithError(writer, err)

		return
	}

	res, err := handler.service.GetMine(ctx, caller)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get feedbacks")

		response.WithError(writer, err)

		return
	}

	response.WithJSON(writer, http.StatusOK, res)
}

// GetFeedbacks lists every feedback.
// @Summary List all feedback
// @Tags Feedback
// @Produce json
// @Success 200 {object} dto.GetFeedbacksResponse
// @Failure 401 {object} response.Error
// @Failure 403 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/feedbacks [get]
// @Security BearerAuth
func (handler *Handler) GetFeedbacks(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetFeedbacks")
	defer scope.End()

	caller, err := principal.Require(ctx)
	if err != nil {
		response.WithError(writer, err)

		return
	}

	res, err := handler.service.GetAll(ctx, caller)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get feedbacks")

		response.WithError(writer, err)

		return
	}

	response.WithJSON(writer, http.StatusOK, res)
}

// UpdateFeedbackStatus shows or hides a feedback.
// @Summary Update feedback status
// @Tags Feedback
// @Accept json
// @Produce json
// @Param id path string true "Feedback ID"
// @Param request body dto.UpdateStatusRequest true "Update Status Request"
// @Success 200 {object} response.Message
// @Failure 400 {object} response.Error
// @Failure 401 {object} response.Error
// @Failure 403 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/feedbacks/{id}/status [put]
// @Security BearerAuth
func (handler *Handler) UpdateFeedbackStatus(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".UpdateFeedbackStatus")
	defer scope.End()

	caller, err := principal.Require(ctx)
	if err != nil {
		response.WithError(writer, err)

		return
	}

	req := dto.UpdateStatusRequest{}

	if err := validator.Validate(request.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(writer, err)

		return
	}

	id := chi.URLParam(request, constant.RequestParamID)

	if err := handler.service.UpdateStatus(ctx, caller, id, req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Str("id", id).Msg("failed to update feedback status")

		response.WithError(writer, err)

		return
	}

	response.WithMessage(writer, http.StatusOK, "Feedback status updated successfully")
}

// DeleteFeedback removes a feedback and returns it.
// @Summary Delete feedback
// @Tags Feedback
// @Produce json
// @Param id path string true "Feedback ID"
// @Success 200 {object} dto.FeedbackResponse
// @Failure 401 {object} response.Error
// @Failure 403 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/feedbacks/{id} [delete]
// @Security BearerAuth
func (handler *Handler) DeleteFeedback(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".DeleteFeedback")
	defer scope.End()

	caller, err := principal.Require(ctx)
	if err != nil {
		response.WithError(writer, err)

		return
	}

	id := chi.URLParam(request, constant.RequestParamID)

	res, err := handler.service.Delete(ctx, caller, id)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Str("id", id).Msg("failed to delete feedback")

		response.WithError(writer, err)

		return
	}

	response.WithJSON(writer, http.StatusOK, res)
}
