package response

import (
	"encoding/json"
	"errors"
	"net/http"

	"leonine/shared/constant"
	"leonine/shared/failure"
	"leonine/shared/logger"

	"github.com/rs/zerolog/log"
)

// ErrorInternal replaces the text of errors that carry no status of their own.
const ErrorInternal = "internal server error"

type Data[T any] struct {
	Data *T `json:"data,omitempty"`
}

type Error struct {
	Error *string `json:"error,omitempty"`
}

type Message struct {
	Message *string `json:"message,omitempty"`
}

func WithMessage(writer http.ResponseWriter, code int, message string) {
	write(writer, code, Message{Message: &message})
}

func WithJSON(writer http.ResponseWriter, code int, payload any) {
	write(writer, code, Data[any]{Data: &payload})
}

// WithError writes err with the status of the Failure it wraps. Errors without
// one are logged and answered with a generic 500 body.
func WithError(writer http.ResponseWriter, err error) {
	var fail *failure.Failure

	message := ErrorInternal
	if errors.As(err, &fail) {
		message = fail.Message
	} else {
		log.Error().Err(err).Msg("unhandled error reached the response writer")
	}

	write(writer, failure.GetCode(err), Error{Error: &message})
}

func WithPreparingShutdown(writer http.ResponseWriter) {
	WithMessage(writer, http.StatusServiceUnavailable, constant.ResponseErrorPrepareShutdown)
}

func WithUnhealthy(writer http.ResponseWriter) {
	WithMessage(writer, http.StatusServiceUnavailable, constant.ResponseErrorUnhealthy)
}

func write(writer http.ResponseWriter, code int, payload any) {
	body, err := json.Marshal(payload)
	if err != nil {
		logger.ErrorWithStack(err)
		writer.WriteHeader(http.StatusInternalServerError)

		return
	}

	writer.Header().Set(constant.RequestHeaderContentType, constant.ContentTypeJSON)
	writer.WriteHeader(code)

	if _, err = writer.Write(body); err != nil {
		log.Warn().Err(err).Msg("failed to write response body")
	}
}
