package failure

import (
	"errors"
	"net/http"

	"github.com/lib/pq"
)

// Failure is an error that knows which HTTP status it maps to.
// Anything that is not a Failure is reported as 500.
type Failure struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

var (
	ForbiddenError         = New(http.StatusForbidden, "You don't have the required permissions")
	AuthenticationRequired = New(http.StatusUnauthorized, "authentication required")
)

func New(code int, message string) *Failure {
	return &Failure{Code: code, Message: message}
}

func (e *Failure) Error() string {
	return e.Message
}

// BadRequest turns err into a 400. A nil err stays nil.
func BadRequest(err error) error {
	return fromError(http.StatusBadRequest, err)
}

func BadRequestFromString(msg string) error {
	return New(http.StatusBadRequest, msg)
}

func Unauthorized(msg string) error {
	return New(http.StatusUnauthorized, msg)
}

func Forbidden(msg string) error {
	return New(http.StatusForbidden, msg)
}

func NotFound(msg string) error {
	return New(http.StatusNotFound, msg)
}

func Conflict(msg string) error {
	return New(http.StatusConflict, msg)
}

// InternalError exposes err's text with a 500. A nil err stays nil.
func InternalError(err error) error {
	return fromError(http.StatusInternalServerError, err)
}

func Unimplemented(methodName string) error {
	return New(http.StatusNotImplemented, methodName)
}

func fromError(code int, err error) error {
	if err == nil {
		return nil
	}

	return New(code, err.Error())
}

// GetCode finds the first Failure in err's chain.
func GetCode(err error) int {
	var fail *Failure
	if errors.As(err, &fail) {
		return fail.Code
	}

	return http.StatusInternalServerError
}

// IsPqCode reports whether err wraps a postgres error carrying the given SQLSTATE.
func IsPqCode(err error, code string) bool {
	var pqErr *pq.Error

	return errors.As(err, &pqErr) && string(pqErr.Code) == code
}
