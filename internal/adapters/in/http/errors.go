package http

import (
	"context"
	"errors"
	"net/http"

	"bikeshare/internal/core/domain/model/bicycle"
	"bikeshare/internal/core/ports"
	"bikeshare/internal/pkg/errs"

	"github.com/labstack/echo/v4"
)

// RefusalRecorder counts refused transitions.
type RefusalRecorder interface {
	Refused(refusal *bicycle.RefusalError)
}

// statusFor maps a use case error to an HTTP status code.
func statusFor(err error) int {
	switch {
	case errors.Is(err, ports.ErrUnknownStation):
		return http.StatusBadRequest
	case errors.Is(err, ports.ErrUnknownBicycle), errors.Is(err, errs.ErrObjectNotFound):
		return http.StatusNotFound
	case errors.Is(err, bicycle.ErrInvalidTransition),
		errors.Is(err, ports.ErrBicycleAlreadyRegistered),
		errors.Is(err, ports.ErrRentalAlreadyActive),
		errors.Is(err, ports.ErrMissingRentalRecord):
		return http.StatusConflict
	case errors.Is(err, errs.ErrValueIsInvalid),
		errors.Is(err, errs.ErrValueIsRequired),
		errors.Is(err, errs.ErrValueIsOutOfRange):
		return http.StatusBadRequest
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

// fail writes err as an Error body. Refusals are counted; server errors are
// logged and their message hidden.
func (s *Server) fail(c echo.Context, err error) error {
	var refusal *bicycle.RefusalError
	if errors.As(err, &refusal) {
		s.refusals.Refused(refusal)
	}

	code := statusFor(err)
	msg := err.Error()
	if code == http.StatusInternalServerError {
		s.logger.ErrorContext(c.Request().Context(), "Request failed",
			"method", c.Request().Method, "path", c.Path(), "error", err)
		msg = http.StatusText(code)
	}
	return c.JSON(code, Error{Code: code, Message: msg})
}

func badRequest(c echo.Context, msg string) error {
	return c.JSON(http.StatusBadRequest, Error{Code: http.StatusBadRequest, Message: msg})
}

type nopRefusals struct{}

func (nopRefusals) Refused(*bicycle.RefusalError) {}

