package http

import (
	"errors"
	"net/http"

	"fooddelivery/internal/core/application/usecases/commands"
	"fooddelivery/internal/core/domain/model/courier"
	"fooddelivery/internal/core/domain/model/order"
	"fooddelivery/internal/pkg/errs"

	"github.com/labstack/echo/v4"
)

// Error is the body of every non 2xx response.
type Error struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// statusOf maps an application error to its HTTP status.
func statusOf(err error) int {
	switch {
	case errors.Is(err, errs.ErrObjectNotFound):
		return http.StatusNotFound
	case errors.Is(err, order.ErrTransitionRefused),
		errors.Is(err, errs.ErrVersionIsInvalid),
		errors.Is(err, commands.ErrBusinessIsClosed),
		errors.Is(err, courier.ErrCourierIsNotApproved),
		errors.Is(err, courier.ErrCourierIsOffline):
		return http.StatusConflict
	case errors.Is(err, errs.ErrValueIsInvalid),
		errors.Is(err, errs.ErrValueIsRequired),
		errors.Is(err, errs.ErrValueIsOutOfRange):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// handleError is the echo error handler. Internal errors are logged and
// reported without details.
func (s *Server) handleError(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}

	var he *echo.HTTPError
	if errors.As(err, &he) {
		message := http.StatusText(he.Code)
		if m, ok := he.Message.(string); ok {
			message = m
		}
		_ = c.JSON(he.Code, Error{Code: he.Code, Message: message})
		return
	}

	status := statusOf(err)
	message := err.Error()
	if status == http.StatusInternalServerError {
		c.Logger().Errorf("%s %s: %v", c.Request().Method, c.Path(), err)
		message = "internal server error"
	}
	_ = c.JSON(status, Error{Code: status, Message: message})
}

func badRequest(message string) *echo.HTTPError {
	return echo.NewHTTPError(http.StatusBadRequest, message)
}
