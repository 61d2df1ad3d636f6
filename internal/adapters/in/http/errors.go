package http

import (
	"errors"
	"log/slog"
	"net/http"

	"dispatch/internal/core/application/usecases/commands"
	"dispatch/internal/core/application/usecases/queries"
	"dispatch/internal/pkg/errs"

	"github.com/labstack/echo/v4"
)

var (
	errInvalidJSON     = echo.NewHTTPError(http.StatusBadRequest, "invalid JSON")
	errCourierNotFound = echo.NewHTTPError(http.StatusNotFound, "courier not found")
)

// NewHTTPErrorHandler maps handler errors to the JSON error bodies of the API. Client errors
// carry their message; everything else is logged and answered with a generic 500.
func NewHTTPErrorHandler(logger *slog.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		status, body := errorResponse(err)
		if status >= http.StatusInternalServerError {
			logger.ErrorContext(c.Request().Context(), "request failed",
				"method", c.Request().Method,
				"path", c.Path(),
				"error", err,
			)
		}

		if c.Request().Method == http.MethodHead {
			err = c.NoContent(status)
		} else {
			err = c.JSON(status, body)
		}
		if err != nil {
			logger.ErrorContext(c.Request().Context(), "failed to write error response", "error", err)
		}
	}
}

func errorResponse(err error) (int, any) {
	var batchErr *commands.BatchValidationError
	if errors.As(err, &batchErr) {
		items := make([]ItemErrorResponse, 0, len(batchErr.Items))
		for _, item := range batchErr.Items {
			items = append(items, ItemErrorResponse{ID: item.ID, ErrorDescription: item.Err.Error()})
		}
		return http.StatusBadRequest, ValidationErrorResponse{
			ValidationError: map[string][]ItemErrorResponse{batchErr.Entity: items},
		}
	}

	var httpErr *echo.HTTPError
	if errors.As(err, &httpErr) {
		msg, ok := httpErr.Message.(string)
		if !ok {
			msg = http.StatusText(httpErr.Code)
		}
		return httpErr.Code, ErrorResponse{ErrorDescription: msg}
	}

	switch {
	case errors.Is(err, queries.ErrCourierNotFound):
		return http.StatusNotFound, ErrorResponse{ErrorDescription: err.Error()}
	case errors.Is(err, commands.ErrUnknownCourier),
		errors.Is(err, commands.ErrUnknownOrder),
		errors.Is(err, commands.ErrInvalidTimeFormat),
		errors.Is(err, commands.ErrValidation),
		errors.Is(err, errs.ErrValueIsInvalid),
		errors.Is(err, errs.ErrValueIsOutOfRange),
		errors.Is(err, errs.ErrValueIsRequired):
		return http.StatusBadRequest, ErrorResponse{ErrorDescription: err.Error()}
	default:
		return http.StatusInternalServerError, ErrorResponse{
			ErrorDescription: http.StatusText(http.StatusInternalServerError),
		}
	}
}
