package presenter

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/vidstream/vidstream"
	"github.com/vidstream/vidstream/internal/domain"
	"github.com/vidstream/vidstream/view"
)

// OK wraps a successful response in the uniform envelope.
func OK(c echo.Context, message string, data any) error {
	return c.JSON(http.StatusOK, vidstream.ApiResponse{
		Status:  http.StatusOK,
		Message: message,
		Data:    data,
	})
}

func Created(c echo.Context, message string, data any) error {
	return c.JSON(http.StatusCreated, vidstream.ApiResponse{
		Status:  http.StatusCreated,
		Message: message,
		Data:    data,
	})
}

func BadRequestMessage(c echo.Context, msg string) error {
	return c.JSON(http.StatusBadRequest, vidstream.ApiError{
		Status:  http.StatusBadRequest,
		Message: msg,
	})
}

func Unauthorized(c echo.Context, msg string) error {
	return c.JSON(http.StatusUnauthorized, vidstream.ApiError{
		Status:  http.StatusUnauthorized,
		Message: msg,
	})
}

// Error maps a domain or view engine error to its status code.
func Error(c echo.Context, err error) error {
	status := http.StatusInternalServerError

	switch {
	case errors.Is(err, domain.ErrInvalidInput), errors.Is(err, view.ErrInvalidID):
		status = http.StatusBadRequest
	case errors.Is(err, domain.ErrUnauthenticated):
		status = http.StatusUnauthorized
	case errors.Is(err, domain.ErrPermission):
		status = http.StatusForbidden
	case errors.Is(err, domain.ErrNotFound):
		status = http.StatusNotFound
	case errors.Is(err, view.ErrQueryTimeout):
		status = http.StatusGatewayTimeout
	}

	if status == http.StatusInternalServerError {
		slog.ErrorContext(c.Request().Context(), "internal error",
			slog.String("path", c.Path()),
			slog.String("error", err.Error()),
		)
		return c.JSON(status, vidstream.ApiError{
			Status:  status,
			Message: "internal server error",
		})
	}

	return c.JSON(status, vidstream.ApiError{
		Status:  status,
		Message: err.Error(),
	})
}
