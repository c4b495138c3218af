package http

import (
	"net/http"

	"munify-backend/pkg/apperr"

	"github.com/labstack/echo/v4"
)

func statusFor(err error) int {
	switch apperr.KindOf(err) {
	case apperr.KindNotFound:
		return http.StatusNotFound
	case apperr.KindInvalid:
		return http.StatusUnprocessableEntity
	case apperr.KindConflict:
		return http.StatusConflict
	case apperr.KindForbidden:
		return http.StatusForbidden
	}
	return http.StatusInternalServerError
}

// respondError maps the error taxonomy to HTTP codes. Internal errors keep
// their detail out of the response body.
func respondError(c echo.Context, err error) error {
	status := statusFor(err)
	msg := err.Error()
	if status == http.StatusInternalServerError {
		msg = "internal server error"
	}
	return c.JSON(status, ErrorResponse{Error: msg})
}
