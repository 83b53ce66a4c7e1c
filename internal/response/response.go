package response

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// Body is the uniform JSON envelope every relay endpoint responds with.
type Body struct {
	Status  string `json:"status"`
	Message string `json:"message,omitempty"`
}

// OK sends a 200 success envelope.
func OK(c echo.Context) error {
	return c.JSON(http.StatusOK, Body{Status: "ok"})
}

// Error sends an error envelope with the given status code.
func Error(c echo.Context, status int, message string) error {
	return c.JSON(status, Body{Status: "error", Message: message})
}

// BadRequest sends 400 with the given message.
func BadRequest(c echo.Context, message string) error {
	return Error(c, http.StatusBadRequest, message)
}

// InternalError sends 500 with the given message.
func InternalError(c echo.Context, message string) error {
	return Error(c, http.StatusInternalServerError, message)
}
