// Package response defines the exact wire bodies of the auth contract.
// Every error path and logout path answers with the flat {"message": ...}
// shape; only a successful registration carries more fields.
package response

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// Body is the flat message body shared by every non-registration response.
type Body struct {
	Message string `json:"message"`
}

// Registered is the successful registration body.
type Registered struct {
	UserID   int64  `json:"user_id"`
	Username string `json:"username"`
	Message  string `json:"message"`
}

// Message writes a flat message body with the given status code.
func Message(c echo.Context, statusCode int, message string) error {
	return c.JSON(statusCode, Body{Message: message})
}

// OK writes a 200 with the given body.
func OK(c echo.Context, body any) error {
	return c.JSON(http.StatusOK, body)
}

// BindingError rejects a request whose body could not be parsed.
func BindingError(c echo.Context, message string) error {
	return Message(c, http.StatusBadRequest, message)
}

// Unprocessable rejects input that parsed but failed validation.
func Unprocessable(c echo.Context, message string) error {
	return Message(c, http.StatusUnprocessableEntity, message)
}
