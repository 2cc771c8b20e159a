package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// Envelope is the body shape of every API response.  StatusCode mirrors the
// HTTP status so clients that only read the body see the same outcome.
type Envelope struct {
	Data       any    `json:"data"`
	Message    string `json:"message"`
	StatusCode int    `json:"statuscode"`
}

const msgSuccess = "success"

func respond(c echo.Context, status int, data any, message string) error {
	return c.JSON(status, Envelope{Data: data, Message: message, StatusCode: status})
}

func ok(c echo.Context, data any, message string) error {
	return respond(c, http.StatusOK, data, message)
}

func badRequest(c echo.Context, message string) error {
	return respond(c, http.StatusBadRequest, "", message)
}

// requireFields returns a ValidationError message naming the first field
// that is missing, or "".
func requireFields(fields ...namedField) string {
	for _, f := range fields {
		if f.value == nil {
			return f.name + " is required"
		}
	}
	return ""
}

type namedField struct {
	name  string
	value *string
}

func field(name string, v *string) namedField { return namedField{name: name, value: v} }
