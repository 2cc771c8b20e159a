package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/solvely-pub/internal/logging"
)

// HTTPErrorHandler is the backstop for errors handlers did not turn into an
// envelope themselves.  It logs the error and answers {error: message},
// using the HTTPError message when there is one and err.Error() otherwise.
func HTTPErrorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}

	code := http.StatusInternalServerError
	msg := err.Error()
	var he *echo.HTTPError
	if errors.As(err, &he) {
		code = he.Code
		if m, ok := he.Message.(string); ok {
			msg = m
		} else {
			msg = http.StatusText(code)
		}
	}

	log := logging.FromContext(c.Request().Context())
	ev := log.Warn()
	if code >= http.StatusInternalServerError {
		ev = log.Error()
	}
	ev.Err(err).Int("status", code).Str("path", c.Request().URL.Path).Msg("request failed")

	var werr error
	if c.Request().Method == http.MethodHead {
		werr = c.NoContent(code)
	} else {
		werr = c.JSON(code, echo.Map{"error": msg})
	}
	if werr != nil {
		log.Error().Err(werr).Msg("write error response")
	}
}
