package handler

import (
	"context"
	"net/http"

	"github.com/labstack/echo/v4"
)

// Prober checks the service from the outside.
type Prober interface {
	Check(ctx context.Context) error
}

// SystemHandler serves ping, healthcheck and version.
type SystemHandler struct {
	Prober  Prober
	Version string
}

func NewSystemHandler(p Prober, version string) *SystemHandler {
	return &SystemHandler{Prober: p, Version: version}
}

// Ping is the self-probe target of Healthcheck.
func (h *SystemHandler) Ping(c echo.Context) error {
	return ok(c, "pong", msgSuccess)
}

// Healthcheck answers {status:"ok"} when the probe succeeds and 503 otherwise.
func (h *SystemHandler) Healthcheck(c echo.Context) error {
	if err := h.Prober.Check(c.Request().Context()); err != nil {
		return c.JSON(http.StatusServiceUnavailable, echo.Map{
			"status": "service unavailable",
			"error":  err.Error(),
		})
	}
	return c.JSON(http.StatusOK, echo.Map{"status": "ok"})
}

// GetVersion: GET /api/version.
func (h *SystemHandler) GetVersion(c echo.Context) error {
	return ok(c, h.Version, msgSuccess)
}
