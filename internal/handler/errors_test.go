package handler

import (
	"errors"
	"net/http"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/steinfletcher/apitest"
)

func TestHTTPErrorHandler(t *testing.T) {
	e := echo.New()
	e.HTTPErrorHandler = HTTPErrorHandler
	e.GET("/boom", func(echo.Context) error { return errors.New("downstream exploded") })
	e.GET("/teapot", func(echo.Context) error { return echo.NewHTTPError(http.StatusTeapot, "short and stout") })

	apitest.New().Handler(e).
		Get("/boom").
		Expect(t).
		Status(http.StatusInternalServerError).
		Body(`{"error":"downstream exploded"}`).
		End()

	apitest.New().Handler(e).
		Get("/teapot").
		Expect(t).
		Status(http.StatusTeapot).
		Body(`{"error":"short and stout"}`).
		End()

	apitest.New().Handler(e).
		Get("/nowhere").
		Expect(t).
		Status(http.StatusNotFound).
		Body(`{"error":"Not Found"}`).
		End()
}
