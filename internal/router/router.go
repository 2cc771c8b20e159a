package router

import (
	"net/http"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"github.com/rs/zerolog"

	"github.com/iliyamo/solvely-pub/internal/handler"
	"github.com/iliyamo/solvely-pub/internal/logging"
)

// New returns an Echo instance with the shared middleware stack installed:
// panic recovery, request logging with request ids, and the CORS policy
// existing browser clients rely on.
func New(log zerolog.Logger) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.HTTPErrorHandler = handler.HTTPErrorHandler

	e.Use(echomw.Recover())
	e.Use(logging.RequestLogger(log))
	e.Use(echomw.CORSWithConfig(echomw.CORSConfig{
		AllowOrigins: []string{"*"},
		AllowMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete},
		AllowHeaders: []string{
			echo.HeaderContentType,
			echo.HeaderAuthorization,
			echo.HeaderXRequestedWith,
			echo.HeaderAccept,
			echo.HeaderOrigin,
		},
	}))
	return e
}

// RegisterRoutes registers the unauthenticated helpers under /api.
// versionCache wraps GET /api/version only; pass nil for none.
func RegisterRoutes(e *echo.Echo, t *handler.ToolsHandler, s *handler.SystemHandler, versionCache echo.MiddlewareFunc) {
	g := e.Group("/api")

	g.GET("/ping", s.Ping)
	g.GET("/healthcheck", s.Healthcheck)
	if versionCache != nil {
		g.GET("/version", s.GetVersion, versionCache)
	} else {
		g.GET("/version", s.GetVersion)
	}

	g.GET("/guid", t.Guid)
	g.GET("/generateSalt", t.GenerateSalt)
	g.GET("/generateScretKey", t.GenerateScretKey)
	g.POST("/generateSign", t.GenerateSign)
	g.POST("/encryptedAES", t.EncryptedAES)
	g.POST("/decryptedAES", t.DecryptedAES)
}
