package router

import (
	"github.com/labstack/echo/v4"

	"github.com/iliyamo/solvely-pub/internal/handler"
	"github.com/iliyamo/solvely-pub/internal/middleware"
)

// RegisterUser registers /api/v1/user.  login is throttled by limiter
// (nil for none); getUserInfo requires a valid token.
func RegisterUser(e *echo.Echo, u *handler.UserHandler, verifier middleware.TokenVerifier, limiter echo.MiddlewareFunc) {
	g := e.Group("/api/v1/user")

	if limiter != nil {
		g.POST("/login", u.Login, limiter)
	} else {
		g.POST("/login", u.Login)
	}
	g.GET("/getUserInfo", u.GetUserInfo, middleware.JWTAuth(verifier))
}
