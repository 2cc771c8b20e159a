package middleware

// identity.go holds the request identity helpers shared by the rate limiter
// and the cache.  The username comes from JWTAuth when the route is gated;
// anonymous callers are keyed by IP alone.

import (
	"strings"

	"github.com/labstack/echo/v4"
)

const anonymous = "anon"

func currentUsername(c echo.Context) string {
	if v, ok := c.Get(ContextKeyUsername).(string); ok && v != "" {
		return v
	}
	return anonymous
}

func clientIP(c echo.Context) string {
	if ip := c.RealIP(); ip != "" {
		return ip
	}
	return "unknown"
}

func routeOf(c echo.Context) string {
	return c.Request().Method + " " + c.Path()
}

// identityKey builds "<prefix>:<parts...>" for the given strategy.
// Unknown strategies key on ip, user and route together.
func identityKey(prefix, strategy string, c echo.Context) string {
	ip, user, route := clientIP(c), currentUsername(c), routeOf(c)

	parts := []string{prefix}
	switch strings.ToLower(strategy) {
	case "ip":
		parts = append(parts, "ip", ip)
	case "user":
		parts = append(parts, "user", user)
	case "route":
		parts = append(parts, "route", route)
	case "ip_user":
		parts = append(parts, "ip", ip, "user", user)
	case "ip_route":
		parts = append(parts, "ip", ip, "route", route)
	case "user_route":
		parts = append(parts, "user", user, "route", route)
	default:
		parts = append(parts, "ip", ip, "user", user, "route", route)
	}
	return strings.Join(parts, ":")
}
