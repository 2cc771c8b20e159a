package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/solvely-pub/internal/logging"
	"github.com/iliyamo/solvely-pub/internal/utils"
)

// Context keys set by JWTAuth.
const (
	ContextKeyClaims   = "claims"
	ContextKeyUsername = "username"
	ContextKeyEmail    = "email"
)

// TokenVerifier is the part of utils.TokenIssuer the gate needs.
type TokenVerifier interface {
	Verify(raw string) (utils.Claims, error)
}

// JWTAuth returns an Echo middleware that admits a request only when its
// Authorization header carries a valid token as the second space-separated
// part ("Bearer <token>").  The verified claims are stored under
// ContextKeyClaims, and the username and email under their own keys.
func JWTAuth(verifier TokenVerifier) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			raw := bearerToken(c.Request().Header.Get(echo.HeaderAuthorization))
			if raw == "" {
				return c.JSON(http.StatusUnauthorized, echo.Map{"message": "No token provided"})
			}

			claims, err := verifier.Verify(raw)
			if err != nil {
				log := logging.FromContext(c.Request().Context())
				log.Info().Err(err).Str("path", c.Path()).Msg("token rejected")
				msg := "Authorization token is invalid"
				if errors.Is(err, utils.ErrTokenExpired) {
					msg = "Authorization token expired"
				}
				return c.JSON(http.StatusUnauthorized, echo.Map{"message": msg})
			}

			c.Set(ContextKeyClaims, claims)
			c.Set(ContextKeyUsername, claims.Username)
			c.Set(ContextKeyEmail, claims.Email)
			return next(c)
		}
	}
}

// bearerToken returns the second space-separated part of header, or "".
// The scheme word itself is not checked.
func bearerToken(header string) string {
	parts := strings.Split(header, " ")
	if len(parts) < 2 {
		return ""
	}
	return parts[1]
}

// ClaimsFrom returns the claims stored by JWTAuth.
func ClaimsFrom(c echo.Context) (utils.Claims, bool) {
	claims, ok := c.Get(ContextKeyClaims).(utils.Claims)
	return claims, ok
}
