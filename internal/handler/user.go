package handler

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/solvely-pub/internal/logging"
	"github.com/iliyamo/solvely-pub/internal/middleware"
	"github.com/iliyamo/solvely-pub/internal/service"
	"github.com/iliyamo/solvely-pub/internal/utils"
)

// Authenticator is the part of service.AuthService the user routes need.
type Authenticator interface {
	Login(ctx context.Context, req service.LoginRequest) (string, error)
	Profile(claims utils.Claims) service.UserInfo
}

// UserHandler serves /api/v1/user.
type UserHandler struct {
	Auth    Authenticator
	Timeout time.Duration
}

func NewUserHandler(auth Authenticator) *UserHandler {
	return &UserHandler{Auth: auth, Timeout: 5 * time.Second}
}

// ----- DTOs -----

type loginReq struct {
	UserName *string `json:"userName"`
	PassWord *string `json:"passWord"`
}

// Login: POST /api/v1/user/login.  Unknown user and wrong password are both
// 403 with distinct messages.
func (h *UserHandler) Login(c echo.Context) error {
	var req loginReq
	if err := bindBody(c, &req); err != nil {
		return badRequest(c, "invalid body")
	}
	if msg := requireFields(field("userName", req.UserName), field("passWord", req.PassWord)); msg != "" {
		return badRequest(c, msg)
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.Timeout)
	defer cancel()

	token, err := h.Auth.Login(ctx, service.LoginRequest{
		Username:  *req.UserName,
		Password:  *req.PassWord,
		RemoteIP:  c.RealIP(),
		RequestID: c.Response().Header().Get(echo.HeaderXRequestID),
	})
	switch {
	case errors.Is(err, service.ErrUserNotFound), errors.Is(err, service.ErrPasswordMismatch):
		return respond(c, http.StatusForbidden, "", err.Error())
	case err != nil:
		log := logging.FromContext(ctx)
		log.Error().Err(err).Msg("login failed")
		return respond(c, http.StatusInternalServerError, "", "login failed")
	}
	return ok(c, token, "login success")
}

// GetUserInfo: GET /api/v1/user/getUserInfo, behind middleware.JWTAuth.
func (h *UserHandler) GetUserInfo(c echo.Context) error {
	claims, found := middleware.ClaimsFrom(c)
	if !found {
		return respond(c, http.StatusOK, echo.Map{}, "get user info failed")
	}
	return ok(c, h.Auth.Profile(claims), "get user info success")
}
