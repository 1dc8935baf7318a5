package httpserver

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/Skotchmaster/epicbeats/internal/logging"
	middleware "github.com/Skotchmaster/epicbeats/internal/middleware/auth"
	"github.com/Skotchmaster/epicbeats/internal/service"
	"github.com/Skotchmaster/epicbeats/internal/transport"
)

type AuthHTTP struct {
	Svc          *service.AuthService
	CookieSecure bool
}

func (h *AuthHTTP) Register(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "auth.register")

	var req transport.RegisterRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("register_failed", "status", 400, "reason", "invalid body", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	user, err := h.Svc.Register(ctx, req)
	if err != nil {
		return httpError(l, "register_failed", err)
	}

	l.Info("register_success", "user_id", user.ID)
	return success(c, http.StatusCreated, user)
}

func (h *AuthHTTP) Login(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "auth.login")

	var req transport.LoginRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("login_failed", "status", 400, "reason", "invalid body", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	res, err := h.Svc.Login(ctx, req)
	if err != nil {
		return httpError(l, "login_failed", err)
	}

	c.SetCookie(middleware.CreateCookie(middleware.SessionCookie, res.Token, "/", res.ExpiresAt, h.CookieSecure))
	l.Info("login_success", "user_id", res.User.ID)

	return success(c, http.StatusOK, transport.LoginResponse{
		CSRFToken: res.CSRFToken,
		ExpiresAt: res.ExpiresAt,
		User:      res.User,
	})
}

func (h *AuthHTTP) Logout(c echo.Context) error {
	c.SetCookie(middleware.DeleteCookie(middleware.SessionCookie, "/", h.CookieSecure))
	logging.FromContext(c.Request().Context()).Info("logout_success")
	return success(c, http.StatusOK, nil)
}

func (h *AuthHTTP) ResetPassword(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "auth.reset_password")

	var req transport.ResetPasswordRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("reset_password_failed", "status", 400, "reason", "invalid body", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	if err := h.Svc.ResetPassword(ctx, req); err != nil {
		return httpError(l, "reset_password_failed", err)
	}
	return success(c, http.StatusOK, nil)
}

func (h *AuthHTTP) Me(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "auth.me")

	id, ok := middleware.UserID(c)
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, "missing session")
	}

	user, err := h.Svc.Me(ctx, id)
	if err != nil {
		return httpError(l, "me_failed", err)
	}
	return success(c, http.StatusOK, user)
}

func (h *AuthHTTP) ChangeEmail(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "auth.change_email")

	id, ok := middleware.UserID(c)
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, "missing session")
	}

	var req transport.ChangeEmailRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("change_email_failed", "status", 400, "reason", "invalid body", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	user, err := h.Svc.ChangeEmail(ctx, id, req)
	if err != nil {
		return httpError(l, "change_email_failed", err)
	}

	l.Info("change_email_success", "user_id", id)
	return success(c, http.StatusOK, user)
}
