package httpserver

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/Skotchmaster/epicbeats/internal/repo"
	"github.com/Skotchmaster/epicbeats/internal/service"
	"github.com/Skotchmaster/epicbeats/internal/tokens"
)

const (
	statusSuccess = "success"
	statusError   = "error"
)

type envelope struct {
	Status  string `json:"status"`
	Data    any    `json:"data,omitempty"`
	Message string `json:"message,omitempty"`
}

func success(c echo.Context, code int, data any) error {
	return c.JSON(code, envelope{Status: statusSuccess, Data: data})
}

// ErrorHandler renders every error as an error envelope. Messages of
// non-HTTP errors never reach the client.
func ErrorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}

	code := http.StatusInternalServerError
	msg := http.StatusText(code)

	var he *echo.HTTPError
	if errors.As(err, &he) {
		code = he.Code
		switch m := he.Message.(type) {
		case string:
			msg = m
		case error:
			msg = m.Error()
		default:
			msg = fmt.Sprint(m)
		}
		if code >= http.StatusInternalServerError && he.Internal != nil {
			msg = http.StatusText(code)
		}
	}

	if c.Request().Method == http.MethodHead {
		_ = c.NoContent(code)
		return
	}
	_ = c.JSON(code, envelope{Status: statusError, Message: msg})
}

// httpError maps service and repository failures to HTTP errors and logs
// them under event.
func httpError(l *slog.Logger, event string, err error) error {
	switch {
	case errors.Is(err, service.ErrValidation):
		l.Warn(event, "status", 400, "reason", "invalid input", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	case errors.Is(err, service.ErrNotFound):
		l.Warn(event, "status", 404, "reason", "not found")
		return echo.NewHTTPError(http.StatusNotFound, "not found")
	case errors.Is(err, service.ErrConflict):
		l.Warn(event, "status", 409, "reason", "conflict", "error", err)
		return echo.NewHTTPError(http.StatusConflict, err.Error())
	case errors.Is(err, service.ErrInvalidCredentials):
		l.Warn(event, "status", 401, "reason", "invalid credentials")
		return echo.NewHTTPError(http.StatusUnauthorized, err.Error())
	case errors.Is(err, service.ErrSearchUnavailable):
		l.Warn(event, "status", 503, "reason", "search unavailable")
		return echo.NewHTTPError(http.StatusServiceUnavailable, "search is unavailable")
	case errors.Is(err, service.ErrResetUnavailable):
		l.Warn(event, "status", 503, "reason", "reset delivery unavailable", "error", err)
		return echo.NewHTTPError(http.StatusServiceUnavailable, "password reset is unavailable")
	case errors.Is(err, tokens.ErrConfiguration):
		l.Error(event, "status", 500, "reason", "token secret missing", "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "authentication is not available")
	case errors.Is(err, repo.ErrRepository):
		l.Error(event, "status", 500, "reason", "store failure", "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "internal server error")
	default:
		l.Error(event, "status", 500, "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "internal server error")
	}
}
