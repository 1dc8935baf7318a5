package middleware

import (
	"crypto/subtle"
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/Skotchmaster/epicbeats/internal/domain"
	"github.com/Skotchmaster/epicbeats/internal/logging"
	"github.com/Skotchmaster/epicbeats/internal/tokens"
)

const (
	CSRFHeader = "X-CSRF-Token"

	ctxUserID   = "user_id"
	ctxUserName = "user_name"
	ctxRole     = "role"
)

type Verifier interface {
	VerifyToken(raw string) (*tokens.SessionClaims, error)
}

type SessionMiddleware struct {
	Tokens       Verifier
	CookieSecure bool
}

func NewSessionMiddleware(v Verifier, cookieSecure bool) *SessionMiddleware {
	return &SessionMiddleware{Tokens: v, CookieSecure: cookieSecure}
}

type ValidatorFunc func(claims *tokens.SessionClaims) error

func (m *SessionMiddleware) RequireAuth(next echo.HandlerFunc) echo.HandlerFunc {
	return m.requireSessionWithValidator(next, nil)
}

func (m *SessionMiddleware) RequireAdmin(next echo.HandlerFunc) echo.HandlerFunc {
	return m.requireSessionWithValidator(next, func(claims *tokens.SessionClaims) error {
		if claims.RoleName != domain.RoleAdmin {
			return echo.NewHTTPError(http.StatusForbidden, "admin access required")
		}
		return nil
	})
}

func (m *SessionMiddleware) requireSessionWithValidator(next echo.HandlerFunc, validator ValidatorFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		l := logging.FromContext(c.Request().Context()).With("mw", "session")

		raw := ""
		if cookie, err := c.Cookie(SessionCookie); err == nil {
			raw = cookie.Value
		}

		claims, err := m.Tokens.VerifyToken(raw)
		if err != nil {
			switch {
			case errors.Is(err, tokens.ErrMissingToken):
				return echo.NewHTTPError(http.StatusUnauthorized, "missing session token")
			case errors.Is(err, tokens.ErrExpiredToken):
				c.SetCookie(DeleteCookie(SessionCookie, "/", m.CookieSecure))
				return echo.NewHTTPError(http.StatusUnauthorized, "session expired")
			case errors.Is(err, tokens.ErrMalformedToken):
				l.Warn("session_rejected", "status", 401, "reason", "malformed token")
				c.SetCookie(DeleteCookie(SessionCookie, "/", m.CookieSecure))
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid session token")
			default:
				l.Error("session_rejected", "status", 500, "reason", "token service unavailable", "error", err)
				return echo.NewHTTPError(http.StatusInternalServerError, "authentication is not available")
			}
		}

		if isUnsafe(c.Request().Method) && !secureCompare(claims.CSRFToken, c.Request().Header.Get(CSRFHeader)) {
			l.Warn("session_rejected", "status", 403, "reason", "csrf token mismatch", "user_id", claims.UserID)
			return echo.NewHTTPError(http.StatusForbidden, "invalid CSRF token")
		}

		if validator != nil {
			if err := validator(claims); err != nil {
				return err
			}
		}

		setUserContext(c, claims)
		return next(c)
	}
}

func isUnsafe(method string) bool {
	switch method {
	case http.MethodGet, http.MethodHead, http.MethodOptions:
		return false
	}
	return true
}

func secureCompare(a, b string) bool {
	if a == "" || len(a) != len(b) {
		return false
	}
	return subtle.ConstantTimeCompare([]byte(a), []byte(b)) == 1
}

func setUserContext(c echo.Context, claims *tokens.SessionClaims) {
	c.Set(ctxUserID, claims.UserID)
	c.Set(ctxUserName, claims.UserName)
	c.Set(ctxRole, claims.RoleName)
}

// UserID returns the id stored by RequireAuth or RequireAdmin.
func UserID(c echo.Context) (uint, bool) {
	id, ok := c.Get(ctxUserID).(uint)
	return id, ok && id != 0
}

func Role(c echo.Context) string {
	r, _ := c.Get(ctxRole).(string)
	return r
}
