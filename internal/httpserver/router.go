package httpserver

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"

	"github.com/Skotchmaster/epicbeats/internal/logging"
	middleware "github.com/Skotchmaster/epicbeats/internal/middleware/auth"
	loggingmw "github.com/Skotchmaster/epicbeats/internal/middleware/logging"
)

type Deps struct {
	InstrumentalHandler *InstrumentalHTTP
	AuthHandler         *AuthHTTP
	Session             *middleware.SessionMiddleware
	// Ready reports whether the store answers; nil means always ready.
	Ready func(ctx context.Context) error
}

func New(logger *slog.Logger) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HTTPErrorHandler = ErrorHandler
	e.Pre(echomw.RemoveTrailingSlash())
	e.Use(echomw.Recover())
	e.Use(echomw.RequestID())
	e.Use(loggingmw.RequestLogger(logger))
	return e
}

func Register(e *echo.Echo, d *Deps) {
	e.RouteNotFound("/*", func(c echo.Context) error {
		return echo.NewHTTPError(http.StatusNotFound, "route not found")
	})

	e.GET("/health/live", func(c echo.Context) error { return c.NoContent(http.StatusOK) })
	e.GET("/health/ready", func(c echo.Context) error {
		if d.Ready == nil {
			return c.NoContent(http.StatusOK)
		}
		ctx, cancel := context.WithTimeout(c.Request().Context(), 2*time.Second)
		defer cancel()
		if err := d.Ready(ctx); err != nil {
			logging.FromContext(ctx).Warn("readiness_failed", "status", 503, "error", err)
			return echo.NewHTTPError(http.StatusServiceUnavailable, "store is not reachable")
		}
		return c.NoContent(http.StatusOK)
	})

	api := e.Group("/epicbeats")

	instrumentals := api.Group("/instrumentals")
	instrumentals.GET("", d.InstrumentalHandler.List)
	instrumentals.GET("/search", d.InstrumentalHandler.Search)
	instrumentals.GET("/:id", d.InstrumentalHandler.Get)
	// per-route so unknown paths under the prefix still reach the 404 handler
	instrumentals.POST("", d.InstrumentalHandler.Create, d.Session.RequireAdmin)
	instrumentals.PATCH("/:id", d.InstrumentalHandler.Patch, d.Session.RequireAdmin)
	instrumentals.DELETE("/:id", d.InstrumentalHandler.Delete, d.Session.RequireAdmin)

	auth := api.Group("/auth")
	auth.POST("/register", d.AuthHandler.Register)
	auth.POST("/login", d.AuthHandler.Login)
	auth.POST("/logout", d.AuthHandler.Logout)
	auth.POST("/password/reset", d.AuthHandler.ResetPassword)

	auth.GET("/me", d.AuthHandler.Me, d.Session.RequireAuth)
	auth.PATCH("/me/email", d.AuthHandler.ChangeEmail, d.Session.RequireAuth)
}
