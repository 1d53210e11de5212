package router // package router defines how HTTP routes are registered for the API

import (
	"github.com/labstack/echo/v4" // the Echo web framework handles routing

	"github.com/tickettango/api/internal/handler"    // handlers implementing the endpoints
	"github.com/tickettango/api/internal/middleware" // JWT authentication middleware
)

// RegisterRoutes registers routes that do not require authentication on the
// provided Echo instance.  Currently it exposes only a health check used by
// load balancers and monitoring systems.
func RegisterRoutes(e *echo.Echo) {
	e.GET("/healthz", handler.Health)
}

// RegisterAuth registers the authentication endpoints under /v1/auth.  None
// of them require an existing session; register and login create one, and
// verify introspects a presented token.
func RegisterAuth(e *echo.Echo, a *handler.AuthHandler) {
	g := e.Group("/v1/auth")
	g.POST("/register", a.Register)
	g.POST("/login", a.Login)
	g.GET("/verify", a.Verify)
}

// RegisterEvents registers the public event catalogue endpoints.  These are
// unauthenticated browse routes; the supplied cache middleware (a no-op when
// Redis is unavailable) is applied to each of them.
func RegisterEvents(e *echo.Echo, h *handler.EventHandler, cache echo.MiddlewareFunc) {
	e.GET("/v1/events", h.List, cache)
	// The featured route must be registered before the :id route would
	// otherwise swallow it on some routers; echo matches static segments
	// first, but keeping the order explicit costs nothing.
	e.GET("/v1/events/featured/upcoming", h.Featured, cache)
	e.GET("/v1/events/:id", h.Get, cache)
}

// RegisterBookings registers the booking endpoints under /v1/bookings.  All
// of them require a valid access token; the JWT middleware extracts the
// user ID that the booking core trusts.
func RegisterBookings(e *echo.Echo, h *handler.BookingHandler, jwtSecret string) {
	g := e.Group("/v1/bookings")
	g.Use(middleware.JWTAuth(jwtSecret))
	g.POST("", h.Create)
	g.GET("", h.ListMine)
	g.GET("/:id", h.Get)
}
