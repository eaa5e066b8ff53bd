package router // package router defines how HTTP routes are registered for the API

import (
    "github.com/labstack/echo/v4"
    "github.com/prometheus/client_golang/prometheus/promhttp"

    "github.com/kerimd/service-booking-api/internal/handler"
    "github.com/kerimd/service-booking-api/internal/middleware"
    "github.com/kerimd/service-booking-api/internal/model"
)

// Handlers bundles every handler the router wires up.
type Handlers struct {
    Auth     *handler.AuthHandler
    Services *handler.ServiceHandler
    Bookings *handler.BookingHandler
    Reviews  *handler.ReviewHandler
}

// RegisterRoutes registers routes that do not require authentication on
// the provided Echo instance: the health check and the Prometheus
// metrics endpoint.
func RegisterRoutes(e *echo.Echo) {
    e.GET("/healthz", handler.Health)
    e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))
}

// RegisterPublic registers unauthenticated browse endpoints.  Catalog
// reads and review aggregates are safe for guests; the cache middleware
// passed in wraps them so repeated reads skip the database.
func RegisterPublic(e *echo.Echo, h Handlers, cache echo.MiddlewareFunc) {
    g := e.Group("/v1", cache)
    g.GET("/services", h.Services.ListPublic)
    g.GET("/services/search", h.Services.Search)
    g.GET("/services/:id", h.Services.GetPublic)
    g.GET("/services/:id/reviews", h.Reviews.ListByService)
    g.GET("/services/:id/reviews/stats", h.Reviews.Stats)
}

// RegisterAuth registers all authentication-related routes.
// Unauthenticated operations live under /v1/auth, while protected
// endpoints live under /v1.
func RegisterAuth(e *echo.Echo, a *handler.AuthHandler, jwtSecret string) {
    g := e.Group("/v1/auth")
    g.POST("/register", a.Register)
    g.POST("/login", a.Login)
    // Rotates the refresh token.
    g.POST("/refresh", a.Refresh)
    // Issues a new access token without rotating the refresh token.
    g.POST("/refresh-access", a.RefreshAccess)
    // Logout accepts a refresh_token in the body or a bearer token and
    // does not require the JWT middleware.
    g.POST("/logout", a.Logout)
    e.POST("/v1/logout", a.Logout)

    auth := e.Group("/v1")
    auth.Use(middleware.JWTAuth(jwtSecret))
    auth.Use(middleware.RequireRole(model.RoleUser, model.RoleAdmin))
    auth.GET("/me", a.Me)
}

// RegisterBookings registers the authenticated booking and review
// endpoints.  Both roles may create and manage their own bookings and
// reviews; the confirm/complete transitions and the admin catalog live
// under the admin group below.
func RegisterBookings(e *echo.Echo, h Handlers, jwtSecret string) {
    user := e.Group("/v1")
    user.Use(middleware.JWTAuth(jwtSecret))
    user.Use(middleware.RequireRole(model.RoleUser, model.RoleAdmin))

    user.POST("/bookings", h.Bookings.Create)
    user.GET("/bookings", h.Bookings.ListMine)
    user.GET("/bookings/:id", h.Bookings.Get)
    user.PATCH("/bookings/:id/cancel", h.Bookings.Cancel)

    user.POST("/reviews", h.Reviews.Create)
    user.GET("/my-reviews", h.Reviews.ListMine)
    user.PATCH("/reviews/:id", h.Reviews.Update)
    user.DELETE("/reviews/:id", h.Reviews.Delete)

    admin := e.Group("/v1")
    admin.Use(middleware.JWTAuth(jwtSecret))
    admin.Use(middleware.RequireRole(model.RoleAdmin))

    admin.PATCH("/bookings/:id/confirm", h.Bookings.Confirm)
    admin.PATCH("/bookings/:id/complete", h.Bookings.Complete)

    admin.GET("/admin/services", h.Services.ListAdmin)
    admin.POST("/admin/services", h.Services.Create)
    admin.PATCH("/admin/services/:id", h.Services.Update)
    admin.DELETE("/admin/services/:id", h.Services.Delete)
    admin.GET("/admin/services/:id/bookings", h.Bookings.ListByService)
}
