// Package router wires HTTP endpoints to their handlers and applies
// the auth middleware per route group.
package router

import (
	"github.com/labstack/echo/v4"

	"github.com/rapsplay/console-rental/internal/handler"
	"github.com/rapsplay/console-rental/internal/middleware"
)

// RegisterRoutes registers endpoints that carry no authentication:
// health checking and the website enquiry form.
func RegisterRoutes(e *echo.Echo, enq *handler.EnquiryHandler) {
	e.GET("/healthz", handler.Health)
	e.POST("/enquiry", enq.Create)
}

// RegisterAuth registers the session endpoints under /v1/auth and the
// account endpoints under /v1 behind JWT auth.
func RegisterAuth(e *echo.Echo, a *handler.AuthHandler, jwtSecret string) {
	g := e.Group("/v1/auth")
	g.POST("/register", a.Register)
	g.POST("/login", a.Login)
	g.POST("/refresh", a.Refresh)
	// Logout works with a refresh token in the body and needs no JWT.
	g.POST("/logout", a.Logout)
	g.POST("/forgot-password", a.ForgotPassword)
	g.POST("/reset-password", a.ResetPassword)

	e.GET("/v1/users/exists/:email", a.ExistsByEmail)

	auth := e.Group("/v1", middleware.JWTAuth(jwtSecret))
	auth.GET("/me", a.Me)
	auth.POST("/me/profile", a.UpdateProfile)
	auth.POST("/me/avatar", a.UpdateAvatar)
	// Authenticated logout without a body revokes every session.
	auth.POST("/logout", a.Logout)

	admin := e.Group("/v1", middleware.JWTAuth(jwtSecret), middleware.RequireAdmin())
	admin.GET("/users", a.ListUsers)
}

// RegisterBookings registers the rental booking endpoints. Creation is
// open to guests but attaches to the account when a token is sent;
// listing and status changes are admin only.
func RegisterBookings(e *echo.Echo, b *handler.BookingHandler, jwtSecret string) {
	e.POST("/v1/bookings", b.Create, middleware.OptionalJWTAuth(jwtSecret))

	auth := e.Group("/v1", middleware.JWTAuth(jwtSecret))
	auth.GET("/my-booking", b.MyBooking)

	admin := e.Group("/v1", middleware.JWTAuth(jwtSecret), middleware.RequireAdmin())
	admin.GET("/bookings", b.List)
	admin.GET("/bookings/:id", b.Get)
	admin.POST("/bookings/:id/status", b.UpdateStatus)
}
