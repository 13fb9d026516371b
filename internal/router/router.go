package router

import (
	"github.com/labstack/echo/v4"

	"github.com/iliyamo/vehicle-rental-reservation/internal/handler"
	"github.com/iliyamo/vehicle-rental-reservation/internal/middleware"
)

// RegisterRoutes registers routes that require no authentication.
// Currently it exposes only the health check used by load balancers.
func RegisterRoutes(e *echo.Echo) {
	e.GET("/healthz", handler.Health)
}

// RegisterAuth registers the authentication endpoints.  Register, login,
// refresh and logout live under /v1/auth and need no existing session;
// /v1/me requires a valid access token.
func RegisterAuth(e *echo.Echo, a *handler.AuthHandler, jwtSecret string) {
	g := e.Group("/v1/auth")
	g.POST("/register", a.Register)
	g.POST("/login", a.Login)
	g.POST("/refresh", a.Refresh)
	g.POST("/logout", a.Logout)

	auth := e.Group("/v1")
	auth.Use(middleware.JWTAuth(jwtSecret))
	auth.GET("/me", a.Me)
}

// RegisterVehicles registers the fleet endpoints.  Browsing is public so
// guests can look at the fleet before signing up; the optional cache
// middleware fronts those reads.  Fleet management requires an operator
// or admin token.
func RegisterVehicles(e *echo.Echo, v *handler.VehicleHandler, jwtSecret string, cache echo.MiddlewareFunc) {
	pub := e.Group("/v1/vehicles")
	if cache != nil {
		pub.Use(cache)
	}
	pub.GET("", v.List)
	pub.GET("/:id", v.Get)

	ops := e.Group("/v1/admin/vehicles")
	ops.Use(middleware.JWTAuth(jwtSecret))
	ops.Use(middleware.RequireRole("OPERATOR", "ADMIN"))
	ops.POST("", v.Create)
	ops.PATCH("/:id/status", v.UpdateStatus)
}

// RegisterReservations registers the client reservation flow and the
// operator back-office endpoints.  The flow endpoints (details, payment
// method, back, payment confirmation) all act on the caller's own open
// flow, so they are CLIENT-scoped.
func RegisterReservations(e *echo.Echo, cr *handler.ClientReservationHandler, or *handler.OperatorReservationHandler, jwtSecret string) {
	client := e.Group("/v1")
	client.Use(middleware.JWTAuth(jwtSecret))
	client.Use(middleware.RequireRole("CLIENT"))
	client.POST("/reservations/details", cr.SubmitDetails)
	client.POST("/reservations/payment-method", cr.SelectPaymentMethod)
	client.POST("/reservations/back", cr.BackToDetails)
	client.POST("/payments/:token/complete", cr.CompletePayment)
	client.POST("/payments/:token/dismiss", cr.DismissPayment)
	client.GET("/my-reservations", cr.ListMine)
	client.GET("/reservations/:id", cr.GetOne)
	client.DELETE("/reservations/:id", cr.Cancel)

	ops := e.Group("/v1/admin/reservations")
	ops.Use(middleware.JWTAuth(jwtSecret))
	ops.Use(middleware.RequireRole("OPERATOR", "ADMIN"))
	ops.GET("", or.ListAll)
	ops.PATCH("/:id/status", or.UpdateStatus)
	ops.DELETE("/:id", or.Delete)
}
