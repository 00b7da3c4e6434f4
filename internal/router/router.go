package router // package router defines how HTTP routes are registered for the API

import (
	"github.com/labstack/echo/v4" // import the Echo web framework to handle routing

	"github.com/iliyamo/restaurant-reservation/internal/handler"    // import the handlers that implement business logic
	"github.com/iliyamo/restaurant-reservation/internal/middleware" // import middleware for JWT authentication and role enforcement
	"github.com/iliyamo/restaurant-reservation/internal/model"
)

// RegisterHealth registers the health check endpoint.  Load balancers
// and monitoring probe it to verify the service and its database are up.
func RegisterHealth(e *echo.Echo, h *handler.HealthHandler) {
	e.GET("/healthz", h.Check)
}

// RegisterPublic registers the unauthenticated guest endpoints:
// location listing, per-day availability, booking submission and
// newsletter signup.  The optional rate limiter and response cache
// middleware wrap these routes only; admin traffic is never limited.
func RegisterPublic(e *echo.Echo, p *handler.PublicHandler, n *handler.NewsletterHandler, mw ...echo.MiddlewareFunc) {
	g := e.Group("/v1", mw...)
	// Restaurants guests can book at.
	g.GET("/locations", p.ListLocations)
	// Bookable slots for a location and date: ?location_id=&date=YYYY-MM-DD
	g.GET("/availability", p.Availability)
	// Submit a booking.  Party of 1-12, fixed one-hour window.
	g.POST("/reservations", p.CreateReservation)
	// Newsletter signup and opt-out.
	g.POST("/newsletter", n.Subscribe)
	g.POST("/newsletter/unsubscribe", n.Unsubscribe)
}

// RegisterAdmin registers the dashboard API.  Login and refresh live
// under /v1/admin/auth without a token; everything else requires a
// valid access token with the admin or manager role.
func RegisterAdmin(e *echo.Echo, jwtSecret string,
	auth *handler.AdminAuthHandler,
	res *handler.AdminReservationHandler,
	blocks *handler.AdminBlockHandler,
	dash *handler.AdminDashboardHandler,
	customers *handler.AdminCustomerHandler) {

	g := e.Group("/v1/admin/auth")
	g.POST("/login", auth.Login)
	g.POST("/refresh", auth.Refresh)

	admin := e.Group("/v1/admin")
	admin.Use(middleware.JWTAuth(jwtSecret))
	admin.Use(middleware.RequireRole(model.RoleAdmin, model.RoleManager))

	// Profile
	admin.GET("/me", auth.Me)
	admin.PUT("/profile/name", auth.UpdateProfile)
	admin.PUT("/profile/password", auth.ChangePassword)

	// Reservations
	admin.GET("/reservations", res.List)
	admin.POST("/reservations", res.Create)
	admin.GET("/reservations/:id", res.Get)
	admin.PUT("/reservations/:id", res.UpdateDetails)
	admin.PATCH("/reservations/:id/status", res.UpdateStatus)
	admin.PATCH("/reservations/:id/room", res.AssignRoom)
	admin.DELETE("/reservations/:id", res.Delete)

	// Blocks
	admin.GET("/blocks", blocks.List)
	admin.POST("/blocks", blocks.Create)
	admin.DELETE("/blocks/:id", blocks.Delete)

	// Dashboard, rooms and audit trail
	admin.GET("/dashboard", dash.Stats)
	admin.GET("/rooms", dash.ListRooms)
	admin.PATCH("/rooms/:id/active", dash.SetRoomActive)
	admin.GET("/audit-log", dash.AuditLog)

	// Customers
	admin.GET("/customers", customers.List)
	admin.GET("/customers/:id", customers.Get)
	admin.PUT("/customers/:id", customers.Update)
	admin.DELETE("/customers/:id", customers.Delete)
}
