package router // package router defines how HTTP routes are registered for the API

import (
	"github.com/labstack/echo/v4" // Echo web framework used to handle routing

	"github.com/playbox/game-rental/internal/handler"    // handlers that implement business logic
	"github.com/playbox/game-rental/internal/middleware" // middleware for JWT authentication and role enforcement
	"github.com/playbox/game-rental/internal/model"
)

// Handlers groups every handler the router wires up.  All fields must
// be non-nil except where noted.
type Handlers struct {
	Auth      *handler.AuthHandler
	Profile   *handler.ProfileHandler
	Catalog   *handler.CatalogHandler
	Orders    *handler.OrderHandler
	Tracking  *handler.TrackingHandler
	UserAdmin *handler.UserAdminHandler
}

// Register wires all application routes onto the provided Echo
// instance.  cacheMW may be nil when Redis is unavailable; it is only
// applied to the public catalog browse routes.
func Register(e *echo.Echo, h Handlers, jwtSecret string, cacheMW echo.MiddlewareFunc) {
	// Health check for load balancers and monitoring.
	e.GET("/healthz", handler.Health)

	// Unauthenticated session endpoints.
	g := e.Group("/v1/auth")
	g.POST("/register", h.Auth.Register)
	g.POST("/login", h.Auth.Login)
	g.POST("/refresh", h.Auth.Refresh)
	g.POST("/logout", h.Auth.Logout)

	// Public catalog browsing; cached when Redis is configured.
	if cacheMW != nil {
		e.GET("/v1/catalog", h.Catalog.Browse, cacheMW)
		e.GET("/v1/catalog/:id", h.Catalog.Get, cacheMW)
	} else {
		e.GET("/v1/catalog", h.Catalog.Browse)
		e.GET("/v1/catalog/:id", h.Catalog.Get)
	}

	// Everything below requires a valid access token.
	auth := e.Group("/v1")
	auth.Use(middleware.JWTAuth(jwtSecret))
	auth.Use(middleware.RequireRole(model.RoleCustomer, model.RoleEmployee, model.RoleManager))

	auth.GET("/me", h.Auth.Me)
	auth.GET("/me/profile", h.Profile.Get)
	auth.PATCH("/me/profile", h.Profile.Update)

	auth.POST("/orders", h.Orders.Place)
	auth.GET("/my-orders", h.Orders.List)
	auth.GET("/my-orders/recent", h.Orders.Recent)
	auth.GET("/orders/:id/games", h.Orders.Games)
	auth.GET("/tracking/:id", h.Tracking.Get)

	// Tracking updates are performed by staff.
	staff := e.Group("/v1")
	staff.Use(middleware.JWTAuth(jwtSecret))
	staff.Use(middleware.RequireRole(model.RoleEmployee, model.RoleManager))
	staff.PUT("/tracking/:id", h.Tracking.Update)

	// Catalog and user administration are manager-only.
	mgr := e.Group("/v1")
	mgr.Use(middleware.JWTAuth(jwtSecret))
	mgr.Use(middleware.RequireRole(model.RoleManager))
	mgr.PUT("/catalog/:id", h.Catalog.Update)
	mgr.PATCH("/users/:login", h.UserAdmin.Update)
}
