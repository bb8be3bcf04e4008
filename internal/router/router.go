package router // package router defines how HTTP routes are registered for the API

import (
	"github.com/labstack/echo/v4" // import the Echo web framework to handle routing

	"github.com/iliyamo/campus-events/internal/handler"    // import the handlers that implement business logic
	"github.com/iliyamo/campus-events/internal/middleware" // import middleware for JWT authentication
)

// RegisterRoutes registers routes that do not require authentication on the
// provided Echo instance. Currently it exposes only a health check.
func RegisterRoutes(e *echo.Echo) {
	// Map the GET request at path "/healthz" to the Health handler. This
	// endpoint can be used by load balancers or monitoring systems to verify
	// that the service is up and running.
	e.GET("/healthz", handler.Health)
}

// RegisterAuth registers all authentication-related routes and applies the
// necessary middleware. Unauthenticated operations live under /v1/auth,
// while the caller's profile endpoint lives under the protected /v1 group.
func RegisterAuth(e *echo.Echo, a *handler.AuthHandler, jwtSecret string) {
	// Operations that do not require an existing session (register, login,
	// refresh, logout). Each handler generates or exchanges tokens itself.
	g := e.Group("/v1/auth")
	g.POST("/register", a.Register)
	g.POST("/login", a.Login)
	// Rotates the refresh token and returns a fresh pair.
	g.POST("/refresh", a.Refresh)
	// Issues a new access token without rotating the refresh token.
	g.POST("/refresh-access", a.RefreshAccess)
	// Logout takes a refresh token in the body and invalidates it; no JWT
	// is required.
	g.POST("/logout", a.Logout)

	auth := e.Group("/v1")
	auth.Use(middleware.JWTAuth(jwtSecret))
	// Returns the authenticated user's profile.
	auth.GET("/me", a.Me)
}

// RegisterEvents registers the event, registration and statistics routes.
// Everything except the public event listing requires a valid access token.
func RegisterEvents(e *echo.Echo, ev *handler.EventHandler, reg *handler.RegistrationHandler, st *handler.StatisticsHandler, jwtSecret string) {
	// Public browse endpoint for guests; no JWT middleware applies here.
	e.GET("/v1/events/public", ev.ListPublic)

	auth := e.Group("/v1")
	auth.Use(middleware.JWTAuth(jwtSecret))

	// Event CRUD. Listing without an id returns the caller's own events;
	// update and delete are restricted to the creator inside the workflow.
	auth.POST("/events", ev.Create)
	auth.GET("/events", ev.ListMine)
	auth.GET("/events/:id", ev.Get)
	auth.PUT("/events/:id", ev.Update)
	auth.DELETE("/events/:id", ev.Delete)

	// Registration flow: enroll, check own status, list registrants
	// (creator only).
	auth.POST("/events/:id/register", reg.Register)
	auth.GET("/events/:id/registration", reg.Status)
	auth.GET("/events/:id/registrations", reg.ListForEvent)

	// Creator-facing statistics view.
	auth.GET("/events/:id/statistics", st.Get)
}
