// Package router wires HTTP routes to handlers and middleware.
package router

import (
    "github.com/labstack/echo/v4"

    "github.com/iliyamo/hotel-admin/internal/handler"
    "github.com/iliyamo/hotel-admin/internal/middleware"
)

// RegisterRoutes registers routes that require no authentication.
func RegisterRoutes(e *echo.Echo) {
    // Health endpoint for load balancers and monitoring.
    e.GET("/healthz", handler.Health)
}

// RegisterAuth registers the session endpoints.  Register, login and
// the refresh variants live under /v1/auth and need no token; /v1/me is
// protected and open to both staff roles.
func RegisterAuth(e *echo.Echo, a *handler.AuthHandler, jwtSecret string) {
    g := e.Group("/v1/auth")
    g.POST("/register", a.Register)
    g.POST("/login", a.Login)
    // Rotates the refresh token.
    g.POST("/refresh", a.Refresh)
    // Issues a new access token without rotating the refresh token.
    g.POST("/refresh-access", a.RefreshAccess)
    // Logout takes either a bearer token (revokes every session) or a
    // refresh_token body (revokes one).  No JWT middleware here so an
    // expired access token can still end its session.
    g.POST("/logout", a.Logout)

    auth := e.Group("/v1",
        middleware.JWTAuth(jwtSecret),
        middleware.RequireRole("ADMIN", "RECEPTIONIST"),
    )
    auth.GET("/me", a.Me)
}
