package router

import (
    "github.com/labstack/echo/v4"

    "github.com/iliyamo/hotel-admin/internal/handler"
    "github.com/iliyamo/hotel-admin/internal/middleware"
)

// RegisterAdmin registers the back-office endpoints under /v1.  All of
// them require a valid JWT with the ADMIN role.  The cache middleware is
// applied to catalog reads only; reservation and availability data must
// never be served stale.
func RegisterAdmin(e *echo.Echo, rt *handler.RoomTypeHandler, rm *handler.RoomHandler, sc *handler.ServiceComboHandler, u *handler.UserHandler, jwtSecret string, cache echo.MiddlewareFunc) {
    g := e.Group(
        "/v1",
        middleware.JWTAuth(jwtSecret),
        middleware.RequireRole("ADMIN"),
    )

    // ---- Room types ----
    g.POST("/room-types", rt.Create)
    g.GET("/room-types", rt.List, cache)
    g.GET("/room-types/:id", rt.Get, cache)
    g.PUT("/room-types/:id", rt.Update)
    g.PATCH("/room-types/:id", rt.Update)
    g.DELETE("/room-types/:id", rt.Delete)

    // ---- Rooms ----
    g.POST("/rooms", rm.Create)
    g.GET("/rooms", rm.List, cache)
    g.GET("/rooms/:id", rm.Get, cache)
    g.PUT("/rooms/:id", rm.Update)
    g.PATCH("/rooms/:id", rm.Update)
    g.DELETE("/rooms/:id", rm.Delete)

    // ---- Service combinations ----
    g.POST("/service-combos", sc.Create)
    g.GET("/service-combos", sc.List, cache)
    g.GET("/service-combos/:id", sc.Get, cache)
    g.PUT("/service-combos/:id", sc.Update)
    g.PATCH("/service-combos/:id", sc.Update)
    g.DELETE("/service-combos/:id", sc.Delete)

    // ---- Staff accounts ----
    g.GET("/users", u.List)
    g.POST("/users", u.Create)
    g.PATCH("/users/:id", u.Update)
    g.DELETE("/users/:id", u.Delete)
}
