package router

import (
    "github.com/labstack/echo/v4"

    "github.com/iliyamo/hotel-admin/internal/handler"
    "github.com/iliyamo/hotel-admin/internal/middleware"
)

// RegisterDesk registers the reservation desk endpoints under /v1 for
// both staff roles.  The date-change workflow is deliberately two-step:
// a settlement preview never mutates, and the PATCH commit demands an
// explicit confirm flag.
func RegisterDesk(e *echo.Echo, d *handler.DeskHandler, chat *handler.ChatHandler, jwtSecret string) {
    g := e.Group(
        "/v1",
        middleware.JWTAuth(jwtSecret),
        middleware.RequireRole("ADMIN", "RECEPTIONIST"),
    )

    // ---- Availability browse ----
    g.GET("/rooms/available", d.AvailableRooms)

    // ---- Reservations ----
    g.POST("/reservations", d.Create)
    g.GET("/reservations", d.List)
    g.GET("/reservations/:id", d.Get)
    g.POST("/reservations/:id/settlement", d.PreviewSettlement)
    g.PATCH("/reservations/:id", d.CommitEdit)
    g.POST("/reservations/:id/cancel", d.Cancel)

    // ---- Concierge chat ----
    g.POST("/chat", chat.Chat)
}
