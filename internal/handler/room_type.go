package handler

import (
    "context"
    "database/sql"
    "errors"
    "net/http"
    "strings"
    "time"

    "github.com/labstack/echo/v4"
    "github.com/shopspring/decimal"

    "github.com/iliyamo/hotel-admin/internal/model"
    "github.com/iliyamo/hotel-admin/internal/repository"
)

// RoomTypeHandler exposes admin CRUD for room categories.
type RoomTypeHandler struct {
    RoomTypes *repository.RoomTypeRepo
}

func NewRoomTypeHandler(r *repository.RoomTypeRepo) *RoomTypeHandler {
    return &RoomTypeHandler{RoomTypes: r}
}

type roomTypeReq struct {
    Name        string          `json:"name"`
    Description *string         `json:"description"`
    BasePrice   decimal.Decimal `json:"base_price"`
    Capacity    uint32          `json:"capacity"`
    PhotoURL    *string         `json:"photo_url"`
}

func (req *roomTypeReq) validate() string {
    req.Name = strings.TrimSpace(req.Name)
    if req.Name == "" {
        return "name required"
    }
    if req.BasePrice.IsNegative() {
        return "base_price must not be negative"
    }
    if req.Capacity == 0 {
        return "capacity must be positive"
    }
    return ""
}

// Create handles POST /v1/room-types.
func (h *RoomTypeHandler) Create(c echo.Context) error {
    var req roomTypeReq
    if err := c.Bind(&req); err != nil {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
    }
    if msg := req.validate(); msg != "" {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": msg})
    }

    ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
    defer cancel()

    t := &model.RoomType{
        Name:        req.Name,
        Description: req.Description,
        BasePrice:   req.BasePrice,
        Capacity:    req.Capacity,
        PhotoURL:    req.PhotoURL,
    }
    if err := h.RoomTypes.Create(ctx, t); err != nil {
        if errors.Is(err, repository.ErrConflict) {
            return c.JSON(http.StatusConflict, echo.Map{"error": "room type name already exists"})
        }
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "create room type failed"})
    }
    return c.JSON(http.StatusCreated, t)
}

// List handles GET /v1/room-types.
func (h *RoomTypeHandler) List(c echo.Context) error {
    ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
    defer cancel()

    types, err := h.RoomTypes.List(ctx)
    if err != nil {
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "list room types failed"})
    }
    return c.JSON(http.StatusOK, types)
}

// Get handles GET /v1/room-types/:id.
func (h *RoomTypeHandler) Get(c echo.Context) error {
    id, ok := pathID(c, "id")
    if !ok {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
    }
    ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
    defer cancel()

    t, err := h.RoomTypes.GetByID(ctx, id)
    if err != nil {
        if errors.Is(err, repository.ErrRoomTypeNotFound) {
            return c.JSON(http.StatusNotFound, echo.Map{"error": "room type not found"})
        }
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "load room type failed"})
    }
    return c.JSON(http.StatusOK, t)
}

// Update handles PUT/PATCH /v1/room-types/:id.
func (h *RoomTypeHandler) Update(c echo.Context) error {
    id, ok := pathID(c, "id")
    if !ok {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
    }
    var req roomTypeReq
    if err := c.Bind(&req); err != nil {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
    }
    if msg := req.validate(); msg != "" {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": msg})
    }

    ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
    defer cancel()

    t := &model.RoomType{
        ID:          id,
        Name:        req.Name,
        Description: req.Description,
        BasePrice:   req.BasePrice,
        Capacity:    req.Capacity,
        PhotoURL:    req.PhotoURL,
    }
    if err := h.RoomTypes.Update(ctx, t); err != nil {
        switch {
        case errors.Is(err, sql.ErrNoRows):
            return c.JSON(http.StatusNotFound, echo.Map{"error": "room type not found"})
        case errors.Is(err, repository.ErrConflict):
            return c.JSON(http.StatusConflict, echo.Map{"error": "room type name already exists"})
        }
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "update room type failed"})
    }
    fresh, err := h.RoomTypes.GetByID(ctx, id)
    if err != nil {
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "load room type failed"})
    }
    return c.JSON(http.StatusOK, fresh)
}

// Delete handles DELETE /v1/room-types/:id.  Types still referenced by
// rooms return 409.
func (h *RoomTypeHandler) Delete(c echo.Context) error {
    id, ok := pathID(c, "id")
    if !ok {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
    }
    ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
    defer cancel()

    if err := h.RoomTypes.Delete(ctx, id); err != nil {
        switch {
        case errors.Is(err, sql.ErrNoRows):
            return c.JSON(http.StatusNotFound, echo.Map{"error": "room type not found"})
        case errors.Is(err, repository.ErrConflict):
            return c.JSON(http.StatusConflict, echo.Map{"error": "room type still has rooms"})
        }
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "delete room type failed"})
    }
    return c.NoContent(http.StatusNoContent)
}
