package handler

import (
    "context"
    "database/sql"
    "errors"
    "net/http"
    "strconv"
    "strings"
    "time"

    "github.com/labstack/echo/v4"

    "github.com/iliyamo/hotel-admin/internal/model"
    "github.com/iliyamo/hotel-admin/internal/repository"
)

// RoomHandler exposes admin CRUD for physical rooms.
type RoomHandler struct {
    Rooms     *repository.RoomRepo
    RoomTypes *repository.RoomTypeRepo
    Combos    *repository.ServiceComboRepo
}

func NewRoomHandler(rooms *repository.RoomRepo, types *repository.RoomTypeRepo, combos *repository.ServiceComboRepo) *RoomHandler {
    return &RoomHandler{Rooms: rooms, RoomTypes: types, Combos: combos}
}

type roomReq struct {
    RoomTypeID     uint64  `json:"room_type_id"`
    ServiceComboID *uint64 `json:"service_combo_id"`
    Number         string  `json:"number"`
    Floor          int32   `json:"floor"`
    IsActive       *bool   `json:"is_active"`
}

// checkRefs verifies the referenced room type and optional combo exist,
// returning a client-facing message when they do not.
func (h *RoomHandler) checkRefs(ctx context.Context, req roomReq) (string, error) {
    if _, err := h.RoomTypes.GetByID(ctx, req.RoomTypeID); err != nil {
        if errors.Is(err, repository.ErrRoomTypeNotFound) {
            return "room type not found", nil
        }
        return "", err
    }
    if req.ServiceComboID != nil {
        if _, err := h.Combos.GetByID(ctx, *req.ServiceComboID); err != nil {
            if errors.Is(err, repository.ErrServiceComboNotFound) {
                return "service combination not found", nil
            }
            return "", err
        }
    }
    return "", nil
}

// Create handles POST /v1/rooms.
func (h *RoomHandler) Create(c echo.Context) error {
    var req roomReq
    if err := c.Bind(&req); err != nil {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
    }
    req.Number = strings.TrimSpace(req.Number)
    if req.Number == "" || req.RoomTypeID == 0 {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "number and room_type_id required"})
    }

    ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
    defer cancel()

    if msg, err := h.checkRefs(ctx, req); err != nil {
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "lookup failed"})
    } else if msg != "" {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": msg})
    }

    active := true
    if req.IsActive != nil {
        active = *req.IsActive
    }
    m := &model.Room{
        RoomTypeID:     req.RoomTypeID,
        ServiceComboID: req.ServiceComboID,
        Number:         req.Number,
        Floor:          req.Floor,
        IsActive:       active,
    }
    if err := h.Rooms.Create(ctx, m); err != nil {
        if errors.Is(err, repository.ErrConflict) {
            return c.JSON(http.StatusConflict, echo.Map{"error": "room number already exists"})
        }
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "create room failed"})
    }
    return c.JSON(http.StatusCreated, m)
}

// List handles GET /v1/rooms with an optional ?room_type_id= filter.
func (h *RoomHandler) List(c echo.Context) error {
    var typeID uint64
    if s := c.QueryParam("room_type_id"); s != "" {
        n, err := strconv.ParseUint(s, 10, 64)
        if err != nil {
            return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid room_type_id"})
        }
        typeID = n
    }
    ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
    defer cancel()

    rooms, err := h.Rooms.List(ctx, typeID)
    if err != nil {
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "list rooms failed"})
    }
    return c.JSON(http.StatusOK, rooms)
}

// Get handles GET /v1/rooms/:id.
func (h *RoomHandler) Get(c echo.Context) error {
    id, ok := pathID(c, "id")
    if !ok {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
    }
    ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
    defer cancel()

    m, err := h.Rooms.GetByID(ctx, id)
    if err != nil {
        if errors.Is(err, repository.ErrRoomNotFound) {
            return c.JSON(http.StatusNotFound, echo.Map{"error": "room not found"})
        }
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "load room failed"})
    }
    return c.JSON(http.StatusOK, m)
}

// Update handles PUT/PATCH /v1/rooms/:id.
func (h *RoomHandler) Update(c echo.Context) error {
    id, ok := pathID(c, "id")
    if !ok {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
    }
    var req roomReq
    if err := c.Bind(&req); err != nil {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
    }
    req.Number = strings.TrimSpace(req.Number)
    if req.Number == "" || req.RoomTypeID == 0 {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "number and room_type_id required"})
    }

    ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
    defer cancel()

    if msg, err := h.checkRefs(ctx, req); err != nil {
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "lookup failed"})
    } else if msg != "" {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": msg})
    }

    active := true
    if req.IsActive != nil {
        active = *req.IsActive
    }
    m := &model.Room{
        ID:             id,
        RoomTypeID:     req.RoomTypeID,
        ServiceComboID: req.ServiceComboID,
        Number:         req.Number,
        Floor:          req.Floor,
        IsActive:       active,
    }
    if err := h.Rooms.Update(ctx, m); err != nil {
        switch {
        case errors.Is(err, sql.ErrNoRows):
            return c.JSON(http.StatusNotFound, echo.Map{"error": "room not found"})
        case errors.Is(err, repository.ErrConflict):
            return c.JSON(http.StatusConflict, echo.Map{"error": "room number already exists"})
        }
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "update room failed"})
    }
    fresh, err := h.Rooms.GetByID(ctx, id)
    if err != nil {
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "load room failed"})
    }
    return c.JSON(http.StatusOK, fresh)
}

// Delete handles DELETE /v1/rooms/:id.  Rooms with reservations return 409.
func (h *RoomHandler) Delete(c echo.Context) error {
    id, ok := pathID(c, "id")
    if !ok {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
    }
    ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
    defer cancel()

    if err := h.Rooms.Delete(ctx, id); err != nil {
        switch {
        case errors.Is(err, sql.ErrNoRows):
            return c.JSON(http.StatusNotFound, echo.Map{"error": "room not found"})
        case errors.Is(err, repository.ErrConflict):
            return c.JSON(http.StatusConflict, echo.Map{"error": "room has reservations"})
        }
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "delete room failed"})
    }
    return c.NoContent(http.StatusNoContent)
}
