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

// ServiceComboHandler exposes admin CRUD for service combinations.
type ServiceComboHandler struct {
    Combos *repository.ServiceComboRepo
}

func NewServiceComboHandler(r *repository.ServiceComboRepo) *ServiceComboHandler {
    return &ServiceComboHandler{Combos: r}
}

type serviceComboReq struct {
    Name        string          `json:"name"`
    Description *string         `json:"description"`
    Services    []string        `json:"services"`
    DailyPrice  decimal.Decimal `json:"daily_price"`
    IsActive    *bool           `json:"is_active"`
}

// normalize trims the service labels and joins them for storage.  An
// empty list and a negative price are the only invalid shapes.
func (req *serviceComboReq) normalize() (string, string) {
    req.Name = strings.TrimSpace(req.Name)
    if req.Name == "" {
        return "", "name required"
    }
    labels := make([]string, 0, len(req.Services))
    for _, s := range req.Services {
        if s = strings.TrimSpace(s); s != "" {
            labels = append(labels, s)
        }
    }
    if len(labels) == 0 {
        return "", "services must not be empty"
    }
    if req.DailyPrice.IsNegative() {
        return "", "daily_price must not be negative"
    }
    return strings.Join(labels, ","), ""
}

// Create handles POST /v1/service-combos.
func (h *ServiceComboHandler) Create(c echo.Context) error {
    var req serviceComboReq
    if err := c.Bind(&req); err != nil {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
    }
    services, msg := req.normalize()
    if msg != "" {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": msg})
    }

    ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
    defer cancel()

    active := true
    if req.IsActive != nil {
        active = *req.IsActive
    }
    m := &model.ServiceCombo{
        Name:        req.Name,
        Description: req.Description,
        Services:    services,
        DailyPrice:  req.DailyPrice,
        IsActive:    active,
    }
    if err := h.Combos.Create(ctx, m); err != nil {
        if errors.Is(err, repository.ErrConflict) {
            return c.JSON(http.StatusConflict, echo.Map{"error": "combo name already exists"})
        }
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "create combo failed"})
    }
    return c.JSON(http.StatusCreated, m)
}

// List handles GET /v1/service-combos.
func (h *ServiceComboHandler) List(c echo.Context) error {
    ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
    defer cancel()

    combos, err := h.Combos.List(ctx)
    if err != nil {
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "list combos failed"})
    }
    return c.JSON(http.StatusOK, combos)
}

// Get handles GET /v1/service-combos/:id.
func (h *ServiceComboHandler) Get(c echo.Context) error {
    id, ok := pathID(c, "id")
    if !ok {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
    }
    ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
    defer cancel()

    m, err := h.Combos.GetByID(ctx, id)
    if err != nil {
        if errors.Is(err, repository.ErrServiceComboNotFound) {
            return c.JSON(http.StatusNotFound, echo.Map{"error": "combo not found"})
        }
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "load combo failed"})
    }
    return c.JSON(http.StatusOK, m)
}

// Update handles PUT/PATCH /v1/service-combos/:id.
func (h *ServiceComboHandler) Update(c echo.Context) error {
    id, ok := pathID(c, "id")
    if !ok {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
    }
    var req serviceComboReq
    if err := c.Bind(&req); err != nil {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
    }
    services, msg := req.normalize()
    if msg != "" {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": msg})
    }

    ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
    defer cancel()

    active := true
    if req.IsActive != nil {
        active = *req.IsActive
    }
    m := &model.ServiceCombo{
        ID:          id,
        Name:        req.Name,
        Description: req.Description,
        Services:    services,
        DailyPrice:  req.DailyPrice,
        IsActive:    active,
    }
    if err := h.Combos.Update(ctx, m); err != nil {
        if errors.Is(err, sql.ErrNoRows) {
            return c.JSON(http.StatusNotFound, echo.Map{"error": "combo not found"})
        }
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "update combo failed"})
    }
    fresh, err := h.Combos.GetByID(ctx, id)
    if err != nil {
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "load combo failed"})
    }
    return c.JSON(http.StatusOK, fresh)
}

// Delete handles DELETE /v1/service-combos/:id.  Combos attached to
// rooms return 409.
func (h *ServiceComboHandler) Delete(c echo.Context) error {
    id, ok := pathID(c, "id")
    if !ok {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
    }
    ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
    defer cancel()

    if err := h.Combos.Delete(ctx, id); err != nil {
        switch {
        case errors.Is(err, sql.ErrNoRows):
            return c.JSON(http.StatusNotFound, echo.Map{"error": "combo not found"})
        case errors.Is(err, repository.ErrConflict):
            return c.JSON(http.StatusConflict, echo.Map{"error": "combo still attached to rooms"})
        }
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "delete combo failed"})
    }
    return c.NoContent(http.StatusNoContent)
}
