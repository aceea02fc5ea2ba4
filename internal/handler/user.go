package handler

import (
    "context"
    "database/sql"
    "errors"
    "net/http"
    "strings"
    "time"

    "github.com/labstack/echo/v4"

    "github.com/iliyamo/hotel-admin/internal/config"
    "github.com/iliyamo/hotel-admin/internal/model"
    "github.com/iliyamo/hotel-admin/internal/repository"
)

// UserHandler exposes the admin staff-management endpoints: list
// accounts, create them with an explicit role, change role or active
// flag, and remove accounts.
type UserHandler struct {
    Cfg    config.Config
    Users  *repository.UserRepo
    Tokens *repository.TokenRepo
}

func NewUserHandler(cfg config.Config, u *repository.UserRepo, t *repository.TokenRepo) *UserHandler {
    return &UserHandler{Cfg: cfg, Users: u, Tokens: t}
}

type createUserReq struct {
    Email    string `json:"email"`
    Password string `json:"password"`
    Role     string `json:"role"`
}

type updateUserReq struct {
    Role     string `json:"role"`
    IsActive *bool  `json:"is_active"`
}

// userRow is the response shape for staff accounts.  The model carries
// the password hash, so accounts are never serialized directly.
type userRow struct {
    ID        uint64    `json:"id"`
    Email     string    `json:"email"`
    Role      string    `json:"role"`
    IsActive  bool      `json:"is_active"`
    CreatedAt time.Time `json:"created_at"`
    UpdatedAt time.Time `json:"updated_at"`
}

func toUserRow(u model.User) userRow {
    return userRow{
        ID:        u.ID,
        Email:     u.Email,
        Role:      u.Role,
        IsActive:  u.IsActive,
        CreatedAt: u.CreatedAt,
        UpdatedAt: u.UpdatedAt,
    }
}

func validRole(role string) bool {
    return role == "ADMIN" || role == "RECEPTIONIST"
}

// List handles GET /v1/users.
func (h *UserHandler) List(c echo.Context) error {
    ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
    defer cancel()

    users, err := h.Users.List(ctx)
    if err != nil {
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "list users failed"})
    }
    out := make([]userRow, 0, len(users))
    for _, u := range users {
        out = append(out, toUserRow(u))
    }
    return c.JSON(http.StatusOK, out)
}

// Create handles POST /v1/users.  Unlike self-registration the role is
// required here, so an admin can provision another admin directly.
func (h *UserHandler) Create(c echo.Context) error {
    var req createUserReq
    if err := c.Bind(&req); err != nil {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
    }
    req.Email = strings.ToLower(strings.TrimSpace(req.Email))
    role := strings.ToUpper(strings.TrimSpace(req.Role))
    if req.Email == "" || req.Password == "" {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "email/password required"})
    }
    if !validRole(role) {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "role must be ADMIN or RECEPTIONIST"})
    }

    ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
    defer cancel()

    uid, err := h.Users.Create(ctx, req.Email, req.Password, role, h.Cfg.BcryptCost)
    if err != nil {
        if errors.Is(err, repository.ErrEmailExists) {
            return c.JSON(http.StatusConflict, echo.Map{"error": "email already exists"})
        }
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "create user failed"})
    }
    u, err := h.Users.GetByID(ctx, uid)
    if err != nil {
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "load user failed"})
    }
    return c.JSON(http.StatusCreated, toUserRow(u))
}

// Update handles PATCH /v1/users/:id: role and/or active flag.
// Deactivating an account also revokes its refresh tokens so the
// lockout is immediate once the access token expires.
func (h *UserHandler) Update(c echo.Context) error {
    id, ok := pathID(c, "id")
    if !ok {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
    }
    var req updateUserReq
    if err := c.Bind(&req); err != nil {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
    }

    ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
    defer cancel()

    u, err := h.Users.GetByID(ctx, id)
    if err != nil {
        if errors.Is(err, sql.ErrNoRows) {
            return c.JSON(http.StatusNotFound, echo.Map{"error": "user not found"})
        }
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "load user failed"})
    }

    role := u.Role
    if s := strings.ToUpper(strings.TrimSpace(req.Role)); s != "" {
        if !validRole(s) {
            return c.JSON(http.StatusBadRequest, echo.Map{"error": "role must be ADMIN or RECEPTIONIST"})
        }
        role = s
    }
    active := u.IsActive
    if req.IsActive != nil {
        active = *req.IsActive
    }

    if err := h.Users.SetRoleAndActive(ctx, id, role, active); err != nil {
        if errors.Is(err, sql.ErrNoRows) {
            return c.JSON(http.StatusNotFound, echo.Map{"error": "user not found"})
        }
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "update user failed"})
    }
    if !active {
        _ = h.Tokens.RevokeAllForUser(ctx, id)
    }

    fresh, err := h.Users.GetByID(ctx, id)
    if err != nil {
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "load user failed"})
    }
    return c.JSON(http.StatusOK, toUserRow(fresh))
}

// Delete handles DELETE /v1/users/:id.  An admin cannot delete their own
// account; demote or deactivate first so the hotel never ends up with
// zero admins by accident.
func (h *UserHandler) Delete(c echo.Context) error {
    id, ok := pathID(c, "id")
    if !ok {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
    }
    if self, err := getUserID(c); err == nil && self == id {
        return c.JSON(http.StatusConflict, echo.Map{"error": "cannot delete own account"})
    }

    ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
    defer cancel()

    if err := h.Users.Delete(ctx, id); err != nil {
        if errors.Is(err, sql.ErrNoRows) {
            return c.JSON(http.StatusNotFound, echo.Map{"error": "user not found"})
        }
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "delete user failed"})
    }
    return c.NoContent(http.StatusNoContent)
}
