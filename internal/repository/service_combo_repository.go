package repository

import (
    "context"
    "database/sql"
    "errors"
    "strings"

    "github.com/iliyamo/hotel-admin/internal/model"
)

// ErrServiceComboNotFound is returned when a combo lookup fails.
var ErrServiceComboNotFound = errors.New("service combination not found")

// ServiceComboRepo provides CRUD operations for service combinations.
type ServiceComboRepo struct {
    db *sql.DB
}

// NewServiceComboRepo constructs a ServiceComboRepo with the given DB handle.
func NewServiceComboRepo(db *sql.DB) *ServiceComboRepo {
    return &ServiceComboRepo{db: db}
}

const comboColumns = `id, name, description, services, daily_price, is_active, created_at, updated_at`

func scanCombo(row interface{ Scan(...any) error }) (*model.ServiceCombo, error) {
    var c model.ServiceCombo
    var desc sql.NullString
    if err := row.Scan(&c.ID, &c.Name, &desc, &c.Services, &c.DailyPrice, &c.IsActive, &c.CreatedAt, &c.UpdatedAt); err != nil {
        return nil, err
    }
    if desc.Valid {
        c.Description = &desc.String
    }
    return &c, nil
}

// Create inserts a combo and reads the row back.
func (r *ServiceComboRepo) Create(ctx context.Context, c *model.ServiceCombo) error {
    const q = `INSERT INTO service_combos (name, description, services, daily_price, is_active) VALUES (?, ?, ?, ?, ?)`
    res, err := r.db.ExecContext(ctx, q, c.Name, c.Description, c.Services, c.DailyPrice, c.IsActive)
    if err != nil {
        if strings.Contains(strings.ToLower(err.Error()), "1062") {
            return ErrConflict
        }
        return err
    }
    id, err := res.LastInsertId()
    if err != nil {
        return err
    }
    c.ID = uint64(id)
    fresh, err := r.GetByID(ctx, c.ID)
    if err != nil {
        return err
    }
    *c = *fresh
    return nil
}

// GetByID retrieves a combo, returning ErrServiceComboNotFound when no
// row exists.
func (r *ServiceComboRepo) GetByID(ctx context.Context, id uint64) (*model.ServiceCombo, error) {
    const q = `SELECT ` + comboColumns + ` FROM service_combos WHERE id = ?`
    c, err := scanCombo(r.db.QueryRowContext(ctx, q, id))
    if err != nil {
        if errors.Is(err, sql.ErrNoRows) {
            return nil, ErrServiceComboNotFound
        }
        return nil, err
    }
    return c, nil
}

// List returns all combos ordered by name.
func (r *ServiceComboRepo) List(ctx context.Context) ([]*model.ServiceCombo, error) {
    const q = `SELECT ` + comboColumns + ` FROM service_combos ORDER BY name`
    rows, err := r.db.QueryContext(ctx, q)
    if err != nil {
        return nil, err
    }
    defer rows.Close()
    out := make([]*model.ServiceCombo, 0)
    for rows.Next() {
        c, err := scanCombo(rows)
        if err != nil {
            return nil, err
        }
        out = append(out, c)
    }
    return out, rows.Err()
}

// Update persists combo changes.  Returns sql.ErrNoRows when the combo
// does not exist.
func (r *ServiceComboRepo) Update(ctx context.Context, c *model.ServiceCombo) error {
    const q = `UPDATE service_combos
               SET name = ?, description = ?, services = ?, daily_price = ?, is_active = ?, updated_at = CURRENT_TIMESTAMP
               WHERE id = ?`
    res, err := r.db.ExecContext(ctx, q, c.Name, c.Description, c.Services, c.DailyPrice, c.IsActive, c.ID)
    if err != nil {
        return err
    }
    if n, _ := res.RowsAffected(); n == 0 {
        return sql.ErrNoRows
    }
    return nil
}

// Delete removes a combo.  Combos still attached to rooms map to
// ErrConflict via the FK check.
func (r *ServiceComboRepo) Delete(ctx context.Context, id uint64) error {
    res, err := r.db.ExecContext(ctx, `DELETE FROM service_combos WHERE id = ?`, id)
    if err != nil {
        if strings.Contains(strings.ToLower(err.Error()), "1451") {
            return ErrConflict
        }
        return err
    }
    if n, _ := res.RowsAffected(); n == 0 {
        return sql.ErrNoRows
    }
    return nil
}
