package repository

import (
    "context"
    "database/sql"
    "errors"
    "strings"

    "github.com/iliyamo/hotel-admin/internal/model"
)

// ErrRoomTypeNotFound is returned when a room type lookup fails.
var ErrRoomTypeNotFound = errors.New("room type not found")

// RoomTypeRepo provides CRUD operations for room types.  Prices are
// stored in a DECIMAL(10,2) column and scanned into decimal.Decimal
// values on the model.
type RoomTypeRepo struct {
    db *sql.DB
}

// NewRoomTypeRepo constructs a RoomTypeRepo with the given DB handle.
func NewRoomTypeRepo(db *sql.DB) *RoomTypeRepo {
    return &RoomTypeRepo{db: db}
}

const roomTypeColumns = `id, name, description, base_price, capacity, photo_url, created_at, updated_at`

func scanRoomType(row interface{ Scan(...any) error }) (*model.RoomType, error) {
    var t model.RoomType
    var desc, photo sql.NullString
    if err := row.Scan(&t.ID, &t.Name, &desc, &t.BasePrice, &t.Capacity, &photo, &t.CreatedAt, &t.UpdatedAt); err != nil {
        return nil, err
    }
    if desc.Valid {
        t.Description = &desc.String
    }
    if photo.Valid {
        t.PhotoURL = &photo.String
    }
    return &t, nil
}

// Create inserts a room type and reads the row back so timestamps are
// populated.  A duplicate name maps to ErrConflict.
func (r *RoomTypeRepo) Create(ctx context.Context, t *model.RoomType) error {
    const q = `INSERT INTO room_types (name, description, base_price, capacity, photo_url) VALUES (?, ?, ?, ?, ?)`
    res, err := r.db.ExecContext(ctx, q, t.Name, t.Description, t.BasePrice, t.Capacity, t.PhotoURL)
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
    t.ID = uint64(id)
    fresh, err := r.GetByID(ctx, t.ID)
    if err != nil {
        return err
    }
    *t = *fresh
    return nil
}

// GetByID retrieves a room type, returning ErrRoomTypeNotFound when no
// row exists.
func (r *RoomTypeRepo) GetByID(ctx context.Context, id uint64) (*model.RoomType, error) {
    const q = `SELECT ` + roomTypeColumns + ` FROM room_types WHERE id = ?`
    t, err := scanRoomType(r.db.QueryRowContext(ctx, q, id))
    if err != nil {
        if errors.Is(err, sql.ErrNoRows) {
            return nil, ErrRoomTypeNotFound
        }
        return nil, err
    }
    return t, nil
}

// List returns all room types ordered by name.
func (r *RoomTypeRepo) List(ctx context.Context) ([]*model.RoomType, error) {
    const q = `SELECT ` + roomTypeColumns + ` FROM room_types ORDER BY name`
    rows, err := r.db.QueryContext(ctx, q)
    if err != nil {
        return nil, err
    }
    defer rows.Close()
    out := make([]*model.RoomType, 0)
    for rows.Next() {
        t, err := scanRoomType(rows)
        if err != nil {
            return nil, err
        }
        out = append(out, t)
    }
    return out, rows.Err()
}

// Update persists name, description, price, capacity and photo changes.
// Returns sql.ErrNoRows when the type does not exist.
func (r *RoomTypeRepo) Update(ctx context.Context, t *model.RoomType) error {
    const q = `UPDATE room_types
               SET name = ?, description = ?, base_price = ?, capacity = ?, photo_url = ?, updated_at = CURRENT_TIMESTAMP
               WHERE id = ?`
    res, err := r.db.ExecContext(ctx, q, t.Name, t.Description, t.BasePrice, t.Capacity, t.PhotoURL, t.ID)
    if err != nil {
        if strings.Contains(strings.ToLower(err.Error()), "1062") {
            return ErrConflict
        }
        return err
    }
    if n, _ := res.RowsAffected(); n == 0 {
        return sql.ErrNoRows
    }
    return nil
}

// Delete removes a room type.  A type still referenced by rooms fails
// the FK check and maps to ErrConflict.
func (r *RoomTypeRepo) Delete(ctx context.Context, id uint64) error {
    res, err := r.db.ExecContext(ctx, `DELETE FROM room_types WHERE id = ?`, id)
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
