package repository

import (
    "context"
    "database/sql"
    "errors"
    "strings"
    "time"

    "github.com/iliyamo/hotel-admin/internal/model"
    "github.com/iliyamo/hotel-admin/internal/settlement"
)

// ErrRoomNotFound is returned when a room lookup fails.
var ErrRoomNotFound = errors.New("room not found")

// RoomRepo provides CRUD operations for rooms plus the availability
// query consumed by the settlement calculator.  It satisfies
// settlement.AvailabilityProvider.
type RoomRepo struct {
    db *sql.DB
}

// NewRoomRepo constructs a RoomRepo with the given DB handle.
func NewRoomRepo(db *sql.DB) *RoomRepo {
    return &RoomRepo{db: db}
}

const roomColumns = `id, room_type_id, service_combo_id, number, floor, is_active, created_at, updated_at`

func scanRoom(row interface{ Scan(...any) error }) (*model.Room, error) {
    var m model.Room
    var combo sql.NullInt64
    if err := row.Scan(&m.ID, &m.RoomTypeID, &combo, &m.Number, &m.Floor, &m.IsActive, &m.CreatedAt, &m.UpdatedAt); err != nil {
        return nil, err
    }
    if combo.Valid {
        id := uint64(combo.Int64)
        m.ServiceComboID = &id
    }
    return &m, nil
}

// Create inserts a room and reads the row back.  Duplicate room numbers
// map to ErrConflict.
func (r *RoomRepo) Create(ctx context.Context, m *model.Room) error {
    const q = `INSERT INTO rooms (room_type_id, service_combo_id, number, floor, is_active) VALUES (?, ?, ?, ?, ?)`
    res, err := r.db.ExecContext(ctx, q, m.RoomTypeID, m.ServiceComboID, m.Number, m.Floor, m.IsActive)
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
    m.ID = uint64(id)
    fresh, err := r.GetByID(ctx, m.ID)
    if err != nil {
        return err
    }
    *m = *fresh
    return nil
}

// GetByID retrieves a room, returning ErrRoomNotFound when no row exists.
func (r *RoomRepo) GetByID(ctx context.Context, id uint64) (*model.Room, error) {
    const q = `SELECT ` + roomColumns + ` FROM rooms WHERE id = ?`
    m, err := scanRoom(r.db.QueryRowContext(ctx, q, id))
    if err != nil {
        if errors.Is(err, sql.ErrNoRows) {
            return nil, ErrRoomNotFound
        }
        return nil, err
    }
    return m, nil
}

// List returns rooms, optionally filtered by room type.  Pass zero to
// list every room.
func (r *RoomRepo) List(ctx context.Context, roomTypeID uint64) ([]*model.Room, error) {
    q := `SELECT ` + roomColumns + ` FROM rooms`
    args := []any{}
    if roomTypeID != 0 {
        q += ` WHERE room_type_id = ?`
        args = append(args, roomTypeID)
    }
    q += ` ORDER BY floor, number`
    rows, err := r.db.QueryContext(ctx, q, args...)
    if err != nil {
        return nil, err
    }
    defer rows.Close()
    out := make([]*model.Room, 0)
    for rows.Next() {
        m, err := scanRoom(rows)
        if err != nil {
            return nil, err
        }
        out = append(out, m)
    }
    return out, rows.Err()
}

// Update persists type, combo, number, floor and active changes.
func (r *RoomRepo) Update(ctx context.Context, m *model.Room) error {
    const q = `UPDATE rooms
               SET room_type_id = ?, service_combo_id = ?, number = ?, floor = ?, is_active = ?, updated_at = CURRENT_TIMESTAMP
               WHERE id = ?`
    res, err := r.db.ExecContext(ctx, q, m.RoomTypeID, m.ServiceComboID, m.Number, m.Floor, m.IsActive, m.ID)
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

// Delete removes a room.  Rooms with reservations fail the FK check and
// map to ErrConflict.
func (r *RoomRepo) Delete(ctx context.Context, id uint64) error {
    res, err := r.db.ExecContext(ctx, `DELETE FROM rooms WHERE id = ?`, id)
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

// FindAvailableRooms returns active rooms of the same type as the target
// room that are free over [checkIn, checkOut) and sleep at least the
// requested guest count.  The reservation identified by
// excludeReservationID is ignored during conflict detection so an edited
// reservation never conflicts with itself; pass zero when creating a new
// reservation.  Two stays overlap when one starts before the other ends,
// back-to-back stays sharing a boundary date do not.
func (r *RoomRepo) FindAvailableRooms(ctx context.Context, roomID, excludeReservationID uint64, checkIn, checkOut time.Time, guests uint32) ([]settlement.RoomCandidate, error) {
    const q = `SELECT r.id, r.room_type_id, r.number, r.floor
               FROM rooms r
               JOIN room_types t ON t.id = r.room_type_id
               WHERE r.is_active = 1
                 AND r.room_type_id = (SELECT room_type_id FROM rooms WHERE id = ?)
                 AND t.capacity >= ?
                 AND NOT EXISTS (
                     SELECT 1 FROM reservations b
                     WHERE b.room_id = r.id
                       AND b.status <> 'cancelled'
                       AND b.id <> ?
                       AND b.check_in < ?
                       AND b.check_out > ?
                 )
               ORDER BY r.floor, r.number`
    rows, err := r.db.QueryContext(ctx, q,
        roomID, guests, excludeReservationID,
        checkOut.Format(settlement.DateLayout), checkIn.Format(settlement.DateLayout))
    if err != nil {
        return nil, err
    }
    defer rows.Close()
    return collectCandidates(rows)
}

// FindAvailableByType is the browse variant keyed on a room type rather
// than an existing room.  Same overlap semantics, no reservation to
// exclude.
func (r *RoomRepo) FindAvailableByType(ctx context.Context, roomTypeID uint64, checkIn, checkOut time.Time, guests uint32) ([]settlement.RoomCandidate, error) {
    const q = `SELECT r.id, r.room_type_id, r.number, r.floor
               FROM rooms r
               JOIN room_types t ON t.id = r.room_type_id
               WHERE r.is_active = 1
                 AND r.room_type_id = ?
                 AND t.capacity >= ?
                 AND NOT EXISTS (
                     SELECT 1 FROM reservations b
                     WHERE b.room_id = r.id
                       AND b.status <> 'cancelled'
                       AND b.check_in < ?
                       AND b.check_out > ?
                 )
               ORDER BY r.floor, r.number`
    rows, err := r.db.QueryContext(ctx, q,
        roomTypeID, guests,
        checkOut.Format(settlement.DateLayout), checkIn.Format(settlement.DateLayout))
    if err != nil {
        return nil, err
    }
    defer rows.Close()
    return collectCandidates(rows)
}

func collectCandidates(rows *sql.Rows) ([]settlement.RoomCandidate, error) {
    out := make([]settlement.RoomCandidate, 0)
    for rows.Next() {
        var c settlement.RoomCandidate
        if err := rows.Scan(&c.ID, &c.RoomTypeID, &c.Number, &c.Floor); err != nil {
            return nil, err
        }
        out = append(out, c)
    }
    return out, rows.Err()
}
