package repository

import (
    "context"
    "database/sql"
    "errors"
    "strings"

    "github.com/shopspring/decimal"

    "github.com/iliyamo/hotel-admin/internal/model"
)

// ErrReservationNotFound is returned when a reservation lookup fails.
var ErrReservationNotFound = errors.New("reservation not found")

// ReservationRepo provides CRUD operations for reservations.  Check-in
// and check-out live in DATE columns and are read back as YYYY-MM-DD
// strings so the settlement layer validates exactly what was stored.
// Monetary columns are DECIMAL(10,2).
type ReservationRepo struct {
    db *sql.DB
}

// NewReservationRepo returns a ReservationRepo bound to the given database.
func NewReservationRepo(db *sql.DB) *ReservationRepo { return &ReservationRepo{db: db} }

const reservationColumns = `id, room_id, guest_name,
        DATE_FORMAT(check_in, '%Y-%m-%d'), DATE_FORMAT(check_out, '%Y-%m-%d'),
        guests, status, total_price, amount_paid, refund_amount, created_at, updated_at`

func scanReservation(row interface{ Scan(...any) error }) (*model.Reservation, error) {
    var m model.Reservation
    var refund decimal.NullDecimal
    if err := row.Scan(&m.ID, &m.RoomID, &m.GuestName, &m.CheckIn, &m.CheckOut,
        &m.Guests, &m.Status, &m.TotalPrice, &m.AmountPaid, &refund, &m.CreatedAt, &m.UpdatedAt); err != nil {
        return nil, err
    }
    if refund.Valid {
        m.RefundAmount = &refund.Decimal
    }
    return &m, nil
}

// Create inserts a reservation and reads the row back so timestamps and
// defaults are populated.  Amounts are rounded to two decimals at this
// persistence boundary.
func (r *ReservationRepo) Create(ctx context.Context, m *model.Reservation) error {
    const q = `INSERT INTO reservations (room_id, guest_name, check_in, check_out, guests, status, total_price, amount_paid)
               VALUES (?, ?, ?, ?, ?, ?, ?, ?)`
    res, err := r.db.ExecContext(ctx, q,
        m.RoomID, m.GuestName, m.CheckIn, m.CheckOut, m.Guests, m.Status,
        m.TotalPrice.Round(2), m.AmountPaid.Round(2))
    if err != nil {
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

// GetByID retrieves a reservation, returning ErrReservationNotFound when
// no row exists.
func (r *ReservationRepo) GetByID(ctx context.Context, id uint64) (*model.Reservation, error) {
    const q = `SELECT ` + reservationColumns + ` FROM reservations WHERE id = ?`
    m, err := scanReservation(r.db.QueryRowContext(ctx, q, id))
    if err != nil {
        if errors.Is(err, sql.ErrNoRows) {
            return nil, ErrReservationNotFound
        }
        return nil, err
    }
    return m, nil
}

// List returns reservations newest first, optionally filtered by status
// and/or room.  Zero values disable a filter.
func (r *ReservationRepo) List(ctx context.Context, status string, roomID uint64) ([]*model.Reservation, error) {
    q := `SELECT ` + reservationColumns + ` FROM reservations`
    conds := []string{}
    args := []any{}
    if status != "" {
        conds = append(conds, "status = ?")
        args = append(args, status)
    }
    if roomID != 0 {
        conds = append(conds, "room_id = ?")
        args = append(args, roomID)
    }
    if len(conds) > 0 {
        q += " WHERE " + strings.Join(conds, " AND ")
    }
    q += " ORDER BY created_at DESC"
    rows, err := r.db.QueryContext(ctx, q, args...)
    if err != nil {
        return nil, err
    }
    defer rows.Close()
    out := make([]*model.Reservation, 0)
    for rows.Next() {
        m, err := scanReservation(rows)
        if err != nil {
            return nil, err
        }
        out = append(out, m)
    }
    return out, rows.Err()
}

// ReservationPatch carries partial-field update semantics: only non-nil
// fields are written.  This is how committed settlements persist date,
// price and refund changes without touching the rest of the record.
type ReservationPatch struct {
    RoomID       *uint64
    GuestName    *string
    CheckIn      *string
    CheckOut     *string
    Guests       *uint32
    Status       *string
    TotalPrice   *decimal.Decimal
    AmountPaid   *decimal.Decimal
    RefundAmount *decimal.Decimal
}

// UpdateFields applies a partial patch and returns the updated row.
// Monetary fields are rounded to two decimals here, at the persistence
// boundary.  Returns ErrReservationNotFound when the id does not exist
// and ErrNoFields when the patch is empty.
var ErrNoFields = errors.New("no fields to update")

func (r *ReservationRepo) UpdateFields(ctx context.Context, id uint64, p ReservationPatch) (*model.Reservation, error) {
    sets := []string{}
    args := []any{}
    add := func(col string, v any) {
        sets = append(sets, col+" = ?")
        args = append(args, v)
    }
    if p.RoomID != nil {
        add("room_id", *p.RoomID)
    }
    if p.GuestName != nil {
        add("guest_name", *p.GuestName)
    }
    if p.CheckIn != nil {
        add("check_in", *p.CheckIn)
    }
    if p.CheckOut != nil {
        add("check_out", *p.CheckOut)
    }
    if p.Guests != nil {
        add("guests", *p.Guests)
    }
    if p.Status != nil {
        add("status", *p.Status)
    }
    if p.TotalPrice != nil {
        add("total_price", p.TotalPrice.Round(2))
    }
    if p.AmountPaid != nil {
        add("amount_paid", p.AmountPaid.Round(2))
    }
    if p.RefundAmount != nil {
        add("refund_amount", p.RefundAmount.Round(2))
    }
    if len(sets) == 0 {
        return nil, ErrNoFields
    }
    sets = append(sets, "updated_at = CURRENT_TIMESTAMP")
    q := "UPDATE reservations SET " + strings.Join(sets, ", ") + " WHERE id = ?"
    args = append(args, id)
    res, err := r.db.ExecContext(ctx, q, args...)
    if err != nil {
        return nil, err
    }
    if n, _ := res.RowsAffected(); n == 0 {
        // RowsAffected is zero both for a missing row and for a no-change
        // update; distinguish by re-reading.
        if _, gerr := r.GetByID(ctx, id); gerr != nil {
            return nil, gerr
        }
    }
    return r.GetByID(ctx, id)
}

// Delete removes a reservation outright.  Cancellation should normally
// go through UpdateFields with a cancelled status instead.
func (r *ReservationRepo) Delete(ctx context.Context, id uint64) error {
    res, err := r.db.ExecContext(ctx, `DELETE FROM reservations WHERE id = ?`, id)
    if err != nil {
        return err
    }
    if n, _ := res.RowsAffected(); n == 0 {
        return ErrReservationNotFound
    }
    return nil
}
