package settlement

import (
    "context"
    "fmt"
    "time"

    "github.com/shopspring/decimal"
)

// AvailabilityProvider reports which rooms sharing the target room's type
// are free over a date range.  Implementations must exclude the
// reservation under edit from conflict detection, otherwise a reservation
// would always conflict with itself.
type AvailabilityProvider interface {
    FindAvailableRooms(ctx context.Context, roomID, excludeReservationID uint64, checkIn, checkOut time.Time, guests uint32) ([]RoomCandidate, error)
}

// Calculator evaluates reservation edits.  It holds no mutable state;
// each evaluation is independent and depends only on its inputs and the
// injected availability provider.
type Calculator struct {
    rooms        AvailabilityProvider
    queryTimeout time.Duration
}

// DefaultQueryTimeout bounds the availability lookup on the extension
// branch.  The source design left the duration open; five seconds matches
// the per-request database timeout used elsewhere in this codebase.
const DefaultQueryTimeout = 5 * time.Second

// NewCalculator returns a Calculator backed by the given availability
// provider.  A non-positive timeout falls back to DefaultQueryTimeout.
func NewCalculator(rooms AvailabilityProvider, queryTimeout time.Duration) *Calculator {
    if queryTimeout <= 0 {
        queryTimeout = DefaultQueryTimeout
    }
    return &Calculator{rooms: rooms, queryTimeout: queryTimeout}
}

// EvaluateEdit decides whether the proposed edit is billable and computes
// the owed or refundable amount.  Validation is fail-fast in a fixed
// order: the reservation must match the edit, the edit dates must parse,
// the stored dates must parse, the original stay must be positive and the
// day delta must be non-zero.  Extensions are additionally gated on room
// availability; shortenings never are.
//
// On ErrNoAvailability the outcome is returned alongside the error so the
// additional amount can still be surfaced for information.  Every other
// failure returns a nil outcome.
func (c *Calculator) EvaluateEdit(ctx context.Context, original Reservation, edit EditRequest) (*Outcome, error) {
    if original.ID == 0 || original.ID != edit.ReservationID {
        return nil, fmt.Errorf("%w: id %d", ErrNotFound, edit.ReservationID)
    }
    newIn, err := ParseDate(edit.CheckIn)
    if err != nil {
        return nil, fmt.Errorf("%w: check_in %q", ErrInvalidDate, edit.CheckIn)
    }
    newOut, err := ParseDate(edit.CheckOut)
    if err != nil {
        return nil, fmt.Errorf("%w: check_out %q", ErrInvalidDate, edit.CheckOut)
    }
    origIn, err := ParseDate(original.CheckIn)
    if err != nil {
        return nil, fmt.Errorf("%w: stored check_in %q", ErrCorruptRecord, original.CheckIn)
    }
    origOut, err := ParseDate(original.CheckOut)
    if err != nil {
        return nil, fmt.Errorf("%w: stored check_out %q", ErrCorruptRecord, original.CheckOut)
    }
    originalDays := StayDays(origIn, origOut)
    if originalDays <= 0 {
        return nil, fmt.Errorf("%w: %d days", ErrInvalidOriginalDuration, originalDays)
    }
    newDays := StayDays(newIn, newOut)
    if newDays <= 0 {
        return nil, fmt.Errorf("%w: %d days", ErrInvalidStay, newDays)
    }
    delta := newDays - originalDays
    if delta == 0 {
        return nil, ErrNoOpEdit
    }

    rate := original.TotalPrice.Div(decimal.NewFromInt(int64(originalDays)))
    out := &Outcome{
        DailyRate:        rate,
        OriginalStayDays: originalDays,
        NewStayDays:      newDays,
        DayDelta:         delta,
    }

    if delta < 0 {
        // Shortening never conflicts with other reservations, so no
        // availability check is made.
        out.Kind = OutcomeRefund
        out.RefundAmount = rate.Mul(decimal.NewFromInt(int64(-delta)))
        return out, nil
    }

    out.Kind = OutcomeAdditional
    out.AdditionalAmount = rate.Mul(decimal.NewFromInt(int64(delta)))

    qctx, cancel := context.WithTimeout(ctx, c.queryTimeout)
    defer cancel()
    rooms, err := c.rooms.FindAvailableRooms(qctx, edit.RoomID, edit.ReservationID, newIn, newOut, edit.Guests)
    if err != nil {
        return nil, err
    }
    if len(rooms) == 0 {
        return out, ErrNoAvailability
    }
    out.Rooms = rooms
    return out, nil
}
