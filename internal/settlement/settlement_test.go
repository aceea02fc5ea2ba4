package settlement

import (
    "context"
    "errors"
    "testing"
    "time"

    "github.com/shopspring/decimal"
)

// fakeAvailability implements AvailabilityProvider for tests.  It records
// whether and how it was called so tests can assert that shortenings skip
// the availability lookup entirely.
type fakeAvailability struct {
    rooms   []RoomCandidate
    err     error
    called  bool
    exclude uint64
    in, out time.Time
}

func (f *fakeAvailability) FindAvailableRooms(ctx context.Context, roomID, excludeReservationID uint64, checkIn, checkOut time.Time, guests uint32) ([]RoomCandidate, error) {
    f.called = true
    f.exclude = excludeReservationID
    f.in = checkIn
    f.out = checkOut
    return f.rooms, f.err
}

// baseReservation is the concrete scenario from the settlement design:
// total 1000 over 2025-09-01..2025-09-05, four nights at 250/day.
func baseReservation() Reservation {
    return Reservation{
        ID:         7,
        RoomID:     12,
        CheckIn:    "2025-09-01",
        CheckOut:   "2025-09-05",
        Guests:     2,
        Status:     "confirmed",
        TotalPrice: decimal.NewFromInt(1000),
        AmountPaid: decimal.NewFromInt(1000),
    }
}

func editFor(res Reservation, checkOut string) EditRequest {
    return EditRequest{
        ReservationID: res.ID,
        RoomID:        res.RoomID,
        CheckIn:       res.CheckIn,
        CheckOut:      checkOut,
        Guests:        res.Guests,
    }
}

func TestEvaluateEdit_Extension(t *testing.T) {
    avail := &fakeAvailability{rooms: []RoomCandidate{{ID: 12, RoomTypeID: 3, Number: "204", Floor: 2}}}
    calc := NewCalculator(avail, 0)

    out, err := calc.EvaluateEdit(context.Background(), baseReservation(), editFor(baseReservation(), "2025-09-07"))
    if err != nil {
        t.Fatalf("unexpected error: %v", err)
    }
    if out.Kind != OutcomeAdditional {
        t.Fatalf("expected additional outcome, got %s", out.Kind)
    }
    if out.OriginalStayDays != 4 || out.NewStayDays != 6 || out.DayDelta != 2 {
        t.Fatalf("wrong day counts: orig=%d new=%d delta=%d", out.OriginalStayDays, out.NewStayDays, out.DayDelta)
    }
    if !out.DailyRate.Equal(decimal.NewFromInt(250)) {
        t.Fatalf("expected daily rate 250, got %s", out.DailyRate)
    }
    if !out.AdditionalAmount.Equal(decimal.NewFromInt(500)) {
        t.Fatalf("expected additional 500, got %s", out.AdditionalAmount)
    }
    if !out.RefundAmount.IsZero() {
        t.Fatalf("refund must be zero on extension, got %s", out.RefundAmount)
    }
    if !avail.called {
        t.Fatal("availability provider was not consulted for an extension")
    }
    if avail.exclude != 7 {
        t.Fatalf("edited reservation must be excluded from conflicts, got %d", avail.exclude)
    }
    if len(out.Rooms) != 1 || out.Rooms[0].Number != "204" {
        t.Fatalf("expected candidate room 204, got %+v", out.Rooms)
    }
}

func TestEvaluateEdit_ExtensionWithoutRooms(t *testing.T) {
    avail := &fakeAvailability{} // zero candidates
    calc := NewCalculator(avail, 0)

    out, err := calc.EvaluateEdit(context.Background(), baseReservation(), editFor(baseReservation(), "2025-09-07"))
    if !errors.Is(err, ErrNoAvailability) {
        t.Fatalf("expected ErrNoAvailability, got %v", err)
    }
    if out == nil {
        t.Fatal("outcome must still be returned so the amount can be shown")
    }
    if !out.AdditionalAmount.Equal(decimal.NewFromInt(500)) {
        t.Fatalf("expected informational additional 500, got %s", out.AdditionalAmount)
    }
}

func TestEvaluateEdit_Shortening(t *testing.T) {
    avail := &fakeAvailability{}
    calc := NewCalculator(avail, 0)

    out, err := calc.EvaluateEdit(context.Background(), baseReservation(), editFor(baseReservation(), "2025-09-03"))
    if err != nil {
        t.Fatalf("unexpected error: %v", err)
    }
    if out.Kind != OutcomeRefund {
        t.Fatalf("expected refund outcome, got %s", out.Kind)
    }
    if out.DayDelta != -2 {
        t.Fatalf("expected delta -2, got %d", out.DayDelta)
    }
    if !out.RefundAmount.Equal(decimal.NewFromInt(500)) {
        t.Fatalf("expected refund 500, got %s", out.RefundAmount)
    }
    if !out.AdditionalAmount.IsZero() {
        t.Fatalf("additional must be zero on shortening, got %s", out.AdditionalAmount)
    }
    if avail.called {
        t.Fatal("shortening must not consult the availability provider")
    }
}

func TestEvaluateEdit_Validation(t *testing.T) {
    t.Run("no-op edit", func(t *testing.T) {
        calc := NewCalculator(&fakeAvailability{}, 0)
        _, err := calc.EvaluateEdit(context.Background(), baseReservation(), editFor(baseReservation(), "2025-09-05"))
        if !errors.Is(err, ErrNoOpEdit) {
            t.Fatalf("expected ErrNoOpEdit, got %v", err)
        }
    })

    t.Run("unknown reservation", func(t *testing.T) {
        calc := NewCalculator(&fakeAvailability{}, 0)
        edit := editFor(baseReservation(), "2025-09-07")
        edit.ReservationID = 999
        _, err := calc.EvaluateEdit(context.Background(), baseReservation(), edit)
        if !errors.Is(err, ErrNotFound) {
            t.Fatalf("expected ErrNotFound, got %v", err)
        }
    })

    t.Run("unparseable edit date fails before anything else", func(t *testing.T) {
        avail := &fakeAvailability{}
        calc := NewCalculator(avail, 0)
        // The original is corrupt too; the edit date must win because
        // validation is fail-fast in order.
        res := baseReservation()
        res.CheckIn = "garbage"
        edit := editFor(baseReservation(), "not-a-date")
        _, err := calc.EvaluateEdit(context.Background(), res, edit)
        if !errors.Is(err, ErrInvalidDate) {
            t.Fatalf("expected ErrInvalidDate, got %v", err)
        }
        if avail.called {
            t.Fatal("no availability call may happen on invalid input")
        }
    })

    t.Run("corrupt stored date", func(t *testing.T) {
        calc := NewCalculator(&fakeAvailability{}, 0)
        res := baseReservation()
        res.CheckOut = "2025-13-99"
        _, err := calc.EvaluateEdit(context.Background(), res, editFor(res, "2025-09-07"))
        if !errors.Is(err, ErrCorruptRecord) {
            t.Fatalf("expected ErrCorruptRecord, got %v", err)
        }
    })

    t.Run("zero-day original stay", func(t *testing.T) {
        calc := NewCalculator(&fakeAvailability{}, 0)
        res := baseReservation()
        res.CheckOut = res.CheckIn // corrupt: zero nights
        for _, out := range []string{"2025-09-07", "2025-09-03", "2025-09-01"} {
            _, err := calc.EvaluateEdit(context.Background(), res, editFor(res, out))
            if !errors.Is(err, ErrInvalidOriginalDuration) {
                t.Fatalf("edit to %s: expected ErrInvalidOriginalDuration, got %v", out, err)
            }
        }
    })

    t.Run("new check-out before check-in", func(t *testing.T) {
        calc := NewCalculator(&fakeAvailability{}, 0)
        _, err := calc.EvaluateEdit(context.Background(), baseReservation(), editFor(baseReservation(), "2025-08-30"))
        if !errors.Is(err, ErrInvalidStay) {
            t.Fatalf("expected ErrInvalidStay, got %v", err)
        }
    })
}

func TestEvaluateEdit_ProviderErrorPassesThrough(t *testing.T) {
    boom := errors.New("availability backend down")
    calc := NewCalculator(&fakeAvailability{err: boom}, 0)
    _, err := calc.EvaluateEdit(context.Background(), baseReservation(), editFor(baseReservation(), "2025-09-07"))
    if !errors.Is(err, boom) {
        t.Fatalf("expected provider error to pass through, got %v", err)
    }
}

func TestEvaluateEdit_FractionalRate(t *testing.T) {
    // 1000 over 3 nights does not divide evenly; the rate stays unrounded
    // internally and only the boundary rounds to two decimals.
    res := baseReservation()
    res.CheckOut = "2025-09-04" // 3 nights
    calc := NewCalculator(&fakeAvailability{rooms: []RoomCandidate{{ID: 1}}}, 0)

    out, err := calc.EvaluateEdit(context.Background(), res, editFor(res, "2025-09-07")) // 6 nights
    if err != nil {
        t.Fatalf("unexpected error: %v", err)
    }
    if out.DayDelta != 3 {
        t.Fatalf("expected delta 3, got %d", out.DayDelta)
    }
    // Three extra nights at the original total's rate come back to the
    // original total once rounded at the boundary.
    if got := out.AdditionalAmount.StringFixed(2); got != "1000.00" {
        t.Fatalf("expected additional 1000.00 after rounding, got %s", got)
    }
    if got := out.DailyRate.StringFixed(2); got != "333.33" {
        t.Fatalf("expected displayed rate 333.33, got %s", got)
    }
}

func TestStayDays(t *testing.T) {
    in, err := ParseDate("2025-09-01")
    if err != nil {
        t.Fatal(err)
    }
    out, err := ParseDate("2025-09-05")
    if err != nil {
        t.Fatal(err)
    }
    if d := StayDays(in, out); d != 4 {
        t.Fatalf("expected 4 days, got %d", d)
    }
    if d := StayDays(out, in); d != -4 {
        t.Fatalf("expected -4 days, got %d", d)
    }
}
