// Package settlement decides whether a reservation date change is billable
// and computes the amount the guest owes or is owed.  It is a pure decision
// layer: it performs no persistence and its only external call is a
// read-only availability lookup when a stay is being extended.  Callers
// fetch the original reservation, present the computed amount to the
// operator for confirmation and persist the result themselves.
package settlement

import (
    "errors"
    "time"

    "github.com/shopspring/decimal"
)

// DateLayout is the single calendar format accepted by this package.
// Dates are whole days anchored at midnight UTC; no time-of-day component
// is carried anywhere in the settlement math, so a stay length is always
// an integer number of nights.
const DateLayout = "2006-01-02"

// Sentinel errors returned by EvaluateEdit.  Each validation failure is a
// distinct condition so handlers can render a precise message and decide
// whether a retry makes sense.  ErrInvalidDate and ErrNoOpEdit are
// user-correctable; ErrNotFound and ErrCorruptRecord are not.
var (
    // ErrNotFound is returned when the edit references a reservation the
    // caller did not supply.
    ErrNotFound = errors.New("reservation not found")

    // ErrInvalidDate is returned when a user-supplied check-in or
    // check-out value does not parse as a calendar date.  The wrapping
    // error names the offending value.
    ErrInvalidDate = errors.New("invalid date")

    // ErrCorruptRecord is returned when the stored reservation carries an
    // unparseable date.  Stored dates are trusted data but are validated
    // anyway before any arithmetic happens on them.
    ErrCorruptRecord = errors.New("corrupt reservation record")

    // ErrInvalidOriginalDuration is returned when the stored reservation
    // has a non-positive stay length.  Such a record cannot be repriced
    // because the daily rate would divide by zero.
    ErrInvalidOriginalDuration = errors.New("invalid original stay duration")

    // ErrInvalidStay is returned when the proposed dates yield a
    // non-positive stay length (check-out on or before check-in).
    ErrInvalidStay = errors.New("invalid stay duration")

    // ErrNoOpEdit is returned when the proposed dates produce the same
    // stay length as the original.  There is nothing to settle; the caller
    // should treat this as a cancel-with-no-change rather than a failure
    // the user needs to retry.
    ErrNoOpEdit = errors.New("edit does not change stay length")

    // ErrNoAvailability is returned when an extension cannot be honored
    // because no room of the target type is free over the new date range.
    // The outcome is still returned alongside this error so the amount can
    // be shown for information.
    ErrNoAvailability = errors.New("no rooms available for the new dates")
)

// Reservation is the authoritative record prior to the edit.  The caller
// loads it from the reservation store; the calculator never fetches it.
// Dates are YYYY-MM-DD strings exactly as persisted.
type Reservation struct {
    ID           uint64
    RoomID       uint64
    CheckIn      string
    CheckOut     string
    Guests       uint32
    Status       string
    TotalPrice   decimal.Decimal
    AmountPaid   decimal.Decimal
    RefundAmount *decimal.Decimal
}

// EditRequest is the proposed, not yet committed change.  Dates arrive as
// strings straight from user input and are parsed here.  Only the room's
// type matters for repricing, so RoomID may point at any room of the
// desired type.
type EditRequest struct {
    ReservationID uint64
    RoomID        uint64
    CheckIn       string
    CheckOut      string
    Guests        uint32
}

// OutcomeKind classifies a settlement result.
type OutcomeKind string

const (
    // OutcomeAdditional means the stay grew and the guest owes more.
    OutcomeAdditional OutcomeKind = "ADDITIONAL"
    // OutcomeRefund means the stay shrank and the guest is owed money.
    OutcomeRefund OutcomeKind = "REFUND"
)

// Outcome is the ephemeral result of one edit evaluation.  It is used
// immediately to decide the accept/reject path and then discarded; only
// the resulting reservation fields are ever persisted.  Amounts are left
// unrounded; round to two decimals at the display or persistence boundary.
type Outcome struct {
    Kind             OutcomeKind
    DailyRate        decimal.Decimal
    OriginalStayDays int
    NewStayDays      int
    DayDelta         int
    AdditionalAmount decimal.Decimal
    RefundAmount     decimal.Decimal
    Rooms            []RoomCandidate
}

// RoomCandidate is a room of the requested type free over the proposed
// date range.  Candidates are informational; the committed edit keeps the
// room the operator selected.
type RoomCandidate struct {
    ID         uint64 `json:"id"`
    RoomTypeID uint64 `json:"room_type_id"`
    Number     string `json:"number"`
    Floor      int32  `json:"floor"`
}

// ParseDate parses a YYYY-MM-DD value into a midnight-UTC instant.  All
// date handling in this package goes through here so the calendar
// semantics live in one place.
func ParseDate(s string) (time.Time, error) {
    return time.Parse(DateLayout, s)
}

// StayDays returns the calendar-day difference between two midnight-UTC
// instants.  Inputs produced by ParseDate carry no time of day, so the
// division below is exact and the result is a whole number of nights.
func StayDays(checkIn, checkOut time.Time) int {
    return int(checkOut.Sub(checkIn) / (24 * time.Hour))
}
