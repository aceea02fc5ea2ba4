package model

import (
    "time"

    "github.com/shopspring/decimal"
)

// Reservation statuses.  A reservation starts pending, becomes confirmed
// once payment is acknowledged and may end up cancelled with an optional
// refund amount.
const (
    ReservationPending   = "pending"
    ReservationConfirmed = "confirmed"
    ReservationCancelled = "cancelled"
)

// Reservation records a guest's stay in a specific room.  Check-in and
// check-out are calendar dates serialized as YYYY-MM-DD; the stay always
// spans a whole number of nights and check-out must be after check-in.
// Monetary fields are fixed-point decimals, rounded to two places only
// when persisted or displayed.
//
// Fields:
//  ID           - primary key identifier.
//  RoomID       - room assigned to the stay.
//  GuestName    - name the reservation is held under.
//  CheckIn      - first night, YYYY-MM-DD.
//  CheckOut     - departure date, YYYY-MM-DD (exclusive).
//  Guests       - positive number of guests.
//  Status       - pending | confirmed | cancelled.
//  TotalPrice   - price covering the full stay length.
//  AmountPaid   - amount already collected.
//  RefundAmount - set only when cancelled or shortened with a refund.
type Reservation struct {
    ID           uint64           `json:"id"`
    RoomID       uint64           `json:"room_id"`
    GuestName    string           `json:"guest_name"`
    CheckIn      string           `json:"check_in"`
    CheckOut     string           `json:"check_out"`
    Guests       uint32           `json:"guests"`
    Status       string           `json:"status"`
    TotalPrice   decimal.Decimal  `json:"total_price"`
    AmountPaid   decimal.Decimal  `json:"amount_paid"`
    RefundAmount *decimal.Decimal `json:"refund_amount,omitempty"`
    CreatedAt    time.Time        `json:"created_at"`
    UpdatedAt    time.Time        `json:"updated_at"`
}
