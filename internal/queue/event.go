// Package queue defines message payloads exchanged over the message broker.
package queue

// ReservationAdjustedEvent is published whenever a date change is
// committed on a reservation.  It carries the full settlement so
// downstream consumers can audit or notify without querying the primary
// database.  Kind is "ADDITIONAL" or "REFUND"; Amount is the settled
// difference rendered with two decimals.
type ReservationAdjustedEvent struct {
    ReservationID uint64 `json:"reservation_id"`
    RoomID        uint64 `json:"room_id"`
    GuestName     string `json:"guest_name"`
    StaffID       uint64 `json:"staff_id"`
    Kind          string `json:"kind"`
    OldCheckIn    string `json:"old_check_in"`
    OldCheckOut   string `json:"old_check_out"`
    NewCheckIn    string `json:"new_check_in"`
    NewCheckOut   string `json:"new_check_out"`
    DayDelta      int    `json:"day_delta"`
    DailyRate     string `json:"daily_rate"`
    Amount        string `json:"amount"`
    AdjustedAt    string `json:"adjusted_at"`
}
