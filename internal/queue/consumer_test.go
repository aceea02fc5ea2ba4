package queue

import (
    "strings"
    "testing"
)

func TestFormatAuditLine(t *testing.T) {
    ev := ReservationAdjustedEvent{
        ReservationID: 12,
        RoomID:        3,
        GuestName:     "A. Karimi",
        StaffID:       5,
        Kind:          "REFUND",
        OldCheckIn:    "2025-09-01",
        OldCheckOut:   "2025-09-05",
        NewCheckIn:    "2025-09-01",
        NewCheckOut:   "2025-09-03",
        DayDelta:      -2,
        DailyRate:     "250.00",
        Amount:        "500.00",
        AdjustedAt:    "2025-08-30T10:00:00Z",
    }
    line := formatAuditLine(ev)

    if !strings.HasSuffix(line, "\n") {
        t.Fatal("audit line must end with a newline")
    }
    for _, want := range []string{
        "reservation_id=12",
        "staff_id=5",
        "kind=REFUND",
        "2025-09-01..2025-09-05 -> 2025-09-01..2025-09-03",
        "day_delta=-2",
        "amount=500.00",
    } {
        if !strings.Contains(line, want) {
            t.Fatalf("line %q missing %q", line, want)
        }
    }
}
