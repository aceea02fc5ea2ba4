package model

import "time"

// Room is a physical room available for reservation.  Pricing and
// capacity come from the referenced RoomType; an optional service
// combination attaches a bundle of daily services to the room.
//
// Fields:
//  ID             - primary key identifier.
//  RoomTypeID     - category the room belongs to.
//  ServiceComboID - optional bundled services for the room.
//  Number         - door number, unique per hotel.
//  Floor          - floor the room is on.
//  IsActive       - whether the room can currently be booked.
type Room struct {
    ID             uint64    `json:"id"`
    RoomTypeID     uint64    `json:"room_type_id"`
    ServiceComboID *uint64   `json:"service_combo_id,omitempty"`
    Number         string    `json:"number"`
    Floor          int32     `json:"floor"`
    IsActive       bool      `json:"is_active"`
    CreatedAt      time.Time `json:"created_at"`
    UpdatedAt      time.Time `json:"updated_at"`
}
