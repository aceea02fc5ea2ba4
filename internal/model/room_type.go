package model

import (
    "time"

    "github.com/shopspring/decimal"
)

// RoomType describes a category of rooms sharing pricing and capacity.
// Reservations are priced from the type's nightly base price; individual
// rooms only carry a number and a floor.
//
// Fields:
//  ID          - primary key identifier.
//  Name        - unique human readable label (e.g. "Double Deluxe").
//  Description - optional marketing text.
//  BasePrice   - nightly price as a fixed-point decimal.
//  Capacity    - maximum number of guests a room of this type sleeps.
//  PhotoURL    - optional URL of a representative photo.
//  CreatedAt   - creation timestamp.
//  UpdatedAt   - last update timestamp.
type RoomType struct {
    ID          uint64          `json:"id"`
    Name        string          `json:"name"`
    Description *string         `json:"description,omitempty"`
    BasePrice   decimal.Decimal `json:"base_price"`
    Capacity    uint32          `json:"capacity"`
    PhotoURL    *string         `json:"photo_url,omitempty"`
    CreatedAt   time.Time       `json:"created_at"`
    UpdatedAt   time.Time       `json:"updated_at"`
}
