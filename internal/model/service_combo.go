package model

import (
    "time"

    "github.com/shopspring/decimal"
)

// ServiceCombo bundles hotel services (breakfast, cleaning, spa access
// and so on) under one name with a single daily price.  Combos are
// attached to rooms and billed per night on top of the room type's base
// price.
type ServiceCombo struct {
    ID          uint64          `json:"id"`
    Name        string          `json:"name"`
    Description *string         `json:"description,omitempty"`
    Services    string          `json:"services"` // comma separated service labels
    DailyPrice  decimal.Decimal `json:"daily_price"`
    IsActive    bool            `json:"is_active"`
    CreatedAt   time.Time       `json:"created_at"`
    UpdatedAt   time.Time       `json:"updated_at"`
}
