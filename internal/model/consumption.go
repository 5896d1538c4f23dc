package model

import "github.com/google/uuid"

// EventReason classifies why stock left the pantry.
type EventReason string

const (
	ReasonConsumed     EventReason = "CONSUMED"
	ReasonRecipeCooked EventReason = "RECIPE_COOKED"
	ReasonExpired      EventReason = "EXPIRED"
)

// ConsumptionEvent is an append-only audit record written when a batch is
// drained to zero. The core never updates or deletes one, and a failed
// write never rolls back the mutation that triggered it.
type ConsumptionEvent struct {
	BaseModel
	CanonicalName    string      `gorm:"type:varchar(255);not null;index" json:"canonical_name"`
	QuantityConsumed int64       `gorm:"not null" json:"quantity_consumed"` // base units
	UnitID           uuid.UUID   `gorm:"type:uuid;not null" json:"unit_id"`
	KitchenID        uuid.UUID   `gorm:"type:uuid;not null;index" json:"kitchen_id"`
	Reason           EventReason `gorm:"type:varchar(20);not null" json:"reason"`
	TriggeredBy      *uuid.UUID  `gorm:"type:uuid" json:"triggered_by,omitempty"`
}

// WasteReason classifies a waste log entry.
type WasteReason string

const (
	WasteExpired WasteReason = "EXPIRED"
	WasteSpoiled WasteReason = "SPOILED"
	WasteOther   WasteReason = "OTHER"
)

// WasteLog records stock written off by the expiry sweep.
type WasteLog struct {
	BaseModel
	KitchenID      uuid.UUID   `gorm:"type:uuid;not null;index" json:"kitchen_id"`
	CanonicalName  string      `gorm:"type:varchar(255);not null" json:"canonical_name"`
	QuantityWasted int64       `gorm:"not null" json:"quantity_wasted"` // base units
	UnitID         uuid.UUID   `gorm:"type:uuid;not null" json:"unit_id"`
	Reason         WasteReason `gorm:"type:varchar(20);not null" json:"reason"`
	EstimatedValue float64     `json:"estimated_value"`
	Notes          string      `json:"notes,omitempty"`
}
