package model

import (
	"time"

	"github.com/google/uuid"
)

// DefaultMinStock is used when a group has no explicit threshold.
const DefaultMinStock int64 = 5

// Inventory is the canonical stock record for one normalized item name
// within a kitchen/category/base-unit scope. TotalQuantity and ItemCount
// are derived: after every mutation they are recomputed from the live
// batches inside the same transaction. A group whose last batch is removed
// is deleted, so at most one live row exists per identity key (enforced by
// the composite unique index).
//
// Cross-entity references are plain FK ids; joins happen as explicit
// repository lookups, never through loaded association structs.
type Inventory struct {
	BaseModel
	KitchenID      uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_inventory_key" json:"kitchen_id"`
	Name           string    `gorm:"type:varchar(255);not null" json:"name"`
	NormalizedName string    `gorm:"type:varchar(255);not null;uniqueIndex:idx_inventory_key" json:"normalized_name"`
	CategoryID     uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_inventory_key" json:"category_id"`
	UnitID         uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_inventory_key" json:"unit_id"` // always a base unit
	TotalQuantity  int64     `gorm:"not null;default:0" json:"total_quantity"`                        // base units, sum of live batches
	ItemCount      int       `gorm:"not null;default:0" json:"item_count"`                            // number of live batches

	MinStock           *int64 `json:"min_stock,omitempty"`
	MinExpiryDaysAlert *int   `json:"min_expiry_days_alert,omitempty"`
}

// MinStockOrDefault resolves the low-stock threshold.
func (inv *Inventory) MinStockOrDefault() int64 {
	if inv.MinStock != nil {
		return *inv.MinStock
	}
	return DefaultMinStock
}

// InventoryItem is one physical batch/lot of a group: a single purchase
// with its own expiry, price and location. Quantity is stored in the
// group's base unit and never goes negative; a batch drained to zero is
// deleted, not kept.
type InventoryItem struct {
	BaseModel
	InventoryID uuid.UUID  `gorm:"type:uuid;index;not null" json:"inventory_id"`
	Quantity    int64      `gorm:"not null" json:"quantity"` // base units
	Price       *float64   `json:"price,omitempty"`
	ExpiryDate  *time.Time `gorm:"type:date" json:"expiry_date,omitempty"`
	LocationID  *uuid.UUID `gorm:"type:uuid" json:"location_id,omitempty"`
	Description string     `json:"description,omitempty"`
	CreatedBy   uuid.UUID  `gorm:"type:uuid" json:"created_by"`
}
