package model

import "github.com/google/uuid"

type ShoppingPriority string

const (
	PriorityHigh   ShoppingPriority = "HIGH"
	PriorityMedium ShoppingPriority = "MEDIUM"
	PriorityLow    ShoppingPriority = "LOW"
)

// ShoppingSource records how an entry got onto the list.
type ShoppingSource string

const (
	SourceManual   ShoppingSource = "MANUAL"
	SourceLowStock ShoppingSource = "LOW_STOCK"
	SourceAI       ShoppingSource = "AI"
)

type ShoppingListItem struct {
	BaseModel
	KitchenID   uuid.UUID        `gorm:"type:uuid;not null;index" json:"kitchen_id"`
	ItemName    string           `gorm:"type:varchar(255);not null" json:"item_name" validate:"required"`
	Quantity    float64          `gorm:"not null;default:1" json:"quantity"`
	Unit        string           `gorm:"type:varchar(20)" json:"unit"`
	Category    string           `gorm:"type:varchar(100)" json:"category"`
	Priority    ShoppingPriority `gorm:"type:varchar(10);default:'MEDIUM'" json:"priority"`
	Source      ShoppingSource   `gorm:"type:varchar(20);default:'MANUAL'" json:"source"`
	IsPurchased bool             `gorm:"default:false" json:"is_purchased"`
	CreatedBy   uuid.UUID        `gorm:"type:uuid" json:"created_by"`
}
