package model

import (
	"github.com/google/uuid"

	"go-pantry-mind/internal/unitconv"
)

// Unit is static reference data: a recognized unit of measure and its
// measurement kind. Conversion factors live in the unitconv table keyed by
// name; the aggregation core never mutates units.
type Unit struct {
	BaseModel
	Name string        `gorm:"type:varchar(20);uniqueIndex;not null" json:"name" validate:"required"`
	Kind unitconv.Kind `gorm:"type:varchar(10);not null" json:"kind"`
}

// Category is part of the inventory group identity key and display only.
type Category struct {
	BaseModel
	Name        string `gorm:"type:varchar(100);uniqueIndex;not null" json:"name" validate:"required"`
	Description string `json:"description"`
}

// Location is where a batch is stored (fridge, pantry, freezer...).
type Location struct {
	BaseModel
	KitchenID uuid.UUID `gorm:"type:uuid;index;not null" json:"kitchen_id"`
	Name      string    `gorm:"type:varchar(100);not null" json:"name" validate:"required"`
}
