package repository

import (
	"time"

	"go-pantry-mind/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type WasteLogRepository interface {
	Create(tx *gorm.DB, entry *model.WasteLog) error
	FindByKitchenSince(kitchenID uuid.UUID, since time.Time) ([]model.WasteLog, error)
}

type wasteLogRepo struct {
	db *gorm.DB
}

func NewWasteLogRepo(db *gorm.DB) WasteLogRepository {
	return &wasteLogRepo{db}
}

func (r *wasteLogRepo) Create(tx *gorm.DB, entry *model.WasteLog) error {
	return tx.Create(entry).Error
}

func (r *wasteLogRepo) FindByKitchenSince(kitchenID uuid.UUID, since time.Time) ([]model.WasteLog, error) {
	var entries []model.WasteLog
	err := r.db.Where("kitchen_id = ? AND created_at >= ?", kitchenID, since).
		Order("created_at DESC").
		Find(&entries).Error
	return entries, err
}
