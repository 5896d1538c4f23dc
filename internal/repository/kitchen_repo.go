package repository

import (
	"go-pantry-mind/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type KitchenRepository interface {
	FindAll() ([]model.Kitchen, error)
	FindByID(id uuid.UUID) (*model.Kitchen, error)
	FindAllIDs() ([]uuid.UUID, error)
	Create(kitchen *model.Kitchen) error
	Save(kitchen *model.Kitchen) error
}

type kitchenRepo struct {
	db *gorm.DB
}

func NewKitchenRepo(db *gorm.DB) KitchenRepository {
	return &kitchenRepo{db}
}

func (r *kitchenRepo) FindAll() ([]model.Kitchen, error) {
	var kitchens []model.Kitchen
	err := r.db.Find(&kitchens).Error
	return kitchens, err
}

func (r *kitchenRepo) FindByID(id uuid.UUID) (*model.Kitchen, error) {
	var kitchen model.Kitchen
	if err := r.db.First(&kitchen, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &kitchen, nil
}

func (r *kitchenRepo) FindAllIDs() ([]uuid.UUID, error) {
	var ids []uuid.UUID
	err := r.db.Model(&model.Kitchen{}).Pluck("id", &ids).Error
	return ids, err
}

func (r *kitchenRepo) Create(kitchen *model.Kitchen) error {
	return r.db.Create(kitchen).Error
}

func (r *kitchenRepo) Save(kitchen *model.Kitchen) error {
	return r.db.Save(kitchen).Error
}
