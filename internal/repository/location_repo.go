package repository

import (
	"go-pantry-mind/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type LocationRepository interface {
	FindByKitchen(kitchenID uuid.UUID) ([]model.Location, error)
	FindByID(id uuid.UUID) (*model.Location, error)
	Create(location *model.Location) error
	Delete(id uuid.UUID) error
}

type locationRepo struct {
	db *gorm.DB
}

func NewLocationRepo(db *gorm.DB) LocationRepository {
	return &locationRepo{db}
}

func (r *locationRepo) FindByKitchen(kitchenID uuid.UUID) ([]model.Location, error) {
	var locations []model.Location
	err := r.db.Where("kitchen_id = ?", kitchenID).Order("name ASC").Find(&locations).Error
	return locations, err
}

func (r *locationRepo) FindByID(id uuid.UUID) (*model.Location, error) {
	var location model.Location
	if err := r.db.First(&location, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &location, nil
}

func (r *locationRepo) Create(location *model.Location) error {
	return r.db.Create(location).Error
}

func (r *locationRepo) Delete(id uuid.UUID) error {
	return r.db.Delete(&model.Location{}, "id = ?", id).Error
}
