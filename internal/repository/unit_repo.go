package repository

import (
	"go-pantry-mind/internal/model"
	"go-pantry-mind/internal/unitconv"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type UnitRepository interface {
	FindAll() ([]model.Unit, error)
	FindByID(id uuid.UUID) (*model.Unit, error)
	// FindByIDTx reads on the caller's transaction so lookups inside an
	// open transaction never grab a second pooled connection.
	FindByIDTx(tx *gorm.DB, id uuid.UUID) (*model.Unit, error)
	FindByName(name string) (*model.Unit, error)
	SeedDefaults() error
}

type unitRepo struct {
	db *gorm.DB
}

func NewUnitRepo(db *gorm.DB) UnitRepository {
	return &unitRepo{db}
}

func (r *unitRepo) FindAll() ([]model.Unit, error) {
	var units []model.Unit
	err := r.db.Order("kind ASC, name ASC").Find(&units).Error
	return units, err
}

func (r *unitRepo) FindByID(id uuid.UUID) (*model.Unit, error) {
	var unit model.Unit
	if err := r.db.First(&unit, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &unit, nil
}

func (r *unitRepo) FindByIDTx(tx *gorm.DB, id uuid.UUID) (*model.Unit, error) {
	var unit model.Unit
	if err := tx.First(&unit, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &unit, nil
}

func (r *unitRepo) FindByName(name string) (*model.Unit, error) {
	var unit model.Unit
	if err := r.db.First(&unit, "name = ?", name).Error; err != nil {
		return nil, err
	}
	return &unit, nil
}

// SeedDefaults creates one catalog row per unit the conversion table
// recognizes. Existing rows are left alone.
func (r *unitRepo) SeedDefaults() error {
	for name, kind := range unitconv.Names() {
		var existing model.Unit
		if err := r.db.First(&existing, "name = ?", name).Error; err == nil {
			continue
		}
		if err := r.db.Create(&model.Unit{Name: name, Kind: kind}).Error; err != nil {
			return err
		}
	}
	return nil
}
