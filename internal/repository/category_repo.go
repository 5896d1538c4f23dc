package repository

import (
	"go-pantry-mind/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type CategoryRepository interface {
	FindAll() ([]model.Category, error)
	FindByID(id uuid.UUID) (*model.Category, error)
	// FindByIDTx reads on the caller's transaction so lookups inside an
	// open transaction never grab a second pooled connection.
	FindByIDTx(tx *gorm.DB, id uuid.UUID) (*model.Category, error)
	Create(category *model.Category) error
	SeedDefaults() error
}

type categoryRepo struct {
	db *gorm.DB
}

func NewCategoryRepo(db *gorm.DB) CategoryRepository {
	return &categoryRepo{db}
}

func (r *categoryRepo) FindAll() ([]model.Category, error) {
	var categories []model.Category
	err := r.db.Order("name ASC").Find(&categories).Error
	return categories, err
}

func (r *categoryRepo) FindByID(id uuid.UUID) (*model.Category, error) {
	var category model.Category
	if err := r.db.First(&category, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &category, nil
}

func (r *categoryRepo) FindByIDTx(tx *gorm.DB, id uuid.UUID) (*model.Category, error) {
	var category model.Category
	if err := tx.First(&category, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &category, nil
}

func (r *categoryRepo) Create(category *model.Category) error {
	return r.db.Create(category).Error
}

func (r *categoryRepo) SeedDefaults() error {
	defaults := []model.Category{
		{Name: "Vegetables", Description: "Fresh and frozen vegetables"},
		{Name: "Fruits", Description: "Fresh and dried fruits"},
		{Name: "Dairy", Description: "Milk, cheese, yogurt"},
		{Name: "Grains", Description: "Rice, flour, pasta, cereals"},
		{Name: "Spices", Description: "Spices and seasonings"},
		{Name: "Beverages", Description: "Drinks and drink mixes"},
		{Name: "Snacks", Description: "Packaged snacks"},
		{Name: "Other", Description: "Everything else"},
	}
	for _, c := range defaults {
		var existing model.Category
		if err := r.db.First(&existing, "name = ?", c.Name).Error; err == nil {
			continue
		}
		category := c
		if err := r.db.Create(&category).Error; err != nil {
			return err
		}
	}
	return nil
}
