package repository

import (
	"go-pantry-mind/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ShoppingListRepository interface {
	FindByKitchen(kitchenID uuid.UUID) ([]model.ShoppingListItem, error)
	FindPendingNames(kitchenID uuid.UUID) ([]string, error)
	FindByID(id uuid.UUID) (*model.ShoppingListItem, error)
	Create(item *model.ShoppingListItem) error
	CreateAll(items []model.ShoppingListItem) error
	Save(item *model.ShoppingListItem) error
	Delete(id uuid.UUID) error
}

type shoppingListRepo struct {
	db *gorm.DB
}

func NewShoppingListRepo(db *gorm.DB) ShoppingListRepository {
	return &shoppingListRepo{db}
}

// FindByKitchen orders by priority (HIGH first) then newest.
func (r *shoppingListRepo) FindByKitchen(kitchenID uuid.UUID) ([]model.ShoppingListItem, error) {
	var items []model.ShoppingListItem
	err := r.db.Where("kitchen_id = ?", kitchenID).
		Order("CASE priority WHEN 'HIGH' THEN 0 WHEN 'MEDIUM' THEN 1 ELSE 2 END").
		Order("created_at DESC").
		Find(&items).Error
	return items, err
}

// FindPendingNames returns the names of unpurchased entries, so generation
// from low stock does not duplicate what is already on the list.
func (r *shoppingListRepo) FindPendingNames(kitchenID uuid.UUID) ([]string, error) {
	var names []string
	err := r.db.Model(&model.ShoppingListItem{}).
		Where("kitchen_id = ? AND is_purchased = ?", kitchenID, false).
		Pluck("item_name", &names).Error
	return names, err
}

func (r *shoppingListRepo) FindByID(id uuid.UUID) (*model.ShoppingListItem, error) {
	var item model.ShoppingListItem
	if err := r.db.First(&item, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &item, nil
}

func (r *shoppingListRepo) Create(item *model.ShoppingListItem) error {
	return r.db.Create(item).Error
}

func (r *shoppingListRepo) CreateAll(items []model.ShoppingListItem) error {
	if len(items) == 0 {
		return nil
	}
	return r.db.Create(&items).Error
}

func (r *shoppingListRepo) Save(item *model.ShoppingListItem) error {
	return r.db.Save(item).Error
}

func (r *shoppingListRepo) Delete(id uuid.UUID) error {
	return r.db.Delete(&model.ShoppingListItem{}, "id = ?", id).Error
}
