package repository

import (
	"go-pantry-mind/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// InventoryRepository is the data access layer for inventory groups.
// Methods that take a *gorm.DB run inside the caller's transaction; the
// aggregator mutates groups only that way.
type InventoryRepository interface {
	FindByID(id uuid.UUID) (*model.Inventory, error)
	FindByIDTx(tx *gorm.DB, id uuid.UUID) (*model.Inventory, error)
	FindByKey(tx *gorm.DB, kitchenID uuid.UUID, normalizedName string, categoryID, unitID uuid.UUID) (*model.Inventory, error)
	FindNamesByScope(tx *gorm.DB, kitchenID, categoryID, unitID uuid.UUID) ([]string, error)
	FindByKitchen(kitchenID uuid.UUID) ([]model.Inventory, error)
	FindLowStock(kitchenID uuid.UUID) ([]model.Inventory, error)
	Create(tx *gorm.DB, inv *model.Inventory) error
	Save(tx *gorm.DB, inv *model.Inventory) error
	Delete(tx *gorm.DB, id uuid.UUID) error
	CountLowStock(kitchenID uuid.UUID) (int64, error)
	Count(kitchenID uuid.UUID) (int64, error)
}

type inventoryRepo struct {
	db *gorm.DB
}

func NewInventoryRepo(db *gorm.DB) InventoryRepository {
	return &inventoryRepo{db}
}

func (r *inventoryRepo) FindByID(id uuid.UUID) (*model.Inventory, error) {
	return r.FindByIDTx(r.db, id)
}

func (r *inventoryRepo) FindByIDTx(tx *gorm.DB, id uuid.UUID) (*model.Inventory, error) {
	var inv model.Inventory
	if err := tx.First(&inv, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &inv, nil
}

func (r *inventoryRepo) FindByKey(tx *gorm.DB, kitchenID uuid.UUID, normalizedName string, categoryID, unitID uuid.UUID) (*model.Inventory, error) {
	var inv model.Inventory
	err := tx.Where(
		"kitchen_id = ? AND normalized_name = ? AND category_id = ? AND unit_id = ?",
		kitchenID, normalizedName, categoryID, unitID,
	).First(&inv).Error
	if err != nil {
		return nil, err
	}
	return &inv, nil
}

// FindNamesByScope returns the display names of every group sharing the
// kitchen/category/base-unit scope, for the fuzzy-match pass.
func (r *inventoryRepo) FindNamesByScope(tx *gorm.DB, kitchenID, categoryID, unitID uuid.UUID) ([]string, error) {
	var names []string
	err := tx.Model(&model.Inventory{}).
		Where("kitchen_id = ? AND category_id = ? AND unit_id = ?", kitchenID, categoryID, unitID).
		Pluck("name", &names).Error
	return names, err
}

func (r *inventoryRepo) FindByKitchen(kitchenID uuid.UUID) ([]model.Inventory, error) {
	var invs []model.Inventory
	err := r.db.Where("kitchen_id = ?", kitchenID).Order("name ASC").Find(&invs).Error
	return invs, err
}

func (r *inventoryRepo) FindLowStock(kitchenID uuid.UUID) ([]model.Inventory, error) {
	var invs []model.Inventory
	err := r.db.Where("kitchen_id = ? AND total_quantity <= COALESCE(min_stock, ?)", kitchenID, model.DefaultMinStock).
		Find(&invs).Error
	return invs, err
}

func (r *inventoryRepo) Create(tx *gorm.DB, inv *model.Inventory) error {
	return tx.Create(inv).Error
}

func (r *inventoryRepo) Save(tx *gorm.DB, inv *model.Inventory) error {
	return tx.Save(inv).Error
}

func (r *inventoryRepo) Delete(tx *gorm.DB, id uuid.UUID) error {
	return tx.Delete(&model.Inventory{}, "id = ?", id).Error
}

func (r *inventoryRepo) CountLowStock(kitchenID uuid.UUID) (int64, error) {
	var n int64
	err := r.db.Model(&model.Inventory{}).
		Where("kitchen_id = ? AND total_quantity <= COALESCE(min_stock, ?)", kitchenID, model.DefaultMinStock).
		Count(&n).Error
	return n, err
}

func (r *inventoryRepo) Count(kitchenID uuid.UUID) (int64, error) {
	var n int64
	err := r.db.Model(&model.Inventory{}).Where("kitchen_id = ?", kitchenID).Count(&n).Error
	return n, err
}
