package repository

import (
	"fmt"
	"time"

	"go-pantry-mind/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// InventoryItemRepository is the data access layer for batches.
type InventoryItemRepository interface {
	FindByID(id uuid.UUID) (*model.InventoryItem, error)
	FindByIDTx(tx *gorm.DB, id uuid.UUID) (*model.InventoryItem, error)
	FindByInventory(inventoryID uuid.UUID) ([]model.InventoryItem, error)
	// FindByInventoryOrderByExpiry returns a group's batches ordered for
	// consumption: earliest expiry first, batches without an expiry last.
	FindByInventoryOrderByExpiry(tx *gorm.DB, inventoryID uuid.UUID) ([]model.InventoryItem, error)
	FindExpired(kitchenID uuid.UUID, asOf time.Time) ([]model.InventoryItem, error)
	SumQuantity(tx *gorm.DB, inventoryID uuid.UUID) (int64, error)
	CountByInventory(tx *gorm.DB, inventoryID uuid.UUID) (int64, error)
	EarliestExpiry(inventoryID uuid.UUID, from time.Time) (*time.Time, error)
	Create(tx *gorm.DB, item *model.InventoryItem) error
	Save(tx *gorm.DB, item *model.InventoryItem) error
	Delete(tx *gorm.DB, id uuid.UUID) error
	SumValue(kitchenID uuid.UUID) (float64, error)
	CountExpiringWithin(kitchenID uuid.UUID, days int) (int64, error)
}

type inventoryItemRepo struct {
	db *gorm.DB
}

func NewInventoryItemRepo(db *gorm.DB) InventoryItemRepository {
	return &inventoryItemRepo{db}
}

func (r *inventoryItemRepo) FindByID(id uuid.UUID) (*model.InventoryItem, error) {
	return r.FindByIDTx(r.db, id)
}

func (r *inventoryItemRepo) FindByIDTx(tx *gorm.DB, id uuid.UUID) (*model.InventoryItem, error) {
	var item model.InventoryItem
	if err := tx.First(&item, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &item, nil
}

func (r *inventoryItemRepo) FindByInventory(inventoryID uuid.UUID) ([]model.InventoryItem, error) {
	var items []model.InventoryItem
	err := r.db.Where("inventory_id = ?", inventoryID).Order("created_at ASC").Find(&items).Error
	return items, err
}

func (r *inventoryItemRepo) FindByInventoryOrderByExpiry(tx *gorm.DB, inventoryID uuid.UUID) ([]model.InventoryItem, error) {
	var items []model.InventoryItem
	err := tx.Where("inventory_id = ?", inventoryID).
		Order("expiry_date ASC NULLS LAST").
		Order("created_at ASC").
		Find(&items).Error
	return items, err
}

func (r *inventoryItemRepo) FindExpired(kitchenID uuid.UUID, asOf time.Time) ([]model.InventoryItem, error) {
	var items []model.InventoryItem
	err := r.db.
		Joins("JOIN inventories ON inventories.id = inventory_items.inventory_id").
		Where("inventories.kitchen_id = ? AND inventory_items.expiry_date IS NOT NULL AND inventory_items.expiry_date < ?", kitchenID, asOf).
		Find(&items).Error
	return items, err
}

func (r *inventoryItemRepo) SumQuantity(tx *gorm.DB, inventoryID uuid.UUID) (int64, error) {
	var total int64
	err := tx.Model(&model.InventoryItem{}).
		Where("inventory_id = ?", inventoryID).
		Select("COALESCE(SUM(quantity), 0)").
		Scan(&total).Error
	return total, err
}

func (r *inventoryItemRepo) CountByInventory(tx *gorm.DB, inventoryID uuid.UUID) (int64, error) {
	var n int64
	err := tx.Model(&model.InventoryItem{}).Where("inventory_id = ?", inventoryID).Count(&n).Error
	return n, err
}

// EarliestExpiry returns the soonest upcoming expiry among a group's
// batches, or nil when none carry one. MIN() strips the column's type
// affinity on sqlite, so the value is scanned loosely and parsed.
func (r *inventoryItemRepo) EarliestExpiry(inventoryID uuid.UUID, from time.Time) (*time.Time, error) {
	row := r.db.Model(&model.InventoryItem{}).
		Where("inventory_id = ? AND expiry_date >= ?", inventoryID, from).
		Select("MIN(expiry_date)").
		Row()

	var value interface{}
	if err := row.Scan(&value); err != nil {
		return nil, err
	}
	return parseDateValue(value)
}

var dateLayouts = []string{
	"2006-01-02 15:04:05.999999999-07:00",
	time.RFC3339Nano,
	"2006-01-02 15:04:05",
	"2006-01-02",
}

func parseDateValue(value interface{}) (*time.Time, error) {
	switch v := value.(type) {
	case nil:
		return nil, nil
	case time.Time:
		return &v, nil
	case string:
		return parseDateString(v)
	case []byte:
		return parseDateString(string(v))
	default:
		return nil, fmt.Errorf("unexpected date value of type %T", value)
	}
}

func parseDateString(s string) (*time.Time, error) {
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return &t, nil
		}
	}
	return nil, fmt.Errorf("unparseable date value %q", s)
}

func (r *inventoryItemRepo) Create(tx *gorm.DB, item *model.InventoryItem) error {
	return tx.Create(item).Error
}

func (r *inventoryItemRepo) Save(tx *gorm.DB, item *model.InventoryItem) error {
	return tx.Save(item).Error
}

func (r *inventoryItemRepo) Delete(tx *gorm.DB, id uuid.UUID) error {
	return tx.Delete(&model.InventoryItem{}, "id = ?", id).Error
}

func (r *inventoryItemRepo) SumValue(kitchenID uuid.UUID) (float64, error) {
	var total float64
	err := r.db.Model(&model.InventoryItem{}).
		Joins("JOIN inventories ON inventories.id = inventory_items.inventory_id").
		Where("inventories.kitchen_id = ?", kitchenID).
		Select("COALESCE(SUM(inventory_items.price), 0)").
		Scan(&total).Error
	return total, err
}

func (r *inventoryItemRepo) CountExpiringWithin(kitchenID uuid.UUID, days int) (int64, error) {
	var n int64
	cutoff := time.Now().AddDate(0, 0, days)
	err := r.db.Model(&model.InventoryItem{}).
		Joins("JOIN inventories ON inventories.id = inventory_items.inventory_id").
		Where("inventories.kitchen_id = ? AND inventory_items.expiry_date IS NOT NULL AND inventory_items.expiry_date <= ?", kitchenID, cutoff).
		Count(&n).Error
	return n, err
}
