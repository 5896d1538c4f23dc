package service

import (
	"fmt"

	"go-pantry-mind/internal/model"
	"go-pantry-mind/internal/repository"
	"go-pantry-mind/pkg/validator"

	"github.com/google/uuid"
)

type CreateShoppingItemRequest struct {
	ItemName string                 `json:"item_name" validate:"required"`
	Quantity float64                `json:"quantity"`
	Unit     string                 `json:"unit"`
	Category string                 `json:"category"`
	Priority model.ShoppingPriority `json:"priority"`
}

type UpdateShoppingItemRequest struct {
	ItemName    *string                 `json:"item_name,omitempty"`
	Quantity    *float64                `json:"quantity,omitempty"`
	Unit        *string                 `json:"unit,omitempty"`
	Category    *string                 `json:"category,omitempty"`
	Priority    *model.ShoppingPriority `json:"priority,omitempty"`
	IsPurchased *bool                   `json:"is_purchased,omitempty"`
}

// ShoppingListSummary groups the list by priority for the overview screen.
type ShoppingListSummary struct {
	KitchenID      uuid.UUID                `json:"kitchen_id"`
	TotalItems     int                      `json:"total_items"`
	PurchasedItems int                      `json:"purchased_items"`
	PendingItems   int                      `json:"pending_items"`
	HighPriority   []model.ShoppingListItem `json:"high_priority_items"`
	MediumPriority []model.ShoppingListItem `json:"medium_priority_items"`
	LowPriority    []model.ShoppingListItem `json:"low_priority_items"`
	Purchased      []model.ShoppingListItem `json:"purchased_items_list"`
}

type ShoppingListService interface {
	GetList(caller CallerContext) ([]model.ShoppingListItem, error)
	GetSummary(caller CallerContext) (*ShoppingListSummary, error)
	AddItem(caller CallerContext, req *CreateShoppingItemRequest) (*model.ShoppingListItem, error)
	UpdateItem(caller CallerContext, id uuid.UUID, req *UpdateShoppingItemRequest) (*model.ShoppingListItem, error)
	TogglePurchased(caller CallerContext, id uuid.UUID) (*model.ShoppingListItem, error)
	DeleteItem(caller CallerContext, id uuid.UUID) error
	GenerateFromLowStock(caller CallerContext) ([]model.ShoppingListItem, error)
}

type shoppingListService struct {
	shopRepo repository.ShoppingListRepository
	invRepo  repository.InventoryRepository
	unitRepo repository.UnitRepository
	catRepo  repository.CategoryRepository
}

func NewShoppingListService(
	shopRepo repository.ShoppingListRepository,
	invRepo repository.InventoryRepository,
	unitRepo repository.UnitRepository,
	catRepo repository.CategoryRepository,
) ShoppingListService {
	return &shoppingListService{
		shopRepo: shopRepo,
		invRepo:  invRepo,
		unitRepo: unitRepo,
		catRepo:  catRepo,
	}
}

func (s *shoppingListService) GetList(caller CallerContext) ([]model.ShoppingListItem, error) {
	return s.shopRepo.FindByKitchen(caller.KitchenID)
}

func (s *shoppingListService) GetSummary(caller CallerContext) (*ShoppingListSummary, error) {
	items, err := s.shopRepo.FindByKitchen(caller.KitchenID)
	if err != nil {
		return nil, err
	}

	summary := &ShoppingListSummary{
		KitchenID:  caller.KitchenID,
		TotalItems: len(items),
	}
	for _, item := range items {
		if item.IsPurchased {
			summary.PurchasedItems++
			summary.Purchased = append(summary.Purchased, item)
			continue
		}
		switch item.Priority {
		case model.PriorityHigh:
			summary.HighPriority = append(summary.HighPriority, item)
		case model.PriorityLow:
			summary.LowPriority = append(summary.LowPriority, item)
		default:
			summary.MediumPriority = append(summary.MediumPriority, item)
		}
	}
	summary.PendingItems = summary.TotalItems - summary.PurchasedItems
	return summary, nil
}

func (s *shoppingListService) AddItem(caller CallerContext, req *CreateShoppingItemRequest) (*model.ShoppingListItem, error) {
	if errs := validator.ValidateStruct(req); len(errs) > 0 {
		first := errs[0]
		return nil, fmt.Errorf("validation failed: field %s failed on %s", first.FailedField, first.Tag)
	}

	item := &model.ShoppingListItem{
		KitchenID: caller.KitchenID,
		ItemName:  req.ItemName,
		Quantity:  req.Quantity,
		Unit:      req.Unit,
		Category:  req.Category,
		Priority:  req.Priority,
		Source:    model.SourceManual,
		CreatedBy: caller.UserID,
	}
	if item.Quantity <= 0 {
		item.Quantity = 1
	}
	if item.Priority == "" {
		item.Priority = model.PriorityMedium
	}
	if err := s.shopRepo.Create(item); err != nil {
		return nil, err
	}
	return item, nil
}

func (s *shoppingListService) UpdateItem(caller CallerContext, id uuid.UUID, req *UpdateShoppingItemRequest) (*model.ShoppingListItem, error) {
	item, err := s.shopRepo.FindByID(id)
	if err != nil {
		return nil, fmt.Errorf("%w: shopping list item %s", ErrNotFound, id)
	}

	if req.ItemName != nil {
		item.ItemName = *req.ItemName
	}
	if req.Quantity != nil {
		item.Quantity = *req.Quantity
	}
	if req.Unit != nil {
		item.Unit = *req.Unit
	}
	if req.Category != nil {
		item.Category = *req.Category
	}
	if req.Priority != nil {
		item.Priority = *req.Priority
	}
	if req.IsPurchased != nil {
		item.IsPurchased = *req.IsPurchased
	}
	if err := s.shopRepo.Save(item); err != nil {
		return nil, err
	}
	return item, nil
}

func (s *shoppingListService) TogglePurchased(caller CallerContext, id uuid.UUID) (*model.ShoppingListItem, error) {
	item, err := s.shopRepo.FindByID(id)
	if err != nil {
		return nil, fmt.Errorf("%w: shopping list item %s", ErrNotFound, id)
	}
	item.IsPurchased = !item.IsPurchased
	if err := s.shopRepo.Save(item); err != nil {
		return nil, err
	}
	return item, nil
}

func (s *shoppingListService) DeleteItem(caller CallerContext, id uuid.UUID) error {
	if _, err := s.shopRepo.FindByID(id); err != nil {
		return fmt.Errorf("%w: shopping list item %s", ErrNotFound, id)
	}
	return s.shopRepo.Delete(id)
}

// GenerateFromLowStock adds one pending entry per low-stock group,
// skipping names already waiting to be bought.
func (s *shoppingListService) GenerateFromLowStock(caller CallerContext) ([]model.ShoppingListItem, error) {
	lowStock, err := s.invRepo.FindLowStock(caller.KitchenID)
	if err != nil {
		return nil, err
	}
	pendingNames, err := s.shopRepo.FindPendingNames(caller.KitchenID)
	if err != nil {
		return nil, err
	}
	pending := make(map[string]bool, len(pendingNames))
	for _, name := range pendingNames {
		pending[name] = true
	}

	var generated []model.ShoppingListItem
	for _, inv := range lowStock {
		if pending[inv.Name] {
			continue
		}
		generated = append(generated, model.ShoppingListItem{
			KitchenID: caller.KitchenID,
			ItemName:  inv.Name,
			Quantity:  suggestedRestockQuantity(&inv),
			Unit:      s.unitName(inv.UnitID),
			Category:  s.categoryName(inv.CategoryID),
			Priority:  model.PriorityHigh,
			Source:    model.SourceLowStock,
			CreatedBy: caller.UserID,
		})
	}
	if err := s.shopRepo.CreateAll(generated); err != nil {
		return nil, err
	}
	return generated, nil
}

// suggestedRestockQuantity tops the group back up to twice its threshold.
func suggestedRestockQuantity(inv *model.Inventory) float64 {
	want := inv.MinStockOrDefault()*2 - inv.TotalQuantity
	if want < 1 {
		want = 1
	}
	return float64(want)
}

func (s *shoppingListService) unitName(id uuid.UUID) string {
	if unit, err := s.unitRepo.FindByID(id); err == nil {
		return unit.Name
	}
	return ""
}

func (s *shoppingListService) categoryName(id uuid.UUID) string {
	if category, err := s.catRepo.FindByID(id); err == nil {
		return category.Name
	}
	return ""
}
