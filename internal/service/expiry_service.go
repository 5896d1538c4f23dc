package service

import (
	"fmt"
	"log"

	"go-pantry-mind/internal/model"
	"go-pantry-mind/internal/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ExpiryService writes off batches past their expiry date. It is just
// another caller of the aggregator's delete path, so expiry accounting can
// never diverge from manual consumption.
type ExpiryService interface {
	ProcessExpired(kitchenID uuid.UUID) (int, error)
	ProcessAllKitchens() error
}

type expiryService struct {
	invRepo     repository.InventoryRepository
	itemRepo    repository.InventoryItemRepository
	wasteRepo   repository.WasteLogRepository
	kitchenRepo repository.KitchenRepository
	inventory   InventoryService
	db          *gorm.DB
}

func NewExpiryService(
	invRepo repository.InventoryRepository,
	itemRepo repository.InventoryItemRepository,
	wasteRepo repository.WasteLogRepository,
	kitchenRepo repository.KitchenRepository,
	inventory InventoryService,
	db *gorm.DB,
) ExpiryService {
	return &expiryService{
		invRepo:     invRepo,
		itemRepo:    itemRepo,
		wasteRepo:   wasteRepo,
		kitchenRepo: kitchenRepo,
		inventory:   inventory,
		db:          db,
	}
}

// ProcessExpired drains every expired batch of one kitchen through
// DeleteItem with reason EXPIRED and logs each write-off. A failure on one
// batch is logged and the sweep continues.
func (s *expiryService) ProcessExpired(kitchenID uuid.UUID) (int, error) {
	expired, err := s.itemRepo.FindExpired(kitchenID, today())
	if err != nil {
		return 0, err
	}

	processed := 0
	caller := CallerContext{KitchenID: kitchenID}
	for _, item := range expired {
		// Snapshot group data before the delete possibly removes the group.
		inv, err := s.invRepo.FindByID(item.InventoryID)
		if err != nil {
			log.Printf("Expiry sweep: group %s gone for item %s: %v", item.InventoryID, item.ID, err)
			continue
		}

		quantity := item.Quantity
		if err := s.inventory.DeleteItem(caller, item.ID, model.ReasonExpired); err != nil {
			log.Printf("Expiry sweep: failed to write off item %s: %v", item.ID, err)
			continue
		}

		entry := &model.WasteLog{
			KitchenID:      kitchenID,
			CanonicalName:  inv.Name,
			QuantityWasted: quantity,
			UnitID:         inv.UnitID,
			Reason:         model.WasteExpired,
			EstimatedValue: estimatedValue(&item),
			Notes:          fmt.Sprintf("Automatically logged - item expired on %s", item.ExpiryDate.Format("2006-01-02")),
		}
		if err := s.wasteRepo.Create(s.db, entry); err != nil {
			log.Printf("Expiry sweep: failed to log waste for item %s: %v", item.ID, err)
		}
		processed++
	}
	return processed, nil
}

// ProcessAllKitchens runs the sweep serially per kitchen.
func (s *expiryService) ProcessAllKitchens() error {
	ids, err := s.kitchenRepo.FindAllIDs()
	if err != nil {
		return err
	}
	for _, id := range ids {
		n, err := s.ProcessExpired(id)
		if err != nil {
			log.Printf("Expiry sweep: kitchen %s failed: %v", id, err)
			continue
		}
		if n > 0 {
			log.Printf("Expiry sweep: wrote off %d expired batches in kitchen %s", n, id)
		}
	}
	return nil
}

func estimatedValue(item *model.InventoryItem) float64 {
	if item.Price != nil {
		return *item.Price
	}
	return 0
}
