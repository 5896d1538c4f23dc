package service

import (
	"fmt"
	"log"
	"time"

	"go-pantry-mind/internal/model"
	"go-pantry-mind/internal/repository"
	"go-pantry-mind/internal/ws"

	"github.com/google/uuid"
)

// expiryAlertWindowDays is the default look-ahead for expiry warnings when
// a group has no explicit min_expiry_days_alert.
const expiryAlertWindowDays = 7

// AlertService turns low stock and near expiry into notification rows and
// a websocket broadcast. It does not deliver anything; clients poll or
// listen.
type AlertService interface {
	CheckKitchen(kitchenID uuid.UUID) error
	CheckAllKitchens(now time.Time) error
}

type alertService struct {
	invRepo     repository.InventoryRepository
	itemRepo    repository.InventoryItemRepository
	kitchenRepo repository.KitchenRepository
	notifRepo   repository.NotificationRepository
	wsHub       *ws.Hub
}

func NewAlertService(
	invRepo repository.InventoryRepository,
	itemRepo repository.InventoryItemRepository,
	kitchenRepo repository.KitchenRepository,
	notifRepo repository.NotificationRepository,
	hub *ws.Hub,
) AlertService {
	return &alertService{
		invRepo:     invRepo,
		itemRepo:    itemRepo,
		kitchenRepo: kitchenRepo,
		notifRepo:   notifRepo,
		wsHub:       hub,
	}
}

func (s *alertService) CheckKitchen(kitchenID uuid.UUID) error {
	if err := s.checkLowStock(kitchenID); err != nil {
		return err
	}
	return s.checkExpiry(kitchenID)
}

func (s *alertService) checkLowStock(kitchenID uuid.UUID) error {
	lowStock, err := s.invRepo.FindLowStock(kitchenID)
	if err != nil {
		return err
	}
	if len(lowStock) == 0 {
		return nil
	}

	severity := model.SeverityWarning
	for _, inv := range lowStock {
		if inv.TotalQuantity == 0 {
			severity = model.SeverityCritical
			break
		}
	}

	n := &model.Notification{
		KitchenID: kitchenID,
		Type:      "LOW_STOCK",
		Title:     "Low stock",
		Message:   fmt.Sprintf("%d items are running low", len(lowStock)),
		Severity:  severity,
	}
	if err := s.notifRepo.Create(n); err != nil {
		return err
	}
	s.notify(n)
	return nil
}

func (s *alertService) checkExpiry(kitchenID uuid.UUID) error {
	invs, err := s.invRepo.FindByKitchen(kitchenID)
	if err != nil {
		return err
	}

	critical, warning := 0, 0
	start := today()
	for _, inv := range invs {
		earliest, err := s.itemRepo.EarliestExpiry(inv.ID, start)
		if err != nil {
			log.Printf("Alert check: earliest expiry lookup failed for group %s: %v", inv.ID, err)
			continue
		}
		if earliest == nil {
			continue
		}
		window := expiryAlertWindowDays
		if inv.MinExpiryDaysAlert != nil {
			window = *inv.MinExpiryDaysAlert
		}
		days := int(earliest.Sub(start).Hours() / 24)
		switch {
		case days <= 0:
			critical++
		case days <= window:
			warning++
		}
	}

	if critical > 0 {
		n := &model.Notification{
			KitchenID: kitchenID,
			Type:      "EXPIRY_CRITICAL",
			Title:     "Expiring today",
			Message:   fmt.Sprintf("%d items expiring today", critical),
			Severity:  model.SeverityCritical,
		}
		if err := s.notifRepo.Create(n); err != nil {
			return err
		}
		s.notify(n)
	}
	if warning > 0 {
		n := &model.Notification{
			KitchenID: kitchenID,
			Type:      "EXPIRY_WARNING",
			Title:     "Expiring soon",
			Message:   fmt.Sprintf("%d items expiring soon", warning),
			Severity:  model.SeverityWarning,
		}
		if err := s.notifRepo.Create(n); err != nil {
			return err
		}
		s.notify(n)
	}
	return nil
}

// CheckAllKitchens runs the checks for every kitchen whose configured
// alert window contains now. Kitchens are processed serially.
func (s *alertService) CheckAllKitchens(now time.Time) error {
	kitchens, err := s.kitchenRepo.FindAll()
	if err != nil {
		return err
	}
	for _, kitchen := range kitchens {
		if !kitchen.AlertsEnabled || !inAlertWindow(&kitchen, now) {
			continue
		}
		if err := s.CheckKitchen(kitchen.ID); err != nil {
			log.Printf("Alert check failed for kitchen %s: %v", kitchen.ID, err)
		}
	}
	return nil
}

// inAlertWindow reports whether now falls in the kitchen's 15-minute alert
// slot, matching the scheduler's check interval.
func inAlertWindow(kitchen *model.Kitchen, now time.Time) bool {
	return now.Hour() == kitchen.AlertTimeHour &&
		now.Minute() >= kitchen.AlertTimeMinute &&
		now.Minute() < kitchen.AlertTimeMinute+15
}

func (s *alertService) notify(n *model.Notification) {
	if s.wsHub == nil {
		return
	}
	go s.wsHub.BroadcastJSON(map[string]interface{}{
		"type":         "notification",
		"notification": n,
	})
}
