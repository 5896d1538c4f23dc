package service

import (
	"errors"
	"fmt"

	"go-pantry-mind/internal/model"
	"go-pantry-mind/internal/repository"
)

// ErrInvalidAlertTime rejects alert windows outside a 24-hour clock.
var ErrInvalidAlertTime = errors.New("alert time must be a valid hour and minute")

// UpdateKitchenAlertsRequest patches the kitchen-wide alert window. Nil
// fields keep their current value.
type UpdateKitchenAlertsRequest struct {
	AlertsEnabled   *bool `json:"alerts_enabled"`
	AlertTimeHour   *int  `json:"alert_time_hour"`
	AlertTimeMinute *int  `json:"alert_time_minute"`
}

type KitchenService interface {
	GetKitchen(caller CallerContext) (*model.Kitchen, error)
	GetMembers(caller CallerContext) ([]model.UserResponse, error)
	UpdateAlertSettings(caller CallerContext, req *UpdateKitchenAlertsRequest) (*model.Kitchen, error)
}

type kitchenService struct {
	kitchenRepo repository.KitchenRepository
	userRepo    repository.UserRepository
}

func NewKitchenService(kitchenRepo repository.KitchenRepository, userRepo repository.UserRepository) KitchenService {
	return &kitchenService{kitchenRepo: kitchenRepo, userRepo: userRepo}
}

// GetKitchen returns the caller's own kitchen, invitation code included.
func (s *kitchenService) GetKitchen(caller CallerContext) (*model.Kitchen, error) {
	kitchen, err := s.kitchenRepo.FindByID(caller.KitchenID)
	if err != nil {
		return nil, fmt.Errorf("%w: kitchen %s", ErrNotFound, caller.KitchenID)
	}
	return kitchen, nil
}

// GetMembers lists the kitchen's users without credential fields.
func (s *kitchenService) GetMembers(caller CallerContext) ([]model.UserResponse, error) {
	users, err := s.userRepo.FindByKitchen(caller.KitchenID)
	if err != nil {
		return nil, err
	}
	members := make([]model.UserResponse, 0, len(users))
	for i := range users {
		members = append(members, users[i].ToResponse())
	}
	return members, nil
}

// UpdateAlertSettings adjusts when the scheduled alert check fires for
// this kitchen.
func (s *kitchenService) UpdateAlertSettings(caller CallerContext, req *UpdateKitchenAlertsRequest) (*model.Kitchen, error) {
	if req.AlertTimeHour != nil && (*req.AlertTimeHour < 0 || *req.AlertTimeHour > 23) {
		return nil, fmt.Errorf("%w: hour %d", ErrInvalidAlertTime, *req.AlertTimeHour)
	}
	if req.AlertTimeMinute != nil && (*req.AlertTimeMinute < 0 || *req.AlertTimeMinute > 59) {
		return nil, fmt.Errorf("%w: minute %d", ErrInvalidAlertTime, *req.AlertTimeMinute)
	}

	kitchen, err := s.kitchenRepo.FindByID(caller.KitchenID)
	if err != nil {
		return nil, fmt.Errorf("%w: kitchen %s", ErrNotFound, caller.KitchenID)
	}

	if req.AlertsEnabled != nil {
		kitchen.AlertsEnabled = *req.AlertsEnabled
	}
	if req.AlertTimeHour != nil {
		kitchen.AlertTimeHour = *req.AlertTimeHour
	}
	if req.AlertTimeMinute != nil {
		kitchen.AlertTimeMinute = *req.AlertTimeMinute
	}

	if err := s.kitchenRepo.Save(kitchen); err != nil {
		return nil, err
	}
	return kitchen, nil
}
