package service

import (
	"time"

	"go-pantry-mind/internal/repository"
)

// DashboardStats is the pantry overview for one kitchen.
type DashboardStats struct {
	TotalGroups   int64   `json:"total_groups"`
	LowStockCount int64   `json:"low_stock_count"`
	ExpiringCount int64   `json:"expiring_count"`
	TotalValue    float64 `json:"total_value"`
}

type DashboardService interface {
	GetStats(caller CallerContext) (*DashboardStats, error)
	GetConsumptionTrend(caller CallerContext, days int) ([]repository.ConsumptionTrendPoint, error)
}

type dashboardService struct {
	invRepo   repository.InventoryRepository
	itemRepo  repository.InventoryItemRepository
	eventRepo repository.ConsumptionEventRepository
}

func NewDashboardService(
	invRepo repository.InventoryRepository,
	itemRepo repository.InventoryItemRepository,
	eventRepo repository.ConsumptionEventRepository,
) DashboardService {
	return &dashboardService{invRepo: invRepo, itemRepo: itemRepo, eventRepo: eventRepo}
}

func (s *dashboardService) GetStats(caller CallerContext) (*DashboardStats, error) {
	stats := &DashboardStats{}

	var err error
	if stats.TotalGroups, err = s.invRepo.Count(caller.KitchenID); err != nil {
		return nil, err
	}
	if stats.LowStockCount, err = s.invRepo.CountLowStock(caller.KitchenID); err != nil {
		return nil, err
	}
	if stats.ExpiringCount, err = s.itemRepo.CountExpiringWithin(caller.KitchenID, expiryAlertWindowDays); err != nil {
		return nil, err
	}
	if stats.TotalValue, err = s.itemRepo.SumValue(caller.KitchenID); err != nil {
		return nil, err
	}
	return stats, nil
}

func (s *dashboardService) GetConsumptionTrend(caller CallerContext, days int) ([]repository.ConsumptionTrendPoint, error) {
	endDate := time.Now()
	startDate := endDate.AddDate(0, 0, -days)
	return s.eventRepo.GetDailyTrend(caller.KitchenID, startDate, endDate)
}
