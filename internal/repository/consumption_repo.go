package repository

import (
	"time"

	"go-pantry-mind/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ConsumptionTrendPoint is one day of consumption totals for charts.
type ConsumptionTrendPoint struct {
	Date     string `json:"date"`
	Quantity int64  `json:"quantity"`
	Events   int64  `json:"events"`
}

// ConsumptionEventRepository appends and reads the audit trail. Events are
// never updated or deleted.
type ConsumptionEventRepository interface {
	Create(tx *gorm.DB, ev *model.ConsumptionEvent) error
	FindByKitchenSince(kitchenID uuid.UUID, since time.Time) ([]model.ConsumptionEvent, error)
	FindRecentByName(kitchenID uuid.UUID, canonicalName string, since time.Time) ([]model.ConsumptionEvent, error)
	GetDailyTrend(kitchenID uuid.UUID, startDate, endDate time.Time) ([]ConsumptionTrendPoint, error)
}

type consumptionEventRepo struct {
	db *gorm.DB
}

func NewConsumptionEventRepo(db *gorm.DB) ConsumptionEventRepository {
	return &consumptionEventRepo{db}
}

func (r *consumptionEventRepo) Create(tx *gorm.DB, ev *model.ConsumptionEvent) error {
	return tx.Create(ev).Error
}

func (r *consumptionEventRepo) FindByKitchenSince(kitchenID uuid.UUID, since time.Time) ([]model.ConsumptionEvent, error) {
	var events []model.ConsumptionEvent
	err := r.db.Where("kitchen_id = ? AND created_at >= ?", kitchenID, since).
		Order("created_at DESC").
		Find(&events).Error
	return events, err
}

func (r *consumptionEventRepo) FindRecentByName(kitchenID uuid.UUID, canonicalName string, since time.Time) ([]model.ConsumptionEvent, error) {
	var events []model.ConsumptionEvent
	err := r.db.Where("kitchen_id = ? AND canonical_name = ? AND created_at >= ?", kitchenID, canonicalName, since).
		Find(&events).Error
	return events, err
}

func (r *consumptionEventRepo) GetDailyTrend(kitchenID uuid.UUID, startDate, endDate time.Time) ([]ConsumptionTrendPoint, error) {
	var results []ConsumptionTrendPoint

	rows, err := r.db.Model(&model.ConsumptionEvent{}).
		Select("DATE(created_at) as date, COALESCE(SUM(quantity_consumed), 0) as quantity, COUNT(*) as events").
		Where("kitchen_id = ? AND created_at BETWEEN ? AND ?", kitchenID, startDate, endDate).
		Group("DATE(created_at)").
		Order("date ASC").
		Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var p ConsumptionTrendPoint
		if err := rows.Scan(&p.Date, &p.Quantity, &p.Events); err != nil {
			return nil, err
		}
		results = append(results, p)
	}
	return results, rows.Err()
}
