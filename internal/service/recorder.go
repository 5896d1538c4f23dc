package service

import (
	"log"

	"go-pantry-mind/internal/model"
	"go-pantry-mind/internal/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Recorder appends immutable consumption events. Best effort: the audit
// trail is secondary to the inventory mutation succeeding, so callers
// queue events during their transaction and record them after commit,
// and a failed write is logged and swallowed, never propagated.
type Recorder interface {
	Record(tx *gorm.DB, inv *model.Inventory, quantity int64, reason model.EventReason, triggeredBy *uuid.UUID)
}

type consumptionRecorder struct {
	events repository.ConsumptionEventRepository
}

func NewConsumptionRecorder(events repository.ConsumptionEventRepository) Recorder {
	return &consumptionRecorder{events: events}
}

func (r *consumptionRecorder) Record(tx *gorm.DB, inv *model.Inventory, quantity int64, reason model.EventReason, triggeredBy *uuid.UUID) {
	ev := &model.ConsumptionEvent{
		CanonicalName:    inv.Name,
		QuantityConsumed: quantity,
		UnitID:           inv.UnitID,
		KitchenID:        inv.KitchenID,
		Reason:           reason,
		TriggeredBy:      triggeredBy,
	}
	if err := r.events.Create(tx, ev); err != nil {
		log.Printf("Failed to record consumption event for %q: %v", inv.Name, err)
	}
}
