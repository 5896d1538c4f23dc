package service

import (
	"errors"
	"fmt"
	"time"

	"go-pantry-mind/internal/model"
	"go-pantry-mind/internal/normalize"
	"go-pantry-mind/internal/repository"
	"go-pantry-mind/internal/unitconv"
	"go-pantry-mind/internal/ws"
	"go-pantry-mind/pkg/validator"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// CreateItemRequest is a raw intake: the quantity is expressed in whatever
// unit the user picked and gets converted to base units here.
type CreateItemRequest struct {
	Name        string     `json:"name" validate:"required"`
	CategoryID  uuid.UUID  `json:"category_id" validate:"uuid_required"`
	UnitID      uuid.UUID  `json:"unit_id" validate:"uuid_required"`
	Quantity    float64    `json:"quantity" validate:"gt=0"`
	Price       *float64   `json:"price,omitempty"`
	ExpiryDate  *time.Time `json:"expiry_date,omitempty"`
	LocationID  *uuid.UUID `json:"location_id,omitempty"`
	Description string     `json:"description,omitempty"`
}

// UpdateItemRequest patches a batch; nil fields are left untouched.
// Quantity is taken in the group's base unit.
type UpdateItemRequest struct {
	Quantity    *int64     `json:"quantity,omitempty"`
	Price       *float64   `json:"price,omitempty"`
	ExpiryDate  *time.Time `json:"expiry_date,omitempty"`
	LocationID  *uuid.UUID `json:"location_id,omitempty"`
	Description *string    `json:"description,omitempty"`
}

// UpdateAlertsRequest adjusts a group's alert thresholds.
type UpdateAlertsRequest struct {
	MinStock           *int64 `json:"min_stock,omitempty"`
	MinExpiryDaysAlert *int   `json:"min_expiry_days_alert,omitempty"`
}

// ConsumeRequest asks to draw quantity (base units) from either a single
// batch or a whole group; ID is tried as a batch first, then as a group.
type ConsumeRequest struct {
	ID       uuid.UUID `json:"id" validate:"uuid_required"`
	Quantity int64     `json:"consumed_quantity" validate:"gt=0"`
}

// ConsumeResult reports what actually happened. Shortfall > 0 means the
// kitchen ran out before the request was satisfied; that is not an error.
type ConsumeResult struct {
	ID        uuid.UUID `json:"id"`
	Requested int64     `json:"requested"`
	Consumed  int64     `json:"consumed"`
	Shortfall int64     `json:"shortfall"`
}

// GroupResponse is a group plus the display data a client needs, resolved
// with explicit lookups.
type GroupResponse struct {
	model.Inventory
	UnitName       string                `json:"unit_name"`
	CategoryName   string                `json:"category_name"`
	EarliestExpiry *time.Time            `json:"earliest_expiry,omitempty"`
	Items          []model.InventoryItem `json:"items,omitempty"`
}

type InventoryService interface {
	AddItem(caller CallerContext, req *CreateItemRequest) (*model.InventoryItem, *model.Inventory, error)
	ConsumeItems(caller CallerContext, reqs []ConsumeRequest, reason model.EventReason) ([]ConsumeResult, error)
	DeleteItem(caller CallerContext, itemID uuid.UUID, reason model.EventReason) error
	UpdateItem(caller CallerContext, itemID uuid.UUID, req *UpdateItemRequest) (*model.InventoryItem, error)
	UpdateAlerts(caller CallerContext, inventoryID uuid.UUID, req *UpdateAlertsRequest) (*model.Inventory, error)
	GetKitchenInventory(caller CallerContext) ([]GroupResponse, error)
	GetGroup(caller CallerContext, inventoryID uuid.UUID) (*GroupResponse, error)
	GetItem(caller CallerContext, itemID uuid.UUID) (*model.InventoryItem, error)
}

type inventoryService struct {
	invRepo  repository.InventoryRepository
	itemRepo repository.InventoryItemRepository
	unitRepo repository.UnitRepository
	catRepo  repository.CategoryRepository
	recorder Recorder
	db       *gorm.DB
	wsHub    *ws.Hub
}

func NewInventoryService(
	invRepo repository.InventoryRepository,
	itemRepo repository.InventoryItemRepository,
	unitRepo repository.UnitRepository,
	catRepo repository.CategoryRepository,
	recorder Recorder,
	db *gorm.DB,
	hub *ws.Hub,
) InventoryService {
	return &inventoryService{
		invRepo:  invRepo,
		itemRepo: itemRepo,
		unitRepo: unitRepo,
		catRepo:  catRepo,
		recorder: recorder,
		db:       db,
		wsHub:    hub,
	}
}

// AddItem converts the intake to base units, resolves (or creates) the
// owning group and appends a batch, all inside one transaction. Group
// aggregates are recomputed from the live batches, not incremented.
func (s *inventoryService) AddItem(caller CallerContext, req *CreateItemRequest) (*model.InventoryItem, *model.Inventory, error) {
	if errs := validator.ValidateStruct(req); len(errs) > 0 {
		first := errs[0]
		return nil, nil, fmt.Errorf("%w: field %s failed on %s", ErrInvalidQuantity, first.FailedField, first.Tag)
	}
	if req.Quantity < 0 {
		return nil, nil, ErrInvalidQuantity
	}

	inputUnit, err := s.unitRepo.FindByID(req.UnitID)
	if err != nil {
		return nil, nil, fmt.Errorf("%w: unit %s", ErrNotFound, req.UnitID)
	}

	baseName, err := unitconv.BaseUnit(inputUnit.Name)
	if err != nil {
		return nil, nil, fmt.Errorf("%w: %v", ErrConversion, err)
	}
	baseQty, err := unitconv.ToBase(req.Quantity, inputUnit.Name)
	if err != nil {
		return nil, nil, fmt.Errorf("%w: %v", ErrConversion, err)
	}
	baseUnit, err := s.unitRepo.FindByName(baseName)
	if err != nil {
		return nil, nil, fmt.Errorf("%w: base unit %s", ErrNotFound, baseName)
	}

	var item *model.InventoryItem
	var group *model.Inventory

	err = s.db.Transaction(func(tx *gorm.DB) error {
		inv, err := s.resolveOrCreateGroup(tx, caller.KitchenID, req.Name, req.CategoryID, baseUnit.ID)
		if err != nil {
			return err
		}

		created := &model.InventoryItem{
			InventoryID: inv.ID,
			Quantity:    baseQty,
			Price:       req.Price,
			ExpiryDate:  req.ExpiryDate,
			LocationID:  req.LocationID,
			Description: req.Description,
			CreatedBy:   caller.UserID,
		}
		if err := s.itemRepo.Create(tx, created); err != nil {
			return err
		}

		count, err := s.itemRepo.CountByInventory(tx, inv.ID)
		if err != nil {
			return err
		}
		inv.ItemCount = int(count)
		if err := s.recomputeTotal(tx, inv); err != nil {
			return err
		}
		if err := s.invRepo.Save(tx, inv); err != nil {
			return err
		}

		item, group = created, inv
		return nil
	})
	if err != nil {
		return nil, nil, err
	}

	s.broadcast("item_added", group, map[string]interface{}{
		"item_id":  item.ID,
		"quantity": item.Quantity,
	})
	return item, group, nil
}

// resolveOrCreateGroup maps a raw item name to its canonical group.
// Resolution order: exact normalized key, a normalize-every-name pass over
// the scope (defends against stale display names), fuzzy best match, then
// creation. A uniqueness violation on create means another request won the
// race, so the now-existing row is returned instead of the error.
func (s *inventoryService) resolveOrCreateGroup(tx *gorm.DB, kitchenID uuid.UUID, rawName string, categoryID, baseUnitID uuid.UUID) (*model.Inventory, error) {
	normalized := normalize.Normalize(rawName)

	if inv, err := s.invRepo.FindByKey(tx, kitchenID, normalized, categoryID, baseUnitID); err == nil {
		return inv, nil
	}

	names, err := s.invRepo.FindNamesByScope(tx, kitchenID, categoryID, baseUnitID)
	if err != nil {
		return nil, err
	}
	for _, existing := range names {
		if normalize.Normalize(existing) == normalized {
			if inv, err := s.invRepo.FindByKey(tx, kitchenID, normalized, categoryID, baseUnitID); err == nil {
				return inv, nil
			}
		}
	}

	if best := normalize.FindBestMatch(rawName, names); best != "" {
		if inv, err := s.invRepo.FindByKey(tx, kitchenID, normalize.Normalize(best), categoryID, baseUnitID); err == nil {
			return inv, nil
		}
	}

	// Reference checks stay on the transaction: reading on another pooled
	// connection would escape the operation's atomic boundary (and block
	// outright on a single-connection pool).
	if _, err := s.catRepo.FindByIDTx(tx, categoryID); err != nil {
		return nil, fmt.Errorf("%w: category %s", ErrNotFound, categoryID)
	}
	if _, err := s.unitRepo.FindByIDTx(tx, baseUnitID); err != nil {
		return nil, fmt.Errorf("%w: unit %s", ErrNotFound, baseUnitID)
	}

	inv := &model.Inventory{
		KitchenID:      kitchenID,
		Name:           normalize.CapitalizeDisplayName(rawName),
		NormalizedName: normalized,
		CategoryID:     categoryID,
		UnitID:         baseUnitID,
		TotalQuantity:  0,
		ItemCount:      0,
	}
	if err := s.invRepo.Create(tx, inv); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return s.invRepo.FindByKey(tx, kitchenID, normalized, categoryID, baseUnitID)
		}
		return nil, err
	}
	return inv, nil
}

// pendingEvent is a consumption event queued during a transaction and
// written only after commit: an audit failure must never abort the
// mutation, and on postgres any failed insert would poison the
// transaction no matter how the Go error is handled.
type pendingEvent struct {
	inv         model.Inventory
	quantity    int64
	reason      model.EventReason
	triggeredBy *uuid.UUID
}

// ConsumeItems draws down stock. Each request id is tried as a batch
// first, then as a group; group consumption drains batches earliest
// expiry first. Over-asking consumes everything available and reports the
// shortfall. The whole call is one transaction.
func (s *inventoryService) ConsumeItems(caller CallerContext, reqs []ConsumeRequest, reason model.EventReason) ([]ConsumeResult, error) {
	if reason == "" {
		reason = model.ReasonConsumed
	}
	for _, req := range reqs {
		if req.Quantity < 0 {
			return nil, ErrInvalidQuantity
		}
	}

	results := make([]ConsumeResult, 0, len(reqs))
	var pending []pendingEvent
	err := s.db.Transaction(func(tx *gorm.DB) error {
		for _, req := range reqs {
			res, err := s.consumeOne(tx, caller, req, reason, &pending)
			if err != nil {
				return err
			}
			results = append(results, res)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	s.flushEvents(pending)

	s.broadcast("items_consumed", nil, map[string]interface{}{"results": results})
	return results, nil
}

func (s *inventoryService) consumeOne(tx *gorm.DB, caller CallerContext, req ConsumeRequest, reason model.EventReason, pending *[]pendingEvent) (ConsumeResult, error) {
	res := ConsumeResult{ID: req.ID, Requested: req.Quantity}

	if item, err := s.itemRepo.FindByIDTx(tx, req.ID); err == nil {
		inv, err := s.invRepo.FindByIDTx(tx, item.InventoryID)
		if err != nil {
			return res, fmt.Errorf("%w: inventory %s", ErrNotFound, item.InventoryID)
		}
		consumed, err := s.drainBatch(tx, caller, inv, item, req.Quantity, reason, pending)
		if err != nil {
			return res, err
		}
		res.Consumed = consumed
		res.Shortfall = req.Quantity - consumed
		return res, s.settleGroup(tx, inv)
	}

	inv, err := s.invRepo.FindByIDTx(tx, req.ID)
	if err != nil {
		return res, fmt.Errorf("%w: inventory item %s", ErrNotFound, req.ID)
	}

	items, err := s.itemRepo.FindByInventoryOrderByExpiry(tx, inv.ID)
	if err != nil {
		return res, err
	}

	remaining := req.Quantity
	for i := range items {
		if remaining <= 0 {
			break
		}
		consumed, err := s.drainBatch(tx, caller, inv, &items[i], remaining, reason, pending)
		if err != nil {
			return res, err
		}
		remaining -= consumed
	}
	res.Consumed = req.Quantity - remaining
	res.Shortfall = remaining
	return res, s.settleGroup(tx, inv)
}

// drainBatch takes up to want base units from one batch. A batch drained
// to zero is deleted and queues exactly one consumption event; partial
// draw-downs only decrement.
func (s *inventoryService) drainBatch(tx *gorm.DB, caller CallerContext, inv *model.Inventory, item *model.InventoryItem, want int64, reason model.EventReason, pending *[]pendingEvent) (int64, error) {
	take := want
	if item.Quantity < take {
		take = item.Quantity
	}
	item.Quantity -= take

	if item.Quantity == 0 {
		*pending = append(*pending, pendingEvent{
			inv:         *inv,
			quantity:    take,
			reason:      reason,
			triggeredBy: triggeredBy(caller),
		})
		if err := s.itemRepo.Delete(tx, item.ID); err != nil {
			return 0, err
		}
		return take, nil
	}

	if err := s.itemRepo.Save(tx, item); err != nil {
		return 0, err
	}
	return take, nil
}

// settleGroup deletes an emptied group or recomputes its aggregates. Both
// the count and the total are derived from the live batches, never from
// in-memory bookkeeping.
func (s *inventoryService) settleGroup(tx *gorm.DB, inv *model.Inventory) error {
	count, err := s.itemRepo.CountByInventory(tx, inv.ID)
	if err != nil {
		return err
	}
	if count == 0 {
		return s.invRepo.Delete(tx, inv.ID)
	}
	inv.ItemCount = int(count)
	if err := s.recomputeTotal(tx, inv); err != nil {
		return err
	}
	return s.invRepo.Save(tx, inv)
}

// flushEvents hands queued events to the recorder once the mutation has
// committed.
func (s *inventoryService) flushEvents(pending []pendingEvent) {
	for i := range pending {
		ev := &pending[i]
		s.recorder.Record(s.db, &ev.inv, ev.quantity, ev.reason, ev.triggeredBy)
	}
}

// recomputeTotal derives the aggregate from the live batches inside the
// same transaction as the mutation, tolerating external corrections.
func (s *inventoryService) recomputeTotal(tx *gorm.DB, inv *model.Inventory) error {
	total, err := s.itemRepo.SumQuantity(tx, inv.ID)
	if err != nil {
		return err
	}
	inv.TotalQuantity = total
	return nil
}

// DeleteItem removes one batch entirely: the same accounting path as
// consuming its full remaining quantity.
func (s *inventoryService) DeleteItem(caller CallerContext, itemID uuid.UUID, reason model.EventReason) error {
	if reason == "" {
		reason = model.ReasonConsumed
	}
	var pending []pendingEvent
	err := s.db.Transaction(func(tx *gorm.DB) error {
		item, err := s.itemRepo.FindByIDTx(tx, itemID)
		if err != nil {
			return fmt.Errorf("%w: inventory item %s", ErrNotFound, itemID)
		}
		inv, err := s.invRepo.FindByIDTx(tx, item.InventoryID)
		if err != nil {
			return fmt.Errorf("%w: inventory %s", ErrNotFound, item.InventoryID)
		}
		if _, err := s.drainBatch(tx, caller, inv, item, item.Quantity, reason, &pending); err != nil {
			return err
		}
		return s.settleGroup(tx, inv)
	})
	if err != nil {
		return err
	}
	s.flushEvents(pending)

	s.broadcast("item_deleted", nil, map[string]interface{}{"item_id": itemID})
	return nil
}

func (s *inventoryService) UpdateItem(caller CallerContext, itemID uuid.UUID, req *UpdateItemRequest) (*model.InventoryItem, error) {
	if req.Quantity != nil && *req.Quantity < 0 {
		return nil, ErrInvalidQuantity
	}

	var updated *model.InventoryItem
	err := s.db.Transaction(func(tx *gorm.DB) error {
		item, err := s.itemRepo.FindByIDTx(tx, itemID)
		if err != nil {
			return fmt.Errorf("%w: inventory item %s", ErrNotFound, itemID)
		}
		inv, err := s.invRepo.FindByIDTx(tx, item.InventoryID)
		if err != nil {
			return fmt.Errorf("%w: inventory %s", ErrNotFound, item.InventoryID)
		}

		if req.Quantity != nil {
			item.Quantity = *req.Quantity
		}
		if req.Price != nil {
			item.Price = req.Price
		}
		if req.ExpiryDate != nil {
			item.ExpiryDate = req.ExpiryDate
		}
		if req.LocationID != nil {
			item.LocationID = req.LocationID
		}
		if req.Description != nil {
			item.Description = *req.Description
		}
		if err := s.itemRepo.Save(tx, item); err != nil {
			return err
		}

		if err := s.recomputeTotal(tx, inv); err != nil {
			return err
		}
		if err := s.invRepo.Save(tx, inv); err != nil {
			return err
		}
		updated = item
		return nil
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

func (s *inventoryService) UpdateAlerts(caller CallerContext, inventoryID uuid.UUID, req *UpdateAlertsRequest) (*model.Inventory, error) {
	var updated *model.Inventory
	err := s.db.Transaction(func(tx *gorm.DB) error {
		inv, err := s.invRepo.FindByIDTx(tx, inventoryID)
		if err != nil {
			return fmt.Errorf("%w: inventory %s", ErrNotFound, inventoryID)
		}
		if req.MinStock != nil {
			inv.MinStock = req.MinStock
		}
		if req.MinExpiryDaysAlert != nil {
			inv.MinExpiryDaysAlert = req.MinExpiryDaysAlert
		}
		if err := s.invRepo.Save(tx, inv); err != nil {
			return err
		}
		updated = inv
		return nil
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

func (s *inventoryService) GetKitchenInventory(caller CallerContext) ([]GroupResponse, error) {
	invs, err := s.invRepo.FindByKitchen(caller.KitchenID)
	if err != nil {
		return nil, err
	}

	unitNames, categoryNames := map[uuid.UUID]string{}, map[uuid.UUID]string{}
	out := make([]GroupResponse, 0, len(invs))
	for _, inv := range invs {
		resp := GroupResponse{Inventory: inv}
		resp.UnitName = s.lookupName(unitNames, inv.UnitID, func(id uuid.UUID) (string, error) {
			u, err := s.unitRepo.FindByID(id)
			if err != nil {
				return "", err
			}
			return u.Name, nil
		})
		resp.CategoryName = s.lookupName(categoryNames, inv.CategoryID, func(id uuid.UUID) (string, error) {
			c, err := s.catRepo.FindByID(id)
			if err != nil {
				return "", err
			}
			return c.Name, nil
		})
		earliest, err := s.itemRepo.EarliestExpiry(inv.ID, today())
		if err != nil {
			return nil, err
		}
		resp.EarliestExpiry = earliest
		out = append(out, resp)
	}
	return out, nil
}

func (s *inventoryService) GetGroup(caller CallerContext, inventoryID uuid.UUID) (*GroupResponse, error) {
	inv, err := s.invRepo.FindByID(inventoryID)
	if err != nil {
		return nil, fmt.Errorf("%w: inventory %s", ErrNotFound, inventoryID)
	}

	resp := &GroupResponse{Inventory: *inv}
	if unit, err := s.unitRepo.FindByID(inv.UnitID); err == nil {
		resp.UnitName = unit.Name
	}
	if category, err := s.catRepo.FindByID(inv.CategoryID); err == nil {
		resp.CategoryName = category.Name
	}
	earliest, err := s.itemRepo.EarliestExpiry(inv.ID, today())
	if err != nil {
		return nil, err
	}
	resp.EarliestExpiry = earliest

	items, err := s.itemRepo.FindByInventory(inv.ID)
	if err != nil {
		return nil, err
	}
	resp.Items = items
	return resp, nil
}

func (s *inventoryService) GetItem(caller CallerContext, itemID uuid.UUID) (*model.InventoryItem, error) {
	item, err := s.itemRepo.FindByID(itemID)
	if err != nil {
		return nil, fmt.Errorf("%w: inventory item %s", ErrNotFound, itemID)
	}
	return item, nil
}

func (s *inventoryService) lookupName(cache map[uuid.UUID]string, id uuid.UUID, fetch func(uuid.UUID) (string, error)) string {
	if name, ok := cache[id]; ok {
		return name
	}
	name, err := fetch(id)
	if err != nil {
		return ""
	}
	cache[id] = name
	return name
}

// broadcast pushes a pantry update to websocket clients without blocking
// the request.
func (s *inventoryService) broadcast(action string, inv *model.Inventory, extra map[string]interface{}) {
	if s.wsHub == nil {
		return
	}
	payload := map[string]interface{}{
		"type":   "pantry_update",
		"action": action,
	}
	if inv != nil {
		payload["inventory"] = map[string]interface{}{
			"id":             inv.ID,
			"name":           inv.Name,
			"total_quantity": inv.TotalQuantity,
			"item_count":     inv.ItemCount,
		}
	}
	for k, v := range extra {
		payload[k] = v
	}
	go s.wsHub.BroadcastJSON(payload)
}

func triggeredBy(caller CallerContext) *uuid.UUID {
	if caller.UserID == uuid.Nil {
		return nil
	}
	id := caller.UserID
	return &id
}

func today() time.Time {
	now := time.Now()
	return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
}
