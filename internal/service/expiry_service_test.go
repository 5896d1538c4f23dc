package service

import (
	"testing"
	"time"

	"go-pantry-mind/internal/model"
	"go-pantry-mind/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProcessExpiredWritesOffAndLogsWaste(t *testing.T) {
	f := newFixture(t)
	wasteRepo := repository.NewWasteLogRepo(f.db)
	kitchenRepo := repository.NewKitchenRepo(f.db)
	svc := NewExpiryService(f.invRepo, f.itemRepo, wasteRepo, kitchenRepo, f.inv, f.db)

	price := 2.5
	_, _, err := f.inv.AddItem(f.caller, &CreateItemRequest{
		Name:       "Spinach",
		CategoryID: f.categoryID(t, "Vegetables"),
		UnitID:     f.unitID(t, "g"),
		Quantity:   200,
		Price:      &price,
		ExpiryDate: dateIn(-2),
	})
	require.NoError(t, err)

	// A fresh batch of another item must survive the sweep.
	_, freshGroup := f.addItem(t, "Carrot", "g", "Vegetables", 300, dateIn(5))

	processed, err := svc.ProcessExpired(f.caller.KitchenID)
	require.NoError(t, err)
	assert.Equal(t, 1, processed)

	// The expired batch was the group's only one, so the group is gone.
	invs, err := f.invRepo.FindByKitchen(f.caller.KitchenID)
	require.NoError(t, err)
	require.Len(t, invs, 1)
	assert.Equal(t, freshGroup.ID, invs[0].ID)

	// Write-off goes through the consumption path with reason EXPIRED.
	events := f.events(t)
	require.Len(t, events, 1)
	assert.Equal(t, model.ReasonExpired, events[0].Reason)
	assert.Equal(t, int64(200), events[0].QuantityConsumed)

	entries, err := wasteRepo.FindByKitchenSince(f.caller.KitchenID, time.Time{})
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "Spinach", entries[0].CanonicalName)
	assert.Equal(t, int64(200), entries[0].QuantityWasted)
	assert.Equal(t, model.WasteExpired, entries[0].Reason)
	assert.Equal(t, 2.5, entries[0].EstimatedValue)
	assert.Contains(t, entries[0].Notes, "item expired on")
}

func TestProcessExpiredNothingToDo(t *testing.T) {
	f := newFixture(t)
	wasteRepo := repository.NewWasteLogRepo(f.db)
	kitchenRepo := repository.NewKitchenRepo(f.db)
	svc := NewExpiryService(f.invRepo, f.itemRepo, wasteRepo, kitchenRepo, f.inv, f.db)

	f.addItem(t, "Bread", "piece", "Grains", 1, dateIn(1))

	processed, err := svc.ProcessExpired(f.caller.KitchenID)
	require.NoError(t, err)
	assert.Zero(t, processed)
	assert.Empty(t, f.events(t))
}
