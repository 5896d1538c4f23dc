package service

import (
	"testing"

	"go-pantry-mind/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func TestGetStats(t *testing.T) {
	f := newFixture(t)
	svc := NewDashboardService(f.invRepo, f.itemRepo, f.eventRepo)

	price := 4.0
	_, _, err := f.inv.AddItem(f.caller, &CreateItemRequest{
		Name:       "Cheese",
		CategoryID: f.categoryID(t, "Dairy"),
		UnitID:     f.unitID(t, "g"),
		Quantity:   200,
		Price:      &price,
		ExpiryDate: dateIn(4),
	})
	require.NoError(t, err)
	// 2 pieces is low stock; no expiry, no price.
	f.addItem(t, "Lemon", "piece", "Fruits", 2, nil)

	stats, err := svc.GetStats(f.caller)
	require.NoError(t, err)
	assert.Equal(t, int64(2), stats.TotalGroups)
	assert.Equal(t, int64(1), stats.LowStockCount)
	assert.Equal(t, int64(1), stats.ExpiringCount)
	assert.Equal(t, 4.0, stats.TotalValue)
}

func TestGetConsumptionTrend(t *testing.T) {
	f := newFixture(t)
	svc := NewDashboardService(f.invRepo, f.itemRepo, f.eventRepo)

	_, group := f.addItem(t, "Bread", "piece", "Grains", 2, nil)
	_, err := f.inv.ConsumeItems(f.caller, []ConsumeRequest{
		{ID: group.ID, Quantity: 2},
	}, model.ReasonConsumed)
	require.NoError(t, err)

	trend, err := svc.GetConsumptionTrend(f.caller, 7)
	require.NoError(t, err)
	require.Len(t, trend, 1)
	assert.Equal(t, int64(2), trend[0].Quantity)
	assert.Equal(t, int64(1), trend[0].Events)
}

func TestDuplicateGroupKeyIsTranslated(t *testing.T) {
	f := newFixture(t)

	_, group := f.addItem(t, "Honey", "g", "Other", 100, nil)

	// The create path relies on the driver error being translated so a
	// racing creation can fall back to re-querying the winner's row.
	dup := &model.Inventory{
		KitchenID:      group.KitchenID,
		Name:           group.Name,
		NormalizedName: group.NormalizedName,
		CategoryID:     group.CategoryID,
		UnitID:         group.UnitID,
	}
	err := f.invRepo.Create(f.db, dup)
	assert.ErrorIs(t, err, gorm.ErrDuplicatedKey)
}
