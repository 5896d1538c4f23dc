package service

import (
	"errors"
	"testing"
	"time"

	"go-pantry-mind/internal/model"
	"go-pantry-mind/internal/repository"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

type fixture struct {
	db        *gorm.DB
	inv       InventoryService
	invRepo   repository.InventoryRepository
	itemRepo  repository.InventoryItemRepository
	unitRepo  repository.UnitRepository
	catRepo   repository.CategoryRepository
	eventRepo repository.ConsumptionEventRepository
	caller    CallerContext
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	// A pooled second connection would see a different in-memory database.
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(
		&model.Kitchen{}, &model.User{},
		&model.Unit{}, &model.Category{}, &model.Location{},
		&model.Inventory{}, &model.InventoryItem{},
		&model.ConsumptionEvent{}, &model.WasteLog{},
		&model.ShoppingListItem{}, &model.Notification{},
	))

	f := &fixture{
		db:        db,
		invRepo:   repository.NewInventoryRepo(db),
		itemRepo:  repository.NewInventoryItemRepo(db),
		unitRepo:  repository.NewUnitRepo(db),
		catRepo:   repository.NewCategoryRepo(db),
		eventRepo: repository.NewConsumptionEventRepo(db),
		caller:    CallerContext{UserID: uuid.New(), KitchenID: uuid.New()},
	}
	require.NoError(t, f.unitRepo.SeedDefaults())
	require.NoError(t, f.catRepo.SeedDefaults())

	recorder := NewConsumptionRecorder(f.eventRepo)
	f.inv = NewInventoryService(f.invRepo, f.itemRepo, f.unitRepo, f.catRepo, recorder, db, nil)
	return f
}

func (f *fixture) unitID(t *testing.T, name string) uuid.UUID {
	t.Helper()
	unit, err := f.unitRepo.FindByName(name)
	require.NoError(t, err)
	return unit.ID
}

func (f *fixture) categoryID(t *testing.T, name string) uuid.UUID {
	t.Helper()
	categories, err := f.catRepo.FindAll()
	require.NoError(t, err)
	for _, c := range categories {
		if c.Name == name {
			return c.ID
		}
	}
	t.Fatalf("category %q not seeded", name)
	return uuid.Nil
}

func (f *fixture) addItem(t *testing.T, name, unit, category string, qty float64, expiry *time.Time) (*model.InventoryItem, *model.Inventory) {
	t.Helper()
	item, group, err := f.inv.AddItem(f.caller, &CreateItemRequest{
		Name:       name,
		CategoryID: f.categoryID(t, category),
		UnitID:     f.unitID(t, unit),
		Quantity:   qty,
		ExpiryDate: expiry,
	})
	require.NoError(t, err)
	return item, group
}

func (f *fixture) events(t *testing.T) []model.ConsumptionEvent {
	t.Helper()
	events, err := f.eventRepo.FindByKitchenSince(f.caller.KitchenID, time.Time{})
	require.NoError(t, err)
	return events
}

func dateIn(days int) *time.Time {
	d := time.Now().AddDate(0, 0, days).Truncate(24 * time.Hour)
	return &d
}

func TestAddItemConvertsToBaseUnitAndAggregates(t *testing.T) {
	f := newFixture(t)

	_, group1 := f.addItem(t, "Flour", "kg", "Grains", 2, nil)
	_, group2 := f.addItem(t, "flour", "g", "Grains", 500, nil)

	assert.Equal(t, group1.ID, group2.ID, "both purchases should land in one group")
	assert.Equal(t, int64(2500), group2.TotalQuantity)
	assert.Equal(t, 2, group2.ItemCount)

	unit, err := f.unitRepo.FindByID(group2.UnitID)
	require.NoError(t, err)
	assert.Equal(t, "g", unit.Name, "group is keyed on the base unit")
	assert.Equal(t, "flour", group2.NormalizedName)
	assert.Equal(t, "Flour", group2.Name)
}

func TestAddItemFuzzyMatchesNearDuplicateName(t *testing.T) {
	f := newFixture(t)

	_, group1 := f.addItem(t, "Tomato", "piece", "Vegetables", 3, nil)
	_, group2 := f.addItem(t, "Tomatoes", "piece", "Vegetables", 2, nil)

	assert.Equal(t, group1.ID, group2.ID)
	assert.Equal(t, int64(5), group2.TotalQuantity)
	assert.Equal(t, "Tomato", group2.Name, "display name keeps the first spelling")
}

func TestAddItemSeparateGroupsPerCategoryAndUnitKind(t *testing.T) {
	f := newFixture(t)

	_, grains := f.addItem(t, "Oats", "kg", "Grains", 1, nil)
	_, snacks := f.addItem(t, "Oats", "kg", "Snacks", 1, nil)
	_, volume := f.addItem(t, "Oats", "l", "Grains", 1, nil)

	assert.NotEqual(t, grains.ID, snacks.ID, "different categories are different groups")
	assert.NotEqual(t, grains.ID, volume.ID, "different base units are different groups")
}

func TestAddItemValidation(t *testing.T) {
	f := newFixture(t)

	_, _, err := f.inv.AddItem(f.caller, &CreateItemRequest{
		Name:       "Milk",
		CategoryID: f.categoryID(t, "Dairy"),
		UnitID:     f.unitID(t, "l"),
		Quantity:   0,
	})
	assert.ErrorIs(t, err, ErrInvalidQuantity)

	_, _, err = f.inv.AddItem(f.caller, &CreateItemRequest{
		Name:       "Milk",
		CategoryID: f.categoryID(t, "Dairy"),
		UnitID:     uuid.New(),
		Quantity:   1,
	})
	assert.ErrorIs(t, err, ErrNotFound)

	// Unknown category is only detected inside the transaction; with the
	// fixture's single-connection pool this also proves the reference
	// check reads on the transaction itself.
	_, _, err = f.inv.AddItem(f.caller, &CreateItemRequest{
		Name:       "Milk",
		CategoryID: uuid.New(),
		UnitID:     f.unitID(t, "l"),
		Quantity:   1,
	})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestConsumeDrainsEarliestExpiryFirst(t *testing.T) {
	f := newFixture(t)

	f.addItem(t, "Milk", "ml", "Dairy", 5, dateIn(10))
	f.addItem(t, "Milk", "ml", "Dairy", 3, dateIn(5))
	_, group := f.addItem(t, "Milk", "ml", "Dairy", 10, nil)

	results, err := f.inv.ConsumeItems(f.caller, []ConsumeRequest{
		{ID: group.ID, Quantity: 4},
	}, model.ReasonConsumed)
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, int64(4), results[0].Consumed)
	assert.Equal(t, int64(0), results[0].Shortfall)

	// The 3-unit batch expiring soonest is drained, then 1 unit comes off
	// the next batch; the no-expiry batch is untouched.
	updated, err := f.invRepo.FindByID(group.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(14), updated.TotalQuantity)
	assert.Equal(t, 2, updated.ItemCount)

	items, err := f.itemRepo.FindByInventoryOrderByExpiry(f.db, group.ID)
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, int64(4), items[0].Quantity)
	assert.Equal(t, int64(10), items[1].Quantity)
	assert.Nil(t, items[1].ExpiryDate)

	// Only the fully drained batch produces an event.
	events := f.events(t)
	require.Len(t, events, 1)
	assert.Equal(t, int64(3), events[0].QuantityConsumed)
	assert.Equal(t, model.ReasonConsumed, events[0].Reason)
	assert.Equal(t, "Milk", events[0].CanonicalName)
}

func TestConsumeShortfallEmptiesGroup(t *testing.T) {
	f := newFixture(t)

	_, group := f.addItem(t, "Rice", "kg", "Grains", 2, nil)

	results, err := f.inv.ConsumeItems(f.caller, []ConsumeRequest{
		{ID: group.ID, Quantity: 3000},
	}, model.ReasonConsumed)
	require.NoError(t, err)
	assert.Equal(t, int64(2000), results[0].Consumed)
	assert.Equal(t, int64(1000), results[0].Shortfall)

	// Last batch drained, so the group row is gone and its key is free.
	_, err = f.invRepo.FindByID(group.ID)
	assert.Error(t, err)

	events := f.events(t)
	require.Len(t, events, 1)
	assert.Equal(t, int64(2000), events[0].QuantityConsumed)

	// Re-adding the same name recreates the group from scratch.
	_, fresh := f.addItem(t, "Rice", "kg", "Grains", 1, nil)
	assert.NotEqual(t, group.ID, fresh.ID)
	assert.Equal(t, int64(1000), fresh.TotalQuantity)
}

func TestConsumeSingleBatchPartial(t *testing.T) {
	f := newFixture(t)

	item, group := f.addItem(t, "Butter", "g", "Dairy", 250, nil)

	results, err := f.inv.ConsumeItems(f.caller, []ConsumeRequest{
		{ID: item.ID, Quantity: 100},
	}, model.ReasonRecipeCooked)
	require.NoError(t, err)
	assert.Equal(t, int64(100), results[0].Consumed)

	updated, err := f.invRepo.FindByID(group.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(150), updated.TotalQuantity)
	assert.Equal(t, 1, updated.ItemCount)

	// Partial draw-down leaves the batch alive and emits no event.
	assert.Empty(t, f.events(t))
}

func TestConsumeRejectsNegativeQuantity(t *testing.T) {
	f := newFixture(t)
	_, group := f.addItem(t, "Salt", "g", "Spices", 100, nil)

	_, err := f.inv.ConsumeItems(f.caller, []ConsumeRequest{
		{ID: group.ID, Quantity: -1},
	}, model.ReasonConsumed)
	assert.ErrorIs(t, err, ErrInvalidQuantity)
}

func TestDeleteItemAccountsRemainingQuantity(t *testing.T) {
	f := newFixture(t)

	item, _ := f.addItem(t, "Yogurt", "piece", "Dairy", 4, dateIn(2))
	_, group := f.addItem(t, "Yogurt", "piece", "Dairy", 6, dateIn(9))

	require.NoError(t, f.inv.DeleteItem(f.caller, item.ID, model.ReasonExpired))

	updated, err := f.invRepo.FindByID(group.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(6), updated.TotalQuantity)
	assert.Equal(t, 1, updated.ItemCount)

	events := f.events(t)
	require.Len(t, events, 1)
	assert.Equal(t, model.ReasonExpired, events[0].Reason)
	assert.Equal(t, int64(4), events[0].QuantityConsumed)
}

func TestUpdateItemRecomputesGroupTotal(t *testing.T) {
	f := newFixture(t)

	item, group := f.addItem(t, "Pasta", "g", "Grains", 500, nil)

	newQty := int64(300)
	updated, err := f.inv.UpdateItem(f.caller, item.ID, &UpdateItemRequest{Quantity: &newQty})
	require.NoError(t, err)
	assert.Equal(t, int64(300), updated.Quantity)

	refreshed, err := f.invRepo.FindByID(group.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(300), refreshed.TotalQuantity)
}

func TestUpdateAlerts(t *testing.T) {
	f := newFixture(t)

	_, group := f.addItem(t, "Eggs", "piece", "Dairy", 12, nil)

	minStock := int64(6)
	expiryDays := 3
	updated, err := f.inv.UpdateAlerts(f.caller, group.ID, &UpdateAlertsRequest{
		MinStock:           &minStock,
		MinExpiryDaysAlert: &expiryDays,
	})
	require.NoError(t, err)
	require.NotNil(t, updated.MinStock)
	assert.Equal(t, int64(6), *updated.MinStock)
	require.NotNil(t, updated.MinExpiryDaysAlert)
	assert.Equal(t, 3, *updated.MinExpiryDaysAlert)
}

func TestEarliestExpiryParsesStoredDates(t *testing.T) {
	f := newFixture(t)

	f.addItem(t, "Milk", "ml", "Dairy", 500, dateIn(8))
	f.addItem(t, "Milk", "ml", "Dairy", 200, dateIn(3))
	_, group := f.addItem(t, "Milk", "ml", "Dairy", 100, nil)

	earliest, err := f.itemRepo.EarliestExpiry(group.ID, today())
	require.NoError(t, err)
	require.NotNil(t, earliest)
	assert.Equal(t, dateIn(3).Format("2006-01-02"), earliest.Format("2006-01-02"))

	// A group whose only expiry lies in the past reports none upcoming.
	_, stale := f.addItem(t, "Cream", "ml", "Dairy", 100, dateIn(-1))
	earliest, err = f.itemRepo.EarliestExpiry(stale.ID, today())
	require.NoError(t, err)
	assert.Nil(t, earliest)
}

// racingInventoryRepo simulates losing the create race: the first Create
// inserts the winner's row out from under the caller and reports the key
// collision the caller would see.
type racingInventoryRepo struct {
	repository.InventoryRepository
	winnerID uuid.UUID
}

func (r *racingInventoryRepo) Create(tx *gorm.DB, inv *model.Inventory) error {
	if r.winnerID == uuid.Nil {
		winner := *inv
		winner.Name = "Raced " + inv.Name
		if err := r.InventoryRepository.Create(tx, &winner); err != nil {
			return err
		}
		r.winnerID = winner.ID
		return gorm.ErrDuplicatedKey
	}
	return r.InventoryRepository.Create(tx, inv)
}

func TestCreateRaceReusesWinnersGroup(t *testing.T) {
	f := newFixture(t)
	racing := &racingInventoryRepo{InventoryRepository: f.invRepo}
	recorder := NewConsumptionRecorder(f.eventRepo)
	svc := NewInventoryService(racing, f.itemRepo, f.unitRepo, f.catRepo, recorder, f.db, nil)

	item, group, err := svc.AddItem(f.caller, &CreateItemRequest{
		Name:       "Honey",
		CategoryID: f.categoryID(t, "Other"),
		UnitID:     f.unitID(t, "g"),
		Quantity:   100,
	})
	require.NoError(t, err)

	// The duplicate key is resolved by re-query, so the batch lands on
	// the winner's row instead of surfacing an error.
	assert.Equal(t, racing.winnerID, group.ID)
	assert.Equal(t, racing.winnerID, item.InventoryID)
	assert.Equal(t, int64(100), group.TotalQuantity)
	assert.Equal(t, 1, group.ItemCount)
}

// failingEventRepo refuses every audit write.
type failingEventRepo struct {
	repository.ConsumptionEventRepository
}

func (failingEventRepo) Create(tx *gorm.DB, ev *model.ConsumptionEvent) error {
	return errors.New("audit store down")
}

func TestAuditFailureDoesNotAbortConsumption(t *testing.T) {
	f := newFixture(t)
	recorder := NewConsumptionRecorder(failingEventRepo{f.eventRepo})
	svc := NewInventoryService(f.invRepo, f.itemRepo, f.unitRepo, f.catRepo, recorder, f.db, nil)

	_, group, err := svc.AddItem(f.caller, &CreateItemRequest{
		Name:       "Rice",
		CategoryID: f.categoryID(t, "Grains"),
		UnitID:     f.unitID(t, "kg"),
		Quantity:   1,
	})
	require.NoError(t, err)

	results, err := svc.ConsumeItems(f.caller, []ConsumeRequest{
		{ID: group.ID, Quantity: 1000},
	}, model.ReasonConsumed)
	require.NoError(t, err, "a failed audit write must not sink the mutation")
	assert.Equal(t, int64(1000), results[0].Consumed)

	// The drain itself committed: the emptied group is gone.
	_, err = f.invRepo.FindByID(group.ID)
	assert.Error(t, err)
	assert.Empty(t, f.events(t))
}

func TestGetGroupReturnsBatchesAndNames(t *testing.T) {
	f := newFixture(t)

	f.addItem(t, "Apple", "piece", "Fruits", 4, dateIn(6))
	_, group := f.addItem(t, "Apples", "piece", "Fruits", 2, dateIn(3))

	resp, err := f.inv.GetGroup(f.caller, group.ID)
	require.NoError(t, err)
	assert.Equal(t, "piece", resp.UnitName)
	assert.Equal(t, "Fruits", resp.CategoryName)
	assert.Len(t, resp.Items, 2)
	require.NotNil(t, resp.EarliestExpiry)
	assert.Equal(t, dateIn(3).Format("2006-01-02"), resp.EarliestExpiry.Format("2006-01-02"))
}
