package main

import (
	"log"

	"go-pantry-mind/internal/repository"
	"go-pantry-mind/internal/service"
	"go-pantry-mind/pkg/database"

	"github.com/joho/godotenv"
)

// One-shot expiry sweep for ops use: writes off every expired batch in
// every kitchen and exits. The API server runs the same sweep nightly.
func main() {
	// 1. Load Env
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found, relying on system env")
	}

	// 2. Setup Database
	db := database.ConnectDB()

	// 3. Wire the sweep
	invRepo := repository.NewInventoryRepo(db)
	itemRepo := repository.NewInventoryItemRepo(db)
	unitRepo := repository.NewUnitRepo(db)
	catRepo := repository.NewCategoryRepo(db)
	eventRepo := repository.NewConsumptionEventRepo(db)
	wasteRepo := repository.NewWasteLogRepo(db)
	kitchenRepo := repository.NewKitchenRepo(db)

	recorder := service.NewConsumptionRecorder(eventRepo)
	invService := service.NewInventoryService(invRepo, itemRepo, unitRepo, catRepo, recorder, db, nil)
	expiryService := service.NewExpiryService(invRepo, itemRepo, wasteRepo, kitchenRepo, invService, db)

	// 4. Run
	if err := expiryService.ProcessAllKitchens(); err != nil {
		log.Fatalf("❌ Expiry sweep failed: %v", err)
	}

	log.Println("✅ Expiry sweep completed")
}
