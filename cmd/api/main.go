package main

import (
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go-pantry-mind/internal/ai"
	"go-pantry-mind/internal/handler"
	"go-pantry-mind/internal/middleware"
	"go-pantry-mind/internal/model"
	"go-pantry-mind/internal/repository"
	"go-pantry-mind/internal/service"
	"go-pantry-mind/internal/ws"
	"go-pantry-mind/pkg/database"

	"github.com/gofiber/contrib/websocket"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/joho/godotenv"
	"github.com/robfig/cron/v3"
	"gorm.io/gorm"
)

func main() {
	// 1. Load Env
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found")
	}

	// 2. Setup Database
	db := database.ConnectDB()
	db.AutoMigrate(
		&model.Kitchen{}, &model.User{},
		&model.Unit{}, &model.Category{}, &model.Location{},
		&model.Inventory{}, &model.InventoryItem{},
		&model.ConsumptionEvent{}, &model.WasteLog{},
		&model.ShoppingListItem{}, &model.Notification{},
	)

	// 3. Seed reference data
	seedReferenceData(db)

	// 4. Setup WebSocket Hub
	wsHub := ws.NewHub()
	go wsHub.Run()

	// 5. Dependency Injection (Wiring Layers)
	invRepo := repository.NewInventoryRepo(db)
	itemRepo := repository.NewInventoryItemRepo(db)
	unitRepo := repository.NewUnitRepo(db)
	catRepo := repository.NewCategoryRepo(db)
	locRepo := repository.NewLocationRepo(db)
	eventRepo := repository.NewConsumptionEventRepo(db)
	wasteRepo := repository.NewWasteLogRepo(db)
	shopRepo := repository.NewShoppingListRepo(db)
	notifRepo := repository.NewNotificationRepo(db)
	kitchenRepo := repository.NewKitchenRepo(db)
	userRepo := repository.NewUserRepo(db)

	recorder := service.NewConsumptionRecorder(eventRepo)
	invService := service.NewInventoryService(invRepo, itemRepo, unitRepo, catRepo, recorder, db, wsHub)
	expiryService := service.NewExpiryService(invRepo, itemRepo, wasteRepo, kitchenRepo, invService, db)
	alertService := service.NewAlertService(invRepo, itemRepo, kitchenRepo, notifRepo, wsHub)
	shopService := service.NewShoppingListService(shopRepo, invRepo, unitRepo, catRepo)
	dashService := service.NewDashboardService(invRepo, itemRepo, eventRepo)
	authService := service.NewAuthService(userRepo)
	kitchenService := service.NewKitchenService(kitchenRepo, userRepo)

	var aiClient *ai.Client
	if aiURL := os.Getenv("AI_SERVICE_URL"); aiURL != "" {
		aiClient = ai.NewClient(aiURL)
	}
	suggService := service.NewSuggestionService(aiClient, invRepo, shopRepo, eventRepo)

	invHandler := handler.NewInventoryHandler(invService)
	shopHandler := handler.NewShoppingHandler(shopService)
	catalogHandler := handler.NewCatalogHandler(unitRepo, catRepo, locRepo)
	notifHandler := handler.NewNotificationHandler(notifRepo)
	dashHandler := handler.NewDashboardHandler(dashService)
	suggHandler := handler.NewSuggestionHandler(suggService)
	authHandler := handler.NewAuthHandler(authService)
	kitchenHandler := handler.NewKitchenHandler(kitchenService)

	// 6. Setup Fiber
	app := fiber.New(fiber.Config{
		AppName: "Pantry Mind v1.0",
	})

	// Middleware
	app.Use(logger.New())  // Logging request
	app.Use(recover.New()) // Panic recovery
	app.Use(cors.New())    // CORS

	// 7. Routes
	api := app.Group("/api/v1")

	// ============ PUBLIC ROUTES ============
	auth := api.Group("/auth")
	auth.Post("/login", authHandler.Login)
	auth.Post("/validate-token", authHandler.ValidateToken)

	// ============ PROTECTED ROUTES ============
	protected := api.Group("", middleware.RequireAuth(userRepo))

	// Inventory Routes
	protected.Get("/inventory", invHandler.GetInventory)
	protected.Get("/inventory/items/:id", invHandler.GetItem)
	protected.Post("/inventory/items", invHandler.AddItem)
	protected.Put("/inventory/items/:id", invHandler.UpdateItem)
	protected.Delete("/inventory/items/:id", invHandler.DeleteItem)
	protected.Post("/inventory/consume", invHandler.ConsumeItems)
	protected.Get("/inventory/:id", invHandler.GetGroup)
	protected.Put("/inventory/:id/alerts", invHandler.UpdateAlerts)

	// Kitchen Routes
	protected.Get("/kitchen", kitchenHandler.GetKitchen)
	protected.Get("/kitchen/members", kitchenHandler.GetMembers)
	protected.Put("/kitchen/alerts", kitchenHandler.UpdateAlerts)

	// Shopping List Routes
	protected.Get("/shopping-list", shopHandler.GetList)
	protected.Get("/shopping-list/summary", shopHandler.GetSummary)
	protected.Post("/shopping-list", shopHandler.AddItem)
	protected.Post("/shopping-list/generate", shopHandler.GenerateFromLowStock)
	protected.Put("/shopping-list/:id", shopHandler.UpdateItem)
	protected.Patch("/shopping-list/:id/toggle", shopHandler.TogglePurchased)
	protected.Delete("/shopping-list/:id", shopHandler.DeleteItem)

	// Reference Data Routes
	protected.Get("/units", catalogHandler.GetUnits)
	protected.Get("/categories", catalogHandler.GetCategories)
	protected.Get("/locations", catalogHandler.GetLocations)
	protected.Post("/locations", catalogHandler.CreateLocation)
	protected.Delete("/locations/:id", catalogHandler.DeleteLocation)

	// Notification Routes
	protected.Get("/notifications", notifHandler.GetNotifications)
	protected.Patch("/notifications/read-all", notifHandler.MarkAllRead)
	protected.Patch("/notifications/:id/read", notifHandler.MarkRead)

	// Dashboard Routes
	protected.Get("/dashboard/stats", dashHandler.GetStats)
	protected.Get("/dashboard/consumption-trend", dashHandler.GetConsumptionTrend)

	// Waste Log Route
	protected.Get("/waste-log", func(c *fiber.Ctx) error {
		since := time.Now().AddDate(0, 0, -30)
		entries, err := wasteRepo.FindByKitchenSince(middleware.Caller(c).KitchenID, since)
		if err != nil {
			return c.Status(500).JSON(fiber.Map{"error": "Failed to fetch waste log"})
		}
		return c.JSON(entries)
	})

	// Suggestion Routes
	protected.Get("/suggestions/shopping", suggHandler.ShoppingSuggestions)
	protected.Get("/suggestions/recipes", suggHandler.RecipeRecommendations)

	// WebSocket Route
	app.Use("/ws", func(c *fiber.Ctx) error {
		if websocket.IsWebSocketUpgrade(c) {
			return c.Next()
		}
		return c.SendStatus(fiber.StatusUpgradeRequired)
	})
	app.Get("/ws", websocket.New(func(c *websocket.Conn) {
		wsHub.Register <- c
		defer func() { wsHub.Unregister <- c }()

		for {
			// Keep alive loop
			if _, _, err := c.ReadMessage(); err != nil {
				break
			}
		}
	}))

	// 8. Scheduler: daily expiry sweep plus alert checks matching the
	// 15-minute kitchen alert slots.
	scheduler := cron.New()
	scheduler.AddFunc("0 2 * * *", func() {
		if err := expiryService.ProcessAllKitchens(); err != nil {
			log.Printf("Expiry sweep failed: %v", err)
		}
	})
	scheduler.AddFunc("*/15 * * * *", func() {
		if err := alertService.CheckAllKitchens(time.Now()); err != nil {
			log.Printf("Alert check failed: %v", err)
		}
	})
	scheduler.Start()

	// 9. Graceful Shutdown
	go func() {
		port := os.Getenv("PORT")
		if port == "" {
			port = "3000"
		}
		if err := app.Listen(":" + port); err != nil {
			log.Panic(err)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down server...")
	scheduler.Stop()
	if err := app.Shutdown(); err != nil {
		log.Fatal("Server forced to shutdown:", err)
	}

	log.Println("Server exited")
}

// seedReferenceData creates the default units and categories if they don't exist
func seedReferenceData(db *gorm.DB) {
	unitRepo := repository.NewUnitRepo(db)
	catRepo := repository.NewCategoryRepo(db)

	if err := unitRepo.SeedDefaults(); err != nil {
		log.Printf("Warning: Failed to seed units: %v", err)
	}
	if err := catRepo.SeedDefaults(); err != nil {
		log.Printf("Warning: Failed to seed categories: %v", err)
	}
}
