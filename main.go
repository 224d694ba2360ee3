package main

import (
	"log"

	"fiber-erp/config"
	"fiber-erp/controllers/idgen"
	"fiber-erp/database"
	"fiber-erp/middleware"
	"fiber-erp/routes"
	"fiber-erp/services"
	"fiber-erp/utils"

	"github.com/gofiber/fiber/v2"
)

func main() {
	config.LoadConfig()
	utils.InitLogger(config.LogLevel)

	db, err := database.Open()
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	if err := database.Migrate(db); err != nil {
		log.Fatalf("Failed to auto migrate: %v", err)
	}

	idgen.Init()

	if err := database.SeedSequences(db); err != nil {
		log.Fatalf("Failed to seed document sequences: %v", err)
	}
	if config.SeedDemoData {
		database.SeedDemoData(db)
	}

	notifier := services.NewNotifier(db)
	receiving := services.NewReceivingService(db, notifier, config.OverReceiptPolicy)

	app := fiber.New()
	config.SetupCORS(app)
	app.Use(middleware.RequestLogger)

	routes.SetupMasterRoutes(app, db)
	routes.SetupLocationRoutes(app, db)
	routes.SetupInventoryRoutes(app, db)
	routes.SetupPurchaseOrderRoutes(app, db, receiving)
	routes.SetupGrnRoutes(app, db, receiving)

	utils.Log.Info("Server listening on port " + config.APP_PORT)
	if err := app.Listen(":" + config.APP_PORT); err != nil {
		log.Fatal(err)
	}
}
