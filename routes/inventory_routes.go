package routes

import (
	"fiber-erp/config"
	"fiber-erp/controllers"
	"fiber-erp/middleware"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

func SetupInventoryRoutes(app *fiber.App, db *gorm.DB) {
	inventoryController := controllers.NewInventoryController(db)
	barcodeController := controllers.NewBarcodeController(db)

	api := app.Group(config.MAIN_ROUTES, middleware.AuthMiddleware)
	api.Post("/items", inventoryController.CreateItem)
	api.Get("/items", inventoryController.GetAllItems)
	api.Get("/items/:item_code", inventoryController.GetItemByCode)

	api.Get("/stock-balance", inventoryController.StockBalance)
	api.Get("/stock-balance/export", inventoryController.ExportStockBalance)
	api.Get("/stock-adjustments", inventoryController.GetAdjustments)
	api.Post("/inventory/reconcile", inventoryController.Reconcile)

	api.Get("/barcode/resolve", barcodeController.Resolve)
}
