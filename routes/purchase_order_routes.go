package routes

import (
	"fiber-erp/config"
	"fiber-erp/controllers"
	"fiber-erp/middleware"
	"fiber-erp/services"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

func SetupPurchaseOrderRoutes(app *fiber.App, db *gorm.DB, service *services.ReceivingService) {
	poController := controllers.NewPurchaseOrderController(db, service)

	api := app.Group(config.MAIN_ROUTES+"/purchase-orders", middleware.AuthMiddleware)
	api.Post("/", poController.Create)
	api.Get("/pending-qa", poController.PendingQA)
	api.Get("/eligible-grn", poController.EligibleForGRN)
	api.Get("/:order_no", poController.GetByNumber)
	api.Post("/:order_no/qa", poController.SubmitQA)
	api.Post("/:order_no/handoff", poController.HandOff)
}
