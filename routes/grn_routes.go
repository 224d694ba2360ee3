package routes

import (
	"fiber-erp/config"
	"fiber-erp/controllers"
	"fiber-erp/middleware"
	"fiber-erp/services"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

func SetupGrnRoutes(app *fiber.App, db *gorm.DB, service *services.ReceivingService) {
	grnController := controllers.NewGrnController(db, service)

	api := app.Group(config.MAIN_ROUTES+"/grn", middleware.AuthMiddleware)
	api.Post("/", grnController.Create)
	api.Get("/", grnController.List)
	api.Get("/:receive_no", grnController.GetByReceiveNo)
	api.Post("/:receive_no/reverse", grnController.Reverse)
}
