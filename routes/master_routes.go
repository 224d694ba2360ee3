package routes

import (
	"fiber-erp/config"
	"fiber-erp/controllers"
	"fiber-erp/middleware"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

func SetupMasterRoutes(app *fiber.App, db *gorm.DB) {
	masterController := controllers.NewMasterController(db)

	api := app.Group(config.MAIN_ROUTES, middleware.AuthMiddleware)
	api.Post("/vendors", masterController.CreateVendor)
	api.Get("/vendors/:vendor_code", masterController.GetVendorByCode)
	api.Post("/projects", masterController.CreateProject)
	api.Get("/projects", masterController.GetActiveProjects)
}
