package routes

import (
	"fiber-erp/config"
	"fiber-erp/controllers"
	"fiber-erp/middleware"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

func SetupLocationRoutes(app *fiber.App, db *gorm.DB) {
	locationController := controllers.NewLocationController(db)

	api := app.Group(config.MAIN_ROUTES+"/stores", middleware.AuthMiddleware)
	api.Post("/", locationController.CreateStore)
	api.Post("/:id/sub-stores", locationController.CreateSubStore)
	api.Get("/:id/sub-stores", locationController.ListSubStores)
	api.Post("/:id/racks", locationController.AddRack)
	api.Get("/:id/locations", locationController.GetLocations)
	api.Post("/:id/locations/upload", locationController.UploadLocations)

	loc := app.Group(config.MAIN_ROUTES, middleware.AuthMiddleware)
	loc.Post("/racks/:id/shelves", locationController.AddShelf)
	loc.Post("/shelves/:id/bins", locationController.AddBin)
	loc.Put("/locations/:kind/:id/deactivate", locationController.Deactivate)
}
