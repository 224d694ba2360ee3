package controllers

import (
	"fiber-erp/apperrors"
	"fiber-erp/repositories"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

type BarcodeController struct {
	DB *gorm.DB
}

func NewBarcodeController(DB *gorm.DB) *BarcodeController {
	return &BarcodeController{DB: DB}
}

// Resolve maps a scanned or typed code to an inventory item. Exact
// match only; repeated scans of the same code return the same item
// with no side effect.
func (c *BarcodeController) Resolve(ctx *fiber.Ctx) error {
	code := ctx.Query("code")
	if code == "" {
		return apperrors.Respond(ctx, apperrors.Validation("code query parameter is required"))
	}

	repo := repositories.NewInventoryRepository(c.DB)
	item, err := repo.GetByBarcode(code)
	if err != nil {
		return apperrors.Respond(ctx, err)
	}
	return ctx.JSON(fiber.Map{"success": true, "data": item})
}
