package controllers

import (
	"fiber-erp/apperrors"
	"fiber-erp/middleware"
	"fiber-erp/repositories"
	"fiber-erp/services"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

type GrnController struct {
	DB      *gorm.DB
	Service *services.ReceivingService
}

func NewGrnController(DB *gorm.DB, service *services.ReceivingService) *GrnController {
	return &GrnController{DB: DB, Service: service}
}

type grnPayload struct {
	OrderNo string                 `json:"order_no" validate:"required"`
	Header  services.ReceiptHeader `json:"header"`
	Lines   []services.ReceiptLine `json:"lines" validate:"required,min=1"`
}

// Create validates and persists a goods receipt against a purchase
// order. The GRN, its ledger postings and the order transition land
// together or not at all.
func (c *GrnController) Create(ctx *fiber.Ctx) error {
	userID := middleware.ActorID(ctx)

	var payload grnPayload
	if err := ctx.BodyParser(&payload); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"message": "Invalid payload",
			"error":   err.Error(),
		})
	}
	if err := validate.Struct(&payload); err != nil {
		return apperrors.Respond(ctx, apperrors.Validation(err.Error()))
	}
	if err := validate.Struct(&payload.Header); err != nil {
		return apperrors.Respond(ctx, apperrors.Validation(err.Error()))
	}

	grn, err := c.Service.CreateReceipt(payload.OrderNo, payload.Header, payload.Lines, userID)
	if err != nil {
		return apperrors.Respond(ctx, err)
	}
	return ctx.Status(fiber.StatusCreated).JSON(fiber.Map{
		"success": true,
		"message": "Goods receive note created",
		"data":    grn,
	})
}

func (c *GrnController) List(ctx *fiber.Ctx) error {
	repo := repositories.NewGrnRepository(c.DB)
	grns, err := repo.List(ctx.Query("order_no"))
	if err != nil {
		return apperrors.Respond(ctx, err)
	}
	return ctx.JSON(fiber.Map{"success": true, "data": grns})
}

func (c *GrnController) GetByReceiveNo(ctx *fiber.Ctx) error {
	repo := repositories.NewGrnRepository(c.DB)
	grn, err := repo.GetByReceiveNo(ctx.Params("receive_no"))
	if err != nil {
		return apperrors.Respond(ctx, err)
	}
	return ctx.JSON(fiber.Map{"success": true, "data": grn})
}

// Reverse posts the compensating transaction for a receipt; the
// original note is marked, never deleted.
func (c *GrnController) Reverse(ctx *fiber.Ctx) error {
	userID := middleware.ActorID(ctx)

	reversal, err := c.Service.ReverseReceipt(ctx.Params("receive_no"), userID)
	if err != nil {
		return apperrors.Respond(ctx, err)
	}
	return ctx.Status(fiber.StatusCreated).JSON(fiber.Map{
		"success": true,
		"message": "Goods receive note reversed",
		"data":    reversal,
	})
}
