package controllers

import (
	"fiber-erp/apperrors"
	"fiber-erp/middleware"
	"fiber-erp/models"
	"fiber-erp/repositories"
	"fiber-erp/services"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type PurchaseOrderController struct {
	DB      *gorm.DB
	Service *services.ReceivingService
}

func NewPurchaseOrderController(DB *gorm.DB, service *services.ReceivingService) *PurchaseOrderController {
	return &PurchaseOrderController{DB: DB, Service: service}
}

type purchaseOrderPayload struct {
	OrderNo              string `json:"order_no" validate:"required"`
	VendorID             uint   `json:"vendor_id" validate:"required"`
	ExpectedDeliveryDate string `json:"expected_delivery_date"`
	Items                []struct {
		ItemCode    string  `json:"item_code" validate:"required"`
		Description string  `json:"description"`
		Uom         string  `json:"uom"`
		Quantity    int     `json:"quantity" validate:"required,min=1"`
		UnitPrice   float64 `json:"unit_price"`
	} `json:"items" validate:"required,min=1"`
}

// Create registers an order handed over by the upstream procurement
// module; it enters the receiving workflow at sent_to_store.
func (c *PurchaseOrderController) Create(ctx *fiber.Ctx) error {
	userID := middleware.ActorID(ctx)

	var payload purchaseOrderPayload
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

	po := models.PurchaseOrder{
		OrderNo:              payload.OrderNo,
		VendorID:             payload.VendorID,
		ExpectedDeliveryDate: payload.ExpectedDeliveryDate,
		CreatedBy:            userID,
		UpdatedBy:            userID,
	}
	total := decimal.Zero
	for _, item := range payload.Items {
		price := decimal.NewFromFloat(item.UnitPrice)
		po.Items = append(po.Items, models.PurchaseOrderItem{
			ItemCode:    item.ItemCode,
			Description: item.Description,
			Uom:         item.Uom,
			Quantity:    item.Quantity,
			UnitPrice:   price,
		})
		total = total.Add(price.Mul(decimal.NewFromInt(int64(item.Quantity))))
	}
	po.TotalAmount = total

	repo := repositories.NewPurchaseOrderRepository(c.DB)
	if err := repo.Create(&po); err != nil {
		return apperrors.Respond(ctx, err)
	}
	return ctx.Status(fiber.StatusCreated).JSON(fiber.Map{
		"success": true,
		"message": "Purchase order registered",
		"data":    po,
	})
}

func (c *PurchaseOrderController) GetByNumber(ctx *fiber.Ctx) error {
	repo := repositories.NewPurchaseOrderRepository(c.DB)
	po, err := repo.GetByNumber(ctx.Params("order_no"))
	if err != nil {
		return apperrors.Respond(ctx, err)
	}
	return ctx.JSON(fiber.Map{"success": true, "data": po})
}

type qaPayload struct {
	Result  string `json:"result" validate:"required"`
	Remarks string `json:"remarks"`
}

// SubmitQA records the pass/reject inspection result.
func (c *PurchaseOrderController) SubmitQA(ctx *fiber.Ctx) error {
	userID := middleware.ActorID(ctx)

	var payload qaPayload
	if err := ctx.BodyParser(&payload); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}
	if err := validate.Struct(&payload); err != nil {
		return apperrors.Respond(ctx, apperrors.Validation(err.Error()))
	}

	po, err := c.Service.SubmitQA(ctx.Params("order_no"), payload.Result, payload.Remarks, userID)
	if err != nil {
		return apperrors.Respond(ctx, err)
	}
	return ctx.JSON(fiber.Map{
		"success": true,
		"message": "QA result recorded",
		"data":    po,
	})
}

// HandOff sends a fully received order on to procurement.
func (c *PurchaseOrderController) HandOff(ctx *fiber.Ctx) error {
	userID := middleware.ActorID(ctx)

	po, err := c.Service.HandOffToProcurement(ctx.Params("order_no"), userID)
	if err != nil {
		return apperrors.Respond(ctx, err)
	}
	return ctx.JSON(fiber.Map{
		"success": true,
		"message": "Purchase order sent to procurement",
		"data":    po,
	})
}

func (c *PurchaseOrderController) PendingQA(ctx *fiber.Ctx) error {
	pos, err := c.Service.PendingQA()
	if err != nil {
		return apperrors.Respond(ctx, err)
	}
	return ctx.JSON(fiber.Map{"success": true, "data": pos})
}

func (c *PurchaseOrderController) EligibleForGRN(ctx *fiber.Ctx) error {
	pos, err := c.Service.EligibleForGRN()
	if err != nil {
		return apperrors.Respond(ctx, err)
	}
	return ctx.JSON(fiber.Map{"success": true, "data": pos})
}
