package controllers

import (
	"fmt"
	"strconv"

	"fiber-erp/apperrors"
	"fiber-erp/middleware"
	"fiber-erp/models"
	"fiber-erp/repositories"

	"github.com/gofiber/fiber/v2"
	"github.com/xuri/excelize/v2"
	"gorm.io/gorm"
)

type InventoryController struct {
	DB *gorm.DB
}

func NewInventoryController(DB *gorm.DB) *InventoryController {
	return &InventoryController{DB: DB}
}

func (c *InventoryController) CreateItem(ctx *fiber.Ctx) error {
	userID := middleware.ActorID(ctx)

	var item models.InventoryItem
	if err := ctx.BodyParser(&item); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid input"})
	}
	if err := validate.Struct(&item); err != nil {
		return apperrors.Respond(ctx, apperrors.Validation(err.Error()))
	}

	item.CreatedBy = userID
	item.UpdatedBy = userID
	item.QtyOnHand = 0

	repo := repositories.NewInventoryRepository(c.DB)
	if err := repo.Create(&item); err != nil {
		return apperrors.Respond(ctx, err)
	}
	return ctx.Status(fiber.StatusCreated).JSON(fiber.Map{
		"success": true,
		"message": "Item created successfully",
		"data":    item,
	})
}

func (c *InventoryController) GetAllItems(ctx *fiber.Ctx) error {
	repo := repositories.NewInventoryRepository(c.DB)
	items, err := repo.List()
	if err != nil {
		return apperrors.Respond(ctx, err)
	}
	return ctx.JSON(fiber.Map{"success": true, "data": items})
}

func (c *InventoryController) GetItemByCode(ctx *fiber.Ctx) error {
	repo := repositories.NewInventoryRepository(c.DB)
	item, err := repo.GetByCode(ctx.Params("item_code"))
	if err != nil {
		return apperrors.Respond(ctx, err)
	}
	return ctx.JSON(fiber.Map{"success": true, "data": item})
}

func parseUintQuery(ctx *fiber.Ctx, key string) (*uint, error) {
	raw := ctx.Query(key)
	if raw == "" {
		return nil, nil
	}
	v, err := strconv.ParseUint(raw, 10, 32)
	if err != nil {
		return nil, apperrors.Validation(key + " must be a number")
	}
	u := uint(v)
	return &u, nil
}

// StockBalance is the current on-hand view, optionally filtered by
// item, project and store.
func (c *InventoryController) StockBalance(ctx *fiber.Ctx) error {
	projectID, err := parseUintQuery(ctx, "project")
	if err != nil {
		return apperrors.Respond(ctx, err)
	}
	storeID, err := parseUintQuery(ctx, "store")
	if err != nil {
		return apperrors.Respond(ctx, err)
	}

	repo := repositories.NewInventoryRepository(c.DB)
	rows, err := repo.StockBalance(ctx.Query("item"), projectID, storeID)
	if err != nil {
		return apperrors.Respond(ctx, err)
	}
	return ctx.JSON(fiber.Map{"success": true, "data": rows})
}

// ExportStockBalance streams the balance view as an Excel file.
func (c *InventoryController) ExportStockBalance(ctx *fiber.Ctx) error {
	repo := repositories.NewInventoryRepository(c.DB)
	rows, err := repo.StockBalance(ctx.Query("item"), nil, nil)
	if err != nil {
		return apperrors.Respond(ctx, err)
	}

	xlsx := excelize.NewFile()
	defer xlsx.Close()

	sheet := xlsx.GetSheetName(0)
	xlsx.SetCellValue(sheet, "A1", "Item Code")
	xlsx.SetCellValue(sheet, "B1", "Item Name")
	xlsx.SetCellValue(sheet, "C1", "Quantity On Hand")

	for i, row := range rows {
		line := i + 2
		xlsx.SetCellValue(sheet, fmt.Sprintf("A%d", line), row.ItemCode)
		xlsx.SetCellValue(sheet, fmt.Sprintf("B%d", line), row.ItemName)
		xlsx.SetCellValue(sheet, fmt.Sprintf("C%d", line), row.Quantity)
	}

	buf, err := xlsx.WriteToBuffer()
	if err != nil {
		return apperrors.Respond(ctx, err)
	}

	ctx.Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	ctx.Set("Content-Disposition", `attachment; filename="stock_balance.xlsx"`)
	return ctx.Send(buf.Bytes())
}

// GetAdjustments exposes the append-only ledger log for audit views.
func (c *InventoryController) GetAdjustments(ctx *fiber.Ctx) error {
	limit, _ := strconv.Atoi(ctx.Query("limit", "100"))

	repo := repositories.NewInventoryRepository(c.DB)
	adjustments, err := repo.Adjustments(ctx.Query("item"), limit)
	if err != nil {
		return apperrors.Respond(ctx, err)
	}
	return ctx.JSON(fiber.Map{"success": true, "data": adjustments})
}

// Reconcile rebuilds balances from the adjustment log and reports
// drift against the item master.
func (c *InventoryController) Reconcile(ctx *fiber.Ctx) error {
	repo := repositories.NewInventoryRepository(c.DB)
	drift, err := repo.Reconcile()
	if err != nil {
		return apperrors.Respond(ctx, err)
	}
	return ctx.JSON(fiber.Map{
		"success":    true,
		"message":    "Reconciliation finished",
		"consistent": len(drift) == 0,
		"data":       drift,
	})
}
