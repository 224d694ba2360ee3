package controllers

import (
	"fiber-erp/apperrors"
	"fiber-erp/middleware"
	"fiber-erp/models"
	"fiber-erp/repositories"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// MasterController serves the vendor and project reference data used by
// receiving screens.
type MasterController struct {
	DB *gorm.DB
}

func NewMasterController(DB *gorm.DB) *MasterController {
	return &MasterController{DB: DB}
}

func (c *MasterController) CreateVendor(ctx *fiber.Ctx) error {
	userID := middleware.ActorID(ctx)

	var vendor models.Vendor
	if err := ctx.BodyParser(&vendor); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid input"})
	}
	if err := validate.Struct(&vendor); err != nil {
		return apperrors.Respond(ctx, apperrors.Validation(err.Error()))
	}

	vendor.IsActive = true
	vendor.CreatedBy = userID
	vendor.UpdatedBy = userID

	repo := repositories.NewVendorRepository(c.DB)
	if _, err := repo.GetByCode(vendor.VendorCode); err == nil {
		return apperrors.Respond(ctx, apperrors.DuplicateCode("vendor code "+vendor.VendorCode+" already exists"))
	} else if !apperrors.IsKind(err, apperrors.KindNotFound) {
		return apperrors.Respond(ctx, err)
	}

	if err := c.DB.Create(&vendor).Error; err != nil {
		return apperrors.Respond(ctx, err)
	}
	return ctx.Status(fiber.StatusCreated).JSON(fiber.Map{
		"success": true,
		"message": "Vendor created successfully",
		"data":    vendor,
	})
}

func (c *MasterController) GetVendorByCode(ctx *fiber.Ctx) error {
	repo := repositories.NewVendorRepository(c.DB)
	vendor, err := repo.GetByCode(ctx.Params("vendor_code"))
	if err != nil {
		return apperrors.Respond(ctx, err)
	}
	return ctx.JSON(fiber.Map{"success": true, "data": vendor})
}

func (c *MasterController) GetActiveProjects(ctx *fiber.Ctx) error {
	repo := repositories.NewProjectRepository(c.DB)
	projects, err := repo.GetActiveProjects()
	if err != nil {
		return apperrors.Respond(ctx, err)
	}
	return ctx.JSON(fiber.Map{"success": true, "data": projects})
}

func (c *MasterController) CreateProject(ctx *fiber.Ctx) error {
	userID := middleware.ActorID(ctx)

	var project models.Project
	if err := ctx.BodyParser(&project); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid input"})
	}
	if err := validate.Struct(&project); err != nil {
		return apperrors.Respond(ctx, apperrors.Validation(err.Error()))
	}

	project.IsActive = true
	project.CreatedBy = userID
	project.UpdatedBy = userID

	if err := c.DB.Create(&project).Error; err != nil {
		return apperrors.Respond(ctx, err)
	}
	return ctx.Status(fiber.StatusCreated).JSON(fiber.Map{
		"success": true,
		"message": "Project created successfully",
		"data":    project,
	})
}
