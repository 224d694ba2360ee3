package controllers

import (
	"errors"

	"fiber-erp/apperrors"
	"fiber-erp/middleware"
	"fiber-erp/models"
	"fiber-erp/repositories"

	"github.com/gofiber/fiber/v2"
	"github.com/xuri/excelize/v2"
	"gorm.io/gorm"
)

type LocationController struct {
	DB *gorm.DB
}

func NewLocationController(DB *gorm.DB) *LocationController {
	return &LocationController{DB: DB}
}

// CREATE main store
func (lc *LocationController) CreateStore(ctx *fiber.Ctx) error {
	userID := middleware.ActorID(ctx)

	var store models.Store
	if err := ctx.BodyParser(&store); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid input"})
	}
	if err := validate.Struct(&store); err != nil {
		return apperrors.Respond(ctx, apperrors.Validation(err.Error()))
	}

	store.CreatedBy = userID
	store.UpdatedBy = userID

	repo := repositories.NewLocationRepository(lc.DB)
	if err := repo.CreateStore(&store); err != nil {
		return apperrors.Respond(ctx, err)
	}
	return ctx.Status(fiber.StatusCreated).JSON(fiber.Map{
		"success": true,
		"message": "Store created successfully",
		"data":    store,
	})
}

// CREATE sub store under a main store
func (lc *LocationController) CreateSubStore(ctx *fiber.Ctx) error {
	userID := middleware.ActorID(ctx)

	parentID, err := ctx.ParamsInt("id")
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid store ID"})
	}

	var store models.Store
	if err := ctx.BodyParser(&store); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid input"})
	}
	if err := validate.Struct(&store); err != nil {
		return apperrors.Respond(ctx, apperrors.Validation(err.Error()))
	}

	store.CreatedBy = userID
	store.UpdatedBy = userID

	repo := repositories.NewLocationRepository(lc.DB)
	if err := repo.CreateSubStore(uint(parentID), &store); err != nil {
		return apperrors.Respond(ctx, err)
	}
	return ctx.Status(fiber.StatusCreated).JSON(fiber.Map{
		"success": true,
		"message": "Sub store created successfully",
		"data":    store,
	})
}

func (lc *LocationController) ListSubStores(ctx *fiber.Ctx) error {
	mainID, err := ctx.ParamsInt("id")
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid store ID"})
	}

	repo := repositories.NewLocationRepository(lc.DB)
	stores, err := repo.ListSubStores(uint(mainID))
	if err != nil {
		return apperrors.Respond(ctx, err)
	}
	return ctx.JSON(fiber.Map{"success": true, "data": stores})
}

func (lc *LocationController) AddRack(ctx *fiber.Ctx) error {
	userID := middleware.ActorID(ctx)

	storeID, err := ctx.ParamsInt("id")
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid store ID"})
	}

	var rack models.Rack
	if err := ctx.BodyParser(&rack); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid input"})
	}
	if err := validate.Struct(&rack); err != nil {
		return apperrors.Respond(ctx, apperrors.Validation(err.Error()))
	}

	rack.CreatedBy = userID
	rack.UpdatedBy = userID

	repo := repositories.NewLocationRepository(lc.DB)
	if err := repo.AddRack(uint(storeID), &rack); err != nil {
		return apperrors.Respond(ctx, err)
	}
	return ctx.Status(fiber.StatusCreated).JSON(fiber.Map{
		"success": true,
		"message": "Rack created successfully",
		"data":    rack,
	})
}

func (lc *LocationController) AddShelf(ctx *fiber.Ctx) error {
	userID := middleware.ActorID(ctx)

	rackID, err := ctx.ParamsInt("id")
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid rack ID"})
	}

	var shelf models.Shelf
	if err := ctx.BodyParser(&shelf); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid input"})
	}
	if err := validate.Struct(&shelf); err != nil {
		return apperrors.Respond(ctx, apperrors.Validation(err.Error()))
	}

	shelf.CreatedBy = userID
	shelf.UpdatedBy = userID

	repo := repositories.NewLocationRepository(lc.DB)
	if err := repo.AddShelf(uint(rackID), &shelf); err != nil {
		return apperrors.Respond(ctx, err)
	}
	return ctx.Status(fiber.StatusCreated).JSON(fiber.Map{
		"success": true,
		"message": "Shelf created successfully",
		"data":    shelf,
	})
}

func (lc *LocationController) AddBin(ctx *fiber.Ctx) error {
	userID := middleware.ActorID(ctx)

	shelfID, err := ctx.ParamsInt("id")
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid shelf ID"})
	}

	var bin models.Bin
	if err := ctx.BodyParser(&bin); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid input"})
	}
	if err := validate.Struct(&bin); err != nil {
		return apperrors.Respond(ctx, apperrors.Validation(err.Error()))
	}

	bin.CreatedBy = userID
	bin.UpdatedBy = userID

	repo := repositories.NewLocationRepository(lc.DB)
	if err := repo.AddBin(uint(shelfID), &bin); err != nil {
		return apperrors.Respond(ctx, err)
	}
	return ctx.Status(fiber.StatusCreated).JSON(fiber.Map{
		"success": true,
		"message": "Bin created successfully",
		"data":    bin,
	})
}

// GetLocations returns the flattened rack/shelf/bin tree of one store
// for cascading selectors.
func (lc *LocationController) GetLocations(ctx *fiber.Ctx) error {
	storeID, err := ctx.ParamsInt("id")
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid store ID"})
	}

	repo := repositories.NewLocationRepository(lc.DB)
	rows, err := repo.Flatten(uint(storeID))
	if err != nil {
		return apperrors.Respond(ctx, err)
	}
	return ctx.JSON(fiber.Map{"success": true, "data": rows})
}

// Deactivate soft-disables a store, rack, shelf or bin.
func (lc *LocationController) Deactivate(ctx *fiber.Ctx) error {
	userID := middleware.ActorID(ctx)
	kind := ctx.Params("kind")

	id, err := ctx.ParamsInt("id")
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid ID"})
	}

	repo := repositories.NewLocationRepository(lc.DB)
	if err := repo.Deactivate(kind, uint(id), userID); err != nil {
		return apperrors.Respond(ctx, err)
	}
	return ctx.JSON(fiber.Map{
		"success": true,
		"message": kind + " deactivated",
	})
}

// UploadLocations imports racks, shelves and bins for one store from
// an Excel sheet with columns Rack | Shelf | Bin. Duplicate rows are
// skipped so re-uploads are harmless.
func (lc *LocationController) UploadLocations(ctx *fiber.Ctx) error {
	userID := middleware.ActorID(ctx)

	storeID, err := ctx.ParamsInt("id")
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid store ID"})
	}

	fileHeader, err := ctx.FormFile("file")
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "File is required"})
	}

	file, err := fileHeader.Open()
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Failed to open file"})
	}
	defer file.Close()

	xlsx, err := excelize.OpenReader(file)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid Excel file"})
	}
	defer xlsx.Close()

	rows, err := xlsx.GetRows(xlsx.GetSheetName(0))
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Failed to read sheet"})
	}

	repo := repositories.NewLocationRepository(lc.DB)
	created, skipped := 0, 0

	for i, row := range rows {
		if i == 0 || len(row) == 0 {
			continue // header
		}
		rackCode := cell(row, 0)
		shelfCode := cell(row, 1)
		binCode := cell(row, 2)
		if rackCode == "" {
			continue
		}

		rack, err := lc.ensureRack(repo, uint(storeID), rackCode, userID)
		if err != nil {
			return apperrors.Respond(ctx, err)
		}
		if shelfCode == "" {
			created++
			continue
		}

		shelf, err := lc.ensureShelf(repo, rack.ID, shelfCode, userID)
		if err != nil {
			return apperrors.Respond(ctx, err)
		}
		if binCode == "" {
			created++
			continue
		}

		bin := models.Bin{Code: binCode, CreatedBy: userID, UpdatedBy: userID}
		if err := repo.AddBin(shelf.ID, &bin); err != nil {
			if apperrors.IsKind(err, apperrors.KindDuplicate) {
				skipped++
				continue
			}
			return apperrors.Respond(ctx, err)
		}
		created++
	}

	return ctx.JSON(fiber.Map{
		"success": true,
		"message": "Locations imported",
		"data":    fiber.Map{"created": created, "skipped": skipped},
	})
}

func (lc *LocationController) ensureRack(repo *repositories.LocationRepository, storeID uint, code string, userID int) (*models.Rack, error) {
	var existing models.Rack
	err := lc.DB.First(&existing, "store_id = ? AND code = ? AND is_active = ?", storeID, code, true).Error
	if err == nil {
		return &existing, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	rack := models.Rack{Code: code, CreatedBy: userID, UpdatedBy: userID}
	if err := repo.AddRack(storeID, &rack); err != nil {
		return nil, err
	}
	return &rack, nil
}

func (lc *LocationController) ensureShelf(repo *repositories.LocationRepository, rackID uint, code string, userID int) (*models.Shelf, error) {
	var existing models.Shelf
	err := lc.DB.First(&existing, "rack_id = ? AND code = ? AND is_active = ?", rackID, code, true).Error
	if err == nil {
		return &existing, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	shelf := models.Shelf{Code: code, CreatedBy: userID, UpdatedBy: userID}
	if err := repo.AddShelf(rackID, &shelf); err != nil {
		return nil, err
	}
	return &shelf, nil
}

func cell(row []string, idx int) string {
	if idx >= len(row) {
		return ""
	}
	return row[idx]
}
