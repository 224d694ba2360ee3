package database

import (
	"errors"

	"fiber-erp/models"
	"fiber-erp/utils"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// SeedSequences makes sure every document type has an allocator row.
// Runs on every boot; existing rows are left alone.
func SeedSequences(db *gorm.DB) error {
	sequences := []models.DocumentSequence{
		{DocType: models.DocTypeGRN, Prefix: "GRN", NextVal: 1},
		{DocType: models.DocTypeGRNReversal, Prefix: "GRV", NextVal: 1},
	}

	for _, seq := range sequences {
		var existing models.DocumentSequence
		err := db.First(&existing, "doc_type = ?", seq.DocType).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			if err := db.Create(&seq).Error; err != nil {
				return err
			}
			continue
		}
		if err != nil {
			return err
		}
	}
	return nil
}

// SeedDemoData loads a small master data set for local development.
// Guarded by SEED_DEMO_DATA and skipped when stores already exist.
func SeedDemoData(db *gorm.DB) {
	var count int64
	db.Model(&models.Store{}).Count(&count)
	if count > 0 {
		return
	}

	mainStore := models.Store{Name: "Central Warehouse", Code: "WH01", Kind: models.StoreKindMain}
	if err := db.Create(&mainStore).Error; err != nil {
		utils.Log.WithError(err).Warn("demo seed: store")
		return
	}
	sub := models.Store{Name: "Receiving Bay", Code: "WH01-RCV", Kind: models.StoreKindSub, ParentID: &mainStore.ID}
	db.Create(&sub)

	rack := models.Rack{StoreID: mainStore.ID, Code: "R1", Description: "General rack"}
	db.Create(&rack)
	shelf := models.Shelf{RackID: rack.ID, Code: "S1"}
	db.Create(&shelf)
	db.Create(&models.Bin{ShelfID: shelf.ID, Code: "B1"})

	barcode := "4006381333931"
	db.Create(&models.InventoryItem{
		ItemCode:  "ITM-0001",
		Name:      "A4 paper ream",
		Uom:       "ream",
		UnitPrice: decimal.NewFromFloat(4.50),
		Barcode:   &barcode,
	})

	db.Create(&models.Vendor{VendorCode: "V-001", VendorName: "Prime Office Supplies", Address: "12 Market St"})
	db.Create(&models.Project{Code: "PRJ-GEN", Name: "General"})

	utils.Log.Info("demo master data seeded")
}
