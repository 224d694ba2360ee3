package database

import (
	"fiber-erp/models"

	"gorm.io/gorm"
)

func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.Store{},
		&models.Rack{},
		&models.Shelf{},
		&models.Bin{},
		&models.InventoryItem{},
		&models.StockAdjustment{},
		&models.DocumentSequence{},
		&models.Vendor{},
		&models.Project{},
		&models.PurchaseOrder{},
		&models.PurchaseOrderItem{},
		&models.GrnHeader{},
		&models.GrnDetail{},
		&models.AuditEvent{},
		&models.FileLog{},
	)
}
