package repositories

import (
	"errors"

	"fiber-erp/apperrors"
	"fiber-erp/controllers/idgen"
	"fiber-erp/models"
	"fiber-erp/types"

	"gorm.io/gorm"
)

type InventoryRepository struct {
	db *gorm.DB
}

func NewInventoryRepository(db *gorm.DB) *InventoryRepository {
	return &InventoryRepository{db: db}
}

func (r *InventoryRepository) GetByID(id uint) (*models.InventoryItem, error) {
	var item models.InventoryItem
	if err := r.db.First(&item, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NotFound("inventory item")
		}
		return nil, err
	}
	return &item, nil
}

func (r *InventoryRepository) GetByCode(itemCode string) (*models.InventoryItem, error) {
	var item models.InventoryItem
	if err := r.db.First(&item, "item_code = ?", itemCode).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NotFound("inventory item")
		}
		return nil, err
	}
	return &item, nil
}

// GetByBarcode is the whole barcode resolution pipeline: exact match,
// no fuzzy lookup. Resolving the same code twice returns the same item
// and has no side effect.
func (r *InventoryRepository) GetByBarcode(code string) (*models.InventoryItem, error) {
	var item models.InventoryItem
	if err := r.db.First(&item, "barcode = ?", code).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NotFound("inventory item")
		}
		return nil, err
	}
	return &item, nil
}

func (r *InventoryRepository) Create(item *models.InventoryItem) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		var count int64
		tx.Model(&models.InventoryItem{}).Where("item_code = ?", item.ItemCode).Count(&count)
		if count > 0 {
			return apperrors.DuplicateCode("item code " + item.ItemCode + " already exists")
		}
		if item.Barcode != nil && *item.Barcode != "" {
			tx.Model(&models.InventoryItem{}).Where("barcode = ?", *item.Barcode).Count(&count)
			if count > 0 {
				return apperrors.DuplicateCode("barcode " + *item.Barcode + " already assigned")
			}
		}
		return tx.Create(item).Error
	})
}

func (r *InventoryRepository) List() ([]models.InventoryItem, error) {
	var items []models.InventoryItem
	err := r.db.Order("item_code").Find(&items).Error
	return items, err
}

// AdjustQuantity is the only mutator of qty_onhand. The increment runs
// as a single UPDATE so concurrent receipts of the same item never lose
// a write; the negative guard sits in the WHERE clause for the same
// reason. Every call appends a StockAdjustment row.
func (r *InventoryRepository) AdjustQuantity(itemID uint, delta int, adjCtx models.AdjustmentContext) (int, error) {
	var newBalance int

	err := r.db.Transaction(func(tx *gorm.DB) error {
		q := tx.Model(&models.InventoryItem{}).Where("id = ?", itemID)
		if !adjCtx.AllowNegative {
			q = q.Where("qty_onhand + ? >= 0", delta)
		}
		res := q.UpdateColumn("qty_onhand", gorm.Expr("qty_onhand + ?", delta))
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			var count int64
			tx.Model(&models.InventoryItem{}).Where("id = ?", itemID).Count(&count)
			if count == 0 {
				return apperrors.NotFound("inventory item")
			}
			return apperrors.Validation("adjustment would drive quantity on hand negative")
		}

		var item models.InventoryItem
		if err := tx.First(&item, "id = ?", itemID).Error; err != nil {
			return err
		}
		newBalance = item.QtyOnHand

		adjustment := models.StockAdjustment{
			ID:           types.SnowflakeID(idgen.GenerateID()),
			ItemID:       itemID,
			ItemCode:     item.ItemCode,
			Delta:        delta,
			BalanceAfter: newBalance,
			DocType:      adjCtx.DocType,
			DocID:        adjCtx.DocID,
			DocNumber:    adjCtx.DocNumber,
			StoreID:      adjCtx.StoreID,
			ProjectID:    adjCtx.ProjectID,
			Remarks:      adjCtx.Remarks,
			CreatedBy:    adjCtx.ActorID,
		}
		return tx.Create(&adjustment).Error
	})

	return newBalance, err
}

func (r *InventoryRepository) GetQuantityOnHand(itemID uint) (int, error) {
	item, err := r.GetByID(itemID)
	if err != nil {
		return 0, err
	}
	return item.QtyOnHand, nil
}

// StockBalanceRow is one line of the on-hand view.
type StockBalanceRow struct {
	ItemCode string `json:"item_code"`
	ItemName string `json:"item_name"`
	Quantity int    `json:"quantity"`
}

// StockBalance reports current on-hand quantities. Without filters it
// reads the item master; a project or store filter segments through
// the adjustment log instead, since the master balance is global.
func (r *InventoryRepository) StockBalance(itemCode string, projectID, storeID *uint) ([]StockBalanceRow, error) {
	if projectID == nil && storeID == nil {
		q := r.db.Model(&models.InventoryItem{}).
			Select("item_code, name AS item_name, qty_onhand AS quantity")
		if itemCode != "" {
			q = q.Where("item_code = ?", itemCode)
		}
		var rows []StockBalanceRow
		if err := q.Order("item_code").Scan(&rows).Error; err != nil {
			return nil, err
		}
		return rows, nil
	}

	q := r.db.Model(&models.StockAdjustment{}).
		Select("stock_adjustments.item_code, inventory_items.name AS item_name, SUM(stock_adjustments.delta) AS quantity").
		Joins("JOIN inventory_items ON inventory_items.id = stock_adjustments.item_id").
		Group("stock_adjustments.item_code, inventory_items.name")
	if itemCode != "" {
		q = q.Where("stock_adjustments.item_code = ?", itemCode)
	}
	if projectID != nil {
		q = q.Where("stock_adjustments.project_id = ?", *projectID)
	}
	if storeID != nil {
		q = q.Where("stock_adjustments.store_id = ?", *storeID)
	}

	var rows []StockBalanceRow
	if err := q.Order("stock_adjustments.item_code").Scan(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

// Adjustments returns the append-only log, newest first.
func (r *InventoryRepository) Adjustments(itemCode string, limit int) ([]models.StockAdjustment, error) {
	if limit <= 0 || limit > 500 {
		limit = 100
	}
	q := r.db.Order("id DESC").Limit(limit)
	if itemCode != "" {
		q = q.Where("item_code = ?", itemCode)
	}
	var adjustments []models.StockAdjustment
	err := q.Find(&adjustments).Error
	return adjustments, err
}

// ReconcileRow reports an item whose master balance drifted from the
// sum of its adjustment log.
type ReconcileRow struct {
	ItemCode   string `json:"item_code"`
	OnHand     int    `json:"on_hand"`
	LedgerSum  int    `json:"ledger_sum"`
	Difference int    `json:"difference"`
}

// Reconcile rebuilds every balance from the log and returns the items
// that do not match the master. An empty result means the ledger is
// consistent.
func (r *InventoryRepository) Reconcile() ([]ReconcileRow, error) {
	sqlReconcile := `SELECT i.item_code, i.qty_onhand AS on_hand,
	COALESCE(SUM(a.delta), 0) AS ledger_sum,
	i.qty_onhand - COALESCE(SUM(a.delta), 0) AS difference
	FROM inventory_items i
	LEFT JOIN stock_adjustments a ON a.item_id = i.id
	WHERE i.deleted_at IS NULL
	GROUP BY i.item_code, i.qty_onhand
	HAVING i.qty_onhand <> COALESCE(SUM(a.delta), 0)`

	var rows []ReconcileRow
	if err := r.db.Raw(sqlReconcile).Scan(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}
