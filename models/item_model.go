package models

import (
	"time"

	"fiber-erp/types"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// InventoryItem is the catalogued item master. QtyOnHand is only ever
// written through the ledger's AdjustQuantity, never directly.
type InventoryItem struct {
	gorm.Model
	ItemCode  string          `json:"item_code" gorm:"unique" validate:"required"`
	Name      string          `json:"name" validate:"required"`
	Uom       string          `json:"uom"`
	UnitPrice decimal.Decimal `json:"unit_price" gorm:"type:decimal(20,4);default:0"`
	Barcode   *string         `json:"barcode" gorm:"uniqueIndex"`
	QtyOnHand int             `json:"qty_onhand" gorm:"default:0"`
	CreatedBy int             `json:"-"`
	UpdatedBy int             `json:"-"`
}

// StockAdjustment is one row of the append-only ledger log. The current
// balance can always be rebuilt by summing deltas per item.
type StockAdjustment struct {
	ID           types.SnowflakeID `json:"id" gorm:"primaryKey"`
	ItemID       uint              `json:"item_id" gorm:"index"`
	ItemCode     string            `json:"item_code"`
	Delta        int               `json:"delta"`
	BalanceAfter int               `json:"balance_after"`
	DocType      string            `json:"doc_type"`
	DocID        types.SnowflakeID `json:"doc_id" gorm:"index"`
	DocNumber    string            `json:"doc_number"`
	StoreID      *uint             `json:"store_id"`
	ProjectID    *uint             `json:"project_id"`
	Remarks      string            `json:"remarks"`
	CreatedBy    int               `json:"created_by"`
	CreatedAt    time.Time         `json:"created_at"`
}

// AdjustmentContext attributes a quantity change to its causing
// document. AllowNegative is reserved for corrective reversals.
type AdjustmentContext struct {
	DocType       string
	DocID         types.SnowflakeID
	DocNumber     string
	StoreID       *uint
	ProjectID     *uint
	Remarks       string
	ActorID       int
	AllowNegative bool
}

// DocumentSequence allocates document numbers with atomic next-value
// semantics, one row per document type.
type DocumentSequence struct {
	DocType string `gorm:"primaryKey"`
	Prefix  string
	NextVal int64 `gorm:"default:1"`
}

const (
	DocTypeGRN         = "GRN"
	DocTypeGRNReversal = "GRN_REVERSAL"
)
