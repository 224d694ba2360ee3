package models

import (
	"fiber-erp/controllers/idgen"
	"fiber-erp/types"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

const (
	GRNStatusPartial  = "partial"
	GRNStatusComplete = "complete"
	GRNStatusReversed = "reversed"
)

// GrnHeader is a goods receive note. Immutable once persisted; money
// fields are computed at creation and corrections go through a new GRN
// or an explicit reversal.
type GrnHeader struct {
	gorm.Model
	ID              types.SnowflakeID `json:"id" gorm:"primaryKey"`
	ReceiveNo       string            `json:"receive_no" gorm:"unique"`
	PurchaseOrderID uint              `json:"purchase_order_id" gorm:"index"`
	OrderNo         string            `json:"order_no"`
	VendorID        uint              `json:"vendor_id"`
	VendorName      string            `json:"vendor_name"`
	ReceiveDate     string            `json:"receive_date" gorm:"type:date"`
	Currency        string            `json:"currency" gorm:"default:'USD'"`
	ProjectID       *uint             `json:"project_id"`
	Discount        decimal.Decimal   `json:"discount" gorm:"type:decimal(20,4);default:0"`
	OtherCharges    decimal.Decimal   `json:"other_charges" gorm:"type:decimal(20,4);default:0"`
	NetAmount       decimal.Decimal   `json:"net_amount" gorm:"type:decimal(20,4);default:0"`
	Status          string            `json:"status"`
	Remarks         string            `json:"remarks"`
	// ReversedBy links to the compensating reversal GRN, if any.
	ReversedBy *types.SnowflakeID `json:"reversed_by"`
	CreatedBy  int                `json:"-"`
	UpdatedBy  int                `json:"-"`

	Details []GrnDetail `gorm:"foreignKey:GrnID;references:ID;constraint:OnDelete:CASCADE" json:"details"`
}

func (g *GrnHeader) BeforeCreate(tx *gorm.DB) (err error) {
	if g.ID == 0 {
		g.ID = types.SnowflakeID(idgen.GenerateID())
	}
	return
}

// GrnDetail is one receipt line. HasInventoryMatch discriminates
// catalogued lines (ledger-backed, quantity posted) from ad-hoc lines
// received for items not yet in the item master.
type GrnDetail struct {
	gorm.Model
	GrnID             types.SnowflakeID `json:"grn_id" gorm:"index"`
	LineNo            int               `json:"line_no"`
	InventoryItemID   *uint             `json:"inventory_item_id"`
	HasInventoryMatch bool              `json:"has_inventory_match"`
	ItemCode          string            `json:"item_code"`
	ItemName          string            `json:"item_name"`
	Uom               string            `json:"uom"`
	QtyOrdered        *int              `json:"qty_ordered"`
	QtyReceived       int               `json:"qty_received"`
	UnitPrice         decimal.Decimal   `json:"unit_price" gorm:"type:decimal(20,4);default:0"`
	Amount            decimal.Decimal   `json:"amount" gorm:"type:decimal(20,4);default:0"`
	// OverReceipt marks received > ordered; the excess is never
	// silently truncated.
	OverReceipt bool  `json:"over_receipt"`
	StoreID     uint  `json:"store_id"`
	RackID      *uint `json:"rack_id"`
	ShelfID     *uint `json:"shelf_id"`
	BinID       *uint `json:"bin_id"`
	CreatedBy   int   `json:"-"`
	UpdatedBy   int   `json:"-"`
}

// ComputeNetAmount applies the receipt arithmetic:
// sum(qty_received * unit_price) - discount + other_charges.
func ComputeNetAmount(details []GrnDetail, discount, otherCharges decimal.Decimal) decimal.Decimal {
	total := decimal.Zero
	for _, d := range details {
		total = total.Add(d.UnitPrice.Mul(decimal.NewFromInt(int64(d.QtyReceived))))
	}
	return total.Sub(discount).Add(otherCharges)
}

// ClassifyReceipt returns complete when every line with a known ordered
// quantity received at least that much; lines without an ordered
// quantity have no shortfall to measure.
func ClassifyReceipt(details []GrnDetail) string {
	for _, d := range details {
		if d.QtyOrdered != nil && d.QtyReceived < *d.QtyOrdered {
			return GRNStatusPartial
		}
	}
	return GRNStatusComplete
}
