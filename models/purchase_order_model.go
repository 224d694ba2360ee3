package models

import (
	"fiber-erp/apperrors"

	"github.com/shopspring/decimal"
	"golang.org/x/exp/slices"
	"gorm.io/gorm"
)

// Purchase order lifecycle status. Orders are created upstream and
// enter this service at SentToStore; only the receiving subset of
// transitions is implemented here.
const (
	POStatusDraft             = "draft"
	POStatusPendingApproval   = "pending_approval"
	POStatusApproved          = "approved"
	POStatusSentToStore       = "sent_to_store"
	POStatusGRNCreated        = "grn_created"
	POStatusSentToProcurement = "sent_to_procurement"
	POStatusCancelled         = "cancelled"
	POStatusRejected          = "rejected"
)

// QA sub-status, independent of the order status. Set to pending when
// the order reaches the store and transitions exactly once.
const (
	QAStatusPending  = "pending"
	QAStatusPassed   = "passed"
	QAStatusRejected = "rejected"
)

// grnEligibleStatuses are the order statuses that accept a goods
// receipt: the first receipt against sent_to_store, later partial
// deliveries against grn_created.
var grnEligibleStatuses = []string{POStatusSentToStore, POStatusGRNCreated}

type PurchaseOrder struct {
	gorm.Model
	OrderNo              string          `json:"order_no" gorm:"unique" validate:"required"`
	VendorID             uint            `json:"vendor_id"`
	Status               string          `json:"status" gorm:"default:'sent_to_store'"`
	QaStatus             string          `json:"qa_status" gorm:"default:'pending'"`
	QaRemarks            string          `json:"qa_remarks"`
	TotalAmount          decimal.Decimal `json:"total_amount" gorm:"type:decimal(20,4);default:0"`
	ExpectedDeliveryDate string          `json:"expected_delivery_date" gorm:"type:date"`
	// Version is the optimistic-concurrency token; every status or QA
	// transition bumps it via compare-and-swap.
	Version   int `json:"version" gorm:"default:1"`
	CreatedBy int `json:"-"`
	UpdatedBy int `json:"-"`

	Items []PurchaseOrderItem `gorm:"foreignKey:PurchaseOrderID;references:ID;constraint:OnDelete:CASCADE" json:"items"`
}

type PurchaseOrderItem struct {
	gorm.Model
	PurchaseOrderID uint            `json:"purchase_order_id" gorm:"index"`
	ItemCode        string          `json:"item_code"`
	Description     string          `json:"description"`
	Uom             string          `json:"uom"`
	Quantity        int             `json:"quantity"`
	UnitPrice       decimal.Decimal `json:"unit_price" gorm:"type:decimal(20,4);default:0"`
}

// OrderedQuantity returns the ordered quantity for an item code, if the
// order carries a matching line.
func (po *PurchaseOrder) OrderedQuantity(itemCode string) (int, bool) {
	for _, item := range po.Items {
		if item.ItemCode == itemCode {
			return item.Quantity, true
		}
	}
	return 0, false
}

// CanSubmitQA guards the QA check: only orders sitting at the store
// with a still-pending QA status accept a result.
func (po *PurchaseOrder) CanSubmitQA() error {
	if po.Status != POStatusSentToStore {
		return apperrors.InvalidState(apperrors.CodeInvalidState,
			"QA check requires status sent_to_store, order is "+po.Status)
	}
	if po.QaStatus != QAStatusPending {
		return apperrors.InvalidState(apperrors.CodeInvalidState,
			"QA already decided: "+po.QaStatus)
	}
	return nil
}

// CanCreateGRN guards receipt creation: QA must have passed and the
// order must be in a receipt-eligible status.
func (po *PurchaseOrder) CanCreateGRN() error {
	if !slices.Contains(grnEligibleStatuses, po.Status) {
		return apperrors.InvalidState(apperrors.CodeInvalidState,
			"order status "+po.Status+" does not accept goods receipts")
	}
	if po.QaStatus != QAStatusPassed {
		return apperrors.InvalidState(apperrors.CodeQANotPassed,
			"QA status is "+po.QaStatus+", receipt requires passed")
	}
	return nil
}

// CanSendToProcurement guards the downstream hand-off.
func (po *PurchaseOrder) CanSendToProcurement() error {
	if po.Status != POStatusGRNCreated {
		return apperrors.InvalidState(apperrors.CodeInvalidState,
			"hand-off requires status grn_created, order is "+po.Status)
	}
	return nil
}
