package services

import (
	"encoding/json"
	"time"

	"fiber-erp/apperrors"
	"fiber-erp/models"
	"fiber-erp/repositories"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

const (
	OverReceiptFlag   = "flag"
	OverReceiptReject = "reject"
)

// The orchestrator talks to its collaborators through narrow
// interfaces; the concrete repositories satisfy them.

type PurchaseOrderStore interface {
	GetByNumber(orderNo string) (*models.PurchaseOrder, error)
	SetQAStatus(po *models.PurchaseOrder, qaStatus, remarks string, actorID int) error
	Advance(po *models.PurchaseOrder, newStatus string, actorID int) error
	PendingQA() ([]models.PurchaseOrder, error)
	EligibleForGRN() ([]models.PurchaseOrder, error)
}

type ItemResolver interface {
	GetByCode(itemCode string) (*models.InventoryItem, error)
	GetByBarcode(code string) (*models.InventoryItem, error)
}

type LocationResolver interface {
	Resolve(storeID uint, rackID, shelfID, binID *uint) (*models.LocationPath, error)
}

type VendorDirectory interface {
	GetByID(id uint) (*models.Vendor, error)
}

type ReceiptWriter interface {
	Persist(po *models.PurchaseOrder, grn *models.GrnHeader, actorID int) error
	Reverse(receiveNo string, actorID int) (*models.GrnHeader, error)
}

// ReceivingService sequences the inbound workflow: QA check, goods
// receipt, hand-off to procurement.
type ReceivingService struct {
	pos       PurchaseOrderStore
	items     ItemResolver
	locations LocationResolver
	vendors   VendorDirectory
	receipts  ReceiptWriter
	notify    NotificationSink

	// OverReceiptPolicy: flag (accept and mark the line) or reject.
	OverReceiptPolicy string
}

func NewReceivingService(db *gorm.DB, notify NotificationSink, overReceiptPolicy string) *ReceivingService {
	return &ReceivingService{
		pos:               repositories.NewPurchaseOrderRepository(db),
		items:             repositories.NewInventoryRepository(db),
		locations:         repositories.NewLocationRepository(db),
		vendors:           repositories.NewVendorRepository(db),
		receipts:          repositories.NewGrnRepository(db),
		notify:            notify,
		OverReceiptPolicy: overReceiptPolicy,
	}
}

// SubmitQA records the one-shot QA decision for an order sitting at
// the store.
func (s *ReceivingService) SubmitQA(orderNo, result, remarks string, actorID int) (*models.PurchaseOrder, error) {
	var qaStatus string
	switch result {
	case "pass":
		qaStatus = models.QAStatusPassed
	case "reject":
		qaStatus = models.QAStatusRejected
	default:
		return nil, apperrors.Validation("QA result must be pass or reject")
	}

	po, err := s.pos.GetByNumber(orderNo)
	if err != nil {
		return nil, err
	}
	if err := po.CanSubmitQA(); err != nil {
		return nil, err
	}
	if err := s.pos.SetQAStatus(po, qaStatus, remarks, actorID); err != nil {
		return nil, err
	}

	s.emit("po_qa_"+qaStatus, actorID, po.OrderNo, map[string]interface{}{
		"order_no": po.OrderNo,
		"remarks":  remarks,
	})
	return po, nil
}

// ReceiptHeader carries the caller-supplied header fields of a new
// goods receipt.
type ReceiptHeader struct {
	ReceiveDate  string          `json:"receive_date" validate:"required"`
	Currency     string          `json:"currency"`
	ProjectID    *uint           `json:"project_id"`
	Discount     decimal.Decimal `json:"discount"`
	OtherCharges decimal.Decimal `json:"other_charges"`
	Remarks      string          `json:"remarks"`
}

// ReceiptLine is one submitted line. Barcode or item code resolves
// against the item master; unresolvable lines are accepted as ad-hoc
// receipts when they carry their own identity.
type ReceiptLine struct {
	Barcode     string           `json:"barcode"`
	ItemCode    string           `json:"item_code"`
	ItemName    string           `json:"item_name"`
	Uom         string           `json:"uom"`
	QtyReceived int              `json:"qty_received"`
	UnitPrice   *decimal.Decimal `json:"unit_price"`
	StoreID     uint             `json:"store_id"`
	RackID      *uint            `json:"rack_id"`
	ShelfID     *uint            `json:"shelf_id"`
	BinID       *uint            `json:"bin_id"`
}

// CreateReceipt validates and persists a goods receipt against an
// order. All validation happens before any mutation and every failing
// line is reported, not just the first.
func (s *ReceivingService) CreateReceipt(orderNo string, header ReceiptHeader, lines []ReceiptLine, actorID int) (*models.GrnHeader, error) {
	po, err := s.pos.GetByNumber(orderNo)
	if err != nil {
		return nil, err
	}
	if err := po.CanCreateGRN(); err != nil {
		return nil, err
	}

	received := 0
	for _, line := range lines {
		if line.QtyReceived > 0 {
			received++
		}
	}
	if received == 0 {
		return nil, apperrors.InvalidState(apperrors.CodeEmptyReceipt,
			"a receipt needs at least one line with quantity received > 0")
	}

	details, lineErrs, err := s.buildDetails(po, lines)
	if err != nil {
		return nil, err
	}
	if lineErrs.HasErrors() {
		return nil, lineErrs
	}

	grn := &models.GrnHeader{
		VendorID:     po.VendorID,
		ReceiveDate:  header.ReceiveDate,
		Currency:     header.Currency,
		ProjectID:    header.ProjectID,
		Discount:     header.Discount,
		OtherCharges: header.OtherCharges,
		Remarks:      header.Remarks,
		Details:      details,
	}
	if grn.Currency == "" {
		grn.Currency = "USD"
	}
	grn.NetAmount = models.ComputeNetAmount(details, header.Discount, header.OtherCharges)
	grn.Status = models.ClassifyReceipt(details)

	if vendor, err := s.vendors.GetByID(po.VendorID); err == nil {
		grn.VendorName = vendor.VendorName
	} else if !apperrors.IsKind(err, apperrors.KindNotFound) {
		return nil, apperrors.Dependency("vendor directory unavailable", err)
	}

	if err := s.receipts.Persist(po, grn, actorID); err != nil {
		return nil, err
	}

	s.emit("grn_created", actorID, grn.ReceiveNo, map[string]interface{}{
		"order_no":   po.OrderNo,
		"receive_no": grn.ReceiveNo,
		"status":     grn.Status,
		"net_amount": grn.NetAmount.String(),
	})
	return grn, nil
}

// buildDetails resolves, validates and prices every submitted line,
// aggregating failures per line.
func (s *ReceivingService) buildDetails(po *models.PurchaseOrder, lines []ReceiptLine) ([]models.GrnDetail, *apperrors.LineErrors, error) {
	lineErrs := &apperrors.LineErrors{}
	details := make([]models.GrnDetail, 0, len(lines))

	for i, line := range lines {
		lineNo := i + 1

		if line.QtyReceived <= 0 {
			lineErrs.Add(lineNo, "qty_received", "quantity received must be greater than zero",
				apperrors.KindValidation, "VALIDATION")
			continue
		}

		detail := models.GrnDetail{
			LineNo:      lineNo,
			Uom:         line.Uom,
			QtyReceived: line.QtyReceived,
			StoreID:     line.StoreID,
			RackID:      line.RackID,
			ShelfID:     line.ShelfID,
			BinID:       line.BinID,
		}

		item, err := s.resolveItem(line)
		if err != nil {
			return nil, nil, err
		}
		if item != nil {
			itemID := item.ID
			detail.InventoryItemID = &itemID
			detail.HasInventoryMatch = true
			detail.ItemCode = item.ItemCode
			detail.ItemName = item.Name
			if detail.Uom == "" {
				detail.Uom = item.Uom
			}
		} else {
			// Ad-hoc receipt of an item not yet catalogued: allowed,
			// but the line must identify itself.
			if line.ItemCode == "" || line.ItemName == "" {
				lineErrs.Add(lineNo, "item_code", "unresolvable item needs item_code and item_name",
					apperrors.KindInvalidState, apperrors.CodeMissingItemIdentity)
				continue
			}
			detail.ItemCode = line.ItemCode
			detail.ItemName = line.ItemName
		}

		if ordered, known := po.OrderedQuantity(detail.ItemCode); known {
			orderedQty := ordered
			detail.QtyOrdered = &orderedQty
			if line.QtyReceived > ordered {
				if s.OverReceiptPolicy == OverReceiptReject {
					lineErrs.Add(lineNo, "qty_received", "received exceeds ordered quantity",
						apperrors.KindInvalidState, apperrors.CodeOverReceipt)
					continue
				}
				detail.OverReceipt = true
			}
		}

		detail.UnitPrice = s.priceFor(line, item, po, detail.ItemCode)
		detail.Amount = detail.UnitPrice.Mul(decimal.NewFromInt(int64(line.QtyReceived)))

		if detail.HasInventoryMatch {
			if line.StoreID == 0 {
				lineErrs.Add(lineNo, "store_id", "catalogued lines need a store location",
					apperrors.KindValidation, "VALIDATION")
				continue
			}
			if _, err := s.locations.Resolve(line.StoreID, line.RackID, line.ShelfID, line.BinID); err != nil {
				lineErrs.Add(lineNo, "store_location", err.Error(),
					apperrors.KindNotFound, "NOT_FOUND")
				continue
			}
		}

		details = append(details, detail)
	}

	return details, lineErrs, nil
}

// resolveItem runs the barcode pipeline first, then falls back to the
// item code. A miss is not an error here; the line may be ad-hoc. Any
// other lookup failure aborts: an outage must never demote a
// catalogued line to ad-hoc, or its stock silently skips the ledger.
func (s *ReceivingService) resolveItem(line ReceiptLine) (*models.InventoryItem, error) {
	if line.Barcode != "" {
		item, err := s.items.GetByBarcode(line.Barcode)
		if err == nil {
			return item, nil
		}
		if !apperrors.IsKind(err, apperrors.KindNotFound) {
			return nil, apperrors.Dependency("item lookup unavailable", err)
		}
	}
	if line.ItemCode != "" {
		item, err := s.items.GetByCode(line.ItemCode)
		if err == nil {
			return item, nil
		}
		if !apperrors.IsKind(err, apperrors.KindNotFound) {
			return nil, apperrors.Dependency("item lookup unavailable", err)
		}
	}
	return nil, nil
}

// priceFor picks the line price: caller-supplied, then item master,
// then the matching PO line.
func (s *ReceivingService) priceFor(line ReceiptLine, item *models.InventoryItem, po *models.PurchaseOrder, itemCode string) decimal.Decimal {
	if line.UnitPrice != nil {
		return *line.UnitPrice
	}
	if item != nil && !item.UnitPrice.IsZero() {
		return item.UnitPrice
	}
	for _, poItem := range po.Items {
		if poItem.ItemCode == itemCode {
			return poItem.UnitPrice
		}
	}
	return decimal.Zero
}

// HandOffToProcurement is the explicit downstream hand-off after
// receiving is done.
func (s *ReceivingService) HandOffToProcurement(orderNo string, actorID int) (*models.PurchaseOrder, error) {
	po, err := s.pos.GetByNumber(orderNo)
	if err != nil {
		return nil, err
	}
	if err := po.CanSendToProcurement(); err != nil {
		return nil, err
	}
	if err := s.pos.Advance(po, models.POStatusSentToProcurement, actorID); err != nil {
		return nil, err
	}

	s.emit("po_sent_to_procurement", actorID, po.OrderNo, map[string]interface{}{
		"order_no": po.OrderNo,
	})
	return po, nil
}

// ReverseReceipt posts the compensating transaction for a receipt.
func (s *ReceivingService) ReverseReceipt(receiveNo string, actorID int) (*models.GrnHeader, error) {
	reversal, err := s.receipts.Reverse(receiveNo, actorID)
	if err != nil {
		return nil, err
	}

	s.emit("grn_reversed", actorID, receiveNo, map[string]interface{}{
		"receive_no":  receiveNo,
		"reversal_no": reversal.ReceiveNo,
	})
	return reversal, nil
}

// PendingQA is the "waiting for QA" list view projection.
func (s *ReceivingService) PendingQA() ([]models.PurchaseOrder, error) {
	return s.pos.PendingQA()
}

// EligibleForGRN is the "can be received" list view projection.
func (s *ReceivingService) EligibleForGRN() ([]models.PurchaseOrder, error) {
	return s.pos.EligibleForGRN()
}

func (s *ReceivingService) emit(eventType string, actorID int, documentID string, payload map[string]interface{}) {
	if s.notify == nil {
		return
	}
	body, _ := json.Marshal(payload)
	s.notify.Record(models.AuditEvent{
		ID:         uuid.NewString(),
		Type:       eventType,
		ActorID:    actorID,
		DocumentID: documentID,
		Payload:    string(body),
		CreatedAt:  time.Now(),
	})
}
