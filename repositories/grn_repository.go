package repositories

import (
	"errors"

	"fiber-erp/apperrors"
	"fiber-erp/models"

	"gorm.io/gorm"
)

type GrnRepository struct {
	db  *gorm.DB
	seq *SequenceRepository
	pos *PurchaseOrderRepository
}

func NewGrnRepository(db *gorm.DB) *GrnRepository {
	return &GrnRepository{
		db:  db,
		seq: NewSequenceRepository(db),
		pos: NewPurchaseOrderRepository(db),
	}
}

// Persist writes a fully validated GRN as one unit of work: allocate
// the receive number, insert header and lines, post one ledger
// adjustment per catalogued line, and transition the purchase order.
// Any failure rolls the whole receipt back; a GRN only exists once all
// of its ledger effects are applied.
func (r *GrnRepository) Persist(po *models.PurchaseOrder, grn *models.GrnHeader, actorID int) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		receiveNo, err := r.seq.NextNumber(tx, models.DocTypeGRN)
		if err != nil {
			return err
		}
		grn.ReceiveNo = receiveNo
		grn.PurchaseOrderID = po.ID
		grn.OrderNo = po.OrderNo
		grn.CreatedBy = actorID
		grn.UpdatedBy = actorID

		if err := tx.Create(grn).Error; err != nil {
			return err
		}

		ledger := NewInventoryRepository(tx)
		for _, d := range grn.Details {
			if !d.HasInventoryMatch || d.InventoryItemID == nil {
				continue
			}
			storeID := d.StoreID
			adjCtx := models.AdjustmentContext{
				DocType:   models.DocTypeGRN,
				DocID:     grn.ID,
				DocNumber: grn.ReceiveNo,
				StoreID:   &storeID,
				ProjectID: grn.ProjectID,
				ActorID:   actorID,
			}
			if _, err := ledger.AdjustQuantity(*d.InventoryItemID, d.QtyReceived, adjCtx); err != nil {
				return err
			}
		}

		// The transition doubles as the per-order serializer: two
		// concurrent receipts both bump the version, the loser gets
		// Conflict and the transaction unwinds.
		return r.pos.Transition(tx, po, models.POStatusGRNCreated, actorID)
	})
}

func (r *GrnRepository) GetByReceiveNo(receiveNo string) (*models.GrnHeader, error) {
	var grn models.GrnHeader
	if err := r.db.Preload("Details").First(&grn, "receive_no = ?", receiveNo).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NotFound("goods receive note")
		}
		return nil, err
	}
	return &grn, nil
}

func (r *GrnRepository) List(orderNo string) ([]models.GrnHeader, error) {
	q := r.db.Preload("Details").Order("receive_no DESC")
	if orderNo != "" {
		q = q.Where("order_no = ?", orderNo)
	}
	var grns []models.GrnHeader
	err := q.Find(&grns).Error
	return grns, err
}

// Reverse posts a compensating GRN that backs out the ledger effects
// of an earlier receipt. The original record is kept and marked, never
// deleted; the reversal adjustments run with AllowNegative because the
// stock may already have been issued.
func (r *GrnRepository) Reverse(receiveNo string, actorID int) (*models.GrnHeader, error) {
	original, err := r.GetByReceiveNo(receiveNo)
	if err != nil {
		return nil, err
	}
	if original.Status == models.GRNStatusReversed {
		return nil, apperrors.InvalidState(apperrors.CodeInvalidState,
			"goods receive note "+receiveNo+" is already reversed")
	}

	reversal := &models.GrnHeader{
		PurchaseOrderID: original.PurchaseOrderID,
		OrderNo:         original.OrderNo,
		VendorID:        original.VendorID,
		VendorName:      original.VendorName,
		ReceiveDate:     original.ReceiveDate,
		Currency:        original.Currency,
		ProjectID:       original.ProjectID,
		Discount:        original.Discount.Neg(),
		OtherCharges:    original.OtherCharges.Neg(),
		NetAmount:       original.NetAmount.Neg(),
		Status:          models.GRNStatusReversed,
		Remarks:         "reversal of " + original.ReceiveNo,
		CreatedBy:       actorID,
		UpdatedBy:       actorID,
	}
	for _, d := range original.Details {
		reversal.Details = append(reversal.Details, models.GrnDetail{
			LineNo:            d.LineNo,
			InventoryItemID:   d.InventoryItemID,
			HasInventoryMatch: d.HasInventoryMatch,
			ItemCode:          d.ItemCode,
			ItemName:          d.ItemName,
			Uom:               d.Uom,
			QtyOrdered:        d.QtyOrdered,
			QtyReceived:       -d.QtyReceived,
			UnitPrice:         d.UnitPrice,
			Amount:            d.Amount.Neg(),
			StoreID:           d.StoreID,
			RackID:            d.RackID,
			ShelfID:           d.ShelfID,
			BinID:             d.BinID,
			CreatedBy:         actorID,
		})
	}

	err = r.db.Transaction(func(tx *gorm.DB) error {
		receiveNo, err := r.seq.NextNumber(tx, models.DocTypeGRNReversal)
		if err != nil {
			return err
		}
		reversal.ReceiveNo = receiveNo

		if err := tx.Create(reversal).Error; err != nil {
			return err
		}

		ledger := NewInventoryRepository(tx)
		for _, d := range reversal.Details {
			if !d.HasInventoryMatch || d.InventoryItemID == nil {
				continue
			}
			storeID := d.StoreID
			adjCtx := models.AdjustmentContext{
				DocType:       models.DocTypeGRNReversal,
				DocID:         reversal.ID,
				DocNumber:     reversal.ReceiveNo,
				StoreID:       &storeID,
				ProjectID:     reversal.ProjectID,
				Remarks:       "reversal of " + original.ReceiveNo,
				ActorID:       actorID,
				AllowNegative: true,
			}
			if _, err := ledger.AdjustQuantity(*d.InventoryItemID, d.QtyReceived, adjCtx); err != nil {
				return err
			}
		}

		reversalID := reversal.ID
		return tx.Model(&models.GrnHeader{}).
			Where("id = ?", original.ID).
			Updates(map[string]interface{}{
				"status":      models.GRNStatusReversed,
				"reversed_by": reversalID,
				"updated_by":  actorID,
			}).Error
	})
	if err != nil {
		return nil, err
	}
	return reversal, nil
}
