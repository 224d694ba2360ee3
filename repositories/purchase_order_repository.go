package repositories

import (
	"errors"

	"fiber-erp/apperrors"
	"fiber-erp/models"

	"gorm.io/gorm"
)

type PurchaseOrderRepository struct {
	db *gorm.DB
}

func NewPurchaseOrderRepository(db *gorm.DB) *PurchaseOrderRepository {
	return &PurchaseOrderRepository{db: db}
}

func (r *PurchaseOrderRepository) GetByNumber(orderNo string) (*models.PurchaseOrder, error) {
	var po models.PurchaseOrder
	if err := r.db.Preload("Items").First(&po, "order_no = ?", orderNo).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NotFound("purchase order")
		}
		return nil, err
	}
	return &po, nil
}

func (r *PurchaseOrderRepository) GetByID(id uint) (*models.PurchaseOrder, error) {
	var po models.PurchaseOrder
	if err := r.db.Preload("Items").First(&po, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NotFound("purchase order")
		}
		return nil, err
	}
	return &po, nil
}

// Create registers an order arriving from upstream. It enters this
// service at sent_to_store with QA pending.
func (r *PurchaseOrderRepository) Create(po *models.PurchaseOrder) error {
	po.Status = models.POStatusSentToStore
	po.QaStatus = models.QAStatusPending
	po.Version = 1

	return r.db.Transaction(func(tx *gorm.DB) error {
		var count int64
		tx.Model(&models.PurchaseOrder{}).Where("order_no = ?", po.OrderNo).Count(&count)
		if count > 0 {
			return apperrors.DuplicateCode("order number " + po.OrderNo + " already exists")
		}
		return tx.Create(po).Error
	})
}

// SetQAStatus records the QA result with a compare-and-swap on the
// version token. Zero rows affected means another writer got there
// first and the caller sees Conflict.
func (r *PurchaseOrderRepository) SetQAStatus(po *models.PurchaseOrder, qaStatus, remarks string, actorID int) error {
	res := r.db.Model(&models.PurchaseOrder{}).
		Where("id = ? AND version = ?", po.ID, po.Version).
		Updates(map[string]interface{}{
			"qa_status":  qaStatus,
			"qa_remarks": remarks,
			"version":    po.Version + 1,
			"updated_by": actorID,
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return apperrors.Conflict("purchase order was modified concurrently, re-fetch and retry")
	}
	po.QaStatus = qaStatus
	po.QaRemarks = remarks
	po.Version++
	return nil
}

// Transition moves the order status with the same compare-and-swap.
// Exposed with an explicit tx so the GRN engine can chain it into the
// receipt transaction.
func (r *PurchaseOrderRepository) Transition(tx *gorm.DB, po *models.PurchaseOrder, newStatus string, actorID int) error {
	if tx == nil {
		tx = r.db
	}
	res := tx.Model(&models.PurchaseOrder{}).
		Where("id = ? AND version = ?", po.ID, po.Version).
		Updates(map[string]interface{}{
			"status":     newStatus,
			"version":    po.Version + 1,
			"updated_by": actorID,
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return apperrors.Conflict("purchase order was modified concurrently, re-fetch and retry")
	}
	po.Status = newStatus
	po.Version++
	return nil
}

// Advance is Transition outside any enclosing transaction.
func (r *PurchaseOrderRepository) Advance(po *models.PurchaseOrder, newStatus string, actorID int) error {
	return r.Transition(nil, po, newStatus, actorID)
}

// PendingQA lists orders waiting at the store for a QA decision.
func (r *PurchaseOrderRepository) PendingQA() ([]models.PurchaseOrder, error) {
	var pos []models.PurchaseOrder
	err := r.db.Preload("Items").
		Where("status = ? AND qa_status = ?", models.POStatusSentToStore, models.QAStatusPending).
		Order("order_no").
		Find(&pos).Error
	return pos, err
}

// EligibleForGRN lists orders a receipt can be created against: QA
// passed and status sent_to_store or grn_created.
func (r *PurchaseOrderRepository) EligibleForGRN() ([]models.PurchaseOrder, error) {
	var pos []models.PurchaseOrder
	err := r.db.Preload("Items").
		Where("qa_status = ? AND status IN ?", models.QAStatusPassed,
			[]string{models.POStatusSentToStore, models.POStatusGRNCreated}).
		Order("order_no").
		Find(&pos).Error
	return pos, err
}
