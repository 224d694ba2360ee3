package repositories

import (
	"fmt"
	"time"

	"fiber-erp/apperrors"
	"fiber-erp/models"

	"gorm.io/gorm"
)

type SequenceRepository struct {
	db *gorm.DB
}

func NewSequenceRepository(db *gorm.DB) *SequenceRepository {
	return &SequenceRepository{db: db}
}

// NextNumber allocates the next document number for a type, e.g.
// GRN2608310001. The increment is a single UPDATE so two concurrent
// receipts can never draw the same number; the caller's transaction
// holds the row lock until commit.
func (r *SequenceRepository) NextNumber(tx *gorm.DB, docType string) (string, error) {
	if tx == nil {
		tx = r.db
	}

	res := tx.Model(&models.DocumentSequence{}).
		Where("doc_type = ?", docType).
		UpdateColumn("next_val", gorm.Expr("next_val + 1"))
	if res.Error != nil {
		return "", res.Error
	}
	if res.RowsAffected == 0 {
		return "", apperrors.NotFound("document sequence " + docType)
	}

	var seq models.DocumentSequence
	if err := tx.First(&seq, "doc_type = ?", docType).Error; err != nil {
		return "", err
	}

	// next_val was already advanced, the allocated value is the one
	// before it.
	allocated := seq.NextVal - 1
	datePart := time.Now().Format("060102")
	return fmt.Sprintf("%s%s%04d", seq.Prefix, datePart, allocated), nil
}
