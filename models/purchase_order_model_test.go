package models

import (
	"testing"

	"fiber-erp/apperrors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCanSubmitQA(t *testing.T) {
	po := &PurchaseOrder{Status: POStatusSentToStore, QaStatus: QAStatusPending}
	assert.NoError(t, po.CanSubmitQA())

	po.QaStatus = QAStatusPassed
	err := po.CanSubmitQA()
	require.Error(t, err)
	assert.True(t, apperrors.IsKind(err, apperrors.KindInvalidState))

	po = &PurchaseOrder{Status: POStatusDraft, QaStatus: QAStatusPending}
	assert.Error(t, po.CanSubmitQA())
}

func TestCanCreateGRNRequiresQAPass(t *testing.T) {
	for _, qa := range []string{QAStatusPending, QAStatusRejected} {
		po := &PurchaseOrder{Status: POStatusSentToStore, QaStatus: qa}
		err := po.CanCreateGRN()
		require.Error(t, err, "qa status %s", qa)

		appErr, ok := apperrors.As(err)
		require.True(t, ok)
		assert.Equal(t, apperrors.CodeQANotPassed, appErr.Code)
	}

	po := &PurchaseOrder{Status: POStatusSentToStore, QaStatus: QAStatusPassed}
	assert.NoError(t, po.CanCreateGRN())
}

func TestCanCreateGRNStatusGuard(t *testing.T) {
	// A later partial delivery against an already-received order is
	// allowed; anything past or outside the receiving flow is not.
	allowed := []string{POStatusSentToStore, POStatusGRNCreated}
	for _, status := range allowed {
		po := &PurchaseOrder{Status: status, QaStatus: QAStatusPassed}
		assert.NoError(t, po.CanCreateGRN(), status)
	}

	blocked := []string{POStatusDraft, POStatusApproved, POStatusSentToProcurement, POStatusCancelled, POStatusRejected}
	for _, status := range blocked {
		po := &PurchaseOrder{Status: status, QaStatus: QAStatusPassed}
		err := po.CanCreateGRN()
		require.Error(t, err, status)

		appErr, ok := apperrors.As(err)
		require.True(t, ok)
		assert.Equal(t, apperrors.CodeInvalidState, appErr.Code)
	}
}

func TestCanSendToProcurement(t *testing.T) {
	po := &PurchaseOrder{Status: POStatusGRNCreated}
	assert.NoError(t, po.CanSendToProcurement())

	// Hand-off before any receipt exists is illegal.
	po = &PurchaseOrder{Status: POStatusSentToStore, QaStatus: QAStatusPassed}
	err := po.CanSendToProcurement()
	require.Error(t, err)
	assert.True(t, apperrors.IsKind(err, apperrors.KindInvalidState))

	po = &PurchaseOrder{Status: POStatusSentToProcurement}
	assert.Error(t, po.CanSendToProcurement())
}

func TestOrderedQuantity(t *testing.T) {
	po := &PurchaseOrder{Items: []PurchaseOrderItem{
		{ItemCode: "ITM-1", Quantity: 10},
		{ItemCode: "ITM-2", Quantity: 3},
	}}

	qty, ok := po.OrderedQuantity("ITM-2")
	assert.True(t, ok)
	assert.Equal(t, 3, qty)

	_, ok = po.OrderedQuantity("ITM-9")
	assert.False(t, ok)
}
