package services

import (
	"errors"
	"testing"

	"fiber-erp/apperrors"
	"fiber-erp/models"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type MockPurchaseOrderStore struct{ mock.Mock }

func (m *MockPurchaseOrderStore) GetByNumber(orderNo string) (*models.PurchaseOrder, error) {
	args := m.Called(orderNo)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.PurchaseOrder), args.Error(1)
}

func (m *MockPurchaseOrderStore) SetQAStatus(po *models.PurchaseOrder, qaStatus, remarks string, actorID int) error {
	return m.Called(po, qaStatus, remarks, actorID).Error(0)
}

func (m *MockPurchaseOrderStore) Advance(po *models.PurchaseOrder, newStatus string, actorID int) error {
	return m.Called(po, newStatus, actorID).Error(0)
}

func (m *MockPurchaseOrderStore) PendingQA() ([]models.PurchaseOrder, error) {
	args := m.Called()
	return args.Get(0).([]models.PurchaseOrder), args.Error(1)
}

func (m *MockPurchaseOrderStore) EligibleForGRN() ([]models.PurchaseOrder, error) {
	args := m.Called()
	return args.Get(0).([]models.PurchaseOrder), args.Error(1)
}

type MockItemResolver struct{ mock.Mock }

func (m *MockItemResolver) GetByCode(itemCode string) (*models.InventoryItem, error) {
	args := m.Called(itemCode)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.InventoryItem), args.Error(1)
}

func (m *MockItemResolver) GetByBarcode(code string) (*models.InventoryItem, error) {
	args := m.Called(code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.InventoryItem), args.Error(1)
}

type MockLocationResolver struct{ mock.Mock }

func (m *MockLocationResolver) Resolve(storeID uint, rackID, shelfID, binID *uint) (*models.LocationPath, error) {
	args := m.Called(storeID, rackID, shelfID, binID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.LocationPath), args.Error(1)
}

type MockVendorDirectory struct{ mock.Mock }

func (m *MockVendorDirectory) GetByID(id uint) (*models.Vendor, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Vendor), args.Error(1)
}

type MockReceiptWriter struct{ mock.Mock }

func (m *MockReceiptWriter) Persist(po *models.PurchaseOrder, grn *models.GrnHeader, actorID int) error {
	return m.Called(po, grn, actorID).Error(0)
}

func (m *MockReceiptWriter) Reverse(receiveNo string, actorID int) (*models.GrnHeader, error) {
	args := m.Called(receiveNo, actorID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.GrnHeader), args.Error(1)
}

// sinkRecorder collects emitted audit events synchronously.
type sinkRecorder struct{ events []models.AuditEvent }

func (s *sinkRecorder) Record(event models.AuditEvent) { s.events = append(s.events, event) }

type serviceMocks struct {
	pos       *MockPurchaseOrderStore
	items     *MockItemResolver
	locations *MockLocationResolver
	vendors   *MockVendorDirectory
	receipts  *MockReceiptWriter
	sink      *sinkRecorder
}

func newTestService(policy string) (*ReceivingService, *serviceMocks) {
	m := &serviceMocks{
		pos:       new(MockPurchaseOrderStore),
		items:     new(MockItemResolver),
		locations: new(MockLocationResolver),
		vendors:   new(MockVendorDirectory),
		receipts:  new(MockReceiptWriter),
		sink:      &sinkRecorder{},
	}
	svc := &ReceivingService{
		pos:               m.pos,
		items:             m.items,
		locations:         m.locations,
		vendors:           m.vendors,
		receipts:          m.receipts,
		notify:            m.sink,
		OverReceiptPolicy: policy,
	}
	return svc, m
}

func receivablePO() *models.PurchaseOrder {
	return &models.PurchaseOrder{
		Model:    gorm.Model{ID: 7},
		OrderNo:  "PO-1001",
		VendorID: 3,
		Status:   models.POStatusSentToStore,
		QaStatus: models.QAStatusPassed,
		Version:  2,
		Items: []models.PurchaseOrderItem{
			{ItemCode: "ITM-1", Quantity: 10, UnitPrice: decimal.NewFromInt(100)},
			{ItemCode: "ITM-2", Quantity: 5, UnitPrice: decimal.NewFromInt(50)},
		},
	}
}

func catalogued(code, barcode string) *models.InventoryItem {
	item := &models.InventoryItem{
		ItemCode:  code,
		Name:      "Widget " + code,
		Uom:       "PCS",
		UnitPrice: decimal.Zero,
	}
	item.ID = 42
	if barcode != "" {
		item.Barcode = &barcode
	}
	return item
}

func TestSubmitQAPass(t *testing.T) {
	svc, m := newTestService(OverReceiptFlag)
	po := receivablePO()
	po.QaStatus = models.QAStatusPending

	m.pos.On("GetByNumber", "PO-1001").Return(po, nil)
	m.pos.On("SetQAStatus", po, models.QAStatusPassed, "looks good", 9).Return(nil)

	got, err := svc.SubmitQA("PO-1001", "pass", "looks good", 9)
	require.NoError(t, err)
	assert.Equal(t, "PO-1001", got.OrderNo)
	require.Len(t, m.sink.events, 1)
	assert.Equal(t, "po_qa_passed", m.sink.events[0].Type)
	m.pos.AssertExpectations(t)
}

func TestSubmitQAInvalidResult(t *testing.T) {
	svc, m := newTestService(OverReceiptFlag)

	_, err := svc.SubmitQA("PO-1001", "maybe", "", 9)
	require.Error(t, err)
	assert.True(t, apperrors.IsKind(err, apperrors.KindValidation))
	m.pos.AssertNotCalled(t, "GetByNumber", mock.Anything)
}

func TestSubmitQAAlreadyDecided(t *testing.T) {
	svc, m := newTestService(OverReceiptFlag)
	po := receivablePO() // QA already passed

	m.pos.On("GetByNumber", "PO-1001").Return(po, nil)

	_, err := svc.SubmitQA("PO-1001", "reject", "", 9)
	require.Error(t, err)
	assert.True(t, apperrors.IsKind(err, apperrors.KindInvalidState))
	m.pos.AssertNotCalled(t, "SetQAStatus", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestSubmitQAConflictPropagates(t *testing.T) {
	svc, m := newTestService(OverReceiptFlag)
	po := receivablePO()
	po.QaStatus = models.QAStatusPending

	m.pos.On("GetByNumber", "PO-1001").Return(po, nil)
	m.pos.On("SetQAStatus", po, models.QAStatusPassed, "", 9).
		Return(apperrors.Conflict("order changed concurrently, reload and retry"))

	_, err := svc.SubmitQA("PO-1001", "pass", "", 9)
	require.Error(t, err)
	assert.True(t, apperrors.IsKind(err, apperrors.KindConflict))
	assert.Empty(t, m.sink.events)
}

func TestCreateReceiptBlockedUntilQAPassed(t *testing.T) {
	for _, qa := range []string{models.QAStatusPending, models.QAStatusRejected} {
		svc, m := newTestService(OverReceiptFlag)
		po := receivablePO()
		po.QaStatus = qa
		m.pos.On("GetByNumber", "PO-1001").Return(po, nil)

		_, err := svc.CreateReceipt("PO-1001", ReceiptHeader{ReceiveDate: "2026-08-31"},
			[]ReceiptLine{{ItemCode: "ITM-1", QtyReceived: 5, StoreID: 1}}, 9)
		require.Error(t, err, qa)

		appErr, ok := apperrors.As(err)
		require.True(t, ok)
		assert.Equal(t, apperrors.CodeQANotPassed, appErr.Code)
		m.receipts.AssertNotCalled(t, "Persist", mock.Anything, mock.Anything, mock.Anything)
	}
}

func TestCreateReceiptEmpty(t *testing.T) {
	svc, m := newTestService(OverReceiptFlag)
	m.pos.On("GetByNumber", "PO-1001").Return(receivablePO(), nil)

	_, err := svc.CreateReceipt("PO-1001", ReceiptHeader{ReceiveDate: "2026-08-31"},
		[]ReceiptLine{{ItemCode: "ITM-1", QtyReceived: 0}}, 9)
	require.Error(t, err)

	appErr, ok := apperrors.As(err)
	require.True(t, ok)
	assert.Equal(t, apperrors.CodeEmptyReceipt, appErr.Code)
	m.receipts.AssertNotCalled(t, "Persist", mock.Anything, mock.Anything, mock.Anything)
}

func TestCreateReceiptReportsEveryFailingLine(t *testing.T) {
	svc, m := newTestService(OverReceiptFlag)
	m.pos.On("GetByNumber", "PO-1001").Return(receivablePO(), nil)
	m.items.On("GetByCode", "ITM-1").Return(catalogued("ITM-1", ""), nil)
	m.items.On("GetByBarcode", "0000000000000").Return(nil, apperrors.NotFound("item"))

	lines := []ReceiptLine{
		// Store missing, unresolvable without identity, negative quantity.
		{ItemCode: "ITM-1", QtyReceived: 5},
		{Barcode: "0000000000000", QtyReceived: 2},
		{ItemCode: "ITM-2", QtyReceived: -1},
	}
	_, err := svc.CreateReceipt("PO-1001", ReceiptHeader{ReceiveDate: "2026-08-31"}, lines, 9)
	require.Error(t, err)

	var lineErrs *apperrors.LineErrors
	require.ErrorAs(t, err, &lineErrs)
	require.Len(t, lineErrs.Errors, 3)
	assert.Equal(t, "store_id", lineErrs.Errors[0].Field)
	assert.Equal(t, apperrors.CodeMissingItemIdentity, lineErrs.Errors[1].Code)
	assert.Equal(t, "qty_received", lineErrs.Errors[2].Field)

	// No mutation when any line fails.
	m.receipts.AssertNotCalled(t, "Persist", mock.Anything, mock.Anything, mock.Anything)
	assert.Empty(t, m.sink.events)
}

func TestCreateReceiptHappyPathPartial(t *testing.T) {
	svc, m := newTestService(OverReceiptFlag)
	po := receivablePO()

	m.pos.On("GetByNumber", "PO-1001").Return(po, nil)
	m.items.On("GetByCode", "ITM-1").Return(catalogued("ITM-1", ""), nil)
	m.locations.On("Resolve", uint(1), (*uint)(nil), (*uint)(nil), (*uint)(nil)).
		Return(&models.LocationPath{}, nil)
	m.vendors.On("GetByID", uint(3)).Return(&models.Vendor{VendorName: "Acme Supply"}, nil)
	m.receipts.On("Persist", po, mock.AnythingOfType("*models.GrnHeader"), 9).
		Run(func(args mock.Arguments) {
			args.Get(1).(*models.GrnHeader).ReceiveNo = "GRN2608310001"
		}).Return(nil)

	header := ReceiptHeader{
		ReceiveDate:  "2026-08-31",
		Discount:     decimal.NewFromInt(10),
		OtherCharges: decimal.NewFromInt(20),
	}
	lines := []ReceiptLine{{ItemCode: "ITM-1", QtyReceived: 6, StoreID: 1}}

	grn, err := svc.CreateReceipt("PO-1001", header, lines, 9)
	require.NoError(t, err)

	// 6 received of 10 ordered: partial, never silently completed.
	assert.Equal(t, models.GRNStatusPartial, grn.Status)
	assert.Equal(t, "Acme Supply", grn.VendorName)
	assert.Equal(t, "USD", grn.Currency)
	require.Len(t, grn.Details, 1)

	detail := grn.Details[0]
	assert.True(t, detail.HasInventoryMatch)
	require.NotNil(t, detail.QtyOrdered)
	assert.Equal(t, 10, *detail.QtyOrdered)
	assert.False(t, detail.OverReceipt)
	// Price falls back to the order line: 6 * 100 - 10 + 20.
	assert.True(t, grn.NetAmount.Equal(decimal.NewFromInt(610)), grn.NetAmount.String())

	require.Len(t, m.sink.events, 1)
	assert.Equal(t, "grn_created", m.sink.events[0].Type)
	assert.Equal(t, "GRN2608310001", m.sink.events[0].DocumentID)
	m.receipts.AssertExpectations(t)
}

func TestCreateReceiptCompleteWithAdHocLine(t *testing.T) {
	svc, m := newTestService(OverReceiptFlag)
	po := receivablePO()

	m.pos.On("GetByNumber", "PO-1001").Return(po, nil)
	m.items.On("GetByCode", "ITM-1").Return(catalogued("ITM-1", ""), nil)
	m.items.On("GetByCode", "NEW-9").Return(nil, apperrors.NotFound("item"))
	m.locations.On("Resolve", uint(1), (*uint)(nil), (*uint)(nil), (*uint)(nil)).
		Return(&models.LocationPath{}, nil)
	m.vendors.On("GetByID", uint(3)).Return(&models.Vendor{VendorName: "Acme Supply"}, nil)
	m.receipts.On("Persist", po, mock.AnythingOfType("*models.GrnHeader"), 9).Return(nil)

	price := decimal.NewFromInt(7)
	lines := []ReceiptLine{
		{ItemCode: "ITM-1", QtyReceived: 10, StoreID: 1},
		// Not on the order and not catalogued: accepted with its own identity.
		{ItemCode: "NEW-9", ItemName: "Sample part", QtyReceived: 3, UnitPrice: &price},
	}

	grn, err := svc.CreateReceipt("PO-1001", ReceiptHeader{ReceiveDate: "2026-08-31"}, lines, 9)
	require.NoError(t, err)

	// The ad-hoc line has no ordered quantity, so it cannot cause a
	// shortfall; the catalogued line is fully received.
	assert.Equal(t, models.GRNStatusComplete, grn.Status)
	require.Len(t, grn.Details, 2)
	assert.False(t, grn.Details[1].HasInventoryMatch)
	assert.Nil(t, grn.Details[1].QtyOrdered)
	assert.True(t, grn.Details[1].Amount.Equal(decimal.NewFromInt(21)))
	// Ad-hoc lines skip the location check.
	m.locations.AssertNumberOfCalls(t, "Resolve", 1)
}

func TestOverReceiptFlagPolicy(t *testing.T) {
	svc, m := newTestService(OverReceiptFlag)
	po := receivablePO()

	m.pos.On("GetByNumber", "PO-1001").Return(po, nil)
	m.items.On("GetByCode", "ITM-2").Return(catalogued("ITM-2", ""), nil)
	m.locations.On("Resolve", uint(1), (*uint)(nil), (*uint)(nil), (*uint)(nil)).
		Return(&models.LocationPath{}, nil)
	m.vendors.On("GetByID", uint(3)).Return(&models.Vendor{VendorName: "Acme Supply"}, nil)
	m.receipts.On("Persist", po, mock.AnythingOfType("*models.GrnHeader"), 9).Return(nil)

	// 8 received of 5 ordered.
	grn, err := svc.CreateReceipt("PO-1001", ReceiptHeader{ReceiveDate: "2026-08-31"},
		[]ReceiptLine{{ItemCode: "ITM-2", QtyReceived: 8, StoreID: 1}}, 9)
	require.NoError(t, err)
	require.Len(t, grn.Details, 1)
	assert.True(t, grn.Details[0].OverReceipt)
	assert.Equal(t, 8, grn.Details[0].QtyReceived)
}

func TestOverReceiptRejectPolicy(t *testing.T) {
	svc, m := newTestService(OverReceiptReject)
	po := receivablePO()

	m.pos.On("GetByNumber", "PO-1001").Return(po, nil)
	m.items.On("GetByCode", "ITM-2").Return(catalogued("ITM-2", ""), nil)

	_, err := svc.CreateReceipt("PO-1001", ReceiptHeader{ReceiveDate: "2026-08-31"},
		[]ReceiptLine{{ItemCode: "ITM-2", QtyReceived: 8, StoreID: 1}}, 9)
	require.Error(t, err)

	var lineErrs *apperrors.LineErrors
	require.ErrorAs(t, err, &lineErrs)
	require.Len(t, lineErrs.Errors, 1)
	assert.Equal(t, apperrors.CodeOverReceipt, lineErrs.Errors[0].Code)
	m.receipts.AssertNotCalled(t, "Persist", mock.Anything, mock.Anything, mock.Anything)
}

func TestBarcodeWinsOverItemCode(t *testing.T) {
	svc, m := newTestService(OverReceiptFlag)
	po := receivablePO()

	m.pos.On("GetByNumber", "PO-1001").Return(po, nil)
	m.items.On("GetByBarcode", "8991002").Return(catalogued("ITM-1", "8991002"), nil)
	m.locations.On("Resolve", uint(1), (*uint)(nil), (*uint)(nil), (*uint)(nil)).
		Return(&models.LocationPath{}, nil)
	m.vendors.On("GetByID", uint(3)).Return(&models.Vendor{VendorName: "Acme Supply"}, nil)
	m.receipts.On("Persist", po, mock.AnythingOfType("*models.GrnHeader"), 9).Return(nil)

	grn, err := svc.CreateReceipt("PO-1001", ReceiptHeader{ReceiveDate: "2026-08-31"},
		[]ReceiptLine{{Barcode: "8991002", ItemCode: "ignored", QtyReceived: 10, StoreID: 1}}, 9)
	require.NoError(t, err)
	assert.Equal(t, "ITM-1", grn.Details[0].ItemCode)
	m.items.AssertNotCalled(t, "GetByCode", mock.Anything)
}

func TestVendorLookupFailureModes(t *testing.T) {
	// Missing vendor row is tolerated, the receipt still posts.
	svc, m := newTestService(OverReceiptFlag)
	po := receivablePO()
	m.pos.On("GetByNumber", "PO-1001").Return(po, nil)
	m.items.On("GetByCode", "ITM-1").Return(catalogued("ITM-1", ""), nil)
	m.locations.On("Resolve", uint(1), (*uint)(nil), (*uint)(nil), (*uint)(nil)).
		Return(&models.LocationPath{}, nil)
	m.vendors.On("GetByID", uint(3)).Return(nil, apperrors.NotFound("vendor"))
	m.receipts.On("Persist", po, mock.AnythingOfType("*models.GrnHeader"), 9).Return(nil)

	grn, err := svc.CreateReceipt("PO-1001", ReceiptHeader{ReceiveDate: "2026-08-31"},
		[]ReceiptLine{{ItemCode: "ITM-1", QtyReceived: 10, StoreID: 1}}, 9)
	require.NoError(t, err)
	assert.Empty(t, grn.VendorName)

	// A directory outage is not.
	svc, m = newTestService(OverReceiptFlag)
	po = receivablePO()
	m.pos.On("GetByNumber", "PO-1001").Return(po, nil)
	m.items.On("GetByCode", "ITM-1").Return(catalogued("ITM-1", ""), nil)
	m.locations.On("Resolve", uint(1), (*uint)(nil), (*uint)(nil), (*uint)(nil)).
		Return(&models.LocationPath{}, nil)
	m.vendors.On("GetByID", uint(3)).Return(nil, errors.New("dial tcp: connection refused"))

	_, err = svc.CreateReceipt("PO-1001", ReceiptHeader{ReceiveDate: "2026-08-31"},
		[]ReceiptLine{{ItemCode: "ITM-1", QtyReceived: 10, StoreID: 1}}, 9)
	require.Error(t, err)
	assert.True(t, apperrors.IsKind(err, apperrors.KindDependency))
	m.receipts.AssertNotCalled(t, "Persist", mock.Anything, mock.Anything, mock.Anything)
}

func TestItemLookupOutageAbortsReceipt(t *testing.T) {
	// An item-master outage must fail the receipt, never demote a
	// catalogued line to ad-hoc; otherwise its quantity would skip the
	// ledger without anyone noticing.
	svc, m := newTestService(OverReceiptFlag)
	po := receivablePO()

	m.pos.On("GetByNumber", "PO-1001").Return(po, nil)
	m.items.On("GetByCode", "ITM-1").Return(nil, errors.New("driver: bad connection"))

	_, err := svc.CreateReceipt("PO-1001", ReceiptHeader{ReceiveDate: "2026-08-31"},
		[]ReceiptLine{{ItemCode: "ITM-1", ItemName: "Widget ITM-1", QtyReceived: 5, StoreID: 1}}, 9)
	require.Error(t, err)
	assert.True(t, apperrors.IsKind(err, apperrors.KindDependency))
	m.receipts.AssertNotCalled(t, "Persist", mock.Anything, mock.Anything, mock.Anything)

	// Same for the barcode leg of the pipeline.
	svc, m = newTestService(OverReceiptFlag)
	po = receivablePO()
	m.pos.On("GetByNumber", "PO-1001").Return(po, nil)
	m.items.On("GetByBarcode", "8991002").Return(nil, errors.New("driver: bad connection"))

	_, err = svc.CreateReceipt("PO-1001", ReceiptHeader{ReceiveDate: "2026-08-31"},
		[]ReceiptLine{{Barcode: "8991002", ItemCode: "ITM-1", ItemName: "Widget ITM-1", QtyReceived: 5, StoreID: 1}}, 9)
	require.Error(t, err)
	assert.True(t, apperrors.IsKind(err, apperrors.KindDependency))
	m.items.AssertNotCalled(t, "GetByCode", mock.Anything)
	m.receipts.AssertNotCalled(t, "Persist", mock.Anything, mock.Anything, mock.Anything)
}

func TestCreateReceiptPersistConflict(t *testing.T) {
	svc, m := newTestService(OverReceiptFlag)
	po := receivablePO()

	m.pos.On("GetByNumber", "PO-1001").Return(po, nil)
	m.items.On("GetByCode", "ITM-1").Return(catalogued("ITM-1", ""), nil)
	m.locations.On("Resolve", uint(1), (*uint)(nil), (*uint)(nil), (*uint)(nil)).
		Return(&models.LocationPath{}, nil)
	m.vendors.On("GetByID", uint(3)).Return(&models.Vendor{VendorName: "Acme Supply"}, nil)
	m.receipts.On("Persist", po, mock.AnythingOfType("*models.GrnHeader"), 9).
		Return(apperrors.Conflict("order changed concurrently, reload and retry"))

	_, err := svc.CreateReceipt("PO-1001", ReceiptHeader{ReceiveDate: "2026-08-31"},
		[]ReceiptLine{{ItemCode: "ITM-1", QtyReceived: 10, StoreID: 1}}, 9)
	require.Error(t, err)
	assert.True(t, apperrors.IsKind(err, apperrors.KindConflict))
	assert.Empty(t, m.sink.events)
}

func TestHandOffToProcurement(t *testing.T) {
	svc, m := newTestService(OverReceiptFlag)
	po := receivablePO()
	po.Status = models.POStatusGRNCreated

	m.pos.On("GetByNumber", "PO-1001").Return(po, nil)
	m.pos.On("Advance", po, models.POStatusSentToProcurement, 9).Return(nil)

	_, err := svc.HandOffToProcurement("PO-1001", 9)
	require.NoError(t, err)
	require.Len(t, m.sink.events, 1)
	assert.Equal(t, "po_sent_to_procurement", m.sink.events[0].Type)
	m.pos.AssertExpectations(t)
}

func TestHandOffBeforeReceiptRejected(t *testing.T) {
	svc, m := newTestService(OverReceiptFlag)
	po := receivablePO() // still sent_to_store

	m.pos.On("GetByNumber", "PO-1001").Return(po, nil)

	_, err := svc.HandOffToProcurement("PO-1001", 9)
	require.Error(t, err)
	assert.True(t, apperrors.IsKind(err, apperrors.KindInvalidState))
	m.pos.AssertNotCalled(t, "Advance", mock.Anything, mock.Anything, mock.Anything)
}

func TestReverseReceipt(t *testing.T) {
	svc, m := newTestService(OverReceiptFlag)
	m.receipts.On("Reverse", "GRN2608310001", 9).
		Return(&models.GrnHeader{ReceiveNo: "GRV2608310001", Status: models.GRNStatusReversed}, nil)

	reversal, err := svc.ReverseReceipt("GRN2608310001", 9)
	require.NoError(t, err)
	assert.Equal(t, "GRV2608310001", reversal.ReceiveNo)
	require.Len(t, m.sink.events, 1)
	assert.Equal(t, "grn_reversed", m.sink.events[0].Type)
}
