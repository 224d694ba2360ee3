package main

import (
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseFeedGroupsLinesByOrder(t *testing.T) {
	feed := strings.Join([]string{
		"order_no,vendor_id,item_code,description,uom,quantity,unit_price,expected_date",
		"PO-2001,3,ITM-1,A4 paper ream,ream,10,4.50,2026-09-05",
		"PO-2001,3,ITM-2,Stapler,pcs,2,12.00,2026-09-05",
		"PO-2002,5,ITM-1,A4 paper ream,ream,1,4.50,2026-09-10",
	}, "\n")

	orders, err := parseFeed(strings.NewReader(feed))
	require.NoError(t, err)
	require.Len(t, orders, 2)

	first := orders[0]
	assert.Equal(t, "PO-2001", first.OrderNo)
	assert.Equal(t, uint(3), first.VendorID)
	require.Len(t, first.Items, 2)
	assert.Equal(t, 10, first.Items[0].Quantity)
	// 10 * 4.50 + 2 * 12.00
	assert.True(t, first.TotalAmount.Equal(decimal.NewFromFloat(69.00)), first.TotalAmount.String())

	second := orders[1]
	assert.Equal(t, "PO-2002", second.OrderNo)
	assert.Equal(t, "2026-09-10", second.ExpectedDeliveryDate)
}

func TestParseFeedBadRow(t *testing.T) {
	feed := "PO-2001,3,ITM-1,A4 paper ream,ream,ten,4.50,2026-09-05\n"
	_, err := parseFeed(strings.NewReader(feed))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "bad quantity")
}

func TestParseFeedSkipsBlankOrderNumbers(t *testing.T) {
	feed := ",3,ITM-1,A4 paper ream,ream,1,4.50,2026-09-05\n"
	orders, err := parseFeed(strings.NewReader(feed))
	require.NoError(t, err)
	assert.Empty(t, orders)
}
