package usecase

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xavierca1/ligue-crm/internal/entity"
)

func TestNormalizeItemsFromJSONString(t *testing.T) {
	raw := `[{"sku":"A1","name":"Tea","quantity":2,"price":10},{"name":"Cup","amount":"5"}]`

	items := NormalizeItems(raw, "1001", 0)

	require.Len(t, items, 2)
	assert.Equal(t, entity.OrderItem{ProductRef: "A1", ProductName: "Tea", Quantity: 2, UnitPrice: 10}, items[0])
	assert.True(t, strings.HasPrefix(items[1].ProductRef, "item-"))
	assert.Equal(t, "Cup", items[1].ProductName)
	assert.Equal(t, float64(1), items[1].Quantity)
	assert.Equal(t, float64(5), items[1].UnitPrice)
	assert.Equal(t, 25.0, ComputeTotal(items, 999))
}

func TestNormalizeItemsFromDecodedList(t *testing.T) {
	raw := []any{
		map[string]any{"name": "Tea", "quantity": json.Number("3"), "price": json.Number("1.5")},
		"not an object",
	}

	items := NormalizeItems(raw, "1001", 0)

	require.Len(t, items, 1)
	assert.Equal(t, 4.5, ComputeTotal(items, 0))
}

func TestNormalizeItemsDefaults(t *testing.T) {
	items := NormalizeItems(`{"quantity":0}`, "1001", 0)

	require.Len(t, items, 1)
	assert.Equal(t, placeholderProductName, items[0].ProductName)
	assert.Equal(t, float64(1), items[0].Quantity)
	assert.Equal(t, float64(0), items[0].UnitPrice)
}

func TestNormalizeItemsFallsBackToSyntheticItem(t *testing.T) {
	want := []entity.OrderItem{{ProductRef: "order-1001", ProductName: "Order #1001", Quantity: 1, UnitPrice: 150}}

	for name, raw := range map[string]any{
		"absent":       nil,
		"blank":        "  ",
		"invalid json": "not json",
		"empty list":   "[]",
		"list of junk": []any{1, "x"},
	} {
		t.Run(name, func(t *testing.T) {
			assert.Equal(t, want, NormalizeItems(raw, "1001", 150))
		})
	}
}

func TestComputeTotalFallsBackWhenSumIsZero(t *testing.T) {
	items := []entity.OrderItem{{Quantity: 1, UnitPrice: 0}}
	assert.Equal(t, 150.0, ComputeTotal(items, 150))
	assert.Equal(t, 0.3, ComputeTotal([]entity.OrderItem{{Quantity: 3, UnitPrice: 0.1}}, 0))
}

func TestMapPaymentStatus(t *testing.T) {
	assert.Equal(t, entity.PaymentStatusPaid, MapPaymentStatus("paid"))
	assert.Equal(t, entity.PaymentStatusPaid, MapPaymentStatus(" PAID "))
	assert.Equal(t, entity.PaymentStatusNotPaid, MapPaymentStatus("pending"))
	assert.Equal(t, entity.PaymentStatusNotPaid, MapPaymentStatus(""))
}
