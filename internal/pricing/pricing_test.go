package pricing

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aframi/cinema-storefront/internal/model"
)

func d(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func testTable() model.PriceTable {
	return model.PriceTable{
		Standard: d("12"),
		Premium:  d("16"),
		Vip:      d("25"),
	}
}

func TestComputeOrderTotal_WorkedExample(t *testing.T) {
	seats := []model.Seat{
		{ID: "K1", Row: "K", Number: 1, Class: model.ClassVip, Status: model.StatusSelected},
		{ID: "K2", Row: "K", Number: 2, Class: model.ClassVip, Status: model.StatusSelected},
		{ID: "A3", Row: "A", Number: 3, Class: model.ClassStandard, Status: model.StatusSelected},
	}
	addOns := []model.AddOnLine{
		{ID: 1, Name: "Combo", UnitPrice: d("400"), Quantity: 1},
		{ID: 2, Name: "Soda", UnitPrice: d("250"), Quantity: 2},
	}

	order, err := ComputeOrderTotal(seats, testTable(), addOns)
	require.NoError(t, err)

	assert.True(t, order.TicketsSubtotal.Equal(d("62")), "tickets = %s", order.TicketsSubtotal)
	assert.True(t, order.AddOnsSubtotal.Equal(d("900")), "add-ons = %s", order.AddOnsSubtotal)
	assert.True(t, order.Subtotal.Equal(d("962")), "subtotal = %s", order.Subtotal)
	assert.True(t, order.ServiceFee.Equal(d("96.2")), "fee = %s", order.ServiceFee)
	assert.True(t, order.GrandTotal.Equal(d("1058.2")), "total = %s", order.GrandTotal)
	assert.Len(t, order.Seats, 3)
	assert.Len(t, order.AddOns, 2)
}

func TestComputeOrderTotal_EmptyOrderIsZero(t *testing.T) {
	order, err := ComputeOrderTotal(nil, testTable(), nil)
	require.NoError(t, err)

	assert.True(t, order.Subtotal.IsZero())
	assert.True(t, order.ServiceFee.IsZero())
	assert.True(t, order.GrandTotal.IsZero())
	assert.Empty(t, order.Seats)
	assert.Empty(t, order.AddOns)
}

func TestComputeOrderTotal_ZeroQuantityLinesExcluded(t *testing.T) {
	addOns := []model.AddOnLine{
		{ID: 1, Name: "Popcorn", UnitPrice: d("300"), Quantity: 0},
		{ID: 2, Name: "Nachos", UnitPrice: d("350"), Quantity: 1},
	}

	order, err := ComputeOrderTotal(nil, testTable(), addOns)
	require.NoError(t, err)

	require.Len(t, order.AddOns, 1)
	assert.Equal(t, uint64(2), order.AddOns[0].ID)
	assert.True(t, order.AddOnsSubtotal.Equal(d("350")))
}

func TestComputeOrderTotal_FeeProportional(t *testing.T) {
	cases := []struct {
		name     string
		standard string
		count    int
	}{
		{"single seat", "12.50", 1},
		{"several seats", "9.99", 7},
		{"free screening", "0", 3},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			table := model.PriceTable{Standard: d(tc.standard), Premium: d("1"), Vip: d("1")}
			seats := make([]model.Seat, tc.count)
			for i := range seats {
				seats[i] = model.Seat{ID: model.SeatID("A", i+1), Class: model.ClassStandard}
			}

			order, err := ComputeOrderTotal(seats, table, nil)
			require.NoError(t, err)

			wantFee := order.Subtotal.Mul(d("0.1"))
			assert.True(t, order.ServiceFee.Equal(wantFee))
			assert.True(t, order.GrandTotal.Equal(order.Subtotal.Mul(d("1.1"))))
		})
	}
}

func TestComputeOrderTotal_Deterministic(t *testing.T) {
	seats := []model.Seat{
		{ID: "A1", Class: model.ClassStandard},
		{ID: "J1", Class: model.ClassPremium},
	}
	addOns := []model.AddOnLine{{ID: 1, UnitPrice: d("120.75"), Quantity: 3}}

	first, err := ComputeOrderTotal(seats, testTable(), addOns)
	require.NoError(t, err)
	second, err := ComputeOrderTotal(seats, testTable(), addOns)
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestComputeOrderTotal_UnknownClassFailsLoudly(t *testing.T) {
	seats := []model.Seat{{ID: "A1", Class: model.SeatClass("recliner")}}

	_, err := ComputeOrderTotal(seats, testTable(), nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "A1")
}

func TestComputeOrderTotal_RejectsNegativePrices(t *testing.T) {
	table := model.PriceTable{Standard: d("-1"), Premium: d("16"), Vip: d("25")}
	_, err := ComputeOrderTotal(nil, table, nil)
	assert.ErrorIs(t, err, model.ErrPriceTableInvalid)

	addOns := []model.AddOnLine{{ID: 9, UnitPrice: d("-5"), Quantity: 1}}
	_, err = ComputeOrderTotal(nil, testTable(), addOns)
	assert.Error(t, err)
}

func TestComputeOrderTotal_NoPrematureRounding(t *testing.T) {
	// 3 × 0.10 with a 10% fee: exact decimals keep the total at 0.33,
	// where float math would drift.
	table := model.PriceTable{Standard: d("0.10"), Premium: d("0"), Vip: d("0")}
	seats := []model.Seat{
		{ID: "A1", Class: model.ClassStandard},
		{ID: "A2", Class: model.ClassStandard},
		{ID: "A3", Class: model.ClassStandard},
	}

	order, err := ComputeOrderTotal(seats, table, nil)
	require.NoError(t, err)

	assert.True(t, order.Subtotal.Equal(d("0.30")))
	assert.True(t, order.ServiceFee.Equal(d("0.03")))
	assert.True(t, order.GrandTotal.Equal(d("0.33")))
}
