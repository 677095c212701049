// Package pricing turns a seat selection and a list of add-on lines
// into a final payable order.  Everything here is a pure computation
// over its inputs: identical inputs always produce identical totals,
// and amounts are exact decimals so no rounding happens before
// presentation.
package pricing

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/aframi/cinema-storefront/internal/model"
)

// ServiceFeeRate is the fixed surcharge applied to the combined
// ticket + add-on subtotal.  The rate is not configurable.
var ServiceFeeRate = decimal.New(10, -2) // 0.10

// ComputeOrderTotal prices the selected seats against the showtime's
// price table, adds the add-on lines, and applies the service fee.
//
// Seats are trusted to be set-deduplicated by the selection layer; no
// deduplication happens here.  Add-on lines with quantity zero (or
// negative, which the cart layer never stores) contribute nothing and
// are omitted from the resulting order.  Empty inputs are valid and
// produce an all-zero order.
//
// A seat class missing from the price table is a contract violation
// and returns an error instead of silently pricing the seat at zero.
func ComputeOrderTotal(seats []model.Seat, table model.PriceTable, addOns []model.AddOnLine) (model.Order, error) {
	if err := table.Validate(); err != nil {
		return model.Order{}, err
	}

	tickets := decimal.Zero
	for _, seat := range seats {
		price, err := table.PriceFor(seat.Class)
		if err != nil {
			return model.Order{}, fmt.Errorf("seat %s: %w", seat.ID, err)
		}
		tickets = tickets.Add(price)
	}

	lines := make([]model.AddOnLine, 0, len(addOns))
	addOnTotal := decimal.Zero
	for _, line := range addOns {
		if line.Quantity <= 0 {
			continue
		}
		if line.UnitPrice.IsNegative() {
			return model.Order{}, fmt.Errorf("add-on %d has negative unit price", line.ID)
		}
		addOnTotal = addOnTotal.Add(line.UnitPrice.Mul(decimal.NewFromInt(int64(line.Quantity))))
		lines = append(lines, line)
	}

	subtotal := tickets.Add(addOnTotal)
	fee := subtotal.Mul(ServiceFeeRate)

	return model.Order{
		Seats:           seats,
		AddOns:          lines,
		TicketsSubtotal: tickets,
		AddOnsSubtotal:  addOnTotal,
		Subtotal:        subtotal,
		ServiceFee:      fee,
		GrandTotal:      subtotal.Add(fee),
	}, nil
}
