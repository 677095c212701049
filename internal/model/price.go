package model

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

// ErrPriceTableInvalid is returned when a price table carries a
// negative unit price.  Prices of zero are allowed (free screenings).
var ErrPriceTableInvalid = errors.New("price table contains a negative price")

// PriceTable holds the per-class ticket unit prices of one showtime.
// The three classes always have an entry; a lookup for anything else
// is a caller bug and fails loudly instead of defaulting to zero.
//
// Fields:
//
//	Standard – unit price for ClassStandard seats.
//	Premium  – unit price for ClassPremium seats.
//	Vip      – unit price for ClassVip seats.
type PriceTable struct {
	Standard decimal.Decimal `json:"standard"`
	Premium  decimal.Decimal `json:"premium"`
	Vip      decimal.Decimal `json:"vip"`
}

// Validate checks the non-negativity invariant on all three prices.
func (t PriceTable) Validate() error {
	if t.Standard.IsNegative() || t.Premium.IsNegative() || t.Vip.IsNegative() {
		return ErrPriceTableInvalid
	}
	return nil
}

// PriceFor looks up the unit price for a seat class.  An unknown class
// cannot occur through layouts built by this module; if it does, the
// error signals a contract violation upstream.
func (t PriceTable) PriceFor(class SeatClass) (decimal.Decimal, error) {
	switch class {
	case ClassStandard:
		return t.Standard, nil
	case ClassPremium:
		return t.Premium, nil
	case ClassVip:
		return t.Vip, nil
	}
	return decimal.Decimal{}, fmt.Errorf("no price for seat class %q", class)
}

// AddOnLine is one purchasable non-ticket item (a snack) on the order.
// A quantity of zero means the line is absent from the order rather
// than present with zero value; the pricing engine treats both the
// same way.
//
// Fields:
//
//	ID        – snack catalog identifier.
//	Name      – display name, carried through for the order summary.
//	UnitPrice – non-negative price per unit.
//	Quantity  – non-negative count of units.
type AddOnLine struct {
	ID        uint64          `json:"id"`
	Name      string          `json:"name"`
	UnitPrice decimal.Decimal `json:"unit_price"`
	Quantity  int             `json:"quantity"`
}
