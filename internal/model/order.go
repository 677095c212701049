package model

import "github.com/shopspring/decimal"

// Order is the live projection of the shopper's current selection and
// add-on lines, priced by the pricing engine.  It has no persistent
// identity in this service: it is recomputed from its inputs on every
// change and exists only until it is handed to the external
// checkout/payment collaborator.
//
// Fields:
//
//	Seats           – the selected seats, each with Status = selected.
//	AddOns          – add-on lines with quantity > 0.
//	TicketsSubtotal – sum of per-class unit prices over Seats.
//	AddOnsSubtotal  – sum of unit price × quantity over AddOns.
//	Subtotal        – TicketsSubtotal + AddOnsSubtotal.
//	ServiceFee      – Subtotal × the fixed service fee rate.
//	GrandTotal      – Subtotal + ServiceFee.
//
// The monetary fields are derived, never cached: callers must not hold
// an Order across mutations of the selection or add-on list.
type Order struct {
	Seats           []Seat          `json:"seats"`
	AddOns          []AddOnLine     `json:"add_ons"`
	TicketsSubtotal decimal.Decimal `json:"tickets_subtotal"`
	AddOnsSubtotal  decimal.Decimal `json:"add_ons_subtotal"`
	Subtotal        decimal.Decimal `json:"subtotal"`
	ServiceFee      decimal.Decimal `json:"service_fee"`
	GrandTotal      decimal.Decimal `json:"grand_total"`
}
