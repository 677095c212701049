// Package queue defines message payloads exchanged over the message broker.
package queue

// OrderSeat is one ticket line inside an OrderPlacedEvent.
type OrderSeat struct {
	ID    string `json:"id"`
	Class string `json:"class"`
	Price string `json:"price"`
}

// OrderAddOn is one snack line inside an OrderPlacedEvent.
type OrderAddOn struct {
	ID        uint64 `json:"id"`
	Name      string `json:"name"`
	UnitPrice string `json:"unit_price"`
	Quantity  int    `json:"quantity"`
}

// OrderPlacedEvent is published when a shopper confirms their order.
// It carries the fully priced order verbatim so the downstream
// checkout/payment collaborator never has to recompute or query this
// service.  Monetary amounts are decimal strings to survive brokers
// and consumers without float drift.
type OrderPlacedEvent struct {
	SessionID       string       `json:"session_id"`
	ShowtimeID      uint64       `json:"showtime_id"`
	MovieTitle      string       `json:"movie_title"`
	TheaterName     string       `json:"theater_name"`
	ScreenName      string       `json:"screen_name"`
	StartsAt        string       `json:"starts_at"`
	Seats           []OrderSeat  `json:"seats"`
	AddOns          []OrderAddOn `json:"add_ons"`
	TicketsSubtotal string       `json:"tickets_subtotal"`
	AddOnsSubtotal  string       `json:"add_ons_subtotal"`
	Subtotal        string       `json:"subtotal"`
	ServiceFee      string       `json:"service_fee"`
	GrandTotal      string       `json:"grand_total"`
	PlacedAt        string       `json:"placed_at"`
}
