package model

import (
	"fmt"
	"strconv"
)

// SeatClass is the closed enumeration of seat categories sold by the
// storefront.  The class of a seat determines the ticket unit price
// looked up in a showtime's PriceTable.  A seat's class is assigned
// once during layout construction and never changes afterwards.
type SeatClass string

const (
	ClassStandard SeatClass = "standard" // regular seats in the front block
	ClassPremium  SeatClass = "premium"  // the two rows in front of the vip block
	ClassVip      SeatClass = "vip"      // the last two rows of the screen
)

// Valid reports whether the class is one of the three known values.
func (c SeatClass) Valid() bool {
	switch c {
	case ClassStandard, ClassPremium, ClassVip:
		return true
	}
	return false
}

// String returns the lowercase wire representation of the class.
func (c SeatClass) String() string { return string(c) }

// SeatStatus is the closed enumeration of seat availability states.
// Booked seats are immutable input (pre-sold before the shopper ever
// sees the layout); only available ⇄ selected transitions are driven
// by the shopper.
type SeatStatus string

const (
	StatusAvailable SeatStatus = "available" // free for the shopper to pick
	StatusSelected  SeatStatus = "selected"  // picked by the current shopper
	StatusBooked    SeatStatus = "booked"    // pre-sold, never selectable
)

// Valid reports whether the status is one of the three known values.
func (s SeatStatus) Valid() bool {
	switch s {
	case StatusAvailable, StatusSelected, StatusBooked:
		return true
	}
	return false
}

// String returns the lowercase wire representation of the status.
func (s SeatStatus) String() string { return string(s) }

// Seat is a single addressable seat within a screen layout.
//
// Fields:
//
//	ID     – stable identifier derived from row label + column number ("C7").
//	Row    – alphabetical row label ("A", "B", … "AA" past 26 rows).
//	Number – 1-based column index within the row.
//	Class  – pricing class assigned by row band, fixed at construction.
//	Status – availability state; the only mutable field.
type Seat struct {
	ID     string     `json:"id"`
	Row    string     `json:"row"`
	Number int        `json:"number"`
	Class  SeatClass  `json:"class"`
	Status SeatStatus `json:"status"`
}

// SeatID derives the canonical seat identifier from a row label and a
// 1-based column number.  Row "C", column 7 yields "C7".  Every other
// part of the system treats this string as opaque.
func SeatID(row string, number int) string {
	return row + strconv.Itoa(number)
}

// ScreenLayout is the full ordered seat grid of one theater screen.
// It is constructed fresh whenever the shopper picks a showtime and is
// immutable afterwards apart from individual seat statuses.  Seats are
// stored in row-major order.
type ScreenLayout struct {
	RowCount    int    `json:"rows"`
	SeatsPerRow int    `json:"seats_per_row"`
	Seats       []Seat `json:"seats"`

	index map[string]int // seat id -> position in Seats
}

// NewScreenLayout assembles a layout from an already ordered seat slice
// and builds the id index used for lookups.  It panics on duplicate
// seat ids because that indicates a construction bug, not bad input.
func NewScreenLayout(rowCount, seatsPerRow int, seats []Seat) ScreenLayout {
	idx := make(map[string]int, len(seats))
	for i, s := range seats {
		if _, dup := idx[s.ID]; dup {
			panic(fmt.Sprintf("duplicate seat id %q in layout", s.ID))
		}
		idx[s.ID] = i
	}
	return ScreenLayout{RowCount: rowCount, SeatsPerRow: seatsPerRow, Seats: seats, index: idx}
}

// Seat returns the seat with the given id and whether it exists.
func (l *ScreenLayout) Seat(id string) (Seat, bool) {
	i, ok := l.index[id]
	if !ok {
		return Seat{}, false
	}
	return l.Seats[i], true
}

// Position returns the row-major position of a seat id within the
// layout and whether it exists.  Callers use it to order seat sets
// deterministically (row first, then column).
func (l *ScreenLayout) Position(id string) (int, bool) {
	i, ok := l.index[id]
	return i, ok
}

// ByRow groups the seats of the layout per row, preserving the
// row-major construction order.  Rendering collaborators consume this
// shape directly.
func (l *ScreenLayout) ByRow() [][]Seat {
	out := make([][]Seat, 0, l.RowCount)
	var cur []Seat
	var curRow string
	for _, s := range l.Seats {
		if s.Row != curRow {
			if cur != nil {
				out = append(out, cur)
			}
			cur = make([]Seat, 0, l.SeatsPerRow)
			curRow = s.Row
		}
		cur = append(cur, s)
	}
	if cur != nil {
		out = append(out, cur)
	}
	return out
}
