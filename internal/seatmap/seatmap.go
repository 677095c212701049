// Package seatmap deterministically constructs the seat layout of a
// theater screen.  Given the screen geometry and the set of seat ids
// already sold for a showtime, BuildLayout produces the full row-major
// seat grid with classes assigned by row band and sold seats marked
// booked.  The package holds no state of its own.
package seatmap

import (
	"fmt"

	"github.com/aframi/cinema-storefront/internal/model"
)

// MaxRows bounds the row count to the double-letter label space
// ("A" … "ZZ").  Labels extend past "Z" in base-26 rather than being
// rejected, but a grid deeper than 702 rows is a caller bug.
const MaxRows = 702

// vipRows and premiumRows define the class bands counted from the last
// row backward: the final vipRows rows are vip, the premiumRows rows in
// front of them are premium, everything earlier is standard.
const (
	vipRows     = 2
	premiumRows = 2
)

// BuildLayout constructs the seat grid for a screen.  Seats are
// ordered row-major, columns numbered 1-based left to right, and any
// seat whose id appears in soldSeatIDs starts out booked.  Geometry
// outside the contract (rows or seatsPerRow < 1, rows beyond the
// label space) is rejected rather than clamped so that upstream bugs
// surface immediately.
//
// Calling BuildLayout twice with identical inputs yields identical
// layouts; nothing here depends on time, randomness or map order.
func BuildLayout(rows, seatsPerRow int, soldSeatIDs map[string]struct{}) (model.ScreenLayout, error) {
	if rows < 1 {
		return model.ScreenLayout{}, fmt.Errorf("invalid row count %d", rows)
	}
	if seatsPerRow < 1 {
		return model.ScreenLayout{}, fmt.Errorf("invalid seats per row %d", seatsPerRow)
	}
	if rows > MaxRows {
		return model.ScreenLayout{}, fmt.Errorf("row count %d exceeds label space (max %d)", rows, MaxRows)
	}

	seats := make([]model.Seat, 0, rows*seatsPerRow)
	for r := 0; r < rows; r++ {
		label := RowLabel(r)
		class := classForRow(r, rows)
		for n := 1; n <= seatsPerRow; n++ {
			id := model.SeatID(label, n)
			status := model.StatusAvailable
			if _, sold := soldSeatIDs[id]; sold {
				status = model.StatusBooked
			}
			seats = append(seats, model.Seat{
				ID:     id,
				Row:    label,
				Number: n,
				Class:  class,
				Status: status,
			})
		}
	}
	return model.NewScreenLayout(rows, seatsPerRow, seats), nil
}

// classForRow assigns the pricing class for the zero-based row index r
// in a grid of rows total rows.  Evaluation order matters when the
// grid is shallow enough for bands to overlap: the vip band claims its
// rows first, then premium, then standard.  A 3-row grid therefore
// comes out premium/vip/vip.
func classForRow(r, rows int) model.SeatClass {
	switch {
	case r >= rows-vipRows:
		return model.ClassVip
	case r >= rows-(vipRows+premiumRows):
		return model.ClassPremium
	default:
		return model.ClassStandard
	}
}

// RowLabel converts a zero-based row index to its alphabetical label:
// 0 → "A", 25 → "Z", 26 → "AA", 27 → "AB" and so on.
func RowLabel(i int) string {
	if i < 0 {
		return ""
	}
	res := []rune{}
	for {
		rem := i % 26
		res = append(res, rune('A'+rem))
		i = i/26 - 1
		if i < 0 {
			break
		}
	}
	for j, k := 0, len(res)-1; j < k; j, k = j+1, k-1 {
		res[j], res[k] = res[k], res[j]
	}
	return string(res)
}

// RowIndex converts a row label back into its zero-based index.  It
// accepts only ASCII letters and reports false for anything else.
func RowIndex(label string) (int, bool) {
	if label == "" {
		return -1, false
	}
	n := 0
	for i := 0; i < len(label); i++ {
		ch := label[i]
		if ch >= 'a' && ch <= 'z' {
			ch -= 32
		}
		if ch < 'A' || ch > 'Z' {
			return -1, false
		}
		n = n*26 + int(ch-'A'+1)
	}
	return n - 1, true
}
