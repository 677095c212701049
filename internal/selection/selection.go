// Package selection tracks the seats a single shopper has picked
// against one screen layout.  A Selection is a plain value owned by
// the caller; there is no hidden or shared state, so the single-writer
// assumption of a shopping session holds by construction.  Two
// shoppers may still pick the same seat on the same showtime — the
// storefront has no cross-shopper seat lock, and conflicts are left to
// the external checkout step.
package selection

import (
	"sort"

	"github.com/aframi/cinema-storefront/internal/model"
)

// MaxSeats caps how many seats one order may contain.  Reaching the
// cap is not an error: further adds are silently refused, mirroring a
// disabled control in the UI.
const MaxSeats = 10

// Selection is the shopper's current in-progress set of seat ids.
// The zero value is an empty selection ready for use.
type Selection struct {
	ids map[string]struct{}
}

// New returns an empty selection.
func New() Selection {
	return Selection{ids: make(map[string]struct{})}
}

// FromIDs rebuilds a selection from previously stored seat ids,
// dropping any id that is unknown to the layout or booked in it.  The
// cap is enforced during the rebuild as well, so a stored cart can
// never resurrect an oversized or invalid selection.
func FromIDs(stored []string, layout *model.ScreenLayout) Selection {
	s := New()
	for _, id := range stored {
		s.Toggle(id, layout)
	}
	return s
}

// Toggle flips the membership of one seat and reports whether the
// request was accepted:
//
//   - a booked or unknown seat is never added (accepted = false)
//   - an already selected seat is removed (accepted = true)
//   - a new seat is refused when the selection is at MaxSeats
//   - otherwise the seat is added
//
// None of the refusals are errors; callers surface them as UI state.
func (s *Selection) Toggle(seatID string, layout *model.ScreenLayout) bool {
	if s.ids == nil {
		s.ids = make(map[string]struct{})
	}
	seat, ok := layout.Seat(seatID)
	if !ok || seat.Status == model.StatusBooked {
		return false
	}
	if _, selected := s.ids[seatID]; selected {
		delete(s.ids, seatID)
		return true
	}
	if len(s.ids) >= MaxSeats {
		return false
	}
	s.ids[seatID] = struct{}{}
	return true
}

// Contains reports whether the seat id is currently selected.
func (s *Selection) Contains(seatID string) bool {
	_, ok := s.ids[seatID]
	return ok
}

// Len returns the number of selected seats.
func (s *Selection) Len() int { return len(s.ids) }

// IDs returns the selected seat ids sorted in layout order (row first,
// then column).  The slice is freshly allocated on every call.
func (s *Selection) IDs(layout *model.ScreenLayout) []string {
	out := make([]string, 0, len(s.ids))
	for id := range s.ids {
		out = append(out, id)
	}
	sort.Slice(out, func(i, j int) bool {
		pi, _ := layout.Position(out[i])
		pj, _ := layout.Position(out[j])
		return pi < pj
	})
	return out
}

// Seats materializes the selected seat records in layout order, each
// annotated with Status = selected.  This is the list handed to the
// pricing engine and to rendering collaborators after every change.
func (s *Selection) Seats(layout *model.ScreenLayout) []model.Seat {
	ids := s.IDs(layout)
	out := make([]model.Seat, 0, len(ids))
	for _, id := range ids {
		seat, _ := layout.Seat(id)
		seat.Status = model.StatusSelected
		out = append(out, seat)
	}
	return out
}
