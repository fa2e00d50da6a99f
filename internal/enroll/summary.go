package enroll

import (
	"github.com/aerotrain/flightdeck/internal/catalog"
)

// SpotsBadgeFull is the badge text shown for a session with no seats left.
// A full session remains selectable; the badge is the only consequence.
const SpotsBadgeFull = "Complet"

// TotalCost derives the roster cost: selection count times the session's
// per-seat price. Recomputed synchronously on every call; the cardinalities
// involved (tens of members) make caching pointless.
func (s *Selection) TotalCost() float64 {
	sess, err := s.store.Session(s.SessionID)
	if err != nil {
		return 0
	}
	return float64(len(s.selected)) * sess.Price
}

// Summary is the recap rendered on the review step before final
// confirmation.
type Summary struct {
	Course  catalog.Course
	Session catalog.Session
	Members []catalog.Member

	// Total is |Members| × Session.Price.
	Total float64

	// SpotsBadge is SpotsBadgeFull when the session has no seats left,
	// empty otherwise.
	SpotsBadge string

	// OverCapacity mirrors Selection.OverCapacity for display.
	OverCapacity bool
}

// Summary builds the recap from the live selection. It must be derived fresh
// for every render: a recap built before a toggle would otherwise show a
// stale roster and total.
func (s *Selection) Summary() Summary {
	sum := Summary{Total: s.TotalCost(), OverCapacity: s.OverCapacity()}

	if c, err := s.store.Course(s.CourseID); err == nil {
		sum.Course = c
	}
	if sess, err := s.store.Session(s.SessionID); err == nil {
		sum.Session = sess
		if sess.Full() {
			sum.SpotsBadge = SpotsBadgeFull
		}
	}
	for _, id := range s.SelectedIDs() {
		if m, err := s.store.Member(id); err == nil {
			sum.Members = append(sum.Members, m)
		}
	}
	return sum
}
