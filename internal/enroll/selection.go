// Package enroll implements the training-assignment flow: the four-step
// course → session → team → review pipeline, the selection and conflict
// resolver that keeps double-booked members out of the roster, and the cost
// aggregation shown on the review step.
package enroll

import (
	"github.com/aerotrain/flightdeck/internal/catalog"
)

// Selection is the assignment wizard's accumulated state: the chosen course
// and session plus the set of selected team members. Only membership of the
// selected set matters; insertion order is irrelevant.
type Selection struct {
	store *catalog.Store

	CourseID  string
	SessionID string

	selected map[string]struct{}
}

// NewSelection creates an empty selection over the given catalog.
func NewSelection(store *catalog.Store) *Selection {
	return &Selection{store: store, selected: map[string]struct{}{}}
}

// Store returns the catalog the selection reads from.
func (s *Selection) Store() *catalog.Store { return s.store }

// SetCourse chooses the course. Changing course invalidates the chosen
// session and the roster, since sessions and conflicts are course-specific.
func (s *Selection) SetCourse(courseID string) {
	if courseID == s.CourseID {
		return
	}
	s.CourseID = courseID
	s.SessionID = ""
	s.selected = map[string]struct{}{}
}

// SetSession chooses the session. Members already selected whose commitments
// collide with the new session are dropped so the no-double-booking invariant
// holds across session changes, not just across toggles.
func (s *Selection) SetSession(sessionID string) {
	if sessionID == s.SessionID {
		return
	}
	s.SessionID = sessionID
	for id := range s.selected {
		m, err := s.store.Member(id)
		if err != nil || m.CommittedTo(sessionID) {
			delete(s.selected, id)
		}
	}
}

// Conflicted reports whether the member is already committed to the chosen
// session. This is an exact session-ID membership test; it deliberately does
// no calendar-interval arithmetic.
func (s *Selection) Conflicted(m catalog.Member) bool {
	return s.SessionID != "" && m.CommittedTo(s.SessionID)
}

// Selected reports whether the member is in the roster.
func (s *Selection) Selected(memberID string) bool {
	_, ok := s.selected[memberID]
	return ok
}

// Count returns the roster size.
func (s *Selection) Count() int { return len(s.selected) }

// SelectedIDs returns the roster in catalog order.
func (s *Selection) SelectedIDs() []string {
	var out []string
	for _, m := range s.store.Members() {
		if s.Selected(m.ID) {
			out = append(out, m.ID)
		}
	}
	return out
}

// Toggle flips membership of memberID in the roster and reports whether the
// selection changed. Removing is always permitted. Adding is refused for
// unknown members and for members conflicted with the chosen session: the UI
// renders those rows non-interactive, and the resolver refuses the mutation
// even when invoked directly.
func (s *Selection) Toggle(memberID string) bool {
	if s.Selected(memberID) {
		delete(s.selected, memberID)
		return true
	}

	m, err := s.store.Member(memberID)
	if err != nil {
		return false
	}
	if s.Conflicted(m) {
		return false
	}
	s.selected[memberID] = struct{}{}
	return true
}

// Clear empties the roster, keeping course and session choices.
func (s *Selection) Clear() {
	s.selected = map[string]struct{}{}
}

// OverCapacity reports whether the roster exceeds the session's available
// spots. Capacity is advisory in this flow: the resolver never blocks on it,
// the UI only surfaces a badge. Stricter enforcement is an open product
// question, not a bug.
func (s *Selection) OverCapacity() bool {
	sess, err := s.store.Session(s.SessionID)
	if err != nil {
		return false
	}
	return len(s.selected) > sess.AvailableSpots
}
