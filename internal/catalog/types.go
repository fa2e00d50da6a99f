// Package catalog holds the aviation-training marketplace's domain records:
// courses, scheduled sessions, and the team members an organization can
// assign to a session. Records are loaded from TOML data files into an
// in-memory Store; nothing here talks to the network.
package catalog

import "time"

// Course is a training offering in the marketplace catalog.
type Course struct {
	ID          string  `toml:"id" json:"id"`
	Title       string  `toml:"title" json:"title"`
	Category    string  `toml:"category" json:"category"`
	Description string  `toml:"description" json:"description"`
	// Price is the per-seat price in euros. Sessions may override it.
	Price float64 `toml:"price" json:"price"`
	// Prerequisite names a certification a participant must already hold,
	// or is empty when the course is open to everyone.
	Prerequisite string `toml:"prerequisite" json:"prerequisite,omitempty"`
}

// Session is a scheduled run of a course with bounded capacity.
type Session struct {
	ID       string    `toml:"id" json:"id"`
	CourseID string    `toml:"course_id" json:"course_id"`
	Start    time.Time `toml:"start" json:"start"`
	End      time.Time `toml:"end" json:"end"`
	Location string    `toml:"location" json:"location"`
	// Price is the per-seat price in euros for this session.
	Price float64 `toml:"price" json:"price"`
	// AvailableSpots is the number of unclaimed seats. It is advisory in the
	// assignment wizard: a full session stays selectable and is surfaced with
	// a "Complet" badge instead of being blocked.
	AvailableSpots int `toml:"available_spots" json:"available_spots"`
}

// Full reports whether the session has no seats left. Display state only;
// selection logic never consults it.
func (s Session) Full() bool { return s.AvailableSpots <= 0 }

// Member is a team member of a training organization: a candidate for
// assignment to a session.
type Member struct {
	ID   string `toml:"id" json:"id"`
	Name string `toml:"name" json:"name"`
	Role string `toml:"role" json:"role"`
	// Qualified reports whether the member satisfies the course prerequisite.
	Qualified bool `toml:"qualified" json:"qualified"`
	// Recommended is a purely advisory flag surfaced in the UI; it has no
	// effect on selectability.
	Recommended bool `toml:"recommended" json:"recommended"`
	// CommittedSessions lists the session IDs the member is already booked
	// on. Membership of the chosen session in this list is what makes a
	// member conflicted.
	CommittedSessions []string `toml:"committed_sessions" json:"committed_sessions"`
}

// CommittedTo reports whether the member is already booked on sessionID.
func (m Member) CommittedTo(sessionID string) bool {
	for _, id := range m.CommittedSessions {
		if id == sessionID {
			return true
		}
	}
	return false
}
