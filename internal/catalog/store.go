package catalog

import (
	"errors"
	"fmt"
	"sort"
)

// ErrNotFound is returned by Store lookups when no record carries the
// requested ID.
var ErrNotFound = errors.New("catalog: record not found")

// Store is the in-memory catalog the wizards read from. It plays the role of
// the pre-fetched data collaborator: the workflow engine consumes its arrays
// and never fetches anything itself. A Store is immutable after Build, so it
// is safe to share across goroutines.
type Store struct {
	courses  map[string]Course
	sessions map[string]Session
	members  map[string]Member

	// sessionsByCourse preserves file order within each course.
	sessionsByCourse map[string][]string
	courseOrder      []string
	memberOrder      []string
}

// NewStore builds a store from the given records. Duplicate IDs within a
// record kind are rejected; dangling session→course references are rejected
// so wizard code never has to handle a session without a course.
func NewStore(courses []Course, sessions []Session, members []Member) (*Store, error) {
	s := &Store{
		courses:          make(map[string]Course, len(courses)),
		sessions:         make(map[string]Session, len(sessions)),
		members:          make(map[string]Member, len(members)),
		sessionsByCourse: map[string][]string{},
	}

	for _, c := range courses {
		if c.ID == "" {
			return nil, fmt.Errorf("catalog: course %q has an empty id", c.Title)
		}
		if _, dup := s.courses[c.ID]; dup {
			return nil, fmt.Errorf("catalog: duplicate course id %q", c.ID)
		}
		s.courses[c.ID] = c
		s.courseOrder = append(s.courseOrder, c.ID)
	}

	for _, sess := range sessions {
		if sess.ID == "" {
			return nil, fmt.Errorf("catalog: session for course %q has an empty id", sess.CourseID)
		}
		if _, dup := s.sessions[sess.ID]; dup {
			return nil, fmt.Errorf("catalog: duplicate session id %q", sess.ID)
		}
		if _, ok := s.courses[sess.CourseID]; !ok {
			return nil, fmt.Errorf("catalog: session %q references unknown course %q", sess.ID, sess.CourseID)
		}
		s.sessions[sess.ID] = sess
		s.sessionsByCourse[sess.CourseID] = append(s.sessionsByCourse[sess.CourseID], sess.ID)
	}

	for _, m := range members {
		if m.ID == "" {
			return nil, fmt.Errorf("catalog: member %q has an empty id", m.Name)
		}
		if _, dup := s.members[m.ID]; dup {
			return nil, fmt.Errorf("catalog: duplicate member id %q", m.ID)
		}
		s.members[m.ID] = m
		s.memberOrder = append(s.memberOrder, m.ID)
	}

	return s, nil
}

// Course returns the course with the given ID.
func (s *Store) Course(id string) (Course, error) {
	c, ok := s.courses[id]
	if !ok {
		return Course{}, fmt.Errorf("course %q: %w", id, ErrNotFound)
	}
	return c, nil
}

// Session returns the session with the given ID.
func (s *Store) Session(id string) (Session, error) {
	sess, ok := s.sessions[id]
	if !ok {
		return Session{}, fmt.Errorf("session %q: %w", id, ErrNotFound)
	}
	return sess, nil
}

// Member returns the member with the given ID.
func (s *Store) Member(id string) (Member, error) {
	m, ok := s.members[id]
	if !ok {
		return Member{}, fmt.Errorf("member %q: %w", id, ErrNotFound)
	}
	return m, nil
}

// Courses returns all courses in load order.
func (s *Store) Courses() []Course {
	out := make([]Course, 0, len(s.courseOrder))
	for _, id := range s.courseOrder {
		out = append(out, s.courses[id])
	}
	return out
}

// SessionsFor returns the sessions of a course sorted by start time.
func (s *Store) SessionsFor(courseID string) []Session {
	ids := s.sessionsByCourse[courseID]
	out := make([]Session, 0, len(ids))
	for _, id := range ids {
		out = append(out, s.sessions[id])
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Start.Before(out[j].Start) })
	return out
}

// Members returns the full candidate pool in load order.
func (s *Store) Members() []Member {
	out := make([]Member, 0, len(s.memberOrder))
	for _, id := range s.memberOrder {
		out = append(out, s.members[id])
	}
	return out
}

// Counts returns the number of courses, sessions, and members held.
func (s *Store) Counts() (courses, sessions, members int) {
	return len(s.courses), len(s.sessions), len(s.members)
}
