package enroll

import "github.com/aerotrain/flightdeck/internal/wizard"

// Assignment step identifiers.
const (
	// StepCourse picks the training course.
	StepCourse wizard.Step = "course"

	// StepSession picks a scheduled session of the chosen course.
	StepSession wizard.Step = "session"

	// StepTeam builds the roster of members to assign.
	StepTeam wizard.Step = "team"

	// StepReview shows the recap and hosts the submit control. Ungated: the
	// preceding gates plus the submit-time re-validation cover it.
	StepReview wizard.Step = "review"
)

// FlowDiscriminant is the single sequence key of the assignment flow. The
// pipeline is the same for every organization today, but the flow stays
// keyed so a context-specific variant costs one table entry.
const FlowDiscriminant = "org"

// NewFlow builds the four-step assignment flow with its gates: a course must
// be chosen to leave the course step, a session to leave the session step,
// and the roster must be non-empty to leave the team step.
func NewFlow() *wizard.Flow[*Selection] {
	return wizard.NewFlow[*Selection]("assignment").
		Sequence(FlowDiscriminant, StepCourse, StepSession, StepTeam, StepReview).
		Default(StepCourse, StepSession, StepTeam, StepReview).
		WithGate(StepCourse, func(s *Selection) bool { return s.CourseID != "" }).
		WithGate(StepSession, func(s *Selection) bool { return s.SessionID != "" }).
		WithGate(StepTeam, func(s *Selection) bool { return s.Count() > 0 })
}
