package wizard

import (
	"errors"
	"fmt"
	"time"

	"github.com/charmbracelet/log"
)

// ErrEmptySequence is returned by NewSession when the resolved step sequence
// for the requested discriminant is empty.
var ErrEmptySequence = errors.New("wizard: flow has no steps for discriminant")

// Session is one live traversal of a Flow: the current position in the
// resolved step sequence plus the accumulated wizard data. A session is owned
// by a single wizard instance and is not safe for concurrent use; the UI
// event loop is its only writer.
//
// D is the accumulated data type (typically a pointer to a form or selection
// struct) shared with the flow's gates.
type Session[D any] struct {
	emitter

	flow         *Flow[D]
	discriminant string
	steps        []Step
	index        int
	logger       *log.Logger

	// Data is the accumulated form/selection state. Transitions never clear
	// it; it is discarded only when the session itself is discarded.
	Data D
}

// SessionOption configures a Session at creation time.
type SessionOption[D any] func(*Session[D])

// WithEvents sets the channel on which the session emits lifecycle Events.
// Sends are non-blocking; a slow consumer drops events rather than stalling
// the wizard.
func WithEvents[D any](ch chan<- Event) SessionOption[D] {
	return func(s *Session[D]) { s.events = ch }
}

// WithLogger attaches a structured logger. When nil the session is silent.
func WithLogger[D any](logger *log.Logger) SessionOption[D] {
	return func(s *Session[D]) { s.logger = logger }
}

// NewSession starts a traversal of flow for the given discriminant, positioned
// at the first step of the resolved sequence. data is the accumulated state
// shared with the flow's gates.
func NewSession[D any](flow *Flow[D], discriminant string, data D, opts ...SessionOption[D]) (*Session[D], error) {
	steps := flow.StepsFor(discriminant)
	if len(steps) == 0 {
		return nil, fmt.Errorf("%w: %q", ErrEmptySequence, discriminant)
	}

	s := &Session[D]{
		flow:         flow,
		discriminant: discriminant,
		steps:        steps,
		Data:         data,
	}
	for _, opt := range opts {
		opt(s)
	}

	s.emit(Event{
		Type:      EventStepEntered,
		Flow:      flow.Name(),
		Step:      s.Current(),
		Message:   fmt.Sprintf("flow %q started at step %q", flow.Name(), s.Current()),
		Timestamp: time.Now(),
	})
	s.log("session started", "flow", flow.Name(), "discriminant", discriminant, "step", s.Current())
	return s, nil
}

// Flow returns the flow this session traverses.
func (s *Session[D]) Flow() *Flow[D] { return s.flow }

// Discriminant returns the discriminant the step sequence was resolved with.
func (s *Session[D]) Discriminant() string { return s.discriminant }

// Steps returns a copy of the active step sequence.
func (s *Session[D]) Steps() []Step { return append([]Step(nil), s.steps...) }

// Current returns the step the session is positioned at. It is always a
// member of the active sequence.
func (s *Session[D]) Current() Step { return s.steps[s.index] }

// Index returns the zero-based position of the current step.
func (s *Session[D]) Index() int { return s.index }

// IsFirst reports whether the session is at the first step of the sequence.
func (s *Session[D]) IsFirst() bool { return s.index == 0 }

// IsLast reports whether the session is at the last step of the sequence.
func (s *Session[D]) IsLast() bool { return s.index == len(s.steps)-1 }

// CanAdvance evaluates the current step's gate against the session data.
func (s *Session[D]) CanAdvance() bool {
	return s.flow.CanAdvance(s.Current(), s.Data)
}

// CanSubmit reports whether every gate in the active sequence passes right
// now. The submission boundary calls this again immediately before invoking
// the external operation.
func (s *Session[D]) CanSubmit() bool {
	return s.flow.CanSubmit(s.discriminant, s.Data)
}

// Next advances to the following step and reports whether a transition
// occurred. It is a no-op, returning false, when the session is at the last
// step or when the current step's gate fails. Refusal never mutates state.
func (s *Session[D]) Next() bool {
	if s.IsLast() {
		return false
	}
	if !s.CanAdvance() {
		s.emit(Event{
			Type:      EventStepRefused,
			Flow:      s.flow.Name(),
			Step:      s.Current(),
			Message:   fmt.Sprintf("step %q gate failed; staying put", s.Current()),
			Timestamp: time.Now(),
		})
		s.log("forward transition refused", "step", s.Current())
		return false
	}

	s.index++
	s.emit(Event{
		Type:      EventStepEntered,
		Flow:      s.flow.Name(),
		Step:      s.Current(),
		Message:   fmt.Sprintf("entered step %q", s.Current()),
		Timestamp: time.Now(),
	})
	s.log("step entered", "step", s.Current())
	return true
}

// Previous moves back one step and reports whether a transition occurred.
// Backward navigation requires no validation; it is a no-op at the first
// step. Accumulated data survives untouched.
func (s *Session[D]) Previous() bool {
	if s.IsFirst() {
		return false
	}
	s.index--
	s.emit(Event{
		Type:      EventStepEntered,
		Flow:      s.flow.Name(),
		Step:      s.Current(),
		Message:   fmt.Sprintf("returned to step %q", s.Current()),
		Timestamp: time.Now(),
	})
	s.log("step entered", "step", s.Current(), "direction", "back")
	return true
}

// SetDiscriminant switches the session to a different discriminant before
// submission (e.g. the user changes role on the first registration step).
// The sequence is recomputed and the current position re-clamped into range.
// Switching to a discriminant with an empty sequence is refused.
func (s *Session[D]) SetDiscriminant(discriminant string) error {
	if discriminant == s.discriminant {
		return nil
	}
	steps := s.flow.StepsFor(discriminant)
	if len(steps) == 0 {
		return fmt.Errorf("%w: %q", ErrEmptySequence, discriminant)
	}

	s.discriminant = discriminant
	s.steps = steps
	if s.index > len(steps)-1 {
		s.index = len(steps) - 1
	}

	s.emit(Event{
		Type:      EventSequenceChanged,
		Flow:      s.flow.Name(),
		Step:      s.Current(),
		Message:   fmt.Sprintf("sequence recomputed for %q; now at step %q", discriminant, s.Current()),
		Timestamp: time.Now(),
	})
	s.log("sequence changed", "discriminant", discriminant, "step", s.Current())
	return nil
}

// Reset returns the session to the first step without touching Data. Callers
// that also need pristine data replace the session instead.
func (s *Session[D]) Reset() {
	s.index = 0
	s.emit(Event{
		Type:      EventStepEntered,
		Flow:      s.flow.Name(),
		Step:      s.Current(),
		Message:   fmt.Sprintf("flow %q reset to step %q", s.flow.Name(), s.Current()),
		Timestamp: time.Now(),
	})
}

func (s *Session[D]) log(msg string, kvs ...any) {
	if s.logger == nil {
		return
	}
	s.logger.Debug(msg, kvs...)
}
