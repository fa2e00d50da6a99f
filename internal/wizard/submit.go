package wizard

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/charmbracelet/log"
)

// Submission refusal sentinels. Both describe local refusals rather than
// collaborator failures: nothing was sent, no state was lost, and the caller
// may simply try again once the condition clears.
var (
	// ErrSubmitInFlight is returned by Submit while another submission is
	// still pending. The guarantee is at-most-one in-flight call to the
	// external operation.
	ErrSubmitInFlight = errors.New("wizard: submission already in flight")

	// ErrGatesFailed is returned by Submit when the pre-submit re-validation
	// finds a failing gate. Backward navigation can invalidate a step that
	// was valid when it was left, so gates are re-checked at submit time.
	ErrGatesFailed = errors.New("wizard: validation gates failed at submit time")
)

// Operation is the injected asynchronous collaborator a Submitter drives:
// an account registration, a course enrollment, a mock in tests. The
// operation owns its own I/O; the submitter only tracks its lifecycle.
type Operation func(ctx context.Context) error

// Submitter is the single point where accumulated, validated wizard state is
// handed to an external operation. It owns the submitting flag that disables
// duplicate submission, converts collaborator rejections into returned
// errors, and emits lifecycle events.
//
// A Submitter is safe for concurrent use: the UI goroutine checks Busy while
// the operation runs on another.
type Submitter struct {
	emitter

	mu       sync.Mutex
	inFlight bool

	flow   string
	logger *log.Logger
}

// NewSubmitter creates a submission boundary for the named flow. events may
// be nil; logger may be nil.
func NewSubmitter(flow string, events chan<- Event, logger *log.Logger) *Submitter {
	s := &Submitter{flow: flow, logger: logger}
	s.events = events
	return s
}

// log forwards to the configured logger, or does nothing when none is set.
func (s *Submitter) log(msg string, kvs ...any) {
	if s.logger == nil {
		return
	}
	s.logger.Debug(msg, kvs...)
}

// Busy reports whether a submission is currently in flight. The control that
// triggers submission must render disabled while this is true.
func (s *Submitter) Busy() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.inFlight
}

// Submit re-validates all gates via gate, then invokes op exactly once,
// blocking until it returns. While a submission is pending, further Submit
// calls return ErrSubmitInFlight without invoking op.
//
// Collaborator errors are returned as-is (wrapped) so callers can inspect
// them with errors.As; they never escape as panics. The caller's accumulated
// state is untouched on failure so the user can correct and resubmit.
func (s *Submitter) Submit(ctx context.Context, gate func() bool, op Operation) error {
	s.mu.Lock()
	if s.inFlight {
		s.mu.Unlock()
		s.emit(Event{
			Type:      EventSubmitRefused,
			Flow:      s.flow,
			Message:   "submission already in flight",
			Timestamp: time.Now(),
		})
		return ErrSubmitInFlight
	}

	// Gates are evaluated under the lock so a refusal cannot race a
	// concurrent accept.
	if gate != nil && !gate() {
		s.mu.Unlock()
		s.emit(Event{
			Type:      EventSubmitRefused,
			Flow:      s.flow,
			Message:   "validation gates failed at submit time",
			Timestamp: time.Now(),
		})
		s.log("submit refused", "reason", "gates failed")
		return ErrGatesFailed
	}

	s.inFlight = true
	s.mu.Unlock()

	defer func() {
		s.mu.Lock()
		s.inFlight = false
		s.mu.Unlock()
	}()

	s.emit(Event{
		Type:      EventSubmitStarted,
		Flow:      s.flow,
		Message:   fmt.Sprintf("flow %q submitting", s.flow),
		Timestamp: time.Now(),
	})
	s.log("submit started")

	if err := op(ctx); err != nil {
		s.emit(Event{
			Type:      EventSubmitFailed,
			Flow:      s.flow,
			Message:   fmt.Sprintf("flow %q submission failed", s.flow),
			Err:       err.Error(),
			Timestamp: time.Now(),
		})
		s.log("submit failed", "error", err)
		return fmt.Errorf("wizard: flow %q: %w", s.flow, err)
	}

	s.emit(Event{
		Type:      EventSubmitSucceeded,
		Flow:      s.flow,
		Message:   fmt.Sprintf("flow %q submitted", s.flow),
		Timestamp: time.Now(),
	})
	s.log("submit succeeded")
	return nil
}
