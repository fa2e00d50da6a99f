package wizard

import "time"

// Event type constants identify the lifecycle milestone an Event describes.
// String values are used (not iota) so they read cleanly in structured logs
// and the TUI activity feed.
const (
	// EventStepEntered is emitted after a successful Next/Previous transition
	// and when a session starts at its initial step.
	EventStepEntered = "step_entered"

	// EventStepRefused is emitted when Next is invoked while the current
	// step's gate fails. The transition is a no-op; this event is the only
	// observable trace of the attempt.
	EventStepRefused = "step_refused"

	// EventSequenceChanged is emitted when the session's discriminant changes
	// and the step sequence is recomputed.
	EventSequenceChanged = "sequence_changed"

	// EventSubmitStarted is emitted when the submission boundary accepts a
	// submit and invokes the external operation.
	EventSubmitStarted = "submit_started"

	// EventSubmitSucceeded is emitted when the external operation resolves.
	EventSubmitSucceeded = "submit_succeeded"

	// EventSubmitFailed is emitted when the external operation rejects. The
	// session's accumulated data is left untouched so the user can retry.
	EventSubmitFailed = "submit_failed"

	// EventSubmitRefused is emitted when a submit is rejected locally, either
	// because another submission is in flight or a gate no longer passes.
	EventSubmitRefused = "submit_refused"
)

// Event is a structured message emitted by sessions and submitters at each
// lifecycle milestone. Events are sent over an optional channel for
// consumption by the TUI activity feed and structured logging.
type Event struct {
	// Type is one of the Event* constants.
	Type string `json:"type"`

	// Flow is the name of the flow that produced this event.
	Flow string `json:"flow"`

	// Step is the step involved in the event, when applicable.
	Step Step `json:"step,omitempty"`

	// Message is a human-readable description of the event.
	Message string `json:"message"`

	// Timestamp records when the event was emitted.
	Timestamp time.Time `json:"timestamp"`

	// Err holds the failure description when Type is EventSubmitFailed.
	Err string `json:"error,omitempty"`
}

// emitter is embedded by Session and Submitter to share the non-blocking
// event send. A nil channel disables emission entirely.
type emitter struct {
	events chan<- Event
}

// emit sends ev using a non-blocking select so a slow consumer never stalls
// the wizard. Events are advisory; dropping one under backpressure is
// preferable to freezing the UI.
func (e *emitter) emit(ev Event) {
	if e.events == nil {
		return
	}
	select {
	case e.events <- ev:
	default:
	}
}
