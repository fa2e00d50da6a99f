package enroll

import (
	"context"

	"github.com/charmbracelet/log"

	"github.com/aerotrain/flightdeck/internal/catalog"
	"github.com/aerotrain/flightdeck/internal/wizard"
)

// Request is the payload handed to the Enroller once every gate has passed.
type Request struct {
	CourseID  string   `json:"course_id"`
	SessionID string   `json:"session_id"`
	MemberIDs []string `json:"member_ids"`
}

// Enroller is the injected assignment collaborator.
type Enroller interface {
	// AssignTraining books the listed members onto the session.
	AssignTraining(ctx context.Context, req Request) error
}

// Workflow drives one assignment attempt: a wizard session over the
// assignment flow plus the submission boundary in front of the Enroller.
type Workflow struct {
	session   *wizard.Session[*Selection]
	submitter *wizard.Submitter
	enroller  Enroller
}

// NewWorkflow creates an assignment workflow over the given catalog. events
// and logger may be nil.
func NewWorkflow(enroller Enroller, store *catalog.Store, events chan<- wizard.Event, logger *log.Logger) (*Workflow, error) {
	session, err := wizard.NewSession(
		NewFlow(), FlowDiscriminant, NewSelection(store),
		wizard.WithEvents[*Selection](events),
		wizard.WithLogger[*Selection](logger),
	)
	if err != nil {
		return nil, err
	}
	return &Workflow{
		session:   session,
		submitter: wizard.NewSubmitter("assignment", events, logger),
		enroller:  enroller,
	}, nil
}

// Selection returns the accumulated assignment state.
func (w *Workflow) Selection() *Selection { return w.session.Data }

// Session exposes the underlying wizard session for navigation.
func (w *Workflow) Session() *wizard.Session[*Selection] { return w.session }

// Busy reports whether a submission is in flight.
func (w *Workflow) Busy() bool { return w.submitter.Busy() }

// Request packages the selection into the collaborator payload.
func (w *Workflow) Request() Request {
	sel := w.session.Data
	return Request{
		CourseID:  sel.CourseID,
		SessionID: sel.SessionID,
		MemberIDs: sel.SelectedIDs(),
	}
}

// Submit re-validates every gate and hands the selection to the Enroller.
// At most one submission is in flight at a time. On failure the selection is
// preserved so the user can retry; on success the caller resets or discards
// the workflow.
func (w *Workflow) Submit(ctx context.Context) error {
	return w.submitter.Submit(ctx, w.session.CanSubmit, func(ctx context.Context) error {
		return w.enroller.AssignTraining(ctx, w.Request())
	})
}
