package account

import (
	"context"
	"errors"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/aerotrain/flightdeck/internal/wizard"
)

// FieldEmail is the field key used for persistent email errors on the form.
const FieldEmail = "email"

// duplicateEmailPhrase is the server-side wording of a duplicate-email
// rejection. Matched as a fallback when the collaborator returns a plain
// error instead of a typed conflict.
const duplicateEmailPhrase = "déjà utilisé"

// conflictErr is the shape a typed duplicate-email rejection carries.
// internal/api's ConflictError implements it; fakes in tests can too.
type conflictErr interface {
	error
	ConflictField() string
}

// IsDuplicateEmail reports whether err describes a duplicate-email conflict:
// either a typed conflict on the email field or a message carrying the
// server's duplicate wording.
func IsDuplicateEmail(err error) bool {
	var ce conflictErr
	if errors.As(err, &ce) && ce.ConflictField() == FieldEmail {
		return true
	}
	return err != nil && strings.Contains(err.Error(), duplicateEmailPhrase)
}

// Workflow drives one registration attempt: a wizard session over the
// registration flow plus the submission boundary in front of the Registrar.
type Workflow struct {
	session   *wizard.Session[*Form]
	submitter *wizard.Submitter
	registrar Registrar
	logger    *log.Logger
}

// NewWorkflow creates a registration workflow for the given role. events may
// be nil to disable lifecycle events; logger may be nil.
func NewWorkflow(registrar Registrar, role Role, events chan<- wizard.Event, logger *log.Logger) (*Workflow, error) {
	session, err := wizard.NewSession(
		NewFlow(), string(role), NewForm(role),
		wizard.WithEvents[*Form](events),
		wizard.WithLogger[*Form](logger),
	)
	if err != nil {
		return nil, err
	}
	return &Workflow{
		session:   session,
		submitter: wizard.NewSubmitter("registration", events, logger),
		registrar: registrar,
		logger:    logger,
	}, nil
}

// Form returns the accumulated registration state.
func (w *Workflow) Form() *Form { return w.session.Data }

// Session exposes the underlying wizard session for navigation.
func (w *Workflow) Session() *wizard.Session[*Form] { return w.session }

// Busy reports whether a submission is in flight.
func (w *Workflow) Busy() bool { return w.submitter.Busy() }

// SetRole switches the selected role mid-flow. The step sequence is
// recomputed and the current step re-clamped; accumulated fields survive.
func (w *Workflow) SetRole(role Role) error {
	if err := w.session.SetDiscriminant(string(role)); err != nil {
		return err
	}
	w.session.Data.Role = role
	return nil
}

// Outcome is the interpreted result of a submission attempt.
type Outcome struct {
	// Confirmation is the collaborator's message on success.
	Confirmation string

	// Err is the failure, nil on success. Refusals (ErrSubmitInFlight,
	// ErrGatesFailed) appear here too; callers distinguish with errors.Is.
	Err error

	// EmailTaken is true when Err describes a duplicate-email conflict. The
	// form already carries the matching field-level error on "email".
	EmailTaken bool
}

// Submit re-validates every gate and hands the form to the Registrar. At most
// one submission is in flight at a time; concurrent attempts are refused
// without touching the collaborator. On any failure the form is preserved
// exactly as entered, and a duplicate-email conflict additionally pins a
// field-level error to the email field.
func (w *Workflow) Submit(ctx context.Context) Outcome {
	var confirmation string

	err := w.submitter.Submit(ctx, w.session.CanSubmit, func(ctx context.Context) error {
		msg, err := w.registrar.Register(ctx, w.session.Data.Request())
		if err != nil {
			return err
		}
		confirmation = msg
		return nil
	})
	if err == nil {
		return Outcome{Confirmation: confirmation}
	}

	out := Outcome{Err: err}
	if IsDuplicateEmail(err) {
		out.EmailTaken = true
		w.session.Data.SetFieldError(FieldEmail, "cette adresse email est déjà utilisée")
		if w.logger != nil {
			w.logger.Warn("duplicate email on registration", "email", w.session.Data.Email)
		}
	}
	return out
}
