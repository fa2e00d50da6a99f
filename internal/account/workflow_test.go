package account

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aerotrain/flightdeck/internal/wizard"
)

// fakeRegistrar records calls and replays a scripted response.
type fakeRegistrar struct {
	calls   []Request
	message string
	err     error
	started chan struct{}
	block   chan struct{}
}

func (r *fakeRegistrar) Register(ctx context.Context, req Request) (string, error) {
	r.calls = append(r.calls, req)
	if r.started != nil {
		close(r.started)
	}
	if r.block != nil {
		<-r.block
	}
	return r.message, r.err
}

// fakeConflict mimics internal/api's typed duplicate rejection.
type fakeConflict struct{ field string }

func (e *fakeConflict) Error() string         { return "resource conflict" }
func (e *fakeConflict) ConflictField() string { return e.field }

func completedWorkflow(t *testing.T, reg Registrar) *Workflow {
	t.Helper()

	wf, err := NewWorkflow(reg, RoleStudent, nil, nil)
	require.NoError(t, err)

	f := wf.Form()
	f.FirstName = "Claire"
	f.LastName = "Fontaine"
	f.Email = "claire@example.com"
	f.Password = "longenough"
	f.ConfirmPassword = "longenough"

	require.True(t, wf.Session().Next(), "account step should gate through")
	f.AcceptTerms = true
	return wf
}

func TestWorkflow_StartsAtAccountStep(t *testing.T) {
	t.Parallel()

	wf, err := NewWorkflow(&fakeRegistrar{}, RoleOrg, nil, nil)
	require.NoError(t, err)

	assert.Equal(t, StepAccount, wf.Session().Current())
	assert.Equal(t, RoleOrg, wf.Form().Role)
	assert.False(t, wf.Busy())
}

func TestWorkflow_NextRefusedUntilAccountValid(t *testing.T) {
	t.Parallel()

	wf, err := NewWorkflow(&fakeRegistrar{}, RoleStudent, nil, nil)
	require.NoError(t, err)

	assert.False(t, wf.Session().Next())
	assert.Equal(t, StepAccount, wf.Session().Current())

	f := wf.Form()
	f.FirstName = "Claire"
	f.LastName = "Fontaine"
	f.Email = "claire@example.com"
	f.Password = "longenough"
	f.ConfirmPassword = "longenough"

	assert.True(t, wf.Session().Next())
	assert.Equal(t, StepTerms, wf.Session().Current())
}

func TestWorkflow_SetRole(t *testing.T) {
	t.Parallel()

	wf, err := NewWorkflow(&fakeRegistrar{}, RoleStudent, nil, nil)
	require.NoError(t, err)

	wf.Form().FirstName = "Claire"
	require.NoError(t, wf.SetRole(RoleAirport))

	assert.Equal(t, RoleAirport, wf.Form().Role)
	assert.Equal(t, "airport", wf.Session().Discriminant())
	assert.Equal(t, "Claire", wf.Form().FirstName, "entered fields survive a role switch")
}

func TestWorkflow_SubmitSuccess(t *testing.T) {
	t.Parallel()

	reg := &fakeRegistrar{message: "Votre compte a été créé"}
	wf := completedWorkflow(t, reg)

	out := wf.Submit(context.Background())

	require.NoError(t, out.Err)
	assert.Equal(t, "Votre compte a été créé", out.Confirmation)
	assert.False(t, out.EmailTaken)

	require.Len(t, reg.calls, 1)
	req := reg.calls[0]
	assert.Equal(t, "Claire", req.FirstName)
	assert.Equal(t, "claire@example.com", req.Email)
	assert.Equal(t, RoleStudent, req.Role)
}

func TestWorkflow_SubmitRefusedWhenGateFails(t *testing.T) {
	t.Parallel()

	reg := &fakeRegistrar{}
	wf := completedWorkflow(t, reg)
	wf.Form().AcceptTerms = false

	out := wf.Submit(context.Background())

	assert.ErrorIs(t, out.Err, wizard.ErrGatesFailed)
	assert.Empty(t, reg.calls, "collaborator must not be reached on a gate refusal")
}

func TestWorkflow_SubmitRevalidatesEarlierSteps(t *testing.T) {
	t.Parallel()

	reg := &fakeRegistrar{}
	wf := completedWorkflow(t, reg)

	// Walk back and invalidate the account step after the terms step
	// accepted it. Submission must still be refused.
	require.True(t, wf.Session().Previous())
	wf.Form().Email = "broken"

	out := wf.Submit(context.Background())

	assert.ErrorIs(t, out.Err, wizard.ErrGatesFailed)
	assert.Empty(t, reg.calls)
}

func TestWorkflow_DuplicateEmailTyped(t *testing.T) {
	t.Parallel()

	reg := &fakeRegistrar{err: &fakeConflict{field: FieldEmail}}
	wf := completedWorkflow(t, reg)

	out := wf.Submit(context.Background())

	require.Error(t, out.Err)
	assert.True(t, out.EmailTaken)

	msg, ok := wf.Form().FieldError(FieldEmail)
	require.True(t, ok)
	assert.Equal(t, "cette adresse email est déjà utilisée", msg)

	// Entered state survives the failure so the user corrects in place.
	assert.Equal(t, "claire@example.com", wf.Form().Email)
	assert.Equal(t, "longenough", wf.Form().Password)
}

func TestWorkflow_DuplicateEmailByMessage(t *testing.T) {
	t.Parallel()

	reg := &fakeRegistrar{err: errors.New("cet email est déjà utilisé")}
	wf := completedWorkflow(t, reg)

	out := wf.Submit(context.Background())

	assert.True(t, out.EmailTaken)
}

func TestWorkflow_OtherFailurePreservesForm(t *testing.T) {
	t.Parallel()

	cause := errors.New("service unavailable")
	reg := &fakeRegistrar{err: cause}
	wf := completedWorkflow(t, reg)

	out := wf.Submit(context.Background())

	require.Error(t, out.Err)
	assert.ErrorIs(t, out.Err, cause)
	assert.False(t, out.EmailTaken)

	_, ok := wf.Form().FieldError(FieldEmail)
	assert.False(t, ok, "no field error for non-conflict failures")
	assert.Equal(t, "claire@example.com", wf.Form().Email)
}

func TestWorkflow_SingleSubmissionInFlight(t *testing.T) {
	t.Parallel()

	reg := &fakeRegistrar{message: "ok", started: make(chan struct{}), block: make(chan struct{})}
	wf := completedWorkflow(t, reg)

	done := make(chan Outcome, 1)
	go func() { done <- wf.Submit(context.Background()) }()

	<-reg.started
	assert.True(t, wf.Busy())

	out := wf.Submit(context.Background())
	assert.ErrorIs(t, out.Err, wizard.ErrSubmitInFlight)

	close(reg.block)
	first := <-done
	require.NoError(t, first.Err)
	assert.Len(t, reg.calls, 1)
}

func TestIsDuplicateEmail(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		err  error
		want bool
	}{
		{"nil", nil, false},
		{"plain error", errors.New("boom"), false},
		{"typed conflict on email", &fakeConflict{field: FieldEmail}, true},
		{"typed conflict on another field", &fakeConflict{field: "phone"}, false},
		{"server wording", errors.New("cet email est déjà utilisé"), true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tc.want, IsDuplicateEmail(tc.err))
		})
	}
}
