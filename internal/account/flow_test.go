package account

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aerotrain/flightdeck/internal/wizard"
)

func TestNewFlow_IsStructurallyValid(t *testing.T) {
	t.Parallel()

	result := wizard.ValidateFlow(NewFlow())
	assert.True(t, result.IsValid(), result.String())
	assert.Empty(t, result.Warnings, result.String())
}

func TestNewFlow_EveryRoleSequenced(t *testing.T) {
	t.Parallel()

	f := NewFlow()
	want := []wizard.Step{StepAccount, StepTerms}

	for _, role := range Roles {
		assert.Equal(t, want, f.StepsFor(string(role)), "role %s", role)
	}

	// Unknown discriminants fall back to the same sequence.
	assert.Equal(t, want, f.StepsFor("instructor"))
}

func TestNewFlow_GatesOrder(t *testing.T) {
	t.Parallel()

	f := NewFlow()

	complete := NewForm(RoleStudent)
	complete.FirstName = "Claire"
	complete.LastName = "Fontaine"
	complete.Email = "claire@example.com"
	complete.Password = "longenough"
	complete.ConfirmPassword = "longenough"
	complete.AcceptTerms = true

	require.True(t, f.CanSubmit(string(RoleStudent), complete))

	// Revoking the acceptance alone blocks submission.
	complete.AcceptTerms = false
	assert.True(t, f.CanAdvance(StepAccount, complete))
	assert.False(t, f.CanAdvance(StepTerms, complete))
	assert.False(t, f.CanSubmit(string(RoleStudent), complete))

	// An incomplete account step blocks the terms step.
	assert.False(t, f.CanAdvance(StepAccount, NewForm(RoleStudent)))
}
