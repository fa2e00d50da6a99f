package account

import "github.com/aerotrain/flightdeck/internal/wizard"

// Registration step identifiers.
const (
	// StepAccount collects identity fields and the password pair.
	StepAccount wizard.Step = "account"

	// StepTerms hosts the terms-of-service acceptance flag and the final
	// submit control.
	StepTerms wizard.Step = "terms"
)

// NewFlow builds the registration flow. Every role currently resolves to the
// same account → terms sequence, but the table stays keyed by role so a
// future role-specific step (an organization's billing details, an airport
// operator's certificate upload) is one table entry, not a code change in
// callers.
func NewFlow() *wizard.Flow[*Form] {
	f := wizard.NewFlow[*Form]("registration").
		Default(StepAccount, StepTerms).
		WithGate(StepAccount, wizard.Gate[*Form](accountGate)).
		WithGate(StepTerms, wizard.Gate[*Form](termsGate))

	for _, role := range Roles {
		f.Sequence(string(role), StepAccount, StepTerms)
	}
	return f
}
