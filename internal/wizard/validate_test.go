package wizard

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func issueCodes(issues []ValidationIssue) []string {
	if len(issues) == 0 {
		return nil
	}
	codes := make([]string, 0, len(issues))
	for _, issue := range issues {
		codes = append(codes, issue.Code)
	}
	return codes
}

func TestValidateFlow(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name         string
		flow         *Flow[*checkout]
		wantErrors   []string
		wantWarnings []string
	}{
		{
			name:       "nil flow",
			flow:       nil,
			wantErrors: []string{IssueNoSequences},
		},
		{
			name:       "no sequences declared",
			flow:       NewFlow[*checkout]("empty"),
			wantErrors: []string{IssueNoSequences},
		},
		{
			name: "empty sequence",
			flow: NewFlow[*checkout]("bad").
				Sequence("guest").
				Default("items"),
			wantErrors:   []string{IssueEmptySequence},
			wantWarnings: []string{IssueMissingGate},
		},
		{
			name: "empty step identifier",
			flow: NewFlow[*checkout]("bad").
				Default("items", "", "confirm"),
			wantErrors:   []string{IssueEmptyStepID},
			wantWarnings: []string{IssueMissingGate, IssueMissingGate},
		},
		{
			name: "duplicate step",
			flow: NewFlow[*checkout]("bad").
				Default("items", "confirm", "items"),
			wantErrors:   []string{IssueDuplicateStep},
			wantWarnings: []string{IssueMissingGate, IssueMissingGate},
		},
		{
			name: "orphan gate",
			flow: NewFlow[*checkout]("bad").
				Default("items").
				WithGate("items", func(c *checkout) bool { return true }).
				WithGate("payment", func(c *checkout) bool { return true }),
			wantWarnings: []string{IssueOrphanGate},
		},
		{
			name: "fully gated flow is clean",
			flow: NewFlow[*checkout]("good").
				Default("items", "payment").
				WithGate("items", func(c *checkout) bool { return true }).
				WithGate("payment", func(c *checkout) bool { return true }),
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			result := ValidateFlow(tc.flow)
			require.NotNil(t, result)
			assert.Equal(t, tc.wantErrors, issueCodes(result.Errors))
			assert.Equal(t, tc.wantWarnings, issueCodes(result.Warnings))
			assert.Equal(t, len(tc.wantErrors) == 0, result.IsValid())
		})
	}
}

func TestValidateFlow_DefaultSequenceName(t *testing.T) {
	t.Parallel()

	f := NewFlow[*checkout]("checkout").Default("items")

	result := ValidateFlow(f)
	require.Len(t, result.Warnings, 1)
	assert.Equal(t, "(default)", result.Warnings[0].Discriminant)
	assert.Equal(t, Step("items"), result.Warnings[0].Step)
}

func TestValidateFlow_DeterministicOrder(t *testing.T) {
	t.Parallel()

	f := NewFlow[*checkout]("checkout").
		Sequence("member", "items").
		Sequence("guest", "items", "payment").
		Default("items")

	first := ValidateFlow(f)
	for range 10 {
		assert.Equal(t, first, ValidateFlow(f))
	}

	// Discriminants sorted lexically, default sequence last.
	require.Len(t, first.Warnings, 4)
	assert.Equal(t, "guest", first.Warnings[0].Discriminant)
	assert.Equal(t, "guest", first.Warnings[1].Discriminant)
	assert.Equal(t, "member", first.Warnings[2].Discriminant)
	assert.Equal(t, "(default)", first.Warnings[3].Discriminant)
}

func TestValidationResult_String(t *testing.T) {
	t.Parallel()

	f := NewFlow[*checkout]("checkout").
		Default("items", "items").
		WithGate("payment", func(c *checkout) bool { return true })

	s := ValidateFlow(f).String()
	assert.Contains(t, s, "Errors (1):")
	assert.Contains(t, s, IssueDuplicateStep)
	assert.Contains(t, s, IssueOrphanGate)
}

func TestCheckoutFixtureFlow_IsValid(t *testing.T) {
	t.Parallel()

	result := ValidateFlow(newCheckoutFlow())
	assert.True(t, result.IsValid(), result.String())
}
