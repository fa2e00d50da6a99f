package wizard

import (
	"fmt"
	"sort"
	"strings"
)

// Issue code constants classify each ValidationIssue by its structural
// category. Codes are stable strings so callers can switch on them.
const (
	// IssueNoSequences is reported when a flow declares neither per-
	// discriminant sequences nor a default sequence.
	IssueNoSequences = "NO_SEQUENCES"

	// IssueEmptySequence is reported when a discriminant maps to an empty
	// step list; NewSession would refuse it.
	IssueEmptySequence = "EMPTY_SEQUENCE"

	// IssueEmptyStepID is reported when a sequence contains an empty step
	// identifier.
	IssueEmptyStepID = "EMPTY_STEP_ID"

	// IssueDuplicateStep is reported when a step appears more than once in
	// the same sequence; positional Next/Previous would be ambiguous to a
	// reader even though the engine itself tracks indexes.
	IssueDuplicateStep = "DUPLICATE_STEP"

	// IssueMissingGate is reported when a step in some sequence has no
	// declared gate. Ungated steps always pass, which is often intended
	// (e.g. a review step), so this is a warning rather than an error.
	IssueMissingGate = "MISSING_GATE"

	// IssueOrphanGate is reported when a gate is declared for a step that
	// appears in no sequence. The gate can never run.
	IssueOrphanGate = "ORPHAN_GATE"
)

// ValidationIssue describes a single structural problem found in a Flow.
type ValidationIssue struct {
	// Code is one of the Issue* constants.
	Code string

	// Discriminant is the sequence the issue belongs to, or empty for
	// flow-level concerns. The default sequence reports as "(default)".
	Discriminant string

	// Step is the step involved, when applicable.
	Step Step

	// Message is a human-readable description.
	Message string
}

// ValidationResult holds the outcome of validating a Flow. Errors are fatal:
// sessions over the flow will misbehave. Warnings flag likely oversights.
type ValidationResult struct {
	Errors   []ValidationIssue
	Warnings []ValidationIssue
}

// IsValid reports whether the flow has no errors. Warnings alone do not make
// a flow invalid.
func (r *ValidationResult) IsValid() bool { return len(r.Errors) == 0 }

// String returns a multi-line human-readable summary of all issues.
func (r *ValidationResult) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "Errors (%d):\n", len(r.Errors))
	for _, issue := range r.Errors {
		writeIssue(&b, issue)
	}
	fmt.Fprintf(&b, "Warnings (%d):\n", len(r.Warnings))
	for _, issue := range r.Warnings {
		writeIssue(&b, issue)
	}
	return b.String()
}

func writeIssue(b *strings.Builder, issue ValidationIssue) {
	switch {
	case issue.Step != "":
		fmt.Fprintf(b, "  [%s] step %q: %s\n", issue.Code, issue.Step, issue.Message)
	case issue.Discriminant != "":
		fmt.Fprintf(b, "  [%s] sequence %q: %s\n", issue.Code, issue.Discriminant, issue.Message)
	default:
		fmt.Fprintf(b, "  [%s] %s\n", issue.Code, issue.Message)
	}
}

// ValidateFlow checks a flow for structural errors and design warnings.
// It always returns a non-nil result. Intended to run at startup (and in
// tests) so misconfigured flows fail fast rather than at step three of a
// user's registration.
func ValidateFlow[D any](f *Flow[D]) *ValidationResult {
	result := &ValidationResult{}

	if f == nil || (len(f.sequences) == 0 && len(f.defaultSeq) == 0) {
		result.Errors = append(result.Errors, ValidationIssue{
			Code:    IssueNoSequences,
			Message: "flow declares no step sequences",
		})
		return result
	}

	// Walk sequences in a stable order so results are deterministic.
	type namedSeq struct {
		name  string
		steps []Step
	}
	seqs := make([]namedSeq, 0, len(f.sequences)+1)
	for _, d := range sortedKeys(f.sequences) {
		seqs = append(seqs, namedSeq{name: d, steps: f.sequences[d]})
	}
	if len(f.defaultSeq) > 0 {
		seqs = append(seqs, namedSeq{name: "(default)", steps: f.defaultSeq})
	}

	reachable := map[Step]bool{}
	for _, seq := range seqs {
		if len(seq.steps) == 0 {
			result.Errors = append(result.Errors, ValidationIssue{
				Code:         IssueEmptySequence,
				Discriminant: seq.name,
				Message:      "sequence has no steps",
			})
			continue
		}

		seen := map[Step]bool{}
		for i, step := range seq.steps {
			if step == "" {
				result.Errors = append(result.Errors, ValidationIssue{
					Code:         IssueEmptyStepID,
					Discriminant: seq.name,
					Message:      fmt.Sprintf("step at index %d has an empty identifier", i),
				})
				continue
			}
			if seen[step] {
				result.Errors = append(result.Errors, ValidationIssue{
					Code:         IssueDuplicateStep,
					Discriminant: seq.name,
					Step:         step,
					Message:      fmt.Sprintf("step %q appears more than once", step),
				})
				continue
			}
			seen[step] = true
			reachable[step] = true

			if _, ok := f.gates[step]; !ok {
				result.Warnings = append(result.Warnings, ValidationIssue{
					Code:         IssueMissingGate,
					Discriminant: seq.name,
					Step:         step,
					Message:      fmt.Sprintf("step %q has no gate and always passes", step),
				})
			}
		}
	}

	for _, step := range sortedKeys(f.gates) {
		if !reachable[step] {
			result.Warnings = append(result.Warnings, ValidationIssue{
				Code:    IssueOrphanGate,
				Step:    step,
				Message: fmt.Sprintf("gate for step %q is unreachable from any sequence", step),
			})
		}
	}

	return result
}

func sortedKeys[K ~string, V any](m map[K]V) []K {
	keys := make([]K, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i] < keys[j] })
	return keys
}
