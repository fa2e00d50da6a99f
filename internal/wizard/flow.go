// Package wizard implements the guided-workflow engine behind flightdeck's
// multi-step forms: role-conditioned step sequencing, per-step validation
// gating, and the submission boundary that hands validated state to an
// injected collaborator.
//
// A Flow is the immutable description of a wizard: the ordered step sequences
// keyed by discriminant (e.g. the selected account role) and the validation
// gate declared for each step. A Session is one live traversal of a Flow.
// Refused transitions are no-ops, never panics, so the engine is safe to
// drive from tests and non-UI callers.
package wizard

// Step identifies a single step within a flow sequence.
type Step string

// Gate is a per-step validation predicate evaluated over the accumulated
// wizard data. A gate must be pure: it is recomputed on every forward
// transition attempt and again at submit time, never cached.
type Gate[D any] func(data D) bool

// Flow describes a wizard's step sequences and validation gates. Sequences
// are keyed by discriminant so role- or context-specific orderings can differ
// without changing caller code; a flow may also declare a default sequence
// used for unknown discriminants.
//
// Flows are built once at startup and shared freely; they are not mutated
// after construction.
type Flow[D any] struct {
	name       string
	sequences  map[string][]Step
	defaultSeq []Step
	gates      map[Step]Gate[D]
}

// NewFlow creates an empty flow with the given name. Configure it with
// Sequence, Default, and Gate before creating sessions.
func NewFlow[D any](name string) *Flow[D] {
	return &Flow[D]{
		name:      name,
		sequences: map[string][]Step{},
		gates:     map[Step]Gate[D]{},
	}
}

// Name returns the flow's identifier.
func (f *Flow[D]) Name() string { return f.name }

// Sequence registers the ordered step list for a discriminant value.
// Registering the same discriminant twice replaces the earlier sequence.
func (f *Flow[D]) Sequence(discriminant string, steps ...Step) *Flow[D] {
	f.sequences[discriminant] = append([]Step(nil), steps...)
	return f
}

// Default registers the sequence used when a discriminant has no explicit
// entry in the sequence table.
func (f *Flow[D]) Default(steps ...Step) *Flow[D] {
	f.defaultSeq = append([]Step(nil), steps...)
	return f
}

// WithGate declares the validation gate for a step. Steps without a gate are
// always passable; ValidateFlow reports them as warnings.
func (f *Flow[D]) WithGate(step Step, gate Gate[D]) *Flow[D] {
	f.gates[step] = gate
	return f
}

// StepsFor resolves the ordered step sequence for a discriminant. The result
// is a copy; callers may not mutate flow internals through it. An unknown
// discriminant falls back to the default sequence, which may be empty.
func (f *Flow[D]) StepsFor(discriminant string) []Step {
	seq, ok := f.sequences[discriminant]
	if !ok {
		seq = f.defaultSeq
	}
	return append([]Step(nil), seq...)
}

// Discriminants returns the discriminant values with explicit sequences.
// Order is unspecified.
func (f *Flow[D]) Discriminants() []string {
	out := make([]string, 0, len(f.sequences))
	for d := range f.sequences {
		out = append(out, d)
	}
	return out
}

// CanAdvance evaluates the gate declared for step against data. Steps with
// no declared gate always pass.
func (f *Flow[D]) CanAdvance(step Step, data D) bool {
	gate, ok := f.gates[step]
	if !ok {
		return true
	}
	return gate(data)
}

// CanSubmit reports whether every gate in the discriminant's sequence passes.
// It is the logical AND that the submission boundary re-evaluates immediately
// before invoking the external operation: the user may have navigated
// backward and invalidated an earlier step after validating a later one.
func (f *Flow[D]) CanSubmit(discriminant string, data D) bool {
	for _, step := range f.StepsFor(discriminant) {
		if !f.CanAdvance(step, data) {
			return false
		}
	}
	return true
}
