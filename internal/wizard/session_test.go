package wizard

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestSession(t *testing.T, discriminant string, data *checkout, opts ...SessionOption[*checkout]) *Session[*checkout] {
	t.Helper()
	s, err := NewSession(newCheckoutFlow(), discriminant, data, opts...)
	require.NoError(t, err)
	return s
}

// drain empties a buffered event channel and returns the event types in
// order.
func drain(ch chan Event) []string {
	var types []string
	for {
		select {
		case ev := <-ch:
			types = append(types, ev.Type)
		default:
			return types
		}
	}
}

func TestNewSession_StartsAtFirstStep(t *testing.T) {
	t.Parallel()

	s := newTestSession(t, "guest", &checkout{})

	assert.Equal(t, Step("items"), s.Current())
	assert.True(t, s.IsFirst())
	assert.False(t, s.IsLast())
	assert.Equal(t, 0, s.Index())
}

func TestNewSession_EmptySequence(t *testing.T) {
	t.Parallel()

	f := NewFlow[*checkout]("empty").Sequence("only", "a")

	_, err := NewSession(f, "unknown", &checkout{})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrEmptySequence)
}

func TestSession_Next_RefusedWhileGateFails(t *testing.T) {
	t.Parallel()

	data := &checkout{}
	s := newTestSession(t, "guest", data)

	// Gate fails: no transition, no state change, no panic.
	assert.False(t, s.Next())
	assert.Equal(t, Step("items"), s.Current())

	data.hasItems = true
	assert.True(t, s.Next())
	assert.Equal(t, Step("payment"), s.Current())
}

func TestSession_Next_NoOpAtLastStep(t *testing.T) {
	t.Parallel()

	data := &checkout{hasItems: true, hasCard: true}
	s := newTestSession(t, "guest", data)

	require.True(t, s.Next())
	require.True(t, s.Next())
	require.True(t, s.IsLast())

	assert.False(t, s.Next())
	assert.Equal(t, Step("confirm"), s.Current())
}

func TestSession_Previous_AlwaysAllowed(t *testing.T) {
	t.Parallel()

	data := &checkout{hasItems: true, hasCard: true}
	s := newTestSession(t, "guest", data)
	require.True(t, s.Next())

	// Invalidate the items gate: backward navigation must still work.
	data.hasItems = false
	assert.True(t, s.Previous())
	assert.Equal(t, Step("items"), s.Current())

	// No-op at the first step.
	assert.False(t, s.Previous())
	assert.Equal(t, Step("items"), s.Current())
}

func TestSession_DataSurvivesNavigation(t *testing.T) {
	t.Parallel()

	data := &checkout{hasItems: true, hasCard: true}
	s := newTestSession(t, "guest", data)

	s.Next()
	s.Previous()
	s.Next()
	s.Next()

	assert.Same(t, data, s.Data)
	assert.True(t, s.Data.hasItems)
	assert.True(t, s.Data.hasCard)
}

func TestSession_SetDiscriminant_RecomputesSequence(t *testing.T) {
	t.Parallel()

	data := &checkout{hasItems: true, hasCard: true}
	s := newTestSession(t, "guest", data)

	// Walk to the last step of the three-step guest sequence, then switch to
	// the two-step member sequence: the index must clamp back into range.
	require.True(t, s.Next())
	require.True(t, s.Next())
	require.Equal(t, 2, s.Index())

	require.NoError(t, s.SetDiscriminant("member"))
	assert.Equal(t, "member", s.Discriminant())
	assert.Equal(t, []Step{"items", "confirm"}, s.Steps())
	assert.Equal(t, 1, s.Index())
	assert.Equal(t, Step("confirm"), s.Current())
}

func TestSession_SetDiscriminant_SameValueIsNoOp(t *testing.T) {
	t.Parallel()

	events := make(chan Event, 8)
	s := newTestSession(t, "guest", &checkout{}, WithEvents[*checkout](events))
	drain(events)

	require.NoError(t, s.SetDiscriminant("guest"))
	assert.Empty(t, drain(events))
}

func TestSession_SetDiscriminant_RefusesEmptySequence(t *testing.T) {
	t.Parallel()

	f := NewFlow[*checkout]("partial").
		Sequence("full", "a", "b").
		Sequence("broken")
	s, err := NewSession(f, "full", &checkout{})
	require.NoError(t, err)

	err = s.SetDiscriminant("broken")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrEmptySequence)
	assert.Equal(t, "full", s.Discriminant(), "failed switch must leave the session untouched")
}

func TestSession_Reset(t *testing.T) {
	t.Parallel()

	data := &checkout{hasItems: true, hasCard: true}
	s := newTestSession(t, "guest", data)
	require.True(t, s.Next())

	s.Reset()
	assert.True(t, s.IsFirst())
	assert.True(t, s.Data.hasItems, "reset keeps accumulated data")
}

func TestSession_Events(t *testing.T) {
	t.Parallel()

	events := make(chan Event, 16)
	data := &checkout{}
	s := newTestSession(t, "guest", data, WithEvents[*checkout](events))

	assert.Equal(t, []string{EventStepEntered}, drain(events), "session start enters the first step")

	s.Next() // refused: gate fails
	assert.Equal(t, []string{EventStepRefused}, drain(events))

	data.hasItems = true
	s.Next()
	assert.Equal(t, []string{EventStepEntered}, drain(events))

	s.Previous()
	assert.Equal(t, []string{EventStepEntered}, drain(events))

	require.NoError(t, s.SetDiscriminant("member"))
	assert.Equal(t, []string{EventSequenceChanged}, drain(events))
}

func TestSession_EventEmissionNeverBlocks(t *testing.T) {
	t.Parallel()

	// Unbuffered channel with no reader: every send would block without the
	// non-blocking emit.
	events := make(chan Event)
	data := &checkout{hasItems: true, hasCard: true}
	s := newTestSession(t, "guest", data, WithEvents[*checkout](events))

	s.Next()
	s.Next()
	s.Previous()
	assert.Equal(t, Step("payment"), s.Current())
}
