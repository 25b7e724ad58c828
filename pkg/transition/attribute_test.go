package transition_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/statekit/pkg/transition"
)

func TestNewAttribute(t *testing.T) {
	t.Parallel()

	t.Run("duplicate attribute", func(t *testing.T) {
		t.Parallel()

		log := &callLog{}
		obj := newStubObject(log)
		coll, err := transition.NewAttribute([]transition.Transition{
			newStubTransition(log, obj, "state", ""),
			newStubTransition(log, obj, "state", ""),
		}, quiet())

		assert.Nil(t, coll)
		assert.True(t, transition.IsDuplicateAttributeError(err))
	})
}

func TestAttributePerform_ClearsPendingMarkers(t *testing.T) {
	t.Parallel()

	log := &callLog{}
	obj := newStubObject(log)
	state := newStubTransition(log, obj, "state", "")
	state.event = "ship"
	state.machine.pendingEvent = "ship"
	state.machine.pendingTransition = state

	seenDuringBefore := "unset"
	state.onBefore = func() {
		seenDuringBefore = state.machine.pendingEvent
	}

	coll, err := transition.NewAttribute([]transition.Transition{state}, quiet())
	require.NoError(t, err)

	ok, err := coll.Perform(context.Background())
	require.NoError(t, err)
	assert.True(t, ok)

	// Both slots are emptied before any before callback runs, so a nested
	// evaluation cannot pick up the same pending event.
	assert.Equal(t, "", seenDuringBefore)
	assert.Equal(t, "", state.machine.pendingEvent)
	assert.Nil(t, state.machine.pendingTransition)
}

func TestAttributePerform_DefersAfterCallbacks(t *testing.T) {
	t.Parallel()

	t.Run("skip after parks the transition", func(t *testing.T) {
		t.Parallel()

		log := &callLog{}
		obj := newStubObject(log)
		state := newStubTransition(log, obj, "state", "")
		state.event = "ship"
		state.machine.pendingEvent = "ship"

		coll, err := transition.NewAttribute([]transition.Transition{state},
			transition.WithoutAfterCallbacks(), quiet())
		require.NoError(t, err)

		ok, err := coll.Perform(context.Background())
		require.NoError(t, err)
		assert.True(t, ok)

		// The transition is retrievable for out-of-band after execution.
		assert.Same(t, state, state.machine.pendingTransition)
		assert.NotContains(t, log.calls, "after:state:<nil>:true")
	})

	t.Run("default run leaves the slot empty", func(t *testing.T) {
		t.Parallel()

		log := &callLog{}
		obj := newStubObject(log)
		state := newStubTransition(log, obj, "state", "")
		state.event = "ship"
		state.machine.pendingEvent = "ship"

		coll, err := transition.NewAttribute([]transition.Transition{state}, quiet())
		require.NoError(t, err)

		ok, err := coll.Perform(context.Background())
		require.NoError(t, err)
		assert.True(t, ok)

		assert.Nil(t, state.machine.pendingTransition)
		assert.Contains(t, log.calls, "after:state:<nil>:true")
	})

	t.Run("failed run does not park even with skip after", func(t *testing.T) {
		t.Parallel()

		log := &callLog{}
		obj := newStubObject(log)
		obj.returns("save", false)
		state := newStubTransition(log, obj, "state", "save")
		state.event = "ship"
		state.machine.pendingEvent = "ship"

		coll, err := transition.NewAttribute([]transition.Transition{state},
			transition.WithoutAfterCallbacks(), quiet())
		require.NoError(t, err)

		ok, err := coll.Perform(context.Background())
		require.NoError(t, err)
		assert.False(t, ok)

		assert.Nil(t, state.machine.pendingTransition)
		assert.Contains(t, log.calls, "after:state:false:false")
	})
}

func TestAttributePerform_RestoresEventsOnFailure(t *testing.T) {
	t.Parallel()

	t.Run("before halt", func(t *testing.T) {
		t.Parallel()

		log := &callLog{}
		obj := newStubObject(log)
		state := newStubTransition(log, obj, "state", "")
		state.event = "ship"
		state.machine.pendingEvent = "ship"
		state.halt = true
		status := newStubTransition(log, obj, "status", "")
		status.event = "archive"
		status.machine.pendingEvent = "archive"

		coll, err := transition.NewAttribute([]transition.Transition{state, status}, quiet())
		require.NoError(t, err)

		ok, err := coll.Perform(context.Background())
		require.NoError(t, err)
		assert.False(t, ok)

		// Each marker is restored so the same events can be retried.
		assert.Equal(t, "ship", state.machine.pendingEvent)
		assert.Equal(t, "archive", status.machine.pendingEvent)
	})

	t.Run("action error", func(t *testing.T) {
		t.Parallel()

		errBoom := errors.New("ship failed")

		log := &callLog{}
		obj := newStubObject(log)
		obj.fails("ship", errBoom)
		state := newStubTransition(log, obj, "state", "ship")
		state.event = "ship"
		state.machine.pendingEvent = "ship"

		coll, err := transition.NewAttribute([]transition.Transition{state}, quiet())
		require.NoError(t, err)

		ok, err := coll.Perform(context.Background())
		assert.False(t, ok)
		assert.ErrorIs(t, err, errBoom)

		// The exceptional path restores the marker before the error reaches
		// the caller.
		assert.Equal(t, "ship", state.machine.pendingEvent)
		assert.Contains(t, log.calls, "rollback:state")
	})

	t.Run("success leaves markers cleared", func(t *testing.T) {
		t.Parallel()

		log := &callLog{}
		obj := newStubObject(log)
		state := newStubTransition(log, obj, "state", "")
		state.event = "ship"
		state.machine.pendingEvent = "ship"

		coll, err := transition.NewAttribute([]transition.Transition{state}, quiet())
		require.NoError(t, err)

		ok, err := coll.Perform(context.Background())
		require.NoError(t, err)
		assert.True(t, ok)
		assert.Equal(t, "", state.machine.pendingEvent)
	})
}
