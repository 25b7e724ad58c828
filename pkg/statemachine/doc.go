// Package statemachine defines attribute-scoped state machines and the
// in-memory subject objects they drive, feeding resolved transitions into the
// transition package's execution pipeline.
//
// A Machine governs one named attribute (e.g. "state", "status") and holds no
// per-subject state: the same machine drives any number of Records. Two
// minimal interfaces – State and Event – leave the modelling of domain states
// and events to the caller, with StringState and StringEvent as ready-made
// helpers.
//
// # Usage
//
//	const (
//	    Draft     = statemachine.StringState("draft")
//	    Published = statemachine.StringState("published")
//	    Publish   = statemachine.StringEvent("publish")
//	)
//
//	machine := statemachine.MustNew("state", Draft,
//	    statemachine.WithTransition(Draft, Published, Publish),
//	    statemachine.WithAction("notify"),
//	)
//
//	rec := statemachine.NewRecord()
//	rec.RegisterAction("notify", func(ctx context.Context) (any, error) {
//	    return notifier.Send(ctx, rec.ID())
//	})
//
//	ok, err := machine.Fire(ctx, rec, Publish)
//
// Fire resolves the event against the record's current attribute value and
// performs it through a transition.Collection, so registered before/after
// callbacks, the machine action, and rollback behave exactly as multi-machine
// collections do.
//
// # Simultaneous transitions
//
// To change several attributes as one operation, resolve a transition per
// machine with TransitionFor and perform them with transition.New. For the
// requested-event flow, write markers with SetPendingEvent and hand the
// machines to FirePending, which drives a transition.AttributeCollection:
// markers are cleared while the run is in flight and restored on failure so
// the events can be retried.
//
// # Guards and callbacks
//
// Guards veto a transition during resolution; first transition whose guards
// all pass wins. Before callbacks run inside the pipeline and may halt it by
// returning false. After callbacks observe the action result and the overall
// outcome, including failed runs.
//
// # Errors
//
// Resolution failures are rich error types with helper predicates
// (IsNoTransitionAvailableError, IsTransitionRejectedError) to distinguish
// "transition not defined" from "guard rejected".
package statemachine
