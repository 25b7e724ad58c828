// Package transition executes state-machine transitions: it coordinates one or
// more simultaneous attribute transitions on a single subject object, ensuring
// state changes, side-effect actions, and lifecycle callbacks happen in a
// fixed, crash-consistent order with automatic rollback on failure.
//
// The package does not decide which transition applies to an event — that is
// resolved upstream (see the statemachine package) and handed in as ready
// Transition values. It only drives the pipeline:
//  1. Optionally enter the subject's transactional scope, anchored on the
//     first transition's object
//  2. Run before callbacks in order, halting on the first false
//  3. Persist every destination state
//  4. Invoke the distinct set of referenced actions (or a caller-supplied
//     block in their place), aggregating results
//  5. Run after callbacks with each transition's action result and the
//     overall outcome
//  6. Roll back every transition when the run did not succeed
//
// # Usage
//
//	coll, err := transition.New([]transition.Transition{stateT, statusT})
//	if err != nil {
//	    return err
//	}
//	ok, err := coll.Perform(ctx)
//
// A falsy action result or a halted before callback makes Perform return
// (false, nil) with rollback already applied. An error raised by an action or
// the transaction provider is returned unchanged, also with rollback already
// applied first — exceptional failures are never absorbed.
//
// # Block mode
//
// PerformBlock invokes the supplied block exactly once in place of every
// transition action; the block's result is recorded under each referenced
// action identifier and its truthiness alone determines action success:
//
//	ok, err := coll.PerformBlock(ctx, func(ctx context.Context) (any, error) {
//	    return order.Save(ctx)
//	})
//
// # Attribute-event collections
//
// NewAttribute builds the variant used when transitions are derived from a
// requested-event marker written on the subject object. The marker is cleared
// before callbacks run (so nested evaluations do not re-trigger it), restored
// on rollback (so a failed attempt can be retried), and — when after callbacks
// are skipped via WithoutAfterCallbacks — each transition is parked in its
// machine's pending-transition slot for deferred after-callback execution.
package transition
