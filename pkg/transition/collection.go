package transition

import (
	"context"
	"log/slog"

	"github.com/google/uuid"
)

// Collection orchestrates an ordered set of distinct-attribute transitions on a
// single subject object as one logical operation: before callbacks, state
// persistence, action invocation, after callbacks, and rollback on failure,
// optionally wrapped in the subject's transactional scope.
//
// A collection is consumed by a single Perform call; results and success state
// are not reset between calls.
type Collection struct {
	id             uuid.UUID
	transitions    []Transition
	skipActions    bool
	skipAfter      bool
	useTransaction bool
	logger         *slog.Logger

	performed bool
	success   bool
	results   map[string]any

	// Phase decorators set by NewAttribute; each runs before its phase.
	beforePhase   func(ctx context.Context)
	afterPhase    func(ctx context.Context)
	rollbackPhase func(ctx context.Context)
}

// New builds a collection over transitions. Every transition must target a
// distinct attribute; violations fail here, before any side effect occurs.
func New(transitions []Transition, opts ...Option) (*Collection, error) {
	options := defaultOptions()
	for _, opt := range opts {
		opt(options)
	}

	seen := make(map[string]struct{}, len(transitions))
	for _, t := range transitions {
		if t == nil {
			return nil, ErrNilTransition
		}
		if _, ok := seen[t.Attribute()]; ok {
			return nil, NewDuplicateAttributeError(t.Attribute())
		}
		seen[t.Attribute()] = struct{}{}
	}

	return &Collection{
		id:             uuid.New(),
		transitions:    append([]Transition(nil), transitions...),
		skipActions:    !options.actions,
		skipAfter:      !options.after,
		useTransaction: options.transaction,
		logger:         options.logger,
		results:        make(map[string]any),
	}, nil
}

// Len returns the number of transitions in the collection.
func (c *Collection) Len() int { return len(c.transitions) }

// First returns the first transition, the anchor for the transactional scope,
// or nil for an empty collection.
func (c *Collection) First() Transition {
	if len(c.transitions) == 0 {
		return nil
	}
	return c.transitions[0]
}

// Transitions returns the transitions in collection order.
func (c *Collection) Transitions() []Transition {
	return append([]Transition(nil), c.transitions...)
}

// Results maps each invoked action identifier to its return value. In block
// mode the block's single result appears under every referenced identifier.
// Transitions without an action contribute no entry.
func (c *Collection) Results() map[string]any {
	out := make(map[string]any, len(c.results))
	for k, v := range c.results {
		out[k] = v
	}
	return out
}

// Success reports the outcome of the last Perform call; false until performed.
func (c *Collection) Success() bool { return c.success }

// SkipActions reports whether transition actions are skipped.
func (c *Collection) SkipActions() bool { return c.skipActions }

// SkipAfter reports whether after callbacks are skipped on successful runs.
func (c *Collection) SkipAfter() bool { return c.skipAfter }

// UseTransaction reports whether Perform wraps the pipeline in the subject's
// transactional scope.
func (c *Collection) UseTransaction() bool { return c.useTransaction }

// Perform executes the pipeline in default action mode and reports overall
// success. Non-exceptional failures (a halted before callback, a falsy action
// result) return (false, nil) with rollback already applied; an error from an
// action or the transaction provider is returned unchanged, also with rollback
// already applied.
func (c *Collection) Perform(ctx context.Context) (bool, error) {
	return c.perform(ctx, nil)
}

// PerformBlock executes the pipeline with block invoked once in place of every
// transition action. The block's result determines action success and is
// recorded under each referenced action identifier. A nil block behaves like
// Perform.
func (c *Collection) PerformBlock(ctx context.Context, block BlockFunc) (bool, error) {
	return c.perform(ctx, block)
}

func (c *Collection) perform(ctx context.Context, block BlockFunc) (bool, error) {
	if c.performed {
		return false, ErrAlreadyPerformed
	}
	c.performed = true

	c.logger.DebugContext(ctx, "performing transition collection",
		slog.String("collection_id", c.id.String()),
		slog.Int("transitions", len(c.transitions)),
		slog.Bool("block_mode", block != nil))

	if c.useTransaction && len(c.transitions) > 0 {
		var (
			ok     bool
			runErr error
		)
		txErr := c.transitions[0].Object().WithinTransaction(ctx, func(ctx context.Context) (bool, error) {
			ok, runErr = c.run(ctx, block)
			return ok, runErr
		})
		if runErr != nil {
			return false, runErr
		}
		if txErr != nil {
			return false, txErr
		}
		return ok, nil
	}

	return c.run(ctx, block)
}

// run drives the before, persist, action, after, and rollback phases in order.
func (c *Collection) run(ctx context.Context, block BlockFunc) (bool, error) {
	if c.runBefore(ctx) {
		c.runPersist(ctx)

		ok, err := c.runActions(ctx, block)
		if err != nil {
			// Guarantee rollback before the error reaches the caller;
			// after callbacks are not run on the exceptional path.
			c.logger.WarnContext(ctx, "action failed, rolling back",
				slog.String("collection_id", c.id.String()),
				slog.String("error", err.Error()))
			c.runRollback(ctx)
			return false, err
		}
		c.success = ok
	}

	if c.afterPhase != nil {
		c.afterPhase(ctx)
	}
	// Failing runs always receive after callbacks so failure stays observable.
	if !(c.skipAfter && c.success) {
		c.runAfter(ctx)
	}

	if !c.success {
		c.runRollback(ctx)
	}
	return c.success, nil
}

// runBefore runs before callbacks in collection order, stopping at the first
// halt. Reports whether the pipeline may proceed.
func (c *Collection) runBefore(ctx context.Context) bool {
	if c.beforePhase != nil {
		c.beforePhase(ctx)
	}
	for _, t := range c.transitions {
		if !t.Before(ctx) {
			c.logger.DebugContext(ctx, "before callback halted pipeline",
				slog.String("collection_id", c.id.String()),
				slog.String("attribute", t.Attribute()))
			return false
		}
	}
	return true
}

// runPersist transitions every attribute to its destination state. Never
// short-circuits once reached.
func (c *Collection) runPersist(ctx context.Context) {
	for _, t := range c.transitions {
		t.Persist(ctx)
	}
}

// runActions invokes the distinct set of referenced actions, or the supplied
// block in their place, recording each result. Action success requires every
// recorded result to be truthy; zero invocations succeed vacuously.
func (c *Collection) runActions(ctx context.Context, block BlockFunc) (bool, error) {
	actions := c.actions()

	if block != nil {
		result, err := block(ctx)
		if err != nil {
			return false, err
		}
		for _, action := range actions {
			c.results[action] = result
		}
		return Truthy(result), nil
	}

	if c.skipActions {
		return true, nil
	}

	ok := true
	for _, action := range actions {
		result, err := c.transitions[0].Object().Invoke(ctx, action)
		if err != nil {
			return false, err
		}
		c.results[action] = result
		if !Truthy(result) {
			ok = false
		}
	}
	return ok, nil
}

// runAfter runs after callbacks in collection order, handing each transition
// its own action's recorded result.
func (c *Collection) runAfter(ctx context.Context) {
	for _, t := range c.transitions {
		var result any
		if action := t.Action(); action != "" {
			result = c.results[action]
		}
		t.After(ctx, result, c.success)
	}
}

// runRollback undoes the persisted state change for every transition in the
// collection, not just the ones that caused failure.
func (c *Collection) runRollback(ctx context.Context) {
	if c.rollbackPhase != nil {
		c.rollbackPhase(ctx)
	}
	c.logger.DebugContext(ctx, "rolling back transition collection",
		slog.String("collection_id", c.id.String()))
	for _, t := range c.transitions {
		t.Rollback(ctx)
	}
}

// actions returns the distinct non-empty action identifiers in collection
// order. An action shared by two transitions is invoked once.
func (c *Collection) actions() []string {
	seen := make(map[string]struct{}, len(c.transitions))
	var out []string
	for _, t := range c.transitions {
		action := t.Action()
		if action == "" {
			continue
		}
		if _, ok := seen[action]; ok {
			continue
		}
		seen[action] = struct{}{}
		out = append(out, action)
	}
	return out
}
