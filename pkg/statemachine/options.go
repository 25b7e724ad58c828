package statemachine

// Option configures a machine during construction.
type Option func(*Machine) error

// TransitionOption configures a single transition with guards.
type TransitionOption func(*transitionConfig)

// TransitionDef defines a transition between states.
type TransitionDef struct {
	From   State
	To     State
	Event  Event
	Guards []Guard
}

type transitionConfig struct {
	guards []Guard
}

// WithTransition adds a single transition to the machine.
func WithTransition(from, to State, event Event, opts ...TransitionOption) Option {
	return func(m *Machine) error {
		cfg := &transitionConfig{}
		for _, opt := range opts {
			opt(cfg)
		}

		return m.AddTransition(from, to, event, cfg.guards)
	}
}

// WithTransitions adds multiple transitions to the machine at once.
func WithTransitions(transitions []TransitionDef) Option {
	return func(m *Machine) error {
		for _, t := range transitions {
			if err := m.AddTransition(t.From, t.To, t.Event, t.Guards); err != nil {
				return err
			}
		}
		return nil
	}
}

// WithAction sets the action identifier carried by every transition this
// machine produces; the subject record must have an action registered under
// the same name for default-mode collections to complete.
func WithAction(name string) Option {
	return func(m *Machine) error {
		m.action = name
		return nil
	}
}

// WithBeforeCallback registers a callback run before every transition of this
// machine persists. Returning false halts the collection.
func WithBeforeCallback(cb BeforeCallback) Option {
	return func(m *Machine) error {
		if cb != nil {
			m.before = append(m.before, cb)
		}
		return nil
	}
}

// WithAfterCallback registers a callback run after the pipeline settles.
func WithAfterCallback(cb AfterCallback) Option {
	return func(m *Machine) error {
		if cb != nil {
			m.after = append(m.after, cb)
		}
		return nil
	}
}

// WithGuard adds a single guard to a transition.
func WithGuard(guard Guard) TransitionOption {
	return func(cfg *transitionConfig) {
		if guard != nil {
			cfg.guards = append(cfg.guards, guard)
		}
	}
}

// WithGuards adds multiple guards to a transition.
func WithGuards(guards ...Guard) TransitionOption {
	return func(cfg *transitionConfig) {
		for _, guard := range guards {
			if guard != nil {
				cfg.guards = append(cfg.guards, guard)
			}
		}
	}
}
