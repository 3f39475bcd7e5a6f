package state

// Enterer is implemented by states with an enter callback.
type Enterer[C any] interface {
	Enter(ctx C)
}

// Updater is implemented by states with a per-frame update.
type Updater[C any] interface {
	Update(ctx C)
}

// LateUpdater is implemented by states that react after the physics move.
type LateUpdater[C any] interface {
	LateUpdate(ctx C)
}

// Exiter is implemented by states with an exit callback.
type Exiter[C any] interface {
	Exit(ctx C)
}

// Machine runs exactly one active state out of a fixed set.
// Every callback is optional; a handler implements whichever of
// Enterer, Updater, LateUpdater and Exiter it needs.
type Machine[C any] struct {
	ctx      C
	handlers map[ID]any
	current  ID
	next     ID
	started  bool
	exiting  bool

	// OnChange is called after the active state changes and before the
	// new state's Enter runs.
	OnChange func(from, to ID)
}

// NewMachine creates a machine whose callbacks receive ctx.
func NewMachine[C any](ctx C) *Machine[C] {
	return &Machine[C]{
		ctx:      ctx,
		handlers: make(map[ID]any),
	}
}

// Add registers the handler for a state.
func (m *Machine[C]) Add(id ID, handler any) {
	m.handlers[id] = handler
}

// Start activates the initial state and runs its Enter.
func (m *Machine[C]) Start(id ID) {
	m.started = true
	m.current = id
	if e, ok := m.handlers[id].(Enterer[C]); ok {
		e.Enter(m.ctx)
	}
}

// Current returns the active state.
func (m *Machine[C]) Current() ID {
	return m.current
}

// Set transitions to id. Setting the active state is a no-op.
// Calling Set from inside an Exit retargets the pending transition.
// Calling Set from inside an Enter leaves the just-entered state, so a
// state can redirect immediately without its predecessor exiting twice.
func (m *Machine[C]) Set(id ID) {
	if !m.started {
		m.Start(id)
		return
	}
	if m.exiting {
		m.next = id
		return
	}
	if id == m.current {
		return
	}

	m.next = id
	m.exiting = true
	if e, ok := m.handlers[m.current].(Exiter[C]); ok {
		e.Exit(m.ctx)
	}
	m.exiting = false

	from := m.current
	m.current = m.next
	if m.OnChange != nil {
		m.OnChange(from, m.current)
	}
	if e, ok := m.handlers[m.current].(Enterer[C]); ok {
		e.Enter(m.ctx)
	}
}

// Update runs the active state's Update.
func (m *Machine[C]) Update() {
	if u, ok := m.handlers[m.current].(Updater[C]); ok {
		u.Update(m.ctx)
	}
}

// LateUpdate runs the active state's LateUpdate.
func (m *Machine[C]) LateUpdate() {
	if u, ok := m.handlers[m.current].(LateUpdater[C]); ok {
		u.LateUpdate(m.ctx)
	}
}
