package state

// Dispatcher accepts proposed state changes.
type Dispatcher interface {
	Dispatch(a Action)
}

// DispatchFunc adapts a function to Dispatcher.
type DispatchFunc func(a Action)

// Dispatch calls f(a).
func (f DispatchFunc) Dispatch(a Action) { f(a) }

// Store is a synchronous, single-threaded state container. Each dispatched
// action produces one new snapshot and one round of listener calls. Actions
// dispatched from inside a listener are queued until that round finishes,
// so listener calls never overlap.
type Store struct {
	state     ViewState
	listeners []func(ViewState)
	queue     []Action
	busy      bool
}

// NewStore creates a store holding initial.
func NewStore(initial ViewState) *Store {
	return &Store{state: initial}
}

// State returns the current snapshot.
func (s *Store) State() ViewState {
	return s.state
}

// Subscribe registers fn to be called with every new snapshot.
func (s *Store) Subscribe(fn func(ViewState)) {
	s.listeners = append(s.listeners, fn)
}

// Dispatch reduces a into a new snapshot and notifies listeners.
func (s *Store) Dispatch(a Action) {
	s.queue = append(s.queue, a)
	if s.busy {
		return
	}

	s.busy = true
	defer func() { s.busy = false }()
	for len(s.queue) > 0 {
		next := s.queue[0]
		s.queue = s.queue[1:]
		s.state = Reduce(s.state, next)
		for _, fn := range s.listeners {
			fn(s.state)
		}
	}
}
