package event

import "errors"

// ErrReentrantDispatch is the panic value raised when a receiver calls
// DispatchAll on the manager that is currently dispatching to it.
var ErrReentrantDispatch = errors.New("event: DispatchAll called from inside a receiver")

// Policy decides what happens to events added while a dispatch is running.
type Policy int

const (
	// PolicyDefer holds events added during dispatch for the next DispatchAll.
	PolicyDefer Policy = iota
	// PolicyDrain delivers them in the same pass, after everything queued
	// before them.
	PolicyDrain
)

func (p Policy) String() string {
	if p == PolicyDrain {
		return "drain"
	}
	return "defer"
}

// Receiver consumes dispatched events. It must not keep the event after
// OnEvent returns.
type Receiver interface {
	OnEvent(e Event)
}

// ReceiverFunc adapts a function to Receiver.
type ReceiverFunc func(e Event)

func (f ReceiverFunc) OnEvent(e Event) { f(e) }

type Option func(*Manager)

// WithPolicy sets the reentrancy policy. The default is PolicyDefer.
func WithPolicy(p Policy) Option {
	return func(m *Manager) {
		m.policy = p
	}
}

// Manager is a FIFO queue of events that is drained once per frame into a
// single receiver. It is not safe for concurrent use; the frame loop owns it.
type Manager struct {
	items       []Event
	policy      Policy
	dispatching bool
	closed      bool

	// in-flight batch and the index of its next undelivered event
	batch []Event
	pos   int
}

func NewManager(opts ...Option) *Manager {
	m := &Manager{}
	for _, opt := range opts {
		if opt != nil {
			opt(m)
		}
	}
	return m
}

// Add appends an event to the tail of the queue. Adding after Close drops
// the event.
func (m *Manager) Add(e Event) {
	if m == nil || e == nil || m.closed {
		return
	}
	m.items = append(m.items, e)
}

// Len returns the number of queued events.
func (m *Manager) Len() int {
	if m == nil {
		return 0
	}
	return len(m.items)
}

// Policy returns the reentrancy policy.
func (m *Manager) Policy() Policy {
	if m == nil {
		return PolicyDefer
	}
	return m.policy
}

// DispatchAll hands every queued event to r in enqueue order and returns how
// many were delivered. An empty queue is a no-op.
func (m *Manager) DispatchAll(r Receiver) int {
	if m == nil || r == nil {
		return 0
	}
	if m.dispatching {
		panic(ErrReentrantDispatch)
	}
	if len(m.items) == 0 {
		return 0
	}
	m.dispatching = true

	defer func() {
		m.dispatching = false
		// A receiver panicked: the undelivered tail goes back ahead of
		// anything queued since.
		if m.pos < len(m.batch) {
			m.items = append(m.batch[m.pos:len(m.batch):len(m.batch)], m.items...)
		}
		m.batch, m.pos = nil, 0
	}()

	delivered := 0
	for m.batch = m.drain(); len(m.batch) > 0; m.batch = m.next() {
		for m.pos = 0; m.pos < len(m.batch); {
			e := m.batch[m.pos]
			m.batch[m.pos] = nil
			m.pos++
			r.OnEvent(e)
			delivered++
		}
	}
	return delivered
}

// Close discards all queued events without dispatching them and returns how
// many were dropped. Later Adds are ignored. Called from a receiver, it also
// drops the rest of the batch being dispatched.
func (m *Manager) Close() int {
	if m == nil {
		return 0
	}
	n := len(m.items)
	if m.dispatching {
		n += len(m.batch) - m.pos
		clear(m.batch[m.pos:])
		m.batch = m.batch[:m.pos]
	}
	m.flush()
	m.closed = true
	return n
}

func (m *Manager) drain() []Event {
	if len(m.items) == 0 {
		return nil
	}
	out := m.items
	m.items = nil
	return out
}

func (m *Manager) next() []Event {
	if m.policy != PolicyDrain {
		return nil
	}
	return m.drain()
}

func (m *Manager) flush() {
	for i := range m.items {
		m.items[i] = nil
	}
	m.items = nil
}
