package wallet

import "sync"

// Event names emitted by a Session.
type Event string

const (
	EventConnect         Event = "connect"
	EventDisconnect      Event = "disconnect"
	EventAccountsChanged Event = "accountsChanged"
	EventChainChanged    Event = "chainChanged"
)

// Payload carries the data for one emitted event. Fields not relevant to the
// event are zero.
type Payload struct {
	Connector string
	Accounts  []Account
	ChainID   string
}

// Handler receives event payloads. Dispatch is synchronous, in subscription
// order; handlers must not block.
type Handler func(Payload)

// Emitter is a minimal event emitter for wallet state transitions.
type Emitter struct {
	mu   sync.Mutex
	next int
	subs map[Event]map[int]Handler
}

// NewEmitter returns an empty emitter.
func NewEmitter() *Emitter {
	return &Emitter{subs: make(map[Event]map[int]Handler)}
}

// On subscribes a handler and returns its unsubscribe function. Unsubscribing
// twice is harmless.
func (e *Emitter) On(ev Event, h Handler) func() {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.subs[ev] == nil {
		e.subs[ev] = make(map[int]Handler)
	}
	id := e.next
	e.next++
	e.subs[ev][id] = h
	return func() {
		e.mu.Lock()
		defer e.mu.Unlock()
		delete(e.subs[ev], id)
	}
}

// Emit dispatches a payload to every subscriber of ev.
func (e *Emitter) Emit(ev Event, p Payload) {
	e.mu.Lock()
	handlers := make([]Handler, 0, len(e.subs[ev]))
	// Stable order keeps dispatch deterministic for tests.
	for id := 0; id < e.next; id++ {
		if h, ok := e.subs[ev][id]; ok {
			handlers = append(handlers, h)
		}
	}
	e.mu.Unlock()

	for _, h := range handlers {
		h(p)
	}
}
