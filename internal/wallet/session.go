package wallet

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/google/uuid"
)

// State is the session lifecycle state.
type State string

const (
	StateDisconnected State = "disconnected"
	StateConnecting   State = "connecting"
	StateConnected    State = "connected"
)

// Errors.
var (
	ErrAlreadyConnected = errors.New("session already connected or connecting")
	ErrNotConnected     = errors.New("session not connected")
)

// Session is the wallet connection state machine:
//
//	disconnected → connecting → connected → disconnected
//
// Transitions emit events through the attached emitter. A failed connect
// returns the session to disconnected.
type Session struct {
	emitter *Emitter

	mu        sync.Mutex
	id        string
	state     State
	connector Connector
	accounts  []Account
	chainID   string
}

// NewSession creates a disconnected session. A nil emitter gets a private
// one, so event emission never needs a nil check.
func NewSession(em *Emitter) *Session {
	if em == nil {
		em = NewEmitter()
	}
	return &Session{emitter: em, state: StateDisconnected}
}

// State returns the current lifecycle state.
func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// ID returns the session id, empty when disconnected.
func (s *Session) ID() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.id
}

// Accounts returns the connected accounts (nil when disconnected).
func (s *Session) Accounts() []Account {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]Account(nil), s.accounts...)
}

// ChainID returns the active chain id, empty when disconnected.
func (s *Session) ChainID() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.chainID
}

// Connect drives the session through the connector. Only a disconnected
// session may connect; overlapping attempts are rejected rather than queued.
func (s *Session) Connect(ctx context.Context, c Connector) error {
	s.mu.Lock()
	if s.state != StateDisconnected {
		s.mu.Unlock()
		return ErrAlreadyConnected
	}
	s.state = StateConnecting
	s.mu.Unlock()

	accounts, err := c.Connect(ctx)

	s.mu.Lock()
	if err != nil {
		s.state = StateDisconnected
		s.mu.Unlock()
		return fmt.Errorf("connecting via %s: %w", c.ID(), err)
	}
	s.state = StateConnected
	s.id = uuid.NewString()
	s.connector = c
	s.accounts = accounts
	s.chainID = "1" // mainnet until the host switches
	payload := Payload{Connector: c.ID(), Accounts: accounts, ChainID: s.chainID}
	s.mu.Unlock()

	s.emitter.Emit(EventConnect, payload)
	return nil
}

// Disconnect tears the session down and emits the disconnect event.
func (s *Session) Disconnect(ctx context.Context) error {
	s.mu.Lock()
	if s.state != StateConnected {
		s.mu.Unlock()
		return ErrNotConnected
	}
	c := s.connector
	s.state = StateDisconnected
	s.id = ""
	s.connector = nil
	s.accounts = nil
	s.chainID = ""
	s.mu.Unlock()

	if err := c.Disconnect(ctx); err != nil {
		return fmt.Errorf("disconnecting %s: %w", c.ID(), err)
	}
	s.emitter.Emit(EventDisconnect, Payload{Connector: c.ID()})
	return nil
}

// SwitchChain changes the active chain and emits chainChanged.
func (s *Session) SwitchChain(chainID string) error {
	s.mu.Lock()
	if s.state != StateConnected {
		s.mu.Unlock()
		return ErrNotConnected
	}
	s.chainID = chainID
	payload := Payload{Connector: s.connector.ID(), ChainID: chainID}
	s.mu.Unlock()

	s.emitter.Emit(EventChainChanged, payload)
	return nil
}

// SetAccounts replaces the account list and emits accountsChanged. Hosts call
// this when the underlying wallet reports an account switch.
func (s *Session) SetAccounts(accounts []Account) error {
	s.mu.Lock()
	if s.state != StateConnected {
		s.mu.Unlock()
		return ErrNotConnected
	}
	s.accounts = append([]Account(nil), accounts...)
	payload := Payload{Connector: s.connector.ID(), Accounts: s.accounts}
	s.mu.Unlock()

	s.emitter.Emit(EventAccountsChanged, payload)
	return nil
}
