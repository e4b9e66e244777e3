package wallet

import (
	"context"
	"fmt"

	"github.com/ethereum/go-ethereum/crypto"
)

// Account is a single simulated account exposed by a connector.
type Account struct {
	Address string `json:"address"`
}

// Connector bridges the session to an external wallet runtime. The
// implementations here are simulations: they produce real-looking addresses
// from throwaway keys and never sign anything.
type Connector interface {
	ID() string
	Connect(ctx context.Context) ([]Account, error)
	Disconnect(ctx context.Context) error
}

// Built-in connector ids.
const (
	ConnectorInjected      = "injected"
	ConnectorWalletConnect = "walletconnect"
	ConnectorSocial        = "social"
)

// MockConnector simulates an external wallet. Accounts are generated on the
// first Connect and remain stable for the connector's lifetime, matching how
// a real wallet keeps its accounts across reconnects.
type MockConnector struct {
	id       string
	accounts []Account
	failWith error
}

// MockOption configures a MockConnector.
type MockOption func(*MockConnector)

// WithAccounts pins the accounts the connector reports.
func WithAccounts(accs ...Account) MockOption {
	return func(c *MockConnector) { c.accounts = accs }
}

// WithConnectError makes every Connect attempt fail (tests).
func WithConnectError(err error) MockOption {
	return func(c *MockConnector) { c.failWith = err }
}

// NewMockConnector creates a simulated connector with the given id.
func NewMockConnector(id string, opts ...MockOption) *MockConnector {
	c := &MockConnector{id: id}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *MockConnector) ID() string { return c.id }

func (c *MockConnector) Connect(ctx context.Context) ([]Account, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if c.failWith != nil {
		return nil, fmt.Errorf("connector %s: %w", c.id, c.failWith)
	}
	if len(c.accounts) == 0 {
		acc, err := generateAccount()
		if err != nil {
			return nil, err
		}
		c.accounts = []Account{acc}
	}
	return c.accounts, nil
}

func (c *MockConnector) Disconnect(context.Context) error { return nil }

// generateAccount derives an address from a fresh throwaway key. The key is
// discarded immediately; only the address survives.
func generateAccount() (Account, error) {
	key, err := crypto.GenerateKey()
	if err != nil {
		return Account{}, fmt.Errorf("generating account: %w", err)
	}
	return Account{Address: crypto.PubkeyToAddress(key.PublicKey).Hex()}, nil
}

// Connectors returns the default connector set, mirroring the adapters a
// wallet UI offers: a browser-injected wallet, a WalletConnect-style remote
// wallet, and a social-login custodial wallet.
func Connectors() []Connector {
	return []Connector{
		NewMockConnector(ConnectorInjected),
		NewMockConnector(ConnectorWalletConnect),
		NewMockConnector(ConnectorSocial),
	}
}

// ConnectorByID finds a connector in the default set.
func ConnectorByID(id string) (Connector, error) {
	for _, c := range Connectors() {
		if c.ID() == id {
			return c, nil
		}
	}
	return nil, fmt.Errorf("unknown connector: %q", id)
}
