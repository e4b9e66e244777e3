package wallet

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/quayside-labs/walletkit/internal/adapters"
)

// storageKey is where the manager persists its wallet list through the
// resolved storage adapter.
const storageKey = "walletkit.wallets"

// Errors.
var (
	ErrWalletNotFound = errors.New("wallet not found")
	ErrWalletExists   = errors.New("wallet already exists")
)

// Wallet holds metadata for a single tracked wallet. Addresses are simulated
// account identifiers supplied by a connector; no key material is stored.
type Wallet struct {
	Name      string `json:"name"`
	Address   string `json:"address"`
	Connector string `json:"connector,omitempty"` // connector id that produced the address
	IsDefault bool   `json:"is_default"`
	CreatedAt string `json:"created_at"`
}

// Manager handles wallet CRUD on top of whichever storage adapter the
// platform resolved — secure store, file, or in-memory.
type Manager struct {
	store   adapters.StorageAdapter
	wallets map[string]*Wallet
	loaded  bool
}

// Option configures a Manager.
type Option func(*Manager)

// WithStorage sets the backing storage adapter.
func WithStorage(s adapters.StorageAdapter) Option {
	return func(m *Manager) { m.store = s }
}

// NewManager creates a wallet manager. Without options it stores wallets in
// memory only.
func NewManager(opts ...Option) *Manager {
	m := &Manager{
		wallets: make(map[string]*Wallet),
		store:   adapters.NewMemoryStorage(),
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Add registers a wallet under a unique name.
func (m *Manager) Add(ctx context.Context, name string, w *Wallet) error {
	if err := m.load(ctx); err != nil {
		return err
	}
	if _, exists := m.wallets[name]; exists {
		return ErrWalletExists
	}
	if w.CreatedAt == "" {
		w.CreatedAt = time.Now().UTC().Format(time.RFC3339)
	}
	m.wallets[name] = w
	return m.persist(ctx)
}

// Get returns a wallet by name.
func (m *Manager) Get(ctx context.Context, name string) (*Wallet, error) {
	if err := m.load(ctx); err != nil {
		return nil, err
	}
	w, ok := m.wallets[name]
	if !ok {
		return nil, ErrWalletNotFound
	}
	return w, nil
}

// Remove deletes a wallet by name.
func (m *Manager) Remove(ctx context.Context, name string) error {
	if err := m.load(ctx); err != nil {
		return err
	}
	if _, ok := m.wallets[name]; !ok {
		return ErrWalletNotFound
	}
	delete(m.wallets, name)
	return m.persist(ctx)
}

// List returns all wallets.
func (m *Manager) List(ctx context.Context) []*Wallet {
	m.load(ctx) //nolint:errcheck
	out := make([]*Wallet, 0, len(m.wallets))
	for _, w := range m.wallets {
		out = append(out, w)
	}
	return out
}

// SetDefault marks a wallet as the default.
func (m *Manager) SetDefault(ctx context.Context, name string) error {
	if err := m.load(ctx); err != nil {
		return err
	}
	if _, ok := m.wallets[name]; !ok {
		return ErrWalletNotFound
	}
	for _, w := range m.wallets {
		w.IsDefault = w.Name == name
	}
	return m.persist(ctx)
}

// Default returns the default wallet, or nil if none.
func (m *Manager) Default(ctx context.Context) *Wallet {
	m.load(ctx) //nolint:errcheck
	for _, w := range m.wallets {
		if w.IsDefault {
			return w
		}
	}
	// Fallback: return the only wallet if exactly one exists.
	if len(m.wallets) == 1 {
		for _, w := range m.wallets {
			return w
		}
	}
	return nil
}

// --- persistence through the storage adapter ---

func (m *Manager) load(ctx context.Context) error {
	if m.loaded {
		return nil
	}
	raw, err := m.store.Get(ctx, storageKey)
	if errors.Is(err, adapters.ErrNotFound) {
		m.loaded = true
		return nil
	}
	if err != nil {
		return fmt.Errorf("loading wallets: %w", err)
	}
	var wallets []*Wallet
	if err := json.Unmarshal([]byte(raw), &wallets); err != nil {
		return fmt.Errorf("parsing wallets: %w", err)
	}
	for _, w := range wallets {
		m.wallets[w.Name] = w
	}
	m.loaded = true
	return nil
}

func (m *Manager) persist(ctx context.Context) error {
	wallets := make([]*Wallet, 0, len(m.wallets))
	for _, w := range m.wallets {
		wallets = append(wallets, w)
	}
	data, err := json.Marshal(wallets)
	if err != nil {
		return err
	}
	if err := m.store.Set(ctx, storageKey, string(data)); err != nil {
		return fmt.Errorf("persisting wallets: %w", err)
	}
	return nil
}
