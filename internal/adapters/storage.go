package adapters

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/99designs/keyring"

	"github.com/quayside-labs/walletkit/internal/platform"
)

// ErrNotFound is returned by Get for a key that has never been set.
var ErrNotFound = errors.New("key not found")

// StorageAdapter is the platform-abstracted key/value store. Operations take
// a context because the backing store may be asynchronous (OS keychain
// prompts, remote secure enclaves); callers must treat every call as
// deferred even when the variant underneath is synchronous.
type StorageAdapter interface {
	Name() string
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string) error
	Remove(ctx context.Context, key string) error
}

// ResolveStorage picks the storage variant for the detected platform. It
// always succeeds: candidates that fail to construct are logged and skipped,
// and the in-memory store is the terminal fallback.
//
// Chain: OS secure store (react-native, capability-gated) → persistent file
// store (hosts with a real filesystem or browser-persistent analog) →
// in-memory map.
func ResolveStorage(tag platform.Tag, caps platform.CapabilitySet, opts ...Option) StorageAdapter {
	o := buildOptions(opts)

	if tag == platform.ReactNative && caps.SecureStorage {
		s, err := newKeyringStorage(o)
		if err == nil {
			return s
		}
		o.logger.Warn().Err(err).Msg("secure store unavailable, falling back")
	}

	// The server half of a Next.js app gets no persistent store: request
	// lifetimes are too short to own an on-disk cache safely.
	if tag != platform.NextJS {
		s, err := NewFileStorage(o.dir)
		if err == nil {
			return s
		}
		o.logger.Warn().Err(err).Msg("persistent store unavailable, falling back")
	}

	return NewMemoryStorage()
}

// --- OS secure store ---

type keyringStorage struct {
	ring keyring.Keyring
}

func newKeyringStorage(o *resolverOptions) (*keyringStorage, error) {
	open := o.openKeyring
	if open == nil {
		open = defaultKeyringOpen
	}
	ring, err := open()
	if err != nil {
		return nil, fmt.Errorf("opening secure store: %w", err)
	}
	return &keyringStorage{ring: ring}, nil
}

func defaultKeyringOpen() (keyring.Keyring, error) {
	return keyring.Open(keyring.Config{
		ServiceName:              serviceName,
		KeychainTrustApplication: true,
		AllowedBackends: []keyring.BackendType{
			keyring.KeychainBackend,
			keyring.SecretServiceBackend,
			keyring.KWalletBackend,
			keyring.WinCredBackend,
			keyring.FileBackend,
		},
	})
}

func (s *keyringStorage) Name() string { return "secure" }

func (s *keyringStorage) Get(_ context.Context, key string) (string, error) {
	item, err := s.ring.Get(key)
	if errors.Is(err, keyring.ErrKeyNotFound) {
		return "", ErrNotFound
	}
	if err != nil {
		return "", fmt.Errorf("secure store get: %w", err)
	}
	return string(item.Data), nil
}

func (s *keyringStorage) Set(_ context.Context, key, value string) error {
	err := s.ring.Set(keyring.Item{Key: key, Data: []byte(value)})
	if err != nil {
		return fmt.Errorf("secure store set: %w", err)
	}
	return nil
}

func (s *keyringStorage) Remove(_ context.Context, key string) error {
	err := s.ring.Remove(key)
	if errors.Is(err, keyring.ErrKeyNotFound) {
		return nil
	}
	return err
}

// --- persistent file store ---

// FileStorage persists keys as a single JSON map, the browser-localStorage
// analog for hosts with a filesystem.
type FileStorage struct {
	mu   sync.Mutex
	path string
}

// NewFileStorage creates the storage directory and returns a file-backed
// store. Fails when the directory cannot be created or written.
func NewFileStorage(dir string) (*FileStorage, error) {
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return nil, fmt.Errorf("creating storage dir: %w", err)
	}
	return &FileStorage{path: filepath.Join(dir, "storage.json")}, nil
}

func (s *FileStorage) Name() string { return "file" }

func (s *FileStorage) load() (map[string]string, error) {
	data, err := os.ReadFile(s.path)
	if os.IsNotExist(err) {
		return make(map[string]string), nil
	}
	if err != nil {
		return nil, err
	}
	m := make(map[string]string)
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("parsing storage file: %w", err)
	}
	return m, nil
}

func (s *FileStorage) save(m map[string]string) error {
	data, err := json.Marshal(m)
	if err != nil {
		return err
	}
	return os.WriteFile(s.path, data, 0o600)
}

func (s *FileStorage) Get(_ context.Context, key string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	m, err := s.load()
	if err != nil {
		return "", err
	}
	v, ok := m[key]
	if !ok {
		return "", ErrNotFound
	}
	return v, nil
}

func (s *FileStorage) Set(_ context.Context, key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	m, err := s.load()
	if err != nil {
		return err
	}
	m[key] = value
	return s.save(m)
}

func (s *FileStorage) Remove(_ context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	m, err := s.load()
	if err != nil {
		return err
	}
	if _, ok := m[key]; !ok {
		return nil
	}
	delete(m, key)
	return s.save(m)
}

// --- in-memory fallback ---

// MemoryStorage is the always-available fallback. Contents do not survive
// the process.
type MemoryStorage struct {
	mu   sync.RWMutex
	data map[string]string
}

// NewMemoryStorage returns an empty in-memory store.
func NewMemoryStorage() *MemoryStorage {
	return &MemoryStorage{data: make(map[string]string)}
}

func (s *MemoryStorage) Name() string { return "memory" }

func (s *MemoryStorage) Get(_ context.Context, key string) (string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	v, ok := s.data[key]
	if !ok {
		return "", ErrNotFound
	}
	return v, nil
}

func (s *MemoryStorage) Set(_ context.Context, key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data[key] = value
	return nil
}

func (s *MemoryStorage) Remove(_ context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.data, key)
	return nil
}
