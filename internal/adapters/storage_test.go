package adapters_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/99designs/keyring"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/quayside-labs/walletkit/internal/adapters"
	"github.com/quayside-labs/walletkit/internal/platform"
)

func nopLogger() adapters.Option {
	return adapters.WithLogger(zerolog.Nop())
}

func TestResolveStorageNextJSUsesMemory(t *testing.T) {
	s := adapters.ResolveStorage(platform.NextJS, platform.CapabilitySet{}, nopLogger())
	assert.Equal(t, "memory", s.Name())
}

func TestResolveStorageReactNativeUsesSecureStore(t *testing.T) {
	open := func() (keyring.Keyring, error) {
		return keyring.NewArrayKeyring(nil), nil
	}
	s := adapters.ResolveStorage(
		platform.ReactNative,
		platform.CapabilitySet{SecureStorage: true},
		adapters.WithKeyringOpener(open),
		nopLogger(),
	)
	require.Equal(t, "secure", s.Name())

	ctx := context.Background()
	require.NoError(t, s.Set(ctx, "k", "v"))
	v, err := s.Get(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, "v", v)
}

func TestResolveStorageSecureStoreFailureFallsToFile(t *testing.T) {
	open := func() (keyring.Keyring, error) {
		return nil, errors.New("keychain locked")
	}
	s := adapters.ResolveStorage(
		platform.ReactNative,
		platform.CapabilitySet{SecureStorage: true},
		adapters.WithKeyringOpener(open),
		adapters.WithStorageDir(t.TempDir()),
		nopLogger(),
	)
	assert.Equal(t, "file", s.Name())
}

func TestResolveStorageNoPersistentStoreFallsToMemory(t *testing.T) {
	// A regular file in the directory position makes MkdirAll fail.
	blocker := filepath.Join(t.TempDir(), "blocker")
	require.NoError(t, os.WriteFile(blocker, nil, 0o600))

	s := adapters.ResolveStorage(
		platform.ReactNative,
		platform.CapabilitySet{}, // no secure storage either
		adapters.WithStorageDir(filepath.Join(blocker, "sub")),
		nopLogger(),
	)
	require.Equal(t, "memory", s.Name())

	// The degraded store must still be fully functional.
	ctx := context.Background()
	require.NoError(t, s.Set(ctx, "k", "v"))
	v, err := s.Get(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, "v", v)
}

func TestResolveStorageWebUsesFileStore(t *testing.T) {
	s := adapters.ResolveStorage(
		platform.Web,
		platform.CapabilitySet{},
		adapters.WithStorageDir(t.TempDir()),
		nopLogger(),
	)
	assert.Equal(t, "file", s.Name())
}

func TestFileStorageRoundTrip(t *testing.T) {
	dir := t.TempDir()
	s, err := adapters.NewFileStorage(dir)
	require.NoError(t, err)

	ctx := context.Background()
	require.NoError(t, s.Set(ctx, "a", "1"))
	require.NoError(t, s.Set(ctx, "b", "2"))

	v, err := s.Get(ctx, "a")
	require.NoError(t, err)
	assert.Equal(t, "1", v)

	// Contents survive a fresh adapter over the same directory.
	s2, err := adapters.NewFileStorage(dir)
	require.NoError(t, err)
	v, err = s2.Get(ctx, "b")
	require.NoError(t, err)
	assert.Equal(t, "2", v)
}

func TestFileStorageMissingKey(t *testing.T) {
	s, err := adapters.NewFileStorage(t.TempDir())
	require.NoError(t, err)

	_, err = s.Get(context.Background(), "ghost")
	assert.ErrorIs(t, err, adapters.ErrNotFound)

	// Removing a missing key is not an error.
	assert.NoError(t, s.Remove(context.Background(), "ghost"))
}

func TestMemoryStorageRemove(t *testing.T) {
	s := adapters.NewMemoryStorage()
	ctx := context.Background()

	require.NoError(t, s.Set(ctx, "k", "v"))
	require.NoError(t, s.Remove(ctx, "k"))

	_, err := s.Get(ctx, "k")
	assert.ErrorIs(t, err, adapters.ErrNotFound)
}
