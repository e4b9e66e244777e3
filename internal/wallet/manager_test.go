package wallet_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/quayside-labs/walletkit/internal/adapters"
	"github.com/quayside-labs/walletkit/internal/wallet"
)

func newManager() *wallet.Manager {
	return wallet.NewManager(wallet.WithStorage(adapters.NewMemoryStorage()))
}

func TestManagerAddAndGet(t *testing.T) {
	m := newManager()
	ctx := context.Background()

	err := m.Add(ctx, "main", &wallet.Wallet{Name: "main", Address: "0xabc"})
	require.NoError(t, err)

	w, err := m.Get(ctx, "main")
	require.NoError(t, err)
	assert.Equal(t, "0xabc", w.Address)
	assert.NotEmpty(t, w.CreatedAt)
}

func TestManagerAddDuplicateFails(t *testing.T) {
	m := newManager()
	ctx := context.Background()

	require.NoError(t, m.Add(ctx, "main", &wallet.Wallet{Name: "main", Address: "0x1"}))
	err := m.Add(ctx, "main", &wallet.Wallet{Name: "main", Address: "0x2"})
	assert.ErrorIs(t, err, wallet.ErrWalletExists)
}

func TestManagerGetMissing(t *testing.T) {
	m := newManager()
	_, err := m.Get(context.Background(), "ghost")
	assert.ErrorIs(t, err, wallet.ErrWalletNotFound)
}

func TestManagerRemove(t *testing.T) {
	m := newManager()
	ctx := context.Background()

	require.NoError(t, m.Add(ctx, "gone", &wallet.Wallet{Name: "gone", Address: "0x1"}))
	require.NoError(t, m.Remove(ctx, "gone"))

	_, err := m.Get(ctx, "gone")
	assert.ErrorIs(t, err, wallet.ErrWalletNotFound)

	assert.ErrorIs(t, m.Remove(ctx, "gone"), wallet.ErrWalletNotFound)
}

func TestManagerList(t *testing.T) {
	m := newManager()
	ctx := context.Background()

	require.NoError(t, m.Add(ctx, "a", &wallet.Wallet{Name: "a", Address: "0x1"}))
	require.NoError(t, m.Add(ctx, "b", &wallet.Wallet{Name: "b", Address: "0x2"}))

	assert.Len(t, m.List(ctx), 2)
}

func TestManagerSetDefault(t *testing.T) {
	m := newManager()
	ctx := context.Background()

	require.NoError(t, m.Add(ctx, "a", &wallet.Wallet{Name: "a", Address: "0x1"}))
	require.NoError(t, m.Add(ctx, "b", &wallet.Wallet{Name: "b", Address: "0x2"}))

	require.NoError(t, m.SetDefault(ctx, "b"))
	def := m.Default(ctx)
	require.NotNil(t, def)
	assert.Equal(t, "b", def.Name)

	// Switching the default clears the previous one.
	require.NoError(t, m.SetDefault(ctx, "a"))
	def = m.Default(ctx)
	require.NotNil(t, def)
	assert.Equal(t, "a", def.Name)
}

func TestManagerDefaultSingleWalletFallback(t *testing.T) {
	m := newManager()
	ctx := context.Background()

	require.NoError(t, m.Add(ctx, "only", &wallet.Wallet{Name: "only", Address: "0x1"}))
	def := m.Default(ctx)
	require.NotNil(t, def)
	assert.Equal(t, "only", def.Name)
}

func TestManagerPersistsAcrossInstances(t *testing.T) {
	store := adapters.NewMemoryStorage()
	ctx := context.Background()

	first := wallet.NewManager(wallet.WithStorage(store))
	require.NoError(t, first.Add(ctx, "persisted", &wallet.Wallet{Name: "persisted", Address: "0xdeadbeef"}))

	second := wallet.NewManager(wallet.WithStorage(store))
	w, err := second.Get(ctx, "persisted")
	require.NoError(t, err)
	assert.Equal(t, "0xdeadbeef", w.Address)
}
