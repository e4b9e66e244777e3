package wallet_test

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/quayside-labs/walletkit/internal/wallet"
)

func TestMockConnectorGeneratesStableAccount(t *testing.T) {
	c := wallet.NewMockConnector(wallet.ConnectorInjected)
	ctx := context.Background()

	first, err := c.Connect(ctx)
	require.NoError(t, err)
	require.Len(t, first, 1)
	assert.True(t, strings.HasPrefix(first[0].Address, "0x"))
	assert.Len(t, first[0].Address, 42)

	second, err := c.Connect(ctx)
	require.NoError(t, err)
	assert.Equal(t, first[0].Address, second[0].Address, "reconnect must report the same account")
}

func TestMockConnectorPinnedAccounts(t *testing.T) {
	c := wallet.NewMockConnector(wallet.ConnectorSocial,
		wallet.WithAccounts(wallet.Account{Address: "0xfixed"}))

	accs, err := c.Connect(context.Background())
	require.NoError(t, err)
	require.Len(t, accs, 1)
	assert.Equal(t, "0xfixed", accs[0].Address)
}

func TestDefaultConnectorSet(t *testing.T) {
	ids := make([]string, 0, 3)
	for _, c := range wallet.Connectors() {
		ids = append(ids, c.ID())
	}
	assert.Equal(t, []string{
		wallet.ConnectorInjected,
		wallet.ConnectorWalletConnect,
		wallet.ConnectorSocial,
	}, ids)
}

func TestConnectorByID(t *testing.T) {
	c, err := wallet.ConnectorByID(wallet.ConnectorWalletConnect)
	require.NoError(t, err)
	assert.Equal(t, wallet.ConnectorWalletConnect, c.ID())

	_, err = wallet.ConnectorByID("ledger")
	assert.Error(t, err)
}
