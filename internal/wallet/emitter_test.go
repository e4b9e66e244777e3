package wallet_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/quayside-labs/walletkit/internal/wallet"
)

func TestEmitterDispatchesToSubscribers(t *testing.T) {
	em := wallet.NewEmitter()

	var got []wallet.Payload
	em.On(wallet.EventConnect, func(p wallet.Payload) { got = append(got, p) })

	em.Emit(wallet.EventConnect, wallet.Payload{Connector: "injected", ChainID: "1"})

	assert.Len(t, got, 1)
	assert.Equal(t, "injected", got[0].Connector)
	assert.Equal(t, "1", got[0].ChainID)
}

func TestEmitterEventIsolation(t *testing.T) {
	em := wallet.NewEmitter()

	connects := 0
	disconnects := 0
	em.On(wallet.EventConnect, func(wallet.Payload) { connects++ })
	em.On(wallet.EventDisconnect, func(wallet.Payload) { disconnects++ })

	em.Emit(wallet.EventConnect, wallet.Payload{})
	em.Emit(wallet.EventConnect, wallet.Payload{})

	assert.Equal(t, 2, connects)
	assert.Equal(t, 0, disconnects)
}

func TestEmitterUnsubscribe(t *testing.T) {
	em := wallet.NewEmitter()

	calls := 0
	off := em.On(wallet.EventChainChanged, func(wallet.Payload) { calls++ })

	em.Emit(wallet.EventChainChanged, wallet.Payload{ChainID: "1"})
	off()
	em.Emit(wallet.EventChainChanged, wallet.Payload{ChainID: "137"})
	off() // second call is a no-op

	assert.Equal(t, 1, calls)
}

func TestEmitterDispatchOrder(t *testing.T) {
	em := wallet.NewEmitter()

	var order []string
	em.On(wallet.EventConnect, func(wallet.Payload) { order = append(order, "first") })
	em.On(wallet.EventConnect, func(wallet.Payload) { order = append(order, "second") })
	em.On(wallet.EventConnect, func(wallet.Payload) { order = append(order, "third") })

	em.Emit(wallet.EventConnect, wallet.Payload{})

	assert.Equal(t, []string{"first", "second", "third"}, order)
}

func TestEmitterNoSubscribers(t *testing.T) {
	em := wallet.NewEmitter()
	assert.NotPanics(t, func() {
		em.Emit(wallet.EventAccountsChanged, wallet.Payload{})
	})
}
