package adapters_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/quayside-labs/walletkit/internal/adapters"
	"github.com/quayside-labs/walletkit/internal/platform"
)

func TestResolveNetworkPrefersNative(t *testing.T) {
	n, err := adapters.ResolveNetwork(platform.Web, platform.CapabilitySet{NativeFetch: true}, nopLogger())
	require.NoError(t, err)
	assert.Equal(t, "native", n.Name())
}

func TestResolveNetworkFallsToPolyfill(t *testing.T) {
	n, err := adapters.ResolveNetwork(platform.Web, platform.CapabilitySet{}, nopLogger())
	require.NoError(t, err)
	assert.Equal(t, "polyfill", n.Name())
}

func TestResolveNetworkNoTransportIsFatal(t *testing.T) {
	_, err := adapters.ResolveNetwork(
		platform.Web,
		platform.CapabilitySet{},
		adapters.WithTransports(), // nothing resolvable
		nopLogger(),
	)
	require.ErrorIs(t, err, adapters.ErrNoNetworkTransport)
	assert.Contains(t, err.Error(), "no usable network transport")
}

func TestResolveNetworkSkipsNilCandidates(t *testing.T) {
	_, err := adapters.ResolveNetwork(
		platform.Web,
		platform.CapabilitySet{},
		adapters.WithTransports(adapters.Transport{Name: "broken", Tripper: nil}),
		nopLogger(),
	)
	assert.ErrorIs(t, err, adapters.ErrNoNetworkTransport)
}

func TestNetworkAdapterDo(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "walletkit-test", r.Header.Get("X-Client"))
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]string{"method": r.Method}) //nolint:errcheck
	}))
	defer srv.Close()

	n, err := adapters.ResolveNetwork(platform.Web, platform.CapabilitySet{NativeFetch: true}, nopLogger())
	require.NoError(t, err)

	resp, err := n.Do(context.Background(), &adapters.Request{
		URL:    srv.URL,
		Header: http.Header{"X-Client": []string{"walletkit-test"}},
	})
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.Status)
	assert.Equal(t, "application/json", resp.Header.Get("Content-Type"))

	var body map[string]string
	require.NoError(t, resp.JSON(&body))
	assert.Equal(t, http.MethodGet, body["method"]) // Method defaults to GET
}

func TestNetworkAdapterPostBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		buf := make([]byte, r.ContentLength)
		r.Body.Read(buf) //nolint:errcheck
		w.Write(buf)     //nolint:errcheck
	}))
	defer srv.Close()

	n, err := adapters.ResolveNetwork(platform.Web, platform.CapabilitySet{NativeFetch: true}, nopLogger())
	require.NoError(t, err)

	resp, err := n.Do(context.Background(), &adapters.Request{
		Method: http.MethodPost,
		URL:    srv.URL,
		Body:   []byte(`{"hello":"world"}`),
	})
	require.NoError(t, err)
	assert.Equal(t, `{"hello":"world"}`, resp.Text())
}

func TestNetworkAdapterBadURL(t *testing.T) {
	n, err := adapters.ResolveNetwork(platform.Web, platform.CapabilitySet{NativeFetch: true}, nopLogger())
	require.NoError(t, err)

	_, err = n.Do(context.Background(), &adapters.Request{URL: "://not-a-url"})
	assert.Error(t, err)
}
