package adapters_test

import (
	"encoding/hex"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/quayside-labs/walletkit/internal/adapters"
	"github.com/quayside-labs/walletkit/internal/platform"
)

type failingReader struct{}

func (failingReader) Read([]byte) (int, error) { return 0, errors.New("entropy exhausted") }

func TestResolveCryptoNative(t *testing.T) {
	c := adapters.ResolveCrypto(platform.Web, platform.CapabilitySet{NativeCrypto: true}, nopLogger())
	require.Equal(t, "native", c.Name())
	assert.True(t, c.Secure())

	b, err := c.RandomBytes(32)
	require.NoError(t, err)
	assert.Len(t, b, 32)

	b2, err := c.RandomBytes(32)
	require.NoError(t, err)
	assert.NotEqual(t, b, b2)
}

func TestResolveCryptoWithoutNativeFallsBackInsecure(t *testing.T) {
	c := adapters.ResolveCrypto(platform.Web, platform.CapabilitySet{}, nopLogger())
	require.Equal(t, "insecure", c.Name())
	assert.False(t, c.Secure())

	b, err := c.RandomBytes(16)
	require.NoError(t, err)
	assert.Len(t, b, 16)
}

func TestResolveCryptoBrokenEntropyFallsBackInsecure(t *testing.T) {
	c := adapters.ResolveCrypto(
		platform.Web,
		platform.CapabilitySet{NativeCrypto: true},
		adapters.WithEntropy(failingReader{}),
		nopLogger(),
	)
	assert.Equal(t, "insecure", c.Name())
	assert.False(t, c.Secure())
}

func TestDigestVectors(t *testing.T) {
	c := adapters.ResolveCrypto(platform.Web, platform.CapabilitySet{NativeCrypto: true}, nopLogger())

	tests := []struct {
		alg  adapters.DigestAlgorithm
		data string
		want string
	}{
		{adapters.DigestSHA256, "abc",
			"ba7816bf8f01cfea414140de5dae2223b00361a396177a9cb410ff61f20015ad"},
		{adapters.DigestSHA512, "abc",
			"ddaf35a193617abacc417349ae20413112e6fa4e89a97ea20a9eeee64b55d39a" +
				"2192992a274fc1a836ba3c23a3feebbd454d4423643ce80e2a9ac94fa54ca49f"},
		{adapters.DigestSHA3_256, "",
			"a7ffc6f8bf1ed76651c14756a061d662f580ff4de43b49fa82d80a4b80f8434a"},
		{adapters.DigestKeccak256, "",
			"c5d2460186f7233c927e7db2dcc703c0e500b653ca82273b7bfad8045d85a470"},
	}

	for _, tc := range tests {
		sum, err := c.Digest(tc.alg, []byte(tc.data))
		require.NoError(t, err, string(tc.alg))
		assert.Equal(t, tc.want, hex.EncodeToString(sum), string(tc.alg))
	}
}

func TestDigestUnknownAlgorithm(t *testing.T) {
	c := adapters.ResolveCrypto(platform.Web, platform.CapabilitySet{NativeCrypto: true}, nopLogger())
	_, err := c.Digest("md5", []byte("x"))
	assert.ErrorIs(t, err, adapters.ErrUnknownDigest)
}

func TestInsecureDigestMatchesNative(t *testing.T) {
	native := adapters.ResolveCrypto(platform.Web, platform.CapabilitySet{NativeCrypto: true}, nopLogger())
	insecure := adapters.ResolveCrypto(platform.Web, platform.CapabilitySet{}, nopLogger())

	data := []byte("walletkit")
	a, err := native.Digest(adapters.DigestKeccak256, data)
	require.NoError(t, err)
	b, err := insecure.Digest(adapters.DigestKeccak256, data)
	require.NoError(t, err)
	assert.Equal(t, a, b)
}
