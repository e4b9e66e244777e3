package adapters

import (
	"crypto/rand"
	"crypto/sha256"
	"crypto/sha512"
	"errors"
	"fmt"
	"io"
	mrand "math/rand"
	"sync"
	"time"

	ethcrypto "github.com/ethereum/go-ethereum/crypto"
	"golang.org/x/crypto/sha3"

	"github.com/quayside-labs/walletkit/internal/platform"
)

// DigestAlgorithm is the closed set of digests the crypto adapter supports.
type DigestAlgorithm string

const (
	DigestSHA256    DigestAlgorithm = "sha256"
	DigestSHA512    DigestAlgorithm = "sha512"
	DigestSHA3_256  DigestAlgorithm = "sha3-256"
	DigestKeccak256 DigestAlgorithm = "keccak256"
)

// ErrUnknownDigest is returned for an algorithm outside the supported set.
var ErrUnknownDigest = errors.New("unknown digest algorithm")

// CryptoAdapter provides random bytes and digests. Secure reports whether
// RandomBytes is cryptographically strong; callers producing key material
// must check it rather than trust the variant they happened to receive.
type CryptoAdapter interface {
	Name() string
	Secure() bool
	RandomBytes(n int) ([]byte, error)
	Digest(alg DigestAlgorithm, data []byte) ([]byte, error)
}

// ResolveCrypto picks the crypto variant. It always succeeds: without a
// strong random source it degrades to the pseudo-random fallback and logs a
// loud warning once. The fallback is never silently treated as secure — the
// returned adapter reports Secure() == false.
func ResolveCrypto(_ platform.Tag, caps platform.CapabilitySet, opts ...Option) CryptoAdapter {
	o := buildOptions(opts)

	if caps.NativeCrypto {
		entropy := o.entropy
		if entropy == nil {
			entropy = rand.Reader
		}
		// Verify the source actually yields bytes before committing to it.
		var probe [1]byte
		if _, err := io.ReadFull(entropy, probe[:]); err == nil {
			return &nativeCrypto{entropy: entropy}
		} else {
			o.logger.Warn().Err(err).Msg("entropy source failed, falling back")
		}
	}

	o.logger.Warn().
		Str("adapter", "insecure").
		Msg("no strong random source available: using pseudo-random fallback, unsuitable for key material")
	return newInsecureCrypto()
}

func digest(alg DigestAlgorithm, data []byte) ([]byte, error) {
	switch alg {
	case DigestSHA256:
		sum := sha256.Sum256(data)
		return sum[:], nil
	case DigestSHA512:
		sum := sha512.Sum512(data)
		return sum[:], nil
	case DigestSHA3_256:
		sum := sha3.Sum256(data)
		return sum[:], nil
	case DigestKeccak256:
		return ethcrypto.Keccak256(data), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownDigest, alg)
	}
}

// --- native variant ---

type nativeCrypto struct {
	entropy io.Reader
}

func (c *nativeCrypto) Name() string { return "native" }
func (c *nativeCrypto) Secure() bool { return true }

func (c *nativeCrypto) RandomBytes(n int) ([]byte, error) {
	b := make([]byte, n)
	if _, err := io.ReadFull(c.entropy, b); err != nil {
		return nil, fmt.Errorf("reading random bytes: %w", err)
	}
	return b, nil
}

func (c *nativeCrypto) Digest(alg DigestAlgorithm, data []byte) ([]byte, error) {
	return digest(alg, data)
}

// --- pseudo-random fallback ---

type insecureCrypto struct {
	mu  sync.Mutex
	rng *mrand.Rand
}

func newInsecureCrypto() *insecureCrypto {
	return &insecureCrypto{rng: mrand.New(mrand.NewSource(time.Now().UnixNano()))}
}

func (c *insecureCrypto) Name() string { return "insecure" }
func (c *insecureCrypto) Secure() bool { return false }

func (c *insecureCrypto) RandomBytes(n int) ([]byte, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	b := make([]byte, n)
	c.rng.Read(b) //nolint:errcheck // math/rand Read never fails
	return b, nil
}

// Digest is identical to the native variant: hashing needs no entropy.
func (c *insecureCrypto) Digest(alg DigestAlgorithm, data []byte) ([]byte, error) {
	return digest(alg, data)
}
