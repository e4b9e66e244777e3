// Package adapters provides the concrete storage, crypto and network
// implementations behind the platform abstraction, plus the resolvers that
// pick one variant per capability using an ordered fallback chain.
package adapters

import (
	"io"
	"net/http"
	"os"
	"path/filepath"

	"github.com/99designs/keyring"
	"github.com/rs/zerolog"
)

const serviceName = "walletkit"

type resolverOptions struct {
	logger        zerolog.Logger
	dir           string
	openKeyring   func() (keyring.Keyring, error)
	entropy       io.Reader
	transports    []Transport
	transportsSet bool
}

// Option configures a resolver.
type Option func(*resolverOptions)

// Transport is a named candidate for the network adapter.
type Transport struct {
	Name    string
	Tripper http.RoundTripper
}

// WithLogger sets the logger used for fallback warnings.
func WithLogger(l zerolog.Logger) Option {
	return func(o *resolverOptions) { o.logger = l }
}

// WithStorageDir overrides the directory backing the persistent file store.
func WithStorageDir(dir string) Option {
	return func(o *resolverOptions) { o.dir = dir }
}

// WithKeyringOpener overrides how the OS secure store is opened (tests).
func WithKeyringOpener(open func() (keyring.Keyring, error)) Option {
	return func(o *resolverOptions) { o.openKeyring = open }
}

// WithEntropy overrides the random source for the native crypto adapter (tests).
func WithEntropy(r io.Reader) Option {
	return func(o *resolverOptions) { o.entropy = r }
}

// WithTransports replaces the default network transport candidates. Passing
// no transports simulates a host where nothing is resolvable.
func WithTransports(ts ...Transport) Option {
	return func(o *resolverOptions) {
		o.transports = ts
		o.transportsSet = true
	}
}

func buildOptions(opts []Option) *resolverOptions {
	o := &resolverOptions{
		logger: zerolog.New(os.Stderr).With().Timestamp().Logger(),
	}
	for _, opt := range opts {
		opt(o)
	}
	if o.dir == "" {
		if home, err := os.UserHomeDir(); err == nil {
			o.dir = filepath.Join(home, "."+serviceName)
		} else {
			o.dir = filepath.Join(os.TempDir(), serviceName)
		}
	}
	return o
}
