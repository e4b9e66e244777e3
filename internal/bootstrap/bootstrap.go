// Package bootstrap detects the host platform once per process and memoizes
// the resolved adapter bundle. Construction is guarded so overlapping first
// requests coalesce into a single detection run and every caller observes the
// identical bundle instance.
package bootstrap

import (
	"context"
	"fmt"
	"sync"

	"golang.org/x/sync/singleflight"

	"github.com/quayside-labs/walletkit/internal/adapters"
	"github.com/quayside-labs/walletkit/internal/platform"
)

// AdapterBundle is the resolved adapter set plus the detection results that
// produced it. It is shared and read-only after construction; consumers must
// not mutate it.
type AdapterBundle struct {
	Platform platform.Tag
	Caps     platform.CapabilitySet
	Storage  adapters.StorageAdapter
	Crypto   adapters.CryptoAdapter
	Network  adapters.NetworkAdapter
}

// Runtime owns one memoized bundle for one environment.
type Runtime struct {
	env  platform.Env
	opts []adapters.Option

	sf     singleflight.Group
	mu     sync.RWMutex
	bundle *AdapterBundle
}

// New creates a Runtime for env. Resolver options are applied to every
// adapter resolution the runtime performs.
func New(env platform.Env, opts ...adapters.Option) *Runtime {
	return &Runtime{env: env, opts: opts}
}

// Bundle returns the process bundle, constructing it on first use. The first
// call runs detection and resolution; every later call, including concurrent
// calls issued before the first completes, returns the same instance without
// re-running detection. The only failure mode is an unresolvable network
// adapter, which is fatal and not cached.
func (r *Runtime) Bundle(ctx context.Context) (*AdapterBundle, error) {
	r.mu.RLock()
	b := r.bundle
	r.mu.RUnlock()
	if b != nil {
		return b, nil
	}

	v, err, _ := r.sf.Do("bundle", func() (any, error) {
		// A previous flight may have completed between the fast-path
		// check and joining this one.
		r.mu.RLock()
		cached := r.bundle
		r.mu.RUnlock()
		if cached != nil {
			return cached, nil
		}

		if err := ctx.Err(); err != nil {
			return nil, err
		}

		built, err := r.build()
		if err != nil {
			return nil, err
		}

		r.mu.Lock()
		r.bundle = built
		r.mu.Unlock()
		return built, nil
	})
	if err != nil {
		return nil, err
	}
	return v.(*AdapterBundle), nil
}

func (r *Runtime) build() (*AdapterBundle, error) {
	tag := platform.Identify(r.env)
	caps := platform.Probe(r.env)

	network, err := adapters.ResolveNetwork(tag, caps, r.opts...)
	if err != nil {
		return nil, fmt.Errorf("resolving network adapter for %s: %w", tag, err)
	}

	return &AdapterBundle{
		Platform: tag,
		Caps:     caps,
		Storage:  adapters.ResolveStorage(tag, caps, r.opts...),
		Crypto:   adapters.ResolveCrypto(tag, caps, r.opts...),
		Network:  network,
	}, nil
}

// Reset clears the cached bundle so the next Bundle call re-detects. Intended
// for tests; production code never invalidates the bundle.
func (r *Runtime) Reset() {
	r.mu.Lock()
	r.bundle = nil
	r.mu.Unlock()
	r.sf.Forget("bundle")
}

// --- process-wide default ---

var (
	defaultMu sync.Mutex
	defaultRT = New(platform.HostEnv())
)

// Default returns the process-wide runtime backed by the real host.
func Default() *Runtime {
	defaultMu.Lock()
	defer defaultMu.Unlock()
	return defaultRT
}

// Configure replaces the default runtime's resolver options. Must be called
// before the first Get; a bundle already constructed is left in place.
func Configure(opts ...adapters.Option) {
	defaultMu.Lock()
	defer defaultMu.Unlock()
	defaultRT = New(platform.HostEnv(), opts...)
}

// Get returns the default runtime's bundle.
func Get(ctx context.Context) (*AdapterBundle, error) {
	return Default().Bundle(ctx)
}

// Reset clears the default runtime's bundle (tests only).
func Reset() {
	Default().Reset()
}
