package ui

import (
	"context"
	"fmt"
	"os"
	"sync"

	"github.com/rs/zerolog"

	"github.com/quayside-labs/walletkit/internal/platform"
)

// Factory resolves and caches the ComponentBundle for the current platform.
// Resolution is all-or-nothing: either every primitive binds to the terminal
// toolkit or every primitive falls back to the plain variant, so one
// component tree never mixes rendering semantics.
type Factory struct {
	env    platform.Env
	load   func() (*ComponentBundle, error)
	logger zerolog.Logger

	mu     sync.Mutex
	bundle *ComponentBundle
	warned bool
}

// FactoryOption configures a Factory.
type FactoryOption func(*Factory)

// WithEnv overrides the probed environment (tests).
func WithEnv(env platform.Env) FactoryOption {
	return func(f *Factory) { f.env = env }
}

// WithToolkitLoader overrides how the toolkit variant is loaded (tests).
func WithToolkitLoader(load func() (*ComponentBundle, error)) FactoryOption {
	return func(f *Factory) { f.load = load }
}

// WithFactoryLogger sets the logger for fallback warnings.
func WithFactoryLogger(l zerolog.Logger) FactoryOption {
	return func(f *Factory) { f.logger = l }
}

// NewFactory creates an unresolved factory for the host environment.
func NewFactory(opts ...FactoryOption) *Factory {
	f := &Factory{
		env:    platform.HostEnv(),
		load:   func() (*ComponentBundle, error) { return toolkitBundle(), nil },
		logger: zerolog.New(os.Stderr).With().Timestamp().Logger(),
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// Components returns the resolved bundle, resolving synchronously on first
// use. It never fails: if the toolkit cannot be loaded the plain variant is
// bound for every primitive and a warning is logged once. The UI must always
// be able to render something.
func (f *Factory) Components() *ComponentBundle {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.bundle == nil {
		f.bundle = f.resolve()
	}
	return f.bundle
}

// Load is the loading variant of Components for callers that want to perform
// the potentially heavier toolkit load up front. The only error is a
// cancelled context; a toolkit load failure still resolves to the plain
// fallback rather than surfacing.
func (f *Factory) Load(ctx context.Context) (*ComponentBundle, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return f.Components(), nil
}

// resolve is called with f.mu held.
func (f *Factory) resolve() *ComponentBundle {
	if !f.wantToolkit() {
		return plainBundle()
	}

	b, err := f.tryLoad()
	if err != nil {
		if !f.warned {
			f.warned = true
			f.logger.Warn().Err(err).Msg("ui toolkit unavailable, using plain primitives for all components")
		}
		return plainBundle()
	}
	return b
}

// wantToolkit reports whether this platform prefers the terminal toolkit:
// React Native hosts always attempt it, everything else only when the
// capability probe found an interactive terminal.
func (f *Factory) wantToolkit() bool {
	if platform.Identify(f.env) == platform.ReactNative {
		return true
	}
	return platform.Probe(f.env).NativeUIToolkit
}

// tryLoad runs the toolkit loader, converting a panic into an error so a
// broken toolkit can never take down the component tree.
func (f *Factory) tryLoad() (b *ComponentBundle, err error) {
	defer func() {
		if r := recover(); r != nil {
			b, err = nil, fmt.Errorf("toolkit load panicked: %v", r)
		}
	}()
	b, err = f.load()
	if err == nil && (b == nil || !b.Complete()) {
		// A partial binding would mix rendering semantics; reject it whole.
		return nil, fmt.Errorf("toolkit returned an incomplete bundle")
	}
	return b, err
}

// Reset clears the cached bundle (tests only).
func (f *Factory) Reset() {
	f.mu.Lock()
	f.bundle = nil
	f.warned = false
	f.mu.Unlock()
}

// --- process-wide default ---

var (
	factoryMu      sync.Mutex
	defaultFactory = NewFactory()
)

// Components returns the process-wide component bundle.
func Components() *ComponentBundle {
	factoryMu.Lock()
	f := defaultFactory
	factoryMu.Unlock()
	return f.Components()
}

// LoadComponents resolves the process-wide bundle, loading the toolkit if
// needed.
func LoadComponents(ctx context.Context) (*ComponentBundle, error) {
	factoryMu.Lock()
	f := defaultFactory
	factoryMu.Unlock()
	return f.Load(ctx)
}

// ResetComponents clears the process-wide bundle (tests only).
func ResetComponents() {
	factoryMu.Lock()
	f := defaultFactory
	factoryMu.Unlock()
	f.Reset()
}
