package ui_test

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/quayside-labs/walletkit/internal/platform"
	"github.com/quayside-labs/walletkit/internal/ui"
)

type fakeEnv struct {
	globals map[string]string
	modules map[string]bool
}

func (e *fakeEnv) Global(name string) (string, bool) {
	v, ok := e.globals[name]
	return v, ok
}

func (e *fakeEnv) Module(name string) bool { return e.modules[name] }

func rnEnv() *fakeEnv {
	return &fakeEnv{globals: map[string]string{platform.MarkerNavigatorProduct: "ReactNative"}}
}

func TestFactoryBindsToolkitOnReactNative(t *testing.T) {
	f := ui.NewFactory(ui.WithEnv(rnEnv()), ui.WithFactoryLogger(zerolog.Nop()))
	b := f.Components()
	assert.Equal(t, "toolkit", b.Variant)
	assert.True(t, b.Complete())
}

func TestFactoryLoadFailureFallsBackEverywhere(t *testing.T) {
	f := ui.NewFactory(
		ui.WithEnv(rnEnv()),
		ui.WithToolkitLoader(func() (*ui.ComponentBundle, error) {
			return nil, errors.New("module not found")
		}),
		ui.WithFactoryLogger(zerolog.Nop()),
	)

	b := f.Components()
	require.Equal(t, "plain", b.Variant)
	// All-or-nothing: every one of the eight primitives must be the
	// fallback, none left partially bound.
	require.True(t, b.Complete())
	assert.NotEmpty(t, b.Text(ui.TextProps{Content: "x"}).Render(0))
	assert.NotEmpty(t, b.Spinner(ui.SpinnerProps{}).Render(0))
	assert.NotEmpty(t, b.Image(ui.ImageProps{Alt: "logo"}).Render(0))
}

func TestFactoryLoaderPanicIsRecovered(t *testing.T) {
	f := ui.NewFactory(
		ui.WithEnv(rnEnv()),
		ui.WithToolkitLoader(func() (*ui.ComponentBundle, error) {
			panic("incompatible toolkit version")
		}),
		ui.WithFactoryLogger(zerolog.Nop()),
	)

	var b *ui.ComponentBundle
	require.NotPanics(t, func() { b = f.Components() })
	assert.Equal(t, "plain", b.Variant)
	assert.True(t, b.Complete())
}

func TestFactoryRejectsPartialBundle(t *testing.T) {
	f := ui.NewFactory(
		ui.WithEnv(rnEnv()),
		ui.WithToolkitLoader(func() (*ui.ComponentBundle, error) {
			b := &ui.ComponentBundle{Variant: "toolkit"}
			b.Text = func(p ui.TextProps) ui.Renderable { return nil }
			return b, nil // seven primitives missing
		}),
		ui.WithFactoryLogger(zerolog.Nop()),
	)

	b := f.Components()
	assert.Equal(t, "plain", b.Variant)
	assert.True(t, b.Complete())
}

func TestFactorySkipsLoaderWithoutToolkitPreference(t *testing.T) {
	var calls atomic.Int64
	env := &fakeEnv{} // no RN marker, no terminal capability
	f := ui.NewFactory(
		ui.WithEnv(env),
		ui.WithToolkitLoader(func() (*ui.ComponentBundle, error) {
			calls.Add(1)
			return nil, nil
		}),
		ui.WithFactoryLogger(zerolog.Nop()),
	)

	b := f.Components()
	assert.Equal(t, "plain", b.Variant)
	assert.EqualValues(t, 0, calls.Load())
}

func TestFactoryCachesBundle(t *testing.T) {
	var calls atomic.Int64
	f := ui.NewFactory(
		ui.WithEnv(rnEnv()),
		ui.WithToolkitLoader(func() (*ui.ComponentBundle, error) {
			calls.Add(1)
			return nil, errors.New("nope")
		}),
		ui.WithFactoryLogger(zerolog.Nop()),
	)

	b1 := f.Components()
	b2 := f.Components()
	assert.Same(t, b1, b2)
	assert.EqualValues(t, 1, calls.Load())

	f.Reset()
	b3 := f.Components()
	assert.NotSame(t, b1, b3)
	assert.EqualValues(t, 2, calls.Load())
}

func TestFactoryLoadHonorsContext(t *testing.T) {
	f := ui.NewFactory(ui.WithEnv(rnEnv()), ui.WithFactoryLogger(zerolog.Nop()))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := f.Load(ctx)
	assert.ErrorIs(t, err, context.Canceled)

	b, err := f.Load(context.Background())
	require.NoError(t, err)
	assert.True(t, b.Complete())
}

func TestFactoryTerminalCapabilityEnablesToolkit(t *testing.T) {
	env := &fakeEnv{modules: map[string]bool{platform.ModuleUIToolkit: true}}
	f := ui.NewFactory(ui.WithEnv(env), ui.WithFactoryLogger(zerolog.Nop()))
	assert.Equal(t, "toolkit", f.Components().Variant)
}
