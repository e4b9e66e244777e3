package platform

import (
	"crypto/rand"
	"net/http"
	"os"
	"runtime"

	"github.com/99designs/keyring"
)

// Env is a read-only snapshot of the host environment. Global reports a
// JS-style global marker forwarded by the host bridge; Module reports whether
// an optional platform capability module is loadable. Implementations may
// panic from a probe; callers must guard (Identify and Probe both do).
type Env interface {
	Global(name string) (string, bool)
	Module(name string) bool
}

// Capability module names understood by Probe.
const (
	ModuleSecureStore = "secure-store"
	ModuleCrypto      = "crypto"
	ModuleFetch       = "fetch"
	ModuleUIToolkit   = "ui-toolkit"
)

// Env var names a host bridge uses to forward its globals. The React Native
// bridge sets WALLETKIT_NAVIGATOR_PRODUCT=ReactNative; the Next.js server
// runtime already sets NEXT_RUNTIME on its own.
const (
	envNavigatorProduct = "WALLETKIT_NAVIGATOR_PRODUCT"
	envNextRuntime      = "NEXT_RUNTIME"
	envNodeVersion      = "WALLETKIT_NODE_VERSION"
)

// hostEnv maps the real process to the marker/module model.
type hostEnv struct{}

// HostEnv returns the Env backed by the current process: env vars forwarded by
// the embedding bridge plus direct probes of the Go runtime's own facilities.
func HostEnv() Env { return hostEnv{} }

func (hostEnv) Global(name string) (string, bool) {
	switch name {
	case MarkerNavigatorProduct:
		return os.LookupEnv(envNavigatorProduct)
	case MarkerNextData:
		return os.LookupEnv(envNextRuntime)
	case MarkerWindow, MarkerDocument:
		// A wasm build running in a browser has the DOM on the other side
		// of the syscall/js bridge.
		if runtime.GOOS == "js" && runtime.GOARCH == "wasm" {
			return "", true
		}
		return "", false
	case MarkerNodeProcess:
		return os.LookupEnv(envNodeVersion)
	default:
		return "", false
	}
}

func (hostEnv) Module(name string) bool {
	switch name {
	case ModuleSecureStore:
		// The keyring reports which OS backends are reachable; an empty
		// list means no secure store on this host.
		return len(keyring.AvailableBackends()) > 0
	case ModuleCrypto:
		var b [1]byte
		_, err := rand.Read(b[:])
		return err == nil
	case ModuleFetch:
		return http.DefaultTransport != nil
	case ModuleUIToolkit:
		fi, err := os.Stdout.Stat()
		if err != nil {
			return false
		}
		return fi.Mode()&os.ModeCharDevice != 0
	default:
		return false
	}
}
