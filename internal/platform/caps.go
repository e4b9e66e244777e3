package platform

// CapabilitySet records which optional host capabilities are actually present.
// The flags are mutually independent: a platform tag never implies a flag and
// no flag implies another. Derived strictly from runtime probes, never from
// configuration.
type CapabilitySet struct {
	SecureStorage   bool // OS secure store / native secure storage reachable
	NativeCrypto    bool // cryptographically strong random + digest available
	NativeFetch     bool // native HTTP transport available
	NativeUIToolkit bool // interactive terminal toolkit usable
}

// Probe checks each capability independently. A probe that panics degrades
// only its own flag to false; the remaining flags are still probed. Every
// check is a cheap synchronous existence test.
func Probe(env Env) CapabilitySet {
	return CapabilitySet{
		SecureStorage:   module(env, ModuleSecureStore),
		NativeCrypto:    module(env, ModuleCrypto),
		NativeFetch:     module(env, ModuleFetch),
		NativeUIToolkit: module(env, ModuleUIToolkit),
	}
}

func module(env Env, name string) (ok bool) {
	defer func() {
		if recover() != nil {
			ok = false
		}
	}()
	return env.Module(name)
}
