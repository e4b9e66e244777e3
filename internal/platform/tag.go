package platform

// Tag classifies the host runtime embedding the SDK.
type Tag string

const (
	Web         Tag = "web"
	NextJS      Tag = "nextjs"
	ReactNative Tag = "react-native"
	Node        Tag = "node"
)

// Tags lists every recognized platform tag.
var Tags = []Tag{Web, NextJS, ReactNative, Node}

func (t Tag) String() string { return string(t) }

// Marker names forwarded by host bridges. A bridge embedding the SDK exports
// the globals of its own runtime under these names (see HostEnv).
const (
	MarkerNavigatorProduct = "navigator.product"
	MarkerWindow           = "window"
	MarkerDocument         = "document"
	MarkerNextData         = "__NEXT_DATA__"
	MarkerNodeProcess      = "process.versions.node"
)

// navigatorProductRN is the navigator.product value React Native reports.
const navigatorProductRN = "ReactNative"

// Identify classifies the host into exactly one Tag. It never fails: a marker
// probe that panics counts as "marker absent" and evaluation continues.
//
// Decision order matters because markers co-occur. A React Native WebView host
// exposes both the navigator product and a document; a Next.js client exposes
// both __NEXT_DATA__ and a window. The more specific marker wins. A host with
// no browser-like markers at all is treated as the server half of a Next.js
// app unless it explicitly identifies as a bare node process.
func Identify(env Env) Tag {
	if v, ok := global(env, MarkerNavigatorProduct); ok && v == navigatorProductRN {
		return ReactNative
	}
	if _, ok := global(env, MarkerNextData); ok {
		return NextJS
	}
	if _, ok := global(env, MarkerDocument); ok {
		return Web
	}
	if _, ok := global(env, MarkerWindow); ok {
		return Web
	}
	if _, ok := global(env, MarkerNodeProcess); ok {
		return Node
	}
	return NextJS
}

// global reads one marker, converting a panic in the probe into absence.
func global(env Env, name string) (val string, ok bool) {
	defer func() {
		if recover() != nil {
			val, ok = "", false
		}
	}()
	return env.Global(name)
}
