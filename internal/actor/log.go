package actor

import "github.com/btcsuite/btclog/v2"

// log is the package-wide structured logger. It defaults to a disabled
// logger so that importers who never call UseLogger get silent operation
// rather than a nil-pointer panic.
var log btclog.Logger = btclog.Disabled

// UseLogger sets the package-wide logger used by the actor runtime. Callers
// (typically a daemon's main package) should call this once at startup,
// before spawning any actors.
func UseLogger(logger btclog.Logger) {
	log = logger
}
