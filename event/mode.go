package event

import "sync/atomic"

// strict stores the process-wide listener fault mode.
// 0 = safe (recover and log), 1 = strict (panics propagate).
var strict atomic.Bool

// SetStrict switches the process-wide listener fault mode. In strict mode,
// exceptions raised inside listeners propagate so integrators see their bugs
// during development; in safe mode they are swallowed and logged.
func SetStrict(on bool) {
	strict.Store(on)
}

// Strict reports the current listener fault mode.
func Strict() bool {
	return strict.Load()
}
