// Package options implements configuration normalization for player instances:
// it turns raw user options, persisted per-option values and process-wide
// injected defaults into one canonical configuration mapping.
package options

import (
	"sync"
)

// Config is the flat canonical mapping from option name to value. After
// Normalize it always carries a non-empty "playlist" ([]Item) and a merged
// "localization" (map[string]string).
type Config map[string]any

// DefaultSkin is the built-in skin name used when a structured skin value
// carries no usable name.
const DefaultSkin = "seven"

// DefaultRates is the playback rate list substituted when rate controls are
// requested as a bare boolean.
var DefaultRates = []float64{0.5, 1, 1.25, 1.5, 2}

// builtin returns the factory defaults, the lowest-precedence merge layer.
func builtin() Config {
	return Config{
		"autostart":            false,
		"controls":             true,
		"displaytitle":         true,
		"displaydescription":   true,
		"mute":                 false,
		"volume":               90,
		"width":                "100%",
		"height":               360,
		"repeat":               false,
		"stretching":           "uniform",
		"preload":              "metadata",
		"base":                 "",
		"playbackRateControls": false,
		"defaultPlaybackRate":  1.0,
	}
}

// defaults is the process-wide injected defaults layer, set by the embedding
// application (e.g. from its viper configuration) before players are built.
var (
	defaultsMu sync.Mutex
	defaults   = Config{}
)

// SetDefault stores a single process-wide injected default.
func SetDefault(key string, value any) {
	defaultsMu.Lock()
	defer defaultsMu.Unlock()

	defaults[key] = value
}

// InjectDefaults stores a batch of process-wide injected defaults.
func InjectDefaults(values Config) {
	defaultsMu.Lock()
	defer defaultsMu.Unlock()

	for k, v := range values {
		defaults[k] = v
	}
}

// Defaults returns a copy of the injected defaults layer.
func Defaults() Config {
	defaultsMu.Lock()
	defer defaultsMu.Unlock()

	out := make(Config, len(defaults))
	for k, v := range defaults {
		out[k] = v
	}
	return out
}

// ResetDefaults clears the injected defaults layer.
func ResetDefaults() {
	defaultsMu.Lock()
	defer defaultsMu.Unlock()

	defaults = Config{}
}
