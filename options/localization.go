package options

import "fmt"

// builtinLocalization is the factory string table, the lowest layer of the
// localization merge.
var builtinLocalization = map[string]string{
	"play":           "Play",
	"pause":          "Pause",
	"stop":           "Stop",
	"replay":         "Replay",
	"next":           "Next",
	"prev":           "Previous",
	"volume":         "Volume",
	"mute":           "Mute",
	"unmute":         "Unmute",
	"fullscreen":     "Fullscreen",
	"exitFullscreen": "Exit Fullscreen",
	"playback":       "Play",
	"playbackRates":  "Playback Rates",
	"cc":             "Closed Captions",
	"audioTracks":    "Audio Tracks",
	"qualityLabel":   "Quality",
	"settings":       "Settings",
	"close":          "Close",
	"errors":         "This video file cannot be played.",
	"buffer":         "Loading",
	"off":            "Off",
	"auto":           "Auto",
}

// mergeLocalization performs the three-layer shallow merge of string tables:
// built-in strings < process defaults < explicit call-time overrides, so
// omitted translations fall back correctly.
func mergeLocalization(injected, explicit any) map[string]string {
	out := make(map[string]string, len(builtinLocalization))
	for k, v := range builtinLocalization {
		out[k] = v
	}

	for _, layer := range []any{injected, explicit} {
		for k, v := range stringTable(layer) {
			out[k] = v
		}
	}

	return out
}

// stringTable coerces a raw localization value into a string table. Unusable
// shapes degrade to an empty table.
func stringTable(raw any) map[string]string {
	switch table := raw.(type) {
	case nil:
		return nil
	case map[string]string:
		return table
	case map[string]any:
		out := make(map[string]string, len(table))
		for k, v := range table {
			out[k] = fmt.Sprint(v)
		}
		return out
	default:
		return nil
	}
}
