package options

import (
	"strconv"
	"strings"

	"github.com/playman-cli/playman/log"
	levenshtein "github.com/ka-weihe/fast-levenshtein"
	"github.com/samber/lo"
)

// Normalize merges raw user options, persisted per-option values and
// process-wide defaults into one canonical configuration.
//
// Merge precedence, lowest to highest: built-in defaults < injected process
// defaults < persisted per-option values < explicit call-time options. Later
// layers fully overwrite same-named keys (shallow merge), except localization,
// which gets its own three-layer merge of string tables.
//
// Normalize never fails: malformed values silently degrade to documented
// defaults, never to nil for required fields.
func Normalize(raw Config, persisted map[string]string) Config {
	injected := Defaults()

	cfg := builtin()
	for k, v := range injected {
		cfg[k] = v
	}
	for k, v := range persisted {
		cfg[k] = Deserialize(v)
	}
	for k, v := range raw {
		warnUnknownKey(k)
		cfg[k] = v
	}

	cfg["localization"] = mergeLocalization(injected["localization"], raw["localization"])

	// Derived fields, in pipeline order.
	resolveBase(cfg)
	stripUnits(cfg)
	deriveAssetURLs(cfg)
	resolveAspectRatio(cfg)
	unpackSkin(cfg)
	resolveRateControls(cfg)
	resolveDefaultRate(cfg)
	resolvePlaylist(cfg)
	resolveQualityLabels(cfg)

	return cfg
}

// resolveBase establishes the asset base path: an explicit "." means the
// directory containing the running executable, an empty base falls back to the
// discovered load origin, and a trailing slash is always forced.
func resolveBase(cfg Config) {
	base, _ := cfg["base"].(string)

	switch base {
	case ".":
		base = ExecDir()
	case "":
		base = LoadOrigin()
	}

	if !strings.HasSuffix(base, "/") {
		base += "/"
	}
	cfg["base"] = base
}

// stripUnits drops a trailing "px" unit from width/height; percentage strings
// and bare numbers pass through unchanged.
func stripUnits(cfg Config) {
	for _, key := range []string{"width", "height"} {
		s, ok := cfg[key].(string)
		if !ok || !strings.HasSuffix(s, "px") {
			continue
		}
		cfg[key] = Deserialize(strings.TrimSuffix(s, "px"))
	}
}

// deriveAssetURLs fills default media-engine asset locations from the base
// path unless explicitly overridden. When the process was loaded over plain
// HTTP, the derived URLs are forced to the non-secure scheme.
func deriveAssetURLs(cfg Config) {
	base, _ := cfg["base"].(string)

	derived := map[string]string{
		"engineUrl":    base + "engine/",
		"providersUrl": base + "providers/",
	}

	insecure := strings.HasPrefix(LoadOrigin(), "http://")

	for key, fallback := range derived {
		url, ok := cfg[key].(string)
		if !ok || url == "" {
			url = fallback
		}
		if insecure {
			url = strings.Replace(url, "https://", "http://", 1)
		}
		cfg[key] = url
	}
}

// resolveAspectRatio evaluates the aspectratio option. The field survives only
// when width is a percentage string and the ratio is either a "W:H" pair of
// positive numbers (converted to "H/W*100%") or already a bare percentage
// string; every other form removes the field entirely.
func resolveAspectRatio(cfg Config) {
	ratio := evalAspectRatio(cfg["aspectratio"], cfg["width"])
	if ratio == "" {
		delete(cfg, "aspectratio")
		return
	}
	cfg["aspectratio"] = ratio
}

func evalAspectRatio(ratio, width any) string {
	ws, ok := width.(string)
	if !ok || !strings.HasSuffix(ws, "%") {
		return ""
	}

	s, ok := ratio.(string)
	if !ok {
		return ""
	}

	if strings.HasSuffix(s, "%") {
		return s
	}

	parts := strings.Split(s, ":")
	if len(parts) != 2 {
		return ""
	}

	w, errW := strconv.ParseFloat(parts[0], 64)
	h, errH := strconv.ParseFloat(parts[1], 64)
	if errW != nil || errH != nil || w <= 0 || h <= 0 {
		return ""
	}

	return strconv.FormatFloat(h/w*100, 'f', -1, 64) + "%"
}

// unpackSkin flattens a structured skin value into the top-level skinUrl and
// skin color options, reducing "skin" itself to its name (or the built-in
// default). Legacy markup-based skin references are stripped of their
// extension with a deprecation warning.
func unpackSkin(cfg Config) {
	switch skin := cfg["skin"].(type) {
	case map[string]any:
		unpack := map[string]string{
			"url":        "skinUrl",
			"inactive":   "skinColorInactive",
			"active":     "skinColorActive",
			"background": "skinColorBackground",
		}
		for sub, target := range unpack {
			if v, ok := skin[sub]; ok {
				cfg[target] = v
			}
		}

		if name, ok := skin["name"].(string); ok && name != "" {
			cfg["skin"] = name
		} else {
			cfg["skin"] = DefaultSkin
		}
	case string:
		if strings.Contains(skin, ".xml") {
			name := fileStem(skin)
			log.Warnf("XML skins are no longer supported, falling back to skin name %q", name)
			cfg["skin"] = name
		}
	}
}

// fileStem extracts the base name of a path or URL, excluding the extension.
func fileStem(path string) string {
	if idx := strings.LastIndexAny(path, "/\\"); idx >= 0 {
		path = path[idx+1:]
	}
	if idx := strings.Index(path, ".xml"); idx >= 0 {
		path = path[:idx]
	}
	return path
}

// resolveRateControls normalizes playbackRateControls. A truthy boolean
// substitutes the fixed default rate list; a list keeps only numbers within
// [0.25, 4.0]; anything else, or a filter leaving zero entries, disables the
// feature. When enabled, the resolved list is mirrored into playbackRates.
func resolveRateControls(cfg Config) {
	var rates []float64

	switch v := cfg["playbackRateControls"].(type) {
	case bool:
		if v {
			rates = append(rates, DefaultRates...)
		}
	case []float64:
		rates = append(rates, v...)
	case []int:
		for _, r := range v {
			rates = append(rates, float64(r))
		}
	case []any:
		for _, entry := range v {
			if f, ok := toFloat(entry); ok {
				rates = append(rates, f)
			}
		}
	}

	rates = lo.Filter(rates, func(r float64, _ int) bool {
		return r >= 0.25 && r <= 4.0
	})

	if len(rates) == 0 {
		cfg["playbackRateControls"] = false
		delete(cfg, "playbackRates")
		return
	}

	rates = lo.Uniq(rates)
	cfg["playbackRateControls"] = rates
	cfg["playbackRates"] = rates
}

// resolveDefaultRate resets defaultPlaybackRate to 1 unless rate controls are
// enabled and the configured default is one of the resolved rates.
func resolveDefaultRate(cfg Config) {
	rates, enabled := cfg["playbackRateControls"].([]float64)

	rate, ok := toFloat(cfg["defaultPlaybackRate"])
	if !ok || !enabled || !lo.Contains(rates, rate) {
		cfg["defaultPlaybackRate"] = 1.0
		return
	}
	cfg["defaultPlaybackRate"] = rate
}

// resolveQualityLabels defaults qualityLabels from the legacy hlslabels alias.
func resolveQualityLabels(cfg Config) {
	if _, ok := cfg["qualityLabels"]; ok {
		return
	}
	if legacy, ok := cfg["hlslabels"]; ok {
		cfg["qualityLabels"] = legacy
	}
}

func toFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	case float32:
		return float64(n), true
	case float64:
		return n, true
	default:
		return 0, false
	}
}

// knownKeys is the vocabulary used for unknown-option suggestions.
var knownKeys = func() []string {
	keys := lo.Keys(builtin())
	keys = append(keys,
		"playlist", "aspectratio", "skin", "localization", "plugins", "provider",
		"playbackRates", "qualityLabels", "hlslabels", "key", "engineUrl",
		"providersUrl", "skinUrl", "skinColorInactive", "skinColorActive",
		"skinColorBackground",
	)
	keys = append(keys, itemFields...)
	return keys
}()

// warnUnknownKey logs a did-you-mean hint for unrecognized top-level options.
// Handler options ("on" + event name) are exempt.
func warnUnknownKey(key string) {
	if lo.Contains(knownKeys, key) || strings.HasPrefix(key, "on") {
		return
	}

	closest := lo.MinBy(knownKeys, func(a string, b string) bool {
		return levenshtein.Distance(key, a) < levenshtein.Distance(key, b)
	})
	log.Warnf("unknown option %q, did you mean %q?", key, closest)
}
