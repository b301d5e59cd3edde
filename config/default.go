// Package config provides centralized management for application settings, defaults, and the Viper-based configuration engine.
package config

import (
	"encoding/json"
	"fmt"
	"reflect"
	"strconv"
	"strings"
	"text/template"

	"github.com/playman-cli/playman/color"
	"github.com/playman-cli/playman/constant"
	"github.com/playman-cli/playman/key"
	"github.com/playman-cli/playman/style"
	"github.com/samber/lo"
	"github.com/spf13/viper"
)

// Field represents a configuration field definition.
type Field struct {
	Key         string
	Value       any
	Description string
}

// Pretty returns a colored string representation of the field for display.
func (f *Field) Pretty() string {
	var b strings.Builder
	lo.Must0(prettyTemplate.Execute(&b, f))
	return b.String()
}

// Env returns the environment variable name for this field.
func (f *Field) Env() string {
	env := strings.ToUpper(EnvKeyReplacer.Replace(f.Key))
	prefix := strings.ToUpper(constant.Playman + "_")
	if strings.HasPrefix(env, prefix) {
		return env
	}
	return prefix + env
}

// MarshalJSON customizes JSON output to include current and default values.
func (f *Field) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Key         string `json:"key"`
		Value       any    `json:"value"`
		Default     any    `json:"default"`
		Description string `json:"description"`
		Type        string `json:"type"`
	}{
		Key:         f.Key,
		Value:       viper.Get(f.Key),
		Default:     f.Value,
		Description: f.Description,
		Type:        f.typeName(),
	})
}

// typeName returns the string representation of the field's underlying value type.
func (f *Field) typeName() string {
	switch f.Value.(type) {
	case string:
		return "string"
	case int:
		return "int"
	case bool:
		return "bool"
	case float64:
		return "float"
	case []string:
		return "[]string"
	case []int:
		return "[]int"
	default:
		return "unknown"
	}
}

// Default holds the map of all configuration fields.
var Default = make(map[string]Field)

// EnvExposed holds keys that are bound to environment variables.
var EnvExposed []string

func init() {
	// register validates and adds a new configuration field to the global registry.
	register := func(k string, v any, desc string) {
		if _, exists := Default[k]; exists {
			panic("Duplicate config key: " + k)
		}
		f := Field{Key: k, Value: v, Description: desc}
		Default[k] = f
		EnvExposed = append(EnvExposed, k)
	}

	register(key.EngineDefault, "mpv", "Playback engine provider to wire into new players.\nType \"playman providers\" to show available engines")
	register(key.EngineBinary, "", "Explicit path to the engine binary.\nLeave empty to resolve from PATH")
	register(key.PlayerDebug, false, "Strict listener mode.\nWhen enabled, exceptions raised inside event listeners propagate instead of being swallowed")
	register(key.PlayerCompletionPercentage, 80, "Percentage required to emit the complete event for engines that only report position (1-100)")

	register(key.DefaultsAutostart, false, "Injected player default: start playback as soon as setup finishes")
	register(key.DefaultsControls, true, "Injected player default: render transport controls")
	register(key.DefaultsMute, false, "Injected player default: start muted")
	register(key.DefaultsVolume, 90, "Injected player default: initial volume (0-100)")
	register(key.DefaultsWidth, "100%", "Injected player default: surface width (number or percentage string)")
	register(key.DefaultsHeight, "360", "Injected player default: surface height")
	register(key.DefaultsRepeat, false, "Injected player default: restart the playlist when it completes")
	register(key.DefaultsStretch, "uniform", "Injected player default: stretching mode (uniform, exactfit, fill, none)")
	register(key.DefaultsBase, "", "Injected player default: base URL for engine assets.\nUse \".\" for the executable directory")

	register(key.ConsolePromptString, "> ", "Open-location prompt string to use")
	register(key.ConsoleShowLocations, true, "Show media locations under playlist items in the console")
	register(key.ConsoleSeekStep, 10, "Seconds to seek per keypress in the console")
	register(key.ConsoleVolumeStep, 5, "Volume delta per keypress in the console")
	register(key.ConsoleSuggestions, true, "Show recently-played suggestions in the open prompt")
	register(key.ConsoleSuggestionsCap, 20, "Limit of suggestions to show")

	register(key.QueriesRemember, true, "Remember opened media locations for prompt suggestions")
	register(key.IconsVariant, "plain", "Icons variant.\nAvailable options are: emoji, kaomoji, plain, squares, nerd (nerd-font required)")

	register(key.LogsWrite, false, "Write logs")
	register(key.LogsLevel, "info", "Available options are: (from less to most verbose)\npanic, fatal, error, warn, info, debug, trace")
	register(key.LogsJson, false, "Use json format for logs")

	register(key.CliColored, true, "Enable colored CLI output")
	register(key.CliVersionCheck, true, "Enable automatic version check")
}

var prettyTemplate = lo.Must(template.New("pretty").Funcs(template.FuncMap{
	"faint":    style.Faint,
	"bold":     style.Bold,
	"purple":   style.Fg(color.Purple),
	"blue":     style.Fg(color.Blue),
	"cyan":     style.Fg(color.Cyan),
	"value":    func(k string) any { return viper.Get(k) },
	"typename": func(v any) string { return reflect.TypeOf(v).String() },
	"hl": func(v any) string {
		switch value := v.(type) {
		case bool:
			b := strconv.FormatBool(value)
			if value {
				return style.Fg(color.Green)(b)
			}
			return style.Fg(color.Red)(b)
		case string:
			return style.Fg(color.Yellow)(value)
		default:
			return fmt.Sprint(value)
		}
	},
}).Parse(`{{ faint .Description }}
{{ blue "Key:" }}     {{ purple .Key }}
{{ blue "Env:" }}     {{ .Env }}
{{ blue "Value:" }}   {{ hl (value .Key) }}
{{ blue "Default:" }} {{ hl (.Value) }}
{{ blue "Type:" }}    {{ typename .Value }}`))
