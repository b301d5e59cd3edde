// Package key defines the canonical set of configuration identifiers used for centralized settings management.
package key

// Engine Selection - these keys manage the registration and selection of playback engine providers.
const (
	EngineDefault = "engine.default"
	EngineBinary  = "engine.binary"
)

// Player Behavior - these keys govern process-wide facade semantics.
const (
	PlayerDebug                = "player.debug"
	PlayerCompletionPercentage = "player.completion_percentage"
)

// Injected Player Defaults - these keys feed the process-defaults layer of config normalization.
const (
	DefaultsAutostart = "defaults.autostart"
	DefaultsControls  = "defaults.controls"
	DefaultsMute      = "defaults.mute"
	DefaultsVolume    = "defaults.volume"
	DefaultsWidth     = "defaults.width"
	DefaultsHeight    = "defaults.height"
	DefaultsRepeat    = "defaults.repeat"
	DefaultsStretch   = "defaults.stretching"
	DefaultsBase      = "defaults.base"
)

// Console - these keys define the interactive dashboard's styling and logic.
const (
	ConsolePromptString   = "console.prompt"
	ConsoleShowLocations  = "console.show_locations"
	ConsoleSeekStep       = "console.seek_step"
	ConsoleVolumeStep     = "console.volume_step"
	ConsoleSuggestions    = "console.show_suggestions"
	ConsoleSuggestionsCap = "console.suggestions_limit"
)

// Recently Played - these keys configure the persistence of opened media locations.
const (
	QueriesRemember = "queries.remember"
)

// Iconography - these keys manage the visual rendering of UI symbols.
const (
	IconsVariant = "icons.variant"
)

// Logging Infrastructure - these keys manage the application's internal diagnostics and auditing system.
const (
	LogsWrite = "logs.write"
	LogsLevel = "logs.level"
	LogsJson  = "logs.json"
)

// CLI Execution Environment - these flags and settings govern the non-TUI application behavior.
const (
	CliColored      = "cli.colored"
	CliVersionCheck = "cli.version_check"
)
