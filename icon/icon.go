// Package icon provides a flexible multi-variant rendering engine for UI symbols and feedback indicators.
//
// Icons can be displayed as emoji, nerd-font glyphs, plain ASCII, kaomoji,
// or Unicode squares depending on user preference.
package icon

import (
	"github.com/playman-cli/playman/key"
	"github.com/spf13/viper"
)

// Visual Variant Constants - these define the supported aesthetic styles for icon rendering.
const (
	emoji   = "emoji"
	nerd    = "nerd"
	plain   = "plain"
	kaomoji = "kaomoji"
	squares = "squares"
)

// AvailableVariants returns a slice of all registered icon style identifiers.
func AvailableVariants() []string {
	return []string{emoji, nerd, plain, kaomoji, squares}
}

// Icon identifies a single registered UI symbol.
type Icon int

const (
	Success Icon = iota
	Fail
	Progress
	Play
	Pause
	Stop
	Buffer
	Volume
	Mute
	Plugin
	Engine
	Lua
)

// iconDef encapsulates the visual representations of a single UI symbol across all supported variants.
type iconDef struct {
	emoji   string
	nerd    string
	plain   string
	kaomoji string
	squares string
}

// icons maps every Icon identifier to its per-variant glyphs.
var icons = map[Icon]*iconDef{
	Success:  {emoji: "✅", nerd: "", plain: "+", kaomoji: "(•̀ᴗ•́)و", squares: "[v]"},
	Fail:     {emoji: "❌", nerd: "", plain: "x", kaomoji: "(╥﹏╥)", squares: "[x]"},
	Progress: {emoji: "⏳", nerd: "", plain: "*", kaomoji: "(￣ー￣)ゞ", squares: "[*]"},
	Play:     {emoji: "▶️", nerd: "", plain: ">", kaomoji: "(▶‿▶)", squares: "[>]"},
	Pause:    {emoji: "⏸️", nerd: "", plain: "||", kaomoji: "(－ω－) zzZ", squares: "[||]"},
	Stop:     {emoji: "⏹️", nerd: "", plain: "#", kaomoji: "(ﾉ･ｪ･)ﾉ", squares: "[#]"},
	Buffer:   {emoji: "🌀", nerd: "", plain: "~", kaomoji: "( ・-・)…", squares: "[~]"},
	Volume:   {emoji: "🔊", nerd: "", plain: ")", kaomoji: "(((p(>o<)q)))", squares: "[)]"},
	Mute:     {emoji: "🔇", nerd: "", plain: "-", kaomoji: "(・д・)", squares: "[-]"},
	Plugin:   {emoji: "🔌", nerd: "", plain: "&", kaomoji: "(つ◉益◉)つ", squares: "[&]"},
	Engine:   {emoji: "⚙️", nerd: "", plain: "@", kaomoji: "ヽ(・ω・)ノ", squares: "[@]"},
	Lua:      {emoji: "🌙", nerd: "", plain: "%", kaomoji: "(月)", squares: "[%]"},
}

// Get retrieves the visual representation for the receiver def based on the global icons variant configuration.
func (d *iconDef) Get() string {
	switch viper.GetString(key.IconsVariant) {
	case emoji:
		return d.emoji
	case nerd:
		return d.nerd
	case plain:
		return d.plain
	case kaomoji:
		return d.kaomoji
	case squares:
		return d.squares
	default:
		return ""
	}
}

// Get returns the rendered string for a specified Icon identifier from the global registry.
func Get(i Icon) string {
	return icons[i].Get()
}
