// Package constant defines immutable application-level identifiers and configuration defaults.
package constant

// Plugin Function Identifiers - these constants define the required global function signatures for Lua plugin modules.
const (
	PluginAddFn    = "addToPlayer"
	PluginResizeFn = "resize"
)

// PluginTemplate is a Go text/template for scaffolding new Lua plugin files.
const PluginTemplate = `{{ $divider := repeat "-" (plus (max (len .Name) (len .Author) 3) 12) }}{{ $divider }}
-- @name    {{ .Name }}
-- @author  {{ .Author }}
-- @license MIT
{{ $divider }}


----- MAIN -----

--- Called once the player fires its ready event.
-- @param player table Handle exposing on(event, fn) and call(method, ...)
function {{ .PluginAddFn }}(player)
end


--- Optional. Called whenever the player surface is resized.
-- @param width number
-- @param height number
function {{ .PluginResizeFn }}(width, height)
end

--- END MAIN ---

-- ex: ts=4 sw=4 et filetype=lua
`
