package plugin

import (
	"fmt"
	"path/filepath"
	"sync"

	"github.com/playman-cli/playman/constant"
	"github.com/playman-cli/playman/event"
	"github.com/playman-cli/playman/filesystem"
	"github.com/playman-cli/playman/log"
	"github.com/playman-cli/playman/util"
	"github.com/playman-cli/playman/where"
	libs "github.com/metafates/mangal-lua-libs"
	lua "github.com/yuin/gopher-lua"
)

// LuaPlugin adapts a Lua script into a Plugin. Each instance owns a private
// interpreter state; a script attached to several players gets a fresh state
// per player.
type LuaPlugin struct {
	name  string
	cfg   map[string]any
	mu    sync.Mutex
	state *lua.LState
}

// LoadLua executes a Lua plugin script and validates that it defines the
// required entry point.
func LoadLua(path string, cfg map[string]any) (*LuaPlugin, error) {
	state := lua.NewState()
	libs.Preload(state)

	if err := compileAndLoad(state, path); err != nil {
		state.Close()
		return nil, err
	}

	name := util.FileStem(path)

	if state.GetGlobal(constant.PluginAddFn).Type() != lua.LTFunction {
		state.Close()
		return nil, fmt.Errorf("function %s is required but not defined in %s", constant.PluginAddFn, name)
	}

	return &LuaPlugin{
		name:  name,
		cfg:   cfg,
		state: state,
	}, nil
}

// Name returns the plugin name derived from the script basename.
func (p *LuaPlugin) Name() string {
	return p.name
}

// AddToPlayer hands the script a player handle table exposing id, on, off,
// call and trigger. Script faults degrade to warnings.
func (p *LuaPlugin) AddToPlayer(api Api) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if err := p.call(constant.PluginAddFn, p.playerTable(api), goToLua(p.state, anyMap(p.cfg))); err != nil {
		log.Warnf("plugin %s: %s: %v", p.name, constant.PluginAddFn, err)
	}
}

// Resize forwards surface dimension changes to the script when it defines the
// optional resize entry point.
func (p *LuaPlugin) Resize(width, height int) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.state.GetGlobal(constant.PluginResizeFn).Type() != lua.LTFunction {
		return
	}

	if err := p.call(constant.PluginResizeFn, lua.LNumber(width), lua.LNumber(height)); err != nil {
		log.Warnf("plugin %s: %s: %v", p.name, constant.PluginResizeFn, err)
	}
}

// Close releases the interpreter state.
func (p *LuaPlugin) Close() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.state.Close()
}

// call executes a global Lua function safely.
func (p *LuaPlugin) call(fn string, args ...lua.LValue) error {
	luaFn := p.state.GetGlobal(fn)
	if luaFn.Type() != lua.LTFunction {
		return fmt.Errorf("function %s is not defined", fn)
	}

	return p.state.CallByParam(lua.P{
		Fn:      luaFn,
		NRet:    0,
		Protect: true,
	}, args...)
}

// playerTable builds the Lua-side handle over the player Api.
func (p *LuaPlugin) playerTable(api Api) *lua.LTable {
	table := p.state.NewTable()

	table.RawSetString("id", lua.LString(api.ID()))

	table.RawSetString("on", p.state.NewFunction(func(L *lua.LState) int {
		name := L.CheckString(1)
		fn := L.CheckFunction(2)

		id := api.OnEvent(name, func(eventName string, data event.Payload) {
			p.mu.Lock()
			defer p.mu.Unlock()

			err := p.state.CallByParam(lua.P{
				Fn:      fn,
				NRet:    0,
				Protect: true,
			}, lua.LString(eventName), goToLua(p.state, anyMap(data)))
			if err != nil {
				log.Warnf("plugin %s: handler for %s: %v", p.name, eventName, err)
			}
		})

		L.Push(lua.LNumber(id))
		return 1
	}))

	table.RawSetString("off", p.state.NewFunction(func(L *lua.LState) int {
		name := L.CheckString(1)
		id := L.CheckInt(2)
		api.OffEvent(name, id)
		return 0
	}))

	table.RawSetString("call", p.state.NewFunction(func(L *lua.LState) int {
		method := L.CheckString(1)

		var args []any
		for i := 2; i <= L.GetTop(); i++ {
			args = append(args, luaToGo(L.Get(i)))
		}

		result := api.CallInternal(method, args...)
		L.Push(goToLua(L, result))
		return 1
	}))

	table.RawSetString("trigger", p.state.NewFunction(func(L *lua.LState) int {
		name := L.CheckString(1)

		data := event.Payload{}
		if L.GetTop() >= 2 {
			if m, ok := luaToGo(L.Get(2)).(map[string]any); ok {
				data = event.Payload(m)
			}
		}

		api.Trigger(name, data)
		return 0
	}))

	return table
}

// anyMap widens a string-keyed map for the translator.
func anyMap[M ~map[string]any](m M) map[string]any {
	return map[string]any(m)
}

// RegisterScript registers a Lua plugin script under its basename. Every
// player the plugin is added to receives a fresh interpreter state.
func RegisterScript(path string) error {
	name := util.FileStem(path)
	return Register(name, "", func(cfg map[string]any) (Plugin, error) {
		return LoadLua(path, cfg)
	})
}

// RegisterInstalled registers every Lua script in the plugin directory.
// Individual script failures are reported but do not abort the scan.
func RegisterInstalled() error {
	dir := where.Plugins()

	entries, err := filesystem.API().ReadDir(dir)
	if err != nil {
		return err
	}

	for _, entry := range entries {
		if entry.IsDir() || filepath.Ext(entry.Name()) != ".lua" {
			continue
		}

		if err := RegisterScript(filepath.Join(dir, entry.Name())); err != nil {
			log.Warnf("plugin %s: %v", entry.Name(), err)
		}
	}

	return nil
}
