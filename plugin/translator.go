package plugin

import (
	lua "github.com/yuin/gopher-lua"
)

// goToLua converts a Go value produced by a capability call into its Lua
// representation. Unrepresentable values degrade to nil.
func goToLua(L *lua.LState, value any) lua.LValue {
	switch v := value.(type) {
	case nil:
		return lua.LNil
	case bool:
		return lua.LBool(v)
	case string:
		return lua.LString(v)
	case int:
		return lua.LNumber(v)
	case int64:
		return lua.LNumber(v)
	case float32:
		return lua.LNumber(v)
	case float64:
		return lua.LNumber(v)
	case []any:
		table := L.NewTable()
		for _, item := range v {
			table.Append(goToLua(L, item))
		}
		return table
	case []float64:
		table := L.NewTable()
		for _, item := range v {
			table.Append(lua.LNumber(item))
		}
		return table
	case map[string]any:
		table := L.NewTable()
		for key, item := range v {
			table.RawSetString(key, goToLua(L, item))
		}
		return table
	default:
		return lua.LNil
	}
}

// luaToGo converts a Lua value supplied by a plugin script into its Go
// representation. Tables with contiguous integer keys become slices, all
// other tables become string-keyed maps.
func luaToGo(value lua.LValue) any {
	switch v := value.(type) {
	case *lua.LNilType:
		return nil
	case lua.LBool:
		return bool(v)
	case lua.LString:
		return string(v)
	case lua.LNumber:
		return float64(v)
	case *lua.LTable:
		if n := v.Len(); n > 0 {
			list := make([]any, 0, n)
			for i := 1; i <= n; i++ {
				list = append(list, luaToGo(v.RawGetInt(i)))
			}
			return list
		}
		m := make(map[string]any)
		v.ForEach(func(k, item lua.LValue) {
			m[k.String()] = luaToGo(item)
		})
		return m
	default:
		return nil
	}
}
