package plugin

import (
	"os"
	"sync"

	lua "github.com/yuin/gopher-lua"
	"github.com/yuin/gopher-lua/parse"
)

var bytecodeCache sync.Map

// compileAndLoad executes a Lua script within the provided LState, utilizing a
// bytecode cache so the same plugin file attached to many players is only
// parsed once.
func compileAndLoad(L *lua.LState, scriptPath string) error {
	if cachedProto, exists := bytecodeCache.Load(scriptPath); exists {
		fn := L.NewFunctionFromProto(cachedProto.(*lua.FunctionProto))
		L.Push(fn)
		return L.PCall(0, lua.MultRet, nil)
	}

	file, err := os.Open(scriptPath)
	if err != nil {
		return err
	}
	defer file.Close()

	chunk, err := parse.Parse(file, scriptPath)
	if err != nil {
		return err
	}

	proto, err := lua.Compile(chunk, scriptPath)
	if err != nil {
		return err
	}

	bytecodeCache.Store(scriptPath, proto)

	fn := L.NewFunctionFromProto(proto)
	L.Push(fn)
	return L.PCall(0, lua.MultRet, nil)
}
