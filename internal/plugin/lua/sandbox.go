package lua

import (
	"strings"

	lua "github.com/yuin/gopher-lua"

	"github.com/dshills/mentions/internal/logging"
)

// unsafeGlobals load code from outside the script.
var unsafeGlobals = []string{
	"dofile",
	"loadfile",
	"load",
	"loadstring",
	"module",
}

// sandbox removes globals that can load code and routes print and require
// through the host.
func sandbox(L *lua.LState, logger *logging.Logger) {
	for _, name := range unsafeGlobals {
		L.SetGlobal(name, lua.LNil)
	}

	L.SetGlobal("print", L.NewFunction(func(L *lua.LState) int {
		parts := make([]string, 0, L.GetTop())
		for i := 1; i <= L.GetTop(); i++ {
			parts = append(parts, L.ToStringMeta(L.Get(i)).String())
		}
		logger.Info("%s", strings.Join(parts, "\t"))
		return 0
	}))

	L.SetGlobal("require", L.NewFunction(func(L *lua.LState) int {
		L.RaiseError("module %q is not available", L.CheckString(1))
		return 0
	}))
}
