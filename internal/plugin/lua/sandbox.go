package lua

import (
	"strings"

	lua "github.com/yuin/gopher-lua"

	"github.com/dshills/wonderland/internal/log"
)

// removedGlobals load code from disk or strings and could bypass the sandbox.
var removedGlobals = []string{
	"dofile",
	"loadfile",
	"load",
	"loadstring",
	"require",
	"module",
	"collectgarbage",
}

// ModuleName is the global table of helper functions given to plugins.
const ModuleName = "wonderland"

// installSandbox removes unsafe globals, redirects print to the plugin log
// and installs the helper module.
func installSandbox(L *lua.LState, logger log.Logger, name string) {
	for _, g := range removedGlobals {
		L.SetGlobal(g, lua.LNil)
	}

	L.SetGlobal("print", L.NewFunction(func(L *lua.LState) int {
		logger.Info("plugin print", "plugin", name, "text", joinArgs(L, 1))
		return 0
	}))

	mod := L.SetFuncs(L.NewTable(), map[string]lua.LGFunction{
		"trim":        luaTrim,
		"indent":      luaIndent,
		"starts_with": luaStartsWith,
		"ends_with":   luaEndsWith,
		"split":       luaSplit,
		"log": func(L *lua.LState) int {
			logger.Debug("plugin log", "plugin", name, "text", joinArgs(L, 1))
			return 0
		},
	})
	L.SetGlobal(ModuleName, mod)
}

func joinArgs(L *lua.LState, from int) string {
	parts := make([]string, 0, L.GetTop())
	for i := from; i <= L.GetTop(); i++ {
		parts = append(parts, L.Get(i).String())
	}
	return strings.Join(parts, "\t")
}

func luaTrim(L *lua.LState) int {
	L.Push(lua.LString(strings.TrimSpace(L.CheckString(1))))
	return 1
}

func luaIndent(L *lua.LState) int {
	s := L.CheckString(1)
	L.Push(lua.LString(s[:len(s)-len(strings.TrimLeft(s, " \t"))]))
	return 1
}

func luaStartsWith(L *lua.LState) int {
	L.Push(lua.LBool(strings.HasPrefix(L.CheckString(1), L.CheckString(2))))
	return 1
}

func luaEndsWith(L *lua.LState) int {
	L.Push(lua.LBool(strings.HasSuffix(L.CheckString(1), L.CheckString(2))))
	return 1
}

func luaSplit(L *lua.LState) int {
	parts := strings.Split(L.CheckString(1), L.CheckString(2))
	L.Push(stringsToTable(L, parts))
	return 1
}
