package lua

import (
	"strings"

	lua "github.com/yuin/gopher-lua"

	"github.com/dshills/hspace/internal/logging"
)

// blockedGlobals load code from outside the script or reach the host.
var blockedGlobals = []string{
	"dofile",
	"loadfile",
	"load",
	"loadstring",
	"require",
	"module",
}

// installSandbox removes unsafe base functions and routes print to logger.
func installSandbox(L *lua.LState, logger *logging.Logger) {
	for _, name := range blockedGlobals {
		L.SetGlobal(name, lua.LNil)
	}

	L.SetGlobal("print", L.NewFunction(func(L *lua.LState) int {
		n := L.GetTop()
		parts := make([]string, 0, n)
		for i := 1; i <= n; i++ {
			parts = append(parts, L.ToStringMeta(L.Get(i)).String())
		}
		logger.Info("%s", strings.Join(parts, "\t"))
		return 0
	}))
}

// IsBlocked reports whether a global is removed by the sandbox.
func IsBlocked(name string) bool {
	for _, b := range blockedGlobals {
		if b == name {
			return true
		}
	}
	return false
}
