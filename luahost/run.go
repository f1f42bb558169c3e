package luahost

import (
	"fmt"

	"github.com/Shopify/go-lua"

	"duck-engine/duckmg"
)

// RunFile executes the script at path. If the script returns a GameState it
// is handed back; otherwise the result is nil.
func RunFile(state *lua.State, path string) (*duckmg.GameState, error) {
	top := state.Top()
	if err := lua.LoadFile(state, path, ""); err != nil {
		state.SetTop(top)
		return nil, fmt.Errorf("load lua: %w", err)
	}
	return call(state, top)
}

// RunString executes src as a chunk called name.
func RunString(state *lua.State, src, name string) (*duckmg.GameState, error) {
	top := state.Top()
	if err := lua.LoadBuffer(state, src, name, ""); err != nil {
		state.SetTop(top)
		return nil, fmt.Errorf("load lua: %w", err)
	}
	return call(state, top)
}

func call(state *lua.State, top int) (*duckmg.GameState, error) {
	defer state.SetTop(top)
	if err := state.ProtectedCall(0, 1, 0); err != nil {
		return nil, fmt.Errorf("run lua: %w", err)
	}
	g, _ := ToGameState(state, -1)
	return g, nil
}
