package lua

import (
	"fmt"

	glua "github.com/yuin/gopher-lua"
)

// State wraps one interpreter instance. All actions compiled by a
// runtime share a single state and run on the foreground goroutine.
type State struct {
	L *glua.LState
}

// NewState creates an interpreter with the restricted library set and
// the bridge types registered.
func NewState() (*State, error) {
	L := glua.NewState(glua.Options{SkipOpenLibs: true})

	libs := []struct {
		name string
		open glua.LGFunction
	}{
		{glua.BaseLibName, glua.OpenBase},
		{glua.TabLibName, glua.OpenTable},
		{glua.StringLibName, glua.OpenString},
		{glua.MathLibName, glua.OpenMath},
	}
	for _, lib := range libs {
		if err := L.CallByParam(glua.P{
			Fn:      L.NewFunction(lib.open),
			NRet:    0,
			Protect: true,
		}, glua.LString(lib.name)); err != nil {
			L.Close()
			return nil, fmt.Errorf("open lua lib %s: %w", lib.name, err)
		}
	}

	// Base opens a few escape hatches the restricted set must not
	// keep: file loading and raw chunk loading.
	for _, name := range []string{"dofile", "loadfile", "load", "loadstring", "print"} {
		L.SetGlobal(name, glua.LNil)
	}

	registerContextType(L)
	registerAPIType(L)

	return &State{L: L}, nil
}

// Close releases the interpreter.
func (s *State) Close() {
	s.L.Close()
}
