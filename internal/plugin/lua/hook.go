package lua

import (
	"fmt"

	"github.com/shrub4thedub/shrimp/internal/editor"
	"github.com/shrub4thedub/shrimp/internal/plugin/api"
	glua "github.com/yuin/gopher-lua"
)

// Hook is one registered draw-hook callable. Hooks are identified by
// the underlying function value, so a plugin can remove exactly the
// hook it added.
type Hook struct {
	fn    *glua.LFunction
	state *State
}

// NewHook wraps a function value received through the capability
// object. Returns false when the value is not an interpreter function.
func NewHook(state *State, fn any) (*Hook, bool) {
	lf, ok := fn.(*glua.LFunction)
	if !ok {
		return nil, false
	}
	return &Hook{fn: lf, state: state}, true
}

// Matches reports whether fn is the function this hook wraps.
func (h *Hook) Matches(fn any) bool {
	lf, ok := fn.(*glua.LFunction)
	return ok && lf == h.fn
}

// Call invokes the hook with (context, api). Errors and panics are
// contained and returned.
func (h *Hook) Call(ctx *editor.Context, caps *api.Capabilities) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("draw hook panic: %v", r)
		}
	}()
	L := h.state.L
	return L.CallByParam(glua.P{Fn: h.fn, NRet: 0, Protect: true},
		newContextUserdata(L, ctx), newAPIUserdata(L, caps))
}
