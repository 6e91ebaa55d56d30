package lua

import (
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/shrub4thedub/shrimp/internal/editor"
	"github.com/shrub4thedub/shrimp/internal/plugin/api"
	glua "github.com/yuin/gopher-lua"
)

// Errors returned by compilation.
var (
	ErrNotAFunction = errors.New("compiled chunk did not return a function")
)

// Kind distinguishes the two action calling conventions. It is decided
// once at compile time and never re-inspected per call.
type Kind int

const (
	// KindLegacy actions receive (context, log, status).
	KindLegacy Kind = iota

	// KindCapability actions additionally receive the api object.
	KindCapability
)

// apiRef matches a reference to the api parameter in a body line.
var apiRef = regexp.MustCompile(`\bapi\b`)

// Action is one compiled bind body.
type Action struct {
	kind  Kind
	fn    *glua.LFunction
	state *State
}

// Compile wraps body into a callable unit on state. A body that never
// references api compiles to the legacy three-parameter form; name is
// used only in diagnostics. An empty body compiles to a no-op.
func Compile(state *State, name string, body []string) (*Action, error) {
	kind := KindLegacy
	for _, line := range body {
		if apiRef.MatchString(line) {
			kind = KindCapability
			break
		}
	}

	params := "context, log, status"
	if kind == KindCapability {
		params += ", api"
	}
	src := "return function(" + params + ")\n" + strings.Join(body, "\n") + "\nend"

	L := state.L
	if err := L.DoString(src); err != nil {
		return nil, fmt.Errorf("compile %s: %w", name, err)
	}
	ret := L.Get(-1)
	L.Pop(1)
	fn, ok := ret.(*glua.LFunction)
	if !ok {
		return nil, fmt.Errorf("compile %s: %w", name, ErrNotAFunction)
	}
	return &Action{kind: kind, fn: fn, state: state}, nil
}

// Kind returns the action's calling convention.
func (a *Action) Kind() Kind { return a.kind }

// Call invokes the action with a fresh bridge over ctx and caps. Both
// raised errors and interpreter panics are returned, never propagated.
func (a *Action) Call(ctx *editor.Context, caps *api.Capabilities) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("action panic: %v", r)
		}
	}()

	L := a.state.L
	args := []glua.LValue{
		newContextUserdata(L, ctx),
		L.NewFunction(func(L *glua.LState) int {
			if caps.Log != nil {
				caps.Log(L.CheckString(1))
			}
			return 0
		}),
		L.NewFunction(func(L *glua.LState) int {
			if caps.Status != nil {
				caps.Status(L.CheckString(1))
			}
			return 0
		}),
	}
	if a.kind == KindCapability {
		args = append(args, newAPIUserdata(L, caps))
	}

	return L.CallByParam(glua.P{Fn: a.fn, NRet: 0, Protect: true}, args...)
}
