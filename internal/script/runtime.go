package script

import (
	"fmt"
	"strings"
	"time"

	lua "github.com/yuin/gopher-lua"

	"github.com/dshills/cellpanel/internal/widget"
)

// Hook names.
const (
	HookTick = "on_tick"
	HookKey  = "on_key"
	HookText = "on_text"
)

// Host gives scripts access to the named widgets of the current scene.
type Host interface {
	Label(name string) (*widget.Label, bool)
	Progress(name string) (*widget.Progress, bool)
	RequestQuit()
}

// Option configures a Runtime.
type Option func(*Runtime)

// WithTimeout sets the time budget of each script call.
func WithTimeout(d time.Duration) Option {
	return func(r *Runtime) {
		r.timeout = d
	}
}

// WithPrint routes Lua print output to fn.
func WithPrint(fn func(msg string)) Option {
	return func(r *Runtime) {
		r.print = fn
	}
}

// Runtime is a loaded script bound to a Host.
//
// Hooks and the ui functions run on the caller's goroutine;
// callers must not use a Runtime from more than one goroutine at a time.
type Runtime struct {
	state   *State
	host    Host
	path    string
	timeout time.Duration
	print   func(msg string)
}

// New creates a runtime with the ui API installed and no script loaded.
func New(host Host, opts ...Option) *Runtime {
	r := &Runtime{
		host:    host,
		timeout: DefaultTimeout,
	}
	for _, opt := range opts {
		opt(r)
	}

	r.state = NewState(r.timeout)
	r.state.RegisterModule("ui", r.api())
	if r.print != nil {
		r.state.RegisterFunc("print", r.luaPrint)
	}
	return r
}

// Load creates a runtime and executes the script at path.
func Load(path string, host Host, opts ...Option) (*Runtime, error) {
	r := New(host, opts...)
	r.path = path
	if err := r.state.DoFile(path); err != nil {
		r.Close()
		return nil, fmt.Errorf("load script %s: %w", path, err)
	}
	return r, nil
}

// Path returns the file the runtime was loaded from.
func (r *Runtime) Path() string {
	return r.path
}

// OnTick calls on_tick(frame) if the script defines it.
func (r *Runtime) OnTick(frame uint64) error {
	return r.hook(HookTick, lua.LNumber(frame))
}

// OnKey calls on_key(name) if the script defines it.
func (r *Runtime) OnKey(name string) error {
	return r.hook(HookKey, lua.LString(name))
}

// OnText calls on_text(text) if the script defines it.
func (r *Runtime) OnText(text string) error {
	return r.hook(HookText, lua.LString(text))
}

func (r *Runtime) hook(name string, arg lua.LValue) error {
	if !r.state.HasFunction(name) {
		return nil
	}
	if _, err := r.state.Call(name, arg); err != nil {
		return fmt.Errorf("%s: %w", name, err)
	}
	return nil
}

// Close releases the Lua state.
func (r *Runtime) Close() error {
	return r.state.Close()
}

func (r *Runtime) api() map[string]lua.LGFunction {
	return map[string]lua.LGFunction{
		"label":        r.luaLabel,
		"set_label":    r.luaSetLabel,
		"progress":     r.luaProgress,
		"set_progress": r.luaSetProgress,
		"set_range":    r.luaSetRange,
		"quit":         r.luaQuit,
	}
}

func (r *Runtime) label(L *lua.LState) *widget.Label {
	name := L.CheckString(1)
	if r.host != nil {
		if l, ok := r.host.Label(name); ok {
			return l
		}
	}
	L.ArgError(1, fmt.Sprintf("unknown label %q", name))
	return nil
}

func (r *Runtime) progress(L *lua.LState) *widget.Progress {
	name := L.CheckString(1)
	if r.host != nil {
		if p, ok := r.host.Progress(name); ok {
			return p
		}
	}
	L.ArgError(1, fmt.Sprintf("unknown progress %q", name))
	return nil
}

func (r *Runtime) luaLabel(L *lua.LState) int {
	L.Push(lua.LString(r.label(L).Text()))
	return 1
}

func (r *Runtime) luaSetLabel(L *lua.LState) int {
	l := r.label(L)
	l.SetText(L.CheckString(2))
	return 0
}

func (r *Runtime) luaProgress(L *lua.LState) int {
	p := r.progress(L)
	L.Push(lua.LNumber(p.Value()))
	L.Push(lua.LNumber(p.Min()))
	L.Push(lua.LNumber(p.Max()))
	return 3
}

func (r *Runtime) luaSetProgress(L *lua.LState) int {
	p := r.progress(L)
	p.SetValue(L.CheckInt(2))
	return 0
}

func (r *Runtime) luaSetRange(L *lua.LState) int {
	p := r.progress(L)
	if err := p.SetRange(L.CheckInt(2), L.CheckInt(3)); err != nil {
		L.RaiseError("%s", err.Error())
	}
	return 0
}

func (r *Runtime) luaQuit(L *lua.LState) int {
	if r.host != nil {
		r.host.RequestQuit()
	}
	return 0
}

func (r *Runtime) luaPrint(L *lua.LState) int {
	top := L.GetTop()
	parts := make([]string, 0, top)
	for i := 1; i <= top; i++ {
		parts = append(parts, L.ToStringMeta(L.Get(i)).String())
	}
	r.print(strings.Join(parts, "\t"))
	return 0
}
