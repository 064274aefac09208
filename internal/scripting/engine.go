package scripting

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	lua "github.com/yuin/gopher-lua"
	"go.uber.org/zap"
)

// Hook names a script may define in the table it returns.
const (
	HookAttach  = "on_attach"
	HookCreate  = "on_create"
	HookSpawn   = "on_spawn"
	HookUpdate  = "on_update"
	HookDespawn = "on_despawn"
	HookDestroy = "on_destroy"
	HookDetach  = "on_detach"
)

// ErrScriptNotFound is returned when no file exists for a script name.
var ErrScriptNotFound = errors.New("script not found")

// Engine wraps a single gopher-lua VM running behaviour scripts.
// Single-goroutine access only (frame loop).
type Engine struct {
	vm      *lua.LState
	dir     string
	log     *zap.Logger
	modules map[string]*lua.LTable
}

// NewEngine creates a Lua engine for the scripts under dir. Shared helpers
// in dir/lib are loaded up front; behaviour scripts are loaded on first use.
func NewEngine(dir string, log *zap.Logger) (*Engine, error) {
	vm := lua.NewState()
	vm.SetGlobal("API_VERSION", lua.LNumber(1))

	e := &Engine{vm: vm, dir: dir, log: log, modules: make(map[string]*lua.LTable)}
	vm.SetGlobal("log", vm.NewFunction(e.luaLog))

	if err := e.loadDir(filepath.Join(dir, "lib")); err != nil {
		vm.Close()
		return nil, fmt.Errorf("load lib scripts: %w", err)
	}
	return e, nil
}

// Close releases the VM.
func (e *Engine) Close() { e.vm.Close() }

// loadDir runs all .lua files in a directory.
func (e *Engine) loadDir(dir string) error {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil // skip missing dirs
		}
		return err
	}
	for _, entry := range entries {
		if entry.IsDir() || filepath.Ext(entry.Name()) != ".lua" {
			continue
		}
		path := filepath.Join(dir, entry.Name())
		if err := e.vm.DoFile(path); err != nil {
			return fmt.Errorf("load %s: %w", path, err)
		}
		e.log.Debug("loaded lua script", zap.String("file", path))
	}
	return nil
}

// module returns the hook table of script name, running dir/name.lua the
// first time. The file must return a table.
func (e *Engine) module(name string) (*lua.LTable, error) {
	if m, ok := e.modules[name]; ok {
		return m, nil
	}
	path := filepath.Join(e.dir, name+".lua")
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%s: %w", path, ErrScriptNotFound)
		}
		return nil, err
	}

	fn, err := e.vm.LoadFile(path)
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", path, err)
	}
	e.vm.Push(fn)
	if err := e.vm.PCall(0, 1, nil); err != nil {
		return nil, fmt.Errorf("run %s: %w", path, err)
	}
	ret := e.vm.Get(-1)
	e.vm.Pop(1)
	m, ok := ret.(*lua.LTable)
	if !ok {
		return nil, fmt.Errorf("script %s returned %s, want a table", name, ret.Type())
	}
	e.modules[name] = m
	e.log.Debug("loaded lua script", zap.String("file", path))
	return m, nil
}

// Host is what a script instance can see and drive of its component.
type Host interface {
	Name() string
	ID() int
	Position() (x, y float64)
	Move(dx, dy float64)
	SetEnabled(enabled bool)
}

// Instance is one component's view of a script: the shared hook table and
// a private self table.
type Instance struct {
	e      *Engine
	script string
	hooks  *lua.LTable
	self   *lua.LTable
	host   Host
}

// NewInstance binds script name to host.
func (e *Engine) NewInstance(name string, host Host) (*Instance, error) {
	hooks, err := e.module(name)
	if err != nil {
		return nil, err
	}
	inst := &Instance{e: e, script: name, hooks: hooks, host: host}
	inst.self = e.newSelf(host)
	return inst, nil
}

func (e *Engine) newSelf(host Host) *lua.LTable {
	vm := e.vm
	self := vm.NewTable()
	self.RawSetString("position", vm.NewFunction(func(L *lua.LState) int {
		x, y := host.Position()
		L.Push(lua.LNumber(x))
		L.Push(lua.LNumber(y))
		return 2
	}))
	self.RawSetString("move", vm.NewFunction(func(L *lua.LState) int {
		host.Move(float64(L.CheckNumber(2)), float64(L.CheckNumber(3)))
		return 0
	}))
	self.RawSetString("set_enabled", vm.NewFunction(func(L *lua.LState) int {
		host.SetEnabled(L.CheckBool(2))
		return 0
	}))
	return self
}

// Has reports whether the script defines hook.
func (i *Instance) Has(hook string) bool {
	_, ok := i.hooks.RawGetString(hook).(*lua.LFunction)
	return ok
}

// Call runs hook with self and args. A missing hook is a no-op. Lua errors
// are logged and returned.
func (i *Instance) Call(hook string, args ...lua.LValue) error {
	fn, ok := i.hooks.RawGetString(hook).(*lua.LFunction)
	if !ok {
		return nil
	}
	i.self.RawSetString("name", lua.LString(i.host.Name()))
	i.self.RawSetString("id", lua.LNumber(i.host.ID()))

	err := i.e.vm.CallByParam(lua.P{
		Fn:      fn,
		NRet:    0,
		Protect: true,
	}, append([]lua.LValue{i.self}, args...)...)
	if err != nil {
		i.e.log.Error("lua hook error",
			zap.String("script", i.script), zap.String("hook", hook), zap.Error(err))
		return fmt.Errorf("script %s %s: %w", i.script, hook, err)
	}
	return nil
}

// Self returns the instance's self table, for tests and host extensions.
func (i *Instance) Self() *lua.LTable { return i.self }

func (e *Engine) luaLog(L *lua.LState) int {
	e.log.Info(L.CheckString(1), zap.String("source", "lua"))
	return 0
}
