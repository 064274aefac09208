package component

import (
	lua "github.com/yuin/gopher-lua"

	"github.com/se2de/engine/internal/engine"
	"github.com/se2de/engine/internal/scripting"
)

// TypeScript tags Script behaviours.
const TypeScript engine.ComponentType = "Script"

// Script is a behaviour whose hooks are written in Lua. The script file
// returns a table of optional hooks, each called with a self table exposing
// name, id, position(), move(dx, dy) and set_enabled(bool).
type Script struct {
	engine.BaseBehaviour

	name string
	vm   *scripting.Engine
	inst *scripting.Instance
}

// NewScript creates an enabled behaviour running script name.
func NewScript(e *scripting.Engine, name string) *Script {
	return &Script{BaseBehaviour: engine.NewBaseBehaviour(true), name: name, vm: e}
}

func scriptFactory(e *scripting.Engine) engine.Factory {
	return func(args map[string]any) (engine.Component, error) {
		var a struct {
			Script  string `arg:"script"`
			Enabled *bool  `arg:"enabled"`
		}
		if err := engine.DecodeArgs(args, &a); err != nil {
			return nil, err
		}
		s := NewScript(e, a.Script)
		if a.Enabled != nil {
			s.SetEnabled(*a.Enabled)
		}
		return s, nil
	}
}

func (s *Script) Type() engine.ComponentType { return TypeScript }

// Script returns the script name.
func (s *Script) Script() string { return s.name }

func (s *Script) OnAttach() error {
	if s.vm == nil {
		return engine.NewComponentError(s, "scripting is not enabled")
	}
	inst, err := s.vm.NewInstance(s.name, s)
	if err != nil {
		return s.fail(err)
	}
	s.inst = inst
	return s.call(scripting.HookAttach)
}

func (s *Script) OnCreate() error          { return s.call(scripting.HookCreate) }
func (s *Script) OnSpawn() error           { return s.call(scripting.HookSpawn) }
func (s *Script) OnBehaviourUpdate() error { return s.call(scripting.HookUpdate) }
func (s *Script) OnDespawn() error         { return s.call(scripting.HookDespawn) }
func (s *Script) OnDestroy() error         { return s.call(scripting.HookDestroy) }

func (s *Script) OnDetach(forced bool) error {
	return s.call(scripting.HookDetach, lua.LBool(forced))
}

func (s *Script) call(hook string, args ...lua.LValue) error {
	if s.inst == nil {
		return nil
	}
	if err := s.inst.Call(hook, args...); err != nil {
		return s.fail(err)
	}
	return nil
}

func (s *Script) fail(err error) error {
	return &engine.ComponentError{Component: s, Message: err.Error(), Err: err}
}

// Name is the owning gameobject's name.
func (s *Script) Name() string { return s.Owner().Name() }

// ID is the owning gameobject's id.
func (s *Script) ID() int { return s.Owner().ID() }

// Position returns the absolute position of the gameobject's Transform, or
// the origin without one.
func (s *Script) Position() (x, y float64) {
	if t, ok := engine.ComponentOf[*Transform](s.Owner(), TypeTransform); ok {
		p := t.Absolute()
		return p.X, p.Y
	}
	return 0, 0
}

// Move shifts the gameobject's Transform, if any.
func (s *Script) Move(dx, dy float64) {
	if t, ok := engine.ComponentOf[*Transform](s.Owner(), TypeTransform); ok {
		t.Move(Vec2{dx, dy})
	}
}
