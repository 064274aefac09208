package engine

import "fmt"

// ComponentType tags a component implementation. Scene records name
// components by their tag, and gameobjects index their components by it.
type ComponentType string

// Component is a unit of behaviour attached to a GameObject. Implementations
// embed Base (or BaseBehaviour), which supplies the owner bookkeeping and
// no-op hooks, and override the hooks they need.
//
// Hook order over a component's life:
//
//	OnAttach -> OnCreate (construction-time components only)
//	-> (OnSpawn | OnComponentUpdate | OnDespawn)* -> OnDestroy -> OnDetach
//
// OnDetach(false) may return ErrDetachRefused to veto a detach; a forced
// detach cannot be vetoed.
type Component interface {
	Type() ComponentType
	Owner() *GameObject

	OnAttach() error
	OnCreate() error
	OnSpawn() error
	OnComponentUpdate() error
	OnDespawn() error
	OnDestroy() error
	OnDetach(forced bool) error

	setOwner(g *GameObject)
}

// Base implements the bookkeeping part of Component.
type Base struct {
	owner *GameObject
}

// Owner returns the gameobject the component is attached to, or nil.
func (b *Base) Owner() *GameObject { return b.owner }

func (b *Base) setOwner(g *GameObject) { b.owner = g }

func (b *Base) OnAttach() error            { return nil }
func (b *Base) OnCreate() error            { return nil }
func (b *Base) OnSpawn() error             { return nil }
func (b *Base) OnComponentUpdate() error   { return nil }
func (b *Base) OnDespawn() error           { return nil }
func (b *Base) OnDestroy() error           { return nil }
func (b *Base) OnDetach(forced bool) error { return nil }

// Behaviour is a Component that can be switched on and off. Its per-tick
// work lives in OnBehaviourUpdate, which the engine only calls while the
// behaviour is enabled; OnComponentUpdate is never called for a Behaviour.
type Behaviour interface {
	Component
	Enabled() bool
	SetEnabled(enabled bool)
	OnBehaviourUpdate() error
}

// BaseBehaviour implements the bookkeeping part of Behaviour. The zero value
// is disabled; use NewBaseBehaviour to choose.
type BaseBehaviour struct {
	Base
	enabled bool
}

// NewBaseBehaviour returns a BaseBehaviour with the given enabled state.
func NewBaseBehaviour(enabled bool) BaseBehaviour {
	return BaseBehaviour{enabled: enabled}
}

func (b *BaseBehaviour) Enabled() bool            { return b.enabled }
func (b *BaseBehaviour) SetEnabled(enabled bool)  { b.enabled = enabled }
func (b *BaseBehaviour) OnBehaviourUpdate() error { return nil }

// updateHook returns the callback wired to the gameobject UPDATE event.
func updateHook(c Component) func() error {
	if b, ok := c.(Behaviour); ok {
		return func() error {
			if !b.Enabled() {
				return nil
			}
			return b.OnBehaviourUpdate()
		}
	}
	return c.OnComponentUpdate
}

// Describe formats a component for messages.
func Describe(c Component) string {
	if c == nil {
		return "<nil>"
	}
	if b, ok := c.(Behaviour); ok {
		return fmt.Sprintf("%s(enabled=%t, gameobject=%s)", c.Type(), b.Enabled(), c.Owner())
	}
	return fmt.Sprintf("%s(gameobject=%s)", c.Type(), c.Owner())
}

// ComponentOf returns the first component of g tagged t, asserted to T.
func ComponentOf[T Component](g *GameObject, t ComponentType) (T, bool) {
	var zero T
	c, ok := g.GetComponent(t)
	if !ok {
		return zero, false
	}
	typed, ok := c.(T)
	return typed, ok
}
