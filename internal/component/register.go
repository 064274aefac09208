// Package component holds the built-in components and behaviours: the
// Transform every gameobject carries, the renderers drawing through the
// runtime's display, the Tween motion behaviour and Lua scripted
// behaviours.
package component

import (
	"github.com/se2de/engine/internal/engine"
	"github.com/se2de/engine/internal/scripting"
)

// Deps are the services some built-in components need at construction.
type Deps struct {
	Scripts *scripting.Engine // nil disables Script components
}

// RegisterAll binds every built-in component type in reg.
func RegisterAll(reg *engine.Registry, deps Deps) {
	reg.Register(TypeTransform, transformFactory)
	reg.Register(TypeBoxRenderer, boxFactory)
	reg.Register(TypeCircleRenderer, circleFactory)
	reg.Register(TypeTextRenderer, textFactory)
	reg.Register(TypeTween, tweenFactory)
	reg.Register(TypeScript, scriptFactory(deps.Scripts))
}
