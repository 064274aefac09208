package engine

import (
	"time"

	"github.com/se2de/engine/internal/core/system"
)

// SceneSystem ticks the current scene once per frame.
type SceneSystem struct {
	rt *Runtime
}

// NewSceneSystem returns the update-phase system driving rt's current scene.
func NewSceneSystem(rt *Runtime) *SceneSystem {
	return &SceneSystem{rt: rt}
}

func (s *SceneSystem) Phase() system.Phase { return system.PhaseUpdate }

func (s *SceneSystem) Update(dt time.Duration) error {
	s.rt.SetDeltaTime(dt)
	if s.rt.current == nil {
		return nil
	}
	return s.rt.current.Update()
}
