package engine

import (
	"fmt"
	"image"
	"image/color"
	"time"

	"go.uber.org/zap"

	"github.com/se2de/engine/internal/core/event"
	"github.com/se2de/engine/internal/render"
)

// Display is what drawing components need from the platform.
type Display struct {
	Backend    render.Backend // nil when running headless
	FlushColor color.RGBA     // background color surfaces are cleared to
	Size       image.Point    // screen size in pixels
}

// Runtime is the single owner of the engine's shared state: the game event
// registries, the current scene, the running flag and the frame clock. It is
// created once at startup, before any scene is loaded, and handed to every
// subsystem that needs it.
type Runtime struct {
	bus     *event.Bus
	log     *zap.Logger
	display Display

	current *Scene
	running bool
	delta   time.Duration
}

// Option configures a Runtime.
type Option func(*Runtime)

// WithDisplay sets the render capability exposed to components.
func WithDisplay(d Display) Option {
	return func(rt *Runtime) { rt.display = d }
}

// WithBus makes the runtime launch game events on an existing bus.
func WithBus(b *event.Bus) Option {
	return func(rt *Runtime) { rt.bus = b }
}

// NewRuntime creates a running runtime with fresh listener registries.
func NewRuntime(log *zap.Logger, opts ...Option) *Runtime {
	rt := &Runtime{log: log, running: true}
	for _, opt := range opts {
		opt(rt)
	}
	if rt.bus == nil {
		rt.bus = event.NewBus()
	}
	return rt
}

func (rt *Runtime) Bus() *event.Bus          { return rt.bus }
func (rt *Runtime) Log() *zap.Logger         { return rt.log }
func (rt *Runtime) Display() Display         { return rt.display }
func (rt *Runtime) Current() *Scene          { return rt.current }
func (rt *Runtime) Running() bool            { return rt.running }
func (rt *Runtime) DeltaTime() time.Duration { return rt.delta }

// Stop clears the running flag; the frame loop exits after the current
// frame.
func (rt *Runtime) Stop() { rt.running = false }

// SetDeltaTime records the duration of the last frame.
func (rt *Runtime) SetDeltaTime(d time.Duration) { rt.delta = d }

// NewScene creates an inactive scene bound to this runtime. It does not
// become current.
func (rt *Runtime) NewScene(name string) *Scene {
	return newScene(rt, name)
}

// NewGameObject creates a gameobject in the current scene.
func (rt *Runtime) NewGameObject(name string, comps ...Component) (*GameObject, error) {
	if rt.current == nil {
		return nil, ErrNoScene
	}
	return rt.current.NewGameObject(name, comps...)
}

// Find looks a gameobject up in the current scene; see Scene.Find.
func (rt *Runtime) Find(search any) (*GameObject, bool) {
	if rt.current == nil {
		return nil, false
	}
	return rt.current.Find(search)
}

// FindAll is Find returning every match.
func (rt *Runtime) FindAll(search any) []*GameObject {
	if rt.current == nil {
		return nil
	}
	return rt.current.FindAll(search)
}

// DestroyCurrent destroys the current scene, if any, and clears the current
// pointer. Destroying a scene fans its DESTROY event out to every registered
// gameobject, tearing them down.
func (rt *Runtime) DestroyCurrent() error {
	s := rt.current
	if s == nil {
		return nil
	}
	rt.current = nil
	if err := s.Destroy(); err != nil {
		return fmt.Errorf("destroy scene %s: %w", s.Name(), err)
	}
	rt.log.Debug("scene destroyed", zap.String("scene", s.Name()), zap.Stringer("instance", s.InstanceID()))
	return nil
}

func (rt *Runtime) setCurrent(s *Scene) { rt.current = s }
