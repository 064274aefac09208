package engine

import (
	"fmt"
	"slices"

	"github.com/google/uuid"

	"github.com/se2de/engine/internal/core/event"
)

// Scene owns a set of gameobjects and routes the per-frame tick to them.
//
// Lifecycle: a scene is created inactive; ACTIVATE marks it active; every
// UPDATE fans out to the update of each registered gameobject; DESTROY fans
// out to their destroy and leaves the scene inactive. Each step is a
// scene-level event others may listen to.
//
// Scene and gameobject events live on the scene's own Bus, so scenes never
// see each other's objects even though every scene numbers them from 0.
type Scene struct {
	rt       *Runtime
	bus      *event.Bus
	name     string
	instance uuid.UUID
	active   bool

	objects map[int]*GameObject
	order   []int // ids in registration order, ascending
	subs    map[int][2]*event.Listener
}

func newScene(rt *Runtime, name string) *Scene {
	return &Scene{
		rt:       rt,
		bus:      event.NewBus(),
		name:     name,
		instance: uuid.New(),
		objects:  make(map[int]*GameObject),
		subs:     make(map[int][2]*event.Listener),
	}
}

func (s *Scene) Name() string          { return s.name }
func (s *Scene) InstanceID() uuid.UUID { return s.instance }
func (s *Scene) Active() bool          { return s.active }
func (s *Scene) Runtime() *Runtime     { return s.rt }
func (s *Scene) Len() int              { return len(s.order) }

// Bus returns the registries of the scene's events and of its gameobjects'
// events. Game events are launched on Runtime.Bus.
func (s *Scene) Bus() *event.Bus { return s.bus }

// Activate marks the scene active and launches ACTIVATE. Activating an
// active scene does nothing.
func (s *Scene) Activate() error {
	if s.active {
		return nil
	}
	s.active = true
	return s.bus.Launch(event.SceneActivate, nil)
}

// Update launches UPDATE when the scene is active.
func (s *Scene) Update() error {
	if !s.active {
		return nil
	}
	return s.bus.Launch(event.SceneUpdate, nil)
}

// Destroy launches DESTROY and deactivates the scene.
func (s *Scene) Destroy() error {
	err := s.bus.Launch(event.SceneDestroy, nil)
	s.active = false
	return err
}

// NewGameObject creates a gameobject in s: it is registered, the given
// components are attached in order and CREATE is launched. If any step
// fails the gameobject is destroyed again and the error returned.
func (s *Scene) NewGameObject(name string, comps ...Component) (*GameObject, error) {
	g := &GameObject{
		scene:  s,
		name:   name,
		byType: make(map[ComponentType][]*attachment),
	}
	g.id = s.Register(g)

	err := g.Attach(comps...)
	if err == nil {
		err = s.bus.LaunchObject(event.ObjectCreate, g.id, nil)
	}
	if err != nil {
		if derr := g.Destroy(); derr != nil {
			s.rt.log.Debug("teardown of failed gameobject: " + derr.Error())
		}
		return nil, err
	}
	return g, nil
}

// Register inserts g under the next free id and subscribes its update and
// destroy to the scene's UPDATE and DESTROY. The next free id is one past
// the highest registered id, or 0 for an empty scene.
func (s *Scene) Register(g *GameObject) int {
	id := 0
	if n := len(s.order); n > 0 {
		id = s.order[n-1] + 1
	}
	s.objects[id] = g
	s.order = append(s.order, id)

	bus := s.bus
	destroy := bus.Listener(event.SceneDestroy, event.Bind(g, "destroy", g.Destroy))
	destroy.Listen()
	update := bus.Listener(event.SceneUpdate, event.Bind(g, "update", g.Update))
	update.Listen()
	s.subs[id] = [2]*event.Listener{update, destroy}
	return id
}

// Unregister unsubscribes the gameobject with the given id and removes it.
// An unknown id is an ErrNotFound error.
func (s *Scene) Unregister(id int) error {
	if _, ok := s.objects[id]; !ok {
		return fmt.Errorf("unregister gameobject %d from scene %s: %w", id, s.name, ErrNotFound)
	}
	for _, l := range s.subs[id] {
		l.Ignore()
	}
	delete(s.subs, id)
	delete(s.objects, id)
	if i := slices.Index(s.order, id); i >= 0 {
		s.order = slices.Delete(s.order, i, i+1)
	}
	return nil
}

// Get returns the gameobject registered under id.
func (s *Scene) Get(id int) (*GameObject, bool) {
	g, ok := s.objects[id]
	return g, ok
}

// Objects returns the registered gameobjects in registration order.
func (s *Scene) Objects() []*GameObject {
	out := make([]*GameObject, 0, len(s.order))
	for _, id := range s.order {
		out = append(out, s.objects[id])
	}
	return out
}

// IDs returns the registered ids in registration order.
func (s *Scene) IDs() []int { return slices.Clone(s.order) }

// Find returns the first gameobject matching search: a string is matched
// against names, an integer is an id.
func (s *Scene) Find(search any) (*GameObject, bool) {
	switch v := search.(type) {
	case string:
		for _, id := range s.order {
			if g := s.objects[id]; g.name == v {
				return g, true
			}
		}
		return nil, false
	default:
		id, ok := toID(search)
		if !ok {
			return nil, false
		}
		return s.Get(id)
	}
}

// FindAll returns every gameobject matching search; empty when none does.
func (s *Scene) FindAll(search any) []*GameObject {
	name, ok := search.(string)
	if !ok {
		if g, found := s.Find(search); found {
			return []*GameObject{g}
		}
		return nil
	}
	var out []*GameObject
	for _, id := range s.order {
		if g := s.objects[id]; g.name == name {
			out = append(out, g)
		}
	}
	return out
}

func (s *Scene) String() string {
	return fmt.Sprintf("Scene(name=%s, active=%t)", s.name, s.active)
}

func toID(v any) (int, bool) {
	switch n := v.(type) {
	case int:
		return n, true
	case int64:
		return int(n), true
	case int32:
		return int(n), true
	case uint:
		return int(n), true
	case uint64:
		return int(n), true
	case float64:
		if n == float64(int(n)) {
			return int(n), true
		}
	}
	return 0, false
}
