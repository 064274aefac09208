package engine

import (
	"errors"
	"fmt"
	"slices"

	"go.uber.org/zap"

	"github.com/se2de/engine/internal/core/event"
)

// GameObject is a named container of components living in exactly one
// scene. Its lifecycle steps are gameobject events scoped to its id:
//
//   - CREATE: fired once after the construction-time components are
//     attached. Other gameobjects of the scene may not exist yet.
//   - SPAWN: the gameobject starts receiving updates. May repeat.
//   - UPDATE: once per scene tick while spawned.
//   - DESPAWN: updates stop. May repeat.
//   - DESTROY: fired before every component is detached and the gameobject
//     leaves its scene.
type GameObject struct {
	scene     *Scene
	id        int
	name      string
	spawned   bool
	destroyed bool

	components []*attachment // attachment order
	byType     map[ComponentType][]*attachment
}

// attachment is a component together with the listeners wired for it.
type attachment struct {
	comp Component
	subs []*event.Listener
}

func (g *GameObject) ID() int           { return g.id }
func (g *GameObject) Name() string      { return g.name }
func (g *GameObject) Spawned() bool     { return g.spawned }
func (g *GameObject) Destroyed() bool   { return g.destroyed }
func (g *GameObject) Scene() *Scene     { return g.scene }
func (g *GameObject) Runtime() *Runtime { return g.scene.rt }

func (g *GameObject) bus() *event.Bus  { return g.scene.bus }
func (g *GameObject) log() *zap.Logger { return g.scene.rt.log }

// Spawn marks the gameobject spawned and launches SPAWN. A destroyed
// gameobject is an ErrNotFound error.
func (g *GameObject) Spawn() error {
	if err := g.alive("spawn"); err != nil {
		return err
	}
	g.spawned = true
	return g.bus().LaunchObject(event.ObjectSpawn, g.id, nil)
}

// Despawn marks the gameobject despawned and launches DESPAWN. A destroyed
// gameobject is an ErrNotFound error.
func (g *GameObject) Despawn() error {
	if err := g.alive("despawn"); err != nil {
		return err
	}
	g.spawned = false
	return g.bus().LaunchObject(event.ObjectDespawn, g.id, nil)
}

// Update launches UPDATE if the gameobject is spawned.
func (g *GameObject) Update() error {
	if !g.spawned || g.destroyed {
		return nil
	}
	return g.bus().LaunchObject(event.ObjectUpdate, g.id, nil)
}

// Destroy launches DESTROY, force-detaches every component and unregisters
// the gameobject from its scene. Destroying twice is a no-op.
func (g *GameObject) Destroy() error {
	if g.destroyed {
		return nil
	}
	g.destroyed = true
	errDestroy := g.bus().LaunchObject(event.ObjectDestroy, g.id, nil)
	errDetach := g.detachAll()
	errUnregister := g.scene.Unregister(g.id)
	g.log().Debug("gameobject destroyed", zap.Int("id", g.id), zap.String("name", g.name))
	return errors.Join(errDestroy, errDetach, errUnregister)
}

func (g *GameObject) alive(op string) error {
	if g.destroyed {
		return fmt.Errorf("%s destroyed gameobject %d: %w", op, g.id, ErrNotFound)
	}
	return nil
}

// Attach attaches components in order. A component already attached to a
// gameobject is skipped. The first OnAttach error stops the sequence; the
// failing component is left detached. Attaching to a destroyed gameobject is
// an ErrNotFound error.
func (g *GameObject) Attach(comps ...Component) error {
	if err := g.alive("attach to"); err != nil {
		return err
	}
	for _, c := range comps {
		if c == nil || c.Owner() != nil {
			continue
		}
		if err := g.attach(c); err != nil {
			return err
		}
	}
	return nil
}

func (g *GameObject) attach(c Component) error {
	a := &attachment{comp: c}
	g.components = append(g.components, a)
	g.byType[c.Type()] = append(g.byType[c.Type()], a)

	a.subs = g.wire(c)
	c.setOwner(g)
	if err := c.OnAttach(); err != nil {
		for _, l := range a.subs {
			l.Ignore()
		}
		c.setOwner(nil)
		g.forget(a)
		return err
	}
	g.log().Debug("component attached",
		zap.Int("gameobject", g.id), zap.String("type", string(c.Type())))
	return nil
}

// wire subscribes the component hooks to the gameobject events. Each hook is
// guarded so it never runs once the component has left this gameobject,
// even from a dispatch snapshot taken before the detach.
func (g *GameObject) wire(c Component) []*event.Listener {
	hooks := []struct {
		ev     event.ObjectEvent
		method string
		fn     func() error
	}{
		{event.ObjectCreate, "OnCreate", c.OnCreate},
		{event.ObjectSpawn, "OnSpawn", c.OnSpawn},
		{event.ObjectUpdate, "OnComponentUpdate", updateHook(c)},
		{event.ObjectDespawn, "OnDespawn", c.OnDespawn},
		{event.ObjectDestroy, "OnDestroy", c.OnDestroy},
	}
	subs := make([]*event.Listener, 0, len(hooks))
	for _, h := range hooks {
		fn := h.fn
		guarded := func() error {
			if c.Owner() != g {
				return nil
			}
			return fn()
		}
		l := g.bus().ObjectListener(h.ev, g.id, event.Bind(c, h.method, guarded))
		l.Listen()
		subs = append(subs, l)
	}
	return subs
}

// Detach detaches the first component tagged t, or every one when all is
// set. It returns how many were detached. A component refusing the detach
// stays attached and its error, wrapping ErrDetachRefused, is returned.
func (g *GameObject) Detach(t ComponentType, all bool) (int, error) {
	n := 0
	for _, a := range slices.Clone(g.byType[t]) {
		if err := g.detach(a, false); err != nil {
			return n, err
		}
		n++
		if !all {
			break
		}
	}
	return n, nil
}

// DetachComponent detaches one specific component.
func (g *GameObject) DetachComponent(c Component) error {
	for _, a := range g.components {
		if a.comp == c {
			return g.detach(a, false)
		}
	}
	return fmt.Errorf("detach %s: %w", Describe(c), ErrNotFound)
}

func (g *GameObject) detach(a *attachment, forced bool) error {
	restore := make([]func(), 0, len(a.subs))
	for _, l := range a.subs {
		restore = append(restore, l.Suspend())
	}
	err := a.comp.OnDetach(forced)
	if err != nil && !forced {
		for i := len(restore) - 1; i >= 0; i-- {
			restore[i]()
		}
		return err
	}
	a.comp.setOwner(nil)
	g.forget(a)
	g.log().Debug("component detached",
		zap.Int("gameobject", g.id), zap.String("type", string(a.comp.Type())), zap.Bool("forced", forced))
	if errors.Is(err, ErrDetachRefused) {
		return nil
	}
	return err
}

func (g *GameObject) detachAll() error {
	var errs []error
	for _, a := range slices.Clone(g.components) {
		if err := g.detach(a, true); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

func (g *GameObject) forget(a *attachment) {
	if i := slices.Index(g.components, a); i >= 0 {
		g.components = slices.Delete(g.components, i, i+1)
	}
	t := a.comp.Type()
	list := g.byType[t]
	if i := slices.Index(list, a); i >= 0 {
		list = slices.Delete(list, i, i+1)
	}
	if len(list) == 0 {
		delete(g.byType, t)
	} else {
		g.byType[t] = list
	}
}

// GetComponent returns the first attached component tagged t.
func (g *GameObject) GetComponent(t ComponentType) (Component, bool) {
	list := g.byType[t]
	if len(list) == 0 {
		return nil, false
	}
	return list[0].comp, true
}

// GetComponents returns every attached component tagged t in attachment
// order; empty when there is none.
func (g *GameObject) GetComponents(t ComponentType) []Component {
	list := g.byType[t]
	out := make([]Component, 0, len(list))
	for _, a := range list {
		out = append(out, a.comp)
	}
	return out
}

// Components returns all attached components in attachment order.
func (g *GameObject) Components() []Component {
	out := make([]Component, 0, len(g.components))
	for _, a := range g.components {
		out = append(out, a.comp)
	}
	return out
}

// Find looks a gameobject up in this gameobject's scene; see Scene.Find.
func (g *GameObject) Find(search any) (*GameObject, bool) {
	return g.scene.Find(search)
}

// FindAll is Find returning every match.
func (g *GameObject) FindAll(search any) []*GameObject {
	return g.scene.FindAll(search)
}

func (g *GameObject) String() string {
	if g == nil {
		return "<nil>"
	}
	return fmt.Sprintf("GameObject(ID=%d, name=%s)", g.id, g.name)
}
