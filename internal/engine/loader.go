package engine

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/se2de/engine/internal/data"
)

// Loader swaps the current scene for one built from scene data.
type Loader struct {
	rt        *Runtime
	cache     *data.SceneCache
	factories *Registry
	log       *zap.Logger
}

// NewLoader creates a loader reading scenes through cache and building
// components with the factories of reg.
func NewLoader(rt *Runtime, cache *data.SceneCache, reg *Registry, log *zap.Logger) *Loader {
	return &Loader{rt: rt, cache: cache, factories: reg, log: log}
}

// Load destroys the current scene and makes a fresh scene named name
// current. Every gameobject record is validated before the first gameobject
// is built; all gameobjects are created before the flagged ones are spawned
// in record order; the scene is activated last. On failure the half-built
// scene is destroyed, no scene is current and the error is returned.
func (l *Loader) Load(ctx context.Context, name string) (*Scene, error) {
	if err := l.rt.DestroyCurrent(); err != nil {
		return nil, err
	}

	s := l.rt.NewScene(name)
	l.rt.setCurrent(s)
	if err := l.populate(ctx, s); err != nil {
		l.rt.current = nil
		if derr := s.Destroy(); derr != nil {
			l.log.Debug("teardown of failed scene", zap.String("scene", name), zap.Error(derr))
		}
		return nil, err
	}

	l.log.Info("scene loaded",
		zap.String("scene", name),
		zap.Stringer("instance", s.InstanceID()),
		zap.Int("gameobjects", s.Len()),
	)
	return s, nil
}

func (l *Loader) populate(ctx context.Context, s *Scene) error {
	raw, err := l.cache.GetOrLoad(ctx, s.Name())
	if err != nil {
		return err
	}
	records, err := data.ParseObjects(s.Name(), raw)
	if err != nil {
		return err
	}

	comps := make([][]Component, len(records))
	for i, rec := range records {
		if comps[i], err = l.components(s.Name(), i, rec); err != nil {
			return err
		}
	}

	built := make([]*GameObject, 0, len(records))
	for i, rec := range records {
		g, err := s.NewGameObject(rec.Name, comps[i]...)
		if err != nil {
			return err
		}
		built = append(built, g)
	}
	for i, g := range built {
		if !records[i].Spawned {
			continue
		}
		if err := g.Spawn(); err != nil {
			return err
		}
	}
	return s.Activate()
}

func (l *Loader) components(scene string, idx int, rec data.ObjectRecord) ([]Component, error) {
	comps := make([]Component, 0, len(rec.Components))
	for _, cr := range rec.Components {
		f, ok := l.factories.Lookup(ComponentType(cr.Type))
		if !ok {
			return nil, &data.InvalidSceneDataError{
				Scene:   scene,
				Key:     data.KeyType,
				Message: fmt.Sprintf("gameobject #%d: unknown component type %s", idx, cr.Type),
			}
		}
		c, err := f(cr.Args)
		if err != nil {
			var cerr *ComponentError
			if errors.As(err, &cerr) {
				return nil, err
			}
			return nil, &data.InvalidSceneDataError{
				Scene:   scene,
				Message: fmt.Sprintf("gameobject #%d: component %s: %v", idx, cr.Type, err),
			}
		}
		comps = append(comps, c)
	}
	return comps, nil
}

// DestroyCurrent destroys the current scene, if any.
func (l *Loader) DestroyCurrent() error {
	return l.rt.DestroyCurrent()
}
