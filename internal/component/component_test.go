package component

import (
	"context"
	"image/color"
	"testing"

	"go.uber.org/zap"

	"github.com/se2de/engine/internal/data"
	"github.com/se2de/engine/internal/engine"
	"github.com/se2de/engine/internal/render/rendertest"
)

var flush = color.RGBA{10, 20, 30, 255}

func newScene(t *testing.T) (*engine.Scene, *rendertest.Backend) {
	t.Helper()
	backend := rendertest.NewBackend(640, 480)
	rt := engine.NewRuntime(zap.NewNop(), engine.WithDisplay(engine.Display{
		Backend:    backend,
		FlushColor: flush,
	}))
	return rt.NewScene("test"), backend
}

func mustObject(t *testing.T, s *engine.Scene, name string, comps ...engine.Component) *engine.GameObject {
	t.Helper()
	g, err := s.NewGameObject(name, comps...)
	if err != nil {
		t.Fatalf("NewGameObject(%s): %v", name, err)
	}
	return g
}

func local(x, y float64, parent any) *Transform {
	abs := false
	return NewTransform(TransformArgs{X: x, Y: y, Absolute: &abs, Parent: parent})
}

func at(x, y float64) *Transform {
	return NewTransform(TransformArgs{X: x, Y: y})
}

func loadScene(t *testing.T, doc string, deps Deps) (*engine.Runtime, *engine.Scene, *rendertest.Backend) {
	t.Helper()
	backend := rendertest.NewBackend(640, 480)
	rt := engine.NewRuntime(zap.NewNop(), engine.WithDisplay(engine.Display{Backend: backend, FlushColor: flush}))
	cache, err := data.NewSceneCache(data.MapSource{"scene": []byte(doc)}, 0, zap.NewNop())
	if err != nil {
		t.Fatal(err)
	}
	reg := engine.NewRegistry()
	RegisterAll(reg, deps)
	s, err := engine.NewLoader(rt, cache, reg, zap.NewNop()).Load(context.Background(), "scene")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	return rt, s, backend
}
