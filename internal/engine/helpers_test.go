package engine

import (
	"context"
	"fmt"
	"testing"

	"go.uber.org/zap"

	"github.com/se2de/engine/internal/data"
)

const probeType ComponentType = "Probe"

// probe records every hook call into a shared journal.
type probe struct {
	Base
	tag     string
	journal *[]string
	refuse  bool
	failOn  string
	then    func(hook string)
}

func newProbe(tag string, journal *[]string) *probe {
	return &probe{tag: tag, journal: journal}
}

func (p *probe) Type() ComponentType { return probeType }

func (p *probe) record(hook string) error {
	*p.journal = append(*p.journal, p.tag+"."+hook)
	if p.then != nil {
		p.then(hook)
	}
	if p.failOn == hook {
		return fmt.Errorf("%s failed in %s", p.tag, hook)
	}
	return nil
}

func (p *probe) OnAttach() error          { return p.record("attach") }
func (p *probe) OnCreate() error          { return p.record("create") }
func (p *probe) OnSpawn() error           { return p.record("spawn") }
func (p *probe) OnComponentUpdate() error { return p.record("update") }
func (p *probe) OnDespawn() error         { return p.record("despawn") }
func (p *probe) OnDestroy() error         { return p.record("destroy") }

func (p *probe) OnDetach(forced bool) error {
	if err := p.record(fmt.Sprintf("detach(%t)", forced)); err != nil {
		return err
	}
	if p.refuse && !forced {
		return RefuseDetach(p, "cannot be detached")
	}
	return nil
}

const ticker ComponentType = "Ticker"

type tickBehaviour struct {
	BaseBehaviour
	ticks int
}

func (b *tickBehaviour) Type() ComponentType { return ticker }

func (b *tickBehaviour) OnBehaviourUpdate() error {
	b.ticks++
	return nil
}

func nopLogger() *zap.Logger { return zap.NewNop() }

func newTestRuntime(t *testing.T) (*Runtime, *Scene) {
	t.Helper()
	rt := NewRuntime(nopLogger())
	s := rt.NewScene("test")
	rt.setCurrent(s)
	return rt, s
}

func newTestLoader(t *testing.T, rt *Runtime, scenes data.MapSource, reg *Registry) *Loader {
	t.Helper()
	cache, err := data.NewSceneCache(scenes, 0, zap.NewNop())
	if err != nil {
		t.Fatalf("NewSceneCache: %v", err)
	}
	return NewLoader(rt, cache, reg, zap.NewNop())
}

func mustLoad(t *testing.T, l *Loader, name string) *Scene {
	t.Helper()
	s, err := l.Load(context.Background(), name)
	if err != nil {
		t.Fatalf("Load(%s): %v", name, err)
	}
	return s
}

func equalStrings(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
