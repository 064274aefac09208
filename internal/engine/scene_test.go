package engine

import (
	"errors"
	"testing"
)

func TestRegisterAssignsNextID(t *testing.T) {
	_, s := newTestRuntime(t)

	a, _ := s.NewGameObject("a")
	b, _ := s.NewGameObject("b")
	if a.ID() != 0 || b.ID() != 1 {
		t.Fatalf("ids = %d, %d, want 0, 1", a.ID(), b.ID())
	}

	if err := s.Unregister(1); err != nil {
		t.Fatalf("Unregister(1): %v", err)
	}
	c, _ := s.NewGameObject("c")
	if c.ID() != 1 {
		t.Errorf("id after unregistering 1 = %d, want 1", c.ID())
	}

	if err := s.Unregister(0); err != nil {
		t.Fatalf("Unregister(0): %v", err)
	}
	d, _ := s.NewGameObject("d")
	if d.ID() != 2 {
		t.Errorf("id after unregistering 0 = %d, want 2", d.ID())
	}
}

func TestEmptySceneStartsAtZeroAgain(t *testing.T) {
	_, s := newTestRuntime(t)
	a, _ := s.NewGameObject("a")
	if err := a.Destroy(); err != nil {
		t.Fatalf("Destroy: %v", err)
	}
	b, _ := s.NewGameObject("b")
	if b.ID() != 0 {
		t.Errorf("id = %d, want 0", b.ID())
	}
}

func TestUnregisterUnknownID(t *testing.T) {
	_, s := newTestRuntime(t)
	if err := s.Unregister(7); !errors.Is(err, ErrNotFound) {
		t.Errorf("Unregister(7) = %v, want ErrNotFound", err)
	}
}

func TestSceneUpdateRequiresActivation(t *testing.T) {
	_, s := newTestRuntime(t)
	var journal []string
	g, _ := s.NewGameObject("g", newProbe("p", &journal))
	if err := g.Spawn(); err != nil {
		t.Fatalf("Spawn: %v", err)
	}
	journal = nil

	if err := s.Update(); err != nil {
		t.Fatalf("Update: %v", err)
	}
	if len(journal) != 0 {
		t.Fatalf("inactive scene updated: %v", journal)
	}

	if err := s.Activate(); err != nil {
		t.Fatalf("Activate: %v", err)
	}
	if err := s.Update(); err != nil {
		t.Fatalf("Update: %v", err)
	}
	if !equalStrings(journal, []string{"p.update"}) {
		t.Errorf("journal = %v, want [p.update]", journal)
	}
}

func TestSceneDestroyTearsDownEveryGameObject(t *testing.T) {
	rt, s := newTestRuntime(t)
	var journal []string
	s.NewGameObject("a", newProbe("a", &journal))
	s.NewGameObject("b", newProbe("b", &journal))
	s.Activate()
	journal = nil

	if err := rt.DestroyCurrent(); err != nil {
		t.Fatalf("DestroyCurrent: %v", err)
	}
	want := []string{"a.destroy", "a.detach(true)", "b.destroy", "b.detach(true)"}
	if !equalStrings(journal, want) {
		t.Errorf("journal = %v, want %v", journal, want)
	}
	if s.Len() != 0 || s.Active() {
		t.Errorf("scene len=%d active=%t after destroy, want 0 false", s.Len(), s.Active())
	}
	if rt.Current() != nil {
		t.Errorf("current scene = %v, want nil", rt.Current())
	}
}

func TestScenesAreIsolated(t *testing.T) {
	rt := NewRuntime(nopLogger())
	a, b := rt.NewScene("a"), rt.NewScene("b")
	var ja, jb []string
	ga, _ := a.NewGameObject("ga", newProbe("pa", &ja))
	gb, _ := b.NewGameObject("gb", newProbe("pb", &jb))
	if ga.ID() != gb.ID() {
		t.Fatalf("ids = %d, %d, want equal", ga.ID(), gb.ID())
	}
	ga.Spawn()
	gb.Spawn()
	a.Activate()
	ja, jb = nil, nil

	if err := a.Update(); err != nil {
		t.Fatal(err)
	}
	if !equalStrings(ja, []string{"pa.update"}) || len(jb) != 0 {
		t.Errorf("after a.Update: a=%v b=%v, want a=[pa.update] b=[]", ja, jb)
	}

	if err := a.Destroy(); err != nil {
		t.Fatal(err)
	}
	if !ga.Destroyed() || a.Len() != 0 {
		t.Error("a.Destroy left its gameobject alive")
	}
	if gb.Destroyed() || b.Len() != 1 {
		t.Errorf("a.Destroy reached scene b: destroyed=%t len=%d", gb.Destroyed(), b.Len())
	}
}

func TestFind(t *testing.T) {
	rt, s := newTestRuntime(t)
	s.NewGameObject("player")
	s.NewGameObject("wall")
	s.NewGameObject("wall")

	if g, ok := rt.Find("player"); !ok || g.ID() != 0 {
		t.Errorf("Find(player) = %v, %t", g, ok)
	}
	if g, ok := rt.Find(2); !ok || g.Name() != "wall" {
		t.Errorf("Find(2) = %v, %t", g, ok)
	}
	if _, ok := rt.Find("missing"); ok {
		t.Error("Find(missing) found something")
	}
	if all := rt.FindAll("wall"); len(all) != 2 || all[0].ID() != 1 || all[1].ID() != 2 {
		t.Errorf("FindAll(wall) = %v", all)
	}
	if all := rt.FindAll("missing"); len(all) != 0 {
		t.Errorf("FindAll(missing) = %v, want empty", all)
	}
}
