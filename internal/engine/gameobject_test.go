package engine

import (
	"errors"
	"testing"
)

func TestLifecycleOrdering(t *testing.T) {
	_, s := newTestRuntime(t)
	var journal []string
	g, err := s.NewGameObject("g", newProbe("a", &journal), newProbe("b", &journal))
	if err != nil {
		t.Fatalf("NewGameObject: %v", err)
	}
	s.Activate()
	g.Update() // not spawned yet
	g.Spawn()
	s.Update()
	g.Despawn()
	s.Update()
	if err := g.Destroy(); err != nil {
		t.Fatalf("Destroy: %v", err)
	}

	want := []string{
		"a.attach", "b.attach",
		"a.create", "b.create",
		"a.spawn", "b.spawn",
		"a.update", "b.update",
		"a.despawn", "b.despawn",
		"a.destroy", "b.destroy",
		"a.detach(true)", "b.detach(true)",
	}
	if !equalStrings(journal, want) {
		t.Errorf("journal =\n%v\nwant\n%v", journal, want)
	}
}

func TestDestroyTwiceIsNoop(t *testing.T) {
	_, s := newTestRuntime(t)
	var journal []string
	g, _ := s.NewGameObject("g", newProbe("a", &journal))
	g.Destroy()
	journal = nil
	if err := g.Destroy(); err != nil {
		t.Errorf("second Destroy = %v, want nil", err)
	}
	if len(journal) != 0 {
		t.Errorf("second Destroy ran hooks: %v", journal)
	}
}

func TestDestroyedGameObjectRejectsLifecycleCalls(t *testing.T) {
	_, s := newTestRuntime(t)
	var journal []string
	g, _ := s.NewGameObject("g", newProbe("a", &journal))
	g.Destroy()
	journal = nil

	late := newProbe("late", &journal)
	for name, call := range map[string]func() error{
		"Spawn":   g.Spawn,
		"Despawn": g.Despawn,
		"Attach":  func() error { return g.Attach(late) },
	} {
		if err := call(); !errors.Is(err, ErrNotFound) {
			t.Errorf("%s on destroyed gameobject = %v, want ErrNotFound", name, err)
		}
	}
	if late.Owner() != nil {
		t.Error("component attached to a destroyed gameobject")
	}
	if g.Spawned() || len(journal) != 0 {
		t.Errorf("spawned=%t journal=%v, want no effect", g.Spawned(), journal)
	}
}

func TestBehaviourUpdateGate(t *testing.T) {
	_, s := newTestRuntime(t)
	b := &tickBehaviour{BaseBehaviour: NewBaseBehaviour(false)}
	g, _ := s.NewGameObject("g", b)
	s.Activate()
	g.Spawn()

	s.Update()
	if b.ticks != 0 {
		t.Fatalf("disabled behaviour ticked %d times", b.ticks)
	}
	b.SetEnabled(true)
	s.Update()
	s.Update()
	if b.ticks != 2 {
		t.Errorf("ticks = %d, want 2", b.ticks)
	}
}

func TestAttachSkipsBoundComponents(t *testing.T) {
	_, s := newTestRuntime(t)
	var journal []string
	p := newProbe("p", &journal)
	g, _ := s.NewGameObject("g", p)
	other, _ := s.NewGameObject("other")

	if err := g.Attach(p, nil); err != nil {
		t.Fatalf("Attach: %v", err)
	}
	if err := other.Attach(p); err != nil {
		t.Fatalf("Attach: %v", err)
	}
	if n := len(g.Components()); n != 1 {
		t.Errorf("len(g.Components()) = %d, want 1", n)
	}
	if n := len(other.Components()); n != 0 {
		t.Errorf("len(other.Components()) = %d, want 0", n)
	}
	if p.Owner() != g {
		t.Errorf("owner = %v, want %v", p.Owner(), g)
	}
}

func TestGetComponentsInAttachmentOrder(t *testing.T) {
	_, s := newTestRuntime(t)
	var journal []string
	a, b := newProbe("a", &journal), newProbe("b", &journal)
	g, _ := s.NewGameObject("g", a, &tickBehaviour{}, b)

	if c, ok := g.GetComponent(probeType); !ok || c != a {
		t.Errorf("GetComponent = %v, %t, want a", c, ok)
	}
	all := g.GetComponents(probeType)
	if len(all) != 2 || all[0] != a || all[1] != b {
		t.Errorf("GetComponents = %v", all)
	}
	if _, ok := g.GetComponent("Missing"); ok {
		t.Error("GetComponent(Missing) found something")
	}
	if got := g.GetComponents("Missing"); len(got) != 0 {
		t.Errorf("GetComponents(Missing) = %v, want empty", got)
	}
	if tb, ok := ComponentOf[*tickBehaviour](g, ticker); !ok || tb == nil {
		t.Errorf("ComponentOf = %v, %t", tb, ok)
	}
}

func TestDetach(t *testing.T) {
	_, s := newTestRuntime(t)
	var journal []string
	a, b := newProbe("a", &journal), newProbe("b", &journal)
	g, _ := s.NewGameObject("g", a, b)
	s.Activate()
	g.Spawn()
	journal = nil

	n, err := g.Detach(probeType, false)
	if err != nil || n != 1 {
		t.Fatalf("Detach = %d, %v, want 1, nil", n, err)
	}
	if a.Owner() != nil {
		t.Error("detached component still owned")
	}
	s.Update()
	want := []string{"a.detach(false)", "b.update"}
	if !equalStrings(journal, want) {
		t.Errorf("journal = %v, want %v", journal, want)
	}

	if n, err := g.Detach(probeType, true); err != nil || n != 1 {
		t.Errorf("Detach(all) = %d, %v, want 1, nil", n, err)
	}
	if n, err := g.Detach(probeType, true); err != nil || n != 0 {
		t.Errorf("Detach(none left) = %d, %v, want 0, nil", n, err)
	}
}

func TestDetachRefusedKeepsComponentInPlace(t *testing.T) {
	_, s := newTestRuntime(t)
	var journal []string
	a, b := newProbe("a", &journal), newProbe("b", &journal)
	a.refuse = true
	g, _ := s.NewGameObject("g", a, b)
	s.Activate()
	g.Spawn()
	journal = nil

	n, err := g.Detach(probeType, false)
	if !errors.Is(err, ErrDetachRefused) || n != 0 {
		t.Fatalf("Detach = %d, %v, want 0, ErrDetachRefused", n, err)
	}
	var cerr *ComponentError
	if !errors.As(err, &cerr) || cerr.Component != a {
		t.Errorf("error %v does not name the refusing component", err)
	}
	if a.Owner() != g {
		t.Error("refusing component lost its owner")
	}

	s.Update()
	want := []string{"a.detach(false)", "a.update", "b.update"}
	if !equalStrings(journal, want) {
		t.Errorf("journal = %v, want %v", journal, want)
	}

	journal = nil
	if err := g.Destroy(); err != nil {
		t.Fatalf("Destroy: %v", err)
	}
	want = []string{"a.destroy", "b.destroy", "a.detach(true)", "b.detach(true)"}
	if !equalStrings(journal, want) {
		t.Errorf("journal = %v, want %v", journal, want)
	}
}

func TestDetachedComponentMissesPendingDispatch(t *testing.T) {
	_, s := newTestRuntime(t)
	var journal []string
	a, b := newProbe("a", &journal), newProbe("b", &journal)
	g, _ := s.NewGameObject("g", a, b)
	a.then = func(hook string) {
		if hook == "update" {
			g.DetachComponent(b)
		}
	}
	s.Activate()
	g.Spawn()
	journal = nil

	s.Update()
	want := []string{"a.update", "b.detach(false)"}
	if !equalStrings(journal, want) {
		t.Errorf("journal = %v, want %v", journal, want)
	}
}

func TestConstructionFailureDestroysGameObject(t *testing.T) {
	_, s := newTestRuntime(t)
	var journal []string
	a, b := newProbe("a", &journal), newProbe("b", &journal)
	b.failOn = "attach"

	g, err := s.NewGameObject("g", a, b)
	if err == nil || g != nil {
		t.Fatalf("NewGameObject = %v, %v, want error", g, err)
	}
	want := []string{"a.attach", "b.attach", "a.destroy", "a.detach(true)"}
	if !equalStrings(journal, want) {
		t.Errorf("journal = %v, want %v", journal, want)
	}
	if s.Len() != 0 {
		t.Errorf("scene holds %d gameobjects, want 0", s.Len())
	}
	if b.Owner() != nil {
		t.Error("failed component kept an owner")
	}
}

func TestCreateErrorPropagates(t *testing.T) {
	_, s := newTestRuntime(t)
	var journal []string
	a := newProbe("a", &journal)
	a.failOn = "create"
	if _, err := s.NewGameObject("g", a); err == nil {
		t.Fatal("NewGameObject succeeded, want create error")
	}
	if s.Len() != 0 {
		t.Errorf("scene holds %d gameobjects, want 0", s.Len())
	}
}
