package component

import (
	"testing"
	"time"
)

func TestTweenMovesTransform(t *testing.T) {
	s, _ := newScene(t)
	tr := at(0, 0)
	tw, err := NewTween(TweenArgs{ToX: 10, ToY: 20, Duration: 1})
	if err != nil {
		t.Fatal(err)
	}
	g := mustObject(t, s, "mover", tr, tw)
	s.Activate()
	g.Spawn()
	s.Runtime().SetDeltaTime(500 * time.Millisecond)

	s.Update()
	if got := tr.Absolute(); got != (Vec2{5, 10}) {
		t.Errorf("halfway = %v, want {5 10}", got)
	}
	s.Update()
	if got := tr.Absolute(); got != (Vec2{10, 20}) {
		t.Errorf("end = %v, want {10 20}", got)
	}
	if !tw.Done() {
		t.Error("tween not done")
	}
	s.Update()
	if got := tr.Absolute(); got != (Vec2{10, 20}) {
		t.Errorf("after end = %v, want {10 20}", got)
	}
}

func TestTweenArgumentErrors(t *testing.T) {
	if _, err := NewTween(TweenArgs{Duration: 1, Easing: "wobbly"}); err == nil {
		t.Error("unknown easing accepted")
	}
	if _, err := NewTween(TweenArgs{}); err == nil {
		t.Error("zero duration accepted")
	}
	if _, err := NewTween(TweenArgs{Duration: 2, Easing: "in_out_quad"}); err != nil {
		t.Errorf("NewTween(in_out_quad) = %v", err)
	}
}
