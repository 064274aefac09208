package component

import (
	"errors"
	"image"
	"image/color"
	"testing"

	"github.com/se2de/engine/internal/engine"
)

func TestBoxRendererDrawsAtTransform(t *testing.T) {
	s, backend := newScene(t)
	box := NewBoxRenderer(4, 3)
	box.Color = color.RGBA{255, 0, 0, 255}
	g := mustObject(t, s, "box", at(7, 9), box)
	s.Activate()
	g.Spawn()
	backend.Reset()

	s.Update()
	if len(backend.Ops) != 3 {
		t.Fatalf("ops = %v, want fill, rect, blit", backend.Ops)
	}
	if op := backend.Ops[0]; op.Kind != "fill" || op.Color != flush {
		t.Errorf("first op = %+v, want fill with flush color", op)
	}
	if op := backend.Ops[1]; op.Kind != "rect" || op.Rect != image.Rect(0, 0, 4, 3) || op.Color != box.Color {
		t.Errorf("second op = %+v", op)
	}
	blits := backend.Blits()
	if len(blits) != 1 || blits[0].Pos != image.Pt(7, 9) {
		t.Errorf("blits = %v, want one at (7,9)", blits)
	}
}

func TestDisabledRendererDrawsNothing(t *testing.T) {
	s, backend := newScene(t)
	c := NewCircleRenderer(5)
	c.SetEnabled(false)
	g := mustObject(t, s, "c", at(0, 0), c)
	s.Activate()
	g.Spawn()
	backend.Reset()

	s.Update()
	if len(backend.Ops) != 0 {
		t.Errorf("ops = %v, want none", backend.Ops)
	}

	c.SetEnabled(true)
	s.Update()
	if len(backend.Ops) != 3 || backend.Ops[1].Kind != "circle" || backend.Ops[1].Pos != image.Pt(5, 5) {
		t.Errorf("ops = %+v", backend.Ops)
	}
}

func TestRendererRequiresTransform(t *testing.T) {
	s, _ := newScene(t)
	_, err := s.NewGameObject("naked", NewBoxRenderer(1, 1))
	var cerr *engine.ComponentError
	if !errors.As(err, &cerr) {
		t.Errorf("NewGameObject = %v, want ComponentError", err)
	}
}

func TestTextRendererChangesText(t *testing.T) {
	s, backend := newScene(t)
	txt := NewTextRenderer("hi", 10)
	g := mustObject(t, s, "label", at(1, 2), txt)
	s.Activate()
	g.Spawn()
	backend.Reset()

	s.Update()
	txt.SetText("hello")
	txt.SetSize(20)
	s.Update()

	var texts []string
	var sizes []image.Point
	for _, op := range backend.Ops {
		if op.Kind == "text" {
			texts = append(texts, op.Text)
			sizes = append(sizes, op.Target.Size())
		}
	}
	if len(texts) != 2 || texts[0] != "hi" || texts[1] != "hello" {
		t.Fatalf("texts = %v", texts)
	}
	if sizes[1] != image.Pt(50, 20) {
		t.Errorf("second surface size = %v, want (50,20)", sizes[1])
	}
}

func TestLoadedSceneRenders(t *testing.T) {
	const doc = `
- name: player
  spawned: true
  components:
    - type: Transform
      x: 10
      y: 10
    - type: BoxRenderer
      width: 8
      height: 8
      color: [0, 255, 0]
- name: hat
  spawned: true
  components:
    - type: Transform
      x: 0
      y: -4
      absolute: false
      parent: player
    - type: CircleRenderer
      radius: 2
`
	_, s, backend := loadScene(t, doc, Deps{})
	backend.Reset()
	s.Update()

	blits := backend.Blits()
	if len(blits) != 2 {
		t.Fatalf("blits = %v, want 2", blits)
	}
	if blits[0].Pos != image.Pt(10, 10) || blits[1].Pos != image.Pt(10, 6) {
		t.Errorf("blit positions = %v, %v, want (10,10), (10,6)", blits[0].Pos, blits[1].Pos)
	}
	player, _ := s.Find("player")
	box, _ := engine.ComponentOf[*BoxRenderer](player, TypeBoxRenderer)
	if box.Color != (color.RGBA{0, 255, 0, 255}) {
		t.Errorf("box color = %v", box.Color)
	}
}
