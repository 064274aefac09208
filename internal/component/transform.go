package component

import (
	"errors"
	"image"
	"slices"

	"github.com/se2de/engine/internal/engine"
)

// TypeTransform tags Transform components.
const TypeTransform engine.ComponentType = "Transform"

// Vec2 is a position in screen pixels.
type Vec2 struct {
	X, Y float64
}

func (v Vec2) Add(o Vec2) Vec2 { return Vec2{v.X + o.X, v.Y + o.Y} }
func (v Vec2) Sub(o Vec2) Vec2 { return Vec2{v.X - o.X, v.Y - o.Y} }

// Point rounds v to the pixel grid.
func (v Vec2) Point() image.Point {
	return image.Pt(int(v.X+0.5), int(v.Y+0.5))
}

// Transform gives a gameobject a position. The position is absolute, or
// local to a parent Transform when one is set. Transforms form a tree: a
// destroyed Transform destroys the gameobjects of its children.
//
// Every gameobject is expected to carry exactly one Transform, attached at
// construction. Detaching it is refused unless forced.
type Transform struct {
	engine.Base

	parent   *Transform
	children []*Transform
	absolute Vec2
	local    Vec2

	argPos      Vec2
	argAbsolute bool
	argParent   any
}

// TransformArgs are the scene record arguments of a Transform.
type TransformArgs struct {
	X        float64 `arg:"x"`
	Y        float64 `arg:"y"`
	Absolute *bool   `arg:"absolute"`
	Parent   any     `arg:"parent"` // gameobject name or id
}

// NewTransform creates a Transform. The position is applied, and the parent
// resolved, once the owning gameobject is created.
func NewTransform(a TransformArgs) *Transform {
	abs := true
	if a.Absolute != nil {
		abs = *a.Absolute
	}
	return &Transform{argPos: Vec2{a.X, a.Y}, argAbsolute: abs, argParent: a.Parent}
}

func transformFactory(args map[string]any) (engine.Component, error) {
	var a TransformArgs
	if err := engine.DecodeArgs(args, &a); err != nil {
		return nil, err
	}
	return NewTransform(a), nil
}

func (t *Transform) Type() engine.ComponentType { return TypeTransform }

func (t *Transform) OnAttach() error { return t.checkUnique() }

func (t *Transform) OnCreate() error {
	if err := t.checkUnique(); err != nil {
		return err
	}
	if t.argParent != nil {
		if err := t.SetParent(t.argParent); err != nil {
			return err
		}
	}
	if t.argAbsolute {
		t.SetAbsolute(t.argPos)
		return nil
	}
	return t.SetLocal(t.argPos)
}

func (t *Transform) checkUnique() error {
	if first, _ := engine.ComponentOf[*Transform](t.Owner(), TypeTransform); first != t {
		return engine.NewComponentError(t, "more than one Transform component on the same GameObject is not allowed")
	}
	return nil
}

// OnComponentUpdate refreshes the cached absolute position from the parent.
func (t *Transform) OnComponentUpdate() error {
	t.absolute = t.Absolute()
	return nil
}

func (t *Transform) OnDetach(forced bool) error {
	if !forced {
		return engine.RefuseDetach(t, "a GameObject should never be without a Transform")
	}
	return nil
}

// OnDestroy unparents t and destroys the gameobject of every child.
func (t *Transform) OnDestroy() error {
	t.Unparent()
	var errs []error
	for _, child := range slices.Clone(t.children) {
		if g := child.Owner(); g != nil {
			errs = append(errs, g.Destroy())
		}
	}
	t.children = nil
	return errors.Join(errs...)
}

// Absolute returns the absolute position, resolved through the parent chain
// so a child always sees its parent's current position.
func (t *Transform) Absolute() Vec2 {
	if t.parent == nil {
		return t.absolute
	}
	return t.parent.Absolute().Add(t.local)
}

// Local returns the position relative to the parent; the zero vector without
// a parent.
func (t *Transform) Local() Vec2 { return t.local }

// Parent returns the parent Transform, or nil.
func (t *Transform) Parent() *Transform { return t.parent }

// Children returns the child Transforms in parenting order.
func (t *Transform) Children() []*Transform { return slices.Clone(t.children) }

// SetAbsolute moves t to p, keeping the local position consistent.
func (t *Transform) SetAbsolute(p Vec2) {
	t.absolute = p
	if t.parent != nil {
		t.local = p.Sub(t.parent.Absolute())
	}
}

// SetLocal moves t to p relative to its parent. It fails without a parent.
func (t *Transform) SetLocal(p Vec2) error {
	if t.parent == nil {
		return engine.NewComponentError(t, "incoherent arguments: local position without a parent")
	}
	t.local = p
	t.absolute = t.parent.Absolute().Add(p)
	return nil
}

// Move shifts t by d in whichever space it is positioned in.
func (t *Transform) Move(d Vec2) {
	if t.parent != nil {
		t.local = t.local.Add(d)
		t.absolute = t.Absolute()
		return
	}
	t.absolute = t.absolute.Add(d)
}

// SetParent parents t to the Transform of the gameobject found by ref, a
// name or an id. The absolute position is kept.
func (t *Transform) SetParent(ref any) error {
	g := t.Owner()
	if g == nil {
		return engine.NewComponentError(t, "cannot parent a detached Transform")
	}
	pg, ok := g.Find(ref)
	if !ok {
		return engine.NewComponentError(t, "gameobject %v cannot be found", ref)
	}
	if pg == g {
		return engine.NewComponentError(t, "Transform cannot be parent of itself")
	}
	pt, ok := engine.ComponentOf[*Transform](pg, TypeTransform)
	if !ok {
		return engine.NewComponentError(t, "gameobject %v is without a Transform", ref)
	}
	for a := pt; a != nil; a = a.parent {
		if a == t {
			return engine.NewComponentError(t, "gameobject %v is a descendant of %s", ref, g.Name())
		}
	}
	abs := t.Absolute()
	t.Unparent()
	t.parent = pt
	pt.children = append(pt.children, t)
	t.local = abs.Sub(pt.Absolute())
	return nil
}

// Unparent detaches t from its parent, keeping its absolute position.
func (t *Transform) Unparent() {
	if t.parent == nil {
		return
	}
	t.absolute = t.Absolute()
	if i := slices.Index(t.parent.children, t); i >= 0 {
		t.parent.children = slices.Delete(t.parent.children, i, i+1)
	}
	t.parent = nil
	t.local = Vec2{}
}
