package component

import (
	"fmt"
	"maps"
	"slices"

	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"

	"github.com/se2de/engine/internal/engine"
)

// TypeTween tags Tween behaviours.
const TypeTween engine.ComponentType = "Tween"

var easings = map[string]ease.TweenFunc{
	"linear":       ease.Linear,
	"in_quad":      ease.InQuad,
	"out_quad":     ease.OutQuad,
	"in_out_quad":  ease.InOutQuad,
	"in_cubic":     ease.InCubic,
	"out_cubic":    ease.OutCubic,
	"in_out_cubic": ease.InOutCubic,
	"in_sine":      ease.InSine,
	"out_sine":     ease.OutSine,
	"in_out_sine":  ease.InOutSine,
	"out_bounce":   ease.OutBounce,
	"out_elastic":  ease.OutElastic,
	"in_out_back":  ease.InOutBack,
}

// Tween moves its gameobject's Transform to a target absolute position over
// a duration, driven by the frame delta time. The motion starts from the
// position held on the first enabled update. A looping tween restarts from
// that origin when it arrives.
type Tween struct {
	engine.BaseBehaviour

	To       Vec2
	Duration float32 // seconds
	Loop     bool
	easing   ease.TweenFunc

	transform *Transform
	x, y      *gween.Tween
	done      bool
}

// TweenArgs are the scene record arguments of a Tween.
type TweenArgs struct {
	Enabled  *bool   `arg:"enabled"`
	ToX      float64 `arg:"to_x"`
	ToY      float64 `arg:"to_y"`
	Duration float32 `arg:"duration"`
	Easing   string  `arg:"easing"`
	Loop     bool    `arg:"loop"`
}

// NewTween creates an enabled tween. An empty easing name means linear.
func NewTween(a TweenArgs) (*Tween, error) {
	fn := ease.Linear
	if a.Easing != "" {
		var ok bool
		if fn, ok = easings[a.Easing]; !ok {
			return nil, fmt.Errorf("unknown easing %q, want one of %v", a.Easing, slices.Sorted(maps.Keys(easings)))
		}
	}
	if a.Duration <= 0 {
		return nil, fmt.Errorf("tween duration must be positive, got %v", a.Duration)
	}
	enabled := true
	if a.Enabled != nil {
		enabled = *a.Enabled
	}
	return &Tween{
		BaseBehaviour: engine.NewBaseBehaviour(enabled),
		To:            Vec2{a.ToX, a.ToY},
		Duration:      a.Duration,
		Loop:          a.Loop,
		easing:        fn,
	}, nil
}

func tweenFactory(args map[string]any) (engine.Component, error) {
	var a TweenArgs
	if err := engine.DecodeArgs(args, &a); err != nil {
		return nil, err
	}
	return NewTween(a)
}

func (tw *Tween) Type() engine.ComponentType { return TypeTween }

func (tw *Tween) OnAttach() error {
	t, ok := engine.ComponentOf[*Transform](tw.Owner(), TypeTransform)
	if !ok {
		return engine.NewComponentError(tw, "cannot find Transform attached to GameObject")
	}
	tw.transform = t
	return nil
}

// Done reports whether a non-looping tween has arrived.
func (tw *Tween) Done() bool { return tw.done }

func (tw *Tween) OnBehaviourUpdate() error {
	if tw.done {
		return nil
	}
	if tw.x == nil {
		from := tw.transform.Absolute()
		tw.x = gween.New(float32(from.X), float32(tw.To.X), tw.Duration, tw.easing)
		tw.y = gween.New(float32(from.Y), float32(tw.To.Y), tw.Duration, tw.easing)
	}

	dt := float32(tw.Owner().Runtime().DeltaTime().Seconds())
	x, xDone := tw.x.Update(dt)
	y, yDone := tw.y.Update(dt)
	tw.transform.SetAbsolute(Vec2{float64(x), float64(y)})

	if xDone && yDone {
		if tw.Loop {
			tw.x.Reset()
			tw.y.Reset()
		} else {
			tw.done = true
		}
	}
	return nil
}
