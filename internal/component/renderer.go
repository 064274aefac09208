package component

import (
	"image"
	"image/color"

	"github.com/se2de/engine/internal/engine"
	"github.com/se2de/engine/internal/render"
)

// Renderer component tags.
const (
	TypeBoxRenderer    engine.ComponentType = "BoxRenderer"
	TypeCircleRenderer engine.ComponentType = "CircleRenderer"
	TypeTextRenderer   engine.ComponentType = "TextRenderer"
)

var white = color.RGBA{0xff, 0xff, 0xff, 0xff}

// sprite is the part shared by the renderers: the Transform to follow and
// an offscreen surface that is cleared to the flush color, drawn on, and
// blitted to the screen every update.
type sprite struct {
	transform *Transform
	surface   render.Surface
}

func (s *sprite) bind(c engine.Component) error {
	t, ok := engine.ComponentOf[*Transform](c.Owner(), TypeTransform)
	if !ok {
		return engine.NewComponentError(c, "cannot find Transform attached to GameObject")
	}
	s.transform = t
	return nil
}

// surfaceFor returns the sprite surface of the given size, allocating a new
// one when the size changed. It returns nil when running headless.
func (s *sprite) surfaceFor(d engine.Display, size image.Point) render.Surface {
	if d.Backend == nil {
		return nil
	}
	if s.surface == nil || s.surface.Size() != size {
		s.surface = d.Backend.NewSurface(size.X, size.Y)
	}
	s.surface.Fill(d.FlushColor)
	return s.surface
}

func (s *sprite) present(d engine.Display) {
	d.Backend.Screen().Blit(s.surface, s.transform.Absolute().Point())
}

// RendererArgs are the arguments shared by every renderer.
type RendererArgs struct {
	Enabled *bool `arg:"enabled"`
	Color   []int `arg:"color"`
}

func (a RendererArgs) parse(def color.RGBA) (bool, color.RGBA, error) {
	enabled := true
	if a.Enabled != nil {
		enabled = *a.Enabled
	}
	if a.Color == nil {
		return enabled, def, nil
	}
	c, err := render.ParseColor(a.Color)
	return enabled, c, err
}

// BoxRenderer draws a filled rectangle at its gameobject's position.
type BoxRenderer struct {
	engine.BaseBehaviour
	sprite

	Width, Height int
	Color         color.RGBA
}

// NewBoxRenderer creates an enabled white box.
func NewBoxRenderer(width, height int) *BoxRenderer {
	return &BoxRenderer{BaseBehaviour: engine.NewBaseBehaviour(true), Width: width, Height: height, Color: white}
}

func boxFactory(args map[string]any) (engine.Component, error) {
	var a struct {
		RendererArgs `arg:",squash"`
		Width        int `arg:"width"`
		Height       int `arg:"height"`
	}
	if err := engine.DecodeArgs(args, &a); err != nil {
		return nil, err
	}
	enabled, c, err := a.parse(white)
	if err != nil {
		return nil, err
	}
	b := NewBoxRenderer(a.Width, a.Height)
	b.SetEnabled(enabled)
	b.Color = c
	return b, nil
}

func (b *BoxRenderer) Type() engine.ComponentType { return TypeBoxRenderer }

func (b *BoxRenderer) OnAttach() error { return b.bind(b) }

func (b *BoxRenderer) OnBehaviourUpdate() error {
	d := b.Owner().Runtime().Display()
	surf := b.surfaceFor(d, image.Pt(b.Width, b.Height))
	if surf == nil {
		return nil
	}
	surf.FillRect(image.Rect(0, 0, b.Width, b.Height), b.Color)
	b.present(d)
	return nil
}

// CircleRenderer draws a filled disc whose bounding box's top-left corner is
// at its gameobject's position.
type CircleRenderer struct {
	engine.BaseBehaviour
	sprite

	Radius int
	Color  color.RGBA
}

// NewCircleRenderer creates an enabled white circle.
func NewCircleRenderer(radius int) *CircleRenderer {
	return &CircleRenderer{BaseBehaviour: engine.NewBaseBehaviour(true), Radius: radius, Color: white}
}

func circleFactory(args map[string]any) (engine.Component, error) {
	var a struct {
		RendererArgs `arg:",squash"`
		Radius       int `arg:"radius"`
	}
	if err := engine.DecodeArgs(args, &a); err != nil {
		return nil, err
	}
	enabled, c, err := a.parse(white)
	if err != nil {
		return nil, err
	}
	r := NewCircleRenderer(a.Radius)
	r.SetEnabled(enabled)
	r.Color = c
	return r, nil
}

func (r *CircleRenderer) Type() engine.ComponentType { return TypeCircleRenderer }

func (r *CircleRenderer) OnAttach() error { return r.bind(r) }

func (r *CircleRenderer) OnBehaviourUpdate() error {
	d := r.Owner().Runtime().Display()
	surf := r.surfaceFor(d, image.Pt(r.Radius*2, r.Radius*2))
	if surf == nil {
		return nil
	}
	surf.FillCircle(image.Pt(r.Radius, r.Radius), r.Radius, r.Color)
	r.present(d)
	return nil
}

// TextRenderer draws a line of text at its gameobject's position. Text and
// size can change between frames.
type TextRenderer struct {
	engine.BaseBehaviour
	sprite

	text  string
	size  int
	Color color.RGBA
}

// NewTextRenderer creates an enabled black text.
func NewTextRenderer(text string, size int) *TextRenderer {
	return &TextRenderer{
		BaseBehaviour: engine.NewBaseBehaviour(true),
		text:          text,
		size:          size,
		Color:         color.RGBA{A: 0xff},
	}
}

func textFactory(args map[string]any) (engine.Component, error) {
	var a struct {
		RendererArgs `arg:",squash"`
		Text         string `arg:"text"`
		Size         int    `arg:"size"`
	}
	if err := engine.DecodeArgs(args, &a); err != nil {
		return nil, err
	}
	enabled, c, err := a.parse(color.RGBA{A: 0xff})
	if err != nil {
		return nil, err
	}
	r := NewTextRenderer(a.Text, a.Size)
	r.SetEnabled(enabled)
	r.Color = c
	return r, nil
}

func (r *TextRenderer) Type() engine.ComponentType { return TypeTextRenderer }

func (r *TextRenderer) Text() string { return r.text }
func (r *TextRenderer) Size() int    { return r.size }

// SetText replaces the rendered text from the next update on.
func (r *TextRenderer) SetText(text string) { r.text = text }

// SetSize changes the glyph height from the next update on.
func (r *TextRenderer) SetSize(size int) { r.size = size }

func (r *TextRenderer) OnAttach() error { return r.bind(r) }

func (r *TextRenderer) OnBehaviourUpdate() error {
	d := r.Owner().Runtime().Display()
	if d.Backend == nil {
		return nil
	}
	surf := r.surfaceFor(d, d.Backend.TextSize(r.text, r.size))
	surf.DrawText(r.text, image.Point{}, r.size, r.Color)
	r.present(d)
	return nil
}
