// Package rendertest provides an in-memory render backend that records
// drawing operations.
package rendertest

import (
	"fmt"
	"image"
	"image/color"

	"github.com/se2de/engine/internal/render"
)

// Op is one recorded drawing call.
type Op struct {
	Kind   string // "fill", "rect", "circle", "text", "blit"
	Target *Surface
	Rect   image.Rectangle
	Pos    image.Point
	Radius int
	Size   int
	Text   string
	Color  color.Color
	Source *Surface
}

func (o Op) String() string {
	return fmt.Sprintf("%s@%v", o.Kind, o.Pos)
}

// Backend records every operation made on its surfaces.
type Backend struct {
	Ops    []Op
	screen *Surface
}

// NewBackend creates a backend with a screen of the given size.
func NewBackend(width, height int) *Backend {
	b := &Backend{}
	b.screen = &Surface{backend: b, size: image.Pt(width, height), Name: "screen"}
	return b
}

func (b *Backend) Screen() render.Surface { return b.screen }

func (b *Backend) NewSurface(width, height int) render.Surface {
	return &Surface{backend: b, size: image.Pt(width, height)}
}

// TextSize assumes glyphs half as wide as they are tall.
func (b *Backend) TextSize(text string, size int) image.Point {
	return image.Pt(len([]rune(text))*size/2, size)
}

// Blits returns the recorded blits onto the screen.
func (b *Backend) Blits() []Op {
	var out []Op
	for _, op := range b.Ops {
		if op.Kind == "blit" && op.Target == b.screen {
			out = append(out, op)
		}
	}
	return out
}

// Reset forgets the recorded operations.
func (b *Backend) Reset() { b.Ops = nil }

// Surface is a recording render.Surface.
type Surface struct {
	Name    string
	backend *Backend
	size    image.Point
}

func (s *Surface) record(op Op) {
	op.Target = s
	s.backend.Ops = append(s.backend.Ops, op)
}

func (s *Surface) Size() image.Point { return s.size }

func (s *Surface) Fill(c color.Color) {
	s.record(Op{Kind: "fill", Color: c})
}

func (s *Surface) FillRect(r image.Rectangle, c color.Color) {
	s.record(Op{Kind: "rect", Rect: r, Color: c})
}

func (s *Surface) FillCircle(center image.Point, radius int, c color.Color) {
	s.record(Op{Kind: "circle", Pos: center, Radius: radius, Color: c})
}

func (s *Surface) DrawText(text string, pos image.Point, size int, c color.Color) {
	s.record(Op{Kind: "text", Text: text, Pos: pos, Size: size, Color: c})
}

func (s *Surface) Blit(src render.Surface, pos image.Point) {
	op := Op{Kind: "blit", Pos: pos}
	if fs, ok := src.(*Surface); ok {
		op.Source = fs
	}
	s.record(op)
}
