package platform

import (
	"bytes"
	"fmt"
	"image"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"golang.org/x/image/font/gofont/goregular"

	"github.com/se2de/engine/internal/render"
)

// Surface is a render.Surface backed by an ebiten image.
type Surface struct {
	img     *ebiten.Image
	backend *Backend
}

func (s *Surface) Size() image.Point { return s.img.Bounds().Size() }

func (s *Surface) Fill(c color.Color) { s.img.Fill(c) }

func (s *Surface) FillRect(r image.Rectangle, c color.Color) {
	vector.DrawFilledRect(s.img, float32(r.Min.X), float32(r.Min.Y), float32(r.Dx()), float32(r.Dy()), c, false)
}

func (s *Surface) FillCircle(center image.Point, radius int, c color.Color) {
	vector.DrawFilledCircle(s.img, float32(center.X), float32(center.Y), float32(radius), c, true)
}

func (s *Surface) DrawText(str string, pos image.Point, size int, c color.Color) {
	op := &text.DrawOptions{}
	op.GeoM.Translate(float64(pos.X), float64(pos.Y))
	op.ColorScale.ScaleWithColor(c)
	text.Draw(s.img, str, s.backend.face(size), op)
}

func (s *Surface) Blit(src render.Surface, pos image.Point) {
	other, ok := src.(*Surface)
	if !ok {
		return
	}
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Translate(float64(pos.X), float64(pos.Y))
	s.img.DrawImage(other.img, op)
}

// Backend is the ebiten render backend. The screen is an offscreen image
// copied to the window on every draw.
type Backend struct {
	screen *Surface
	font   *text.GoTextFaceSource
	faces  map[int]*text.GoTextFace
}

// NewBackend allocates the offscreen screen of the given size.
func NewBackend(width, height int) (*Backend, error) {
	src, err := text.NewGoTextFaceSource(bytes.NewReader(goregular.TTF))
	if err != nil {
		return nil, fmt.Errorf("load font: %w", err)
	}
	b := &Backend{font: src, faces: make(map[int]*text.GoTextFace)}
	b.screen = &Surface{img: ebiten.NewImage(width, height), backend: b}
	return b, nil
}

func (b *Backend) Screen() render.Surface { return b.screen }

func (b *Backend) NewSurface(width, height int) render.Surface {
	return &Surface{img: ebiten.NewImage(max(width, 1), max(height, 1)), backend: b}
}

func (b *Backend) TextSize(str string, size int) image.Point {
	face := b.face(size)
	w, h := text.Measure(str, face, face.Size)
	return image.Pt(int(w+0.5), int(h+0.5))
}

func (b *Backend) face(size int) *text.GoTextFace {
	if size <= 0 {
		size = 1
	}
	f, ok := b.faces[size]
	if !ok {
		f = &text.GoTextFace{Source: b.font, Size: float64(size)}
		b.faces[size] = f
	}
	return f
}
