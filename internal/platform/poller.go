package platform

import (
	"image"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"github.com/se2de/engine/internal/input"
)

var mouseButtons = []struct {
	eb  ebiten.MouseButton
	btn int
}{
	{ebiten.MouseButtonLeft, input.ButtonLeft},
	{ebiten.MouseButtonMiddle, input.ButtonMiddle},
	{ebiten.MouseButtonRight, input.ButtonRight},
}

// Poller is an input.Source reading ebiten's input state once per tick.
type Poller struct {
	cursor  image.Point
	focused bool
	quit    bool

	keys  []ebiten.Key
	chars []rune
	out   []input.Occurrence
}

func NewPoller() *Poller {
	return &Poller{focused: true}
}

func (p *Poller) Poll() []input.Occurrence {
	p.out = p.out[:0]
	mod := modifiers()

	p.chars = ebiten.AppendInputChars(p.chars[:0])
	p.keys = inpututil.AppendJustPressedKeys(p.keys[:0])
	for i, k := range p.keys {
		var r rune
		if i < len(p.chars) {
			r = p.chars[i]
		}
		p.out = append(p.out, input.Occurrence{Kind: input.KindKeyDown, Unicode: r, Key: int(k), Mod: mod})
	}
	p.keys = inpututil.AppendJustReleasedKeys(p.keys[:0])
	for _, k := range p.keys {
		p.out = append(p.out, input.Occurrence{Kind: input.KindKeyUp, Key: int(k), Mod: mod})
	}

	cx, cy := ebiten.CursorPosition()
	cursor := image.Pt(cx, cy)
	if cursor != p.cursor {
		var held [3]bool
		for i, mb := range mouseButtons {
			held[i] = ebiten.IsMouseButtonPressed(mb.eb)
		}
		p.out = append(p.out, input.Occurrence{
			Kind:    input.KindMotion,
			Pos:     cursor,
			Rel:     cursor.Sub(p.cursor),
			Buttons: held,
		})
		p.cursor = cursor
	}
	for _, mb := range mouseButtons {
		if inpututil.IsMouseButtonJustPressed(mb.eb) {
			p.out = append(p.out, input.Occurrence{Kind: input.KindButtonDown, Pos: cursor, Button: mb.btn})
		}
		if inpututil.IsMouseButtonJustReleased(mb.eb) {
			p.out = append(p.out, input.Occurrence{Kind: input.KindButtonUp, Pos: cursor, Button: mb.btn})
		}
	}

	if focused := ebiten.IsFocused(); focused != p.focused {
		p.focused = focused
		p.out = append(p.out, input.Occurrence{Kind: input.KindFocus, Gain: focused, State: input.FocusInput})
	}

	if !p.quit && ebiten.IsWindowBeingClosed() {
		p.quit = true
		p.out = append(p.out, input.Occurrence{Kind: input.KindQuit})
	}
	return p.out
}

func modifiers() int {
	var mod int
	if ebiten.IsKeyPressed(ebiten.KeyShift) {
		mod |= input.ModShift
	}
	if ebiten.IsKeyPressed(ebiten.KeyControl) {
		mod |= input.ModCtrl
	}
	if ebiten.IsKeyPressed(ebiten.KeyAlt) {
		mod |= input.ModAlt
	}
	if ebiten.IsKeyPressed(ebiten.KeyMeta) {
		mod |= input.ModMeta
	}
	return mod
}
