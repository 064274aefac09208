// Package input turns platform input occurrences into game events.
package input

import (
	"image"

	"github.com/se2de/engine/internal/core/event"
)

// Kind classifies an input occurrence.
type Kind int

const (
	KindKeyDown Kind = iota
	KindKeyUp
	KindButtonDown
	KindButtonUp
	KindMotion
	KindFocus
	KindQuit
)

// Focus states carried by focus occurrences; they combine as a bit set.
const (
	FocusMouse = 1 << iota // pointer entered or left the window
	FocusInput             // keyboard focus
	FocusApp               // window minimized or restored
)

// Mouse buttons.
const (
	ButtonLeft = iota + 1
	ButtonMiddle
	ButtonRight
)

// Modifier bits of key occurrences.
const (
	ModShift = 1 << iota
	ModCtrl
	ModAlt
	ModMeta
)

// Occurrence is one raw input happening reported by the platform. Only the
// fields relevant to its Kind are set.
type Occurrence struct {
	Kind Kind

	Unicode rune // KindKeyDown
	Key     int  // KindKeyDown, KindKeyUp
	Mod     int  // KindKeyDown, KindKeyUp

	Pos     image.Point // KindButtonDown, KindButtonUp, KindMotion
	Rel     image.Point // KindMotion
	Button  int         // KindButtonDown, KindButtonUp
	Buttons [3]bool     // KindMotion: left, middle, right

	Gain  bool // KindFocus
	State int  // KindFocus
}

// Translate maps an occurrence to its game event and payload. ok is false
// for unknown kinds.
func Translate(o Occurrence) (t event.GameEvent, data event.Data, ok bool) {
	switch o.Kind {
	case KindKeyDown:
		return event.EventKeyDown, event.KeyDown{Unicode: o.Unicode, Key: o.Key, Mod: o.Mod}, true
	case KindKeyUp:
		return event.EventKeyUp, event.KeyUp{Key: o.Key, Mod: o.Mod}, true
	case KindButtonDown:
		return event.EventClickDown, event.ClickDown{Pos: o.Pos, Button: o.Button}, true
	case KindButtonUp:
		return event.EventClickUp, event.ClickUp{Pos: o.Pos, Button: o.Button}, true
	case KindMotion:
		return event.EventMouseMotion, event.MouseMotion{Pos: o.Pos, Rel: o.Rel, Buttons: o.Buttons}, true
	case KindFocus:
		return event.EventActive, event.Active{Gain: o.Gain, State: o.State}, true
	case KindQuit:
		return event.EventQuit, nil, true
	default:
		return 0, nil, false
	}
}
