package event

import (
	"fmt"
	"image"
)

// Category selects one of the listener registries of a Bus.
type Category uint8

const (
	CategoryGame   Category = iota // input and process-level events
	CategoryScene                  // scene lifecycle
	CategoryObject                 // gameobject lifecycle, scoped by gameobject id

	categoryCount = 3
)

func (c Category) String() string {
	switch c {
	case CategoryGame:
		return "game"
	case CategoryScene:
		return "scene"
	case CategoryObject:
		return "gameobject"
	default:
		return fmt.Sprintf("category(%d)", uint8(c))
	}
}

// Key addresses one listener collection: a category plus a type id inside it.
type Key struct {
	Category Category
	ID       uint8
}

func (k Key) String() string { return fmt.Sprintf("%s/%d", k.Category, k.ID) }

// Type is implemented by the typed event ids of every category.
type Type interface {
	Key() Key
}

// BroadcastType is an event type whose listeners are not scoped to a
// gameobject.
type BroadcastType interface {
	Type
	broadcast()
}

// GameEvent identifies a game-level event.
type GameEvent uint8

const (
	EventClickDown   GameEvent = iota // mouse button pressed; ClickDown
	EventClickUp                      // mouse button released; ClickUp
	EventMouseMotion                  // pointer moved; MouseMotion
	EventKeyDown                      // key pressed; KeyDown
	EventKeyUp                        // key released; KeyUp
	EventActive                       // window focus gained or lost; Active
	EventQuit                         // quit requested; no data
)

var gameEvents = []GameEvent{EventClickDown, EventClickUp, EventMouseMotion, EventKeyDown, EventKeyUp, EventActive, EventQuit}

func (e GameEvent) Key() Key { return Key{Category: CategoryGame, ID: uint8(e)} }
func (GameEvent) broadcast() {}

// SceneEvent identifies a scene lifecycle event. None carries data.
type SceneEvent uint8

const (
	SceneActivate SceneEvent = iota + 1
	SceneUpdate
	SceneDestroy
)

var sceneEvents = []SceneEvent{SceneActivate, SceneUpdate, SceneDestroy}

func (e SceneEvent) Key() Key { return Key{Category: CategoryScene, ID: uint8(e)} }
func (SceneEvent) broadcast() {}

// ObjectEvent identifies a gameobject lifecycle event. Listeners of these
// events are bound to a single gameobject id. None carries data.
type ObjectEvent uint8

const (
	ObjectCreate  ObjectEvent = 0
	ObjectSpawn   ObjectEvent = 1
	ObjectUpdate  ObjectEvent = 3
	ObjectDespawn ObjectEvent = 5
	ObjectDestroy ObjectEvent = 6
)

var objectEvents = []ObjectEvent{ObjectCreate, ObjectSpawn, ObjectUpdate, ObjectDespawn, ObjectDestroy}

func (e ObjectEvent) Key() Key { return Key{Category: CategoryObject, ID: uint8(e)} }

// ObjectEvents lists the gameobject events in declaration order.
func ObjectEvents() []ObjectEvent { return append([]ObjectEvent(nil), objectEvents...) }

// Data is the payload handed to handlers. Each game event kind has its own
// record; lifecycle events pass nil.
type Data interface {
	isData()
}

// KeyDown is the payload of EventKeyDown.
type KeyDown struct {
	Unicode rune
	Key     int
	Mod     int
}

// KeyUp is the payload of EventKeyUp.
type KeyUp struct {
	Key int
	Mod int
}

// ClickDown is the payload of EventClickDown.
type ClickDown struct {
	Pos    image.Point
	Button int
}

// ClickUp is the payload of EventClickUp.
type ClickUp struct {
	Pos    image.Point
	Button int
}

// MouseMotion is the payload of EventMouseMotion. Buttons holds the
// pressed state of the left, middle and right buttons.
type MouseMotion struct {
	Pos     image.Point
	Rel     image.Point
	Buttons [3]bool
}

// Active is the payload of EventActive. State tells which kind of focus
// changed (see input.Focus*).
type Active struct {
	Gain  bool
	State int
}

func (KeyDown) isData()     {}
func (KeyUp) isData()       {}
func (ClickDown) isData()   {}
func (ClickUp) isData()     {}
func (MouseMotion) isData() {}
func (Active) isData()      {}
