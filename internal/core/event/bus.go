package event

import (
	"fmt"
	"slices"
)

// Bus owns the listener registries of the three event categories and
// dispatches events to them. Dispatch is synchronous: Launch returns after
// every listener registered at the time of the call has run.
//
// A Bus is not safe for concurrent use; it belongs to the game loop.
type Bus struct {
	registries [categoryCount]map[uint8][]*Listener
}

// NewBus creates a Bus with an empty collection for every known event key.
func NewBus() *Bus {
	b := &Bus{}
	for i := range b.registries {
		b.registries[i] = make(map[uint8][]*Listener)
	}
	for _, e := range gameEvents {
		b.registries[CategoryGame][uint8(e)] = nil
	}
	for _, e := range sceneEvents {
		b.registries[CategoryScene][uint8(e)] = nil
	}
	for _, e := range objectEvents {
		b.registries[CategoryObject][uint8(e)] = nil
	}
	return b
}

// Listener returns the registered listener of t whose handler equals h, or
// a new unregistered listener when there is none or Forced is given.
func (b *Bus) Listener(t BroadcastType, h Handler, opts ...ListenerOption) *Listener {
	return b.registerOrGet(t.Key(), h, false, 0, opts)
}

// ObjectListener is Listener for gameobject events; the listener only
// receives events launched for gobjID.
func (b *Bus) ObjectListener(t ObjectEvent, gobjID int, h Handler, opts ...ListenerOption) *Listener {
	return b.registerOrGet(t.Key(), h, true, gobjID, opts)
}

func (b *Bus) registerOrGet(key Key, h Handler, scoped bool, gobjID int, opts []ListenerOption) *Listener {
	l := &Listener{bus: b, handler: h, key: key, gobjID: gobjID, scoped: scoped}
	for _, opt := range opts {
		opt(l)
	}
	if l.forced {
		return l
	}
	if existing := b.find(key, h, scoped, gobjID); existing != nil {
		return existing
	}
	return l
}

// Launch notifies every listener of t in registration order. Listeners are
// snapshotted first, so registrations and removals made by a handler take
// effect on the next launch. The first handler error stops the dispatch and
// is returned.
func (b *Bus) Launch(t Type, data Data) error {
	key := t.Key()
	for _, l := range slices.Clone(b.registry(key)[key.ID]) {
		if err := l.Notify(data); err != nil {
			return err
		}
	}
	return nil
}

// LaunchObject is Launch restricted to the listeners bound to gobjID.
func (b *Bus) LaunchObject(t ObjectEvent, gobjID int, data Data) error {
	key := t.Key()
	for _, l := range slices.Clone(b.registry(key)[key.ID]) {
		if l.gobjID != gobjID {
			continue
		}
		if err := l.Notify(data); err != nil {
			return err
		}
	}
	return nil
}

// Len returns the number of listeners registered under t.
func (b *Bus) Len(t Type) int {
	key := t.Key()
	return len(b.registry(key)[key.ID])
}

// ObjectLen returns the number of listeners of t bound to gobjID.
func (b *Bus) ObjectLen(t ObjectEvent, gobjID int) int {
	n := 0
	key := t.Key()
	for _, l := range b.registry(key)[key.ID] {
		if l.gobjID == gobjID {
			n++
		}
	}
	return n
}

func (b *Bus) find(key Key, h Handler, scoped bool, gobjID int) *Listener {
	for _, l := range b.registry(key)[key.ID] {
		if l.matches(h, scoped, gobjID) {
			return l
		}
	}
	return nil
}

// registry returns the collection map for key's category. Unknown keys are
// a programming error.
func (b *Bus) registry(key Key) map[uint8][]*Listener {
	if int(key.Category) >= categoryCount {
		panic(fmt.Sprintf("event: unknown category in key %s", key))
	}
	reg := b.registries[key.Category]
	if _, ok := reg[key.ID]; !ok {
		panic(fmt.Sprintf("event: unknown event key %s", key))
	}
	return reg
}
