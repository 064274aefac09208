package event

import (
	"fmt"
	"slices"
)

// Listener is a handler registered, or ready to be registered, under one
// event key. Obtain listeners from a Bus; a Listener is not usable on its
// own.
type Listener struct {
	bus     *Bus
	handler Handler
	key     Key
	gobjID  int
	scoped  bool
	forced  bool
}

// ListenerOption configures a listener obtained from a Bus.
type ListenerOption func(*Listener)

// Forced makes the Bus hand out a fresh listener even when an equal one is
// already registered, and makes Listen append it unconditionally.
// Reserved for internal paths that need intentional duplicates.
func Forced() ListenerOption {
	return func(l *Listener) { l.forced = true }
}

// Handler returns the listener's handler.
func (l *Listener) Handler() Handler { return l.handler }

// Key returns the key the listener belongs to.
func (l *Listener) Key() Key { return l.key }

// ObjectID returns the gameobject id a scoped listener is bound to.
func (l *Listener) ObjectID() (int, bool) { return l.gobjID, l.scoped }

// Forced reports whether the listener was created with Forced.
func (l *Listener) Forced() bool { return l.forced }

// Listen registers the listener under its key. Listening again, or listening
// while an equal listener is registered, does nothing unless the listener is
// forced.
func (l *Listener) Listen() {
	if !l.forced && l.bus.find(l.key, l.handler, l.scoped, l.gobjID) != nil {
		return
	}
	reg := l.bus.registry(l.key)
	reg[l.key.ID] = append(reg[l.key.ID], l)
}

// Ignore removes the first registered listener equal to l. It is a no-op
// when none is registered.
func (l *Listener) Ignore() {
	reg := l.bus.registry(l.key)
	list := reg[l.key.ID]
	for i, other := range list {
		if other.matches(l.handler, l.scoped, l.gobjID) {
			reg[l.key.ID] = append(list[:i:i], list[i+1:]...)
			return
		}
	}
}

// Suspend removes l itself from its collection and returns a function that
// puts it back at the position it held. Restoring a listener that was not
// registered does nothing.
func (l *Listener) Suspend() (restore func()) {
	reg := l.bus.registry(l.key)
	list := reg[l.key.ID]
	idx := slices.Index(list, l)
	if idx < 0 {
		return func() {}
	}
	reg[l.key.ID] = slices.Delete(slices.Clone(list), idx, idx+1)
	return func() {
		cur := reg[l.key.ID]
		if slices.Contains(cur, l) {
			return
		}
		reg[l.key.ID] = slices.Insert(slices.Clone(cur), min(idx, len(cur)), l)
	}
}

// Listening reports whether l itself is currently registered.
func (l *Listener) Listening() bool {
	for _, other := range l.bus.registry(l.key)[l.key.ID] {
		if other == l {
			return true
		}
	}
	return false
}

// Notify executes the listener's handler with data.
func (l *Listener) Notify(data Data) error {
	return l.handler.Execute(data)
}

func (l *Listener) matches(h Handler, scoped bool, gobjID int) bool {
	if l.scoped != scoped || (scoped && l.gobjID != gobjID) {
		return false
	}
	return l.handler.Equal(h)
}

func (l *Listener) String() string {
	if l.scoped {
		return fmt.Sprintf("Listener(%s, gameobject=%d, %s)", l.key, l.gobjID, l.handler)
	}
	return fmt.Sprintf("Listener(%s, %s)", l.key, l.handler)
}
