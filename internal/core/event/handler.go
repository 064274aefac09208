package event

import (
	"fmt"
	"reflect"

	"github.com/mitchellh/copystructure"
)

// Func is the callback stored in a Handler. data is nil when the launched
// event carries no payload.
type Func func(data Data, args Args) error

// Args are the arguments bound to a Handler at construction.
type Args struct {
	Positional []any
	Named      map[string]any
}

// Handler pairs a callback with the arguments it is invoked with.
//
// Go func values are not comparable, so a callback is identified by the
// receiver it is bound to and a method name. Two handlers are equal when
// receiver, method and arguments are equal: the same hook of the same
// component instance is one handler, the same hook of two instances is two.
type Handler struct {
	recv   any
	method string
	fn     Func
	args   Args
}

// NewHandler binds fn to (recv, method). recv must be comparable, usually a
// pointer. The positional arguments are deep-copied, pointers included, so
// later changes made by the caller do not leak into the handler.
func NewHandler(recv any, method string, fn Func, positional ...any) Handler {
	if recv != nil && !reflect.TypeOf(recv).Comparable() {
		panic(fmt.Sprintf("event: handler receiver %T is not comparable", recv))
	}
	h := Handler{recv: recv, method: method, fn: fn}
	if len(positional) > 0 {
		h.args.Positional = copystructure.Must(copystructure.Copy(positional)).([]any)
	}
	return h
}

// Bind is NewHandler for callbacks that ignore the event payload and take
// no arguments, such as lifecycle hooks.
func Bind(recv any, method string, fn func() error) Handler {
	return NewHandler(recv, method, func(Data, Args) error { return fn() })
}

// WithNamed returns a copy of h that also carries the given named
// arguments. The map is deep-copied.
func (h Handler) WithNamed(named map[string]any) Handler {
	if len(named) == 0 {
		h.args.Named = nil
		return h
	}
	h.args.Named = copystructure.Must(copystructure.Copy(named)).(map[string]any)
	return h
}

// Execute invokes the callback and returns whatever it returns.
func (h Handler) Execute(data Data) error {
	if h.fn == nil {
		return nil
	}
	return h.fn(data, h.args)
}

// Equal reports whether h and o are bound to the same receiver and method
// with equal arguments.
func (h Handler) Equal(o Handler) bool {
	return h.recv == o.recv &&
		h.method == o.method &&
		reflect.DeepEqual(h.args.Positional, o.args.Positional) &&
		reflect.DeepEqual(h.args.Named, o.args.Named)
}

// Method returns the method name the handler was bound with.
func (h Handler) Method() string { return h.method }

func (h Handler) String() string {
	return fmt.Sprintf("Handler(%T.%s, %v, %v)", h.recv, h.method, h.args.Positional, h.args.Named)
}
