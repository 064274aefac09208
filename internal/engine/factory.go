package engine

import (
	"fmt"
	"maps"
	"math"
	"reflect"
	"slices"

	"github.com/go-viper/mapstructure/v2"
)

// Factory builds a component from the named arguments of a scene record.
// The "type" key has already been removed from args.
type Factory func(args map[string]any) (Component, error)

// Registry maps component type tags to their factories.
type Registry struct {
	factories map[ComponentType]Factory
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{factories: make(map[ComponentType]Factory)}
}

// Register binds t to f. Registering the same tag twice panics.
func (r *Registry) Register(t ComponentType, f Factory) {
	if _, dup := r.factories[t]; dup {
		panic(fmt.Sprintf("engine: component type %s registered twice", t))
	}
	r.factories[t] = f
}

// Lookup returns the factory bound to t.
func (r *Registry) Lookup(t ComponentType) (Factory, bool) {
	f, ok := r.factories[t]
	return f, ok
}

// Types returns the registered tags, sorted.
func (r *Registry) Types() []ComponentType {
	return slices.Sorted(maps.Keys(r.factories))
}

// DecodeArgs decodes record arguments into the struct pointed to by out,
// using its `arg` field tags. Unknown keys are an error. Integers convert to
// float fields, but a float only fills an integer field when it has no
// fractional part.
func DecodeArgs(args map[string]any, out any) error {
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:      out,
		TagName:     "arg",
		ErrorUnused: true,
		DecodeHook:  integralHook,
	})
	if err != nil {
		return err
	}
	return dec.Decode(args)
}

func integralHook(_ reflect.Type, to reflect.Type, v any) (any, error) {
	switch to.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
	default:
		return v, nil
	}
	var f float64
	switch n := v.(type) {
	case float64:
		f = n
	case float32:
		f = float64(n)
	default:
		return v, nil
	}
	if f != math.Trunc(f) {
		return nil, fmt.Errorf("%v is not an integer", f)
	}
	return v, nil
}
