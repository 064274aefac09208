package data

import (
	"bytes"
	"fmt"

	"gopkg.in/yaml.v3"
)

// Record keys of the scene format.
const (
	KeyName       = "name"
	KeySpawned    = "spawned"
	KeyComponents = "components"
	KeyType       = "type"
)

// ObjectRecord is one validated gameobject entry of a scene.
type ObjectRecord struct {
	Name       string
	Spawned    bool
	Components []ComponentRecord
}

// ComponentRecord is one component entry. Type is the registered component
// type tag; Args holds the remaining keys, passed to the constructor as is.
type ComponentRecord struct {
	Type string
	Args map[string]any
}

// Decode parses a YAML scene document into its raw tree: a sequence of
// gameobject mappings. An empty document is an empty scene.
func Decode(scene string, raw []byte) ([]any, error) {
	if len(bytes.TrimSpace(raw)) == 0 {
		return []any{}, nil
	}
	var doc any
	if err := yaml.Unmarshal(raw, &doc); err != nil {
		return nil, invalid(scene, "", "malformed YAML: %v", err)
	}
	switch t := doc.(type) {
	case nil:
		return []any{}, nil
	case []any:
		return t, nil
	default:
		return nil, invalid(scene, "", "scene data is not a sequence of gameobjects")
	}
}

// ParseObjects validates every gameobject record of a raw scene tree. The
// component "type" keys are removed from the tree, so callers must pass a
// copy they own.
func ParseObjects(scene string, raw []any) ([]ObjectRecord, error) {
	out := make([]ObjectRecord, 0, len(raw))
	for i, r := range raw {
		rec, err := ParseObject(scene, r)
		if err != nil {
			if e, ok := err.(*InvalidSceneDataError); ok {
				e.Message = fmt.Sprintf("gameobject #%d: %s", i, e.Message)
			}
			return nil, err
		}
		out = append(out, rec)
	}
	return out, nil
}

// ParseObject validates a single raw gameobject record.
func ParseObject(scene string, raw any) (ObjectRecord, error) {
	m, ok := raw.(map[string]any)
	if !ok {
		return ObjectRecord{}, invalid(scene, "", "gameobject is not a mapping")
	}

	name, ok := m[KeyName]
	if !ok {
		return ObjectRecord{}, invalid(scene, KeyName, "%s is not present in a GameObject", KeyName)
	}
	nameStr, ok := name.(string)
	if !ok {
		return ObjectRecord{}, invalid(scene, KeyName, "%s attribute is not a string", KeyName)
	}

	spawned, ok := m[KeySpawned]
	if !ok {
		return ObjectRecord{}, invalid(scene, KeySpawned, "%s is not present in a GameObject", KeySpawned)
	}
	spawnedBool, ok := spawned.(bool)
	if !ok {
		return ObjectRecord{}, invalid(scene, KeySpawned, "%q attribute is not a bool", KeySpawned)
	}

	comps, ok := m[KeyComponents]
	if !ok {
		return ObjectRecord{}, invalid(scene, KeyComponents, "%s is not present in a GameObject", KeyComponents)
	}
	var list []any
	switch t := comps.(type) {
	case nil:
	case []any:
		list = t
	default:
		return ObjectRecord{}, invalid(scene, KeyComponents, "%s does not contain the proper value", KeyComponents)
	}

	rec := ObjectRecord{Name: nameStr, Spawned: spawnedBool, Components: make([]ComponentRecord, 0, len(list))}
	for _, c := range list {
		cr, err := parseComponent(scene, c)
		if err != nil {
			return ObjectRecord{}, err
		}
		rec.Components = append(rec.Components, cr)
	}
	return rec, nil
}

func parseComponent(scene string, raw any) (ComponentRecord, error) {
	m, ok := raw.(map[string]any)
	if !ok {
		return ComponentRecord{}, invalid(scene, KeyComponents, "%s does not contain the proper value", KeyComponents)
	}
	typ, ok := m[KeyType]
	if !ok {
		return ComponentRecord{}, invalid(scene, KeyType, "component is missing the '%s' key", KeyType)
	}
	typStr, ok := typ.(string)
	if !ok || typStr == "" {
		return ComponentRecord{}, invalid(scene, KeyType, "component '%s' is not a type name", KeyType)
	}
	delete(m, KeyType)
	return ComponentRecord{Type: typStr, Args: m}, nil
}
