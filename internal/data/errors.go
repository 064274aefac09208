package data

import "fmt"

// InvalidSceneDataError reports scene data that cannot be turned into
// gameobjects. It is fatal to the scene load that produced it.
type InvalidSceneDataError struct {
	Scene   string // scene whose data is invalid
	Key     string // offending record key, empty when not key specific
	Message string
}

func (e *InvalidSceneDataError) Error() string {
	return fmt.Sprintf("invalid data in scene %s: %s", e.Scene, e.Message)
}

func invalid(scene, key, format string, args ...any) *InvalidSceneDataError {
	return &InvalidSceneDataError{Scene: scene, Key: key, Message: fmt.Sprintf(format, args...)}
}
