package data

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"golang.org/x/text/encoding/htmlindex"
)

// ErrSceneNotFound is returned by sources that have no data for a scene.
var ErrSceneNotFound = errors.New("scene not found")

// Source provides the raw bytes of a scene document.
type Source interface {
	Fetch(ctx context.Context, name string) ([]byte, error)
}

// DirSource reads scenes from <Dir>/<name><Ext>.
type DirSource struct {
	Dir string
	Ext string // defaults to ".yaml"
	// Encoding is the WHATWG name of the files' charset ("shift_jis",
	// "big5", ...). Empty means UTF-8.
	Encoding string
}

// Fetch implements Source.
func (s DirSource) Fetch(_ context.Context, name string) ([]byte, error) {
	ext := s.Ext
	if ext == "" {
		ext = ".yaml"
	}
	path := filepath.Join(s.Dir, name+ext)
	raw, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("read %s: %w", path, ErrSceneNotFound)
		}
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	if s.Encoding == "" {
		return raw, nil
	}
	enc, err := htmlindex.Get(s.Encoding)
	if err != nil {
		return nil, fmt.Errorf("scene encoding %q: %w", s.Encoding, err)
	}
	utf8, err := enc.NewDecoder().Bytes(raw)
	if err != nil {
		return nil, fmt.Errorf("decode %s as %s: %w", path, s.Encoding, err)
	}
	return utf8, nil
}

// List returns the scene names available in the directory, sorted.
func (s DirSource) List() ([]string, error) {
	ext := s.Ext
	if ext == "" {
		ext = ".yaml"
	}
	matches, err := filepath.Glob(filepath.Join(s.Dir, "*"+ext))
	if err != nil {
		return nil, fmt.Errorf("list scenes in %s: %w", s.Dir, err)
	}
	names := make([]string, 0, len(matches))
	for _, m := range matches {
		base := filepath.Base(m)
		names = append(names, base[:len(base)-len(ext)])
	}
	return names, nil
}

// MapSource serves scenes from memory. Useful for tests and embedded games.
type MapSource map[string][]byte

// Fetch implements Source.
func (s MapSource) Fetch(_ context.Context, name string) ([]byte, error) {
	raw, ok := s[name]
	if !ok {
		return nil, fmt.Errorf("scene %s: %w", name, ErrSceneNotFound)
	}
	return raw, nil
}
