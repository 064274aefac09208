package data

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"go.uber.org/zap"
)

type countingSource struct {
	MapSource
	fetches map[string]int
}

func (s *countingSource) Fetch(ctx context.Context, name string) ([]byte, error) {
	s.fetches[name]++
	return s.MapSource.Fetch(ctx, name)
}

func newSource(n int) *countingSource {
	src := &countingSource{MapSource: MapSource{}, fetches: map[string]int{}}
	for i := 0; i < n; i++ {
		src.MapSource[fmt.Sprintf("scene%d", i)] = []byte("- {name: a, spawned: true, components: [{type: transform}]}")
	}
	return src
}

func TestSceneCacheEvictsLeastRecentlyUsed(t *testing.T) {
	ctx := context.Background()
	src := newSource(11)
	c, err := NewSceneCache(src, 0, zap.NewNop())
	if err != nil {
		t.Fatal(err)
	}

	for i := 0; i < 10; i++ {
		if _, err := c.GetOrLoad(ctx, fmt.Sprintf("scene%d", i)); err != nil {
			t.Fatal(err)
		}
	}
	// Touch scene0 so scene1 becomes the oldest.
	if _, err := c.GetOrLoad(ctx, "scene0"); err != nil {
		t.Fatal(err)
	}
	if _, err := c.GetOrLoad(ctx, "scene10"); err != nil {
		t.Fatal(err)
	}

	if c.Len() != DefaultCacheSize {
		t.Fatalf("Len = %d, want %d", c.Len(), DefaultCacheSize)
	}
	if c.Contains("scene1") {
		t.Error("scene1 should have been evicted")
	}
	for _, name := range []string{"scene0", "scene2", "scene9", "scene10"} {
		if !c.Contains(name) {
			t.Errorf("%s should be cached", name)
		}
	}
	names := c.Names()
	if names[0] != "scene2" || names[len(names)-1] != "scene10" {
		t.Errorf("recency order = %v", names)
	}
	if src.fetches["scene0"] != 1 {
		t.Errorf("scene0 fetched %d times, want 1", src.fetches["scene0"])
	}
}

func TestSceneCacheReturnsIndependentCopies(t *testing.T) {
	ctx := context.Background()
	c, err := NewSceneCache(newSource(1), 2, zap.NewNop())
	if err != nil {
		t.Fatal(err)
	}
	first, err := c.GetOrLoad(ctx, "scene0")
	if err != nil {
		t.Fatal(err)
	}
	if _, err := ParseObjects("scene0", first); err != nil {
		t.Fatal(err)
	}

	second, err := c.GetOrLoad(ctx, "scene0")
	if err != nil {
		t.Fatal(err)
	}
	recs, err := ParseObjects("scene0", second)
	if err != nil {
		t.Fatalf("cached tree was corrupted by the first parse: %v", err)
	}
	if recs[0].Components[0].Type != "transform" {
		t.Errorf("type = %q", recs[0].Components[0].Type)
	}
}

func TestSceneCacheErrors(t *testing.T) {
	ctx := context.Background()
	src := MapSource{"broken": []byte("- [unclosed")}
	c, err := NewSceneCache(src, 1, zap.NewNop())
	if err != nil {
		t.Fatal(err)
	}
	if _, err := c.GetOrLoad(ctx, "missing"); !errors.Is(err, ErrSceneNotFound) {
		t.Errorf("missing err = %v, want ErrSceneNotFound", err)
	}
	var e *InvalidSceneDataError
	if _, err := c.GetOrLoad(ctx, "broken"); !errors.As(err, &e) {
		t.Errorf("broken err = %v, want InvalidSceneDataError", err)
	}
	if c.Len() != 0 {
		t.Errorf("failed loads should not be cached, Len = %d", c.Len())
	}
}
