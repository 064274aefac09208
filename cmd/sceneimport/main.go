// sceneimport validates the scene files of a directory and stores them in
// the PostgreSQL scenes table.
package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"go.uber.org/zap"

	"github.com/se2de/engine/internal/config"
	"github.com/se2de/engine/internal/data"
	"github.com/se2de/engine/internal/persist"
)

func main() {
	if len(os.Args) < 2 {
		fmt.Fprintln(os.Stderr, "Usage: sceneimport <scene dir>")
		os.Exit(1)
	}
	if err := run(os.Args[1]); err != nil {
		fmt.Fprintf(os.Stderr, "fatal: %v\n", err)
		os.Exit(1)
	}
}

func run(dir string) error {
	cfg, err := config.Load(config.Path())
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	log, err := zap.NewDevelopment()
	if err != nil {
		return err
	}
	defer log.Sync()

	src := data.DirSource{Dir: dir, Ext: cfg.Scenes.Extension, Encoding: cfg.Scenes.Encoding}
	rows, err := collect(context.Background(), src)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()
	db, err := persist.Open(ctx, cfg.Database, log)
	if err != nil {
		return fmt.Errorf("database: %w", err)
	}
	defer db.Close()
	if err := db.Migrate(ctx); err != nil {
		return fmt.Errorf("migrations: %w", err)
	}
	if err := persist.NewSceneRepo(db).SaveAll(ctx, rows); err != nil {
		return err
	}
	fmt.Printf("Imported %d scenes from %s\n", len(rows), dir)
	return nil
}

// collect reads and validates every scene of src. Any invalid scene aborts
// the import.
func collect(ctx context.Context, src data.DirSource) ([]persist.SceneRow, error) {
	names, err := src.List()
	if err != nil {
		return nil, err
	}
	rows := make([]persist.SceneRow, 0, len(names))
	for _, name := range names {
		body, err := src.Fetch(ctx, name)
		if err != nil {
			return nil, err
		}
		doc, err := data.Decode(name, body)
		if err != nil {
			return nil, err
		}
		if _, err := data.ParseObjects(name, doc); err != nil {
			return nil, err
		}
		rows = append(rows, persist.SceneRow{Name: name, Body: body})
	}
	return rows, nil
}
