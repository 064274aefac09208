package persist

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"github.com/se2de/engine/internal/data"
)

// SceneRow is one stored scene document.
type SceneRow struct {
	Name string
	Body []byte
}

// SceneRepo stores scene documents in the scenes table. It is a
// data.Source.
type SceneRepo struct {
	db *DB
}

func NewSceneRepo(db *DB) *SceneRepo {
	return &SceneRepo{db: db}
}

// Fetch returns the document of scene name, or an error wrapping
// data.ErrSceneNotFound.
func (r *SceneRepo) Fetch(ctx context.Context, name string) ([]byte, error) {
	var body string
	err := r.db.Pool.QueryRow(ctx, `SELECT body FROM scenes WHERE name = $1`, name).Scan(&body)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("scene %s: %w", name, data.ErrSceneNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("fetch scene %s: %w", name, err)
	}
	return []byte(body), nil
}

// List returns the stored scene names, sorted.
func (r *SceneRepo) List(ctx context.Context) ([]string, error) {
	rows, err := r.db.Pool.Query(ctx, `SELECT name FROM scenes ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("list scenes: %w", err)
	}
	names, err := pgx.CollectRows(rows, pgx.RowTo[string])
	if err != nil {
		return nil, fmt.Errorf("list scenes: %w", err)
	}
	return names, nil
}

// SaveAll upserts every row in a single transaction: either all scenes are
// stored or none is.
func (r *SceneRepo) SaveAll(ctx context.Context, rows []SceneRow) error {
	tx, err := r.db.Pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("save scenes begin: %w", err)
	}
	defer tx.Rollback(ctx)

	for _, row := range rows {
		if _, err := tx.Exec(ctx,
			`INSERT INTO scenes (name, body) VALUES ($1, $2)
			 ON CONFLICT (name) DO UPDATE SET body = EXCLUDED.body, updated_at = now()`,
			row.Name, string(row.Body),
		); err != nil {
			return fmt.Errorf("save scene %s: %w", row.Name, err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("save scenes commit: %w", err)
	}
	r.db.log.Info("scenes saved", zap.Int("count", len(rows)))
	return nil
}

// Delete removes scene name. Deleting a missing scene is not an error.
func (r *SceneRepo) Delete(ctx context.Context, name string) error {
	if _, err := r.db.Pool.Exec(ctx, `DELETE FROM scenes WHERE name = $1`, name); err != nil {
		return fmt.Errorf("delete scene %s: %w", name, err)
	}
	return nil
}

var _ data.Source = (*SceneRepo)(nil)
