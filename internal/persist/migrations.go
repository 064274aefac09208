package persist

import (
	"context"
	"embed"
	"fmt"

	"github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"
	"go.uber.org/zap"
)

//go:embed migrations/*.sql
var migrations embed.FS

// Migrate brings the scenes schema up to date and logs the schema version
// together with the number of stored scenes.
func (db *DB) Migrate(ctx context.Context) error {
	goose.SetLogger(gooseLogger{db.log.Sugar()})
	goose.SetBaseFS(migrations)
	if err := goose.SetDialect("postgres"); err != nil {
		return fmt.Errorf("set dialect: %w", err)
	}

	sqlDB := stdlib.OpenDBFromPool(db.Pool)
	defer sqlDB.Close()

	if err := goose.UpContext(ctx, sqlDB, "migrations"); err != nil {
		return fmt.Errorf("migrate scenes schema: %w", err)
	}
	version, err := goose.GetDBVersionContext(ctx, sqlDB)
	if err != nil {
		return fmt.Errorf("read scenes schema version: %w", err)
	}

	var stored int
	if err := db.Pool.QueryRow(ctx, `SELECT count(*) FROM scenes`).Scan(&stored); err != nil {
		return fmt.Errorf("count scenes: %w", err)
	}
	db.log.Info("scene store ready", zap.Int64("schema", version), zap.Int("scenes", stored))
	return nil
}

// gooseLogger routes goose output to the store's logger at debug level.
type gooseLogger struct {
	s *zap.SugaredLogger
}

func (l gooseLogger) Printf(format string, v ...any) { l.s.Debugf(format, v...) }
func (l gooseLogger) Fatalf(format string, v ...any) { l.s.Errorf(format, v...) }
