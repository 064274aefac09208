package persist

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"github.com/se2de/engine/internal/config"
)

// applicationName tags engine connections in pg_stat_activity.
const applicationName = "se2de"

// DB is the PostgreSQL scene store: a pgx pool plus the logger its
// migrations and repositories report to.
type DB struct {
	Pool *pgxpool.Pool
	log  *zap.Logger
}

// Open connects to the scene store described by cfg and pings it. The
// schema is not touched; call Migrate before reading scenes.
func Open(ctx context.Context, cfg config.DatabaseConfig, log *zap.Logger) (*DB, error) {
	poolCfg, err := pgxpool.ParseConfig(cfg.DSN)
	if err != nil {
		return nil, fmt.Errorf("parse dsn: %w", err)
	}
	if cfg.MaxOpenConns > 0 {
		poolCfg.MaxConns = int32(cfg.MaxOpenConns)
	}
	poolCfg.MinConns = int32(min(cfg.MaxIdleConns, cfg.MaxOpenConns))
	poolCfg.MaxConnLifetime = cfg.ConnMaxLifetime
	poolCfg.ConnConfig.RuntimeParams["application_name"] = applicationName

	pool, err := pgxpool.NewWithConfig(ctx, poolCfg)
	if err != nil {
		return nil, fmt.Errorf("connect to scene store: %w", err)
	}

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := pool.Ping(pingCtx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping scene store: %w", err)
	}

	log = log.With(zap.String("store", poolCfg.ConnConfig.Host+"/"+poolCfg.ConnConfig.Database))
	log.Debug("scene store connected", zap.Int32("max_conns", poolCfg.MaxConns))
	return &DB{Pool: pool, log: log}, nil
}

func (db *DB) Close() {
	db.Pool.Close()
	db.log.Debug("scene store closed")
}
