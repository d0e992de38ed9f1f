package db

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"beryllium.app/bot/core/db/sqlc"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const (
	defaultMaxConns          = 10
	defaultMinConns          = 2
	defaultHealthCheckPeriod = 30 * time.Second
)

// caseTxOptions is used for every case mutation. Read committed is enough
// because each mutation locks its infraction row before reading it.
var caseTxOptions = pgx.TxOptions{IsoLevel: pgx.ReadCommitted}

// DB owns the infraction store's connection pool.
type DB struct {
	pool *pgxpool.Pool
}

type Config struct {
	DSN string

	MaxConns int32
	MinConns int32
}

func poolConfig(cfg Config) (*pgxpool.Config, error) {
	poolCfg, err := pgxpool.ParseConfig(cfg.DSN)
	if err != nil {
		return nil, fmt.Errorf("parsing database config: %w", err)
	}

	poolCfg.MaxConns = defaultMaxConns
	if cfg.MaxConns > 0 {
		poolCfg.MaxConns = cfg.MaxConns
	}
	poolCfg.MinConns = min(int32(defaultMinConns), poolCfg.MaxConns)
	if cfg.MinConns > 0 {
		poolCfg.MinConns = min(cfg.MinConns, poolCfg.MaxConns)
	}
	poolCfg.HealthCheckPeriod = defaultHealthCheckPeriod

	return poolCfg, nil
}

// New connects and fails fast if the database is unreachable at startup.
func New(ctx context.Context, cfg Config) (*DB, error) {
	poolCfg, err := poolConfig(cfg)
	if err != nil {
		return nil, err
	}

	pool, err := pgxpool.NewWithConfig(ctx, poolCfg)
	if err != nil {
		return nil, fmt.Errorf("creating connection pool: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("pinging database: %w", err)
	}

	return &DB{pool: pool}, nil
}

func (db *DB) Close() {
	db.pool.Close()
}

// Ping backs the /health endpoint.
func (db *DB) Ping(ctx context.Context) error {
	return db.pool.Ping(ctx)
}

// Queries returns queries bound to the pool for reads that take no locks.
func (db *DB) Queries() *sqlc.Queries {
	return sqlc.New(db.pool)
}

// WithTx runs fn in one transaction that commits only when fn returns nil.
// Edits of an existing case load the row with GetInfractionForUpdate, so
// concurrent edits of the same case serialize on that row lock until the
// transaction ends.
func (db *DB) WithTx(ctx context.Context, fn func(q *sqlc.Queries) error) error {
	tx, err := db.pool.BeginTx(ctx, caseTxOptions)
	if err != nil {
		return fmt.Errorf("beginning case transaction: %w", err)
	}
	committed := false
	defer func() {
		if committed {
			return
		}
		if err := tx.Rollback(ctx); err != nil && !errors.Is(err, pgx.ErrTxClosed) {
			slog.WarnContext(ctx, "case transaction rollback failed", "error", err)
		}
	}()

	if err := fn(sqlc.New(tx)); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("committing case transaction: %w", err)
	}
	committed = true
	return nil
}
