package repository

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"entgo.io/ent/dialect"
	entsql "entgo.io/ent/dialect/sql"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jackc/pgx/v5/stdlib"
	_ "modernc.org/sqlite"

	"github.com/inkform/inkform/gen/ent"
)

type Config struct {
	// DSN is a postgres:// URL or a SQLite file path.
	DSN              string
	MaxConns         int32
	MinConns         int32
	MaxConnLifetime  time.Duration
	MaxConnIdleTime  time.Duration
	DialTimeout      time.Duration
	StatementTimeout time.Duration
}

// DB bundles the ent client with the backend it sits on.
type DB struct {
	Client *ent.Client

	sqldb  *sql.DB
	pool   *pgxpool.Pool // nil for SQLite
	logger *slog.Logger
}

// Open is DSN-driven: postgres URLs open a pgx pool wrapped for Ent,
// anything else is treated as a SQLite file opened through modernc.
func Open(ctx context.Context, cfg Config, logger *slog.Logger) (*DB, error) {
	if logger == nil {
		logger = slog.Default()
	}
	if strings.HasPrefix(cfg.DSN, "postgres://") || strings.HasPrefix(cfg.DSN, "postgresql://") {
		return openPostgres(ctx, cfg, logger)
	}
	return openSQLite(cfg, logger)
}

func openPostgres(ctx context.Context, cfg Config, logger *slog.Logger) (*DB, error) {
	logger.Info("db.connect", "backend", "postgres")
	pc, err := pgxpool.ParseConfig(cfg.DSN)
	if err != nil {
		logger.Error("db.parse_dsn_error", "error", err)
		return nil, err
	}

	pc.MaxConns = cfg.MaxConns
	pc.MinConns = cfg.MinConns
	pc.MaxConnLifetime = cfg.MaxConnLifetime
	pc.MaxConnIdleTime = cfg.MaxConnIdleTime
	pc.ConnConfig.RuntimeParams["application_name"] = "inkform"
	if cfg.StatementTimeout > 0 {
		pc.ConnConfig.RuntimeParams["statement_timeout"] = cfg.StatementTimeout.String()
	}

	if cfg.DialTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, cfg.DialTimeout)
		defer cancel()
	}
	pool, err := pgxpool.NewWithConfig(ctx, pc)
	if err != nil {
		logger.Error("db.connect_error", "error", err)
		return nil, err
	}

	// Wrap pool as *sql.DB for Ent.
	db := stdlib.OpenDBFromPool(pool)
	drv := entsql.OpenDB(dialect.Postgres, db)
	client := ent.NewClient(ent.Driver(drv))

	logger.Info("db.connected", "backend", "postgres")
	return &DB{Client: client, sqldb: db, pool: pool, logger: logger}, nil
}

func openSQLite(cfg Config, logger *slog.Logger) (*DB, error) {
	logger.Info("db.connect", "backend", "sqlite", "path", cfg.DSN)
	if dir := filepath.Dir(cfg.DSN); dir != "" && dir != "." && !strings.HasPrefix(cfg.DSN, ":memory:") {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create db directory: %w", err)
		}
	}

	dsn := cfg.DSN + "?_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)&_pragma=foreign_keys(1)"
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		logger.Error("db.connect_error", "error", err)
		return nil, err
	}
	// modernc sqlite is single-writer; avoid SQLITE_BUSY churn.
	db.SetMaxOpenConns(1)

	drv := entsql.OpenDB(dialect.SQLite, db)
	client := ent.NewClient(ent.Driver(drv))

	logger.Info("db.connected", "backend", "sqlite")
	return &DB{Client: client, sqldb: db, logger: logger}, nil
}

// Init creates the backing table if absent. Failures are logged and
// returned, but callers treat them as non-fatal: a store that cannot
// migrate still answers requests with store-level errors rather than
// preventing startup.
func (d *DB) Init(ctx context.Context) error {
	if err := d.Client.Schema.Create(ctx); err != nil {
		d.logger.Error("db.migrate_error", "error", err)
		return err
	}
	d.logger.Info("db.migrated")
	return nil
}

// Ping verifies connectivity within timeout.
func (d *DB) Ping(ctx context.Context, timeout time.Duration) error {
	if timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}
	if d.pool != nil {
		return d.pool.Ping(ctx)
	}
	return d.sqldb.PingContext(ctx)
}

// Close closes the database connections gracefully.
func (d *DB) Close() {
	d.logger.Info("db.closing")
	if d.Client != nil {
		if err := d.Client.Close(); err != nil {
			d.logger.Error("db.close_error", "error", err)
		}
	}
	if d.pool != nil {
		d.pool.Close()
	}
	d.logger.Info("db.closed")
}
