package store

import (
	"context"
	"database/sql"
	"embed"
	"fmt"
	"time"

	"log/slog"

	_ "github.com/go-sql-driver/mysql"
	"github.com/jekabolt/grbpwr-deals/internal/dependency"
	gerr "github.com/jekabolt/grbpwr-deals/internal/errors"
	"github.com/jmoiron/sqlx"
	migrate "github.com/rubenv/sql-migrate"
)

// Config defines configurations to connect database
type Config struct {
	DSN                string `mapstructure:"dsn"`
	Automigrate        bool   `mapstructure:"automigrate"`
	MaxOpenConnections int    `mapstructure:"max_open_connections"`
	MaxIdleConnections int    `mapstructure:"max_idle_connections"`
}

// DB represents database interface.
type DB interface {
	ExecContext(ctx context.Context, query string, args ...interface{}) (sql.Result, error)
	GetContext(ctx context.Context, dest interface{}, query string, args ...interface{}) error
	QueryRowxContext(ctx context.Context, query string, args ...interface{}) *sqlx.Row
	QueryxContext(ctx context.Context, query string, args ...interface{}) (*sqlx.Rows, error)
	SelectContext(ctx context.Context, dest interface{}, query string, args ...interface{}) error
}

// MYSQLStore implements methods to access MYSQL database
type MYSQLStore struct {
	db    DB
	close context.CancelFunc
}

var _ dependency.Repository = (*MYSQLStore)(nil)

// New connects to the database, applies migrations and returns a new MYSQLStore object.
// The DSN must contain parseTime=true and loc=UTC: month buckets are computed on UTC timestamps.
func New(ctx context.Context, cfg Config) (*MYSQLStore, error) {
	d, err := connect(ctx, cfg)
	if err != nil {
		return nil, err
	}
	if cfg.Automigrate {
		if err := applyMigrations(ctx, d.DB); err != nil {
			d.Close()
			return nil, err
		}
	}
	return newStore(ctx, d), nil
}

func connect(ctx context.Context, cfg Config) (*sqlx.DB, error) {
	d, err := sqlx.Open("mysql", cfg.DSN)
	if err != nil {
		return nil, fmt.Errorf("open mysql: %w", err)
	}
	if cfg.MaxOpenConnections > 0 {
		d.SetMaxOpenConns(cfg.MaxOpenConnections)
	}
	if cfg.MaxIdleConnections > 0 {
		d.SetMaxIdleConns(cfg.MaxIdleConnections)
	}
	d.SetConnMaxLifetime(2 * time.Minute)

	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	if err := d.PingContext(ctx); err != nil {
		d.Close()
		return nil, gerr.Storage("connect mysql", err)
	}
	return d, nil
}

// newStore wraps an open connection pool. The pool is closed when ctx is done or Close is called.
func newStore(ctx context.Context, d *sqlx.DB) *MYSQLStore {
	ctx, c := context.WithCancel(ctx)
	go func() {
		<-ctx.Done()
		d.Close()
	}()
	return &MYSQLStore{db: d, close: c}
}

//go:embed sql
var migrations embed.FS

// applyMigrations runs every pending up migration from the embedded sql dir.
// migrate.Exec takes no context, so ctx only bounds how long New waits for it.
func applyMigrations(ctx context.Context, db *sql.DB) error {
	src := &migrate.EmbedFileSystemMigrationSource{FileSystem: migrations, Root: "sql"}

	ctx, cancel := context.WithTimeout(ctx, 5*time.Minute)
	defer cancel()

	errc := make(chan error, 1)
	go func() {
		n, err := migrate.Exec(db, "mysql", src, migrate.Up)
		if err == nil {
			slog.Default().InfoContext(ctx, "applied migrations", slog.Int("count", n))
		}
		errc <- err
	}()

	select {
	case <-ctx.Done():
		return fmt.Errorf("migrations: %w", ctx.Err())
	case err := <-errc:
		if err != nil {
			return fmt.Errorf("migrations: %w", err)
		}
		return nil
	}
}

func (ms *MYSQLStore) DB() DB {
	return ms.db
}

func (ms *MYSQLStore) Close() {
	ms.close()
}

// Ping checks database connectivity.
func (ms *MYSQLStore) Ping(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var one int
	if err := ms.db.GetContext(ctx, &one, "SELECT 1"); err != nil {
		return gerr.Storage("database ping", err)
	}
	return nil
}
