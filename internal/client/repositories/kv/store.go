package kv

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/hitenchhabria09/film-folio-pro/internal/client/migrations"
	"github.com/hitenchhabria09/film-folio-pro/internal/dbx"
	"github.com/hitenchhabria09/film-folio-pro/internal/filex"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"
	_ "modernc.org/sqlite"
)

// SQLStore is a Store over database/sql. The same type serves SQLite and
// PostgreSQL; only the repository constructor differs.
type SQLStore struct {
	Repository
	db      *sql.DB
	newRepo func(db dbx.DBTX) Repository
}

// NewSQLStore wraps an already migrated database.
func NewSQLStore(db *sql.DB, newRepo func(db dbx.DBTX) Repository) *SQLStore {
	return &SQLStore{Repository: newRepo(db), db: db, newRepo: newRepo}
}

// WithinTx runs fn inside a database transaction. fn must use only the
// repository it is given; on SQLite the pool holds a single connection.
func (s *SQLStore) WithinTx(ctx context.Context, fn func(ctx context.Context, repo Repository) error) error {
	return dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		return fn(ctx, s.newRepo(tx))
	})
}

func (s *SQLStore) Close() error {
	return s.db.Close()
}

// gooseUpContext is a seam for testing goose.UpContext.
var gooseUpContext = func(ctx context.Context, db *sql.DB, dir string, opts ...goose.OptionsFunc) error {
	return goose.UpContext(ctx, db, dir, opts...)
}

// RunMigrations applies the embedded migrations for the given goose dialect
// ("sqlite3" or "postgres") from dir.
func RunMigrations(ctx context.Context, db *sql.DB, dialect, dir string) error {
	goose.SetBaseFS(migrations.Migrations)
	goose.SetLogger(goose.NopLogger())
	if err := goose.SetDialect(dialect); err != nil {
		return fmt.Errorf("failed to set goose dialect: %w", err)
	}
	if err := gooseUpContext(ctx, db, dir); err != nil {
		return fmt.Errorf("migrations: %w", err)
	}
	return nil
}

// OpenSQLite opens (creating if needed) a SQLite database at dsn and applies
// migrations.
func OpenSQLite(ctx context.Context, dsn string) (*SQLStore, error) {
	if err := filex.EnsureParentDir(dsn); err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	// one writer; also keeps ":memory:" databases on a single connection
	db.SetMaxOpenConns(1)

	if err := RunMigrations(ctx, db, "sqlite3", migrations.SQLiteDir); err != nil {
		db.Close()
		return nil, err
	}
	return NewSQLStore(db, func(db dbx.DBTX) Repository { return NewSQLiteRepository(db) }), nil
}

// OpenPostgres connects to PostgreSQL through the pgx stdlib driver and
// applies migrations.
func OpenPostgres(ctx context.Context, dsn string) (*SQLStore, error) {
	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return nil, fmt.Errorf("open postgres: %w", err)
	}
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping postgres: %w", err)
	}
	if err := RunMigrations(ctx, db, "postgres", migrations.PostgresDir); err != nil {
		db.Close()
		return nil, err
	}
	return NewSQLStore(db, func(db dbx.DBTX) Repository { return NewPostgresRepository(db) }), nil
}

// RedisKeyPrefix namespaces the keys written by the Redis backend.
const RedisKeyPrefix = "cinemascape:"

// Open returns the Store for driver: "sqlite", "postgres" or "redis".
// dsn is a file path, a PostgreSQL connection string or a redis:// URL.
func Open(ctx context.Context, driver, dsn string) (Store, error) {
	var (
		s   Store
		err error
	)
	switch driver {
	case "sqlite", "":
		s, err = OpenSQLite(ctx, dsn)
	case "postgres":
		s, err = OpenPostgres(ctx, dsn)
	case "redis":
		s, err = OpenRedis(ctx, dsn, RedisKeyPrefix)
	default:
		return nil, fmt.Errorf("unknown storage driver %q", driver)
	}
	if err != nil {
		return nil, err
	}
	return s, nil
}
