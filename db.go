package feed

import (
	"context"
	"database/sql"
	"io/fs"

	goerrors "github.com/goliatone/go-errors"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/sqlitedialect"
	"github.com/uptrace/bun/driver/sqliteshim"
	"github.com/uptrace/bun/migrate"
)

// InMemoryDSN is the default store location: a process-private SQLite
// database that vanishes when the session's DB handle closes.
const InMemoryDSN = "file::memory:?cache=shared"

// OpenDB opens the backing database. An empty dsn selects the in-memory
// default. The pool is pinned to a single connection so the shared in-memory
// database stays alive and read-modify-write transactions serialize.
func OpenDB(dsn string) (*bun.DB, error) {
	if dsn == "" {
		dsn = InMemoryDSN
	}

	sqldb, err := sql.Open(sqliteshim.ShimName, dsn)
	if err != nil {
		return nil, goerrors.Wrap(err, goerrors.CategoryInternal, "failed to open database")
	}

	sqldb.SetMaxOpenConns(1)

	return bun.NewDB(sqldb, sqlitedialect.New()), nil
}

// Setup applies the embedded schema migrations.
func Setup(ctx context.Context, db *bun.DB) error {
	sub, err := fs.Sub(GetMigrationsFS(), "data/sql/migrations")
	if err != nil {
		return goerrors.Wrap(err, goerrors.CategoryInternal, "failed to load migrations")
	}

	migrations := migrate.NewMigrations()
	if err := migrations.Discover(sub); err != nil {
		return goerrors.Wrap(err, goerrors.CategoryInternal, "failed to discover migrations")
	}

	migrator := migrate.NewMigrator(db, migrations)
	if err := migrator.Init(ctx); err != nil {
		return goerrors.Wrap(err, goerrors.CategoryInternal, "failed to init migrator")
	}

	if _, err := migrator.Migrate(ctx); err != nil {
		return goerrors.Wrap(err, goerrors.CategoryInternal, "failed to run migrations")
	}

	return nil
}

// NewSessionStore opens, migrates, and wraps a database in a
// RepositoryManager. This is the one-call session entry point: construct at
// session start, close the returned DB at session end.
func NewSessionStore(ctx context.Context, dsn string) (RepositoryManager, *bun.DB, error) {
	db, err := OpenDB(dsn)
	if err != nil {
		return nil, nil, err
	}

	if err := Setup(ctx, db); err != nil {
		db.Close()
		return nil, nil, err
	}

	repo := NewRepositoryManager(db)
	repo.MustValidate()

	return repo, db, nil
}
