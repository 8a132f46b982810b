package storage

import (
	"bytes"
	"context"
	"database/sql"
	"fmt"
	"sync"

	"github.com/dmitrijs2005/callsecure/internal/client/migrations"
	"github.com/dmitrijs2005/callsecure/internal/client/repositories/kv"
	"github.com/dmitrijs2005/callsecure/internal/common"
	"github.com/dmitrijs2005/callsecure/internal/dbx"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"
	_ "modernc.org/sqlite"
)

const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
	DriverMemory   = "memory"
)

// Storage is an opened key/value backend.
type Storage interface {
	// KV returns the repository outside of any transaction.
	KV() kv.Repository
	// WithTx runs fn against a transactional repository. Writes made through
	// it are committed only if fn returns nil.
	WithTx(ctx context.Context, fn func(ctx context.Context, repo kv.Repository) error) error
	Close() error
}

// gooseUpContext is a seam for testing goose.UpContext.
var gooseUpContext = func(ctx context.Context, db *sql.DB, dir string, opts ...goose.OptionsFunc) error {
	return goose.UpContext(ctx, db, dir, opts...)
}

// RunMigrations applies the embedded migrations using the given goose
// dialect ("sqlite3" or "pgx").
func RunMigrations(ctx context.Context, db *sql.DB, dialect string) error {
	goose.SetBaseFS(migrations.Migrations)
	goose.SetLogger(goose.NopLogger())
	if err := goose.SetDialect(dialect); err != nil {
		return fmt.Errorf("failed to set goose dialect: %w", err)
	}
	if err := gooseUpContext(ctx, db, "."); err != nil {
		return fmt.Errorf("failed to apply migrations: %w", err)
	}
	return nil
}

// Open connects to the backend named by driver. dsn is a file path for
// sqlite, a connection string for postgres and is ignored for memory.
func Open(ctx context.Context, driver, dsn string) (Storage, error) {
	switch driver {
	case DriverMemory:
		return NewMemoryStorage(), nil
	case DriverSQLite:
		return openSQL(ctx, "sqlite", "sqlite3", dsn, func(db dbx.DBTX) kv.Repository {
			return kv.NewSQLiteRepository(db)
		})
	case DriverPostgres:
		return openSQL(ctx, "pgx", "pgx", dsn, func(db dbx.DBTX) kv.Repository {
			return kv.NewPostgresRepository(db)
		})
	default:
		return nil, fmt.Errorf("%w: %q", common.ErrUnsupportedDriver, driver)
	}
}

func openSQL(ctx context.Context, sqlDriver, dialect, dsn string, newRepo func(dbx.DBTX) kv.Repository) (*SQLStorage, error) {
	db, err := sql.Open(sqlDriver, dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s database: %w", sqlDriver, err)
	}

	if err := RunMigrations(ctx, db, dialect); err != nil {
		_ = db.Close()
		return nil, err
	}

	return &SQLStorage{db: db, newRepo: newRepo}, nil
}

// SQLStorage is a Storage over database/sql.
type SQLStorage struct {
	db      *sql.DB
	newRepo func(dbx.DBTX) kv.Repository
}

func (s *SQLStorage) KV() kv.Repository {
	return s.newRepo(s.db)
}

func (s *SQLStorage) WithTx(ctx context.Context, fn func(ctx context.Context, repo kv.Repository) error) error {
	return dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		return fn(ctx, s.newRepo(tx))
	})
}

// DB exposes the underlying handle.
func (s *SQLStorage) DB() *sql.DB {
	return s.db
}

func (s *SQLStorage) Close() error {
	return s.db.Close()
}

// MemoryStorage is a Storage kept in process memory.
type MemoryStorage struct {
	mu   sync.Mutex
	repo *kv.MemoryRepository
}

func NewMemoryStorage() *MemoryStorage {
	return &MemoryStorage{repo: kv.NewMemoryRepository()}
}

func (s *MemoryStorage) KV() kv.Repository {
	return s.repo
}

// WithTx runs fn against a scratch copy of the data. When fn succeeds, the
// keys it changed are applied to the live repository in one step; keys it
// did not touch keep whatever value they have by then. Transactions are
// serialized.
func (s *MemoryStorage) WithTx(ctx context.Context, fn func(ctx context.Context, repo kv.Repository) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	snapshot, err := s.repo.List(ctx)
	if err != nil {
		return err
	}

	scratch := kv.NewMemoryRepository()
	scratch.Apply(snapshot, nil)

	if err := fn(ctx, scratch); err != nil {
		return err
	}

	result, err := scratch.List(ctx)
	if err != nil {
		return err
	}

	set := make(map[string][]byte)
	for k, v := range result {
		if old, ok := snapshot[k]; !ok || !bytes.Equal(old, v) {
			set[k] = v
		}
	}
	var del []string
	for k := range snapshot {
		if _, ok := result[k]; !ok {
			del = append(del, k)
		}
	}

	s.repo.Apply(set, del)
	return nil
}

func (s *MemoryStorage) Close() error {
	return nil
}
