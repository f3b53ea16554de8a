package session

import (
	"context"
	"database/sql"
	"embed"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/pressly/goose/v3"
	_ "modernc.org/sqlite"
)

//go:embed migrations/sqlite/*.sql
var sqliteMigrations embed.FS

// goose keeps its base FS and dialect in package globals.
var gooseMu sync.Mutex

type SQLiteRepo struct {
	db      *sql.DB
	timeout time.Duration
}

// OpenSQLite creates or opens the session database at path and migrates it.
func OpenSQLite(path string, timeout time.Duration) (*SQLiteRepo, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("creating database directory: %w", err)
	}
	db, err := sql.Open("sqlite", path+"?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}
	return newSQLiteRepo(db, timeout)
}

// OpenSQLiteMemory is used by tests and the memory-backed dev mode.
func OpenSQLiteMemory(timeout time.Duration) (*SQLiteRepo, error) {
	db, err := sql.Open("sqlite", ":memory:")
	if err != nil {
		return nil, fmt.Errorf("opening in-memory database: %w", err)
	}
	// Every connection would get its own empty memory database.
	db.SetMaxOpenConns(1)
	return newSQLiteRepo(db, timeout)
}

func newSQLiteRepo(db *sql.DB, timeout time.Duration) (*SQLiteRepo, error) {
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("pinging database: %w", err)
	}
	if err := migrateSQLite(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("running migrations: %w", err)
	}
	return &SQLiteRepo{db: db, timeout: timeout}, nil
}

func migrateSQLite(db *sql.DB) error {
	gooseMu.Lock()
	defer gooseMu.Unlock()

	goose.SetBaseFS(sqliteMigrations)
	defer goose.SetBaseFS(nil)
	if err := goose.SetDialect("sqlite3"); err != nil {
		return err
	}
	return goose.Up(db, "migrations/sqlite")
}

func (r *SQLiteRepo) Close() error { return r.db.Close() }

func (r *SQLiteRepo) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, r.timeout)
}

func (r *SQLiteRepo) Get(ctx context.Context, clientID, key string) (string, error) {
	const query = `SELECT value FROM client_sessions WHERE client_id = ? AND key = ?`
	timeoutCtx, cancel := r.withTimeout(ctx)
	defer cancel()
	var value string
	err := r.db.QueryRowContext(timeoutCtx, query, clientID, key).Scan(&value)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", ErrNotFound
		}
		return "", err
	}
	return value, nil
}

func (r *SQLiteRepo) Set(ctx context.Context, clientID, key, value string) error {
	const query = `
	INSERT INTO client_sessions (client_id, key, value, updated_at)
	VALUES (?, ?, ?, datetime('now'))
	ON CONFLICT (client_id, key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at
	`
	timeoutCtx, cancel := r.withTimeout(ctx)
	defer cancel()
	_, err := r.db.ExecContext(timeoutCtx, query, clientID, key, value)
	return err
}

func (r *SQLiteRepo) Delete(ctx context.Context, clientID string, keys ...string) error {
	if len(keys) == 0 {
		return nil
	}
	placeholders := strings.TrimSuffix(strings.Repeat("?,", len(keys)), ",")
	query := `DELETE FROM client_sessions WHERE client_id = ? AND key IN (` + placeholders + `)`
	args := make([]any, 0, len(keys)+1)
	args = append(args, clientID)
	for _, k := range keys {
		args = append(args, k)
	}
	timeoutCtx, cancel := r.withTimeout(ctx)
	defer cancel()
	_, err := r.db.ExecContext(timeoutCtx, query, args...)
	return err
}

// CleanupIdle drops sessions of clients not seen since the cutoff.
func (r *SQLiteRepo) CleanupIdle(ctx context.Context, before time.Time) (int64, error) {
	const query = `DELETE FROM client_sessions WHERE updated_at < ?`
	timeoutCtx, cancel := r.withTimeout(ctx)
	defer cancel()
	result, err := r.db.ExecContext(timeoutCtx, query, before.UTC().Format("2006-01-02 15:04:05"))
	if err != nil {
		return 0, err
	}
	return result.RowsAffected()
}

func (r *SQLiteRepo) Ping(ctx context.Context) error { return r.db.PingContext(ctx) }
