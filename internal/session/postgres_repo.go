package session

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PostgresRepo struct {
	db      *pgxpool.Pool
	timeout time.Duration
}

func NewPostgresRepo(db *pgxpool.Pool, timeout time.Duration) *PostgresRepo {
	return &PostgresRepo{db: db, timeout: timeout}
}

func (r *PostgresRepo) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, r.timeout)
}

func (r *PostgresRepo) Get(ctx context.Context, clientID, key string) (string, error) {
	const query = `
	SELECT value
	FROM client_sessions
	WHERE client_id = $1 AND key = $2
	`
	timeoutCtx, cancel := r.withTimeout(ctx)
	defer cancel()
	var value string
	err := r.db.QueryRow(timeoutCtx, query, clientID, key).Scan(&value)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "", ErrNotFound
		}
		return "", err
	}
	return value, nil
}

func (r *PostgresRepo) Set(ctx context.Context, clientID, key, value string) error {
	const query = `
	INSERT INTO client_sessions (client_id, key, value, updated_at)
	VALUES ($1, $2, $3, now())
	ON CONFLICT (client_id, key) DO UPDATE SET value = EXCLUDED.value, updated_at = now()
	`
	timeoutCtx, cancel := r.withTimeout(ctx)
	defer cancel()
	_, err := r.db.Exec(timeoutCtx, query, clientID, key, value)
	return err
}

func (r *PostgresRepo) Delete(ctx context.Context, clientID string, keys ...string) error {
	if len(keys) == 0 {
		return nil
	}
	const query = `DELETE FROM client_sessions WHERE client_id = $1 AND key = ANY($2)`
	timeoutCtx, cancel := r.withTimeout(ctx)
	defer cancel()
	_, err := r.db.Exec(timeoutCtx, query, clientID, keys)
	return err
}

// CleanupIdle drops sessions of clients not seen since the cutoff.
func (r *PostgresRepo) CleanupIdle(ctx context.Context, before time.Time) (int64, error) {
	const query = `DELETE FROM client_sessions WHERE updated_at < $1`
	timeoutCtx, cancel := r.withTimeout(ctx)
	defer cancel()
	result, err := r.db.Exec(timeoutCtx, query, before)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected(), nil
}

func (r *PostgresRepo) Ping(ctx context.Context) error { return r.db.Ping(ctx) }
