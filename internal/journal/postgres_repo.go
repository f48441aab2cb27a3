package journal

import (
	"context"
	"time"

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

func (r *PostgresRepo) Append(ctx context.Context, e Event) error {
	const query = `
	INSERT INTO loan_events (id, kind, book_id, title, document, occurred_at)
	VALUES ($1, $2, $3, $4, $5, $6)
	`
	timeoutCtx, cancel := r.withTimeout(ctx)
	defer cancel()
	_, err := r.db.Exec(timeoutCtx, query, e.ID, string(e.Kind), e.BookID, e.Title, e.Document, e.OccurredAt)
	return err
}

func (r *PostgresRepo) ListRecent(ctx context.Context, limit int) ([]Event, error) {
	const query = `
	SELECT id, kind, book_id, title, document, occurred_at
	FROM loan_events
	ORDER BY occurred_at DESC, id
	LIMIT $1
	`
	timeoutCtx, cancel := r.withTimeout(ctx)
	defer cancel()
	rows, err := r.db.Query(timeoutCtx, query, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []Event{}
	for rows.Next() {
		var e Event
		var kind string
		if err := rows.Scan(&e.ID, &kind, &e.BookID, &e.Title, &e.Document, &e.OccurredAt); err != nil {
			return nil, err
		}
		e.Kind = Kind(kind)
		out = append(out, e)
	}
	return out, rows.Err()
}
