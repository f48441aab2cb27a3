// Package journal keeps an append-only log of loan events in Postgres so the
// lending history survives restarts of the in-memory catalog.
package journal

import (
	"context"
	"errors"
	"time"

	"libraryapi/internal/lending"
)

//go:generate mockgen -source=journal.go -destination=mock_repository.go -package=journal

// ErrDisabled is returned by reads when the server runs without a database.
var ErrDisabled = errors.New("loan journal disabled")

type Kind string

const (
	KindLent       Kind = "LENT"
	KindQueued     Kind = "QUEUED"
	KindHandedOver Kind = "HANDED_OVER"
	KindReturned   Kind = "RETURNED"
)

// KindOf maps a lending outcome to its event kind.
func KindOf(o lending.Outcome) Kind {
	switch o {
	case lending.OutcomeLent:
		return KindLent
	case lending.OutcomeQueued:
		return KindQueued
	case lending.OutcomeHandedOver:
		return KindHandedOver
	default:
		return KindReturned
	}
}

// Event is one lending transition. Document is the requester for LENT and
// QUEUED, the new holder for HANDED_OVER and empty for RETURNED.
type Event struct {
	ID         string    `json:"id"`
	Kind       Kind      `json:"kind"`
	BookID     int       `json:"book_id"`
	Title      string    `json:"title"`
	Document   string    `json:"document,omitempty"`
	OccurredAt time.Time `json:"occurred_at"`
}

type Repository interface {
	Append(ctx context.Context, e Event) error
	ListRecent(ctx context.Context, limit int) ([]Event, error)
}
