package journal

import (
	"context"
	"time"

	"libraryapi/internal/lending"

	"github.com/google/uuid"
)

const (
	DefaultLimit = 50
	MaxLimit     = 500
)

// Service records loan events. A nil *Service records nothing.
type Service struct {
	repo Repository
	now  func() time.Time
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo, now: time.Now}
}

func (s *Service) Enabled() bool {
	return s != nil && s.repo != nil
}

// Record appends an event for a lending outcome.
func (s *Service) Record(ctx context.Context, outcome lending.Outcome, bookID int, title, document string) error {
	if !s.Enabled() {
		return nil
	}
	return s.repo.Append(ctx, Event{
		ID:         uuid.NewString(),
		Kind:       KindOf(outcome),
		BookID:     bookID,
		Title:      title,
		Document:   document,
		OccurredAt: s.now().UTC(),
	})
}

// Recent returns the newest events first. limit is clamped to 1..MaxLimit and
// defaults to DefaultLimit.
func (s *Service) Recent(ctx context.Context, limit int) ([]Event, error) {
	if !s.Enabled() {
		return nil, ErrDisabled
	}
	switch {
	case limit <= 0:
		limit = DefaultLimit
	case limit > MaxLimit:
		limit = MaxLimit
	}
	return s.repo.ListRecent(ctx, limit)
}
