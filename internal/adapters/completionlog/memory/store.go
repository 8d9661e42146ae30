package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/bnema/daily-activity-cli/internal/adapters/completionlog/watch"
	"github.com/bnema/daily-activity-cli/internal/domain"
	"github.com/bnema/daily-activity-cli/internal/ports"
	"github.com/google/uuid"
)

// Store is an in-memory completion log. It is NOT persistent and only
// suitable for ephemeral runs and tests.
type Store struct {
	mu      sync.RWMutex
	entries []domain.CompletedActivity
	hub     *watch.Hub
}

var _ ports.CompletionLog = (*Store)(nil)

func NewStore() *Store {
	return &Store{hub: watch.NewHub()}
}

func (s *Store) Insert(ctx context.Context, description string, at time.Time) (domain.CompletedActivity, error) {
	if err := ctx.Err(); err != nil {
		return domain.CompletedActivity{}, err
	}
	if description == "" {
		return domain.CompletedActivity{}, domain.ErrEmptyDescription
	}

	activity := domain.CompletedActivity{
		ID:          domain.CompletedActivityID(uuid.NewString()),
		Description: description,
		Timestamp:   at.Round(0),
	}

	s.mu.Lock()
	s.entries = append(s.entries, activity)
	s.mu.Unlock()

	s.hub.Notify()
	return activity, nil
}

// List returns entries newest first. Entries with equal timestamps keep
// reverse insertion order.
func (s *Store) List(ctx context.Context) ([]domain.CompletedActivity, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]domain.CompletedActivity, 0, len(s.entries))
	for i := len(s.entries) - 1; i >= 0; i-- {
		out = append(out, s.entries[i])
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Timestamp.After(out[j].Timestamp)
	})

	return out, nil
}

func (s *Store) CountOnDay(ctx context.Context, day domain.CalendarDay) (int, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}

	start, end, err := day.Bounds(time.Local)
	if err != nil {
		return 0, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	count := 0
	for _, entry := range s.entries {
		if !entry.Timestamp.Before(start) && entry.Timestamp.Before(end) {
			count++
		}
	}

	return count, nil
}

func (s *Store) Watch(ctx context.Context) (<-chan []domain.CompletedActivity, error) {
	return watch.Stream(ctx, s.hub, s.List, watch.StreamOptions{})
}
