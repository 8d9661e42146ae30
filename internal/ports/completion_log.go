package ports

import (
	"context"
	"time"

	"github.com/bnema/daily-activity-cli/internal/domain"
)

type CompletionLog interface {
	Insert(ctx context.Context, description string, at time.Time) (domain.CompletedActivity, error)
	// List returns the full history, newest first.
	List(ctx context.Context) ([]domain.CompletedActivity, error)
	CountOnDay(ctx context.Context, day domain.CalendarDay) (int, error)
	// Watch emits the current history immediately and again after every
	// insert. The channel is closed when ctx is done.
	Watch(ctx context.Context) (<-chan []domain.CompletedActivity, error)
}
