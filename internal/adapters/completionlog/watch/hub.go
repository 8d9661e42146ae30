// Package watch turns completion log writes into history snapshots for
// subscribers.
package watch

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/bnema/daily-activity-cli/internal/domain"
	"github.com/bnema/daily-activity-cli/internal/observability"
)

// LoadFunc returns the full history, newest first.
type LoadFunc func(ctx context.Context) ([]domain.CompletedActivity, error)

// Hub fans change signals out to subscribers. Signals coalesce: a
// subscriber that has not consumed the previous one receives nothing new.
type Hub struct {
	mu   sync.Mutex
	subs map[int]chan struct{}
	next int
}

func NewHub() *Hub {
	return &Hub{subs: map[int]chan struct{}{}}
}

func (h *Hub) Subscribe() (<-chan struct{}, func()) {
	ch := make(chan struct{}, 1)

	h.mu.Lock()
	id := h.next
	h.next++
	h.subs[id] = ch
	h.mu.Unlock()

	return ch, func() {
		h.mu.Lock()
		delete(h.subs, id)
		h.mu.Unlock()
	}
}

func (h *Hub) Notify() {
	h.mu.Lock()
	defer h.mu.Unlock()

	for _, ch := range h.subs {
		select {
		case ch <- struct{}{}:
		default:
		}
	}
}

type StreamOptions struct {
	// PollInterval reloads the history periodically to pick up writes made
	// by other processes. Zero disables polling.
	PollInterval time.Duration
	Logger       *slog.Logger
}

// Stream emits load's result immediately and again after every hub signal
// or poll that observes a different history. The channel is closed once
// ctx is done.
func Stream(ctx context.Context, hub *Hub, load LoadFunc, opts StreamOptions) (<-chan []domain.CompletedActivity, error) {
	signals, unsubscribe := hub.Subscribe()
	initial, err := load(ctx)
	if err != nil {
		unsubscribe()
		return nil, err
	}

	logger := observability.Component(opts.Logger, "completion-watch")
	out := make(chan []domain.CompletedActivity, 1)
	out <- initial

	go func() {
		defer close(out)
		defer unsubscribe()

		var poll <-chan time.Time
		if opts.PollInterval > 0 {
			ticker := time.NewTicker(opts.PollInterval)
			defer ticker.Stop()
			poll = ticker.C
		}

		last := fingerprintOf(initial)
		for {
			select {
			case <-ctx.Done():
				return
			case <-signals:
			case <-poll:
			}

			history, err := load(ctx)
			if err != nil {
				if ctx.Err() != nil {
					return
				}
				logger.Warn("reload completion history failed", "error", err)
				continue
			}

			current := fingerprintOf(history)
			if current == last {
				continue
			}
			last = current

			select {
			case out <- history:
			case <-ctx.Done():
				return
			}
		}
	}()

	return out, nil
}

type fingerprint struct {
	count  int
	newest domain.CompletedActivityID
}

func fingerprintOf(history []domain.CompletedActivity) fingerprint {
	fp := fingerprint{count: len(history)}
	if len(history) > 0 {
		fp.newest = history[0].ID
	}
	return fp
}
