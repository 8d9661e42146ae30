package application

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"sync"

	"github.com/bnema/daily-activity-cli/internal/domain"
	"github.com/bnema/daily-activity-cli/internal/observability"
	"github.com/bnema/daily-activity-cli/internal/ports"
)

var ErrRecorderClosed = errors.New("completion recorder closed")

type confirmRequest struct {
	ctx         context.Context
	description string
	reply       chan confirmReply
}

type confirmReply struct {
	activity domain.CompletedActivity
	err      error
}

// CompletionRecorder appends confirmed activities to the completion log.
// Writes run on a single worker goroutine so they never block the caller's
// event loop and never interleave.
type CompletionRecorder struct {
	log     ports.CompletionLog
	clock   ports.Clock
	metrics *Metrics
	logger  *slog.Logger

	requests chan confirmRequest
	done     chan struct{}

	closeOnce sync.Once
	closeMu   sync.RWMutex
	closed    bool
}

func NewCompletionRecorder(log ports.CompletionLog, clock ports.Clock, metrics *Metrics, logger *slog.Logger) *CompletionRecorder {
	if clock == nil {
		clock = ports.SystemClock{}
	}

	r := &CompletionRecorder{
		log:      log,
		clock:    clock,
		metrics:  metrics,
		logger:   observability.Component(logger, "recorder"),
		requests: make(chan confirmRequest),
		done:     make(chan struct{}),
	}
	go r.work()
	return r
}

// Confirm records description as completed now. Confirming the same text
// twice records two entries.
func (r *CompletionRecorder) Confirm(ctx context.Context, description string) (domain.CompletedActivity, error) {
	if strings.TrimSpace(description) == "" {
		return domain.CompletedActivity{}, domain.ErrEmptyDescription
	}

	r.closeMu.RLock()
	if r.closed {
		r.closeMu.RUnlock()
		return domain.CompletedActivity{}, ErrRecorderClosed
	}

	req := confirmRequest{ctx: ctx, description: description, reply: make(chan confirmReply, 1)}
	select {
	case r.requests <- req:
		r.closeMu.RUnlock()
	case <-ctx.Done():
		r.closeMu.RUnlock()
		return domain.CompletedActivity{}, ctx.Err()
	}

	select {
	case reply := <-req.reply:
		return reply.activity, reply.err
	case <-ctx.Done():
		return domain.CompletedActivity{}, ctx.Err()
	}
}

// ConfirmSuggestion records the suggestion when it is available.
func (r *CompletionRecorder) ConfirmSuggestion(ctx context.Context, suggestion domain.SuggestionResult) (domain.CompletedActivity, error) {
	if !suggestion.Available() {
		return domain.CompletedActivity{}, domain.ErrNoSuggestion
	}
	return r.Confirm(ctx, suggestion.Text)
}

// Close stops accepting requests and waits for the in-flight write.
func (r *CompletionRecorder) Close() {
	r.closeOnce.Do(func() {
		r.closeMu.Lock()
		r.closed = true
		close(r.requests)
		r.closeMu.Unlock()
	})
	<-r.done
}

func (r *CompletionRecorder) work() {
	defer close(r.done)

	for req := range r.requests {
		if err := req.ctx.Err(); err != nil {
			req.reply <- confirmReply{err: err}
			continue
		}

		at := r.clock.Now()
		activity, err := r.log.Insert(req.ctx, req.description, at)
		if err != nil {
			r.logger.Error("record completion failed", "error", err)
			req.reply <- confirmReply{err: storageError("insert completion", err)}
			continue
		}

		r.metrics.IncCompletions()
		r.logger.Info("completion recorded", "id", activity.ID, "description", activity.Description, "at", at)
		req.reply <- confirmReply{activity: activity}
	}
}
