package retry

import (
	"context"
	"log/slog"
	"time"

	"github.com/bnema/daily-activity-cli/internal/domain"
	"github.com/bnema/daily-activity-cli/internal/observability"
	"github.com/bnema/daily-activity-cli/internal/ports"
	backoff "github.com/cenkalti/backoff/v4"
)

const (
	defaultInitialInterval = 100 * time.Millisecond
	defaultMaxElapsed      = 3 * time.Second
)

type Options struct {
	// MaxElapsed bounds the total time spent retrying. Zero means the
	// default; a negative value disables retries.
	MaxElapsed time.Duration
	// Permanent classifies errors that must not be retried.
	Permanent func(error) bool
	// Backoff overrides the policy built from MaxElapsed.
	Backoff func() backoff.BackOff
	Logger  *slog.Logger
}

// Source retries transient ListCandidates failures with exponential backoff.
type Source struct {
	delegate     ports.RemoteSource
	buildBackoff func() backoff.BackOff
	permanent    func(error) bool
	logger       *slog.Logger
}

var _ ports.RemoteSource = (*Source)(nil)

func NewSource(delegate ports.RemoteSource, opts Options) *Source {
	factory := opts.Backoff
	if factory == nil {
		maxElapsed := opts.MaxElapsed
		if maxElapsed == 0 {
			maxElapsed = defaultMaxElapsed
		}
		factory = func() backoff.BackOff {
			if maxElapsed < 0 {
				return &backoff.StopBackOff{}
			}
			b := backoff.NewExponentialBackOff()
			b.InitialInterval = defaultInitialInterval
			b.MaxElapsedTime = maxElapsed
			return b
		}
	}

	permanent := opts.Permanent
	if permanent == nil {
		permanent = func(error) bool { return false }
	}

	return &Source{
		delegate:     delegate,
		buildBackoff: factory,
		permanent:    permanent,
		logger:       observability.Component(opts.Logger, "remote-retry"),
	}
}

func (s *Source) ListCandidates(ctx context.Context) ([]domain.ProposedActivity, error) {
	var candidates []domain.ProposedActivity
	attempt := 0

	operation := func() error {
		attempt++
		result, err := s.delegate.ListCandidates(ctx)
		if err != nil {
			if s.permanent(err) {
				return backoff.Permanent(err)
			}
			return err
		}
		candidates = result
		return nil
	}

	notify := func(err error, wait time.Duration) {
		s.logger.Debug("remote fetch failed, retrying", "attempt", attempt, "wait", wait, "error", err)
	}

	b := backoff.WithContext(s.buildBackoff(), ctx)
	if err := backoff.RetryNotify(operation, b, notify); err != nil {
		return nil, err
	}

	return candidates, nil
}
