package application

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"math/rand/v2"
	"strings"
	"sync"
	"time"

	"github.com/bnema/daily-activity-cli/internal/domain"
	"github.com/bnema/daily-activity-cli/internal/observability"
	"github.com/bnema/daily-activity-cli/internal/ports"
	"golang.org/x/sync/singleflight"
)

const (
	KeyCachedProposals   = "cached_proposals"
	KeyDailySelectionTxt = "daily_selection_text"
	KeyDailySelectionDay = "daily_selection_date"

	DefaultFetchTimeout = 10 * time.Second
)

type ResolverOptions struct {
	// FetchTimeout bounds a single remote fetch. Zero means DefaultFetchTimeout,
	// a negative value disables the bound.
	FetchTimeout time.Duration
	// Pick returns a uniformly distributed index in [0, n).
	Pick    func(n int) int
	Metrics *Metrics
	Logger  *slog.Logger
}

// ResolveOutcome carries the result of ResolveAsync.
type ResolveOutcome struct {
	Result domain.SuggestionResult
	Err    error
}

// ActivityResolver picks the suggestion of the day. Within one calendar day
// every call returns the same text and only the first contacts the remote
// source.
type ActivityResolver struct {
	remote  ports.RemoteSource
	cache   ports.KeyValueStore
	clock   ports.Clock
	timeout time.Duration
	pick    func(n int) int
	metrics *Metrics
	logger  *slog.Logger

	mu     sync.Mutex
	flight singleflight.Group
}

func NewActivityResolver(remote ports.RemoteSource, cache ports.KeyValueStore, clock ports.Clock, opts ResolverOptions) *ActivityResolver {
	if clock == nil {
		clock = ports.SystemClock{}
	}

	timeout := opts.FetchTimeout
	if timeout == 0 {
		timeout = DefaultFetchTimeout
	}

	pick := opts.Pick
	if pick == nil {
		pick = rand.IntN
	}

	return &ActivityResolver{
		remote:  remote,
		cache:   cache,
		clock:   clock,
		timeout: timeout,
		pick:    pick,
		metrics: opts.Metrics,
		logger:  observability.Component(opts.Logger, "resolver"),
	}
}

// Resolve returns today's suggestion. Remote failures never surface as
// errors: they fall back to the cached candidate list or yield the
// unavailable result. Only local storage failures are returned, wrapping
// domain.ErrStorage, plus ctx.Err() when the caller stops waiting.
func (r *ActivityResolver) Resolve(ctx context.Context) (domain.SuggestionResult, error) {
	day := domain.DayOf(r.clock.Now())

	// The shared flight outlives any single caller.
	flightCtx := context.WithoutCancel(ctx)
	shared := r.flight.DoChan(string(day), func() (any, error) {
		r.mu.Lock()
		defer r.mu.Unlock()

		return r.resolveDay(flightCtx, day)
	})

	var outcome singleflight.Result
	select {
	case <-ctx.Done():
		return domain.SuggestionResult{}, ctx.Err()
	case outcome = <-shared:
	}
	if outcome.Err != nil {
		return domain.SuggestionResult{}, outcome.Err
	}

	result := outcome.Val.(domain.SuggestionResult)
	r.metrics.ObserveResolution(result.Source)
	return result, nil
}

// ResolveAsync runs Resolve in the background. The channel receives exactly
// one outcome.
func (r *ActivityResolver) ResolveAsync(ctx context.Context) <-chan ResolveOutcome {
	out := make(chan ResolveOutcome, 1)
	go func() {
		result, err := r.Resolve(ctx)
		out <- ResolveOutcome{Result: result, Err: err}
	}()
	return out
}

// ClearSelection forgets today's selection so the next Resolve fetches
// again. The cached candidate list is kept.
func (r *ActivityResolver) ClearSelection(ctx context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	err := errors.Join(
		r.cache.Delete(ctx, KeyDailySelectionDay),
		r.cache.Delete(ctx, KeyDailySelectionTxt),
	)
	if err != nil {
		return storageError("delete daily selection", err)
	}

	return nil
}

func (r *ActivityResolver) resolveDay(ctx context.Context, day domain.CalendarDay) (domain.SuggestionResult, error) {
	saved, err := r.loadSelection(ctx)
	if err != nil {
		return domain.SuggestionResult{}, err
	}
	if saved.IsFor(day) {
		r.logger.Debug("daily selection loaded from cache store", "day", day)
		return domain.SuggestionResult{Day: day, Text: saved.Text, Source: domain.SourceSaved}, nil
	}

	candidates, fetchErr := r.fetch(ctx)
	if fetchErr == nil && len(candidates) > 0 {
		if err := r.saveProposals(ctx, candidates); err != nil {
			return domain.SuggestionResult{}, err
		}
		return r.selectFrom(ctx, day, candidates, domain.SourceRemote)
	}

	if fetchErr != nil {
		r.logger.Warn("remote fetch failed, using cached proposals", "day", day, "error", fetchErr)
	} else {
		r.logger.Warn("remote returned no proposals, using cached proposals", "day", day)
	}

	cached, err := r.loadProposals(ctx)
	if err != nil {
		return domain.SuggestionResult{}, err
	}
	if len(cached) == 0 {
		r.logger.Warn("no cached proposals, day left unresolved", "day", day)
		return domain.UnavailableSuggestion(day), nil
	}

	return r.selectFrom(ctx, day, cached, domain.SourceCache)
}

func (r *ActivityResolver) fetch(ctx context.Context) ([]domain.ProposedActivity, error) {
	if r.remote == nil {
		return nil, domain.ErrRemoteUnavailable
	}

	if r.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, r.timeout)
		defer cancel()
	}

	candidates, err := r.remote.ListCandidates(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrRemoteUnavailable, err)
	}

	return normalizeProposals(candidates), nil
}

func (r *ActivityResolver) selectFrom(ctx context.Context, day domain.CalendarDay, candidates []domain.ProposedActivity, source domain.SuggestionSource) (domain.SuggestionResult, error) {
	index := r.pick(len(candidates))
	if index < 0 || index >= len(candidates) {
		return domain.SuggestionResult{}, fmt.Errorf("pick index %d out of range for %d candidates", index, len(candidates))
	}

	selection := domain.DailySelection{Day: day, Text: candidates[index].Text}
	if err := r.saveSelection(ctx, selection); err != nil {
		return domain.SuggestionResult{}, err
	}

	r.logger.Info("daily activity selected", "day", day, "source", source, "text", selection.Text)
	return domain.SuggestionResult{Day: day, Text: selection.Text, Source: source}, nil
}

func (r *ActivityResolver) loadSelection(ctx context.Context) (domain.DailySelection, error) {
	rawDay, err := r.get(ctx, KeyDailySelectionDay)
	if err != nil {
		return domain.DailySelection{}, storageError("load daily selection date", err)
	}
	if rawDay == "" {
		return domain.DailySelection{}, nil
	}

	text, err := r.get(ctx, KeyDailySelectionTxt)
	if err != nil {
		return domain.DailySelection{}, storageError("load daily selection text", err)
	}

	day, err := domain.ParseCalendarDay(rawDay)
	if err != nil {
		r.logger.Warn("ignoring malformed daily selection date", "value", rawDay, "error", err)
		return domain.DailySelection{}, nil
	}

	return domain.DailySelection{Day: day, Text: text}, nil
}

// saveSelection writes the text before the date so a partial write never
// marks a day as resolved without its text.
func (r *ActivityResolver) saveSelection(ctx context.Context, selection domain.DailySelection) error {
	if err := r.cache.Put(ctx, KeyDailySelectionTxt, selection.Text); err != nil {
		return storageError("save daily selection text", err)
	}
	if err := r.cache.Put(ctx, KeyDailySelectionDay, string(selection.Day)); err != nil {
		return storageError("save daily selection date", err)
	}
	return nil
}

func (r *ActivityResolver) saveProposals(ctx context.Context, proposals []domain.ProposedActivity) error {
	encoded, err := json.Marshal(proposals)
	if err != nil {
		return fmt.Errorf("encode cached proposals: %w", err)
	}
	if err := r.cache.Put(ctx, KeyCachedProposals, string(encoded)); err != nil {
		return storageError("save cached proposals", err)
	}
	return nil
}

// loadProposals treats a corrupt cached list like an absent one.
func (r *ActivityResolver) loadProposals(ctx context.Context) ([]domain.ProposedActivity, error) {
	raw, err := r.get(ctx, KeyCachedProposals)
	if err != nil {
		return nil, storageError("load cached proposals", err)
	}
	if strings.TrimSpace(raw) == "" {
		return nil, nil
	}

	var proposals []domain.ProposedActivity
	if err := json.Unmarshal([]byte(raw), &proposals); err != nil {
		r.logger.Warn("cached proposals are corrupt, ignoring them", "error", err)
		return nil, nil
	}

	return normalizeProposals(proposals), nil
}

// get maps a missing key to the empty string.
func (r *ActivityResolver) get(ctx context.Context, key string) (string, error) {
	value, err := r.cache.Get(ctx, key)
	if err != nil {
		if errors.Is(err, domain.ErrKeyNotFound) {
			return "", nil
		}
		return "", err
	}
	return value, nil
}

func normalizeProposals(proposals []domain.ProposedActivity) []domain.ProposedActivity {
	result := make([]domain.ProposedActivity, 0, len(proposals))
	for _, proposal := range proposals {
		text := strings.TrimSpace(proposal.Text)
		if text == "" {
			continue
		}
		result = append(result, domain.ProposedActivity{Text: text})
	}
	return result
}

func storageError(op string, err error) error {
	return fmt.Errorf("%s: %w: %w", op, domain.ErrStorage, err)
}
