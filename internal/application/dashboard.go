package application

import (
	"context"

	"github.com/bnema/daily-activity-cli/internal/domain"
	"github.com/bnema/daily-activity-cli/internal/ports"
)

const defaultRecentLimit = 5

// Dashboard is the read model behind the status view.
type Dashboard struct {
	Day            domain.CalendarDay
	Suggestion     domain.SuggestionResult
	Tier           domain.EngagementTier
	Completions    int
	DistinctDays   int
	Streak         int
	CompletedToday int
	Recent         []domain.CompletedActivity
}

// TierSummary describes the engagement tier of a history.
type TierSummary struct {
	Tier         domain.EngagementTier `json:"tier"`
	Completions  int                   `json:"completions"`
	DistinctDays int                   `json:"distinct_days"`
	Streak       int                   `json:"streak"`
}

func SummarizeTier(history []domain.CompletedActivity) TierSummary {
	return TierSummary{
		Tier:         domain.ComputeTier(history),
		Completions:  len(history),
		DistinctDays: len(domain.DistinctDays(history)),
		Streak:       domain.RecentStreak(history),
	}
}

// BuildDashboard resolves today's suggestion and summarizes the log.
// recentLimit <= 0 means the default of five entries.
func BuildDashboard(ctx context.Context, resolver *ActivityResolver, log ports.CompletionLog, clock ports.Clock, recentLimit int) (Dashboard, error) {
	if clock == nil {
		clock = ports.SystemClock{}
	}
	if recentLimit <= 0 {
		recentLimit = defaultRecentLimit
	}

	suggestion, err := resolver.Resolve(ctx)
	if err != nil {
		return Dashboard{}, err
	}

	history, err := log.List(ctx)
	if err != nil {
		return Dashboard{}, storageError("list completions", err)
	}

	day := domain.DayOf(clock.Now())
	completedToday, err := log.CountOnDay(ctx, day)
	if err != nil {
		return Dashboard{}, storageError("count completions", err)
	}

	summary := SummarizeTier(history)
	recent := history
	if len(recent) > recentLimit {
		recent = recent[:recentLimit]
	}

	return Dashboard{
		Day:            day,
		Suggestion:     suggestion,
		Tier:           summary.Tier,
		Completions:    summary.Completions,
		DistinctDays:   summary.DistinctDays,
		Streak:         summary.Streak,
		CompletedToday: completedToday,
		Recent:         recent,
	}, nil
}
