package application

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/bnema/daily-activity-cli/internal/domain"
	"github.com/bnema/daily-activity-cli/internal/ports/mocks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildDashboard(t *testing.T) {
	remote := mocks.NewMockRemoteSource(t)
	log := mocks.NewMockCompletionLog(t)
	store := newMapStore()
	store.values[KeyDailySelectionDay] = "2024-05-10"
	store.values[KeyDailySelectionTxt] = "Stretch"
	clock := newFixedClock(localTime(2024, time.May, 10, 9, 0))
	resolver := NewActivityResolver(remote, store, clock, ResolverOptions{})

	history := completionsOnDays(localTime(2024, time.May, 10, 8, 0), 7, 1)
	log.EXPECT().List(mockAnyContext()).Return(history, nil)
	log.EXPECT().CountOnDay(mockAnyContext(), domain.CalendarDay("2024-05-10")).Return(1, nil)

	dashboard, err := BuildDashboard(context.Background(), resolver, log, clock, 3)
	require.NoError(t, err)

	assert.Equal(t, domain.CalendarDay("2024-05-10"), dashboard.Day)
	assert.Equal(t, "Stretch", dashboard.Suggestion.Text)
	assert.Equal(t, domain.TierGold, dashboard.Tier)
	assert.Equal(t, 7, dashboard.Completions)
	assert.Equal(t, 7, dashboard.DistinctDays)
	assert.Equal(t, 7, dashboard.Streak)
	assert.Equal(t, 1, dashboard.CompletedToday)
	assert.Len(t, dashboard.Recent, 3)
}

func TestBuildDashboardWrapsLogFailure(t *testing.T) {
	remote := mocks.NewMockRemoteSource(t)
	log := mocks.NewMockCompletionLog(t)
	store := newMapStore()
	store.values[KeyDailySelectionDay] = "2024-05-10"
	store.values[KeyDailySelectionTxt] = "Stretch"
	clock := newFixedClock(localTime(2024, time.May, 10, 9, 0))
	resolver := NewActivityResolver(remote, store, clock, ResolverOptions{})

	log.EXPECT().List(mockAnyContext()).Return(nil, errors.New("database is locked"))

	_, err := BuildDashboard(context.Background(), resolver, log, clock, 0)
	assert.ErrorIs(t, err, domain.ErrStorage)
}

func TestSummarizeTier(t *testing.T) {
	history := completionsOnDays(localTime(2024, time.May, 10, 8, 0), 2, 2)

	summary := SummarizeTier(history)
	assert.Equal(t, TierSummary{Tier: domain.TierSilver, Completions: 4, DistinctDays: 2, Streak: 2}, summary)
}
