package domain

import (
	"encoding/json"
	"fmt"
	"sort"
)

type EngagementTier int

const (
	TierBronze EngagementTier = iota
	TierSilver
	TierGold
	TierPlatinum
)

const (
	silverMinCompletions   = 3
	goldMinCompletions     = 7
	platinumMinCompletions = 10
	platinumStreakDays     = 10
)

func (t EngagementTier) String() string {
	switch t {
	case TierBronze:
		return "Bronze"
	case TierSilver:
		return "Silver"
	case TierGold:
		return "Gold"
	case TierPlatinum:
		return "Platinum"
	default:
		return fmt.Sprintf("EngagementTier(%d)", int(t))
	}
}

func (t EngagementTier) MarshalJSON() ([]byte, error) {
	return json.Marshal(t.String())
}

// ComputeTier classifies a completion history. Only timestamps matter and the
// order of history is irrelevant. Calendar days are local days.
func ComputeTier(history []CompletedActivity) EngagementTier {
	count := len(history)

	switch {
	case count >= platinumMinCompletions && recentDaysAreConsecutive(history, platinumStreakDays):
		return TierPlatinum
	case count >= goldMinCompletions:
		return TierGold
	case count >= silverMinCompletions:
		return TierSilver
	default:
		return TierBronze
	}
}

// recentDaysAreConsecutive reports whether the n most recent distinct days
// form an unbroken run. Older streaks are never considered.
func recentDaysAreConsecutive(history []CompletedActivity, n int) bool {
	days := DistinctDays(history)
	if len(days) < n {
		return false
	}

	for i := 0; i < n-1; i++ {
		if days[i]-days[i+1] != 1 {
			return false
		}
	}

	return true
}

// RecentStreak counts the consecutive days ending at the most recent day
// with a completion.
func RecentStreak(history []CompletedActivity) int {
	days := DistinctDays(history)
	if len(days) == 0 {
		return 0
	}

	streak := 1
	for i := 1; i < len(days); i++ {
		if days[i-1]-days[i] != 1 {
			break
		}
		streak++
	}
	return streak
}

// NextTierTarget returns the tier after current and what it takes to get
// there: a completion count below Gold, a day streak from Gold to
// Platinum. ok is false at Platinum.
func NextTierTarget(current EngagementTier) (next EngagementTier, target int, byStreak bool, ok bool) {
	switch current {
	case TierBronze:
		return TierSilver, silverMinCompletions, false, true
	case TierSilver:
		return TierGold, goldMinCompletions, false, true
	case TierGold:
		return TierPlatinum, platinumStreakDays, true, true
	default:
		return current, 0, false, false
	}
}

// DistinctDays returns the distinct day numbers of history, newest first.
func DistinctDays(history []CompletedActivity) []int64 {
	seen := make(map[int64]struct{}, len(history))
	days := make([]int64, 0, len(history))
	for _, activity := range history {
		day := DayNumber(activity.Timestamp)
		if _, ok := seen[day]; ok {
			continue
		}
		seen[day] = struct{}{}
		days = append(days, day)
	}

	sort.Slice(days, func(i, j int) bool { return days[i] > days[j] })
	return days
}
