package domain

// UnavailableMessage is shown when neither the remote source nor the
// fallback cache can provide a suggestion.
const UnavailableMessage = "Could not fetch activities. Check your connection."

type SuggestionSource string

const (
	SourceSaved       SuggestionSource = "saved"
	SourceRemote      SuggestionSource = "remote"
	SourceCache       SuggestionSource = "cache"
	SourceUnavailable SuggestionSource = "unavailable"
)

type SuggestionResult struct {
	Day    CalendarDay
	Text   string
	Source SuggestionSource
}

func (r SuggestionResult) Available() bool {
	return r.Source != SourceUnavailable && r.Text != ""
}

// Degraded reports whether the suggestion came from the fallback cache.
func (r SuggestionResult) Degraded() bool {
	return r.Source == SourceCache
}

func UnavailableSuggestion(day CalendarDay) SuggestionResult {
	return SuggestionResult{Day: day, Text: UnavailableMessage, Source: SourceUnavailable}
}
