package cmd

import (
	"encoding/json"
	"io"
	"time"

	"github.com/bnema/daily-activity-cli/internal/domain"
)

func writeJSON(w io.Writer, value any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(value)
}

type suggestionOutput struct {
	Day       string `json:"day"`
	Text      string `json:"text"`
	Source    string `json:"source"`
	Available bool   `json:"available"`
	Degraded  bool   `json:"degraded"`
}

func newSuggestionOutput(result domain.SuggestionResult) suggestionOutput {
	return suggestionOutput{
		Day:       result.Day.String(),
		Text:      result.Text,
		Source:    string(result.Source),
		Available: result.Available(),
		Degraded:  result.Degraded(),
	}
}

type completionOutput struct {
	ID          string    `json:"id"`
	Description string    `json:"description"`
	CompletedAt time.Time `json:"completed_at"`
}

func newCompletionOutput(activity domain.CompletedActivity) completionOutput {
	return completionOutput{
		ID:          string(activity.ID),
		Description: activity.Description,
		CompletedAt: activity.Timestamp,
	}
}
