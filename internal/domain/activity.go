package domain

import "time"

type CompletedActivityID string

// ProposedActivity is one candidate suggestion offered by the remote source.
type ProposedActivity struct {
	Text string `json:"atividade"`
}

type DailySelection struct {
	Day  CalendarDay
	Text string
}

func (s DailySelection) IsFor(day CalendarDay) bool {
	return s.Day == day && s.Text != ""
}

// CompletedActivity is an immutable entry of the completion log.
type CompletedActivity struct {
	ID          CompletedActivityID
	Description string
	Timestamp   time.Time
}
