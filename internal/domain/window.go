package domain

import (
	"fmt"
	"slices"
	"time"
)

// NotificationWindow lists the local hours at which a reminder may fire and
// how many minutes past each hour the firing sub-window stays open.
type NotificationWindow struct {
	TargetHours []int
	MaxMinute   int
}

func DefaultNotificationWindow() NotificationWindow {
	return NotificationWindow{
		TargetHours: []int{8, 12, 16, 20},
		MaxMinute:   16,
	}
}

// Match returns the target hour whose sub-window contains t.
func (w NotificationWindow) Match(t time.Time) (int, bool) {
	hour, minute := t.Hour(), t.Minute()
	if minute > w.MaxMinute {
		return 0, false
	}
	if !slices.Contains(w.TargetHours, hour) {
		return 0, false
	}
	return hour, true
}

func (w NotificationWindow) Validate() error {
	if len(w.TargetHours) == 0 {
		return fmt.Errorf("notification window has no target hours")
	}
	for _, hour := range w.TargetHours {
		if hour < 0 || hour > 23 {
			return fmt.Errorf("notification target hour %d out of range", hour)
		}
	}
	if w.MaxMinute < 0 || w.MaxMinute > 59 {
		return fmt.Errorf("notification sub-window minute %d out of range", w.MaxMinute)
	}
	return nil
}
