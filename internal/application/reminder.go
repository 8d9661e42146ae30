package application

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/bnema/daily-activity-cli/internal/domain"
	"github.com/bnema/daily-activity-cli/internal/observability"
	"github.com/bnema/daily-activity-cli/internal/ports"
)

const reminderSentKeyPrefix = "reminder_sent_"

type ReminderOptions struct {
	Window domain.NotificationWindow
	// Dedupe records each sent reminder so a second tick inside the same
	// sub-window stays silent.
	Dedupe  bool
	Metrics *Metrics
	Logger  *slog.Logger
}

type TickResult struct {
	At       time.Time
	Hour     int
	Decision domain.ReminderDecision
}

// ReminderEngine decides on every scheduled tick whether to nudge the user.
// It never fails: every outcome is reported as a decision.
type ReminderEngine struct {
	log      ports.CompletionLog
	gate     ports.PermissionGate
	notifier ports.Notifier
	marks    ports.KeyValueStore
	clock    ports.Clock
	window   domain.NotificationWindow
	dedupe   bool
	metrics  *Metrics
	logger   *slog.Logger
}

// NewReminderEngine wires the engine. marks may be nil when Dedupe is off.
func NewReminderEngine(log ports.CompletionLog, gate ports.PermissionGate, notifier ports.Notifier, marks ports.KeyValueStore, clock ports.Clock, opts ReminderOptions) *ReminderEngine {
	if clock == nil {
		clock = ports.SystemClock{}
	}

	window := opts.Window
	if len(window.TargetHours) == 0 {
		window = domain.DefaultNotificationWindow()
	}

	return &ReminderEngine{
		log:      log,
		gate:     gate,
		notifier: notifier,
		marks:    marks,
		clock:    clock,
		window:   window,
		dedupe:   opts.Dedupe && marks != nil,
		metrics:  opts.Metrics,
		logger:   observability.Component(opts.Logger, "reminder"),
	}
}

func (e *ReminderEngine) OnScheduledTick(ctx context.Context) TickResult {
	now := e.clock.Now()
	result := e.decide(ctx, now)
	e.metrics.ObserveDecision(result.Decision)
	e.logger.Info("reminder tick", "at", now.Format(time.RFC3339), "decision", result.Decision)
	return result
}

func (e *ReminderEngine) decide(ctx context.Context, now time.Time) TickResult {
	result := TickResult{At: now}

	hour, ok := e.window.Match(now)
	if !ok {
		result.Decision = domain.DecisionOutsideWindow
		return result
	}
	result.Hour = hour

	day := domain.DayOf(now)
	count, err := e.log.CountOnDay(ctx, day)
	if err != nil {
		e.logger.Error("count completions failed", "day", day, "error", err)
		result.Decision = domain.DecisionLogUnavailable
		return result
	}
	if count > 0 {
		result.Decision = domain.DecisionAlreadyDone
		return result
	}

	markKey := reminderMarkKey(hour)
	if e.dedupe && e.alreadyNotified(ctx, markKey, day) {
		result.Decision = domain.DecisionAlreadyNotified
		return result
	}

	permitted, err := e.gate.NotificationsPermitted(ctx)
	if err != nil {
		e.logger.Warn("notification permission check failed", "error", err)
	}
	if err != nil || !permitted {
		result.Decision = domain.DecisionPermissionDenied
		return result
	}

	if err := e.notifier.Notify(ctx, domain.ReminderTitle, domain.ReminderBody); err != nil {
		e.logger.Warn("reminder notification failed", "error", err)
		result.Decision = domain.DecisionNotifyFailed
		return result
	}

	if e.dedupe {
		if err := e.marks.Put(ctx, markKey, day.String()); err != nil {
			e.logger.Warn("record reminder mark failed", "key", markKey, "error", err)
		}
	}

	result.Decision = domain.DecisionNotified
	return result
}

// alreadyNotified reports whether the mark for this sub-window holds day.
// An unreadable mark counts as absent.
func (e *ReminderEngine) alreadyNotified(ctx context.Context, key string, day domain.CalendarDay) bool {
	value, err := e.marks.Get(ctx, key)
	if err == nil {
		return value == day.String()
	}
	if !errors.Is(err, domain.ErrKeyNotFound) {
		e.logger.Warn("read reminder mark failed", "key", key, "error", err)
	}
	return false
}

// reminderMarkKey names one slot per target hour. Each slot stores the day
// it last fired, so a new day overwrites the previous mark and the store
// never holds more than one key per target hour.
func reminderMarkKey(hour int) string {
	return fmt.Sprintf("%s%02d", reminderSentKeyPrefix, hour)
}
