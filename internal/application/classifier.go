package application

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/bnema/daily-activity-cli/internal/domain"
	"github.com/bnema/daily-activity-cli/internal/observability"
	"github.com/bnema/daily-activity-cli/internal/ports"
)

// EngagementClassifier keeps the engagement tier in step with the completion
// log. Run consumes the log's change feed and republishes the tier to
// subscribers.
type EngagementClassifier struct {
	log     ports.CompletionLog
	metrics *Metrics
	logger  *slog.Logger

	mu          sync.RWMutex
	tier        domain.EngagementTier
	known       bool
	subscribers map[int]chan domain.EngagementTier
	nextID      int
}

func NewEngagementClassifier(log ports.CompletionLog, metrics *Metrics, logger *slog.Logger) *EngagementClassifier {
	return &EngagementClassifier{
		log:         log,
		metrics:     metrics,
		logger:      observability.Component(logger, "classifier"),
		subscribers: map[int]chan domain.EngagementTier{},
	}
}

// TierFromLog reads the whole history once and classifies it.
func (c *EngagementClassifier) TierFromLog(ctx context.Context) (domain.EngagementTier, error) {
	history, err := c.log.List(ctx)
	if err != nil {
		return domain.TierBronze, storageError("list completions", err)
	}
	tier := domain.ComputeTier(history)
	c.publish(tier)
	return tier, nil
}

// Run follows the completion log until ctx is done. It returns nil on
// cancellation.
func (c *EngagementClassifier) Run(ctx context.Context) error {
	updates, err := c.log.Watch(ctx)
	if err != nil {
		return fmt.Errorf("watch completion log: %w", err)
	}

	for {
		select {
		case <-ctx.Done():
			return nil
		case history, ok := <-updates:
			if !ok {
				return nil
			}
			tier := domain.ComputeTier(history)
			c.logger.Debug("engagement tier recomputed", "tier", tier.String(), "completions", len(history))
			c.publish(tier)
		}
	}
}

// CurrentTier returns the last computed tier. ok is false until the first
// history snapshot was classified.
func (c *EngagementClassifier) CurrentTier() (domain.EngagementTier, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.tier, c.known
}

// Subscribe returns a channel receiving tier changes and a func that ends
// the subscription. Slow subscribers only see the latest tier. The current
// tier, when known, is delivered first.
func (c *EngagementClassifier) Subscribe() (<-chan domain.EngagementTier, func()) {
	ch := make(chan domain.EngagementTier, 1)

	c.mu.Lock()
	id := c.nextID
	c.nextID++
	c.subscribers[id] = ch
	if c.known {
		ch <- c.tier
	}
	c.mu.Unlock()

	var once sync.Once
	cancel := func() {
		once.Do(func() {
			c.mu.Lock()
			delete(c.subscribers, id)
			c.mu.Unlock()
			close(ch)
		})
	}

	return ch, cancel
}

func (c *EngagementClassifier) publish(tier domain.EngagementTier) {
	c.mu.Lock()
	defer c.mu.Unlock()

	changed := !c.known || c.tier != tier
	if changed && c.known {
		c.logger.Info("engagement tier changed", "from", c.tier.String(), "to", tier.String())
	}
	c.tier = tier
	c.known = true
	c.metrics.SetTier(tier)

	if !changed {
		return
	}

	for _, ch := range c.subscribers {
		// drop the stale value so the newest one always fits
		select {
		case <-ch:
		default:
		}
		ch <- tier
	}
}
