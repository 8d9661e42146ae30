package application

import (
	"errors"

	"github.com/bnema/daily-activity-cli/internal/domain"
	"github.com/prometheus/client_golang/prometheus"
)

const metricsNamespace = "daily_activity"

// Metrics holds the Prometheus collectors for the engagement engine. A nil
// *Metrics is valid and records nothing.
type Metrics struct {
	resolutions *prometheus.CounterVec
	decisions   *prometheus.CounterVec
	completions prometheus.Counter
	tier        prometheus.Gauge
}

// MustNewMetrics registers the collectors with reg and panics on conflicting
// registrations. Collectors that are already registered are reused.
func MustNewMetrics(reg prometheus.Registerer) *Metrics {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}

	m := &Metrics{
		resolutions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Name:      "resolutions_total",
			Help:      "Daily suggestion resolutions by the source that answered.",
		}, []string{"source"}),
		decisions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Name:      "reminder_decisions_total",
			Help:      "Scheduled reminder ticks by decision.",
		}, []string{"decision"}),
		completions: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Name:      "completions_total",
			Help:      "Completions recorded by this process.",
		}),
		tier: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: metricsNamespace,
			Name:      "engagement_tier",
			Help:      "Current engagement tier (0=Bronze, 3=Platinum).",
		}),
	}

	m.resolutions = register(reg, m.resolutions)
	m.decisions = register(reg, m.decisions)
	m.completions = register(reg, m.completions)
	m.tier = register(reg, m.tier)

	return m
}

func register[T prometheus.Collector](reg prometheus.Registerer, collector T) T {
	if err := reg.Register(collector); err != nil {
		var already prometheus.AlreadyRegisteredError
		if errors.As(err, &already) {
			if existing, ok := already.ExistingCollector.(T); ok {
				return existing
			}
		}
		panic(err)
	}
	return collector
}

func (m *Metrics) ObserveResolution(source domain.SuggestionSource) {
	if m == nil {
		return
	}
	m.resolutions.WithLabelValues(string(source)).Inc()
}

func (m *Metrics) ObserveDecision(decision domain.ReminderDecision) {
	if m == nil {
		return
	}
	m.decisions.WithLabelValues(string(decision)).Inc()
}

func (m *Metrics) IncCompletions() {
	if m == nil {
		return
	}
	m.completions.Inc()
}

func (m *Metrics) SetTier(tier domain.EngagementTier) {
	if m == nil {
		return
	}
	m.tier.Set(float64(tier))
}
