package cmd

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"

	memorylog "github.com/bnema/daily-activity-cli/internal/adapters/completionlog/memory"
	sqlitelog "github.com/bnema/daily-activity-cli/internal/adapters/completionlog/sqlite"
	lrukv "github.com/bnema/daily-activity-cli/internal/adapters/kv/lru"
	tomlkv "github.com/bnema/daily-activity-cli/internal/adapters/kv/toml"
	chainnotify "github.com/bnema/daily-activity-cli/internal/adapters/notify/chain"
	commandnotify "github.com/bnema/daily-activity-cli/internal/adapters/notify/command"
	terminalnotify "github.com/bnema/daily-activity-cli/internal/adapters/notify/terminal"
	remotehttp "github.com/bnema/daily-activity-cli/internal/adapters/remote/http"
	"github.com/bnema/daily-activity-cli/internal/adapters/remote/retry"
	statusadapter "github.com/bnema/daily-activity-cli/internal/adapters/render/status"
	schedule "github.com/bnema/daily-activity-cli/internal/adapters/schedule/cron"
	"github.com/bnema/daily-activity-cli/internal/application"
	"github.com/bnema/daily-activity-cli/internal/domain"
	"github.com/bnema/daily-activity-cli/internal/observability"
	"github.com/bnema/daily-activity-cli/internal/ports"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/spf13/viper"
)

type app struct {
	cfg            config
	logger         *slog.Logger
	registry       *prometheus.Registry
	metrics        *application.Metrics
	clock          ports.Clock
	cacheFile      *tomlkv.Store
	cache          *lrukv.Store
	resolver       *application.ActivityResolver
	memoryLog      *memorylog.Store
	statusRenderer func(application.Dashboard, statusadapter.RenderOptions) (string, error)
}

// session holds the components that need the completion log. Commands that
// only resolve suggestions never open the database.
type session struct {
	log        ports.CompletionLog
	recorder   *application.CompletionRecorder
	classifier *application.EngagementClassifier
	engine     *application.ReminderEngine
	closeLog   func() error
}

// wireApp builds the composition root. A nil clock means the system clock;
// every component reads time from the same clock.
func wireApp(clock ports.Clock) (*app, error) {
	homeDir, err := resolveHomeDir()
	if err != nil {
		return nil, err
	}

	v := viper.New()
	cfg, err := loadConfig(v, homeDir)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	logger, err := newLogger(cfg)
	if err != nil {
		return nil, fmt.Errorf("wire logger: %w", err)
	}

	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	metrics := application.MustNewMetrics(registry)
	if clock == nil {
		clock = ports.SystemClock{}
	}

	cacheFile, err := tomlkv.NewStore(v, clock)
	if err != nil {
		return nil, fmt.Errorf("wire cache store: %w", err)
	}
	cache, err := lrukv.NewStore(cacheFile, clock, lrukv.Config{})
	if err != nil {
		return nil, fmt.Errorf("wire cache layer: %w", err)
	}

	resolver := application.NewActivityResolver(newRemoteSource(cfg, logger), cache, clock, application.ResolverOptions{
		FetchTimeout: cfg.RemoteTimeout,
		Metrics:      metrics,
		Logger:       logger,
	})

	a := &app{
		cfg:            cfg,
		logger:         logger,
		registry:       registry,
		metrics:        metrics,
		clock:          clock,
		cacheFile:      cacheFile,
		cache:          cache,
		resolver:       resolver,
		statusRenderer: statusadapter.Render,
	}
	if cfg.LogDriver == logDriverMemory {
		a.memoryLog = memorylog.NewStore()
	}

	return a, nil
}

func newLogger(cfg config) (*slog.Logger, error) {
	var output io.Writer
	switch cfg.LoggingOutput {
	case "", "stderr":
		output = os.Stderr
	case "stdout":
		output = os.Stdout
	case "none", "discard":
		output = io.Discard
	default:
		return nil, fmt.Errorf("unsupported logging.output %q", cfg.LoggingOutput)
	}

	return observability.NewLogger(observability.LogConfig{
		Level:  cfg.LoggingLevel,
		Format: cfg.LoggingFormat,
		Output: output,
	})
}

func newRemoteSource(cfg config, logger *slog.Logger) ports.RemoteSource {
	source := &remotehttp.Source{
		URL:            cfg.RemoteURL,
		HTTPClient:     http.DefaultClient,
		RequestTimeout: cfg.RemoteRequestTimeout,
	}

	maxElapsed := cfg.RetryMaxElapsed
	if maxElapsed <= 0 {
		maxElapsed = -1
	}

	return retry.NewSource(source, retry.Options{
		MaxElapsed: maxElapsed,
		Permanent:  remotehttp.IsPermanent,
		Logger:     logger,
	})
}

func (a *app) openCompletionLog(ctx context.Context) (ports.CompletionLog, func() error, error) {
	if a.memoryLog != nil {
		return a.memoryLog, func() error { return nil }, nil
	}

	store, err := sqlitelog.Open(ctx, a.cfg.LogPath, sqlitelog.Options{
		PollInterval: a.cfg.LogPollInterval,
		Logger:       a.logger,
	})
	if err != nil {
		return nil, nil, fmt.Errorf("open completion log: %w", err)
	}
	return store, store.Close, nil
}

// newNotifier returns the configured notifier. Terminal output goes to out.
func (a *app) newNotifier(out io.Writer) (chainnotify.Backend, error) {
	enabled := a.cfg.NotificationsEnabled
	if a.cfg.NotificationsCommand == terminalNotifier {
		return terminalnotify.NewNotifier(out, enabled), nil
	}

	command := commandnotify.NewNotifier(commandnotify.Config{
		Enabled: enabled,
		Command: a.cfg.NotificationsCommand,
	})
	if a.cfg.NotificationsFallback != terminalNotifier {
		return command, nil
	}

	chained, err := chainnotify.NewNotifier(command, terminalnotify.NewNotifier(out, enabled))
	if err != nil {
		return nil, fmt.Errorf("wire notifier chain: %w", err)
	}
	return chained, nil
}

func (a *app) newScheduler() (*schedule.Scheduler, error) {
	scheduler, err := schedule.New(schedule.Config{
		Spec:   a.cfg.ScheduleSpec,
		Logger: a.logger,
	})
	if err != nil {
		return nil, fmt.Errorf("wire scheduler: %w", err)
	}
	return scheduler, nil
}

func (a *app) openSession(ctx context.Context, notifyOut io.Writer) (*session, error) {
	log, closeLog, err := a.openCompletionLog(ctx)
	if err != nil {
		return nil, err
	}

	notifier, err := a.newNotifier(notifyOut)
	if err != nil {
		_ = closeLog()
		return nil, err
	}

	engine := application.NewReminderEngine(log, notifier, notifier, a.cache, a.clock, application.ReminderOptions{
		Window:  domain.DefaultNotificationWindow(),
		Dedupe:  a.cfg.NotificationsDedupe,
		Metrics: a.metrics,
		Logger:  a.logger,
	})

	return &session{
		log:        log,
		recorder:   application.NewCompletionRecorder(log, a.clock, a.metrics, a.logger),
		classifier: application.NewEngagementClassifier(log, a.metrics, a.logger),
		engine:     engine,
		closeLog:   closeLog,
	}, nil
}

func (s *session) Close() error {
	s.recorder.Close()
	return s.closeLog()
}
