package cmd

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	remotehttp "github.com/bnema/daily-activity-cli/internal/adapters/remote/http"
	schedule "github.com/bnema/daily-activity-cli/internal/adapters/schedule/cron"
	"github.com/spf13/viper"
)

const (
	configDirName  = ".daily-activity"
	configFileName = "config"
	configFileType = "toml"
	envPrefix      = "DA"

	logDriverSQLite = "sqlite"
	logDriverMemory = "memory"

	terminalNotifier = "terminal"
)

type config struct {
	RemoteURL            string
	RemoteTimeout        time.Duration
	RemoteRequestTimeout time.Duration
	RetryMaxElapsed      time.Duration

	CachePath string

	LogDriver       string
	LogPath         string
	LogPollInterval time.Duration

	NotificationsEnabled  bool
	NotificationsCommand  string
	NotificationsDedupe   bool
	NotificationsFallback string

	ScheduleSpec string
	MetricsAddr  string

	LoggingLevel  string
	LoggingFormat string
	LoggingOutput string
}

// loadConfig reads ~/.daily-activity/config.toml when present and applies
// DA_* environment overrides on top of the defaults.
func loadConfig(v *viper.Viper, homeDir string) (config, error) {
	configDir := filepath.Join(homeDir, configDirName)

	v.SetConfigName(configFileName)
	v.SetConfigType(configFileType)
	v.AddConfigPath(configDir)
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetDefault("remote.url", remotehttp.DefaultURL)
	v.SetDefault("remote.timeout", 10*time.Second)
	v.SetDefault("remote.request_timeout", 3*time.Second)
	v.SetDefault("remote.retry.max_elapsed", 6*time.Second)
	v.SetDefault("cache.path", filepath.Join(configDir, "cache.toml"))
	v.SetDefault("log.driver", logDriverSQLite)
	v.SetDefault("log.path", filepath.Join(configDir, "completions.db"))
	v.SetDefault("log.poll_interval", 5*time.Second)
	v.SetDefault("notifications.enabled", true)
	v.SetDefault("notifications.command", "notify-send")
	v.SetDefault("notifications.dedupe", true)
	v.SetDefault("notifications.fallback", terminalNotifier)
	v.SetDefault("schedule.spec", schedule.DefaultSpec)
	v.SetDefault("metrics.addr", "")
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "text")
	v.SetDefault("logging.output", "stderr")

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return config{}, fmt.Errorf("read config: %w", err)
		}
	}

	cachePath := expandHome(v.GetString("cache.path"), homeDir)
	v.Set("cache.path", cachePath)

	cfg := config{
		RemoteURL:             strings.TrimSpace(v.GetString("remote.url")),
		RemoteTimeout:         v.GetDuration("remote.timeout"),
		RemoteRequestTimeout:  v.GetDuration("remote.request_timeout"),
		RetryMaxElapsed:       v.GetDuration("remote.retry.max_elapsed"),
		CachePath:             cachePath,
		LogDriver:             strings.ToLower(strings.TrimSpace(v.GetString("log.driver"))),
		LogPath:               expandHome(v.GetString("log.path"), homeDir),
		LogPollInterval:       v.GetDuration("log.poll_interval"),
		NotificationsEnabled:  v.GetBool("notifications.enabled"),
		NotificationsCommand:  strings.TrimSpace(v.GetString("notifications.command")),
		NotificationsDedupe:   v.GetBool("notifications.dedupe"),
		NotificationsFallback: strings.ToLower(strings.TrimSpace(v.GetString("notifications.fallback"))),
		ScheduleSpec:          strings.TrimSpace(v.GetString("schedule.spec")),
		MetricsAddr:           strings.TrimSpace(v.GetString("metrics.addr")),
		LoggingLevel:          v.GetString("logging.level"),
		LoggingFormat:         v.GetString("logging.format"),
		LoggingOutput:         strings.ToLower(strings.TrimSpace(v.GetString("logging.output"))),
	}

	if err := cfg.validate(); err != nil {
		return config{}, err
	}
	return cfg, nil
}

func (c config) validate() error {
	switch c.LogDriver {
	case logDriverSQLite, logDriverMemory:
	default:
		return fmt.Errorf("unsupported log.driver %q", c.LogDriver)
	}
	switch c.NotificationsFallback {
	case terminalNotifier, "none":
	default:
		return fmt.Errorf("unsupported notifications.fallback %q", c.NotificationsFallback)
	}
	if c.RemoteTimeout < 0 {
		return errors.New("remote.timeout must not be negative")
	}
	if c.RemoteRequestTimeout < 0 {
		return errors.New("remote.request_timeout must not be negative")
	}
	if c.LogPollInterval < 0 {
		return errors.New("log.poll_interval must not be negative")
	}
	return nil
}

func expandHome(path, homeDir string) string {
	path = strings.TrimSpace(path)
	if path == "~" {
		return homeDir
	}
	if rest, ok := strings.CutPrefix(path, "~/"); ok {
		return filepath.Join(homeDir, rest)
	}
	return path
}

func resolveHomeDir() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolve home directory: %w", err)
	}
	return homeDir, nil
}
