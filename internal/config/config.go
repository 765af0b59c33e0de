package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	toml "github.com/pelletier/go-toml/v2"
)

const (
	defaultConfigPath = "~/.config/strictwatch/config.toml"
	defaultStorePath  = "~/.local/share/strictwatch/reports"
	defaultPrefsPath  = "~/.config/strictwatch/prefs.toml"
)

// Config holds all strictwatch configuration.
type Config struct {
	Connector ConnectorConfig `toml:"connector"`
	Watch     WatchConfig     `toml:"watch"`
	Store     StoreConfig     `toml:"store"`
	Notify    NotifyConfig    `toml:"notify"`
	Logging   LoggingConfig   `toml:"logging"`
	Review    ReviewConfig    `toml:"review"`
}

// ConnectorConfig selects and configures the line source.
type ConnectorConfig struct {
	Provider string `toml:"provider" validate:"required,oneof=logcat file stdin"`
	Command  string `toml:"command"` // adb executable for logcat
	Serial   string `toml:"serial"`
	Path     string `toml:"path" validate:"required_if=Provider file"`
}

// WatchConfig holds the batching and retry timings, in milliseconds.
type WatchConfig struct {
	NotificationDelayMS int `toml:"notification_delay_ms" validate:"gt=0"`
	LogDelayMS          int `toml:"log_delay_ms" validate:"gte=0"`
	ErrorSleepMS        int `toml:"error_sleep_ms" validate:"gte=0"`
	MaxErrorCount       int `toml:"max_error_count" validate:"gte=0"`
}

// StoreConfig locates the report history.
type StoreConfig struct {
	Path       string `toml:"path" validate:"required_without=InMemory"`
	InMemory   bool   `toml:"in_memory"`
	MaxReports int    `toml:"max_reports" validate:"gt=0"`
}

// NotifyConfig selects notification sinks.
type NotifyConfig struct {
	Sinks       []string `toml:"sinks" validate:"min=1,dive,oneof=stdout file webhook desktop"`
	HeadsUp     bool     `toml:"heads_up"`
	Verbosity   string   `toml:"verbosity" validate:"oneof=minimal standard full"`
	Pretty      bool     `toml:"pretty"`
	Async       bool     `toml:"async"` // always on when the webhook sink is configured
	FilePath    string   `toml:"file_path"`
	FileMaxSize int64    `toml:"file_max_size" validate:"gte=0"`

	WebhookURL        string            `toml:"webhook_url" validate:"omitempty,url"`
	WebhookHeaders    map[string]string `toml:"webhook_headers"`
	WebhookIntervalMS int               `toml:"webhook_interval_ms" validate:"gte=0"`
	WebhookBurst      int               `toml:"webhook_burst" validate:"gte=1"`
}

// LoggingConfig configures the process logger.
type LoggingConfig struct {
	Level  string `toml:"level" validate:"oneof=debug info warn warning error"`
	Format string `toml:"format" validate:"oneof=text json"`
}

// ReviewConfig controls the review screen switch.
type ReviewConfig struct {
	AutoEnable bool   `toml:"auto_enable"`
	PrefsPath  string `toml:"prefs_path" validate:"required"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Connector: ConnectorConfig{
			Provider: "logcat",
			Command:  "adb",
		},
		Watch: WatchConfig{
			NotificationDelayMS: 2000,
			LogDelayMS:          1000,
			ErrorSleepMS:        1000,
			MaxErrorCount:       3,
		},
		Store: StoreConfig{
			Path:       mustExpand(defaultStorePath),
			MaxReports: 50,
		},
		Notify: NotifyConfig{
			Sinks:        []string{"stdout"},
			Verbosity:    "standard",
			WebhookBurst: 5,

			WebhookIntervalMS: 1000,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "text",
		},
		Review: ReviewConfig{
			AutoEnable: true,
			PrefsPath:  mustExpand(defaultPrefsPath),
		},
	}
}

// Load reads the TOML file at path (the default location when empty) over
// the defaults, applies STRICTWATCH_* environment overrides, and validates.
// A missing file is not an error.
func Load(path string) (Config, error) {
	cfg := Default()

	resolved, err := resolvePath(path)
	if err != nil {
		return Config{}, err
	}
	data, err := os.ReadFile(resolved)
	switch {
	case errors.Is(err, os.ErrNotExist):
	case err != nil:
		return Config{}, fmt.Errorf("read config: %w", err)
	default:
		if err := toml.Unmarshal(data, &cfg); err != nil {
			return Config{}, fmt.Errorf("parse config %s: %w", resolved, err)
		}
	}

	applyEnv(&cfg)
	cfg.Connector.Path = mustExpand(cfg.Connector.Path)
	cfg.Store.Path = mustExpand(cfg.Store.Path)
	cfg.Notify.FilePath = mustExpand(cfg.Notify.FilePath)
	cfg.Review.PrefsPath = mustExpand(cfg.Review.PrefsPath)

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks field constraints and cross-field requirements.
func (c Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	if slices.Contains(c.Notify.Sinks, "file") && c.Notify.FilePath == "" {
		return errors.New("invalid config: notify.file_path is required for the file sink")
	}
	if slices.Contains(c.Notify.Sinks, "webhook") && c.Notify.WebhookURL == "" {
		return errors.New("invalid config: notify.webhook_url is required for the webhook sink")
	}
	return nil
}

func (w WatchConfig) NotificationDelay() time.Duration {
	return time.Duration(w.NotificationDelayMS) * time.Millisecond
}

func (w WatchConfig) LogDelay() time.Duration {
	return time.Duration(w.LogDelayMS) * time.Millisecond
}

func (w WatchConfig) ErrorSleep() time.Duration {
	return time.Duration(w.ErrorSleepMS) * time.Millisecond
}

// Asynchronous reports whether delivery runs off the batching timer. The
// webhook sink retries with backoff, so it always gets async delivery.
func (n NotifyConfig) Asynchronous() bool {
	return n.Async || slices.Contains(n.Sinks, "webhook")
}

func (n NotifyConfig) WebhookInterval() time.Duration {
	return time.Duration(n.WebhookIntervalMS) * time.Millisecond
}

func applyEnv(cfg *Config) {
	cfg.Connector.Provider = getenv("STRICTWATCH_CONNECTOR", cfg.Connector.Provider)
	cfg.Connector.Command = getenv("STRICTWATCH_ADB", cfg.Connector.Command)
	cfg.Connector.Serial = getenv("STRICTWATCH_SERIAL", cfg.Connector.Serial)
	cfg.Connector.Path = getenv("STRICTWATCH_INPUT", cfg.Connector.Path)

	cfg.Watch.NotificationDelayMS = getenvInt("STRICTWATCH_NOTIFICATION_DELAY_MS", cfg.Watch.NotificationDelayMS)
	cfg.Watch.LogDelayMS = getenvInt("STRICTWATCH_LOG_DELAY_MS", cfg.Watch.LogDelayMS)

	cfg.Store.Path = getenv("STRICTWATCH_STORE_PATH", cfg.Store.Path)
	cfg.Store.InMemory = getenvBool("STRICTWATCH_STORE_IN_MEMORY", cfg.Store.InMemory)

	if v := os.Getenv("STRICTWATCH_NOTIFY"); v != "" {
		var sinks []string
		for _, s := range strings.Split(v, ",") {
			if s = strings.TrimSpace(s); s != "" {
				sinks = append(sinks, s)
			}
		}
		cfg.Notify.Sinks = sinks
	}
	cfg.Notify.HeadsUp = getenvBool("STRICTWATCH_HEADS_UP", cfg.Notify.HeadsUp)
	cfg.Notify.Verbosity = getenv("STRICTWATCH_VERBOSITY", cfg.Notify.Verbosity)
	cfg.Notify.Pretty = getenvBool("STRICTWATCH_PRETTY", cfg.Notify.Pretty)
	cfg.Notify.FilePath = getenv("STRICTWATCH_NOTIFY_FILE", cfg.Notify.FilePath)
	cfg.Notify.WebhookURL = getenv("STRICTWATCH_WEBHOOK_URL", cfg.Notify.WebhookURL)

	cfg.Logging.Level = getenv("STRICTWATCH_LOG_LEVEL", cfg.Logging.Level)
	cfg.Logging.Format = getenv("STRICTWATCH_LOG_FORMAT", cfg.Logging.Format)

	cfg.Review.AutoEnable = getenvBool("STRICTWATCH_REVIEW_AUTO_ENABLE", cfg.Review.AutoEnable)
	cfg.Review.PrefsPath = getenv("STRICTWATCH_PREFS", cfg.Review.PrefsPath)
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getenvInt(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return n
}

func getenvBool(key string, fallback bool) bool {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return fallback
	}
	return b
}

func resolvePath(path string) (string, error) {
	if strings.TrimSpace(path) == "" {
		path = getenv("STRICTWATCH_CONFIG", defaultConfigPath)
	}
	return expandPath(path)
}

func mustExpand(path string) string {
	if strings.TrimSpace(path) == "" {
		return ""
	}
	expanded, err := expandPath(path)
	if err != nil {
		return path
	}
	return expanded
}

func expandPath(path string) (string, error) {
	trimmed := strings.TrimSpace(path)
	if trimmed == "" {
		return "", fmt.Errorf("path is empty")
	}
	if strings.HasPrefix(trimmed, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home dir: %w", err)
		}
		trimmed = filepath.Join(home, strings.TrimPrefix(trimmed, "~"))
	}
	return filepath.Abs(trimmed)
}
