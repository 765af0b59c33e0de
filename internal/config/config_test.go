package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// isolate points HOME at a temp dir and clears overrides.
func isolate(t *testing.T) string {
	t.Helper()
	home := t.TempDir()
	t.Setenv("HOME", home)
	for _, key := range []string{
		"STRICTWATCH_CONFIG", "STRICTWATCH_CONNECTOR", "STRICTWATCH_ADB",
		"STRICTWATCH_SERIAL", "STRICTWATCH_INPUT", "STRICTWATCH_STORE_PATH",
		"STRICTWATCH_STORE_IN_MEMORY", "STRICTWATCH_NOTIFY", "STRICTWATCH_HEADS_UP",
		"STRICTWATCH_VERBOSITY", "STRICTWATCH_PRETTY", "STRICTWATCH_NOTIFY_FILE",
		"STRICTWATCH_WEBHOOK_URL", "STRICTWATCH_LOG_LEVEL", "STRICTWATCH_LOG_FORMAT",
		"STRICTWATCH_REVIEW_AUTO_ENABLE", "STRICTWATCH_PREFS",
		"STRICTWATCH_NOTIFICATION_DELAY_MS", "STRICTWATCH_LOG_DELAY_MS",
	} {
		t.Setenv(key, "")
	}
	return home
}

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestLoad_Defaults(t *testing.T) {
	home := isolate(t)

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "logcat", cfg.Connector.Provider)
	assert.Equal(t, "adb", cfg.Connector.Command)
	assert.Equal(t, 2*time.Second, cfg.Watch.NotificationDelay())
	assert.Equal(t, time.Second, cfg.Watch.LogDelay())
	assert.Equal(t, time.Second, cfg.Watch.ErrorSleep())
	assert.Equal(t, 3, cfg.Watch.MaxErrorCount)
	assert.Equal(t, 50, cfg.Store.MaxReports)
	assert.Equal(t, filepath.Join(home, ".local/share/strictwatch/reports"), cfg.Store.Path)
	assert.Equal(t, []string{"stdout"}, cfg.Notify.Sinks)
	assert.Equal(t, "standard", cfg.Notify.Verbosity)
	assert.Equal(t, "info", cfg.Logging.Level)
	assert.True(t, cfg.Review.AutoEnable)
	assert.Equal(t, filepath.Join(home, ".config/strictwatch/prefs.toml"), cfg.Review.PrefsPath)
}

func TestLoad_File(t *testing.T) {
	isolate(t)
	path := writeConfig(t, `
[connector]
provider = "logcat"
serial = "emulator-5554"

[watch]
notification_delay_ms = 500

[notify]
sinks = ["stdout", "file"]
file_path = "/tmp/strictwatch/notifications.jsonl"
heads_up = true
verbosity = "minimal"

[logging]
format = "json"
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "emulator-5554", cfg.Connector.Serial)
	assert.Equal(t, "adb", cfg.Connector.Command, "unset keys keep defaults")
	assert.Equal(t, 500*time.Millisecond, cfg.Watch.NotificationDelay())
	assert.Equal(t, 1000, cfg.Watch.LogDelayMS)
	assert.Equal(t, []string{"stdout", "file"}, cfg.Notify.Sinks)
	assert.True(t, cfg.Notify.HeadsUp)
	assert.Equal(t, "minimal", cfg.Notify.Verbosity)
	assert.Equal(t, "json", cfg.Logging.Format)
}

func TestLoad_ConfigPathFromEnv(t *testing.T) {
	isolate(t)
	path := writeConfig(t, "[connector]\nserial = \"from-env-file\"\n")
	t.Setenv("STRICTWATCH_CONFIG", path)

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "from-env-file", cfg.Connector.Serial)
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	isolate(t)
	path := writeConfig(t, "[logging]\nlevel = \"warn\"\n")
	t.Setenv("STRICTWATCH_LOG_LEVEL", "debug")
	t.Setenv("STRICTWATCH_NOTIFY", "stdout, desktop")
	t.Setenv("STRICTWATCH_HEADS_UP", "true")
	t.Setenv("STRICTWATCH_STORE_IN_MEMORY", "1")
	t.Setenv("STRICTWATCH_NOTIFICATION_DELAY_MS", "250")

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "debug", cfg.Logging.Level)
	assert.Equal(t, []string{"stdout", "desktop"}, cfg.Notify.Sinks)
	assert.True(t, cfg.Notify.HeadsUp)
	assert.True(t, cfg.Store.InMemory)
	assert.Equal(t, 250*time.Millisecond, cfg.Watch.NotificationDelay())
}

func TestLoad_BadEnvValuesFallBack(t *testing.T) {
	isolate(t)
	t.Setenv("STRICTWATCH_HEADS_UP", "maybe")
	t.Setenv("STRICTWATCH_NOTIFICATION_DELAY_MS", "soon")

	cfg, err := Load("")
	require.NoError(t, err)
	assert.False(t, cfg.Notify.HeadsUp)
	assert.Equal(t, 2000, cfg.Watch.NotificationDelayMS)
}

func TestLoad_ExpandsHome(t *testing.T) {
	home := isolate(t)
	t.Setenv("STRICTWATCH_CONNECTOR", "file")
	t.Setenv("STRICTWATCH_INPUT", "~/logs/logcat.txt")

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(home, "logs/logcat.txt"), cfg.Connector.Path)
}

func TestLoad_ParseError(t *testing.T) {
	isolate(t)
	path := writeConfig(t, "[connector\nprovider = ")
	_, err := Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parse config")
}

func TestValidate(t *testing.T) {
	isolate(t)

	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"unknown provider", func(c *Config) { c.Connector.Provider = "vercel" }},
		{"file provider without path", func(c *Config) { c.Connector.Provider = "file"; c.Connector.Path = "" }},
		{"zero notification delay", func(c *Config) { c.Watch.NotificationDelayMS = 0 }},
		{"negative log delay", func(c *Config) { c.Watch.LogDelayMS = -1 }},
		{"zero max reports", func(c *Config) { c.Store.MaxReports = 0 }},
		{"no store path", func(c *Config) { c.Store.Path = "" }},
		{"no sinks", func(c *Config) { c.Notify.Sinks = nil }},
		{"unknown sink", func(c *Config) { c.Notify.Sinks = []string{"pager"} }},
		{"file sink without path", func(c *Config) { c.Notify.Sinks = []string{"file"} }},
		{"webhook sink without url", func(c *Config) { c.Notify.Sinks = []string{"webhook"} }},
		{"bad webhook url", func(c *Config) { c.Notify.WebhookURL = "not a url" }},
		{"bad verbosity", func(c *Config) { c.Notify.Verbosity = "loud" }},
		{"bad log format", func(c *Config) { c.Logging.Format = "xml" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(&cfg)
			assert.Error(t, cfg.Validate())
		})
	}

	t.Run("in-memory store needs no path", func(t *testing.T) {
		cfg := Default()
		cfg.Store.Path = ""
		cfg.Store.InMemory = true
		assert.NoError(t, cfg.Validate())
	})

	t.Run("webhook sink with url", func(t *testing.T) {
		cfg := Default()
		cfg.Notify.Sinks = []string{"webhook"}
		cfg.Notify.WebhookURL = "https://hooks.example.com/strictwatch"
		assert.NoError(t, cfg.Validate())
	})
}

func TestNotifyAsynchronous(t *testing.T) {
	tests := []struct {
		name  string
		sinks []string
		async bool
		want  bool
	}{
		{"stdout default", []string{"stdout"}, false, false},
		{"explicit async", []string{"stdout"}, true, true},
		{"webhook forces async", []string{"stdout", "webhook"}, false, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			n := NotifyConfig{Sinks: tt.sinks, Async: tt.async}
			assert.Equal(t, tt.want, n.Asynchronous())
		})
	}
}
