package logcat

import (
	"context"
	"log/slog"
	"os/exec"

	"github.com/crimson-sun/strictwatch/internal/connector"
)

const defaultCommand = "adb"

// filterSpec limits logcat to the StrictMode and System.err tags.
var filterSpec = []string{"-v", "time", "-s", "StrictMode:*", "System.err:*"}

func init() {
	connector.Register("logcat", func() connector.Connector {
		return &Connector{}
	})
}

// Connector streams filtered logcat output from a device through adb.
type Connector struct{}

// Open clears the device log buffer so old violations are not replayed, then
// starts a long-running filtered logcat process.
func (c *Connector) Open(ctx context.Context, cfg connector.ConnectorConfig) (connector.LineReader, error) {
	command := cfg.Command
	if command == "" {
		command = defaultCommand
	}

	clear := exec.CommandContext(ctx, command, args(cfg.Serial, "-c")...)
	if err := clear.Run(); err != nil {
		slog.Warn("logcat clear failed", "component", "logcat", "error", err)
	}

	r, err := connector.StartProcess(exec.Command(command, args(cfg.Serial, filterSpec...)...))
	if err != nil {
		return nil, err
	}
	slog.Info("logcat started", "component", "logcat", "command", command, "serial", cfg.Serial)
	return r, nil
}

// args builds "[-s serial] logcat <rest...>".
func args(serial string, rest ...string) []string {
	var a []string
	if serial != "" {
		a = append(a, "-s", serial)
	}
	a = append(a, "logcat")
	return append(a, rest...)
}
