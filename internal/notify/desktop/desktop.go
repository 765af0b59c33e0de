// Package desktop raises notifications through the host's notification
// daemon: notify-send on Linux, osascript on macOS.
package desktop

import (
	"context"
	"errors"
	"fmt"
	"os/exec"
	"runtime"
	"strings"

	"github.com/crimson-sun/strictwatch/internal/notify"
)

const appName = "strictwatch"

// ErrUnsupported is returned by New on platforms without a known notifier.
var ErrUnsupported = errors.New("desktop notifications unsupported on this platform")

// Option configures a desktop Notifier.
type Option func(*Notifier)

// WithCommand overrides the executable invoked for each notification. The
// argument layout still follows the platform.
func WithCommand(path string) Option {
	return func(n *Notifier) { n.command = path }
}

// withPlatform forces the argument layout, for tests.
func withPlatform(goos string) Option {
	return func(n *Notifier) { n.goos = goos }
}

// Notifier shells out once per notification.
type Notifier struct {
	goos    string
	command string
}

// New returns a Notifier for the running platform.
func New(opts ...Option) (*Notifier, error) {
	n := &Notifier{goos: runtime.GOOS}
	for _, opt := range opts {
		opt(n)
	}
	if n.command == "" {
		switch n.goos {
		case "linux", "freebsd", "openbsd":
			n.command = "notify-send"
		case "darwin":
			n.command = "osascript"
		default:
			return nil, fmt.Errorf("%w: %s", ErrUnsupported, n.goos)
		}
	}
	return n, nil
}

func (n *Notifier) Notify(ctx context.Context, note notify.Notification) error {
	cmd := exec.CommandContext(ctx, n.command, n.args(note)...)
	if out, err := cmd.CombinedOutput(); err != nil {
		return fmt.Errorf("desktop notifier: %s: %w: %s", n.command, err, strings.TrimSpace(string(out)))
	}
	return nil
}

func (n *Notifier) Close() error {
	return nil
}

func (n *Notifier) args(note notify.Notification) []string {
	if n.goos == "darwin" {
		script := fmt.Sprintf("display notification %s with title %s subtitle %s",
			quote(note.Body), quote(appName), quote(note.Title))
		return []string{"-e", script}
	}
	urgency := "normal"
	if note.HeadsUp {
		urgency = "critical"
	}
	return []string{"--app-name", appName, "--urgency", urgency, note.Title, note.Body}
}

// quote renders s as an AppleScript string literal.
func quote(s string) string {
	r := strings.NewReplacer(`\`, `\\`, `"`, `\"`)
	return `"` + r.Replace(s) + `"`
}
