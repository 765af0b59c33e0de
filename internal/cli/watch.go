package cli

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/crimson-sun/strictwatch/internal/connector"
	"github.com/crimson-sun/strictwatch/internal/engine/compactor"
	"github.com/crimson-sun/strictwatch/internal/pipeline"

	// Register connector implementations.
	_ "github.com/crimson-sun/strictwatch/internal/connector/file"
	_ "github.com/crimson-sun/strictwatch/internal/connector/logcat"
	_ "github.com/crimson-sun/strictwatch/internal/connector/stdin"
)

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Follow the log stream and report violations",
	Long: `Clear the device log, then follow StrictMode and System.err output until
interrupted. Each completed incident is classified, stored and announced
through the configured notification sinks. Webhook delivery always runs in
the background so its retries never hold up the log stream; set
notify.async to do the same for the other sinks.

Examples:
  strictwatch watch                          # adb logcat on the default device
  strictwatch watch --serial emulator-5554   # a specific device
  strictwatch watch --provider file --input logcat.txt
  adb logcat -v time | strictwatch watch --provider stdin`,
	Args: cobra.NoArgs,
	RunE: runWatch,
}

func init() {
	watchCmd.Flags().String("provider", "", "line source: logcat, file, stdin")
	watchCmd.Flags().StringP("serial", "s", "", "adb device serial")
	watchCmd.Flags().StringP("input", "i", "", "input file for the file provider")
	watchCmd.Flags().Bool("heads-up", false, "raise notifications with high urgency")
	watchCmd.Flags().Bool("in-memory", false, "keep the report history in memory only")
}

func runWatch(cmd *cobra.Command, _ []string) error {
	c := cfg
	if v, _ := cmd.Flags().GetString("provider"); v != "" {
		c.Connector.Provider = v
	}
	if v, _ := cmd.Flags().GetString("serial"); v != "" {
		c.Connector.Serial = v
	}
	if v, _ := cmd.Flags().GetString("input"); v != "" {
		c.Connector.Path = v
	}
	if cmd.Flags().Changed("heads-up") {
		c.Notify.HeadsUp, _ = cmd.Flags().GetBool("heads-up")
	}
	if cmd.Flags().Changed("in-memory") {
		c.Store.InMemory, _ = cmd.Flags().GetBool("in-memory")
	}
	if err := c.Validate(); err != nil {
		return err
	}

	ctor, err := connector.Get(c.Connector.Provider)
	if err != nil {
		return err
	}

	eng, err := newEngine()
	if err != nil {
		return err
	}

	st, closeStore, err := openStore(c.Store)
	if err != nil {
		return err
	}
	defer closeStore()

	n, err := buildNotifier(c.Notify)
	if err != nil {
		return err
	}
	defer n.Close()

	if c.Review.AutoEnable {
		toggle, err := openReview(c.Review)
		if err != nil {
			slog.Warn("review toggle unavailable", "component", "cli", "error", err)
		} else {
			toggle.SetEnabled(true)
			defer toggle.Close()
		}
	}

	p := pipeline.New(ctor(), connector.ConnectorConfig{
		Provider: c.Connector.Provider,
		Command:  c.Connector.Command,
		Serial:   c.Connector.Serial,
		Path:     c.Connector.Path,
	}, eng, st, n,
		pipeline.WithNotificationDelay(c.Watch.NotificationDelay()),
		pipeline.WithLogDelay(c.Watch.LogDelay()),
		pipeline.WithErrorSleep(c.Watch.ErrorSleep()),
		pipeline.WithMaxErrorCount(c.Watch.MaxErrorCount),
		pipeline.WithHeadsUp(c.Notify.HeadsUp),
		pipeline.WithCompactor(compactor.New(compactor.ParseVerbosity(c.Notify.Verbosity))),
	)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	fmt.Fprintf(os.Stderr, "strictwatch: watching with connector=%s\n", c.Connector.Provider)
	return p.Run(ctx)
}
