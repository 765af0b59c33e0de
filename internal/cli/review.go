package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

var reviewCmd = &cobra.Command{
	Use:   "review",
	Short: "Turn the violation review screen on or off",
}

func init() {
	reviewCmd.AddCommand(
		&cobra.Command{
			Use:   "enable",
			Short: "Show the review entry point",
			Args:  cobra.NoArgs,
			RunE:  func(cmd *cobra.Command, _ []string) error { return setReview(cmd, true) },
		},
		&cobra.Command{
			Use:   "disable",
			Short: "Hide the review entry point",
			Args:  cobra.NoArgs,
			RunE:  func(cmd *cobra.Command, _ []string) error { return setReview(cmd, false) },
		},
		&cobra.Command{
			Use:   "status",
			Short: "Print whether the review screen is enabled",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, _ []string) error {
				toggle, err := openReview(cfg.Review)
				if err != nil {
					return err
				}
				defer toggle.Close()
				fmt.Fprintln(cmd.OutOrStdout(), state(toggle.Enabled()))
				return nil
			},
		},
	)
}

func setReview(cmd *cobra.Command, on bool) error {
	toggle, err := openReview(cfg.Review)
	if err != nil {
		return err
	}
	toggle.SetEnabled(on)
	if err := toggle.Close(); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "review %s\n", state(on))
	return nil
}

func state(on bool) string {
	if on {
		return "enabled"
	}
	return "disabled"
}
