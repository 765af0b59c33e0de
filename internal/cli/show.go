package cli

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/crimson-sun/strictwatch/internal/model"
	"github.com/crimson-sun/strictwatch/internal/notify"
)

var showCmd = &cobra.Command{
	Use:   "show <id | #N>",
	Short: "Show one recorded violation",
	Long: `Show the full detail of a recorded violation, selected by incident ID or
by its list number (#N as printed by list).

A notification payload can be rendered without the store:
  strictwatch show --payload <payload>`,
	Args: cobra.MaximumNArgs(1),
	RunE: runShow,
}

func init() {
	showCmd.Flags().String("payload", "", "render an incident from a notification payload")
}

func runShow(cmd *cobra.Command, args []string) error {
	if payload, _ := cmd.Flags().GetString("payload"); payload != "" {
		inc, err := notify.DecodeTarget(notify.Target{Payload: payload})
		if err != nil {
			return err
		}
		renderIncident(cmd.OutOrStdout(), inc)
		return nil
	}
	if len(args) != 1 {
		return errors.New("an incident id, #N, or --payload is required")
	}

	st, closeStore, err := openStore(cfg.Store)
	if err != nil {
		return err
	}
	defer closeStore()

	inc, err := selectIncident(st.GetAll(cmd.Context()), args[0])
	if err != nil {
		return err
	}
	renderIncident(cmd.OutOrStdout(), inc)
	return nil
}

// selectIncident resolves an ID or a "#N" list number.
func selectIncident(incidents []model.Incident, ref string) (model.Incident, error) {
	if num, ok := strings.CutPrefix(ref, "#"); ok {
		n, err := strconv.Atoi(num)
		if err != nil || n < 1 || n > len(incidents) {
			return model.Incident{}, fmt.Errorf("no incident %s", ref)
		}
		return incidents[len(incidents)-n], nil
	}
	for _, inc := range incidents {
		if inc.ID == ref {
			return inc, nil
		}
	}
	return model.Incident{}, fmt.Errorf("no incident with id %q", ref)
}
