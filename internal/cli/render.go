package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/crimson-sun/strictwatch/internal/engine/compactor"
	"github.com/crimson-sun/strictwatch/internal/engine/taxonomy"
	"github.com/crimson-sun/strictwatch/internal/model"
	"github.com/crimson-sun/strictwatch/internal/notify"
)

const timeLayout = "2006-01-02 15:04:05"

var (
	numberStyle = lipgloss.NewStyle().Bold(true)
	kindStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#E5A50A")).Bold(true)
	plainStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#C0C0C0"))
	mutedStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#808080"))
	frameStyle  = lipgloss.NewStyle().PaddingLeft(4).Foreground(lipgloss.Color("#A0A0A0"))
)

func displayName(inc model.Incident) string {
	if inc.Classified() {
		return inc.Kind.Name()
	}
	return notify.DefaultTitle
}

// renderList writes the history newest first. Entries are numbered counting
// down, so the newest carries the highest number.
func renderList(w io.Writer, incidents []model.Incident) {
	if len(incidents) == 0 {
		fmt.Fprintln(w, "No violations recorded.")
		return
	}
	for i, inc := range incidents {
		n := len(incidents) - i
		fmt.Fprintf(w, "%s  %s  %s\n",
			numberStyle.Render(fmt.Sprintf("#%d", n)),
			mutedStyle.Render(inc.OccurredAt.Local().Format(timeLayout)),
			kindStyle.Render(displayName(inc)),
		)
		fmt.Fprintf(w, "    %s\n", plainStyle.Render(compactor.Summary(inc)))
		fmt.Fprintf(w, "    %s\n", mutedStyle.Render("id "+inc.ID))
	}
}

// renderIncident writes the detail view of one incident.
func renderIncident(w io.Writer, inc model.Incident) {
	fmt.Fprintln(w, kindStyle.Render(displayName(inc)))
	fmt.Fprintln(w, inc.Title)
	fmt.Fprintln(w, mutedStyle.Render(fmt.Sprintf("%s  %s  id %s",
		inc.OccurredAt.Local().Format(timeLayout), inc.Key, inc.ID)))
	if len(inc.DetailLines) == 0 {
		return
	}
	fmt.Fprintln(w)
	fmt.Fprintln(w, frameStyle.Render(strings.Join(inc.DetailLines, "\n")))
}

func renderKinds(w io.Writer, detectors []taxonomy.Detector) {
	width := 0
	for _, d := range detectors {
		width = max(width, len(d.Kind))
	}
	for _, d := range detectors {
		fmt.Fprintf(w, "%s  %s  %s\n",
			kindStyle.Render(fmt.Sprintf("%-*s", width, d.Kind)),
			d.Kind.Name(),
			mutedStyle.Render(d.Desc),
		)
	}
}
