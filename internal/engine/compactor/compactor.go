package compactor

import (
	"fmt"
	"unicode/utf8"

	"github.com/crimson-sun/strictwatch/internal/model"
)

// Verbosity controls how much of an incident is carried in notification payloads.
type Verbosity int

const (
	Minimal  Verbosity = iota // title only, first few frames
	Standard                  // title and a bounded stack
	Full                      // everything
)

const (
	summaryLen      = 120
	minimalFrames   = 3
	standardFrames  = 40
	standardLineLen = 2000
)

// ParseVerbosity maps "minimal", "standard" and "full" to a Verbosity.
// Unknown strings default to Standard.
func ParseVerbosity(s string) Verbosity {
	switch s {
	case "minimal":
		return Minimal
	case "full":
		return Full
	default:
		return Standard
	}
}

func (v Verbosity) String() string {
	switch v {
	case Minimal:
		return "minimal"
	case Full:
		return "full"
	default:
		return "standard"
	}
}

// Compactor trims incidents for transport to notifiers.
type Compactor struct {
	Verbosity Verbosity
}

// New creates a Compactor with the given verbosity level.
func New(v Verbosity) *Compactor {
	return &Compactor{Verbosity: v}
}

// Compact returns a copy of the incident with detail lines limited according
// to verbosity. A marker line records how many frames were dropped.
func (c *Compactor) Compact(inc model.Incident) model.Incident {
	switch c.Verbosity {
	case Minimal:
		inc.DetailLines = limit(inc.DetailLines, minimalFrames, summaryLen)
	case Standard:
		inc.DetailLines = limit(inc.DetailLines, standardFrames, standardLineLen)
	default:
		inc.DetailLines = append([]string(nil), inc.DetailLines...)
	}
	return inc
}

// Summary returns a one-line summary of the incident title.
func Summary(inc model.Incident) string {
	return truncate(inc.Title, summaryLen)
}

func limit(lines []string, maxLines, maxLen int) []string {
	n := len(lines)
	if n > maxLines {
		n = maxLines
	}
	out := make([]string, 0, n+1)
	for _, l := range lines[:n] {
		out = append(out, truncate(l, maxLen))
	}
	if dropped := len(lines) - n; dropped > 0 {
		out = append(out, fmt.Sprintf("... %d more", dropped))
	}
	return out
}

// truncate cuts s to maxRunes runes, appending "..." when shortened.
func truncate(s string, maxRunes int) string {
	if utf8.RuneCountInString(s) <= maxRunes {
		return s
	}
	i := 0
	for pos := range s {
		if i == maxRunes {
			return s[:pos] + "..."
		}
		i++
	}
	return s
}
