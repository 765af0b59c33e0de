package taxonomy

import (
	"fmt"
	"strings"

	"github.com/crimson-sun/strictwatch/internal/model"
)

// Detector pairs a violation kind with the keywords that identify it.
// A line matches when it contains any keyword.
type Detector struct {
	Kind     model.ViolationKind
	Desc     string
	Keywords []string
}

// Match reports whether line contains one of the detector's keywords.
func (d Detector) Match(line string) bool {
	for _, kw := range d.Keywords {
		if strings.Contains(line, kw) {
			return true
		}
	}
	return false
}

// Taxonomy is the ordered, read-only detector table. Order is priority:
// earlier detectors win when several match.
type Taxonomy struct {
	detectors []Detector
}

// New validates the detectors and returns a Taxonomy preserving their order.
func New(detectors []Detector) (*Taxonomy, error) {
	seen := make(map[model.ViolationKind]bool, len(detectors))
	for i, d := range detectors {
		if !d.Kind.Known() {
			return nil, fmt.Errorf("taxonomy: detector %d: unknown kind %q", i, d.Kind)
		}
		if seen[d.Kind] {
			return nil, fmt.Errorf("taxonomy: duplicate kind %q", d.Kind)
		}
		if len(d.Keywords) == 0 {
			return nil, fmt.Errorf("taxonomy: kind %q has no keywords", d.Kind)
		}
		for _, kw := range d.Keywords {
			if kw == "" {
				return nil, fmt.Errorf("taxonomy: kind %q has an empty keyword", d.Kind)
			}
		}
		seen[d.Kind] = true
	}
	dup := make([]Detector, len(detectors))
	copy(dup, detectors)
	return &Taxonomy{detectors: dup}, nil
}

// Detectors returns the detectors in priority order.
func (t *Taxonomy) Detectors() []Detector {
	return t.detectors
}

// Kinds returns the violation kinds in priority order.
func (t *Taxonomy) Kinds() []model.ViolationKind {
	kinds := make([]model.ViolationKind, len(t.detectors))
	for i, d := range t.detectors {
		kinds[i] = d.Kind
	}
	return kinds
}
