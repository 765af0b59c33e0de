package classifier

import (
	"github.com/crimson-sun/strictwatch/internal/engine/taxonomy"
	"github.com/crimson-sun/strictwatch/internal/model"
)

// Classifier assigns a violation kind to incident lines using an ordered
// detector table.
type Classifier struct {
	detectors []taxonomy.Detector
}

// New creates a Classifier over the taxonomy's detectors.
func New(tax *taxonomy.Taxonomy) *Classifier {
	return &Classifier{detectors: tax.Detectors()}
}

// Classify walks lines in order and, for each line, the detectors in
// priority order. The first detector matching any line wins. Returns
// KindNone and false when nothing matches.
func (c *Classifier) Classify(lines []string) (model.ViolationKind, bool) {
	for _, line := range lines {
		for _, d := range c.detectors {
			if d.Match(line) {
				return d.Kind, true
			}
		}
	}
	return model.KindNone, false
}
