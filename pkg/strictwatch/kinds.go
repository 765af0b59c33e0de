package strictwatch

import (
	"sync"

	"github.com/crimson-sun/strictwatch/internal/engine/classifier"
	"github.com/crimson-sun/strictwatch/internal/engine/taxonomy"
	"github.com/crimson-sun/strictwatch/internal/model"
)

// Kind is a violation category, such as "disk_read".
type Kind string

// Name returns the human-readable name.
func (k Kind) Name() string {
	return model.ViolationKind(k).Name()
}

var defaultTaxonomy = sync.OnceValues(func() (*taxonomy.Taxonomy, error) {
	return taxonomy.New(taxonomy.Default())
})

func defaultClassifier() (*classifier.Classifier, error) {
	tax, err := defaultTaxonomy()
	if err != nil {
		return nil, err
	}
	return classifier.New(tax), nil
}

// Kinds returns every violation kind in detection order.
func Kinds() []Kind {
	tax, err := defaultTaxonomy()
	if err != nil {
		return nil
	}
	var kinds []Kind
	for _, k := range tax.Kinds() {
		kinds = append(kinds, Kind(k))
	}
	return kinds
}
