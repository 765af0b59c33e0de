package testdata

import (
	"testing"

	"github.com/crimson-sun/strictwatch/internal/engine/taxonomy"
	"github.com/crimson-sun/strictwatch/internal/model"
)

func TestLoadCorpus(t *testing.T) {
	entries, err := LoadCorpus()
	if err != nil {
		t.Fatalf("LoadCorpus() error: %v", err)
	}

	if len(entries) == 0 {
		t.Fatal("corpus is empty")
	}

	for i, e := range entries {
		if len(e.Lines) == 0 {
			t.Errorf("entry[%d] has no lines", i)
		}
		if e.Description == "" {
			t.Errorf("entry[%d] has empty description", i)
		}
		if e.ExpectedKind != "" && !model.ViolationKind(e.ExpectedKind).Known() {
			t.Errorf("entry[%d] (%s) has unknown kind %q", i, e.Description, e.ExpectedKind)
		}
		if e.Suppressed && e.ExpectedKind != "" {
			t.Errorf("entry[%d] (%s) is suppressed but classified", i, e.Description)
		}
	}
}

func TestCorpusCoverage(t *testing.T) {
	entries, err := LoadCorpus()
	if err != nil {
		t.Fatalf("LoadCorpus() error: %v", err)
	}

	covered := map[model.ViolationKind]bool{}
	for _, e := range entries {
		covered[model.ViolationKind(e.ExpectedKind)] = true
	}

	for _, d := range taxonomy.Default() {
		if !covered[d.Kind] {
			t.Errorf("kind %q has no corpus entries", d.Kind)
		}
	}
	if !covered[model.KindNone] {
		t.Error("corpus has no unclassified entry")
	}
}
