package classifier

import (
	"testing"

	"github.com/crimson-sun/strictwatch/internal/engine/taxonomy"
	"github.com/crimson-sun/strictwatch/internal/model"
)

func newDefault(t *testing.T) *Classifier {
	t.Helper()
	tax, err := taxonomy.New(taxonomy.Default())
	if err != nil {
		t.Fatalf("taxonomy.New: %v", err)
	}
	return New(tax)
}

func TestClassify(t *testing.T) {
	c := newDefault(t)

	tests := []struct {
		name   string
		lines  []string
		want   model.ViolationKind
		wantOK bool
	}{
		{
			name:   "disk read in title",
			lines:  []string{"StrictMode policy violation; ~duration=42 ms: android.os.StrictMode$StrictModeDiskReadViolation: policy=31 violation=2"},
			want:   model.KindDiskRead,
			wantOK: true,
		},
		{
			name: "match in detail line",
			lines: []string{
				"Detected cleartext network traffic from UID 10084",
				"\tat android.os.StrictMode$1.onCleartextNetworkDetected(StrictMode.java:1892)",
			},
			want:   model.KindCleartextNetwork,
			wantOK: true,
		},
		{
			name:   "no match",
			lines:  []string{"java.lang.IllegalStateException: boom", "at com.example.Main.run(Main.java:1)"},
			want:   model.KindNone,
			wantOK: false,
		},
		{
			name:   "empty",
			lines:  nil,
			want:   model.KindNone,
			wantOK: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := c.Classify(tt.lines)
			if got != tt.want || ok != tt.wantOK {
				t.Errorf("Classify() = (%q, %v), want (%q, %v)", got, ok, tt.want, tt.wantOK)
			}
		})
	}
}

func TestClassifyDetectorOrderWins(t *testing.T) {
	c := newDefault(t)

	// Both the custom slow call and disk write detectors match this line;
	// custom slow call comes first in the table.
	line := "StrictModeCustomViolation after StrictModeDiskWriteViolation"
	for i := 0; i < 3; i++ {
		got, ok := c.Classify([]string{line})
		if !ok || got != model.KindCustomSlowCall {
			t.Fatalf("run %d: Classify() = (%q, %v), want custom_slow_call", i, got, ok)
		}
	}
}

func TestClassifyEarlierLineWins(t *testing.T) {
	c := newDefault(t)

	// The leaked SQLite detector is last in the table but its line comes first.
	lines := []string{
		"Finalizing a Cursor that has not been deactivated or closed.",
		"android.os.StrictMode$StrictModeCustomViolation",
	}
	got, _ := c.Classify(lines)
	if got != model.KindLeakedSQLiteObjects {
		t.Errorf("Classify() = %q, want %q", got, model.KindLeakedSQLiteObjects)
	}
}

func TestClassifyCustomTable(t *testing.T) {
	tax, err := taxonomy.New([]taxonomy.Detector{
		{Kind: model.KindDiskWrite, Keywords: []string{"write"}},
		{Kind: model.KindDiskRead, Keywords: []string{"read"}},
	})
	if err != nil {
		t.Fatal(err)
	}
	c := New(tax)

	got, _ := c.Classify([]string{"read then write"})
	if got != model.KindDiskWrite {
		t.Errorf("Classify() = %q, want %q", got, model.KindDiskWrite)
	}
}
