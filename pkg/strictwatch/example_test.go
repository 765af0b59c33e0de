package strictwatch_test

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/crimson-sun/strictwatch/pkg/strictwatch"
)

func Example() {
	capture := strings.Join([]string{
		"10-19 09:30:01.000 D/StrictMode( 4242): StrictMode policy violation; ~duration=42 ms: android.os.StrictMode$StrictModeDiskReadViolation: policy=31 violation=2",
		"10-19 09:30:01.003 D/StrictMode( 4242): \tat android.os.StrictMode$AndroidBlockGuardPolicy.onReadFromDisk(StrictMode.java:1293)",
	}, "\n")

	w, err := strictwatch.New(
		strictwatch.WithSource(strings.NewReader(capture)),
		strictwatch.WithTimings(50*time.Millisecond, 10*time.Millisecond, 100*time.Millisecond),
		strictwatch.WithNotifyFunc(func(n strictwatch.Notification) {
			fmt.Println(n.Title, len(n.Incident.DetailLines))
		}),
	)
	if err != nil {
		fmt.Println("error:", err)
		return
	}
	defer w.Close()

	if err := w.Run(context.Background()); err != nil {
		fmt.Println("error:", err)
	}
	// Output: Disk Read 1
}

func ExampleClassify() {
	kind, ok := strictwatch.Classify([]string{
		"android.os.StrictMode$StrictModeNetworkViolation: policy=31 violation=4",
	})
	fmt.Println(kind, kind.Name(), ok)
	// Output: network Network true
}
