// Package strictwatch watches Android StrictMode log output and reports
// each violation once.
//
// Quick start:
//
//	w, err := strictwatch.New(
//	    strictwatch.WithLogcat("emulator-5554"),
//	    strictwatch.WithNotifyFunc(func(n strictwatch.Notification) {
//	        fmt.Println(n.Title, n.Incident.Title)
//	    }),
//	)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer w.Close()
//
//	err = w.Run(ctx) // blocks until ctx is done, Stop is called, or the stream dries up
//
// Parse and Classify expose the line parser and the violation classifier
// for callers that do their own batching.
package strictwatch
